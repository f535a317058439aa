package main

import (
	"os"

	orescmder "github.com/papercomputeco/ores/cmd/ores"
)

func main() {
	cmd := orescmder.NewOresCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
