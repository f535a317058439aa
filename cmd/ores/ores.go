// Package orescmder
package orescmder

import (
	"github.com/spf13/cobra"

	authcmder "github.com/papercomputeco/ores/cmd/ores/auth"
	configcmder "github.com/papercomputeco/ores/cmd/ores/config"
	createcmder "github.com/papercomputeco/ores/cmd/ores/create"
	decodecmder "github.com/papercomputeco/ores/cmd/ores/decode"
	initcmder "github.com/papercomputeco/ores/cmd/ores/init"
	mockcmder "github.com/papercomputeco/ores/cmd/ores/mock"
	streamcmder "github.com/papercomputeco/ores/cmd/ores/stream"
	versioncmder "github.com/papercomputeco/ores/cmd/ores/version"
)

const oresLongDesc string = `ores streams responses from an OpenAI-style Responses API.

Talk to the API using:
  ores stream "prompt"   Stream a response, printing text as it arrives
  ores create "prompt"   Create a response in one request
  ores decode file.sse   Decode a captured event stream offline

Run a local stand-in for the API using:
  ores mock`

const oresShortDesc string = "ores - Responses API streaming client"

func NewOresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ores",
		Short:        oresShortDesc,
		Long:         oresLongDesc,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .ores/ config directory")

	cmd.AddCommand(streamcmder.NewStreamCmd())
	cmd.AddCommand(createcmder.NewCreateCmd())
	cmd.AddCommand(decodecmder.NewDecodeCmd())
	cmd.AddCommand(mockcmder.NewMockCmd())
	cmd.AddCommand(authcmder.NewAuthCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
