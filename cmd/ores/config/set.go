package configcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/ores/cmd/ores/cmdconfig"
	"github.com/papercomputeco/ores/pkg/cliui"
)

const setLongDesc string = `Set a configuration value.

Writes the given key to config.toml in the .ores/ directory, creating
~/.ores/ if no directory exists yet. Durations and sizes are validated
before the file is written.

Examples:
  ores config set client.base_url http://localhost:8787/v1/
  ores config set client.timeout 2m
  ores config set sink.provider kafka
  ores config set sink.kafka_brokers broker-1:9092,broker-2:9092`

const setShortDesc string = "Set a configuration value"

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "set <key> <value>",
		Short:             setShortDesc,
		Long:              setLongDesc,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := checkKey(key); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			cfger, err := openConfig(out, cmdconfig.ConfigDir(cmd))
			if err != nil {
				return err
			}

			if err := cfger.SetConfigValue(key, value); err != nil {
				return err
			}

			fmt.Fprintf(out, "  %s Set %s = %s\n\n",
				cliui.SuccessMark,
				cliui.KeyStyle.Render(key),
				cliui.ValueStyle.Render(value),
			)
			return nil
		},
	}
}
