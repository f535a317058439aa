package configcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/ores/cmd/ores/cmdconfig"
	"github.com/papercomputeco/ores/pkg/config"
)

const listLongDesc string = `List all configuration values.

Displays every configuration key and its value from config.toml in the
.ores/ directory, with defaults filled in.

Examples:
  ores config list`

const listShortDesc string = "List all configuration values"

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cfger, err := config.NewConfiger(cmdconfig.ConfigDir(cmd))
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if target := cfger.GetTarget(); target != "" {
				fmt.Fprintf(out, "Using config file: %s\n\n", target)
			} else {
				fmt.Fprint(out, "No config file found. Using default config.\n\n")
			}

			keys := config.ValidConfigKeys()
			width := 0
			for _, k := range keys {
				width = max(width, len(k))
			}

			for _, key := range keys {
				value, err := cfger.GetConfigValue(key)
				if err != nil {
					return err
				}

				if value == "" {
					fmt.Fprintf(out, "%-*s = <not set>\n", width, key)
				} else {
					fmt.Fprintf(out, "%-*s = %q\n", width, key, value)
				}
			}
			return nil
		},
	}
}
