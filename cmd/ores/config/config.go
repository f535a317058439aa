// Package configcmder provides the config command for managing persistent
// ores configuration stored in the .ores/ directory.
package configcmder

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/ores/pkg/cliui"
	"github.com/papercomputeco/ores/pkg/config"
)

const configLongDesc string = `Manage persistent ores configuration.

Configuration is stored as config.toml in the .ores/ directory and provides
default values for command flags. ORES_* environment variables override the
file, and CLI flags override both.

Keys use dotted notation matching the TOML section structure:
  client.base_url, client.timeout, client.user_agent, client.model,
  client.profile, stream.max_event_bytes,
  sink.provider, sink.kafka_brokers, sink.kafka_topic, sink.sqlite_path,
  sink.postgres_dsn, sink.workers, sink.queue_size,
  mock.listen, mock.fixture

Use subcommands to get, set, or list configuration values:
  ores config set <key> <value>    Set a configuration value
  ores config get <key>            Get a configuration value
  ores config list                 List all configuration values

Examples:
  ores config set client.model gpt-4o-mini
  ores config set sink.provider sqlite
  ores config get client.base_url
  ores config list`

const configShortDesc string = "Manage persistent ores configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func checkKey(key string) error {
	if config.IsValidConfigKey(key) {
		return nil
	}
	return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
		key, strings.Join(config.ValidConfigKeys(), ", "))
}

// openConfig loads the configer for configDir and prints which file it uses.
func openConfig(out io.Writer, configDir string) (*config.Configer, error) {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if target := cfger.GetTarget(); target != "" {
		fmt.Fprintf(out, "\n  %s %s\n\n",
			cliui.KeyStyle.Render("Config file:"),
			cliui.DimStyle.Render(target),
		)
	} else {
		fmt.Fprintf(out, "\n  %s\n\n", cliui.DimStyle.Render("No config file found. Using defaults."))
	}

	return cfger, nil
}
