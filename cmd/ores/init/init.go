// Package initcmder provides the init command for initializing a local .ores
// directory in the current working directory.
package initcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/ores/cmd/ores/cmdconfig"
	"github.com/papercomputeco/ores/pkg/cliui"
	"github.com/papercomputeco/ores/pkg/config"
	"github.com/papercomputeco/ores/pkg/dotdir"
)

const initLongDesc string = `Initialize a new .ores/ directory in the current working directory.

Creates a local .ores/ directory that takes precedence over ~/.ores/ for
configuration, credentials and conversation state, and writes a config.toml
with default values unless one already exists.

With --preset the config.toml is always (re)written, either from a built-in
preset or from a TOML file fetched over HTTP(S).

Presets:
  openai   The OpenAI Responses API (the default configuration)
  mock     A local "ores mock" server on localhost:8787

Examples:
  ores init
  ores init --preset mock
  ores init --preset https://example.com/team/ores.toml`

const initShortDesc string = "Initialize a local .ores/ directory"

const remoteTimeout = 30 * time.Second

type initCommander struct {
	preset string
	out    io.Writer
}

func NewInitCmd() *cobra.Command {
	cmder := &initCommander{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.out = cmd.OutOrStdout()
			return cmder.run(cmd.Context(), cmdconfig.ConfigDir(cmd))
		},
	}

	cmd.Flags().StringVar(&cmder.preset, "preset", "",
		fmt.Sprintf("Config preset (%s) or URL of a config.toml", strings.Join(config.ValidPresetNames(), ", ")))

	return cmd
}

func (c *initCommander) run(ctx context.Context, configDir string) error {
	// A bad preset leaves no directory behind.
	var preset *config.Config
	if c.preset != "" {
		var err error
		preset, err = c.loadPreset(ctx)
		if err != nil {
			return err
		}
	}

	dir, created, err := c.initDir(configDir)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(c.out, "%s Initialized .ores directory: %s\n", cliui.SuccessMark, dir)
	} else {
		fmt.Fprintf(c.out, "%s Already initialized: %s\n", cliui.DimStyle.Render("●"), dir)
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if preset == nil {
		if _, err := os.Stat(cfger.GetTarget()); err == nil {
			return nil
		}
		preset = config.NewDefaultConfig()
	}

	if err := cfger.SaveConfig(preset); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s Wrote %s\n", cliui.SuccessMark, cliui.DimStyle.Render(cfger.GetTarget()))
	return nil
}

// initDir creates configDir when given, ./.ores/ otherwise.
func (c *initCommander) initDir(configDir string) (string, bool, error) {
	if configDir == "" {
		return dotdir.NewManager().InitLocal()
	}

	_, statErr := os.Stat(configDir)
	dir, err := dotdir.NewManager().Target(configDir)
	if err != nil {
		return "", false, err
	}
	return dir, errors.Is(statErr, os.ErrNotExist), nil
}

func (c *initCommander) loadPreset(ctx context.Context) (*config.Config, error) {
	if strings.HasPrefix(c.preset, "http://") || strings.HasPrefix(c.preset, "https://") {
		return fetchRemoteConfig(ctx, c.preset)
	}
	return config.PresetConfig(c.preset)
}

func fetchRemoteConfig(ctx context.Context, url string) (*config.Config, error) {
	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching remote config: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading remote config: %w", err)
	}

	cfg, err := config.ParseConfigTOML(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
