// Package cmdconfig resolves the configuration, logger and API client shared
// by the ores commands.
package cmdconfig

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/ores/pkg/client"
	"github.com/papercomputeco/ores/pkg/config"
	"github.com/papercomputeco/ores/pkg/credentials"
	"github.com/papercomputeco/ores/pkg/logger"
)

// ClientFlags are the registry keys of the flags every API command takes.
var ClientFlags = []string{
	config.FlagBaseURL,
	config.FlagModel,
	config.FlagTimeout,
	config.FlagUserAgent,
	config.FlagProfile,
	config.FlagMaxEventBytes,
}

// SinkFlags are the registry keys of the event recording flags.
var SinkFlags = []string{
	config.FlagSink,
	config.FlagKafkaBrokers,
	config.FlagKafkaTopic,
	config.FlagSQLite,
	config.FlagPostgresDSN,
	config.FlagSinkWorkers,
	config.FlagSinkQueue,
}

// ErrEmptyPrompt is returned when neither an argument nor stdin provides a
// prompt.
var ErrEmptyPrompt = errors.New("prompt is empty: pass it as an argument or on stdin")

var uintFlags = map[string]bool{
	config.FlagMaxEventBytes: true,
	config.FlagSinkWorkers:   true,
	config.FlagSinkQueue:     true,
}

// AddFlags registers the registry flags named by keys on cmd. Their values
// are read back through Load.
func AddFlags(cmd *cobra.Command, keys ...string) {
	for _, key := range keys {
		if uintFlags[key] {
			config.AddUintFlag(cmd, config.Flags, key, new(uint))
			continue
		}
		config.AddStringFlag(cmd, config.Flags, key, new(string))
	}
}

// ConfigDir returns the value of the persistent --config-dir flag.
func ConfigDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("config-dir")
	return dir
}

// Debug returns the value of the persistent --debug flag.
func Debug(cmd *cobra.Command) bool {
	debug, _ := cmd.Flags().GetBool("debug")
	return debug
}

// Load resolves the effective configuration for cmd. The flags named by keys
// take precedence over ORES_* environment variables, config.toml and the
// defaults.
func Load(cmd *cobra.Command, keys ...string) (*config.Config, error) {
	v, err := config.InitViper(ConfigDir(cmd))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	config.BindRegisteredFlags(v, cmd, config.Flags, keys)

	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Logger returns the command logger. It writes to the command's stderr so
// that stdout carries only response output.
func Logger(cmd *cobra.Command) *slog.Logger {
	return logger.New(
		logger.WithDebug(Debug(cmd)),
		logger.WithPretty(true),
		logger.WithWriter(cmd.ErrOrStderr()),
	)
}

// NewClient builds an API client from cfg. The API key comes from the
// credentials of cfg.Client.Profile. A base url stored with the profile is
// used unless the configured base url differs from the default.
func NewClient(cfg *config.Config, configDir string, log *slog.Logger, opts ...client.Option) (*client.Client, error) {
	creds, err := credentials.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	cred, source, err := creds.Resolve(cfg.Client.Profile)
	if err != nil {
		return nil, err
	}
	log.Debug("resolved api key", "profile", cfg.Client.Profile, "source", source)

	baseURL := cfg.Client.BaseURL
	if cred.BaseURL != "" && baseURL == config.NewDefaultConfig().Client.BaseURL {
		baseURL = cred.BaseURL
	}

	timeout, err := cfg.Client.ParsedTimeout()
	if err != nil {
		return nil, err
	}

	return client.New(cred.APIKey, baseURL, append([]client.Option{
		client.WithTimeout(timeout),
		client.WithUserAgent(cfg.Client.UserAgent),
		client.WithMaxEventSize(int(cfg.Stream.MaxEventBytes)),
		client.WithLogger(log),
	}, opts...)...)
}

// HeaderOptions parses "Key: Value" pairs given with --header.
func HeaderOptions(headers []string) ([]client.Option, error) {
	opts := make([]client.Option, 0, len(headers))
	for _, h := range headers {
		key, value, ok := strings.Cut(h, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q: expected \"Key: Value\"", h)
		}
		opts = append(opts, client.WithHeader(key, strings.TrimSpace(value)))
	}
	return opts, nil
}

// ReadPrompt joins args, or reads the prompt from the command's stdin when
// there are none.
func ReadPrompt(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		prompt := strings.TrimSpace(strings.Join(args, " "))
		if prompt == "" {
			return "", ErrEmptyPrompt
		}
		return prompt, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		fi, err := f.Stat()
		if err != nil {
			return "", fmt.Errorf("checking stdin: %w", err)
		}
		if fi.Mode()&os.ModeCharDevice != 0 {
			return "", ErrEmptyPrompt
		}
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	return prompt, nil
}
