package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/papercomputeco/ores/pkg/dotdir"
)

// EnvPrefix prefixes every environment variable read through viper.
const EnvPrefix = "ORES"

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads config.toml (if found via
// dotdir resolution), and binds environment variables with the ORES_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (ORES_CLIENT_MODEL, ORES_SINK_PROVIDER, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")

	target, err := dotdir.NewManager().Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)

		if err := v.ReadInConfig(); err != nil {
			// A missing file is fine, defaults apply.
			if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	v.SetDefault("client.base_url", d.Client.BaseURL)
	v.SetDefault("client.timeout", d.Client.Timeout)
	v.SetDefault("client.user_agent", d.Client.UserAgent)
	v.SetDefault("client.model", d.Client.Model)
	v.SetDefault("client.profile", d.Client.Profile)

	v.SetDefault("stream.max_event_bytes", d.Stream.MaxEventBytes)

	v.SetDefault("sink.provider", d.Sink.Provider)
	v.SetDefault("sink.kafka_brokers", d.Sink.KafkaBrokers)
	v.SetDefault("sink.kafka_topic", d.Sink.KafkaTopic)
	v.SetDefault("sink.sqlite_path", d.Sink.SQLitePath)
	v.SetDefault("sink.postgres_dsn", d.Sink.PostgresDSN)
	v.SetDefault("sink.workers", d.Sink.Workers)
	v.SetDefault("sink.queue_size", d.Sink.QueueSize)

	v.SetDefault("mock.listen", d.Mock.Listen)
	v.SetDefault("mock.fixture", d.Mock.Fixture)
}

// FromViper reads the effective configuration out of v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Version: v.GetInt("version"),
		Client: ClientConfig{
			BaseURL:   v.GetString("client.base_url"),
			Timeout:   v.GetString("client.timeout"),
			UserAgent: v.GetString("client.user_agent"),
			Model:     v.GetString("client.model"),
			Profile:   v.GetString("client.profile"),
		},
		Stream: StreamConfig{
			MaxEventBytes: v.GetUint("stream.max_event_bytes"),
		},
		Sink: SinkConfig{
			Provider:     v.GetString("sink.provider"),
			KafkaBrokers: v.GetString("sink.kafka_brokers"),
			KafkaTopic:   v.GetString("sink.kafka_topic"),
			SQLitePath:   v.GetString("sink.sqlite_path"),
			PostgresDSN:  v.GetString("sink.postgres_dsn"),
			Workers:      v.GetUint("sink.workers"),
			QueueSize:    v.GetUint("sink.queue_size"),
		},
		Mock: MockConfig{
			Listen:  v.GetString("mock.listen"),
			Fixture: v.GetString("mock.fixture"),
		},
	}

	if !IsValidSinkProvider(cfg.Sink.Provider) {
		return nil, fmt.Errorf("unsupported sink provider %q (available: %s)",
			cfg.Sink.Provider, strings.Join(SinkProviders(), ", "))
	}

	return cfg, nil
}

// ParsedTimeout parses client.timeout. An empty value means no timeout.
func (c ClientConfig) ParsedTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid client.timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// Brokers splits sink.kafka_brokers on commas.
func (s SinkConfig) Brokers() []string {
	var brokers []string
	for b := range strings.SplitSeq(s.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
