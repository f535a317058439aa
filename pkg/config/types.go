package config

import (
	"fmt"
	"slices"
	"strconv"
	"time"
)

// Config is the persistent ores configuration stored as config.toml in the
// .ores/ directory.
type Config struct {
	Version int          `toml:"version"`
	Client  ClientConfig `toml:"client"`
	Stream  StreamConfig `toml:"stream"`
	Sink    SinkConfig   `toml:"sink"`
	Mock    MockConfig   `toml:"mock"`
}

// ClientConfig holds the Responses API connection settings.
type ClientConfig struct {
	BaseURL   string `toml:"base_url,omitempty"`
	Timeout   string `toml:"timeout,omitempty"`
	UserAgent string `toml:"user_agent,omitempty"`
	Model     string `toml:"model,omitempty"`
	Profile   string `toml:"profile,omitempty"`
}

// StreamConfig holds event stream decoding settings.
type StreamConfig struct {
	MaxEventBytes uint `toml:"max_event_bytes,omitempty"`
}

// SinkConfig selects where decoded events are recorded.
type SinkConfig struct {
	Provider     string `toml:"provider,omitempty"`
	KafkaBrokers string `toml:"kafka_brokers,omitempty"`
	KafkaTopic   string `toml:"kafka_topic,omitempty"`
	SQLitePath   string `toml:"sqlite_path,omitempty"`
	PostgresDSN  string `toml:"postgres_dsn,omitempty"`
	Workers      uint   `toml:"workers,omitempty"`
	QueueSize    uint   `toml:"queue_size,omitempty"`
}

// MockConfig holds settings for the local mock server.
type MockConfig struct {
	Listen  string `toml:"listen,omitempty"`
	Fixture string `toml:"fixture,omitempty"`
}

// Sink providers.
const (
	SinkNone     = "none"
	SinkKafka    = "kafka"
	SinkSQLite   = "sqlite"
	SinkPostgres = "postgres"
)

// SinkProviders returns the accepted values of sink.provider.
func SinkProviders() []string {
	return []string{SinkNone, SinkKafka, SinkSQLite, SinkPostgres}
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringKey(field func(c *Config) *string) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error { *field(c) = v; return nil },
	}
}

func uintKey(name string, field func(c *Config) *uint) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string {
			if *field(c) == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(*field(c)), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = uint(n)
			return nil
		},
	}
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"client.base_url": stringKey(func(c *Config) *string { return &c.Client.BaseURL }),
	"client.timeout": {
		get: func(c *Config) string { return c.Client.Timeout },
		set: func(c *Config, v string) error {
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid value for client.timeout: %w", err)
			}
			c.Client.Timeout = v
			return nil
		},
	},
	"client.user_agent":      stringKey(func(c *Config) *string { return &c.Client.UserAgent }),
	"client.model":           stringKey(func(c *Config) *string { return &c.Client.Model }),
	"client.profile":         stringKey(func(c *Config) *string { return &c.Client.Profile }),
	"stream.max_event_bytes": uintKey("stream.max_event_bytes", func(c *Config) *uint { return &c.Stream.MaxEventBytes }),
	"sink.provider": {
		get: func(c *Config) string { return c.Sink.Provider },
		set: func(c *Config, v string) error {
			if !IsValidSinkProvider(v) {
				return fmt.Errorf("invalid value for sink.provider: %q (available: none, kafka, sqlite, postgres)", v)
			}
			c.Sink.Provider = v
			return nil
		},
	},
	"sink.kafka_brokers": stringKey(func(c *Config) *string { return &c.Sink.KafkaBrokers }),
	"sink.kafka_topic":   stringKey(func(c *Config) *string { return &c.Sink.KafkaTopic }),
	"sink.sqlite_path":   stringKey(func(c *Config) *string { return &c.Sink.SQLitePath }),
	"sink.postgres_dsn":  stringKey(func(c *Config) *string { return &c.Sink.PostgresDSN }),
	"sink.workers":       uintKey("sink.workers", func(c *Config) *uint { return &c.Sink.Workers }),
	"sink.queue_size":    uintKey("sink.queue_size", func(c *Config) *uint { return &c.Sink.QueueSize }),
	"mock.listen":        stringKey(func(c *Config) *string { return &c.Mock.Listen }),
	"mock.fixture":       stringKey(func(c *Config) *string { return &c.Mock.Fixture }),
}

// IsValidSinkProvider reports whether p is an accepted sink.provider.
func IsValidSinkProvider(p string) bool {
	return slices.Contains(SinkProviders(), p)
}
