package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline, so the same logical flag
// (for example --model on both "ores stream" and "ores create") cannot drift.
type Flag struct {
	// Name is the long flag name (e.g. "model").
	Name string

	// Shorthand is the one-letter short flag (e.g. "m"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "client.model").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddUintFlag,
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagBaseURL       = "base-url"
	FlagModel         = "model"
	FlagTimeout       = "timeout"
	FlagUserAgent     = "user-agent"
	FlagProfile       = "profile"
	FlagMaxEventBytes = "max-event-bytes"
	FlagSink          = "sink"
	FlagKafkaBrokers  = "kafka-brokers"
	FlagKafkaTopic    = "kafka-topic"
	FlagSQLite        = "sqlite"
	FlagPostgresDSN   = "postgres-dsn"
	FlagSinkWorkers   = "sink-workers"
	FlagSinkQueue     = "sink-queue"
	FlagMockListen    = "listen"
	FlagMockFixture   = "fixture"
)

// Flags is the registry shared by all ores commands.
var Flags = FlagSet{
	FlagBaseURL:       {Name: "base-url", ViperKey: "client.base_url", Description: "Responses API base URL"},
	FlagModel:         {Name: "model", Shorthand: "m", ViperKey: "client.model", Description: "Model to use"},
	FlagTimeout:       {Name: "timeout", ViperKey: "client.timeout", Description: "Request timeout (e.g. 30s, 10m)"},
	FlagUserAgent:     {Name: "user-agent", ViperKey: "client.user_agent", Description: "User-Agent header override"},
	FlagProfile:       {Name: "profile", Shorthand: "p", ViperKey: "client.profile", Description: "Credentials profile"},
	FlagMaxEventBytes: {Name: "max-event-bytes", ViperKey: "stream.max_event_bytes", Description: "Maximum size of a single stream event"},
	FlagSink:          {Name: "sink", ViperKey: "sink.provider", Description: "Record events to none, kafka, sqlite or postgres"},
	FlagKafkaBrokers:  {Name: "kafka-brokers", ViperKey: "sink.kafka_brokers", Description: "Comma separated Kafka brokers"},
	FlagKafkaTopic:    {Name: "kafka-topic", ViperKey: "sink.kafka_topic", Description: "Kafka topic for event records"},
	FlagSQLite:        {Name: "sqlite", ViperKey: "sink.sqlite_path", Description: "SQLite database for event records"},
	FlagPostgresDSN:   {Name: "postgres-dsn", ViperKey: "sink.postgres_dsn", Description: "PostgreSQL DSN for event records"},
	FlagSinkWorkers:   {Name: "sink-workers", ViperKey: "sink.workers", Description: "Number of sink workers"},
	FlagSinkQueue:     {Name: "sink-queue", ViperKey: "sink.queue_size", Description: "Sink queue capacity"},
	FlagMockListen:    {Name: "listen", Shorthand: "l", ViperKey: "mock.listen", Description: "Address for the mock server"},
	FlagMockFixture:   {Name: "fixture", ViperKey: "mock.fixture", Description: "SSE file to serve instead of the generated stream"},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUintFlag registers a uint flag on cmd from the given FlagSet.
func AddUintFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultUint(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().UintVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().UintVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultUint returns the default uint value for a viper key from NewDefaultConfig.
func defaultUint(viperKey string) uint {
	v := viper.New()
	setViperDefaults(v)
	return v.GetUint(viperKey)
}
