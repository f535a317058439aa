package config

const (
	defaultBaseURL = "https://api.openai.com/v1/"
	defaultTimeout = "10m"
	defaultModel   = "gpt-5-mini"
	defaultProfile = "default"

	defaultMaxEventBytes = 1024 * 1024

	defaultKafkaBrokers = "localhost:9092"
	defaultKafkaTopic   = "ores.stream.events"
	defaultSinkWorkers  = 3
	defaultSinkQueue    = 256

	defaultMockListen = "localhost:8787"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Client: ClientConfig{
			BaseURL: defaultBaseURL,
			Timeout: defaultTimeout,
			Model:   defaultModel,
			Profile: defaultProfile,
		},
		Stream: StreamConfig{
			MaxEventBytes: defaultMaxEventBytes,
		},
		Sink: SinkConfig{
			Provider:     SinkNone,
			KafkaBrokers: defaultKafkaBrokers,
			KafkaTopic:   defaultKafkaTopic,
			Workers:      defaultSinkWorkers,
			QueueSize:    defaultSinkQueue,
		},
		Mock: MockConfig{
			Listen: defaultMockListen,
		},
	}
}
