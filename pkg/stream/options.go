package stream

import (
	"io"
	"log/slog"

	"github.com/papercomputeco/ores/pkg/logger"
)

const (
	// DefaultMaxBufferSize bounds the unparsed tail of the stream.
	DefaultMaxBufferSize = 1024 * 1024

	defaultChunkSize = 32 * 1024
)

// Option configures a Stream created with New.
type Option func(*config)

type config struct {
	maxBufferSize int
	chunkSize     int
	tee           io.Writer
	logger        *slog.Logger
}

// WithMaxBufferSize overrides DefaultMaxBufferSize. Values below 1 are
// ignored.
func WithMaxBufferSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBufferSize = n
		}
	}
}

// WithChunkSize sets the size of each read from the source.
func WithChunkSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// WithTee copies every byte read from the source to w, verbatim and in
// order, before it is parsed.
func WithTee(w io.Writer) Option {
	return func(c *config) {
		c.tee = w
	}
}

// WithLogger sets the logger for frame level debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		maxBufferSize: DefaultMaxBufferSize,
		chunkSize:     defaultChunkSize,
		logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
