package nop

import (
	"context"

	"github.com/papercomputeco/ores/pkg/eventstream"
)

// Publisher discards records. It backs the "none" sink provider.
type Publisher struct{}

func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish validates input and otherwise does nothing.
func (p *Publisher) Publish(_ context.Context, record *eventstream.Record) error {
	if record == nil {
		return eventstream.ErrNilRecord
	}
	return nil
}

func (p *Publisher) Close() error {
	return nil
}
