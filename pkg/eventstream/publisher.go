package eventstream

import "context"

// Publisher publishes stream records to a sink backend.
type Publisher interface {
	Publish(ctx context.Context, record *Record) error
	Close() error
}
