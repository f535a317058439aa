package testutils

import (
	"context"
	"errors"
	"sync"

	"github.com/papercomputeco/ores/pkg/eventstream"
)

// ErrMockPublish is returned by MockPublisher when FailPublish is set.
var ErrMockPublish = errors.New("mock publish failure")

// MockPublisher is a test eventstream.Publisher that records published
// records. It is safe for concurrent use.
type MockPublisher struct {
	mu      sync.Mutex
	records []*eventstream.Record
	closed  bool

	// FailPublish causes Publish to return ErrMockPublish.
	FailPublish bool

	// Gate, when non-nil, blocks every Publish until a value is received
	// from it or the channel is closed.
	Gate chan struct{}
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, record *eventstream.Record) error {
	if record == nil {
		return eventstream.ErrNilRecord
	}

	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if m.FailPublish {
		return ErrMockPublish
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *MockPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Records returns a copy of everything published so far.
func (m *MockPublisher) Records() []*eventstream.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*eventstream.Record, len(m.records))
	copy(out, m.records)
	return out
}

func (m *MockPublisher) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
