// Package dispatch provides an asynchronous worker pool that hands stream
// records to an eventstream.Publisher.
//
// Sink writes happen off the stream read loop. When the queue is full,
// records are dropped and counted.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/papercomputeco/ores/pkg/eventstream"
	"github.com/papercomputeco/ores/pkg/logger"
)

var (
	defaultNumWorkers     uint = 3
	defaultQueueSize      uint = 256
	defaultPublishTimeout      = 10 * time.Second
)

// ErrNoPublisher is returned by NewPool when Config.Publisher is nil.
var ErrNoPublisher = errors.New("dispatch: publisher is required")

// Config is the configuration options for the worker pool.
type Config struct {
	// Publisher is the sink records are written to.
	Publisher eventstream.Publisher

	// NumWorkers is the number of background workers in the pool (defaults to 3).
	NumWorkers uint

	// QueueSize is the capacity of the buffered record channel (defaults to 256).
	QueueSize uint

	// PublishTimeout bounds each Publish call (defaults to 10s).
	PublishTimeout time.Duration

	Logger *slog.Logger
}

// Stats counts what happened to enqueued records.
type Stats struct {
	Published uint64
	Failed    uint64
	Dropped   uint64
}

// Pool publishes records asynchronously via a worker pool.
type Pool struct {
	config *Config
	queue  chan *eventstream.Record
	wg     sync.WaitGroup
	logger *slog.Logger

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool

	published atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64
}

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c *Config) (*Pool, error) {
	if c.Publisher == nil {
		return nil, ErrNoPublisher
	}

	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultQueueSize
	}

	if c.PublishTimeout <= 0 {
		c.PublishTimeout = defaultPublishTimeout
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	if c.Logger == nil {
		c.Logger = logger.Nop()
	}

	p := &Pool{
		config: c,
		queue:  make(chan *eventstream.Record, c.QueueSize),
		logger: c.Logger,
	}

	p.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go p.worker(i)
	}

	return p, nil
}

// Enqueue submits a record for publishing.
// Returns true if enqueued, false if the queue is full or the pool is closed,
// resulting in the record being dropped.
func (p *Pool) Enqueue(record *eventstream.Record) bool {
	if record == nil {
		return false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.dropped.Add(1)
		p.logger.Warn("record not queued, pool closed", "record_id", record.ID)
		return false
	}

	select {
	case p.queue <- record:
		p.logger.Debug("record queued",
			"record_id", record.ID,
			"event_type", record.EventType,
		)
		return true
	default:
		p.dropped.Add(1)
		p.logger.Error("record not queued, queue full, record dropped",
			"record_id", record.ID,
			"event_type", record.EventType,
		)
		return false
	}
}

// Close stops accepting records and waits for queued ones to drain. It does
// not close the publisher. Close is safe to call more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
	})
	p.wg.Wait()
}

func (p *Pool) Stats() Stats {
	return Stats{
		Published: p.published.Load(),
		Failed:    p.failed.Load(),
		Dropped:   p.dropped.Load(),
	}
}

// worker is the inner worker thread that continuously pulls records off the queue
func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("worker started", "worker_id", id)

	for record := range p.queue {
		p.publish(record)
	}

	p.logger.Debug("worker stopped", "worker_id", id)
}

func (p *Pool) publish(record *eventstream.Record) {
	ctx, cancel := context.WithTimeout(context.Background(), p.config.PublishTimeout)
	defer cancel()

	if err := p.config.Publisher.Publish(ctx, record); err != nil {
		p.failed.Add(1)
		p.logger.Error("publishing record failed",
			"record_id", record.ID,
			"event_type", record.EventType,
			"error", err,
		)
		return
	}

	p.published.Add(1)
}
