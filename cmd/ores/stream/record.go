package streamcmder

import (
	"context"
	"log/slog"
	"sync"

	"github.com/papercomputeco/ores/pkg/config"
	"github.com/papercomputeco/ores/pkg/eventstream"
	"github.com/papercomputeco/ores/pkg/eventstream/dispatch"
	"github.com/papercomputeco/ores/pkg/eventstream/sink"
	"github.com/papercomputeco/ores/pkg/responses"
)

// recording hands every decoded event to the configured sink. A nil
// *recording records nothing.
type recording struct {
	recorder  *eventstream.Recorder
	publisher eventstream.Publisher
	pool      *dispatch.Pool
	logger    *slog.Logger

	closeOnce sync.Once
	stats     dispatch.Stats
}

func newRecording(ctx context.Context, cfg config.SinkConfig, configDir string, log *slog.Logger) (*recording, error) {
	if cfg.Provider == "" || cfg.Provider == config.SinkNone {
		return nil, nil
	}

	publisher, err := sink.Open(ctx, cfg, configDir, log)
	if err != nil {
		return nil, err
	}

	pool, err := dispatch.NewPool(&dispatch.Config{
		Publisher:  publisher,
		NumWorkers: cfg.Workers,
		QueueSize:  cfg.QueueSize,
		Logger:     log,
	})
	if err != nil {
		publisher.Close()
		return nil, err
	}

	r := &recording{
		recorder:  eventstream.NewRecorder(),
		publisher: publisher,
		pool:      pool,
		logger:    log,
	}
	log.Debug("recording stream events", "sink", cfg.Provider, "stream_id", r.recorder.StreamID())
	return r, nil
}

func (r *recording) record(ev responses.StreamingEvent) {
	if r == nil {
		return
	}

	rec, err := r.recorder.Record(ev)
	if err != nil {
		r.logger.Warn("could not build event record", "event_type", ev.EventType(), "error", err)
		return
	}
	r.pool.Enqueue(rec)
}

// close drains the queue and closes the sink. It returns the final pool
// statistics.
func (r *recording) close() dispatch.Stats {
	if r == nil {
		return dispatch.Stats{}
	}

	r.closeOnce.Do(func() {
		r.pool.Close()
		if err := r.publisher.Close(); err != nil {
			r.logger.Warn("closing event sink", "error", err)
		}
		r.stats = r.pool.Stats()
	})
	return r.stats
}

func (r *recording) streamID() string {
	if r == nil {
		return ""
	}
	return r.recorder.StreamID()
}
