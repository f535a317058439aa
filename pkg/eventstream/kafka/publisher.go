// Package kafka publishes stream records to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/papercomputeco/ores/pkg/eventstream"
	"github.com/papercomputeco/ores/pkg/logger"
)

const defaultBatchTimeout = 10 * time.Millisecond

// Header keys set on every message.
const (
	HeaderRecordType    = "ores-record-type"
	HeaderEventType     = "ores-event-type"
	HeaderSchemaVersion = "ores-schema-version"
)

var (
	ErrNoBrokers = errors.New("kafka: at least one broker is required")
	ErrNoTopic   = errors.New("kafka: topic is required")
)

// Config configures a Publisher.
type Config struct {
	Brokers  []string
	Topic    string
	ClientID string

	// BatchTimeout bounds how long the writer waits to fill a batch.
	// Zero means 10ms.
	BatchTimeout time.Duration

	Logger *slog.Logger
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes one message per record. Messages are keyed by stream id
// so that the records of a stream land on one partition in order.
type Publisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

func NewPublisher(cfg Config) (*Publisher, error) {
	var brokers []string
	for _, b := range cfg.Brokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	topic := strings.TrimSpace(cfg.Topic)
	if topic == "" {
		return nil, ErrNoTopic
	}

	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = defaultBatchTimeout
	}

	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		BatchTimeout:           batchTimeout,
		AllowAutoTopicCreation: true,
	}
	if cfg.ClientID != "" {
		w.Transport = &kafkago.Transport{ClientID: cfg.ClientID}
	}

	return newPublisher(w, topic, cfg.Logger), nil
}

func newPublisher(w messageWriter, topic string, log *slog.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{
		writer: w,
		topic:  topic,
		logger: log.With("sink", "kafka", "topic", topic),
	}
}

// Publish writes record synchronously and returns once the broker acks it.
func (p *Publisher) Publish(ctx context.Context, record *eventstream.Record) error {
	if record == nil {
		return eventstream.ErrNilRecord
	}

	msg, err := toMessage(record)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing record %s to %s: %w", record.ID, p.topic, err)
	}

	p.logger.Debug("published record",
		"record_id", record.ID,
		"event_type", record.EventType,
	)
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toMessage(record *eventstream.Record) (kafkago.Message, error) {
	value, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("marshal record %s: %w", record.ID, err)
	}

	return kafkago.Message{
		Key:   []byte(record.StreamID),
		Value: value,
		Time:  record.EmittedAt,
		Headers: []kafkago.Header{
			{Key: HeaderRecordType, Value: []byte(record.RecordType)},
			{Key: HeaderEventType, Value: []byte(record.EventType)},
			{Key: HeaderSchemaVersion, Value: []byte(strconv.Itoa(record.SchemaVersion))},
		},
	}, nil
}
