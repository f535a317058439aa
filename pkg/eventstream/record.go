package eventstream

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/papercomputeco/ores/pkg/responses"
)

const (
	// SchemaVersionV1 is the first version of the record schema.
	SchemaVersionV1 = 1

	// RecordTypeStreamEvent is the record type of a decoded streaming event.
	RecordTypeStreamEvent = "ores.stream.event"
)

// Record is a transport-neutral envelope around one decoded streaming event.
type Record struct {
	SchemaVersion int             `json:"schema_version"`
	RecordType    string          `json:"record_type"`
	ID            string          `json:"id"`
	EmittedAt     time.Time       `json:"emitted_at"`
	StreamID      string          `json:"stream_id"`
	ResponseID    string          `json:"response_id,omitempty"`
	Sequence      int64           `json:"sequence"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
}

// NewRecord wraps ev in a Record. When responseID is empty and ev is a
// lifecycle event, the id of its response is used.
func NewRecord(streamID, responseID string, ev responses.StreamingEvent) (*Record, error) {
	if ev == nil {
		return nil, fmt.Errorf("nil event")
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal %s event: %w", ev.EventType(), err)
	}

	if responseID == "" {
		responseID = gjson.GetBytes(payload, "response.id").String()
	}

	return &Record{
		SchemaVersion: SchemaVersionV1,
		RecordType:    RecordTypeStreamEvent,
		ID:            uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		StreamID:      streamID,
		ResponseID:    responseID,
		Sequence:      gjson.GetBytes(payload, "sequence_number").Int(),
		EventType:     ev.EventType(),
		Payload:       payload,
	}, nil
}

// Recorder builds the records of a single stream. Every record shares the
// recorder's stream id, and once a lifecycle event names the response, later
// records carry its id too.
type Recorder struct {
	streamID   string
	responseID string
}

func NewRecorder() *Recorder {
	return &Recorder{streamID: uuid.NewString()}
}

func (r *Recorder) StreamID() string {
	return r.streamID
}

func (r *Recorder) ResponseID() string {
	return r.responseID
}

// Record wraps ev and remembers the response id it reveals.
func (r *Recorder) Record(ev responses.StreamingEvent) (*Record, error) {
	rec, err := NewRecord(r.streamID, r.responseID, ev)
	if err != nil {
		return nil, err
	}
	r.responseID = rec.ResponseID
	return rec, nil
}
