package testutils

import (
	"github.com/papercomputeco/ores/pkg/eventstream"
	"github.com/papercomputeco/ores/pkg/responses"
)

// NewTestDelta creates an output text delta event for testing
func NewTestDelta(seq int, text string) *responses.OutputTextDeltaEvent {
	return &responses.OutputTextDeltaEvent{
		Type:           responses.EventTypeOutputTextDelta,
		SequenceNumber: seq,
		ItemID:         "msg_test",
		Delta:          text,
		Logprobs:       []responses.LogProb{},
	}
}

// NewTestRecord wraps a delta event in a record of the given stream.
func NewTestRecord(streamID string, seq int) *eventstream.Record {
	rec, err := eventstream.NewRecord(streamID, "", NewTestDelta(seq, "x"))
	if err != nil {
		panic(err)
	}
	return rec
}
