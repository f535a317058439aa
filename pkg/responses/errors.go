package responses

import (
	"errors"
	"fmt"
)

// ErrDone is returned by DecodeEvent for the "[DONE]" end-of-stream sentinel.
// It is a signal, not a failure: the stream ends cleanly after it.
var ErrDone = errors.New("end of stream")

// TypeMismatchError reports a frame whose SSE event name and JSON "type"
// member disagree.
type TypeMismatchError struct {
	Event string
	Type  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("event type mismatch: sse event %q, payload type %q", e.Event, e.Type)
}

// DecodeError reports a payload that could not be decoded into a streaming
// event. Payload is the frame data as received.
type DecodeError struct {
	Payload string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding streaming event: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
