package stream

import "fmt"

// UnexpectedContentTypeError is returned by New when the response is not an
// event stream. No bytes of the body are read.
type UnexpectedContentTypeError struct {
	// Got is the declared Content-Type, empty when Present is false.
	Got     string
	Present bool
}

func (e *UnexpectedContentTypeError) Error() string {
	if !e.Present {
		return "unexpected content type: missing Content-Type header"
	}
	return fmt.Sprintf("unexpected content type: %q", e.Got)
}

// EventTooLargeError is the final item of a stream whose unparsed buffer grew
// past the limit without completing a frame.
type EventTooLargeError struct {
	Limit int
}

func (e *EventTooLargeError) Error() string {
	return fmt.Sprintf("event exceeds maximum size of %d bytes", e.Limit)
}

// TransportError wraps a failure of the underlying byte source.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("reading event stream: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
