// Package stream turns the body of a streamed Responses API call into a
// pull-based sequence of decoded events.
//
//	body io.Reader ─▶ buffer ─▶ sse.Extract ─▶ sse.Parse ─▶ responses.Decode ─▶ Recv()
//
// A Stream has one consumer and one suspension point: the Read on its source,
// which only happens when the buffer holds no complete frame.
package stream

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/papercomputeco/ores/pkg/responses"
	"github.com/papercomputeco/ores/pkg/sse"
)

const eventStreamMediaType = "text/event-stream"

// Stream decodes events from an SSE response body. Once Recv has returned an
// error, including io.EOF, the stream is done and every later call returns
// io.EOF without touching the source.
//
// A Stream is not safe for concurrent use.
type Stream struct {
	src    io.Reader
	buf    []byte
	chunk  []byte
	limit  int
	tee    io.Writer
	logger *slog.Logger

	// pending holds an error returned by the Read that also delivered the
	// last chunk. It surfaces once the buffered frames are drained.
	pending error
	done    bool
}

// New validates contentType and returns a Stream reading from body. An empty
// contentType is treated as a missing header.
func New(contentType string, body io.Reader, opts ...Option) (*Stream, error) {
	if !isEventStream(contentType) {
		return nil, &UnexpectedContentTypeError{Got: contentType, Present: contentType != ""}
	}

	c := newConfig(opts)
	return &Stream{
		src:    body,
		chunk:  make([]byte, c.chunkSize),
		limit:  c.maxBufferSize,
		tee:    c.tee,
		logger: c.logger,
	}, nil
}

// FromResponse is New over an HTTP response. The caller has already checked
// the status code. The body is left open on error.
func FromResponse(resp *http.Response, opts ...Option) (*Stream, error) {
	return New(resp.Header.Get("Content-Type"), resp.Body, opts...)
}

func isEventStream(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), eventStreamMediaType)
}

// Recv returns the next event. It returns io.EOF after the "[DONE]" frame or
// a clean end of the source. Any other error is terminal and returned once:
// *responses.DecodeError, *responses.TypeMismatchError, *EventTooLargeError
// or *TransportError.
//
// Bytes after the last complete frame at the end of the source are dropped.
func (s *Stream) Recv() (responses.StreamingEvent, error) {
	for !s.done {
		text, n, ok := sse.Extract(s.buf)
		if !ok {
			if err := s.fill(); err != nil {
				return nil, err
			}
			continue
		}

		s.buf = slices.Delete(s.buf, 0, n)

		frame := sse.Parse(text)
		if frame.Empty() {
			s.logger.Debug("skipping keep-alive frame")
			continue
		}

		if responses.IsDone(frame.Data) {
			s.logger.Debug("received end of stream sentinel")
			s.finish()
			return nil, io.EOF
		}

		ev, err := responses.Decode(frame)
		if err != nil {
			s.logger.Debug("decoding frame failed", "event", frame.Event, "error", err)
			s.finish()
			return nil, err
		}
		if ev == nil {
			continue
		}

		return ev, nil
	}

	return nil, io.EOF
}

// fill reads one chunk from the source into the buffer. It returns a non-nil
// error only when the stream is finished.
func (s *Stream) fill() error {
	if s.pending != nil {
		err := s.pending
		s.pending = nil
		return s.fail(err)
	}

	n, err := s.src.Read(s.chunk)
	if n > 0 {
		chunk := s.chunk[:n]
		s.copyToTee(chunk)

		s.buf = append(s.buf, chunk...)
		if len(s.buf) > s.limit {
			s.logger.Debug("event buffer limit exceeded", "limit", s.limit, "buffered", len(s.buf))
			s.finish()
			return &EventTooLargeError{Limit: s.limit}
		}

		s.pending = err
		return nil
	}

	if err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *Stream) fail(err error) error {
	if len(s.buf) > 0 {
		s.logger.Debug("dropping trailing partial frame", "bytes", len(s.buf))
	}
	s.finish()

	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	return &TransportError{Err: err}
}

func (s *Stream) copyToTee(chunk []byte) {
	if s.tee == nil {
		return
	}
	if _, err := s.tee.Write(chunk); err != nil {
		s.logger.Warn("tee write failed, disabling tee", "error", err)
		s.tee = nil
	}
}

func (s *Stream) finish() {
	s.done = true
	s.buf = nil
	s.pending = nil
}

// Done reports whether the stream has ended.
func (s *Stream) Done() bool {
	return s.done
}

// Close ends the stream and closes the source if it is an io.Closer.
// Buffered frames are discarded.
func (s *Stream) Close() error {
	s.finish()
	if c, ok := s.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
