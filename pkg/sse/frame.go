// Package sse provides the framing layer of the ores streaming decoder: it
// finds complete Server-Sent Events frames in a growing byte buffer and parses
// the SSE line grammar of a single frame.
//
// This package intentionally does NOT read from the network or own a buffer.
// The stream package drives it.
//
// Event stream format:
// https://html.spec.whatwg.org/multipage/server-sent-events.html
package sse

import "strings"

// Frame is one parsed SSE message, delimited by a blank line in the upstream
// byte stream.
type Frame struct {
	// Event is the trimmed value of the last "event:" line.
	Event string

	// HasEvent reports whether any "event:" line was present. An "event:"
	// line with an empty value still counts.
	HasEvent bool

	// Data is the contents of all "data:" lines joined with "\n".
	Data string

	// HasData reports whether any "data:" line was present.
	HasData bool
}

// Empty reports whether the frame carried neither data nor an event name.
// Servers send such frames (often only comments) as keep-alives.
func (f Frame) Empty() bool {
	return !f.HasData && !f.HasEvent
}

// Parse parses the text of a single frame, as returned by Extract.
//
// Lines starting with ':' are comments. "id:" and "retry:" are recognized and
// ignored, as is any other unrecognized line.
func Parse(text string) Frame {
	var (
		f    Frame
		data []string
	)

	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSuffix(line, "\r")

		switch {
		case line == "", strings.HasPrefix(line, ":"):
			continue

		case strings.HasPrefix(line, "event:"):
			f.Event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			f.HasEvent = true

		case strings.HasPrefix(line, "data:"):
			// At most one leading space is stripped.
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))

		case strings.HasPrefix(line, "id:"), strings.HasPrefix(line, "retry:"):
			// No last-event-id resumption.
		}
	}

	if len(data) > 0 {
		f.Data = strings.Join(data, "\n")
		f.HasData = true
	}

	return f
}
