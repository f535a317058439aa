package sse

import (
	"bytes"
	"unicode/utf8"
)

var (
	crlfDelimiter = []byte("\r\n\r\n")
	lfDelimiter   = []byte("\n\n")
)

// Extract finds the first complete frame in buf. It returns the frame text
// (without its delimiter) and the number of bytes the frame and delimiter
// occupy, so the caller can drain them. ok is false when buf does not yet hold
// a complete frame.
//
// "\r\n\r\n" is searched first and "\n\n" only when it is absent. A buffer that
// is not valid UTF-8 as a whole never yields a frame: the tail may be the
// first half of a multi-byte rune that the next chunk completes.
//
// Extract does not modify buf.
func Extract(buf []byte) (text string, consumed int, ok bool) {
	if !utf8.Valid(buf) {
		return "", 0, false
	}

	for _, delim := range [][]byte{crlfDelimiter, lfDelimiter} {
		if i := bytes.Index(buf, delim); i >= 0 {
			return string(buf[:i]), i + len(delim), true
		}
	}

	return "", 0, false
}
