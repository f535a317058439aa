package stream

import (
	"io"
	"iter"

	"github.com/papercomputeco/ores/pkg/responses"
)

// All returns an iterator over the remaining events. A terminal error other
// than io.EOF is yielded as the final pair with a nil event.
//
//	for ev, err := range s.All() {
//		if err != nil {
//			return err
//		}
//		...
//	}
func (s *Stream) All() iter.Seq2[responses.StreamingEvent, error] {
	return func(yield func(responses.StreamingEvent, error) bool) {
		for {
			ev, err := s.Recv()
			if err == io.EOF {
				return
			}
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}
