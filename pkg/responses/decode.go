package responses

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/papercomputeco/ores/pkg/sse"
)

// Done is the data of the frame that ends a stream.
const Done = "[DONE]"

// IsDone reports whether frame data is the end-of-stream sentinel.
func IsDone(data string) bool {
	return data == Done
}

// UnmarshalStreamingEvent decodes a JSON event object without any SSE
// context.
//
// A recognized "type" is decoded strictly: missing or malformed required
// members are an error, never an *UnknownEvent. An unrecognized "type" string
// yields an *UnknownEvent carrying the remaining members verbatim.
func UnmarshalStreamingEvent(data []byte) (StreamingEvent, error) {
	typ := gjson.GetBytes(data, "type")
	if typ.Type == gjson.String {
		if newEvent, ok := knownEvents[typ.Str]; ok {
			ev := newEvent()
			if err := json.Unmarshal(data, ev); err != nil {
				return nil, err
			}
			return ev, nil
		}
	}

	ev := &UnknownEvent{}
	if err := json.Unmarshal(data, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// Decode decodes the data of a parsed SSE frame, reconciling its event name
// with the payload's own "type". See DecodeEvent.
func Decode(f sse.Frame) (StreamingEvent, error) {
	return DecodeEvent(f.Event, f.HasEvent, f.Data)
}

// DecodeEvent decodes frame data into a streaming event.
//
// Empty data yields (nil, nil) and should be skipped. The "[DONE]" sentinel
// yields ErrDone. When hasName is set the SSE event name must agree with the
// payload "type", otherwise a *TypeMismatchError is returned. A payload
// without a "type" member takes its type from the event name.
//
// Any other failure is a *DecodeError carrying the raw payload.
func DecodeEvent(name string, hasName bool, data string) (StreamingEvent, error) {
	if data == "" {
		return nil, nil
	}
	if IsDone(data) {
		return nil, ErrDone
	}

	ev, err := UnmarshalStreamingEvent([]byte(data))
	if err == nil {
		if hasName && ev.EventType() != name {
			return nil, &TypeMismatchError{Event: name, Type: ev.EventType()}
		}
		return ev, nil
	}

	decodeErr := &DecodeError{Payload: data, Err: err}
	if !hasName {
		return nil, decodeErr
	}

	obj := gjson.Parse(data)
	if !gjson.Valid(data) || !obj.IsObject() {
		return nil, decodeErr
	}

	typ := obj.Get("type")
	switch {
	case !typ.Exists():
		return decodeWithType(name, data)

	case typ.Type == gjson.String && typ.Str != name:
		return nil, &TypeMismatchError{Event: name, Type: typ.Str}

	default:
		// The tag agrees with the event name, so a known type failed on some
		// other member. Surface that failure as is.
		return nil, decodeErr
	}
}

// decodeWithType retries a payload that has no "type" member with the SSE
// event name injected as its type.
func decodeWithType(name, data string) (StreamingEvent, error) {
	injected, err := sjson.SetBytes([]byte(data), "type", name)
	if err != nil {
		return nil, &DecodeError{Payload: data, Err: err}
	}

	ev, err := UnmarshalStreamingEvent(injected)
	if err != nil {
		return nil, &DecodeError{Payload: data, Err: err}
	}
	return ev, nil
}
