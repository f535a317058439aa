package responses

import (
	"encoding/json"
	"errors"
	"maps"

	"github.com/tidwall/gjson"
)

// UnknownEvent holds an event whose type this package does not recognize.
// Fields keeps every member other than "type" as raw JSON, so re-encoding the
// event reproduces the original object.
type UnknownEvent struct {
	Type   string
	Fields map[string]json.RawMessage
}

func (e *UnknownEvent) EventType() string { return e.Type }

func (e UnknownEvent) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(e.Fields)+1)
	maps.Copy(out, e.Fields)

	typ, err := json.Marshal(e.Type)
	if err != nil {
		return nil, err
	}
	out["type"] = typ

	return json.Marshal(out)
}

func (e *UnknownEvent) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	typ := gjson.GetBytes(data, "type")
	if typ.Type != gjson.String {
		return errMissingType
	}

	delete(fields, "type")
	e.Type = typ.Str
	e.Fields = fields
	return nil
}

var errMissingType = errors.New(`missing field "type"`)
