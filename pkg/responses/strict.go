package responses

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// decodeStrict unmarshals data into v and then checks that every listed
// top-level member is present and not null. v must not be a type whose
// UnmarshalJSON calls decodeStrict on itself; callers pass an alias type.
func decodeStrict(data []byte, v any, required ...string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	return requireFields(data, required...)
}

// requireFields reports the first required member that is absent or null in
// the JSON object held by data.
func requireFields(data []byte, required ...string) error {
	for _, name := range required {
		res := gjson.GetBytes(data, gjson.Escape(name))
		if !res.Exists() {
			return fmt.Errorf("missing field %q", name)
		}
		if res.Type == gjson.Null {
			return fmt.Errorf("invalid null for field %q", name)
		}
	}
	return nil
}

// requirePresent is requireFields for members that may legitimately be null,
// such as free-form JSON values.
func requirePresent(data []byte, required ...string) error {
	for _, name := range required {
		if !gjson.GetBytes(data, gjson.Escape(name)).Exists() {
			return fmt.Errorf("missing field %q", name)
		}
	}
	return nil
}

// decodeTagged decodes a member of a type-tagged union. variants maps each
// recognized tag to its required members; an unrecognized tag is an error.
func decodeTagged(data []byte, v any, union string, variants map[string][]string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}

	tag := gjson.GetBytes(data, "type")
	if !tag.Exists() {
		return fmt.Errorf("%s: missing field %q", union, "type")
	}
	if tag.Type != gjson.String {
		return fmt.Errorf("%s: invalid type tag %s", union, tag.Raw)
	}

	required, ok := variants[tag.Str]
	if !ok {
		return fmt.Errorf("%s: unknown variant %q", union, tag.Str)
	}

	if err := requireFields(data, required...); err != nil {
		return fmt.Errorf("%s %q: %w", union, tag.Str, err)
	}
	return nil
}
