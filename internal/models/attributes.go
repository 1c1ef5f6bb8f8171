package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AttrKind discriminates the shapes an attribute value can take.
type AttrKind int

const (
	// AttrString is a scalar value carried as text. Numbers and booleans
	// arriving on the wire are kept as their literal token text ("42", "true").
	AttrString AttrKind = iota
	// AttrStringList is a sequence whose elements are stringified independently.
	AttrStringList
	// AttrMap is a nested mapping of string keys to attribute values.
	AttrMap
)

// AttrValue is the tagged union carried in a listing's attribute bag. The
// schema of the bag is intentionally unbounded, so every value is one of a
// scalar string, a list of strings, or a nested mapping.
type AttrValue struct {
	Kind AttrKind
	Str  string
	List []string
	Map  AttributeMap
}

// StringValue builds a scalar attribute value.
func StringValue(s string) AttrValue {
	return AttrValue{Kind: AttrString, Str: s}
}

// ListValue builds a list attribute value.
func ListValue(items ...string) AttrValue {
	return AttrValue{Kind: AttrStringList, List: items}
}

// MapValue builds a nested-mapping attribute value.
func MapValue(m AttributeMap) AttrValue {
	return AttrValue{Kind: AttrMap, Map: m}
}

// Text returns the scalar projection of the value. Lists and nested mappings
// fall back to their compact JSON encoding.
func (v AttrValue) Text() string {
	switch v.Kind {
	case AttrString:
		return v.Str
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// MarshalJSON encodes the union as its natural JSON shape: a string, an array
// of strings, or an object.
func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AttrStringList:
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	case AttrMap:
		if v.Map == nil {
			return json.Marshal(AttributeMap{})
		}
		return json.Marshal(v.Map)
	default:
		return json.Marshal(v.Str)
	}
}

// UnmarshalJSON decodes an arbitrary JSON value into the union. Strings are
// taken verbatim, arrays become lists of stringified elements, objects recurse,
// and any other scalar keeps its literal token text.
func (v *AttrValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty attribute value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return err
		}
		list := make([]string, 0, len(elems))
		for _, e := range elems {
			list = append(list, stringifyScalar(e))
		}
		*v = AttrValue{Kind: AttrStringList, List: list}
	case '{':
		var m AttributeMap
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*v = MapValue(m)
	default:
		// Number, boolean or null: keep the raw token text.
		*v = StringValue(string(data))
	}
	return nil
}

// stringifyScalar projects a raw JSON value to text: strings are unquoted,
// everything else keeps its compact source form.
func stringifyScalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

// AttributeMap is the open mapping of attribute keys to heterogeneous values.
type AttributeMap map[string]AttrValue

// UnmarshalJSON decodes a JSON object into the map, decoding each value
// through the AttrValue union.
func (m *AttributeMap) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(AttributeMap, len(raw))
	for k, r := range raw {
		var v AttrValue
		if err := json.Unmarshal(r, &v); err != nil {
			return fmt.Errorf("attribute %q: %w", k, err)
		}
		out[k] = v
	}
	*m = out
	return nil
}

// Copy returns a shallow copy of the map. A nil receiver yields an empty map.
func (m AttributeMap) Copy() AttributeMap {
	out := make(AttributeMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ToStringMap projects every value to its scalar text form. Used for the
// prediction-queue message details.
func (m AttributeMap) ToStringMap() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v.Text()
	}
	return out
}
