package goshape

import (
	"bytes"
	"io"

	gojson "github.com/goccy/go-json"
)

// DecodeJSON decodes raw JSON into the decoded-any shape the schema types
// consume. Numbers are kept as json.Number to avoid precision loss before the
// field type decides how to interpret them.
func DecodeJSON(data []byte) (any, error) {
	return DecodeJSONReader(bytes.NewReader(data))
}

// DecodeJSONReader is DecodeJSON over an io.Reader.
func DecodeJSONReader(r io.Reader) (any, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return v, nil
}

// ParseJSON decodes raw JSON and parses it with the given type. An empty or
// null document parses like an absent value.
func ParseJSON(t SchemaType, data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return t.Parse(nil)
	}
	v, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return t.Parse(v)
}

// ParseJSONObject is ParseJSON for compiled object types, returning the typed
// instance.
func ParseJSONObject(o *ObjectType, data []byte) (*Instance, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return o.ParseObject(nil)
	}
	v, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return o.ParseObject(v)
}

// SerializeJSON serializes a runtime value through its type and encodes the
// result as JSON. Absent results encode as null.
func SerializeJSON(t SchemaType, v any) ([]byte, error) {
	sv, ok := t.Serialize(v)
	if !ok {
		sv = nil
	}
	return gojson.Marshal(sv)
}
