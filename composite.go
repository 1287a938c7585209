package goshape

import (
	"strconv"

	js "github.com/goshape/goshape/jsonschema"
)

// Optional wraps a schema type so that absent and null values parse to nil
// instead of failing. Optional fields are never required and empty values are
// omitted from serialized output.
func Optional(inner SchemaType) SchemaType { return optionalType{inner: inner} }

type optionalType struct{ inner SchemaType }

func (o optionalType) Name() string         { return "optional<" + o.inner.Name() + ">" }
func (o optionalType) IsRequired() bool     { return false }
func (o optionalType) SchemaRef() SchemaRef { return o.inner.SchemaRef() }
func (o optionalType) Register(r *Registry) { o.inner.Register(r) }
func (o optionalType) Zero() any            { return nil }

func (o optionalType) Parse(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return o.inner.Parse(v)
}

func (o optionalType) Serialize(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	return o.inner.Serialize(v)
}

func (o optionalType) bindParams(b Binding) (SchemaType, error) {
	inner, err := bindType(o.inner, b)
	if err != nil {
		return nil, err
	}
	return optionalType{inner: inner}, nil
}

// ArrayOf returns the array schema type with the given element type.
func ArrayOf(elem SchemaType) SchemaType { return arrayType{elem: elem} }

type arrayType struct{ elem SchemaType }

func (a arrayType) Name() string     { return "array<" + a.elem.Name() + ">" }
func (a arrayType) IsRequired() bool { return true }

func (a arrayType) SchemaRef() SchemaRef {
	s := js.New("array")
	s.Items = a.elem.SchemaRef().Merge(&js.Schema{})
	return InlineRef(s)
}

func (a arrayType) Register(r *Registry) { a.elem.Register(r) }
func (a arrayType) Zero() any            { return []any{} }

func (a arrayType) Parse(v any) (any, error) {
	if v == nil {
		return nil, missingIssue()
	}
	in, ok := v.([]any)
	if !ok {
		return nil, typeIssue("array")
	}
	out := make([]any, 0, len(in))
	for i, item := range in {
		pv, err := a.elem.Parse(item)
		if err != nil {
			return nil, rebaseIssues(strconv.Itoa(i), err)
		}
		out = append(out, pv)
	}
	return out, nil
}

func (a arrayType) Serialize(v any) (any, bool) {
	in, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]any, 0, len(in))
	for _, item := range in {
		sv, ok := a.elem.Serialize(item)
		if !ok {
			sv = nil
		}
		out = append(out, sv)
	}
	return out, true
}

func (a arrayType) bindParams(b Binding) (SchemaType, error) {
	elem, err := bindType(a.elem, b)
	if err != nil {
		return nil, err
	}
	return arrayType{elem: elem}, nil
}

// MapOf returns the string-keyed map schema type with the given value type.
func MapOf(value SchemaType) SchemaType { return mapType{value: value} }

type mapType struct{ value SchemaType }

func (m mapType) Name() string     { return "map<string, " + m.value.Name() + ">" }
func (m mapType) IsRequired() bool { return true }

func (m mapType) SchemaRef() SchemaRef {
	s := js.New("object")
	s.AdditionalProperties = m.value.SchemaRef().Merge(&js.Schema{})
	return InlineRef(s)
}

func (m mapType) Register(r *Registry) { m.value.Register(r) }
func (m mapType) Zero() any            { return map[string]any{} }

func (m mapType) Parse(v any) (any, error) {
	if v == nil {
		return nil, missingIssue()
	}
	in, ok := v.(map[string]any)
	if !ok {
		return nil, typeIssue("object")
	}
	out := make(map[string]any, len(in))
	for k, item := range in {
		pv, err := m.value.Parse(item)
		if err != nil {
			return nil, rebaseIssues(k, err)
		}
		out[k] = pv
	}
	return out, nil
}

func (m mapType) Serialize(v any) (any, bool) {
	in, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(in))
	for k, item := range in {
		sv, ok := m.value.Serialize(item)
		if !ok {
			continue
		}
		out[k] = sv
	}
	return out, true
}

func (m mapType) bindParams(b Binding) (SchemaType, error) {
	value, err := bindType(m.value, b)
	if err != nil {
		return nil, err
	}
	return mapType{value: value}, nil
}
