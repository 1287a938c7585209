// Package extern adapts existing Go struct types as schema field types. The
// schema body is derived by reflection, the codec by the JSON representation
// of the struct, so plain Go types can appear inside compiled descriptors
// without hand-written descriptors of their own.
package extern

import (
	gojson "github.com/goccy/go-json"
	invopop "github.com/invopop/jsonschema"

	goshape "github.com/goshape/goshape"
	"github.com/goshape/goshape/i18n"
	js "github.com/goshape/goshape/jsonschema"
)

// Type adapts the Go type T as a referenced schema type with the given name.
// T should be a struct (or a type with a JSON object representation); its
// schema is reflected once per registration.
func Type[T any](name string) goshape.SchemaType {
	return externType[T]{name: name}
}

type externType[T any] struct{ name string }

func (e externType[T]) Name() string                 { return e.name }
func (e externType[T]) IsRequired() bool             { return true }
func (e externType[T]) SchemaRef() goshape.SchemaRef { return goshape.Reference(e.name) }

func (e externType[T]) Register(r *goshape.Registry) {
	r.CreateSchema(e.name, func(*goshape.Registry) *js.Schema {
		return e.reflectSchema()
	})
}

// reflectSchema converts the reflected schema into the export model through
// its JSON form. Unknown reflected keywords are dropped on the way.
func (e externType[T]) reflectSchema() *js.Schema {
	reflector := invopop.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	var zero T
	reflected := reflector.Reflect(&zero)
	reflected.Version = ""
	b, err := gojson.Marshal(reflected)
	if err != nil {
		return js.New("object")
	}
	out := &js.Schema{}
	if err := gojson.Unmarshal(b, out); err != nil {
		return js.New("object")
	}
	return out
}

func (e externType[T]) Zero() any {
	var zero T
	return zero
}

func (e externType[T]) Parse(v any) (any, error) {
	if v == nil {
		return nil, goshape.Issues{{Path: "/", Code: goshape.CodeRequired, Message: i18n.T(goshape.CodeRequired, nil)}}
	}
	b, err := gojson.Marshal(v)
	if err != nil {
		return nil, goshape.Issues{{Path: "/", Code: goshape.CodeParseError, Message: err.Error(), Cause: err}}
	}
	var out T
	if err := gojson.Unmarshal(b, &out); err != nil {
		return nil, goshape.Issues{{Path: "/", Code: goshape.CodeInvalidType, Message: i18n.T(goshape.CodeInvalidType, nil), Hint: "expected " + e.name, Cause: err}}
	}
	return out, nil
}

func (e externType[T]) Serialize(v any) (any, bool) {
	b, err := gojson.Marshal(v)
	if err != nil {
		return nil, false
	}
	decoded, err := goshape.DecodeJSON(b)
	if err != nil {
		return nil, false
	}
	return decoded, true
}
