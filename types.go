package goshape

import (
	js "github.com/goshape/goshape/jsonschema"
)

// SchemaType is the capability interface implemented by every type that can
// appear in an API payload: primitives, compiled objects, and composites.
// The object compiler only ever talks to field types through this interface.
type SchemaType interface {
	// Name returns the stable schema name of the type.
	Name() string

	// IsRequired reports whether a value of this type must be present in the
	// input. Optional wrappers return false; everything else returns true.
	IsRequired() bool

	// SchemaRef returns either the inline schema body or a named reference.
	SchemaRef() SchemaRef

	// Register writes this type's named schema, and those of all types it
	// depends on, into the registry. Registration is idempotent.
	Register(r *Registry)

	// Zero returns the value used for skipped, read-only, and zero-defaulted
	// fields.
	Zero() any

	// Parse converts a decoded JSON value into this type's runtime value.
	// v == nil means the value was absent or JSON null.
	Parse(v any) (any, error)

	// Serialize converts a runtime value back into a decoded-JSON shape.
	// ok == false means the value is absent and the key must be omitted.
	Serialize(v any) (any, bool)
}

// SchemaRef is either an inline schema body or a reference to a named schema
// in the registry.
type SchemaRef struct {
	name string
	body *js.Schema
}

// InlineRef embeds a schema body at the use site.
func InlineRef(body *js.Schema) SchemaRef { return SchemaRef{body: body} }

// Reference points at a named schema shared via the registry.
func Reference(name string) SchemaRef { return SchemaRef{name: name} }

// IsReference reports whether the ref names a registered schema.
func (r SchemaRef) IsReference() bool { return r.name != "" }

// RefName returns the referenced schema name; empty for inline refs.
func (r SchemaRef) RefName() string { return r.name }

// Body returns the inline schema body; nil for references.
func (r SchemaRef) Body() *js.Schema { return r.body }

// Merge renders the ref as the property schema of a field, folding in the
// field-level patch (default, access flags, description, constraints). A
// reference with a non-empty patch becomes allOf[$ref, patch] so the shared
// schema body stays untouched.
func (r SchemaRef) Merge(patch *js.Schema) *js.Schema {
	if r.IsReference() {
		if patch.IsEmpty() {
			return js.RefTo(r.name)
		}
		return &js.Schema{AllOf: []*js.Schema{js.RefTo(r.name), patch}}
	}
	return r.body.Merge(patch)
}
