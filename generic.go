package goshape

import (
	js "github.com/goshape/goshape/jsonschema"
)

// TypeParam is a placeholder field type inside a template descriptor. It is
// replaced by a concrete SchemaType when the template is instantiated and
// must never survive into a compiled type.
func TypeParam(name string) SchemaType { return &typeParam{name: name} }

type typeParam struct{ name string }

func (p *typeParam) Name() string         { return p.name }
func (p *typeParam) IsRequired() bool     { return true }
func (p *typeParam) SchemaRef() SchemaRef { return InlineRef(&js.Schema{}) }
func (p *typeParam) Register(r *Registry) {}
func (p *typeParam) Zero() any            { return nil }

func (p *typeParam) Parse(v any) (any, error) {
	return nil, configIssue("/", "unbound type parameter "+p.name)
}

func (p *typeParam) Serialize(v any) (any, bool) { return nil, false }

func (p *typeParam) bindParams(b Binding) (SchemaType, error) {
	t, ok := b[p.name]
	if !ok {
		return nil, configIssue("/", "no binding for type parameter "+p.name)
	}
	return t, nil
}

// Binding maps template type-parameter names to concrete schema types.
type Binding map[string]SchemaType

// paramBound is implemented by types that can substitute type parameters in
// their element types.
type paramBound interface {
	bindParams(Binding) (SchemaType, error)
}

// bindType substitutes bindings through a field type. Types without
// parameters pass through unchanged.
func bindType(t SchemaType, b Binding) (SchemaType, error) {
	if pb, ok := t.(paramBound); ok {
		return pb.bindParams(b)
	}
	return t, nil
}

func isUnbound(t SchemaType) bool {
	switch tt := t.(type) {
	case *typeParam:
		return true
	case optionalType:
		return isUnbound(tt.inner)
	case arrayType:
		return isUnbound(tt.elem)
	case mapType:
		return isUnbound(tt.value)
	}
	return false
}

// Template is a generic record type: a descriptor whose field types may
// contain TypeParam placeholders. The descriptor is validated and normalized
// once; each instantiation binds the parameters and yields an independent
// compiled type identity.
type Template struct {
	desc   Descriptor
	fields []compiledField
}

// NewTemplate validates the shared descriptor. Inline emission and a
// template-level example are rejected: instantiations are always referenced
// and carry their own examples.
func NewTemplate(d Descriptor) (*Template, error) {
	if d.Inline {
		return nil, configIssue("/", "templates with instantiations cannot be inline")
	}
	if d.Example != nil {
		return nil, configIssue("/", "examples belong to instantiations, not the template")
	}
	fields, iss := resolveFields(d)
	if len(iss) > 0 {
		return nil, iss
	}
	return &Template{desc: d, fields: fields}, nil
}

// MustTemplate is like NewTemplate but panics on configuration errors.
func MustTemplate(d Descriptor) *Template {
	t, err := NewTemplate(d)
	if err != nil {
		panic(err)
	}
	return t
}

// Instantiation names one concrete specialization of a template.
type Instantiation struct {
	// Name is the schema name of the specialized type. Each instantiation
	// owns a distinct name and registry entry.
	Name string
	// Bind maps every type parameter used by the template to a concrete type.
	Bind Binding
	// Example optionally produces an instance serialized into this
	// instantiation's schema example. Examples never leak across
	// instantiations.
	Example func() *Instance
}

// Instantiate binds the template's parameters and returns the specialized
// compiled type. The shared field normalization is reused; only the binding
// and the identity differ per instantiation.
func (t *Template) Instantiate(inst Instantiation) (*ObjectType, error) {
	if inst.Name == "" {
		return nil, configIssue("/", "instantiations need a schema name")
	}
	fields := make([]compiledField, len(t.fields))
	copy(fields, t.fields)
	for i := range fields {
		bound, err := bindType(fields[i].typ, inst.Bind)
		if err != nil {
			return nil, err
		}
		if isUnbound(bound) {
			return nil, configIssue("/"+fields[i].ident, "unbound type parameter "+bound.Name())
		}
		if fields[i].flatten {
			if _, ok := bound.(objectBodySource); !ok {
				return nil, configIssue("/"+fields[i].ident, "flatten requires an object field type")
			}
		}
		if fields[i].zeroDefault {
			// zero defaults resolve against the bound type
			typ := bound
			fields[i].defaultFn = func() any { return typ.Zero() }
		}
		fields[i].typ = bound
	}
	return &ObjectType{
		name:         inst.Name,
		description:  t.desc.Description,
		deprecated:   t.desc.Deprecated,
		externalDocs: t.desc.ExternalDocs,
		example:      inst.Example,
		denyUnknown:  t.desc.DenyUnknownFields,
		fields:       fields,
	}, nil
}

// MustInstantiate is like Instantiate but panics on configuration errors.
func (t *Template) MustInstantiate(inst Instantiation) *ObjectType {
	ot, err := t.Instantiate(inst)
	if err != nil {
		panic(err)
	}
	return ot
}
