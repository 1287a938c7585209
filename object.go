package goshape

import (
	"sort"

	"github.com/goshape/goshape/i18n"
	js "github.com/goshape/goshape/jsonschema"
)

// ObjectType is a compiled record type: the parser, serializer, and schema
// builder produced from one Descriptor. It implements SchemaType so compiled
// objects nest as field types of other objects.
type ObjectType struct {
	name         string
	description  string
	deprecated   bool
	externalDocs *js.ExternalDocs
	example      func() *Instance
	denyUnknown  bool
	inline       bool
	fields       []compiledField
}

// Compile transforms a Descriptor into its runtime artifacts. Configuration
// errors (conflicting access modes, flatten on a non-object type, missing
// names) are reported here and never at parse time.
func Compile(d Descriptor) (*ObjectType, error) {
	if d.Name == "" && !d.Inline {
		return nil, configIssue("/", "referenced types need a schema name")
	}
	fields, iss := resolveFields(d)
	if len(iss) > 0 {
		return nil, iss
	}
	for _, f := range fields {
		if isUnbound(f.typ) {
			return nil, configIssue("/"+f.ident, "unbound type parameter; compile via a template instantiation")
		}
	}
	return &ObjectType{
		name:         d.Name,
		description:  d.Description,
		deprecated:   d.Deprecated,
		externalDocs: d.ExternalDocs,
		example:      d.Example,
		denyUnknown:  d.DenyUnknownFields,
		inline:       d.Inline,
		fields:       fields,
	}, nil
}

// MustCompile is like Compile but panics on configuration errors.
func MustCompile(d Descriptor) *ObjectType {
	ot, err := Compile(d)
	if err != nil {
		panic(err)
	}
	return ot
}

// Name returns the schema name.
func (o *ObjectType) Name() string { return o.name }

// IsRequired reports that object values must be present in input.
func (o *ObjectType) IsRequired() bool { return true }

// FieldIdents returns the field identifiers in declaration order, skip fields
// included.
func (o *ObjectType) FieldIdents() []string {
	idents := make([]string, 0, len(o.fields))
	for _, f := range o.fields {
		idents = append(idents, f.ident)
	}
	return idents
}

// SchemaRef returns an inline body for inline types and a named reference
// otherwise.
func (o *ObjectType) SchemaRef() SchemaRef {
	if o.inline {
		body := o.objectSchemaBody(nil)
		o.applyExample(body)
		return InlineRef(body)
	}
	return Reference(o.name)
}

// Register writes the schema into the registry, registering every field
// type's own named schemas first so nested references resolve before the
// parent body is finalized. Registration is idempotent; inline types only
// propagate to their field types.
func (o *ObjectType) Register(r *Registry) {
	if o.inline {
		o.registerFields(r)
		return
	}
	r.CreateSchema(o.name, func(r *Registry) *js.Schema {
		o.registerFields(r)
		body := o.objectSchemaBody(r)
		o.applyExample(body)
		return body
	})
}

func (o *ObjectType) registerFields(r *Registry) {
	for _, f := range o.fields {
		if f.skip {
			continue
		}
		f.typ.Register(r)
	}
}

func (o *ObjectType) applyExample(body *js.Schema) {
	if o.example == nil {
		return
	}
	if ev, ok := o.Serialize(o.example()); ok {
		body.Example = ev
	}
}

// Zero returns an instance with every field set to its type's zero value.
func (o *ObjectType) Zero() any {
	values := make(map[string]any, len(o.fields))
	for _, f := range o.fields {
		values[f.ident] = f.typ.Zero()
	}
	return &Instance{typ: o, values: values}
}

// Parse implements SchemaType by delegating to ParseObject.
func (o *ObjectType) Parse(v any) (any, error) {
	inst, err := o.ParseObject(v)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// ParseObject parses a decoded JSON value into an instance. A nil input is
// treated as an empty object; anything else that is not an object fails with
// invalid_type. Fields are consumed in declaration order.
func (o *ObjectType) ParseObject(v any) (*Instance, error) {
	var obj map[string]any
	switch t := v.(type) {
	case nil:
		obj = map[string]any{}
	case map[string]any:
		// working copy; non-flatten fields consume keys from it
		obj = make(map[string]any, len(t))
		for k, val := range t {
			obj[k] = val
		}
	default:
		return nil, Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected object"}}
	}

	values := make(map[string]any, len(o.fields))
	for _, f := range o.fields {
		switch {
		case f.skip:
			values[f.ident] = f.typ.Zero()
		case f.readOnly:
			if _, present := obj[f.key]; present {
				return nil, Issues{{Path: "/" + f.key, Code: CodeReadOnly, Message: i18n.T(CodeReadOnly, nil)}}
			}
			values[f.ident] = f.typ.Zero()
		case f.flatten:
			// the flattened type reads a copy of the remaining object and
			// consumes nothing from it
			shared := make(map[string]any, len(obj))
			for k, val := range obj {
				shared[k] = val
			}
			fv, err := f.typ.Parse(shared)
			if err != nil {
				return nil, err
			}
			values[f.ident] = fv
		default:
			raw, present := obj[f.key]
			delete(obj, f.key)
			if f.hasDefault && (!present || raw == nil) {
				values[f.ident] = f.defaultFn()
				continue
			}
			fv, err := f.typ.Parse(raw)
			if err != nil {
				return nil, rebaseIssues(f.key, err)
			}
			for _, rule := range f.rules {
				if err := rule.Check(fv); err != nil {
					return nil, rebaseIssues(f.key, err)
				}
			}
			values[f.ident] = fv
		}
	}

	if o.denyUnknown && len(obj) > 0 {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, Issues{{Path: "/" + keys[0], Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil)}}
	}
	return &Instance{typ: o, values: values}, nil
}

// Serialize implements SchemaType. v must be an *Instance; the result is a
// JSON object in decoded form. Write-only and skip fields are omitted;
// flattened fields merge their entries into the parent with later writers
// overwriting earlier ones.
func (o *ObjectType) Serialize(v any) (any, bool) {
	inst, ok := v.(*Instance)
	if !ok || inst == nil {
		return nil, false
	}
	out := make(map[string]any, len(o.fields))
	for _, f := range o.fields {
		if f.skip || f.writeOnly {
			continue
		}
		if f.flatten {
			if sv, ok := f.typ.Serialize(inst.values[f.ident]); ok {
				if m, isObj := sv.(map[string]any); isObj {
					for k, val := range m {
						out[k] = val
					}
				}
			}
			continue
		}
		if sv, ok := f.typ.Serialize(inst.values[f.ident]); ok {
			out[f.key] = sv
		}
	}
	return out, true
}

// objectSchemaBody builds the schema body: required names, per-field property
// schemas merged with their patches, and the type-level metadata. Flatten
// fields contribute their inner type's properties and required names instead
// of a property of their own. The registry is only consulted by nested
// flatten bodies and may be nil for inline emission.
func (o *ObjectType) objectSchemaBody(r *Registry) *js.Schema {
	s := js.New("object")
	s.Description = o.description
	s.Deprecated = o.deprecated
	s.ExternalDocs = o.externalDocs
	for _, f := range o.fields {
		if f.skip {
			continue
		}
		if f.flatten {
			inner, ok := f.typ.(objectBodySource)
			if !ok {
				continue
			}
			body := inner.objectSchemaBody(r)
			if body.Properties != nil {
				for p := body.Properties.Oldest(); p != nil; p = p.Next() {
					s.SetProperty(p.Key, p.Value)
				}
			}
			s.Required = append(s.Required, body.Required...)
			continue
		}
		patch := &js.Schema{
			Description: f.description,
			ReadOnly:    f.readOnly,
			WriteOnly:   f.writeOnly,
		}
		if f.hasDefault {
			if dv, ok := f.typ.Serialize(f.defaultFn()); ok {
				patch.Default = dv
			}
		}
		for _, rule := range f.rules {
			rule.Patch(patch)
		}
		s.SetProperty(f.key, f.typ.SchemaRef().Merge(patch))
		if f.typ.IsRequired() && !f.hasDefault {
			s.Required = append(s.Required, f.key)
		}
	}
	if o.denyUnknown {
		s.AdditionalProperties = false
	}
	return s
}

// Instance holds a parsed object's field values keyed by field identifier.
type Instance struct {
	typ    *ObjectType
	values map[string]any
}

// NewInstance returns an instance of o with every field at its zero value,
// ready to be populated via Set and serialized.
func (o *ObjectType) NewInstance() *Instance {
	return o.Zero().(*Instance)
}

// Type returns the instance's compiled type.
func (in *Instance) Type() *ObjectType { return in.typ }

// Get returns the value of the field with the given identifier.
func (in *Instance) Get(ident string) any { return in.values[ident] }

// Set assigns a field value and returns the instance for chaining.
func (in *Instance) Set(ident string, v any) *Instance {
	in.values[ident] = v
	return in
}

// Values returns a copy of the field values keyed by identifier.
func (in *Instance) Values() map[string]any {
	out := make(map[string]any, len(in.values))
	for k, v := range in.values {
		out[k] = v
	}
	return out
}
