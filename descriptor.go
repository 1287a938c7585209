package goshape

import (
	"github.com/goshape/goshape/i18n"
	js "github.com/goshape/goshape/jsonschema"
)

// Descriptor is the compiler's sole input: an ordered field list plus
// type-level modifiers. It is usually assembled by the fluent builder, by a
// declaration front end, or by hand for tests.
type Descriptor struct {
	// Name is the schema name the type registers under. Required unless the
	// type is inline-only.
	Name        string
	Description string

	// Fields in declaration order. Order is preserved into instance field
	// iteration and schema property order.
	Fields []Field

	// RenameAll derives serialized keys for fields without an explicit rename.
	RenameAll RenameRule

	// ReadOnlyAll / WriteOnlyAll apply the access mode to every field; they
	// combine with the per-field flags by OR.
	ReadOnlyAll  bool
	WriteOnlyAll bool

	Deprecated   bool
	ExternalDocs *js.ExternalDocs

	// Example produces an instance serialized into the schema's example. Not
	// allowed on templates with instantiations; those carry per-instantiation
	// examples.
	Example func() *Instance

	// DenyUnknownFields rejects input keys that no field consumes.
	DenyUnknownFields bool

	// Inline embeds the schema body at every use site instead of registering
	// it under Name. Not allowed on templates with instantiations.
	Inline bool
}

// Field describes one field of a record type.
type Field struct {
	// Ident is the field identifier in the declaring language.
	Ident string
	// Type is the field's schema type. Templates use TypeParam placeholders.
	Type SchemaType
	// Rename overrides the serialized key; empty derives it from Ident via the
	// type-level rename rule.
	Rename      string
	Description string

	ReadOnly  bool
	WriteOnly bool
	// Flatten merges the field's object representation into the parent instead
	// of nesting it under its own key. The field type must be a compiled
	// object type.
	Flatten bool
	// Skip excludes the field from input, output, and schema; it always takes
	// its type's zero value.
	Skip bool

	Default Default
	Rules   []Rule
}

// Default describes a field's defaulting behavior when its key is absent or
// null in the input.
type Default struct {
	kind    defaultKind
	factory func() any
}

type defaultKind int

const (
	defaultNone defaultKind = iota
	defaultZero
	defaultFactory
)

// ZeroDefault substitutes the field type's zero value.
func ZeroDefault() Default { return Default{kind: defaultZero} }

// FactoryDefault substitutes the value produced by fn.
func FactoryDefault(fn func() any) Default { return Default{kind: defaultFactory, factory: fn} }

// IsSet reports whether any default is configured.
func (d Default) IsSet() bool { return d.kind != defaultNone }

// compiledField is a field descriptor with modifiers resolved against the
// type-level configuration.
type compiledField struct {
	ident       string
	key         string
	typ         SchemaType
	description string
	readOnly    bool
	writeOnly   bool
	flatten     bool
	skip        bool
	hasDefault  bool
	zeroDefault bool
	defaultFn   func() any
	rules       []Rule
}

func configIssue(path, hint string) Issues {
	return Issues{{Path: path, Code: CodeInvalidDescriptor, Message: i18n.T(CodeInvalidDescriptor, nil), Hint: hint}}
}

// resolveFields normalizes the descriptor's field list, detecting
// configuration errors. These are programmer errors and abort compilation.
func resolveFields(d Descriptor) ([]compiledField, Issues) {
	out := make([]compiledField, 0, len(d.Fields))
	for _, f := range d.Fields {
		if f.Ident == "" {
			return nil, configIssue("/", "field without identifier")
		}
		if f.Type == nil {
			return nil, configIssue("/"+f.Ident, "field without type")
		}
		if f.Skip {
			out = append(out, compiledField{ident: f.Ident, typ: f.Type, skip: true})
			continue
		}
		readOnly := d.ReadOnlyAll || f.ReadOnly
		writeOnly := d.WriteOnlyAll || f.WriteOnly
		if readOnly && writeOnly {
			return nil, configIssue("/"+f.Ident, "read_only and write_only cannot be enabled both")
		}
		key := f.Rename
		if key == "" {
			key = d.RenameAll.Apply(f.Ident)
		}
		cf := compiledField{
			ident:       f.Ident,
			key:         key,
			typ:         f.Type,
			description: f.Description,
			readOnly:    readOnly,
			writeOnly:   writeOnly,
			flatten:     f.Flatten,
			rules:       f.Rules,
		}
		if f.Flatten {
			if f.Rename != "" {
				return nil, configIssue("/"+f.Ident, "flatten fields cannot carry their own serialized name")
			}
			if _, ok := f.Type.(objectBodySource); !ok && !isUnbound(f.Type) {
				return nil, configIssue("/"+f.Ident, "flatten requires an object field type")
			}
		}
		switch f.Default.kind {
		case defaultZero:
			typ := f.Type
			cf.hasDefault = true
			cf.zeroDefault = true
			cf.defaultFn = func() any { return typ.Zero() }
		case defaultFactory:
			if f.Default.factory == nil {
				return nil, configIssue("/"+f.Ident, "factory default without factory")
			}
			cf.hasDefault = true
			cf.defaultFn = f.Default.factory
		}
		out = append(out, cf)
	}
	return out, nil
}

// objectBodySource is implemented by compiled object types; flatten fields and
// the schema builder use it to pull inner property and required sets.
type objectBodySource interface {
	SchemaType
	objectSchemaBody(r *Registry) *js.Schema
}
