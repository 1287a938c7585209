package goshape

import (
	js "github.com/goshape/goshape/jsonschema"
)

// Builder assembles a Descriptor fluently and compiles it. It is sugar over
// Compile; front ends that already hold a Descriptor can call Compile
// directly.
type Builder struct {
	desc Descriptor
}

// FieldStep scopes modifier calls to the most recently added field.
type FieldStep struct {
	b *Builder
}

// NewObject starts a builder for a referenced type with the given schema name.
func NewObject(name string) *Builder {
	return &Builder{desc: Descriptor{Name: name}}
}

// NewInlineObject starts a builder for an inline-only type.
func NewInlineObject() *Builder {
	return &Builder{desc: Descriptor{Inline: true}}
}

// Doc sets the type description.
func (b *Builder) Doc(text string) *Builder {
	b.desc.Description = text
	return b
}

// RenameAll sets the rule deriving serialized keys from identifiers.
func (b *Builder) RenameAll(r RenameRule) *Builder {
	b.desc.RenameAll = r
	return b
}

// ReadOnlyAll marks every field read-only.
func (b *Builder) ReadOnlyAll() *Builder {
	b.desc.ReadOnlyAll = true
	return b
}

// WriteOnlyAll marks every field write-only.
func (b *Builder) WriteOnlyAll() *Builder {
	b.desc.WriteOnlyAll = true
	return b
}

// Deprecated marks the type deprecated in its schema.
func (b *Builder) Deprecated() *Builder {
	b.desc.Deprecated = true
	return b
}

// ExternalDocs links the schema to external documentation.
func (b *Builder) ExternalDocs(url, description string) *Builder {
	b.desc.ExternalDocs = &js.ExternalDocs{URL: url, Description: description}
	return b
}

// Example registers a function producing the schema's example instance.
func (b *Builder) Example(fn func() *Instance) *Builder {
	b.desc.Example = fn
	return b
}

// DenyUnknownFields rejects input keys no field consumes.
func (b *Builder) DenyUnknownFields() *Builder {
	b.desc.DenyUnknownFields = true
	return b
}

// Field appends a field with the given identifier and type.
func (b *Builder) Field(ident string, typ SchemaType) *FieldStep {
	b.desc.Fields = append(b.desc.Fields, Field{Ident: ident, Type: typ})
	return &FieldStep{b: b}
}

// Descriptor returns a copy of the assembled descriptor.
func (b *Builder) Descriptor() Descriptor {
	d := b.desc
	d.Fields = append([]Field(nil), b.desc.Fields...)
	return d
}

// Build compiles the assembled descriptor.
func (b *Builder) Build() (*ObjectType, error) { return Compile(b.Descriptor()) }

// MustBuild is like Build but panics on configuration errors.
func (b *Builder) MustBuild() *ObjectType { return MustCompile(b.Descriptor()) }

// Template validates the assembled descriptor as a generic template.
func (b *Builder) Template() (*Template, error) { return NewTemplate(b.Descriptor()) }

// MustTemplate is like Template but panics on configuration errors.
func (b *Builder) MustTemplate() *Template { return MustTemplate(b.Descriptor()) }

func (f *FieldStep) cur() *Field {
	return &f.b.desc.Fields[len(f.b.desc.Fields)-1]
}

// Rename sets the field's serialized key explicitly.
func (f *FieldStep) Rename(key string) *FieldStep {
	f.cur().Rename = key
	return f
}

// Doc sets the field description.
func (f *FieldStep) Doc(text string) *FieldStep {
	f.cur().Description = text
	return f
}

// ReadOnly marks the field read-only; it is never accepted from the wire.
func (f *FieldStep) ReadOnly() *FieldStep {
	f.cur().ReadOnly = true
	return f
}

// WriteOnly marks the field write-only; it never appears in output.
func (f *FieldStep) WriteOnly() *FieldStep {
	f.cur().WriteOnly = true
	return f
}

// Flatten merges the field's object representation into the parent.
func (f *FieldStep) Flatten() *FieldStep {
	f.cur().Flatten = true
	return f
}

// Skip excludes the field from input, output, and schema.
func (f *FieldStep) Skip() *FieldStep {
	f.cur().Skip = true
	return f
}

// DefaultZero substitutes the field type's zero value when the key is absent
// or null.
func (f *FieldStep) DefaultZero() *FieldStep {
	f.cur().Default = ZeroDefault()
	return f
}

// DefaultFunc substitutes the factory's value when the key is absent or null.
func (f *FieldStep) DefaultFunc(fn func() any) *FieldStep {
	f.cur().Default = FactoryDefault(fn)
	return f
}

// Rules appends validator rules run in order against present values.
func (f *FieldStep) Rules(rules ...Rule) *FieldStep {
	f.cur().Rules = append(f.cur().Rules, rules...)
	return f
}

// Field appends the next field, ending this field's modifier chain.
func (f *FieldStep) Field(ident string, typ SchemaType) *FieldStep {
	return f.b.Field(ident, typ)
}

// DenyUnknownFields rejects input keys no field consumes.
func (f *FieldStep) DenyUnknownFields() *FieldStep {
	f.b.DenyUnknownFields()
	return f
}

// Deprecated marks the type deprecated in its schema.
func (f *FieldStep) Deprecated() *FieldStep {
	f.b.Deprecated()
	return f
}

// ExternalDocs links the schema to external documentation.
func (f *FieldStep) ExternalDocs(url, description string) *FieldStep {
	f.b.ExternalDocs(url, description)
	return f
}

// Example registers a function producing the schema's example instance.
func (f *FieldStep) Example(fn func() *Instance) *FieldStep {
	f.b.Example(fn)
	return f
}

// Build compiles the assembled descriptor.
func (f *FieldStep) Build() (*ObjectType, error) { return f.b.Build() }

// MustBuild is like Build but panics on configuration errors.
func (f *FieldStep) MustBuild() *ObjectType { return f.b.MustBuild() }

// Template validates the assembled descriptor as a generic template.
func (f *FieldStep) Template() (*Template, error) { return f.b.Template() }

// MustTemplate is like Template but panics on configuration errors.
func (f *FieldStep) MustTemplate() *Template { return f.b.MustTemplate() }
