package jsonschema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Schema is the JSON Schema subset emitted for API documentation. Properties
// keep their declaration order, so the serialized document mirrors the field
// order of the type that produced it.
type Schema struct {
	// Reference. When set, consumers ignore all other fields.
	Ref string `json:"$ref,omitempty"`

	// Core
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
	Example     any    `json:"example,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
	ReadOnly    bool   `json:"readOnly,omitempty"`
	WriteOnly   bool   `json:"writeOnly,omitempty"`

	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty"`

	// Object
	Required             []string                                `json:"required,omitempty"`
	Properties           *orderedmap.OrderedMap[string, *Schema] `json:"properties,omitempty"`
	AdditionalProperties any                                     `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Composition
	AllOf []*Schema `json:"allOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	Enum  []any     `json:"enum,omitempty"`

	// Validation
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty"`
	MinLength        *uint64  `json:"minLength,omitempty"`
	MaxLength        *uint64  `json:"maxLength,omitempty"`
	Pattern          string   `json:"pattern,omitempty"`
	MinItems         *uint64  `json:"minItems,omitempty"`
	MaxItems         *uint64  `json:"maxItems,omitempty"`
	UniqueItems      bool     `json:"uniqueItems,omitempty"`
	MinProperties    *uint64  `json:"minProperties,omitempty"`
	MaxProperties    *uint64  `json:"maxProperties,omitempty"`
}

// ExternalDocs links a schema to external documentation.
type ExternalDocs struct {
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

// New returns a schema of the given JSON type.
func New(typ string) *Schema { return &Schema{Type: typ} }

// RefTo returns a reference schema pointing at a named component schema.
func RefTo(name string) *Schema { return &Schema{Ref: RefPath(name)} }

// RefPath renders the component pointer for a schema name.
func RefPath(name string) string { return "#/components/schemas/" + name }

// SetProperty appends a named property, allocating the ordered map on first use.
func (s *Schema) SetProperty(name string, ps *Schema) {
	if s.Properties == nil {
		s.Properties = orderedmap.New[string, *Schema]()
	}
	s.Properties.Set(name, ps)
}

// Property looks up a named property.
func (s *Schema) Property(name string) (*Schema, bool) {
	if s.Properties == nil {
		return nil, false
	}
	return s.Properties.Get(name)
}

// IsEmpty reports whether the schema carries no information at all. Merging an
// empty patch into a reference keeps the plain $ref form.
func (s *Schema) IsEmpty() bool {
	if s == nil {
		return true
	}
	return s.Ref == "" && s.Type == "" && s.Format == "" && s.Description == "" &&
		s.Default == nil && s.Example == nil && !s.Deprecated && !s.ReadOnly && !s.WriteOnly &&
		s.ExternalDocs == nil && len(s.Required) == 0 && (s.Properties == nil || s.Properties.Len() == 0) &&
		s.AdditionalProperties == nil && s.Items == nil && len(s.AllOf) == 0 && len(s.OneOf) == 0 &&
		len(s.Enum) == 0 && s.Minimum == nil && s.Maximum == nil && s.ExclusiveMinimum == nil &&
		s.ExclusiveMaximum == nil && s.MultipleOf == nil && s.MinLength == nil && s.MaxLength == nil &&
		s.Pattern == "" && s.MinItems == nil && s.MaxItems == nil && !s.UniqueItems &&
		s.MinProperties == nil && s.MaxProperties == nil
}

// Merge returns a copy of s with the non-empty fields of patch applied on top.
// Required and Properties are appended rather than replaced; scalar fields from
// the patch win when set.
func (s *Schema) Merge(patch *Schema) *Schema {
	out := s.Clone()
	if patch == nil {
		return out
	}
	if patch.Type != "" {
		out.Type = patch.Type
	}
	if patch.Format != "" {
		out.Format = patch.Format
	}
	if patch.Description != "" {
		out.Description = patch.Description
	}
	if patch.Default != nil {
		out.Default = patch.Default
	}
	if patch.Example != nil {
		out.Example = patch.Example
	}
	if patch.Deprecated {
		out.Deprecated = true
	}
	if patch.ReadOnly {
		out.ReadOnly = true
	}
	if patch.WriteOnly {
		out.WriteOnly = true
	}
	if patch.ExternalDocs != nil {
		out.ExternalDocs = patch.ExternalDocs
	}
	out.Required = append(out.Required, patch.Required...)
	if patch.Properties != nil {
		for p := patch.Properties.Oldest(); p != nil; p = p.Next() {
			out.SetProperty(p.Key, p.Value)
		}
	}
	if patch.AdditionalProperties != nil {
		out.AdditionalProperties = patch.AdditionalProperties
	}
	if patch.Items != nil {
		out.Items = patch.Items
	}
	out.AllOf = append(out.AllOf, patch.AllOf...)
	out.OneOf = append(out.OneOf, patch.OneOf...)
	if len(patch.Enum) > 0 {
		out.Enum = patch.Enum
	}
	if patch.Minimum != nil {
		out.Minimum = patch.Minimum
	}
	if patch.Maximum != nil {
		out.Maximum = patch.Maximum
	}
	if patch.ExclusiveMinimum != nil {
		out.ExclusiveMinimum = patch.ExclusiveMinimum
	}
	if patch.ExclusiveMaximum != nil {
		out.ExclusiveMaximum = patch.ExclusiveMaximum
	}
	if patch.MultipleOf != nil {
		out.MultipleOf = patch.MultipleOf
	}
	if patch.MinLength != nil {
		out.MinLength = patch.MinLength
	}
	if patch.MaxLength != nil {
		out.MaxLength = patch.MaxLength
	}
	if patch.Pattern != "" {
		out.Pattern = patch.Pattern
	}
	if patch.MinItems != nil {
		out.MinItems = patch.MinItems
	}
	if patch.MaxItems != nil {
		out.MaxItems = patch.MaxItems
	}
	if patch.UniqueItems {
		out.UniqueItems = true
	}
	if patch.MinProperties != nil {
		out.MinProperties = patch.MinProperties
	}
	if patch.MaxProperties != nil {
		out.MaxProperties = patch.MaxProperties
	}
	return out
}

// Clone returns a copy of s with its Required slice and Properties map
// duplicated; nested schemas are shared.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return &Schema{}
	}
	out := *s
	if s.Required != nil {
		out.Required = append([]string(nil), s.Required...)
	}
	if s.Properties != nil {
		props := orderedmap.New[string, *Schema]()
		for p := s.Properties.Oldest(); p != nil; p = p.Next() {
			props.Set(p.Key, p.Value)
		}
		out.Properties = props
	}
	if s.AllOf != nil {
		out.AllOf = append([]*Schema(nil), s.AllOf...)
	}
	if s.OneOf != nil {
		out.OneOf = append([]*Schema(nil), s.OneOf...)
	}
	return &out
}
