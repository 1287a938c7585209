// Package openapi exports a schema registry as OpenAPI 3 documents using the
// kin-openapi object model, for tooling that already speaks that dialect.
package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"
	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	goshape "github.com/goshape/goshape"
)

// Components converts every registered schema body into kin-openapi schema
// refs keyed by name.
func Components(reg *goshape.Registry) (openapi3.Schemas, error) {
	out := make(openapi3.Schemas, reg.Len())
	for _, name := range reg.Names() {
		body, ok := reg.Schema(name)
		if !ok {
			continue
		}
		b, err := gojson.Marshal(body)
		if err != nil {
			return nil, err
		}
		sref := &openapi3.SchemaRef{}
		if err := sref.UnmarshalJSON(b); err != nil {
			return nil, err
		}
		out[name] = sref
	}
	return out, nil
}

// Document wraps the registry's schemas into a minimal OpenAPI 3 document.
func Document(title, version string, reg *goshape.Registry) (*openapi3.T, error) {
	schemas, err := Components(reg)
	if err != nil {
		return nil, err
	}
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: title, Version: version},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: schemas,
		},
	}, nil
}

// MarshalJSON renders the document as JSON.
func MarshalJSON(doc *openapi3.T) ([]byte, error) {
	return doc.MarshalJSON()
}

// MarshalYAML renders the document as YAML via its JSON form.
func MarshalYAML(doc *openapi3.T) ([]byte, error) {
	b, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := gojson.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return yaml.Marshal(m)
}
