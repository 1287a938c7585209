package goshape_test

import (
	"testing"

	goshape "github.com/goshape/goshape"
)

// Type-level modifiers stay reachable after the chain has moved into field
// scope, so a builder chain never has to order them before the first Field.
func TestBuilder_TypeModifiersAfterField(t *testing.T) {
	ot := goshape.NewObject("Doc").
		Field("title", goshape.String()).
		DenyUnknownFields().
		Deprecated().
		ExternalDocs("https://docs.example.com/doc", "reference").
		MustBuild()

	_, err := ot.ParseObject(map[string]any{"title": "t", "extra": 1})
	if !goshape.HasCode(err, goshape.CodeUnknownKey) {
		t.Fatalf("expected unknown_key, got %v", err)
	}

	body := registered(t, ot)
	if !body.Deprecated || body.ExternalDocs == nil {
		t.Fatalf("type metadata set after Field was lost: %+v", body)
	}
	if body.AdditionalProperties != false {
		t.Fatalf("denyUnknownFields set after Field was lost")
	}
}

func TestBuilder_ExampleAfterField(t *testing.T) {
	b := goshape.NewObject("Pt").
		Field("x", goshape.Int64())
	ot := b.MustBuild()
	withExample := goshape.NewObject("Pt").
		Field("x", goshape.Int64()).
		Example(func() *goshape.Instance { return ot.NewInstance().Set("x", int64(9)) }).
		MustBuild()
	body := registered(t, withExample)
	ex, ok := body.Example.(map[string]any)
	if !ok || ex["x"] != int64(9) {
		t.Fatalf("example set after Field was lost: %v", body.Example)
	}
}
