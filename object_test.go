package goshape_test

import (
	"reflect"
	"testing"

	goshape "github.com/goshape/goshape"
)

func petType(t *testing.T) *goshape.ObjectType {
	t.Helper()
	return goshape.NewObject("Pet").
		Field("id", goshape.Int64()).
		Field("name", goshape.String()).
		Field("tags", goshape.ArrayOf(goshape.String())).DefaultZero().
		Field("weight", goshape.Optional(goshape.Float64())).
		MustBuild()
}

func TestParseObject_NilInputIsEmptyObject(t *testing.T) {
	ot := goshape.NewObject("Empty").
		Field("note", goshape.Optional(goshape.String())).
		MustBuild()
	inst, err := ot.ParseObject(nil)
	if err != nil {
		t.Fatalf("parse nil: %v", err)
	}
	if got := inst.Get("note"); got != nil {
		t.Fatalf("expected nil note, got %v", got)
	}
}

func TestParseObject_NonObjectFails(t *testing.T) {
	ot := petType(t)
	_, err := ot.ParseObject("not an object")
	if !goshape.HasCode(err, goshape.CodeInvalidType) {
		t.Fatalf("expected invalid_type, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	ot := petType(t)
	in := map[string]any{
		"id":     int64(7),
		"name":   "Aki",
		"tags":   []any{"small", "brown"},
		"weight": 4.5,
	}
	inst, err := ot.ParseObject(in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, ok := ot.Serialize(inst)
	if !ok {
		t.Fatalf("serialize returned absent")
	}
	inst2, err := ot.ParseObject(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !reflect.DeepEqual(inst.Values(), inst2.Values()) {
		t.Fatalf("round trip mismatch\n got=%v\nwant=%v", inst2.Values(), inst.Values())
	}
}

func TestParseObject_ReadOnlyRejection(t *testing.T) {
	ot := goshape.NewObject("User").
		Field("id", goshape.Int64()).ReadOnly().
		Field("name", goshape.String()).
		MustBuild()

	for _, v := range []any{int64(1), "x", nil, true} {
		_, err := ot.ParseObject(map[string]any{"id": v, "name": "n"})
		if !goshape.HasCode(err, goshape.CodeReadOnly) {
			t.Fatalf("id=%v: expected read_only, got %v", v, err)
		}
	}

	// absent read-only key takes the zero value
	inst, err := ot.ParseObject(map[string]any{"name": "n"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := inst.Get("id"); got != int64(0) {
		t.Fatalf("expected zero id, got %v", got)
	}
}

func TestParseObject_DefaultSubstitution(t *testing.T) {
	ot := goshape.NewObject("Conf").
		Field("retries", goshape.Int64()).DefaultZero().
		Field("region", goshape.String()).DefaultFunc(func() any { return "us-east-1" }).
		MustBuild()

	cases := []struct {
		name    string
		in      map[string]any
		retries int64
		region  string
	}{
		{"empty object", map[string]any{}, 0, "us-east-1"},
		{"explicit nulls", map[string]any{"retries": nil, "region": nil}, 0, "us-east-1"},
		{"values win", map[string]any{"retries": int64(3), "region": "eu-west-1"}, 3, "eu-west-1"},
	}
	for _, tc := range cases {
		inst, err := ot.ParseObject(tc.in)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if inst.Get("retries") != tc.retries || inst.Get("region") != tc.region {
			t.Fatalf("%s: got retries=%v region=%v", tc.name, inst.Get("retries"), inst.Get("region"))
		}
	}
}

func TestParseObject_MissingRequiredFails(t *testing.T) {
	ot := petType(t)
	_, err := ot.ParseObject(map[string]any{"id": int64(1)})
	if !goshape.HasCode(err, goshape.CodeRequired) {
		t.Fatalf("expected required, got %v", err)
	}
	iss, _ := goshape.AsIssues(err)
	if iss[0].Path != "/name" {
		t.Fatalf("expected error at /name, got %s", iss[0].Path)
	}
}

func TestParseObject_UnknownFieldStrictness(t *testing.T) {
	strict := goshape.NewObject("S").
		Field("known", goshape.String()).
		DenyUnknownFields().
		MustBuild()
	lax := goshape.NewObject("L").
		Field("known", goshape.String()).
		MustBuild()

	in := map[string]any{"known": "v", "extra": int64(1)}

	_, err := strict.ParseObject(in)
	if !goshape.HasCode(err, goshape.CodeUnknownKey) {
		t.Fatalf("expected unknown_key, got %v", err)
	}
	iss, _ := goshape.AsIssues(err)
	if iss[0].Path != "/extra" {
		t.Fatalf("expected error at /extra, got %s", iss[0].Path)
	}

	inst, err := lax.ParseObject(in)
	if err != nil {
		t.Fatalf("lax parse: %v", err)
	}
	if inst.Get("known") != "v" {
		t.Fatalf("known lost: %v", inst.Get("known"))
	}
}

func TestParseObject_UnknownKeyIsDeterministic(t *testing.T) {
	ot := goshape.NewObject("S").
		Field("known", goshape.String()).
		DenyUnknownFields().
		MustBuild()
	for i := 0; i < 16; i++ {
		_, err := ot.ParseObject(map[string]any{"known": "v", "zz": 1, "aa": 2, "mm": 3})
		iss, _ := goshape.AsIssues(err)
		if len(iss) == 0 || iss[0].Path != "/aa" {
			t.Fatalf("expected smallest remaining key /aa, got %v", err)
		}
	}
}

func TestSerialize_WriteOnlyOmission(t *testing.T) {
	ot := goshape.NewObject("Cred").
		Field("user", goshape.String()).
		Field("password", goshape.String()).WriteOnly().
		MustBuild()

	for _, pw := range []any{"secret", ""} {
		inst := ot.NewInstance().Set("user", "u").Set("password", pw)
		out, ok := ot.Serialize(inst)
		if !ok {
			t.Fatalf("serialize absent")
		}
		m := out.(map[string]any)
		if _, present := m["password"]; present {
			t.Fatalf("password leaked into output: %v", m)
		}
		if m["user"] != "u" {
			t.Fatalf("user missing: %v", m)
		}
	}
}

func TestSerialize_OptionalEmptyOmitted(t *testing.T) {
	ot := petType(t)
	inst := ot.NewInstance().Set("id", int64(1)).Set("name", "n")
	out, _ := ot.Serialize(inst)
	m := out.(map[string]any)
	if _, present := m["weight"]; present {
		t.Fatalf("empty optional should be omitted, got %v", m)
	}
}

func TestSkipField(t *testing.T) {
	ot := goshape.NewObject("S").
		Field("visible", goshape.String()).
		Field("internal", goshape.Int64()).Skip().
		MustBuild()

	// skip fields are never read from input, even when present
	inst, err := ot.ParseObject(map[string]any{"visible": "v", "internal": int64(99)})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if inst.Get("internal") != int64(0) {
		t.Fatalf("skip field should stay zero, got %v", inst.Get("internal"))
	}

	out, _ := ot.Serialize(inst)
	if _, present := out.(map[string]any)["internal"]; present {
		t.Fatalf("skip field leaked into output")
	}
}

func TestFlatten_ParseReadsSharedObject(t *testing.T) {
	inner := goshape.NewObject("Meta").
		Field("created_by", goshape.String()).
		MustBuild()
	outer := goshape.NewObject("Doc").
		Field("title", goshape.String()).
		Field("meta", inner).Flatten().
		MustBuild()

	inst, err := outer.ParseObject(map[string]any{
		"title":      "t",
		"created_by": "alice",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	meta := inst.Get("meta").(*goshape.Instance)
	if meta.Get("created_by") != "alice" {
		t.Fatalf("flattened field not parsed: %v", meta.Values())
	}
}

func TestFlatten_SeesOnlyKeysLeftByEarlierSiblings(t *testing.T) {
	// the flattened type reads a copy of the object as it stands at the
	// field's position; keys consumed by earlier-declared siblings are gone
	inner := goshape.NewObject("Echo").
		Field("title", goshape.String()).
		MustBuild()

	// flatten declared first: the shared key is still there
	flattenFirst := goshape.NewObject("DocA").
		Field("echo", inner).Flatten().
		Field("title", goshape.String()).
		MustBuild()
	inst, err := flattenFirst.ParseObject(map[string]any{"title": "t"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	echo := inst.Get("echo").(*goshape.Instance)
	if echo.Get("title") != "t" {
		t.Fatalf("flatten before the sibling should see the key: %v", echo.Values())
	}
	if inst.Get("title") != "t" {
		t.Fatalf("sibling should still consume the key: %v", inst.Values())
	}

	// flatten declared after the consuming sibling: the key is gone and the
	// inner required field fails
	flattenLast := goshape.NewObject("DocB").
		Field("title", goshape.String()).
		Field("echo", inner).Flatten().
		MustBuild()
	_, err = flattenLast.ParseObject(map[string]any{"title": "t"})
	if !goshape.HasCode(err, goshape.CodeRequired) {
		t.Fatalf("flatten after the sibling should miss the consumed key, got %v", err)
	}
	iss, _ := goshape.AsIssues(err)
	if len(iss) == 0 || iss[0].Path != "/title" {
		t.Fatalf("expected required at /title, got %v", err)
	}
}

func TestFlatten_SerializeLaterWriterWins(t *testing.T) {
	inner := goshape.NewObject("Inner").
		Field("name", goshape.String()).
		MustBuild()

	// flatten first, plain field second: the later plain field wins
	flattenFirst := goshape.NewObject("A").
		Field("sub", inner).Flatten().
		Field("name", goshape.String()).
		MustBuild()
	sub := inner.NewInstance().Set("name", "from-flatten")
	inst := flattenFirst.NewInstance().Set("sub", sub).Set("name", "direct")
	out, _ := flattenFirst.Serialize(inst)
	if got := out.(map[string]any)["name"]; got != "direct" {
		t.Fatalf("later field should win, got %v", got)
	}

	// plain field first, flatten second: the flattened entry wins
	flattenLast := goshape.NewObject("B").
		Field("name", goshape.String()).
		Field("sub", inner).Flatten().
		MustBuild()
	inst2 := flattenLast.NewInstance().Set("name", "direct").Set("sub", sub)
	out2, _ := flattenLast.Serialize(inst2)
	if got := out2.(map[string]any)["name"]; got != "from-flatten" {
		t.Fatalf("later flatten should win, got %v", got)
	}
}

func TestFlatten_InnerErrorPropagates(t *testing.T) {
	inner := goshape.NewObject("Inner").
		Field("count", goshape.Int64()).
		MustBuild()
	outer := goshape.NewObject("Outer").
		Field("sub", inner).Flatten().
		MustBuild()

	_, err := outer.ParseObject(map[string]any{"count": "not a number"})
	if !goshape.HasCode(err, goshape.CodeInvalidType) {
		t.Fatalf("expected inner invalid_type to propagate, got %v", err)
	}
	iss, _ := goshape.AsIssues(err)
	if iss[0].Path != "/count" {
		t.Fatalf("expected path /count, got %s", iss[0].Path)
	}
}

func TestParseObject_ValidatorOrderAndTagging(t *testing.T) {
	ot := goshape.NewObject("V").
		Field("code", goshape.String()).Rules(goshape.MinLength(3), goshape.MaxLength(5)).
		MustBuild()

	_, err := ot.ParseObject(map[string]any{"code": "ab"})
	if !goshape.HasCode(err, goshape.CodeTooShort) {
		t.Fatalf("expected too_short first, got %v", err)
	}
	iss, _ := goshape.AsIssues(err)
	if iss[0].Path != "/code" {
		t.Fatalf("validator failure should be tagged with the field, got %s", iss[0].Path)
	}

	_, err = ot.ParseObject(map[string]any{"code": "toolong"})
	if !goshape.HasCode(err, goshape.CodeTooLong) {
		t.Fatalf("expected too_long, got %v", err)
	}

	if _, err := ot.ParseObject(map[string]any{"code": "abcd"}); err != nil {
		t.Fatalf("valid value rejected: %v", err)
	}
}

func TestParseObject_ValidatorsSkippedOnDefault(t *testing.T) {
	ot := goshape.NewObject("V").
		Field("code", goshape.String()).DefaultZero().Rules(goshape.MinLength(3)).
		MustBuild()
	// the zero default "" is below min length but defaults skip validators
	inst, err := ot.ParseObject(map[string]any{})
	if err != nil {
		t.Fatalf("default should bypass validators: %v", err)
	}
	if inst.Get("code") != "" {
		t.Fatalf("expected zero default, got %v", inst.Get("code"))
	}
}

func TestParseObject_NestedFieldErrorPath(t *testing.T) {
	inner := goshape.NewObject("Inner").
		Field("n", goshape.Int64()).
		MustBuild()
	outer := goshape.NewObject("Outer").
		Field("child", inner).
		MustBuild()
	_, err := outer.ParseObject(map[string]any{"child": map[string]any{"n": "x"}})
	iss, ok := goshape.AsIssues(err)
	if !ok || iss[0].Path != "/child/n" {
		t.Fatalf("expected rebased path /child/n, got %v", err)
	}
}

func TestCompile_ConfigurationErrors(t *testing.T) {
	cases := []struct {
		name string
		desc goshape.Descriptor
	}{
		{
			"read-only and write-only",
			goshape.Descriptor{Name: "T", Fields: []goshape.Field{
				{Ident: "f", Type: goshape.String(), ReadOnly: true, WriteOnly: true},
			}},
		},
		{
			"write-only-all with read-only field",
			goshape.Descriptor{Name: "T", WriteOnlyAll: true, Fields: []goshape.Field{
				{Ident: "f", Type: goshape.String(), ReadOnly: true},
			}},
		},
		{
			"flatten on a primitive",
			goshape.Descriptor{Name: "T", Fields: []goshape.Field{
				{Ident: "f", Type: goshape.String(), Flatten: true},
			}},
		},
		{
			"flatten with rename",
			goshape.Descriptor{Name: "T", Fields: []goshape.Field{
				{Ident: "f", Type: goshape.NewObject("X").MustBuild(), Flatten: true, Rename: "x"},
			}},
		},
		{
			"missing name on referenced type",
			goshape.Descriptor{Fields: []goshape.Field{{Ident: "f", Type: goshape.String()}}},
		},
	}
	for _, tc := range cases {
		if _, err := goshape.Compile(tc.desc); !goshape.HasCode(err, goshape.CodeInvalidDescriptor) {
			t.Fatalf("%s: expected invalid_descriptor, got %v", tc.name, err)
		}
	}
}

func TestCompile_SkipBypassesAccessConflict(t *testing.T) {
	// skipped fields never touch the wire, so their access flags are not checked
	_, err := goshape.Compile(goshape.Descriptor{Name: "T", Fields: []goshape.Field{
		{Ident: "f", Type: goshape.String(), ReadOnly: true, WriteOnly: true, Skip: true},
	}})
	if err != nil {
		t.Fatalf("skip field should bypass the conflict check: %v", err)
	}
}

func TestReadOnlyAll(t *testing.T) {
	ot := goshape.MustCompile(goshape.Descriptor{
		Name:        "R",
		ReadOnlyAll: true,
		Fields: []goshape.Field{
			{Ident: "a", Type: goshape.String()},
			{Ident: "b", Type: goshape.Int64()},
		},
	})
	_, err := ot.ParseObject(map[string]any{"b": int64(1)})
	if !goshape.HasCode(err, goshape.CodeReadOnly) {
		t.Fatalf("expected read_only from type-level flag, got %v", err)
	}
}

func TestFieldIdents_DeclarationOrder(t *testing.T) {
	ot := goshape.NewObject("O").
		Field("z", goshape.String()).
		Field("a", goshape.String()).
		Field("m", goshape.String()).Skip().
		MustBuild()
	want := []string{"z", "a", "m"}
	if got := ot.FieldIdents(); !reflect.DeepEqual(got, want) {
		t.Fatalf("field order not preserved: %v", got)
	}
}
