// Package goshape compiles declarative record descriptors into three mutually
// consistent runtime artifacts: a JSON-object parser, a JSON-object
// serializer, and an OpenAPI-style schema.
//
//   - Descriptor/Field model field names, types, and modifiers (rename,
//     default, read-only/write-only, flatten, skip, validator rules)
//   - Compile produces an *ObjectType whose Parse, Serialize, and Register
//     operations share one source of truth
//   - Template/Instantiate specialize generic descriptors into independent
//     named types
//   - Registry deduplicates named schema bodies across the process
//
// Design policy:
//   - Keep only public APIs in the root package; the JSON Schema model lives
//     in jsonschema/, export surfaces in openapi/ and extern/.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	pet := goshape.NewObject("Pet").
//		Field("id", goshape.Int64()).ReadOnly().
//		Field("name", goshape.String()).Rules(goshape.MinLength(1)).
//		MustBuild()
//
//	inst, err := goshape.ParseJSONObject(pet, body)
//	out, err := goshape.SerializeJSON(pet, inst)
//
//	reg := goshape.NewRegistry()
//	pet.Register(reg)
package goshape
