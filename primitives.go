package goshape

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/goshape/goshape/i18n"
	js "github.com/goshape/goshape/jsonschema"
)

// String returns the string schema type.
func String() SchemaType { return stringType{} }

// Bool returns the boolean schema type.
func Bool() SchemaType { return boolType{} }

// Int64 returns the 64-bit integer schema type.
func Int64() SchemaType { return intType{} }

// Float64 returns the double-precision number schema type.
func Float64() SchemaType { return floatType{} }

func missingIssue() Issues {
	return Issues{{Path: "/", Code: CodeRequired, Message: i18n.T(CodeRequired, nil)}}
}

func typeIssue(expected string) Issues {
	return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected " + expected}}
}

type stringType struct{}

func (stringType) Name() string         { return "string" }
func (stringType) IsRequired() bool     { return true }
func (stringType) SchemaRef() SchemaRef { return InlineRef(js.New("string")) }
func (stringType) Register(r *Registry) {}
func (stringType) Zero() any            { return "" }

func (stringType) Parse(v any) (any, error) {
	if v == nil {
		return nil, missingIssue()
	}
	s, ok := v.(string)
	if !ok {
		return nil, typeIssue("string")
	}
	return s, nil
}

func (stringType) Serialize(v any) (any, bool) { return v, true }

type boolType struct{}

func (boolType) Name() string         { return "boolean" }
func (boolType) IsRequired() bool     { return true }
func (boolType) SchemaRef() SchemaRef { return InlineRef(js.New("boolean")) }
func (boolType) Register(r *Registry) {}
func (boolType) Zero() any            { return false }

func (boolType) Parse(v any) (any, error) {
	if v == nil {
		return nil, missingIssue()
	}
	b, ok := v.(bool)
	if !ok {
		return nil, typeIssue("boolean")
	}
	return b, nil
}

func (boolType) Serialize(v any) (any, bool) { return v, true }

type intType struct{}

func (intType) Name() string     { return "integer" }
func (intType) IsRequired() bool { return true }

func (intType) SchemaRef() SchemaRef {
	s := js.New("integer")
	s.Format = "int64"
	return InlineRef(s)
}

func (intType) Register(r *Registry) {}
func (intType) Zero() any            { return int64(0) }

func (intType) Parse(v any) (any, error) {
	switch n := v.(type) {
	case nil:
		return nil, missingIssue()
	case json.Number:
		i, err := strconv.ParseInt(string(n), 10, 64)
		if err != nil {
			return nil, typeIssue("integer")
		}
		return i, nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return nil, typeIssue("integer")
		}
		return int64(n), nil
	default:
		return nil, typeIssue("integer")
	}
}

func (intType) Serialize(v any) (any, bool) { return v, true }

type floatType struct{}

func (floatType) Name() string     { return "number" }
func (floatType) IsRequired() bool { return true }

func (floatType) SchemaRef() SchemaRef {
	s := js.New("number")
	s.Format = "double"
	return InlineRef(s)
}

func (floatType) Register(r *Registry) {}
func (floatType) Zero() any            { return float64(0) }

func (floatType) Parse(v any) (any, error) {
	switch n := v.(type) {
	case nil:
		return nil, missingIssue()
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return nil, typeIssue("number")
		}
		return f, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return nil, typeIssue("number")
	}
}

func (floatType) Serialize(v any) (any, bool) { return v, true }
