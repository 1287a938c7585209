package goshape

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"

	"github.com/goshape/goshape/i18n"
	js "github.com/goshape/goshape/jsonschema"
)

// Rule is one field constraint. The runtime check and the schema patch are
// both derived from the single declared value, so the documented constraint
// and the enforced constraint cannot drift apart.
type Rule struct {
	check func(any) Issues
	patch func(*js.Schema)
}

// Check runs the constraint against a parsed field value.
func (r Rule) Check(v any) error {
	if r.check == nil {
		return nil
	}
	if iss := r.check(v); len(iss) > 0 {
		return iss
	}
	return nil
}

// Patch folds the constraint's metadata into a field schema.
func (r Rule) Patch(s *js.Schema) {
	if r.patch != nil {
		r.patch(s)
	}
}

func ruleIssue(code string, params map[string]any) Issues {
	return Issues{{Path: "/", Code: code, Message: i18n.T(code, nil), Params: params}}
}

// asFloat extracts a numeric value. Non-numeric values are ignored by numeric
// rules; the type mismatch is reported by the field type's own parse.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	}
	return 0, false
}

// Minimum constrains a numeric field to values >= n.
func Minimum(n float64) Rule {
	return Rule{
		check: func(v any) Issues {
			if f, ok := asFloat(v); ok && f < n {
				return ruleIssue(CodeTooSmall, map[string]any{"min": n, "got": f})
			}
			return nil
		},
		patch: func(s *js.Schema) { s.Minimum = &n },
	}
}

// Maximum constrains a numeric field to values <= n.
func Maximum(n float64) Rule {
	return Rule{
		check: func(v any) Issues {
			if f, ok := asFloat(v); ok && f > n {
				return ruleIssue(CodeTooBig, map[string]any{"max": n, "got": f})
			}
			return nil
		},
		patch: func(s *js.Schema) { s.Maximum = &n },
	}
}

// ExclusiveMinimum constrains a numeric field to values > n.
func ExclusiveMinimum(n float64) Rule {
	return Rule{
		check: func(v any) Issues {
			if f, ok := asFloat(v); ok && f <= n {
				return ruleIssue(CodeTooSmall, map[string]any{"exclusiveMin": n, "got": f})
			}
			return nil
		},
		patch: func(s *js.Schema) { s.ExclusiveMinimum = &n },
	}
}

// ExclusiveMaximum constrains a numeric field to values < n.
func ExclusiveMaximum(n float64) Rule {
	return Rule{
		check: func(v any) Issues {
			if f, ok := asFloat(v); ok && f >= n {
				return ruleIssue(CodeTooBig, map[string]any{"exclusiveMax": n, "got": f})
			}
			return nil
		},
		patch: func(s *js.Schema) { s.ExclusiveMaximum = &n },
	}
}

// MultipleOf constrains a numeric field to exact multiples of n. The divisor
// must be positive; anything else is a programmer error and panics.
func MultipleOf(n float64) Rule {
	if !(n > 0) {
		panic("goshape: MultipleOf requires a positive divisor")
	}
	return Rule{
		check: func(v any) Issues {
			if f, ok := asFloat(v); ok {
				if q := f / n; q != math.Trunc(q) {
					return ruleIssue(CodeMultipleOf, map[string]any{"multipleOf": n, "got": f})
				}
			}
			return nil
		},
		patch: func(s *js.Schema) { s.MultipleOf = &n },
	}
}

// MinLength constrains a string field to at least n characters (runes).
func MinLength(n uint64) Rule {
	return Rule{
		check: func(v any) Issues {
			if s, ok := v.(string); ok && uint64(len([]rune(s))) < n {
				return ruleIssue(CodeTooShort, map[string]any{"minLength": n, "got": len([]rune(s))})
			}
			return nil
		},
		patch: func(s *js.Schema) { s.MinLength = &n },
	}
}

// MaxLength constrains a string field to at most n characters (runes).
func MaxLength(n uint64) Rule {
	return Rule{
		check: func(v any) Issues {
			if s, ok := v.(string); ok && uint64(len([]rune(s))) > n {
				return ruleIssue(CodeTooLong, map[string]any{"maxLength": n, "got": len([]rune(s))})
			}
			return nil
		},
		patch: func(s *js.Schema) { s.MaxLength = &n },
	}
}

// Pattern constrains a string field to match re. The schema patch carries the
// regexp source.
func Pattern(re *regexp.Regexp) Rule {
	return Rule{
		check: func(v any) Issues {
			if s, ok := v.(string); ok && !re.MatchString(s) {
				return ruleIssue(CodePattern, map[string]any{"pattern": re.String(), "got": s})
			}
			return nil
		},
		patch: func(s *js.Schema) { s.Pattern = re.String() },
	}
}

// MinItems constrains an array field to at least n elements.
func MinItems(n uint64) Rule {
	return Rule{
		check: func(v any) Issues {
			if a, ok := v.([]any); ok && uint64(len(a)) < n {
				return ruleIssue(CodeTooShort, map[string]any{"minItems": n, "got": len(a)})
			}
			return nil
		},
		patch: func(s *js.Schema) { s.MinItems = &n },
	}
}

// MaxItems constrains an array field to at most n elements.
func MaxItems(n uint64) Rule {
	return Rule{
		check: func(v any) Issues {
			if a, ok := v.([]any); ok && uint64(len(a)) > n {
				return ruleIssue(CodeTooLong, map[string]any{"maxItems": n, "got": len(a)})
			}
			return nil
		},
		patch: func(s *js.Schema) { s.MaxItems = &n },
	}
}

// UniqueItems constrains an array field to pairwise-distinct elements.
func UniqueItems() Rule {
	return Rule{
		check: func(v any) Issues {
			a, ok := v.([]any)
			if !ok {
				return nil
			}
			for i := 0; i < len(a); i++ {
				for j := i + 1; j < len(a); j++ {
					if reflect.DeepEqual(a[i], a[j]) {
						return ruleIssue(CodeNotUnique, map[string]any{"index": j})
					}
				}
			}
			return nil
		},
		patch: func(s *js.Schema) { s.UniqueItems = true },
	}
}

// MinProperties constrains a map field to at least n entries.
func MinProperties(n uint64) Rule {
	return Rule{
		check: func(v any) Issues {
			if m, ok := v.(map[string]any); ok && uint64(len(m)) < n {
				return ruleIssue(CodeTooShort, map[string]any{"minProperties": n, "got": len(m)})
			}
			return nil
		},
		patch: func(s *js.Schema) { s.MinProperties = &n },
	}
}

// MaxProperties constrains a map field to at most n entries.
func MaxProperties(n uint64) Rule {
	return Rule{
		check: func(v any) Issues {
			if m, ok := v.(map[string]any); ok && uint64(len(m)) > n {
				return ruleIssue(CodeTooLong, map[string]any{"maxProperties": n, "got": len(m)})
			}
			return nil
		},
		patch: func(s *js.Schema) { s.MaxProperties = &n },
	}
}
