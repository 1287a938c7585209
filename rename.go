package goshape

import (
	"strings"
	"unicode"
)

// RenameRule derives a serialized key from a field identifier when the field
// carries no explicit rename.
type RenameRule int

const (
	RenameNone           RenameRule = iota // keep the identifier as-is
	RenameLowercase                        // "helloworld"
	RenameUppercase                        // "HELLOWORLD"
	RenamePascalCase                       // "HelloWorld"
	RenameCamelCase                        // "helloWorld"
	RenameSnakeCase                        // "hello_world"
	RenameScreamingSnake                   // "HELLO_WORLD"
	RenameKebabCase                        // "hello-world"
	RenameScreamingKebab                   // "HELLO-WORLD"
)

// Apply renames ident according to the rule.
func (r RenameRule) Apply(ident string) string {
	switch r {
	case RenameLowercase:
		return strings.ToLower(ident)
	case RenameUppercase:
		return strings.ToUpper(ident)
	case RenamePascalCase:
		return joinWords(splitWords(ident), "", titleWord)
	case RenameCamelCase:
		words := splitWords(ident)
		out := joinWords(words, "", titleWord)
		if len(out) > 0 {
			return strings.ToLower(out[:1]) + out[1:]
		}
		return out
	case RenameSnakeCase:
		return joinWords(splitWords(ident), "_", strings.ToLower)
	case RenameScreamingSnake:
		return joinWords(splitWords(ident), "_", strings.ToUpper)
	case RenameKebabCase:
		return joinWords(splitWords(ident), "-", strings.ToLower)
	case RenameScreamingKebab:
		return joinWords(splitWords(ident), "-", strings.ToUpper)
	default:
		return ident
	}
}

// ParseRenameRule maps a rule name (serde vocabulary) to a RenameRule.
func ParseRenameRule(s string) (RenameRule, bool) {
	switch s {
	case "":
		return RenameNone, true
	case "lowercase":
		return RenameLowercase, true
	case "UPPERCASE":
		return RenameUppercase, true
	case "PascalCase":
		return RenamePascalCase, true
	case "camelCase":
		return RenameCamelCase, true
	case "snake_case":
		return RenameSnakeCase, true
	case "SCREAMING_SNAKE_CASE":
		return RenameScreamingSnake, true
	case "kebab-case":
		return RenameKebabCase, true
	case "SCREAMING-KEBAB-CASE":
		return RenameScreamingKebab, true
	}
	return RenameNone, false
}

// splitWords breaks an identifier into words at underscores, hyphens, and
// case transitions. An uppercase run followed by a lowercase letter keeps its
// last character with the new word, so "HTTPCode" splits as HTTP, Code.
func splitWords(ident string) []string {
	var words []string
	var cur []rune
	var prev rune
	for _, c := range ident {
		switch {
		case c == '_' || c == '-':
			if len(cur) > 0 {
				words = append(words, string(cur))
				cur = cur[:0]
			}
		case unicode.IsUpper(c) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			words = append(words, string(cur))
			cur = append(cur[:0], c)
		case unicode.IsLower(c) && unicode.IsUpper(prev) && len(cur) >= 2:
			words = append(words, string(cur[:len(cur)-1]))
			cur = append([]rune{cur[len(cur)-1]}, c)
		default:
			cur = append(cur, c)
		}
		prev = c
	}
	if len(cur) > 0 {
		words = append(words, string(cur))
	}
	return words
}

func joinWords(words []string, sep string, f func(string) string) string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, f(w))
	}
	return strings.Join(out, sep)
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}
