package emitter

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/basilisc/basilc/internal/types"
)

// reserved is the target-language keyword set a sanitized identifier must
// not collide with. Checked case-insensitively (§4.5 "identifier
// sanitation... target-specific reserved-word escaping"), since the
// managed target treats identifiers the way C#/Go-family languages do.
var reserved = map[string]bool{
	"class": true, "namespace": true, "public": true, "private": true,
	"protected": true, "static": true, "void": true, "int": true,
	"long": true, "float": true, "double": true, "bool": true,
	"string": true, "char": true, "if": true, "else": true, "for": true,
	"while": true, "do": true, "switch": true, "case": true,
	"default": true, "break": true, "continue": true, "return": true,
	"new": true, "this": true, "base": true, "try": true, "catch": true,
	"finally": true, "throw": true, "using": true, "interface": true,
	"enum": true, "struct": true, "delegate": true, "async": true,
	"await": true, "yield": true, "var": true, "null": true,
	"true": true, "false": true, "func": true, "package": true,
}

var lowerCaser = cases.Lower(language.Und)

func reservedCollision(name string) bool {
	return reserved[lowerCaser.String(name)]
}

// sanitizeIdent strips any character that isn't a letter, digit, or
// underscore, prefixes a digit-leading result with an underscore, and
// appends a trailing underscore if the result collides with a reserved
// word (§4.5).
func sanitizeIdent(name string) string {
	if name == "" {
		return "_"
	}
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			sb.WriteRune(r)
		}
	}
	out := sb.String()
	if out == "" {
		out = "_"
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	if reservedCollision(out) {
		out = out + "_"
	}
	return out
}

// typeName renders t as the managed target's spelling of the type,
// matching internal/stdlib's own cast templates (CInt -> int32(x), CLng
// -> int64(x), CDbl -> float64(x), CSng -> float32(x)) so declarations and
// casts agree on a type's name.
func typeName(t *types.TypeInfo) string {
	if t == nil {
		return "void"
	}
	switch t.Kind {
	case types.Void:
		return "void"
	case types.Primitive:
		switch t.Numeric {
		case types.RankInteger:
			return "int32"
		case types.RankLong:
			return "int64"
		case types.RankSingle:
			return "float32"
		case types.RankDouble:
			return "float64"
		default:
			return sanitizeIdent(t.Name)
		}
	case types.StringKind:
		return "string"
	case types.Boolean:
		return "bool"
	case types.Char:
		return "rune"
	case types.Array:
		return "[]" + typeName(t.ElementType)
	case types.Pointer:
		return "*" + typeName(t.ElementType)
	case types.Nullable:
		return "*" + typeName(t.ElementType)
	case types.Generic:
		if len(t.GenericArgs) == 0 {
			return sanitizeIdent(t.Name)
		}
		parts := make([]string, len(t.GenericArgs))
		for i, a := range t.GenericArgs {
			parts[i] = typeName(a)
		}
		return sanitizeIdent(t.Name) + "<" + strings.Join(parts, ", ") + ">"
	default:
		return sanitizeIdent(t.Name)
	}
}
