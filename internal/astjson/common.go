// Package astjson decodes the JSON-encoded AST cmd/basilc accepts on its
// input (no lexer/parser is in scope, spec §1, so the CLI harness takes
// the AST as data instead of source text). Every node object carries a
// "node" discriminator naming the ast.* type it represents; fields are
// matched by name against the corresponding Go struct. Polymorphic
// fields (Expression/Statement/Declaration/Pattern) are decoded via
// json.RawMessage and dispatched on "node" — the standard encoding/json
// idiom for tagged unions; no pack example performs polymorphic-AST JSON
// decoding, so there is no third-party shape to follow here.
package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/pkg/token"
)

type obj = map[string]json.RawMessage

// Decode parses a JSON-encoded compilation unit into an *ast.Program.
func Decode(data []byte) (*ast.Program, error) {
	var m obj
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("astjson: %w", err)
	}
	decls, err := decodeDeclList(m["declarations"])
	if err != nil {
		return nil, err
	}
	return &ast.Program{Declarations: decls}, nil
}

func nodeKind(m obj) string {
	var s string
	_ = json.Unmarshal(m["node"], &s)
	return s
}

func str(m obj, key string) string {
	var s string
	if v, ok := m[key]; ok {
		_ = json.Unmarshal(v, &s)
	}
	return s
}

func boolean(m obj, key string) bool {
	var b bool
	if v, ok := m[key]; ok {
		_ = json.Unmarshal(v, &b)
	}
	return b
}

func integer(m obj, key string) int {
	var n int
	if v, ok := m[key]; ok {
		_ = json.Unmarshal(v, &n)
	}
	return n
}

func int64Val(m obj, key string) int64 {
	var n int64
	if v, ok := m[key]; ok {
		_ = json.Unmarshal(v, &n)
	}
	return n
}

func strSlice(m obj, key string) []string {
	var s []string
	if v, ok := m[key]; ok {
		_ = json.Unmarshal(v, &s)
	}
	return s
}

func asObj(raw json.RawMessage) (obj, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var m obj
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("astjson: %w", err)
	}
	return m, nil
}

func rawList(m obj, key string) ([]json.RawMessage, error) {
	v, ok := m[key]
	if !ok || string(v) == "null" {
		return nil, nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(v, &list); err != nil {
		return nil, fmt.Errorf("astjson: field %q: %w", key, err)
	}
	return list, nil
}

func pos(m obj) token.Position {
	p, _ := asObj(m["pos"])
	if p == nil {
		return token.Position{}
	}
	return token.Position{Line: integer(p, "line"), Column: integer(p, "column"), Offset: integer(p, "offset")}
}

func tok(m obj) token.Token {
	return token.Token{Kind: token.IDENT, Literal: str(m, "literal"), Pos: pos(m)}
}

// decodeTypeRaw decodes a *ast.TypeAnnotation from its raw JSON object,
// or returns nil for a null/absent field.
func decodeTypeRaw(raw json.RawMessage) (*ast.TypeAnnotation, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	tm, err := asObj(raw)
	if err != nil || tm == nil {
		return nil, err
	}

	genericRaws, err := rawList(tm, "genericArgs")
	if err != nil {
		return nil, err
	}
	generics := make([]*ast.TypeAnnotation, len(genericRaws))
	for i, gr := range genericRaws {
		generics[i], err = decodeTypeRaw(gr)
		if err != nil {
			return nil, err
		}
	}

	dimRaws, err := rawList(tm, "arrayDims")
	if err != nil {
		return nil, err
	}
	dims := make([]ast.Expression, len(dimRaws))
	for i, dr := range dimRaws {
		dims[i], err = decodeExpr(dr)
		if err != nil {
			return nil, err
		}
	}

	return &ast.TypeAnnotation{
		Token:       tok(tm),
		Name:        str(tm, "name"),
		GenericArgs: generics,
		ArrayDims:   dims,
		IsArray:     boolean(tm, "isArray"),
		IsPointer:   boolean(tm, "isPointer"),
		IsNullable:  boolean(tm, "isNullable"),
	}, nil
}

// decodeType decodes an optional *ast.TypeAnnotation field of m.
func decodeType(m obj, key string) (*ast.TypeAnnotation, error) {
	raw, ok := m[key]
	if !ok {
		return nil, nil
	}
	return decodeTypeRaw(raw)
}

func decodeParam(raw json.RawMessage) (*ast.Parameter, error) {
	m, err := asObj(raw)
	if err != nil || m == nil {
		return nil, err
	}
	ty, err := decodeType(m, "type")
	if err != nil {
		return nil, err
	}
	def, err := decodeExprField(m, "default")
	if err != nil {
		return nil, err
	}
	return &ast.Parameter{
		Token:        tok(m),
		Name:         str(m, "name"),
		Type:         ty,
		Default:      def,
		ByRef:        boolean(m, "byRef"),
		IsParamArray: boolean(m, "isParamArray"),
	}, nil
}

func decodeParamList(m obj, key string) ([]*ast.Parameter, error) {
	raws, err := rawList(m, key)
	if err != nil {
		return nil, err
	}
	out := make([]*ast.Parameter, len(raws))
	for i, r := range raws {
		out[i], err = decodeParam(r)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeBlock(m obj, key string) (*ast.BlockStatement, error) {
	raw, ok := m[key]
	if !ok || string(raw) == "null" {
		return nil, nil
	}
	s, err := decodeStmt(raw)
	if err != nil {
		return nil, err
	}
	b, ok := s.(*ast.BlockStatement)
	if !ok {
		return nil, fmt.Errorf("astjson: field %q: expected Block, got %T", key, s)
	}
	return b, nil
}

func decodeExprField(m obj, key string) (ast.Expression, error) {
	raw, ok := m[key]
	if !ok {
		return nil, nil
	}
	return decodeExpr(raw)
}

func decodeStmtField(m obj, key string) (ast.Statement, error) {
	raw, ok := m[key]
	if !ok {
		return nil, nil
	}
	return decodeStmt(raw)
}

func decodeAccessLevel(s string) ast.AccessLevel {
	switch s {
	case "Private":
		return ast.AccessPrivate
	case "Protected":
		return ast.AccessProtected
	case "Friend":
		return ast.AccessFriend
	default:
		return ast.AccessPublic
	}
}
