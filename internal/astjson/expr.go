package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/basilisc/basilc/ast"
)

func decodeExprList(m obj, key string) ([]ast.Expression, error) {
	raws, err := rawList(m, key)
	if err != nil {
		return nil, err
	}
	out := make([]ast.Expression, len(raws))
	for i, r := range raws {
		out[i], err = decodeExpr(r)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeExpr(raw json.RawMessage) (ast.Expression, error) {
	m, err := asObj(raw)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	switch nodeKind(m) {
	case "Identifier":
		return decodeIdentifier(m)
	case "Literal":
		return decodeLiteral(m)
	case "BinaryExpression":
		return decodeBinaryExpression(m)
	case "UnaryExpression":
		return decodeUnaryExpression(m)
	case "MemberAccessExpression":
		return decodeMemberAccessExpression(m)
	case "CallExpression":
		return decodeCallExpression(m)
	case "ArrayAccessExpression":
		return decodeArrayAccessExpression(m)
	case "NewExpression":
		return decodeNewExpression(m)
	case "CastExpression":
		return decodeCastExpression(m)
	case "MyBaseExpression":
		return &ast.MyBaseExpression{Token: tok(m)}, nil
	case "LambdaExpression":
		return decodeLambdaExpression(m)
	case "AwaitExpression":
		operand, err := decodeExprField(m, "operand")
		if err != nil {
			return nil, err
		}
		return &ast.AwaitExpression{Token: tok(m), Operand: operand}, nil
	case "CollectionInitializer":
		elems, err := decodeExprList(m, "elements")
		if err != nil {
			return nil, err
		}
		return &ast.CollectionInitializer{Token: tok(m), Elements: elems}, nil
	case "TupleLiteral":
		return decodeTupleLiteral(m)
	case "InterpolatedStringExpression":
		return decodeInterpolatedString(m)
	default:
		return nil, fmt.Errorf("astjson: unsupported expression node %q", nodeKind(m))
	}
}

func decodeIdentifier(m obj) (*ast.Identifier, error) {
	return &ast.Identifier{Token: tok(m), Value: str(m, "value")}, nil
}

func decodeIdentifierField(m obj, key string) (*ast.Identifier, error) {
	raw, ok := m[key]
	if !ok || string(raw) == "null" {
		return nil, nil
	}
	im, err := asObj(raw)
	if err != nil || im == nil {
		return nil, err
	}
	return decodeIdentifier(im)
}

func decodeLiteralKind(s string) ast.LiteralKind {
	switch s {
	case "Float":
		return ast.LiteralFloat
	case "String":
		return ast.LiteralString
	case "Boolean":
		return ast.LiteralBoolean
	case "Char":
		return ast.LiteralChar
	case "Nil":
		return ast.LiteralNil
	default:
		return ast.LiteralInteger
	}
}

func decodeLiteral(m obj) (*ast.Literal, error) {
	kind := decodeLiteralKind(str(m, "kind"))
	raw, hasValue := m["value"]
	var value any
	switch kind {
	case ast.LiteralInteger:
		var v int64
		if hasValue {
			_ = json.Unmarshal(raw, &v)
		}
		value = v
	case ast.LiteralFloat:
		var v float64
		if hasValue {
			_ = json.Unmarshal(raw, &v)
		}
		value = v
	case ast.LiteralString:
		var v string
		if hasValue {
			_ = json.Unmarshal(raw, &v)
		}
		value = v
	case ast.LiteralBoolean:
		var v bool
		if hasValue {
			_ = json.Unmarshal(raw, &v)
		}
		value = v
	case ast.LiteralChar:
		var v string
		if hasValue {
			_ = json.Unmarshal(raw, &v)
		}
		r := rune(0)
		for _, c := range v {
			r = c
			break
		}
		value = r
	default:
		value = nil
	}
	return &ast.Literal{Token: tok(m), Kind: kind, Value: value}, nil
}

func decodeBinaryExpression(m obj) (*ast.BinaryExpression, error) {
	left, err := decodeExprField(m, "left")
	if err != nil {
		return nil, err
	}
	right, err := decodeExprField(m, "right")
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpression{Token: tok(m), Left: left, Operator: str(m, "operator"), Right: right}, nil
}

func decodeUnaryExpression(m obj) (*ast.UnaryExpression, error) {
	operand, err := decodeExprField(m, "operand")
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpression{Token: tok(m), Operator: str(m, "operator"), Operand: operand, Postfix: boolean(m, "postfix")}, nil
}

func decodeMemberAccessExpression(m obj) (*ast.MemberAccessExpression, error) {
	object, err := decodeExprField(m, "object")
	if err != nil {
		return nil, err
	}
	return &ast.MemberAccessExpression{Token: tok(m), Object: object, Member: str(m, "member")}, nil
}

func decodeCallExpression(m obj) (*ast.CallExpression, error) {
	callee, err := decodeExprField(m, "callee")
	if err != nil {
		return nil, err
	}
	args, err := decodeExprList(m, "arguments")
	if err != nil {
		return nil, err
	}
	genericRaws, err := rawList(m, "genericArgs")
	if err != nil {
		return nil, err
	}
	generics := make([]*ast.TypeAnnotation, len(genericRaws))
	for i, r := range genericRaws {
		generics[i], err = decodeTypeRaw(r)
		if err != nil {
			return nil, err
		}
	}
	return &ast.CallExpression{Token: tok(m), Callee: callee, Arguments: args, GenericArgs: generics}, nil
}

func decodeArrayAccessExpression(m obj) (*ast.ArrayAccessExpression, error) {
	arr, err := decodeExprField(m, "array")
	if err != nil {
		return nil, err
	}
	indices, err := decodeExprList(m, "indices")
	if err != nil {
		return nil, err
	}
	return &ast.ArrayAccessExpression{Token: tok(m), Array: arr, Indices: indices}, nil
}

func decodeNewExpression(m obj) (*ast.NewExpression, error) {
	ty, err := decodeType(m, "type")
	if err != nil {
		return nil, err
	}
	args, err := decodeExprList(m, "arguments")
	if err != nil {
		return nil, err
	}
	lens, err := decodeExprList(m, "arrayLengths")
	if err != nil {
		return nil, err
	}
	return &ast.NewExpression{Token: tok(m), Type: ty, Arguments: args, ArrayLengths: lens}, nil
}

func decodeCastExpression(m obj) (*ast.CastExpression, error) {
	ty, err := decodeType(m, "type")
	if err != nil {
		return nil, err
	}
	expr, err := decodeExprField(m, "expression")
	if err != nil {
		return nil, err
	}
	return &ast.CastExpression{Token: tok(m), Type: ty, Expression: expr}, nil
}

func decodeLambdaExpression(m obj) (*ast.LambdaExpression, error) {
	params, err := decodeParamList(m, "parameters")
	if err != nil {
		return nil, err
	}
	exprBody, err := decodeExprField(m, "expr")
	if err != nil {
		return nil, err
	}
	body, err := decodeBlock(m, "body")
	if err != nil {
		return nil, err
	}
	return &ast.LambdaExpression{
		Token:      tok(m),
		Parameters: params,
		Expr:       exprBody,
		Body:       body,
		IsSub:      boolean(m, "isSub"),
	}, nil
}

func decodeTupleLiteral(m obj) (*ast.TupleLiteral, error) {
	raws, err := rawList(m, "elements")
	if err != nil {
		return nil, err
	}
	elems := make([]ast.TupleElement, len(raws))
	for i, r := range raws {
		em, err := asObj(r)
		if err != nil {
			return nil, err
		}
		val, err := decodeExprField(em, "value")
		if err != nil {
			return nil, err
		}
		elems[i] = ast.TupleElement{Name: str(em, "name"), Value: val}
	}
	return &ast.TupleLiteral{Token: tok(m), Elements: elems}, nil
}

func decodeInterpolatedString(m obj) (*ast.InterpolatedStringExpression, error) {
	raws, err := rawList(m, "parts")
	if err != nil {
		return nil, err
	}
	parts := make([]ast.InterpolatedStringPart, len(raws))
	for i, r := range raws {
		pm, err := asObj(r)
		if err != nil {
			return nil, err
		}
		expr, err := decodeExprField(pm, "expression")
		if err != nil {
			return nil, err
		}
		parts[i] = ast.InterpolatedStringPart{Literal: str(pm, "literal"), Expression: expr}
	}
	return &ast.InterpolatedStringExpression{Token: tok(m), Parts: parts}, nil
}
