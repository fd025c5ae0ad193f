package astjson

import (
	"testing"

	"github.com/basilisc/basilc/ast"
)

func TestDecodeFunctionDecl(t *testing.T) {
	src := `{
		"declarations": [
			{
				"node": "FunctionDecl",
				"name": "Add",
				"kind": "Function",
				"returnType": {"node": "TypeAnnotation", "name": "Integer"},
				"parameters": [
					{"name": "a", "type": {"name": "Integer"}},
					{"name": "b", "type": {"name": "Integer"}}
				],
				"modifiers": {"access": "Public"},
				"body": {
					"node": "BlockStatement",
					"statements": [
						{
							"node": "ReturnStatement",
							"value": {
								"node": "BinaryExpression",
								"operator": "+",
								"left": {"node": "Identifier", "value": "a"},
								"right": {"node": "Identifier", "value": "b"}
							}
						}
					]
				}
			}
		]
	}`

	prog, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(prog.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(prog.Declarations))
	}

	fn, ok := prog.Declarations[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", prog.Declarations[0])
	}
	if fn.Name != "Add" {
		t.Errorf("Name = %q, want Add", fn.Name)
	}
	if fn.Kind != ast.KindFunction {
		t.Errorf("Kind = %v, want KindFunction", fn.Kind)
	}
	if len(fn.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Parameters))
	}
	if fn.Parameters[0].Name != "a" || fn.Parameters[0].Type.Name != "Integer" {
		t.Errorf("unexpected first parameter: %+v", fn.Parameters[0])
	}
	if fn.ReturnType == nil || fn.ReturnType.Name != "Integer" {
		t.Fatalf("unexpected return type: %+v", fn.ReturnType)
	}

	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fn.Body.Statements))
	}
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected *ast.ReturnStatement, got %T", fn.Body.Statements[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpression, got %T", ret.Value)
	}
	if bin.Operator != "+" {
		t.Errorf("Operator = %q, want +", bin.Operator)
	}
	left, ok := bin.Left.(*ast.Identifier)
	if !ok || left.Value != "a" {
		t.Errorf("unexpected left operand: %+v", bin.Left)
	}
}

func TestDecodeLiteralKinds(t *testing.T) {
	tests := []struct {
		name string
		json string
		kind ast.LiteralKind
		want any
	}{
		{"integer", `{"node":"Literal","kind":"Integer","value":42}`, ast.LiteralInteger, int64(42)},
		{"float", `{"node":"Literal","kind":"Float","value":3.5}`, ast.LiteralFloat, 3.5},
		{"string", `{"node":"Literal","kind":"String","value":"hi"}`, ast.LiteralString, "hi"},
		{"boolean", `{"node":"Literal","kind":"Boolean","value":true}`, ast.LiteralBoolean, true},
		{"nil", `{"node":"Literal","kind":"Nil"}`, ast.LiteralNil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := decodeExpr([]byte(tt.json))
			if err != nil {
				t.Fatalf("decodeExpr: %v", err)
			}
			lit, ok := expr.(*ast.Literal)
			if !ok {
				t.Fatalf("expected *ast.Literal, got %T", expr)
			}
			if lit.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", lit.Kind, tt.kind)
			}
			if lit.Value != tt.want {
				t.Errorf("Value = %#v, want %#v", lit.Value, tt.want)
			}
		})
	}
}

func TestDecodeSelectStatementPatterns(t *testing.T) {
	src := `{
		"node": "SelectStatement",
		"expression": {"node": "Identifier", "value": "x"},
		"cases": [
			{
				"patterns": [
					{"node": "RangePattern", "low": {"node":"Literal","kind":"Integer","value":1}, "high": {"node":"Literal","kind":"Integer","value":10}}
				],
				"body": {"node": "ExpressionStatement", "expression": {"node": "Identifier", "value": "x"}}
			}
		],
		"default": {"node": "ExpressionStatement", "expression": {"node": "Identifier", "value": "x"}},
		"hasDefault": true
	}`

	stmt, err := decodeStmt([]byte(src))
	if err != nil {
		t.Fatalf("decodeStmt: %v", err)
	}
	sel, ok := stmt.(*ast.SelectStatement)
	if !ok {
		t.Fatalf("expected *ast.SelectStatement, got %T", stmt)
	}
	if !sel.HasDefault {
		t.Error("HasDefault = false, want true")
	}
	if len(sel.Cases) != 1 || len(sel.Cases[0].Patterns) != 1 {
		t.Fatalf("unexpected cases shape: %+v", sel.Cases)
	}
	if _, ok := sel.Cases[0].Patterns[0].(*ast.RangePattern); !ok {
		t.Errorf("expected *ast.RangePattern, got %T", sel.Cases[0].Patterns[0])
	}
}

func TestDecodeUnsupportedNodeErrors(t *testing.T) {
	if _, err := decodeExpr([]byte(`{"node":"NotARealNode"}`)); err == nil {
		t.Error("expected an error for an unrecognized expression node")
	}
	if _, err := decodeStmt([]byte(`{"node":"NotARealNode"}`)); err == nil {
		t.Error("expected an error for an unrecognized statement node")
	}
	if _, err := decodeDecl([]byte(`{"node":"NotARealNode"}`)); err == nil {
		t.Error("expected an error for an unrecognized declaration node")
	}
}
