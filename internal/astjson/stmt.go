package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/basilisc/basilc/ast"
)

func decodeStmtList(m obj, key string) ([]ast.Statement, error) {
	raws, err := rawList(m, key)
	if err != nil {
		return nil, err
	}
	out := make([]ast.Statement, len(raws))
	for i, r := range raws {
		out[i], err = decodeStmt(r)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeStmt(raw json.RawMessage) (ast.Statement, error) {
	m, err := asObj(raw)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	switch nodeKind(m) {
	case "ExpressionStatement":
		expr, err := decodeExprField(m, "expression")
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Token: tok(m), Expression: expr}, nil
	case "BlockStatement":
		stmts, err := decodeStmtList(m, "statements")
		if err != nil {
			return nil, err
		}
		return &ast.BlockStatement{Token: tok(m), Statements: stmts}, nil
	case "ReturnStatement":
		val, err := decodeExprField(m, "value")
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStatement{Token: tok(m), Value: val}, nil
	case "IfStatement":
		return decodeIfStatement(m)
	case "SelectStatement":
		return decodeSelectStatement(m)
	case "ForStatement":
		return decodeForStatement(m)
	case "ForEachStatement":
		return decodeForEachStatement(m)
	case "WhileStatement":
		return decodeWhileStatement(m)
	case "DoStatement":
		return decodeDoStatement(m)
	case "TryStatement":
		return decodeTryStatement(m)
	case "WithStatement":
		return decodeWithStatement(m)
	case "ExitStatement":
		return &ast.ExitStatement{Token: tok(m), Kind: decodeExitKind(str(m, "kind"))}, nil
	case "ThrowStatement":
		val, err := decodeExprField(m, "value")
		if err != nil {
			return nil, err
		}
		return &ast.ThrowStatement{Token: tok(m), Value: val}, nil
	case "RaiseEventStatement":
		args, err := decodeExprList(m, "args")
		if err != nil {
			return nil, err
		}
		return &ast.RaiseEventStatement{Token: tok(m), Name: str(m, "name"), Args: args}, nil
	case "AddHandlerStatement":
		event, handler, err := decodeHandlerPair(m)
		if err != nil {
			return nil, err
		}
		return &ast.AddHandlerStatement{Token: tok(m), Event: event, Handler: handler}, nil
	case "RemoveHandlerStatement":
		event, handler, err := decodeHandlerPair(m)
		if err != nil {
			return nil, err
		}
		return &ast.RemoveHandlerStatement{Token: tok(m), Event: event, Handler: handler}, nil
	case "YieldStatement":
		val, err := decodeExprField(m, "value")
		if err != nil {
			return nil, err
		}
		return &ast.YieldStatement{Token: tok(m), Value: val, Break: boolean(m, "break")}, nil
	case "AssignmentStatement":
		return decodeAssignmentStatement(m)
	default:
		return nil, fmt.Errorf("astjson: unsupported statement node %q", nodeKind(m))
	}
}

func decodeHandlerPair(m obj) (ast.Expression, ast.Expression, error) {
	event, err := decodeExprField(m, "event")
	if err != nil {
		return nil, nil, err
	}
	handler, err := decodeExprField(m, "handler")
	if err != nil {
		return nil, nil, err
	}
	return event, handler, nil
}

func decodeIfStatement(m obj) (*ast.IfStatement, error) {
	cond, err := decodeExprField(m, "condition")
	if err != nil {
		return nil, err
	}
	then, err := decodeStmtField(m, "then")
	if err != nil {
		return nil, err
	}
	elseStmt, err := decodeStmtField(m, "else")
	if err != nil {
		return nil, err
	}
	elseIfRaws, err := rawList(m, "elseIfs")
	if err != nil {
		return nil, err
	}
	elseIfs := make([]ast.ElseIfClause, len(elseIfRaws))
	for i, r := range elseIfRaws {
		em, err := asObj(r)
		if err != nil {
			return nil, err
		}
		ec, err := decodeExprField(em, "condition")
		if err != nil {
			return nil, err
		}
		eb, err := decodeStmtField(em, "body")
		if err != nil {
			return nil, err
		}
		elseIfs[i] = ast.ElseIfClause{Condition: ec, Body: eb}
	}
	return &ast.IfStatement{Token: tok(m), Condition: cond, Then: then, ElseIfs: elseIfs, Else: elseStmt}, nil
}

func decodePattern(raw json.RawMessage) (ast.Pattern, error) {
	m, err := asObj(raw)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	when, err := decodeExprField(m, "when")
	if err != nil {
		return nil, err
	}
	switch nodeKind(m) {
	case "TypePattern":
		ty, err := decodeType(m, "type")
		if err != nil {
			return nil, err
		}
		return &ast.TypePattern{Token: tok(m), Type: ty, Binding: str(m, "binding"), When: when}, nil
	case "ConstantPattern":
		val, err := decodeExprField(m, "value")
		if err != nil {
			return nil, err
		}
		return &ast.ConstantPattern{Token: tok(m), Value: val, When: when}, nil
	case "RangePattern":
		low, err := decodeExprField(m, "low")
		if err != nil {
			return nil, err
		}
		high, err := decodeExprField(m, "high")
		if err != nil {
			return nil, err
		}
		return &ast.RangePattern{Token: tok(m), Low: low, High: high, When: when}, nil
	case "ComparisonPattern":
		val, err := decodeExprField(m, "value")
		if err != nil {
			return nil, err
		}
		return &ast.ComparisonPattern{Token: tok(m), Operator: str(m, "operator"), Value: val, When: when}, nil
	default:
		return nil, fmt.Errorf("astjson: unsupported pattern node %q", nodeKind(m))
	}
}

func decodeSelectStatement(m obj) (*ast.SelectStatement, error) {
	expr, err := decodeExprField(m, "expression")
	if err != nil {
		return nil, err
	}
	caseRaws, err := rawList(m, "cases")
	if err != nil {
		return nil, err
	}
	cases := make([]ast.SelectCase, len(caseRaws))
	for i, r := range caseRaws {
		cm, err := asObj(r)
		if err != nil {
			return nil, err
		}
		patRaws, err := rawList(cm, "patterns")
		if err != nil {
			return nil, err
		}
		patterns := make([]ast.Pattern, len(patRaws))
		for j, pr := range patRaws {
			patterns[j], err = decodePattern(pr)
			if err != nil {
				return nil, err
			}
		}
		body, err := decodeStmtField(cm, "body")
		if err != nil {
			return nil, err
		}
		cases[i] = ast.SelectCase{Patterns: patterns, Body: body}
	}
	def, err := decodeStmtField(m, "default")
	if err != nil {
		return nil, err
	}
	return &ast.SelectStatement{
		Token:      tok(m),
		Expression: expr,
		Cases:      cases,
		Default:    def,
		HasDefault: boolean(m, "hasDefault"),
	}, nil
}

func decodeForStatement(m obj) (*ast.ForStatement, error) {
	variable, err := decodeIdentifierField(m, "variable")
	if err != nil {
		return nil, err
	}
	start, err := decodeExprField(m, "start")
	if err != nil {
		return nil, err
	}
	end, err := decodeExprField(m, "end")
	if err != nil {
		return nil, err
	}
	step, err := decodeExprField(m, "step")
	if err != nil {
		return nil, err
	}
	body, err := decodeStmtField(m, "body")
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{Token: tok(m), Variable: variable, Start: start, End: end, Step: step, Body: body}, nil
}

func decodeForEachStatement(m obj) (*ast.ForEachStatement, error) {
	variable, err := decodeIdentifierField(m, "variable")
	if err != nil {
		return nil, err
	}
	vty, err := decodeType(m, "variableType")
	if err != nil {
		return nil, err
	}
	coll, err := decodeExprField(m, "collection")
	if err != nil {
		return nil, err
	}
	body, err := decodeStmtField(m, "body")
	if err != nil {
		return nil, err
	}
	return &ast.ForEachStatement{Token: tok(m), Variable: variable, VariableType: vty, Collection: coll, Body: body}, nil
}

func decodeWhileStatement(m obj) (*ast.WhileStatement, error) {
	cond, err := decodeExprField(m, "condition")
	if err != nil {
		return nil, err
	}
	body, err := decodeStmtField(m, "body")
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Token: tok(m), Condition: cond, Body: body}, nil
}

func decodeDoStatement(m obj) (*ast.DoStatement, error) {
	cond, err := decodeExprField(m, "condition")
	if err != nil {
		return nil, err
	}
	body, err := decodeStmtField(m, "body")
	if err != nil {
		return nil, err
	}
	return &ast.DoStatement{
		Token:       tok(m),
		Condition:   cond,
		Body:        body,
		TestAtStart: boolean(m, "testAtStart"),
		Until:       boolean(m, "until"),
	}, nil
}

func decodeTryStatement(m obj) (*ast.TryStatement, error) {
	body, err := decodeBlock(m, "body")
	if err != nil {
		return nil, err
	}
	catchRaws, err := rawList(m, "catches")
	if err != nil {
		return nil, err
	}
	catches := make([]ast.ExceptionHandler, len(catchRaws))
	for i, r := range catchRaws {
		cm, err := asObj(r)
		if err != nil {
			return nil, err
		}
		ety, err := decodeType(cm, "exceptionType")
		if err != nil {
			return nil, err
		}
		cbody, err := decodeBlock(cm, "body")
		if err != nil {
			return nil, err
		}
		catches[i] = ast.ExceptionHandler{VariableName: str(cm, "variableName"), ExceptionType: ety, Body: cbody}
	}
	finally, err := decodeBlock(m, "finally")
	if err != nil {
		return nil, err
	}
	return &ast.TryStatement{Token: tok(m), Body: body, Catches: catches, Finally: finally}, nil
}

func decodeWithStatement(m obj) (*ast.WithStatement, error) {
	target, err := decodeExprField(m, "target")
	if err != nil {
		return nil, err
	}
	body, err := decodeStmtField(m, "body")
	if err != nil {
		return nil, err
	}
	return &ast.WithStatement{Token: tok(m), Target: target, Body: body}, nil
}

func decodeExitKind(s string) ast.ExitKind {
	switch s {
	case "Do":
		return ast.ExitDo
	case "While":
		return ast.ExitWhile
	case "Sub":
		return ast.ExitSub
	case "Function":
		return ast.ExitFunction
	default:
		return ast.ExitFor
	}
}

func decodeAssignmentOperator(s string) ast.AssignmentOperator {
	switch s {
	case "+=":
		return ast.AssignAdd
	case "-=":
		return ast.AssignSub
	case "*=":
		return ast.AssignMul
	case "/=":
		return ast.AssignDiv
	default:
		return ast.AssignSimple
	}
}

func decodeAssignmentStatement(m obj) (*ast.AssignmentStatement, error) {
	target, err := decodeExprField(m, "target")
	if err != nil {
		return nil, err
	}
	val, err := decodeExprField(m, "value")
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentStatement{
		Token:    tok(m),
		Target:   target,
		Operator: decodeAssignmentOperator(str(m, "operator")),
		Value:    val,
	}, nil
}
