// Package optimizer implements the mandatory IR passes of spec §4.4
// (dead-code elimination, constant folding, copy propagation) plus a pure
// AST-level FoldConstant the semantic analyzer reuses to reject
// non-constant Select Case labels (§9 Open Question resolution). Pass
// enable/ordering architecture adapted from the teacher compiler's
// bytecode optimizer (OptimizationPass enum, WithOptimizationPass
// options, total-modification reporting), re-targeted from a flat
// instruction chunk to a basic-block CFG.
package optimizer

import "github.com/basilisc/basilc/ast"

// FoldConstant attempts to evaluate expr at compile time. It handles
// literals and binary/unary operations over already-constant operands; it
// returns ok=false for anything involving a non-constant (identifier,
// call, member access, etc.), which the analyzer treats as "not a
// compile-time constant" (§4.1 Select Case label validation).
func FoldConstant(expr ast.Expression) (value any, ok bool) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, true
	case *ast.UnaryExpression:
		operand, ok := FoldConstant(e.Operand)
		if !ok {
			return nil, false
		}
		return foldUnary(e.Operator, operand)
	case *ast.BinaryExpression:
		left, ok := FoldConstant(e.Left)
		if !ok {
			return nil, false
		}
		right, ok := FoldConstant(e.Right)
		if !ok {
			return nil, false
		}
		return foldBinary(e.Operator, left, right)
	default:
		return nil, false
	}
}

func foldUnary(op string, operand any) (any, bool) {
	switch op {
	case "-":
		switch v := operand.(type) {
		case int64:
			return -v, true
		case float64:
			return -v, true
		}
	case "Not", "!":
		if v, ok := operand.(bool); ok {
			return !v, true
		}
	}
	return nil, false
}

func foldBinary(op string, left, right any) (any, bool) {
	li, lIsInt := left.(int64)
	ri, rIsInt := right.(int64)
	if lIsInt && rIsInt {
		switch op {
		case "+":
			return li + ri, true
		case "-":
			return li - ri, true
		case "*":
			return li * ri, true
		case "/":
			if ri == 0 {
				return nil, false
			}
			return li / ri, true
		case "Mod":
			if ri == 0 {
				return nil, false
			}
			return li % ri, true
		case "=":
			return li == ri, true
		case "<>":
			return li != ri, true
		case "<":
			return li < ri, true
		case "<=":
			return li <= ri, true
		case ">":
			return li > ri, true
		case ">=":
			return li >= ri, true
		}
	}

	lf, lIsFloat := asFloat(left)
	rf, rIsFloat := asFloat(right)
	if lIsFloat && rIsFloat {
		switch op {
		case "+":
			return lf + rf, true
		case "-":
			return lf - rf, true
		case "*":
			return lf * rf, true
		case "/":
			if rf == 0 {
				return nil, false
			}
			return lf / rf, true
		case "=":
			return lf == rf, true
		case "<>":
			return lf != rf, true
		case "<":
			return lf < rf, true
		case "<=":
			return lf <= rf, true
		case ">":
			return lf > rf, true
		case ">=":
			return lf >= rf, true
		}
	}

	ls, lIsStr := left.(string)
	rs, rIsStr := right.(string)
	if lIsStr && rIsStr && op == "&" {
		return ls + rs, true
	}

	lb, lIsBool := left.(bool)
	rb, rIsBool := right.(bool)
	if lIsBool && rIsBool {
		switch op {
		case "And":
			return lb && rb, true
		case "Or":
			return lb || rb, true
		case "=":
			return lb == rb, true
		case "<>":
			return lb != rb, true
		}
	}

	return nil, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
