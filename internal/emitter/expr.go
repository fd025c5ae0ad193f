package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/basilisc/basilc/internal/ir"
)

// expr renders v as an expression. A declared value renders as its
// sanitized name; a constant renders as a literal; a compiler temp
// recurses into the instruction that defined it (§4.5's recursive-
// descent emit_expression), guarded against cycles by visiting.
func (fe *funcEmitter) expr(v *ir.Value) string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case ir.ValueConstant:
		return literal(v.Constant)
	case ir.ValueTemp:
		if fe.visiting[v.ID] {
			return fmt.Sprintf("t%d", v.ID)
		}
		inst, ok := fe.prep.tempDef[v.ID]
		if !ok {
			return fmt.Sprintf("t%d", v.ID)
		}
		fe.visiting[v.ID] = true
		out := fe.exprInst(inst)
		delete(fe.visiting, v.ID)
		return out
	default:
		return sanitizeIdent(v.Name)
	}
}

// exprValueTop is exprTop's counterpart for a *ir.Value that may be a
// compiler temp standing directly in statement/return position (e.g. a
// return statement's value) rather than nested inside another expression.
func (fe *funcEmitter) exprValueTop(v *ir.Value) string {
	if v == nil {
		return ""
	}
	if v.Kind == ir.ValueTemp && !fe.visiting[v.ID] {
		if inst, ok := fe.prep.tempDef[v.ID]; ok {
			fe.visiting[v.ID] = true
			out := fe.exprTop(inst)
			delete(fe.visiting, v.ID)
			return out
		}
	}
	return fe.expr(v)
}

func literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case rune:
		return "'" + string(val) + "'"
	default:
		return fmt.Sprint(val)
	}
}

// exprInst renders a value-producing instruction as a sub-expression,
// recursing into its operands via expr. Used both to inline an
// unreferenced-elsewhere temp and to render the right-hand side of a
// statement that does get its own line.
func (fe *funcEmitter) exprInst(inst ir.Instruction) string {
	return fe.exprInstAt(inst, false)
}

// exprTop renders inst the way exprInst does, except that a BinaryOp/
// Compare result is left unparenthesized: inst is being rendered directly
// at statement/return top level, not nested as another expression's
// operand, so the surrounding parens buy nothing but noise (§4.5
// "parenthesization based on whether the result is a sub-expression").
func (fe *funcEmitter) exprTop(inst ir.Instruction) string {
	return fe.exprInstAt(inst, true)
}

func (fe *funcEmitter) exprInstAt(inst ir.Instruction, top bool) string {
	switch in := inst.(type) {
	case *ir.ConstantInst:
		return fe.expr(in.Value)
	case *ir.BinaryOp:
		s := fmt.Sprintf("%s %s %s", fe.expr(in.Left), binOpText(in.Op), fe.expr(in.Right))
		if top {
			return s
		}
		return "(" + s + ")"
	case *ir.UnaryOp:
		return fmt.Sprintf("(%s%s)", unOpText(in.Op), fe.expr(in.Operand))
	case *ir.Compare:
		s := fmt.Sprintf("%s %s %s", fe.expr(in.Left), cmpOpText(in.Op), fe.expr(in.Right))
		if top {
			return s
		}
		return "(" + s + ")"
	case *ir.Load:
		return fe.expr(in.Address)
	case *ir.GetElementPtr:
		return fe.arrayRef(in.Base, in.Indices)
	case *ir.ArrayAlloc:
		lens := make([]string, len(in.Lengths))
		for i, l := range in.Lengths {
			lens[i] = fe.expr(l)
		}
		return fmt.Sprintf("new %s[%s]", typeName(in.ElementType), strings.Join(lens, ", "))
	case *ir.Cast:
		return fmt.Sprintf("(%s)(%s)", typeName(in.Type), fe.expr(in.Operand))
	case *ir.FieldAccess:
		return fmt.Sprintf("%s.%s", fe.expr(in.Object), sanitizeIdent(in.Field))
	case *ir.NewObject:
		return fmt.Sprintf("new %s(%s)", sanitizeIdent(in.ClassName), fe.argList(in.Args))
	case *ir.Call:
		return fe.callExpr(in.Function, in.Args)
	case *ir.InstanceMethodCall:
		return fmt.Sprintf("%s.%s(%s)", fe.expr(in.Receiver), sanitizeIdent(in.Method), fe.argList(in.Args))
	case *ir.BaseMethodCall:
		return fmt.Sprintf("base.%s(%s)", sanitizeIdent(in.Method), fe.argList(in.Args))
	case *ir.Await:
		return fmt.Sprintf("await %s", fe.expr(in.Operand))
	case *ir.Alloca:
		if in.Dest != nil && in.Dest.Name != "" {
			return sanitizeIdent(strings.TrimSuffix(in.Dest.Name, "_addr"))
		}
		return fe.expr(in.Dest)
	default:
		return fmt.Sprintf("/* unsupported expr %T */", inst)
	}
}

func (fe *funcEmitter) arrayRef(base *ir.Value, indices []*ir.Value) string {
	parts := make([]string, len(indices))
	for i, ix := range indices {
		parts[i] = fe.expr(ix)
	}
	return fmt.Sprintf("%s[%s]", fe.expr(base), strings.Join(parts, ", "))
}

func (fe *funcEmitter) argList(args []*ir.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fe.expr(a)
	}
	return strings.Join(parts, ", ")
}

func binOpText(op ir.BinaryOpKind) string {
	switch op {
	case ir.Add:
		return "+"
	case ir.Sub:
		return "-"
	case ir.Mul:
		return "*"
	case ir.Div:
		return "/"
	case ir.Mod:
		return "%"
	case ir.IntDiv:
		return "/"
	case ir.And:
		return "&&"
	case ir.Or:
		return "||"
	case ir.Xor:
		return "^"
	case ir.Shl:
		return "<<"
	case ir.Shr:
		return ">>"
	case ir.Concat:
		return "+"
	default:
		return "?"
	}
}

func unOpText(op ir.UnaryOpKind) string {
	switch op {
	case ir.Neg:
		return "-"
	case ir.Not:
		return "!"
	case ir.BitwiseNot:
		return "^"
	case ir.Inc:
		return "++"
	case ir.Dec:
		return "--"
	default:
		return "?"
	}
}

func cmpOpText(op ir.CompareKind) string {
	switch op {
	case ir.Eq:
		return "=="
	case ir.Ne:
		return "!="
	case ir.Lt:
		return "<"
	case ir.Le:
		return "<="
	case ir.Gt:
		return ">"
	case ir.Ge:
		return ">="
	default:
		return "?"
	}
}
