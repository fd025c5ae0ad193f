package optimizer

import "github.com/basilisc/basilc/internal/ir"

// constantFold rewrites BinaryOp/UnaryOp/Compare instructions whose
// operands are both Constant values into an equivalent Assignment to a
// Constant (§4.4 "simple constant folding ... over Constant operands").
func constantFold(fn *ir.Function) int {
	total := 0
	for _, block := range fn.Blocks {
		for i, inst := range block.Instructions {
			folded, ok := foldInstruction(inst)
			if !ok {
				continue
			}
			block.Instructions[i] = folded
			total++
		}
	}
	return total
}

func foldInstruction(inst ir.Instruction) (ir.Instruction, bool) {
	switch op := inst.(type) {
	case *ir.BinaryOp:
		if !op.Left.IsConstant() || !op.Right.IsConstant() {
			return nil, false
		}
		v, ok := foldBinaryOp(op.Op, op.Left.Constant, op.Right.Constant)
		if !ok {
			return nil, false
		}
		return &ir.Assignment{Dest: op.Dest, Value: ir.NewConstant(op.Dest.Type, v)}, true
	case *ir.UnaryOp:
		if !op.Operand.IsConstant() {
			return nil, false
		}
		v, ok := foldUnaryOp(op.Op, op.Operand.Constant)
		if !ok {
			return nil, false
		}
		return &ir.Assignment{Dest: op.Dest, Value: ir.NewConstant(op.Dest.Type, v)}, true
	case *ir.Compare:
		if !op.Left.IsConstant() || !op.Right.IsConstant() {
			return nil, false
		}
		v, ok := foldCompare(op.Op, op.Left.Constant, op.Right.Constant)
		if !ok {
			return nil, false
		}
		return &ir.Assignment{Dest: op.Dest, Value: ir.NewConstant(op.Dest.Type, v)}, true
	default:
		return nil, false
	}
}

func foldBinaryOp(op ir.BinaryOpKind, left, right any) (any, bool) {
	li, lIsInt := left.(int64)
	ri, rIsInt := right.(int64)
	if lIsInt && rIsInt {
		switch op {
		case ir.Add:
			return li + ri, true
		case ir.Sub:
			return li - ri, true
		case ir.Mul:
			return li * ri, true
		case ir.IntDiv:
			if ri == 0 {
				return nil, false
			}
			return li / ri, true
		case ir.Mod:
			if ri == 0 {
				return nil, false
			}
			return li % ri, true
		case ir.And:
			return li != 0 && ri != 0, true
		case ir.Or:
			return li != 0 || ri != 0, true
		case ir.Xor:
			return li ^ ri, true
		case ir.Shl:
			return li << uint(ri), true
		case ir.Shr:
			return li >> uint(ri), true
		}
	}

	lf, lIsF := asFloat(left)
	rf, rIsF := asFloat(right)
	if lIsF && rIsF {
		switch op {
		case ir.Add:
			return lf + rf, true
		case ir.Sub:
			return lf - rf, true
		case ir.Mul:
			return lf * rf, true
		case ir.Div:
			if rf == 0 {
				return nil, false
			}
			return lf / rf, true
		}
	}

	ls, lIsS := left.(string)
	rs, rIsS := right.(string)
	if lIsS && rIsS && op == ir.Concat {
		return ls + rs, true
	}

	return nil, false
}

func foldUnaryOp(op ir.UnaryOpKind, operand any) (any, bool) {
	switch v := operand.(type) {
	case int64:
		switch op {
		case ir.Neg:
			return -v, true
		case ir.BitwiseNot:
			return ^v, true
		}
	case float64:
		if op == ir.Neg {
			return -v, true
		}
	case bool:
		if op == ir.Not {
			return !v, true
		}
	}
	return nil, false
}

func foldCompare(op ir.CompareKind, left, right any) (any, bool) {
	lf, lIsF := asFloat(left)
	rf, rIsF := asFloat(right)
	if lIsF && rIsF {
		switch op {
		case ir.Eq:
			return lf == rf, true
		case ir.Ne:
			return lf != rf, true
		case ir.Lt:
			return lf < rf, true
		case ir.Le:
			return lf <= rf, true
		case ir.Gt:
			return lf > rf, true
		case ir.Ge:
			return lf >= rf, true
		}
	}
	ls, lIsS := left.(string)
	rs, rIsS := right.(string)
	if lIsS && rIsS {
		switch op {
		case ir.Eq:
			return ls == rs, true
		case ir.Ne:
			return ls != rs, true
		case ir.Lt:
			return ls < rs, true
		case ir.Le:
			return ls <= rs, true
		case ir.Gt:
			return ls > rs, true
		case ir.Ge:
			return ls >= rs, true
		}
	}
	return nil, false
}
