package optimizer

import "github.com/basilisc/basilc/internal/ir"

// copyPropagation rewrites operand references to a temp that is merely a
// copy of another value (an Assignment chain) to reference the original
// source directly, letting dead-code elimination remove the now-unused
// copy (§4.4 "copy propagation across Assignment chains").
func copyPropagation(fn *ir.Function) int {
	copies := make(map[int]*ir.Value)
	for _, block := range fn.Blocks {
		for _, inst := range block.Instructions {
			if asn, ok := inst.(*ir.Assignment); ok && asn.Dest != nil && !asn.Dest.IsDeclared() {
				copies[asn.Dest.ID] = resolve(copies, asn.Value)
			}
		}
	}
	if len(copies) == 0 {
		return 0
	}

	total := 0
	for _, block := range fn.Blocks {
		for _, inst := range block.Instructions {
			total += rewriteOperands(inst, copies)
		}
	}
	return total
}

func resolve(copies map[int]*ir.Value, v *ir.Value) *ir.Value {
	seen := map[int]bool{}
	for v != nil {
		if v.IsDeclared() || v.IsConstant() {
			return v
		}
		next, ok := copies[v.ID]
		if !ok || seen[v.ID] {
			return v
		}
		seen[v.ID] = true
		v = next
	}
	return v
}

// rewriteOperands mutates inst's operand Value pointers in place where a
// field can be reassigned, returning the count of rewrites performed.
func rewriteOperands(inst ir.Instruction, copies map[int]*ir.Value) int {
	total := 0
	replace := func(v **ir.Value) {
		if *v == nil {
			return
		}
		if repl, ok := copies[(*v).ID]; ok && repl != *v {
			*v = repl
			total++
		}
	}
	switch t := inst.(type) {
	case *ir.BinaryOp:
		replace(&t.Left)
		replace(&t.Right)
	case *ir.UnaryOp:
		replace(&t.Operand)
	case *ir.Compare:
		replace(&t.Left)
		replace(&t.Right)
	case *ir.Load:
		replace(&t.Address)
	case *ir.Store:
		replace(&t.Address)
		replace(&t.Value)
	case *ir.GetElementPtr:
		replace(&t.Base)
		for i := range t.Indices {
			replace(&t.Indices[i])
		}
	case *ir.ArrayStore:
		replace(&t.Base)
		replace(&t.Value)
		for i := range t.Indices {
			replace(&t.Indices[i])
		}
	case *ir.ConditionalBranch:
		replace(&t.Condition)
	case *ir.Switch:
		replace(&t.Value)
	case *ir.Return:
		if t.Value != nil {
			replace(&t.Value)
		}
	case *ir.Call:
		for i := range t.Args {
			replace(&t.Args[i])
		}
	case *ir.InstanceMethodCall:
		replace(&t.Receiver)
		for i := range t.Args {
			replace(&t.Args[i])
		}
	case *ir.BaseMethodCall:
		replace(&t.Receiver)
		for i := range t.Args {
			replace(&t.Args[i])
		}
	case *ir.NewObject:
		for i := range t.Args {
			replace(&t.Args[i])
		}
	case *ir.FieldAccess:
		replace(&t.Object)
	case *ir.FieldStore:
		replace(&t.Object)
		replace(&t.Value)
	case *ir.Cast:
		replace(&t.Operand)
	case *ir.Await:
		replace(&t.Operand)
	case *ir.Yield:
		if t.Value != nil {
			replace(&t.Value)
		}
	case *ir.Assignment:
		replace(&t.Value)
	}
	return total
}
