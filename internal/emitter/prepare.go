package emitter

import "github.com/basilisc/basilc/internal/ir"

// funcPrep holds the per-function bookkeeping the emitter's preparation
// pass builds before walking a function's CFG (§4.5 "Preparation per
// function"): which identifiers are declared (vs. compiler temps), how
// many times each value is used, and which instruction first produced a
// given temp so a later reference can be inlined instead of re-emitted.
type funcPrep struct {
	fn *ir.Function

	// declared holds the sanitized name of every parameter and local of
	// the function; globals are not included. Nothing reads it: the "is
	// this a declared identifier" check goes through isDeclaredValue.
	declared map[string]bool

	// useCount counts how many times each value (by ID) appears as an
	// operand anywhere in the function, including inside terminators.
	useCount map[int]int

	// tempDef maps a temp value's ID to the instruction that produced it
	// (first definition wins, §4.5), so emit_expression can recurse into
	// it when the temp is referenced rather than re-running the op.
	tempDef map[int]ir.Instruction
}

func prepareFunction(fn *ir.Function) *funcPrep {
	p := &funcPrep{
		fn:       fn,
		declared: make(map[string]bool),
		useCount: make(map[int]int),
		tempDef:  make(map[int]ir.Instruction),
	}
	for _, v := range fn.Parameters {
		p.declared[sanitizeIdent(v.Name)] = true
	}
	for _, v := range fn.Locals {
		p.declared[sanitizeIdent(v.Name)] = true
	}

	for _, b := range fn.Blocks {
		for _, inst := range b.Instructions {
			for _, operand := range inst.Operands() {
				if operand != nil {
					p.useCount[operand.ID]++
				}
			}
			if res := inst.Result(); res != nil && res.Kind == ir.ValueTemp {
				if _, exists := p.tempDef[res.ID]; !exists {
					p.tempDef[res.ID] = inst
				}
			}
		}
	}
	return p
}

// isDeclaredValue reports whether v names a real source identifier
// (parameter/local/global), the distinction should_emit_instruction and
// emit_expression both hinge on (§3.5, §4.5).
func (p *funcPrep) isDeclaredValue(v *ir.Value) bool {
	return v != nil && v.IsDeclared()
}
