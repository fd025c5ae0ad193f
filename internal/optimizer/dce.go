package optimizer

import "github.com/basilisc/basilc/internal/ir"

// isPure reports whether inst is of a kind with no observable effect beyond
// its result value — safe for dead-code elimination when that result goes
// unused. Calls, stores, object construction, and await/yield are
// excluded because removing them could change observable behavior.
func isPure(inst ir.Instruction) bool {
	switch inst.(type) {
	case *ir.BinaryOp, *ir.UnaryOp, *ir.Compare, *ir.Cast, *ir.ConstantInst,
		*ir.Phi, *ir.Load, *ir.GetElementPtr, *ir.Assignment:
		return true
	default:
		return false
	}
}

// deadCodeElimination removes instructions with no observable effect and
// no used result (§4.4). It iterates to a fixed point since removing one
// dead instruction can make its sole operand's producer dead in turn.
func deadCodeElimination(fn *ir.Function) int {
	total := 0
	for {
		useCounts := countUses(fn)
		removed := 0
		for _, block := range fn.Blocks {
			kept := block.Instructions[:0]
			for _, inst := range block.Instructions {
				result := inst.Result()
				if result != nil && isPure(inst) && useCounts[result.ID] == 0 && !result.IsDeclared() {
					removed++
					continue
				}
				kept = append(kept, inst)
			}
			block.Instructions = kept
		}
		total += removed
		if removed == 0 {
			break
		}
	}
	return total
}

// countUses tallies how many times each Value ID appears as an operand
// across the function's instructions (including terminator conditions).
func countUses(fn *ir.Function) map[int]int {
	counts := make(map[int]int)
	for _, block := range fn.Blocks {
		for _, inst := range block.Instructions {
			for _, operand := range inst.Operands() {
				if operand != nil {
					counts[operand.ID]++
				}
			}
		}
	}
	return counts
}
