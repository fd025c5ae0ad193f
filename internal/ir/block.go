package ir

// BlockTag is the explicit structural role the IR Builder stamps on a
// block. The emitter reads these, not block names — names remain purely
// diagnostic (§9 "Name-based pattern recognition in the emitter": the
// single most important robustness improvement, carried into §4.5).
type BlockTag int

const (
	TagPlain BlockTag = iota
	TagEntry
	TagLoopHeader
	TagLoopBody
	TagLoopInc
	TagLoopEnd
	TagIfThen
	TagIfElse
	TagMerge
	TagSwitchCase
	TagSwitchDefault
	TagSwitchEnd
	TagTryBody
	TagCatchBody
	TagFinallyBody
	TagTryEnd
)

func (t BlockTag) String() string {
	switch t {
	case TagEntry:
		return "Entry"
	case TagLoopHeader:
		return "LoopHeader"
	case TagLoopBody:
		return "LoopBody"
	case TagLoopInc:
		return "LoopInc"
	case TagLoopEnd:
		return "LoopEnd"
	case TagIfThen:
		return "IfThen"
	case TagIfElse:
		return "IfElse"
	case TagMerge:
		return "Merge"
	case TagSwitchCase:
		return "SwitchCase"
	case TagSwitchDefault:
		return "SwitchDefault"
	case TagSwitchEnd:
		return "SwitchEnd"
	case TagTryBody:
		return "TryBody"
	case TagCatchBody:
		return "CatchBody"
	case TagFinallyBody:
		return "FinallyBody"
	case TagTryEnd:
		return "TryEnd"
	default:
		return "Plain"
	}
}

// BasicBlock is a straight-line instruction sequence with a single
// terminator (§3.5).
type BasicBlock struct {
	ID   int
	Name string // diagnostic only, e.g. "if.then.3"
	Tag  BlockTag

	// LoopID ties LoopHeader/LoopBody/LoopInc/LoopEnd blocks of the same
	// loop together, disambiguating nested loops without resorting to
	// name-prefix matching (§4.2's nested-loop disambiguation, tag-based).
	LoopID int

	// PostTest marks a LoopHeader block whose condition is evaluated after
	// the body runs at least once (Do ... Loop While/Until), so the
	// emitter renders a `do { } while (...)` shape instead of a pre-test
	// `while (...) { }` one.
	PostTest bool

	Instructions []Instruction
	Preds        []*BasicBlock
	Succs        []*BasicBlock
}

// Terminated reports whether the block's last instruction is a
// terminator.
func (b *BasicBlock) Terminated() bool {
	if len(b.Instructions) == 0 {
		return false
	}
	_, ok := b.Instructions[len(b.Instructions)-1].(Terminator)
	return ok
}

// TerminatorInst returns the block's terminator instruction, or nil if the
// block is not yet terminated.
func (b *BasicBlock) TerminatorInst() Terminator {
	if len(b.Instructions) == 0 {
		return nil
	}
	t, _ := b.Instructions[len(b.Instructions)-1].(Terminator)
	return t
}

// Append adds inst to the block's instruction list and links
// predecessor/successor pointers for the terminators that reference other
// blocks.
func (b *BasicBlock) Append(inst Instruction) {
	b.Instructions = append(b.Instructions, inst)
	switch t := inst.(type) {
	case *Branch:
		b.linkSucc(t.Target)
	case *ConditionalBranch:
		b.linkSucc(t.True)
		b.linkSucc(t.False)
	case *Switch:
		for _, c := range t.Cases {
			b.linkSucc(c.Target)
		}
		if t.Default != nil {
			b.linkSucc(t.Default)
		}
	}
}

func (b *BasicBlock) linkSucc(target *BasicBlock) {
	for _, s := range b.Succs {
		if s == target {
			return
		}
	}
	b.Succs = append(b.Succs, target)
	target.Preds = append(target.Preds, b)
}
