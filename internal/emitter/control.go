package emitter

import (
	"fmt"
	"strings"

	"github.com/basilisc/basilc/internal/config"
	"github.com/basilisc/basilc/internal/ir"
)

// funcEmitter walks one function's CFG and renders it as structured
// target-language source (§4.5), reconstructing while/if/switch shapes
// from ir.BlockTag/LoopID instead of matching on block names.
type funcEmitter struct {
	module *ir.Module
	cfg    config.Config
	prep   *funcPrep

	sb     strings.Builder
	indent int

	visiting     map[int]bool
	processed    map[*ir.BasicBlock]bool
	loopEnds     []*ir.BasicBlock
	mergeEnds    []*ir.BasicBlock
	declaredOnce map[string]bool

	// imports accumulates the required-imports half of the stdlib call
	// mapping (§4.5) across every function emitted into the same module,
	// shared by reference so one import list covers the whole unit.
	imports map[string]bool

	pendingSwitchEnd *ir.BasicBlock
}

func newFuncEmitter(module *ir.Module, cfg config.Config, fn *ir.Function, imports map[string]bool) *funcEmitter {
	return &funcEmitter{
		module:       module,
		cfg:          cfg,
		prep:         prepareFunction(fn),
		visiting:     make(map[int]bool),
		processed:    make(map[*ir.BasicBlock]bool),
		declaredOnce: make(map[string]bool),
		imports:      imports,
	}
}

func (fe *funcEmitter) writeLine(format string, args ...any) {
	fe.sb.WriteString(fe.cfg.Indent(fe.indent))
	fe.sb.WriteString(fmt.Sprintf(format, args...))
	fe.sb.WriteString("\n")
}

// renderFunction renders fn's signature and structured body.
func (fe *funcEmitter) renderFunction(fn *ir.Function, access string) string {
	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = fmt.Sprintf("%s %s", typeName(p.Type), sanitizeIdent(p.Name))
		fe.declaredOnce[sanitizeIdent(p.Name)] = true
	}
	ret := typeName(fn.ReturnType)
	modifiers := access
	if fn.Flags.Async {
		modifiers += " async"
	}

	fe.writeLine("%s %s %s(%s) {", strings.TrimSpace(modifiers), ret, sanitizeIdent(fn.Name), strings.Join(params, ", "))
	fe.indent++
	if fn.Entry != nil {
		fe.emitBlock(fn.Entry)
	}
	fe.indent--
	fe.writeLine("}")
	return fe.sb.String()
}

// --- statement-level policy (§4.5 should_emit_instruction) ----------------

func (fe *funcEmitter) shouldEmit(inst ir.Instruction) bool {
	switch in := inst.(type) {
	case *ir.Store, *ir.Assignment, *ir.ArrayStore, *ir.FieldStore:
		return true
	case *ir.Alloca, *ir.Phi, *ir.Label:
		return false
	case *ir.Comment:
		return fe.cfg.EmitComments
	case *ir.Yield:
		return true
	case *ir.Call:
		if in.Dest == nil {
			return true
		}
		if fe.prep.isDeclaredValue(in.Dest) {
			return true
		}
		return fe.prep.useCount[in.Dest.ID] == 0
	default:
		res := inst.Result()
		if res == nil {
			return false
		}
		return fe.prep.isDeclaredValue(res)
	}
}

func (fe *funcEmitter) statementFor(inst ir.Instruction) string {
	switch in := inst.(type) {
	case *ir.Store:
		return fmt.Sprintf("%s = %s;", fe.expr(in.Address), fe.expr(in.Value))
	case *ir.Assignment:
		return fe.declOrAssign(in.Dest, fe.expr(in.Value))
	case *ir.ArrayStore:
		return fmt.Sprintf("%s = %s;", fe.arrayRef(in.Base, in.Indices), fe.expr(in.Value))
	case *ir.FieldStore:
		return fmt.Sprintf("%s.%s = %s;", fe.expr(in.Object), sanitizeIdent(in.Field), fe.expr(in.Value))
	case *ir.Comment:
		return "// " + in.Text
	case *ir.Yield:
		if in.Break {
			return "yield break;"
		}
		return fmt.Sprintf("yield return %s;", fe.expr(in.Value))
	case *ir.Call:
		text := fe.callExpr(in.Function, in.Args)
		if in.Dest != nil && fe.prep.isDeclaredValue(in.Dest) {
			return fe.declOrAssign(in.Dest, text)
		}
		return text + ";"
	default:
		res := inst.Result()
		return fe.declOrAssign(res, fe.exprTop(inst))
	}
}

// declOrAssign renders dest's first write as a typed declaration and
// every subsequent write as a bare assignment (first-definition-wins,
// §4.5).
func (fe *funcEmitter) declOrAssign(dest *ir.Value, rhs string) string {
	name := sanitizeIdent(dest.Name)
	if !fe.declaredOnce[name] {
		fe.declaredOnce[name] = true
		return fmt.Sprintf("%s %s = %s;", typeName(dest.Type), name, rhs)
	}
	return fmt.Sprintf("%s = %s;", name, rhs)
}

func (fe *funcEmitter) emitStatementsOf(b *ir.BasicBlock) {
	insts := b.Instructions
	if len(insts) == 0 {
		return
	}
	// the last instruction is always the terminator (§3.5); statements are
	// everything before it.
	body := insts
	if _, ok := insts[len(insts)-1].(ir.Terminator); ok {
		body = insts[:len(insts)-1]
	}
	for _, inst := range body {
		if fe.shouldEmit(inst) {
			fe.writeLine("%s", fe.statementFor(inst))
		}
	}
}

// --- CFG -> structured control flow (§4.5) ---------------------------------

func (fe *funcEmitter) emitBlock(b *ir.BasicBlock) {
	if b == nil || fe.processed[b] {
		return
	}
	if b.Tag == ir.TagLoopBody {
		if header := fe.postTestHeaderFor(b); header != nil {
			fe.emitDoWhileLoop(b, header)
			return
		}
	}
	fe.processed[b] = true
	fe.emitStatementsOf(b)

	switch t := b.TerminatorInst().(type) {
	case nil:
		return
	case *ir.Return:
		fe.emitReturn(t)
	case *ir.Branch:
		fe.followBranch(t.Target)
	case *ir.ConditionalBranch:
		fe.emitConditional(b, t)
	case *ir.Switch:
		fe.emitSwitch(t)
	}
}

func (fe *funcEmitter) emitReturn(t *ir.Return) {
	if t.Value == nil {
		if fe.indent <= 1 {
			return
		}
		fe.writeLine("return;")
		return
	}
	fe.writeLine("return %s;", fe.exprValueTop(t.Value))
}

// followBranch resolves an unconditional jump: a back-edge to an
// already-emitted block (loop header, or a merge point reached on another
// path) needs no text; a jump to the current loop's end block becomes a
// break; anything else is emitted inline.
func (fe *funcEmitter) followBranch(target *ir.BasicBlock) {
	if fe.processed[target] {
		return
	}
	if len(fe.loopEnds) > 0 && target == fe.loopEnds[len(fe.loopEnds)-1] {
		fe.writeLine("break;")
		return
	}
	if len(fe.mergeEnds) > 0 && target == fe.mergeEnds[len(fe.mergeEnds)-1] {
		return
	}
	fe.emitBlock(target)
}

// branchTarget returns b's Branch terminator target, or nil when b ends in
// something else (Return, a nested conditional, ...) that carries no single
// fall-through continuation of its own.
func (fe *funcEmitter) branchTarget(b *ir.BasicBlock) *ir.BasicBlock {
	if br, ok := b.TerminatorInst().(*ir.Branch); ok {
		return br.Target
	}
	return nil
}

// emitConditional recognizes, in order: a while/until-style loop header
// (True or False tagged LoopBody), an if/then[/else] (True tagged
// IfThen), and falls back to a raw if/else for any other shape (§4.5).
//
// Both arms may fall through to a shared merge block (the statements
// following the If in source). That merge is pushed onto mergeEnds before
// either arm is emitted, so a fall-through Branch reaching it from inside
// an arm stops there instead of recursing in; the merge block is then
// emitted once, at this conditional's own level, after the whole if/else
// is rendered.
func (fe *funcEmitter) emitConditional(b *ir.BasicBlock, t *ir.ConditionalBranch) {
	if b.Tag == ir.TagLoopHeader && (t.True.Tag == ir.TagLoopBody || t.False.Tag == ir.TagLoopBody) {
		fe.emitLoop(t)
		return
	}

	if t.True.Tag == ir.TagIfThen {
		hasElse := t.False != nil && t.False.Tag == ir.TagIfElse
		merge := fe.branchTarget(t.True)
		if hasElse {
			if m := fe.branchTarget(t.False); m != nil {
				merge = m
			}
		} else if t.False != nil {
			merge = t.False
		}

		fe.writeLine("if (%s) {", fe.expr(t.Condition))
		fe.indent++
		fe.pushMerge(merge)
		fe.emitBlock(t.True)
		fe.popMerge(merge)
		fe.indent--
		if hasElse {
			fe.writeLine("} else {")
			fe.indent++
			fe.pushMerge(merge)
			fe.emitBlock(t.False)
			fe.popMerge(merge)
			fe.indent--
			fe.writeLine("}")
		} else {
			fe.writeLine("}")
		}
		if merge != nil {
			fe.emitBlock(merge)
		}
		return
	}

	merge := fe.branchTarget(t.True)
	if m := fe.branchTarget(t.False); m != nil {
		merge = m
	}

	fe.writeLine("if (%s) {", fe.expr(t.Condition))
	fe.indent++
	fe.pushMerge(merge)
	fe.emitBlock(t.True)
	fe.popMerge(merge)
	fe.indent--
	fe.writeLine("} else {")
	fe.indent++
	fe.pushMerge(merge)
	fe.emitBlock(t.False)
	fe.popMerge(merge)
	fe.indent--
	fe.writeLine("}")
	if merge != nil {
		fe.emitBlock(merge)
	}
}

// pushMerge/popMerge guard followBranch's merge-boundary check (mirrors the
// loopEnds stack used for break); a nil merge is a no-op so callers don't
// need to special-case arms with no shared continuation (e.g. both return).
func (fe *funcEmitter) pushMerge(merge *ir.BasicBlock) {
	if merge != nil {
		fe.mergeEnds = append(fe.mergeEnds, merge)
	}
}

func (fe *funcEmitter) popMerge(merge *ir.BasicBlock) {
	if merge != nil {
		fe.mergeEnds = fe.mergeEnds[:len(fe.mergeEnds)-1]
	}
}

// emitLoop renders a while-style loop: whichever branch target is tagged
// LoopBody is the continuation, the other is the loop's end — this reads
// correctly for both pre-test (True=body) and Until-negated (False=body,
// condition inverted) shapes without needing to know which source
// statement produced it.
func (fe *funcEmitter) emitLoop(t *ir.ConditionalBranch) {
	body, end := t.True, t.False
	negate := false
	if body.Tag != ir.TagLoopBody {
		body, end = end, body
		negate = true
	}

	cond := fe.expr(t.Condition)
	if negate {
		cond = "!(" + cond + ")"
	}

	fe.writeLine("while (%s) {", cond)
	fe.indent++
	fe.loopEnds = append(fe.loopEnds, end)
	fe.emitBlock(body)
	fe.loopEnds = fe.loopEnds[:len(fe.loopEnds)-1]
	fe.indent--
	fe.writeLine("}")
	fe.emitBlock(end)
}

// loopTagSucc returns body's successor carrying tag within the same loop
// (matched by LoopID), or nil.
func (fe *funcEmitter) loopTagSucc(body *ir.BasicBlock, tag ir.BlockTag) *ir.BasicBlock {
	for _, s := range body.Succs {
		if s.Tag == tag && s.LoopID == body.LoopID {
			return s
		}
	}
	return nil
}

// postTestHeaderFor returns body's post-test loop header (the LoopHeader
// block do.cond, reached unconditionally after the body runs) when body is
// the body of a Do ... Loop While/Until, or nil otherwise. A post-test
// loop's entry branches straight into its body block, ahead of its header,
// so the body must be recognized and rendered here rather than by the
// generic top-level block walk (which would otherwise consume and mark it
// processed before the loop's own structure is reconstructed).
func (fe *funcEmitter) postTestHeaderFor(body *ir.BasicBlock) *ir.BasicBlock {
	for _, s := range body.Succs {
		if s.Tag == ir.TagLoopHeader && s.PostTest && s.LoopID == body.LoopID {
			return s
		}
	}
	return nil
}

// emitDoWhileLoop renders a post-test Do ... Loop While/Until as
// `do { ... } while (cond);`, negating cond when the header's True branch
// doesn't lead back into the body (Until semantics, §8 S6).
func (fe *funcEmitter) emitDoWhileLoop(body, header *ir.BasicBlock) {
	end := fe.loopTagSucc(header, ir.TagLoopEnd)

	fe.processed[body] = true
	fe.writeLine("do {")
	fe.indent++
	fe.emitStatementsOf(body)
	fe.loopEnds = append(fe.loopEnds, end)
	switch bt := body.TerminatorInst().(type) {
	case *ir.Return:
		fe.emitReturn(bt)
	case *ir.Branch:
		if bt.Target != header {
			fe.followBranch(bt.Target)
		}
	case *ir.ConditionalBranch:
		fe.emitConditional(body, bt)
	case *ir.Switch:
		fe.emitSwitch(bt)
	}
	fe.loopEnds = fe.loopEnds[:len(fe.loopEnds)-1]
	fe.indent--

	fe.processed[header] = true
	cb, ok := header.TerminatorInst().(*ir.ConditionalBranch)
	if !ok {
		fe.writeLine("} while (false);")
		return
	}
	cond := fe.expr(cb.Condition)
	if cb.True != body {
		cond = "!(" + cond + ")"
	}
	fe.writeLine("} while (%s);", cond)
	fe.emitBlock(end)
}

// emitSwitch groups cases sharing a destination block under shared case
// labels (§4.5), appending a `default:` arm when the Select has a Case
// Else, and resumes at the shared end block once every arm has been
// rendered.
func (fe *funcEmitter) emitSwitch(t *ir.Switch) {
	type group struct {
		values []*ir.Value
		target *ir.BasicBlock
	}
	var groups []group
	index := make(map[*ir.BasicBlock]int)
	for _, c := range t.Cases {
		if i, ok := index[c.Target]; ok {
			groups[i].values = append(groups[i].values, c.Value)
			continue
		}
		index[c.Target] = len(groups)
		groups = append(groups, group{values: []*ir.Value{c.Value}, target: c.Target})
	}

	fe.writeLine("switch (%s) {", fe.expr(t.Value))
	fe.indent++
	for _, g := range groups {
		for _, v := range g.values {
			fe.writeLine("case %s:", fe.expr(v))
		}
		fe.indent++
		fe.emitCaseBody(g.target)
		fe.indent--
	}
	if t.Default != nil && t.Default.Tag != ir.TagSwitchEnd {
		fe.writeLine("default:")
		fe.indent++
		fe.emitCaseBody(t.Default)
		fe.indent--
	} else if t.Default != nil && fe.pendingSwitchEnd == nil {
		fe.pendingSwitchEnd = t.Default
	}
	fe.indent--
	fe.writeLine("}")

	if fe.pendingSwitchEnd != nil {
		end := fe.pendingSwitchEnd
		fe.pendingSwitchEnd = nil
		fe.emitBlock(end)
	}
}

// emitCaseBody renders one case/default arm's statements, ending in an
// explicit break unless the arm itself returns (§4.5 "break suppressed if
// body ends in Return").
func (fe *funcEmitter) emitCaseBody(target *ir.BasicBlock) {
	if fe.processed[target] {
		return
	}
	fe.processed[target] = true
	fe.emitStatementsOf(target)

	switch t := target.TerminatorInst().(type) {
	case *ir.Return:
		fe.emitReturn(t)
	case *ir.Branch:
		fe.writeLine("break;")
		fe.pendingSwitchEnd = t.Target
	default:
		fe.writeLine("break;")
	}
}
