package irbuilder

import (
	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/ir"
	"github.com/basilisc/basilc/internal/types"
)

// buildStatement lowers stmt into zero or more instructions in the current
// block, switching blocks as control-flow constructs require (§4.2).
func (b *Builder) buildStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		for _, inner := range s.Statements {
			if b.currentBlock.Terminated() {
				return
			}
			b.buildStatement(inner)
		}
	case *ast.VariableDeclaration:
		b.buildLocalVarDecl(s)
	case *ast.ExpressionStatement:
		b.buildExpression(s.Expression)
	case *ast.AssignmentStatement:
		b.buildAssignmentStatement(s)
	case *ast.IfStatement:
		b.buildIfChain(s.Condition, s.Then, s.ElseIfs, s.Else)
	case *ast.SelectStatement:
		b.buildSelectStatement(s)
	case *ast.ForStatement:
		b.buildForStatement(s)
	case *ast.ForEachStatement:
		b.buildForEachStatement(s)
	case *ast.WhileStatement:
		b.buildWhileStatement(s)
	case *ast.DoStatement:
		b.buildDoStatement(s)
	case *ast.TryStatement:
		b.buildTryStatement(s)
	case *ast.WithStatement:
		b.buildWithStatement(s)
	case *ast.ExitStatement:
		b.buildExitStatement(s)
	case *ast.ReturnStatement:
		b.buildReturnStatement(s)
	case *ast.ThrowStatement:
		b.buildThrowStatement(s)
	case *ast.RaiseEventStatement:
		args := make([]*ir.Value, len(s.Args))
		for i, a := range s.Args {
			args[i] = b.buildExpression(a)
		}
		b.emit(&ir.Call{Function: "RaiseEvent$" + s.Name, Args: args})
	case *ast.AddHandlerStatement:
		event := b.buildExpression(s.Event)
		handler := b.buildExpression(s.Handler)
		b.emit(&ir.Call{Function: "AddHandler", Args: []*ir.Value{event, handler}})
	case *ast.RemoveHandlerStatement:
		event := b.buildExpression(s.Event)
		handler := b.buildExpression(s.Handler)
		b.emit(&ir.Call{Function: "RemoveHandler", Args: []*ir.Value{event, handler}})
	case *ast.YieldStatement:
		if s.Break {
			b.emit(&ir.Yield{Break: true})
			return
		}
		v := b.buildExpression(s.Value)
		b.emit(&ir.Yield{Value: v})
	default:
		b.errorf("irbuilder: unhandled statement %T", stmt)
	}
}

func (b *Builder) buildLocalVarDecl(d *ast.VariableDeclaration) {
	t := b.resolvedType(d)
	if d.Init == nil {
		local := b.currentFunc.NewLocal(d.Name, t)
		b.emit(&ir.Assignment{Dest: local, Value: zeroValue(t)})
		b.bindName(d.Name, local)
		return
	}
	if !b.opts.NoFold {
		switch d.Init.(type) {
		case *ast.BinaryExpression, *ast.UnaryExpression, *ast.CallExpression:
			v := b.buildExpression(d.Init)
			if v != nil {
				v.Name = d.Name
				v.Kind = ir.ValueVariable
				b.bindName(d.Name, v)
				return
			}
		}
	}
	initVal := b.buildExpression(d.Init)
	local := b.currentFunc.NewLocal(d.Name, t)
	b.emit(&ir.Assignment{Dest: local, Value: initVal})
	b.bindName(d.Name, local)
}

// buildAssignToIdentifier implements §3.5/§4.2's "critical" SSA-name
// renaming optimization: when the right-hand side is the direct result of
// a BinaryOp/UnaryOp/Call, the producing instruction's own Dest is
// retargeted to the assignment's declared variable instead of emitting a
// separate Assignment, collapsing `t0 = a+b; x = t0` into `x = a+b`.
func (b *Builder) buildAssignToIdentifier(name string, valueExpr ast.Expression) {
	if !b.opts.NoFold {
		switch valueExpr.(type) {
		case *ast.BinaryExpression, *ast.UnaryExpression, *ast.CallExpression:
			v := b.buildExpression(valueExpr)
			if v != nil {
				v.Name = name
				v.Kind = ir.ValueVariable
				b.rebindName(name, v)
				return
			}
		}
	}
	v := b.buildExpression(valueExpr)
	dest, ok := b.lookupName(name)
	if !ok {
		dest = b.currentFunc.NewLocal(name, v.Type)
	}
	b.emit(&ir.Assignment{Dest: dest, Value: v})
	b.rebindName(name, dest)
}

func compoundOpKind(op ast.AssignmentOperator) ir.BinaryOpKind {
	switch op {
	case ast.AssignAdd:
		return ir.Add
	case ast.AssignSub:
		return ir.Sub
	case ast.AssignMul:
		return ir.Mul
	case ast.AssignDiv:
		return ir.Div
	default:
		return ir.Add
	}
}

func (b *Builder) buildAssignmentStatement(s *ast.AssignmentStatement) {
	switch target := s.Target.(type) {
	case *ast.Identifier:
		if s.Operator == ast.AssignSimple {
			b.buildAssignToIdentifier(target.Value, s.Value)
			return
		}
		cur, _ := b.lookupName(target.Value)
		rhs := b.buildExpression(s.Value)
		b.emit(&ir.BinaryOp{Dest: cur, Op: compoundOpKind(s.Operator), Left: cur, Right: rhs})
		b.rebindName(target.Value, cur)
	case *ast.MemberAccessExpression:
		obj := b.buildExpression(target.Object)
		rhs := b.valueForCompoundTarget(s, func() *ir.Value {
			cur := b.currentFunc.NewTemp(b.resolvedType(target))
			b.emit(&ir.FieldAccess{Dest: cur, Object: obj, Field: target.Member})
			return cur
		})
		b.emit(&ir.FieldStore{Object: obj, Field: target.Member, Value: rhs})
	case *ast.ArrayAccessExpression:
		base := b.buildExpression(target.Array)
		indices := make([]*ir.Value, len(target.Indices))
		for i, ix := range target.Indices {
			indices[i] = b.buildExpression(ix)
		}
		rhs := b.valueForCompoundTarget(s, func() *ir.Value {
			addr := b.currentFunc.NewTemp(b.module.Types.PointerTo(b.resolvedType(target)))
			b.emit(&ir.GetElementPtr{Dest: addr, Base: base, Indices: indices})
			cur := b.currentFunc.NewTemp(b.resolvedType(target))
			b.emit(&ir.Load{Dest: cur, Address: addr})
			return cur
		})
		b.emit(&ir.ArrayStore{Base: base, Indices: indices, Value: rhs})
	default:
		b.errorf("irbuilder: unsupported assignment target %T", s.Target)
	}
}

// valueForCompoundTarget evaluates a field/array assignment's right-hand
// side, reading the current value via readCurrent first when the
// assignment is compound (+=, -=, etc).
func (b *Builder) valueForCompoundTarget(s *ast.AssignmentStatement, readCurrent func() *ir.Value) *ir.Value {
	if s.Operator == ast.AssignSimple {
		return b.buildExpression(s.Value)
	}
	cur := readCurrent()
	rhs := b.buildExpression(s.Value)
	dest := b.currentFunc.NewTemp(cur.Type)
	b.emit(&ir.BinaryOp{Dest: dest, Op: compoundOpKind(s.Operator), Left: cur, Right: rhs})
	return dest
}

// buildIfChain lowers If/ElseIf*/Else, recursing so no ElseIf branch is
// ever dropped (§9 Open Question: ElseIf is an ordered list, not nested
// Ifs, on the AST — but the IR itself is free to nest, since the emitter
// reconstructs structure from BlockTag, not from IR shape).
func (b *Builder) buildIfChain(cond ast.Expression, then ast.Statement, elseIfs []ast.ElseIfClause, els ast.Statement) {
	condVal := b.buildExpression(cond)
	thenBlock := b.currentFunc.NewBlock("if.then", ir.TagIfThen)
	hasElse := len(elseIfs) > 0 || els != nil
	endBlock := b.currentFunc.NewBlock("if.end", ir.TagMerge)

	falseTarget := endBlock
	var elseBlock *ir.BasicBlock
	if hasElse {
		elseBlock = b.currentFunc.NewBlock("if.else", ir.TagIfElse)
		falseTarget = elseBlock
	}
	b.emit(&ir.ConditionalBranch{Condition: condVal, True: thenBlock, False: falseTarget})

	b.switchTo(thenBlock)
	b.buildStatement(then)
	if !b.currentBlock.Terminated() {
		b.emit(&ir.Branch{Target: endBlock})
	}

	if hasElse {
		b.switchTo(elseBlock)
		if len(elseIfs) > 0 {
			next := elseIfs[0]
			b.buildIfChain(next.Condition, next.Body, elseIfs[1:], els)
		} else {
			b.buildStatement(els)
		}
		if !b.currentBlock.Terminated() {
			b.emit(&ir.Branch{Target: endBlock})
		}
	}
	b.switchTo(endBlock)
}

func (b *Builder) buildWhileStatement(s *ast.WhileStatement) {
	loopID := b.currentFunc.NewLoopID()
	condBlock := b.currentFunc.NewBlock("while.cond", ir.TagLoopHeader)
	condBlock.LoopID = loopID
	bodyBlock := b.currentFunc.NewBlock("while.body", ir.TagLoopBody)
	bodyBlock.LoopID = loopID
	endBlock := b.currentFunc.NewBlock("while.end", ir.TagLoopEnd)
	endBlock.LoopID = loopID

	b.emit(&ir.Branch{Target: condBlock})
	b.switchTo(condBlock)
	cond := b.buildExpression(s.Condition)
	b.emit(&ir.ConditionalBranch{Condition: cond, True: bodyBlock, False: endBlock})

	b.pushLoop(loopID, condBlock, endBlock)
	b.switchTo(bodyBlock)
	b.buildStatement(s.Body)
	if !b.currentBlock.Terminated() {
		b.emit(&ir.Branch{Target: condBlock})
	}
	b.popLoop()
	b.switchTo(endBlock)
}

// buildForStatement lowers a counted For loop: pre-loop init in the
// current block, then cond/body/inc/end (§4.2's control-flow table).
func (b *Builder) buildForStatement(s *ast.ForStatement) {
	startVal := b.buildExpression(s.Start)
	varType := startVal.Type
	loopVar := b.currentFunc.NewLocal(s.Variable.Value, varType)
	b.emit(&ir.Assignment{Dest: loopVar, Value: startVal})
	b.bindName(s.Variable.Value, loopVar)

	loopID := b.currentFunc.NewLoopID()
	condBlock := b.currentFunc.NewBlock("for.cond", ir.TagLoopHeader)
	condBlock.LoopID = loopID
	bodyBlock := b.currentFunc.NewBlock("for.body", ir.TagLoopBody)
	bodyBlock.LoopID = loopID
	incBlock := b.currentFunc.NewBlock("for.inc", ir.TagLoopInc)
	incBlock.LoopID = loopID
	endBlock := b.currentFunc.NewBlock("for.end", ir.TagLoopEnd)
	endBlock.LoopID = loopID

	b.emit(&ir.Branch{Target: condBlock})
	b.switchTo(condBlock)
	endVal := b.buildExpression(s.End)
	cur, _ := b.lookupName(s.Variable.Value)
	cond := b.currentFunc.NewTemp(types.BooleanType)
	b.emit(&ir.Compare{Dest: cond, Op: ir.Le, Left: cur, Right: endVal})
	b.emit(&ir.ConditionalBranch{Condition: cond, True: bodyBlock, False: endBlock})

	b.pushLoop(loopID, incBlock, endBlock)
	b.switchTo(bodyBlock)
	b.buildStatement(s.Body)
	if !b.currentBlock.Terminated() {
		b.emit(&ir.Branch{Target: incBlock})
	}
	b.popLoop()

	b.switchTo(incBlock)
	cur, _ = b.lookupName(s.Variable.Value)
	var step *ir.Value
	if s.Step != nil {
		step = b.buildExpression(s.Step)
	} else {
		step = ir.NewConstant(varType, int64(1))
	}
	b.emit(&ir.BinaryOp{Dest: cur, Op: ir.Add, Left: cur, Right: step})
	b.emit(&ir.Branch{Target: condBlock})

	b.switchTo(endBlock)
	b.popName(s.Variable.Value)
}

// buildForEachStatement iterates a collection via an index counter and
// GetElementPtr/Load, per §4.2's "index+length via GetElementPtr/Load".
// Only rank-1 collections are walked; a higher rank is a builder error.
func (b *Builder) buildForEachStatement(s *ast.ForEachStatement) {
	if ct := b.resolvedType(s.Collection); ct.Kind == types.Array && ct.ArrayRank > 1 {
		b.errorf("irbuilder: For Each over a rank-%d array is not supported", ct.ArrayRank)
		return
	}
	coll := b.buildExpression(s.Collection)
	elemType := types.VoidType
	if coll.Type != nil && coll.Type.Kind == types.Array {
		elemType = coll.Type.ElementType
	} else if s.VariableType != nil {
		elemType = b.resolveAnnotation(s.VariableType)
	}

	idx := b.currentFunc.NewLocal("__idx", types.IntegerType)
	b.emit(&ir.Assignment{Dest: idx, Value: ir.NewConstant(types.IntegerType, int64(0))})
	length := b.currentFunc.NewTemp(types.IntegerType)
	b.emit(&ir.Call{Dest: length, Function: "UBound", Args: []*ir.Value{coll, ir.NewConstant(types.IntegerType, int64(0))}})

	loopID := b.currentFunc.NewLoopID()
	condBlock := b.currentFunc.NewBlock("foreach.cond", ir.TagLoopHeader)
	condBlock.LoopID = loopID
	bodyBlock := b.currentFunc.NewBlock("foreach.body", ir.TagLoopBody)
	bodyBlock.LoopID = loopID
	incBlock := b.currentFunc.NewBlock("foreach.inc", ir.TagLoopInc)
	incBlock.LoopID = loopID
	endBlock := b.currentFunc.NewBlock("foreach.end", ir.TagLoopEnd)
	endBlock.LoopID = loopID

	b.emit(&ir.Branch{Target: condBlock})
	b.switchTo(condBlock)
	cond := b.currentFunc.NewTemp(types.BooleanType)
	b.emit(&ir.Compare{Dest: cond, Op: ir.Le, Left: idx, Right: length})
	b.emit(&ir.ConditionalBranch{Condition: cond, True: bodyBlock, False: endBlock})

	b.switchTo(bodyBlock)
	addr := b.currentFunc.NewTemp(b.module.Types.PointerTo(elemType))
	b.emit(&ir.GetElementPtr{Dest: addr, Base: coll, Indices: []*ir.Value{idx}})
	elemVar := b.currentFunc.NewLocal(s.Variable.Value, elemType)
	b.emit(&ir.Load{Dest: elemVar, Address: addr})
	b.bindName(s.Variable.Value, elemVar)

	b.pushLoop(loopID, incBlock, endBlock)
	b.buildStatement(s.Body)
	if !b.currentBlock.Terminated() {
		b.emit(&ir.Branch{Target: incBlock})
	}
	b.popLoop()
	b.popName(s.Variable.Value)

	b.switchTo(incBlock)
	b.emit(&ir.BinaryOp{Dest: idx, Op: ir.Add, Left: idx, Right: ir.NewConstant(types.IntegerType, int64(1))})
	b.emit(&ir.Branch{Target: condBlock})

	b.switchTo(endBlock)
}

// buildDoStatement lowers Do-While/Do-Until, pre- or post-tested
// (§8 "Until-style do-loop emits a negated condition").
func (b *Builder) buildDoStatement(s *ast.DoStatement) {
	loopID := b.currentFunc.NewLoopID()
	bodyBlock := b.currentFunc.NewBlock("do.body", ir.TagLoopBody)
	bodyBlock.LoopID = loopID
	condBlock := b.currentFunc.NewBlock("do.cond", ir.TagLoopHeader)
	condBlock.LoopID = loopID
	endBlock := b.currentFunc.NewBlock("do.end", ir.TagLoopEnd)
	endBlock.LoopID = loopID

	if s.TestAtStart {
		b.emit(&ir.Branch{Target: condBlock})
		b.switchTo(condBlock)
		cond := b.buildExpression(s.Condition)
		trueTarget, falseTarget := bodyBlock, endBlock
		if s.Until {
			trueTarget, falseTarget = endBlock, bodyBlock
		}
		b.emit(&ir.ConditionalBranch{Condition: cond, True: trueTarget, False: falseTarget})

		b.pushLoop(loopID, condBlock, endBlock)
		b.switchTo(bodyBlock)
		b.buildStatement(s.Body)
		if !b.currentBlock.Terminated() {
			b.emit(&ir.Branch{Target: condBlock})
		}
		b.popLoop()
		b.switchTo(endBlock)
		return
	}

	// Post-test: body runs once unconditionally before the first test.
	condBlock.PostTest = true
	b.emit(&ir.Branch{Target: bodyBlock})
	b.pushLoop(loopID, condBlock, endBlock)
	b.switchTo(bodyBlock)
	b.buildStatement(s.Body)
	if !b.currentBlock.Terminated() {
		b.emit(&ir.Branch{Target: condBlock})
	}
	b.popLoop()

	b.switchTo(condBlock)
	cond := b.buildExpression(s.Condition)
	// Continue (branch back to the body) while the loop's natural
	// condition holds; Until negates which branch means "keep going",
	// same sense as the pre-test case above.
	trueTarget, falseTarget := bodyBlock, endBlock
	if s.Until {
		trueTarget, falseTarget = endBlock, bodyBlock
	}
	b.emit(&ir.ConditionalBranch{Condition: cond, True: trueTarget, False: falseTarget})
	b.switchTo(endBlock)
}

// buildSelectStatement groups case patterns into Switch arms; constant and
// comparison/range patterns lower to per-value cases sharing a target
// block when multiple values share a body (§8 S5).
func (b *Builder) buildSelectStatement(s *ast.SelectStatement) {
	discriminant := b.buildExpression(s.Expression)
	endBlock := b.currentFunc.NewBlock("switch.end", ir.TagSwitchEnd)

	var swCases []ir.SwitchCase
	for _, c := range s.Cases {
		caseBlock := b.currentFunc.NewBlock("switch_case", ir.TagSwitchCase)
		for _, p := range c.Patterns {
			if v, ok := patternConstant(p); ok {
				swCases = append(swCases, ir.SwitchCase{Value: v, Target: caseBlock})
			}
		}
		savedBlock := b.currentBlock
		b.switchTo(caseBlock)
		b.buildStatement(c.Body)
		if !b.currentBlock.Terminated() {
			b.emit(&ir.Branch{Target: endBlock})
		}
		b.switchTo(savedBlock)
	}

	var defaultBlock *ir.BasicBlock
	if s.Default != nil {
		defaultBlock = b.currentFunc.NewBlock("switch.default", ir.TagSwitchDefault)
		savedBlock := b.currentBlock
		b.switchTo(defaultBlock)
		b.buildStatement(s.Default)
		if !b.currentBlock.Terminated() {
			b.emit(&ir.Branch{Target: endBlock})
		}
		b.switchTo(savedBlock)
	} else {
		defaultBlock = endBlock
	}

	b.emit(&ir.Switch{Value: discriminant, Cases: swCases, Default: defaultBlock})
	b.switchTo(endBlock)
}

// patternConstant extracts the compile-time constant a Switch case arm
// dispatches on, when the pattern directly names one (ConstantPattern);
// range/comparison/type patterns fall outside the closed Switch-value
// model and are left for a future lowering to guarded branches.
func patternConstant(p ast.Pattern) (*ir.Value, bool) {
	cp, ok := p.(*ast.ConstantPattern)
	if !ok {
		return nil, false
	}
	lit, ok := cp.Value.(*ast.Literal)
	if !ok {
		return nil, false
	}
	return ir.NewConstant(nil, lit.Value), true
}

func (b *Builder) buildTryStatement(s *ast.TryStatement) {
	tryBlock := b.currentFunc.NewBlock("try.body", ir.TagTryBody)
	endBlock := b.currentFunc.NewBlock("try.end", ir.TagTryEnd)

	b.emit(&ir.Branch{Target: tryBlock})
	b.switchTo(tryBlock)
	b.buildStatement(s.Body)
	if !b.currentBlock.Terminated() {
		b.emit(&ir.Branch{Target: endBlock})
	}

	for _, c := range s.Catches {
		catchBlock := b.currentFunc.NewBlock("catch.body", ir.TagCatchBody)
		savedBlock := b.currentBlock
		b.switchTo(catchBlock)
		if c.VariableName != "" {
			et := b.resolveAnnotation(c.ExceptionType)
			exVar := b.currentFunc.NewLocal(c.VariableName, et)
			b.bindName(c.VariableName, exVar)
		}
		b.buildStatement(c.Body)
		if !b.currentBlock.Terminated() {
			b.emit(&ir.Branch{Target: endBlock})
		}
		if c.VariableName != "" {
			b.popName(c.VariableName)
		}
		b.switchTo(savedBlock)
	}

	if s.Finally != nil {
		finallyBlock := b.currentFunc.NewBlock("finally.body", ir.TagFinallyBody)
		savedBlock := b.currentBlock
		b.switchTo(finallyBlock)
		b.buildStatement(s.Finally)
		if !b.currentBlock.Terminated() {
			b.emit(&ir.Branch{Target: endBlock})
		}
		b.switchTo(savedBlock)
	}

	b.switchTo(endBlock)
}

func (b *Builder) buildWithStatement(s *ast.WithStatement) {
	b.buildExpression(s.Target)
	b.buildStatement(s.Body)
}

// buildExitStatement emits an unconditional branch to the enclosing
// loop's break target, or a Return for Exit Sub/Function (§4.2).
func (b *Builder) buildExitStatement(s *ast.ExitStatement) {
	switch s.Kind {
	case ast.ExitFor, ast.ExitDo, ast.ExitWhile:
		if loop := b.currentLoop(); loop != nil {
			b.emit(&ir.Branch{Target: loop.breakTarget})
		}
	case ast.ExitSub:
		b.emit(&ir.Return{})
	case ast.ExitFunction:
		if b.currentFunc.ReturnType == nil || b.currentFunc.ReturnType == types.VoidType {
			b.emit(&ir.Return{})
			return
		}
		cur, ok := b.lookupName(b.currentFunc.Name)
		if !ok {
			cur = zeroValue(b.currentFunc.ReturnType)
		}
		b.emit(&ir.Return{Value: cur})
	}
}

func (b *Builder) buildReturnStatement(s *ast.ReturnStatement) {
	if s.Value == nil {
		b.emit(&ir.Return{})
		return
	}
	v := b.buildExpression(s.Value)
	b.emit(&ir.Return{Value: v})
}

func (b *Builder) buildThrowStatement(s *ast.ThrowStatement) {
	if s.Value == nil {
		b.emit(&ir.Call{Function: "__rethrow"})
		return
	}
	v := b.buildExpression(s.Value)
	b.emit(&ir.Call{Function: "__throw", Args: []*ir.Value{v}})
}
