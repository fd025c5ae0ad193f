package semantic

import (
	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/optimizer"
	"github.com/basilisc/basilc/internal/symbols"
	"github.com/basilisc/basilc/internal/types"
)

func (a *Analyzer) analyzeBlock(b *ast.BlockStatement) {
	if b == nil {
		return
	}
	a.pushScope("block", symbols.BlockScope)
	for _, s := range b.Statements {
		a.analyzeStatement(s)
	}
	a.popScope()
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		a.analyzeVariableDecl(s)
	case *ast.ExpressionStatement:
		a.analyzeExpression(s.Expression)
	case *ast.BlockStatement:
		a.analyzeBlock(s)
	case *ast.IfStatement:
		a.analyzeIfStatement(s)
	case *ast.SelectStatement:
		a.analyzeSelectStatement(s)
	case *ast.ForStatement:
		a.analyzeForStatement(s)
	case *ast.ForEachStatement:
		a.analyzeForEachStatement(s)
	case *ast.WhileStatement:
		a.analyzeCondition(s.Condition)
		a.loopDepth++
		a.pushScope("while", symbols.LoopScope)
		a.analyzeStatement(s.Body)
		a.popScope()
		a.loopDepth--
	case *ast.DoStatement:
		a.analyzeCondition(s.Condition)
		a.loopDepth++
		a.pushScope("do", symbols.LoopScope)
		a.analyzeStatement(s.Body)
		a.popScope()
		a.loopDepth--
	case *ast.TryStatement:
		a.analyzeBlock(s.Body)
		for _, c := range s.Catches {
			a.pushScope("catch", symbols.BlockScope)
			if c.VariableName != "" {
				et := a.resolveTypeAnnotation(c.ExceptionType)
				a.define(s, &symbols.Symbol{Name: c.VariableName, Kind: symbols.Variable, Type: et})
			}
			a.analyzeBlock(c.Body)
			a.popScope()
		}
		if s.Finally != nil {
			a.analyzeBlock(s.Finally)
		}
	case *ast.WithStatement:
		a.analyzeExpression(s.Target)
		a.analyzeStatement(s.Body)
	case *ast.ExitStatement:
		a.analyzeExitStatement(s)
	case *ast.ReturnStatement:
		a.analyzeReturnStatement(s)
	case *ast.ThrowStatement:
		if s.Value != nil {
			a.analyzeExpression(s.Value)
		}
	case *ast.RaiseEventStatement:
		for _, arg := range s.Args {
			a.analyzeExpression(arg)
		}
	case *ast.AddHandlerStatement:
		a.analyzeExpression(s.Event)
		a.analyzeExpression(s.Handler)
	case *ast.RemoveHandlerStatement:
		a.analyzeExpression(s.Event)
		a.analyzeExpression(s.Handler)
	case *ast.YieldStatement:
		if s.Value != nil {
			a.analyzeExpression(s.Value)
		}
	case *ast.AssignmentStatement:
		a.analyzeAssignmentStatement(s)
	default:
		a.errf(stmt, "E-INTERNAL", "unhandled statement %T", stmt)
	}
}

func (a *Analyzer) analyzeCondition(cond ast.Expression) {
	t := a.analyzeExpression(cond)
	if t != types.BooleanType {
		a.warnf(cond, "W-NON-BOOL-COND", "condition is %s, not Boolean", t)
	}
}

func (a *Analyzer) analyzeIfStatement(s *ast.IfStatement) {
	a.analyzeCondition(s.Condition)
	a.analyzeStatement(s.Then)
	for _, ei := range s.ElseIfs {
		a.analyzeCondition(ei.Condition)
		a.analyzeStatement(ei.Body)
	}
	if s.Else != nil {
		a.analyzeStatement(s.Else)
	}
}

func (a *Analyzer) analyzeForStatement(s *ast.ForStatement) {
	startType := a.analyzeExpression(s.Start)
	if !startType.IsIntegral() {
		a.errf(s, "E-TYPE-MISMATCH", "For loop bound must be integral, got %s", startType)
	}
	a.analyzeExpression(s.End)
	if s.Step != nil {
		a.analyzeExpression(s.Step)
	}
	a.loopDepth++
	a.pushScope("for", symbols.LoopScope)
	a.define(s.Variable, &symbols.Symbol{Name: s.Variable.Value, Kind: symbols.Variable, Type: startType})
	a.analyzeStatement(s.Body)
	a.popScope()
	a.loopDepth--
}

func (a *Analyzer) analyzeForEachStatement(s *ast.ForEachStatement) {
	collType := a.analyzeExpression(s.Collection)
	elemType := types.VoidType
	if collType.Kind == types.Array {
		elemType = collType.ElementType
	} else if s.VariableType != nil {
		elemType = a.resolveTypeAnnotation(s.VariableType)
	}
	a.loopDepth++
	a.pushScope("foreach", symbols.LoopScope)
	a.define(s.Variable, &symbols.Symbol{Name: s.Variable.Value, Kind: symbols.Variable, Type: elemType})
	a.analyzeStatement(s.Body)
	a.popScope()
	a.loopDepth--
}

// analyzeSelectStatement type-checks the discriminant and each case's
// patterns, rejecting non-constant case labels (§9 Open Question
// resolution: "the specification requires the semantic analyzer to
// reject non-constant case labels").
func (a *Analyzer) analyzeSelectStatement(s *ast.SelectStatement) {
	a.analyzeExpression(s.Expression)
	for _, c := range s.Cases {
		for _, p := range c.Patterns {
			a.analyzePattern(p)
		}
		a.pushScope("case", symbols.BlockScope)
		a.analyzeStatement(c.Body)
		a.popScope()
	}
	if s.Default != nil {
		a.analyzeStatement(s.Default)
	}
}

func (a *Analyzer) analyzePattern(p ast.Pattern) {
	switch pat := p.(type) {
	case *ast.ConstantPattern:
		if _, ok := optimizer.FoldConstant(pat.Value); !ok {
			a.errf(p, "E-NON-CONST", "case label is not a compile-time constant")
		}
		if pat.When != nil {
			a.analyzeCondition(pat.When)
		}
	case *ast.RangePattern:
		if _, ok := optimizer.FoldConstant(pat.Low); !ok {
			a.errf(p, "E-NON-CONST", "range case low bound is not a compile-time constant")
		}
		if _, ok := optimizer.FoldConstant(pat.High); !ok {
			a.errf(p, "E-NON-CONST", "range case high bound is not a compile-time constant")
		}
		if pat.When != nil {
			a.analyzeCondition(pat.When)
		}
	case *ast.ComparisonPattern:
		if _, ok := optimizer.FoldConstant(pat.Value); !ok {
			a.errf(p, "E-NON-CONST", "comparison case value is not a compile-time constant")
		}
		if pat.When != nil {
			a.analyzeCondition(pat.When)
		}
	case *ast.TypePattern:
		bt := a.resolveTypeAnnotation(pat.Type)
		if pat.Binding != "" {
			a.define(p, &symbols.Symbol{Name: pat.Binding, Kind: symbols.Variable, Type: bt})
		}
		if pat.When != nil {
			a.analyzeCondition(pat.When)
		}
	}
}

func (a *Analyzer) analyzeExitStatement(s *ast.ExitStatement) {
	switch s.Kind {
	case ast.ExitFor, ast.ExitDo, ast.ExitWhile:
		if a.loopDepth == 0 {
			a.errf(s, "E-EXIT-NO-LOOP", "%s outside any loop", s.Kind)
		}
	case ast.ExitSub, ast.ExitFunction:
		if a.currentReturnType == nil {
			a.errf(s, "E-EXIT-NO-CALLABLE", "%s outside any subroutine/function", s.Kind)
		}
	}
}

func (a *Analyzer) analyzeReturnStatement(s *ast.ReturnStatement) {
	if a.currentReturnType == nil {
		a.errf(s, "E-RETURN-NO-CALLABLE", "Return statement outside any function")
		return
	}
	if s.Value == nil {
		if a.currentReturnType != types.VoidType {
			a.errf(s, "E-RETURN-MISSING-VALUE", "function expects a return value of type %s", a.currentReturnType)
		}
		return
	}
	vt := a.analyzeExpression(s.Value)
	if !types.IsAssignableFrom(a.currentReturnType, vt) {
		a.errf(s, "E-TYPE-MISMATCH", "return value is %s, expected %s", vt, a.currentReturnType)
	}
}

func (a *Analyzer) analyzeAssignmentStatement(s *ast.AssignmentStatement) {
	targetType := a.analyzeExpression(s.Target)
	valueType := a.analyzeExpression(s.Value)
	if s.Operator != ast.AssignSimple {
		if !targetType.IsNumeric() || !valueType.IsNumeric() {
			a.errf(s, "E-TYPE-MISMATCH", "compound assignment requires numeric operands")
		}
		return
	}
	if !types.IsAssignableFrom(targetType, valueType) {
		a.errf(s, "E-TYPE-MISMATCH", "cannot assign %s to %s", valueType, targetType)
	}
}
