package ast

import (
	"bytes"

	"github.com/basilisc/basilc/pkg/token"
)

// ElseIfClause is one `ElseIf cond Then ...` arm of an IfStatement. Modeled
// as an explicit ordered list on the If node (§9 Open Question, resolved in
// SPEC_FULL.md §4) rather than nested Ifs, so no branch is ever dropped.
type ElseIfClause struct {
	Condition Expression
	Body      Statement
}

// IfStatement is an if/elseif*/else conditional.
type IfStatement struct {
	Token     token.Token
	Condition Expression
	Then      Statement
	ElseIfs   []ElseIfClause
	Else      Statement // nil if absent
}

func (s *IfStatement) statementNode()       {}
func (s *IfStatement) TokenLiteral() string { return s.Token.Literal }
func (s *IfStatement) Pos() token.Position  { return s.Token.Pos }
func (s *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("If ")
	out.WriteString(s.Condition.String())
	out.WriteString(" Then ")
	out.WriteString(s.Then.String())
	for _, e := range s.ElseIfs {
		out.WriteString(" ElseIf ")
		out.WriteString(e.Condition.String())
		out.WriteString(" Then ")
		out.WriteString(e.Body.String())
	}
	if s.Else != nil {
		out.WriteString(" Else ")
		out.WriteString(s.Else.String())
	}
	return out.String()
}

// Pattern is one arm-matcher of a Select Case (§6.1 "Patterns").
type Pattern interface {
	Node
	patternNode()
}

// TypePattern matches when the scrutinee is assignable from (or is an
// instance of) Type, optionally binding it to Binding in the case body's
// scope (§4.1 "Pattern-match bindings").
type TypePattern struct {
	Token   token.Token
	Type    *TypeAnnotation
	Binding string // empty if no binding introduced
	When    Expression
}

func (p *TypePattern) patternNode()         {}
func (p *TypePattern) TokenLiteral() string { return p.Token.Literal }
func (p *TypePattern) Pos() token.Position  { return p.Token.Pos }
func (p *TypePattern) String() string       { return "Is " + p.Type.String() }

// ConstantPattern matches a single compile-time-constant value.
type ConstantPattern struct {
	Token token.Token
	Value Expression
	When  Expression
}

func (p *ConstantPattern) patternNode()         {}
func (p *ConstantPattern) TokenLiteral() string { return p.Token.Literal }
func (p *ConstantPattern) Pos() token.Position  { return p.Token.Pos }
func (p *ConstantPattern) String() string       { return p.Value.String() }

// RangePattern matches an inclusive [Low, High] range.
type RangePattern struct {
	Token token.Token
	Low   Expression
	High  Expression
	When  Expression
}

func (p *RangePattern) patternNode()         {}
func (p *RangePattern) TokenLiteral() string { return p.Token.Literal }
func (p *RangePattern) Pos() token.Position  { return p.Token.Pos }
func (p *RangePattern) String() string       { return p.Low.String() + " To " + p.High.String() }

// ComparisonPattern matches via a relational operator against Value
// (`Case Is > 10`).
type ComparisonPattern struct {
	Token    token.Token
	Operator string
	Value    Expression
	When     Expression
}

func (p *ComparisonPattern) patternNode()         {}
func (p *ComparisonPattern) TokenLiteral() string { return p.Token.Literal }
func (p *ComparisonPattern) Pos() token.Position  { return p.Token.Pos }
func (p *ComparisonPattern) String() string       { return "Is " + p.Operator + " " + p.Value.String() }

// SelectCase is one `Case <patterns> ... ` arm.
type SelectCase struct {
	Patterns []Pattern
	Body     Statement
}

// SelectStatement is a Select Case statement supporting pattern matching
// over constants, ranges, comparisons, and type patterns.
type SelectStatement struct {
	Token      token.Token
	Expression Expression
	Cases      []SelectCase
	Default    Statement // nil if no Case Else
	HasDefault bool
}

func (s *SelectStatement) statementNode()       {}
func (s *SelectStatement) TokenLiteral() string { return s.Token.Literal }
func (s *SelectStatement) Pos() token.Position  { return s.Token.Pos }
func (s *SelectStatement) String() string {
	return "Select Case " + s.Expression.String()
}

// ForStatement is a counted loop with an optional Step expression.
type ForStatement struct {
	Token    token.Token
	Variable *Identifier
	Start    Expression
	End      Expression
	Step     Expression // nil implies step 1
	Body     Statement
}

func (s *ForStatement) statementNode()       {}
func (s *ForStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ForStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ForStatement) String() string {
	return "For " + s.Variable.String() + " = " + s.Start.String() + " To " + s.End.String()
}

// ForEachStatement iterates a collection expression.
type ForEachStatement struct {
	Token        token.Token
	Variable     *Identifier
	VariableType *TypeAnnotation
	Collection   Expression
	Body         Statement
}

func (s *ForEachStatement) statementNode()       {}
func (s *ForEachStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ForEachStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ForEachStatement) String() string {
	return "For Each " + s.Variable.String() + " In " + s.Collection.String()
}

// WhileStatement is a pre-test loop.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      Statement
}

func (s *WhileStatement) statementNode()       {}
func (s *WhileStatement) TokenLiteral() string { return s.Token.Literal }
func (s *WhileStatement) Pos() token.Position  { return s.Token.Pos }
func (s *WhileStatement) String() string {
	return "While " + s.Condition.String()
}

// DoStatement models Do-While/Do-Until, either pre- or post-tested
// (§8 "Until-style do-loop emits a negated condition").
type DoStatement struct {
	Token       token.Token
	Condition   Expression
	Body        Statement
	TestAtStart bool // false => post-test (Loop While/Until)
	Until       bool // true => Until semantics (negate condition)
}

func (s *DoStatement) statementNode()       {}
func (s *DoStatement) TokenLiteral() string { return s.Token.Literal }
func (s *DoStatement) Pos() token.Position  { return s.Token.Pos }
func (s *DoStatement) String() string {
	kw := "While"
	if s.Until {
		kw = "Until"
	}
	return "Do ... Loop " + kw + " " + s.Condition.String()
}

// ExceptionHandler is one `Catch ex As ExceptionType` clause.
type ExceptionHandler struct {
	VariableName string
	ExceptionType *TypeAnnotation
	Body         *BlockStatement
}

// TryStatement is a structured-exception-handling block (§6.1 "Try (with
// catch clauses and finally)").
type TryStatement struct {
	Token    token.Token
	Body     *BlockStatement
	Catches  []ExceptionHandler
	Finally  *BlockStatement
}

func (s *TryStatement) statementNode()       {}
func (s *TryStatement) TokenLiteral() string { return s.Token.Literal }
func (s *TryStatement) Pos() token.Position  { return s.Token.Pos }
func (s *TryStatement) String() string       { return "Try" }

// WithStatement opens an implicit member-access scope over Target.
type WithStatement struct {
	Token  token.Token
	Target Expression
	Body   Statement
}

func (s *WithStatement) statementNode()       {}
func (s *WithStatement) TokenLiteral() string { return s.Token.Literal }
func (s *WithStatement) Pos() token.Position  { return s.Token.Pos }
func (s *WithStatement) String() string       { return "With " + s.Target.String() }

// ExitKind names what an Exit statement leaves (§6.1).
type ExitKind int

const (
	ExitFor ExitKind = iota
	ExitDo
	ExitWhile
	ExitSub
	ExitFunction
)

func (k ExitKind) String() string {
	switch k {
	case ExitFor:
		return "For"
	case ExitDo:
		return "Do"
	case ExitWhile:
		return "While"
	case ExitSub:
		return "Sub"
	default:
		return "Function"
	}
}

// ExitStatement exits the named enclosing construct (§7 "Structural":
// "exit-kind mismatch" is a reported error when Kind names a construct
// that does not enclose this statement).
type ExitStatement struct {
	Token token.Token
	Kind  ExitKind
}

func (s *ExitStatement) statementNode()       {}
func (s *ExitStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ExitStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ExitStatement) String() string       { return "Exit " + s.Kind.String() }

// ThrowStatement raises an exception value.
type ThrowStatement struct {
	Token token.Token
	Value Expression // nil for a bare re-throw inside a Catch
}

func (s *ThrowStatement) statementNode()       {}
func (s *ThrowStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ThrowStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ThrowStatement) String() string {
	if s.Value != nil {
		return "Throw " + s.Value.String()
	}
	return "Throw"
}

// RaiseEventStatement fires a declared event with Args.
type RaiseEventStatement struct {
	Token token.Token
	Name  string
	Args  []Expression
}

func (s *RaiseEventStatement) statementNode()       {}
func (s *RaiseEventStatement) TokenLiteral() string { return s.Token.Literal }
func (s *RaiseEventStatement) Pos() token.Position  { return s.Token.Pos }
func (s *RaiseEventStatement) String() string       { return "RaiseEvent " + s.Name }

// AddHandlerStatement / RemoveHandlerStatement (de)register an event
// handler delegate.
type AddHandlerStatement struct {
	Token   token.Token
	Event   Expression
	Handler Expression
}

func (s *AddHandlerStatement) statementNode()       {}
func (s *AddHandlerStatement) TokenLiteral() string { return s.Token.Literal }
func (s *AddHandlerStatement) Pos() token.Position  { return s.Token.Pos }
func (s *AddHandlerStatement) String() string       { return "AddHandler " + s.Event.String() }

type RemoveHandlerStatement struct {
	Token   token.Token
	Event   Expression
	Handler Expression
}

func (s *RemoveHandlerStatement) statementNode()       {}
func (s *RemoveHandlerStatement) TokenLiteral() string { return s.Token.Literal }
func (s *RemoveHandlerStatement) Pos() token.Position  { return s.Token.Pos }
func (s *RemoveHandlerStatement) String() string       { return "RemoveHandler " + s.Event.String() }

// YieldStatement yields a value from an iterator function, or signals a
// bare yield-break.
type YieldStatement struct {
	Token token.Token
	Value Expression // nil for a yield-break
	Break bool
}

func (s *YieldStatement) statementNode()       {}
func (s *YieldStatement) TokenLiteral() string { return s.Token.Literal }
func (s *YieldStatement) Pos() token.Position  { return s.Token.Pos }
func (s *YieldStatement) String() string {
	if s.Break {
		return "Yield Break"
	}
	return "Yield " + s.Value.String()
}

// AssignmentOperator is the compound-or-simple assignment operator used by
// an AssignmentStatement.
type AssignmentOperator int

const (
	AssignSimple AssignmentOperator = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
)

func (o AssignmentOperator) String() string {
	switch o {
	case AssignAdd:
		return "+="
	case AssignSub:
		return "-="
	case AssignMul:
		return "*="
	case AssignDiv:
		return "/="
	default:
		return "="
	}
}

// AssignmentStatement assigns Value to Target, possibly compounded.
type AssignmentStatement struct {
	Token    token.Token
	Target   Expression
	Operator AssignmentOperator
	Value    Expression
}

func (s *AssignmentStatement) statementNode()       {}
func (s *AssignmentStatement) TokenLiteral() string { return s.Token.Literal }
func (s *AssignmentStatement) Pos() token.Position  { return s.Token.Pos }
func (s *AssignmentStatement) String() string {
	return s.Target.String() + " " + s.Operator.String() + " " + s.Value.String()
}
