package ast

import (
	"strings"

	"github.com/basilisc/basilc/pkg/token"
)

// MemberAccessExpression is `Object.Member` (field, property, or the
// callee half of a method call before arguments are applied).
type MemberAccessExpression struct {
	Token        token.Token
	Object       Expression
	Member       string
	ResolvedType *TypeAnnotation
}

func (m *MemberAccessExpression) expressionNode()          {}
func (m *MemberAccessExpression) TokenLiteral() string     { return m.Token.Literal }
func (m *MemberAccessExpression) Pos() token.Position      { return m.Token.Pos }
func (m *MemberAccessExpression) GetType() *TypeAnnotation  { return m.ResolvedType }
func (m *MemberAccessExpression) SetType(t *TypeAnnotation) { m.ResolvedType = t }
func (m *MemberAccessExpression) GetSymbolName() string     { return m.Member }
func (m *MemberAccessExpression) String() string {
	return m.Object.String() + "." + m.Member
}

// CallExpression applies arguments to a callee, with optional explicit
// generic type arguments (§6.1 "Call (with callee, arguments,
// generic-argument list)").
type CallExpression struct {
	Token        token.Token
	Callee       Expression
	Arguments    []Expression
	GenericArgs  []*TypeAnnotation
	ResolvedType *TypeAnnotation
}

func (c *CallExpression) expressionNode()          {}
func (c *CallExpression) TokenLiteral() string     { return c.Token.Literal }
func (c *CallExpression) Pos() token.Position      { return c.Token.Pos }
func (c *CallExpression) GetType() *TypeAnnotation  { return c.ResolvedType }
func (c *CallExpression) SetType(t *TypeAnnotation) { c.ResolvedType = t }
func (c *CallExpression) String() string {
	parts := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		parts[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// ArrayAccessExpression indexes an array/collection expression; multiple
// indices support n-dimensional arrays (§9 Open Question, resolved).
type ArrayAccessExpression struct {
	Token        token.Token
	Array        Expression
	Indices      []Expression
	ResolvedType *TypeAnnotation
}

func (a *ArrayAccessExpression) expressionNode()          {}
func (a *ArrayAccessExpression) TokenLiteral() string     { return a.Token.Literal }
func (a *ArrayAccessExpression) Pos() token.Position      { return a.Token.Pos }
func (a *ArrayAccessExpression) GetType() *TypeAnnotation  { return a.ResolvedType }
func (a *ArrayAccessExpression) SetType(t *TypeAnnotation) { a.ResolvedType = t }
func (a *ArrayAccessExpression) String() string {
	parts := make([]string, len(a.Indices))
	for i, ix := range a.Indices {
		parts[i] = ix.String()
	}
	return a.Array.String() + "(" + strings.Join(parts, ", ") + ")"
}

// NewExpression constructs an instance of a class/structure/array.
type NewExpression struct {
	Token        token.Token
	Type         *TypeAnnotation
	Arguments    []Expression
	ArrayLengths []Expression // non-nil for `New T(len1, len2, ...)`
	ResolvedType *TypeAnnotation
}

func (n *NewExpression) expressionNode()          {}
func (n *NewExpression) TokenLiteral() string     { return n.Token.Literal }
func (n *NewExpression) Pos() token.Position      { return n.Token.Pos }
func (n *NewExpression) GetType() *TypeAnnotation  { return n.ResolvedType }
func (n *NewExpression) SetType(t *TypeAnnotation) { n.ResolvedType = t }
func (n *NewExpression) String() string {
	return "New " + n.Type.String() + "(...)"
}

// CastExpression converts Expression to Type.
type CastExpression struct {
	Token        token.Token
	Type         *TypeAnnotation
	Expression   Expression
	ResolvedType *TypeAnnotation
}

func (c *CastExpression) expressionNode()          {}
func (c *CastExpression) TokenLiteral() string     { return c.Token.Literal }
func (c *CastExpression) Pos() token.Position      { return c.Token.Pos }
func (c *CastExpression) GetType() *TypeAnnotation  { return c.ResolvedType }
func (c *CastExpression) SetType(t *TypeAnnotation) { c.ResolvedType = t }
func (c *CastExpression) String() string {
	return "CType(" + c.Expression.String() + ", " + c.Type.String() + ")"
}

// MyBaseExpression refers to the base-class half of the current instance,
// used as the receiver of a MyBase.Method(...) call.
type MyBaseExpression struct {
	Token        token.Token
	ResolvedType *TypeAnnotation
}

func (m *MyBaseExpression) expressionNode()          {}
func (m *MyBaseExpression) TokenLiteral() string     { return m.Token.Literal }
func (m *MyBaseExpression) Pos() token.Position      { return m.Token.Pos }
func (m *MyBaseExpression) GetType() *TypeAnnotation  { return m.ResolvedType }
func (m *MyBaseExpression) SetType(t *TypeAnnotation) { m.ResolvedType = t }
func (m *MyBaseExpression) String() string            { return "MyBase" }

// LambdaExpression is an anonymous function or subroutine, either
// expression-bodied (Expr set) or statement-bodied (Body set).
type LambdaExpression struct {
	Token        token.Token
	Parameters   []*Parameter
	Expr         Expression      // non-nil for `Function(x) x * x`
	Body         *BlockStatement // non-nil for a statement-bodied lambda
	IsSub        bool
	ResolvedType *TypeAnnotation
}

func (l *LambdaExpression) expressionNode()          {}
func (l *LambdaExpression) TokenLiteral() string     { return l.Token.Literal }
func (l *LambdaExpression) Pos() token.Position      { return l.Token.Pos }
func (l *LambdaExpression) GetType() *TypeAnnotation  { return l.ResolvedType }
func (l *LambdaExpression) SetType(t *TypeAnnotation) { l.ResolvedType = t }
func (l *LambdaExpression) String() string {
	parts := make([]string, len(l.Parameters))
	for i, p := range l.Parameters {
		parts[i] = p.String()
	}
	return "Function(" + strings.Join(parts, ", ") + ") ..."
}

// AwaitExpression suspends for Operand's completion (§3.5 "Async/Iter").
type AwaitExpression struct {
	Token        token.Token
	Operand      Expression
	ResolvedType *TypeAnnotation
}

func (a *AwaitExpression) expressionNode()          {}
func (a *AwaitExpression) TokenLiteral() string     { return a.Token.Literal }
func (a *AwaitExpression) Pos() token.Position      { return a.Token.Pos }
func (a *AwaitExpression) GetType() *TypeAnnotation  { return a.ResolvedType }
func (a *AwaitExpression) SetType(t *TypeAnnotation) { a.ResolvedType = t }
func (a *AwaitExpression) String() string            { return "Await " + a.Operand.String() }

// CollectionInitializer is an array/list/set literal: `{ e1, e2, ... }`.
type CollectionInitializer struct {
	Token        token.Token
	Elements     []Expression
	ResolvedType *TypeAnnotation
}

func (c *CollectionInitializer) expressionNode()          {}
func (c *CollectionInitializer) TokenLiteral() string     { return c.Token.Literal }
func (c *CollectionInitializer) Pos() token.Position      { return c.Token.Pos }
func (c *CollectionInitializer) GetType() *TypeAnnotation  { return c.ResolvedType }
func (c *CollectionInitializer) SetType(t *TypeAnnotation) { c.ResolvedType = t }
func (c *CollectionInitializer) String() string {
	parts := make([]string, len(c.Elements))
	for i, e := range c.Elements {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// TupleElement is one (optionally named) slot of a TupleLiteral.
type TupleElement struct {
	Name  string // empty for a positional element
	Value Expression
}

// TupleLiteral is a fixed-arity heterogeneous literal `(a, b, c)`.
type TupleLiteral struct {
	Token        token.Token
	Elements     []TupleElement
	ResolvedType *TypeAnnotation
}

func (t *TupleLiteral) expressionNode()          {}
func (t *TupleLiteral) TokenLiteral() string     { return t.Token.Literal }
func (t *TupleLiteral) Pos() token.Position      { return t.Token.Pos }
func (t *TupleLiteral) GetType() *TypeAnnotation  { return t.ResolvedType }
func (t *TupleLiteral) SetType(ty *TypeAnnotation) { t.ResolvedType = ty }
func (t *TupleLiteral) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.Value.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// InterpolatedStringPart is either a literal string chunk or an embedded
// expression (§6.1 "InterpolatedString (ordered parts of string or
// expression)").
type InterpolatedStringPart struct {
	Literal    string
	Expression Expression // nil for a Literal part
}

// InterpolatedStringExpression is a `$"...{expr}..."`-style string.
type InterpolatedStringExpression struct {
	Token        token.Token
	Parts        []InterpolatedStringPart
	ResolvedType *TypeAnnotation
}

func (i *InterpolatedStringExpression) expressionNode()          {}
func (i *InterpolatedStringExpression) TokenLiteral() string     { return i.Token.Literal }
func (i *InterpolatedStringExpression) Pos() token.Position      { return i.Token.Pos }
func (i *InterpolatedStringExpression) GetType() *TypeAnnotation  { return i.ResolvedType }
func (i *InterpolatedStringExpression) SetType(t *TypeAnnotation) { i.ResolvedType = t }
func (i *InterpolatedStringExpression) String() string {
	var out strings.Builder
	out.WriteString("$\"")
	for _, p := range i.Parts {
		if p.Expression != nil {
			out.WriteString("{")
			out.WriteString(p.Expression.String())
			out.WriteString("}")
		} else {
			out.WriteString(p.Literal)
		}
	}
	out.WriteString("\"")
	return out.String()
}
