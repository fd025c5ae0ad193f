// Package ast defines the Abstract Syntax Tree contract consumed by the
// semantic analyzer and IR builder (spec §6.1). The lexer and parser that
// produce this tree are external collaborators — this package is the sole
// interface between them and the compilation core.
package ast

import (
	"bytes"
	"strings"

	"github.com/basilisc/basilc/pkg/token"
)

// Node is the base interface for every AST node.
type Node interface {
	// TokenLiteral returns the literal value of the node's leading token.
	TokenLiteral() string
	// String renders the node for debugging and snapshot tests.
	String() string
	// Pos returns the node's source position for diagnostics.
	Pos() token.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without producing a value.
type Statement interface {
	Node
	statementNode()
}

// Declaration is any top-level or member declaration (§6.1).
type Declaration interface {
	Node
	declarationNode()
}

// TypedNode is implemented by expression nodes that carry a semantic-
// analysis-assigned type annotation (set once the analyzer runs).
type TypedNode interface {
	GetType() *TypeAnnotation
	SetType(*TypeAnnotation)
}

// SymbolNode is implemented by expression nodes that carry a semantic-
// analysis-assigned resolved symbol (identifiers, member accesses, calls).
type SymbolNode interface {
	GetSymbolName() string
}

// Program is the root of the AST: an ordered list of top-level declarations.
type Program struct {
	Declarations []Declaration
}

func (p *Program) TokenLiteral() string {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, d := range p.Declarations {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

// TypeAnnotation is a reference to a type as written in source (§6.1 "Type
// references"): a name plus pointer/array/nullable/generic-argument shape.
// The semantic analyzer resolves it to a types.TypeInfo; the TypeAnnotation
// itself never holds the resolved type — annotated expression nodes do,
// via TypedNode, keyed by the node itself (§4.1).
type TypeAnnotation struct {
	Token         token.Token
	Name          string
	GenericArgs   []*TypeAnnotation
	ArrayDims     []Expression // nil/empty element means unsized dimension
	IsArray       bool
	IsPointer     bool
	IsNullable    bool
}

func (t *TypeAnnotation) TokenLiteral() string { return t.Token.Literal }
func (t *TypeAnnotation) Pos() token.Position  { return t.Token.Pos }
func (t *TypeAnnotation) String() string {
	var out bytes.Buffer
	if t.IsPointer {
		out.WriteString("*")
	}
	out.WriteString(t.Name)
	if len(t.GenericArgs) > 0 {
		parts := make([]string, len(t.GenericArgs))
		for i, a := range t.GenericArgs {
			parts[i] = a.String()
		}
		out.WriteString("(Of ")
		out.WriteString(strings.Join(parts, ", "))
		out.WriteString(")")
	}
	if t.IsArray {
		out.WriteString(strings.Repeat("()", max(1, len(t.ArrayDims))))
	}
	if t.IsNullable {
		out.WriteString("?")
	}
	return out.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Identifier is a bare name reference.
type Identifier struct {
	Token        token.Token
	Value        string
	ResolvedType *TypeAnnotation
}

func (i *Identifier) expressionNode()               {}
func (i *Identifier) TokenLiteral() string          { return i.Token.Literal }
func (i *Identifier) String() string                { return i.Value }
func (i *Identifier) Pos() token.Position           { return i.Token.Pos }
func (i *Identifier) GetType() *TypeAnnotation       { return i.ResolvedType }
func (i *Identifier) SetType(t *TypeAnnotation)      { i.ResolvedType = t }
func (i *Identifier) GetSymbolName() string          { return i.Value }

// Literal token-kind tags (§6.1 "Literal (value, token-kind tag)").
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralBoolean
	LiteralChar
	LiteralNil
)

// Literal is any constant value appearing directly in source.
type Literal struct {
	Token        token.Token
	Kind         LiteralKind
	Value        any // int64, float64, string, bool, rune, or nil
	ResolvedType *TypeAnnotation
}

func (l *Literal) expressionNode()          {}
func (l *Literal) TokenLiteral() string     { return l.Token.Literal }
func (l *Literal) Pos() token.Position      { return l.Token.Pos }
func (l *Literal) GetType() *TypeAnnotation  { return l.ResolvedType }
func (l *Literal) SetType(t *TypeAnnotation) { l.ResolvedType = t }
func (l *Literal) String() string {
	if l.Kind == LiteralString {
		return "\"" + l.Value.(string) + "\""
	}
	return l.Token.Literal
}

// BinaryExpression is a two-operand operator application.
type BinaryExpression struct {
	Token        token.Token
	Left         Expression
	Operator     string
	Right        Expression
	ResolvedType *TypeAnnotation
}

func (b *BinaryExpression) expressionNode()          {}
func (b *BinaryExpression) TokenLiteral() string     { return b.Token.Literal }
func (b *BinaryExpression) Pos() token.Position      { return b.Token.Pos }
func (b *BinaryExpression) GetType() *TypeAnnotation  { return b.ResolvedType }
func (b *BinaryExpression) SetType(t *TypeAnnotation) { b.ResolvedType = t }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// UnaryExpression is a single-operand operator application; Postfix
// distinguishes trailing operators (e.g. a post-increment) from prefix ones.
type UnaryExpression struct {
	Token        token.Token
	Operator     string
	Operand      Expression
	Postfix      bool
	ResolvedType *TypeAnnotation
}

func (u *UnaryExpression) expressionNode()          {}
func (u *UnaryExpression) TokenLiteral() string     { return u.Token.Literal }
func (u *UnaryExpression) Pos() token.Position      { return u.Token.Pos }
func (u *UnaryExpression) GetType() *TypeAnnotation  { return u.ResolvedType }
func (u *UnaryExpression) SetType(t *TypeAnnotation) { u.ResolvedType = t }
func (u *UnaryExpression) String() string {
	if u.Postfix {
		return "(" + u.Operand.String() + u.Operator + ")"
	}
	return "(" + u.Operator + u.Operand.String() + ")"
}

// ExpressionStatement lifts an expression (typically a call) to statement
// position.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() token.Position  { return e.Token.Pos }
func (e *ExpressionStatement) String() string {
	if e.Expression != nil {
		return e.Expression.String()
	}
	return ""
}

// BlockStatement is an ordered list of statements forming a single scope.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (b *BlockStatement) statementNode()       {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStatement) Pos() token.Position  { return b.Token.Pos }
func (b *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString("  ")
		out.WriteString(strings.ReplaceAll(s.String(), "\n", "\n  "))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}
