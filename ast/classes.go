package ast

import (
	"strings"

	"github.com/basilisc/basilc/pkg/token"
)

// ClassDecl declares a class: single inheritance, any number of interfaces,
// optional generic parameters, and a member list (§6.1).
type ClassDecl struct {
	Token      token.Token
	Name       string
	Generics   []string
	BaseClass  string // empty if none
	Interfaces []string
	Members    []Declaration
	Abstract   bool
	Sealed     bool
}

func (c *ClassDecl) declarationNode()     {}
func (c *ClassDecl) TokenLiteral() string { return c.Token.Literal }
func (c *ClassDecl) Pos() token.Position  { return c.Token.Pos }
func (c *ClassDecl) String() string {
	out := "Class " + c.Name
	if c.BaseClass != "" {
		out += " Inherits " + c.BaseClass
	}
	if len(c.Interfaces) > 0 {
		out += " Implements " + strings.Join(c.Interfaces, ", ")
	}
	return out
}

// FieldDecl is an instance or static field member of a class/structure.
type FieldDecl struct {
	Token  token.Token
	Name   string
	Type   *TypeAnnotation
	Init   Expression
	Access AccessLevel
	Static bool
}

func (f *FieldDecl) declarationNode()     {}
func (f *FieldDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FieldDecl) Pos() token.Position  { return f.Token.Pos }
func (f *FieldDecl) String() string {
	out := "Dim " + f.Name + " As " + f.Type.String()
	if f.Init != nil {
		out += " = " + f.Init.String()
	}
	return out
}

// InterfaceMethodDecl is a method signature declared on an interface, with
// an optional default-implementation body (§GLOSSARY "Interface default
// method").
type InterfaceMethodDecl struct {
	Token      token.Token
	Name       string
	Parameters []*Parameter
	ReturnType *TypeAnnotation
	Default    *BlockStatement // non-nil for an interface default method
}

func (m *InterfaceMethodDecl) declarationNode()     {}
func (m *InterfaceMethodDecl) TokenLiteral() string { return m.Token.Literal }
func (m *InterfaceMethodDecl) Pos() token.Position  { return m.Token.Pos }
func (m *InterfaceMethodDecl) String() string {
	parts := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		parts[i] = p.String()
	}
	return "Function " + m.Name + "(" + strings.Join(parts, ", ") + ")"
}

// InterfaceDecl declares an interface, which may itself extend other
// interfaces.
type InterfaceDecl struct {
	Token   token.Token
	Name    string
	Extends []string
	Methods []*InterfaceMethodDecl
}

func (i *InterfaceDecl) declarationNode()     {}
func (i *InterfaceDecl) TokenLiteral() string { return i.Token.Literal }
func (i *InterfaceDecl) Pos() token.Position  { return i.Token.Pos }
func (i *InterfaceDecl) String() string {
	return "Interface " + i.Name
}

// PropertyDecl declares a property with a getter and/or setter, matching
// §6.1's "Property (getter/setter/setter-parameter)".
type PropertyDecl struct {
	Token         token.Token
	Name          string
	Type          *TypeAnnotation
	Getter        *BlockStatement
	Setter        *BlockStatement
	SetterParam   string // name bound to the assigned value inside Setter
	IndexParams   []*Parameter
	Access        AccessLevel
}

func (p *PropertyDecl) declarationNode()     {}
func (p *PropertyDecl) TokenLiteral() string { return p.Token.Literal }
func (p *PropertyDecl) Pos() token.Position  { return p.Token.Pos }
func (p *PropertyDecl) String() string {
	return "Property " + p.Name + " As " + p.Type.String()
}

// EventDecl declares an event member; the delegate named in Type is the
// handler signature.
type EventDecl struct {
	Token token.Token
	Name  string
	Type  *TypeAnnotation
}

func (e *EventDecl) declarationNode()     {}
func (e *EventDecl) TokenLiteral() string { return e.Token.Literal }
func (e *EventDecl) Pos() token.Position  { return e.Token.Pos }
func (e *EventDecl) String() string {
	return "Event " + e.Name + " As " + e.Type.String()
}

// OperatorKind distinguishes a normal overloaded operator from a
// user-defined conversion (§6.1 "widening/narrowing flags").
type OperatorKind int

const (
	OperatorNormal OperatorKind = iota
	OperatorWidening
	OperatorNarrowing
)

// OperatorDecl overloads an operator symbol for a class/structure.
type OperatorDecl struct {
	Token      token.Token
	Symbol     string
	Parameters []*Parameter
	ReturnType *TypeAnnotation
	Kind       OperatorKind
	Body       *BlockStatement
}

func (o *OperatorDecl) declarationNode()     {}
func (o *OperatorDecl) TokenLiteral() string { return o.Token.Literal }
func (o *OperatorDecl) Pos() token.Position  { return o.Token.Pos }
func (o *OperatorDecl) String() string {
	return "Operator " + o.Symbol
}

// ConstructorDecl declares a class constructor, optionally chaining to a
// base constructor with explicit arguments (§6.1).
type ConstructorDecl struct {
	Token          token.Token
	Parameters     []*Parameter
	BaseArgs       []Expression // arguments passed to MyBase.New(...)
	Body           *BlockStatement
	Access         AccessLevel
}

func (c *ConstructorDecl) declarationNode()     {}
func (c *ConstructorDecl) TokenLiteral() string { return c.Token.Literal }
func (c *ConstructorDecl) Pos() token.Position  { return c.Token.Pos }
func (c *ConstructorDecl) String() string {
	return "New"
}

// ExternDecl declares a function/subroutine implemented per target
// platform via a template string (§6.3).
type ExternDecl struct {
	Token      token.Token
	Name       string
	IsFunction bool
	Parameters []*Parameter
	ReturnType *TypeAnnotation
	Platforms  map[string]string // platform tag -> implementation template
}

func (e *ExternDecl) declarationNode()     {}
func (e *ExternDecl) TokenLiteral() string { return e.Token.Literal }
func (e *ExternDecl) Pos() token.Position  { return e.Token.Pos }
func (e *ExternDecl) String() string {
	return "Extern " + e.Name
}

// TemplateDecl is a generic wrapper around another declaration (§6.1
// "Template (generic wrapper)"), used by source syntax that separates the
// `Of(T)` parameter list from the wrapped class/function/delegate.
type TemplateDecl struct {
	Token    token.Token
	Generics []string
	Inner    Declaration
}

func (t *TemplateDecl) declarationNode()     {}
func (t *TemplateDecl) TokenLiteral() string { return t.Token.Literal }
func (t *TemplateDecl) Pos() token.Position  { return t.Token.Pos }
func (t *TemplateDecl) String() string {
	return "Template(Of " + strings.Join(t.Generics, ", ") + ") " + t.Inner.String()
}
