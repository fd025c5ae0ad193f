package ast

import (
	"bytes"
	"strings"

	"github.com/basilisc/basilc/pkg/token"
)

// AccessLevel is the declared visibility of a declaration or member.
type AccessLevel int

const (
	AccessPublic AccessLevel = iota
	AccessPrivate
	AccessProtected
	AccessFriend
)

func (a AccessLevel) String() string {
	switch a {
	case AccessPrivate:
		return "Private"
	case AccessProtected:
		return "Protected"
	case AccessFriend:
		return "Friend"
	default:
		return "Public"
	}
}

// NamespaceDecl groups declarations under a dotted name.
type NamespaceDecl struct {
	Token        token.Token
	Name         string
	Declarations []Declaration
}

func (n *NamespaceDecl) declarationNode()     {}
func (n *NamespaceDecl) TokenLiteral() string { return n.Token.Literal }
func (n *NamespaceDecl) Pos() token.Position  { return n.Token.Pos }
func (n *NamespaceDecl) String() string {
	var out bytes.Buffer
	out.WriteString("Namespace ")
	out.WriteString(n.Name)
	out.WriteString("\n")
	for _, d := range n.Declarations {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	out.WriteString("End Namespace")
	return out.String()
}

// ModuleDecl is a standalone-member container (shared subs/functions/consts
// with no instance state), distinct from a Class.
type ModuleDecl struct {
	Token        token.Token
	Name         string
	Declarations []Declaration
}

func (m *ModuleDecl) declarationNode()     {}
func (m *ModuleDecl) TokenLiteral() string { return m.Token.Literal }
func (m *ModuleDecl) Pos() token.Position  { return m.Token.Pos }
func (m *ModuleDecl) String() string {
	return "Module " + m.Name
}

// UsingDecl / ImportDecl bring a namespace into scope.
type UsingDecl struct {
	Token token.Token
	Path  string
}

func (u *UsingDecl) declarationNode()     {}
func (u *UsingDecl) TokenLiteral() string { return u.Token.Literal }
func (u *UsingDecl) Pos() token.Position  { return u.Token.Pos }
func (u *UsingDecl) String() string       { return "Using " + u.Path }

type ImportDecl struct {
	Token token.Token
	Path  string
	Alias string
}

func (i *ImportDecl) declarationNode()     {}
func (i *ImportDecl) TokenLiteral() string { return i.Token.Literal }
func (i *ImportDecl) Pos() token.Position  { return i.Token.Pos }
func (i *ImportDecl) String() string {
	if i.Alias != "" {
		return "Import " + i.Alias + " = " + i.Path
	}
	return "Import " + i.Path
}

// Parameter is a single formal parameter of a Function/Subroutine/Delegate/
// lambda (§6.1 "Parameter (name, type reference, optional default, by-ref
// flag)").
type Parameter struct {
	Token        token.Token
	Name         string
	Type         *TypeAnnotation
	Default      Expression
	ByRef        bool
	IsParamArray bool
}

func (p *Parameter) TokenLiteral() string { return p.Token.Literal }
func (p *Parameter) Pos() token.Position  { return p.Token.Pos }
func (p *Parameter) String() string {
	var out bytes.Buffer
	if p.ByRef {
		out.WriteString("ByRef ")
	}
	if p.IsParamArray {
		out.WriteString("ParamArray ")
	}
	out.WriteString(p.Name)
	if p.Type != nil {
		out.WriteString(" As ")
		out.WriteString(p.Type.String())
	}
	if p.Default != nil {
		out.WriteString(" = ")
		out.WriteString(p.Default.String())
	}
	return out.String()
}

// VariableDeclaration declares one or more local/global variables.
// Auto is true when the type is to be inferred from Init (§4.1
// "Auto-typed locals infer their type from the initializer's resolved
// type").
type VariableDeclaration struct {
	Token        token.Token
	Name         string
	Type         *TypeAnnotation
	Init         Expression
	Auto         bool
	ResolvedType *TypeAnnotation
}

func (v *VariableDeclaration) statementNode()        {}
func (v *VariableDeclaration) declarationNode()      {}
func (v *VariableDeclaration) TokenLiteral() string  { return v.Token.Literal }
func (v *VariableDeclaration) Pos() token.Position   { return v.Token.Pos }
func (v *VariableDeclaration) GetType() *TypeAnnotation  { return v.ResolvedType }
func (v *VariableDeclaration) SetType(t *TypeAnnotation) { v.ResolvedType = t }
func (v *VariableDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("Dim ")
	out.WriteString(v.Name)
	if v.Auto {
		out.WriteString(" :=")
	} else if v.Type != nil {
		out.WriteString(" As ")
		out.WriteString(v.Type.String())
	}
	if v.Init != nil {
		out.WriteString(" = ")
		out.WriteString(v.Init.String())
	}
	return out.String()
}

// ConstantDeclaration declares a compile-time constant.
type ConstantDeclaration struct {
	Token token.Token
	Name  string
	Type  *TypeAnnotation
	Value Expression
}

func (c *ConstantDeclaration) statementNode()       {}
func (c *ConstantDeclaration) declarationNode()     {}
func (c *ConstantDeclaration) TokenLiteral() string { return c.Token.Literal }
func (c *ConstantDeclaration) Pos() token.Position  { return c.Token.Pos }
func (c *ConstantDeclaration) String() string {
	return "Const " + c.Name + " = " + c.Value.String()
}

// TypeDefine declares a type alias: `Type NewName = ExistingName`.
type TypeDefine struct {
	Token  token.Token
	Name   string
	Target *TypeAnnotation
}

func (t *TypeDefine) declarationNode()     {}
func (t *TypeDefine) TokenLiteral() string { return t.Token.Literal }
func (t *TypeDefine) Pos() token.Position  { return t.Token.Pos }
func (t *TypeDefine) String() string {
	return "Type " + t.Name + " = " + t.Target.String()
}

// DelegateDecl declares a named function-pointer type.
type DelegateDecl struct {
	Token      token.Token
	Name       string
	Parameters []*Parameter
	ReturnType *TypeAnnotation // nil for a Sub-shaped delegate
	Generics   []string
}

func (d *DelegateDecl) declarationNode()     {}
func (d *DelegateDecl) TokenLiteral() string { return d.Token.Literal }
func (d *DelegateDecl) Pos() token.Position  { return d.Token.Pos }
func (d *DelegateDecl) String() string {
	parts := make([]string, len(d.Parameters))
	for i, p := range d.Parameters {
		parts[i] = p.String()
	}
	out := "Delegate " + d.Name + "(" + strings.Join(parts, ", ") + ")"
	if d.ReturnType != nil {
		out += " As " + d.ReturnType.String()
	}
	return out
}

// EnumMember is one named value of an EnumDecl.
type EnumMember struct {
	Name  string
	Value Expression // optional explicit ordinal/underlying value
}

// EnumDecl declares an enumeration, optionally over a non-default
// underlying integral type.
type EnumDecl struct {
	Token       token.Token
	Name        string
	Underlying  *TypeAnnotation
	Members     []EnumMember
}

func (e *EnumDecl) declarationNode()     {}
func (e *EnumDecl) TokenLiteral() string { return e.Token.Literal }
func (e *EnumDecl) Pos() token.Position  { return e.Token.Pos }
func (e *EnumDecl) String() string {
	names := make([]string, len(e.Members))
	for i, m := range e.Members {
		names[i] = m.Name
	}
	return "Enum " + e.Name + " { " + strings.Join(names, ", ") + " }"
}

// StructureField is one member of a Structure/record-like Type declaration.
type StructureField struct {
	Name string
	Type *TypeAnnotation
}

// StructureDecl is a record-like value type (§6.1 "Type/Structure").
type StructureDecl struct {
	Token  token.Token
	Name   string
	Fields []StructureField
}

func (s *StructureDecl) declarationNode()     {}
func (s *StructureDecl) TokenLiteral() string { return s.Token.Literal }
func (s *StructureDecl) Pos() token.Position  { return s.Token.Pos }
func (s *StructureDecl) String() string {
	return "Structure " + s.Name
}
