package ast

import (
	"strings"

	"github.com/basilisc/basilc/pkg/token"
)

// FunctionKind distinguishes a value-returning Function from a void
// Subroutine (§6.1 "Function/Subroutine").
type FunctionKind int

const (
	KindFunction FunctionKind = iota
	KindSubroutine
)

// Modifiers bundles the declaration-site flags §6.1 lists for
// Function/Subroutine: "access, static, virtual, override, abstract,
// sealed, async, iterator".
type Modifiers struct {
	Access   AccessLevel
	Static   bool
	Virtual  bool
	Override bool
	Abstract bool
	Sealed   bool
	Async    bool
	Iterator bool
}

// FunctionDecl is a Function or Subroutine declaration, free-standing or a
// class/interface member.
type FunctionDecl struct {
	Token      token.Token
	Name       string
	Kind       FunctionKind
	Generics   []string
	Parameters []*Parameter
	ReturnType *TypeAnnotation // nil for a Subroutine
	Implements string          // optional interface-method name this implements
	Modifiers  Modifiers
	Body       *BlockStatement // nil for abstract/extern/forward declarations
	IsExtension bool
}

func (f *FunctionDecl) declarationNode()     {}
func (f *FunctionDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDecl) Pos() token.Position  { return f.Token.Pos }
func (f *FunctionDecl) String() string {
	kw := "Sub"
	if f.Kind == KindFunction {
		kw = "Function"
	}
	parts := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		parts[i] = p.String()
	}
	out := kw + " " + f.Name + "(" + strings.Join(parts, ", ") + ")"
	if f.ReturnType != nil {
		out += " As " + f.ReturnType.String()
	}
	return out
}

// ReturnStatement returns from the enclosing Function/Subroutine.
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for a Subroutine return
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) Pos() token.Position  { return r.Token.Pos }
func (r *ReturnStatement) String() string {
	if r.Value != nil {
		return "Return " + r.Value.String()
	}
	return "Return"
}
