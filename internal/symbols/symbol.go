// Package symbols implements the symbol-table and scope model of spec §3.2,
// grounded on the teacher compiler's semantic symbol table: case-insensitive
// name resolution chained through enclosing scopes.
package symbols

import (
	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/types"
)

// Kind is the closed set of symbol categories (§3.2).
type Kind int

const (
	Variable Kind = iota
	Parameter
	Constant
	Function
	Subroutine
	Class
	Interface
	Structure
	TypeAlias
	Enum
	Event
	Namespace
	Module
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "Variable"
	case Parameter:
		return "Parameter"
	case Constant:
		return "Constant"
	case Function:
		return "Function"
	case Subroutine:
		return "Subroutine"
	case Class:
		return "Class"
	case Interface:
		return "Interface"
	case Structure:
		return "Structure"
	case TypeAlias:
		return "TypeAlias"
	case Enum:
		return "Enum"
	case Event:
		return "Event"
	case Namespace:
		return "Namespace"
	case Module:
		return "Module"
	default:
		return "Unknown"
	}
}

// IsCallable reports whether the symbol denotes something invoked with
// call syntax.
func (k Kind) IsCallable() bool {
	return k == Function || k == Subroutine
}

// Symbol is one entry of a Scope's name table (§3.2).
type Symbol struct {
	Name   string // original-case spelling, kept for diagnostics
	Kind   Kind
	Type   *types.TypeInfo // resolved type; the return type for callables
	Access ast.AccessLevel

	Parameters []*Parameter // non-nil for Function/Subroutine
	ReturnType *types.TypeInfo

	IsConstant bool
	IsExtern   bool
	IsStatic   bool

	// ExternPlatforms maps a target platform key to the extern binding
	// template for that platform (§6.3), non-nil only for IsExtern symbols.
	ExternPlatforms map[string]string

	ConstValue ast.Expression // compile-time value, set when IsConstant
}

// Parameter mirrors ast.Parameter after type resolution.
type Parameter struct {
	Name     string
	Type     *types.TypeInfo
	ByRef    bool
	Variadic bool
	Default  ast.Expression
}
