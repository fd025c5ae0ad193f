// Package ir implements the intermediate representation of spec §3.3–§3.6:
// a module of basic-block CFG functions over three-address instructions,
// with a lightweight stack-of-versions SSA discipline. Grounded on the
// pack's compiler-in-Go IR (Value/Instruction interface shape) and on
// golang.org/x/tools/go/ssa's BasicBlock/Function layout.
package ir

import (
	"fmt"

	"github.com/basilisc/basilc/internal/types"
)

// ValueKind distinguishes how a Value came to exist.
type ValueKind int

const (
	ValueVariable ValueKind = iota
	ValueParameter
	ValueGlobal
	ValueTemp
	ValueConstant
)

// Value is an operand or result: a constant, a declared identifier, or a
// compiler-minted temporary (§3.5 "Naming invariant").
type Value struct {
	ID       int
	Name     string // source identifier for declared values (the emitter sanitizes it); "" for anonymous temps
	Type     *types.TypeInfo
	Kind     ValueKind
	Version  int // SSA version, meaningful for ValueVariable/ValueParameter
	Constant any // populated when Kind == ValueConstant
}

func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case ValueConstant:
		return fmt.Sprintf("%v", v.Constant)
	case ValueTemp:
		return fmt.Sprintf("t%d", v.ID)
	default:
		if v.Version > 0 {
			return fmt.Sprintf("%s.%d", v.Name, v.Version)
		}
		return v.Name
	}
}

// IsConstant reports whether v holds a compile-time constant.
func (v *Value) IsConstant() bool { return v.Kind == ValueConstant }

// IsDeclared reports whether the value names a real identifier (parameter,
// local, or global) rather than a compiler temp — the distinction §3.5's
// naming invariant and §4.5's emission policy both hinge on.
func (v *Value) IsDeclared() bool {
	return v.Kind == ValueParameter || v.Kind == ValueVariable || v.Kind == ValueGlobal
}

// NewConstant builds a constant Value of the given type.
func NewConstant(t *types.TypeInfo, value any) *Value {
	return &Value{Type: t, Kind: ValueConstant, Constant: value}
}
