package ir

import "github.com/basilisc/basilc/internal/types"

// BinaryOpKind is the closed operator set for BinaryOp instructions (§3.5).
type BinaryOpKind int

const (
	Add BinaryOpKind = iota
	Sub
	Mul
	Div
	Mod
	IntDiv
	And
	Or
	Xor
	Shl
	Shr
	Concat
)

func (k BinaryOpKind) String() string {
	switch k {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "Mod"
	case IntDiv:
		return "\\"
	case And:
		return "And"
	case Or:
		return "Or"
	case Xor:
		return "Xor"
	case Shl:
		return "Shl"
	case Shr:
		return "Shr"
	case Concat:
		return "&"
	default:
		return "?"
	}
}

// UnaryOpKind is the closed operator set for UnaryOp instructions (§3.5).
type UnaryOpKind int

const (
	Neg UnaryOpKind = iota
	Not
	BitwiseNot
	Inc
	Dec
)

func (k UnaryOpKind) String() string {
	switch k {
	case Neg:
		return "-"
	case Not:
		return "Not"
	case BitwiseNot:
		return "~"
	case Inc:
		return "++"
	case Dec:
		return "--"
	default:
		return "?"
	}
}

// CompareKind is the closed relational-operator set for Compare (§3.5).
type CompareKind int

const (
	Eq CompareKind = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

func (k CompareKind) String() string {
	switch k {
	case Eq:
		return "="
	case Ne:
		return "<>"
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}

// CastKind re-exports types.CastKind under the ir package so instruction
// definitions don't need to import internal/types just for this enum.
type CastKind = types.CastKind
