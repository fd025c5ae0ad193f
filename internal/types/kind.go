// Package types implements the TypeInfo model of spec §3.1 and the
// compatibility/widening rules of §4.3.
package types

// Kind is the closed set of type categories TypeInfo can represent (§3.1).
type Kind int

const (
	Void Kind = iota
	Primitive
	StringKind
	Boolean
	Char
	Array
	Pointer
	Class
	Interface
	Structure
	UserDefinedType
	Enum
	Delegate
	Tuple
	Nullable
	Generic
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "Void"
	case Primitive:
		return "Primitive"
	case StringKind:
		return "String"
	case Boolean:
		return "Boolean"
	case Char:
		return "Char"
	case Array:
		return "Array"
	case Pointer:
		return "Pointer"
	case Class:
		return "Class"
	case Interface:
		return "Interface"
	case Structure:
		return "Structure"
	case UserDefinedType:
		return "UserDefinedType"
	case Enum:
		return "Enum"
	case Delegate:
		return "Delegate"
	case Tuple:
		return "Tuple"
	case Nullable:
		return "Nullable"
	case Generic:
		return "Generic"
	default:
		return "Unknown"
	}
}

// Numeric primitive subkinds, used for the widening order of §4.3:
// "Integer → Long → Single → Double".
type NumericRank int

const (
	NotNumeric NumericRank = iota
	RankInteger
	RankLong
	RankSingle
	RankDouble
)
