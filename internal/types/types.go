package types

import (
	"fmt"
	"strings"
)

// Member is one entry of a Class/Interface/Structure's name-indexed member
// table, populated during semantic analysis (§3.1).
type Member struct {
	Name string
	Type *TypeInfo
}

// TupleElement names one slot of a Tuple type.
type TupleElement struct {
	Name string // may be empty (positional tuple)
	Type *TypeInfo
}

// TypeInfo is the single representation for every type the analyzer and IR
// builder reason about (§3.1).
type TypeInfo struct {
	Name string
	Kind Kind

	// Array / Pointer
	ElementType *TypeInfo
	ArrayRank   int // number of dimensions; 0 for non-arrays
	FixedSize   []int // per-dimension fixed size, 0 meaning dynamic

	// Class / Structure / UserDefinedType alias / Enum underlying
	BaseType *TypeInfo

	// Class / Structure / Interface
	Interfaces []*TypeInfo
	Members    map[string]*Member
	memberOrder []string

	// Tuple
	TupleElements []TupleElement

	// Generic
	GenericArgs  []*TypeInfo
	GenericParam string // non-empty when this TypeInfo *is* an unbound generic parameter

	// Numeric subkind, meaningful only when Kind == Primitive.
	Numeric NumericRank
}

// NewMemberTable initializes the member table of a Class/Interface/
// Structure TypeInfo. Safe to call more than once; later calls are no-ops.
func (t *TypeInfo) NewMemberTable() {
	if t.Members == nil {
		t.Members = make(map[string]*Member)
	}
}

// AddMember inserts or overwrites a member, preserving first-insertion
// order so that deterministic iteration (§5 "insertion order is the
// recommended discipline") is possible via Members/MemberNames.
func (t *TypeInfo) AddMember(name string, typ *TypeInfo) {
	t.NewMemberTable()
	if _, exists := t.Members[name]; !exists {
		t.memberOrder = append(t.memberOrder, name)
	}
	t.Members[name] = &Member{Name: name, Type: typ}
}

// MemberNames returns member names in insertion order.
func (t *TypeInfo) MemberNames() []string {
	out := make([]string, len(t.memberOrder))
	copy(out, t.memberOrder)
	return out
}

func (t *TypeInfo) String() string {
	switch t.Kind {
	case Array:
		dims := strings.Repeat(",", max0(t.ArrayRank-1))
		return fmt.Sprintf("%s[%s]", t.ElementType.String(), dims)
	case Pointer:
		return "*" + t.ElementType.String()
	case Nullable:
		return t.ElementType.String() + "?"
	case Generic:
		if len(t.GenericArgs) > 0 {
			parts := make([]string, len(t.GenericArgs))
			for i, a := range t.GenericArgs {
				parts[i] = a.String()
			}
			return t.Name + "(Of " + strings.Join(parts, ", ") + ")"
		}
		return t.Name
	default:
		return t.Name
	}
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// IsNumeric reports whether the type participates in arithmetic (§9:
// "IsNumeric()/IsIntegral() ... fine as explicit methods on the TypeInfo
// sum").
func (t *TypeInfo) IsNumeric() bool {
	return t.Kind == Primitive && t.Numeric != NotNumeric
}

// IsIntegral reports whether the type is one of the integral numeric
// subkinds (Integer/Long); used by §4.3's "Integer division requires both
// sides integral."
func (t *TypeInfo) IsIntegral() bool {
	return t.Kind == Primitive && (t.Numeric == RankInteger || t.Numeric == RankLong)
}

// IsReference reports whether nil is a valid value of the type (§4.3
// "null literal to any reference type").
func (t *TypeInfo) IsReference() bool {
	switch t.Kind {
	case Class, Interface, Array, Pointer, Delegate, Nullable:
		return true
	default:
		return false
	}
}

// Equal implements the equality invariant of §3.1: primitive types are
// singletons (pointer-equal after interning); array types are equal iff
// element type and rank are equal; everything else compares by identity
// after interning, with Equal provided for cases a caller holds two
// independently-built (non-interned) TypeInfo values.
func (t *TypeInfo) Equal(other *TypeInfo) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Array:
		return t.ArrayRank == other.ArrayRank && t.ElementType.Equal(other.ElementType)
	case Pointer, Nullable:
		return t.ElementType.Equal(other.ElementType)
	case Generic:
		if t.Name != other.Name || len(t.GenericArgs) != len(other.GenericArgs) {
			return false
		}
		for i := range t.GenericArgs {
			if !t.GenericArgs[i].Equal(other.GenericArgs[i]) {
				return false
			}
		}
		return true
	case Tuple:
		if len(t.TupleElements) != len(other.TupleElements) {
			return false
		}
		for i := range t.TupleElements {
			if !t.TupleElements[i].Type.Equal(other.TupleElements[i].Type) {
				return false
			}
		}
		return true
	default:
		return t.Name == other.Name
	}
}

// Well-known singleton primitive instances. Interning guarantees callers
// that compare these with == get correct results (§3.1 "primitive types
// are singletons").
var (
	VoidType    = &TypeInfo{Name: "Void", Kind: Void}
	IntegerType = &TypeInfo{Name: "Integer", Kind: Primitive, Numeric: RankInteger}
	LongType    = &TypeInfo{Name: "Long", Kind: Primitive, Numeric: RankLong}
	SingleType  = &TypeInfo{Name: "Single", Kind: Primitive, Numeric: RankSingle}
	DoubleType  = &TypeInfo{Name: "Double", Kind: Primitive, Numeric: RankDouble}
	StringType  = &TypeInfo{Name: "String", Kind: StringKind}
	BooleanType = &TypeInfo{Name: "Boolean", Kind: Boolean}
	CharType    = &TypeInfo{Name: "Char", Kind: Char}
)

// numericOrder is the widening order of §4.3, lowest to highest.
var numericOrder = []NumericRank{RankInteger, RankLong, RankSingle, RankDouble}

func rankIndex(r NumericRank) int {
	for i, v := range numericOrder {
		if v == r {
			return i
		}
	}
	return -1
}

// WiderNumeric returns the wider of two numeric subkinds per the widening
// order, or NotNumeric if either is not numeric.
func WiderNumeric(a, b NumericRank) NumericRank {
	ai, bi := rankIndex(a), rankIndex(b)
	if ai < 0 || bi < 0 {
		return NotNumeric
	}
	if ai >= bi {
		return a
	}
	return b
}

func typeForRank(r NumericRank) *TypeInfo {
	switch r {
	case RankInteger:
		return IntegerType
	case RankLong:
		return LongType
	case RankSingle:
		return SingleType
	case RankDouble:
		return DoubleType
	default:
		return nil
	}
}

// CommonNumericType returns the widest of two numeric types, or nil if
// either operand is not numeric (§4.3 "Common type is the widest").
func CommonNumericType(a, b *TypeInfo) *TypeInfo {
	if a == nil || b == nil || !a.IsNumeric() || !b.IsNumeric() {
		return nil
	}
	return typeForRank(WiderNumeric(a.Numeric, b.Numeric))
}
