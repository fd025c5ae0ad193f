package types

// IsAssignableFrom implements §4.3's assignability rules: same type;
// numeric widening in the Integer→Long→Single→Double order; null literal
// to any reference type; any class to an implemented interface; any class
// to a (transitive) base class; array covariance only for exact
// element-type match.
func IsAssignableFrom(target, source *TypeInfo) bool {
	if target == nil || source == nil {
		return false
	}
	if target.Equal(source) {
		return true
	}
	if source.Kind == Void && target.IsReference() {
		// null literal is represented as the Void singleton by convention
		// of callers that have no dedicated Nil type; reference types
		// accept it.
		return true
	}
	if target.IsNumeric() && source.IsNumeric() {
		return rankIndex(source.Numeric) <= rankIndex(target.Numeric)
	}
	if target.Kind == Interface && source.Kind == Class {
		return classImplements(source, target)
	}
	if target.Kind == Class && source.Kind == Class {
		return classDerivesFrom(source, target)
	}
	if target.Kind == Array && source.Kind == Array {
		return target.ArrayRank == source.ArrayRank && target.ElementType.Equal(source.ElementType)
	}
	if target.Kind == Nullable {
		return IsAssignableFrom(target.ElementType, source)
	}
	return false
}

func classImplements(class, iface *TypeInfo) bool {
	for c := class; c != nil; c = c.BaseType {
		for _, i := range c.Interfaces {
			if i.Equal(iface) || interfaceExtends(i, iface) {
				return true
			}
		}
	}
	return false
}

func interfaceExtends(iface, target *TypeInfo) bool {
	if iface.Equal(target) {
		return true
	}
	for _, base := range iface.Interfaces {
		if interfaceExtends(base, target) {
			return true
		}
	}
	return false
}

func classDerivesFrom(class, base *TypeInfo) bool {
	for c := class.BaseType; c != nil; c = c.BaseType {
		if c.Equal(base) {
			return true
		}
	}
	return false
}

// AreCompatible reports whether two types may be compared for equality at
// all (§4.3 "Equality: permitted between compatible types"): either is
// assignable to the other, or they are the same numeric family.
func AreCompatible(a, b *TypeInfo) bool {
	if a == nil || b == nil {
		return false
	}
	return IsAssignableFrom(a, b) || IsAssignableFrom(b, a)
}

// CastKind is derived from source/target kinds per §4.3.
type CastKind int

const (
	CastBitcast CastKind = iota
	CastTrunc
	CastZExt
	CastSExt
	CastFPTrunc
	CastFPExt
	CastFPToUI
	CastFPToSI
	CastUIToFP
	CastSIToFP
	CastPtrToInt
	CastIntToPtr
)

func (k CastKind) String() string {
	switch k {
	case CastTrunc:
		return "Trunc"
	case CastZExt:
		return "ZExt"
	case CastSExt:
		return "SExt"
	case CastFPTrunc:
		return "FPTrunc"
	case CastFPExt:
		return "FPExt"
	case CastFPToUI:
		return "FPToUI"
	case CastFPToSI:
		return "FPToSI"
	case CastUIToFP:
		return "UIToFP"
	case CastSIToFP:
		return "SIToFP"
	case CastPtrToInt:
		return "PtrToInt"
	case CastIntToPtr:
		return "IntToPtr"
	default:
		return "Bitcast"
	}
}

// DeriveCastKind picks the cast instruction kind for a source→target
// conversion (§4.3 "Cast kind is derived from source/target kinds (FP↔int,
// int widen/trunc, FP widen/trunc, otherwise bitcast)").
func DeriveCastKind(source, target *TypeInfo) CastKind {
	if source.Kind == Pointer && target.IsIntegral() {
		return CastPtrToInt
	}
	if source.IsIntegral() && target.Kind == Pointer {
		return CastIntToPtr
	}
	sourceFP := source.Kind == Primitive && (source.Numeric == RankSingle || source.Numeric == RankDouble)
	targetFP := target.Kind == Primitive && (target.Numeric == RankSingle || target.Numeric == RankDouble)
	switch {
	case sourceFP && target.IsIntegral():
		return CastFPToSI
	case source.IsIntegral() && targetFP:
		return CastSIToFP
	case sourceFP && targetFP:
		if rankIndex(target.Numeric) < rankIndex(source.Numeric) {
			return CastFPTrunc
		}
		return CastFPExt
	case source.IsIntegral() && target.IsIntegral():
		if rankIndex(target.Numeric) < rankIndex(source.Numeric) {
			return CastTrunc
		}
		return CastSExt
	default:
		return CastBitcast
	}
}
