package types

import "fmt"

// Registry interns TypeInfo values by fully-qualified name (§3.1
// "TypeInfos are interned by fully-qualified name"). It is populated
// during semantic analysis and becomes read-only once analysis completes
// (§5 "Shared-resource policy").
type Registry struct {
	byName map[string]*TypeInfo
	arrays map[arrayKey]*TypeInfo
}

type arrayKey struct {
	element string
	rank    int
}

// NewRegistry creates a registry pre-populated with the primitive
// singletons.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]*TypeInfo),
		arrays: make(map[arrayKey]*TypeInfo),
	}
	for _, t := range []*TypeInfo{VoidType, IntegerType, LongType, SingleType, DoubleType, StringType, BooleanType, CharType} {
		r.byName[t.Name] = t
	}
	return r
}

// Lookup returns the interned type for name, or nil if never registered.
func (r *Registry) Lookup(name string) *TypeInfo {
	return r.byName[name]
}

// Register interns t under name, overwriting any existing binding. Callers
// typically register under the type's own fully-qualified Name.
func (r *Registry) Register(name string, t *TypeInfo) {
	r.byName[name] = t
}

// MustDeclare registers a brand-new named TypeInfo (Class/Interface/
// Structure/Enum/Delegate/UserDefinedType), returning an error if the name
// is already taken — semantic analysis surfaces this as a duplicate-
// definition error (§4.1).
func (r *Registry) MustDeclare(name string, kind Kind) (*TypeInfo, error) {
	if _, exists := r.byName[name]; exists {
		return nil, fmt.Errorf("type %q already declared", name)
	}
	t := &TypeInfo{Name: name, Kind: kind}
	r.byName[name] = t
	return t, nil
}

// ArrayOf interns (or returns the existing interned) array type of the
// given element type and rank (§3.1 "array types are equal iff element
// type and rank are equal").
func (r *Registry) ArrayOf(element *TypeInfo, rank int) *TypeInfo {
	key := arrayKey{element: element.String(), rank: rank}
	if existing, ok := r.arrays[key]; ok {
		return existing
	}
	t := &TypeInfo{
		Name:        element.String() + "[]",
		Kind:        Array,
		ElementType: element,
		ArrayRank:   rank,
	}
	r.arrays[key] = t
	return t
}

// PointerTo interns a pointer-to-element type.
func (r *Registry) PointerTo(element *TypeInfo) *TypeInfo {
	name := "*" + element.String()
	if existing := r.byName[name]; existing != nil {
		return existing
	}
	t := &TypeInfo{Name: name, Kind: Pointer, ElementType: element}
	r.byName[name] = t
	return t
}

// NullableOf interns a nullable wrapper around element.
func (r *Registry) NullableOf(element *TypeInfo) *TypeInfo {
	name := element.String() + "?"
	if existing := r.byName[name]; existing != nil {
		return existing
	}
	t := &TypeInfo{Name: name, Kind: Nullable, ElementType: element}
	r.byName[name] = t
	return t
}

// All returns every interned type, for deterministic module-wide traversal
// (callers sort by Name themselves where order matters).
func (r *Registry) All() []*TypeInfo {
	out := make([]*TypeInfo, 0, len(r.byName))
	for _, t := range r.byName {
		out = append(out, t)
	}
	return out
}
