package ir

import (
	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/types"
)

// FieldMeta describes one field of a ClassMeta/StructureMeta.
type FieldMeta struct {
	Name   string
	Type   *types.TypeInfo
	Access ast.AccessLevel
	Static bool
}

// PropertyMeta describes a class property's accessor functions.
type PropertyMeta struct {
	Name       string
	Type       *types.TypeInfo
	Getter     *Function
	Setter     *Function
	IndexTypes []*types.TypeInfo
}

// EventMeta describes a declared event.
type EventMeta struct {
	Name string
	Type *types.TypeInfo
}

// ClassMeta records everything the emitter needs about a class beyond its
// methods' IR (§3.3 "Class metadata records fields, methods, constructors,
// properties, events, base class, implemented interfaces, and generic
// parameter names").
type ClassMeta struct {
	Name          string
	Generics      []string
	BaseClass     string
	Interfaces    []string
	Fields        []FieldMeta
	Methods       map[string]*Function
	methodOrder   []string
	Constructor   *Function
	BaseCtorArgs  []*Value
	Properties    []PropertyMeta
	Events        []EventMeta
	Abstract      bool
	Sealed        bool
}

// AddMethod registers a method, preserving insertion order.
func (c *ClassMeta) AddMethod(name string, fn *Function) {
	if c.Methods == nil {
		c.Methods = make(map[string]*Function)
	}
	if _, exists := c.Methods[name]; !exists {
		c.methodOrder = append(c.methodOrder, name)
	}
	c.Methods[name] = fn
}

// MethodNames returns method names in insertion order.
func (c *ClassMeta) MethodNames() []string {
	out := make([]string, len(c.methodOrder))
	copy(out, c.methodOrder)
	return out
}

// InterfaceMethodMeta is one member of an InterfaceMeta.
type InterfaceMethodMeta struct {
	Name       string
	ParamTypes []*types.TypeInfo
	ReturnType *types.TypeInfo
	Default    *Function // non-nil for an interface default method
}

// InterfaceMeta records an interface's extends list and method surface.
type InterfaceMeta struct {
	Name    string
	Extends []string
	Methods []InterfaceMethodMeta
}

// EnumMeta records an enum's underlying type and ordered members.
type EnumMeta struct {
	Name       string
	Underlying *types.TypeInfo
	Members    []EnumMemberMeta
}

// EnumMemberMeta is one (name, constant value) pair of an enum.
type EnumMemberMeta struct {
	Name  string
	Value int64
}

// DelegateMeta records a named function-pointer type's signature.
type DelegateMeta struct {
	Name       string
	Generics   []string
	ParamTypes []*types.TypeInfo
	ReturnType *types.TypeInfo
}

// ExternMeta records a platform-bound external declaration (§6.3).
type ExternMeta struct {
	Name       string
	ParamTypes []*types.TypeInfo
	ReturnType *types.TypeInfo
	Platforms  map[string]string
}

// Module owns every top-level artifact the IR Builder produces for a
// compilation unit (§3.3).
type Module struct {
	Name string

	Functions   map[string]*Function
	functionOrder []string

	Globals []*Value

	Types *types.Registry

	Classes    map[string]*ClassMeta
	classOrder []string

	Interfaces map[string]*InterfaceMeta
	Enums      map[string]*EnumMeta
	Delegates  map[string]*DelegateMeta
	Externs    map[string]*ExternMeta
}

// NewModule creates an empty module with its type registry pre-populated.
func NewModule(name string) *Module {
	return &Module{
		Name:       name,
		Functions:  make(map[string]*Function),
		Types:      types.NewRegistry(),
		Classes:    make(map[string]*ClassMeta),
		Interfaces: make(map[string]*InterfaceMeta),
		Enums:      make(map[string]*EnumMeta),
		Delegates:  make(map[string]*DelegateMeta),
		Externs:    make(map[string]*ExternMeta),
	}
}

// AddFunction registers fn, preserving insertion order for deterministic
// emission (§5).
func (m *Module) AddFunction(fn *Function) {
	if _, exists := m.Functions[fn.Name]; !exists {
		m.functionOrder = append(m.functionOrder, fn.Name)
	}
	m.Functions[fn.Name] = fn
}

// FunctionNames returns function names in insertion order.
func (m *Module) FunctionNames() []string {
	out := make([]string, len(m.functionOrder))
	copy(out, m.functionOrder)
	return out
}

// AddClass registers cm, preserving insertion order.
func (m *Module) AddClass(cm *ClassMeta) {
	if _, exists := m.Classes[cm.Name]; !exists {
		m.classOrder = append(m.classOrder, cm.Name)
	}
	m.Classes[cm.Name] = cm
}

// ClassNames returns class names in insertion order.
func (m *Module) ClassNames() []string {
	out := make([]string, len(m.classOrder))
	copy(out, m.classOrder)
	return out
}
