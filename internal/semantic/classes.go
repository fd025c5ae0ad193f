package semantic

import (
	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/symbols"
	"github.com/basilisc/basilc/internal/types"
)

// analyzeClassDecl allocates a TypeInfo of kind Class, resolves base class
// and interface references, enters a class scope, recurses into members,
// and finally populates the class type's member table from the resolved
// symbols (§4.1).
func (a *Analyzer) analyzeClassDecl(d *ast.ClassDecl) {
	t, err := a.result.Types.MustDeclare(d.Name, types.Class)
	if err != nil {
		a.errf(d, "E-DUP-DEF", "%s", err.Error())
		return
	}
	if d.BaseClass != "" {
		base := a.result.Types.Lookup(d.BaseClass)
		if base == nil || base.Kind != types.Class {
			a.errf(d, "E-NON-CLASS-BASE", "base class %q of %q is not a declared class", d.BaseClass, d.Name)
		} else {
			t.BaseType = base
		}
	}
	for _, ifaceName := range d.Interfaces {
		iface := a.result.Types.Lookup(ifaceName)
		if iface == nil || iface.Kind != types.Interface {
			a.errf(d, "E-UNKNOWN-IFACE", "interface %q implemented by %q is not declared", ifaceName, d.Name)
			continue
		}
		t.Interfaces = append(t.Interfaces, iface)
	}

	sym := &symbols.Symbol{Name: d.Name, Kind: symbols.Class, Type: t}
	a.define(d, sym)
	a.result.setSymbol(d, sym)

	a.pushScope(d.Name, symbols.ClassScope)
	for _, member := range d.Members {
		a.analyzeClassMember(member)
	}
	for _, name := range a.scope.Names() {
		if memberSym, ok := a.scope.ResolveLocal(name); ok {
			t.AddMember(memberSym.Name, memberSym.Type)
		}
	}
	a.popScope()
}

func (a *Analyzer) analyzeClassMember(decl ast.Declaration) {
	switch m := decl.(type) {
	case *ast.FieldDecl:
		ft := a.resolveTypeAnnotation(m.Type)
		if m.Init != nil {
			initType := a.analyzeExpression(m.Init)
			if !types.IsAssignableFrom(ft, initType) {
				a.errf(m, "E-TYPE-MISMATCH", "field %q initializer is %s, expected %s", m.Name, initType, ft)
			}
		}
		a.define(m, &symbols.Symbol{Name: m.Name, Kind: symbols.Variable, Type: ft, Access: m.Access, IsStatic: m.Static})
	case *ast.FunctionDecl:
		a.analyzeFunctionDecl(m)
	case *ast.ConstructorDecl:
		a.analyzeConstructorDecl(m)
	case *ast.PropertyDecl:
		a.analyzePropertyDecl(m)
	case *ast.EventDecl:
		et := a.resolveTypeAnnotation(m.Type)
		a.define(m, &symbols.Symbol{Name: m.Name, Kind: symbols.Event, Type: et})
	case *ast.OperatorDecl:
		a.analyzeOperatorDecl(m)
	default:
		a.errf(decl, "E-INTERNAL", "unhandled class member %T", decl)
	}
}

func (a *Analyzer) analyzeConstructorDecl(d *ast.ConstructorDecl) {
	params := a.resolveParameters(d.Parameters)
	a.pushScope("constructor", symbols.FunctionScope)
	for _, p := range d.Parameters {
		pt := a.resolveTypeAnnotation(p.Type)
		a.define(p, &symbols.Symbol{Name: p.Name, Kind: symbols.Parameter, Type: pt})
	}
	for _, arg := range d.BaseArgs {
		a.analyzeExpression(arg)
	}
	if d.Body != nil {
		a.analyzeBlock(d.Body)
	}
	a.popScope()
	_ = params
}

func (a *Analyzer) analyzePropertyDecl(d *ast.PropertyDecl) {
	pt := a.resolveTypeAnnotation(d.Type)
	a.define(d, &symbols.Symbol{Name: d.Name, Kind: symbols.Variable, Type: pt, Access: d.Access})
	if d.Getter != nil {
		a.pushScope(d.Name+".get", symbols.FunctionScope)
		a.analyzeBlock(d.Getter)
		a.popScope()
	}
	if d.Setter != nil {
		a.pushScope(d.Name+".set", symbols.SubroutineScope)
		if d.SetterParam != "" {
			a.define(d, &symbols.Symbol{Name: d.SetterParam, Kind: symbols.Parameter, Type: pt})
		}
		a.analyzeBlock(d.Setter)
		a.popScope()
	}
}

func (a *Analyzer) analyzeOperatorDecl(d *ast.OperatorDecl) {
	ret := a.resolveTypeAnnotation(d.ReturnType)
	a.pushScope("operator", symbols.FunctionScope)
	for _, p := range d.Parameters {
		pt := a.resolveTypeAnnotation(p.Type)
		a.define(p, &symbols.Symbol{Name: p.Name, Kind: symbols.Parameter, Type: pt})
	}
	if d.Body != nil {
		a.analyzeBlock(d.Body)
	}
	a.popScope()
	_ = ret
}

func (a *Analyzer) analyzeInterfaceDecl(d *ast.InterfaceDecl) {
	t, err := a.result.Types.MustDeclare(d.Name, types.Interface)
	if err != nil {
		a.errf(d, "E-DUP-DEF", "%s", err.Error())
		return
	}
	for _, ext := range d.Extends {
		base := a.result.Types.Lookup(ext)
		if base == nil || base.Kind != types.Interface {
			a.errf(d, "E-UNKNOWN-IFACE", "interface %q extends undeclared interface %q", d.Name, ext)
			continue
		}
		t.Interfaces = append(t.Interfaces, base)
	}
	for _, m := range d.Methods {
		ret := a.resolveTypeAnnotation(m.ReturnType)
		t.AddMember(m.Name, ret)
		if m.Default != nil {
			a.pushScope(d.Name+"."+m.Name, symbols.FunctionScope)
			for _, p := range m.Parameters {
				pt := a.resolveTypeAnnotation(p.Type)
				a.define(p, &symbols.Symbol{Name: p.Name, Kind: symbols.Parameter, Type: pt})
			}
			a.analyzeBlock(m.Default)
			a.popScope()
		}
	}
	a.define(d, &symbols.Symbol{Name: d.Name, Kind: symbols.Interface, Type: t})
}
