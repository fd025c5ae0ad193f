package semantic

import (
	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/optimizer"
	"github.com/basilisc/basilc/internal/symbols"
	"github.com/basilisc/basilc/internal/types"
)

func (a *Analyzer) analyzeDeclaration(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.NamespaceDecl:
		a.pushScope(d.Name, symbols.NamespaceScope)
		for _, inner := range d.Declarations {
			a.analyzeDeclaration(inner)
		}
		a.popScope()
	case *ast.ModuleDecl:
		a.pushScope(d.Name, symbols.ModuleScope)
		for _, inner := range d.Declarations {
			a.analyzeDeclaration(inner)
		}
		a.popScope()
	case *ast.UsingDecl, *ast.ImportDecl:
		// No symbol effect within this unit (§1 Non-goals: cross-unit linking).
	case *ast.VariableDeclaration:
		a.analyzeVariableDecl(d)
	case *ast.ConstantDeclaration:
		a.analyzeConstantDecl(d)
	case *ast.TypeDefine:
		target := a.resolveTypeAnnotation(target0(d))
		t, err := a.result.Types.MustDeclare(d.Name, types.UserDefinedType)
		if err != nil {
			a.errf(d, "E-DUP-DEF", "%s", err.Error())
			return
		}
		t.BaseType = target
		a.define(d, &symbols.Symbol{Name: d.Name, Kind: symbols.TypeAlias, Type: t})
	case *ast.DelegateDecl:
		a.analyzeDelegateDecl(d)
	case *ast.EnumDecl:
		a.analyzeEnumDecl(d)
	case *ast.StructureDecl:
		a.analyzeStructureDecl(d)
	case *ast.FunctionDecl:
		a.analyzeFunctionDecl(d)
	case *ast.ClassDecl:
		a.analyzeClassDecl(d)
	case *ast.InterfaceDecl:
		a.analyzeInterfaceDecl(d)
	case *ast.ExternDecl:
		a.analyzeExternDecl(d)
	case *ast.TemplateDecl:
		a.analyzeDeclaration(d.Inner)
	default:
		a.errf(decl, "E-INTERNAL", "unhandled declaration %T", decl)
	}
}

func target0(d *ast.TypeDefine) *ast.TypeAnnotation { return d.Target }

func (a *Analyzer) analyzeVariableDecl(d *ast.VariableDeclaration) {
	var t *types.TypeInfo
	if d.Auto {
		if d.Init == nil {
			a.errf(d, "E-AUTO-NO-INIT", "auto-typed variable %q requires an initializer", d.Name)
			t = types.VoidType
		} else {
			t = a.analyzeExpression(d.Init)
		}
	} else {
		t = a.resolveTypeAnnotation(d.Type)
		if d.Init != nil {
			initType := a.analyzeExpression(d.Init)
			if !types.IsAssignableFrom(t, initType) {
				a.errf(d, "E-TYPE-MISMATCH", "cannot assign %s to variable %q of type %s", initType, d.Name, t)
			}
		}
	}
	d.ResolvedType = &ast.TypeAnnotation{Name: t.String()}
	a.result.setType(d, t)
	sym := &symbols.Symbol{Name: d.Name, Kind: symbols.Variable, Type: t}
	a.define(d, sym)
	a.result.setSymbol(d, sym)
}

func (a *Analyzer) analyzeConstantDecl(d *ast.ConstantDeclaration) {
	var t *types.TypeInfo
	if d.Type != nil {
		t = a.resolveTypeAnnotation(d.Type)
	}
	valueType := a.analyzeExpression(d.Value)
	if t == nil {
		t = valueType
	} else if !types.IsAssignableFrom(t, valueType) {
		a.errf(d, "E-TYPE-MISMATCH", "constant %q initializer is %s, expected %s", d.Name, valueType, t)
	}
	sym := &symbols.Symbol{Name: d.Name, Kind: symbols.Constant, Type: t, IsConstant: true, ConstValue: d.Value}
	a.define(d, sym)
	a.result.setSymbol(d, sym)
	a.result.setType(d, t)
}

func (a *Analyzer) analyzeDelegateDecl(d *ast.DelegateDecl) {
	ret := a.resolveTypeAnnotation(d.ReturnType)
	params := a.resolveParameters(d.Parameters)
	t, err := a.result.Types.MustDeclare(d.Name, types.Delegate)
	if err != nil {
		a.errf(d, "E-DUP-DEF", "%s", err.Error())
		return
	}
	for _, p := range params {
		t.AddMember(p.Name, p.Type)
	}
	sym := &symbols.Symbol{Name: d.Name, Kind: symbols.TypeAlias, Type: t, ReturnType: ret, Parameters: params}
	a.define(d, sym)
}

func (a *Analyzer) analyzeEnumDecl(d *ast.EnumDecl) {
	underlying := types.IntegerType
	if d.Underlying != nil {
		underlying = a.resolveTypeAnnotation(d.Underlying)
	}
	t, err := a.result.Types.MustDeclare(d.Name, types.Enum)
	if err != nil {
		a.errf(d, "E-DUP-DEF", "%s", err.Error())
		return
	}
	t.BaseType = underlying
	a.define(d, &symbols.Symbol{Name: d.Name, Kind: symbols.Enum, Type: t})

	a.pushScope(d.Name, symbols.BlockScope)
	next := int64(0)
	for _, m := range d.Members {
		if m.Value != nil {
			if v, ok := a.foldIntConstant(m.Value); ok {
				next = v
			} else {
				a.errf(d, "E-NON-CONST", "enum member %q value must be a compile-time constant", m.Name)
			}
		}
		t.AddMember(m.Name, t)
		memberValue := &ast.Literal{Kind: ast.LiteralInteger, Value: next}
		a.define(d, &symbols.Symbol{Name: m.Name, Kind: symbols.Constant, Type: t, IsConstant: true, ConstValue: memberValue})
		next++
	}
	a.popScope()
}

func (a *Analyzer) analyzeStructureDecl(d *ast.StructureDecl) {
	t, err := a.result.Types.MustDeclare(d.Name, types.Structure)
	if err != nil {
		a.errf(d, "E-DUP-DEF", "%s", err.Error())
		return
	}
	for _, f := range d.Fields {
		t.AddMember(f.Name, a.resolveTypeAnnotation(f.Type))
	}
	a.define(d, &symbols.Symbol{Name: d.Name, Kind: symbols.Structure, Type: t})
}

func (a *Analyzer) analyzeExternDecl(d *ast.ExternDecl) {
	ret := a.resolveTypeAnnotation(d.ReturnType)
	params := a.resolveParameters(d.Parameters)
	kind := symbols.Subroutine
	if d.IsFunction {
		kind = symbols.Function
	}
	sym := &symbols.Symbol{
		Name: d.Name, Kind: kind, ReturnType: ret, Parameters: params,
		IsExtern: true, ExternPlatforms: d.Platforms,
	}
	a.define(d, sym)
}

func (a *Analyzer) resolveParameters(params []*ast.Parameter) []*symbols.Parameter {
	out := make([]*symbols.Parameter, len(params))
	for i, p := range params {
		out[i] = &symbols.Parameter{
			Name:     p.Name,
			Type:     a.resolveTypeAnnotation(p.Type),
			ByRef:    p.ByRef,
			Variadic: p.IsParamArray,
			Default:  p.Default,
		}
	}
	return out
}

// resolveTypeAnnotation maps an ast.TypeAnnotation to its TypeInfo,
// handling array/pointer/nullable/generic modifiers.
func (a *Analyzer) resolveTypeAnnotation(t *ast.TypeAnnotation) *types.TypeInfo {
	if t == nil {
		return types.VoidType
	}
	base := a.result.Types.Lookup(t.Name)
	if base == nil {
		switch t.Name {
		case "Integer":
			base = types.IntegerType
		case "Long":
			base = types.LongType
		case "Single":
			base = types.SingleType
		case "Double":
			base = types.DoubleType
		case "String":
			base = types.StringType
		case "Boolean":
			base = types.BooleanType
		case "Char":
			base = types.CharType
		case "Void":
			base = types.VoidType
		default:
			base = &types.TypeInfo{Name: t.Name, Kind: types.UserDefinedType}
		}
	}
	if len(t.GenericArgs) > 0 {
		args := make([]*types.TypeInfo, len(t.GenericArgs))
		for i, g := range t.GenericArgs {
			args[i] = a.resolveTypeAnnotation(g)
		}
		base = &types.TypeInfo{Name: t.Name, Kind: types.Generic, GenericArgs: args, GenericParam: ""}
	}
	if t.IsArray {
		base = a.result.Types.ArrayOf(base, maxInt(1, len(t.ArrayDims)))
	}
	if t.IsPointer {
		base = a.result.Types.PointerTo(base)
	}
	if t.IsNullable {
		base = a.result.Types.NullableOf(base)
	}
	return base
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// foldIntConstant evaluates expr as a compile-time integer constant,
// reusing the optimizer's pure AST folder (§9 Open Question resolution:
// non-constant Select Case labels — and, here, enum member values — are
// rejected rather than guessed).
func (a *Analyzer) foldIntConstant(expr ast.Expression) (int64, bool) {
	v, ok := optimizer.FoldConstant(expr)
	if !ok {
		return 0, false
	}
	i, ok := v.(int64)
	return i, ok
}
