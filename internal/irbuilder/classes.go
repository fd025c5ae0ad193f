package irbuilder

import (
	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/ir"
	"github.com/basilisc/basilc/internal/optimizer"
	"github.com/basilisc/basilc/internal/types"
)

// buildClass lowers a class declaration into an ir.ClassMeta, its fields,
// properties, events, constructor, and methods (§3.3).
func (b *Builder) buildClass(d *ast.ClassDecl) {
	cm := &ir.ClassMeta{
		Name:       d.Name,
		Generics:   d.Generics,
		BaseClass:  d.BaseClass,
		Interfaces: d.Interfaces,
		Abstract:   d.Abstract,
		Sealed:     d.Sealed,
	}

	savedClass := b.currentClass
	b.currentClass = cm

	for _, member := range d.Members {
		switch m := member.(type) {
		case *ast.FieldDecl:
			cm.Fields = append(cm.Fields, ir.FieldMeta{
				Name:   m.Name,
				Type:   b.resolveAnnotation(m.Type),
				Access: m.Access,
				Static: m.Static,
			})
		case *ast.PropertyDecl:
			cm.Properties = append(cm.Properties, b.buildProperty(m))
		case *ast.EventDecl:
			cm.Events = append(cm.Events, ir.EventMeta{Name: m.Name, Type: b.resolveAnnotation(m.Type)})
		case *ast.ConstructorDecl:
			cm.Constructor = b.buildConstructor(d, m, cm)
		case *ast.FunctionDecl:
			fn := b.buildFunctionCommon(m)
			cm.AddMethod(m.Name, fn)
		case *ast.OperatorDecl:
			fn := b.buildOperator(m)
			cm.AddMethod("operator"+m.Symbol, fn)
		}
	}

	b.currentClass = savedClass
	b.module.AddClass(cm)
}

// buildConstructor evaluates MyBase.New(...) arguments in the
// constructor's entry block and stashes them on the owning class metadata
// (§4.2 "Base-constructor arguments are evaluated in the constructor's
// entry block and stashed on the owning class metadata").
func (b *Builder) buildConstructor(classDecl *ast.ClassDecl, c *ast.ConstructorDecl, cm *ir.ClassMeta) *ir.Function {
	fn := ir.NewFunction(classDecl.Name+".New", types.VoidType)

	savedFunc, savedBlock := b.currentFunc, b.currentBlock
	b.currentFunc = fn
	b.currentBlock = fn.Entry

	me := fn.NewParameter("Me", &types.TypeInfo{Name: classDecl.Name, Kind: types.UserDefinedType})
	b.bindName("Me", me)

	var boundParams []string
	for _, p := range c.Parameters {
		pt := b.resolveAnnotation(p.Type)
		pv := fn.NewParameter(p.Name, pt)
		b.bindName(p.Name, pv)
		boundParams = append(boundParams, p.Name)
	}

	for _, arg := range c.BaseArgs {
		cm.BaseCtorArgs = append(cm.BaseCtorArgs, b.buildExpression(arg))
	}

	if c.Body != nil {
		b.buildStatement(c.Body)
	}
	b.ensureTerminated()

	for _, name := range boundParams {
		b.popName(name)
	}
	b.popName("Me")

	b.currentFunc, b.currentBlock = savedFunc, savedBlock
	return fn
}

func (b *Builder) buildProperty(p *ast.PropertyDecl) ir.PropertyMeta {
	pm := ir.PropertyMeta{Name: p.Name, Type: b.resolveAnnotation(p.Type)}
	for _, ip := range p.IndexParams {
		pm.IndexTypes = append(pm.IndexTypes, b.resolveAnnotation(ip.Type))
	}
	if p.Getter != nil {
		pm.Getter = b.buildAccessor(p.Name+".get", pm.Type, nil, p.Getter)
	}
	if p.Setter != nil {
		var params []*ast.Parameter
		if p.SetterParam != "" {
			params = []*ast.Parameter{{Name: p.SetterParam, Type: p.Type}}
		}
		pm.Setter = b.buildAccessor(p.Name+".set", types.VoidType, params, p.Setter)
	}
	return pm
}

func (b *Builder) buildAccessor(name string, retType *types.TypeInfo, params []*ast.Parameter, body *ast.BlockStatement) *ir.Function {
	fn := ir.NewFunction(name, retType)
	savedFunc, savedBlock := b.currentFunc, b.currentBlock
	b.currentFunc = fn
	b.currentBlock = fn.Entry

	var bound []string
	for _, p := range params {
		pt := b.resolveAnnotation(p.Type)
		pv := fn.NewParameter(p.Name, pt)
		b.bindName(p.Name, pv)
		bound = append(bound, p.Name)
	}

	b.buildStatement(body)
	b.ensureTerminated()

	for _, name := range bound {
		b.popName(name)
	}
	b.currentFunc, b.currentBlock = savedFunc, savedBlock
	return fn
}

func (b *Builder) buildOperator(o *ast.OperatorDecl) *ir.Function {
	retType := b.resolveAnnotation(o.ReturnType)
	fn := ir.NewFunction("operator"+o.Symbol, retType)
	savedFunc, savedBlock := b.currentFunc, b.currentBlock
	b.currentFunc = fn
	b.currentBlock = fn.Entry

	var bound []string
	for _, p := range o.Parameters {
		pt := b.resolveAnnotation(p.Type)
		pv := fn.NewParameter(p.Name, pt)
		b.bindName(p.Name, pv)
		bound = append(bound, p.Name)
	}

	if o.Body != nil {
		b.buildStatement(o.Body)
	}
	b.ensureTerminated()

	for _, name := range bound {
		b.popName(name)
	}
	b.currentFunc, b.currentBlock = savedFunc, savedBlock
	return fn
}

// buildEnum records an enum's underlying type and ordered (name, constant)
// members, folding each explicit ordinal value at build time (§4.4 reuse
// of the optimizer's constant folder).
func (b *Builder) buildEnum(d *ast.EnumDecl) {
	em := &ir.EnumMeta{Name: d.Name, Underlying: b.resolveAnnotation(d.Underlying)}
	if em.Underlying == types.VoidType {
		em.Underlying = types.IntegerType
	}
	next := int64(0)
	for _, member := range d.Members {
		val := next
		if member.Value != nil {
			if folded, ok := optimizer.FoldConstant(member.Value); ok {
				if iv, ok := folded.(int64); ok {
					val = iv
				}
			}
		}
		em.Members = append(em.Members, ir.EnumMemberMeta{Name: member.Name, Value: val})
		next = val + 1
	}
	b.module.Enums[d.Name] = em
}

func (b *Builder) buildInterface(d *ast.InterfaceDecl) {
	im := &ir.InterfaceMeta{Name: d.Name, Extends: d.Extends}
	for _, m := range d.Methods {
		mm := ir.InterfaceMethodMeta{Name: m.Name, ReturnType: b.resolveAnnotation(m.ReturnType)}
		for _, p := range m.Parameters {
			mm.ParamTypes = append(mm.ParamTypes, b.resolveAnnotation(p.Type))
		}
		if m.Default != nil {
			mm.Default = b.buildAccessor(d.Name+"."+m.Name, mm.ReturnType, m.Parameters, m.Default)
		}
		im.Methods = append(im.Methods, mm)
	}
	b.module.Interfaces[d.Name] = im
}

func (b *Builder) buildDelegate(d *ast.DelegateDecl) {
	dm := &ir.DelegateMeta{Name: d.Name, Generics: d.Generics, ReturnType: b.resolveAnnotation(d.ReturnType)}
	for _, p := range d.Parameters {
		dm.ParamTypes = append(dm.ParamTypes, b.resolveAnnotation(p.Type))
	}
	b.module.Delegates[d.Name] = dm
}

// buildExtern records a platform-bound extern's signature and per-platform
// implementation templates (§6.3); the emitter resolves Platforms at
// emission time against its target configuration.
func (b *Builder) buildExtern(d *ast.ExternDecl) {
	xm := &ir.ExternMeta{Name: d.Name, ReturnType: b.resolveAnnotation(d.ReturnType), Platforms: d.Platforms}
	for _, p := range d.Parameters {
		xm.ParamTypes = append(xm.ParamTypes, b.resolveAnnotation(p.Type))
	}
	b.module.Externs[d.Name] = xm
}
