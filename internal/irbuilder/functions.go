package irbuilder

import (
	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/ir"
)

// buildFunction lowers a free-standing Function/Subroutine declaration
// into an ir.Function and registers it on the module (§4.2 "Functions").
func (b *Builder) buildFunction(d *ast.FunctionDecl) {
	fn := b.buildFunctionCommon(d)
	b.module.AddFunction(fn)
}

// buildFunctionCommon lowers d's signature and body into a fresh
// ir.Function, without registering it anywhere — shared by free
// functions and class methods/constructors.
func (b *Builder) buildFunctionCommon(d *ast.FunctionDecl) *ir.Function {
	returnType := b.resolveAnnotation(d.ReturnType)
	fn := ir.NewFunction(d.Name, returnType)
	fn.Generics = d.Generics
	fn.Flags = ir.Flags{
		Async:    d.Modifiers.Async,
		Iterator: d.Modifiers.Iterator,
		External: d.Body == nil,
	}

	savedFunc, savedBlock := b.currentFunc, b.currentBlock
	b.currentFunc = fn
	b.currentBlock = fn.Entry

	var boundParams []string
	for _, p := range d.Parameters {
		pt := b.resolveAnnotation(p.Type)
		pv := fn.NewParameter(p.Name, pt)
		b.bindName(p.Name, pv)
		boundParams = append(boundParams, p.Name)
	}

	if d.Body != nil {
		b.buildStatement(d.Body)
	}
	b.ensureTerminated()

	for _, name := range boundParams {
		b.popName(name)
	}

	b.currentFunc, b.currentBlock = savedFunc, savedBlock
	return fn
}
