package semantic

import (
	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/symbols"
	"github.com/basilisc/basilc/internal/types"
)

func (a *Analyzer) analyzeFunctionDecl(d *ast.FunctionDecl) {
	ret := types.VoidType
	if d.Kind == ast.KindFunction {
		ret = a.resolveTypeAnnotation(d.ReturnType)
	}
	params := a.resolveParameters(d.Parameters)

	kind := symbols.Subroutine
	if d.Kind == ast.KindFunction {
		kind = symbols.Function
	}
	sym := &symbols.Symbol{
		Name: d.Name, Kind: kind, ReturnType: ret, Parameters: params,
		Access: d.Modifiers.Access, IsStatic: d.Modifiers.Static,
	}
	a.define(d, sym)
	a.result.setSymbol(d, sym)

	if d.Body == nil {
		return // forward/abstract declaration; no body to analyze
	}

	savedReturn := a.currentReturnType
	a.currentReturnType = ret
	a.pushScope(d.Name, scopeKindFor(d.Kind))
	for _, p := range d.Parameters {
		pt := a.resolveTypeAnnotation(p.Type)
		a.define(p, &symbols.Symbol{Name: p.Name, Kind: symbols.Parameter, Type: pt})
	}
	a.analyzeBlock(d.Body)
	a.popScope()
	a.currentReturnType = savedReturn
}

func scopeKindFor(k ast.FunctionKind) symbols.ScopeKind {
	if k == ast.KindFunction {
		return symbols.FunctionScope
	}
	return symbols.SubroutineScope
}
