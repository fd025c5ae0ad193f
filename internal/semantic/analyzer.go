package semantic

import (
	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/diag"
	"github.com/basilisc/basilc/internal/stdlib"
	"github.com/basilisc/basilc/internal/symbols"
	"github.com/basilisc/basilc/internal/types"
)

// Analyzer performs semantic analysis on a single compilation unit (§4.1).
type Analyzer struct {
	result *Result
	scope  *symbols.Scope

	currentReturnType *types.TypeInfo
	loopDepth         int
	file              string
}

// New creates an Analyzer with built-in standard-library signatures
// pre-registered in the global scope (§4.1 "pre-registered in the Global
// scope before traversal").
func New(file string) *Analyzer {
	a := &Analyzer{
		result: newResult(),
		scope:  symbols.New(),
		file:   file,
	}
	a.registerBuiltins()
	return a
}

func (a *Analyzer) registerBuiltins() {
	for _, name := range stdlib.Names() {
		b, _ := stdlib.Lookup(name)
		params := make([]*symbols.Parameter, len(b.Signature.Params))
		for i, p := range b.Signature.Params {
			params[i] = &symbols.Parameter{Name: "arg", Type: p}
		}
		kind := symbols.Function
		if b.Signature.Return == types.VoidType {
			kind = symbols.Subroutine
		}
		_ = a.scope.Define(&symbols.Symbol{
			Name:       name,
			Kind:       kind,
			Parameters: params,
			ReturnType: b.Signature.Return,
			Type:       b.Signature.Return,
		})
	}
}

// Analyze runs the single forward pass over program and returns the
// populated Result. It never stops at the first error (§6.4); callers
// check Result.OK().
func (a *Analyzer) Analyze(program *ast.Program) *Result {
	for _, decl := range program.Declarations {
		a.analyzeDeclaration(decl)
	}
	a.result.Global = a.scope
	return a.result
}

func (a *Analyzer) report(sev diag.Severity, code diag.Code, pos ast.Node, format string, args ...any) {
	a.result.Diagnostics.Add(diag.New(sev, code, pos.Pos(), format, args...))
}

func (a *Analyzer) errf(pos ast.Node, code diag.Code, format string, args ...any) {
	a.report(diag.Error, code, pos, format, args...)
}

func (a *Analyzer) warnf(pos ast.Node, code diag.Code, format string, args ...any) {
	a.report(diag.Warning, code, pos, format, args...)
}

func (a *Analyzer) pushScope(name string, kind symbols.ScopeKind) {
	a.scope = symbols.NewEnclosed(a.scope, name, kind)
}

func (a *Analyzer) popScope() {
	a.scope = a.scope.Parent
}

func (a *Analyzer) define(pos ast.Node, sym *symbols.Symbol) {
	if err := a.scope.Define(sym); err != nil {
		a.errf(pos, "E-DUP-DEF", "%s", err.Error())
	}
}
