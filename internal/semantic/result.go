// Package semantic implements the Semantic Analyzer of spec §4.1: a
// single forward pass that populates a scope tree, resolves every
// expression's type, and reports diagnostics. Grounded on the teacher
// compiler's Analyzer (struct-of-maps state, built-ins pre-registered in
// the constructor, declarations processed in source order).
package semantic

import (
	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/diag"
	"github.com/basilisc/basilc/internal/symbols"
	"github.com/basilisc/basilc/internal/types"
)

// Result is the output of Analyze: a populated scope tree plus the
// node→type and node→symbol maps the IR builder consults (§4.1
// "get_node_type(node), get_node_symbol(node): deterministic lookups").
type Result struct {
	Global      *symbols.Scope
	Types       *types.Registry
	Diagnostics *diag.Bag

	nodeTypes   map[ast.Node]*types.TypeInfo
	nodeSymbols map[ast.Node]*symbols.Symbol
}

func newResult() *Result {
	return &Result{
		Types:       types.NewRegistry(),
		Diagnostics: diag.NewBag(),
		nodeTypes:   make(map[ast.Node]*types.TypeInfo),
		nodeSymbols: make(map[ast.Node]*symbols.Symbol),
	}
}

// NodeType returns the resolved type of node, or nil if analysis never
// annotated it.
func (r *Result) NodeType(node ast.Node) *types.TypeInfo {
	return r.nodeTypes[node]
}

// NodeSymbol returns the resolved symbol of node, or nil.
func (r *Result) NodeSymbol(node ast.Node) *symbols.Symbol {
	return r.nodeSymbols[node]
}

func (r *Result) setType(node ast.Node, t *types.TypeInfo) {
	r.nodeTypes[node] = t
}

func (r *Result) setSymbol(node ast.Node, s *symbols.Symbol) {
	r.nodeSymbols[node] = s
}

// OK reports whether analysis completed without any Error-severity
// diagnostic (§6.4 "compilation proceeds to the IR builder only if no
// Error-severity diagnostic was recorded").
func (r *Result) OK() bool {
	return !r.Diagnostics.HasErrors()
}
