// Package irbuilder lowers a type-annotated AST into an ir.Module
// (spec §4.2). Grounded on the pack's compiler-in-Go IR builder (Builder
// struct holding current function/block plus a named-value map) and on
// spec.md §4.2's block-naming table directly, since no teacher or pack
// file implements this exact control-flow reconstruction.
package irbuilder

import (
	"fmt"
	"strings"

	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/ir"
	"github.com/basilisc/basilc/internal/optimizer"
	"github.com/basilisc/basilc/internal/semantic"
	"github.com/basilisc/basilc/internal/symbols"
	"github.com/basilisc/basilc/internal/types"
)

// loopContext is one entry of the loop-context stack (§4.2 "a stack of
// (continue_target, break_target) pairs").
type loopContext struct {
	loopID   int
	continueTarget *ir.BasicBlock
	breakTarget    *ir.BasicBlock
}

// Options toggles optional builder behavior. NoFold disables
// FoldDefinitionIntoAssignment (§9): with it set, `Dim x = a + b` lowers to
// a separate temp plus an Assignment instead of renaming the producing
// instruction's Dest directly to x, which is useful for diagnostics that
// want to see the unfolded IR shape.
type Options struct {
	NoFold bool
}

// Builder lowers one analyzed Program into an ir.Module. §9's "Global
// mutable last expression result slot" redesign: every expression-visit
// method returns its *ir.Value explicitly instead of writing to a field.
type Builder struct {
	module   *ir.Module
	analysis *semantic.Result
	opts     Options

	currentFunc  *ir.Function
	currentBlock *ir.BasicBlock

	// namedValues maps a source-level variable name to its current SSA
	// value, implementing the stack-of-versions discipline of §3.6.
	namedValues map[string][]*ir.Value

	loopStack []loopContext

	// currentClass is non-nil while lowering members of a class (used to
	// resolve unqualified method calls and MyBase).
	currentClass *ir.ClassMeta

	lambdaCounter int

	errors []error
}

// New creates a Builder targeting a fresh module named moduleName, given
// the semantic analysis result to consult for resolved types/symbols. An
// optional Options argument toggles builder passes; omitted, the Builder
// runs with every pass (including the fold) enabled.
func New(moduleName string, analysis *semantic.Result, opts ...Options) *Builder {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	return &Builder{
		module:      ir.NewModule(moduleName),
		analysis:    analysis,
		opts:        o,
		namedValues: make(map[string][]*ir.Value),
	}
}

// Build lowers every declaration of program into the builder's module and
// returns it, along with any builder-internal errors (§4.2 "the builder
// never throws for semantic errors" — these are only for AST shapes that
// slipped past analysis, which should not occur in practice).
func (b *Builder) Build(program *ast.Program) (*ir.Module, []error) {
	for _, decl := range program.Declarations {
		b.buildDeclaration(decl)
	}
	return b.module, b.errors
}

func (b *Builder) errorf(format string, args ...any) {
	b.errors = append(b.errors, fmt.Errorf(format, args...))
}

func (b *Builder) buildDeclaration(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.NamespaceDecl:
		for _, inner := range d.Declarations {
			b.buildDeclaration(inner)
		}
	case *ast.ModuleDecl:
		for _, inner := range d.Declarations {
			b.buildDeclaration(inner)
		}
	case *ast.FunctionDecl:
		b.buildFunction(d)
	case *ast.ClassDecl:
		b.buildClass(d)
	case *ast.VariableDeclaration:
		b.buildGlobalVar(d)
	case *ast.ConstantDeclaration:
		// Constants are folded by the optimizer's FoldConstant and bound as
		// constant values, so each use site reads the literal; no IR global
		// is needed.
		if v, ok := optimizer.FoldConstant(d.Value); ok {
			b.bindName(d.Name, ir.NewConstant(b.resolvedType(d), v))
		}
	case *ast.EnumDecl:
		b.buildEnum(d)
	case *ast.InterfaceDecl:
		b.buildInterface(d)
	case *ast.DelegateDecl:
		b.buildDelegate(d)
	case *ast.ExternDecl:
		b.buildExtern(d)
	case *ast.StructureDecl, *ast.TypeDefine, *ast.UsingDecl, *ast.ImportDecl, *ast.TemplateDecl:
		// Pure type-system declarations; nothing to lower to IR directly.
	default:
		b.errorf("irbuilder: unhandled declaration %T", decl)
	}
}

func (b *Builder) buildGlobalVar(d *ast.VariableDeclaration) {
	t := b.resolveAnnotation(d.Type)
	v := &ir.Value{Name: d.Name, Type: t, Kind: ir.ValueGlobal}
	b.module.Globals = append(b.module.Globals, v)
	b.bindName(d.Name, v)
}

func (b *Builder) resolveAnnotation(t *ast.TypeAnnotation) *types.TypeInfo {
	if t == nil {
		return types.VoidType
	}
	if found := b.module.Types.Lookup(t.Name); found != nil {
		return found
	}
	return &types.TypeInfo{Name: t.Name, Kind: types.UserDefinedType}
}

// bindName pushes a fresh lexical binding of name (parameter, Dim, loop
// variable, catch variable) onto the stack-of-versions (§3.6).
func (b *Builder) bindName(name string, v *ir.Value) {
	b.namedValues[key(name)] = append(b.namedValues[key(name)], v)
}

// rebindName replaces the innermost binding of an already-declared name in
// place, used for reassignment within the same lexical scope. Emission is
// name-keyed (§4.5 "Variable → ... its sanitized name"), so distinct
// Value objects sharing a Name are interchangeable from the emitter's
// point of view; rebindName exists only so lookupName reflects the latest
// write without growing the stack on every assignment.
func (b *Builder) rebindName(name string, v *ir.Value) {
	stack := b.namedValues[key(name)]
	if len(stack) == 0 {
		b.namedValues[key(name)] = []*ir.Value{v}
		return
	}
	stack[len(stack)-1] = v
}

// popName pops the innermost version of name on scope exit.
func (b *Builder) popName(name string) {
	stack := b.namedValues[key(name)]
	if len(stack) > 0 {
		b.namedValues[key(name)] = stack[:len(stack)-1]
	}
}

// lookupName returns the current version of a variable, per §3.6
// "GetOrCreateVariable returns the current version".
func (b *Builder) lookupName(name string) (*ir.Value, bool) {
	stack := b.namedValues[key(name)]
	if len(stack) == 0 {
		return nil, false
	}
	return stack[len(stack)-1], true
}

func key(name string) string { return strings.ToLower(name) }

// freshLambdaName mints a unique name for an anonymous function literal.
func (b *Builder) freshLambdaName() string {
	n := fmt.Sprintf("__lambda_%d", b.lambdaCounter)
	b.lambdaCounter++
	return n
}

// emit appends inst to the current block.
func (b *Builder) emit(inst ir.Instruction) {
	b.currentBlock.Append(inst)
}

// switchTo makes block the current insertion point.
func (b *Builder) switchTo(block *ir.BasicBlock) {
	b.currentBlock = block
}

// pushLoop enters a new loop context.
func (b *Builder) pushLoop(loopID int, continueTarget, breakTarget *ir.BasicBlock) {
	b.loopStack = append(b.loopStack, loopContext{loopID, continueTarget, breakTarget})
}

func (b *Builder) popLoop() {
	b.loopStack = b.loopStack[:len(b.loopStack)-1]
}

func (b *Builder) currentLoop() *loopContext {
	if len(b.loopStack) == 0 {
		return nil
	}
	return &b.loopStack[len(b.loopStack)-1]
}

// ensureTerminated appends a Return matching the function's declared
// return type if the current block has no terminator yet (§4.2 step 4).
func (b *Builder) ensureTerminated() {
	if b.currentBlock.Terminated() {
		return
	}
	if b.currentFunc.ReturnType == nil || b.currentFunc.ReturnType == types.VoidType {
		b.emit(&ir.Return{})
		return
	}
	b.emit(&ir.Return{Value: zeroValue(b.currentFunc.ReturnType)})
}

func zeroValue(t *types.TypeInfo) *ir.Value {
	switch {
	case t.IsNumeric():
		return ir.NewConstant(t, 0)
	case t.Kind == types.Boolean:
		return ir.NewConstant(t, false)
	case t.Kind == types.StringKind:
		return ir.NewConstant(t, "")
	default:
		return ir.NewConstant(t, nil)
	}
}

// resolveSymbol consults the analysis result for node's resolved symbol,
// falling back gracefully so a gap in analysis never panics the builder.
func (b *Builder) resolveSymbol(node ast.Node) *symbols.Symbol {
	if b.analysis == nil {
		return nil
	}
	return b.analysis.NodeSymbol(node)
}

func (b *Builder) resolvedType(node ast.Node) *types.TypeInfo {
	if b.analysis == nil {
		return types.VoidType
	}
	if t := b.analysis.NodeType(node); t != nil {
		return t
	}
	return types.VoidType
}
