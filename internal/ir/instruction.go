package ir

import (
	"fmt"
	"strings"

	"github.com/basilisc/basilc/internal/types"
)

// Instruction is the tagged-sum interface every IR instruction implements
// (§9 "Visitor dispatch across deep AST/IR hierarchies": re-architected as
// a tagged sum with type switches instead of double-dispatch visitors).
type Instruction interface {
	fmt.Stringer
	Operands() []*Value
	Result() *Value
	instructionNode()
}

// Terminator is implemented by the four instruction kinds that may end a
// basic block (§3.5 "terminated iff its last instruction is a branch,
// conditional branch, switch, or return").
type Terminator interface {
	Instruction
	terminatorNode()
}

// --- Values --------------------------------------------------------------

// ConstantInst materializes a constant as an instruction result, used when
// a constant needs its own named slot (e.g. an array literal element).
type ConstantInst struct {
	Dest  *Value
	Value *Value
}

func (c *ConstantInst) instructionNode()    {}
func (c *ConstantInst) Operands() []*Value  { return nil }
func (c *ConstantInst) Result() *Value      { return c.Dest }
func (c *ConstantInst) String() string {
	return fmt.Sprintf("%s = %s", c.Dest, c.Value)
}

// --- Arith/Logic -----------------------------------------------------------

// BinaryOp computes Dest = Left Op Right.
type BinaryOp struct {
	Dest  *Value
	Op    BinaryOpKind
	Left  *Value
	Right *Value
}

func (b *BinaryOp) instructionNode()   {}
func (b *BinaryOp) Operands() []*Value { return []*Value{b.Left, b.Right} }
func (b *BinaryOp) Result() *Value     { return b.Dest }
func (b *BinaryOp) String() string {
	return fmt.Sprintf("%s = %s %s %s", b.Dest, b.Left, b.Op, b.Right)
}

// UnaryOp computes Dest = Op Operand.
type UnaryOp struct {
	Dest    *Value
	Op      UnaryOpKind
	Operand *Value
}

func (u *UnaryOp) instructionNode()   {}
func (u *UnaryOp) Operands() []*Value { return []*Value{u.Operand} }
func (u *UnaryOp) Result() *Value     { return u.Dest }
func (u *UnaryOp) String() string {
	return fmt.Sprintf("%s = %s%s", u.Dest, u.Op, u.Operand)
}

// Compare computes Dest = Left Op Right as a boolean.
type Compare struct {
	Dest  *Value
	Op    CompareKind
	Left  *Value
	Right *Value
}

func (c *Compare) instructionNode()   {}
func (c *Compare) Operands() []*Value { return []*Value{c.Left, c.Right} }
func (c *Compare) Result() *Value     { return c.Dest }
func (c *Compare) String() string {
	return fmt.Sprintf("%s = %s %s %s", c.Dest, c.Left, c.Op, c.Right)
}

// --- Memory ----------------------------------------------------------------

// Load reads the value stored at Address.
type Load struct {
	Dest    *Value
	Address *Value
}

func (l *Load) instructionNode()   {}
func (l *Load) Operands() []*Value { return []*Value{l.Address} }
func (l *Load) Result() *Value     { return l.Dest }
func (l *Load) String() string     { return fmt.Sprintf("%s = load %s", l.Dest, l.Address) }

// Store writes Value to Address; produces no value.
type Store struct {
	Address *Value
	Value   *Value
}

func (s *Store) instructionNode()   {}
func (s *Store) Operands() []*Value { return []*Value{s.Address, s.Value} }
func (s *Store) Result() *Value     { return nil }
func (s *Store) String() string     { return fmt.Sprintf("store %s, %s", s.Value, s.Address) }

// Alloca reserves storage for a local of the given type. By convention its
// Dest carries the "_addr" suffix the emitter strips (§4.5).
type Alloca struct {
	Dest *Value
	Type *types.TypeInfo
}

func (a *Alloca) instructionNode()   {}
func (a *Alloca) Operands() []*Value { return nil }
func (a *Alloca) Result() *Value     { return a.Dest }
func (a *Alloca) String() string     { return fmt.Sprintf("%s = alloca %s", a.Dest, a.Type) }

// GetElementPtr computes the address of Base indexed by Indices (n-D
// arrays are fully supported: len(Indices) may exceed 1, §9 Open Question
// resolution).
type GetElementPtr struct {
	Dest    *Value
	Base    *Value
	Indices []*Value
}

func (g *GetElementPtr) instructionNode() {}
func (g *GetElementPtr) Operands() []*Value {
	return append([]*Value{g.Base}, g.Indices...)
}
func (g *GetElementPtr) Result() *Value { return g.Dest }
func (g *GetElementPtr) String() string {
	parts := make([]string, len(g.Indices))
	for i, ix := range g.Indices {
		parts[i] = ix.String()
	}
	return fmt.Sprintf("%s = &%s[%s]", g.Dest, g.Base, strings.Join(parts, ", "))
}

// ArrayAlloc allocates an array of ElementType with the given per-
// dimension Lengths.
type ArrayAlloc struct {
	Dest        *Value
	ElementType *types.TypeInfo
	Lengths     []*Value
}

func (a *ArrayAlloc) instructionNode() {}
func (a *ArrayAlloc) Operands() []*Value {
	return a.Lengths
}
func (a *ArrayAlloc) Result() *Value { return a.Dest }
func (a *ArrayAlloc) String() string {
	parts := make([]string, len(a.Lengths))
	for i, l := range a.Lengths {
		parts[i] = l.String()
	}
	return fmt.Sprintf("%s = array_alloc %s[%s]", a.Dest, a.ElementType, strings.Join(parts, ", "))
}

// ArrayStore writes Value into Base at Indices; produces no value.
type ArrayStore struct {
	Base    *Value
	Indices []*Value
	Value   *Value
}

func (a *ArrayStore) instructionNode() {}
func (a *ArrayStore) Operands() []*Value {
	return append(append([]*Value{a.Base}, a.Indices...), a.Value)
}
func (a *ArrayStore) Result() *Value { return nil }
func (a *ArrayStore) String() string {
	parts := make([]string, len(a.Indices))
	for i, ix := range a.Indices {
		parts[i] = ix.String()
	}
	return fmt.Sprintf("%s[%s] = %s", a.Base, strings.Join(parts, ", "), a.Value)
}

// --- Control ---------------------------------------------------------------

// Branch is an unconditional jump to Target.
type Branch struct {
	Target *BasicBlock
}

func (b *Branch) instructionNode() {}
func (b *Branch) terminatorNode()  {}
func (b *Branch) Operands() []*Value { return nil }
func (b *Branch) Result() *Value     { return nil }
func (b *Branch) String() string     { return fmt.Sprintf("branch %s", b.Target.Name) }

// ConditionalBranch jumps to True or False depending on Condition.
type ConditionalBranch struct {
	Condition *Value
	True      *BasicBlock
	False     *BasicBlock
}

func (c *ConditionalBranch) instructionNode() {}
func (c *ConditionalBranch) terminatorNode()  {}
func (c *ConditionalBranch) Operands() []*Value { return []*Value{c.Condition} }
func (c *ConditionalBranch) Result() *Value     { return nil }
func (c *ConditionalBranch) String() string {
	return fmt.Sprintf("branch_if %s, %s, %s", c.Condition, c.True.Name, c.False.Name)
}

// SwitchCase is one value→target arm of a Switch.
type SwitchCase struct {
	Value  *Value
	Target *BasicBlock
}

// Switch dispatches on Value to one of Cases, or Default.
type Switch struct {
	Value   *Value
	Cases   []SwitchCase
	Default *BasicBlock
}

func (s *Switch) instructionNode() {}
func (s *Switch) terminatorNode()  {}
func (s *Switch) Operands() []*Value {
	ops := make([]*Value, 0, len(s.Cases)+1)
	ops = append(ops, s.Value)
	for _, c := range s.Cases {
		ops = append(ops, c.Value)
	}
	return ops
}
func (s *Switch) Result() *Value { return nil }
func (s *Switch) String() string {
	return fmt.Sprintf("switch %s (%d cases)", s.Value, len(s.Cases))
}

// Return exits the function with an optional Value.
type Return struct {
	Value *Value // nil for a void return
}

func (r *Return) instructionNode() {}
func (r *Return) terminatorNode()  {}
func (r *Return) Operands() []*Value {
	if r.Value != nil {
		return []*Value{r.Value}
	}
	return nil
}
func (r *Return) Result() *Value { return nil }
func (r *Return) String() string {
	if r.Value != nil {
		return fmt.Sprintf("return %s", r.Value)
	}
	return "return"
}

// Label is a no-op marker instruction, emitted only when a block's
// diagnostic name is worth preserving verbatim in an IR dump.
type Label struct {
	Name string
}

func (l *Label) instructionNode()   {}
func (l *Label) Operands() []*Value { return nil }
func (l *Label) Result() *Value     { return nil }
func (l *Label) String() string     { return l.Name + ":" }

// --- Calls -------------------------------------------------------------

// Call invokes a free/static function by name.
type Call struct {
	Dest     *Value // nil for a void call
	Function string
	Args     []*Value
}

func (c *Call) instructionNode()   {}
func (c *Call) Operands() []*Value { return c.Args }
func (c *Call) Result() *Value     { return c.Dest }
func (c *Call) String() string {
	if c.Dest != nil {
		return fmt.Sprintf("%s = call %s(%s)", c.Dest, c.Function, joinValues(c.Args))
	}
	return fmt.Sprintf("call %s(%s)", c.Function, joinValues(c.Args))
}

// InstanceMethodCall invokes Method on a resolved Receiver (virtual
// dispatch, §4.2 "InstanceMethodCall otherwise").
type InstanceMethodCall struct {
	Dest     *Value
	Receiver *Value
	Method   string
	Args     []*Value
}

func (c *InstanceMethodCall) instructionNode() {}
func (c *InstanceMethodCall) Operands() []*Value {
	return append([]*Value{c.Receiver}, c.Args...)
}
func (c *InstanceMethodCall) Result() *Value { return c.Dest }
func (c *InstanceMethodCall) String() string {
	if c.Dest != nil {
		return fmt.Sprintf("%s = call %s.%s(%s)", c.Dest, c.Receiver, c.Method, joinValues(c.Args))
	}
	return fmt.Sprintf("call %s.%s(%s)", c.Receiver, c.Method, joinValues(c.Args))
}

// BaseMethodCall invokes Method on the base-class half of the current
// instance (`MyBase.M(...)`), a non-virtual dispatch.
type BaseMethodCall struct {
	Dest     *Value
	Receiver *Value
	Method   string
	Args     []*Value
}

func (c *BaseMethodCall) instructionNode() {}
func (c *BaseMethodCall) Operands() []*Value {
	return append([]*Value{c.Receiver}, c.Args...)
}
func (c *BaseMethodCall) Result() *Value { return c.Dest }
func (c *BaseMethodCall) String() string {
	if c.Dest != nil {
		return fmt.Sprintf("%s = call MyBase(%s).%s(%s)", c.Dest, c.Receiver, c.Method, joinValues(c.Args))
	}
	return fmt.Sprintf("call MyBase(%s).%s(%s)", c.Receiver, c.Method, joinValues(c.Args))
}

func joinValues(vs []*Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

// --- OO ------------------------------------------------------------------

// NewObject constructs an instance of ClassName via its constructor.
type NewObject struct {
	Dest      *Value
	ClassName string
	Args      []*Value
}

func (n *NewObject) instructionNode()   {}
func (n *NewObject) Operands() []*Value { return n.Args }
func (n *NewObject) Result() *Value     { return n.Dest }
func (n *NewObject) String() string {
	return fmt.Sprintf("%s = new %s(%s)", n.Dest, n.ClassName, joinValues(n.Args))
}

// FieldAccess reads Field off Object.
type FieldAccess struct {
	Dest   *Value
	Object *Value
	Field  string
}

func (f *FieldAccess) instructionNode()   {}
func (f *FieldAccess) Operands() []*Value { return []*Value{f.Object} }
func (f *FieldAccess) Result() *Value     { return f.Dest }
func (f *FieldAccess) String() string {
	return fmt.Sprintf("%s = %s.%s", f.Dest, f.Object, f.Field)
}

// FieldStore writes Value into Field of Object; produces no value.
type FieldStore struct {
	Object *Value
	Field  string
	Value  *Value
}

func (f *FieldStore) instructionNode()   {}
func (f *FieldStore) Operands() []*Value { return []*Value{f.Object, f.Value} }
func (f *FieldStore) Result() *Value     { return nil }
func (f *FieldStore) String() string {
	return fmt.Sprintf("%s.%s = %s", f.Object, f.Field, f.Value)
}

// --- SSA -------------------------------------------------------------------

// PhiIncoming is one (value, predecessor) pair of a Phi.
type PhiIncoming struct {
	Value *Value
	Block *BasicBlock
}

// Phi merges a value across predecessor blocks. §3.6 defers dominance-
// based phi insertion to optional passes; the builder itself never emits
// one, but the optimizer's pass infrastructure and IR dumps need the
// instruction kind to exist.
type Phi struct {
	Dest     *Value
	Incoming []PhiIncoming
}

func (p *Phi) instructionNode() {}
func (p *Phi) Operands() []*Value {
	ops := make([]*Value, len(p.Incoming))
	for i, in := range p.Incoming {
		ops[i] = in.Value
	}
	return ops
}
func (p *Phi) Result() *Value { return p.Dest }
func (p *Phi) String() string {
	parts := make([]string, len(p.Incoming))
	for i, in := range p.Incoming {
		parts[i] = fmt.Sprintf("[%s, %s]", in.Value, in.Block.Name)
	}
	return fmt.Sprintf("%s = phi %s", p.Dest, strings.Join(parts, ", "))
}

// --- Type ------------------------------------------------------------------

// Cast converts Operand to Type using Kind (derived by
// types.DeriveCastKind, §4.3).
type Cast struct {
	Dest    *Value
	Kind    CastKind
	Type    *types.TypeInfo
	Operand *Value
}

func (c *Cast) instructionNode()   {}
func (c *Cast) Operands() []*Value { return []*Value{c.Operand} }
func (c *Cast) Result() *Value     { return c.Dest }
func (c *Cast) String() string {
	return fmt.Sprintf("%s = cast<%s> %s to %s", c.Dest, c.Kind, c.Operand, c.Type)
}

// --- Async/Iter --------------------------------------------------------

// Await suspends for Operand's completion.
type Await struct {
	Dest    *Value
	Operand *Value
}

func (a *Await) instructionNode()   {}
func (a *Await) Operands() []*Value { return []*Value{a.Operand} }
func (a *Await) Result() *Value     { return a.Dest }
func (a *Await) String() string     { return fmt.Sprintf("%s = await %s", a.Dest, a.Operand) }

// Yield produces Value from an iterator function, or breaks iteration
// when Break is set.
type Yield struct {
	Value *Value
	Break bool
}

func (y *Yield) instructionNode() {}
func (y *Yield) Operands() []*Value {
	if y.Value != nil {
		return []*Value{y.Value}
	}
	return nil
}
func (y *Yield) Result() *Value { return nil }
func (y *Yield) String() string {
	if y.Break {
		return "yield break"
	}
	return fmt.Sprintf("yield %s", y.Value)
}

// --- Misc --------------------------------------------------------------

// Assignment is a non-SSA store into a declared identifier, used when the
// SSA-rename optimization (§3.5) cannot apply (e.g. the source is itself a
// bare variable reference rather than an op result).
type Assignment struct {
	Dest  *Value
	Value *Value
}

func (a *Assignment) instructionNode()   {}
func (a *Assignment) Operands() []*Value { return []*Value{a.Value} }
func (a *Assignment) Result() *Value     { return a.Dest }
func (a *Assignment) String() string {
	return fmt.Sprintf("%s = %s", a.Dest, a.Value)
}

// Comment is a non-semantic annotation instruction; the IR builder does not
// produce one.
type Comment struct {
	Text string
}

func (c *Comment) instructionNode()   {}
func (c *Comment) Operands() []*Value { return nil }
func (c *Comment) Result() *Value     { return nil }
func (c *Comment) String() string     { return "// " + c.Text }
