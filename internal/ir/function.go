package ir

import (
	"fmt"

	"github.com/basilisc/basilc/internal/types"
)

// Flags are the boolean attributes an IR Function carries (§3.4).
type Flags struct {
	Async      bool
	Iterator   bool
	IsExtension bool
	External   bool
}

// Function owns a basic-block CFG and the monotonic counters that mint
// fresh block/temp names during lowering (§3.4).
type Function struct {
	Name       string
	ReturnType *types.TypeInfo
	Parameters []*Value
	Locals     []*Value
	Blocks     []*BasicBlock
	Entry      *BasicBlock
	Flags      Flags
	Generics   []string

	blockCounter int
	valueCounter int
	loopCounter  int
}

// NewFunction creates an empty function and its entry block.
func NewFunction(name string, returnType *types.TypeInfo) *Function {
	f := &Function{Name: name, ReturnType: returnType}
	f.Entry = f.NewBlock("entry", TagEntry)
	return f
}

// NewBlock mints a fresh block with a diagnostic name and tag, and
// registers it on the function.
func (f *Function) NewBlock(namePrefix string, tag BlockTag) *BasicBlock {
	id := f.blockCounter
	f.blockCounter++
	b := &BasicBlock{ID: id, Name: fmt.Sprintf("%s.%d", namePrefix, id), Tag: tag}
	f.Blocks = append(f.Blocks, b)
	return b
}

// NewLoopID mints a fresh loop-identifier, tying a loop's Header/Body/Inc/
// End blocks together without name-prefix matching (§4.2).
func (f *Function) NewLoopID() int {
	id := f.loopCounter
	f.loopCounter++
	return id
}

// NewTemp mints a fresh anonymous temporary value.
func (f *Function) NewTemp(t *types.TypeInfo) *Value {
	id := f.valueCounter
	f.valueCounter++
	return &Value{ID: id, Type: t, Kind: ValueTemp}
}

// NewLocal registers a declared local variable at version 0 and appends it
// to the function's local list.
func (f *Function) NewLocal(name string, t *types.TypeInfo) *Value {
	v := &Value{ID: f.valueCounter, Name: name, Type: t, Kind: ValueVariable}
	f.valueCounter++
	f.Locals = append(f.Locals, v)
	return v
}

// NewParameter registers a parameter at version 0.
func (f *Function) NewParameter(name string, t *types.TypeInfo) *Value {
	v := &Value{ID: f.valueCounter, Name: name, Type: t, Kind: ValueParameter}
	f.valueCounter++
	f.Parameters = append(f.Parameters, v)
	return v
}
