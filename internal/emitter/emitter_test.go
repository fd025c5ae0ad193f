package emitter

import (
	"strings"
	"testing"

	"github.com/basilisc/basilc/internal/config"
	"github.com/basilisc/basilc/internal/ir"
	"github.com/basilisc/basilc/internal/types"
)

// Iterate yields the constant 1 and then breaks,
// exercising both *ir.Yield forms (§4.5's always-emit policy for
// side-effecting statements that produce no value).
func TestEmitYieldStatements(t *testing.T) {
	module := ir.NewModule("test")

	fn := ir.NewFunction("Iterate", types.VoidType)
	fn.Flags.Iterator = true

	v := fn.NewTemp(types.IntegerType)
	fn.Entry.Append(&ir.ConstantInst{Dest: v, Value: ir.NewConstant(types.IntegerType, int64(1))})
	fn.Entry.Append(&ir.Yield{Value: v})
	fn.Entry.Append(&ir.Yield{Break: true})
	fn.Entry.Append(&ir.Return{})

	module.AddFunction(fn)

	out, err := Emit(module, config.Default())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(out, "yield return 1;") {
		t.Errorf("expected a yield return statement, got:\n%s", out)
	}
	if !strings.Contains(out, "yield break;") {
		t.Errorf("expected a yield break statement, got:\n%s", out)
	}
}

// RunUntilDone lowers a post-test Do ... Loop Until, exercising the
// do-while rendering path (§8 S6).
func TestEmitDoLoopUntilPostTest(t *testing.T) {
	module := ir.NewModule("test")
	fn := ir.NewFunction("RunUntilDone", types.VoidType)

	loopID := fn.NewLoopID()
	bodyBlock := fn.NewBlock("do.body", ir.TagLoopBody)
	bodyBlock.LoopID = loopID
	condBlock := fn.NewBlock("do.cond", ir.TagLoopHeader)
	condBlock.LoopID = loopID
	condBlock.PostTest = true
	endBlock := fn.NewBlock("do.end", ir.TagLoopEnd)
	endBlock.LoopID = loopID

	fn.Entry.Append(&ir.Branch{Target: bodyBlock})

	count := fn.NewLocal("Count", types.IntegerType)
	bodyBlock.Append(&ir.Assignment{Dest: count, Value: ir.NewConstant(types.IntegerType, int64(1))})
	bodyBlock.Append(&ir.Branch{Target: condBlock})

	done := fn.NewTemp(types.BooleanType)
	condBlock.Append(&ir.Compare{Dest: done, Op: ir.Ge, Left: count, Right: ir.NewConstant(types.IntegerType, int64(5))})
	// Until: keep looping (False -> body) while not done, exit (True -> end) once done.
	condBlock.Append(&ir.ConditionalBranch{Condition: done, True: endBlock, False: bodyBlock})

	endBlock.Append(&ir.Return{})

	module.AddFunction(fn)

	out, err := Emit(module, config.Default())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(out, "do {") {
		t.Errorf("expected a do-while loop body, got:\n%s", out)
	}
	if !strings.Contains(out, "} while (") {
		t.Errorf("expected a post-test while condition, got:\n%s", out)
	}
	if !strings.Contains(out, "Count >= 5") {
		t.Errorf("expected the loop condition to appear, got:\n%s", out)
	}
}

// Classify emits an if without an else, followed by a trailing statement
// that must be rendered exactly once, after the if, not duplicated inside
// the then-arm.
func TestEmitIfWithoutElseMergesOnce(t *testing.T) {
	module := ir.NewModule("test")
	fn := ir.NewFunction("Classify", types.VoidType)

	thenBlock := fn.NewBlock("if.then", ir.TagIfThen)
	afterBlock := fn.NewBlock("after", ir.TagPlain)

	flag := fn.NewTemp(types.BooleanType)
	fn.Entry.Append(&ir.ConstantInst{Dest: flag, Value: ir.NewConstant(types.BooleanType, true)})
	fn.Entry.Append(&ir.ConditionalBranch{Condition: flag, True: thenBlock, False: afterBlock})

	x := fn.NewLocal("X", types.IntegerType)
	thenBlock.Append(&ir.Assignment{Dest: x, Value: ir.NewConstant(types.IntegerType, int64(1))})
	thenBlock.Append(&ir.Branch{Target: afterBlock})

	y := fn.NewLocal("Y", types.IntegerType)
	afterBlock.Append(&ir.Assignment{Dest: y, Value: ir.NewConstant(types.IntegerType, int64(2))})
	afterBlock.Append(&ir.Return{})

	module.AddFunction(fn)

	out, err := Emit(module, config.Default())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if n := strings.Count(out, "Y = 2;"); n != 1 {
		t.Errorf("expected the trailing statement exactly once, got %d in:\n%s", n, out)
	}
	if idx := strings.Index(out, "Y = 2;"); idx >= 0 {
		closeIdx := strings.LastIndex(out[:idx], "}")
		if closeIdx < 0 {
			t.Errorf("expected the trailing statement after the if's closing brace, got:\n%s", out)
		}
	}
}

// Add returns a+b directly; the top-level return must not wrap the
// expression in parentheses.
func TestEmitReturnBinaryOpNoParens(t *testing.T) {
	module := ir.NewModule("test")
	fn := ir.NewFunction("Add", types.IntegerType)

	a := fn.NewParameter("A", types.IntegerType)
	bParam := fn.NewParameter("B", types.IntegerType)
	sum := fn.NewTemp(types.IntegerType)
	fn.Entry.Append(&ir.BinaryOp{Dest: sum, Op: ir.Add, Left: a, Right: bParam})
	fn.Entry.Append(&ir.Return{Value: sum})

	module.AddFunction(fn)

	out, err := Emit(module, config.Default())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(out, "return A + B;") {
		t.Errorf("expected an unparenthesized top-level return, got:\n%s", out)
	}
	if strings.Contains(out, "return (A + B);") {
		t.Errorf("top-level return should not be parenthesized, got:\n%s", out)
	}
}

// Greet calls the PrintLine builtin, which must pull in its required
// import (§4.5/§9 stdlib call-mapping contract).
func TestEmitBuiltinCallAddsImport(t *testing.T) {
	module := ir.NewModule("test")
	fn := ir.NewFunction("Greet", types.VoidType)

	msg := ir.NewConstant(types.StringType, "hi")
	fn.Entry.Append(&ir.Call{Function: "PrintLine", Args: []*ir.Value{msg}})
	fn.Entry.Append(&ir.Return{})

	module.AddFunction(fn)

	out, err := Emit(module, config.Default())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(out, "using fmt;") {
		t.Errorf("expected the builtin's required import to be emitted, got:\n%s", out)
	}
	usingIdx := strings.Index(out, "using fmt;")
	namespaceIdx := strings.Index(out, "namespace ")
	if usingIdx < 0 || namespaceIdx < 0 || usingIdx > namespaceIdx {
		t.Errorf("expected the using directive before the namespace, got:\n%s", out)
	}
}

// MakeArray allocates a one-dimensional Integer array, exercising the
// *ir.ArrayAlloc expression case.
func TestEmitArrayAlloc(t *testing.T) {
	module := ir.NewModule("test")

	arrType := &types.TypeInfo{Name: "Integer", Kind: types.Array, ElementType: types.IntegerType, ArrayRank: 1}
	fn := ir.NewFunction("MakeArray", arrType)

	length := fn.NewTemp(types.IntegerType)
	fn.Entry.Append(&ir.ConstantInst{Dest: length, Value: ir.NewConstant(types.IntegerType, int64(10))})

	dest := fn.NewLocal("result", arrType)
	alloc := &ir.ArrayAlloc{Dest: dest, ElementType: types.IntegerType, Lengths: []*ir.Value{length}}
	fn.Entry.Append(alloc)
	fn.Entry.Append(&ir.Return{Value: dest})

	module.AddFunction(fn)

	out, err := Emit(module, config.Default())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(out, "new int32[") {
		t.Errorf("expected an array allocation expression, got:\n%s", out)
	}
}
