package irbuilder

import (
	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/ir"
	"github.com/basilisc/basilc/internal/types"
)

// buildExpression lowers expr to the ir.Value holding its result. Every
// expression-visit method returns its value explicitly rather than writing
// to a shared "last result" slot (§9 redesign).
func (b *Builder) buildExpression(expr ast.Expression) *ir.Value {
	switch e := expr.(type) {
	case *ast.Identifier:
		return b.buildIdentifier(e)
	case *ast.Literal:
		return ir.NewConstant(b.resolvedType(e), e.Value)
	case *ast.BinaryExpression:
		return b.buildBinaryExpression(e)
	case *ast.UnaryExpression:
		return b.buildUnaryExpression(e)
	case *ast.MemberAccessExpression:
		return b.buildMemberAccess(e)
	case *ast.CallExpression:
		return b.buildCallExpression(e)
	case *ast.ArrayAccessExpression:
		return b.buildArrayAccess(e)
	case *ast.NewExpression:
		return b.buildNewExpression(e)
	case *ast.CastExpression:
		return b.buildCastExpression(e)
	case *ast.MyBaseExpression:
		v, _ := b.lookupName("Me")
		return v
	case *ast.LambdaExpression:
		return b.buildLambda(e)
	case *ast.AwaitExpression:
		operand := b.buildExpression(e.Operand)
		dest := b.currentFunc.NewTemp(b.resolvedType(e))
		b.emit(&ir.Await{Dest: dest, Operand: operand})
		return dest
	case *ast.CollectionInitializer:
		return b.buildCollectionInitializer(e)
	case *ast.TupleLiteral:
		return b.buildTupleLiteral(e)
	case *ast.InterpolatedStringExpression:
		return b.buildInterpolatedString(e)
	default:
		b.errorf("irbuilder: unhandled expression %T", expr)
		return ir.NewConstant(types.VoidType, nil)
	}
}

func (b *Builder) buildIdentifier(id *ast.Identifier) *ir.Value {
	if v, ok := b.lookupName(id.Value); ok {
		return v
	}
	for _, g := range b.module.Globals {
		if key(g.Name) == key(id.Value) {
			return g
		}
	}
	if b.currentClass != nil {
		if me, ok := b.lookupName("Me"); ok {
			for _, f := range b.currentClass.Fields {
				if key(f.Name) == key(id.Value) {
					dest := b.currentFunc.NewTemp(f.Type)
					b.emit(&ir.FieldAccess{Dest: dest, Object: me, Field: f.Name})
					return dest
				}
			}
		}
	}
	b.errorf("irbuilder: unresolved identifier %q", id.Value)
	return ir.NewConstant(b.resolvedType(id), nil)
}

var binaryOps = map[string]ir.BinaryOpKind{
	"+": ir.Add, "-": ir.Sub, "*": ir.Mul, "/": ir.Div, "Mod": ir.Mod,
	"\\": ir.IntDiv, "And": ir.And, "Or": ir.Or, "Xor": ir.Xor,
	"Shl": ir.Shl, "Shr": ir.Shr, "&": ir.Concat, "Concat": ir.Concat,
}

var compareOps = map[string]ir.CompareKind{
	"=": ir.Eq, "<>": ir.Ne, "<": ir.Lt, "<=": ir.Le, ">": ir.Gt, ">=": ir.Ge,
}

func (b *Builder) buildBinaryExpression(e *ast.BinaryExpression) *ir.Value {
	left := b.buildExpression(e.Left)
	right := b.buildExpression(e.Right)
	resultType := b.resolvedType(e)

	if ck, ok := compareOps[e.Operator]; ok {
		dest := b.currentFunc.NewTemp(resultType)
		b.emit(&ir.Compare{Dest: dest, Op: ck, Left: left, Right: right})
		return dest
	}
	if bk, ok := binaryOps[e.Operator]; ok {
		dest := b.currentFunc.NewTemp(resultType)
		b.emit(&ir.BinaryOp{Dest: dest, Op: bk, Left: left, Right: right})
		return dest
	}
	b.errorf("irbuilder: unknown binary operator %q", e.Operator)
	return ir.NewConstant(resultType, nil)
}

func (b *Builder) buildUnaryExpression(e *ast.UnaryExpression) *ir.Value {
	operand := b.buildExpression(e.Operand)
	resultType := b.resolvedType(e)
	var op ir.UnaryOpKind
	switch e.Operator {
	case "Not", "!":
		op = ir.Not
	case "-":
		op = ir.Neg
	case "~":
		op = ir.BitwiseNot
	case "++":
		op = ir.Inc
	case "--":
		op = ir.Dec
	default:
		b.errorf("irbuilder: unknown unary operator %q", e.Operator)
	}
	dest := b.currentFunc.NewTemp(resultType)
	b.emit(&ir.UnaryOp{Dest: dest, Op: op, Operand: operand})
	return dest
}

func (b *Builder) buildMemberAccess(e *ast.MemberAccessExpression) *ir.Value {
	obj := b.buildExpression(e.Object)
	dest := b.currentFunc.NewTemp(b.resolvedType(e))
	b.emit(&ir.FieldAccess{Dest: dest, Object: obj, Field: e.Member})
	return dest
}

// buildCallExpression chooses Call (free/static function) versus
// InstanceMethodCall (virtual dispatch through Object.Method) versus
// BaseMethodCall (MyBase.Method) per §4.2's dispatch rules.
func (b *Builder) buildCallExpression(e *ast.CallExpression) *ir.Value {
	args := make([]*ir.Value, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = b.buildExpression(a)
	}
	resultType := b.resolvedType(e)

	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		var dest *ir.Value
		if resultType != types.VoidType {
			dest = b.currentFunc.NewTemp(resultType)
		}
		b.emit(&ir.Call{Dest: dest, Function: callee.Value, Args: args})
		return dest
	case *ast.MemberAccessExpression:
		if _, isMyBase := callee.Object.(*ast.MyBaseExpression); isMyBase {
			receiver, _ := b.lookupName("Me")
			var dest *ir.Value
			if resultType != types.VoidType {
				dest = b.currentFunc.NewTemp(resultType)
			}
			b.emit(&ir.BaseMethodCall{Dest: dest, Receiver: receiver, Method: callee.Member, Args: args})
			return dest
		}
		receiver := b.buildExpression(callee.Object)
		var dest *ir.Value
		if resultType != types.VoidType {
			dest = b.currentFunc.NewTemp(resultType)
		}
		b.emit(&ir.InstanceMethodCall{Dest: dest, Receiver: receiver, Method: callee.Member, Args: args})
		return dest
	default:
		b.errorf("irbuilder: unsupported call callee %T", e.Callee)
		return ir.NewConstant(resultType, nil)
	}
}

// buildArrayAccess lowers to a GetElementPtr/Load pair; n-dimensional
// arrays are fully supported via multiple Indices (§9 Open Question).
func (b *Builder) buildArrayAccess(e *ast.ArrayAccessExpression) *ir.Value {
	base := b.buildExpression(e.Array)
	indices := make([]*ir.Value, len(e.Indices))
	for i, ix := range e.Indices {
		indices[i] = b.buildExpression(ix)
	}
	elemType := b.resolvedType(e)
	addr := b.currentFunc.NewTemp(b.module.Types.PointerTo(elemType))
	b.emit(&ir.GetElementPtr{Dest: addr, Base: base, Indices: indices})
	dest := b.currentFunc.NewTemp(elemType)
	b.emit(&ir.Load{Dest: dest, Address: addr})
	return dest
}

func (b *Builder) buildNewExpression(e *ast.NewExpression) *ir.Value {
	resultType := b.resolvedType(e)
	if len(e.ArrayLengths) > 0 {
		lengths := make([]*ir.Value, len(e.ArrayLengths))
		for i, l := range e.ArrayLengths {
			lengths[i] = b.buildExpression(l)
		}
		dest := b.currentFunc.NewTemp(resultType)
		elemType := resultType
		if resultType.Kind == types.Array {
			elemType = resultType.ElementType
		}
		b.emit(&ir.ArrayAlloc{Dest: dest, ElementType: elemType, Lengths: lengths})
		return dest
	}
	args := make([]*ir.Value, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = b.buildExpression(a)
	}
	dest := b.currentFunc.NewTemp(resultType)
	b.emit(&ir.NewObject{Dest: dest, ClassName: e.Type.Name, Args: args})
	return dest
}

func (b *Builder) buildCastExpression(e *ast.CastExpression) *ir.Value {
	operand := b.buildExpression(e.Expression)
	target := b.resolveAnnotation(e.Type)
	kind := types.DeriveCastKind(operand.Type, target)
	dest := b.currentFunc.NewTemp(target)
	b.emit(&ir.Cast{Dest: dest, Kind: kind, Type: target, Operand: operand})
	return dest
}

// buildLambda lowers an anonymous function/subroutine to its own
// top-level IR Function, saving and restoring the builder's current-
// function context around the nested lowering.
func (b *Builder) buildLambda(e *ast.LambdaExpression) *ir.Value {
	name := b.freshLambdaName()
	ret := types.VoidType
	if !e.IsSub {
		ret = b.resolvedType(e)
	}
	fn := ir.NewFunction(name, ret)
	b.module.AddFunction(fn)

	savedFunc, savedBlock := b.currentFunc, b.currentBlock
	b.currentFunc = fn
	b.currentBlock = fn.Entry

	for _, p := range e.Parameters {
		pt := b.resolveAnnotation(p.Type)
		pv := fn.NewParameter(p.Name, pt)
		b.bindName(p.Name, pv)
	}
	if e.Expr != nil {
		result := b.buildExpression(e.Expr)
		b.emit(&ir.Return{Value: result})
	} else if e.Body != nil {
		b.buildStatement(e.Body)
	}
	b.ensureTerminated()
	for _, p := range e.Parameters {
		b.popName(p.Name)
	}

	b.currentFunc, b.currentBlock = savedFunc, savedBlock
	return &ir.Value{Name: name, Type: ret, Kind: ir.ValueGlobal}
}

func (b *Builder) buildCollectionInitializer(e *ast.CollectionInitializer) *ir.Value {
	resultType := b.resolvedType(e)
	elemType := resultType
	if resultType.Kind == types.Array {
		elemType = resultType.ElementType
	}
	length := ir.NewConstant(types.IntegerType, int64(len(e.Elements)))
	dest := b.currentFunc.NewTemp(resultType)
	b.emit(&ir.ArrayAlloc{Dest: dest, ElementType: elemType, Lengths: []*ir.Value{length}})
	for i, el := range e.Elements {
		v := b.buildExpression(el)
		idx := ir.NewConstant(types.IntegerType, int64(i))
		b.emit(&ir.ArrayStore{Base: dest, Indices: []*ir.Value{idx}, Value: v})
	}
	return dest
}

func (b *Builder) buildTupleLiteral(e *ast.TupleLiteral) *ir.Value {
	resultType := b.resolvedType(e)
	dest := b.currentFunc.NewTemp(resultType)
	b.emit(&ir.ArrayAlloc{Dest: dest, ElementType: types.VoidType, Lengths: []*ir.Value{ir.NewConstant(types.IntegerType, int64(len(e.Elements)))}})
	for i, el := range e.Elements {
		v := b.buildExpression(el.Value)
		idx := ir.NewConstant(types.IntegerType, int64(i))
		b.emit(&ir.ArrayStore{Base: dest, Indices: []*ir.Value{idx}, Value: v})
	}
	return dest
}

// buildInterpolatedString lowers to a left-associative chain of Concat
// BinaryOps, calling the CStr stdlib builtin on any non-string part.
func (b *Builder) buildInterpolatedString(e *ast.InterpolatedStringExpression) *ir.Value {
	var acc *ir.Value
	for _, part := range e.Parts {
		var piece *ir.Value
		if part.Expression != nil {
			v := b.buildExpression(part.Expression)
			if v.Type != nil && v.Type.Kind == types.StringKind {
				piece = v
			} else {
				dest := b.currentFunc.NewTemp(types.StringType)
				b.emit(&ir.Call{Dest: dest, Function: "CStr", Args: []*ir.Value{v}})
				piece = dest
			}
		} else {
			piece = ir.NewConstant(types.StringType, part.Literal)
		}
		if acc == nil {
			acc = piece
			continue
		}
		dest := b.currentFunc.NewTemp(types.StringType)
		b.emit(&ir.BinaryOp{Dest: dest, Op: ir.Concat, Left: acc, Right: piece})
		acc = dest
	}
	if acc == nil {
		return ir.NewConstant(types.StringType, "")
	}
	return acc
}
