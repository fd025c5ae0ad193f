package semantic

import (
	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/stdlib"
	"github.com/basilisc/basilc/internal/symbols"
	"github.com/basilisc/basilc/internal/types"
)

// analyzeExpression resolves the type of expr, recording it via
// Result.setType so later passes (the IR builder) can consult it without
// re-deriving it (§4.1 "the analyzer's node→type map becomes the builder's
// only source of truth for expression types").
func (a *Analyzer) analyzeExpression(expr ast.Expression) *types.TypeInfo {
	if expr == nil {
		return types.VoidType
	}
	t := a.resolveExpressionType(expr)
	a.result.setType(expr, t)
	return t
}

func (a *Analyzer) resolveExpressionType(expr ast.Expression) *types.TypeInfo {
	switch e := expr.(type) {
	case *ast.Identifier:
		sym, ok := a.scope.Resolve(e.Value)
		if !ok {
			a.errf(e, "E-UNKNOWN-SYMBOL", "undefined identifier %q", e.Value)
			return types.VoidType
		}
		a.result.setSymbol(e, sym)
		return sym.Type
	case *ast.Literal:
		return a.literalType(e)
	case *ast.BinaryExpression:
		return a.analyzeBinaryExpression(e)
	case *ast.UnaryExpression:
		return a.analyzeUnaryExpression(e)
	case *ast.MemberAccessExpression:
		return a.analyzeMemberAccess(e)
	case *ast.CallExpression:
		return a.analyzeCallExpression(e)
	case *ast.ArrayAccessExpression:
		return a.analyzeArrayAccess(e)
	case *ast.NewExpression:
		return a.analyzeNewExpression(e)
	case *ast.CastExpression:
		a.analyzeExpression(e.Expression)
		return a.resolveTypeAnnotation(e.Type)
	case *ast.MyBaseExpression:
		return a.analyzeMyBase(e)
	case *ast.LambdaExpression:
		return a.analyzeLambda(e)
	case *ast.AwaitExpression:
		return a.analyzeExpression(e.Operand)
	case *ast.CollectionInitializer:
		return a.analyzeCollectionInitializer(e)
	case *ast.TupleLiteral:
		return a.analyzeTupleLiteral(e)
	case *ast.InterpolatedStringExpression:
		for _, p := range e.Parts {
			if p.Expression != nil {
				a.analyzeExpression(p.Expression)
			}
		}
		return types.StringType
	default:
		a.errf(expr, "E-INTERNAL", "unhandled expression %T", expr)
		return types.VoidType
	}
}

func (a *Analyzer) literalType(l *ast.Literal) *types.TypeInfo {
	switch l.Kind {
	case ast.LiteralInteger:
		return types.IntegerType
	case ast.LiteralFloat:
		return types.DoubleType
	case ast.LiteralString:
		return types.StringType
	case ast.LiteralBoolean:
		return types.BooleanType
	case ast.LiteralChar:
		return types.CharType
	default:
		return types.VoidType
	}
}

// analyzeBinaryExpression implements §4.3's operator typing rules:
// arithmetic widens to the common numeric type; `&`/Concat requires at
// least one String operand; equality between incompatible operands is a
// warning, not an error; ordering requires numeric or String operands on
// both sides and is an error otherwise.
func (a *Analyzer) analyzeBinaryExpression(b *ast.BinaryExpression) *types.TypeInfo {
	lt := a.analyzeExpression(b.Left)
	rt := a.analyzeExpression(b.Right)

	switch b.Operator {
	case "&", "Concat":
		if lt != types.StringType && rt != types.StringType {
			a.errf(b, "E-TYPE-MISMATCH", "concatenation requires at least one String operand")
		}
		return types.StringType
	case "And", "Or", "Xor", "AndAlso", "OrElse":
		if lt != types.BooleanType || rt != types.BooleanType {
			a.errf(b, "E-TYPE-MISMATCH", "logical operator requires Boolean operands")
		}
		return types.BooleanType
	case "\\": // integer division
		if !lt.IsIntegral() || !rt.IsIntegral() {
			a.errf(b, "E-TYPE-MISMATCH", "integer division requires both sides integral")
		}
		return types.IntegerType
	case "Mod":
		common := types.CommonNumericType(lt, rt)
		if common == nil {
			a.errf(b, "E-TYPE-MISMATCH", "Mod requires numeric operands")
			return types.VoidType
		}
		return common
	case "=", "<>":
		if !types.AreCompatible(lt, rt) {
			a.warnf(b, "W-INCOMPATIBLE-COMPARE", "comparing incompatible types %s and %s", lt, rt)
		}
		return types.BooleanType
	case "<", "<=", ">", ">=":
		if lt.IsNumeric() && rt.IsNumeric() {
			return types.BooleanType
		}
		if lt == types.StringType && rt == types.StringType {
			return types.BooleanType
		}
		a.errf(b, "E-TYPE-MISMATCH", "relational operator requires numeric or String operands")
		return types.BooleanType
	default: // + - * / and bitwise shifts
		common := types.CommonNumericType(lt, rt)
		if common == nil {
			a.errf(b, "E-TYPE-MISMATCH", "operator %q requires numeric operands, got %s and %s", b.Operator, lt, rt)
			return types.VoidType
		}
		return common
	}
}

func (a *Analyzer) analyzeUnaryExpression(u *ast.UnaryExpression) *types.TypeInfo {
	ot := a.analyzeExpression(u.Operand)
	switch u.Operator {
	case "Not", "!":
		if ot != types.BooleanType {
			a.errf(u, "E-TYPE-MISMATCH", "Not requires a Boolean operand")
		}
		return types.BooleanType
	case "-":
		if !ot.IsNumeric() {
			a.errf(u, "E-TYPE-MISMATCH", "unary minus requires a numeric operand")
		}
		return ot
	default: // increment/decrement, bitwise not
		return ot
	}
}

func (a *Analyzer) analyzeMemberAccess(m *ast.MemberAccessExpression) *types.TypeInfo {
	objType := a.analyzeExpression(m.Object)
	if objType == nil || objType.Members == nil {
		a.errf(m, "E-UNKNOWN-SYMBOL", "type %s has no accessible members", objType)
		return types.VoidType
	}
	member, ok := objType.Members[m.Member]
	if !ok {
		a.errf(m, "E-UNKNOWN-SYMBOL", "%s has no member %q", objType, m.Member)
		return types.VoidType
	}
	return member.Type
}

// analyzeCallExpression checks arity and per-argument assignability,
// including the stdlib's variadic-tail convention (§4.1 "builtin call
// arguments check against the stdlib table's parameter types").
func (a *Analyzer) analyzeCallExpression(c *ast.CallExpression) *types.TypeInfo {
	argTypes := make([]*types.TypeInfo, len(c.Arguments))
	for i, arg := range c.Arguments {
		argTypes[i] = a.analyzeExpression(arg)
	}

	if id, ok := c.Callee.(*ast.Identifier); ok {
		if b, found := stdlib.Lookup(id.Value); found {
			a.checkStdlibArity(c, id.Value, b.Signature, argTypes)
			return b.Signature.Return
		}
		sym, ok := a.scope.Resolve(id.Value)
		if !ok {
			a.errf(c, "E-UNKNOWN-SYMBOL", "call to undefined %q", id.Value)
			return types.VoidType
		}
		a.result.setSymbol(id, sym)
		if !sym.Kind.IsCallable() {
			a.errf(c, "E-NOT-CALLABLE", "%q is not callable", id.Value)
			return types.VoidType
		}
		a.checkArity(c, id.Value, sym.Parameters, argTypes)
		return sym.ReturnType
	}

	// Method call through member access: Object.Method(args).
	if ma, ok := c.Callee.(*ast.MemberAccessExpression); ok {
		objType := a.analyzeExpression(ma.Object)
		if objType != nil && objType.Members != nil {
			if member, ok := objType.Members[ma.Member]; ok {
				return member.Type
			}
		}
		a.errf(c, "E-UNKNOWN-SYMBOL", "%s has no method %q", objType, ma.Member)
		return types.VoidType
	}

	return a.analyzeExpression(c.Callee)
}

func (a *Analyzer) checkStdlibArity(c *ast.CallExpression, name string, sig stdlib.Signature, argTypes []*types.TypeInfo) {
	if !sig.Variadic && len(argTypes) != len(sig.Params) {
		a.errf(c, "E-ARITY", "%q expects %d argument(s), got %d", name, len(sig.Params), len(argTypes))
		return
	}
	if sig.Variadic && len(argTypes) < len(sig.Params) {
		a.errf(c, "E-ARITY", "%q expects at least %d argument(s), got %d", name, len(sig.Params), len(argTypes))
		return
	}
	for i, at := range argTypes {
		pt := sig.ParamType(i)
		if pt != nil && !types.IsAssignableFrom(pt, at) {
			a.errf(c, "E-TYPE-MISMATCH", "%q argument %d is %s, expected %s", name, i+1, at, pt)
		}
	}
}

func (a *Analyzer) checkArity(c *ast.CallExpression, name string, params []*symbols.Parameter, argTypes []*types.TypeInfo) {
	variadic := len(params) > 0 && params[len(params)-1].Variadic
	if !variadic && len(argTypes) != len(params) {
		a.errf(c, "E-ARITY", "%q expects %d argument(s), got %d", name, len(params), len(argTypes))
		return
	}
	if variadic && len(argTypes) < len(params)-1 {
		a.errf(c, "E-ARITY", "%q expects at least %d argument(s), got %d", name, len(params)-1, len(argTypes))
		return
	}
	for i, at := range argTypes {
		var pt *types.TypeInfo
		if i < len(params) {
			pt = params[i].Type
		} else if variadic {
			pt = params[len(params)-1].Type
		}
		if pt != nil && !types.IsAssignableFrom(pt, at) {
			a.errf(c, "E-TYPE-MISMATCH", "%q argument %d is %s, expected %s", name, i+1, at, pt)
		}
	}
}

// analyzeArrayAccess enforces that index count matches the array's
// declared rank (§9 Open Question resolution: n-dimensional arrays).
func (a *Analyzer) analyzeArrayAccess(ar *ast.ArrayAccessExpression) *types.TypeInfo {
	arrType := a.analyzeExpression(ar.Array)
	for _, ix := range ar.Indices {
		it := a.analyzeExpression(ix)
		if !it.IsIntegral() {
			a.errf(ix, "E-TYPE-MISMATCH", "array index must be integral, got %s", it)
		}
	}
	if arrType == nil || arrType.Kind != types.Array {
		a.errf(ar, "E-TYPE-MISMATCH", "%s is not an array", arrType)
		return types.VoidType
	}
	if len(ar.Indices) != arrType.ArrayRank {
		a.errf(ar, "E-ARITY", "array of rank %d indexed with %d subscript(s)", arrType.ArrayRank, len(ar.Indices))
	}
	return arrType.ElementType
}

func (a *Analyzer) analyzeNewExpression(n *ast.NewExpression) *types.TypeInfo {
	t := a.resolveTypeAnnotation(n.Type)
	for _, arg := range n.Arguments {
		a.analyzeExpression(arg)
	}
	if len(n.ArrayLengths) > 0 {
		for _, l := range n.ArrayLengths {
			lt := a.analyzeExpression(l)
			if !lt.IsIntegral() {
				a.errf(l, "E-TYPE-MISMATCH", "array length must be integral, got %s", lt)
			}
		}
		return a.result.Types.ArrayOf(t, len(n.ArrayLengths))
	}
	return t
}

func (a *Analyzer) analyzeMyBase(m *ast.MyBaseExpression) *types.TypeInfo {
	encl := a.scope.EnclosingCallable()
	if encl == nil {
		a.errf(m, "E-MYBASE-OUTSIDE-METHOD", "MyBase used outside a method")
		return types.VoidType
	}
	for s := encl; s != nil; s = s.Parent {
		if s.Kind == symbols.ClassScope {
			if sym, ok := s.ResolveLocal(s.Name); ok && sym.Type != nil && sym.Type.BaseType != nil {
				return sym.Type.BaseType
			}
		}
	}
	return types.VoidType
}

func (a *Analyzer) analyzeLambda(l *ast.LambdaExpression) *types.TypeInfo {
	a.pushScope("lambda", symbols.FunctionScope)
	for _, p := range l.Parameters {
		pt := a.resolveTypeAnnotation(p.Type)
		a.define(p, &symbols.Symbol{Name: p.Name, Kind: symbols.Parameter, Type: pt})
	}
	var ret *types.TypeInfo
	if l.Expr != nil {
		ret = a.analyzeExpression(l.Expr)
	} else if l.Body != nil {
		a.analyzeBlock(l.Body)
		ret = types.VoidType
	}
	a.popScope()
	if l.IsSub {
		return types.VoidType
	}
	return ret
}

// analyzeCollectionInitializer flags mixed-type element lists with a
// warning rather than an error (§4.1 "mixed-type literal collection →
// warning").
func (a *Analyzer) analyzeCollectionInitializer(c *ast.CollectionInitializer) *types.TypeInfo {
	var elem *types.TypeInfo
	mixed := false
	for _, e := range c.Elements {
		t := a.analyzeExpression(e)
		if elem == nil {
			elem = t
		} else if !elem.Equal(t) {
			mixed = true
		}
	}
	if elem == nil {
		elem = types.VoidType
	}
	if mixed {
		a.warnf(c, "W-MIXED-COLLECTION", "collection literal mixes element types")
	}
	return a.result.Types.ArrayOf(elem, 1)
}

func (a *Analyzer) analyzeTupleLiteral(t *ast.TupleLiteral) *types.TypeInfo {
	elements := make([]types.TupleElement, len(t.Elements))
	for i, e := range t.Elements {
		elements[i] = types.TupleElement{Name: e.Name, Type: a.analyzeExpression(e.Value)}
	}
	return &types.TypeInfo{Kind: types.Tuple, TupleElements: elements}
}
