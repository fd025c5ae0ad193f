// Package stdlib is the single signature-and-emission-template table for
// every built-in routine named in spec §4.1/§4.5, consumed by both the
// semantic analyzer (to type-check a call) and the emitter (to render the
// call in the target language), per §9's own recommendation that a split
// table would drift. Grounded on the teacher compiler's builtin catalogue
// (internal/semantic/analyze_builtins.go's name list), narrowed to the
// routines the spec actually names.
package stdlib

import "github.com/basilisc/basilc/internal/types"

// Signature describes a builtin's parameter/return shape for the analyzer.
type Signature struct {
	Params   []*types.TypeInfo
	Variadic bool // last Param type repeats for any extra argument
	Return   *types.TypeInfo
}

// Builtin is one entry of the table: name, signature, and the target-
// language emission pair — template plus required imports (§4.5 "standard-
// library call mapping: a table ... returns (target-expression template,
// required-imports list)"). Template uses positional {0}, {1}, ...
// placeholders substituted with emitted argument text, mirroring the
// extern platform-binding substitution of §6.3.
type Builtin struct {
	Name      string
	Signature Signature
	Template  string
	Imports   []string
}

var intT = types.IntegerType
var longT = types.LongType
var sngT = types.SingleType
var dblT = types.DoubleType
var strT = types.StringType
var boolT = types.BooleanType
var voidT = types.VoidType

func sig(ret *types.TypeInfo, params ...*types.TypeInfo) Signature {
	return Signature{Params: params, Return: ret}
}

// table is keyed by case-sensitive canonical spelling; lookups from the
// analyzer/emitter should fold case the same way symbol resolution does.
var table = map[string]Builtin{
	"Print":     {Name: "Print", Signature: sig(voidT, strT), Template: "fmt.Print({0})", Imports: []string{"fmt"}},
	"PrintLine": {Name: "PrintLine", Signature: sig(voidT, strT), Template: "fmt.Println({0})", Imports: []string{"fmt"}},
	"Input":     {Name: "Input", Signature: sig(strT), Template: "readInput()"},
	"ReadLine":  {Name: "ReadLine", Signature: sig(strT), Template: "readLine()"},

	"Len":   {Name: "Len", Signature: sig(intT, strT), Template: "len({0})"},
	"Mid":   {Name: "Mid", Signature: sig(strT, strT, intT, intT), Template: "mid({0}, {1}, {2})"},
	"Left":  {Name: "Left", Signature: sig(strT, strT, intT), Template: "left({0}, {1})"},
	"Right": {Name: "Right", Signature: sig(strT, strT, intT), Template: "right({0}, {1})"},
	"UCase": {Name: "UCase", Signature: sig(strT, strT), Template: "strings.ToUpper({0})", Imports: []string{"strings"}},
	"LCase": {Name: "LCase", Signature: sig(strT, strT), Template: "strings.ToLower({0})", Imports: []string{"strings"}},
	"Trim":  {Name: "Trim", Signature: sig(strT, strT), Template: "strings.TrimSpace({0})", Imports: []string{"strings"}},
	"InStr": {Name: "InStr", Signature: sig(intT, strT, strT), Template: "instr({0}, {1})"},
	"Replace": {
		Name:      "Replace",
		Signature: sig(strT, strT, strT, strT),
		Template:  "strings.ReplaceAll({0}, {1}, {2})",
		Imports:   []string{"strings"},
	},

	"Abs":   {Name: "Abs", Signature: sig(dblT, dblT), Template: "math.Abs({0})", Imports: []string{"math"}},
	"Sqrt":  {Name: "Sqrt", Signature: sig(dblT, dblT), Template: "math.Sqrt({0})", Imports: []string{"math"}},
	"Pow":   {Name: "Pow", Signature: sig(dblT, dblT, dblT), Template: "math.Pow({0}, {1})", Imports: []string{"math"}},
	"Sin":   {Name: "Sin", Signature: sig(dblT, dblT), Template: "math.Sin({0})", Imports: []string{"math"}},
	"Cos":   {Name: "Cos", Signature: sig(dblT, dblT), Template: "math.Cos({0})", Imports: []string{"math"}},
	"Tan":   {Name: "Tan", Signature: sig(dblT, dblT), Template: "math.Tan({0})", Imports: []string{"math"}},
	"Log":   {Name: "Log", Signature: sig(dblT, dblT), Template: "math.Log({0})", Imports: []string{"math"}},
	"Exp":   {Name: "Exp", Signature: sig(dblT, dblT), Template: "math.Exp({0})", Imports: []string{"math"}},
	"Floor": {Name: "Floor", Signature: sig(dblT, dblT), Template: "math.Floor({0})", Imports: []string{"math"}},
	"Ceiling": {
		Name:      "Ceiling",
		Signature: sig(dblT, dblT),
		Template:  "math.Ceil({0})",
		Imports:   []string{"math"},
	},
	"Round": {Name: "Round", Signature: sig(longT, dblT), Template: "math.Round({0})", Imports: []string{"math"}},
	"Min":   {Name: "Min", Signature: sig(dblT, dblT, dblT), Template: "math.Min({0}, {1})", Imports: []string{"math"}},
	"Max":   {Name: "Max", Signature: sig(dblT, dblT, dblT), Template: "math.Max({0}, {1})", Imports: []string{"math"}},

	"Rnd":       {Name: "Rnd", Signature: sig(sngT), Template: "rand.Float64()", Imports: []string{"math/rand"}},
	"Randomize": {Name: "Randomize", Signature: sig(voidT), Template: "seedRandom()"},

	"CInt": {Name: "CInt", Signature: sig(intT, dblT), Template: "int32({0})"},
	"CLng": {Name: "CLng", Signature: sig(longT, dblT), Template: "int64({0})"},
	"CDbl": {Name: "CDbl", Signature: sig(dblT, dblT), Template: "float64({0})"},
	"CSng": {Name: "CSng", Signature: sig(sngT, dblT), Template: "float32({0})"},
	"CStr": {Name: "CStr", Signature: sig(strT, dblT), Template: "fmt.Sprint({0})", Imports: []string{"fmt"}},
	"CBool": {
		Name:      "CBool",
		Signature: sig(boolT, dblT),
		Template:  "({0} != 0)",
	},

	"UBound": {Name: "UBound", Signature: sig(intT, strT, intT), Template: "ubound({0}, {1})"},
	"LBound": {Name: "LBound", Signature: sig(intT, strT, intT), Template: "0"},
}

// Lookup returns the builtin entry for name, and whether it exists.
func Lookup(name string) (Builtin, bool) {
	b, ok := table[name]
	return b, ok
}

// Names returns every builtin name the table knows, for diagnostics like
// "did you mean" suggestions.
func Names() []string {
	out := make([]string, 0, len(table))
	for name := range table {
		out = append(out, name)
	}
	return out
}

// IsVariadicTail reports whether argIndex falls in the variadic tail of
// sig, i.e. beyond the last declared parameter of a variadic signature.
func (s Signature) IsVariadicTail(argIndex int) bool {
	return s.Variadic && argIndex >= len(s.Params)-1
}

// ParamType returns the expected type of the argIndex'th argument,
// accounting for a variadic tail repeating the final declared parameter.
func (s Signature) ParamType(argIndex int) *types.TypeInfo {
	if argIndex < len(s.Params) {
		return s.Params[argIndex]
	}
	if s.Variadic && len(s.Params) > 0 {
		return s.Params[len(s.Params)-1]
	}
	return nil
}
