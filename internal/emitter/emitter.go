// Package emitter implements the structured emitter of spec §4.5: it
// walks an ir.Module's basic-block CFGs and reconstructs while/if/switch
// control flow from ir.BlockTag rather than pattern-matching block
// names, inlining compiler temporaries at their use site and declaring
// source-level identifiers once each. Grounded on golang.org/x/tools/
// go/ssa's block-successor walking conventions for the traversal shape,
// and on golang.org/x/text/cases for the case-insensitive reserved-word
// check in identifier sanitation.
package emitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/config"
	"github.com/basilisc/basilc/internal/ir"
)

// Emit renders module as target-language source text under cfg, wrapping
// every top-level declaration in the configured namespace/class (§6.2).
func Emit(module *ir.Module, cfg config.Config) (string, error) {
	var sb strings.Builder

	imports := make(map[string]bool)
	body, err := emitModuleBody(module, cfg, imports)
	if err != nil {
		return "", err
	}
	for _, name := range sortedImports(imports) {
		fmt.Fprintf(&sb, "using %s;\n", name)
	}
	fmt.Fprintf(&sb, "namespace %s {\n", sanitizeIdent(cfg.Namespace))
	sb.WriteString(indentBlock(body, cfg.Indent(1)))
	sb.WriteString("}\n")
	return sb.String(), nil
}

func sortedImports(imports map[string]bool) []string {
	out := make([]string, 0, len(imports))
	for name := range imports {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func emitModuleBody(module *ir.Module, cfg config.Config, imports map[string]bool) (string, error) {
	var sb strings.Builder

	for _, name := range module.ClassNames() {
		sb.WriteString(emitClass(module, cfg, module.Classes[name], imports))
		sb.WriteString("\n")
	}

	for _, name := range enumNames(module) {
		sb.WriteString(emitEnum(module.Enums[name]))
		sb.WriteString("\n")
	}

	for _, name := range interfaceNames(module) {
		sb.WriteString(emitInterface(module, cfg, module.Interfaces[name], imports))
		sb.WriteString("\n")
	}

	for _, name := range delegateNames(module) {
		sb.WriteString(emitDelegate(module.Delegates[name]))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "class %s {\n", sanitizeIdent(cfg.ClassName))
	var fns strings.Builder
	for _, name := range module.FunctionNames() {
		fn := module.Functions[name]
		if fn.Flags.External {
			continue
		}
		fe := newFuncEmitter(module, cfg, fn, imports)
		fns.WriteString(fe.renderFunction(fn, accessKeyword(cfg.MethodAccess)+" static"))
		fns.WriteString("\n")
	}
	if cfg.SynthesizeMain {
		if _, ok := module.Functions["Main"]; !ok {
			fns.WriteString(synthesizeMain(cfg))
			fns.WriteString("\n")
		}
	}
	sb.WriteString(indentBlock(fns.String(), cfg.Indent(1)))
	sb.WriteString("}\n")

	return sb.String(), nil
}

func synthesizeMain(cfg config.Config) string {
	return fmt.Sprintf("%s static void Main(string[] args) {\n}\n", accessKeyword(cfg.MethodAccess))
}

func emitClass(module *ir.Module, cfg config.Config, cm *ir.ClassMeta, imports map[string]bool) string {
	var sb strings.Builder
	header := "class " + sanitizeIdent(cm.Name)
	var bases []string
	if cm.BaseClass != "" {
		bases = append(bases, sanitizeIdent(cm.BaseClass))
	}
	for _, iface := range cm.Interfaces {
		bases = append(bases, sanitizeIdent(iface))
	}
	if len(bases) > 0 {
		header += " : " + strings.Join(bases, ", ")
	}
	modifiers := ""
	if cm.Abstract {
		modifiers += "abstract "
	}
	if cm.Sealed {
		modifiers += "sealed "
	}
	fmt.Fprintf(&sb, "%s%s {\n", modifiers, header)

	var body strings.Builder
	for _, f := range cm.Fields {
		static := ""
		if f.Static {
			static = "static "
		}
		fmt.Fprintf(&body, "%s %s%s %s;\n", astAccessKeyword(f.Access), static, typeName(f.Type), sanitizeIdent(f.Name))
	}
	for _, ev := range cm.Events {
		fmt.Fprintf(&body, "event %s %s;\n", typeName(ev.Type), sanitizeIdent(ev.Name))
	}
	for _, p := range cm.Properties {
		if p.Getter != nil {
			fe := newFuncEmitter(module, cfg, p.Getter, imports)
			body.WriteString(fe.renderFunction(p.Getter, accessKeyword(cfg.MethodAccess)))
			body.WriteString("\n")
		}
		if p.Setter != nil {
			fe := newFuncEmitter(module, cfg, p.Setter, imports)
			body.WriteString(fe.renderFunction(p.Setter, accessKeyword(cfg.MethodAccess)))
			body.WriteString("\n")
		}
	}
	if cm.Constructor != nil {
		fe := newFuncEmitter(module, cfg, cm.Constructor, imports)
		body.WriteString(fe.renderConstructor(cm))
		body.WriteString("\n")
	}
	for _, name := range cm.MethodNames() {
		fn := cm.Methods[name]
		fe := newFuncEmitter(module, cfg, fn, imports)
		body.WriteString(fe.renderFunction(fn, accessKeyword(cfg.MethodAccess)))
		body.WriteString("\n")
	}

	sb.WriteString(indentBlock(body.String(), cfg.Indent(1)))
	sb.WriteString("}\n")
	return sb.String()
}

// renderConstructor is like renderFunction but renders base-constructor
// arguments (stashed on the class at build time, §4.2) as a `: base(...)`
// initializer.
func (fe *funcEmitter) renderConstructor(cm *ir.ClassMeta) string {
	fn := cm.Constructor
	var params []string
	for _, p := range fn.Parameters {
		if sanitizeIdent(p.Name) == "Me" {
			continue
		}
		params = append(params, fmt.Sprintf("%s %s", typeName(p.Type), sanitizeIdent(p.Name)))
		fe.declaredOnce[sanitizeIdent(p.Name)] = true
	}

	header := fmt.Sprintf("%s(%s)", sanitizeIdent(cm.Name), strings.Join(params, ", "))
	if len(cm.BaseCtorArgs) > 0 {
		args := make([]string, len(cm.BaseCtorArgs))
		for i, a := range cm.BaseCtorArgs {
			args[i] = fe.expr(a)
		}
		header += " : base(" + strings.Join(args, ", ") + ")"
	}

	fe.writeLine("%s %s {", accessKeyword(fe.cfg.ClassAccess), header)
	fe.indent++
	if fn.Entry != nil {
		fe.emitBlock(fn.Entry)
	}
	fe.indent--
	fe.writeLine("}")
	return fe.sb.String()
}

func emitEnum(em *ir.EnumMeta) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "enum %s {\n", sanitizeIdent(em.Name))
	for i, m := range em.Members {
		sep := ","
		if i == len(em.Members)-1 {
			sep = ""
		}
		fmt.Fprintf(&sb, "  %s = %d%s\n", sanitizeIdent(m.Name), m.Value, sep)
	}
	sb.WriteString("}\n")
	return sb.String()
}

func emitInterface(module *ir.Module, cfg config.Config, im *ir.InterfaceMeta, imports map[string]bool) string {
	var sb strings.Builder
	header := "interface " + sanitizeIdent(im.Name)
	if len(im.Extends) > 0 {
		names := make([]string, len(im.Extends))
		for i, e := range im.Extends {
			names[i] = sanitizeIdent(e)
		}
		header += " : " + strings.Join(names, ", ")
	}
	fmt.Fprintf(&sb, "%s {\n", header)
	for _, m := range im.Methods {
		if m.Default != nil {
			fe := newFuncEmitter(module, cfg, m.Default, imports)
			sb.WriteString(indentBlock(fe.renderFunction(m.Default, ""), "  "))
			continue
		}
		params := make([]string, len(m.ParamTypes))
		for i, p := range m.ParamTypes {
			params[i] = typeName(p)
		}
		fmt.Fprintf(&sb, "  %s %s(%s);\n", typeName(m.ReturnType), sanitizeIdent(m.Name), strings.Join(params, ", "))
	}
	sb.WriteString("}\n")
	return sb.String()
}

func emitDelegate(dm *ir.DelegateMeta) string {
	params := make([]string, len(dm.ParamTypes))
	for i, p := range dm.ParamTypes {
		params[i] = typeName(p)
	}
	return fmt.Sprintf("delegate %s %s(%s);\n", typeName(dm.ReturnType), sanitizeIdent(dm.Name), strings.Join(params, ", "))
}

func accessKeyword(a config.AccessLevel) string {
	return strings.ToLower(a.String())
}

// astAccessKeyword renders a member's own declared access level, distinct
// from the two class-wide config knobs (§6.2's method/class access
// override applies to synthesized members, not ones the source already
// annotated).
func astAccessKeyword(a ast.AccessLevel) string {
	switch a {
	case ast.AccessPrivate:
		return "private"
	case ast.AccessProtected:
		return "protected"
	case ast.AccessFriend:
		return "internal"
	default:
		return "public"
	}
}

func indentBlock(s string, prefix string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}

// enumNames/interfaceNames/delegateNames sort their keys: ir.Module
// doesn't track insertion order for these three declaration kinds (only
// Functions/Classes get an explicit order slice), so sorted-by-name is
// the deterministic alternative to Go's randomized map iteration (§5).
func enumNames(m *ir.Module) []string {
	out := make([]string, 0, len(m.Enums))
	for name := range m.Enums {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func interfaceNames(m *ir.Module) []string {
	out := make([]string, 0, len(m.Interfaces))
	for name := range m.Interfaces {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func delegateNames(m *ir.Module) []string {
	out := make([]string, 0, len(m.Delegates))
	for name := range m.Delegates {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
