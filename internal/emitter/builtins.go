package emitter

import (
	"strconv"
	"strings"

	"github.com/basilisc/basilc/internal/ir"
	"github.com/basilisc/basilc/internal/stdlib"
)

// callExpr resolves a Call instruction's callee name against, in order:
// the module's extern platform map (§6.3), the unified stdlib table
// (§9), and finally plain user-defined function dispatch. This order
// matters — an extern declaration is a deliberate user override of a
// platform primitive and must win over a same-named builtin.
func (fe *funcEmitter) callExpr(name string, args []*ir.Value) string {
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = fe.expr(a)
	}

	if xm, ok := fe.module.Externs[name]; ok {
		if tmpl, ok := xm.Platforms[string(fe.cfg.Target)]; ok {
			return substituteTemplate(tmpl, rendered)
		}
	}

	if b, ok := stdlib.Lookup(name); ok {
		for _, imp := range b.Imports {
			fe.imports[imp] = true
		}
		return substituteTemplate(b.Template, rendered)
	}

	return sanitizeIdent(name) + "(" + strings.Join(rendered, ", ") + ")"
}

// substituteTemplate replaces each {n} placeholder in tmpl with the n'th
// rendered argument, mirroring §6.3's positional extern-binding
// substitution and §9's stdlib call-mapping templates.
func substituteTemplate(tmpl string, args []string) string {
	var sb strings.Builder
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] == '{' {
			if end := strings.IndexByte(tmpl[i:], '}'); end > 0 {
				idxStr := tmpl[i+1 : i+end]
				if n, err := strconv.Atoi(idxStr); err == nil && n >= 0 && n < len(args) {
					sb.WriteString(args[n])
					i += end
					continue
				}
			}
		}
		sb.WriteByte(tmpl[i])
	}
	return sb.String()
}
