// Package diag implements the diagnostic model of spec §6.4/§7: severities,
// a Diagnostic with source-context caret rendering grounded on the
// teacher compiler's error formatter, and a Bag that collects diagnostics
// across a compilation unit.
package diag

import (
	"fmt"
	"strings"

	"github.com/basilisc/basilc/pkg/token"
)

// Severity classifies a Diagnostic (§7).
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Code is a short machine-readable identifier for a diagnostic kind (§7),
// e.g. "E-DUP-DEF", "E-TYPE-MISMATCH", "W-UNUSED-VAR".
type Code string

// Diagnostic is a single compiler-reported message with source position.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      token.Position
	File     string
}

// New builds a Diagnostic.
func New(sev Severity, code Code, pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Error implements the error interface so a Diagnostic can be returned
// directly from functions that report a single failure.
func (d Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic with a file:line:column header, matching
// the teacher compiler's "Error in FILE:LINE:COL" / "Error at LINE:COL"
// convention.
func (d Diagnostic) Format(color bool) string {
	var sb strings.Builder
	label := capitalize(d.Severity.String())
	if d.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d: %s", label, d.File, d.Pos.Line, d.Pos.Column, d.Message)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d: %s", label, d.Pos.Line, d.Pos.Column, d.Message)
	}
	return sb.String()
}

// FormatWithSource renders the diagnostic followed by the offending source
// line and a caret pointing at the column, mirroring the teacher
// compiler's FormatWithContext single-line mode.
func (d Diagnostic) FormatWithSource(source string) string {
	var sb strings.Builder
	sb.WriteString(d.Format(false))
	sb.WriteString("\n")

	lines := strings.Split(source, "\n")
	if d.Pos.Line < 1 || d.Pos.Line > len(lines) {
		return sb.String()
	}
	line := lines[d.Pos.Line-1]
	lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max0(d.Pos.Column-1)))
	sb.WriteString("^")
	return sb.String()
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
