// Package config loads the target emitter configuration of spec §6.2: the
// per-run knobs the structured emitter consults when rendering a module.
// Grounded on the teacher's per-pipeline-run config struct convention,
// loaded with goccy/go-yaml and overridable by a JSON overlay merged
// field-by-field with tidwall/gjson and tidwall/sjson, matching
// internal/diag's use of the same pair for its own document shape.
package config

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// AccessLevel covers the Public/Protected/Private subset of ast.AccessLevel
// (it has no Friend) for the method/class access knobs, kept independent
// so this package never needs
// to import ast just to describe a default.
type AccessLevel int

const (
	AccessPublic AccessLevel = iota
	AccessProtected
	AccessPrivate
)

func (a AccessLevel) String() string {
	switch a {
	case AccessProtected:
		return "Protected"
	case AccessPrivate:
		return "Private"
	default:
		return "Public"
	}
}

func parseAccessLevel(s string) AccessLevel {
	switch s {
	case "Protected":
		return AccessProtected
	case "Private":
		return AccessPrivate
	default:
		return AccessPublic
	}
}

// Target is the platform tag an Extern's per-platform template is keyed
// by (§6.3): "CSharp", "Cpp", "LLVM", "MSIL".
type Target string

const (
	TargetCSharp Target = "CSharp"
	TargetCpp    Target = "Cpp"
	TargetLLVM   Target = "LLVM"
	TargetMSIL   Target = "MSIL"
)

// Config is the emitter's configuration surface, enumerated by §6.2.
type Config struct {
	Target Target

	Namespace      string
	ClassName      string
	SynthesizeMain bool
	EmitComments   bool
	MethodAccess   AccessLevel
	ClassAccess    AccessLevel

	IndentWidth int
	UseTabs     bool
}

// yamlDoc mirrors Config's fields as the plain strings/scalars a YAML
// document carries, since AccessLevel/Target need translation rather
// than a direct field-tag mapping.
type yamlDoc struct {
	Target         string `yaml:"target"`
	Namespace      string `yaml:"namespace"`
	ClassName      string `yaml:"class_name"`
	SynthesizeMain bool   `yaml:"synthesize_main"`
	EmitComments   bool   `yaml:"emit_comments"`
	MethodAccess   string `yaml:"method_access"`
	ClassAccess    string `yaml:"class_access"`
	IndentWidth    int    `yaml:"indent_width"`
	UseTabs        bool   `yaml:"use_tabs"`
}

// Default returns the configuration the emitter falls back to when no
// run-specific override is supplied.
func Default() Config {
	return Config{
		Target:         TargetCSharp,
		Namespace:      "Basil",
		ClassName:      "Program",
		SynthesizeMain: true,
		EmitComments:   false,
		MethodAccess:   AccessPublic,
		ClassAccess:    AccessPublic,
		IndentWidth:    4,
		UseTabs:        false,
	}
}

// Indent renders one level of indentation per the configured width and
// tabs-vs-spaces choice.
func (c Config) Indent(depth int) string {
	if c.UseTabs {
		out := make([]byte, depth)
		for i := range out {
			out[i] = '\t'
		}
		return string(out)
	}
	width := c.IndentWidth
	if width <= 0 {
		width = 4
	}
	out := make([]byte, depth*width)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

// LoadYAML parses a YAML document into a Config seeded with Default()'s
// values, so a partial document only overrides what it mentions.
func LoadYAML(doc []byte) (Config, error) {
	cfg := Default()
	raw := yamlDoc{
		Target:         string(cfg.Target),
		Namespace:      cfg.Namespace,
		ClassName:      cfg.ClassName,
		SynthesizeMain: cfg.SynthesizeMain,
		EmitComments:   cfg.EmitComments,
		MethodAccess:   cfg.MethodAccess.String(),
		ClassAccess:    cfg.ClassAccess.String(),
		IndentWidth:    cfg.IndentWidth,
		UseTabs:        cfg.UseTabs,
	}
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return Config{}, fmt.Errorf("config: parse yaml: %w", err)
	}
	cfg.Target = Target(raw.Target)
	cfg.Namespace = raw.Namespace
	cfg.ClassName = raw.ClassName
	cfg.SynthesizeMain = raw.SynthesizeMain
	cfg.EmitComments = raw.EmitComments
	cfg.MethodAccess = parseAccessLevel(raw.MethodAccess)
	cfg.ClassAccess = parseAccessLevel(raw.ClassAccess)
	cfg.IndentWidth = raw.IndentWidth
	cfg.UseTabs = raw.UseTabs
	return cfg, nil
}

// ApplyJSONOverlay merges a JSON document's fields onto cfg, field by
// field, via gjson reads and sjson-style overwrites — used by the CLI to
// let the `--set` flag, whose value is a small JSON document such as
// `{"target":"Cpp"}`, patch individual knobs without requiring a
// full YAML file (§6.2's configuration surface is small enough that a
// flat overlay is the common case).
func ApplyJSONOverlay(cfg Config, overlay []byte) (Config, error) {
	if len(overlay) == 0 {
		return cfg, nil
	}
	if v := gjson.GetBytes(overlay, "target"); v.Exists() {
		cfg.Target = Target(v.String())
	}
	if v := gjson.GetBytes(overlay, "namespace"); v.Exists() {
		cfg.Namespace = v.String()
	}
	if v := gjson.GetBytes(overlay, "class_name"); v.Exists() {
		cfg.ClassName = v.String()
	}
	if v := gjson.GetBytes(overlay, "synthesize_main"); v.Exists() {
		cfg.SynthesizeMain = v.Bool()
	}
	if v := gjson.GetBytes(overlay, "emit_comments"); v.Exists() {
		cfg.EmitComments = v.Bool()
	}
	if v := gjson.GetBytes(overlay, "method_access"); v.Exists() {
		cfg.MethodAccess = parseAccessLevel(v.String())
	}
	if v := gjson.GetBytes(overlay, "class_access"); v.Exists() {
		cfg.ClassAccess = parseAccessLevel(v.String())
	}
	if v := gjson.GetBytes(overlay, "indent_width"); v.Exists() {
		cfg.IndentWidth = int(v.Int())
	}
	if v := gjson.GetBytes(overlay, "use_tabs"); v.Exists() {
		cfg.UseTabs = v.Bool()
	}
	return cfg, nil
}

// ToJSON serializes cfg for diagnostics/tooling, built incrementally with
// sjson like internal/diag's Bag.ToJSON.
func ToJSON(cfg Config) ([]byte, error) {
	doc := []byte("{}")
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.SetBytes(doc, path, value)
	}
	set("target", string(cfg.Target))
	set("namespace", cfg.Namespace)
	set("class_name", cfg.ClassName)
	set("synthesize_main", cfg.SynthesizeMain)
	set("emit_comments", cfg.EmitComments)
	set("method_access", cfg.MethodAccess.String())
	set("class_access", cfg.ClassAccess.String())
	set("indent_width", cfg.IndentWidth)
	set("use_tabs", cfg.UseTabs)
	return doc, err
}
