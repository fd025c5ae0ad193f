package optimizer

import "github.com/basilisc/basilc/internal/ir"

// Pass identifies one of the optimizer's mandatory transformations (§4.4).
type Pass string

const (
	PassDeadCode         Pass = "dead-code"
	PassConstantFold     Pass = "constant-fold"
	PassCopyPropagation  Pass = "copy-propagation"
)

// Option toggles optimizer behavior, mirroring the teacher's
// WithOptimizationPass option shape.
type Option func(*config)

type config struct {
	enabled map[Pass]bool
}

func defaultConfig() config {
	return config{enabled: map[Pass]bool{
		PassDeadCode:        true,
		PassConstantFold:    true,
		PassCopyPropagation: true,
	}}
}

func (c config) isEnabled(p Pass) bool {
	if c.enabled == nil {
		return true
	}
	enabled, ok := c.enabled[p]
	if !ok {
		return true
	}
	return enabled
}

// WithPass enables or disables one named pass.
func WithPass(p Pass, enabled bool) Option {
	return func(c *config) {
		if c.enabled == nil {
			c.enabled = make(map[Pass]bool)
		}
		c.enabled[p] = enabled
	}
}

// Result reports the aggregate effect of running the pipeline (§4.4
// "returning a result that reports total_modifications").
type Result struct {
	TotalModifications int
}

// Optimize runs the fixed-order mandatory pass pipeline over every
// function in module, in place, preserving block terminators and
// predecessor/successor consistency (§4.4).
func Optimize(module *ir.Module, opts ...Option) Result {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	total := 0
	for _, name := range module.FunctionNames() {
		fn := module.Functions[name]
		if cfg.isEnabled(PassConstantFold) {
			total += constantFold(fn)
		}
		if cfg.isEnabled(PassCopyPropagation) {
			total += copyPropagation(fn)
		}
		if cfg.isEnabled(PassDeadCode) {
			total += deadCodeElimination(fn)
		}
	}
	return Result{TotalModifications: total}
}
