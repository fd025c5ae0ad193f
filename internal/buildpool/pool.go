// Package buildpool runs the compilation pipeline (semantic analysis →
// IR building → optimization → emission) over a set of compilation units
// concurrently, at unit granularity (§5 "parallelism, if desired, is at
// compilation-unit granularity"). Grounded on
// ZupIT-horusec-engine/pool/pool.go's ants.Pool wrapper and on
// engine.go's Run method, which submits one worker-pool task per input
// path and collects results behind a mutex.
package buildpool

import (
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/basilisc/basilc/ast"
	"github.com/basilisc/basilc/internal/config"
	"github.com/basilisc/basilc/internal/diag"
	"github.com/basilisc/basilc/internal/emitter"
	"github.com/basilisc/basilc/internal/irbuilder"
	"github.com/basilisc/basilc/internal/optimizer"
	"github.com/basilisc/basilc/internal/semantic"
	"github.com/basilisc/basilc/pkg/token"
)

const (
	// DefaultPoolSize bounds how many units compile at once when the
	// caller doesn't specify one.
	DefaultPoolSize = 8

	// ExpiryDuration is how long an idle worker goroutine lives before
	// the pool reaps it.
	ExpiryDuration = 10 * time.Second
)

// Pool is the alias of ants.Pool, kept distinct so callers depend on this
// package's name rather than ants directly.
type Pool = ants.Pool

// NewPool builds a worker pool sized poolSize, or DefaultPoolSize when
// poolSize is zero or negative.
func NewPool(poolSize int) (*Pool, error) {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	return ants.NewPool(poolSize, ants.WithOptions(ants.Options{ExpiryDuration: ExpiryDuration}))
}

// Unit is one compilation unit submitted to CompileUnits: a parsed
// program plus the name it should be emitted under.
type Unit struct {
	Name    string
	Program *ast.Program
}

// UnitResult is the outcome of compiling one Unit: either emitted source
// text, or the diagnostics that explain why it couldn't be.
type UnitResult struct {
	Name        string
	Output      string
	Diagnostics *diag.Bag
	Err         error
}

// CompileUnits runs the full pipeline over units concurrently, bounded by
// a worker pool of the given size (0 selects DefaultPoolSize). Results
// are returned in the same order as units regardless of completion
// order, since each result is written to its own pre-sized slot.
func CompileUnits(units []Unit, cfg config.Config, poolSize int) ([]UnitResult, error) {
	results := make([]UnitResult, len(units))

	workerPool, err := NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	defer workerPool.Release()

	var wg sync.WaitGroup
	wg.Add(len(units))

	for i, u := range units {
		i, u := i, u
		submitErr := workerPool.Submit(func() {
			defer wg.Done()
			results[i] = compileOne(u, cfg)
		})
		if submitErr != nil {
			wg.Done()
			results[i] = UnitResult{Name: u.Name, Err: submitErr}
		}
	}

	wg.Wait()
	return results, nil
}

func compileOne(u Unit, cfg config.Config) UnitResult {
	analyzer := semantic.New(u.Name)
	analysis := analyzer.Analyze(u.Program)
	bag := analysis.Diagnostics
	if bag.HasErrors() {
		return UnitResult{Name: u.Name, Diagnostics: bag}
	}

	builder := irbuilder.New(u.Name, analysis)
	module, buildErrs := builder.Build(u.Program)
	for _, e := range buildErrs {
		bag.Add(diag.New(diag.Error, "IRB001", token.Position{}, "%s", e.Error()))
	}
	if bag.HasErrors() {
		return UnitResult{Name: u.Name, Diagnostics: bag}
	}

	optimizer.Optimize(module)

	out, emitErr := emitter.Emit(module, cfg)
	if emitErr != nil {
		bag.Add(diag.New(diag.Error, "EMIT001", token.Position{}, "%s", emitErr.Error()))
		return UnitResult{Name: u.Name, Diagnostics: bag}
	}

	return UnitResult{Name: u.Name, Output: out, Diagnostics: bag}
}
