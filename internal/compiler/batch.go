package compiler

import (
	"context"
	"fmt"
	"sort"

	"github.com/maruel/natural"
	cmap "github.com/orcaman/concurrent-map/v2"
	"golang.org/x/sync/errgroup"

	"github.com/inoxlang/scriptc/internal/config"
	"github.com/inoxlang/scriptc/internal/ir"
	"github.com/inoxlang/scriptc/internal/utils"
)

type Result struct {
	Class *ir.ClassNode //nil on failure
	Err   error
}

// BatchResults holds the result of each unit of a batch, keyed by unit name.
type BatchResults struct {
	results cmap.ConcurrentMap[string, Result]
}

func (r BatchResults) Get(unit string) (Result, bool) {
	return r.results.Get(unit)
}

// Units returns the names of the compiled units in natural order.
func (r BatchResults) Units() []string {
	units := r.results.Keys()
	sort.Sort(natural.StringSlice(units))
	return units
}

// Err combines the errors of all failed units, it returns nil if all units compiled.
func (r BatchResults) Err() error {
	var errs []error
	for _, unit := range r.Units() {
		result, _ := r.results.Get(unit)
		if result.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", unit, result.Err))
		}
	}
	return utils.CombineErrors(errs...)
}

// Batch compiles independent units concurrently, at most maxParallel at a time (config.MAX_PARALLEL if
// maxParallel <= 0). A failing unit does not stop the compilation of the other units, the units share
// nothing but their read-only whitelists.
func Batch(ctx context.Context, inputs []CompilationInput, maxParallel int) (BatchResults, error) {
	if maxParallel <= 0 {
		maxParallel = config.MAX_PARALLEL
	}

	seen := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		if _, ok := seen[input.Unit]; ok {
			return BatchResults{}, fmt.Errorf("unit %q is present twice in the batch", input.Unit)
		}
		seen[input.Unit] = struct{}{}
	}

	results := BatchResults{results: cmap.New[Result]()}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxParallel)

	for _, input := range inputs {
		input := input
		group.Go(func() error {
			class, err := Compile(groupCtx, input)
			results.results.Set(input.Unit, Result{Class: class, Err: err})
			return nil
		})
	}

	group.Wait()
	return results, nil
}
