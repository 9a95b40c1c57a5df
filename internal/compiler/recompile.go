package compiler

import (
	"context"

	"github.com/inoxlang/scriptc/internal/ir"
	"github.com/inoxlang/scriptc/internal/lookup"
)

// Recompile compiles a unit with the current snapshot of the watcher, then again each time the watcher
// publishes a new snapshot, until ctx is done or the watcher is closed. handle is called with the result of
// each compilation. The tree is decoded again for every compilation, input.Source is ignored.
func Recompile(ctx context.Context, watcher *lookup.Watcher, input CompilationInput, handle func(*ir.ClassNode, error)) error {
	if len(input.Tree) == 0 {
		return ErrNoTree
	}

	//subscribe first in order to not miss a snapshot published during the first compilation.
	snapshots, unsubscribe := watcher.Subscribe()
	defer unsubscribe()

	compile := func(snapshot *lookup.Snapshot) {
		unitInput := input
		unitInput.Source = nil
		unitInput.Whitelist = snapshot

		class, err := Compile(ctx, unitInput)
		handle(class, err)
	}

	compile(watcher.Current())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snapshot, ok := <-snapshots:
			if !ok {
				return lookup.ErrWatcherClosed
			}
			input.Logger.Info().Str("unit", input.Unit).Str("whitelist", snapshot.Version().String()).Msg("recompiling after whitelist update")
			compile(snapshot)
		}
	}
}
