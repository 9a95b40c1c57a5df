package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/inoxlang/scriptc/internal/compiler"
	"github.com/inoxlang/scriptc/internal/ir"
	"github.com/inoxlang/scriptc/internal/lookup"
)

// WatchTree compiles a tree, then compiles it again each time the whitelist file is modified, until the
// process is interrupted.
func WatchTree(mainSubCommand string, mainSubCommandArgs []string, logger zerolog.Logger, outW, errW io.Writer) (statusCode int) {
	flags, whitelistFlag := newFlagSet(mainSubCommand, errW)

	if showHelp(flags, mainSubCommandArgs, outW) {
		return
	}

	if err := flags.Parse(mainSubCommandArgs); err != nil {
		return ERROR_STATUS_CODE
	}

	treePath := flags.Arg(0)
	if treePath == "" {
		fmt.Fprintf(errW, "missing tree path\n")
		return ERROR_STATUS_CODE
	}

	tree, err := os.ReadFile(treePath)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	whitelistPath, err := getWhitelistPath(*whitelistFlag)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	watcher, err := lookup.NewWatcher(lookup.WatcherConfig{Path: whitelistPath, Logger: logger})
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}
	defer watcher.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go watcher.Run(ctx)

	input := compiler.CompilationInput{Unit: treePath, Tree: tree, Logger: logger}

	err = compiler.Recompile(ctx, watcher, input, func(class *ir.ClassNode, err error) {
		if err != nil {
			printCompilationError(errW, treePath, err)
			return
		}
		fmt.Fprintf(outW, "%s (%s):\n", treePath, class.CompileID)
		ir.Print(outW, class)
	})

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}
	return
}
