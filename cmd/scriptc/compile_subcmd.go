package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/inoxlang/scriptc/internal/compiler"
	"github.com/inoxlang/scriptc/internal/config"
	"github.com/inoxlang/scriptc/internal/ir"
)

const (
	JSON_FLAG     = "json"
	PARALLEL_FLAG = "parallel"
)

// CompileTrees compiles the trees passed as arguments concurrently. The compile subcommand prints the IR of
// each unit, the check subcommand only reports errors. The status code is ERROR_STATUS_CODE if a unit failed.
func CompileTrees(mainSubCommand string, mainSubCommandArgs []string, logger zerolog.Logger, outW, errW io.Writer) (statusCode int) {
	flags, whitelistFlag := newFlagSet(mainSubCommand, errW)

	var dumpJSON bool
	var maxParallel int
	if mainSubCommand == COMPILE_SUBCMD {
		flags.BoolVar(&dumpJSON, JSON_FLAG, false, "print the IR as JSON")
	}
	flags.IntVar(&maxParallel, PARALLEL_FLAG, config.MAX_PARALLEL, "maximum number of units compiled at the same time")

	if showHelp(flags, mainSubCommandArgs, outW) {
		return
	}

	if err := flags.Parse(mainSubCommandArgs); err != nil {
		return ERROR_STATUS_CODE
	}

	if flags.NArg() == 0 {
		fmt.Fprintf(errW, "missing tree path\n")
		return ERROR_STATUS_CODE
	}

	whitelist, err := loadWhitelist(*whitelistFlag, logger)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	var inputs []compiler.CompilationInput
	for _, treePath := range flags.Args() {
		tree, err := os.ReadFile(treePath)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}

		inputs = append(inputs, compiler.CompilationInput{
			Unit:      treePath,
			Tree:      tree,
			Whitelist: whitelist,
			Logger:    logger,
		})
	}

	results, err := compiler.Batch(context.Background(), inputs, maxParallel)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	for _, unit := range results.Units() {
		result, _ := results.Get(unit)
		if result.Err != nil {
			printCompilationError(errW, unit, result.Err)
			statusCode = ERROR_STATUS_CODE
			continue
		}

		switch {
		case mainSubCommand == CHECK_SUBCMD:
			fmt.Fprintf(outW, "%s: ok\n", unit)
		case dumpJSON:
			dump, err := ir.Dump(result.Class)
			if err != nil {
				fmt.Fprintln(errW, err)
				return ERROR_STATUS_CODE
			}
			fmt.Fprintf(outW, "%s\n", dump)
		default:
			fmt.Fprintf(outW, "%s:\n", unit)
			if err := ir.Print(outW, result.Class); err != nil {
				fmt.Fprintln(errW, err)
				return ERROR_STATUS_CODE
			}
		}
	}

	return
}
