// Package compiler runs the analysis and lowering passes on the tree of a compilation unit.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/inoxlang/scriptc/internal/diag"
	"github.com/inoxlang/scriptc/internal/ir"
	"github.com/inoxlang/scriptc/internal/node"
	"github.com/inoxlang/scriptc/internal/utils"
)

var (
	ErrNoTree      = errors.New("no tree to compile")
	ErrNoWhitelist = errors.New("no whitelist")
)

type CompilationInput struct {
	Unit string

	// Tree is the serialized tree of the unit, it is decoded by Compile if Source is nil.
	Tree   []byte
	Source *node.Source //optional, a tree can only be compiled once

	Whitelist node.Resolver
	Logger    zerolog.Logger //ok if not set
}

// Compile analyzes the tree of a unit then writes its IR. The context is only checked before the analysis:
// a compilation either completes or fails, no IR is returned on failure.
func Compile(ctx context.Context, input CompilationInput) (class *ir.ClassNode, finalErr error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if input.Whitelist == nil {
		return nil, ErrNoWhitelist
	}

	source := input.Source
	if source == nil {
		if len(input.Tree) == 0 {
			return nil, ErrNoTree
		}

		var err error
		source, err = node.Decode(input.Tree)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", input.Unit, err)
		}
	}

	compileID := ulid.Make().String()
	logger := input.Logger.With().Str("compile", compileID).Str("unit", input.Unit).Logger()
	start := time.Now()

	defer func() {
		if e := recover(); e != nil {
			class = nil
			finalErr = fmt.Errorf("%s: %w", input.Unit, utils.ConvertPanicValueToError(e))
			logger.Error().Err(finalErr).Msg("compilation panicked")
		}
	}()

	logger.Debug().Msg("analysis started")

	root := node.NewScriptRoot(input.Unit, compileID, input.Whitelist, logger)
	if err := source.Analyze(root); err != nil {
		logFailure(logger, "analysis", err)
		return nil, err
	}

	logger.Debug().Int("slots", source.SlotCount()).Dur("duration", time.Since(start)).Msg("analysis finished")

	builder := ir.NewBuilder(input.Unit, compileID, source.Loc)
	if err := source.Write(builder); err != nil {
		logFailure(logger, "write", err)
		return nil, err
	}

	class = builder.Finish()
	logger.Debug().Int("nodes", class.NodeCount).Dur("duration", time.Since(start)).Msg("compilation finished")
	return class, nil
}

func logFailure(logger zerolog.Logger, phase string, err error) {
	event := logger.Debug()
	if diag.IsInternal(err) {
		//an internal fault is a bug in the producer of the tree.
		event = logger.Error()
	}

	if kind, ok := diag.KindOf(err); ok {
		event = event.Str("kind", kind.String())
	}
	event.Err(err).Str("phase", phase).Msg("compilation failed")
}
