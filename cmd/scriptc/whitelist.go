package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/inoxlang/scriptc/internal/config"
	"github.com/inoxlang/scriptc/internal/diag"
	"github.com/inoxlang/scriptc/internal/lookup"
)

func getWhitelistPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	path, err := config.GetWhitelistPath()
	if err != nil {
		return "", fmt.Errorf("no whitelist found, use -%s or set $%s: %w", WHITELIST_FLAG, config.WHITELIST_ENV_VARNAME, err)
	}
	return path, nil
}

func loadWhitelist(flagValue string, logger zerolog.Logger) (*lookup.Snapshot, error) {
	path, err := getWhitelistPath(flagValue)
	if err != nil {
		return nil, err
	}

	snapshot, err := lookup.NewLoader(1).LoadFile(path)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("whitelist", path).Str("version", snapshot.Version().String()).Msg("whitelist loaded")
	return snapshot, nil
}

// colorProfile returns the color profile for w, colors are disabled if w is not a terminal unless FORCE_COLOR is set.
func colorProfile(w io.Writer) termenv.Profile {
	if config.FORCE_COLOR {
		return config.ColorProfile()
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return config.ColorProfile()
	}
	return termenv.Ascii
}

// printCompilationError writes err to w, the kind of diagnostics is colorized if the terminal supports it.
func printCompilationError(w io.Writer, unit string, err error) {
	profile := colorProfile(w)

	var diagErr *diag.Error
	if !errors.As(err, &diagErr) {
		label := profile.String("error").Foreground(profile.Color("1")).Bold()
		fmt.Fprintf(w, "%s: %s\n", label, err)
		return
	}

	loc := diagErr.Location
	if loc.SourceName == "" {
		loc.SourceName = unit
	}

	label := profile.String(diagErr.Kind.String()).Foreground(profile.Color("1")).Bold()
	if diag.IsInternal(err) {
		label = profile.String(diagErr.Kind.String()).Foreground(profile.Color("5")).Bold()
	}
	fmt.Fprintf(w, "%s %s: %s\n", loc, label, diagErr.MessageWithoutLocation())
}
