package config

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

func readTerminalEnv() {
	// FORCE COLOR

	if s, ok := os.LookupEnv("FORCE_COLOR"); ok {
		FORCE_COLOR = len(s) != 0 && s != "false" && s != "0"
	}

	//TERMCOLOR

	TRUECOLOR_COLORTERM = os.Getenv("COLORTERM") == "truecolor"

	//NO_COLOR

	if s, ok := os.LookupEnv("NO_COLOR"); ok {
		NO_COLOR = len(s) != 0 && s != "false" && s != "0"
	}

	//TERM

	term := os.Getenv("TERM")
	if strings.Contains(term, "256color") {
		TERM_256COLOR_CAPABLE = true
	}

	SHOULD_COLORIZE = !NO_COLOR && (FORCE_COLOR || TRUECOLOR_COLORTERM || TERM_256COLOR_CAPABLE)
}

// ColorProfile returns the profile used to colorize diagnostics, Ascii disables colors.
func ColorProfile() termenv.Profile {
	if !SHOULD_COLORIZE {
		return termenv.Ascii
	}
	if TRUECOLOR_COLORTERM {
		return termenv.TrueColor
	}
	return termenv.ANSI256
}
