package config

import (
	"os"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const (
	APP_NAME = "scriptc"

	// LANGUAGE_VERSION is checked against the 'requires' constraint of whitelist descriptions.
	LANGUAGE_VERSION = "1.4.0"

	DEFAULT_WHITELIST_RELPATH         = APP_NAME + "/whitelist.yaml"
	DEFAULT_MAX_PARALLEL_COMPILATIONS = 8
	DEFAULT_LOG_LEVEL                 = zerolog.WarnLevel

	WHITELIST_ENV_VARNAME    = "SCRIPTC_WHITELIST"
	LOG_LEVEL_ENV_VARNAME    = "SCRIPTC_LOG_LEVEL"
	MAX_PARALLEL_ENV_VARNAME = "SCRIPTC_MAX_PARALLEL"
)

var (
	FORCE_COLOR           bool
	TRUECOLOR_COLORTERM   bool
	NO_COLOR              bool
	TERM_256COLOR_CAPABLE bool
	SHOULD_COLORIZE       bool

	LOG_LEVEL    = DEFAULT_LOG_LEVEL
	MAX_PARALLEL = DEFAULT_MAX_PARALLEL_COMPILATIONS
)

func init() {
	readEnv()
}

func readEnv() {
	if s, ok := os.LookupEnv(LOG_LEVEL_ENV_VARNAME); ok {
		level, err := zerolog.ParseLevel(s)
		if err == nil && level != zerolog.NoLevel {
			LOG_LEVEL = level
		}
	}

	if s, ok := os.LookupEnv(MAX_PARALLEL_ENV_VARNAME); ok {
		n, err := strconv.Atoi(s)
		if err == nil && n > 0 {
			MAX_PARALLEL = n
		}
	}

	readTerminalEnv()
}

// GetWhitelistPath returns the path of the whitelist description: the value of SCRIPTC_WHITELIST if set,
// otherwise the first scriptc/whitelist.yaml file found in the XDG configuration directories.
func GetWhitelistPath() (string, error) {
	if path, ok := os.LookupEnv(WHITELIST_ENV_VARNAME); ok && path != "" {
		return path, nil
	}
	return xdg.SearchConfigFile(DEFAULT_WHITELIST_RELPATH)
}
