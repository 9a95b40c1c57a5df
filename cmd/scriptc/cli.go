package main

import (
	"flag"
	"fmt"
	"io"
	"slices"

	"github.com/inoxlang/scriptc/internal/config"
)

const (
	COMPILE_SUBCMD               = "compile"
	CHECK_SUBCMD                 = "check"
	DESCRIBE_SUBCMD              = "describe"
	WATCH_SUBCMD                 = "watch"
	INSTALL_COMPLETIONS_SUBCMD   = "install-completions"
	UNINSTALL_COMPLETIONS_SUBCMD = "uninstall-completions"
	HELP_SUBCMD                  = "help"

	WHITELIST_FLAG = "whitelist"
)

var (
	SUBCOMMANDS = []string{
		COMPILE_SUBCMD, CHECK_SUBCMD, DESCRIBE_SUBCMD, WATCH_SUBCMD,
		INSTALL_COMPLETIONS_SUBCMD, UNINSTALL_COMPLETIONS_SUBCMD, HELP_SUBCMD,
	}

	HELP_SUBCMD_EQUIVALENTS = []string{"--help", "-help", "-h"}

	SUBCOMMAND_DESCRIPTIONS = [][2]string{
		{COMPILE_SUBCMD, "compile one or more serialized trees and print their IR"},
		{CHECK_SUBCMD, "analyze one or more serialized trees without printing their IR"},
		{DESCRIBE_SUBCMD, "list the types of the whitelist, or the members of the given types"},
		{WATCH_SUBCMD, "compile a serialized tree again each time the whitelist changes"},

		{INSTALL_COMPLETIONS_SUBCMD, "install CLI completions by addding the completion command to the detected rc file (supported shells are bash, zsh and fish)"},
		{UNINSTALL_COMPLETIONS_SUBCMD, "uninstall CLI completions by removing the completion command from the detected rc file"},
		{HELP_SUBCMD, "show the general help or command-specific help"},
	}

	SUBCOMMAND_DESCRIPTION_MAP = map[string]string{}

	CMD_HELP = "commands:\n"
)

func init() {
	for _, entry := range SUBCOMMAND_DESCRIPTIONS {
		cmd, desc := entry[0], entry[1]
		SUBCOMMAND_DESCRIPTION_MAP[cmd] = desc
		CMD_HELP += "\t" + cmd + " - " + desc + "\n"
	}
	CMD_HELP += "\nType `" + COMMAND_NAME + " help <command>` to get command-specific help.\n"
}

func newFlagSet(subcommand string, errW io.Writer) (*flag.FlagSet, *string) {
	flags := flag.NewFlagSet(subcommand, flag.ContinueOnError)
	flags.SetOutput(errW)

	whitelistPath := flags.String(WHITELIST_FLAG, "", "path of the whitelist description (default: $"+config.WHITELIST_ENV_VARNAME+
		" or "+config.DEFAULT_WHITELIST_RELPATH+" in the XDG config directories)")
	return flags, whitelistPath
}

func showHelp(flags *flag.FlagSet, args []string, out io.Writer) bool {
	//only show help
	if slices.Contains(args, "-h") || slices.Contains(args, "--help") {

		cmd := flags.Name()
		if desc, ok := SUBCOMMAND_DESCRIPTION_MAP[cmd]; ok {
			fmt.Fprintln(out, desc)
		}

		flags.SetOutput(out)
		fmt.Fprint(out, "\noptions:\n")
		flags.PrintDefaults()

		return true
	}

	return false
}
