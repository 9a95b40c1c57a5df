package main

import (
	// ====================== SCRIPTC IMPORTS ============================
	"github.com/inoxlang/scriptc/internal/config"
	"github.com/inoxlang/scriptc/internal/utils"

	// ====================== STDLIB ============================
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"unicode"

	// ====================== THIRD PARTY ============================

	"github.com/muesli/termenv"
	"github.com/posener/complete/v2/install"
	"github.com/rs/zerolog"
)

const (
	ERROR_STATUS_CODE = 1

	COMMAND_NAME = "scriptc"
)

func main() {
	//handle completions
	completer.Complete(COMMAND_NAME)

	statusCode := _main(os.Args, os.Stdout, os.Stderr)
	if statusCode != 0 {
		os.Exit(statusCode)
	}
}

func _main(args []string, outW io.Writer, errW io.Writer) (statusCode int) {
	mainSubCommand := ""
	var mainSubCommandArgs []string

	if len(args) == 1 { //no subcommand specified
		mainSubCommand = HELP_SUBCMD
	} else {
		mainSubCommand = args[1]
		mainSubCommandArgs = args[2:]
	}

	//if the command has the shape help <subcommand> ... we modify the arguments to ask the subcommand to print its help message.
	if mainSubCommand == HELP_SUBCMD && len(mainSubCommandArgs) > 0 && mainSubCommandArgs[0] != "" && unicode.IsLetter(rune(mainSubCommandArgs[0][0])) {
		mainSubCommand = mainSubCommandArgs[0]
		mainSubCommandArgs = []string{"-h"}
	}

	//unknown command
	if !slices.Contains(SUBCOMMANDS, mainSubCommand) && !slices.Contains(HELP_SUBCMD_EQUIVALENTS, mainSubCommand) {
		fmt.Fprintf(errW, "unknown command '%s'", mainSubCommand)

		closest, _, ok := utils.FindClosestString(context.Background(), SUBCOMMANDS, mainSubCommand, 2)
		if ok {
			fmt.Fprintf(errW, ", did you mean '%s' ?\n", closest)
		} else {
			fmt.Fprint(errW, "\n"+CMD_HELP)
		}
		return ERROR_STATUS_CODE
	}

	logger := newLogger(errW)

	switch mainSubCommand {
	case HELP_SUBCMD, "--help", "-help", "-h":
		fmt.Fprint(outW, CMD_HELP)
		return
	case INSTALL_COMPLETIONS_SUBCMD:
		err := install.Install(COMMAND_NAME)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		fmt.Fprintln(outW, "installed")
		return
	case UNINSTALL_COMPLETIONS_SUBCMD:
		err := install.Uninstall(COMMAND_NAME)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		fmt.Fprintln(outW, "uninstalled")
		return
	case COMPILE_SUBCMD, CHECK_SUBCMD:
		return CompileTrees(mainSubCommand, mainSubCommandArgs, logger, outW, errW)
	case DESCRIBE_SUBCMD:
		return DescribeWhitelist(mainSubCommand, mainSubCommandArgs, outW, errW)
	case WATCH_SUBCMD:
		return WatchTree(mainSubCommand, mainSubCommandArgs, logger, outW, errW)
	default:
		panic(fmt.Errorf("subcommand %s is not handled", mainSubCommand))
	}
}

// newLogger returns a human-friendly logger writing to errW, its level is set by $SCRIPTC_LOG_LEVEL.
func newLogger(errW io.Writer) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:     errW,
		NoColor: colorProfile(errW) == termenv.Ascii,
	}
	return zerolog.New(writer).Level(config.LOG_LEVEL).With().Timestamp().Logger()
}
