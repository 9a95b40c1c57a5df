package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/inoxlang/scriptc/internal/utils"
)

// DescribeWhitelist prints the types visible to scripts, or the members of the types passed as arguments.
// An argument containing glob metacharacters (e.g. Hash*) selects all matching types.
func DescribeWhitelist(mainSubCommand string, mainSubCommandArgs []string, outW, errW io.Writer) (statusCode int) {
	flags, whitelistFlag := newFlagSet(mainSubCommand, errW)

	if showHelp(flags, mainSubCommandArgs, outW) {
		return
	}

	if err := flags.Parse(mainSubCommandArgs); err != nil {
		return ERROR_STATUS_CODE
	}

	whitelist, err := loadWhitelist(*whitelistFlag, zerolog.Nop())
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	if flags.NArg() == 0 {
		fmt.Fprintf(outW, "whitelist %s\n", whitelist.Version())
		for _, name := range whitelist.TypeNames() {
			fmt.Fprintf(outW, "\t%s\n", name)
		}
		return
	}

	var typeNames []string
	for _, arg := range flags.Args() {
		if !strings.ContainsAny(arg, "*?[{") {
			typeNames = append(typeNames, arg)
			continue
		}

		if !doublestar.ValidatePattern(arg) {
			fmt.Fprintf(errW, "invalid pattern '%s'\n", arg)
			return ERROR_STATUS_CODE
		}

		matched := false
		for _, name := range whitelist.TypeNames() {
			if ok, _ := doublestar.Match(arg, name); ok {
				typeNames = append(typeNames, name)
				matched = true
			}
		}
		if !matched {
			fmt.Fprintf(errW, "no type matches '%s'\n", arg)
			statusCode = ERROR_STATUS_CODE
		}
	}

	for _, typeName := range typeNames {
		t, ok := whitelist.LookupType(typeName)
		if !ok {
			fmt.Fprintf(errW, "unknown type '%s'", typeName)
			if closest, _, ok := utils.FindClosestString(context.Background(), whitelist.TypeNames(), typeName, 2); ok {
				fmt.Fprintf(errW, ", did you mean '%s' ?", closest)
			}
			fmt.Fprintln(errW)
			statusCode = ERROR_STATUS_CODE
			continue
		}

		fmt.Fprintf(outW, "%s\n", t.Name())
		if super := whitelist.Super(t); super != nil {
			fmt.Fprintf(outW, "\textends %s\n", super.Name())
		}
		for _, member := range whitelist.Members(t) {
			fmt.Fprintf(outW, "\t%s\n", member)
		}
	}

	return
}
