package main

import (
	"os"
	"strconv"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	predictTreeFiles      = predictAll(predict.Files("*.json"), predict.Files("*.yaml"), predict.Files("*.yml"))
	predictWhitelistFiles = predictTreeFiles

	completer = CreateCompleter(func(c *Completer) *complete.Command {
		whitelistFlag := map[string]complete.Predictor{
			WHITELIST_FLAG: complete.PredictFunc(c.predictWhitelistAfterFlag),
		}

		return &complete.Command{
			Sub: map[string]*complete.Command{
				COMPILE_SUBCMD: {
					Flags: map[string]complete.Predictor{
						WHITELIST_FLAG: complete.PredictFunc(c.predictWhitelistAfterFlag),
						JSON_FLAG:      predict.Nothing,
						PARALLEL_FLAG:  predict.Set{"1", "2", "4", "8"},
					},
					Args: predictTreeFiles,
				},
				CHECK_SUBCMD: {
					Flags: map[string]complete.Predictor{
						WHITELIST_FLAG: complete.PredictFunc(c.predictWhitelistAfterFlag),
						PARALLEL_FLAG:  predict.Set{"1", "2", "4", "8"},
					},
					Args: predictTreeFiles,
				},
				DESCRIBE_SUBCMD: {
					Flags: whitelistFlag,
				},
				WATCH_SUBCMD: {
					Flags: whitelistFlag,
					Args:  predictTreeFiles,
				},
				HELP_SUBCMD: {
					Args: predict.Set(SUBCOMMANDS),
				},
				INSTALL_COMPLETIONS_SUBCMD:   {},
				UNINSTALL_COMPLETIONS_SUBCMD: {},
			},
		}
	})
)

type Completer struct {
	*complete.Command
	currentCompLine  string
	currentCompPoint int //-1 if not retrieved
}

func CreateCompleter(create func(c *Completer) *complete.Command) *Completer {
	c := &Completer{}
	c.Command = create(c)
	return c
}

func (c *Completer) Complete(name string) {
	c.currentCompLine = os.Getenv("COMP_LINE")
	c.currentCompPoint, _ = strconv.Atoi(os.Getenv("COMP_POINT")) //ignore error because .CommandComplete will also check the value

	if c.currentCompPoint > len(c.currentCompLine) {
		c.currentCompPoint = len(c.currentCompLine)
	}

	c.Command.Complete(name)
}

func (c *Completer) beforeCursorPoint() string {
	if c.currentCompPoint < 0 {
		return ""
	}
	return c.currentCompLine[:c.currentCompPoint]
}

func (c *Completer) predictWhitelistAfterFlag(prefix string) (results []string) {
	//not invoked by a shell
	if c.beforeCursorPoint() == "" {
		return
	}
	return predictWhitelistFiles.Predict(prefix)
}

func predictAll(predictors ...complete.Predictor) complete.PredictFunc {
	return func(prefix string) (results []string) {
		for _, p := range predictors {
			results = append(results, p.Predict(prefix)...)
		}
		return
	}
}
