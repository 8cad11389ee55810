package main

import (
	"context"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/scpi/cmds"
	"github.com/reusee/scpi/logs"
	"github.com/reusee/scpi/modes"
)

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		os.Stderr.WriteString(err.Error())
		os.Stderr.WriteString("\n")
		os.Exit(2)
	}
	if action == nil {
		cmds.GlobalExecutor.PrintUsage()
		os.Exit(2)
	}

	ctx := context.Background()
	scope := dscope.New(
		new(Module),
		modes.FromFlags(),
	)

	if err := action(ctx, scope, os.Stdout); err != nil {
		scope.Call(func(
			logger logs.Logger,
		) {
			logger.ErrorContext(ctx, "failed", "error", wrap(err))
		})
		os.Exit(1)
	}
}
