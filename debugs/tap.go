package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/scpi/logs"
	"go.starlark.net/repl"
)

// Tap starts an interactive session with the script builtins and globals
type Tap func(ctx context.Context, what string, globals map[string]any) error

func (Module) Tap(
	logger logs.Logger,
	predeclared Predeclared,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) error {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings, err := predeclared()
		if err != nil {
			return err
		}
		mappings = maps.Clone(mappings)
		for name, value := range globals {
			mappings[name] = toStarlarkValue(value)
		}

		thread := newThread(ctx, "repl", logger)
		repl.REPLOptions(fileOptions, thread, mappings)
		return nil
	}
}
