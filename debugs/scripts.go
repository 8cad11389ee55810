package debugs

import (
	"context"
	"fmt"
	"time"

	"github.com/reusee/scpi/logs"
	"github.com/reusee/scpi/nets"
	"github.com/reusee/scpi/scpiconfigs"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

const contextKey = "context"

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

func threadContext(thread *starlark.Thread) context.Context {
	if ctx, ok := thread.Local(contextKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}

func newThread(ctx context.Context, name string, logger logs.Logger) *starlark.Thread {
	thread := &starlark.Thread{
		Name: name,
		Print: func(thread *starlark.Thread, msg string) {
			logger.InfoContext(ctx, msg, "thread", thread.Name)
		},
	}
	thread.SetLocal(contextKey, ctx)
	return thread
}

// Predeclared returns the builtins of scripts and the repl
type Predeclared func() (starlark.StringDict, error)

func (Module) Predeclared(
	getCatalog scpiconfigs.GetCatalog,
	instrument scpiconfigs.Instrument,
	connect nets.Connect,
) Predeclared {
	return func() (starlark.StringDict, error) {
		catalog, err := getCatalog()
		if err != nil {
			return nil, err
		}

		encode := starlark.NewBuiltin("encode", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("%s: missing command name", fn.Name())
			}
			name, ok := starlark.AsString(args[0])
			if !ok {
				return nil, fmt.Errorf("%s: command name must be string, got %s", fn.Name(), args[0].Type())
			}
			values := make([]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				v, err := fromStarlarkValue(arg)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", fn.Name(), err)
				}
				values = append(values, v)
			}
			message, err := catalog.Encode(name, values)
			if err != nil {
				return nil, err
			}
			return starlark.String(message), nil
		})

		decode := starlark.NewBuiltin("decode", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var message string
			if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &message); err != nil {
				return nil, err
			}
			match, ok := catalog.Decode(message)
			if !ok {
				return starlark.None, nil
			}
			values := make(map[string]any)
			for i, field := range match.Entry.Fields() {
				values[field.Label()] = match.Values[i]
			}
			return toStarlarkValue(map[string]any{
				"name":   match.Entry.Name,
				"values": values,
			}), nil
		})

		connectBuiltin := starlark.NewBuiltin("connect", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var addr string
			if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &addr); err != nil {
				return nil, err
			}
			session, err := connect(threadContext(thread), instrument(addr))
			if err != nil {
				return nil, err
			}
			return sessionValue(session), nil
		})

		return starlark.StringDict{
			"encode":  encode,
			"decode":  decode,
			"connect": connectBuiltin,
			"names":   toStarlarkValue(catalog.Names()),
			"sleep": toStarlarkValue(func(seconds float64) {
				time.Sleep(time.Duration(seconds * float64(time.Second)))
			}),
		}, nil
	}
}

func sessionValue(session *nets.Session) starlark.Value {
	lineMethod := func(name string, fn func(ctx context.Context, line string) (starlark.Value, error)) *starlark.Builtin {
		return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var line string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &line); err != nil {
				return nil, err
			}
			return fn(threadContext(thread), line)
		})
	}
	return starlarkstruct.FromStringDict(starlark.String("session"), starlark.StringDict{
		"addr": starlark.String(session.Addr),
		"send": lineMethod("send", func(ctx context.Context, line string) (starlark.Value, error) {
			return starlark.None, session.Send(ctx, line)
		}),
		"query": lineMethod("query", func(ctx context.Context, line string) (starlark.Value, error) {
			reply, err := session.Query(ctx, line)
			if err != nil {
				return nil, err
			}
			return starlark.String(reply), nil
		}),
		"close": starlark.NewBuiltin("close", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
				return nil, err
			}
			return starlark.None, session.Close()
		}),
	})
}

// RunScript executes a starlark file, src is read from filename when nil
type RunScript func(ctx context.Context, filename string, src any) (starlark.StringDict, error)

func (Module) RunScript(
	predeclared Predeclared,
	logger logs.Logger,
) RunScript {
	return func(ctx context.Context, filename string, src any) (starlark.StringDict, error) {
		builtins, err := predeclared()
		if err != nil {
			return nil, err
		}
		thread := newThread(ctx, filename, logger)
		globals, err := starlark.ExecFileOptions(fileOptions, thread, filename, src, builtins)
		if err != nil {
			return nil, logs.WrapSpan(ctx, err)
		}
		return globals, nil
	}
}
