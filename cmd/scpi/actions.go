package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"

	"github.com/reusee/dscope"
	"github.com/reusee/scpi/cmds"
	"github.com/reusee/scpi/debugs"
	"github.com/reusee/scpi/logs"
	"github.com/reusee/scpi/nets"
	"github.com/reusee/scpi/scpiconfigs"
)

var ErrNoMatch = errors.New("no matching command")

type Action func(ctx context.Context, scope dscope.Scope, out io.Writer) error

var (
	action    Action
	arguments = cmds.Collect[string]("-a")
)

func setAction(a Action) {
	if action != nil {
		panic(fmt.Errorf("more than one action"))
	}
	action = a
}

func init() {
	cmds.Define("names", cmds.Func(func() {
		setAction(namesAction)
	}).Desc("list catalog commands"))

	cmds.Define("encode", cmds.Func(func(name string) {
		setAction(encodeAction(name))
	}).Arg("NAME").Desc("encode a catalog command, one -a per parameter"))

	cmds.Define("decode", cmds.Func(func(message string) {
		setAction(decodeAction(message))
	}).Arg("MESSAGE").Desc("decode a message with the catalog"))

	cmds.Define("send", cmds.Func(func(addr string, message string) {
		setAction(sendAction(addr, message, false))
	}).Arg("ADDR", "MESSAGE").Desc("send a message to an instrument"))

	cmds.Define("query", cmds.Func(func(addr string, message string) {
		setAction(sendAction(addr, message, true))
	}).Arg("ADDR", "MESSAGE").Desc("send a message to an instrument and print the reply"))

	cmds.Define("run", cmds.Func(func(path string) {
		setAction(runScriptAction(path))
	}).Arg("SCRIPT").Desc("run a starlark script"))

	cmds.Define("repl", cmds.Func(func() {
		setAction(replAction)
	}).Desc("interactive starlark session"))

	cmds.Define("serve", cmds.Func(func(addr string) {
		setAction(serveAction(addr))
	}).Arg("ADDR").Desc("simulate an instrument accepting catalog commands"))
}

func namesAction(ctx context.Context, scope dscope.Scope, out io.Writer) (err error) {
	scope.Call(func(
		getCatalog scpiconfigs.GetCatalog,
	) {
		catalog, e := getCatalog()
		if e != nil {
			err = e
			return
		}
		for _, name := range catalog.Names() {
			entry, _ := catalog.Lookup(name)
			fmt.Fprintf(out, "%s\t%s\n", name, entry.Pattern())
		}
	})
	return
}

func encodeAction(name string) Action {
	return func(ctx context.Context, scope dscope.Scope, out io.Writer) (err error) {
		scope.Call(func(
			getCatalog scpiconfigs.GetCatalog,
		) {
			catalog, e := getCatalog()
			if e != nil {
				err = e
				return
			}
			message, e := catalog.EncodeArgs(name, *arguments)
			if e != nil {
				err = e
				return
			}
			fmt.Fprintln(out, message)
		})
		return
	}
}

func decodeAction(message string) Action {
	return func(ctx context.Context, scope dscope.Scope, out io.Writer) (err error) {
		scope.Call(func(
			getCatalog scpiconfigs.GetCatalog,
		) {
			catalog, e := getCatalog()
			if e != nil {
				err = e
				return
			}
			match, ok := catalog.Decode(message)
			if !ok {
				err = fmt.Errorf("%w: %q", ErrNoMatch, message)
				return
			}
			fmt.Fprintln(out, match.String())
		})
		return
	}
}

func sendAction(addr string, message string, isQuery bool) Action {
	return func(ctx context.Context, scope dscope.Scope, out io.Writer) (err error) {
		scope.Call(func(
			connect nets.Connect,
			instrument scpiconfigs.Instrument,
		) {
			session, e := connect(ctx, instrument(addr))
			if e != nil {
				err = e
				return
			}
			defer session.Close()
			if !isQuery {
				err = session.Send(ctx, message)
				return
			}
			reply, e := session.Query(ctx, message)
			if e != nil {
				err = e
				return
			}
			fmt.Fprintln(out, reply)
		})
		return
	}
}

func runScriptAction(path string) Action {
	return func(ctx context.Context, scope dscope.Scope, out io.Writer) (err error) {
		scope.Call(func(
			run debugs.RunScript,
		) {
			_, err = run(ctx, path, nil)
		})
		return
	}
}

func replAction(ctx context.Context, scope dscope.Scope, out io.Writer) (err error) {
	scope.Call(func(
		tap debugs.Tap,
	) {
		err = tap(ctx, "repl", nil)
	})
	return
}

func serveAction(addr string) Action {
	return func(ctx context.Context, scope dscope.Scope, out io.Writer) (err error) {
		ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
		defer cancel()
		scope.Call(func(
			getCatalog scpiconfigs.GetCatalog,
			serve nets.Serve,
			logger logs.Logger,
		) {
			catalog, e := getCatalog()
			if e != nil {
				err = e
				return
			}
			listener, e := net.Listen("tcp", addr)
			if e != nil {
				err = e
				return
			}
			logger.InfoContext(ctx, "serve", "addr", listener.Addr().String())
			err = serve(ctx, listener, func(ctx context.Context, line string) string {
				match, ok := catalog.Decode(line)
				if !ok {
					logger.WarnContext(ctx, "unknown command", "line", line)
					return ""
				}
				logger.InfoContext(ctx, "command", "match", match.String())
				// queries are answered with the decoded form
				if strings.Contains(line, "?") {
					return match.String()
				}
				return ""
			})
		})
		return
	}
}
