package nets

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"sync"

	"github.com/reusee/scpi/logs"
	"github.com/reusee/scpi/syncs"
)

// Handler handles one received line, non-empty replies are sent back
type Handler func(ctx context.Context, line string) (reply string)

// Serve runs a line oriented instrument endpoint until ctx is done
type Serve func(ctx context.Context, listener net.Listener, handler Handler) error

func (Module) Serve(
	logger logs.Logger,
	newSpan logs.NewSpan,
	maxConns MaxConnections,
) Serve {
	return func(ctx context.Context, listener net.Listener, handler Handler) error {
		wg := new(sync.WaitGroup)
		defer wg.Wait()
		sem := syncs.NewSemaphore(int(maxConns))

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		stop := context.AfterFunc(ctx, func() {
			_ = listener.Close()
		})
		defer stop()

		for {
			conn, err := listener.Accept()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				return err
			}

			if !sem.TryAcquire() {
				logger.WarnContext(ctx, "too many connections", "remote", conn.RemoteAddr().String())
				_ = conn.Close()
				continue
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sem.Release()
				connCtx, _ := newSpan(ctx, "", "remote", conn.RemoteAddr().String())
				closeConn := context.AfterFunc(connCtx, func() {
					_ = conn.Close()
				})
				defer closeConn()
				defer conn.Close()

				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					line := strings.TrimRight(scanner.Text(), "\r")
					reply := handler(connCtx, line)
					if reply == "" {
						continue
					}
					if _, err := conn.Write([]byte(reply + "\n")); err != nil {
						logger.WarnContext(connCtx, "write reply", "error", err)
						return
					}
				}
				if err := scanner.Err(); err != nil && connCtx.Err() == nil {
					logger.WarnContext(connCtx, "read", "error", err)
				}
			}()
		}
	}
}
