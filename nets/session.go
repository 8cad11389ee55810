package nets

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/reusee/scpi/logs"
)

// DefaultPort is the raw socket port of LXI instruments
const DefaultPort = "5025"

var ErrClosed = errors.New("session closed")

// Session is a line oriented connection to one instrument.
// Operations are serialized.
type Session struct {
	Addr    string
	mu      sync.Mutex
	conn    net.Conn
	reader  *bufio.Reader
	span    logs.Span
	logger  logs.Logger
	timeout time.Duration
	closed  bool
}

type Connect func(ctx context.Context, addr string) (*Session, error)

func (Module) Connect(
	dialer Dialer,
	logger logs.Logger,
	newSpan logs.NewSpan,
	timeout Timeout,
) Connect {
	return func(ctx context.Context, addr string) (*Session, error) {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			addr = net.JoinHostPort(addr, DefaultPort)
		}
		ctx, span := newSpan(ctx, "", "addr", addr)

		dialCtx, cancel := withTimeout(ctx, time.Duration(timeout))
		defer cancel()
		conn, err := dialer.DialContext(dialCtx, "tcp", addr)
		if err != nil {
			return nil, logs.WrapSpan(ctx, fmt.Errorf("connect %s: %w", addr, err))
		}
		logger.InfoContext(ctx, "connected", "addr", addr)

		return &Session{
			Addr:    addr,
			conn:    conn,
			reader:  bufio.NewReader(conn),
			span:    span,
			logger:  logger,
			timeout: time.Duration(timeout),
		}, nil
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// begin applies the context to the connection, the returned func must be called after the operation
func (s *Session) begin(ctx context.Context) (context.Context, func(), error) {
	ctx = logs.WithSpan(ctx, s.span)
	if s.closed {
		return ctx, nil, logs.WrapSpan(ctx, ErrClosed)
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	deadline, _ := ctx.Deadline()
	if err := s.conn.SetDeadline(deadline); err != nil {
		cancel()
		return ctx, nil, logs.WrapSpan(ctx, err)
	}
	// unblock pending io on cancel
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetDeadline(time.Unix(1, 0))
	})
	return ctx, func() {
		stop()
		cancel()
	}, nil
}

func (s *Session) Send(ctx context.Context, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, end, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer end()
	return s.send(ctx, line)
}

func (s *Session) send(ctx context.Context, line string) error {
	if strings.ContainsAny(line, "\r\n") {
		return fmt.Errorf("line contains terminator: %q", line)
	}
	s.logger.DebugContext(ctx, "send", "line", line)
	if _, err := s.conn.Write([]byte(line + "\n")); err != nil {
		return logs.WrapSpan(ctx, fmt.Errorf("send %q: %w", line, err))
	}
	return nil
}

// Query sends line and reads one reply line
func (s *Session) Query(ctx context.Context, line string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, end, err := s.begin(ctx)
	if err != nil {
		return "", err
	}
	defer end()

	if err := s.send(ctx, line); err != nil {
		return "", err
	}
	reply, err := s.reader.ReadString('\n')
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = errors.Join(ctxErr, err)
		}
		return "", logs.WrapSpan(ctx, fmt.Errorf("query %q: %w", line, err))
	}
	reply = strings.TrimRight(reply, "\r\n")
	s.logger.DebugContext(ctx, "reply", "line", reply)
	return reply, nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}
