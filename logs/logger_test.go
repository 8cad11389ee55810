package logs

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestHandler(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Info("test", "hello", "world!")
		if strings.Contains(buf.String(), "span=") {
			t.Fatalf("got %s", buf.String())
		}

		ctx := context.WithValue(context.Background(), SpanKey, Span("foo"))
		logger.InfoContext(ctx, "test")
		if !strings.Contains(buf.String(), "span=foo") {
			t.Fatalf("got %s", buf.String())
		}

		// derived loggers keep tagging
		buf.Reset()
		logger.With("addr", "10.0.0.1:5025").WithGroup("reply").InfoContext(ctx, "query", "bytes", 12)
		str := buf.String()
		if !strings.Contains(str, "span=foo") ||
			!strings.Contains(str, "addr=10.0.0.1:5025") ||
			!strings.Contains(str, "reply.bytes=12") {
			t.Fatalf("got %s", str)
		}
	})
}

func TestJournalKey(t *testing.T) {
	if str := toJournalKey("span.addr-1"); str != "SPAN_ADDR_1" {
		t.Fatalf("got %s", str)
	}
}
