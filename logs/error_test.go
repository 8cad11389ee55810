package logs

import (
	"context"
	"errors"
	"io"
	"testing"
)

func TestWrapSpan(t *testing.T) {
	if err := WrapSpan(context.Background(), io.EOF); err != io.EOF {
		t.Fatalf("got %v", err)
	}
	if err := WrapSpan(context.Background(), nil); err != nil {
		t.Fatalf("got %v", err)
	}

	ctx := context.WithValue(context.Background(), SpanKey, Span("foo"))
	err := WrapSpan(ctx, io.EOF)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("got %v", err)
	}
	var spanErr *SpanError
	if !errors.As(err, &spanErr) || spanErr.Span != "foo" {
		t.Fatalf("got %v", err)
	}
	if str := err.Error(); str != "EOF (span: foo)" {
		t.Fatalf("got %s", str)
	}

	// wrapping again in the same span is a no-op
	if again := WrapSpan(ctx, err); again != err {
		t.Fatalf("got %v", again)
	}
	// an outer span wraps the inner one
	outer := WrapSpan(context.WithValue(ctx, SpanKey, Span("bar")), err)
	if str := outer.Error(); str != "EOF (span: foo) (span: bar)" {
		t.Fatalf("got %s", str)
	}
}
