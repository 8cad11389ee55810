package logs

import "context"

// Span identifies a unit of work, usually one instrument session
type Span string

type spanKey struct{}

var SpanKey spanKey

func SpanOf(ctx context.Context) (Span, bool) {
	span, ok := ctx.Value(SpanKey).(Span)
	return span, ok
}

func WithSpan(ctx context.Context, span Span) context.Context {
	return context.WithValue(ctx, SpanKey, span)
}
