package trace

import "context"

type ctxKey struct{}

// FromContext extracts the Tracer from context, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

type spanKey struct{}

// ParentSpan returns the ID of the span stored by WithParent, or 0.
func ParentSpan(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	if id, ok := ctx.Value(spanKey{}).(uint64); ok {
		return id
	}
	return 0
}

// WithParent records span as the parent for spans opened further down.
func WithParent(ctx context.Context, span *Span) context.Context {
	if span == nil || span.ID() == 0 {
		return ctx
	}
	return context.WithValue(ctx, spanKey{}, span.ID())
}

type laneKey struct{}

// WithLane tags ctx with the 1-based ordinal of the file a batch worker
// is processing, so events of one file can be grepped together.
func WithLane(ctx context.Context, lane uint32) context.Context {
	return context.WithValue(ctx, laneKey{}, lane)
}

// LaneOf returns the lane stored by WithLane, or 0.
func LaneOf(ctx context.Context) uint32 {
	if ctx == nil {
		return 0
	}
	lane, _ := ctx.Value(laneKey{}).(uint32)
	return lane
}
