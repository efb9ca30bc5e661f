package trace

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func nextSeq() uint64 { return seqCounter.Add(1) }

// Origin is where new spans attach: the tracer, the enclosing span and
// the lane of the file being processed. Parsers and timers capture it
// once from their context instead of holding the context itself.
type Origin struct {
	Tracer Tracer
	Parent uint64
	Lane   uint32
}

// OriginOf collects tracer, parent span and lane from ctx.
func OriginOf(ctx context.Context) Origin {
	return Origin{Tracer: FromContext(ctx), Parent: ParentSpan(ctx), Lane: LaneOf(ctx)}
}

// Emits reports whether spans of scope would reach the tracer.
func (o Origin) Emits(scope Scope) bool {
	return o.Tracer != nil && o.Tracer.Enabled() && o.Tracer.Level().ShouldEmit(scope)
}

// Begin opens a span under o.
func (o Origin) Begin(scope Scope, name string) *Span {
	if !o.Emits(scope) {
		return &Span{}
	}
	s := &Span{
		tracer:  o.Tracer,
		id:      spanCounter.Add(1),
		started: time.Now(),
		head: Event{
			Scope:    scope,
			ParentID: o.Parent,
			Lane:     o.Lane,
			Name:     name,
		},
	}
	s.emit(KindSpanBegin, s.started, "", nil)
	return s
}

// Span is one traced region: a command, a pass, a file or a declaration.
// The zero Span is inert.
type Span struct {
	tracer  Tracer
	id      uint64
	started time.Time
	head    Event // поля, общие для begin и end
	extra   map[string]string
}

// Begin opens a root-lane span; parent is 0 for a root span.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	return Origin{Tracer: t, Parent: parent}.Begin(scope, name)
}

// Open opens a span under the parent and lane recorded in ctx.
func Open(ctx context.Context, scope Scope, name string) *Span {
	return OriginOf(ctx).Begin(scope, name)
}

// Child opens a span nested in s, on the same lane.
func (s *Span) Child(scope Scope, name string) *Span {
	if !s.live() {
		return &Span{}
	}
	return Origin{Tracer: s.tracer, Parent: s.id, Lane: s.head.Lane}.Begin(scope, name)
}

func (s *Span) live() bool {
	return s != nil && s.id != 0 && s.tracer.Enabled()
}

func (s *Span) emit(kind Kind, at time.Time, detail string, extra map[string]string) {
	ev := s.head
	ev.Time = at
	ev.Seq = nextSeq()
	ev.Kind = kind
	ev.SpanID = s.id
	ev.Detail = detail
	ev.Extra = extra
	s.tracer.Emit(&ev)
}

// End emits the end event with an outcome such as "ok", "error" or the
// kind of the parsed declaration, and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	s.emit(KindSpanEnd, now, detail, s.extra)
	return now.Sub(s.started)
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// Count attaches a counter (tokens, decls, files) to the end event.
func (s *Span) Count(key string, n int) *Span {
	if !s.live() {
		return s
	}
	return s.WithExtra(key, strconv.Itoa(n))
}

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
