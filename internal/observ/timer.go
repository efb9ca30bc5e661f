package observ

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"kind/internal/trace"
)

// Phase is one timed stage of a command: load, lex, parse.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	// Files — сколько файлов прошло через фазу (для Add из воркеров).
	Files int
	Note  string
}

// Timer collects phase durations for `--timings`. Every phase opened with
// Begin is also a pass-scope trace span under the span carried by ctx.
// Safe for concurrent use: parallel workers report per-file time via Add.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	spans  []*trace.Span
	index  map[string]int

	origin trace.Origin
}

// NewTimer creates an empty Timer bound to the tracer in ctx.
func NewTimer(ctx context.Context) *Timer {
	return &Timer{
		phases: make([]Phase, 0, 4),
		index:  make(map[string]int, 4),
		origin: trace.OriginOf(ctx),
	}
}

// Begin starts a phase and returns its index.
func (t *Timer) Begin(name string) int {
	span := t.origin.Begin(trace.ScopePass, name)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	t.spans = append(t.spans, span)
	idx := len(t.phases) - 1
	t.index[name] = idx
	return idx
}

// Span returns the trace span of phase idx, so file spans can nest under it.
func (t *Timer) Span(idx int) *trace.Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.spans) {
		return nil
	}
	return t.spans[idx]
}

// End finishes a phase by its index. The wall-clock duration wins over
// anything accumulated with Add.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	if idx < 0 || idx >= len(t.phases) {
		t.mu.Unlock()
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
	span := t.spans[idx]
	files := p.Files
	t.mu.Unlock()

	if files > 0 {
		span.Count("files", files)
	}
	span.End(note)
}

// Add accumulates d into the named phase, creating it if needed.
// Parallel workers use it for per-file lex and parse time.
func (t *Timer) Add(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx, ok := t.index[name]
	if !ok {
		t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
		t.spans = append(t.spans, nil)
		idx = len(t.phases) - 1
		t.index[name] = idx
	}
	t.phases[idx].Dur += d
	t.phases[idx].Files++
}

// Summary returns a human-readable table of all phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms", p.Name, p.DurationMS)
		if p.Files > 0 {
			fmt.Fprintf(&sb, "  (%d files)", p.Files)
		}
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport — фаза в виде, пригодном для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Files      int     `json:"files,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// Report — все фазы и их сумма в миллисекундах.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the phases. Accumulated phases (Add) are per-file CPU
// time and may overlap wall-clock phases, so only phases opened with Begin
// count towards the total.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		if t.spans[i] != nil {
			total += phase.Dur
		}
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Files:      phase.Files,
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
