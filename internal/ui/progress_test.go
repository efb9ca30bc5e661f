package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"kind/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	model := NewProgressModel("parse demo", []string{"a.kind", "b.kind"}, events)
	m := model.(*progressModel)

	steps := []struct {
		ev       driver.Event
		statusA  string
		statusB  string
		wantPerc float64
	}{
		{driver.Event{File: "a.kind", Stage: driver.StageParse, Status: driver.StatusWorking}, "parsing", "queued", 0.25},
		{driver.Event{File: "a.kind", Stage: driver.StageParse, Status: driver.StatusDone, Elapsed: 3 * time.Millisecond}, "done", "queued", 0.5},
		{driver.Event{File: "b.kind", Stage: driver.StageParse, Status: driver.StatusError}, "done", "error", 1.0},
		{driver.Event{File: "unknown.kind", Stage: driver.StageParse, Status: driver.StatusDone}, "done", "error", 1.0},
	}
	for _, step := range steps {
		m.Update(eventMsg(step.ev))
		gotA, gotB := statusLabel(m.rows[0]), statusLabel(m.rows[1])
		if gotA != step.statusA || gotB != step.statusB {
			t.Fatalf("after %+v: statuses %q/%q, want %q/%q", step.ev, gotA, gotB, step.statusA, step.statusB)
		}
		if got := m.percent(); got != step.wantPerc {
			t.Fatalf("after %+v: percent %v, want %v", step.ev, got, step.wantPerc)
		}
	}

	view := m.View()
	for _, want := range []string{"parse demo", "a.kind", "b.kind", "error", "3.0ms", "2/2 files", "1 with errors"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}

	m.Update(doneMsg{})
	if !m.done || !strings.Contains(m.View(), "done: parse demo") {
		t.Fatalf("model must report completion:\n%s", m.View())
	}
}

func TestProgressModelRunLevelEvent(t *testing.T) {
	m := NewProgressModel("x", []string{"a.kind"}, nil).(*progressModel)
	m.Update(eventMsg{Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.stage != driver.StageParse || !strings.Contains(m.View(), "x (parsing)") {
		t.Fatalf("run stage not shown:\n%s", m.View())
	}
	if m.rows[0].status != driver.StatusQueued {
		t.Fatalf("run-level event must not touch files, got %v", m.rows[0].status)
	}
}

func TestProgressModelLimitsRows(t *testing.T) {
	files := make([]string, maxRows+5)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.kind", i)
	}
	m := NewProgressModel("big", files, nil).(*progressModel)
	m.Update(eventMsg{File: "f16.kind", Stage: driver.StageParse, Status: driver.StatusError})
	m.Update(eventMsg{File: "f15.kind", Stage: driver.StageParse, Status: driver.StatusWorking})

	rows, hidden := m.visible()
	if len(rows) != maxRows || hidden != 5 {
		t.Fatalf("visible = %d rows, %d hidden", len(rows), hidden)
	}
	last := rows[len(rows)-1]
	if last.path != "f16.kind" || rows[len(rows)-2].path != "f15.kind" {
		t.Errorf("active rows must stay visible and in path order, got %s, %s", rows[len(rows)-2].path, last.path)
	}
	if !strings.Contains(m.View(), "... 5 more") {
		t.Errorf("view must mention hidden rows:\n%s", m.View())
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Microsecond, "250µs"},
		{1500 * time.Microsecond, "1.5ms"},
		{2500 * time.Millisecond, "2.50s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.kind", 20, "short.kind"},
		{"a/very/long/path.kind", 10, "a/very/..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
		{"日本語ファイル.kind", 9, "日本語..."},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.width)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if tt.width > 0 && runewidth.StringWidth(got) > tt.width {
			t.Errorf("truncate(%q, %d) is %d columns wide", tt.in, tt.width, runewidth.StringWidth(got))
		}
	}
}
