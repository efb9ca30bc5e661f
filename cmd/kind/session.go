package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kind/internal/observ"
	"kind/internal/prof"
	"kind/internal/trace"
)

// annotationNoConfig помечает команды, которым не нужен kind.toml.
const annotationNoConfig = "kind/no-config"

// session — состояние одного запуска CLI между PersistentPreRunE и main.
type session struct {
	settings settings
	tracer   trace.Tracer
	span     *trace.Span
	timer    *observ.Timer
	profiles *prof.Session
}

var current *session

// prepareCommand resolves settings, starts profilers, sets up colour and
// tracing, and opens the driver span every pass span of the command nests
// under.
func prepareCommand(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[annotationNoConfig] == "true" {
		mode, err := cmd.Flags().GetString("color")
		if err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
		color.NoColor = !colorEnabled(mode, os.Stdout)
		return nil
	}

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	color.NoColor = !s.useColor

	profiles, err := prof.Start(s.profiles)
	if err != nil {
		return err
	}
	tracer, err := trace.New(trace.Config{
		Level:      s.traceLevel,
		Mode:       s.traceMode,
		Format:     s.traceFormat,
		OutputPath: s.traceOutput,
	})
	if err != nil {
		if stopErr := profiles.Stop(); stopErr != nil {
			fmt.Fprintf(os.Stderr, "profile: %v\n", stopErr)
		}
		return fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	span := trace.Begin(tracer, trace.ScopeDriver, "kind "+cmd.Name(), 0)
	ctx = trace.WithParent(ctx, span)
	cmd.SetContext(ctx)

	current = &session{
		settings: s,
		tracer:   tracer,
		span:     span,
		timer:    observ.NewTimer(ctx),
		profiles: profiles,
	}
	return nil
}

// finishSession closes the driver span, the profilers and the tracer. On
// failure the ring buffer (trace level "error") is dumped to stderr.
func finishSession(failed bool) {
	s := current
	if s == nil {
		return
	}
	current = nil

	outcome := "ok"
	if failed {
		outcome = "error"
	}
	s.span.End(outcome)

	if failed {
		if ring := trace.RingOf(s.tracer); ring != nil {
			fmt.Fprintln(os.Stderr, "trace (last events):")
			if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
				fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
			}
		}
	}
	if err := s.profiles.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", err)
	}
	if err := s.tracer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "trace: flush error: %v\n", err)
	}
	if err := s.tracer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "trace: close error: %v\n", err)
	}
}
