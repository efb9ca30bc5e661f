package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"kind/internal/diagfmt"
	"kind/internal/prof"
	"kind/internal/trace"
)

// settings — итоговые настройки команды: флаги поверх kind.toml поверх
// значений по умолчанию.
type settings struct {
	color          string
	useColor       bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	jobs           int
	extensions     []string
	format         string
	diagnostics    string
	pathMode       diagfmt.PathMode
	traceOutput    string
	traceLevel     trace.Level
	traceMode      trace.StorageMode
	traceFormat    trace.Format
	profiles       prof.Options

	manifest *projectManifest
}

// resolveSettings читает флаги cmd (уже разобранные) и kind.toml.
func resolveSettings(cmd *cobra.Command) (settings, error) {
	var s settings
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return s, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		s.manifest, err = loadProjectManifestFile(configPath)
	} else {
		s.manifest, err = loadProjectManifest(".")
	}
	if err != nil {
		return s, err
	}
	cfg := projectConfig{}
	if s.manifest != nil {
		cfg = s.manifest.Config
	}

	// Флаг побеждает, если задан явно; иначе значение из файла, если оно там есть.
	pickString := func(flag string, key []string, fromFile string) (string, error) {
		v, err := flags.GetString(flag)
		if err != nil {
			return "", fmt.Errorf("failed to get %s flag: %w", flag, err)
		}
		if !flags.Changed(flag) && s.manifest.defined(key...) {
			return fromFile, nil
		}
		return v, nil
	}
	pickInt := func(flag string, key []string, fromFile int) (int, error) {
		if flags.Lookup(flag) == nil {
			return fromFile, nil
		}
		v, err := flags.GetInt(flag)
		if err != nil {
			return 0, fmt.Errorf("failed to get %s flag: %w", flag, err)
		}
		if !flags.Changed(flag) && s.manifest.defined(key...) {
			return fromFile, nil
		}
		return v, nil
	}

	if s.color, err = pickString("color", []string{"output", "color"}, cfg.Output.Color); err != nil {
		return s, err
	}
	if s.diagnostics, err = pickString("diagnostics", []string{"output", "diagnostics"}, cfg.Output.Diagnostics); err != nil {
		return s, err
	}
	pathMode, err := pickString("path-mode", []string{"output", "path_mode"}, cfg.Output.PathMode)
	if err != nil {
		return s, err
	}
	traceLevel, err := pickString("trace-level", []string{"trace", "level"}, cfg.Trace.Level)
	if err != nil {
		return s, err
	}
	traceMode, err := pickString("trace-mode", []string{"trace", "mode"}, cfg.Trace.Mode)
	if err != nil {
		return s, err
	}
	traceFormat, err := pickString("trace-format", []string{"trace", "format"}, cfg.Trace.Format)
	if err != nil {
		return s, err
	}
	if s.traceOutput, err = pickString("trace", []string{"trace", "output"}, s.manifest.relative(cfg.Trace.Output)); err != nil {
		return s, err
	}
	if s.maxDiagnostics, err = pickInt("max-diagnostics", []string{"parse", "max_diagnostics"}, cfg.Parse.MaxDiagnostics); err != nil {
		return s, err
	}
	if s.jobs, err = pickInt("jobs", []string{"parse", "jobs"}, cfg.Parse.Jobs); err != nil {
		return s, err
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	s.extensions = cfg.Parse.Extensions
	for flag, dst := range map[string]*string{
		"cpu-profile":   &s.profiles.CPUProfile,
		"mem-profile":   &s.profiles.MemProfile,
		"runtime-trace": &s.profiles.RuntimeTrace,
	} {
		if *dst, err = flags.GetString(flag); err != nil {
			return s, fmt.Errorf("failed to get %s flag: %w", flag, err)
		}
	}

	if flags.Lookup("format") != nil {
		if s.format, err = pickString("format", []string{"output", "format"}, cfg.Output.Format); err != nil {
			return s, err
		}
		s.format = strings.ToLower(strings.TrimSpace(s.format))
	}

	// Проверка значений
	switch s.color {
	case "auto", "on", "off":
	default:
		return s, fmt.Errorf("invalid color mode %q (expected auto|on|off)", s.color)
	}
	switch s.diagnostics {
	case "pretty", "short", "json":
	default:
		return s, fmt.Errorf("invalid diagnostics format %q (expected pretty|short|json)", s.diagnostics)
	}
	if s.maxDiagnostics < 0 {
		return s, fmt.Errorf("max-diagnostics must not be negative, got %d", s.maxDiagnostics)
	}
	if s.pathMode, err = diagfmt.ParsePathMode(pathMode); err != nil {
		return s, err
	}
	if s.traceLevel, err = trace.ParseLevel(traceLevel); err != nil {
		return s, err
	}
	if s.traceMode, err = trace.ParseMode(traceMode); err != nil {
		return s, err
	}
	if s.traceFormat, err = trace.ParseFormat(traceFormat); err != nil {
		return s, err
	}

	s.useColor = colorEnabled(s.color, os.Stderr)
	return s, nil
}

// relative делает относительный путь из kind.toml относительным к его директории.
func (m *projectManifest) relative(path string) string {
	if m == nil || path == "" || path == "-" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.Root, path)
}

// checkFormat проверяет формат вывода для конкретной команды.
func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (expected %s)", format, strings.Join(allowed, "|"))
}

func colorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(f)
}
