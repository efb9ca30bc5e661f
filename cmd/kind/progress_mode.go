package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// progressMode — значение флага --ui у `kind parse <dir>`.
type progressMode uint8

const (
	progressAuto progressMode = iota
	progressOn
	progressOff
)

func (m progressMode) String() string {
	switch m {
	case progressOn:
		return "on"
	case progressOff:
		return "off"
	}
	return "auto"
}

func parseProgressMode(value string) (progressMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return progressAuto, nil
	case "on":
		return progressOn, nil
	case "off":
		return progressOff, nil
	}
	return progressAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

func progressModeFlag(cmd *cobra.Command) (progressMode, error) {
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return progressAuto, fmt.Errorf("failed to get ui flag: %w", err)
	}
	return parseProgressMode(value)
}

// showProgress решает, рисовать ли прогресс разбора каталога. Вид пишется
// в stderr, поэтому auto смотрит на него; --quiet и TERM=dumb его гасят.
func showProgress(mode progressMode, quiet bool) bool {
	if quiet {
		return false
	}
	switch mode {
	case progressOn:
		return true
	case progressOff:
		return false
	}
	return isTerminal(os.Stderr) && os.Getenv("TERM") != "dumb"
}
