// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles colorizes the rendered report for terminal output.
//
// When disabled, Render returns the plain text unchanged, so piped output
// and tests always see the exact diagnostic lines.
type Styles struct {
	header  lipgloss.Style
	failure lipgloss.Style
	success lipgloss.Style
	enabled bool
}

// NewStyles creates the report styles.
func NewStyles(enabled bool) Styles {
	return Styles{
		header:  lipgloss.NewStyle().Bold(true),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		enabled: enabled,
	}
}

// ColorEnabled reports whether colored output should be on by default:
// stdout is a terminal and NO_COLOR is unset.
func ColorEnabled() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Render returns the report text, colorized line by line when enabled.
//
// A clean report renders as the success sentinel.
func (s Styles) Render(rep *Report) string {
	if rep.IsClean() {
		if s.enabled {
			return s.success.Render(SuccessSentinel) + "\n"
		}
		return SuccessSentinel + "\n"
	}

	text := rep.Text()
	if !s.enabled {
		return text
	}

	var b strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		content := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(content, "File: "):
			b.WriteString(s.header.Render(content))
		case strings.HasPrefix(content, "could not process "):
			b.WriteString(s.failure.Render(content))
		default:
			b.WriteString(content)
		}
		b.WriteString("\n")
	}
	return b.String()
}
