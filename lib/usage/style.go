// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package usage

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style decorates section headings and keywords in [Detailed] output.
// The zero value is plain text.
type Style struct {
	colored bool
	heading lipgloss.Style
	keyword lipgloss.Style
}

// Plain returns the undecorated style.
func Plain() Style { return Style{} }

// Colored returns a style for output written to w, using the 256-color
// ANSI palette regardless of what the environment advertises. Callers
// decide whether color is wanted (a --color flag, a terminal check);
// Colored does not second-guess them.
func Colored(w io.Writer) Style {
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)
	return Style{
		colored: true,
		heading: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		keyword: renderer.NewStyle().Foreground(lipgloss.Color("75")),
	}
}

// Heading renders a section title such as "Usage:".
func (s Style) Heading(text string) string {
	if !s.colored {
		return text
	}
	return s.heading.Render(text)
}

// Keyword renders a command keyword in a listing.
func (s Style) Keyword(text string) string {
	if !s.colored {
		return text
	}
	return s.keyword.Render(text)
}
