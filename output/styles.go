// Package output provides styling helpers for terminal output.
package output

import (
	"io"

	"github.com/muesli/termenv"
)

// Styles renders report and status text with terminal colors. On writers
// that are not terminals every helper returns the text unchanged.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a new Styles instance for the given writer.
func NewStyles(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w),
	}
}

// NewStylesWithProfile creates Styles with an explicit color profile.
func NewStylesWithProfile(w io.Writer, profile termenv.Profile) *Styles {
	return &Styles{
		output: termenv.NewOutput(w, termenv.WithProfile(profile)),
	}
}

func (s *Styles) color(text, color string) termenv.Style {
	return s.output.String(text).Foreground(s.output.Color(color))
}

// Success returns a styled success string (green + bold).
func (s *Styles) Success(text string) string {
	return s.color(text, "2").Bold().String()
}

// Error returns a styled error string (red + bold).
func (s *Styles) Error(text string) string {
	return s.color(text, "1").Bold().String()
}

// FilePath returns a styled file path (cyan).
func (s *Styles) FilePath(text string) string {
	return s.color(text, "6").String()
}

// Symbol returns a styled asset symbol (yellow).
func (s *Styles) Symbol(text string) string {
	return s.color(text, "3").String()
}

// Amount returns a styled quantity or price (magenta).
func (s *Styles) Amount(text string) string {
	return s.color(text, "5").String()
}

// Gain returns a realized result, green for gains and red for losses.
func (s *Styles) Gain(text string, loss bool) string {
	if loss {
		return s.color(text, "1").String()
	}
	return s.color(text, "2").String()
}

// Keyword returns a styled keyword (bold).
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).Bold().String()
}

// Dim returns dimmed text (for secondary information).
func (s *Styles) Dim(text string) string {
	return s.output.String(text).Faint().String()
}

// Warning returns a styled warning (yellow + bold).
func (s *Styles) Warning(text string) string {
	return s.color(text, "3").Bold().String()
}

// Timing returns a timing string, red when the operation was slow.
func (s *Styles) Timing(text string, isSlowOperation bool) string {
	if isSlowOperation {
		return s.color(text, "1").String()
	}
	return s.Dim(text)
}

// Output returns the underlying termenv Output for advanced usage.
func (s *Styles) Output() *termenv.Output {
	return s.output
}
