package cli

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// NewMarkdownRenderer returns a function that renders step descriptions
// using glamour, auto-detecting the terminal background.
func NewMarkdownRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// styles wraps the termenv profile used for inline feedback.
type styles struct {
	profile termenv.Profile
}

func newStyles() styles {
	return styles{profile: termenv.ColorProfile()}
}

func (s styles) errorText(msg string) string {
	return termenv.String(msg).Foreground(s.profile.Color("1")).String()
}

func (s styles) successText(msg string) string {
	return termenv.String(msg).Foreground(s.profile.Color("2")).String()
}

func (s styles) faintText(msg string) string {
	return termenv.String(msg).Faint().String()
}
