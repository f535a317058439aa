package cliui

import (
	"github.com/charmbracelet/glamour"
)

// DefaultWrap is the column RenderMarkdown wraps at when width is not positive.
const DefaultWrap = 80

// RenderMarkdown renders markdown for terminal display. On failure the input
// is returned unchanged along with the error.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWrap
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content, err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content, err
	}
	return rendered, nil
}
