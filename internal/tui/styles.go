package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/example/go-tokviz/internal/palette"
	"github.com/example/go-tokviz/internal/render"
	"github.com/example/go-tokviz/internal/viewmode"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#A7C7E7")).
			Padding(0, 1).
			Bold(true)

	engineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")).
			Italic(true)

	// Pieces keep tabs and spaces as typed.
	pieceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			TabWidth(lipgloss.NoTabConversion)
)

// Format draws out for the terminal. Identifier lists are plain text;
// each piece gets its palette colour as background. A width above zero
// hard-wraps the result.
func Format(out render.Output, width int) string {
	var s string

	switch out.Mode {
	case viewmode.Identifiers:
		s = out.Text
	default:
		var b strings.Builder
		for _, blk := range out.Blocks {
			b.WriteString(renderBlock(blk.Text, blk.Color))
		}

		s = b.String()
	}

	if width > 0 {
		s = ansi.Hardwrap(s, width, true)
	}

	return s
}

// renderBlock colours each line of text separately so a piece spanning a
// newline still breaks the line instead of becoming a padded box.
func renderBlock(text string, c palette.HSL) string {
	style := pieceStyle.Background(lipgloss.Color(c.Hex()))
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}

	return strings.Join(lines, "\n")
}
