package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilearcade/internal/core"
)

// colorStyles maps every core.Color to a lipgloss style.
var colorStyles = func() [256]lipgloss.Style {
	var styles [256]lipgloss.Style
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c := 1; c < len(styles); c++ {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(c)))
	}
	return styles
}()

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, span := range s.Runs(y) {
			sb.WriteString(colorStyles[span.Color].Render(span.Text))
		}
	}
	return sb.String()
}

