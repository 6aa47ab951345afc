package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/matrixrain/internal/registry"
)

var (
	statusBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Background(lipgloss.Color("#0a0a0a"))

	fpsStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666688"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	recordingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444")).
			Blink(true)

	keyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	helpPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(1, 2)

	helpTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	sparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	sparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	sparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// swatch renders the colour indicator.
func swatch(c color.RGBA) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(registry.Hex(c))).Render("██")
}

// sparkline renders recent FPS readings against the auto-quality bands:
// red below 30, yellow below 55, green above.
func sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	hi := values[0]
	for _, v := range values {
		hi = max(hi, v)
	}
	if hi <= 0 {
		hi = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / hi * float64(len(chars)-1))
		idx = min(len(chars)-1, max(0, idx))
		ch := string(chars[idx])
		switch {
		case v >= 55:
			b.WriteString(sparkHigh.Render(ch))
		case v >= 30:
			b.WriteString(sparkMid.Render(ch))
		default:
			b.WriteString(sparkLow.Render(ch))
		}
	}
	return b.String()
}
