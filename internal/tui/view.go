package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/matrixrain/internal/registry"
)

const upperHalf = "▀"

func (m Model) View() string {
	if m.showHelp {
		return m.viewHelp()
	}
	cells, fps, glyph := m.display.Snapshot()

	var b strings.Builder
	if cells == nil || cells.Bounds().Dx() != m.cols || cells.Bounds().Dy() != m.rows*2 {
		for i := 0; i < m.rows; i++ {
			b.WriteString("\n")
		}
	} else {
		writeCells(&b, cells)
	}
	b.WriteString(m.statusLine(fps, glyph))
	return b.String()
}

// writeCells draws two pixel rows per line with upper half blocks: the top
// pixel is the foreground, the bottom one the background. Runs of equal cells
// share one style.
func writeCells(b *strings.Builder, cells *image.RGBA) {
	w, h := cells.Bounds().Dx(), cells.Bounds().Dy()/2
	for y := 0; y < h; y++ {
		x := 0
		for x < w {
			top, bot := coarse(cells.RGBAAt(x, 2*y)), coarse(cells.RGBAAt(x, 2*y+1))
			n := 1
			for x+n < w && coarse(cells.RGBAAt(x+n, 2*y)) == top && coarse(cells.RGBAAt(x+n, 2*y+1)) == bot {
				n++
			}
			b.WriteString(cellRun(top, bot, n))
			x += n
		}
		b.WriteString("\n")
	}
}

func cellRun(top, bot color.RGBA, n int) string {
	black := color.RGBA{A: 0xff}
	if top == black && bot == black {
		return strings.Repeat(" ", n)
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(registry.Hex(top)))
	if bot != black {
		style = style.Background(lipgloss.Color(registry.Hex(bot)))
	}
	return style.Render(strings.Repeat(upperHalf, n))
}

// coarse drops the low bits of each channel so neighbouring cells merge.
func coarse(c color.RGBA) color.RGBA {
	const mask = 0xf8
	return color.RGBA{R: c.R & mask, G: c.G & mask, B: c.B & mask, A: 0xff}
}

func (m Model) statusLine(fps string, glyph color.RGBA) string {
	s := m.engine.Snapshot()
	quality := s.Quality.String()
	if s.Quality == registry.Auto {
		quality = fmt.Sprintf("auto(%s)", s.Active)
	}

	parts := []string{
		fpsStyle.Render(fps),
		swatch(glyph),
		labelStyle.Render("quality ") + valueStyle.Render(quality),
		labelStyle.Render("theme ") + valueStyle.Render(s.Theme.Name),
		labelStyle.Render("speed ") + valueStyle.Render(s.Speed.String()),
		sparkline(m.engine.FPSValues(), 16),
	}
	if m.recorder != nil {
		parts = append(parts, recordingStyle.Render(fmt.Sprintf("REC %d", m.recorder.Frames())))
	}
	if m.message != "" {
		parts = append(parts, keyHint.Render(m.message))
	}
	parts = append(parts, keyHint.Render("? help"))

	line := strings.Join(parts, "  ")
	if m.cols > 0 {
		return statusBar.MaxWidth(m.cols).Render(line)
	}
	return statusBar.Render(line)
}

func (m Model) viewHelp() string {
	keys := [][2]string{
		{"+ / =", "faster"},
		{"-", "slower"},
		{"1 2 3", "high / medium / low quality"},
		{"4", "auto quality"},
		{"t / T", "next / previous theme"},
		{"g", "start / stop GIF recording"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(helpTitle.Render("KEYBOARD SHORTCUTS") + "\n\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%s  %s\n", valueStyle.Render(fmt.Sprintf("%-6s", k[0])), labelStyle.Render(k[1])))
	}
	b.WriteString("\n" + labelStyle.Render("themes: "+strings.Join(registry.ThemeNames(), " ")))
	return helpPanel.Render(b.String())
}
