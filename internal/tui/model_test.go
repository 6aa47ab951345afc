package tui

import (
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/matrixrain/internal/engine"
	"github.com/san-kum/matrixrain/internal/registry"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return New(engine.Options{Seed: 1, Speed: 50 * time.Millisecond}, Options{RecordDir: t.TempDir()})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWindowSize_ResizesEngine(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 11})

	start := time.Unix(100, 0)
	m, _ = update(t, m, TickMsg(start))

	s := m.Engine().Snapshot()
	if s.Width != 320 || s.Height != 160 {
		t.Errorf("expected 320x160 surface, got %dx%d", s.Width, s.Height)
	}
	if s.Columns != 16 {
		t.Errorf("expected 16 columns, got %d", s.Columns)
	}
}

func TestTick_DrawsAndSchedulesNext(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 11})

	start := time.Unix(100, 0)
	m, cmd := update(t, m, TickMsg(start))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	m, _ = update(t, m, TickMsg(start.Add(60*time.Millisecond)))

	if f := m.Engine().Snapshot().Frames; f != 1 {
		t.Fatalf("expected 1 frame, got %d", f)
	}
	cells, _, glyph := m.display.Snapshot()
	if cells == nil || cells.Bounds().Size() != (image.Point{X: 40, Y: 20}) {
		t.Fatalf("expected 40x20 cell image, got %v", cells)
	}
	if glyph != registry.ThemeMatrix.Color {
		t.Errorf("expected matrix green, got %v", glyph)
	}
}

func TestKeys(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, key("+"))
	if s := m.Engine().Snapshot().Speed; s != 40*time.Millisecond {
		t.Errorf("+ should speed up to 40ms, got %v", s)
	}
	m, _ = update(t, m, key("-"))
	m, _ = update(t, m, key("-"))
	if s := m.Engine().Snapshot().Speed; s != 60*time.Millisecond {
		t.Errorf("- should slow down to 60ms, got %v", s)
	}

	tests := []struct {
		key     string
		quality registry.Level
	}{
		{"3", registry.Low},
		{"2", registry.Medium},
		{"1", registry.High},
		{"4", registry.Auto},
	}
	for _, tt := range tests {
		m, _ = update(t, m, key(tt.key))
		if q := m.Engine().Snapshot().Quality; q != tt.quality {
			t.Errorf("key %s: expected %v, got %v", tt.key, tt.quality, q)
		}
	}

	m, _ = update(t, m, key("t"))
	if name := m.Engine().Snapshot().Theme.Name; name != "cyber" {
		t.Errorf("t should select cyber, got %s", name)
	}
	m, _ = update(t, m, key("T"))
	m, _ = update(t, m, key("T"))
	if name := m.Engine().Snapshot().Theme.Name; name != "cycle" {
		t.Errorf("T should wrap to cycle, got %s", name)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 11})
	start := time.Unix(100, 0)
	m, _ = update(t, m, TickMsg(start))
	m, _ = update(t, m, TickMsg(start.Add(60*time.Millisecond)))

	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 11 {
		t.Errorf("expected 10 rain rows and a status line, got %d lines", len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "FPS") {
		t.Errorf("status line missing FPS: %q", lines[len(lines)-1])
	}

	m, _ = update(t, m, key("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("? should show help")
	}
}

func TestRecording(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 6})
	m, _ = update(t, m, key("g"))
	if m.recorder == nil {
		t.Fatal("g should start recording")
	}
	start := time.Unix(100, 0)
	for i := 0; i <= 5; i++ {
		m, _ = update(t, m, TickMsg(start.Add(time.Duration(i)*50*time.Millisecond)))
	}
	if n := m.recorder.Frames(); n != 5 {
		t.Errorf("expected 5 recorded frames, got %d", n)
	}
	m, _ = update(t, m, key("g"))
	if m.recorder != nil || !strings.HasPrefix(m.message, "saved ") {
		t.Errorf("second g should save, got %q", m.message)
	}
}

func TestCoarseMergesNeighbours(t *testing.T) {
	a := coarse(color.RGBA{G: 0xf9, A: 0xff})
	b := coarse(color.RGBA{G: 0xfe, A: 0xff})
	if a != b {
		t.Errorf("expected %v == %v", a, b)
	}
	if cellRun(color.RGBA{A: 0xff}, color.RGBA{A: 0xff}, 3) != "   " {
		t.Error("black cells should render as plain spaces")
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline(nil, 4); got != "────" {
		t.Errorf("empty sparkline = %q", got)
	}
	got := sparkline([]float64{10, 20, 30, 40, 50, 60}, 3)
	if n := strings.Count(got, "▁") + strings.Count(got, "▂") + strings.Count(got, "▃") +
		strings.Count(got, "▄") + strings.Count(got, "▅") + strings.Count(got, "▆") +
		strings.Count(got, "▇") + strings.Count(got, "█"); n != 3 {
		t.Errorf("expected 3 bars, got %d in %q", n, got)
	}
}
