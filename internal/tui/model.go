package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/matrixrain/internal/engine"
	"github.com/san-kum/matrixrain/internal/logging"
	"github.com/san-kum/matrixrain/internal/record"
)

// statusRows is the height of the status bar below the rain.
const statusRows = 1

// Options configures the terminal host. Zero values select defaults.
type Options struct {
	// CellWidth and CellHeight are the virtual pixels behind one character.
	CellWidth  int
	CellHeight int
	// FrameInterval is the tea.Tick period.
	FrameInterval time.Duration
	// RecordDir receives GIFs captured with the g key.
	RecordDir string
	Logger    logging.Logger
}

type TickMsg time.Time

// Model is the bubbletea model hosting the rain engine.
type Model struct {
	engine  *engine.Engine
	display *Display
	opts    Options
	logger  logging.Logger

	start      time.Time
	cols, rows int
	showHelp   bool
	recorder   *record.Recorder
	message    string
}

// New builds the engine from eopts with the terminal display attached.
func New(eopts engine.Options, opts Options) Model {
	if opts.CellWidth <= 0 {
		opts.CellWidth = 8
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 16
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 16 * time.Millisecond
	}
	if opts.RecordDir == "" {
		opts.RecordDir = "."
	}
	logger := logging.OrNoop(opts.Logger)

	display := NewDisplay()
	if eopts.Display != nil {
		eopts.Display = engine.MultiDisplay{display, eopts.Display}
	} else {
		eopts.Display = display
	}
	if eopts.Logger == nil {
		eopts.Logger = logger
	}

	return Model{
		engine:  engine.New(eopts),
		display: display,
		opts:    opts,
		logger:  logger,
	}
}

// Engine exposes the hosted engine.
func (m Model) Engine() *engine.Engine { return m.engine }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.FrameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, max(0, msg.Height-statusRows)
		m.display.SetGrid(m.cols, m.rows)
		m.engine.Resize(m.cols*m.opts.CellWidth, m.rows*m.opts.CellHeight)
		return m, nil
	case TickMsg:
		now := time.Time(msg)
		if m.start.IsZero() {
			m.start = now
		}
		m.engine.Tick(now.Sub(m.start))
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// keyActions binds named terminal keys; single characters go through
// engine.RuneAction.
var keyActions = map[string]engine.Action{
	"esc":    engine.ActionQuit,
	"ctrl+c": engine.ActionQuit,
}

func keyAction(msg tea.KeyMsg) engine.Action {
	if a, ok := keyActions[msg.String()]; ok {
		return a
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return engine.RuneAction(msg.Runes[0])
	}
	return engine.ActionNone
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "g":
		if m.recorder != nil {
			m.stopRecording()
		} else {
			m.startRecording()
		}
		return m, nil
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	action := keyAction(msg)
	if action == engine.ActionQuit {
		m.stopRecording()
		return m, tea.Quit
	}
	if text := m.engine.Apply(action); text != "" {
		m.message = text
	}
	return m, nil
}

func (m *Model) startRecording() {
	s := m.engine.Snapshot()
	m.recorder = record.NewRecorder(record.Options{
		Scale:     2,
		Delay:     s.Speed,
		MaxFrames: 600,
		Theme:     s.Theme,
	})
	m.display.SetTee(m.recorder)
	m.message = "recording"
	m.logger.Infof("tui", "recording started")
}

func (m *Model) stopRecording() {
	if m.recorder == nil {
		return
	}
	m.display.SetTee(nil)
	path := filepath.Join(m.opts.RecordDir, fmt.Sprintf("matrixrain-%d.gif", time.Now().Unix()))
	if err := m.recorder.Save(path); err != nil {
		m.message = "record: " + err.Error()
		m.logger.Errorf("tui", "save %s: %v", path, err)
	} else {
		m.message = "saved " + path
		m.logger.Infof("tui", "saved %d frames to %s", m.recorder.Frames(), path)
	}
	m.recorder = nil
}

// Run hosts the engine in the terminal until the user quits or ctx ends.
func Run(ctx context.Context, eopts engine.Options, opts Options) error {
	p := tea.NewProgram(New(eopts, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
