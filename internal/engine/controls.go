package engine

import (
	"time"

	"github.com/san-kum/matrixrain/internal/registry"
)

// Resize records new surface dimensions. Any number of calls between two
// ticks coalesce into a single rebuild, applied at the start of the next tick
// with the most recent size.
func (e *Engine) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingW, e.pendingH = width, height
	e.pendingResize = true
}

// SetQuality selects a quality level. A concrete level also becomes the
// active one immediately; Auto keeps the current active level and leaves it
// to the auto controller. The grid is rebuilt either way.
func (e *Engine) SetQuality(level registry.Level) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.quality = level
	if level.Concrete() {
		e.active = level
	}
	e.rebuildLocked()
	e.logger.Infof("engine", "quality=%s active=%s columns=%d", e.quality, e.active, e.grid.Len())
}

// SetTheme takes effect on the next drawn frame.
func (e *Engine) SetTheme(theme registry.Theme) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.theme = theme
	e.logger.Infof("engine", "theme=%s", theme.Name)
}

// NextTheme switches to the theme after the current one and returns it.
func (e *Engine) NextTheme() registry.Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.theme = e.theme.Next()
	return e.theme
}

// PrevTheme switches to the theme before the current one and returns it.
func (e *Engine) PrevTheme() registry.Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.theme = e.theme.Prev()
	return e.theme
}

// SpeedUp shortens the minimum frame interval by SpeedStep, down to MinSpeed.
func (e *Engine) SpeedUp() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sched.SetSpeed(e.sched.Speed() - SpeedStep)
	return e.sched.Speed()
}

// SpeedDown lengthens the minimum frame interval by SpeedStep, up to MaxSpeed.
func (e *Engine) SpeedDown() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sched.SetSpeed(e.sched.Speed() + SpeedStep)
	return e.sched.Speed()
}
