package engine

import (
	"fmt"

	"github.com/san-kum/matrixrain/internal/registry"
)

// Action is a user command shared by every host's key bindings.
type Action int

const (
	ActionNone Action = iota
	ActionSpeedUp
	ActionSpeedDown
	ActionHigh
	ActionMedium
	ActionLow
	ActionAuto
	ActionNextTheme
	ActionPrevTheme
	ActionQuit
)

var actionNames = [...]string{"none", "speed-up", "speed-down", "high", "medium", "low", "auto", "next-theme", "prev-theme", "quit"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// Apply performs a and returns a short description of the result for status
// lines. ActionQuit and ActionNone are left to the host.
func (e *Engine) Apply(a Action) string {
	switch a {
	case ActionSpeedUp:
		return fmt.Sprintf("speed %v", e.SpeedUp())
	case ActionSpeedDown:
		return fmt.Sprintf("speed %v", e.SpeedDown())
	case ActionHigh:
		return e.applyQuality(registry.High)
	case ActionMedium:
		return e.applyQuality(registry.Medium)
	case ActionLow:
		return e.applyQuality(registry.Low)
	case ActionAuto:
		return e.applyQuality(registry.Auto)
	case ActionNextTheme:
		return "theme " + e.NextTheme().Name
	case ActionPrevTheme:
		return "theme " + e.PrevTheme().Name
	}
	return ""
}

func (e *Engine) applyQuality(l registry.Level) string {
	e.SetQuality(l)
	return "quality " + l.String()
}

// RuneAction maps a typed character to its action: + or = speed up, - or _
// slow down, 1 to 4 pick a quality, t and T step the theme, q quits.
func RuneAction(r rune) Action {
	switch r {
	case '+', '=':
		return ActionSpeedUp
	case '-', '_':
		return ActionSpeedDown
	case '1':
		return ActionHigh
	case '2':
		return ActionMedium
	case '3':
		return ActionLow
	case '4':
		return ActionAuto
	case 't':
		return ActionNextTheme
	case 'T':
		return ActionPrevTheme
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}
