package registry

import "errors"

var (
	// ErrUnknownLevel indicates a quality name outside high, medium, low, auto.
	ErrUnknownLevel = errors.New("registry: unknown quality level")

	// ErrUnknownTheme indicates a theme name that is not registered.
	ErrUnknownTheme = errors.New("registry: unknown theme")
)
