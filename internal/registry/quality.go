package registry

import (
	"fmt"
	"strings"
)

// Level is a render quality setting. Auto is a meta level: the effective level
// is tracked separately by whoever drives the auto controller.
type Level int

const (
	High Level = iota
	Medium
	Low
	Auto
)

var levelNames = [...]string{"high", "medium", "low", "auto"}

func (l Level) String() string {
	if l < High || l > Auto {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// Concrete reports whether l can be rendered directly (anything but Auto).
func (l Level) Concrete() bool { return l >= High && l <= Low }

// MarshalText lets levels appear by name in YAML and flags.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Level) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ParseLevel maps a case-insensitive name to its Level.
func ParseLevel(name string) (Level, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range levelNames {
		if s == n {
			return Level(i), nil
		}
	}
	return High, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

// Levels returns every selectable level in menu order.
func Levels() []Level { return []Level{High, Medium, Low, Auto} }

// QualityParams controls grid density and trail length.
type QualityParams struct {
	// ColumnScale widens each column; larger means fewer columns.
	ColumnScale float64
	// TrailAlpha is the opacity of the per-frame background repaint; larger
	// means shorter trails.
	TrailAlpha float64
}

var qualityTable = map[Level]QualityParams{
	High:   {ColumnScale: 1, TrailAlpha: 0.05},
	Medium: {ColumnScale: 1.5, TrailAlpha: 0.06},
	Low:    {ColumnScale: 2, TrailAlpha: 0.08},
}

// Quality returns the parameters for a concrete level. Auto has no parameters
// of its own and maps to High, the level the auto controller starts from.
func Quality(l Level) QualityParams {
	if p, ok := qualityTable[l]; ok {
		return p
	}
	return qualityTable[High]
}
