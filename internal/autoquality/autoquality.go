// Package autoquality picks the active render quality from measured frame rate.
//
// The controller is a plain threshold rule with a cooldown. The gap between
// MediumBelow and HighAbove is a dead zone in which the level is left alone,
// which keeps the controller from flapping around a single threshold.
package autoquality

import (
	"time"

	"github.com/san-kum/matrixrain/internal/registry"
)

const (
	DefaultCooldown    = 1500 * time.Millisecond
	DefaultLowBelow    = 30
	DefaultMediumBelow = 45
	DefaultHighAbove   = 55
)

type Controller struct {
	Cooldown    time.Duration
	LowBelow    int
	MediumBelow int
	HighAbove   int

	lastAdjust time.Duration
}

func New() *Controller {
	return &Controller{
		Cooldown:    DefaultCooldown,
		LowBelow:    DefaultLowBelow,
		MediumBelow: DefaultMediumBelow,
		HighAbove:   DefaultHighAbove,
	}
}

// Ready reports whether the cooldown since the last adjustment has passed.
func (c *Controller) Ready(ts time.Duration) bool {
	return ts-c.lastAdjust >= c.Cooldown
}

// Target maps an fps sample to the level it asks for. ok is false inside the
// dead zone.
func (c *Controller) Target(fps int) (level registry.Level, ok bool) {
	switch {
	case fps < c.LowBelow:
		return registry.Low, true
	case fps < c.MediumBelow:
		return registry.Medium, true
	case fps > c.HighAbove:
		return registry.High, true
	}
	return 0, false
}

// Evaluate returns the level to use after observing fps at ts. changed is true
// only when the result differs from current, in which case the cooldown
// restarts at ts. Samples arriving during the cooldown are ignored.
func (c *Controller) Evaluate(fps int, ts time.Duration, current registry.Level) (next registry.Level, changed bool) {
	if !c.Ready(ts) {
		return current, false
	}
	target, ok := c.Target(fps)
	if !ok || target == current {
		return current, false
	}
	c.lastAdjust = ts
	return target, true
}

// LastAdjust returns the timestamp of the most recent change.
func (c *Controller) LastAdjust() time.Duration { return c.lastAdjust }

func (c *Controller) Reset() { c.lastAdjust = 0 }
