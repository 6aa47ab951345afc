// Package engine runs the adaptive rain loop.
//
// An [Engine] owns every piece of mutable animation state: the surface size,
// the selected and active quality, the theme, the speed, the column grid and
// the FPS window. Hosts drive it with one [Engine.Tick] per frame callback and
// feed input through [Engine.Resize], [Engine.SetQuality], [Engine.SetTheme],
// [Engine.SpeedUp] and [Engine.SpeedDown]. Output is delivered to a [Display].
//
// # Pacing
//
// A tick only draws when at least Speed has passed since the last drawn
// frame, so the drawn frame rate is governed independently of the host's
// refresh rate. Every 500ms of drawn frames the FPS readout is published and,
// when quality is auto, the auto-quality controller may pick a new level.
//
// # Lifecycle
//
//	eng := engine.New(opts)
//	h := eng.Spawn(ctx, engine.NewTickerSource(16*time.Millisecond))
//	defer h.Stop()
//
// Ticks never overlap. Input methods may be called from any goroutine; they
// take the same lock as Tick. Display methods are called with that lock held
// and must not call back into the Engine.
package engine
