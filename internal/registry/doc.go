// Package registry holds the static tables the renderer reads every frame.
//
//   - [Level]: named render quality (high, medium, low, auto)
//   - [QualityParams]: column scale and trail alpha per level
//   - [Theme]: named glyph colour, or a timed palette for [ThemeCycle]
//
// Lookups are pure and never fail once a name has been parsed.
package registry
