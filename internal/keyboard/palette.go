package keyboard

import "github.com/darvos-rgb/darvos/internal/openrgb"

// Mic-state palette.
var (
	DefaultColor  = openrgb.Color{R: 0, G: 0, B: 255} // Shown before any mic event is known.
	ActiveColor   = openrgb.Color{R: 0, G: 255, B: 0} // Mic is live.
	InactiveColor = openrgb.Color{R: 255, G: 0, B: 0} // Mic is muted.
)

// Returns the palette color for the given mic state.
func ColorFor(active bool) openrgb.Color {
	if active {
		return ActiveColor
	}
	return InactiveColor
}
