package present

import (
	"fmt"
	"math"
)

// BoardMaxDelta is the lead at which the board tint is fully shifted.
const BoardMaxDelta = 8.0

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex renders the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Tint is the pair of square colours for a board.
type Tint struct {
	Light RGB
	Dark  RGB
}

// Square palettes from losing through neutral to winning.
var (
	LightAhead   = RGB{220, 240, 210}
	LightDefault = RGB{235, 236, 208}
	LightBehind  = RGB{245, 220, 210}

	DarkAhead   = RGB{85, 160, 95}
	DarkDefault = RGB{115, 149, 82}
	DarkBehind  = RGB{165, 100, 80}
)

// BoardTint shifts the default squares toward green when ahead and toward
// red when behind, saturating at BoardMaxDelta.
func BoardTint(delta float64) Tint {
	if math.IsNaN(delta) {
		delta = 0
	}
	n := math.Max(-1, math.Min(1, delta/BoardMaxDelta))
	if n >= 0 {
		return Tint{
			Light: lerpColor(LightDefault, LightAhead, n),
			Dark:  lerpColor(DarkDefault, DarkAhead, n),
		}
	}
	return Tint{
		Light: lerpColor(LightDefault, LightBehind, -n),
		Dark:  lerpColor(DarkDefault, DarkBehind, -n),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*math.Max(0, math.Min(1, t))
}

func lerpColor(from, to RGB, t float64) RGB {
	ch := func(a, b uint8) uint8 {
		return uint8(math.Round(lerp(float64(a), float64(b), t)))
	}
	return RGB{ch(from.R, to.R), ch(from.G, to.G), ch(from.B, to.B)}
}
