package page

import (
	"fmt"
	"math"
)

const (
	// GlowAlpha is the opacity at the centre of the glow.
	GlowAlpha = 0.075
	// GlowFade is the fraction of the radius at which the glow is gone.
	GlowFade = 0.8
	// cellAspect compensates for terminal cells being about twice as tall
	// as they are wide.
	cellAspect = 2.0
)

// Glow is the backdrop that follows the pointer.
type Glow struct {
	X       int
	Y       int
	Visible bool
}

// Move centres the glow on the pointer.
func (g Glow) Move(x, y int) Glow {
	return Glow{X: x, Y: y, Visible: true}
}

// Gradient is the CSS background for the backdrop element.
func (g Glow) Gradient() string {
	return fmt.Sprintf(
		"radial-gradient(circle at %dpx %dpx, rgba(255,255,255,%g), transparent %d%%)",
		g.X, g.Y, GlowAlpha, int(GlowFade*100),
	)
}

// Intensity is the glow opacity at cell (x, y) for a glow of the given
// radius in cells. It is GlowAlpha at the centre and zero from
// GlowFade*radius outwards.
func (g Glow) Intensity(x, y int, radius float64) float64 {
	if !g.Visible || radius <= 0 {
		return 0
	}
	dx := float64(x - g.X)
	dy := float64(y-g.Y) * cellAspect
	reach := radius * GlowFade
	d := math.Hypot(dx, dy)
	if d >= reach {
		return 0
	}
	return GlowAlpha * (1 - d/reach)
}
