package boundary

import (
	"math"

	"github.com/PlatypusBytes/GoRoll/internal/components"
	"github.com/PlatypusBytes/GoRoll/internal/grid"
	math_utils "github.com/PlatypusBytes/GoRoll/pkg/utils"
)

// DefaultAlpha is the default damping exponent of the ramp.
const DefaultAlpha = 7.0

// PML describes the absorbing boundary: a damping ramp of the form
// d(x) = d_max * (x/L_b)^alpha over the boundary domain of length L_b.
type PML struct {
	Alpha float64 // Damping exponent [-]
}

// New returns a PML with the given damping exponent. Non-positive values
// select the default.
func New(alpha float64) PML {
	if alpha <= 0 {
		alpha = DefaultAlpha
	}
	return PML{Alpha: alpha}
}

// Ramp computes the single-sided damping profile for the given rail and
// grid. The returned vector has length g.NBound; element i holds the
// damping added at distance x_i from the interior edge of the boundary
// domain, rising monotonically to the reference maximum
// d_max = r*m_r/(2*dt) with r = E*Iy*dt^2/(m_r*dx^4).
func (p PML) Ramp(rail components.Rail, g *grid.Grid) []float64 {
	r := rail.BendingStiffness() / rail.Mr * g.Dt * g.Dt / math.Pow(g.Dx, 4)
	dMax := r / 2 * rail.Mr / g.Dt

	xs := math_utils.Linspace(0, g.LBound, g.NBound)
	ramp := make([]float64, g.NBound)
	for i, x := range xs {
		ramp[i] = dMax * math.Pow(x, p.Alpha) / math.Pow(g.LBound, p.Alpha)
	}
	return ramp
}
