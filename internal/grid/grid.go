package grid

import (
	"math"

	"github.com/PlatypusBytes/GoRoll/internal/simerr"
	"github.com/PlatypusBytes/GoRoll/internal/track"
)

// sleeperSpacing is the standard sleeper distance dx must divide so that
// mounting positions coincide with grid nodes.
const sleeperSpacing = 0.6

// stencilWidth is the number of nodes of the fourth-derivative stencil and
// the minimum admissible grid size.
const stencilWidth = 5

// Grid holds the derived discretization parameters of one simulation.
type Grid struct {
	Dt      float64 // Time step [s]
	Dx      float64 // Spatial step [m]
	Nt      int     // Number of time steps [-]
	Nx      int     // Number of spatial nodes [-]
	NBound  int     // Nodes in the single-sided boundary domain [-]
	SimT    float64 // Actual simulation time nt*dt [s]
	LTrack  float64 // Track length [m]
	LDomain float64 // Actual beam length (nx-1)*dx [m]
	LBound  float64 // Single-sided boundary length [m]
	BxUpd   float64 // Stability coefficient after the dx snap [-]
}

// New computes the grid for a track. dt is the time step, reqSimT the
// requested simulation time, bx the stability coefficient (>= 1) and
// lBound the length of the absorbing boundary domain per side.
func New(tr *track.Track, dt, reqSimT, bx, lBound float64) (*Grid, error) {
	switch {
	case dt <= 0:
		return nil, simerr.Configf("dt", "time step must be positive, got %g", dt)
	case reqSimT <= 0:
		return nil, simerr.Configf("duration", "simulation time must be positive, got %g", reqSimT)
	case bx < 1:
		return nil, simerr.Configf("bx", "stability coefficient must be >= 1, got %g", bx)
	case lBound <= 0:
		return nil, simerr.Configf("boundary_length", "boundary length must be positive, got %g", lBound)
	}

	nt := int(reqSimT / dt)
	if nt < 3 {
		return nil, simerr.Configf("duration", "only %d time steps at dt=%g", nt, dt)
	}

	rail := tr.Rail

	// Stability floor for the spatial step.
	dxMin := bx * math.Pow(rail.BendingStiffness()/(6*rail.Mr), 0.25) * math.Sqrt(dt)

	// Snap dx so the standard sleeper spacing is an integer multiple.
	k := math.Floor(sleeperSpacing / dxMin)
	if k < 1 {
		return nil, simerr.Configf("dt", "stability floor dx=%g exceeds the sleeper spacing %g", dxMin, sleeperSpacing)
	}
	dx := sleeperSpacing / k

	lTrack := tr.Length()
	if lTrack < 2*lBound {
		return nil, simerr.Configf("boundary_length", "track length %g shorter than both boundary domains 2*%g", lTrack, lBound)
	}

	nx := int(math.Floor(lTrack/dx)) + 1
	if nx < stencilWidth {
		return nil, simerr.Configf("track.length", "grid of %d nodes is below the stencil width %d", nx, stencilWidth)
	}

	return &Grid{
		Dt:      dt,
		Dx:      dx,
		Nt:      nt,
		Nx:      nx,
		NBound:  int(math.Floor(lBound / dx)),
		SimT:    float64(nt) * dt,
		LTrack:  lTrack,
		LDomain: float64(nx-1) * dx,
		LBound:  lBound,
		BxUpd:   dx / (math.Pow(rail.BendingStiffness()/(6*rail.Mr), 0.25) * math.Sqrt(dt)),
	}, nil
}

// NodeIndex converts a physical position to its grid node index. The small
// bias absorbs the representation error of positions that lie exactly on a
// node.
func (g *Grid) NodeIndex(x float64) int {
	return int(math.Floor(x/g.Dx + 1e-9))
}
