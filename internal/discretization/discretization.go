package discretization

import (
	"github.com/PlatypusBytes/GoRoll/internal/boundary"
	"github.com/PlatypusBytes/GoRoll/internal/grid"
	"github.com/PlatypusBytes/GoRoll/internal/simerr"
	"github.com/PlatypusBytes/GoRoll/internal/track"
	"github.com/PlatypusBytes/GoRoll/pkg/sparse"
)

// Discretization holds the per-node property vectors and the assembled
// system matrices of one simulation. It is built once per (track, grid,
// boundary) tuple and read-only afterwards.
type Discretization struct {
	Track *track.Track
	Grid  *grid.Grid

	// Per-node property vectors, each of length Grid.Nx.
	VecDr []float64 // Rail damping incl. boundary ramp [N·s/m²]
	VecSp []float64 // Pad stiffness [N/m²]
	VecDp []float64 // Pad damping [N·s/m²]
	VecMs []float64 // Support mass [kg/m]
	VecSb []float64 // Ballast stiffness [N/m²]
	VecDb []float64 // Ballast damping [N·s/m²]

	// Crank-Nicolson matrices, size 2nx x 2nx.
	A *sparse.CSC
	B *sparse.CSC
	C *sparse.CSC
}

// New builds the property vectors and assembles A, B and C for the given
// track, grid and absorbing boundary.
func New(tr *track.Track, g *grid.Grid, pml boundary.PML) (*Discretization, error) {
	d := &Discretization{Track: tr, Grid: g}

	d.initializeVectors()
	d.addBoundary(pml)
	if err := d.assignSupport(); err != nil {
		return nil, err
	}
	d.buildMatrices()
	return d, nil
}

// initializeVectors sets the start values of the property vectors. The
// support mass starts at 1, not 0, so rows without a mount stay solvable.
func (d *Discretization) initializeVectors() {
	nx := d.Grid.Nx
	d.VecDr = make([]float64, nx)
	d.VecSp = make([]float64, nx)
	d.VecDp = make([]float64, nx)
	d.VecMs = make([]float64, nx)
	d.VecSb = make([]float64, nx)
	d.VecDb = make([]float64, nx)
	for i := 0; i < nx; i++ {
		d.VecDr[i] = d.Track.Rail.Dr
		d.VecMs[i] = 1
	}
}

// addBoundary adds the damping ramp to both ends of the rail damping
// vector, reversed on the left side so the damping rises towards the
// physical boundary.
func (d *Discretization) addBoundary(pml boundary.PML) {
	ramp := pml.Ramp(d.Track.Rail, d.Grid)
	nb := len(ramp)
	nx := d.Grid.Nx
	for i := 0; i < nb; i++ {
		d.VecDr[i] += ramp[nb-1-i]
		d.VecDr[nx-nb+i] += ramp[i]
	}
}

// assignSupport distributes the support properties over the grid according
// to the track form.
func (d *Discretization) assignSupport() error {
	tr := d.Track
	nx := d.Grid.Nx

	switch tr.Kind {
	case track.ContSlab:
		d.addUniformPad(tr.Pad.Sp[0], tr.Pad.VerticalDamping())
		d.addUniformMass(tr.Slab.Ms)

	case track.ContBallasted:
		d.addUniformPad(tr.Pad.Sp[0], tr.Pad.VerticalDamping())
		d.addUniformMass(tr.Slab.Ms)
		for i := 0; i < nx; i++ {
			d.VecSb[i] += tr.Ballast.Sb[0]
			d.VecDb[i] += tr.Ballast.Db[0]
		}

	case track.PeriodicSlab, track.ArrangedSlab:
		if err := d.assignMounts(false); err != nil {
			return err
		}
		d.addUniformMass(tr.Slab.Ms)

	case track.PeriodicBallasted, track.ArrangedBallasted:
		if err := d.assignMounts(true); err != nil {
			return err
		}

	default:
		return simerr.Configf("track.type", "unrecognized track kind %d", tr.Kind)
	}
	return nil
}

func (d *Discretization) addUniformPad(sp, dp float64) {
	for i := range d.VecSp {
		d.VecSp[i] += sp
		d.VecDp[i] += dp
	}
}

func (d *Discretization) addUniformMass(ms float64) {
	for i := range d.VecMs {
		d.VecMs[i] += ms
	}
}

// assignMounts lumps the discrete mounting properties at their grid nodes.
// Total values are divided by Δx so they enter the per-unit-length
// equations as a surface density at the mounting node.
func (d *Discretization) assignMounts(ballasted bool) error {
	g := d.Grid
	for i, m := range d.Track.Mounts {
		idx := g.NodeIndex(m.X)
		if idx < 0 || idx >= g.Nx {
			return simerr.Configf("track.mounts", "mount %d at x=%g falls outside the grid", i, m.X)
		}
		d.VecSp[idx] = m.Pad.Sp[0] / g.Dx
		d.VecDp[idx] = m.Pad.VerticalDamping() / g.Dx
		if !ballasted {
			continue
		}
		if m.Sleeper == nil {
			return simerr.Configf("track.mounts", "mount %d at x=%g has no sleeper", i, m.X)
		}
		if m.Ballast == nil {
			return simerr.Configf("track.mounts", "mount %d at x=%g has no ballast", i, m.X)
		}
		d.VecMs[idx] = m.Sleeper.Ms / g.Dx
		d.VecSb[idx] = m.Ballast.Sb[0] / g.Dx
		d.VecDb[idx] = m.Ballast.Db[0] / g.Dx
	}
	return nil
}

// buildMatrices assembles A, B and C from the property vectors.
func (d *Discretization) buildMatrices() {
	g := d.Grid
	rail := d.Track.Rail
	nx := g.Nx
	dt := g.Dt
	mr := rail.Mr

	// Simplification factor of the fourth-derivative stencil.
	r := rail.BendingStiffness() * dt * dt / (2 * mr * g.Dx * g.Dx * g.Dx * g.Dx)

	a := sparse.NewBuilder(2*nx, 2*nx)
	b := sparse.NewBuilder(2*nx, 2*nx)
	c := sparse.NewBuilder(2*nx, 2*nx)

	// Rail-rail blocks: pentadiagonal stencil plus identity and per-node
	// damping/stiffness terms.
	addStencil(a, nx, r)
	addStencil(c, nx, -r)
	for i := 0; i < nx; i++ {
		damp := dt / mr * (d.VecDr[i] + d.VecDp[i])
		stiff := dt * dt / (2 * mr) * d.VecSp[i]

		a.Add(i, i, 1+damp+stiff)
		b.Add(i, i, 2+damp)
		c.Add(i, i, -(1 + stiff))

		// Rail-support coupling.
		a.Add(i, nx+i, -dt/mr*d.VecDp[i]-stiff)
		b.Add(i, nx+i, -dt/mr*d.VecDp[i])
		c.Add(i, nx+i, stiff)

		// Support-rail coupling.
		ms := d.VecMs[i]
		a.Add(nx+i, i, -dt*d.VecDp[i]/ms-dt*dt/(2*ms)*d.VecSp[i])
		b.Add(nx+i, i, -dt*d.VecDp[i]/ms)
		c.Add(nx+i, i, dt*dt/(2*ms)*d.VecSp[i])

		// Support-support blocks; ballast acts only here.
		sDamp := dt * (d.VecDp[i] + d.VecDb[i]) / ms
		sStiff := dt * dt / (2 * ms) * (d.VecSp[i] + d.VecSb[i])
		a.Add(nx+i, nx+i, 1+sDamp+sStiff)
		b.Add(nx+i, nx+i, 2+sDamp)
		c.Add(nx+i, nx+i, -(1 + sStiff))
	}

	d.A = a.Build()
	d.B = b.Build()
	d.C = c.Build()
}

// addStencil accumulates the scaled [1 -4 6 -4 1] fourth-derivative
// stencil on the rail-rail block, truncated at the domain edges.
func addStencil(b *sparse.Builder, nx int, r float64) {
	for i := 0; i < nx; i++ {
		for off, w := range [5]float64{1, -4, 6, -4, 1} {
			j := i + off - 2
			if j < 0 || j >= nx {
				continue
			}
			b.Add(i, j, r*w)
		}
	}
}

// Scale returns the force scaling dt²/(m_r·Δx) of the right-hand side.
func (d *Discretization) Scale() float64 {
	return d.Grid.Dt * d.Grid.Dt / (d.Track.Rail.Mr * d.Grid.Dx)
}
