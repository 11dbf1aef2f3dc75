package analytical

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/PlatypusBytes/GoRoll/internal/components"
	"github.com/PlatypusBytes/GoRoll/internal/simerr"
	"github.com/PlatypusBytes/GoRoll/internal/track"
)

// Method is the boundary interface of the analytical reference solutions:
// the complex point mobility at positions x (relative to the excitation
// point for continuous methods, absolute for periodic methods) over the
// frequency vector f [Hz].
type Method interface {
	Mobility(f, x []float64) ([][]complex128, error)
}

// EBBCont1L is the continuously supported Euler-Bernoulli beam on a single
// support layer (rail on pad on rigid slab).
type EBBCont1L struct {
	Track *track.Track
}

// Mobility computes the mobility at distances x from the excitation.
func (m EBBCont1L) Mobility(f, x []float64) ([][]complex128, error) {
	if m.Track.Kind != track.ContSlab {
		return nil, simerr.Configf("track.type", "EBBCont1L needs a continuous slab track, got %s", m.Track.Kind)
	}
	rail := m.Track.Rail
	sp := m.Track.Pad.Sp[0]
	dp := m.Track.Pad.VerticalDamping()
	ei := rail.BendingStiffness()

	out := alloc(len(x), len(f))
	for fi, fv := range f {
		omega := 2 * math.Pi * fv
		kp := cmplx.Pow(complex(omega*omega*rail.Mr-sp, -omega*dp)/complex(ei, 0), 0.25)
		for xi, xv := range x {
			out[xi][fi] = pointMobility(omega, ei, kp, math.Abs(xv))
		}
	}
	return out, nil
}

// EBBCont2L is the continuously supported Euler-Bernoulli beam on two
// support layers (rail on pad on slab on ballast).
type EBBCont2L struct {
	Track *track.Track
}

// Mobility computes the mobility at distances x from the excitation.
func (m EBBCont2L) Mobility(f, x []float64) ([][]complex128, error) {
	if m.Track.Kind != track.ContBallasted {
		return nil, simerr.Configf("track.type", "EBBCont2L needs a continuous ballasted track, got %s", m.Track.Kind)
	}
	rail := m.Track.Rail
	sp := m.Track.Pad.Sp[0]
	dp := m.Track.Pad.VerticalDamping()
	sb := m.Track.Ballast.Sb[0]
	db := m.Track.Ballast.Db[0]
	ms := m.Track.Slab.Ms
	ei := rail.BendingStiffness()

	out := alloc(len(x), len(f))
	for fi, fv := range f {
		omega := 2 * math.Pi * fv

		// Dynamic stiffness of the pad/slab/ballast chain.
		spTot := complex(sp, omega*dp)
		sbTot := complex(sb, omega*db)
		sTot := spTot * (sbTot - complex(ms*omega*omega, 0)) /
			(spTot + sbTot - complex(ms*omega*omega, 0))

		kp := cmplx.Pow((complex(omega*omega*rail.Mr, 0)-sTot-complex(0, omega*dp))/complex(ei, 0), 0.25)
		for xi, xv := range x {
			out[xi][fi] = pointMobility(omega, ei, kp, math.Abs(xv))
		}
	}
	return out, nil
}

// pointMobility evaluates the free-field mobility of a supported beam:
// Y = omega/(4 EI k³) (e^{-ik|x|} - i e^{-k|x|}).
func pointMobility(omega, ei float64, kp complex128, absX float64) complex128 {
	term1 := cmplx.Exp(complex(0, -1) * kp * complex(absX, 0))
	term2 := complex(0, -1) * cmplx.Exp(-kp*complex(absX, 0))
	return complex(omega, 0) / (4 * complex(ei, 0) * kp * kp * kp) * (term1 + term2)
}

// TimoshenkoPeriodic is the periodically supported Timoshenko beam solved
// through Green's functions over the mounting positions. The rigid-slab
// one-layer case uses the RigidMass sentinel for the second layer.
type TimoshenkoPeriodic struct {
	Track  *track.Track
	XExcit float64 // Excitation position [m]
}

// Mobility computes the mobility at the absolute track positions x.
func (m TimoshenkoPeriodic) Mobility(f, x []float64) ([][]complex128, error) {
	tr := m.Track
	if tr.Continuous() || len(tr.Mounts) == 0 {
		return nil, simerr.Configf("track.type", "TimoshenkoPeriodic needs a discretely mounted track, got %s", tr.Kind)
	}

	// Support-chain parameters: the slab case degenerates to a rigid
	// second layer.
	pad := tr.Mounts[0].Pad
	sp := pad.Sp[0]
	etap := pad.Etap
	ms := components.RigidMass
	sb := components.RigidMass
	etab := 0.0
	if tr.Mounts[0].Sleeper != nil {
		ms = tr.Mounts[0].Sleeper.Ms
	}
	if tr.Mounts[0].Ballast != nil {
		sb = tr.Mounts[0].Ballast.Sb[0]
		etab = tr.Mounts[0].Ballast.Etab
	}

	rail := tr.Rail
	rho := rail.Rho
	ar := rail.Ar
	iyr := rail.Iyr
	kap := rail.Kap
	youm := complex(rail.E, rail.E*rail.Etar)
	shearm := complex(rail.G, rail.G*rail.Etar)

	xn := tr.MountPositions()
	n := len(xn)

	out := alloc(len(x), len(f))

	// Scratch for the per-frequency dense solve: the complex n x n system
	// is embedded into a real 2n x 2n system.
	re := mat.NewDense(2*n, 2*n, nil)
	rhs := mat.NewVecDense(2*n, nil)
	sol := mat.NewVecDense(2*n, nil)
	green := make([]complex128, n*n)
	gExc := make([]complex128, n)
	u := make([]complex128, n)

	for fi, fv := range f {
		omega := fv * 2 * math.Pi
		w2 := complex(omega*omega, 0)

		// Dynamic stiffness of one mount (eq. 3.68).
		spC := complex(sp, sp*etap)
		sbC := complex(sb, sb*etab)
		impend := spC * (sbC - complex(ms, 0)*w2) / (spC + sbC - complex(ms, 0)*w2)

		// Timoshenko wavenumbers (eq. 3.71).
		a := complex(rho, 0) / youm
		b := complex(rho, 0) / shearm * complex(kap, 0)
		disc := cmplx.Sqrt((a-b)*(a-b) + complex(4*rho*ar, 0)/(youm*complex(iyr, 0)*w2))
		kp2 := w2 / 2 * (a + b + disc)
		kd2 := -w2 / 2 * (a + b - disc)
		kp := cmplx.Sqrt(kp2)
		kd := cmplx.Sqrt(kd2)

		// Wave amplitudes (eq. 3.70).
		ei := youm * complex(iyr, 0)
		gk := shearm * complex(kap, 0)
		fp := complex(0, 1) / (ei * gk) *
			((complex(rho*iyr, 0)*w2 - gk*complex(ar, 0) - ei*kp2) / (complex(2*ar, 0) * kp * (kp2 + kd2)))
		fd := 1 / (ei * gk) *
			((complex(rho*iyr, 0)*w2 - gk*complex(ar, 0) + ei*kd2) / (complex(2*ar, 0) * kd * (kp2 + kd2)))

		gf := func(xa, xb float64) complex128 {
			dist := complex(math.Abs(xa-xb), 0)
			return fp*cmplx.Exp(complex(0, -1)*kp*dist) + fd*cmplx.Exp(-kd*dist)
		}

		// M = I + impend * G over the reaction points.
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				g := impend * gf(xn[i], xn[j])
				if i == j {
					g += 1
				}
				green[i*n+j] = g
			}
			gExc[i] = gf(xn[i], m.XExcit)
		}

		solveComplex(re, rhs, sol, green, gExc, u)

		for xi, xv := range x {
			var ux complex128
			for i := 0; i < n; i++ {
				ux -= impend * gf(xv, xn[i]) * u[i]
			}
			ux += gf(xv, m.XExcit)
			out[xi][fi] = ux * complex(0, omega)
		}
	}
	return out, nil
}

// solveComplex solves the dense complex system M u = g through the real
// embedding [[Re -Im],[Im Re]]. The mat workspaces are reused across
// frequencies.
func solveComplex(re *mat.Dense, rhs, sol *mat.VecDense, m []complex128, g, u []complex128) {
	n := len(g)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			re.Set(i, j, real(m[i*n+j]))
			re.Set(i, n+j, -imag(m[i*n+j]))
			re.Set(n+i, j, imag(m[i*n+j]))
			re.Set(n+i, n+j, real(m[i*n+j]))
		}
		rhs.SetVec(i, real(g[i]))
		rhs.SetVec(n+i, imag(g[i]))
	}
	if err := sol.SolveVec(re, rhs); err != nil {
		// A singular Green's matrix only occurs at exact undamped
		// resonances; the caller's frequency grids avoid them.
		for i := range u {
			u[i] = cmplx.NaN()
		}
		return
	}
	for i := 0; i < n; i++ {
		u[i] = complex(sol.AtVec(i), sol.AtVec(n+i))
	}
}

func alloc(nx, nf int) [][]complex128 {
	out := make([][]complex128, nx)
	for i := range out {
		out[i] = make([]complex128, nf)
	}
	return out
}
