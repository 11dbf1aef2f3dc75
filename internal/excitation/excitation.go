package excitation

import (
	"math"

	"github.com/PlatypusBytes/GoRoll/internal/grid"
	"github.com/PlatypusBytes/GoRoll/internal/simerr"
)

// Excitation is the contract shared by all force models: a force time
// series, a per-load excitation node trajectory, and the fraction of the
// series occupied by a start-up ramp (zero for stationary models).
type Excitation interface {
	// Validate checks the model parameters against the grid.
	Validate(g *grid.Grid) error

	// Force returns the force time series of length g.Nt [N].
	Force(g *grid.Grid) []float64

	// Loads returns the number of simultaneously acting loads.
	Loads() int

	// Index returns the excitation node of the given load at time step n.
	Index(g *grid.Grid, n, load int) int

	// RampFraction returns the fraction of the series that is start-up
	// ramp and should be discarded before spectral postprocessing.
	RampFraction() float64
}

// Default Gaussian impulse parameters.
const (
	DefaultSigma     = 0.7e-4 // Pulse-time parameter [s]
	DefaultAmplitude = 50.0   // Pulse amplitude parameter [-]
)

// GaussianImpulse is a stationary pulse excitation
//
//	f(t) = a (t-4σ)/σ² exp(-((t-4σ)/σ)²)
//
// applied at one or more fixed positions.
type GaussianImpulse struct {
	Sigma  float64   // Pulse-time parameter [s]
	A      float64   // Amplitude parameter [-]
	XExcit []float64 // Excitation positions [m]
}

// NewGaussianImpulse returns a Gaussian impulse with default pulse
// parameters at the given positions.
func NewGaussianImpulse(x ...float64) *GaussianImpulse {
	return &GaussianImpulse{Sigma: DefaultSigma, A: DefaultAmplitude, XExcit: x}
}

// Validate checks the pulse parameters.
func (e *GaussianImpulse) Validate(g *grid.Grid) error {
	if e.Sigma <= 0 {
		return simerr.Configf("excitation.sigma", "pulse parameter must be positive, got %g", e.Sigma)
	}
	if len(e.XExcit) == 0 {
		return simerr.Configf("excitation.x_excit", "at least one excitation position is required")
	}
	return nil
}

// Force computes the pulse time series.
func (e *GaussianImpulse) Force(g *grid.Grid) []float64 {
	f := make([]float64, g.Nt)
	for n := range f {
		tg := float64(n)*g.Dt - 4*e.Sigma
		f[n] = e.A * tg / (e.Sigma * e.Sigma) * math.Exp(-tg*tg/(e.Sigma*e.Sigma))
	}
	return f
}

// Loads returns the number of excitation positions.
func (e *GaussianImpulse) Loads() int { return len(e.XExcit) }

// Index returns the fixed excitation node of the given load.
func (e *GaussianImpulse) Index(g *grid.Grid, _, load int) int {
	return g.NodeIndex(e.XExcit[load])
}

// RampFraction is zero for stationary excitations.
func (e *GaussianImpulse) RampFraction() float64 { return 0 }

// Default moving-force parameters.
const (
	DefaultForceAmplitude = 65000.0 // Wheel load [N]
	DefaultVelocity       = 27.78   // 100 km/h [m/s]
	DefaultRampFraction   = 0.05
)

// ConstantForce is a constant vertical load of one or more co-moving
// excitation points translating at a fixed speed. The force ramps
// linearly from zero over the leading RampFrac fraction of the series to
// avoid start-up transients; postprocessing discards that part.
type ConstantForce struct {
	Amplitude float64   // Force per load [N]
	Velocity  float64   // Load speed [m/s]
	XStart    []float64 // Start positions [m]
	RampFrac  float64   // Ramp fraction of nt [-]
}

// NewConstantForce returns a moving constant force with default amplitude,
// velocity and ramp at the given start positions.
func NewConstantForce(x ...float64) *ConstantForce {
	return &ConstantForce{
		Amplitude: DefaultForceAmplitude,
		Velocity:  DefaultVelocity,
		RampFrac:  DefaultRampFraction,
		XStart:    x,
	}
}

// Validate checks the moving-load parameters.
func (e *ConstantForce) Validate(g *grid.Grid) error {
	switch {
	case len(e.XStart) == 0:
		return simerr.Configf("excitation.x_excit", "at least one load position is required")
	case e.Velocity < 0:
		return simerr.Configf("excitation.velocity", "velocity must be non-negative, got %g", e.Velocity)
	case e.RampFrac < 0 || e.RampFrac > 1:
		return simerr.Configf("excitation.ramp_fraction", "ramp fraction must be in [0, 1], got %g", e.RampFrac)
	}
	return nil
}

// Force computes the ramp-then-constant time series.
func (e *ConstantForce) Force(g *grid.Grid) []float64 {
	f := make([]float64, g.Nt)
	rampLen := int(e.RampFrac * float64(g.Nt))
	for n := range f {
		if n < rampLen {
			f[n] = e.Amplitude * float64(n) / float64(rampLen)
		} else {
			f[n] = e.Amplitude
		}
	}
	return f
}

// Loads returns the number of co-moving loads.
func (e *ConstantForce) Loads() int { return len(e.XStart) }

// Index returns the excitation node of the given load at step n. The load
// position advances as x(t) = x0 + v t, so the node trajectory honors the
// configured velocity for every (dt, Δx) pair.
func (e *ConstantForce) Index(g *grid.Grid, n, load int) int {
	return g.NodeIndex(e.XStart[load] + e.Velocity*float64(n)*g.Dt)
}

// RampFraction returns the configured ramp fraction.
func (e *ConstantForce) RampFraction() float64 { return e.RampFrac }
