package components

import "math"

// RigidMass is the sentinel mass assigned to rigid slabs. It collapses the
// second-layer equation to zero motion without special-casing the
// assembly, and must be preserved exactly for parity with the reference
// implementation.
const RigidMass = 1e20

// Rail holds the bending-relevant scalars of a rail profile along with the
// secondary geometric attributes carried by the database. Only E, Iyr, Mr
// and Dr enter the vertical finite-difference model; the remaining fields
// (Etar among them) serve the analytical methods and future lateral models.
type Rail struct {
	Name  string  // Profile name, e.g. "UIC60"
	E     float64 // Young's modulus [Pa]
	G     float64 // Shear modulus [Pa]
	Nu    float64 // Poisson's ratio [-]
	Kap   float64 // Timoshenko shear correction factor [-]
	Mr    float64 // Mass per unit length [kg/m]
	Rho   float64 // Density [kg/m^3]
	Etar  float64 // Loss factor [-]
	Fresr float64 // Resonance frequency [Hz]
	Dr    float64 // Viscous damping coefficient [N·s/m]
	Iyr   float64 // Area moment of inertia around y [m^4]
	Izr   float64 // Area moment of inertia around z [m^4]
	Itr   float64 // Torsional constant [m^4]
	Ar    float64 // Cross-sectional area [m^2]
	Asr   float64 // Surface area per unit length [m^2/m]
	Vr    float64 // Volume per unit length [m^3/m]
}

// BendingStiffness returns E*Iyr [N·m^2].
func (r Rail) BendingStiffness() float64 { return r.E * r.Iyr }

// DiscrPad holds the properties of a discrete rail pad. Stiffness and
// damping are total values per mounting position, vertical first.
type DiscrPad struct {
	Sp    [2]float64 // Vertical/lateral stiffness [N/m]
	Dp    [2]float64 // Vertical/lateral viscous damping [N·s/m]
	Wdthp float64    // Pad width in x-direction [m]
	Etap  float64    // Loss factor [-]
	Fresp [2]float64 // Vertical/lateral resonance frequencies [Hz]
}

// VerticalDamping returns the vertical viscous damping coefficient. When no
// viscous value is set but a loss factor and resonance frequency are, the
// equivalent viscous coefficient etap*sp/(2*pi*fresp) is used.
func (p DiscrPad) VerticalDamping() float64 {
	if p.Dp[0] == 0 && p.Etap > 0 && p.Fresp[0] > 0 {
		return p.Etap * p.Sp[0] / (2 * math.Pi * p.Fresp[0])
	}
	return p.Dp[0]
}

// ContPad holds the properties of a continuous rail pad. Stiffness and
// damping are per-unit-length values, vertical first.
type ContPad struct {
	Sp    [2]float64 // Vertical/lateral stiffness [N/m^2]
	Dp    [2]float64 // Vertical/lateral viscous damping [N·s/m^2]
	Etap  float64    // Loss factor [-]
	Fresp [2]float64 // Vertical/lateral resonance frequencies [Hz]
}

// VerticalDamping returns the vertical viscous damping coefficient per unit
// length, deriving it from the loss factor when no viscous value is set.
func (p ContPad) VerticalDamping() float64 {
	if p.Dp[0] == 0 && p.Etap > 0 && p.Fresp[0] > 0 {
		return p.Etap * p.Sp[0] / (2 * math.Pi * p.Fresp[0])
	}
	return p.Dp[0]
}

// Sleeper holds the properties of a sleeper. Only the mass enters the
// vertical model.
type Sleeper struct {
	Ms    float64 // Mass [kg]
	Bs    float64 // Bending stiffness [N·m^2]
	Ls    float64 // Length in y-direction [m]
	Wdths float64 // Width in x-direction [m]
}

// Slab holds the properties of a slab. A rigid slab uses Ms = RigidMass.
type Slab struct {
	Ms float64 // Mass per unit length [kg/m]
	Ls float64 // Depth [m]
}

// Ballast holds the ballast properties. The unit convention follows the
// track type: total values for discrete tracks, per-unit-length values for
// continuous tracks.
type Ballast struct {
	Sb    [2]float64 // Vertical/lateral stiffness [N/m] or [N/m^2]
	Db    [2]float64 // Vertical/lateral viscous damping [N·s/m] or [N·s/m^2]
	Etab  float64    // Loss factor [-]
	Fresb [2]float64 // Vertical/lateral resonance frequencies [Hz]
}

// Wheel holds the properties of a wheel. The record is carried for
// interface completeness; wheel-rail contact is outside the vertical track
// model.
type Wheel struct {
	MW    float64 // Wheel mass [kg]
	MWRed float64 // Reduced wheel mass [kg]
	RW    float64 // Wheel radius to the contact point [m]
	WProf string  // Running surface profile name
}

// RailRoughness carries a rail roughness spectrum in the frequency domain.
// It plays no role in the deflection computation.
type RailRoughness struct {
	Freq      []float64 // Frequencies [Hz]
	Roughness []float64 // Roughness amplitudes [m]
}
