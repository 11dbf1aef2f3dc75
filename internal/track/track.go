package track

import (
	"math"

	"github.com/PlatypusBytes/GoRoll/internal/arrangement"
	"github.com/PlatypusBytes/GoRoll/internal/components"
	"github.com/PlatypusBytes/GoRoll/internal/simerr"
)

// Kind tags the concrete track form.
type Kind int

const (
	ContSlab Kind = iota
	ContBallasted
	PeriodicSlab
	PeriodicBallasted
	ArrangedSlab
	ArrangedBallasted
)

// String returns the configuration name of the track kind.
func (k Kind) String() string {
	switch k {
	case ContSlab:
		return "cont_slab"
	case ContBallasted:
		return "cont_ballasted"
	case PeriodicSlab:
		return "periodic_slab"
	case PeriodicBallasted:
		return "periodic_ballasted"
	case ArrangedSlab:
		return "arranged_slab"
	case ArrangedBallasted:
		return "arranged_ballasted"
	}
	return "unknown"
}

// Mount is one entry of the mounting map: the support acting at position X.
// Sleeper and Ballast are nil for mounts without the respective layer.
type Mount struct {
	X       float64 // Position [m]
	Xum     int64   // Exact position [µm]
	Pad     components.DiscrPad
	Sleeper *components.Sleeper
	Ballast *components.Ballast
}

// Track is a fully assembled track structure. Pad and Ballast are set for
// continuous tracks only; Mounts is populated for discrete tracks only.
type Track struct {
	Kind    Kind
	Rail    components.Rail
	Pad     *components.ContPad
	Slab    *components.Slab
	Ballast *components.Ballast
	Mounts  []Mount

	length float64
}

// Length returns l_track: the largest mounting position for discrete
// tracks, the configured beam length for continuous tracks.
func (t *Track) Length() float64 { return t.length }

// Continuous reports whether the support acts per unit length.
func (t *Track) Continuous() bool {
	return t.Kind == ContSlab || t.Kind == ContBallasted
}

// MountPositions returns the ordered mounting positions in meters. The
// slice is freshly allocated.
func (t *Track) MountPositions() []float64 {
	xs := make([]float64, len(t.Mounts))
	for i, m := range t.Mounts {
		xs[i] = m.X
	}
	return xs
}

// MeanSpacing returns the mean distance between consecutive mounts, or 0
// for continuous tracks.
func (t *Track) MeanSpacing() float64 {
	if len(t.Mounts) < 2 {
		return 0
	}
	return (t.Mounts[len(t.Mounts)-1].X - t.Mounts[0].X) / float64(len(t.Mounts)-1)
}

func validateRail(r components.Rail) error {
	switch {
	case r.E <= 0:
		return simerr.Configf("rail.E", "Young's modulus must be positive, got %g", r.E)
	case r.Iyr <= 0:
		return simerr.Configf("rail.Iyr", "area moment must be positive, got %g", r.Iyr)
	case r.Mr <= 0:
		return simerr.Configf("rail.mr", "mass per unit length must be positive, got %g", r.Mr)
	case r.Dr < 0:
		return simerr.Configf("rail.dr", "damping must be non-negative, got %g", r.Dr)
	}
	return nil
}

func validateStiffness(field string, s, d float64) error {
	if s <= 0 {
		return simerr.Configf(field+".stiffness", "vertical stiffness must be positive, got %g", s)
	}
	if d < 0 {
		return simerr.Configf(field+".damping", "damping must be non-negative, got %g", d)
	}
	return nil
}

// NewContSlab builds a continuous slab track of the given length: rail on
// a continuous pad on a rigid slab.
func NewContSlab(rail components.Rail, pad components.ContPad, length float64) (*Track, error) {
	if err := validateRail(rail); err != nil {
		return nil, err
	}
	if err := validateStiffness("pad", pad.Sp[0], pad.VerticalDamping()); err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, simerr.Configf("track.length", "length must be positive, got %g", length)
	}
	return &Track{
		Kind:   ContSlab,
		Rail:   rail,
		Pad:    &pad,
		Slab:   &components.Slab{Ms: components.RigidMass},
		length: length,
	}, nil
}

// NewContBallasted builds a continuous two-layer track: rail on pad on a
// movable slab on ballast. Pad and ballast values are per unit length.
func NewContBallasted(rail components.Rail, pad components.ContPad, slab components.Slab, ballast components.Ballast, length float64) (*Track, error) {
	if err := validateRail(rail); err != nil {
		return nil, err
	}
	if err := validateStiffness("pad", pad.Sp[0], pad.VerticalDamping()); err != nil {
		return nil, err
	}
	if err := validateStiffness("ballast", ballast.Sb[0], ballast.Db[0]); err != nil {
		return nil, err
	}
	if slab.Ms <= 0 {
		return nil, simerr.Configf("slab.mass", "slab mass must be positive, got %g", slab.Ms)
	}
	if length <= 0 {
		return nil, simerr.Configf("track.length", "length must be positive, got %g", length)
	}
	return &Track{
		Kind:    ContBallasted,
		Rail:    rail,
		Pad:     &pad,
		Slab:    &slab,
		Ballast: &ballast,
		length:  length,
	}, nil
}

// micronsPerMeter converts exact-decimal positions to integer microns.
const micronsPerMeter = 1e6

func toMicrons(x float64) int64 {
	return int64(math.Round(x * micronsPerMeter))
}

// NewPeriodicSlab builds a discretely mounted slab track with uniform pads
// at distance d, numMount mounting positions starting at x = 0.
func NewPeriodicSlab(rail components.Rail, pad components.DiscrPad, d float64, numMount int) (*Track, error) {
	if err := validateRail(rail); err != nil {
		return nil, err
	}
	if err := validateStiffness("pad", pad.Sp[0], pad.VerticalDamping()); err != nil {
		return nil, err
	}
	mounts, err := periodicMounts(pad, nil, nil, d, numMount)
	if err != nil {
		return nil, err
	}
	return &Track{
		Kind:   PeriodicSlab,
		Rail:   rail,
		Slab:   &components.Slab{Ms: components.RigidMass},
		Mounts: mounts,
		length: mounts[len(mounts)-1].X,
	}, nil
}

// NewPeriodicBallasted builds a discretely mounted ballasted track with
// uniform pads, sleepers and ballast at distance d. Pad, sleeper and
// ballast values are totals per mounting position.
func NewPeriodicBallasted(rail components.Rail, pad components.DiscrPad, sleeper components.Sleeper, ballast components.Ballast, d float64, numMount int) (*Track, error) {
	if err := validateRail(rail); err != nil {
		return nil, err
	}
	if err := validateStiffness("pad", pad.Sp[0], pad.VerticalDamping()); err != nil {
		return nil, err
	}
	if err := validateStiffness("ballast", ballast.Sb[0], ballast.Db[0]); err != nil {
		return nil, err
	}
	if sleeper.Ms <= 0 {
		return nil, simerr.Configf("sleeper.mass", "sleeper mass must be positive, got %g", sleeper.Ms)
	}
	mounts, err := periodicMounts(pad, &sleeper, &ballast, d, numMount)
	if err != nil {
		return nil, err
	}
	return &Track{
		Kind:   PeriodicBallasted,
		Rail:   rail,
		Mounts: mounts,
		length: mounts[len(mounts)-1].X,
	}, nil
}

func periodicMounts(pad components.DiscrPad, sleeper *components.Sleeper, ballast *components.Ballast, d float64, numMount int) ([]Mount, error) {
	if numMount <= 0 {
		return nil, simerr.Configf("track.num_mount", "mount count must be positive, got %d", numMount)
	}
	if d <= 0 {
		return nil, simerr.Configf("track.distance", "mount distance must be positive, got %g", d)
	}
	dum := toMicrons(d)
	if dum <= 0 {
		return nil, simerr.Configf("track.distance", "mount distance %g below micron resolution", d)
	}
	mounts := make([]Mount, numMount)
	for i := range mounts {
		xum := int64(i) * dum
		mounts[i] = Mount{
			X:       float64(xum) / micronsPerMeter,
			Xum:     xum,
			Pad:     pad,
			Sleeper: sleeper,
			Ballast: ballast,
		}
	}
	return mounts, nil
}

// NewArrangedSlab builds a discretely mounted slab track whose pads and
// mounting distances are drawn from arrangement generators. numMount
// mounts are placed; the distance generator supplies the numMount-1 gaps.
func NewArrangedSlab(rail components.Rail, pads arrangement.Arrangement[components.DiscrPad], distances arrangement.Arrangement[float64], numMount int) (*Track, error) {
	if err := validateRail(rail); err != nil {
		return nil, err
	}
	padSeq, gaps, err := arrangedSequences(pads, distances, numMount)
	if err != nil {
		return nil, err
	}
	mounts, err := arrangedMounts(padSeq, nil, nil, gaps)
	if err != nil {
		return nil, err
	}
	return &Track{
		Kind:   ArrangedSlab,
		Rail:   rail,
		Slab:   &components.Slab{Ms: components.RigidMass},
		Mounts: mounts,
		length: mounts[len(mounts)-1].X,
	}, nil
}

// NewArrangedBallasted builds a discretely mounted ballasted track whose
// pads, sleepers and mounting distances are drawn from arrangement
// generators. The ballast record is lumped at every mount.
func NewArrangedBallasted(rail components.Rail, pads arrangement.Arrangement[components.DiscrPad], sleepers arrangement.Arrangement[components.Sleeper], ballast components.Ballast, distances arrangement.Arrangement[float64], numMount int) (*Track, error) {
	if err := validateRail(rail); err != nil {
		return nil, err
	}
	if err := validateStiffness("ballast", ballast.Sb[0], ballast.Db[0]); err != nil {
		return nil, err
	}
	padSeq, gaps, err := arrangedSequences(pads, distances, numMount)
	if err != nil {
		return nil, err
	}
	sleeperSeq, err := sleepers.Generate(numMount)
	if err != nil {
		return nil, err
	}
	if len(sleeperSeq) < numMount {
		return nil, simerr.Configf("track.sleepers", "arrangement yielded %d of %d sleepers", len(sleeperSeq), numMount)
	}
	mounts, err := arrangedMounts(padSeq, sleeperSeq, &ballast, gaps)
	if err != nil {
		return nil, err
	}
	return &Track{
		Kind:   ArrangedBallasted,
		Rail:   rail,
		Mounts: mounts,
		length: mounts[len(mounts)-1].X,
	}, nil
}

func arrangedSequences(pads arrangement.Arrangement[components.DiscrPad], distances arrangement.Arrangement[float64], numMount int) ([]components.DiscrPad, []float64, error) {
	if numMount <= 0 {
		return nil, nil, simerr.Configf("track.num_mount", "mount count must be positive, got %d", numMount)
	}
	padSeq, err := pads.Generate(numMount)
	if err != nil {
		return nil, nil, err
	}
	if len(padSeq) < numMount {
		return nil, nil, simerr.Configf("track.pads", "arrangement yielded %d of %d pads", len(padSeq), numMount)
	}
	gaps, err := distances.Generate(numMount - 1)
	if err != nil {
		return nil, nil, err
	}
	if len(gaps) < numMount-1 {
		return nil, nil, simerr.Configf("track.distance", "arrangement yielded %d of %d distances", len(gaps), numMount-1)
	}
	return padSeq, gaps, nil
}

func arrangedMounts(pads []components.DiscrPad, sleepers []components.Sleeper, ballast *components.Ballast, gaps []float64) ([]Mount, error) {
	mounts := make([]Mount, len(pads))
	var xum int64
	for i := range mounts {
		if i > 0 {
			dum := toMicrons(gaps[i-1])
			if dum <= 0 {
				return nil, simerr.Configf("track.distance", "non-monotone mounting: gap %d is %g", i-1, gaps[i-1])
			}
			xum += dum
		}
		if err := validateStiffness("pad", pads[i].Sp[0], pads[i].VerticalDamping()); err != nil {
			return nil, err
		}
		mounts[i] = Mount{
			X:       float64(xum) / micronsPerMeter,
			Xum:     xum,
			Pad:     pads[i],
			Ballast: ballast,
		}
		if sleepers != nil {
			if sleepers[i].Ms <= 0 {
				return nil, simerr.Configf("sleeper.mass", "sleeper mass must be positive, got %g", sleepers[i].Ms)
			}
			mounts[i].Sleeper = &sleepers[i]
		}
	}
	return mounts, nil
}
