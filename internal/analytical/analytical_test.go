package analytical

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PlatypusBytes/GoRoll/internal/components"
	"github.com/PlatypusBytes/GoRoll/internal/track"
	math_utils "github.com/PlatypusBytes/GoRoll/pkg/utils"
)

func uic60(t *testing.T) components.Rail {
	t.Helper()
	r, err := components.RailByName("UIC60")
	require.NoError(t, err)
	return r
}

func TestEBBCont1LDrivingPoint(t *testing.T) {
	tr, err := track.NewContSlab(uic60(t), components.ContPad{Sp: [2]float64{3.0e8, 0}, Dp: [2]float64{3.0e4, 0}}, 90)
	require.NoError(t, err)

	f := math_utils.Linspace(20, 3000, 600)
	mob, err := EBBCont1L{Track: tr}.Mobility(f, []float64{0})
	require.NoError(t, err)
	require.Len(t, mob, 1)
	require.Len(t, mob[0], len(f))

	mags := make([]float64, len(f))
	for i, y := range mob[0] {
		mags[i] = cmplx.Abs(y)
		require.False(t, math.IsNaN(mags[i]), "frequency %g", f[i])
		require.Greater(t, mags[i], 0.0)
	}

	// The rail-on-pad resonance dominates the driving point mobility.
	f0 := math.Sqrt(3.0e8/tr.Rail.Mr) / (2 * math.Pi)
	iMax := 0
	for i := range mags {
		if mags[i] > mags[iMax] {
			iMax = i
		}
	}
	assert.InDelta(t, f0, f[iMax], 0.2*f0)

	// Well above the resonance the beam behaves like a free rail and the
	// mobility decays with frequency.
	assert.Greater(t, mags[iMax], mags[len(mags)-1])
}

func TestEBBCont1LSpatialDecay(t *testing.T) {
	tr, err := track.NewContSlab(uic60(t), components.ContPad{Sp: [2]float64{3.0e8, 0}, Dp: [2]float64{3.0e4, 0}}, 90)
	require.NoError(t, err)

	f := []float64{800}
	mob, err := EBBCont1L{Track: tr}.Mobility(f, []float64{0, 5, 15})
	require.NoError(t, err)

	// Pad damping attenuates the response away from the excitation.
	assert.Greater(t, cmplx.Abs(mob[0][0]), cmplx.Abs(mob[1][0]))
	assert.Greater(t, cmplx.Abs(mob[1][0]), cmplx.Abs(mob[2][0]))
}

func TestEBBCont2LResonances(t *testing.T) {
	tr, err := track.NewContBallasted(
		uic60(t),
		components.ContPad{Sp: [2]float64{3.0e8, 0}, Dp: [2]float64{3.0e4, 0}},
		components.Slab{Ms: 250},
		components.Ballast{Sb: [2]float64{1.0e8, 0}, Db: [2]float64{8.0e4, 0}},
		90,
	)
	require.NoError(t, err)

	f := math_utils.Linspace(20, 3000, 600)
	mob, err := EBBCont2L{Track: tr}.Mobility(f, []float64{0})
	require.NoError(t, err)

	for i, y := range mob[0] {
		require.False(t, math.IsNaN(cmplx.Abs(y)), "frequency %g", f[i])
		require.Greater(t, cmplx.Abs(y), 0.0)
	}
}

func TestEBBKindMismatch(t *testing.T) {
	slab, err := track.NewContSlab(uic60(t), components.ContPad{Sp: [2]float64{3.0e8, 0}, Dp: [2]float64{3.0e4, 0}}, 90)
	require.NoError(t, err)

	_, err = EBBCont2L{Track: slab}.Mobility([]float64{100}, []float64{0})
	require.Error(t, err)

	ballasted, err := track.NewContBallasted(
		uic60(t),
		components.ContPad{Sp: [2]float64{3.0e8, 0}, Dp: [2]float64{3.0e4, 0}},
		components.Slab{Ms: 250},
		components.Ballast{Sb: [2]float64{1.0e8, 0}, Db: [2]float64{8.0e4, 0}},
		90,
	)
	require.NoError(t, err)
	_, err = EBBCont1L{Track: ballasted}.Mobility([]float64{100}, []float64{0})
	require.Error(t, err)
}

func TestTimoshenkoPeriodicSlab(t *testing.T) {
	tr, err := track.NewPeriodicSlab(
		uic60(t),
		components.DiscrPad{Sp: [2]float64{1.8e8, 0}, Etap: 0.25},
		0.6, 21,
	)
	require.NoError(t, err)

	// Excite on the center mount; evaluate on-mount and mid-span.
	xc := tr.Mounts[10].X
	f := math_utils.Linspace(100, 2000, 60)
	mob, err := TimoshenkoPeriodic{Track: tr, XExcit: xc}.Mobility(f, []float64{xc, xc + 0.3})
	require.NoError(t, err)

	for i := range f {
		require.False(t, math.IsNaN(cmplx.Abs(mob[0][i])), "on-mount at %g Hz", f[i])
		require.False(t, math.IsNaN(cmplx.Abs(mob[1][i])), "mid-span at %g Hz", f[i])
		require.Greater(t, cmplx.Abs(mob[0][i]), 0.0)
	}

	// On-mount and mid-span responses differ for a periodically supported
	// rail (pinned-pinned behaviour).
	var diff float64
	for i := range f {
		diff = math.Max(diff, math.Abs(cmplx.Abs(mob[0][i])-cmplx.Abs(mob[1][i])))
	}
	assert.Greater(t, diff, 0.0)
}

func TestTimoshenkoPeriodicBallasted(t *testing.T) {
	tr, err := track.NewPeriodicBallasted(
		uic60(t),
		components.DiscrPad{Sp: [2]float64{1.8e8, 0}, Etap: 0.25},
		components.Sleeper{Ms: 150},
		components.Ballast{Sb: [2]float64{1.05e8, 0}, Etab: 1.0, Db: [2]float64{4.8e4, 0}},
		0.6, 21,
	)
	require.NoError(t, err)

	xc := tr.Mounts[10].X
	f := math_utils.Linspace(100, 2000, 40)
	mob, err := TimoshenkoPeriodic{Track: tr, XExcit: xc}.Mobility(f, []float64{xc})
	require.NoError(t, err)

	for i := range f {
		v := cmplx.Abs(mob[0][i])
		require.False(t, math.IsNaN(v), "frequency %g", f[i])
		require.Greater(t, v, 0.0)
	}
}

func TestTimoshenkoRequiresDiscreteTrack(t *testing.T) {
	tr, err := track.NewContSlab(uic60(t), components.ContPad{Sp: [2]float64{3.0e8, 0}, Dp: [2]float64{3.0e4, 0}}, 90)
	require.NoError(t, err)
	_, err = TimoshenkoPeriodic{Track: tr, XExcit: 45}.Mobility([]float64{100}, []float64{45})
	require.Error(t, err)
}
