package track

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PlatypusBytes/GoRoll/internal/arrangement"
	"github.com/PlatypusBytes/GoRoll/internal/components"
	"github.com/PlatypusBytes/GoRoll/internal/simerr"
)

func uic60(t *testing.T) components.Rail {
	t.Helper()
	rail, err := components.RailByName("UIC60")
	require.NoError(t, err)
	return rail
}

func TestPeriodicBallastedPositions(t *testing.T) {
	tr, err := NewPeriodicBallasted(
		uic60(t),
		components.DiscrPad{Sp: [2]float64{1.8e8, 0}, Dp: [2]float64{1.8e4, 0}},
		components.Sleeper{Ms: 150},
		components.Ballast{Sb: [2]float64{1.05e8, 0}, Db: [2]float64{4.8e4, 0}},
		0.6, 150,
	)
	require.NoError(t, err)
	require.Len(t, tr.Mounts, 150)

	// Exact-decimal accumulation: |x_i - i*d| <= 1e-12 for every mount.
	for i, m := range tr.Mounts {
		assert.LessOrEqual(t, math.Abs(m.X-float64(i)*0.6), 1e-12, "mount %d", i)
		require.NotNil(t, m.Sleeper)
		require.NotNil(t, m.Ballast)
	}
	assert.InDelta(t, 89.4, tr.Length(), 1e-12)
	assert.InDelta(t, 0.6, tr.MeanSpacing(), 1e-12)
	assert.False(t, tr.Continuous())
}

func TestPeriodicSlabRigid(t *testing.T) {
	tr, err := NewPeriodicSlab(
		uic60(t),
		components.DiscrPad{Sp: [2]float64{1.8e8, 0}, Dp: [2]float64{3.0e4, 0}},
		0.6, 150,
	)
	require.NoError(t, err)
	assert.Equal(t, components.RigidMass, tr.Slab.Ms)
	for _, m := range tr.Mounts {
		assert.Nil(t, m.Sleeper)
		assert.Nil(t, m.Ballast)
	}
}

func TestPositionsStrictlyIncreasing(t *testing.T) {
	tr, err := NewPeriodicSlab(
		uic60(t),
		components.DiscrPad{Sp: [2]float64{1.8e8, 0}, Dp: [2]float64{3.0e4, 0}},
		0.65, 40,
	)
	require.NoError(t, err)
	for i := 1; i < len(tr.Mounts); i++ {
		assert.Greater(t, tr.Mounts[i].Xum, tr.Mounts[i-1].Xum)
	}
	assert.Equal(t, int64(0), tr.Mounts[0].Xum)
}

func TestContSlab(t *testing.T) {
	tr, err := NewContSlab(
		uic60(t),
		components.ContPad{Sp: [2]float64{3.0e8, 0}, Dp: [2]float64{3.0e4, 0}},
		90,
	)
	require.NoError(t, err)
	assert.True(t, tr.Continuous())
	assert.Empty(t, tr.Mounts)
	assert.Equal(t, 90.0, tr.Length())
	assert.Equal(t, components.RigidMass, tr.Slab.Ms)
}

func TestContBallasted(t *testing.T) {
	tr, err := NewContBallasted(
		uic60(t),
		components.ContPad{Sp: [2]float64{3.0e8, 0}, Dp: [2]float64{3.0e4, 0}},
		components.Slab{Ms: 250},
		components.Ballast{Sb: [2]float64{1.0e8, 0}, Db: [2]float64{8.0e4, 0}},
		90,
	)
	require.NoError(t, err)
	assert.Equal(t, 250.0, tr.Slab.Ms)
	require.NotNil(t, tr.Ballast)
}

func TestConfigErrors(t *testing.T) {
	rail := uic60(t)
	pad := components.DiscrPad{Sp: [2]float64{1.8e8, 0}}
	sleeper := components.Sleeper{Ms: 150}
	ballast := components.Ballast{Sb: [2]float64{1.05e8, 0}}

	tests := []struct {
		name string
		err  func() error
	}{
		{"zero mounts", func() error {
			_, err := NewPeriodicSlab(rail, pad, 0.6, 0)
			return err
		}},
		{"negative distance", func() error {
			_, err := NewPeriodicSlab(rail, pad, -0.6, 10)
			return err
		}},
		{"zero pad stiffness", func() error {
			_, err := NewPeriodicSlab(rail, components.DiscrPad{}, 0.6, 10)
			return err
		}},
		{"negative sleeper mass", func() error {
			_, err := NewPeriodicBallasted(rail, pad, components.Sleeper{Ms: -1}, ballast, 0.6, 10)
			return err
		}},
		{"zero ballast stiffness", func() error {
			_, err := NewPeriodicBallasted(rail, pad, sleeper, components.Ballast{}, 0.6, 10)
			return err
		}},
		{"zero length continuous", func() error {
			_, err := NewContSlab(rail, components.ContPad{Sp: [2]float64{3e8, 0}}, 0)
			return err
		}},
		{"negative rail mass", func() error {
			bad := rail
			bad.Mr = -60
			_, err := NewPeriodicSlab(bad, pad, 0.6, 10)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.err()
			require.Error(t, err)
			assert.True(t, simerr.IsConfig(err), "expected a configuration error, got %v", err)
		})
	}
}

func TestArrangedPeriodicEquivalence(t *testing.T) {
	rail := uic60(t)
	pad := components.DiscrPad{Sp: [2]float64{1.8e8, 0}, Dp: [2]float64{1.8e4, 0}}
	sleeper := components.Sleeper{Ms: 150}
	ballast := components.Ballast{Sb: [2]float64{1.05e8, 0}, Db: [2]float64{4.8e4, 0}}

	arranged, err := NewArrangedBallasted(
		rail,
		arrangement.Constant(pad),
		arrangement.Constant(sleeper),
		ballast,
		arrangement.Constant(0.6),
		20,
	)
	require.NoError(t, err)

	periodic, err := NewPeriodicBallasted(rail, pad, sleeper, ballast, 0.6, 20)
	require.NoError(t, err)

	require.Len(t, arranged.Mounts, len(periodic.Mounts))
	for i := range arranged.Mounts {
		assert.Equal(t, periodic.Mounts[i].Xum, arranged.Mounts[i].Xum)
	}
}

func TestArrangedAlternatingPads(t *testing.T) {
	rail := uic60(t)
	soft := components.DiscrPad{Sp: [2]float64{1.0e8, 0}, Dp: [2]float64{1.0e4, 0}}
	stiff := components.DiscrPad{Sp: [2]float64{3.0e8, 0}, Dp: [2]float64{3.0e4, 0}}

	tr, err := NewArrangedSlab(
		rail,
		arrangement.Periodic[components.DiscrPad]{Items: []components.DiscrPad{soft, stiff}},
		arrangement.Constant(0.6),
		6,
	)
	require.NoError(t, err)
	assert.Equal(t, 1.0e8, tr.Mounts[0].Pad.Sp[0])
	assert.Equal(t, 3.0e8, tr.Mounts[1].Pad.Sp[0])
	assert.Equal(t, 1.0e8, tr.Mounts[2].Pad.Sp[0])
}

func TestArrangedStochasticDistances(t *testing.T) {
	rail := uic60(t)
	pad := components.DiscrPad{Sp: [2]float64{1.8e8, 0}, Dp: [2]float64{1.8e4, 0}}

	tr, err := NewArrangedSlab(
		rail,
		arrangement.Constant(pad),
		arrangement.TruncatedNormal{Mean: 0.6, Std: 0.05, Min: 0.5, Max: 0.7, Seed: 3},
		30,
	)
	require.NoError(t, err)
	for i := 1; i < len(tr.Mounts); i++ {
		gap := tr.Mounts[i].X - tr.Mounts[i-1].X
		assert.GreaterOrEqual(t, gap, 0.5-1e-9)
		assert.LessOrEqual(t, gap, 0.7+1e-9)
	}

	// Same seed, same geometry.
	tr2, err := NewArrangedSlab(
		rail,
		arrangement.Constant(pad),
		arrangement.TruncatedNormal{Mean: 0.6, Std: 0.05, Min: 0.5, Max: 0.7, Seed: 3},
		30,
	)
	require.NoError(t, err)
	for i := range tr.Mounts {
		assert.Equal(t, tr.Mounts[i].Xum, tr2.Mounts[i].Xum)
	}
}

func TestArrangedEmptyGenerator(t *testing.T) {
	_, err := NewArrangedSlab(
		uic60(t),
		arrangement.Periodic[components.DiscrPad]{},
		arrangement.Constant(0.6),
		10,
	)
	require.Error(t, err)
	assert.True(t, simerr.IsConfig(err))
}
