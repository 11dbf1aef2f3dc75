package simulation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PlatypusBytes/GoRoll/internal/simerr"
	"github.com/PlatypusBytes/GoRoll/internal/track"
)

const sampleConfig = `
rail:
  name: UIC60
track:
  type: periodic_ballasted
  distance: 0.6
  num_mount: 20
  pad:
    stiffness: [1.8e8, 0]
    damping: [1.8e4, 0]
  sleeper:
    mass: 150
  ballast:
    stiffness: [1.05e8, 0]
    damping: [4.8e4, 0]
simulation:
  dt: 2.0e-5
  duration: 0.01
  boundary_length: 3.0
excitation:
  kind: stationary-gaussian
  x_excit: [5.7]
response:
  f_min: 100
  f_max: 3000
`

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1.0, cfg.Simulation.Bx)
	assert.Equal(t, 100.0, cfg.Response.FMin)
	assert.Equal(t, 3000.0, cfg.Response.FMax)
	assert.Equal(t, "periodic_ballasted", cfg.Track.Type)
	assert.Equal(t, []float64{5.7}, cfg.Excitation.XExcit)
}

func TestBuildTrackVariants(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	tr, err := cfg.BuildTrack()
	require.NoError(t, err)
	assert.Equal(t, track.PeriodicBallasted, tr.Kind)
	assert.Len(t, tr.Mounts, 20)

	cfg.Track.Type = "cont_slab"
	cfg.Track.Length = 30
	tr, err = cfg.BuildTrack()
	require.NoError(t, err)
	assert.Equal(t, track.ContSlab, tr.Kind)

	cfg.Track.Type = "bogus"
	_, err = cfg.BuildTrack()
	require.Error(t, err)
	assert.True(t, simerr.IsConfig(err))
}

func TestBuildArrangedTrack(t *testing.T) {
	body := sampleConfig + `
`
	path := writeConfig(t, t.TempDir(), body)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	cfg.Track.Type = "arranged_ballasted"
	cfg.Track.Arrangement.Mode = "stochastic"
	cfg.Track.Arrangement.Seed = 9
	cfg.Track.Arrangement.Distance.Mean = 0.6
	cfg.Track.Arrangement.Distance.Std = 0.04
	cfg.Track.Arrangement.Distance.Min = 0.5
	cfg.Track.Arrangement.Distance.Max = 0.7

	tr, err := cfg.BuildTrack()
	require.NoError(t, err)
	assert.Equal(t, track.ArrangedBallasted, tr.Kind)
	require.Len(t, tr.Mounts, 20)

	// Reproducible with the same seed.
	tr2, err := cfg.BuildTrack()
	require.NoError(t, err)
	for i := range tr.Mounts {
		assert.Equal(t, tr.Mounts[i].Xum, tr2.Mounts[i].Xum)
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, sampleConfig)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	cfg.Output.ResponseCSV = filepath.Join(dir, "out", "response.csv")
	cfg.Output.Summary = filepath.Join(dir, "out", "summary.json")
	cfg.Output.DeflectionFile = filepath.Join(dir, "out", "deflection.bin")
	cfg.Response.TDR = true

	out, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, out.Result.Valid)
	require.NotNil(t, out.Response)
	require.NotNil(t, out.TDR)
	assert.Greater(t, out.Summary.PinnedPinnedFreq, 0.0)

	for _, p := range []string{cfg.Output.ResponseCSV, cfg.Output.Summary, cfg.Output.DeflectionFile} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Greater(t, info.Size(), int64(0), p)
	}
}

func TestRunUnknownExcitation(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	cfg.Excitation.Kind = "impulse-hammer"

	_, err = Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, simerr.IsConfig(err))
}

func TestRunMovingLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	cfg.Excitation.Kind = "moving-constant"
	cfg.Excitation.XExcit = []float64{3.0}
	cfg.Excitation.Velocity = 60
	cfg.Excitation.Amplitude = 6.5e4
	cfg.Excitation.RampFraction = 0.1
	cfg.Response.FMin = 20
	cfg.Response.FMax = 2000

	out, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, out.Summary.SleeperPassing, 1e-9)
}
