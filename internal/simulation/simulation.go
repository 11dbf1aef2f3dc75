package simulation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PlatypusBytes/GoRoll/internal/boundary"
	"github.com/PlatypusBytes/GoRoll/internal/deflection"
	"github.com/PlatypusBytes/GoRoll/internal/discretization"
	"github.com/PlatypusBytes/GoRoll/internal/excitation"
	"github.com/PlatypusBytes/GoRoll/internal/grid"
	"github.com/PlatypusBytes/GoRoll/internal/postprocessing"
	"github.com/PlatypusBytes/GoRoll/internal/simerr"
	"github.com/PlatypusBytes/GoRoll/internal/track"
)

// Outcome bundles the results of one run.
type Outcome struct {
	Track    *track.Track
	Grid     *grid.Grid
	Result   *deflection.Result
	Response *postprocessing.Response
	TDR      *postprocessing.TDRResult
	Summary  Summary
}

// Summary is the JSON run summary.
type Summary struct {
	TrackType         string    `json:"track_type"`
	Dx                float64   `json:"dx"`
	Dt                float64   `json:"dt"`
	Nx                int       `json:"nx"`
	Nt                int       `json:"nt"`
	ExcitationKind    string    `json:"excitation_kind"`
	ExcitationNodes   []int     `json:"excitation_nodes"`
	PinnedPinnedFreq  float64   `json:"pinned_pinned_frequency,omitempty"`
	SleeperPassing    float64   `json:"sleeper_passing_frequency,omitempty"`
	Warnings          []string  `json:"warnings,omitempty"`
	ResponsePositions []float64 `json:"response_positions,omitempty"`
}

// buildExcitation maps the excitation spec onto a force model.
func (c *Config) buildExcitation() (excitation.Excitation, error) {
	e := &c.Excitation
	switch e.Kind {
	case "stationary-gaussian":
		ex := excitation.NewGaussianImpulse(e.XExcit...)
		if e.Sigma > 0 {
			ex.Sigma = e.Sigma
		}
		if e.Amplitude != 0 {
			ex.A = e.Amplitude
		}
		return ex, nil

	case "moving-constant":
		ex := excitation.NewConstantForce(e.XExcit...)
		if e.Amplitude != 0 {
			ex.Amplitude = e.Amplitude
		}
		if e.Velocity > 0 {
			ex.Velocity = e.Velocity
		}
		if e.RampFraction > 0 {
			ex.RampFrac = e.RampFraction
		}
		return ex, nil

	default:
		return nil, simerr.Configf("excitation.kind", "unknown excitation kind %q", e.Kind)
	}
}

// Run executes the configured simulation end to end and writes the
// configured outputs.
func Run(ctx context.Context, cfg Config) (*Outcome, error) {
	tr, err := cfg.BuildTrack()
	if err != nil {
		return nil, err
	}
	g, err := grid.New(tr, cfg.Simulation.Dt, cfg.Simulation.Duration, cfg.Simulation.Bx, cfg.Simulation.BoundaryLength)
	if err != nil {
		return nil, err
	}
	d, err := discretization.New(tr, g, boundary.New(cfg.Simulation.Alpha))
	if err != nil {
		return nil, err
	}
	ex, err := cfg.buildExcitation()
	if err != nil {
		return nil, err
	}

	res, err := deflection.Run(ctx, d, ex, deflection.Options{KeepSupport: cfg.Simulation.KeepSupport})
	if err != nil {
		return nil, err
	}

	discard := postprocessing.DiscardSamples(ex.RampFraction(), g.Nt)
	resp, err := postprocessing.NewResponse(res, cfg.Response.XResponse, cfg.Response.FMin, cfg.Response.FMax, discard)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Track: tr, Grid: g, Result: res, Response: resp}

	if cfg.Response.TDR {
		if len(cfg.Excitation.XExcit) == 0 {
			return nil, simerr.Configf("excitation.x_excit", "decay rate needs an excitation position")
		}
		tdr, err := postprocessing.TrackDecayRate(res, tr, cfg.Excitation.XExcit[0], cfg.Response.FMin, cfg.Response.FMax, discard)
		if err != nil {
			return nil, err
		}
		out.TDR = tdr
	}

	out.Summary = Summary{
		TrackType:         tr.Kind.String(),
		Dx:                g.Dx,
		Dt:                g.Dt,
		Nx:                g.Nx,
		Nt:                g.Nt,
		ExcitationKind:    cfg.Excitation.Kind,
		ExcitationNodes:   res.ExcitIndices,
		Warnings:          append(append([]string{}, res.Warnings...), resp.Warnings...),
		ResponsePositions: cfg.Response.XResponse,
	}
	if !tr.Continuous() && tr.MeanSpacing() > 0 {
		out.Summary.PinnedPinnedFreq = postprocessing.PinnedPinnedFrequency(tr.Rail, tr.MeanSpacing())
		if cfg.Excitation.Kind == "moving-constant" {
			out.Summary.SleeperPassing = postprocessing.SleeperPassingFrequency(cfg.Excitation.Velocity, tr.MeanSpacing())
		}
	}

	if err := writeOutputs(cfg, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RunFile loads a configuration file and runs it.
func RunFile(ctx context.Context, path string) (*Outcome, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return Run(ctx, cfg)
}

func writeOutputs(cfg Config, out *Outcome) error {
	if p := cfg.Output.ResponseCSV; p != "" {
		if err := writeTo(p, func(f *os.File) error {
			return postprocessing.WriteResponseCSV(f, out.Response, 0)
		}); err != nil {
			return err
		}
	}
	if p := cfg.Output.DeflectionFile; p != "" {
		if err := writeTo(p, func(f *os.File) error {
			return postprocessing.WriteDeflection(f, out.Result)
		}); err != nil {
			return err
		}
	}
	if p := cfg.Output.Summary; p != "" {
		data, err := json.MarshalIndent(out.Summary, "", "\t")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		if err := writeTo(p, func(f *os.File) error {
			_, err := f.Write(data)
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeTo(path string, fn func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Sync()
}
