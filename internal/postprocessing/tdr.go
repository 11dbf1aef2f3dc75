package postprocessing

import (
	"fmt"
	"math"

	"github.com/PlatypusBytes/GoRoll/internal/components"
	"github.com/PlatypusBytes/GoRoll/internal/deflection"
	"github.com/PlatypusBytes/GoRoll/internal/simerr"
	"github.com/PlatypusBytes/GoRoll/internal/track"
	math_utils "github.com/PlatypusBytes/GoRoll/pkg/utils"
)

// ReferenceSpacing is the reference sleeper distance d_s of the
// measurement schedule [m].
const ReferenceSpacing = 0.6

// Schedule is the standardised point-measurement schedule: the 29
// measurement positions in units of the sleeper spacing, relative to the
// excitation point.
var Schedule = [29]float64{
	0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5, 5.5, 6, 6.5, 7,
	8, 10, 12, 16, 20, 24, 30, 36, 42, 48, 54, 60, 66, 72,
}

// TDRResult is the track decay rate over frequency.
type TDRResult struct {
	Freq     []float64 // Frequencies [Hz]
	Rate     []float64 // Decay rate [dB/m]
	Warnings []string
}

// TrackDecayRate computes the decay rate in dB/m from the mobilities at
// the scheduled measurement positions. xExcit is the excitation position
// of the run; discard follows the same convention as NewResponse.
//
// For continuous and uniform periodic tracks the positions are multiples
// of ReferenceSpacing; for arranged tracks they follow the
// actual local mounting geometry, with mid-span points halfway between
// consecutive mounts. Positions beyond the track end truncate the
// schedule with a warning.
func TrackDecayRate(res *deflection.Result, tr *track.Track, xExcit, fMin, fMax float64, discard int) (*TDRResult, error) {
	out := &TDRResult{}

	positions := schedulePositions(tr, xExcit, &out.Warnings)
	if len(positions) < 2 {
		return nil, simerr.Configf("x_excit", "measurement schedule has %d positions inside the track", len(positions))
	}

	resp, err := NewResponse(res, positions, fMin, fMax, discard)
	if err != nil {
		return nil, err
	}
	out.Warnings = append(out.Warnings, resp.Warnings...)
	out.Freq = resp.Freq

	weights := sliceWidths(positions)

	out.Rate = make([]float64, len(resp.Freq))
	for fi := range resp.Freq {
		m0 := cmplxAbs(resp.Mob[0][fi])
		sum := 0.0
		for k := 1; k < len(positions); k++ {
			mk := cmplxAbs(resp.Mob[k][fi])
			sum += (mk * mk) / (m0 * m0) * weights[k]
		}
		out.Rate[fi] = 4.343 / sum
	}
	return out, nil
}

// schedulePositions maps the schedule onto physical track positions,
// truncating entries beyond the track end.
func schedulePositions(tr *track.Track, xExcit float64, warnings *[]string) []float64 {
	var positions []float64

	arranged := tr.Kind == track.ArrangedSlab || tr.Kind == track.ArrangedBallasted
	if !arranged {
		ds := ReferenceSpacing
		for _, s := range Schedule {
			x := xExcit + s*ds
			if x > tr.Length() {
				*warnings = append(*warnings,
					fmt.Sprintf("schedule position %g*d_s beyond the track end; schedule truncated", s))
				break
			}
			positions = append(positions, x)
		}
		return positions
	}

	// Arranged track: walk the actual mounting geometry. The excitation is
	// anchored to the nearest mount; integer schedule entries land on
	// mounts, half entries in the middle of the span.
	mounts := tr.MountPositions()
	i0 := nearestMount(mounts, xExcit)
	for _, s := range Schedule {
		base := i0 + int(s)
		frac := s - math.Floor(s)
		if base >= len(mounts) || (frac > 0 && base+1 >= len(mounts)) {
			*warnings = append(*warnings,
				fmt.Sprintf("schedule position %g*d_s beyond the last mount; schedule truncated", s))
			break
		}
		x := mounts[base]
		if frac > 0 {
			x += frac * (mounts[base+1] - mounts[base])
		}
		positions = append(positions, x)
	}
	return positions
}

func nearestMount(mounts []float64, x float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, m := range mounts {
		if d := math.Abs(m - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// sliceWidths returns the spatial weight of each measurement position: the
// half-spans to its neighbours (trapezoid rule over the schedule).
func sliceWidths(positions []float64) []float64 {
	n := len(positions)
	w := make([]float64, n)
	for k := range w {
		switch k {
		case 0:
			w[k] = (positions[1] - positions[0]) / 2
		case n - 1:
			w[k] = (positions[n-1] - positions[n-2]) / 2
		default:
			w[k] = (positions[k+1] - positions[k-1]) / 2
		}
	}
	return w
}

// PinnedPinnedFrequency predicts the pinned-pinned resonance of a rail on
// supports at spacing d: f = pi/(2 d²) sqrt(E·Iy/m_r).
func PinnedPinnedFrequency(rail components.Rail, d float64) float64 {
	return math.Pi / (2 * d * d) * math.Sqrt(rail.BendingStiffness()/rail.Mr)
}

// SleeperPassingFrequency predicts the sleeper-passing frequency v/d of a
// load moving at speed v over supports at spacing d.
func SleeperPassingFrequency(v, d float64) float64 {
	return v / d
}

// PeakFrequency locates the spectral peak of mag(freq) inside [lo, hi].
// The discrete maximum is refined by root-finding the interpolated slope
// with Brent's method; when no slope sign change brackets the peak the
// discrete maximum is returned.
func PeakFrequency(freq, mag []float64, lo, hi float64) (float64, error) {
	if len(freq) != len(mag) || len(freq) < 3 {
		return 0, fmt.Errorf("need at least three samples, got %d", len(freq))
	}

	iMax, found := -1, false
	for i, f := range freq {
		if f < lo || f > hi {
			continue
		}
		if !found || mag[i] > mag[iMax] {
			iMax, found = i, true
		}
	}
	if !found {
		return 0, fmt.Errorf("no samples inside [%g, %g]", lo, hi)
	}
	if iMax == 0 || iMax == len(freq)-1 {
		return freq[iMax], nil
	}

	// Interpolated central-difference slope; a peak is its falling zero.
	slope := func(f float64) float64 {
		i := iMax
		for i > 1 && freq[i-1] > f {
			i--
		}
		for i < len(freq)-2 && freq[i+1] < f {
			i++
		}
		s0 := (mag[i] - mag[i-1]) / (freq[i] - freq[i-1])
		s1 := (mag[i+1] - mag[i]) / (freq[i+1] - freq[i])
		w := (f - freq[i-1]) / (freq[i+1] - freq[i-1])
		return (1-w)*s0 + w*s1
	}

	a, b := freq[iMax-1], freq[iMax+1]
	if slope(a)*slope(b) < 0 {
		if root, err := math_utils.Brent(a, b, 1e-9, slope); err == nil {
			return root, nil
		}
	}
	return freq[iMax], nil
}
