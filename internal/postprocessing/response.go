package postprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/PlatypusBytes/GoRoll/internal/deflection"
	"github.com/PlatypusBytes/GoRoll/internal/simerr"
)

// Default frequency band of the response evaluation [Hz].
const (
	DefaultFMin = 100.0
	DefaultFMax = 3000.0
)

// Response holds receptance, mobility and accelerance per response point,
// masked to the requested frequency band.
type Response struct {
	Freq     []float64      // Frequencies [Hz]
	Rez      [][]complex128 // Receptance per point [m/N]
	Mob      [][]complex128 // Mobility per point [m/(N·s)]
	Accel    [][]complex128 // Accelerance per point [m/(N·s²)]
	Indices  []int          // Response node indices
	Warnings []string
}

// DiscardSamples returns the number of leading samples to drop before the
// FFT: exactly ceil(rampFraction*nt). The small bias keeps products that
// land on an integer from spilling into the next sample.
func DiscardSamples(rampFraction float64, nt int) int {
	return int(math.Ceil(rampFraction*float64(nt) - 1e-9))
}

// NewResponse computes the frequency response at the given positions.
// A nil xResp evaluates the driving point(s) of the run. discard leading
// samples are dropped from both the force and the deflection series, and
// the result is masked to (fMin, fMax].
func NewResponse(res *deflection.Result, xResp []float64, fMin, fMax float64, discard int) (*Response, error) {
	if !res.Valid {
		return nil, simerr.Numericalf(-1, "cannot postprocess an invalid run")
	}
	if fMax <= fMin {
		return nil, simerr.Configf("f_max", "empty frequency band (%g, %g]", fMin, fMax)
	}
	g := res.Grid
	if discard < 0 || g.Nt-discard < 4 {
		return nil, simerr.Configf("discard", "%d of %d samples discarded", discard, g.Nt)
	}

	r := &Response{}
	if xResp == nil {
		r.Indices = append(r.Indices, res.ExcitIndices...)
	} else {
		for _, x := range xResp {
			idx := g.NodeIndex(x)
			if idx < 0 || idx >= g.Nx {
				clamped := min(max(idx, 0), g.Nx-1)
				r.Warnings = append(r.Warnings,
					fmt.Sprintf("response position %g outside the domain; clamped to node %d", x, clamped))
				idx = clamped
			}
			r.Indices = append(r.Indices, idx)
		}
	}

	n := g.Nt - discard
	fft := fourier.NewFFT(n)

	// Force spectrum, computed once: one-sided, rectangular window.
	ffft := spectrum(fft, res.Force[discard:g.Nt])

	nf := len(ffft)
	freq := make([]float64, nf)
	for i := range freq {
		freq[i] = fft.Freq(i) / g.Dt
	}

	// Frequency band mask (fMin, fMax].
	var keep []int
	for i, f := range freq {
		if f > fMin && f <= fMax {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, simerr.Configf("f_min", "no FFT bins inside (%g, %g]", fMin, fMax)
	}

	r.Freq = make([]float64, len(keep))
	for j, i := range keep {
		r.Freq[j] = freq[i]
	}

	for _, ind := range r.Indices {
		row := res.Row(ind)
		ufft := spectrum(fft, row[discard:g.Nt])

		rez := make([]complex128, len(keep))
		mob := make([]complex128, len(keep))
		accel := make([]complex128, len(keep))
		for j, i := range keep {
			omega := 2 * math.Pi * freq[i]
			rez[j] = ufft[i] / ffft[i]
			mob[j] = complex(0, omega) * rez[j]
			accel[j] = complex(-omega*omega, 0) * rez[j]
		}
		r.Rez = append(r.Rez, rez)
		r.Mob = append(r.Mob, mob)
		r.Accel = append(r.Accel, accel)
	}
	return r, nil
}

// spectrum computes the scaled one-sided spectrum 2/n * FFT(signal).
func spectrum(fft *fourier.FFT, signal []float64) []complex128 {
	coeffs := fft.Coefficients(nil, signal)
	s := complex(2/float64(len(signal)), 0)
	for i := range coeffs {
		coeffs[i] *= s
	}
	return coeffs
}

// MagnitudeAt interpolates the mobility magnitude of point p at frequency
// f [Hz] linearly between the surrounding FFT bins.
func (r *Response) MagnitudeAt(p int, f float64) float64 {
	freq := r.Freq
	if f <= freq[0] {
		return cmplxAbs(r.Mob[p][0])
	}
	last := len(freq) - 1
	if f >= freq[last] {
		return cmplxAbs(r.Mob[p][last])
	}
	for i := 1; i <= last; i++ {
		if freq[i] >= f {
			w := (f - freq[i-1]) / (freq[i] - freq[i-1])
			return (1-w)*cmplxAbs(r.Mob[p][i-1]) + w*cmplxAbs(r.Mob[p][i])
		}
	}
	return cmplxAbs(r.Mob[p][last])
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
