package arrangement

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/PlatypusBytes/GoRoll/internal/simerr"
)

// Arrangement generates a fixed count of items for track assembly.
type Arrangement[T any] interface {
	// Generate returns exactly n items, or a configuration error when the
	// arrangement cannot supply them.
	Generate(n int) ([]T, error)
}

// Periodic repeats the given items cyclically.
type Periodic[T any] struct {
	Items []T
}

// Constant is a Periodic arrangement of a single item.
func Constant[T any](item T) Periodic[T] {
	return Periodic[T]{Items: []T{item}}
}

// Generate returns n items by cycling through Items.
func (p Periodic[T]) Generate(n int) ([]T, error) {
	if len(p.Items) == 0 {
		return nil, simerr.Configf("arrangement", "periodic arrangement has no items")
	}
	if n < 0 {
		return nil, simerr.Configf("arrangement", "negative count %d", n)
	}
	out := make([]T, n)
	for i := range out {
		out[i] = p.Items[i%len(p.Items)]
	}
	return out, nil
}

// Stochastic samples the given items independently and uniformly, driven by
// an explicit seed.
type Stochastic[T any] struct {
	Items []T
	Seed  uint64
}

// Generate returns n independent uniform samples of Items.
func (s Stochastic[T]) Generate(n int) ([]T, error) {
	if len(s.Items) == 0 {
		return nil, simerr.Configf("arrangement", "stochastic arrangement has no items")
	}
	if n < 0 {
		return nil, simerr.Configf("arrangement", "negative count %d", n)
	}
	rng := rand.New(rand.NewPCG(s.Seed, 0))
	out := make([]T, n)
	for i := range out {
		out[i] = s.Items[rng.IntN(len(s.Items))]
	}
	return out, nil
}

// TruncatedNormal samples numeric values from a normal distribution with
// the given mean and standard deviation, truncated to [Min, Max] by
// rejection. It is typically used for mounting distances.
type TruncatedNormal struct {
	Mean float64
	Std  float64
	Min  float64
	Max  float64
	Seed uint64
}

// maxRejections bounds the rejection loop for pathological truncation
// windows far out in the distribution tails.
const maxRejections = 10000

// Generate returns n truncated-normal samples.
func (t TruncatedNormal) Generate(n int) ([]float64, error) {
	if t.Std <= 0 {
		return nil, simerr.Configf("arrangement.std", "standard deviation must be positive, got %g", t.Std)
	}
	if t.Min >= t.Max {
		return nil, simerr.Configf("arrangement.min", "empty truncation window [%g, %g]", t.Min, t.Max)
	}
	if n < 0 {
		return nil, simerr.Configf("arrangement", "negative count %d", n)
	}

	dist := distuv.Normal{Mu: t.Mean, Sigma: t.Std, Src: rand.NewPCG(t.Seed, 0)}
	out := make([]float64, n)
	for i := range out {
		accepted := false
		for r := 0; r < maxRejections; r++ {
			v := dist.Rand()
			if v >= t.Min && v <= t.Max {
				out[i] = v
				accepted = true
				break
			}
		}
		if !accepted {
			return nil, simerr.Configf("arrangement", "truncation window [%g, %g] rejects the distribution", t.Min, t.Max)
		}
	}
	return out, nil
}
