// Package arrangement provides finite generators of mounting properties
// for tracks with non-uniform support.
//
// An Arrangement produces a fixed number of items: component records (pads,
// sleepers) or numeric values (mounting distances). Two variants exist:
// Periodic repeats a given sequence cyclically, Stochastic samples it
// uniformly with an explicit seeded generator. TruncatedNormal additionally
// samples numeric values from a normal distribution truncated to
// [Min, Max].
//
// Randomness is always explicit and seedable; the package never touches
// process-wide generator state, so arranged tracks are reproducible.
package arrangement
