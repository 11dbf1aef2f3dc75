// Package postprocessing extracts frequency-domain observables from a
// frozen deflection history.
//
// Response computes receptance, mobility and accelerance at arbitrary
// track positions from one-sided FFTs of the force and deflection series.
// The leading ramp of moving-load runs is discarded sample-exactly before
// transformation; the discard length is a first-class parameter.
//
// TrackDecayRate evaluates the standardised decay rate in dB/m from the
// point mobilities at the 29 measurement positions of the EN 15461
// schedule. For uniform and continuous tracks the positions follow from
// the reference sleeper spacing in closed form; for arranged tracks they
// are derived from the actual mounting geometry around the excitation.
//
// Requested positions outside the computational domain are soft errors:
// they are clamped (responses) or truncated (decay-rate schedule) with a
// warning recorded on the result.
package postprocessing
