// Package track assembles concrete track structures and their mounting
// maps.
//
// A Track is a tagged variant covering the five supported superstructure
// forms: continuous slab, continuous ballasted, simple periodic slab,
// simple periodic ballasted, and the arranged (non-uniform) slab and
// ballasted forms. The discretization pattern-matches on the tag once to
// build its per-node property vectors.
//
// Discrete tracks expose an ordered mounting map: parallel slices of
// positions and per-mount properties, sorted and strictly increasing,
// starting at x = 0. Positions are accumulated in exact integer microns so
// that mount points land exactly on grid nodes; conversion to node indices
// happens only at discretization time. Continuous tracks have an empty map
// and carry an explicit length.
//
// Slab tracks model the slab as rigid by assigning the RigidMass sentinel,
// which collapses the second-layer equations to zero motion.
package track
