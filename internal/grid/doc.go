// Package grid derives the spatial and temporal discretization parameters
// of a simulation from the track, the time step and the requested
// simulation time.
//
// The spatial step is bounded below by a stability floor derived from the
// bending-wave dispersion of the rail, then snapped so that the standard
// sleeper spacing of 0.6 m is an integer multiple of dx. This guarantees
// that mounting positions at multiples of 0.6 m land exactly on grid
// nodes; other spacings are mapped to the node at or below the position.
package grid
