// Package simulation ties the component packages together: it loads a
// YAML configuration describing a track, a grid and an excitation, runs
// the finite-difference simulation and writes the configured outputs
// (response CSV, optional binary deflection dump, JSON summary).
//
// The package is the single configuration surface shared by the railsim
// command and the batch runner; workers of the runner call Run with their
// own configurations and share no mutable state.
package simulation
