// Package goroll is a Go library for simulating the vertical vibration of a
// railway rail on a discretely or continuously supported substructure.
//
// # Overview
//
// GoRoll computes the time-domain response of a two-layer Euler-Bernoulli
// beam on an elastic foundation to stationary and moving vertical loads,
// and extracts frequency-domain observables from the deflection histories:
// receptance, mobility, accelerance and the standardised track decay rate
// (TDR).
//
// # Key Features
//
//   - Continuous and discretely mounted track models (slab and ballasted)
//   - Periodic and arranged (non-uniform, optionally stochastic) mounting
//   - Finite-difference discretization with a Crank-Nicolson time scheme
//   - Absorbing boundaries via an exponential rail-damping ramp (PML)
//   - Stationary Gaussian impulse and constant moving-force excitations
//   - FFT-based receptance/mobility/accelerance at arbitrary track points
//   - Track decay rate over the standardised 29-point measurement schedule
//   - Closed-form analytical mobilities for validation
//   - Parallel batch processing of simulation configurations
//
// # Methodology
//
// The rail is modelled as an Euler-Bernoulli beam coupled to a distributed
// mass-spring-damper layer (rail pads and sleepers or a slab, optionally on
// ballast). The coupled system is discretized with central fourth-order
// differences in space and a Crank-Nicolson scheme in time, following:
//
// Stampka, K., & Sarradj, E. (2022). "Influence of railpad stiffness
// variation on railway track vibration".
//
// Outgoing bending waves are absorbed by a perfectly matched layer realised
// as a smoothly rising rail damping coefficient at both domain ends. The
// resulting sparse linear system is factorized once and solved at every
// time step.
//
// Track decay rates follow the point-measurement schedule of EN 15461,
// summing squared mobility ratios over 29 positions along the track.
//
// # Architecture
//
// The package is organized into several key components:
//
//   - internal/components: rail, pad, sleeper, slab and ballast records
//   - internal/arrangement: periodic and stochastic mounting generators
//   - internal/track: track assembly and the discrete mounting map
//   - internal/grid: spatial/temporal grid sizing
//   - internal/boundary: absorbing boundary (damping ramp) construction
//   - internal/discretization: property vectors and sparse matrix assembly
//   - internal/excitation: stationary and moving force models
//   - internal/deflection: Crank-Nicolson time-stepping solver
//   - internal/postprocessing: FFT responses, TDR, result persistence
//   - internal/analytical: closed-form reference mobilities
//   - internal/simulation: YAML configuration and end-to-end runs
//   - internal/runner: parallel batch processor
//   - pkg/sparse: CSC matrices and the two-layer block LU factorization
//   - pkg/utils: mathematical utilities (Brent's method, linspace, etc.)
//
// # Commands
//
// Rail Vibration Simulator (cmd/railsim):
//
// Runs a single simulation described by a YAML configuration file and
// writes the frequency response as CSV, an optional binary deflection dump
// and a JSON run summary.
//
//	./railsim -config configs/sample_config.yaml
//
// Batch Runner (cmd/runner):
//
// Processes multiple YAML configuration files in parallel with a
// configurable worker pool, e.g. for velocity sweeps. Each worker owns its
// discretization, solver and buffers, so runs are independent and
// deterministic.
//
//	./runner -dir configs/sweep -workers 4
//
// # Library Usage
//
// Single simulation:
//
//	tr, _ := track.NewPeriodicBallasted(rail, pad, sleeper, ballast, 0.6, 150)
//	g, _ := grid.New(tr, 2e-5, 0.4, 1.0, 32.73)
//	d, _ := discretization.New(tr, g, boundary.New(7))
//	ex := excitation.NewGaussianImpulse(45.3)
//	res, err := deflection.Run(context.Background(), d, ex, deflection.Options{})
//	resp, _ := postprocessing.NewResponse(res, nil, 100, 3000, 0)
//
// # References
//
//   - Thompson, D. (2024). Railway Noise and Vibration (Second Edition).
//     Elsevier. Chapters 3.2, 3.3 and 3.5 (analytical track mobilities).
//   - EN 15461: Railway applications - Noise emission - Characterisation of
//     the dynamic properties of track sections for pass by noise
//     measurements.
package goroll
