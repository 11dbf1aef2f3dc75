// Package math_utils provides mathematical utility functions for numerical
// computations used throughout the GoRoll project.
//
// The package implements various numerical methods including:
//   - Root finding algorithms (Brent's method)
//   - Linear space generator (similar to numpy's linspace)
//
// These utilities support the core computational needs of the
// finite-difference simulation and the frequency-domain postprocessing.
package math_utils
