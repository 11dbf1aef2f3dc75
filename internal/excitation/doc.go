// Package excitation defines the force models driving a simulation.
//
// An excitation supplies the nodal force time series and the (possibly
// time-varying) excitation node for each of its loads. Two models exist:
// a stationary Gaussian impulse for frequency-response runs, and a
// constant moving force with a linear start-up ramp for moving-load runs.
// Multiple co-moving loads share one amplitude and differ in their start
// positions.
package excitation
