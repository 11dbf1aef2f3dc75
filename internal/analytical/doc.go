// Package analytical provides closed-form reference mobilities for the
// supported track structures. They serve as validation oracles for the
// finite-difference simulator and are not part of the simulation pipeline.
//
// Implemented methods, after Thompson, Railway Noise and Vibration
// (Second Edition):
//
//   - EBBCont1L: continuously supported Euler-Bernoulli beam on one
//     support layer (chapter 3.2)
//   - EBBCont2L: continuously supported Euler-Bernoulli beam on two
//     support layers (chapter 3.3)
//   - TimoshenkoPeriodic: periodically supported Timoshenko beam via
//     Green's functions (chapter 3.5.1), covering both the rigid-slab
//     one-layer and the ballasted two-layer case
//
// The periodic-support method solves one dense complex system per
// frequency; the complex system is embedded into a real system of twice
// the size and solved with gonum.
package analytical
