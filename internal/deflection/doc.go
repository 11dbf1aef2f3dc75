// Package deflection computes the deflection history of a discretized
// track under a given excitation.
//
// The Crank-Nicolson update A u^{n+1} = B u^n + C u^{n-1} + s f^n e_i(n)
// is advanced with the system matrix factorized once; each of the nt-1
// time steps performs two sparse matrix-vector products and one
// pre-factored solve. All buffers are sized up front, so the inner loop
// does not allocate. Runs are deterministic for identical inputs.
//
// A run can be cancelled through its context; cancellation is polled at
// step granularity and leaves the buffer partially filled with the result
// marked invalid. Non-finite values and excitation nodes outside the grid
// are detected per step: the former abort the run, the latter are clamped
// to the boundary with a recorded warning.
package deflection
