// Package discretization assembles the linear system of the
// finite-difference track model.
//
// The coupled rail/support equations
//
//	m_r ü_r + d_r u̇_r + E·Iy u_r'''' + s_p (u_r - u_s) + d_p (u̇_r - u̇_s) = f
//	m_s ü_s + (s_p+s_b) u_s + (d_p+d_b) u̇_s - s_p u_r - d_p u̇_r = 0
//
// are discretized with central fourth-order differences in space and a
// Crank-Nicolson scheme in time, yielding the update rule
//
//	A u^{n+1} = B u^n + C u^{n-1} + dt²/(m_r Δx) f^n e_i(n)
//
// with three sparse 2nx x 2nx matrices. The support properties enter as
// per-node vectors: uniform for continuous tracks, lumped at the mounting
// node and scaled by 1/Δx for discrete tracks. Nodes without a mount keep
// the unit support mass set at initialization, which turns their support
// rows into an inert recurrence that stays at zero.
package discretization
