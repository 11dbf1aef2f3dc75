// Package sparse provides the compressed sparse column matrices and the
// factorization used by the finite-difference time stepper.
//
// The Crank-Nicolson system matrix of the two-layer track model has a fixed
// block structure: the rail-rail block is banded (pentadiagonal stencil of
// the fourth spatial derivative plus per-node diagonal terms) and the three
// remaining blocks are diagonal. TwoLayerLU exploits this by eliminating
// the sleeper block analytically (a Schur complement onto the rail block,
// which stays pentadiagonal) and factorizing the result with a banded LU
// without pivoting. Pivoting is not needed: with non-negative damping the
// Schur complement is an identity plus a positive semidefinite stencil
// plus non-negative diagonal terms, which factorizes stably.
//
// CSC implements gonum's mat.Matrix, so the matrices interoperate with the
// rest of the numeric stack.
package sparse
