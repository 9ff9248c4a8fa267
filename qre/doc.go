// Package qre computes a branch of the logit quantal response equilibrium
// correspondence of an extensive-form game by numerical continuation.
//
// # Reading Guide
//
// Start with these three files to understand the solver kernel:
//   - linalg.go: Givens rotations, QR decomposition, and the Newton step
//   - system.go: the residual whose zero set is the equilibrium curve, and
//     its Jacobian
//   - tracer.go: the adaptive Euler predictor / Newton corrector loop with
//     stepsize control, orientation tracking, and support reduction
//
// logit.go is the entry point (LogitSolver); status.go holds the progress and
// cancellation hooks.
//
// # Algorithm
//
// The solver is a basic Euler-Newton continuation method with adaptive step
// size, after the ideas and codes in Allgower and Georg's _Numerical
// Continuation Methods_. Starting from the uniform profile at lambda = 0, it
// follows the curve of solutions of the logit response conditions as lambda
// grows, dropping actions from the support when their probabilities collapse
// to the boundary of the simplex.
//
// # Conventions
//
// The Jacobian is stored transposed: variables on rows, equations on columns.
// QR is therefore applied to an (n+1) x n matrix and the last row of the
// orthogonal factor spans the kernel of the equation system, which is the
// curve tangent. Swapping this convention yields silently wrong tangents.
package qre
