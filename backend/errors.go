package backend

import "errors"

var (
	// ErrSingular is returned when a factorization finds the matrix singular
	// or too ill-conditioned to trust the result.
	ErrSingular = errors.New("backend: singular matrix")

	// ErrEigenNonConvergence is returned when an eigen decomposition fails.
	ErrEigenNonConvergence = errors.New("backend: eigen decomposition did not converge")

	// ErrNotPositiveDefinite is returned by the Cholesky based solvers.
	ErrNotPositiveDefinite = errors.New("backend: matrix is not positive definite")
)
