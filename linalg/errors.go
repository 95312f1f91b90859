package linalg

import (
	"errors"
	"fmt"

	"github.com/notargets/femkernel/backend"
)

// Sentinel errors. Every failure returned by the package wraps one of these
// with the failing operation, so callers match with errors.Is.
var (
	ErrInvalidDimension     = errors.New("linalg: invalid dimension")
	ErrIndexOutOfRange      = errors.New("linalg: index out of range")
	ErrDimensionMismatch    = errors.New("linalg: dimension mismatch")
	ErrNotSquare            = errors.New("linalg: matrix is not square")
	ErrUnknownRotationOrder = errors.New("linalg: unknown rotation order")
	ErrUnknownDirection     = errors.New("linalg: unknown transform direction")
	ErrBandwidthExceeded    = errors.New("linalg: operand half-bandwidth exceeds receiver")
	ErrReleased             = errors.New("linalg: storage has been released")

	// Numeric failures reported by the backend.
	ErrSingularMatrix      = backend.ErrSingular
	ErrEigenNonConvergence = backend.ErrEigenNonConvergence
	ErrNotPositiveDefinite = backend.ErrNotPositiveDefinite
)

func opErrorf(op string, err error, format string, args ...interface{}) error {
	if format == "" {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), err)
}

func indexError(op string, row, col, rows, cols int) error {
	return opErrorf(op, ErrIndexOutOfRange, "(%d,%d) outside %dx%d", row, col, rows, cols)
}
