// Package linalg is the matrix and vector kernel used for stiffness and mass
// matrix assembly, coordinate transformation and reduction.
//
// Five storage strategies share the Matrix contract:
//
//	Dense               full row-major storage
//	BandedSym1D         upper band, one flat array plus a column address table
//	BandedSym2D         upper band, one row of width hbw+1 per matrix row
//	CompressedDiagonal  general band in compressed-diagonal layout
//	PackedSymmetric     upper triangle packed row by row
//
// The sparse kinds only materialize entries within their half-bandwidth.
// Writes outside the band are dropped and reads outside the band return 0;
// this is not an error. Indices outside the declared rows and columns always
// are.
package linalg

import (
	"fmt"

	"github.com/notargets/femkernel/backend"
)

// Matrix is the contract shared by every storage kind. The assembly layer
// accumulates element contributions through Add.
type Matrix interface {
	Rows() int
	Cols() int
	At(row, col int) (float64, error)
	Set(row, col int, v float64) error
	Add(row, col int, v float64) error

	// Release drops the backing storage. Reallocate recreates zero-filled
	// storage of the declared shape.
	Release()
	Reallocate()

	String() string
}

// SparseMatrix is a square matrix that stores only entries with
// |row-col| <= HalfBandwidth().
type SparseMatrix interface {
	Matrix
	HalfBandwidth() int
	Scale(s float64)
	MultiplyVector(v *Vector) (*Vector, error)
}

var (
	_ Matrix       = (*Dense)(nil)
	_ SparseMatrix = (*BandedSym1D)(nil)
	_ SparseMatrix = (*BandedSym2D)(nil)
	_ SparseMatrix = (*CompressedDiagonal)(nil)
	_ SparseMatrix = (*PackedSymmetric)(nil)
)

// RotationOrder selects the Euler angle convention of NewRotation.
type RotationOrder uint8

const (
	// XYZ rotates about x, then the new y, then the new z.
	XYZ RotationOrder = iota + 1
	// ZYX rotates about x, then the new z, then the new y.
	ZYX
)

func (o RotationOrder) String() string {
	switch o {
	case XYZ:
		return "XYZ"
	case ZYX:
		return "ZYX"
	default:
		return fmt.Sprintf("RotationOrder(%d)", uint8(o))
	}
}

// Direction selects which way Transform moves a quantity between axes.
type Direction uint8

const (
	// ToGlobal applies T^t*v to vectors and T^t*A*T to matrices.
	ToGlobal Direction = iota + 1
	// ToLocal applies T*v to vectors and T*A*T^t to matrices.
	ToLocal
)

func (d Direction) String() string {
	switch d {
	case ToGlobal:
		return "ToGlobal"
	case ToLocal:
		return "ToLocal"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

var numeric backend.Backend = backend.NewGonum(backend.Config{})

// SetBackend replaces the numeric backend and returns the previous one.
// It is meant for start-up and tests, not for use while matrices are in flight.
func SetBackend(b backend.Backend) backend.Backend {
	prev := numeric
	numeric = b
	return prev
}

// CurrentBackend returns the backend in use.
func CurrentBackend() backend.Backend {
	return numeric
}

// checkSparseShape validates the (n, hbw) pair shared by the sparse kinds.
func checkSparseShape(op string, n, hbw int) error {
	if n <= 0 {
		return opErrorf(op, ErrInvalidDimension, "n=%d", n)
	}
	if hbw < 0 || hbw >= n {
		return opErrorf(op, ErrInvalidDimension, "half-bandwidth %d for n=%d", hbw, n)
	}
	return nil
}

// inBand reports whether the upper-triangle target (row, col) is stored by a
// symmetric band of half-bandwidth hbw.
func inBand(row, col, hbw int) bool {
	return row <= col && max(0, col-hbw) <= row
}

// bandTo accumulates the band of src into dst element by element. Both must
// be n x n.
func bandTo(op string, dst Matrix, src SparseMatrix) error {
	n, k := src.Rows(), src.HalfBandwidth()
	for i := 0; i < n; i++ {
		for j := max(0, i-k); j <= min(n-1, i+k); j++ {
			v, err := src.At(i, j)
			if err != nil {
				return opErrorf(op, err, "")
			}
			if err = dst.Add(i, j, v); err != nil {
				return opErrorf(op, err, "")
			}
		}
	}
	return nil
}

// checkSparseOperand enforces the AddMatrix preconditions of the sparse kinds.
func checkSparseOperand(op string, recv, o SparseMatrix) error {
	if o.Rows() != recv.Rows() || o.Cols() != recv.Cols() {
		return opErrorf(op, ErrDimensionMismatch, "%dx%d and %dx%d",
			recv.Rows(), recv.Cols(), o.Rows(), o.Cols())
	}
	if o.HalfBandwidth() > recv.HalfBandwidth() {
		return opErrorf(op, ErrBandwidthExceeded, "%d > %d", o.HalfBandwidth(), recv.HalfBandwidth())
	}
	return nil
}
