package linalg

import (
	"sort"

	"github.com/notargets/femkernel/backend"
)

// PackedSymmetric stores the upper triangle of a symmetric matrix packed row
// by row in n(n+1)/2 entries. Its half-bandwidth is n-1, so every in-range
// index is in band; only lower-triangle writes are ignored.
type PackedSymmetric struct {
	n    int
	data []float64
}

// NewPackedSymmetric returns a zero-filled n x n packed symmetric matrix.
func NewPackedSymmetric(n int) (*PackedSymmetric, error) {
	if n <= 0 {
		return nil, opErrorf("NewPackedSymmetric", ErrInvalidDimension, "n=%d", n)
	}
	m := &PackedSymmetric{n: n}
	m.Reallocate()
	return m, nil
}

func (m *PackedSymmetric) Rows() int          { return m.n }
func (m *PackedSymmetric) Cols() int          { return m.n }
func (m *PackedSymmetric) HalfBandwidth() int { return m.n - 1 }

func (m *PackedSymmetric) check(op string, row, col int) error {
	if m.data == nil {
		return opErrorf(op, ErrReleased, "")
	}
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		return indexError(op, row, col, m.n, m.n)
	}
	return nil
}

// At returns entry (row, col), reflecting the lower triangle onto the upper.
func (m *PackedSymmetric) At(row, col int) (float64, error) {
	if err := m.check("PackedSymmetric.At", row, col); err != nil {
		return 0, err
	}
	if row > col {
		row, col = col, row
	}
	return m.data[backend.PackedIndex(m.n, row, col)], nil
}

// Set overwrites (row, col) in the upper triangle; lower-triangle writes are
// ignored.
func (m *PackedSymmetric) Set(row, col int, v float64) error {
	if err := m.check("PackedSymmetric.Set", row, col); err != nil {
		return err
	}
	if row <= col {
		m.data[backend.PackedIndex(m.n, row, col)] = v
	}
	return nil
}

func (m *PackedSymmetric) Add(row, col int, v float64) error {
	if err := m.check("PackedSymmetric.Add", row, col); err != nil {
		return err
	}
	if row <= col {
		m.data[backend.PackedIndex(m.n, row, col)] += v
	}
	return nil
}

func (m *PackedSymmetric) Copy() *PackedSymmetric {
	return &PackedSymmetric{n: m.n, data: append([]float64(nil), m.data...)}
}

// Scale multiplies every stored entry by s in place.
func (m *PackedSymmetric) Scale(s float64) {
	numeric.Scal(s, m.data)
}

// AddMatrix returns m + o. Packed operands are summed by the backend
// directly on storage.
func (m *PackedSymmetric) AddMatrix(o SparseMatrix) (*PackedSymmetric, error) {
	if err := checkSparseOperand("PackedSymmetric.AddMatrix", m, o); err != nil {
		return nil, err
	}
	out := m.Copy()
	if ps, ok := o.(*PackedSymmetric); ok && ps.data != nil && out.data != nil {
		numeric.Axpy(1, ps.data, out.data)
		return out, nil
	}
	if err := bandTo("PackedSymmetric.AddMatrix", out, o); err != nil {
		return nil, err
	}
	return out, nil
}

// MultiplyVector returns the full symmetric product m*v.
func (m *PackedSymmetric) MultiplyVector(v *Vector) (*Vector, error) {
	if err := checkOperandVector("PackedSymmetric.MultiplyVector", m, v); err != nil {
		return nil, err
	}
	return &Vector{n: m.n, data: numeric.SymPackedMulVec(m.ToSymPacked(), v.data)}, nil
}

// Solve returns x with m*x = b using a Cholesky factorization.
func (m *PackedSymmetric) Solve(b *Vector) (*Vector, error) {
	if err := checkOperandVector("PackedSymmetric.Solve", m, b); err != nil {
		return nil, err
	}
	x, err := numeric.SymPackedSolve(m.ToSymPacked(), b.data)
	if err != nil {
		return nil, opErrorf("PackedSymmetric.Solve", err, "")
	}
	return &Vector{n: len(x), data: x}, nil
}

// Eigenvalues returns the eigenvalues of m sorted ascending.
func (m *PackedSymmetric) Eigenvalues() ([]float64, error) {
	if m.data == nil {
		return nil, opErrorf("PackedSymmetric.Eigenvalues", ErrReleased, "")
	}
	vals, err := numeric.SymPackedEigenvalues(m.ToSymPacked())
	if err != nil {
		return nil, opErrorf("PackedSymmetric.Eigenvalues", err, "")
	}
	sort.Float64s(vals)
	return vals, nil
}

// ToSymPacked returns the backend descriptor. The data is shared, not copied.
func (m *PackedSymmetric) ToSymPacked() backend.SymPacked {
	return backend.SymPacked{N: m.n, Data: m.data}
}

func (m *PackedSymmetric) ToDense() (*Dense, error) {
	return sparseToDense("PackedSymmetric.ToDense", m)
}

func (m *PackedSymmetric) Release() { m.data = nil }

func (m *PackedSymmetric) Reallocate() {
	m.data = make([]float64, m.n*(m.n+1)/2)
}

func (m *PackedSymmetric) String() string { return Format(m, DefaultPrintOptions) }
