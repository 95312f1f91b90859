package linalg

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/femkernel/backend"
)

// CompressedDiagonal stores the 2*hbw+1 diagonals of a square band matrix
// row by row: entry (i, j) lives at data[i*(2*hbw+1) + hbw + j - i]. This is
// the LAPACK general band layout, so products go straight to the backend.
type CompressedDiagonal struct {
	n, hbw int
	data   []float64
}

// NewCompressedDiagonal returns a zero-filled n x n band matrix with hbw
// diagonals on each side of the main diagonal.
func NewCompressedDiagonal(n, hbw int) (*CompressedDiagonal, error) {
	if err := checkSparseShape("NewCompressedDiagonal", n, hbw); err != nil {
		return nil, err
	}
	m := &CompressedDiagonal{n: n, hbw: hbw}
	m.Reallocate()
	return m, nil
}

func (m *CompressedDiagonal) Rows() int          { return m.n }
func (m *CompressedDiagonal) Cols() int          { return m.n }
func (m *CompressedDiagonal) HalfBandwidth() int { return m.hbw }

func (m *CompressedDiagonal) stride() int { return 2*m.hbw + 1 }

// offset returns the storage index of (row, col), or -1 outside the band.
func (m *CompressedDiagonal) offset(op string, row, col int) (int, error) {
	if m.data == nil {
		return 0, opErrorf(op, ErrReleased, "")
	}
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		return 0, indexError(op, row, col, m.n, m.n)
	}
	if d := col - row; d < -m.hbw || d > m.hbw {
		return -1, nil
	}
	return row*m.stride() + m.hbw + col - row, nil
}

func (m *CompressedDiagonal) At(row, col int) (float64, error) {
	idx, err := m.offset("CompressedDiagonal.At", row, col)
	if err != nil || idx < 0 {
		return 0, err
	}
	return m.data[idx], nil
}

// Set overwrites (row, col); writes outside the band are ignored.
func (m *CompressedDiagonal) Set(row, col int, v float64) error {
	idx, err := m.offset("CompressedDiagonal.Set", row, col)
	if err != nil || idx < 0 {
		return err
	}
	m.data[idx] = v
	return nil
}

// Add accumulates into (row, col); writes outside the band are ignored.
func (m *CompressedDiagonal) Add(row, col int, v float64) error {
	idx, err := m.offset("CompressedDiagonal.Add", row, col)
	if err != nil || idx < 0 {
		return err
	}
	m.data[idx] += v
	return nil
}

func (m *CompressedDiagonal) Copy() *CompressedDiagonal {
	return &CompressedDiagonal{n: m.n, hbw: m.hbw, data: append([]float64(nil), m.data...)}
}

// Scale multiplies every stored entry by s in place.
func (m *CompressedDiagonal) Scale(s float64) {
	numeric.Scal(s, m.data)
}

// AddMatrix returns m + o with m's half-bandwidth. Operands of the same kind
// and bandwidth are summed by the backend directly on storage.
func (m *CompressedDiagonal) AddMatrix(o SparseMatrix) (*CompressedDiagonal, error) {
	if err := checkSparseOperand("CompressedDiagonal.AddMatrix", m, o); err != nil {
		return nil, err
	}
	out := m.Copy()
	if cd, ok := o.(*CompressedDiagonal); ok && cd.hbw == m.hbw && cd.data != nil && out.data != nil {
		numeric.Axpy(1, cd.data, out.data)
		return out, nil
	}
	if err := bandTo("CompressedDiagonal.AddMatrix", out, o); err != nil {
		return nil, err
	}
	return out, nil
}

// MultiplyVector returns m*v.
func (m *CompressedDiagonal) MultiplyVector(v *Vector) (*Vector, error) {
	if err := checkOperandVector("CompressedDiagonal.MultiplyVector", m, v); err != nil {
		return nil, err
	}
	return &Vector{n: m.n, data: numeric.BandMulVec(m.ToBand(), v.data)}, nil
}

// ToBand returns the backend descriptor. The data is shared, not copied.
func (m *CompressedDiagonal) ToBand() backend.Band {
	return backend.Band{N: m.n, K: m.hbw, Data: m.data}
}

// ToCSR exports the nonzero band entries as a compressed sparse row matrix
// for iterative solvers.
func (m *CompressedDiagonal) ToCSR() (*sparse.CSR, error) {
	if m.data == nil {
		return nil, opErrorf("CompressedDiagonal.ToCSR", ErrReleased, "")
	}
	dok := sparse.NewDOK(m.n, m.n)
	for i := 0; i < m.n; i++ {
		for j := max(0, i-m.hbw); j <= min(m.n-1, i+m.hbw); j++ {
			if v := m.data[i*m.stride()+m.hbw+j-i]; v != 0 {
				dok.Set(i, j, v)
			}
		}
	}
	return dok.ToCSR(), nil
}

func (m *CompressedDiagonal) ToDense() (*Dense, error) {
	return sparseToDense("CompressedDiagonal.ToDense", m)
}

func (m *CompressedDiagonal) Release() { m.data = nil }

func (m *CompressedDiagonal) Reallocate() {
	m.data = make([]float64, m.n*m.stride())
}

func (m *CompressedDiagonal) String() string { return Format(m, DefaultPrintOptions) }
