package linalg

import (
	"github.com/notargets/femkernel/backend"
)

// BandedSym2D stores the upper band of a symmetric matrix as one row of
// width hbw+1 per matrix row: (row, col >= row) lives at
// storage[row][col-row]. Slots past the last column are never used.
type BandedSym2D struct {
	n, hbw  int
	storage [][]float64
}

// NewBandedSym2D returns a zero-filled n x n matrix of half-bandwidth hbw.
func NewBandedSym2D(n, hbw int) (*BandedSym2D, error) {
	if err := checkSparseShape("NewBandedSym2D", n, hbw); err != nil {
		return nil, err
	}
	m := &BandedSym2D{n: n, hbw: hbw}
	m.Reallocate()
	return m, nil
}

func (m *BandedSym2D) Rows() int          { return m.n }
func (m *BandedSym2D) Cols() int          { return m.n }
func (m *BandedSym2D) HalfBandwidth() int { return m.hbw }

func (m *BandedSym2D) check(op string, row, col int) error {
	if m.storage == nil {
		return opErrorf(op, ErrReleased, "")
	}
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		return indexError(op, row, col, m.n, m.n)
	}
	return nil
}

// At returns entry (row, col), reflecting the lower triangle onto the upper.
// Entries outside the band are 0.
func (m *BandedSym2D) At(row, col int) (float64, error) {
	if err := m.check("BandedSym2D.At", row, col); err != nil {
		return 0, err
	}
	if row > col {
		row, col = col, row
	}
	if !inBand(row, col, m.hbw) {
		return 0, nil
	}
	return m.storage[row][col-row], nil
}

// Set overwrites (row, col). Targets in the lower triangle or outside the
// band are ignored.
func (m *BandedSym2D) Set(row, col int, v float64) error {
	if err := m.check("BandedSym2D.Set", row, col); err != nil {
		return err
	}
	if inBand(row, col, m.hbw) {
		m.storage[row][col-row] = v
	}
	return nil
}

func (m *BandedSym2D) Add(row, col int, v float64) error {
	if err := m.check("BandedSym2D.Add", row, col); err != nil {
		return err
	}
	if inBand(row, col, m.hbw) {
		m.storage[row][col-row] += v
	}
	return nil
}

func (m *BandedSym2D) Copy() *BandedSym2D {
	out := &BandedSym2D{n: m.n, hbw: m.hbw}
	if m.storage == nil {
		return out
	}
	out.storage = make([][]float64, m.n)
	for i, row := range m.storage {
		out.storage[i] = append([]float64(nil), row...)
	}
	return out
}

// Scale multiplies every stored entry by s in place.
func (m *BandedSym2D) Scale(s float64) {
	for _, row := range m.storage {
		numeric.Scal(s, row)
	}
}

// AddMatrix returns m + o as a new BandedSym2D with m's half-bandwidth.
func (m *BandedSym2D) AddMatrix(o SparseMatrix) (*BandedSym2D, error) {
	if err := checkSparseOperand("BandedSym2D.AddMatrix", m, o); err != nil {
		return nil, err
	}
	out := m.Copy()
	if err := bandTo("BandedSym2D.AddMatrix", out, o); err != nil {
		return nil, err
	}
	return out, nil
}

// MultiplyVector returns out[i] = At(i,i) * v[i]. Only the diagonal term of
// each row contributes, and it is counted once; use MultiplyVectorFull for
// the symmetric band product.
func (m *BandedSym2D) MultiplyVector(v *Vector) (*Vector, error) {
	return diagonalRowProduct("BandedSym2D.MultiplyVector", m, v)
}

// MultiplyVectorFull returns the full symmetric band product m*v.
func (m *BandedSym2D) MultiplyVectorFull(v *Vector) (*Vector, error) {
	if err := checkOperandVector("BandedSym2D.MultiplyVectorFull", m, v); err != nil {
		return nil, err
	}
	y := numeric.SymBandMulVec(m.ToSymBand(), v.data)
	return &Vector{n: m.n, data: y}, nil
}

// Solve returns x with m*x = b using a banded Cholesky factorization.
func (m *BandedSym2D) Solve(b *Vector) (*Vector, error) {
	return symBandSolve("BandedSym2D.Solve", m, m.ToSymBand(), b)
}

// ToSymBand flattens the rows into the backend band descriptor. The row
// layout already matches, so this is a straight copy.
func (m *BandedSym2D) ToSymBand() backend.SymBand {
	sb := backend.SymBand{N: m.n, K: m.hbw, Data: make([]float64, 0, m.n*(m.hbw+1))}
	for _, row := range m.storage {
		sb.Data = append(sb.Data, row...)
	}
	if m.storage == nil {
		sb.Data = sb.Data[:m.n*(m.hbw+1)]
	}
	return sb
}

// ToDense expands m into a full symmetric Dense matrix.
func (m *BandedSym2D) ToDense() (*Dense, error) {
	return sparseToDense("BandedSym2D.ToDense", m)
}

func (m *BandedSym2D) Release() { m.storage = nil }

func (m *BandedSym2D) Reallocate() {
	m.storage = make([][]float64, m.n)
	for i := range m.storage {
		m.storage[i] = make([]float64, m.hbw+1)
	}
}

func (m *BandedSym2D) String() string { return Format(m, DefaultPrintOptions) }
