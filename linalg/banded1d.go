package linalg

import (
	"github.com/notargets/femkernel/backend"
)

// BandedSym1D stores the upper band of a symmetric matrix column by column in
// one flat array. Column j holds rows max(0, j-hbw)..j in min(j, hbw)+1
// contiguous slots starting at addresses[j], diagonal first: row r lives at
// addresses[j] + j - r.
type BandedSym1D struct {
	n, hbw    int
	addresses []int
	data      []float64
}

// NewBandedSym1D returns a zero-filled n x n matrix of half-bandwidth hbw.
func NewBandedSym1D(n, hbw int) (*BandedSym1D, error) {
	if err := checkSparseShape("NewBandedSym1D", n, hbw); err != nil {
		return nil, err
	}
	m := &BandedSym1D{n: n, hbw: hbw}
	m.Reallocate()
	return m, nil
}

func columnAddresses(n, hbw int) []int {
	addresses := make([]int, n+1)
	for j := 0; j < n; j++ {
		addresses[j+1] = addresses[j] + min(j, hbw) + 1
	}
	return addresses
}

func (m *BandedSym1D) Rows() int          { return m.n }
func (m *BandedSym1D) Cols() int          { return m.n }
func (m *BandedSym1D) HalfBandwidth() int { return m.hbw }

// Addresses returns a copy of the column address table.
func (m *BandedSym1D) Addresses() []int {
	return append([]int(nil), m.addresses...)
}

func (m *BandedSym1D) check(op string, row, col int) error {
	if m.data == nil {
		return opErrorf(op, ErrReleased, "")
	}
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		return indexError(op, row, col, m.n, m.n)
	}
	return nil
}

func (m *BandedSym1D) slot(row, col int) int {
	return m.addresses[col] + col - row
}

// At returns entry (row, col), reflecting the lower triangle onto the upper.
// Entries outside the band are 0.
func (m *BandedSym1D) At(row, col int) (float64, error) {
	if err := m.check("BandedSym1D.At", row, col); err != nil {
		return 0, err
	}
	if row > col {
		row, col = col, row
	}
	if !inBand(row, col, m.hbw) {
		return 0, nil
	}
	return m.data[m.slot(row, col)], nil
}

// Set overwrites (row, col). Targets in the lower triangle or outside the
// band are ignored.
func (m *BandedSym1D) Set(row, col int, v float64) error {
	if err := m.check("BandedSym1D.Set", row, col); err != nil {
		return err
	}
	if inBand(row, col, m.hbw) {
		m.data[m.slot(row, col)] = v
	}
	return nil
}

// Add accumulates into (row, col) under the same rules as Set.
func (m *BandedSym1D) Add(row, col int, v float64) error {
	if err := m.check("BandedSym1D.Add", row, col); err != nil {
		return err
	}
	if inBand(row, col, m.hbw) {
		m.data[m.slot(row, col)] += v
	}
	return nil
}

// Copy returns a deep copy, including the address table.
func (m *BandedSym1D) Copy() *BandedSym1D {
	return &BandedSym1D{
		n:         m.n,
		hbw:       m.hbw,
		addresses: append([]int(nil), m.addresses...),
		data:      append([]float64(nil), m.data...),
	}
}

// Scale multiplies every stored entry by s in place.
func (m *BandedSym1D) Scale(s float64) {
	numeric.Scal(s, m.data)
}

// AddMatrix returns m + o as a new BandedSym1D with m's half-bandwidth.
func (m *BandedSym1D) AddMatrix(o SparseMatrix) (*BandedSym1D, error) {
	if err := checkSparseOperand("BandedSym1D.AddMatrix", m, o); err != nil {
		return nil, err
	}
	out := m.Copy()
	if err := bandTo("BandedSym1D.AddMatrix", out, o); err != nil {
		return nil, err
	}
	return out, nil
}

// MultiplyVector returns out[i] = At(i,i) * v[i]. Only the diagonal term of
// each row contributes, and it is counted once; use MultiplyVectorFull for
// the symmetric band product.
func (m *BandedSym1D) MultiplyVector(v *Vector) (*Vector, error) {
	return diagonalRowProduct("BandedSym1D.MultiplyVector", m, v)
}

// MultiplyVectorFull returns the full symmetric band product m*v.
func (m *BandedSym1D) MultiplyVectorFull(v *Vector) (*Vector, error) {
	if err := checkOperandVector("BandedSym1D.MultiplyVectorFull", m, v); err != nil {
		return nil, err
	}
	y := numeric.SymBandMulVec(m.ToSymBand(), v.data)
	return &Vector{n: m.n, data: y}, nil
}

// Solve returns x with m*x = b using a banded Cholesky factorization.
func (m *BandedSym1D) Solve(b *Vector) (*Vector, error) {
	return symBandSolve("BandedSym1D.Solve", m, m.ToSymBand(), b)
}

// ToSymBand converts the column-oriented storage into the row-oriented band
// descriptor understood by the backend.
func (m *BandedSym1D) ToSymBand() backend.SymBand {
	sb := backend.SymBand{N: m.n, K: m.hbw, Data: make([]float64, m.n*(m.hbw+1))}
	if m.data == nil {
		return sb
	}
	for j := 0; j < m.n; j++ {
		for r := max(0, j-m.hbw); r <= j; r++ {
			sb.Data[r*(m.hbw+1)+j-r] = m.data[m.slot(r, j)]
		}
	}
	return sb
}

// ToDense expands m into a full symmetric Dense matrix.
func (m *BandedSym1D) ToDense() (*Dense, error) {
	return sparseToDense("BandedSym1D.ToDense", m)
}

func (m *BandedSym1D) Release() {
	m.data = nil
	m.addresses = nil
}

// Reallocate recreates zero-filled storage and recomputes the address table.
func (m *BandedSym1D) Reallocate() {
	m.addresses = columnAddresses(m.n, m.hbw)
	m.data = make([]float64, m.addresses[m.n])
}

func (m *BandedSym1D) String() string { return Format(m, DefaultPrintOptions) }

// Helpers shared by the sparse kinds.

func checkOperandVector(op string, m SparseMatrix, v *Vector) error {
	if _, err := m.At(0, 0); err != nil {
		return opErrorf(op, err, "")
	}
	if v.data == nil {
		return opErrorf(op, ErrReleased, "operand")
	}
	if v.n != m.Cols() {
		return opErrorf(op, ErrDimensionMismatch, "%dx%d times %d", m.Rows(), m.Cols(), v.n)
	}
	return nil
}

func diagonalRowProduct(op string, m SparseMatrix, v *Vector) (*Vector, error) {
	if err := checkOperandVector(op, m, v); err != nil {
		return nil, err
	}
	out := &Vector{n: m.Rows(), data: make([]float64, m.Rows())}
	for i := 0; i < m.Rows(); i++ {
		d, err := m.At(i, i)
		if err != nil {
			return nil, opErrorf(op, err, "")
		}
		out.data[i] = d * v.data[i]
	}
	return out, nil
}

func symBandSolve(op string, m SparseMatrix, sb backend.SymBand, b *Vector) (*Vector, error) {
	if err := checkOperandVector(op, m, b); err != nil {
		return nil, err
	}
	x, err := numeric.SymBandSolve(sb, b.data)
	if err != nil {
		return nil, opErrorf(op, err, "")
	}
	return &Vector{n: len(x), data: x}, nil
}

func sparseToDense(op string, m SparseMatrix) (*Dense, error) {
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	if err = bandTo(op, out, m); err != nil {
		return nil, err
	}
	return out, nil
}
