package linalg

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/femkernel/backend"
)

// Dense is a row-major matrix. Every element access is bounds checked.
type Dense struct {
	r, c int
	data []float64
}

// NewDense returns a zero-filled rows x cols matrix.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, opErrorf("NewDense", ErrInvalidDimension, "%dx%d", rows, cols)
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom copies a rectangular [][]float64 into a new matrix.
func NewDenseFrom(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return nil, opErrorf("NewDenseFrom", ErrInvalidDimension, "no rows")
	}
	m, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.c {
			return nil, opErrorf("NewDenseFrom", ErrDimensionMismatch, "row %d has %d columns, want %d", i, len(row), m.c)
		}
		copy(m.data[i*m.c:], row)
	}
	return m, nil
}

// Identity returns the n x n identity matrix.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m, nil
}

func fromGeneral(g backend.General) *Dense {
	return &Dense{r: g.Rows, c: g.Cols, data: g.Data}
}

func (m *Dense) Rows() int { return m.r }
func (m *Dense) Cols() int { return m.c }

func (m *Dense) index(op string, row, col int) (int, error) {
	if m.data == nil {
		return 0, opErrorf(op, ErrReleased, "")
	}
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, indexError(op, row, col, m.r, m.c)
	}
	return row*m.c + col, nil
}

func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.index("Dense.At", row, col)
	if err != nil {
		return 0, err
	}
	return m.data[idx], nil
}

func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.index("Dense.Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

func (m *Dense) Add(row, col int, v float64) error {
	idx, err := m.index("Dense.Add", row, col)
	if err != nil {
		return err
	}
	m.data[idx] += v
	return nil
}

// at reads without checks; callers have validated the shape.
func (m *Dense) at(i, j int) float64 { return m.data[i*m.c+j] }

// Raw returns the backend snapshot of m. The data is shared, not copied.
func (m *Dense) Raw() backend.General {
	return backend.General{Rows: m.r, Cols: m.c, Data: m.data}
}

// ToSlices returns a [][]float64 copy of m.
func (m *Dense) ToSlices() [][]float64 {
	out := make([][]float64, m.r)
	for i := range out {
		out[i] = append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...)
	}
	return out
}

func (m *Dense) Copy() *Dense {
	return &Dense{r: m.r, c: m.c, data: append([]float64(nil), m.data...)}
}

func (m *Dense) Release() { m.data = nil }

func (m *Dense) Reallocate() { m.data = make([]float64, m.r*m.c) }

func (m *Dense) String() string { return Format(m, DefaultPrintOptions) }

func (m *Dense) live(op string, others ...*Dense) error {
	if m.data == nil {
		return opErrorf(op, ErrReleased, "receiver")
	}
	for _, o := range others {
		if o.data == nil {
			return opErrorf(op, ErrReleased, "operand")
		}
	}
	return nil
}

func (m *Dense) square(op string) error {
	if err := m.live(op); err != nil {
		return err
	}
	if m.r != m.c {
		return opErrorf(op, ErrNotSquare, "%dx%d", m.r, m.c)
	}
	return nil
}

// AddMatrix returns m + o.
func (m *Dense) AddMatrix(o *Dense) (*Dense, error) {
	if err := m.live("Dense.AddMatrix", o); err != nil {
		return nil, err
	}
	if m.r != o.r || m.c != o.c {
		return nil, opErrorf("Dense.AddMatrix", ErrDimensionMismatch, "%dx%d and %dx%d", m.r, m.c, o.r, o.c)
	}
	out := m.Copy()
	numeric.Axpy(1, o.data, out.data)
	return out, nil
}

// Subtract returns m - o, computed as m + (-1)*o.
func (m *Dense) Subtract(o *Dense) (*Dense, error) {
	return m.AddMatrix(o.Scale(-1))
}

// Scale returns s*m.
func (m *Dense) Scale(s float64) *Dense {
	out := m.Copy()
	numeric.Scal(s, out.data)
	return out
}

// Multiply returns m*o.
func (m *Dense) Multiply(o *Dense) (*Dense, error) {
	if err := m.live("Dense.Multiply", o); err != nil {
		return nil, err
	}
	if m.c != o.r {
		return nil, opErrorf("Dense.Multiply", ErrDimensionMismatch, "%dx%d times %dx%d", m.r, m.c, o.r, o.c)
	}
	return fromGeneral(numeric.Mul(m.Raw(), o.Raw())), nil
}

// MultiplyVector returns m*v.
func (m *Dense) MultiplyVector(v *Vector) (*Vector, error) {
	if err := m.live("Dense.MultiplyVector"); err != nil {
		return nil, err
	}
	if v.data == nil {
		return nil, opErrorf("Dense.MultiplyVector", ErrReleased, "operand")
	}
	if m.c != v.n {
		return nil, opErrorf("Dense.MultiplyVector", ErrDimensionMismatch, "%dx%d times %d", m.r, m.c, v.n)
	}
	out := &Vector{n: m.r, data: make([]float64, m.r)}
	for i := range out.data {
		out.data[i] = floats.Dot(m.data[i*m.c:(i+1)*m.c], v.data)
	}
	return out, nil
}

// Transpose returns m^t.
func (m *Dense) Transpose() *Dense {
	out := &Dense{r: m.c, c: m.r, data: make([]float64, len(m.data))}
	if m.data == nil {
		out.data = nil
		return out
	}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.at(i, j)
		}
	}
	return out
}

func (m *Dense) Determinant() (float64, error) {
	if err := m.square("Dense.Determinant"); err != nil {
		return 0, err
	}
	det, err := numeric.Det(m.Raw())
	if err != nil {
		return 0, opErrorf("Dense.Determinant", err, "")
	}
	return det, nil
}

// Inverse returns m^-1, or ErrSingularMatrix.
func (m *Dense) Inverse() (*Dense, error) {
	if err := m.square("Dense.Inverse"); err != nil {
		return nil, err
	}
	inv, err := numeric.Inverse(m.Raw())
	if err != nil {
		return nil, opErrorf("Dense.Inverse", err, "")
	}
	return fromGeneral(inv), nil
}

// Solve returns x with m*x = b.
func (m *Dense) Solve(b *Vector) (*Vector, error) {
	if err := m.square("Dense.Solve"); err != nil {
		return nil, err
	}
	if b.data == nil {
		return nil, opErrorf("Dense.Solve", ErrReleased, "right-hand side")
	}
	if b.n != m.r {
		return nil, opErrorf("Dense.Solve", ErrDimensionMismatch, "%dx%d with right-hand side %d", m.r, m.c, b.n)
	}
	x, err := numeric.Solve(m.Raw(), b.data)
	if err != nil {
		return nil, opErrorf("Dense.Solve", err, "")
	}
	return &Vector{n: len(x), data: x}, nil
}

// IsSymmetric compares m(i,j) with m(j,i) exactly.
func (m *Dense) IsSymmetric() (bool, error) {
	if err := m.square("Dense.IsSymmetric"); err != nil {
		return false, err
	}
	for i := 0; i < m.r; i++ {
		for j := i + 1; j < m.c; j++ {
			if m.at(i, j) != m.at(j, i) {
				return false, nil
			}
		}
	}
	return true, nil
}

func (m *Dense) block(op string, i0, i1, j0, j1 int) error {
	if err := m.live(op); err != nil {
		return err
	}
	if i0 < 0 || j0 < 0 || i1 > m.r || j1 > m.c || i0 >= i1 || j0 >= j1 {
		return opErrorf(op, ErrIndexOutOfRange, "rows [%d,%d) cols [%d,%d) of %dx%d", i0, i1, j0, j1, m.r, m.c)
	}
	return nil
}

// SubMatrix returns a copy of rows [i0, i1) and columns [j0, j1).
func (m *Dense) SubMatrix(i0, i1, j0, j1 int) (*Dense, error) {
	if err := m.block("Dense.SubMatrix", i0, i1, j0, j1); err != nil {
		return nil, err
	}
	out := &Dense{r: i1 - i0, c: j1 - j0, data: make([]float64, (i1-i0)*(j1-j0))}
	for i := i0; i < i1; i++ {
		copy(out.data[(i-i0)*out.c:(i-i0+1)*out.c], m.data[i*m.c+j0:i*m.c+j1])
	}
	return out, nil
}

// SetSubMatrix overwrites the block of m whose top-left corner is (i, j).
func (m *Dense) SetSubMatrix(i, j int, o *Dense) error {
	if err := m.live("Dense.SetSubMatrix", o); err != nil {
		return err
	}
	if err := m.block("Dense.SetSubMatrix", i, i+o.r, j, j+o.c); err != nil {
		return err
	}
	for k := 0; k < o.r; k++ {
		copy(m.data[(i+k)*m.c+j:(i+k)*m.c+j+o.c], o.data[k*o.c:(k+1)*o.c])
	}
	return nil
}

// AddSubMatrix accumulates o into the block of m whose top-left corner is (i, j).
func (m *Dense) AddSubMatrix(i, j int, o *Dense) error {
	if err := m.live("Dense.AddSubMatrix", o); err != nil {
		return err
	}
	if err := m.block("Dense.AddSubMatrix", i, i+o.r, j, j+o.c); err != nil {
		return err
	}
	for k := 0; k < o.r; k++ {
		numeric.Axpy(1, o.data[k*o.c:(k+1)*o.c], m.data[(i+k)*m.c+j:(i+k)*m.c+j+o.c])
	}
	return nil
}
