// Package backend isolates the dense and sparse numeric kernels used by the
// linalg storage types. Storage code hands the backend plain row-major
// descriptors and never touches a specific linear algebra library directly.
package backend

// General is a row-major dense matrix snapshot. Data has Rows*Cols entries.
type General struct {
	Rows, Cols int
	Data       []float64
}

// At returns element (i, j) of a General snapshot.
func (g General) At(i, j int) float64 {
	return g.Data[i*g.Cols+j]
}

// SymBand is an upper symmetric band in row-major storage: row i holds
// entries (i, i) .. (i, i+K) at Data[i*(K+1) : (i+1)*(K+1)].
// Slots past column N-1 are never read.
type SymBand struct {
	N, K int
	Data []float64
}

// Band is a square general band matrix with K sub- and K super-diagonals,
// row-major with stride 2K+1: entry (i, j) is Data[i*(2K+1) + K + j - i].
type Band struct {
	N, K int
	Data []float64
}

// SymPacked is the upper triangle of a symmetric matrix packed row by row:
// entry (i <= j) is Data[i*N - i*(i-1)/2 + j - i].
type SymPacked struct {
	N    int
	Data []float64
}

// PackedIndex returns the SymPacked offset of (i, j), i <= j.
func PackedIndex(n, i, j int) int {
	return i*n - i*(i-1)/2 + j - i
}

// Backend is the numeric collaborator behind determinant, inverse, eigen,
// solve and the sparse-format products.
type Backend interface {
	// Mul returns a*b. Callers guarantee a.Cols == b.Rows.
	Mul(a, b General) General
	// Det returns the determinant of the square matrix a.
	Det(a General) (float64, error)
	// Inverse returns the inverse of a, or ErrSingular.
	Inverse(a General) (General, error)
	// Solve returns x with a*x = b.
	Solve(a General, b []float64) ([]float64, error)
	// Eigenvalues returns the real eigenvalues of a in ascending order.
	Eigenvalues(a General) ([]float64, error)

	SymBandMulVec(a SymBand, x []float64) []float64
	SymBandSolve(a SymBand, b []float64) ([]float64, error)
	BandMulVec(a Band, x []float64) []float64
	SymPackedMulVec(a SymPacked, x []float64) []float64
	SymPackedSolve(a SymPacked, b []float64) ([]float64, error)
	SymPackedEigenvalues(a SymPacked) ([]float64, error)

	// Axpy computes y += alpha*x.
	Axpy(alpha float64, x, y []float64)
	// Scal computes x *= alpha.
	Scal(alpha float64, x []float64)
}
