package backend

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Config tunes the gonum backend. Zero values select the defaults.
type Config struct {
	// SymmetryTol is the relative tolerance under which a general matrix is
	// treated as symmetric and routed to the symmetric eigensolver.
	SymmetryTol float64
	// ConditionLimit is the largest condition number accepted from Inverse
	// and Solve before the matrix is reported singular.
	ConditionLimit float64
}

const defaultSymmetryTol = 1e-12

// Gonum implements Backend on top of gonum's mat, blas64 and floats packages.
type Gonum struct {
	symmetryTol    float64
	conditionLimit float64
}

var _ Backend = (*Gonum)(nil)

// NewGonum creates a gonum backend, filling unset Config fields with defaults.
func NewGonum(cfg Config) *Gonum {
	symTol := cfg.SymmetryTol
	if symTol <= 0 {
		symTol = defaultSymmetryTol
	}
	condLimit := cfg.ConditionLimit
	if condLimit <= 0 {
		condLimit = mat.ConditionTolerance
	}
	return &Gonum{
		symmetryTol:    symTol,
		conditionLimit: condLimit,
	}
}

func dense(a General) *mat.Dense {
	return mat.NewDense(a.Rows, a.Cols, a.Data)
}

func general(m *mat.Dense) General {
	r, c := m.Dims()
	out := General{Rows: r, Cols: c, Data: make([]float64, r*c)}
	for i := 0; i < r; i++ {
		copy(out.Data[i*c:(i+1)*c], m.RawRowView(i))
	}
	return out
}

func vec(x []float64) blas64.Vector {
	return blas64.Vector{N: len(x), Data: x, Inc: 1}
}

// singular converts a gonum Condition error into ErrSingular.
func (g *Gonum) singular(op string, err error) error {
	var cond mat.Condition
	if errors.As(err, &cond) {
		return fmt.Errorf("%s: condition number %g: %w", op, float64(cond), ErrSingular)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (g *Gonum) checkCondition(op string, a mat.Matrix) error {
	if g.conditionLimit >= mat.ConditionTolerance {
		return nil
	}
	if cond := mat.Cond(a, 1); cond > g.conditionLimit {
		return fmt.Errorf("%s: condition number %g exceeds %g: %w", op, cond, g.conditionLimit, ErrSingular)
	}
	return nil
}

func (g *Gonum) Mul(a, b General) General {
	var c mat.Dense
	c.Mul(dense(a), dense(b))
	return general(&c)
}

func (g *Gonum) Det(a General) (float64, error) {
	if a.Rows != a.Cols {
		return 0, fmt.Errorf("Det: %dx%d matrix is not square", a.Rows, a.Cols)
	}
	var lu mat.LU
	lu.Factorize(dense(a))
	return lu.Det(), nil
}

func (g *Gonum) Inverse(a General) (General, error) {
	var inv mat.Dense
	A := dense(a)
	if err := inv.Inverse(A); err != nil {
		return General{}, g.singular("Inverse", err)
	}
	if err := g.checkCondition("Inverse", A); err != nil {
		return General{}, err
	}
	return general(&inv), nil
}

func (g *Gonum) Solve(a General, b []float64) ([]float64, error) {
	var (
		lu mat.LU
		x  mat.VecDense
	)
	A := dense(a)
	lu.Factorize(A)
	if err := lu.SolveVecTo(&x, false, mat.NewVecDense(len(b), b)); err != nil {
		return nil, g.singular("Solve", err)
	}
	if err := g.checkCondition("Solve", A); err != nil {
		return nil, err
	}
	return x.RawVector().Data, nil
}

func (g *Gonum) isSymmetric(a General) bool {
	for i := 0; i < a.Rows; i++ {
		for j := i + 1; j < a.Cols; j++ {
			aij, aji := a.At(i, j), a.At(j, i)
			scale := math.Max(1, math.Max(math.Abs(aij), math.Abs(aji)))
			if math.Abs(aij-aji) > g.symmetryTol*scale {
				return false
			}
		}
	}
	return true
}

// Eigenvalues uses the symmetric solver when a is symmetric within tolerance,
// otherwise the general solver, keeping the real parts.
func (g *Gonum) Eigenvalues(a General) ([]float64, error) {
	if a.Rows != a.Cols {
		return nil, fmt.Errorf("Eigenvalues: %dx%d matrix is not square", a.Rows, a.Cols)
	}
	if !finite(a.Data) {
		return nil, fmt.Errorf("Eigenvalues: non-finite entry: %w", ErrEigenNonConvergence)
	}
	if g.isSymmetric(a) {
		return symEigenvalues(mat.NewSymDense(a.Rows, append([]float64(nil), a.Data...)))
	}
	var eig mat.Eigen
	if ok := eig.Factorize(dense(a), mat.EigenNone); !ok {
		return nil, fmt.Errorf("Eigenvalues: %w", ErrEigenNonConvergence)
	}
	cvals := eig.Values(nil)
	vals := make([]float64, len(cvals))
	for i, v := range cvals {
		vals[i] = real(v)
	}
	if !finite(vals) {
		return nil, fmt.Errorf("Eigenvalues: %w", ErrEigenNonConvergence)
	}
	sort.Float64s(vals)
	return vals, nil
}

func symEigenvalues(s *mat.SymDense) ([]float64, error) {
	var es mat.EigenSym
	if ok := es.Factorize(s, false); !ok {
		return nil, fmt.Errorf("EigenSym: %w", ErrEigenNonConvergence)
	}
	vals := es.Values(nil)
	if !finite(vals) {
		return nil, fmt.Errorf("EigenSym: %w", ErrEigenNonConvergence)
	}
	sort.Float64s(vals)
	return vals, nil
}

// finite reports whether x holds no NaN or Inf.
func finite(x []float64) bool {
	if floats.HasNaN(x) {
		return false
	}
	for _, v := range x {
		if math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func symBand(a SymBand) blas64.SymmetricBand {
	return blas64.SymmetricBand{
		Uplo:   blas.Upper,
		N:      a.N,
		K:      a.K,
		Stride: a.K + 1,
		Data:   a.Data,
	}
}

func (g *Gonum) SymBandMulVec(a SymBand, x []float64) []float64 {
	y := make([]float64, a.N)
	blas64.Sbmv(1, symBand(a), vec(x), 0, vec(y))
	return y
}

func (g *Gonum) SymBandSolve(a SymBand, b []float64) ([]float64, error) {
	var (
		chol mat.BandCholesky
		x    mat.VecDense
	)
	sb := mat.NewSymBandDense(a.N, a.K, append([]float64(nil), a.Data...))
	if ok := chol.Factorize(sb); !ok {
		return nil, fmt.Errorf("SymBandSolve: %w", ErrNotPositiveDefinite)
	}
	if err := chol.SolveVecTo(&x, mat.NewVecDense(len(b), b)); err != nil {
		return nil, g.singular("SymBandSolve", err)
	}
	return x.RawVector().Data, nil
}

func (g *Gonum) BandMulVec(a Band, x []float64) []float64 {
	y := make([]float64, a.N)
	blas64.Gbmv(blas.NoTrans, 1, blas64.Band{
		Rows:   a.N,
		Cols:   a.N,
		KL:     a.K,
		KU:     a.K,
		Stride: 2*a.K + 1,
		Data:   a.Data,
	}, vec(x), 0, vec(y))
	return y
}

func symPacked(a SymPacked) blas64.SymmetricPacked {
	return blas64.SymmetricPacked{Uplo: blas.Upper, N: a.N, Data: a.Data}
}

func unpack(a SymPacked) *mat.SymDense {
	s := mat.NewSymDense(a.N, nil)
	for i := 0; i < a.N; i++ {
		for j := i; j < a.N; j++ {
			s.SetSym(i, j, a.Data[PackedIndex(a.N, i, j)])
		}
	}
	return s
}

func (g *Gonum) SymPackedMulVec(a SymPacked, x []float64) []float64 {
	y := make([]float64, a.N)
	blas64.Spmv(1, symPacked(a), vec(x), 0, vec(y))
	return y
}

func (g *Gonum) SymPackedSolve(a SymPacked, b []float64) ([]float64, error) {
	var (
		chol mat.Cholesky
		x    mat.VecDense
	)
	if ok := chol.Factorize(unpack(a)); !ok {
		return nil, fmt.Errorf("SymPackedSolve: %w", ErrNotPositiveDefinite)
	}
	if err := chol.SolveVecTo(&x, mat.NewVecDense(len(b), b)); err != nil {
		return nil, g.singular("SymPackedSolve", err)
	}
	return x.RawVector().Data, nil
}

func (g *Gonum) SymPackedEigenvalues(a SymPacked) ([]float64, error) {
	if !finite(a.Data) {
		return nil, fmt.Errorf("SymPackedEigenvalues: non-finite entry: %w", ErrEigenNonConvergence)
	}
	return symEigenvalues(unpack(a))
}

func (g *Gonum) Axpy(alpha float64, x, y []float64) {
	floats.AddScaled(y, alpha, x)
}

func (g *Gonum) Scal(alpha float64, x []float64) {
	floats.Scale(alpha, x)
}
