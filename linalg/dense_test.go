package linalg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDense(t *testing.T, rows ...[]float64) *Dense {
	t.Helper()
	m, err := NewDenseFrom(rows)
	require.NoError(t, err)
	return m
}

func mustIdentity(t *testing.T, n int) *Dense {
	t.Helper()
	m, err := Identity(n)
	require.NoError(t, err)
	return m
}

func TestDense_Construction(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-2, 3}} {
		_, err := NewDense(dims[0], dims[1])
		assert.True(t, errors.Is(err, ErrInvalidDimension), "NewDense(%d,%d)", dims[0], dims[1])
	}
	_, err := Identity(0)
	assert.True(t, errors.Is(err, ErrInvalidDimension))
	_, err = NewDenseFrom([][]float64{{1, 2}, {3}})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	m, err := NewDense(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, [][]float64{{0, 0, 0}, {0, 0, 0}}, m.ToSlices())
}

func TestDense_ElementAccess(t *testing.T) {
	m, err := NewDense(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 0))
	require.NoError(t, m.Add(1, 2, 3.5))
	require.NoError(t, m.Add(1, 2, 1.5))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	for _, ij := range [][2]int{{-1, 0}, {2, 0}, {0, 3}, {0, -1}} {
		_, err = m.At(ij[0], ij[1])
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "At(%d,%d)", ij[0], ij[1])
		assert.True(t, errors.Is(m.Set(ij[0], ij[1], 1), ErrIndexOutOfRange))
		assert.True(t, errors.Is(m.Add(ij[0], ij[1], 1), ErrIndexOutOfRange))
	}
}

func TestDense_Arithmetic(t *testing.T) {
	a := mustDense(t, []float64{1, 2}, []float64{3, 4})
	b := mustDense(t, []float64{5, 6}, []float64{7, 8})

	sum, err := a.AddMatrix(b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{6, 8}, {10, 12}}, sum.ToSlices())

	diff, err := b.Subtract(a)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{4, 4}, {4, 4}}, diff.ToSlices())

	assert.Equal(t, [][]float64{{-1, -2}, {-3, -4}}, a.Scale(-1).ToSlices())
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, a.ToSlices(), "Scale must not modify the receiver")

	prod, err := a.Multiply(b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{19, 22}, {43, 50}}, prod.ToSlices())

	rect := mustDense(t, []float64{1, 2, 3})
	_, err = a.AddMatrix(rect)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	_, err = rect.Multiply(a)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	_, err = a.MultiplyVector(mustVector(t, 1, 2, 3))
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestDense_IdentityProperties(t *testing.T) {
	// identity(3) * [1,2,3] == [1,2,3]
	v, err := mustIdentity(t, 3).MultiplyVector(mustVector(t, 1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, v.Data())

	a := mustDense(t,
		[]float64{1, -2, 3},
		[]float64{4, 5, -6},
	)
	prod, err := a.Multiply(mustIdentity(t, 3))
	require.NoError(t, err)
	assert.Equal(t, a.ToSlices(), prod.ToSlices())

	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("N=%d", n), func(t *testing.T) {
			det, err := mustIdentity(t, n).Determinant()
			require.NoError(t, err)
			assert.InDelta(t, 1.0, det, 1.e-15)
		})
	}
}

func TestDense_Transpose(t *testing.T) {
	a := mustDense(t,
		[]float64{1, 2, 3},
		[]float64{4, 5, 6},
	)
	at := a.Transpose()
	assert.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, at.ToSlices())
	assert.Equal(t, a.ToSlices(), at.Transpose().ToSlices())
}

func TestDense_DeterminantAndInverse(t *testing.T) {
	dup := mustDense(t,
		[]float64{1, 2, 3},
		[]float64{4, 5, 6},
		[]float64{1, 2, 3},
	)
	det, err := dup.Determinant()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, det, 1.e-12)

	_, err = dup.Inverse()
	assert.True(t, errors.Is(err, ErrSingularMatrix), "got %v", err)

	a := mustDense(t,
		[]float64{4, -2, 1},
		[]float64{-2, 4, -2},
		[]float64{1, -2, 4},
	)
	det, err = a.Determinant()
	require.NoError(t, err)
	assert.InDelta(t, 36.0, det, 1.e-12)

	inv, err := a.Inverse()
	require.NoError(t, err)
	prod, err := a.Multiply(inv)
	require.NoError(t, err)
	assert.InDeltaSlicef(t, mustIdentity(t, 3).Raw().Data, prod.Raw().Data, 1.e-12, "")

	_, err = mustDense(t, []float64{1, 2}).Determinant()
	assert.True(t, errors.Is(err, ErrNotSquare))
	_, err = mustDense(t, []float64{1, 2}).Inverse()
	assert.True(t, errors.Is(err, ErrNotSquare))
}

func TestDense_Solve(t *testing.T) {
	a := mustDense(t,
		[]float64{2, 0, 1},
		[]float64{1, 3, 2},
		[]float64{1, 1, 2},
	)
	x, err := a.Solve(mustVector(t, 3, 6, 4))
	require.NoError(t, err)
	assert.InDeltaSlicef(t, []float64{1, 1, 1}, x.Data(), 1.e-12, "")

	_, err = a.Solve(mustVector(t, 1, 2))
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	singular := mustDense(t, []float64{1, 2}, []float64{2, 4})
	_, err = singular.Solve(mustVector(t, 1, 1))
	assert.True(t, errors.Is(err, ErrSingularMatrix), "got %v", err)
}

func TestDense_IsSymmetric(t *testing.T) {
	sym := mustDense(t, []float64{1, 2}, []float64{2, 3})
	ok, err := sym.IsSymmetric()
	require.NoError(t, err)
	assert.True(t, ok)

	// Exact comparison, no tolerance
	nearly := mustDense(t, []float64{1, 2}, []float64{2 + 1.e-15, 3})
	ok, err = nearly.IsSymmetric()
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = mustDense(t, []float64{1, 2}).IsSymmetric()
	assert.True(t, errors.Is(err, ErrNotSquare))
}

func TestDense_SubMatrices(t *testing.T) {
	m := mustDense(t,
		[]float64{1, 2, 3, 4},
		[]float64{5, 6, 7, 8},
		[]float64{9, 10, 11, 12},
	)
	sub, err := m.SubMatrix(1, 3, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{6, 7}, {10, 11}}, sub.ToSlices())

	for _, b := range [][4]int{{-1, 1, 0, 1}, {0, 4, 0, 1}, {0, 1, 2, 5}, {1, 1, 0, 1}} {
		_, err = m.SubMatrix(b[0], b[1], b[2], b[3])
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "SubMatrix%v", b)
	}

	block := mustDense(t, []float64{-1, -2}, []float64{-3, -4})
	require.NoError(t, m.SetSubMatrix(0, 2, block))
	require.NoError(t, m.AddSubMatrix(1, 0, block))
	assert.Equal(t, [][]float64{
		{1, 2, -1, -2},
		{4, 4, -3, -4},
		{6, 6, 11, 12},
	}, m.ToSlices())

	assert.True(t, errors.Is(m.SetSubMatrix(2, 3, block), ErrIndexOutOfRange))
	assert.True(t, errors.Is(m.AddSubMatrix(-1, 0, block), ErrIndexOutOfRange))
}

func TestDense_CopyAndLifecycle(t *testing.T) {
	m := mustDense(t, []float64{1, 2}, []float64{3, 4})
	c := m.Copy()
	require.NoError(t, c.Set(0, 0, 100))
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v, "copy must be deep")

	alias := m
	require.NoError(t, alias.Set(1, 1, -4))
	v, _ = m.At(1, 1)
	assert.Equal(t, -4.0, v, "plain assignment shares storage")

	m.Release()
	_, err := m.At(0, 0)
	assert.True(t, errors.Is(err, ErrReleased))
	_, err = m.Multiply(c)
	assert.True(t, errors.Is(err, ErrReleased))
	_, err = c.AddMatrix(m)
	assert.True(t, errors.Is(err, ErrReleased))

	m.Reallocate()
	assert.Equal(t, [][]float64{{0, 0}, {0, 0}}, m.ToSlices())
}
