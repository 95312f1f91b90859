package linalg

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// laplacian fills m with the 1-D second difference operator.
func laplacian(t *testing.T, m Matrix) {
	t.Helper()
	for i := 0; i < m.Rows(); i++ {
		require.NoError(t, m.Set(i, i, 2))
		if i+1 < m.Cols() {
			require.NoError(t, m.Set(i, i+1, -1))
		}
	}
}

func TestPackedSymmetric_Access(t *testing.T) {
	_, err := NewPackedSymmetric(0)
	assert.True(t, errors.Is(err, ErrInvalidDimension))

	m, err := NewPackedSymmetric(3)
	require.NoError(t, err)
	assert.Equal(t, 2, m.HalfBandwidth())

	require.NoError(t, m.Set(0, 2, 5))
	require.NoError(t, m.Add(0, 2, 1))
	require.NoError(t, m.Set(2, 0, 99))
	require.NoError(t, m.Add(2, 0, 99))
	for _, ij := range [][2]int{{0, 2}, {2, 0}} {
		v, err := m.At(ij[0], ij[1])
		require.NoError(t, err)
		assert.Equal(t, 6.0, v, "At(%d,%d)", ij[0], ij[1])
	}

	for _, ij := range [][2]int{{3, 0}, {0, 3}, {-1, 1}} {
		_, err = m.At(ij[0], ij[1])
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "At(%d,%d)", ij[0], ij[1])
		assert.True(t, errors.Is(m.Set(ij[0], ij[1], 1), ErrIndexOutOfRange))
	}

	c := m.Copy()
	require.NoError(t, c.Set(1, 1, 3))
	v, _ := m.At(1, 1)
	assert.Equal(t, 0.0, v, "copy must be deep")
}

func TestPackedSymmetric_MultiplyAndSolve(t *testing.T) {
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("N=%d", n), func(t *testing.T) {
			m, err := NewPackedSymmetric(n)
			require.NoError(t, err)
			laplacian(t, m)
			require.NoError(t, m.Set(0, n-1, 0.05))
			if n == 1 {
				require.NoError(t, m.Set(0, 0, 2))
			}

			x := make([]float64, n)
			for i := range x {
				x[i] = float64(i) - 1.5
			}
			y, err := m.MultiplyVector(mustVector(t, x...))
			require.NoError(t, err)
			d, err := m.ToDense()
			require.NoError(t, err)
			yd, err := d.MultiplyVector(mustVector(t, x...))
			require.NoError(t, err)
			assert.InDeltaSlicef(t, yd.Data(), y.Data(), 1.e-14, "")

			sol, err := m.Solve(y)
			require.NoError(t, err)
			assert.InDeltaSlicef(t, x, sol.Data(), 1.e-12, "")
		})
	}

	m, err := NewPackedSymmetric(2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 1, 3))
	_, err = m.Solve(mustVector(t, 1, 1))
	assert.True(t, errors.Is(err, ErrNotPositiveDefinite), "got %v", err)
	_, err = m.MultiplyVector(mustVector(t, 1, 1, 1))
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestPackedSymmetric_Eigenvalues(t *testing.T) {
	for n := 2; n <= 7; n++ {
		t.Run(fmt.Sprintf("N=%d", n), func(t *testing.T) {
			m, err := NewPackedSymmetric(n)
			require.NoError(t, err)
			laplacian(t, m)
			require.NoError(t, m.Add(0, n-1, 0.5))

			vals, err := m.Eigenvalues()
			require.NoError(t, err)
			d, err := m.ToDense()
			require.NoError(t, err)
			want, err := d.Eigenvalues()
			require.NoError(t, err)
			assert.InDeltaSlicef(t, want, vals, 1.e-12, "")
		})
	}

	m, err := NewPackedSymmetric(2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, math.NaN()))
	_, err = m.Eigenvalues()
	assert.True(t, errors.Is(err, ErrEigenNonConvergence), "got %v", err)
}

func TestPackedSymmetric_AddMatrix(t *testing.T) {
	a, err := NewPackedSymmetric(3)
	require.NoError(t, err)
	laplacian(t, a)
	b := a.Copy()
	b.Scale(2)

	sum, err := a.AddMatrix(b)
	require.NoError(t, err)
	d, err := sum.ToDense()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{6, -3, 0}, {-3, 6, -3}, {0, -3, 6}}, d.ToSlices())

	banded, err := NewBandedSym1D(3, 1)
	require.NoError(t, err)
	tridiagonal(t, banded)
	sum, err = a.AddMatrix(banded)
	require.NoError(t, err)
	d, err = sum.ToDense()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{6, 0, 0}, {0, 6, 0}, {0, 0, 6}}, d.ToSlices())

	other, err := NewPackedSymmetric(4)
	require.NoError(t, err)
	_, err = a.AddMatrix(other)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestPackedSymmetric_ReleaseAndReallocate(t *testing.T) {
	m, err := NewPackedSymmetric(3)
	require.NoError(t, err)
	laplacian(t, m)
	m.Release()
	_, err = m.At(0, 0)
	assert.True(t, errors.Is(err, ErrReleased))
	_, err = m.Eigenvalues()
	assert.True(t, errors.Is(err, ErrReleased))
	_, err = m.Solve(mustVector(t, 1, 1, 1))
	assert.True(t, errors.Is(err, ErrReleased))

	m.Reallocate()
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, m.ToSymPacked().Data)
}
