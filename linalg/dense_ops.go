package linalg

import (
	"math"
	"sort"
)

// Lump returns the diagonal matrix whose i-th entry is the sum of row i
// (row-sum mass lumping).
func (m *Dense) Lump() (*Dense, error) {
	if err := m.square("Dense.Lump"); err != nil {
		return nil, err
	}
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	for i := 0; i < m.r; i++ {
		var sum float64
		for j := 0; j < m.c; j++ {
			sum += m.at(i, j)
		}
		out.data[i*m.c+i] = sum
	}
	return out, nil
}

// Mirror copies the strict upper triangle onto the lower triangle in place.
// The diagonal and upper triangle are left unchanged.
func (m *Dense) Mirror() error {
	if err := m.square("Dense.Mirror"); err != nil {
		return err
	}
	for i := 0; i < m.r; i++ {
		for j := i + 1; j < m.c; j++ {
			m.data[j*m.c+i] = m.at(i, j)
		}
	}
	return nil
}

// Condense statically condenses out the last u degrees of freedom and
// returns the u x u matrix -kru^t * krr^-1 * kru, where krr is the leading
// (n-u) x (n-u) block and kru the (n-u) x u coupling block.
//
// The trailing u x u block (kuu) must be zero. It is not checked.
func (m *Dense) Condense(u int) (*Dense, error) {
	if err := m.square("Dense.Condense"); err != nil {
		return nil, err
	}
	n := m.r
	if u <= 0 || u >= n {
		return nil, opErrorf("Dense.Condense", ErrInvalidDimension, "cannot condense %d of %d", u, n)
	}
	nr := n - u
	krr, err := m.SubMatrix(0, nr, 0, nr)
	if err != nil {
		return nil, err
	}
	kru, err := m.SubMatrix(0, nr, nr, n)
	if err != nil {
		return nil, err
	}
	krrInv, err := krr.Inverse()
	if err != nil {
		return nil, opErrorf("Dense.Condense", err, "")
	}
	tmp, err := krrInv.Multiply(kru)
	if err != nil {
		return nil, err
	}
	out, err := kru.Transpose().Multiply(tmp)
	if err != nil {
		return nil, err
	}
	return out.Scale(-1), nil
}

// Transform performs the congruence transformation T^t*m*T (ToGlobal) or
// T*m*T^t (ToLocal).
func (m *Dense) Transform(t *Dense, dir Direction) (*Dense, error) {
	var left, right *Dense
	switch dir {
	case ToGlobal:
		left, right = t.Transpose(), t
	case ToLocal:
		left, right = t, t.Transpose()
	default:
		return nil, opErrorf("Dense.Transform", ErrUnknownDirection, "%v", dir)
	}
	tmp, err := m.Multiply(right)
	if err != nil {
		return nil, opErrorf("Dense.Transform", err, "")
	}
	out, err := left.Multiply(tmp)
	if err != nil {
		return nil, opErrorf("Dense.Transform", err, "")
	}
	return out, nil
}

// Eigenvalues returns the real eigenvalues of m sorted ascending.
func (m *Dense) Eigenvalues() ([]float64, error) {
	if err := m.square("Dense.Eigenvalues"); err != nil {
		return nil, err
	}
	vals, err := numeric.Eigenvalues(m.Raw())
	if err != nil {
		return nil, opErrorf("Dense.Eigenvalues", err, "")
	}
	sort.Float64s(vals)
	return vals, nil
}

type axis uint8

const (
	axisX axis = iota
	axisY
	axisZ
)

// elementaryRotation returns the right-handed rotation of the axes about a
// by theta radians.
func elementaryRotation(a axis, theta float64) *Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	var data []float64
	switch a {
	case axisX:
		data = []float64{
			1, 0, 0,
			0, c, s,
			0, -s, c,
		}
	case axisY:
		data = []float64{
			c, 0, -s,
			0, 1, 0,
			s, 0, c,
		}
	case axisZ:
		data = []float64{
			c, s, 0,
			-s, c, 0,
			0, 0, 1,
		}
	default:
		panic("unknown rotation axis")
	}
	return &Dense{r: 3, c: 3, data: data}
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

// NewRotation builds a 3x3 rotation matrix from Euler angles in degrees.
// r1, r2 and r3 rotate about x, y and z respectively. XYZ applies x, then the
// new y, then the new z; ZYX applies x, then the new z, then the new y.
func NewRotation(r1, r2, r3 float64, order RotationOrder) (*Dense, error) {
	rx := elementaryRotation(axisX, degToRad(r1))
	ry := elementaryRotation(axisY, degToRad(r2))
	rz := elementaryRotation(axisZ, degToRad(r3))

	var first, second *Dense
	switch order {
	case XYZ:
		first, second = ry, rz
	case ZYX:
		first, second = rz, ry
	default:
		return nil, opErrorf("NewRotation", ErrUnknownRotationOrder, "%v", order)
	}
	r, err := first.Multiply(rx)
	if err != nil {
		return nil, err
	}
	return second.Multiply(r)
}
