package linalg

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Vector is a dense, mutable column vector.
type Vector struct {
	n    int
	data []float64
}

// NewVector returns a zero-filled vector of dimension n.
func NewVector(n int) (*Vector, error) {
	if n <= 0 {
		return nil, opErrorf("NewVector", ErrInvalidDimension, "n=%d", n)
	}
	return &Vector{n: n, data: make([]float64, n)}, nil
}

// NewVectorFrom returns a vector holding a copy of data.
func NewVectorFrom(data []float64) (*Vector, error) {
	v, err := NewVector(len(data))
	if err != nil {
		return nil, err
	}
	copy(v.data, data)
	return v, nil
}

// Dim returns the dimension of the vector.
func (v *Vector) Dim() int { return v.n }

// Data returns a copy of the elements.
func (v *Vector) Data() []float64 {
	return append([]float64(nil), v.data...)
}

func (v *Vector) check(op string, i int) error {
	if v.data == nil {
		return opErrorf(op, ErrReleased, "")
	}
	if i < 0 || i >= v.n {
		return opErrorf(op, ErrIndexOutOfRange, "index %d outside dimension %d", i, v.n)
	}
	return nil
}

func (v *Vector) At(i int) (float64, error) {
	if err := v.check("Vector.At", i); err != nil {
		return 0, err
	}
	return v.data[i], nil
}

func (v *Vector) Set(i int, val float64) error {
	if err := v.check("Vector.Set", i); err != nil {
		return err
	}
	v.data[i] = val
	return nil
}

// AddAt accumulates val into element i.
func (v *Vector) AddAt(i int, val float64) error {
	if err := v.check("Vector.AddAt", i); err != nil {
		return err
	}
	v.data[i] += val
	return nil
}

func (v *Vector) sameDim(op string, o *Vector) error {
	if v.data == nil || o.data == nil {
		return opErrorf(op, ErrReleased, "")
	}
	if v.n != o.n {
		return opErrorf(op, ErrDimensionMismatch, "%d and %d", v.n, o.n)
	}
	return nil
}

// Add returns v + o.
func (v *Vector) Add(o *Vector) (*Vector, error) {
	if err := v.sameDim("Vector.Add", o); err != nil {
		return nil, err
	}
	out := &Vector{n: v.n, data: make([]float64, v.n)}
	floats.AddTo(out.data, v.data, o.data)
	return out, nil
}

// Subtract returns v - o.
func (v *Vector) Subtract(o *Vector) (*Vector, error) {
	if err := v.sameDim("Vector.Subtract", o); err != nil {
		return nil, err
	}
	out := &Vector{n: v.n, data: make([]float64, v.n)}
	floats.SubTo(out.data, v.data, o.data)
	return out, nil
}

// Scale returns s*v.
func (v *Vector) Scale(s float64) *Vector {
	out := &Vector{n: v.n}
	if v.data == nil {
		return out
	}
	out.data = make([]float64, v.n)
	floats.ScaleTo(out.data, s, v.data)
	return out
}

func (v *Vector) Dot(o *Vector) (float64, error) {
	if err := v.sameDim("Vector.Dot", o); err != nil {
		return 0, err
	}
	return floats.Dot(v.data, o.data), nil
}

// Cross returns v x o. Both vectors must be 3-dimensional.
func (v *Vector) Cross(o *Vector) (*Vector, error) {
	if err := v.sameDim("Vector.Cross", o); err != nil {
		return nil, err
	}
	if v.n != 3 {
		return nil, opErrorf("Vector.Cross", ErrDimensionMismatch, "cross product needs dimension 3, got %d", v.n)
	}
	a, b := v.data, o.data
	return &Vector{n: 3, data: []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}}, nil
}

// L2Norm returns the Euclidean norm.
func (v *Vector) L2Norm() float64 {
	if len(v.data) == 0 {
		return math.NaN()
	}
	return floats.Norm(v.data, 2)
}

// SubVector returns a copy of elements [i0, i1).
func (v *Vector) SubVector(i0, i1 int) (*Vector, error) {
	if v.data == nil {
		return nil, opErrorf("Vector.SubVector", ErrReleased, "")
	}
	if i0 < 0 || i1 > v.n || i0 >= i1 {
		return nil, opErrorf("Vector.SubVector", ErrIndexOutOfRange, "[%d,%d) of dimension %d", i0, i1, v.n)
	}
	return NewVectorFrom(v.data[i0:i1])
}

func (v *Vector) place(op string, i int, o *Vector) error {
	if v.data == nil || o.data == nil {
		return opErrorf(op, ErrReleased, "")
	}
	if i < 0 || i+o.n > v.n {
		return opErrorf(op, ErrIndexOutOfRange, "%d elements at %d in dimension %d", o.n, i, v.n)
	}
	return nil
}

// SetSubVector overwrites elements [i, i+o.Dim()) with o.
func (v *Vector) SetSubVector(i int, o *Vector) error {
	if err := v.place("Vector.SetSubVector", i, o); err != nil {
		return err
	}
	copy(v.data[i:], o.data)
	return nil
}

// AddSubVector accumulates o into elements [i, i+o.Dim()).
func (v *Vector) AddSubVector(i int, o *Vector) error {
	if err := v.place("Vector.AddSubVector", i, o); err != nil {
		return err
	}
	floats.Add(v.data[i:i+o.n], o.data)
	return nil
}

// Transform returns T^t*v for ToGlobal and T*v for ToLocal.
func (v *Vector) Transform(t *Dense, dir Direction) (*Vector, error) {
	switch dir {
	case ToGlobal:
		return t.Transpose().MultiplyVector(v)
	case ToLocal:
		return t.MultiplyVector(v)
	default:
		return nil, opErrorf("Vector.Transform", ErrUnknownDirection, "%v", dir)
	}
}

// Copy returns a deep copy.
func (v *Vector) Copy() *Vector {
	return &Vector{n: v.n, data: append([]float64(nil), v.data...)}
}

// Release drops the backing storage.
func (v *Vector) Release() { v.data = nil }

// Reallocate recreates zero-filled storage of the declared dimension.
func (v *Vector) Reallocate() { v.data = make([]float64, v.n) }

func (v *Vector) String() string {
	var sb strings.Builder
	formatRow(&sb, v.data, DefaultPrintOptions)
	return sb.String()
}
