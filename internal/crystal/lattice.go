package crystal

import "math"

// Lattice holds the three lattice vectors as the rows of Matrix.
type Lattice struct {
	Matrix [3]Vec3
}

// NewLattice builds a lattice from row vectors.
func NewLattice(a, b, c Vec3) Lattice {
	return Lattice{Matrix: [3]Vec3{a, b, c}}
}

// ABC returns the lengths of the three lattice vectors.
func (l Lattice) ABC() (a, b, c float64) {
	return l.Matrix[0].Norm(), l.Matrix[1].Norm(), l.Matrix[2].Norm()
}

// Angles returns α (b∧c), β (a∧c) and γ (a∧b) in degrees.
func (l Lattice) Angles() (alpha, beta, gamma float64) {
	m := l.Matrix
	return angleDeg(m[1], m[2]), angleDeg(m[0], m[2]), angleDeg(m[0], m[1])
}

// Determinant of the row matrix; its absolute value is the cell volume.
func (l Lattice) Determinant() float64 {
	m := l.Matrix
	return m[0].Dot(m[1].Cross(m[2]))
}

// Volume of the unit cell in Å³.
func (l Lattice) Volume() float64 {
	return math.Abs(l.Determinant())
}

// Cartesian converts fractional coordinates: frac · Matrix.
func (l Lattice) Cartesian(frac Vec3) Vec3 {
	m := l.Matrix
	return m[0].Scale(frac[0]).Add(m[1].Scale(frac[1])).Add(m[2].Scale(frac[2]))
}

// Fractional converts cartesian coordinates back to fractional ones.
func (l Lattice) Fractional(cart Vec3) (Vec3, error) {
	det := l.Determinant()
	if math.Abs(det) < 1e-12 {
		return Vec3{}, ErrSingularLattice
	}
	// Rows of the inverse-transpose are the reciprocal vectors without 2π.
	m := l.Matrix
	r0 := m[1].Cross(m[2]).Scale(1 / det)
	r1 := m[2].Cross(m[0]).Scale(1 / det)
	r2 := m[0].Cross(m[1]).Scale(1 / det)
	return Vec3{cart.Dot(r0), cart.Dot(r1), cart.Dot(r2)}, nil
}

func angleDeg(u, v Vec3) float64 {
	nu, nv := u.Norm(), v.Norm()
	if nu == 0 || nv == 0 {
		return 0
	}
	cos := u.Dot(v) / (nu * nv)
	// clamp rounding noise before acos
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}
