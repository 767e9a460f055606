package geo

import "math"

// Point3 represents a point or direction in 3D space (Z is up).
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Origin is the zero point.
var Origin = Point3{0, 0, 0}

// Up is the default sensor direction.
var Up = Point3{0, 0, 1}

// Pt is a shorthand constructor for Point3.
func Pt(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Add returns p + q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p * s.
func (p Point3) Scale(s float64) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

// Length returns the Euclidean length of the vector.
func (p Point3) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Normalize returns the unit vector in the same direction.
// Returns zero vector if length is zero.
func (p Point3) Normalize() Point3 {
	l := p.Length()
	if l < 1e-12 {
		return Point3{}
	}
	return Point3{p.X / l, p.Y / l, p.Z / l}
}

// Dot returns the dot product of p and q.
func (p Point3) Dot(q Point3) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product of p and q.
func (p Point3) Cross(q Point3) Point3 {
	return Point3{
		p.Y*q.Z - p.Z*q.Y,
		p.Z*q.X - p.X*q.Z,
		p.X*q.Y - p.Y*q.X,
	}
}

// Distance returns the Euclidean distance from p to q.
func (p Point3) Distance(q Point3) float64 {
	return p.Sub(q).Length()
}

// Lerp returns the linear interpolation between p and q at t in [0, 1].
func (p Point3) Lerp(q Point3, t float64) Point3 {
	return p.Add(q.Sub(p).Scale(t))
}

// IsZero reports whether all components are exactly zero.
func (p Point3) IsZero() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0
}
