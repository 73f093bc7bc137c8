// Package geom defines the value types shared by every massing component:
// points, axis-aligned prisms, sphere sets, contour loops and wall panels.
// All values are immutable once constructed and carry no behavior beyond
// simple geometric queries.
package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Point3 is a position in model space. X runs along the width, Y along the
// depth and Z along the height.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pt is shorthand for constructing a Point3.
func Pt(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Add returns p + q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Vec converts the point to an mgl64 vector for vector algebra.
func (p Point3) Vec() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// Coord returns the coordinate along axis a (0=X, 1=Y, 2=Z).
func (p Point3) Coord(a int) float64 {
	switch a {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

func (p Point3) String() string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g)", p.X, p.Y, p.Z)
}

// FromVec converts an mgl64 vector back to a Point3.
func FromVec(v mgl64.Vec3) Point3 {
	return Point3{X: v[0], Y: v[1], Z: v[2]}
}

// Segment is a straight edge between two points, used for wireframes.
type Segment struct {
	A Point3 `json:"a"`
	B Point3 `json:"b"`
}
