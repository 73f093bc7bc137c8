// Package kernel defines the abstract geometry kernel interface used to
// turn footprint prisms into solids. Solids answer containment queries
// through a signed distance and can be tessellated into triangle meshes.
// The sdfx subpackage provides the implementation.
package kernel

import "github.com/chazu/massing/pkg/geom"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)

	// Distance returns the signed distance from p to the surface:
	// negative inside, positive outside. Inside a box it is exact; after
	// boolean operations it is a lower bound on the true distance.
	Distance(p geom.Point3) float64
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Box creates a box with its minimum corner at the origin.
	Box(x, y, z float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid

	// Translate moves a solid by (x, y, z).
	Translate(s Solid, x, y, z float64) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}

// PrismSolid returns the solid occupied by p.
func PrismSolid(k Kernel, p geom.Prism) Solid {
	o := p.Origin
	return k.Translate(k.Box(p.Width, p.Depth, p.Height), o.X, o.Y, o.Z)
}

// FootprintSolid returns the union of prisms. It returns nil when prisms
// is empty.
func FootprintSolid(k Kernel, prisms []geom.Prism) Solid {
	var s Solid
	for _, p := range prisms {
		ps := PrismSolid(k, p)
		if s == nil {
			s = ps
			continue
		}
		s = k.Union(s, ps)
	}
	return s
}

// Inside reports whether p lies inside or on the surface of s.
func Inside(s Solid, p geom.Point3) bool {
	return s.Distance(p) <= 0
}
