package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SphereSet is an ordered list of sphere centers sharing one radius.
type SphereSet struct {
	Radius  float64  `json:"radius"`
	Centers []Point3 `json:"centers"`
}

// Len returns the number of spheres.
func (s SphereSet) Len() int {
	return len(s.Centers)
}

// Diameter returns twice the radius.
func (s SphereSet) Diameter() float64 {
	return 2 * s.Radius
}

// Append returns a new set holding the centers of s followed by those of
// other. The radius of s is kept; an empty s takes the radius of other.
func (s SphereSet) Append(other SphereSet) SphereSet {
	r := s.Radius
	if len(s.Centers) == 0 {
		r = other.Radius
	}
	centers := make([]Point3, 0, len(s.Centers)+len(other.Centers))
	centers = append(centers, s.Centers...)
	centers = append(centers, other.Centers...)
	return SphereSet{Radius: r, Centers: centers}
}

// ContourLoop is the closed outline of a footprint at the floor (Base) and
// at the roof (Top). Top[i] sits directly above Base[i].
type ContourLoop struct {
	Base []Point3 `json:"base"`
	Top  []Point3 `json:"top"`
}

// Len returns the number of vertices in each ring.
func (c ContourLoop) Len() int {
	return len(c.Base)
}

// Edges returns the wireframe of the extruded outline: the base ring, the
// top ring, then one vertical edge per vertex. A loop of n vertices yields
// 3n segments.
func (c ContourLoop) Edges() []Segment {
	n := len(c.Base)
	edges := make([]Segment, 0, 3*n)
	for i := 0; i < n; i++ {
		edges = append(edges, Segment{A: c.Base[i], B: c.Base[(i+1)%n]})
	}
	for i := 0; i < n; i++ {
		edges = append(edges, Segment{A: c.Top[i], B: c.Top[(i+1)%n]})
	}
	for i := 0; i < n; i++ {
		edges = append(edges, Segment{A: c.Base[i], B: c.Top[i]})
	}
	return edges
}

// Side identifies one of the four vertical sides of a prism.
type Side int

const (
	SideFront Side = iota // y minimum
	SideBack              // y maximum
	SideLeft              // x minimum
	SideRight             // x maximum
	SideNone              // floor panels belong to no side
)

func (s Side) String() string {
	switch s {
	case SideFront:
		return "front"
	case SideBack:
		return "back"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideNone:
		return "none"
	default:
		return "unknown"
	}
}

// PanelKind says which face of a hollow wall a panel represents.
type PanelKind int

const (
	PanelOuter     PanelKind = iota // outward-facing wall face
	PanelInner                      // face looking into the hollow
	PanelBottomRim                  // strip at z=0 joining outer to inner
	PanelTopRim                     // strip at z=height joining outer to inner
	PanelFloor                      // floor of the footprint
)

func (k PanelKind) String() string {
	switch k {
	case PanelOuter:
		return "outer"
	case PanelInner:
		return "inner"
	case PanelBottomRim:
		return "bottom-rim"
	case PanelTopRim:
		return "top-rim"
	case PanelFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// WallPanel is one planar quadrilateral face of a hollow wall.
type WallPanel struct {
	Side     Side      `json:"side"`
	Kind     PanelKind `json:"kind"`
	Vertices [4]Point3 `json:"vertices"`
}

// Normal returns the unit normal implied by the vertex winding
// (right-hand rule over the first three vertices). A degenerate panel
// yields the zero vector.
func (w WallPanel) Normal() mgl64.Vec3 {
	a := w.Vertices[1].Vec().Sub(w.Vertices[0].Vec())
	b := w.Vertices[2].Vec().Sub(w.Vertices[0].Vec())
	n := a.Cross(b)
	if n.Len() == 0 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}

// Area returns the area of the quadrilateral, split along its 0-2 diagonal.
func (w WallPanel) Area() float64 {
	v := w.Vertices
	d := v[2].Vec().Sub(v[0].Vec())
	t1 := v[1].Vec().Sub(v[0].Vec()).Cross(d).Len() / 2
	t2 := d.Cross(v[3].Vec().Sub(v[0].Vec())).Len() / 2
	return math.Abs(t1) + math.Abs(t2)
}
