package geom

// Prism is an axis-aligned box given by its minimum corner and its extents.
// Name labels the part it represents ("box", "central", "left-arm", ...).
type Prism struct {
	Name   string  `json:"name"`
	Origin Point3  `json:"origin"`
	Width  float64 `json:"width"`  // extent along X
	Depth  float64 `json:"depth"`  // extent along Y
	Height float64 `json:"height"` // extent along Z
}

// Valid reports whether every extent is strictly positive.
func (p Prism) Valid() bool {
	return p.Width > 0 && p.Depth > 0 && p.Height > 0
}

// Max returns the corner opposite the origin.
func (p Prism) Max() Point3 {
	return Point3{X: p.Origin.X + p.Width, Y: p.Origin.Y + p.Depth, Z: p.Origin.Z + p.Height}
}

// Center returns the centroid of the prism.
func (p Prism) Center() Point3 {
	return Point3{X: p.Origin.X + p.Width/2, Y: p.Origin.Y + p.Depth/2, Z: p.Origin.Z + p.Height/2}
}

// Extent returns the extent along axis a (0=X, 1=Y, 2=Z).
func (p Prism) Extent(a int) float64 {
	switch a {
	case 0:
		return p.Width
	case 1:
		return p.Depth
	default:
		return p.Height
	}
}

// Contains reports whether q lies in the closed box.
func (p Prism) Contains(q Point3) bool {
	m := p.Max()
	return q.X >= p.Origin.X && q.X <= m.X &&
		q.Y >= p.Origin.Y && q.Y <= m.Y &&
		q.Z >= p.Origin.Z && q.Z <= m.Z
}

// Overlaps reports whether the interiors of p and o intersect. Prisms that
// only share a face do not overlap.
func (p Prism) Overlaps(o Prism) bool {
	pm, om := p.Max(), o.Max()
	return p.Origin.X < om.X && o.Origin.X < pm.X &&
		p.Origin.Y < om.Y && o.Origin.Y < pm.Y &&
		p.Origin.Z < om.Z && o.Origin.Z < pm.Z
}

// Inset returns the prism shrunk by d on all four horizontal sides. Height
// and base elevation are unchanged. The result may be invalid; callers check.
func (p Prism) Inset(d float64) Prism {
	return Prism{
		Name:   p.Name,
		Origin: Point3{X: p.Origin.X + d, Y: p.Origin.Y + d, Z: p.Origin.Z},
		Width:  p.Width - 2*d,
		Depth:  p.Depth - 2*d,
		Height: p.Height,
	}
}
