package pack

import (
	"cmp"
	"slices"

	"github.com/chazu/massing/pkg/geom"
	"github.com/dhconnelly/rtreego"
)

// overlapTolerance absorbs rounding in centers that sit exactly one
// diameter apart.
const overlapTolerance = 1e-9

// Pair identifies two interpenetrating spheres by their index in the set.
type Pair struct {
	A, B     int
	Distance float64
}

// sphereBound is the R-tree entry for one sphere: its bounding cube.
type sphereBound struct {
	index int
	rect  rtreego.Rect
}

func (s *sphereBound) Bounds() rtreego.Rect {
	return s.rect
}

// Interpenetrations returns every pair of spheres in set whose centers are
// closer than one diameter, ordered by (A, B) with A < B. Spheres from
// different prisms are compared too, so seams between prisms are covered.
func Interpenetrations(set geom.SphereSet) []Pair {
	n := set.Len()
	if n < 2 || set.Radius <= 0 {
		return nil
	}
	r := set.Radius
	d := set.Diameter()

	objs := make([]rtreego.Spatial, n)
	bounds := make([]*sphereBound, n)
	for i, c := range set.Centers {
		rect, err := rtreego.NewRectFromPoints(
			rtreego.Point{c.X - r, c.Y - r, c.Z - r},
			rtreego.Point{c.X + r, c.Y + r, c.Z + r},
		)
		if err != nil {
			// Only a dimension mismatch fails, and both points are 3D.
			panic(err)
		}
		bounds[i] = &sphereBound{index: i, rect: rect}
		objs[i] = bounds[i]
	}
	tree := rtreego.NewTree(3, 25, 50, objs...)

	var pairs []Pair
	for i, b := range bounds {
		for _, hit := range tree.SearchIntersect(b.rect) {
			j := hit.(*sphereBound).index
			if j <= i {
				continue
			}
			dist := set.Centers[i].Vec().Sub(set.Centers[j].Vec()).Len()
			if dist < d-overlapTolerance {
				pairs = append(pairs, Pair{A: i, B: j, Distance: dist})
			}
		}
	}
	// SearchIntersect returns hits in tree order.
	slices.SortFunc(pairs, func(a, b Pair) int {
		if c := cmp.Compare(a.A, b.A); c != 0 {
			return c
		}
		return cmp.Compare(a.B, b.B)
	})
	return pairs
}
