// Package pack fills axis-aligned prisms with equal spheres on a simple
// Cartesian grid and reports spheres that end up closer than one diameter.
//
// Each prism is split into nx*ny*nz equal cells, n = max(1, floor(extent/d))
// per axis, and one sphere is centered in every cell. The cell size is
// extent/n, which is never below d unless the prism is thinner than one
// diameter on that axis. In that case the packer still returns the single
// row of spheres and flags the packing as overlapping.
package pack

import (
	"context"
	"fmt"
	"math"

	"github.com/chazu/massing/pkg/footprint"
	"github.com/chazu/massing/pkg/geom"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// MaxSpheres is the largest number of spheres one call to PackAll will
// place. Larger requests are rejected before anything is allocated.
const MaxSpheres = 1_000_000

var axisNames = [3]string{"width", "depth", "height"}

// Packing is the result of filling one prism.
type Packing struct {
	Prism   geom.Prism     `json:"prism"`
	Cells   [3]int         `json:"cells"`   // cell count along width, depth, height
	Spacing [3]float64     `json:"spacing"` // cell size along width, depth, height
	Spheres geom.SphereSet `json:"spheres"`
}

// Count returns the number of spheres placed.
func (p Packing) Count() int {
	return p.Spheres.Len()
}

// Overlapping reports whether centers are closer than one diameter on at
// least one axis.
func (p Packing) Overlapping() bool {
	return len(p.TightAxes()) > 0
}

// TightAxes names the axes whose cell size is below one diameter.
func (p Packing) TightAxes() []string {
	d := p.Spheres.Diameter()
	var axes []string
	for a := 0; a < 3; a++ {
		if p.Spacing[a] < d {
			axes = append(axes, axisNames[a])
		}
	}
	return axes
}

// cellCount returns max(1, floor(extent/d)).
func cellCount(extent, d float64) int {
	n := int(math.Floor(extent / d))
	if n < 1 {
		return 1
	}
	return n
}

// Estimate returns the number of spheres PackAll would place. It counts in
// floating point, so it is safe for any extent and radius.
func Estimate(prisms []geom.Prism, radius float64) float64 {
	d := 2 * radius
	var total float64
	for _, p := range prisms {
		n := 1.0
		for a := 0; a < 3; a++ {
			n *= math.Max(1, math.Floor(p.Extent(a)/d))
		}
		total += n
	}
	return total
}

// CheckCount rejects packings of more than MaxSpheres spheres. The error
// wraps footprint.ErrInvalidDimension and names the radius.
func CheckCount(prisms []geom.Prism, radius float64) error {
	n := Estimate(prisms, radius)
	if n <= MaxSpheres {
		return nil
	}
	return fmt.Errorf("pack: %.4g spheres exceed the limit of %d: %w", n, MaxSpheres,
		&footprint.DimensionError{Field: "radius", Value: radius, Err: footprint.ErrInvalidDimension})
}

// Pack fills prism with spheres of the given radius. Centers are emitted
// with the width index outermost and the height index innermost. Both
// prism and radius must already be validated.
func Pack(prism geom.Prism, radius float64) Packing {
	d := 2 * radius

	var cells [3]int
	var spacing [3]float64
	for a := 0; a < 3; a++ {
		cells[a] = cellCount(prism.Extent(a), d)
		spacing[a] = prism.Extent(a) / float64(cells[a])
	}

	o := prism.Origin
	centers := make([]geom.Point3, 0, cells[0]*cells[1]*cells[2])
	for i := 0; i < cells[0]; i++ {
		x := o.X + (float64(i)+0.5)*spacing[0]
		for j := 0; j < cells[1]; j++ {
			y := o.Y + (float64(j)+0.5)*spacing[1]
			for k := 0; k < cells[2]; k++ {
				z := o.Z + (float64(k)+0.5)*spacing[2]
				centers = append(centers, geom.Point3{X: x, Y: y, Z: z})
			}
		}
	}

	return Packing{
		Prism:   prism,
		Cells:   cells,
		Spacing: spacing,
		Spheres: geom.SphereSet{Radius: radius, Centers: centers},
	}
}

// PackAll packs every prism concurrently. The returned slice is in the
// same order as prisms regardless of completion order.
func PackAll(ctx context.Context, prisms []geom.Prism, radius float64) ([]Packing, error) {
	if err := CheckCount(prisms, radius); err != nil {
		return nil, err
	}
	out := make([]Packing, len(prisms))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range prisms {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("pack: %s: %w", p.Name, err)
			}
			out[i] = Pack(p, radius)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Concat joins the sphere sets of packings in order. All packings are
// expected to share one radius.
func Concat(packings []Packing) geom.SphereSet {
	if len(packings) == 0 {
		return geom.SphereSet{}
	}
	centers := lo.Flatten(lo.Map(packings, func(p Packing, _ int) []geom.Point3 {
		return p.Spheres.Centers
	}))
	return geom.SphereSet{Radius: packings[0].Spheres.Radius, Centers: centers}
}
