// Package volume holds the analytic volume formulas used for fill-rate
// statistics. Inputs are assumed to be validated already.
package volume

import (
	"math"

	"github.com/chazu/massing/pkg/geom"
	"github.com/samber/lo"
)

// Prism returns width*depth*height.
func Prism(p geom.Prism) float64 {
	return p.Width * p.Depth * p.Height
}

// Prisms returns the summed volume of ps.
func Prisms(ps []geom.Prism) float64 {
	return lo.SumBy(ps, Prism)
}

// Cross returns the volume of a cross footprint with the given central
// block, arm cross-section and height: cw*cd*h + 4*aw*ad*h.
func Cross(centralWidth, centralDepth, armWidth, armDepth, height float64) float64 {
	return centralWidth*centralDepth*height + 4*(armWidth*armDepth*height)
}

// Sphere returns 4/3*pi*r^3.
func Sphere(radius float64) float64 {
	return 4.0 / 3.0 * math.Pi * radius * radius * radius
}

// FillRatio returns the percentage of container occupied by count spheres
// of the given radius.
func FillRatio(container float64, count int, radius float64) float64 {
	return float64(count) * Sphere(radius) / container * 100
}
