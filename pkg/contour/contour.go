// Package contour traces the outline of a cross footprint for wireframe
// rendering and provides the polygon checks used to verify it.
//
// The outline is a fixed 20-vertex ring walked counter-clockwise (x right,
// y up), starting at the upper outer corner of the left arm. Arms are
// visited left, bottom, right, top. For each arm the ring lists its two
// outer corners, the inner corner where it meets the central block, the
// central block corner that follows, then the inner corner of the next arm.
//
//	                 16 +--+ 15
//	                    |  |
//	        18       17 |  | 14       13
//	          +---------+  +---------+
//	          |                      |
//	     0 +--+ 19                12 +--+ 11
//	       |                            |
//	     1 +--+ 2                  9 +--+ 10
//	          |                      |
//	          +---------+  +---------+
//	        3         4 |  | 7        8
//	                    |  |
//	                  5 +--+ 6
//
// When the arm width equals a central side the inner corner and the
// central corner coincide; the ring keeps both so its length never changes.
package contour

import (
	"math"

	"github.com/chazu/massing/pkg/footprint"
	"github.com/chazu/massing/pkg/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// LoopLength is the number of vertices in a cross outline.
const LoopLength = 20

// Trace returns the base and top rings of the cross outline. The footprint
// must already be validated.
func Trace(c footprint.Cross) geom.ContourLoop {
	ctr := c.Centroid()
	cx, cy := ctr.X, ctr.Y
	hw, hd, ha := c.CentralWidth/2, c.CentralDepth/2, c.ArmWidth/2

	// Outer and central boundaries along each axis.
	x0, xl, xr, x1 := cx-hw-c.ArmDepth, cx-hw, cx+hw, cx+hw+c.ArmDepth
	y0, yb, yt, y1 := cy-hd-c.ArmDepth, cy-hd, cy+hd, cy+hd+c.ArmDepth

	base := []geom.Point3{
		// left arm
		{X: x0, Y: cy + ha}, {X: x0, Y: cy - ha}, {X: xl, Y: cy - ha}, {X: xl, Y: yb}, {X: cx - ha, Y: yb},
		// bottom arm
		{X: cx - ha, Y: y0}, {X: cx + ha, Y: y0}, {X: cx + ha, Y: yb}, {X: xr, Y: yb}, {X: xr, Y: cy - ha},
		// right arm
		{X: x1, Y: cy - ha}, {X: x1, Y: cy + ha}, {X: xr, Y: cy + ha}, {X: xr, Y: yt}, {X: cx + ha, Y: yt},
		// top arm
		{X: cx + ha, Y: y1}, {X: cx - ha, Y: y1}, {X: cx - ha, Y: yt}, {X: xl, Y: yt}, {X: xl, Y: cy + ha},
	}

	lift := geom.Pt(0, 0, c.Height)
	top := make([]geom.Point3, len(base))
	for i, p := range base {
		top[i] = p.Add(lift)
	}
	return geom.ContourLoop{Base: base, Top: top}
}

// SignedArea returns the shoelace area of the ring formed by points,
// projected onto the XY plane. It is positive for counter-clockwise rings.
func SignedArea(points []geom.Point3) float64 {
	var twice float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		twice += p.X*q.Y - q.X*p.Y
	}
	return twice / 2
}

// IsSimple reports whether the closed ring through points, projected onto
// the XY plane, has no self-intersections. Consecutive duplicate vertices
// are dropped first. Adjacent edges may only share their common endpoint.
// Tolerances are relative to the extent of the ring, so the answer does not
// depend on the unit of length.
func IsSimple(points []geom.Point3) bool {
	tol := toleranceFor(points)
	ring := tol.dedupe(points)
	n := len(ring)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		for j := i + 1; j < n; j++ {
			c, d := ring[j], ring[(j+1)%n]
			switch {
			case j == i+1:
				// shared endpoint b == c; reject folding back onto a
				if tol.onSegment(c, d, a) || tol.onSegment(a, b, d) {
					return false
				}
			case i == 0 && j == n-1:
				// closing edge shares a with d
				if tol.onSegment(c, d, b) || tol.onSegment(a, b, c) {
					return false
				}
			default:
				if tol.segmentsIntersect(a, b, c, d) {
					return false
				}
			}
		}
	}
	return true
}

// relEps is the tolerance relative to the ring extent.
const relEps = 1e-12

// tolerance holds a length tolerance and the matching area tolerance used
// for orientation tests.
type tolerance struct {
	length float64
	area   float64
}

// toleranceFor scales relEps by the larger side of the XY bounding box of
// points.
func toleranceFor(points []geom.Point3) tolerance {
	if len(points) == 0 {
		return tolerance{}
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	extent := math.Max(maxX-minX, maxY-minY)
	return tolerance{length: relEps * extent, area: relEps * extent * extent}
}

// dedupe drops consecutive duplicates, including a trailing copy of the
// first vertex.
func (t tolerance) dedupe(points []geom.Point3) []geom.Point3 {
	out := make([]geom.Point3, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && t.samePoint(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && t.samePoint(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func (t tolerance) samePoint(a, b geom.Point3) bool {
	return math.Abs(a.X-b.X) <= t.length && math.Abs(a.Y-b.Y) <= t.length
}

// orient is the Z component of (b-a) x (c-a).
func orient(a, b, c geom.Point3) float64 {
	ab := mgl64.Vec3{b.X - a.X, b.Y - a.Y, 0}
	ac := mgl64.Vec3{c.X - a.X, c.Y - a.Y, 0}
	return ab.Cross(ac).Z()
}

func (t tolerance) sign(v float64) int {
	switch {
	case v > t.area:
		return 1
	case v < -t.area:
		return -1
	}
	return 0
}

// onSegment reports whether p lies on segment ab, endpoints excluded.
func (t tolerance) onSegment(a, b, p geom.Point3) bool {
	if t.sign(orient(a, b, p)) != 0 || t.samePoint(p, a) || t.samePoint(p, b) {
		return false
	}
	return t.within(a, b, p)
}

func (t tolerance) within(a, b, p geom.Point3) bool {
	e := t.length
	return p.X >= math.Min(a.X, b.X)-e && p.X <= math.Max(a.X, b.X)+e &&
		p.Y >= math.Min(a.Y, b.Y)-e && p.Y <= math.Max(a.Y, b.Y)+e
}

// segmentsIntersect reports whether segments ab and cd touch anywhere,
// endpoints included.
func (t tolerance) segmentsIntersect(a, b, c, d geom.Point3) bool {
	o1, o2 := t.sign(orient(a, b, c)), t.sign(orient(a, b, d))
	o3, o4 := t.sign(orient(c, d, a)), t.sign(orient(c, d, b))
	if o1 != o2 && o3 != o4 {
		return true
	}
	return (o1 == 0 && t.within(a, b, c)) ||
		(o2 == 0 && t.within(a, b, d)) ||
		(o3 == 0 && t.within(c, d, a)) ||
		(o4 == 0 && t.within(c, d, b))
}
