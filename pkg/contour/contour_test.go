package contour

import (
	"math"
	"testing"

	"github.com/chazu/massing/pkg/footprint"
	"github.com/chazu/massing/pkg/geom"
)

var crosses = []footprint.Cross{
	{CentralWidth: 4, CentralDepth: 4, ArmWidth: 2, ArmDepth: 3, Height: 5},
	{CentralWidth: 6, CentralDepth: 5, ArmWidth: 3, ArmDepth: 4, Height: 4},
	{CentralWidth: 10, CentralDepth: 2, ArmWidth: 1, ArmDepth: 0.5, Height: 1},
	{CentralWidth: 3, CentralDepth: 3, ArmWidth: 3, ArmDepth: 3, Height: 3},
	{CentralWidth: 2, CentralDepth: 5, ArmWidth: 2, ArmDepth: 1, Height: 2},
	{CentralWidth: 0.4, CentralDepth: 0.7, ArmWidth: 0.1, ArmDepth: 9, Height: 0.2},
}

func TestTraceShape(t *testing.T) {
	for _, c := range crosses {
		loop := Trace(c)
		if loop.Len() != LoopLength || len(loop.Top) != LoopLength {
			t.Fatalf("%+v: loop lengths %d/%d, want %d", c, len(loop.Base), len(loop.Top), LoopLength)
		}
		for i := range loop.Base {
			b, top := loop.Base[i], loop.Top[i]
			if b.Z != 0 {
				t.Errorf("%+v: base[%d].Z = %v", c, i, b.Z)
			}
			if top.X != b.X || top.Y != b.Y || top.Z != c.Height {
				t.Errorf("%+v: top[%d] = %v, base = %v", c, i, top, b)
			}
		}
		if edges := loop.Edges(); len(edges) != 3*LoopLength {
			t.Errorf("%+v: %d edges, want %d", c, len(edges), 3*LoopLength)
		}
	}
}

func TestTraceStartsAtLeftArm(t *testing.T) {
	c := footprint.Cross{CentralWidth: 4, CentralDepth: 4, ArmWidth: 2, ArmDepth: 3, Height: 5}
	loop := Trace(c)
	// Total 10 x 10, centroid (5, 5), left arm spans x 0..3, y 4..6.
	if got := loop.Base[0]; got != geom.Pt(0, 6, 0) {
		t.Errorf("Base[0] = %v, want (0, 6, 0)", got)
	}
	if got := loop.Base[1]; got != geom.Pt(0, 4, 0) {
		t.Errorf("Base[1] = %v, want (0, 4, 0)", got)
	}
	if got := loop.Base[5]; got != geom.Pt(4, 0, 0) {
		t.Errorf("Base[5] = %v, want bottom arm outer corner (4, 0, 0)", got)
	}
	if got := loop.Base[LoopLength-1]; got != geom.Pt(3, 6, 0) {
		t.Errorf("Base[19] = %v, want (3, 6, 0)", got)
	}
}

func TestTraceSimpleAndCounterClockwise(t *testing.T) {
	for _, c := range crosses {
		loop := Trace(c)
		if !IsSimple(loop.Base) {
			t.Errorf("%+v: outline is not simple", c)
		}
		got := SignedArea(loop.Base)
		if got <= 0 {
			t.Errorf("%+v: signed area %v, want positive", c, got)
		}
		if want := c.Area(); math.Abs(got-want) > 1e-9*want {
			t.Errorf("%+v: signed area %v, want %v", c, got, want)
		}
	}
}

func TestTraceVerticesOnFootprint(t *testing.T) {
	for _, c := range crosses {
		prisms := footprint.Decompose(c)
		for i, p := range Trace(c).Base {
			on := false
			for _, pr := range prisms {
				// grow by a rounding margin; Contains is exact
				if pr.Inset(-1e-9).Contains(p) {
					on = true
					break
				}
			}
			if !on {
				t.Errorf("%+v: vertex %d %v lies outside every prism", c, i, p)
			}
		}
	}
}

func TestIsSimple(t *testing.T) {
	square := []geom.Point3{geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), geom.Pt(1, 1, 0), geom.Pt(0, 1, 0)}
	tests := []struct {
		name   string
		points []geom.Point3
		want   bool
	}{
		{"square", square, true},
		{"closed with repeat", append(append([]geom.Point3{}, square...), square[0]), true},
		{"duplicate vertex", []geom.Point3{square[0], square[1], square[1], square[2], square[3]}, true},
		{"bowtie", []geom.Point3{geom.Pt(0, 0, 0), geom.Pt(1, 1, 0), geom.Pt(1, 0, 0), geom.Pt(0, 1, 0)}, false},
		{"fold back", []geom.Point3{geom.Pt(0, 0, 0), geom.Pt(2, 0, 0), geom.Pt(1, 0, 0), geom.Pt(1, 1, 0)}, false},
		{"touching", []geom.Point3{
			geom.Pt(0, 0, 0), geom.Pt(4, 0, 0), geom.Pt(4, 2, 0), geom.Pt(2, 0, 0), geom.Pt(0, 2, 0),
		}, false},
		{"too few", square[:2], false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSimple(tt.points); got != tt.want {
				t.Errorf("IsSimple() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSimpleRejectsScrambledOutline(t *testing.T) {
	c := footprint.Cross{CentralWidth: 4, CentralDepth: 4, ArmWidth: 2, ArmDepth: 3, Height: 5}
	ring := Trace(c).Base
	ring[0], ring[10] = ring[10], ring[0]
	if IsSimple(ring) {
		t.Error("swapping opposite arm corners should self-intersect")
	}
}

func TestSignedAreaClockwise(t *testing.T) {
	cw := []geom.Point3{geom.Pt(0, 0, 0), geom.Pt(0, 2, 0), geom.Pt(3, 2, 0), geom.Pt(3, 0, 0)}
	if got := SignedArea(cw); got != -6 {
		t.Errorf("SignedArea() = %v, want -6", got)
	}
}

func TestIsSimpleAtAnyScale(t *testing.T) {
	for _, c := range crosses {
		for _, k := range []float64{1e-13, 1e-6, 1e9} {
			s := footprint.Cross{
				CentralWidth: c.CentralWidth * k,
				CentralDepth: c.CentralDepth * k,
				ArmWidth:     c.ArmWidth * k,
				ArmDepth:     c.ArmDepth * k,
				Height:       c.Height * k,
			}
			if err := s.Validate(); err != nil {
				t.Fatalf("%+v: Validate() = %v", s, err)
			}
			if !IsSimple(Trace(s).Base) {
				t.Errorf("%+v scaled by %g: outline reported self-intersecting", c, k)
			}
		}
	}

	// The scrambled outline stays rejected when tiny.
	tiny := footprint.Cross{CentralWidth: 4e-13, CentralDepth: 4e-13, ArmWidth: 2e-13, ArmDepth: 3e-13, Height: 5e-13}
	ring := Trace(tiny).Base
	ring[0], ring[10] = ring[10], ring[0]
	if IsSimple(ring) {
		t.Error("scrambled tiny outline should self-intersect")
	}
}
