package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/massing/pkg/footprint"
	"github.com/chazu/massing/pkg/geom"
	"github.com/chazu/massing/pkg/kernel"
)

func TestBox(t *testing.T) {
	k := NewWithCells(40)
	box := k.Box(100, 50, 25)
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}
}

func TestBoundingBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMax := [3]float64{100, 50, 25}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]) > tol {
			t.Errorf("min[%d] = %f, expected 0", i, min[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	box := k.Box(10, 10, 10)
	translated := k.Translate(box, 100, 200, 300)

	min, max := translated.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{100, 200, 300}
	expectMax := [3]float64{110, 210, 310}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestPrismDistance(t *testing.T) {
	k := New()
	s := kernel.PrismSolid(k, geom.Prism{Origin: geom.Pt(2, 3, 0), Width: 6, Depth: 4, Height: 10})

	const tol = 1e-9
	tests := []struct {
		name string
		p    geom.Point3
		want float64
	}{
		{"center", geom.Pt(5, 5, 5), -2},
		{"near left face", geom.Pt(2.5, 5, 5), -0.5},
		{"on face", geom.Pt(8, 5, 5), 0},
		{"outside", geom.Pt(11, 5, 5), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Distance(tt.p); math.Abs(got-tt.want) > tol {
				t.Errorf("Distance(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestFootprintContainsPackedCenters(t *testing.T) {
	k := New()
	c := footprint.Cross{CentralWidth: 4, CentralDepth: 4, ArmWidth: 2, ArmDepth: 3, Height: 5}
	prisms := footprint.Decompose(c)
	s := kernel.FootprintSolid(k, prisms[:])

	for _, p := range prisms {
		if !kernel.Inside(s, p.Center()) {
			t.Errorf("center of %s is outside the footprint", p.Name)
		}
	}
	// Corners of the total bounding square are not part of a cross.
	for _, p := range []geom.Point3{geom.Pt(0.5, 0.5, 1), geom.Pt(9.5, 9.5, 1), geom.Pt(0.5, 9.5, 1)} {
		if kernel.Inside(s, p) {
			t.Errorf("%v should be outside the footprint", p)
		}
	}
}

func TestDifference(t *testing.T) {
	k := NewWithCells(60)

	outer := kernel.PrismSolid(k, geom.Prism{Width: 10, Depth: 10, Height: 4})
	inner := kernel.PrismSolid(k, geom.Prism{Origin: geom.Pt(2, 2, -1), Width: 6, Depth: 6, Height: 6})
	outerMesh, err := k.ToMesh(outer)
	if err != nil {
		t.Fatalf("ToMesh(outer) failed: %v", err)
	}
	hollow := k.Difference(outer, inner)
	hollowMesh, err := k.ToMesh(hollow)
	if err != nil {
		t.Fatalf("ToMesh(hollow) failed: %v", err)
	}
	// A box with a shaft through it has more surface than a plain box.
	if hollowMesh.TriangleCount() <= outerMesh.TriangleCount() {
		t.Fatalf("hollow (%d triangles) should have more triangles than box (%d triangles)",
			hollowMesh.TriangleCount(), outerMesh.TriangleCount())
	}
	if hollow.Distance(geom.Pt(5, 5, 2)) <= 0 {
		t.Error("the shaft should be empty")
	}
	if hollow.Distance(geom.Pt(1, 5, 2)) >= 0 {
		t.Error("the wall should be solid")
	}
}

func TestUnion(t *testing.T) {
	k := NewWithCells(40)
	box1 := k.Box(50, 50, 50)
	box2 := k.Translate(k.Box(50, 50, 50), 30, 0, 0)
	u := k.Union(box1, box2)
	mesh, err := k.ToMesh(u)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("union mesh is empty")
	}
	min, max := u.BoundingBox()
	if math.Abs(min[0]) > 0.01 || math.Abs(max[0]-80) > 0.01 {
		t.Errorf("union X bounds = %v..%v, want 0..80", min[0], max[0])
	}
}

func TestNewWithCells(t *testing.T) {
	if got := NewWithCells(0).Cells(); got != DefaultMeshCells {
		t.Errorf("NewWithCells(0).Cells() = %d, want %d", got, DefaultMeshCells)
	}
	if got := NewWithCells(32).Cells(); got != 32 {
		t.Errorf("NewWithCells(32).Cells() = %d, want 32", got)
	}
}
