package tessellate_test

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/massing/pkg/footprint"
	"github.com/chazu/massing/pkg/geom"
	"github.com/chazu/massing/pkg/kernel"
	"github.com/chazu/massing/pkg/kernel/sdfx"
	"github.com/chazu/massing/pkg/tessellate"
	"github.com/chazu/massing/pkg/wall"
)

// newKernel returns a coarse sdfx kernel for testing.
func newKernel() kernel.Kernel {
	return sdfx.NewWithCells(48)
}

// sampleCross is the 10 x 10 cross used across tests.
func sampleCross() []geom.Prism {
	prisms := footprint.Decompose(footprint.Cross{CentralWidth: 4, CentralDepth: 4, ArmWidth: 2, ArmDepth: 3, Height: 5})
	return prisms[:]
}

func TestSinglePrism(t *testing.T) {
	k := newKernel()
	meshes, err := tessellate.Prisms([]geom.Prism{{Name: "box", Width: 10, Depth: 10, Height: 10}}, k)
	if err != nil {
		t.Fatalf("Prisms failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}
	m := meshes[0]
	if m.IsEmpty() {
		t.Fatal("mesh should not be empty")
	}
	if m.PartName != "box" {
		t.Errorf("expected PartName %q, got %q", "box", m.PartName)
	}
	if m.TriangleCount() == 0 {
		t.Error("mesh should have triangles")
	}
}

func TestCrossPrisms(t *testing.T) {
	k := newKernel()
	prisms := sampleCross()
	meshes, err := tessellate.Prisms(prisms, k)
	if err != nil {
		t.Fatalf("Prisms failed: %v", err)
	}
	if len(meshes) != len(prisms) {
		t.Fatalf("expected %d meshes, got %d", len(prisms), len(meshes))
	}
	for i, m := range meshes {
		if m.PartName != footprint.PartOrder[i] {
			t.Errorf("mesh %d named %q, want %q", i, m.PartName, footprint.PartOrder[i])
		}
		if m.IsEmpty() {
			t.Errorf("mesh %q should not be empty", m.PartName)
		}
	}
}

func TestPrismMeshPlacement(t *testing.T) {
	k := newKernel()
	p := geom.Prism{Name: "left-arm", Origin: geom.Pt(0, 4, 0), Width: 3, Depth: 2, Height: 5}
	meshes, err := tessellate.Prisms([]geom.Prism{p}, k)
	if err != nil {
		t.Fatalf("Prisms failed: %v", err)
	}
	m := meshes[0]

	// Compute centroid of all vertices.
	var cx, cy, cz float64
	n := m.VertexCount()
	for i := 0; i < n; i++ {
		cx += float64(m.Vertices[i*3])
		cy += float64(m.Vertices[i*3+1])
		cz += float64(m.Vertices[i*3+2])
	}
	cx /= float64(n)
	cy /= float64(n)
	cz /= float64(n)

	c := p.Center()
	const tol = 0.5
	if math.Abs(cx-c.X) > tol {
		t.Errorf("centroid X = %.2f, expected near %.2f", cx, c.X)
	}
	if math.Abs(cy-c.Y) > tol {
		t.Errorf("centroid Y = %.2f, expected near %.2f", cy, c.Y)
	}
	if math.Abs(cz-c.Z) > tol {
		t.Errorf("centroid Z = %.2f, expected near %.2f", cz, c.Z)
	}
}

func TestFootprint(t *testing.T) {
	k := newKernel()
	m, err := tessellate.Footprint("cross", sampleCross(), k)
	if err != nil {
		t.Fatalf("Footprint failed: %v", err)
	}
	if m.PartName != "cross" || m.IsEmpty() {
		t.Fatalf("got %q empty=%v", m.PartName, m.IsEmpty())
	}
	min, max := m.Bounds()
	const tol = 0.5
	for a, want := range [3]float64{10, 10, 5} {
		if math.Abs(float64(min[a])) > tol || math.Abs(float64(max[a])-want) > tol {
			t.Errorf("axis %d bounds %v..%v, want 0..%v", a, min[a], max[a], want)
		}
	}

	if _, err := tessellate.Footprint("empty", nil, k); err == nil {
		t.Error("expected error for empty footprint")
	}
}

func TestWalls(t *testing.T) {
	k := newKernel()
	prisms := footprint.Decompose(footprint.Cross{CentralWidth: 6, CentralDepth: 6, ArmWidth: 4, ArmDepth: 4, Height: 3})
	walls, err := wall.ExtrudeAll(prisms[:], 0.5)
	if err != nil {
		t.Fatal(err)
	}
	hollow, err := tessellate.Walls(walls, k)
	if err != nil {
		t.Fatalf("Walls failed: %v", err)
	}
	solid, err := tessellate.Prisms(prisms[:], k)
	if err != nil {
		t.Fatal(err)
	}
	if len(hollow) != len(walls) {
		t.Fatalf("expected %d meshes, got %d", len(walls), len(hollow))
	}
	for i, m := range hollow {
		if m.PartName != prisms[i].Name {
			t.Errorf("mesh %d named %q, want %q", i, m.PartName, prisms[i].Name)
		}
		// The shaft adds inner faces.
		if m.TriangleCount() <= solid[i].TriangleCount() {
			t.Errorf("%s: hollow mesh has %d triangles, solid %d", m.PartName, m.TriangleCount(), solid[i].TriangleCount())
		}
	}
}

func TestEmpty(t *testing.T) {
	k := newKernel()
	meshes, err := tessellate.Prisms(nil, k)
	if err != nil {
		t.Fatalf("Prisms failed: %v", err)
	}
	if len(meshes) != 0 {
		t.Fatalf("expected 0 meshes, got %d", len(meshes))
	}
}

func TestInvalidPrism(t *testing.T) {
	k := newKernel()
	_, err := tessellate.Prisms([]geom.Prism{{Name: "flat", Width: 1, Depth: 1}}, k)
	if err == nil || !strings.Contains(err.Error(), `"flat"`) {
		t.Fatalf("err = %v, want error naming the prism", err)
	}
}
