package main

import (
	"math"
	"os"
	"testing"

	"github.com/chazu/massing/pkg/compose"
)

// TestE2EBoxExample exercises the full pipeline: script -> engine ->
// requests -> driver -> payloads.
func TestE2EBoxExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/box.massing")
	if err != nil {
		t.Fatalf("failed to read box.massing: %v", err)
	}

	result := app.Evaluate(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
	if len(result.Scenarios) != 1 {
		t.Fatalf("expected 1 scenario, got %d", len(result.Scenarios))
	}

	p := result.Scenarios[0]
	if p.Name != "cube" {
		t.Errorf("name = %q, want cube", p.Name)
	}
	if p.Stats.SphereCount != 125 {
		t.Errorf("sphere count = %d, want 125", p.Stats.SphereCount)
	}
	if p.Stats.ContainerVolume != 1000 {
		t.Errorf("container volume = %v, want 1000", p.Stats.ContainerVolume)
	}
	if math.Abs(p.Stats.FillRatio-52.3598775598) > 1e-6 {
		t.Errorf("fill ratio = %v, want ~52.36", p.Stats.FillRatio)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
	if result.RunID == "" {
		t.Error("expected a run id")
	}
}

// TestE2ECrossExample runs the three cross scenarios of the example script.
func TestE2ECrossExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/cross.massing")
	if err != nil {
		t.Fatalf("failed to read cross.massing: %v", err)
	}

	result := app.Evaluate(string(source))
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Scenarios) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(result.Scenarios))
	}

	outline, packed, walled := result.Scenarios[0], result.Scenarios[1], result.Scenarios[2]

	if outline.Mode != compose.ModeContour || outline.Contour == nil {
		t.Fatalf("outline: mode %s, contour %v", outline.Mode, outline.Contour)
	}
	if outline.Contour.Len() != 20 {
		t.Errorf("outline: %d vertices, want 20", outline.Contour.Len())
	}
	// 36 + 4 * 48 footprint, 3 high.
	if math.Abs(outline.Stats.ContainerVolume-684) > 1e-9 {
		t.Errorf("outline: volume = %v, want 684", outline.Stats.ContainerVolume)
	}

	if packed.Mode != compose.ModeSpheres {
		t.Fatalf("packed: mode %s", packed.Mode)
	}
	// 3x3 in the center and 4x3 in each arm, one layer.
	if packed.Stats.SphereCount != 57 {
		t.Errorf("packed: sphere count = %d, want 57", packed.Stats.SphereCount)
	}
	if packed.Stats.Interpenetrating != 0 {
		t.Errorf("packed: %d interpenetrating pairs, want 0", packed.Stats.Interpenetrating)
	}
	if packed.Contour == nil || packed.Contour.Len() != 20 {
		t.Errorf("packed: contour %v, want a 20-vertex outline", packed.Contour)
	}

	if walled.Mode != compose.ModeWalls {
		t.Fatalf("walled: mode %s", walled.Mode)
	}
	if len(walled.Walls) != 5 {
		t.Errorf("walled: %d wall sets, want 5", len(walled.Walls))
	}

	if len(result.Meshes) != 0 {
		t.Errorf("meshes were not requested, got %d", len(result.Meshes))
	}
}

// TestE2EMeshes checks that requested meshes are lifted out of the
// payload, named and colored.
func TestE2EMeshes(t *testing.T) {
	cfg := compose.DefaultConfig()
	cfg.Meshes = true
	cfg.MeshCells = 48
	app := NewAppWithConfig(cfg)

	source := `(cross :central-width 6 :central-depth 6 :arm-width 4 :arm-depth 4 :height 3 :wall 0.5)`
	result := app.Evaluate(source)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != 5 {
		t.Fatalf("expected 5 meshes, got %d", len(result.Meshes))
	}

	seen := make(map[string]bool)
	for i, m := range result.Meshes {
		if len(m.Vertices) == 0 || len(m.Normals) == 0 || len(m.Indices) == 0 {
			t.Errorf("mesh %q: empty geometry", m.PartName)
		}
		if m.Color != result.Render.PartColor(i) {
			t.Errorf("mesh %q: color %q, want %q", m.PartName, m.Color, result.Render.PartColor(i))
		}
		if m.Scenario != "cross/walls" {
			t.Errorf("mesh %q: scenario %q, want cross/walls", m.PartName, m.Scenario)
		}
		seen[m.PartName] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 distinct part names, got %v", seen)
	}
	for _, p := range result.Scenarios {
		if p.Meshes != nil {
			t.Errorf("%s: payload still carries meshes", p.Name)
		}
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Scenarios) != 0 {
		t.Errorf("expected 0 scenarios for empty source, got %d", len(result.Scenarios))
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(box :width 10`)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Scenarios) != 0 {
		t.Errorf("expected 0 scenarios on error, got %d", len(result.Scenarios))
	}
}
