// Package tessellate turns footprint prisms and extruded walls into
// triangle meshes using a geometry kernel. One mesh is produced per prism.
package tessellate

import (
	"fmt"

	"github.com/chazu/massing/pkg/geom"
	"github.com/chazu/massing/pkg/kernel"
	"github.com/chazu/massing/pkg/wall"
)

// shaftMargin extends the cavity cut past both ends of a wall so the
// hollow is open at the floor and at the top.
const shaftMargin = 1.0

// Prisms produces one solid mesh per prism, in order. The tessellator is
// read-only and never mutates its inputs.
func Prisms(prisms []geom.Prism, k kernel.Kernel) ([]*kernel.Mesh, error) {
	meshes := make([]*kernel.Mesh, 0, len(prisms))
	for _, p := range prisms {
		mesh, err := handlePrism(k, p)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// Footprint produces a single mesh of the union of prisms.
func Footprint(name string, prisms []geom.Prism, k kernel.Kernel) (*kernel.Mesh, error) {
	solid := kernel.FootprintSolid(k, prisms)
	if solid == nil {
		return nil, fmt.Errorf("tessellate: footprint %q has no prisms", name)
	}
	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for footprint %q: %w", name, err)
	}
	mesh.PartName = name
	return mesh, nil
}

// Walls produces one hollow mesh per extruded prism: the outer prism with
// the inner prism cut through it.
func Walls(walls []wall.Walls, k kernel.Kernel) ([]*kernel.Mesh, error) {
	meshes := make([]*kernel.Mesh, 0, len(walls))
	for _, w := range walls {
		mesh, err := handleWalls(k, w)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// handlePrism creates geometry for a single solid prism.
func handlePrism(k kernel.Kernel, p geom.Prism) (*kernel.Mesh, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("tessellate: prism %q has non-positive extents", p.Name)
	}
	mesh, err := k.ToMesh(kernel.PrismSolid(k, p))
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for prism %q: %w", p.Name, err)
	}
	mesh.PartName = p.Name
	return mesh, nil
}

// handleWalls creates the hollow shell of one extruded prism.
func handleWalls(k kernel.Kernel, w wall.Walls) (*kernel.Mesh, error) {
	if !w.Inner.Valid() {
		return nil, fmt.Errorf("tessellate: walls of %q leave no interior", w.Outer.Name)
	}
	shaft := w.Inner
	shaft.Origin.Z -= shaftMargin
	shaft.Height += 2 * shaftMargin

	solid := k.Difference(kernel.PrismSolid(k, w.Outer), kernel.PrismSolid(k, shaft))
	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for prism %q: %w", w.Outer.Name, err)
	}
	mesh.PartName = w.Outer.Name
	return mesh, nil
}
