// Package wall turns a prism into a hollow, double-skinned wall made of
// planar quadrilateral panels.
//
// Every side of the prism gets four panels: the outer face, the inner face
// (offset inward by the wall thickness), and the bottom and top rims that
// close the gap between them. Panel winding follows the right-hand rule:
// outer faces point away from the prism, inner faces point into the
// cavity, bottom rims point down and top rims and the floor point up.
package wall

import (
	"fmt"

	"github.com/chazu/massing/pkg/footprint"
	"github.com/chazu/massing/pkg/geom"
)

// PanelsPerSide is the number of panels generated for each side.
const PanelsPerSide = 4

// Walls is the extruded wall geometry of one prism.
type Walls struct {
	Outer  geom.Prism         `json:"outer"`
	Inner  geom.Prism         `json:"inner"`
	Panels [16]geom.WallPanel `json:"panels"` // front, back, left, right; 4 per side
	Floor  []geom.WallPanel   `json:"floor"`
}

// Side returns the four panels of one side in outer, inner, bottom rim,
// top rim order. Side must be one of the four wall sides.
func (w Walls) Side(s geom.Side) [PanelsPerSide]geom.WallPanel {
	var out [PanelsPerSide]geom.WallPanel
	copy(out[:], w.Panels[int(s)*PanelsPerSide:])
	return out
}

// Extrude builds the walls of prism with the given thickness. The thickness
// is checked before any geometry is built.
func Extrude(prism geom.Prism, thickness float64) (Walls, error) {
	if err := footprint.RequirePositive("wall_thickness", thickness); err != nil {
		return Walls{}, fmt.Errorf("wall: %s: %w", prism.Name, err)
	}
	if !prism.Valid() {
		return Walls{}, fmt.Errorf("wall: %s: %w", prism.Name,
			&footprint.DimensionError{Field: "prism", Value: min(prism.Width, prism.Depth, prism.Height), Err: footprint.ErrInvalidDimension})
	}
	if 2*thickness >= min(prism.Width, prism.Depth) {
		return Walls{}, fmt.Errorf("wall: %s: %w", prism.Name,
			&footprint.DimensionError{Field: "wall_thickness", Value: thickness, Err: footprint.ErrInvalidWallThickness})
	}

	inner := prism.Inset(thickness)
	e := corners(prism)
	i := corners(inner)

	w := Walls{Outer: prism, Inner: inner}
	sides := [4][PanelsPerSide][4]geom.Point3{
		geom.SideFront: {
			{e[0], e[1], e[5], e[4]},
			{i[1], i[0], i[4], i[5]},
			{e[0], i[0], i[1], e[1]},
			{e[4], e[5], i[5], i[4]},
		},
		geom.SideBack: {
			{e[2], e[3], e[7], e[6]},
			{i[3], i[2], i[6], i[7]},
			{e[2], i[2], i[3], e[3]},
			{e[6], e[7], i[7], i[6]},
		},
		geom.SideLeft: {
			{e[3], e[0], e[4], e[7]},
			{i[0], i[3], i[7], i[4]},
			{e[3], i[3], i[0], e[0]},
			{e[7], e[4], i[4], i[7]},
		},
		geom.SideRight: {
			{e[1], e[2], e[6], e[5]},
			{i[2], i[1], i[5], i[6]},
			{e[1], i[1], i[2], e[2]},
			{e[5], e[6], i[6], i[5]},
		},
	}
	kinds := [PanelsPerSide]geom.PanelKind{geom.PanelOuter, geom.PanelInner, geom.PanelBottomRim, geom.PanelTopRim}
	for s, quads := range sides {
		for k, q := range quads {
			w.Panels[s*PanelsPerSide+k] = geom.WallPanel{Side: geom.Side(s), Kind: kinds[k], Vertices: q}
		}
	}

	w.Floor = []geom.WallPanel{{
		Side:     geom.SideNone,
		Kind:     geom.PanelFloor,
		Vertices: [4]geom.Point3{e[0], e[1], e[2], e[3]},
	}}
	return w, nil
}

// ExtrudeAll extrudes each prism in order, stopping at the first error.
func ExtrudeAll(prisms []geom.Prism, thickness float64) ([]Walls, error) {
	out := make([]Walls, 0, len(prisms))
	for _, p := range prisms {
		w, err := Extrude(p, thickness)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// corners returns the eight corners of p: the base ring counter-clockwise
// from the origin, then the top ring in the same order.
func corners(p geom.Prism) [8]geom.Point3 {
	o, m := p.Origin, p.Max()
	return [8]geom.Point3{
		{X: o.X, Y: o.Y, Z: o.Z},
		{X: m.X, Y: o.Y, Z: o.Z},
		{X: m.X, Y: m.Y, Z: o.Z},
		{X: o.X, Y: m.Y, Z: o.Z},
		{X: o.X, Y: o.Y, Z: m.Z},
		{X: m.X, Y: o.Y, Z: m.Z},
		{X: m.X, Y: m.Y, Z: m.Z},
		{X: o.X, Y: m.Y, Z: m.Z},
	}
}
