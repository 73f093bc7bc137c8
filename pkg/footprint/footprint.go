// Package footprint describes the two supported floor plans, a plain box
// and a plus-shaped cross, validates their dimensions and decomposes them
// into axis-aligned prisms.
//
// The cross is fixed topology: one central block and four arms attached to
// the middle of each of its sides. Horizontal arms (left, right) extend the
// total width, vertical arms (top, bottom) extend the total depth. ArmWidth
// is the arm's extent across its own axis, ArmDepth how far it reaches out
// from the central block.
package footprint

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/massing/pkg/geom"
	"github.com/chazu/massing/pkg/volume"
)

// Part names used for the prisms produced by this package.
const (
	PartBox       = "box"
	PartCentral   = "central"
	PartLeftArm   = "left-arm"
	PartRightArm  = "right-arm"
	PartTopArm    = "top-arm"
	PartBottomArm = "bottom-arm"
)

// PartOrder is the fixed order of the prisms returned by Decompose.
var PartOrder = [5]string{PartCentral, PartLeftArm, PartRightArm, PartTopArm, PartBottomArm}

// positive returns a DimensionError when v is not strictly positive.
func positive(field string, v float64) error {
	if v > 0 && !math.IsInf(v, 1) {
		return nil
	}
	return &DimensionError{Field: field, Value: v, Err: ErrInvalidDimension}
}

// optional is like positive but accepts zero, meaning "not given".
func optional(field string, v float64) error {
	if v == 0 {
		return nil
	}
	return positive(field, v)
}

// RequirePositive validates a scalar that a scenario needs, such as the
// sphere radius when packing.
func RequirePositive(field string, v float64) error {
	return positive(field, v)
}

// ---------------------------------------------------------------------------
// Box
// ---------------------------------------------------------------------------

// Box is a single rectangular prism with its minimum corner at the origin.
type Box struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
	Radius float64 `json:"radius,omitempty"` // sphere radius, 0 when not packing
}

// Validate checks that every extent is positive and the radius, if given,
// is positive.
func (b Box) Validate() error {
	return errors.Join(
		positive("width", b.Width),
		positive("depth", b.Depth),
		positive("height", b.Height),
		optional("radius", b.Radius),
	)
}

// Warnings returns advisory findings for a valid box.
func (b Box) Warnings() []Warning {
	var warnings []Warning
	if b.Radius > 0 {
		smallest := math.Min(b.Width, math.Min(b.Depth, b.Height))
		if 2*b.Radius > smallest {
			warnings = append(warnings, Warning{
				Field: "radius",
				Message: fmt.Sprintf("sphere diameter %.4g is larger than the smallest box dimension %.4g",
					2*b.Radius, smallest),
			})
		}
	}
	return warnings
}

// Prism returns the box as a prism anchored at the origin.
func (b Box) Prism() geom.Prism {
	return geom.Prism{Name: PartBox, Width: b.Width, Depth: b.Depth, Height: b.Height}
}

// Volume returns width*depth*height.
func (b Box) Volume() float64 {
	return volume.Prism(b.Prism())
}

// ---------------------------------------------------------------------------
// Cross
// ---------------------------------------------------------------------------

// Cross is a plus-shaped footprint extruded to Height. WallThickness and
// Radius are optional; zero means the scenario does not use them.
type Cross struct {
	CentralWidth  float64 `json:"central_width"`
	CentralDepth  float64 `json:"central_depth"`
	ArmWidth      float64 `json:"arm_width"`
	ArmDepth      float64 `json:"arm_depth"`
	Height        float64 `json:"height"`
	WallThickness float64 `json:"wall_thickness,omitempty"`
	Radius        float64 `json:"radius,omitempty"`
}

// TotalWidth is the overall extent along X: central width plus two arms.
func (c Cross) TotalWidth() float64 {
	return c.CentralWidth + 2*c.ArmDepth
}

// TotalDepth is the overall extent along Y: central depth plus two arms.
func (c Cross) TotalDepth() float64 {
	return c.CentralDepth + 2*c.ArmDepth
}

// Centroid returns the shared center of the footprint at floor level.
func (c Cross) Centroid() geom.Point3 {
	return geom.Pt(c.TotalWidth()/2, c.TotalDepth()/2, 0)
}

// Volume returns the analytic volume of the five prisms.
func (c Cross) Volume() float64 {
	return volume.Cross(c.CentralWidth, c.CentralDepth, c.ArmWidth, c.ArmDepth, c.Height)
}

// Area returns the floor area of the footprint.
func (c Cross) Area() float64 {
	return c.CentralWidth*c.CentralDepth + 4*c.ArmWidth*c.ArmDepth
}

// Validate checks the footprint scalars. All failing fields are reported,
// joined into one error; use errors.Is against the sentinels.
func (c Cross) Validate() error {
	err := errors.Join(
		positive("central_width", c.CentralWidth),
		positive("central_depth", c.CentralDepth),
		positive("arm_width", c.ArmWidth),
		positive("arm_depth", c.ArmDepth),
		positive("height", c.Height),
		optional("wall_thickness", c.WallThickness),
		optional("radius", c.Radius),
	)
	if err != nil {
		return err
	}

	// The arms attach to the middle of each central side, so an arm wider
	// than that side would spill past the central corners.
	if limit := math.Min(c.CentralWidth, c.CentralDepth); c.ArmWidth > limit {
		return &DimensionError{Field: "arm_width", Value: c.ArmWidth, Err: ErrInvalidArmWidth}
	}

	if c.WallThickness > 0 {
		if err := c.ValidateWalls(c.WallThickness); err != nil {
			return err
		}
	}
	return nil
}

// ValidateWalls checks that walls of thickness t leave a non-empty interior
// in every one of the five prisms.
func (c Cross) ValidateWalls(t float64) error {
	if err := positive("wall_thickness", t); err != nil {
		return err
	}
	smallest := math.Min(math.Min(c.CentralWidth, c.CentralDepth), math.Min(c.ArmWidth, c.ArmDepth))
	if 2*t >= smallest {
		return &DimensionError{Field: "wall_thickness", Value: t, Err: ErrInvalidWallThickness}
	}
	return nil
}

// Warnings returns advisory findings for a valid cross.
func (c Cross) Warnings() []Warning {
	var warnings []Warning
	if c.ArmWidth == math.Min(c.CentralWidth, c.CentralDepth) {
		warnings = append(warnings, Warning{
			Field:   "arm_width",
			Message: "arm width equals a central side; the contour keeps coincident transition vertices",
		})
	}
	if c.Radius > 0 {
		smallest := math.Min(math.Min(c.ArmWidth, c.ArmDepth), c.Height)
		if 2*c.Radius > smallest {
			warnings = append(warnings, Warning{
				Field: "radius",
				Message: fmt.Sprintf("sphere diameter %.4g is larger than the smallest arm dimension %.4g",
					2*c.Radius, smallest),
			})
		}
	}
	return warnings
}

// Decompose splits the cross into five disjoint prisms in PartOrder:
// central, left arm, right arm, top arm, bottom arm. All sit on z=0 and
// share the footprint height.
func Decompose(c Cross) [5]geom.Prism {
	ctr := c.Centroid()
	cx, cy := ctr.X, ctr.Y
	hw, hd := c.CentralWidth/2, c.CentralDepth/2
	ha := c.ArmWidth / 2

	return [5]geom.Prism{
		{
			Name:   PartCentral,
			Origin: geom.Pt(cx-hw, cy-hd, 0),
			Width:  c.CentralWidth,
			Depth:  c.CentralDepth,
			Height: c.Height,
		},
		{
			Name:   PartLeftArm,
			Origin: geom.Pt(cx-hw-c.ArmDepth, cy-ha, 0),
			Width:  c.ArmDepth,
			Depth:  c.ArmWidth,
			Height: c.Height,
		},
		{
			Name:   PartRightArm,
			Origin: geom.Pt(cx+hw, cy-ha, 0),
			Width:  c.ArmDepth,
			Depth:  c.ArmWidth,
			Height: c.Height,
		},
		{
			Name:   PartTopArm,
			Origin: geom.Pt(cx-ha, cy+hd, 0),
			Width:  c.ArmWidth,
			Depth:  c.ArmDepth,
			Height: c.Height,
		},
		{
			Name:   PartBottomArm,
			Origin: geom.Pt(cx-ha, cy-hd-c.ArmDepth, 0),
			Width:  c.ArmWidth,
			Depth:  c.ArmDepth,
			Height: c.Height,
		},
	}
}
