package compose

import (
	"errors"
	"fmt"

	"github.com/chazu/massing/pkg/footprint"
	"github.com/chazu/massing/pkg/pack"
)

// Shape is the footprint family of a request.
type Shape string

const (
	ShapeBox   Shape = "box"
	ShapeCross Shape = "cross"
)

// Mode selects what a request produces.
type Mode string

const (
	ModeSpheres Mode = "spheres" // packed spheres plus fill statistics
	ModeWalls   Mode = "walls"   // hollow double walls, cross only
	ModeContour Mode = "contour" // wireframe outline, cross only
)

// ErrUnsupportedMode is returned when a shape cannot produce the
// requested mode.
var ErrUnsupportedMode = errors.New("unsupported mode")

// ParseShape converts a shape name to a Shape.
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case ShapeBox, ShapeCross:
		return Shape(s), nil
	}
	return "", fmt.Errorf("compose: unknown shape %q", s)
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSpheres, ModeWalls, ModeContour:
		return Mode(s), nil
	}
	return "", fmt.Errorf("compose: unknown mode %q", s)
}

// Request describes one scenario. Only the footprint matching Shape is
// read.
type Request struct {
	Name  string          `json:"name"`
	Shape Shape           `json:"shape"`
	Mode  Mode            `json:"mode"`
	Box   footprint.Box   `json:"box"`
	Cross footprint.Cross `json:"cross"`
}

// Label returns the request name, or the shape and mode when unnamed.
func (r Request) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return string(r.Shape) + "/" + string(r.Mode)
}

// Validate returns the hard errors that abort the scenario. It checks the
// footprint scalars and whatever the mode additionally needs. A spheres
// request must also stay within pack.MaxSpheres.
func (r Request) Validate() error {
	if err := r.validate(); err != nil {
		return err
	}
	if r.Mode == ModeSpheres {
		if err := pack.CheckCount(decompose(r), radiusOf(r)); err != nil {
			return fmt.Errorf("compose: %s: %w", r.Label(), err)
		}
	}
	return nil
}

func (r Request) validate() error {
	switch r.Shape {
	case ShapeBox:
		if r.Mode != ModeSpheres {
			return fmt.Errorf("compose: %s: box cannot produce %s: %w", r.Label(), r.Mode, ErrUnsupportedMode)
		}
		if err := r.Box.Validate(); err != nil {
			return fmt.Errorf("compose: %s: %w", r.Label(), err)
		}
		if err := footprint.RequirePositive("radius", r.Box.Radius); err != nil {
			return fmt.Errorf("compose: %s: %w", r.Label(), err)
		}
	case ShapeCross:
		if err := r.Cross.Validate(); err != nil {
			return fmt.Errorf("compose: %s: %w", r.Label(), err)
		}
		switch r.Mode {
		case ModeSpheres:
			if err := footprint.RequirePositive("radius", r.Cross.Radius); err != nil {
				return fmt.Errorf("compose: %s: %w", r.Label(), err)
			}
		case ModeWalls:
			if err := r.Cross.ValidateWalls(r.Cross.WallThickness); err != nil {
				return fmt.Errorf("compose: %s: %w", r.Label(), err)
			}
		case ModeContour:
		default:
			return fmt.Errorf("compose: %s: unknown mode %q: %w", r.Label(), r.Mode, ErrUnsupportedMode)
		}
	default:
		return fmt.Errorf("compose: %s: unknown shape %q", r.Label(), r.Shape)
	}
	return nil
}
