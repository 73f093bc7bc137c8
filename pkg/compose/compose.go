// Package compose runs complete scenarios: it validates a request,
// decomposes the footprint, packs, traces or extrudes it, and collects the
// geometry, statistics and warnings into a payload for a renderer.
//
// Hard validation errors abort a scenario before any geometry is built and
// no partial payload is returned. Soft findings, such as spheres packed
// closer than one diameter, are reported as warnings next to the result.
package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/chazu/massing/pkg/contour"
	"github.com/chazu/massing/pkg/footprint"
	"github.com/chazu/massing/pkg/geom"
	"github.com/chazu/massing/pkg/kernel"
	"github.com/chazu/massing/pkg/pack"
	"github.com/chazu/massing/pkg/tessellate"
	"github.com/chazu/massing/pkg/volume"
	"github.com/chazu/massing/pkg/wall"
)

// protrusionTolerance absorbs rounding in centers whose cell is exactly
// one diameter wide.
const protrusionTolerance = 1e-9

// Config controls the optional work a driver does.
type Config struct {
	// Meshes tessellates the prisms, walls or footprint of each scenario.
	Meshes bool `json:"meshes"`
	// MeshCells is the marching cubes resolution; 0 selects the kernel default.
	MeshCells int `json:"meshCells"`
	// DetectInterpenetration searches every sphere pair for overlap.
	DetectInterpenetration bool `json:"detectInterpenetration"`
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{
		Meshes:                 false,
		MeshCells:              0,
		DetectInterpenetration: true,
	}
}

// Stats are the scalar results of a scenario. Sphere fields are zero
// outside spheres mode. FillRatio is a percentage.
type Stats struct {
	SphereCount       int     `json:"sphereCount"`
	ContainerVolume   float64 `json:"containerVolume"`
	SphereVolume      float64 `json:"sphereVolume"`
	TotalSphereVolume float64 `json:"totalSphereVolume"`
	FillRatio         float64 `json:"fillRatio"`
	Protruding        int     `json:"protruding"`
	Interpenetrating  int     `json:"interpenetrating"`

	// Cells is the grid of each packing, in prism order.
	Cells [][3]int `json:"cells,omitempty"`
}

// Payload is everything a renderer needs for one scenario.
type Payload struct {
	Name     string            `json:"name"`
	Shape    Shape             `json:"shape"`
	Mode     Mode              `json:"mode"`
	Prisms   []geom.Prism      `json:"prisms"`
	Spheres  *geom.SphereSet   `json:"spheres,omitempty"`
	Contour  *geom.ContourLoop `json:"contour,omitempty"`
	Walls    []wall.Walls      `json:"walls,omitempty"`
	Meshes   []*kernel.Mesh    `json:"meshes,omitempty"`
	Stats    Stats             `json:"stats"`
	Warnings []Warning         `json:"warnings,omitempty"`
}

// Driver runs scenarios. Kernel may be nil when neither meshes nor the
// protrusion check are wanted.
type Driver struct {
	Kernel kernel.Kernel
	Config Config
}

// New returns a driver using k and the default configuration.
func New(k kernel.Kernel) *Driver {
	return &Driver{Kernel: k, Config: DefaultConfig()}
}

// Run executes one scenario.
func (d *Driver) Run(ctx context.Context, req Request) (*Payload, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if d.Config.Meshes && d.Kernel == nil {
		return nil, fmt.Errorf("compose: %s: meshes requested without a kernel", req.Label())
	}

	p := &Payload{
		Name:   req.Label(),
		Shape:  req.Shape,
		Mode:   req.Mode,
		Prisms: decompose(req),
	}
	p.Stats.ContainerVolume = volume.Prisms(p.Prisms)
	p.Warnings = append(p.Warnings, footprintWarnings(req)...)

	var err error
	switch req.Mode {
	case ModeSpheres:
		err = d.runSpheres(ctx, req, p)
	case ModeWalls:
		err = d.runWalls(req, p)
	case ModeContour:
		err = d.runContour(req, p)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Result pairs a payload with the hard error of its request.
type Result struct {
	Request Request
	Payload *Payload
	Err     error
}

// RunAll runs reqs in order. A failing request does not stop the rest;
// only context cancellation does.
func (d *Driver) RunAll(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		payload, err := d.Run(ctx, req)
		results = append(results, Result{Request: req, Payload: payload, Err: err})
	}
	return results, nil
}

func decompose(req Request) []geom.Prism {
	if req.Shape == ShapeBox {
		return []geom.Prism{req.Box.Prism()}
	}
	prisms := footprint.Decompose(req.Cross)
	return prisms[:]
}

func footprintWarnings(req Request) []Warning {
	var found []footprint.Warning
	if req.Shape == ShapeBox {
		found = req.Box.Warnings()
	} else {
		found = req.Cross.Warnings()
	}
	out := make([]Warning, 0, len(found))
	for _, w := range found {
		out = append(out, Warning{Kind: GeometryWarning, Part: w.Field, Message: w.Message})
	}
	return out
}

func radiusOf(req Request) float64 {
	if req.Shape == ShapeBox {
		return req.Box.Radius
	}
	return req.Cross.Radius
}

func (d *Driver) runSpheres(ctx context.Context, req Request, p *Payload) error {
	// A packed cross is drawn inside its outline.
	if req.Shape == ShapeCross {
		if err := traceContour(req, p); err != nil {
			return err
		}
	}

	radius := radiusOf(req)
	packings, err := pack.PackAll(ctx, p.Prisms, radius)
	if err != nil {
		return fmt.Errorf("compose: %s: %w", req.Label(), err)
	}

	set := pack.Concat(packings)
	p.Spheres = &set
	p.Stats.SphereCount = set.Len()
	p.Stats.SphereVolume = volume.Sphere(radius)
	p.Stats.TotalSphereVolume = float64(set.Len()) * p.Stats.SphereVolume
	p.Stats.FillRatio = volume.FillRatio(p.Stats.ContainerVolume, set.Len(), radius)

	for _, pk := range packings {
		p.Stats.Cells = append(p.Stats.Cells, pk.Cells)
		if pk.Overlapping() {
			p.Warnings = append(p.Warnings, Warning{
				Kind: OverlapWarning,
				Part: pk.Prism.Name,
				Message: fmt.Sprintf("spacing below diameter %.4g along %s; spheres overlap",
					set.Diameter(), strings.Join(pk.TightAxes(), ", ")),
			})
		}
	}

	if d.Kernel != nil {
		p.Stats.Protruding = d.countProtruding(packings)
		if n := p.Stats.Protruding; n > 0 {
			p.Warnings = append(p.Warnings, Warning{
				Kind:    ProtrusionWarning,
				Message: fmt.Sprintf("%d of %d spheres extend past their prism", n, set.Len()),
			})
		}
	}

	if d.Config.DetectInterpenetration {
		pairs := pack.Interpenetrations(set)
		p.Stats.Interpenetrating = len(pairs)
		if len(pairs) > 0 {
			p.Warnings = append(p.Warnings, Warning{
				Kind:    InterpenetrationWarning,
				Message: fmt.Sprintf("%d sphere pairs are closer than one diameter", len(pairs)),
			})
		}
	}

	if d.Config.Meshes {
		meshes, err := tessellate.Prisms(p.Prisms, d.Kernel)
		if err != nil {
			return fmt.Errorf("compose: %s: %w", req.Label(), err)
		}
		p.Meshes = meshes
	}
	return nil
}

// countProtruding counts spheres whose surface crosses the boundary of the
// prism they were packed into.
func (d *Driver) countProtruding(packings []pack.Packing) int {
	n := 0
	for _, pk := range packings {
		solid := kernel.PrismSolid(d.Kernel, pk.Prism)
		r := pk.Spheres.Radius
		for _, c := range pk.Spheres.Centers {
			if solid.Distance(c) > -r+protrusionTolerance {
				n++
			}
		}
	}
	return n
}

func (d *Driver) runWalls(req Request, p *Payload) error {
	walls, err := wall.ExtrudeAll(p.Prisms, req.Cross.WallThickness)
	if err != nil {
		return fmt.Errorf("compose: %s: %w", req.Label(), err)
	}
	p.Walls = walls

	if d.Config.Meshes {
		meshes, err := tessellate.Walls(walls, d.Kernel)
		if err != nil {
			return fmt.Errorf("compose: %s: %w", req.Label(), err)
		}
		p.Meshes = meshes
	}
	return nil
}

func (d *Driver) runContour(req Request, p *Payload) error {
	if err := traceContour(req, p); err != nil {
		return err
	}

	if d.Config.Meshes {
		mesh, err := tessellate.Footprint(p.Name, p.Prisms, d.Kernel)
		if err != nil {
			return fmt.Errorf("compose: %s: %w", req.Label(), err)
		}
		p.Meshes = []*kernel.Mesh{mesh}
	}
	return nil
}

// traceContour sets the outline of a cross footprint on p.
func traceContour(req Request, p *Payload) error {
	loop := contour.Trace(req.Cross)
	if !contour.IsSimple(loop.Base) {
		return fmt.Errorf("compose: %s: traced outline is self-intersecting", req.Label())
	}
	p.Contour = &loop
	return nil
}
