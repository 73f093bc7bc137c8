// Command massing packs spheres into box and cross footprints, traces
// cross outlines and extrudes double walls. Scenarios come from a script
// (-f) or from flags; statistics are logged and -json writes the full
// result to stdout for a renderer.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/massing/pkg/compose"
	"github.com/chazu/massing/pkg/footprint"
)

// options holds the parsed command line.
type options struct {
	script   string
	asJSON   bool
	cfg      compose.Config
	shape    string
	mode     string
	name     string
	box      footprint.Box
	cross    footprint.Cross
	radius   float64
	overlaps bool
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var o options
	fs.StringVar(&o.script, "f", "", "scenario script to evaluate; flags describing a shape are ignored")
	fs.BoolVar(&o.asJSON, "json", false, "write the result as JSON to stdout")
	fs.BoolVar(&o.cfg.Meshes, "meshes", false, "tessellate prisms, walls or footprint")
	fs.IntVar(&o.cfg.MeshCells, "cells", 0, "marching cubes resolution (0 = kernel default)")
	fs.BoolVar(&o.overlaps, "overlaps", true, "report interpenetrating sphere pairs")

	fs.StringVar(&o.shape, "shape", "box", "footprint shape: box or cross")
	fs.StringVar(&o.mode, "mode", "", "spheres, walls or contour (default spheres for box, inferred for cross)")
	fs.StringVar(&o.name, "name", "", "scenario name")
	fs.Float64Var(&o.radius, "radius", 0, "sphere radius")

	fs.Float64Var(&o.box.Width, "width", 10, "box width (x)")
	fs.Float64Var(&o.box.Depth, "depth", 10, "box depth (y)")
	fs.Float64Var(&o.box.Height, "height", 10, "prism height (z), box and cross")

	fs.Float64Var(&o.cross.CentralWidth, "central-width", 6, "cross central block width")
	fs.Float64Var(&o.cross.CentralDepth, "central-depth", 6, "cross central block depth")
	fs.Float64Var(&o.cross.ArmWidth, "arm-width", 4, "cross arm width")
	fs.Float64Var(&o.cross.ArmDepth, "arm-depth", 4, "cross arm depth")
	fs.Float64Var(&o.cross.WallThickness, "wall", 0, "cross wall thickness")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	o.cfg.DetectInterpenetration = o.overlaps
	return o, nil
}

// request builds the scenario described by flags.
func (o options) request() (compose.Request, error) {
	shape, err := compose.ParseShape(o.shape)
	if err != nil {
		return compose.Request{}, err
	}
	req := compose.Request{Name: o.name, Shape: shape}

	switch shape {
	case compose.ShapeBox:
		req.Box = o.box
		req.Box.Radius = o.radius
		req.Mode = compose.ModeSpheres
	case compose.ShapeCross:
		req.Cross = o.cross
		req.Cross.Height = o.box.Height
		req.Cross.Radius = o.radius
		switch {
		case o.cross.WallThickness != 0:
			req.Mode = compose.ModeWalls
		case o.radius != 0:
			req.Mode = compose.ModeSpheres
		default:
			req.Mode = compose.ModeContour
		}
	}

	if o.mode != "" {
		if req.Mode, err = compose.ParseMode(o.mode); err != nil {
			return compose.Request{}, err
		}
	}
	return req, nil
}

func run(args []string) int {
	fs := flag.NewFlagSet("massing", flag.ContinueOnError)
	o, err := parseFlags(fs, args)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		log.Printf("massing: %v", err)
		return 2
	}

	app := NewAppWithConfig(o.cfg)

	var result EvalResult
	if o.script != "" {
		source, err := os.ReadFile(o.script)
		if err != nil {
			log.Printf("massing: %v", err)
			return 1
		}
		result = app.Evaluate(string(source))
	} else {
		req, err := o.request()
		if err != nil {
			log.Printf("massing: %v", err)
			return 2
		}
		result = app.Run(context.Background(), req)
	}

	for _, e := range result.Errors {
		if e.Line > 0 {
			log.Printf("error: line %d: %s", e.Line, e.Message)
		} else {
			log.Printf("error: %s", e.Message)
		}
	}

	if o.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Printf("massing: %v", err)
			return 1
		}
	}

	if len(result.Errors) > 0 {
		return 1
	}
	return 0
}

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:]))
}
