package main

import (
	"context"
	"log"

	"github.com/chazu/massing/pkg/compose"
	"github.com/chazu/massing/pkg/engine"
	"github.com/chazu/massing/pkg/kernel/sdfx"
	"github.com/google/uuid"
)

// App ties the scenario engine to the composition driver. It is the
// boundary where results are logged and shaped for a renderer.
type App struct {
	engine *engine.Engine
	driver *compose.Driver
	render compose.RenderConfig
}

// MeshData is the JSON-serializable mesh format sent to a renderer.
type MeshData struct {
	Scenario string    `json:"scenario"`
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// EvalResult is the full result of one evaluation. Meshes are lifted out
// of the payloads and colored, so payloads in Scenarios carry none.
type EvalResult struct {
	RunID     string               `json:"runId"`
	Scenarios []*compose.Payload   `json:"scenarios"`
	Meshes    []MeshData           `json:"meshes"`
	Errors    []EvalErrorData      `json:"errors"`
	Warnings  []EvalErrorData      `json:"warnings"`
	Render    compose.RenderConfig `json:"render"`
}

// NewApp creates an App with the default configuration.
func NewApp() *App {
	return NewAppWithConfig(compose.DefaultConfig())
}

// NewAppWithConfig creates an App whose driver uses cfg and an sdfx kernel
// at cfg.MeshCells resolution.
func NewAppWithConfig(cfg compose.Config) *App {
	return &App{
		engine: engine.NewEngine(),
		driver: &compose.Driver{Kernel: sdfx.NewWithCells(cfg.MeshCells), Config: cfg},
		render: compose.DefaultRenderConfig(),
	}
}

func newResult(render compose.RenderConfig) EvalResult {
	return EvalResult{
		RunID:     uuid.NewString(),
		Scenarios: []*compose.Payload{},
		Meshes:    []MeshData{},
		Errors:    []EvalErrorData{},
		Warnings:  []EvalErrorData{},
		Render:    render,
	}
}

// Evaluate takes scenario source and returns every composed scenario
// together with errors and warnings.
func (a *App) Evaluate(source string) EvalResult {
	result := newResult(a.render)

	// Step 1: Evaluate the source into scenario requests.
	reqs, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("[%s] Evaluate fatal error: %v", result.RunID, err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the output format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 3: Compose the requests.
	a.compose(context.Background(), reqs, &result)
	return result
}

// Run composes requests built outside the scenario language, such as
// from command-line flags.
func (a *App) Run(ctx context.Context, reqs ...compose.Request) EvalResult {
	result := newResult(a.render)
	a.compose(ctx, reqs, &result)
	return result
}

func (a *App) compose(ctx context.Context, reqs []compose.Request, result *EvalResult) {
	results, err := a.driver.RunAll(ctx, reqs)
	if err != nil {
		log.Printf("[%s] composition stopped: %v", result.RunID, err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
	}

	for _, r := range results {
		label := r.Request.Label()
		if r.Err != nil {
			log.Printf("[%s] %s: %v", result.RunID, label, r.Err)
			result.Errors = append(result.Errors, EvalErrorData{Message: label + ": " + r.Err.Error()})
			continue
		}

		p := r.Payload
		for _, w := range p.Warnings {
			result.Warnings = append(result.Warnings, EvalErrorData{Message: label + ": " + w.String()})
		}

		// Step 4: Lift kernel meshes into the colored MeshData format.
		for i, m := range p.Meshes {
			result.Meshes = append(result.Meshes, MeshData{
				Scenario: label,
				Vertices: m.Vertices,
				Normals:  m.Normals,
				Indices:  m.Indices,
				PartName: m.PartName,
				Color:    a.render.PartColor(i),
			})
		}
		p.Meshes = nil

		result.Scenarios = append(result.Scenarios, p)
		logPayload(result.RunID, p)
	}
}

// logPayload prints the statistics of one scenario.
func logPayload(runID string, p *compose.Payload) {
	s := p.Stats
	switch p.Mode {
	case compose.ModeSpheres:
		log.Printf("[%s] %s: %d spheres in %d prisms, container %.4f, spheres %.4f, fill %.2f%%",
			runID, p.Name, s.SphereCount, len(p.Prisms), s.ContainerVolume, s.TotalSphereVolume, s.FillRatio)
	case compose.ModeWalls:
		log.Printf("[%s] %s: walls around %d prisms, container %.4f", runID, p.Name, len(p.Walls), s.ContainerVolume)
	case compose.ModeContour:
		log.Printf("[%s] %s: contour of %d vertices, volume %.4f", runID, p.Name, p.Contour.Len(), s.ContainerVolume)
	}
	for _, w := range p.Warnings {
		log.Printf("[%s] %s: warning: %s", runID, p.Name, w)
	}
}
