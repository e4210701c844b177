package main

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/chazu/lathe/pkg/config"
	"github.com/chazu/lathe/pkg/curve"
	"github.com/chazu/lathe/pkg/engine"
	"github.com/chazu/lathe/pkg/geom"
	"github.com/chazu/lathe/pkg/kernel"
	"github.com/chazu/lathe/pkg/sketch"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
// Bindings may be called concurrently, so the session is guarded by mu.
type App struct {
	ctx    context.Context
	cfg    config.Config
	engine *engine.Engine

	mu      sync.Mutex
	session *sketch.Session
}

// CurveData is the JSON-serializable sketch state sent to the frontend.
type CurveData struct {
	Anchors  []geom.Point2D    `json:"anchors"`
	Segments [][4]geom.Point2D `json:"segments"`
	Polyline []geom.Point2D    `json:"polyline"`
	Warnings []string          `json:"warnings"`
	Error    string            `json:"error,omitempty"`
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Rings    int       `json:"rings"`
}

// BuildResult is returned by BuildMesh.
type BuildResult struct {
	Mesh  *MeshData `json:"mesh"`
	Error string    `json:"error,omitempty"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of evaluating a sketch script.
type EvalResult struct {
	Curve    CurveData       `json:"curve"`
	Mesh     *MeshData       `json:"mesh"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates a new App with an empty sketch.
func NewApp(cfg config.Config) *App {
	a := &App{
		cfg:    cfg,
		engine: engine.NewEngine(cfg),
	}
	a.setSession(sketch.New(cfg.SessionOptions()))
	return a
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// setSession installs s and forwards its change events to the frontend.
func (a *App) setSession(s *sketch.Session) {
	s.OnChange(func(e sketch.Event) {
		switch e.Kind {
		case sketch.MeshBuilt:
			a.emit(e.Kind.String(), toMeshData(e.Mesh))
		default:
			a.emit(e.Kind.String(), curveData(s))
		}
	})
	a.session = s
}

// emit sends an event to the frontend. Outside the Wails runtime (tests,
// headless use) there is no context and events are dropped.
func (a *App) emit(name string, payload interface{}) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, name, payload)
}

// AddAnchor appends an anchor to the sketch and returns the new curve.
func (a *App) AddAnchor(x, y float64) CurveData {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, err := a.session.AddAnchor(geom.Pt(x, y))
	cd := curveData(a.session)
	if err != nil && !errors.Is(err, curve.ErrInsufficientAnchors) {
		cd.Error = err.Error()
	}
	return cd
}

// RemoveLastAnchor drops the most recent anchor and returns the new curve.
func (a *App) RemoveLastAnchor() CurveData {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, err := a.session.RemoveLastAnchor()
	cd := curveData(a.session)
	if err != nil {
		cd.Error = err.Error()
	}
	return cd
}

// BuildMesh revolves the current curve.
func (a *App) BuildMesh() BuildResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	m, err := a.session.Build()
	if err != nil {
		log.Printf("BuildMesh error: %v", err)
		return BuildResult{Error: err.Error()}
	}
	return BuildResult{Mesh: toMeshData(m)}
}

// Evaluate runs a sketch script. On success the script's sketch replaces
// the current one; on any error the current sketch is left untouched.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Curve:    emptyCurveData(),
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: err.Error(),
		})
		return result
	}

	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	a.mu.Lock()
	a.setSession(s)
	result.Curve = curveData(s)
	if m := s.Mesh(); m != nil {
		result.Mesh = toMeshData(m)
	}
	a.mu.Unlock()

	for _, w := range result.Curve.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w})
	}

	a.emit(sketch.CurveChanged.String(), result.Curve)
	if result.Mesh != nil {
		a.emit(sketch.MeshBuilt.String(), result.Mesh)
	}
	return result
}

func emptyCurveData() CurveData {
	return CurveData{
		Anchors:  []geom.Point2D{},
		Segments: [][4]geom.Point2D{},
		Polyline: []geom.Point2D{},
		Warnings: []string{},
	}
}

// curveData snapshots s. Slices are never nil so JSON carries [] not null.
func curveData(s *sketch.Session) CurveData {
	cd := emptyCurveData()
	cd.Anchors = append(cd.Anchors, s.Anchors()...)
	cd.Polyline = append(cd.Polyline, s.Polyline()...)
	for _, seg := range s.Segments() {
		cd.Segments = append(cd.Segments, seg.Points)
	}
	for _, w := range s.Validate() {
		cd.Warnings = append(cd.Warnings, w.String())
	}
	return cd
}

func toMeshData(m *kernel.Mesh) *MeshData {
	positions, normals := m.Split()
	return &MeshData{
		ID:       m.ID,
		Name:     m.Name,
		Vertices: positions,
		Normals:  normals,
		Indices:  append([]uint32{}, m.Indices...),
		Rings:    m.Rings,
	}
}
