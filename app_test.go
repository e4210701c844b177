package main

import (
	"os"
	"testing"

	"github.com/chazu/lathe/pkg/config"
)

func newTestApp() *App {
	return NewApp(config.Default())
}

// TestE2EVaseExample exercises the full pipeline: script → engine → session
// → tessellate → mesh. This is the same path that the Wails Evaluate binding
// takes, but without the Wails runtime.
func TestE2EVaseExample(t *testing.T) {
	app := newTestApp()

	source, err := os.ReadFile("examples/vase.lisp")
	if err != nil {
		t.Fatalf("failed to read vase.lisp: %v", err)
	}

	result := app.Evaluate(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	if got := len(result.Curve.Anchors); got != 5 {
		t.Errorf("expected 5 anchors, got %d", got)
	}
	if got := len(result.Curve.Segments); got != 4 {
		t.Errorf("expected 4 segments, got %d", got)
	}
	if got := len(result.Curve.Polyline); got != 64 {
		t.Errorf("expected 64 polyline points, got %d", got)
	}

	m := result.Mesh
	if m == nil {
		t.Fatal("expected a mesh")
	}
	if m.Name != "vase" {
		t.Errorf("expected mesh name vase, got %q", m.Name)
	}
	if m.Rings != 96 {
		t.Errorf("expected 96 rings, got %d", m.Rings)
	}
	if len(m.Vertices) != 64*96*3 {
		t.Errorf("expected %d position floats, got %d", 64*96*3, len(m.Vertices))
	}
	if len(m.Normals) != len(m.Vertices) {
		t.Errorf("normals (%d) and positions (%d) differ in length", len(m.Normals), len(m.Vertices))
	}
	if len(m.Indices) != 63*96*6 {
		t.Errorf("expected %d indices, got %d", 63*96*6, len(m.Indices))
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := newTestApp()
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if result.Mesh != nil {
		t.Errorf("expected no mesh for empty source")
	}
}

// TestE2ESyntaxError ensures syntax errors are reported, not panicked on.
func TestE2ESyntaxError(t *testing.T) {
	app := newTestApp()
	result := app.Evaluate("(anchor 1 2")

	if len(result.Errors) == 0 {
		t.Error("expected errors for invalid syntax")
	}
	if result.Mesh != nil {
		t.Error("expected no mesh on syntax error")
	}
}

// TestInteractiveSketch drives the bindings the canvas uses.
func TestInteractiveSketch(t *testing.T) {
	app := newTestApp()

	cd := app.AddAnchor(0, 0)
	if cd.Error != "" {
		t.Errorf("a lone anchor should not report an error, got %q", cd.Error)
	}
	if len(cd.Anchors) != 1 || len(cd.Polyline) != 0 {
		t.Fatalf("expected 1 anchor and no polyline, got %d / %d", len(cd.Anchors), len(cd.Polyline))
	}

	cd = app.AddAnchor(10, 5)
	if len(cd.Polyline) != 2 {
		t.Fatalf("expected a 2-point line, got %d points", len(cd.Polyline))
	}

	cd = app.AddAnchor(20, 0)
	if len(cd.Polyline) != 32 || len(cd.Segments) != 2 {
		t.Fatalf("expected 32 points in 2 segments, got %d / %d", len(cd.Polyline), len(cd.Segments))
	}

	res := app.BuildMesh()
	if res.Error != "" {
		t.Fatalf("BuildMesh error: %s", res.Error)
	}
	if got := len(res.Mesh.Vertices) / 3; got != 4096 {
		t.Errorf("expected 4096 vertices, got %d", got)
	}
	if got := len(res.Mesh.Indices); got != 23808 {
		t.Errorf("expected 23808 indices, got %d", got)
	}
	if res.Mesh.ID == "" {
		t.Error("mesh should carry an ID")
	}

	cd = app.RemoveLastAnchor()
	if cd.Error != "" || len(cd.Anchors) != 2 {
		t.Errorf("expected 2 anchors after undo, got %d (error %q)", len(cd.Anchors), cd.Error)
	}
}
