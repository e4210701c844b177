package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/lathe/pkg/config"
	"github.com/chazu/lathe/pkg/geom"
	"github.com/chazu/lathe/pkg/kernel"
	"github.com/chazu/lathe/pkg/logging"
	"github.com/chazu/lathe/pkg/sketch"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var gf globalFlags

	root := &cobra.Command{
		Use:           "lathe",
		Short:         "Fit spline profiles and revolve them into meshes",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if gf.verbose {
				logging.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
					&slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
	}
	root.PersistentFlags().StringVarP(&gf.configPath, "config", "c", "lathe.toml", "path to the TOML configuration file")
	root.PersistentFlags().BoolVarP(&gf.verbose, "verbose", "v", false, "log pipeline details to stderr")

	root.AddCommand(newFitCmd(&gf), newRevolveCmd(&gf), newRunCmd(&gf))
	return root
}

// loadConfig reads the configuration named by the global flags.
func (gf *globalFlags) loadConfig() (config.Config, error) {
	return config.Load(gf.configPath)
}

// parsePoint parses "x,y".
func parsePoint(s string) (geom.Point2D, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point2D{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Point2D{}, fmt.Errorf("point %q: x: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Point2D{}, fmt.Errorf("point %q: y: %w", s, err)
	}
	return geom.Pt(x, y), nil
}

func parsePoints(args []string) ([]geom.Point2D, error) {
	pts := make([]geom.Point2D, 0, len(args))
	for _, a := range args {
		p, err := parsePoint(a)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// meshStats summarizes a built mesh.
type meshStats struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Kernel    string     `json:"kernel"`
	Anchors   int        `json:"anchors"`
	Points    int        `json:"points"`
	Rings     int        `json:"rings"`
	Vertices  int        `json:"vertices"`
	Triangles int        `json:"triangles"`
	Indices   int        `json:"indices"`
	Min       [3]float32 `json:"min"`
	Max       [3]float32 `json:"max"`
	Warnings  []string   `json:"warnings"`
}

func statsFor(s *sketch.Session, m *kernel.Mesh) meshStats {
	min, max := m.Bounds()
	st := meshStats{
		ID:        m.ID,
		Name:      m.Name,
		Kernel:    s.Options().Kernel.Name(),
		Anchors:   s.Len(),
		Points:    len(s.Polyline()),
		Rings:     m.Rings,
		Vertices:  m.VertexCount(),
		Triangles: m.TriangleCount(),
		Indices:   len(m.Indices),
		Min:       min,
		Max:       max,
		Warnings:  []string{},
	}
	for _, w := range s.Validate() {
		st.Warnings = append(st.Warnings, w.String())
	}
	return st
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
