package main

import (
	"github.com/spf13/cobra"

	"github.com/chazu/lathe/pkg/curve"
	"github.com/chazu/lathe/pkg/geom"
)

// fitOutput is the JSON printed by `lathe fit`.
type fitOutput struct {
	Segments []curve.Segment `json:"segments"`
	Polyline []geom.Point2D  `json:"polyline,omitempty"`
}

func newFitCmd(gf *globalFlags) *cobra.Command {
	var withPolyline bool

	cmd := &cobra.Command{
		Use:   "fit x,y x,y x,y [x,y...]",
		Short: "Fit Bezier segments through anchors and print their control points",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gf.loadConfig()
			if err != nil {
				return err
			}
			anchors, err := parsePoints(args)
			if err != nil {
				return err
			}

			segments, err := curve.FitWithTension(anchors, cfg.Curve.Tension)
			if err != nil {
				return err
			}

			out := fitOutput{Segments: segments}
			if withPolyline {
				out.Polyline, err = curve.Sample(segments, cfg.Curve.Resolution)
				if err != nil {
					return err
				}
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&withPolyline, "polyline", false, "also print the sampled polyline")
	return cmd
}
