package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/lathe/pkg/curve"
	"github.com/chazu/lathe/pkg/sketch"
)

func newRevolveCmd(gf *globalFlags) *cobra.Command {
	var (
		rings      int
		kernelName string
		name       string
	)

	cmd := &cobra.Command{
		Use:   "revolve [--rings N] x,y x,y [x,y...]",
		Short: "Fit, sample and revolve anchors, then print mesh statistics as JSON",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gf.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("rings") {
				cfg.Mesh.Rings = rings
			}
			if kernelName != "" {
				cfg.Mesh.Kernel = kernelName
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			anchors, err := parsePoints(args)
			if err != nil {
				return err
			}

			opts := cfg.SessionOptions()
			opts.Name = name
			s := sketch.New(opts)
			for _, p := range anchors {
				if _, err := s.AddAnchor(p); err != nil && !errors.Is(err, curve.ErrInsufficientAnchors) {
					return err
				}
			}

			m, err := s.Build()
			if err != nil {
				return fmt.Errorf("revolve: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), statsFor(s, m))
		},
	}
	cmd.Flags().IntVarP(&rings, "rings", "r", 0, "angular steps (default from config)")
	cmd.Flags().StringVarP(&kernelName, "kernel", "k", "", "revolution backend: lathe or sdfx (default from config)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "mesh name")
	return cmd
}
