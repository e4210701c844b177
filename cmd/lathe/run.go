package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/chazu/lathe/pkg/engine"
	"github.com/chazu/lathe/pkg/logging"
)

// runOutput is the JSON printed by `lathe run`.
type runOutput struct {
	Script  string             `json:"script"`
	Anchors int                `json:"anchors"`
	Points  int                `json:"points"`
	Mesh    *meshStats         `json:"mesh,omitempty"`
	Errors  []engine.EvalError `json:"errors,omitempty"`
}

func newRunCmd(gf *globalFlags) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "run script.lisp",
		Short: "Evaluate a sketch script and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gf.loadConfig()
			if err != nil {
				return err
			}
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			eng := engine.NewEngine(cfg)
			out := cmd.OutOrStdout()

			if err := runScript(eng, path, out); err != nil && !watch {
				return err
			}
			if !watch {
				return nil
			}

			return watchFile(cmd.Context(), path, func() {
				if err := runScript(eng, path, out); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "lathe: %v\n", err)
				}
			})
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run the script whenever it changes")
	return cmd
}

// errScript reports a script that evaluated with errors.
type errScript struct {
	path  string
	count int
}

func (e errScript) Error() string {
	return fmt.Sprintf("%s: %d evaluation error(s)", e.path, e.count)
}

// runScript evaluates the script at path and prints a runOutput.
func runScript(eng *engine.Engine, path string, w io.Writer) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	s, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	res := runOutput{Script: path, Errors: evalErrs}
	if s != nil {
		res.Anchors = s.Len()
		res.Points = len(s.Polyline())
		if m := s.Mesh(); m != nil {
			st := statsFor(s, m)
			res.Mesh = &st
		}
		for _, warn := range s.Validate() {
			logging.Logger().Warn("sketch warning", "script", path, "code", warn.Code, "message", warn.Message)
		}
	}

	if err := writeJSON(w, res); err != nil {
		return err
	}
	if len(evalErrs) > 0 {
		return errScript{path: path, count: len(evalErrs)}
	}
	return nil
}

// watchFile calls onChange every time the file at path is written or
// replaced, until ctx is done. The parent directory is watched so editors
// that save by renaming are still seen.
func watchFile(ctx context.Context, path string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	logging.Logger().Info("watching script", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				onChange()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Logger().Warn("watch error", "err", err)
		}
	}
}
