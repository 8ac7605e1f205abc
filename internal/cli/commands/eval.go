package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/burl/internal/cli/config"
	"github.com/chazu/burl/pkg/eval"
	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
	"github.com/chazu/burl/pkg/tessellate"
)

// EvalOptions holds options for the eval command.
type EvalOptions struct {
	MeshDir string // Directory for mesh JSON output, empty to skip meshing
}

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	opts := &EvalOptions{}
	cmd := &cobra.Command{
		Use:   "eval <model.json> [more...]",
		Short: "Evaluate model trees through the geometry kernel",
		Long: `Decode one or more model JSON files, evaluate each through the
configured geometry kernel, and report the resulting parts. With
--mesh-dir, 3D results are additionally meshed and written as JSON.

A failing model does not abort the batch; remaining models still
evaluate, and the command exits non-zero if any model failed.`,
		Example: `  # Evaluate one model
  burl eval bracket.json

  # Evaluate a batch and write meshes
  burl eval parts/*.json --mesh-dir out/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.MeshDir, "mesh-dir", "", "Write meshes of 3D results to this directory")
	return cmd
}

func runEval(cmd *cobra.Command, args []string, opts *EvalOptions) error {
	cfg := config.GetCurrentConfig()
	log := config.GetLogger(cmd.Context())

	k, err := newKernel(cfg)
	if err != nil {
		return err
	}

	if opts.MeshDir != "" {
		if err := os.MkdirAll(opts.MeshDir, 0750); err != nil {
			return fmt.Errorf("create mesh directory: %w", err)
		}
	}

	var failed []string
	for _, path := range args {
		if err := evalOne(cmd, k, path, opts); err != nil {
			failed = append(failed, path)
			log.Error("evaluation failed", "model", path, "error", err)
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d models failed: %s", len(failed), len(args), strings.Join(failed, ", "))
	}
	return nil
}

func evalOne(cmd *cobra.Command, k kernel.Kernel, path string, opts *EvalOptions) error {
	log := config.GetLogger(cmd.Context())

	n, err := loadModel(path)
	if err != nil {
		return err
	}

	ec := eval.NewContext(k, eval.WithLogger(log))
	r, err := ec.Result(cmd.Context(), n)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if r.IsEmpty() {
		_, _ = fmt.Fprintf(out, "%s: empty\n", path)
		return nil
	}

	_, _ = fmt.Fprintf(out, "%s: %d part(s), %s\n", path, len(r.Parts), r.Dim())
	for _, p := range r.Parts {
		switch g := p.Geometry.(type) {
		case kernel.Solid:
			min, max := g.BoundingBox()
			_, _ = fmt.Fprintf(out, "  %s: bounds [%.3f %.3f %.3f] to [%.3f %.3f %.3f]%s\n",
				p.ID, min[0], min[1], min[2], max[0], max[1], max[2], materialSuffix(r, p.ID))
		case kernel.Shape:
			min, max := g.BoundingBox()
			_, _ = fmt.Fprintf(out, "  %s: bounds [%.3f %.3f] to [%.3f %.3f]%s\n",
				p.ID, min[0], min[1], max[0], max[1], materialSuffix(r, p.ID))
		}
	}

	if opts.MeshDir != "" && r.Dim() == geom.Dim3 {
		return writeMeshes(k, r, path, opts.MeshDir)
	}
	return nil
}

func materialSuffix(r *eval.Result, id eval.PartID) string {
	if m, ok := r.Materials[id]; ok {
		return fmt.Sprintf(" (material %s)", m.Name)
	}
	return ""
}

// writeMeshes tessellates the result and writes one JSON file per part.
func writeMeshes(k kernel.Kernel, r *eval.Result, modelPath, dir string) error {
	meshes, err := tessellate.Meshes(k, r)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(modelPath), filepath.Ext(modelPath))
	for i, mesh := range meshes {
		data, err := json.Marshal(mesh)
		if err != nil {
			return fmt.Errorf("encode mesh %q: %w", mesh.Label, err)
		}
		name := fmt.Sprintf("%s-%d.json", base, i)
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return fmt.Errorf("write mesh %s: %w", name, err)
		}
	}
	return nil
}
