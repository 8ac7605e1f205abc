package commands

import (
	"fmt"
	"os"

	"github.com/chazu/burl/internal/cli/config"
	"github.com/chazu/burl/pkg/geom"
	"github.com/chazu/burl/pkg/kernel"
	"github.com/chazu/burl/pkg/kernel/manifold"
	"github.com/chazu/burl/pkg/kernel/sdfx"
)

// loadModel reads and decodes a model tree from a JSON file.
func loadModel(path string) (*geom.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	n, err := geom.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return n, nil
}

// newKernel constructs the configured geometry kernel backend.
func newKernel(cfg *config.Config) (kernel.Kernel, error) {
	switch cfg.Kernel {
	case "sdfx":
		return sdfx.NewWithCells(cfg.MeshCells), nil
	case "manifold":
		return manifold.New()
	default:
		return nil, fmt.Errorf("unknown kernel %q", cfg.Kernel)
	}
}
