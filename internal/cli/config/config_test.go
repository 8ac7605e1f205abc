package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultKernel, cfg.Kernel)
	assert.Equal(t, DefaultMeshCells, cfg.MeshCells)
	assert.Equal(t, DefaultSegments, cfg.Segments)
	assert.False(t, cfg.Verbose, "Verbose should default to false")
}

func TestLoadConfigFile(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	path := filepath.Join(t.TempDir(), "burl.yaml")
	content := "kernel: sdfx\nmesh_cells: 64\ntolerance: 0.05\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.MeshCells)
	assert.Equal(t, 0.05, cfg.Tolerance)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	t.Setenv("BURL_MESH_CELLS", "128")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.MeshCells, "env should override the default")
}

func TestLoadConfigFlagOverridesEnv(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	t.Setenv("BURL_MESH_CELLS", "128")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("mesh-cells", 0, "")
	require.NoError(t, flags.Parse([]string{"--mesh-cells", "32"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.MeshCells, "flag should override env")
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		errSubstr string
	}{
		{
			name:      "unknown kernel",
			env:       map[string]string{"BURL_KERNEL": "opencascade"},
			errSubstr: "kernel",
		},
		{
			name:      "non-positive mesh cells",
			env:       map[string]string{"BURL_MESH_CELLS": "0"},
			errSubstr: "mesh_cells",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			t.Cleanup(ResetConfig)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestGetCurrentConfigFallback(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	cfg := GetCurrentConfig()
	assert.Equal(t, DefaultKernel, cfg.Kernel, "fallback should carry defaults")
}
