package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestParseKeepsDefaults(t *testing.T) {

	cfg, err := Parse([]byte(`
window:
  width: 800
render:
  shader: normals
  stats_log_interval: 0
`))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, int32(800), cfg.Window.Width)
	assert.Equal(t, def.Window.Height, cfg.Window.Height)
	assert.Equal(t, def.Window.Title, cfg.Window.Title)
	assert.Equal(t, Shader_Normals, cfg.Render.Shader)
	assert.Equal(t, 0, cfg.Render.StatsLogInterval)
	assert.Equal(t, def.Render.DrawGrid, cfg.Render.DrawGrid)
	assert.Equal(t, def.Camera, cfg.Camera)
}

func TestParseEmpty(t *testing.T) {

	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseErrors(t *testing.T) {

	tests := map[string]string{
		"unknown key":   "window:\n  colour: red\n",
		"bad type":      "window:\n  width: wide\n",
		"bad size":      "window:\n  height: 0\n",
		"bad fov":       "camera:\n  fov_deg: 180\n",
		"bad planes":    "camera:\n  near: 10\n  far: 1\n",
		"bad shader":    "render:\n  shader: toon\n",
		"bad interval":  "render:\n  stats_log_interval: -1\n",
		"no model":      "assets:\n  model: \"\"\n",
		"bad parallel":  "assets:\n  max_parallel: -2\n",
		"bad distance":  "camera:\n  distance: 0\n",
		"not a mapping": "- a\n- b\n",
	}

	for name, src := range tests {
		_, err := Parse([]byte(src))
		assert.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {

	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte("assets:\n  model: models/chair.fbx\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "models/chair.fbx", cfg.Assets.Model)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
