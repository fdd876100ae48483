// Package config holds the demo settings, read from a YAML file (nrend.yaml by default)
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "nrend.yaml"

type Shader string

const (
	Shader_Basic   Shader = "basic"
	Shader_PBR     Shader = "pbr"
	Shader_Normals Shader = "normals"
)

type Config struct {
	Window WindowConfig `yaml:"window"`
	Assets AssetsConfig `yaml:"assets"`
	Camera CameraConfig `yaml:"camera"`
	Render RenderConfig `yaml:"render"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
	MSAA   bool   `yaml:"msaa"`
	Srgb   bool   `yaml:"srgb"`
}

type AssetsConfig struct {
	BaseDir string `yaml:"base_dir"`
	// Model is loaded with assimp, relative to BaseDir
	Model string `yaml:"model"`
	// DiffuseTexture is optional, relative to BaseDir
	DiffuseTexture string `yaml:"diffuse_texture"`
	MaxParallel    int    `yaml:"max_parallel"`
	ShowProgress   bool   `yaml:"show_progress"`
}

type CameraConfig struct {
	FovDeg float32 `yaml:"fov_deg"`
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
	// Distance is how far the orbit camera starts from the origin
	Distance float32 `yaml:"distance"`
}

type RenderConfig struct {
	Shader   Shader `yaml:"shader"`
	DrawGrid bool   `yaml:"draw_grid"`
	// StatsLogInterval logs renderer stats every that many frames. Zero disables it
	StatsLogInterval int `yaml:"stats_log_interval"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "nrend",
			Width:  1280,
			Height: 720,
			VSync:  true,
			MSAA:   true,
			Srgb:   true,
		},
		Assets: AssetsConfig{
			BaseDir:      "./res",
			Model:        "models/cube.fbx",
			MaxParallel:  4,
			ShowProgress: true,
		},
		Camera: CameraConfig{
			FovDeg:   60,
			Near:     0.1,
			Far:      200,
			Distance: 6,
		},
		Render: RenderConfig{
			Shader:           Shader_PBR,
			DrawGrid:         true,
			StatsLogInterval: 600,
		},
	}
}

func (c *Config) Validate() error {

	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}

	if c.Assets.Model == "" {
		errs = append(errs, errors.New("assets.model must be set"))
	}

	if c.Assets.MaxParallel < 0 {
		errs = append(errs, fmt.Errorf("assets.max_parallel can't be negative, got %d", c.Assets.MaxParallel))
	}

	if c.Camera.FovDeg <= 0 || c.Camera.FovDeg >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov_deg must be in (0, 180), got %v", c.Camera.FovDeg))
	}

	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera planes must satisfy 0 < near < far, got near=%v far=%v", c.Camera.Near, c.Camera.Far))
	}

	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera.distance must be positive, got %v", c.Camera.Distance))
	}

	switch c.Render.Shader {
	case Shader_Basic, Shader_PBR, Shader_Normals:
	default:
		errs = append(errs, fmt.Errorf("unknown render.shader '%s'", c.Render.Shader))
	}

	if c.Render.StatsLogInterval < 0 {
		errs = append(errs, fmt.Errorf("render.stats_log_interval can't be negative, got %d", c.Render.StatsLogInterval))
	}

	return errors.Join(errs...)
}

// Parse reads YAML on top of the defaults, so missing keys keep their default values.
// Unknown keys are an error.
func Parse(data []byte) (*Config, error) {

	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	// An empty document is just the defaults
	err := dec.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func Load(path string) (*Config, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}
