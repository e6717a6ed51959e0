// Package config provides configuration loading and access for the camera
// demo and tooling.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all viewer and camera tuning parameters.
type Config struct {
	Screen ScreenConfig `yaml:"screen"`
	Camera CameraConfig `yaml:"camera"`
	Viewer ViewerConfig `yaml:"viewer"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// CameraConfig holds camera behavior tuning.
type CameraConfig struct {
	StartMode   string  `yaml:"start_mode"`   // orbit, isotropic or grounded
	SmoothTime  float64 `yaml:"smooth_time"`  // damping time constant in seconds
	FOV         float64 `yaml:"fov"`          // vertical field of view in degrees
	MinDistance float64 `yaml:"min_distance"` // dolly lower limit
	MaxDistance float64 `yaml:"max_distance"` // dolly upper limit
	RotateSpeed float64 `yaml:"rotate_speed"` // radians per normalized drag unit
	PanSpeed    float64 `yaml:"pan_speed"`    // normalized pan units per drag unit
	DollyScale  float64 `yaml:"dolly_scale"`  // distance scale per wheel notch
	DollyStep   float64 `yaml:"dolly_step"`   // minimum dolly step in world units
}

// ViewerConfig holds demo scene settings.
type ViewerConfig struct {
	GridExtent  int     `yaml:"grid_extent"`  // ground grid half-extent in cells
	MarkerCount int     `yaml:"marker_count"` // number of scene markers
	MarkerSeed  int64   `yaml:"marker_seed"`  // marker placement seed
	MarkerRange float64 `yaml:"marker_range"` // marker scatter radius
	ShowHUD     bool    `yaml:"show_hud"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32     float32 // Screen.Width as float32
	ScreenH32     float32 // Screen.Height as float32
	SmoothTime32  float32
	FOV32         float32
	MinDist32     float32
	MaxDist32     float32
	RotateSpeed32 float32
	PanSpeed32    float32
	DollyScale32  float32
	DollyStep32   float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.SmoothTime32 = float32(c.Camera.SmoothTime)
	c.Derived.FOV32 = float32(c.Camera.FOV)
	c.Derived.MinDist32 = float32(c.Camera.MinDistance)
	c.Derived.MaxDist32 = float32(c.Camera.MaxDistance)
	c.Derived.RotateSpeed32 = float32(c.Camera.RotateSpeed)
	c.Derived.PanSpeed32 = float32(c.Camera.PanSpeed)
	c.Derived.DollyScale32 = float32(c.Camera.DollyScale)
	c.Derived.DollyStep32 = float32(c.Camera.DollyStep)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
