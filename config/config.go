// Package config provides configuration loading and access for the viewer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/nebula/galaxy"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all viewer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Galaxy    GalaxyConfig    `yaml:"galaxy"`
	Camera    CameraConfig    `yaml:"camera"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GalaxyConfig holds the generator parameter defaults. Colors are hex
// strings; shape and distribution names are validated when the parameter
// set is built, not here.
type GalaxyConfig struct {
	Count           int     `yaml:"count"`
	Size            float64 `yaml:"size"`
	Radius          float64 `yaml:"radius"`
	Branches        int     `yaml:"branches"`
	Spin            float64 `yaml:"spin"`
	Randomness      float64 `yaml:"randomness"`       // Reserved; not applied in the position formula
	RandomnessPower float64 `yaml:"randomness_power"` // Jitter falloff exponent (>= 1)
	InsideColor     string  `yaml:"inside_color"`
	OutsideColor    string  `yaml:"outside_color"`
	Shape           string  `yaml:"shape"`
	ThetaScale      float64 `yaml:"theta_scale"` // Ellipse x-axis scale
	Distribution    string  `yaml:"distribution"`
}

// CameraConfig holds orbit camera defaults.
type CameraConfig struct {
	Distance    float64 `yaml:"distance"`
	Yaw         float64 `yaml:"yaw"`   // Radians
	Pitch       float64 `yaml:"pitch"` // Radians
	FOV         float64 `yaml:"fov"`   // Degrees
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
}

// RenderConfig holds presentation parameters.
type RenderConfig struct {
	RotationRate float64 `yaml:"rotation_rate"` // Passive field rotation, rad/s
	SpriteSize   int     `yaml:"sprite_size"`   // Sprite texture edge in pixels
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
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

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// GalaxyParams builds the generator parameter set from the config,
// parsing colors and validating the shape and distribution names.
func (c *Config) GalaxyParams() (galaxy.Params, error) {
	g := c.Galaxy

	inside, err := galaxy.ParseHexColor(g.InsideColor)
	if err != nil {
		return galaxy.Params{}, fmt.Errorf("inside_color: %w", err)
	}
	outside, err := galaxy.ParseHexColor(g.OutsideColor)
	if err != nil {
		return galaxy.Params{}, fmt.Errorf("outside_color: %w", err)
	}
	shape, err := galaxy.ParseShape(g.Shape)
	if err != nil {
		return galaxy.Params{}, err
	}
	dist, err := galaxy.ParseDistribution(g.Distribution)
	if err != nil {
		return galaxy.Params{}, err
	}

	return galaxy.Params{
		Count:           g.Count,
		Size:            g.Size,
		Radius:          g.Radius,
		Branches:        g.Branches,
		Spin:            g.Spin,
		Randomness:      g.Randomness,
		RandomnessPower: g.RandomnessPower,
		InsideColor:     inside,
		OutsideColor:    outside,
		Shape:           shape,
		ThetaScale:      g.ThetaScale,
		Distribution:    dist,
	}, nil
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
