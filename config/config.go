// Package config provides configuration loading and access for the controller and its hosts.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/tilestep/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Motion    MotionConfig    `yaml:"motion"`
	Actor     ActorConfig     `yaml:"actor"`
	Input     InputConfig     `yaml:"input"`
	Camera    CameraConfig    `yaml:"camera"`
	Audio     AudioConfig     `yaml:"audio"`
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

// GridConfig holds the tile grid dimensions drawn under the actor.
type GridConfig struct {
	Width    int     `yaml:"width"`     // tiles along X
	Height   int     `yaml:"height"`    // tiles along Z
	TileSize float64 `yaml:"tile_size"` // world units per tile
}

// MotionConfig holds the tuning data for the integrators.
type MotionConfig struct {
	TileDuration float64 `yaml:"tile_duration"` // seconds to cover one tile
	TurnRate     float64 `yaml:"turn_rate"`     // radians per second
}

// ActorConfig holds the player spawn parameters.
type ActorConfig struct {
	SpawnX  float64 `yaml:"spawn_x"`
	SpawnY  float64 `yaml:"spawn_y"`
	SpawnZ  float64 `yaml:"spawn_z"`
	Heading string  `yaml:"heading"` // right, up, left or down
	Scale   float64 `yaml:"scale"`   // model scale, presentation only
}

// InputConfig holds host input parameters.
type InputConfig struct {
	// HoldWindow is how long (seconds) a terminal key event counts as "pressed".
	// Terminals report key presses, not key state, so the latch bridges autorepeat gaps.
	HoldWindow float64 `yaml:"hold_window"`
}

// CameraConfig holds follow camera parameters.
type CameraConfig struct {
	Distance   float64 `yaml:"distance"`
	Pitch      float64 `yaml:"pitch"`       // radians above the ground plane
	Yaw        float64 `yaml:"yaw"`         // radians around the vertical axis
	OrbitSpeed float64 `yaml:"orbit_speed"` // radians per second while orbit keys are held
}

// AudioConfig holds footstep cue parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	FootstepHz float64 `yaml:"footstep_hz"`
	FootstepMs int     `yaml:"footstep_ms"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds of simulated time per stats window
	PerfWindow  int     `yaml:"perf_window"`  // ticks averaged by the perf collector
	Trace       bool    `yaml:"trace"`        // write one CSV row per step
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TileDuration32 float32 // Motion.TileDuration as float32
	TurnRate32     float32 // Motion.TurnRate as float32
	HoldWindow32   float32 // Input.HoldWindow as float32
	ScreenW32      float32
	ScreenH32      float32
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the integrators cannot work with.
func (c *Config) validate() error {
	// The integrators run on float32, so check the values they will see
	if float32(c.Motion.TileDuration) <= 0 {
		return fmt.Errorf("motion.tile_duration must be positive, got %v", c.Motion.TileDuration)
	}
	if float32(c.Motion.TurnRate) <= 0 {
		return fmt.Errorf("motion.turn_rate must be positive, got %v", c.Motion.TurnRate)
	}
	if _, err := components.ParseHeading(c.Actor.Heading); err != nil {
		return fmt.Errorf("actor.heading must be one of right, up, left, down: %w", err)
	}
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TileDuration32 = float32(c.Motion.TileDuration)
	c.Derived.TurnRate32 = float32(c.Motion.TurnRate)
	c.Derived.HoldWindow32 = float32(c.Input.HoldWindow)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 120
	}
	if c.Grid.TileSize == 0 {
		c.Grid.TileSize = 1
	}
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
