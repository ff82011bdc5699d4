// Package config provides configuration loading and access for the demo
// driver.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/tensai/geom"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Render backends.
const (
	BackendSoftware = "software"
	BackendRaylib   = "raylib"
	BackendTerminal = "terminal"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen" toml:"screen"`
	Render    RenderConfig    `yaml:"render" toml:"render"`
	Camera    CameraConfig    `yaml:"camera" toml:"camera"`
	Physics   PhysicsConfig   `yaml:"physics" toml:"physics"`
	Scene     SceneConfig     `yaml:"scene" toml:"scene"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-" toml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	TargetFPS int    `yaml:"target_fps" toml:"target_fps"`
	Title     string `yaml:"title" toml:"title"`
}

// RenderConfig holds rasterizer settings.
type RenderConfig struct {
	Backend      string   `yaml:"backend" toml:"backend"`             // software, raylib or terminal
	ClearColor   [4]uint8 `yaml:"clear_color" toml:"clear_color"`     // RGBA
	LineWidth    float64  `yaml:"line_width" toml:"line_width"`       // Velocity vector width
	FontSize     float64  `yaml:"font_size" toml:"font_size"`         // 0 = built-in 7x13 bitmap font
	FontPath     string   `yaml:"font_path" toml:"font_path"`         // TTF/OTF file; empty = Go Regular
	SnapshotPath string   `yaml:"snapshot_path" toml:"snapshot_path"` // PNG written after a headless run
}

// CameraConfig holds the initial view.
type CameraConfig struct {
	Zoom     float64 `yaml:"zoom" toml:"zoom"`
	Rotation float64 `yaml:"rotation" toml:"rotation"` // Radians
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	DT              float64 `yaml:"dt" toml:"dt"`                             // Fixed step in seconds
	Gravity         float64 `yaml:"gravity" toml:"gravity"`                   // Downward force per unit mass
	Friction        float64 `yaml:"friction" toml:"friction"`                 // Per-body velocity damping
	Restitution     float64 `yaml:"restitution" toml:"restitution"`           // Per-body bounciness
	WallRestitution float64 `yaml:"wall_restitution" toml:"wall_restitution"` // Velocity kept on wall bounce
}

// SceneConfig controls the spawned bodies.
type SceneConfig struct {
	Bodies            int     `yaml:"bodies" toml:"bodies"`
	MinRadius         float64 `yaml:"min_radius" toml:"min_radius"`
	MaxRadius         float64 `yaml:"max_radius" toml:"max_radius"`
	MaxSpeed          float64 `yaml:"max_speed" toml:"max_speed"`
	KinematicFraction float64 `yaml:"kinematic_fraction" toml:"kinematic_fraction"` // Share of bodies pinned in place
	Seed              uint64  `yaml:"seed" toml:"seed"`                             // 0 = time-based
}

// TelemetryConfig holds frame statistics settings.
type TelemetryConfig struct {
	Window      int     `yaml:"window" toml:"window"`             // Frames kept for statistics
	LogInterval float64 `yaml:"log_interval" toml:"log_interval"` // Seconds between perf log lines
	OutputDir   string  `yaml:"output_dir" toml:"output_dir"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	DT32        float32    // Physics.DT as float32
	Gravity32   float32    // Physics.Gravity as float32
	ScreenW32   float32    // Screen.Width as float32
	ScreenH32   float32    // Screen.Height as float32
	LineWidth32 float32    // Render.LineWidth as float32
	ClearColor  geom.Color // Render.ClearColor
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

// Load loads configuration from a YAML or TOML file, merging with embedded
// defaults. Files ending in .toml are parsed as TOML, anything else as YAML.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
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
		if err := unmarshal(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func unmarshal(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate reports the first setting that cannot run.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case c.Physics.DT <= 0:
		return fmt.Errorf("%w: physics.dt must be positive, got %v", ErrInvalid, c.Physics.DT)
	case c.Scene.Bodies < 0:
		return fmt.Errorf("%w: scene.bodies must not be negative", ErrInvalid)
	case c.Scene.MinRadius <= 0 || c.Scene.MinRadius > c.Scene.MaxRadius:
		return fmt.Errorf("%w: radius range [%v, %v]", ErrInvalid, c.Scene.MinRadius, c.Scene.MaxRadius)
	case c.Camera.Zoom <= 0:
		return fmt.Errorf("%w: camera.zoom must be positive", ErrInvalid)
	case c.Telemetry.Window <= 0:
		return fmt.Errorf("%w: telemetry.window must be positive", ErrInvalid)
	}
	switch c.Render.Backend {
	case BackendSoftware, BackendRaylib, BackendTerminal:
	default:
		return fmt.Errorf("%w: unknown render backend %q", ErrInvalid, c.Render.Backend)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.Gravity32 = float32(c.Physics.Gravity)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.LineWidth32 = float32(c.Render.LineWidth)
	cc := c.Render.ClearColor
	c.Derived.ClearColor = geom.RGBA(cc[0], cc[1], cc[2], cc[3])
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
