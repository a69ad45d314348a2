package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
	Scene     SceneConfig     `yaml:"scene" toml:"scene"`
	Player    PlayerConfig    `yaml:"player" toml:"player"`
	Light     LightConfig     `yaml:"light" toml:"light"`
	Rendering RenderingConfig `yaml:"rendering" toml:"rendering"`
	Console   ConsoleConfig   `yaml:"console" toml:"console"`
	Input     InputConfig     `yaml:"input" toml:"input"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	File   string `yaml:"file" toml:"file"`
	Format string `yaml:"format" toml:"format"`
}

type SceneConfig struct {
	DataRoot    string `yaml:"data_root" toml:"data_root"`
	GridTexture string `yaml:"grid_texture" toml:"grid_texture"`
	TickRate    int    `yaml:"tick_rate" toml:"tick_rate"`
}

type SpawnConfig struct {
	Position [3]float32 `yaml:"position" toml:"position"`
	// Rotation is in Euler degrees.
	Rotation [3]float32 `yaml:"rotation" toml:"rotation"`
}

type PlayerConfig struct {
	Index            int         `yaml:"index" toml:"index"`
	MouseSensitivity float32     `yaml:"mouse_sensitivity" toml:"mouse_sensitivity"`
	Spawn            SpawnConfig `yaml:"spawn" toml:"spawn"`
}

type LightConfig struct {
	Position [3]float32 `yaml:"position" toml:"position"`
	Radius   float32    `yaml:"radius" toml:"radius"`
}

type RenderingConfig struct {
	Background      [4]float32 `yaml:"background" toml:"background"`
	ClearBackground bool       `yaml:"clear_background" toml:"clear_background"`
	Wireframe       bool       `yaml:"wireframe" toml:"wireframe"`
	DrawDebug       bool       `yaml:"draw_debug" toml:"draw_debug"`
}

type ConsoleConfig struct {
	Enabled     bool    `yaml:"enabled" toml:"enabled"`
	MovePulseMS int     `yaml:"move_pulse_ms" toml:"move_pulse_ms"`
	YawStep     float32 `yaml:"yaw_step" toml:"yaw_step"`
	PitchStep   float32 `yaml:"pitch_step" toml:"pitch_step"`
}

// InputConfig overrides the built-in mapping table when either list is set.
type InputConfig struct {
	Axes    []AxisBinding   `yaml:"axes" toml:"axes"`
	Actions []ActionBinding `yaml:"actions" toml:"actions"`
}

type AxisBinding struct {
	Name   string  `yaml:"name" toml:"name"`
	Device string  `yaml:"device" toml:"device"`
	Key    string  `yaml:"key" toml:"key"`
	Scale  float32 `yaml:"scale" toml:"scale"`
	Player int     `yaml:"player" toml:"player"`
}

type ActionBinding struct {
	Name   string `yaml:"name" toml:"name"`
	Device string `yaml:"device" toml:"device"`
	Key    string `yaml:"key" toml:"key"`
	Player int    `yaml:"player" toml:"player"`
}

func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "auto"},
		Scene: SceneConfig{
			DataRoot:    "Data",
			GridTexture: "Common/grid8.png",
			TickRate:    60,
		},
		Player: PlayerConfig{
			MouseSensitivity: 0.3,
			Spawn:            SpawnConfig{Position: [3]float32{0, 1, 2}},
		},
		Light: LightConfig{Position: [3]float32{0, 3, 0}, Radius: 10},
		Rendering: RenderingConfig{
			Background:      [4]float32{0, 0, 0, 1},
			ClearBackground: true,
			DrawDebug:       true,
		},
		Console: ConsoleConfig{
			Enabled:     true,
			MovePulseMS: 180,
			YawStep:     5,
			PitchStep:   5,
		},
	}
}

// Load reads path over the defaults. Files ending in .toml are decoded as
// TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}
	if cfg.Scene.DataRoot, err = homedir.Expand(cfg.Scene.DataRoot); err != nil {
		return nil, fmt.Errorf("expand data_root: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Scene.TickRate <= 0 || c.Scene.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("scene.tick_rate must be in 1..1000, got %d", c.Scene.TickRate))
	}
	if c.Player.Index < 0 {
		errs = append(errs, fmt.Errorf("player.index must be >= 0, got %d", c.Player.Index))
	}
	if !finite(c.Player.MouseSensitivity) || c.Player.MouseSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("player.mouse_sensitivity must be > 0, got %v", c.Player.MouseSensitivity))
	}
	if !finite(c.Light.Radius) || c.Light.Radius < 0 {
		errs = append(errs, fmt.Errorf("light.radius must be >= 0, got %v", c.Light.Radius))
	}
	errs = appendNonFinite(errs, "player.spawn.position", c.Player.Spawn.Position[:])
	errs = appendNonFinite(errs, "player.spawn.rotation", c.Player.Spawn.Rotation[:])
	errs = appendNonFinite(errs, "light.position", c.Light.Position[:])
	errs = appendNonFinite(errs, "rendering.background", c.Rendering.Background[:])
	errs = appendNonFinite(errs, "console.yaw_step", []float32{c.Console.YawStep})
	errs = appendNonFinite(errs, "console.pitch_step", []float32{c.Console.PitchStep})
	if c.Console.MovePulseMS <= 0 {
		errs = append(errs, fmt.Errorf("console.move_pulse_ms must be > 0, got %d", c.Console.MovePulseMS))
	}
	for i, a := range c.Input.Axes {
		if a.Name == "" || a.Key == "" {
			errs = append(errs, fmt.Errorf("input.axes[%d]: name and key are required", i))
		}
		if !finite(a.Scale) {
			errs = append(errs, fmt.Errorf("input.axes[%d]: scale must be finite, got %v", i, a.Scale))
		}
	}
	for i, a := range c.Input.Actions {
		if a.Name == "" || a.Key == "" {
			errs = append(errs, fmt.Errorf("input.actions[%d]: name and key are required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func appendNonFinite(errs []error, field string, values []float32) []error {
	for _, v := range values {
		if !finite(v) {
			return append(errs, fmt.Errorf("%s must be finite, got %v", field, values))
		}
	}
	return errs
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

// GridTexturePath is the grid texture location under the data root.
func (c *Config) GridTexturePath() string {
	if filepath.IsAbs(c.Scene.GridTexture) {
		return c.Scene.GridTexture
	}
	return filepath.Join(c.Scene.DataRoot, c.Scene.GridTexture)
}
