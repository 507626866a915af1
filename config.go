package throwsim

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of a cannon simulation. Fields missing
// from a file keep their DefaultConfig values.
type Config struct {
	Window  WindowConfig      `yaml:"window"`
	Scene   SceneConfig       `yaml:"scene"`
	Params  ParamsConfig      `yaml:"params"`
	Rates   ParamsConfig      `yaml:"rates"`
	Keys    map[string]string `yaml:"keys"`
	Logging LoggingConfig     `yaml:"logging"`
	Audio   AudioConfig       `yaml:"audio"`
	// Seed seeds projectile colors. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
	Antialias  bool   `yaml:"antialias"`
	ShowFPS    bool   `yaml:"show_fps"`
}

type SceneConfig struct {
	PixelsPerMeter float64      `yaml:"pixels_per_meter"`
	FontSize       uint         `yaml:"font_size"`
	TextHeight     float64      `yaml:"text_height"`
	ForceScale     float64      `yaml:"force_scale"`
	MomentumScale  float64      `yaml:"momentum_scale"`
	Cannon         CannonConfig `yaml:"cannon"`
}

type CannonConfig struct {
	// X and Y place the pivot. Negative values count from the right and
	// bottom edges.
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
	Length         float64 `yaml:"length"`
	Width          float64 `yaml:"width"`
	RecoilDistance float64 `yaml:"recoil_distance"`
	RecoilSeconds  float32 `yaml:"recoil_seconds"`
}

// ParamsConfig holds one value per adjustable parameter. It is used both
// for starting values and for per-second step rates.
type ParamsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	Density     float64 `yaml:"density"`
	ShotPower   float64 `yaml:"shot_power"`
	Radius      float64 `yaml:"radius"`
	Mass        float64 `yaml:"mass"`
	Restitution float64 `yaml:"restitution"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
	// Debug logs per-cycle loop stats.
	Debug bool `yaml:"debug"`
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Tone       float64 `yaml:"tone"`
	Millis     int     `yaml:"millis"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Throw simulation",
			Width:      1024,
			Height:     640,
			Background: "#000000",
			Antialias:  true,
		},
		Scene: SceneConfig{
			PixelsPerMeter: 50,
			FontSize:       14,
			TextHeight:     20,
			ForceScale:     2,
			MomentumScale:  0.5,
			Cannon: CannonConfig{
				X:              60,
				Y:              -60,
				Length:         70,
				Width:          22,
				RecoilDistance: 12,
				RecoilSeconds:  0.25,
			},
		},
		Params: ParamsConfig{
			Gravity:     9.81,
			Density:     1.2,
			ShotPower:   40,
			Radius:      10,
			Mass:        2,
			Restitution: 0.6,
		},
		Rates: ParamsConfig{
			Gravity:     5,
			Density:     0.5,
			ShotPower:   20,
			Radius:      5,
			Mass:        2,
			Restitution: 0.25,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Tone:       220,
			Millis:     60,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("throwsim: config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("throwsim: config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make the simulation unusable.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("throwsim: config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if _, err := ParseHexColor(c.Window.Background); err != nil {
		return err
	}
	if c.Scene.TextHeight <= 0 {
		return fmt.Errorf("throwsim: config: text_height must be positive")
	}
	if c.Params.Mass <= 0 {
		return fmt.Errorf("throwsim: config: mass must be positive")
	}
	if c.Params.Restitution < 0 || c.Params.Restitution > 1 {
		return fmt.Errorf("throwsim: config: restitution %v outside [0, 1]", c.Params.Restitution)
	}
	if _, err := c.KeyTable(); err != nil {
		return err
	}
	if c.Audio.Enabled {
		if c.Audio.SampleRate <= 0 || c.Audio.Millis <= 0 {
			return fmt.Errorf("throwsim: config: audio sample_rate and millis must be positive")
		}
		if c.Audio.Tone <= 0 || c.Audio.Tone >= float64(c.Audio.SampleRate)/2 {
			return fmt.Errorf("throwsim: config: audio tone %v outside (0, %d)", c.Audio.Tone, c.Audio.SampleRate/2)
		}
	}
	return nil
}

// BackgroundColor returns the parsed window background, black when unset or
// invalid.
func (c *Config) BackgroundColor() Color {
	col, err := ParseHexColor(c.Window.Background)
	if err != nil {
		return ColorBlack
	}
	return col
}

// KeyTable returns DefaultKeyTable with the configured bindings applied on
// top.
func (c *Config) KeyTable() (KeyTable, error) {
	table := DefaultKeyTable()
	if len(c.Keys) == 0 {
		return table, nil
	}
	overrides, err := ParseKeyTable(c.Keys)
	if err != nil {
		return nil, err
	}
	for k, a := range overrides {
		table[k] = a
	}
	return table, nil
}

// StepRates converts Rates into per-parameter step rates.
func (c *Config) StepRates() StepRates {
	return c.Rates.array()
}

func (p ParamsConfig) array() [adjustableParams]float64 {
	return [adjustableParams]float64{
		ParamGravity:     p.Gravity,
		ParamDensity:     p.Density,
		ParamShotPower:   p.ShotPower,
		ParamRadius:      p.Radius,
		ParamMass:        p.Mass,
		ParamRestitution: p.Restitution,
	}
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("throwsim: color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("throwsim: color %q: %w", s, err)
	}
	return RGBA8(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
