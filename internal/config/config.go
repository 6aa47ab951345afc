package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/matrixrain/internal/registry"
)

const (
	DefaultSpeedMs   = 50
	DefaultGlyphSize = 20
	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultFrameMs   = 16
	DefaultAlphabet  = "katakana"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	SpeedMs     int               `yaml:"speed_ms"`
	Quality     string            `yaml:"quality"`
	Theme       string            `yaml:"theme"`
	Seed        int64             `yaml:"seed"`
	GlyphSize   int               `yaml:"glyph_size"`
	Font        string            `yaml:"font"`
	Alphabet    string            `yaml:"alphabet"`
	LogFile     string            `yaml:"log_file"`
	Surface     SurfaceConfig     `yaml:"surface"`
	TUI         TUIConfig         `yaml:"tui"`
	Framebuffer FramebufferConfig `yaml:"framebuffer"`
	Record      RecordConfig      `yaml:"record"`
	Bench       BenchConfig       `yaml:"bench"`
}

// SurfaceConfig sizes the window and headless surfaces.
type SurfaceConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type TUIConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
	FrameMs    int `yaml:"frame_ms"`
}

type FramebufferConfig struct {
	Device    string `yaml:"device"`
	InputGlob string `yaml:"input_glob"`
	FrameMs   int    `yaml:"frame_ms"`
	// Width/Height of the logical surface; 0 uses the device size.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type RecordConfig struct {
	Frames     int    `yaml:"frames"`
	IntervalMs int    `yaml:"interval_ms"`
	Output     string `yaml:"output"`
	Scale      int    `yaml:"scale"`
}

type BenchConfig struct {
	DurationMs int `yaml:"duration_ms"`
	VsyncMs    int `yaml:"vsync_ms"`
	// LoadPerColumnUs adds simulated cost per column per frame.
	LoadPerColumnUs int `yaml:"load_per_column_us"`
}

func DefaultConfig() *Config {
	return &Config{
		SpeedMs:   DefaultSpeedMs,
		Quality:   "high",
		Theme:     "matrix",
		GlyphSize: DefaultGlyphSize,
		Alphabet:  DefaultAlphabet,
		Surface: SurfaceConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		TUI: TUIConfig{
			CellWidth:  8,
			CellHeight: 16,
			FrameMs:    DefaultFrameMs,
		},
		Framebuffer: FramebufferConfig{
			Device:    "/dev/fb0",
			InputGlob: "/dev/input/event*",
			FrameMs:   DefaultFrameMs,
		},
		Record: RecordConfig{
			Frames:     120,
			IntervalMs: DefaultFrameMs,
			Output:     "rain.gif",
			Scale:      1,
		},
		Bench: BenchConfig{
			DurationMs: 10000,
			VsyncMs:    DefaultFrameMs,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks names and ranges. Speed outside [16, 200] is not an error;
// it is clamped when the engine starts.
func (c *Config) Validate() error {
	if _, err := registry.ParseLevel(c.Quality); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := registry.ParseTheme(c.Theme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.SpeedMs <= 0 {
		return fmt.Errorf("%w: speed_ms must be positive, got %d", ErrInvalid, c.SpeedMs)
	}
	if c.GlyphSize <= 0 {
		return fmt.Errorf("%w: glyph_size must be positive, got %d", ErrInvalid, c.GlyphSize)
	}
	if c.Surface.Width < 0 || c.Surface.Height < 0 {
		return fmt.Errorf("%w: negative surface size %dx%d", ErrInvalid, c.Surface.Width, c.Surface.Height)
	}
	if c.TUI.CellWidth <= 0 || c.TUI.CellHeight <= 0 {
		return fmt.Errorf("%w: tui cell size must be positive", ErrInvalid)
	}
	if c.Record.Frames <= 0 || c.Record.IntervalMs <= 0 {
		return fmt.Errorf("%w: record frames and interval_ms must be positive", ErrInvalid)
	}
	if c.Record.Scale <= 0 {
		return fmt.Errorf("%w: record scale must be positive", ErrInvalid)
	}
	if c.Bench.DurationMs <= 0 || c.Bench.VsyncMs <= 0 {
		return fmt.Errorf("%w: bench duration_ms and vsync_ms must be positive", ErrInvalid)
	}
	return nil
}

// Level returns the parsed quality; call Validate first.
func (c *Config) Level() registry.Level {
	l, _ := registry.ParseLevel(c.Quality)
	return l
}

// ThemeValue returns the parsed theme; call Validate first.
func (c *Config) ThemeValue() registry.Theme {
	t, _ := registry.ParseTheme(c.Theme)
	return t
}

func (c *Config) Speed() time.Duration {
	return time.Duration(c.SpeedMs) * time.Millisecond
}

// SeedOrNow returns Seed, or a time-based seed when Seed is 0.
func (c *Config) SeedOrNow() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func (c TUIConfig) FrameInterval() time.Duration         { return ms(c.FrameMs) }
func (c FramebufferConfig) FrameInterval() time.Duration { return ms(c.FrameMs) }
func (c RecordConfig) Interval() time.Duration           { return ms(c.IntervalMs) }
func (c BenchConfig) Duration() time.Duration            { return ms(c.DurationMs) }
func (c BenchConfig) Vsync() time.Duration               { return ms(c.VsyncMs) }

func (c BenchConfig) LoadPerColumn() time.Duration {
	return time.Duration(c.LoadPerColumnUs) * time.Microsecond
}
