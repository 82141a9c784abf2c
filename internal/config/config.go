package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/AliArsal1512/clarifai-app/internal/diagram"
)

const appName = "astview"

// Config holds astview configuration.
type Config struct {
	View      ViewConfig      `toml:"view"`
	Layout    LayoutConfig    `toml:"layout"`
	Viewport  ViewportConfig  `toml:"viewport"`
	Animation AnimationConfig `toml:"animation"`
	Log       LogConfig       `toml:"log"`
	Export    ExportConfig    `toml:"export"`
}

// ViewConfig picks the initial view mode and theme.
type ViewConfig struct {
	Mode  string `toml:"mode"`  // "compressed", "full"
	Theme string `toml:"theme"` // "light", "dark"
}

type LayoutConfig struct {
	MinColumnWidth       float64 `toml:"min_column_width"`
	Padding              float64 `toml:"padding"`
	FontSize             float64 `toml:"font_size"`
	RowHeight            float64 `toml:"row_height"`
	SiblingSeparation    float64 `toml:"sibling_separation"`
	NonSiblingSeparation float64 `toml:"non_sibling_separation"`
	MeasureCache         int     `toml:"measure_cache"`
}

type ViewportConfig struct {
	MinScale float64 `toml:"min_scale"`
	MaxScale float64 `toml:"max_scale"`
	ZoomStep float64 `toml:"zoom_step"`
	Margin   float64 `toml:"margin"`
}

type AnimationConfig struct {
	DurationMS int `toml:"duration_ms"`
	FPS        int `toml:"fps"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ExportConfig controls PNG and text exports.
type ExportConfig struct {
	SaveDirectory string  `toml:"save_directory"`
	Margin        float64 `toml:"margin"`
}

// Default returns the default configuration.
func Default() *Config {
	layout := diagram.DefaultLayoutConfig()
	viewport := diagram.DefaultViewportConfig()
	return &Config{
		View: ViewConfig{Mode: "compressed", Theme: "light"},
		Layout: LayoutConfig{
			MinColumnWidth:       layout.MinColumnWidth,
			Padding:              layout.Padding,
			FontSize:             layout.FontSize,
			RowHeight:            layout.RowHeight,
			SiblingSeparation:    layout.SiblingSeparation,
			NonSiblingSeparation: layout.NonSiblingSeparation,
			MeasureCache:         4096,
		},
		Viewport: ViewportConfig{
			MinScale: viewport.MinScale,
			MaxScale: viewport.MaxScale,
			ZoomStep: viewport.ZoomStep,
			Margin:   viewport.Margin,
		},
		Animation: AnimationConfig{DurationMS: 750, FPS: 30},
		Log:       LogConfig{Level: "info"},
		Export:    ExportConfig{Margin: 24},
	}
}

// ConfigDir returns the astview config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// Path is the default config file location.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, or the default location when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks values that would break layout or zooming.
func (c *Config) Validate() error {
	if _, err := diagram.ParseMode(c.View.Mode); err != nil {
		return err
	}
	if _, err := diagram.ParseTheme(c.View.Theme); err != nil {
		return err
	}
	if c.Layout.FontSize <= 0 {
		return fmt.Errorf("layout.font_size must be positive, got %v", c.Layout.FontSize)
	}
	if c.Layout.RowHeight <= 0 {
		return fmt.Errorf("layout.row_height must be positive, got %v", c.Layout.RowHeight)
	}
	if c.Viewport.MinScale <= 0 || c.Viewport.MaxScale < c.Viewport.MinScale {
		return fmt.Errorf("viewport scale range [%v, %v] is empty", c.Viewport.MinScale, c.Viewport.MaxScale)
	}
	if c.Viewport.ZoomStep <= 1 {
		return fmt.Errorf("viewport.zoom_step must be greater than 1, got %v", c.Viewport.ZoomStep)
	}
	if c.Animation.DurationMS < 0 {
		return fmt.Errorf("animation.duration_ms must not be negative")
	}
	return nil
}

// DiagramOptions converts the config into engine options. Measurer and
// Logger are left for the caller.
func (c *Config) DiagramOptions() (diagram.Options, error) {
	opts := diagram.DefaultOptions()
	mode, err := diagram.ParseMode(c.View.Mode)
	if err != nil {
		return opts, err
	}
	theme, err := diagram.ParseTheme(c.View.Theme)
	if err != nil {
		return opts, err
	}
	opts.Mode = mode
	opts.Theme = theme
	opts.Layout = diagram.LayoutConfig{
		MinColumnWidth:       c.Layout.MinColumnWidth,
		Padding:              c.Layout.Padding,
		FontSize:             c.Layout.FontSize,
		RowHeight:            c.Layout.RowHeight,
		SiblingSeparation:    c.Layout.SiblingSeparation,
		NonSiblingSeparation: c.Layout.NonSiblingSeparation,
	}
	opts.Viewport = diagram.ViewportConfig{
		MinScale: c.Viewport.MinScale,
		MaxScale: c.Viewport.MaxScale,
		ZoomStep: c.Viewport.ZoomStep,
		Margin:   c.Viewport.Margin,
	}
	opts.AnimationDuration = c.AnimationDuration()
	return opts, nil
}

func (c *Config) AnimationDuration() time.Duration {
	return time.Duration(c.Animation.DurationMS) * time.Millisecond
}

// FrameInterval is the delay between animation ticks.
func (c *Config) FrameInterval() time.Duration {
	fps := c.Animation.FPS
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

// GetSavePath places filename in the export directory when one is set.
// Absolute filenames are used as given.
func (c *Config) GetSavePath(filename string) (string, error) {
	dir := c.Export.SaveDirectory
	if dir == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create save directory: %w", err)
	}
	return filepath.Join(dir, filename), nil
}
