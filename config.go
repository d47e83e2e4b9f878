package tenkai

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EngineConfig configures an Engine. Load it from a file with LoadConfig or
// start from DefaultConfig.
type EngineConfig struct {
	Title string `mapstructure:"title"`
	// Width and Height are the logical screen size when not fullscreen.
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	// Fullscreen sizes the screen to the window and re-lays out on resize.
	Fullscreen bool `mapstructure:"fullscreen"`
	// ShowHUD prints scale, offset and mouse position on repaint.
	ShowHUD bool `mapstructure:"show_hud"`
	// GlobalAlpha multiplies the alpha of everything drawn.
	GlobalAlpha float64 `mapstructure:"global_alpha"`

	// Initial view: offset and scale.
	X     float64 `mapstructure:"x"`
	Y     float64 `mapstructure:"y"`
	Scale float64 `mapstructure:"scale"`
	// MinScale and MaxScale bound zooming. Zero leaves a side unbounded.
	MinScale float64 `mapstructure:"min_scale"`
	MaxScale float64 `mapstructure:"max_scale"`
	// Scroll limits. Nil leaves a side unbounded.
	MinX *float64 `mapstructure:"min_x"`
	MinY *float64 `mapstructure:"min_y"`
	MaxX *float64 `mapstructure:"max_x"`
	MaxY *float64 `mapstructure:"max_y"`

	EnableScroll bool `mapstructure:"enable_scroll"`
	EnableZoom   bool `mapstructure:"enable_zoom"`
	// WheelStep converts one wheel notch to pixels of scroll.
	WheelStep float64 `mapstructure:"wheel_step"`

	// AssetRoot is the directory assets and audio paths are relative to.
	AssetRoot string `mapstructure:"asset_root"`
	// ScreenshotDir receives the PNGs queued with Engine.Screenshot.
	ScreenshotDir string `mapstructure:"screenshot_dir"`

	Log LogConfig `mapstructure:"log"`
}

// DefaultConfig returns the configuration used for unset keys.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		Title:         "tenkai",
		Width:         640,
		Height:        480,
		GlobalAlpha:   1,
		Scale:         1,
		WheelStep:     40,
		AssetRoot:     ".",
		ScreenshotDir: "screenshots",
		Log: LogConfig{
			Level:      "warn",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// LoadConfig reads an engine configuration from path (yaml, json or toml by
// extension). An empty path uses only defaults and the environment.
// TENKAI_* variables override file values, with "." in nested keys written
// as "_" (TENKAI_LOG_LEVEL).
func LoadConfig(path string) (EngineConfig, error) {
	v := viper.New()
	setConfigDefaults(v, DefaultConfig())
	v.SetEnvPrefix("TENKAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return EngineConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg EngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}

// Validate reports values the engine cannot run with.
func (c EngineConfig) Validate() error {
	switch {
	case !c.Fullscreen && (c.Width <= 0 || c.Height <= 0):
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Scale <= 0:
		return fmt.Errorf("%w: scale %v", ErrInvalidConfig, c.Scale)
	case c.MinScale < 0 || c.MaxScale < 0:
		return fmt.Errorf("%w: negative scale bound", ErrInvalidConfig)
	case c.MaxScale > 0 && c.MinScale > c.MaxScale:
		return fmt.Errorf("%w: min_scale %v above max_scale %v", ErrInvalidConfig, c.MinScale, c.MaxScale)
	case c.GlobalAlpha < 0 || c.GlobalAlpha > 1:
		return fmt.Errorf("%w: global_alpha %v", ErrInvalidConfig, c.GlobalAlpha)
	}
	return nil
}

func setConfigDefaults(v *viper.Viper, d EngineConfig) {
	v.SetDefault("title", d.Title)
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("fullscreen", d.Fullscreen)
	v.SetDefault("show_hud", d.ShowHUD)
	v.SetDefault("global_alpha", d.GlobalAlpha)
	v.SetDefault("x", d.X)
	v.SetDefault("y", d.Y)
	v.SetDefault("scale", d.Scale)
	v.SetDefault("min_scale", d.MinScale)
	v.SetDefault("max_scale", d.MaxScale)
	v.SetDefault("enable_scroll", d.EnableScroll)
	v.SetDefault("enable_zoom", d.EnableZoom)
	v.SetDefault("wheel_step", d.WheelStep)
	v.SetDefault("asset_root", d.AssetRoot)
	v.SetDefault("screenshot_dir", d.ScreenshotDir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("log.json", d.Log.JSON)
	for _, key := range []string{"min_x", "min_y", "max_x", "max_y"} {
		_ = v.BindEnv(key)
	}
}
