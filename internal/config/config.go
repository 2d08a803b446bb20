// Package config layers wellplot settings: defaults, an optional config
// file, WELLPLOT_* environment variables and finally command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gogpu/welllog"
	"github.com/gogpu/welllog/model"
	"github.com/gogpu/welllog/viewport"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable names, so "render.dpr"
// is read from WELLPLOT_RENDER_DPR.
const EnvPrefix = "WELLPLOT"

// Config is the resolved CLI configuration.
type Config struct {
	Debug bool   `mapstructure:"debug"`
	DB    string `mapstructure:"db"`

	Render RenderConfig `mapstructure:"render"`
	Zoom   ZoomConfig   `mapstructure:"zoom"`
	Watch  WatchConfig  `mapstructure:"watch"`
}

// RenderConfig holds panel geometry and output settings.
type RenderConfig struct {
	DPR            float64 `mapstructure:"dpr"`
	Height         float64 `mapstructure:"height"`
	MinimumHeight  float64 `mapstructure:"minimumHeight"`
	TrackWidth     float64 `mapstructure:"trackWidth"`
	RulerWidth     float64 `mapstructure:"rulerWidth"`
	CurvesPerTrack int     `mapstructure:"curvesPerTrack"`
	Order          string  `mapstructure:"order"`
	Out            string  `mapstructure:"out"`
}

// ZoomConfig holds zoom limits in pixels per depth unit.
type ZoomConfig struct {
	Min     float64 `mapstructure:"min"`
	Max     float64 `mapstructure:"max"`
	Factor  float64 `mapstructure:"factor"`
	Default float64 `mapstructure:"default"`
}

// WatchConfig holds snapshot watch settings.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("db", "")

	v.SetDefault("render.dpr", 1.0)
	v.SetDefault("render.height", 600.0)
	v.SetDefault("render.minimumHeight", 500.0)
	v.SetDefault("render.trackWidth", 160.0)
	v.SetDefault("render.rulerWidth", 64.0)
	v.SetDefault("render.curvesPerTrack", 3)
	v.SetDefault("render.order", "declared")
	v.SetDefault("render.out", "well.png")

	l := viewport.DefaultLimits()
	v.SetDefault("zoom.min", l.MinZoom)
	v.SetDefault("zoom.max", l.MaxZoom)
	v.SetDefault("zoom.factor", l.ZoomFactor)
	v.SetDefault("zoom.default", l.DefaultZoom)

	v.SetDefault("watch.debounce", "150ms")
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v. An explicit path must exist; without
// one, wellplot.{yaml,json,toml} is searched in the working directory and
// $HOME/.config/wellplot, and a missing file is not an error.
func Load(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("wellplot")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wellplot")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// BindFlags makes flags override file and environment values. Keys map
// config keys to flag names; flags not present in fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: bind --%s: %w", name, err)
		}
	}
	return nil
}

// Resolve decodes v into a Config and validates it.
func Resolve(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("config: decode: %w", err)
	}
	if _, err := c.CurveOrder(); err != nil {
		return c, err
	}
	if c.Render.CurvesPerTrack < 1 {
		return c, fmt.Errorf("config: render.curvesPerTrack must be >= 1, got %d", c.Render.CurvesPerTrack)
	}
	return c, nil
}

// CurveOrder parses render.order.
func (c Config) CurveOrder() (model.CurveOrder, error) {
	switch strings.ToLower(c.Render.Order) {
	case "", "declared":
		return model.OrderDeclared, nil
	case "alpha", "alphabetical":
		return model.OrderAlphabetical, nil
	default:
		return model.OrderDeclared, fmt.Errorf("config: unknown render.order %q", c.Render.Order)
	}
}

// Limits returns the configured zoom limits.
func (c Config) Limits() viewport.Limits {
	return viewport.Limits{
		MinZoom:     c.Zoom.Min,
		MaxZoom:     c.Zoom.Max,
		ZoomFactor:  c.Zoom.Factor,
		DefaultZoom: c.Zoom.Default,
	}
}

// PanelOptions converts the render settings into panel options.
func (c Config) PanelOptions() []welllog.Option {
	order, _ := c.CurveOrder()
	return []welllog.Option{
		welllog.WithViewportHeight(c.Render.Height),
		welllog.WithMinimumHeight(c.Render.MinimumHeight),
		welllog.WithTrackWidth(c.Render.TrackWidth),
		welllog.WithRulerWidth(c.Render.RulerWidth),
		welllog.WithCurvesPerTrack(c.Render.CurvesPerTrack),
		welllog.WithCurveOrder(order),
		welllog.WithZoomLimits(c.Limits()),
	}
}
