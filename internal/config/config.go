// Package config provides Viper-based configuration loading for the dice tray.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// TrayConfig sizes the tray and tunes the roll model.
type TrayConfig struct {
	Radius              float64       `mapstructure:"radius"`
	ImpulseSpeed        float64       `mapstructure:"impulse_speed"`
	AngularImpulse      float64       `mapstructure:"angular_impulse"`
	SpinThreshold       float64       `mapstructure:"spin_threshold"`
	FaceRefreshInterval time.Duration `mapstructure:"face_refresh_interval"`
	Width               float64       `mapstructure:"width"`
	Height              float64       `mapstructure:"height"`
}

// HapticsConfig holds vibration settings.
type HapticsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Interval is the minimum spacing between pulses of one style.
	Interval       time.Duration `mapstructure:"interval"`
	LightIntensity float64       `mapstructure:"light_intensity"`
}

// MotionConfig holds shake detection settings.
type MotionConfig struct {
	// ShakeThreshold is the acceleration magnitude, in g, that counts as a shake.
	ShakeThreshold float64       `mapstructure:"shake_threshold"`
	ShakeCooldown  time.Duration `mapstructure:"shake_cooldown"`
}

// SimConfig tunes the headless substrate.
type SimConfig struct {
	FrameRate      int     `mapstructure:"frame_rate"`
	Mass           float64 `mapstructure:"mass"`
	Inertia        float64 `mapstructure:"inertia"`
	LinearDamping  float64 `mapstructure:"linear_damping"`
	AngularDamping float64 `mapstructure:"angular_damping"`
	Restitution    float64 `mapstructure:"restitution"`
	RestSpeed      float64 `mapstructure:"rest_speed"`
	RestSpin       float64 `mapstructure:"rest_spin"`
}

// ContentConfig points at optional content directories.
type ContentConfig struct {
	// SkinsDir, when set, holds skin YAML files that extend or override the built-ins.
	SkinsDir string `mapstructure:"skins_dir"`
}

// SettingsConfig locates the user preferences file.
type SettingsConfig struct {
	Path string `mapstructure:"path"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Tray     TrayConfig     `mapstructure:"tray"`
	Haptics  HapticsConfig  `mapstructure:"haptics"`
	Motion   MotionConfig   `mapstructure:"motion"`
	Sim      SimConfig      `mapstructure:"sim"`
	Content  ContentConfig  `mapstructure:"content"`
	Settings SettingsConfig `mapstructure:"settings"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string
	for _, err := range []error{
		validateLogging(c.Logging),
		validateTray(c.Tray),
		validateHaptics(c.Haptics),
		validateMotion(c.Motion),
		validateSim(c.Sim),
		validateSettings(c.Settings),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateTray(t TrayConfig) error {
	var errs []string
	if t.Radius <= 0 {
		errs = append(errs, fmt.Sprintf("tray.radius must be > 0, got %g", t.Radius))
	}
	if t.ImpulseSpeed <= 0 {
		errs = append(errs, fmt.Sprintf("tray.impulse_speed must be > 0, got %g", t.ImpulseSpeed))
	}
	if t.SpinThreshold < 0 {
		errs = append(errs, "tray.spin_threshold must not be negative")
	}
	if t.FaceRefreshInterval < 0 {
		errs = append(errs, "tray.face_refresh_interval must not be negative")
	}
	if t.Width < 2*t.Radius || t.Height < 2*t.Radius {
		errs = append(errs, "tray.width and tray.height must fit one die (>= 2*radius)")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateHaptics(h HapticsConfig) error {
	var errs []string
	if h.Interval < 0 {
		errs = append(errs, "haptics.interval must not be negative")
	}
	if h.LightIntensity < 0 || h.LightIntensity > 1 {
		errs = append(errs, fmt.Sprintf("haptics.light_intensity must be 0-1, got %g", h.LightIntensity))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateMotion(m MotionConfig) error {
	if m.ShakeThreshold <= 0 {
		return fmt.Errorf("motion.shake_threshold must be > 0, got %g", m.ShakeThreshold)
	}
	if m.ShakeCooldown < 0 {
		return errors.New("motion.shake_cooldown must not be negative")
	}
	return nil
}

func validateSim(s SimConfig) error {
	var errs []string
	if s.FrameRate < 1 || s.FrameRate > 1000 {
		errs = append(errs, fmt.Sprintf("sim.frame_rate must be 1-1000, got %d", s.FrameRate))
	}
	if s.Mass <= 0 {
		errs = append(errs, "sim.mass must be > 0")
	}
	if s.Inertia <= 0 {
		errs = append(errs, "sim.inertia must be > 0")
	}
	if s.LinearDamping < 0 || s.AngularDamping < 0 {
		errs = append(errs, "sim damping must not be negative")
	}
	if s.Restitution < 0 || s.Restitution > 1 {
		errs = append(errs, fmt.Sprintf("sim.restitution must be 0-1, got %g", s.Restitution))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSettings(s SettingsConfig) error {
	if s.Path == "" {
		return errors.New("settings.path must not be empty")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with DICE_ prefix
	v.SetEnvPrefix("DICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the validated default configuration.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic("config: defaults are invalid: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("tray.radius", 120.0)
	v.SetDefault("tray.impulse_speed", 500.0)
	v.SetDefault("tray.angular_impulse", 0.5)
	v.SetDefault("tray.spin_threshold", 0.5)
	v.SetDefault("tray.face_refresh_interval", "50ms")
	v.SetDefault("tray.width", 1170.0)
	v.SetDefault("tray.height", 2532.0)

	v.SetDefault("haptics.enabled", true)
	v.SetDefault("haptics.interval", "50ms")
	v.SetDefault("haptics.light_intensity", 0.75)

	v.SetDefault("motion.shake_threshold", 3.0)
	v.SetDefault("motion.shake_cooldown", "70ms")

	v.SetDefault("sim.frame_rate", 60)
	v.SetDefault("sim.mass", 0.05)
	v.SetDefault("sim.inertia", 0.02)
	v.SetDefault("sim.linear_damping", 5.0)
	v.SetDefault("sim.angular_damping", 3.5)
	v.SetDefault("sim.restitution", 1.0)
	v.SetDefault("sim.rest_speed", 1.0)
	v.SetDefault("sim.rest_spin", 0.01)

	v.SetDefault("content.skins_dir", "")

	v.SetDefault("settings.path", "dicetray-settings.yaml")
}
