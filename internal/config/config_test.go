package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Tray: TrayConfig{
			Radius:              120,
			ImpulseSpeed:        500,
			AngularImpulse:      0.5,
			SpinThreshold:       0.5,
			FaceRefreshInterval: 50 * time.Millisecond,
			Width:               1170,
			Height:              2532,
		},
		Haptics: HapticsConfig{Enabled: true, Interval: 50 * time.Millisecond, LightIntensity: 0.75},
		Motion:  MotionConfig{ShakeThreshold: 3, ShakeCooldown: 70 * time.Millisecond},
		Sim: SimConfig{
			FrameRate:      60,
			Mass:           0.05,
			Inertia:        0.02,
			LinearDamping:  5,
			AngularDamping: 3.5,
			Restitution:    1,
			RestSpeed:      1,
			RestSpin:       0.01,
		},
		Settings: SettingsConfig{Path: "prefs.yaml"},
	}
}

func TestValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestDefault_MatchesReferenceTuning(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 120.0, cfg.Tray.Radius)
	assert.Equal(t, 500.0, cfg.Tray.ImpulseSpeed)
	assert.Equal(t, 0.5, cfg.Tray.AngularImpulse)
	assert.Equal(t, 0.5, cfg.Tray.SpinThreshold)
	assert.Equal(t, 50*time.Millisecond, cfg.Tray.FaceRefreshInterval)
	assert.Equal(t, 50*time.Millisecond, cfg.Haptics.Interval)
	assert.Equal(t, 70*time.Millisecond, cfg.Motion.ShakeCooldown)
	assert.Equal(t, 60, cfg.Sim.FrameRate)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
tray:
  radius: 90
  face_refresh_interval: 40ms
sim:
  frame_rate: 120
settings:
  path: /tmp/prefs.yaml
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 90.0, cfg.Tray.Radius)
	assert.Equal(t, 40*time.Millisecond, cfg.Tray.FaceRefreshInterval)
	assert.Equal(t, 500.0, cfg.Tray.ImpulseSpeed, "unset keys keep defaults")
	assert.Equal(t, 120, cfg.Sim.FrameRate)
	assert.Equal(t, "/tmp/prefs.yaml", cfg.Settings.Path)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DICE_TRAY_IMPULSE_SPEED", "650")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 650.0, cfg.Tray.ImpulseSpeed)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestValidate_Tray(t *testing.T) {
	cfg := validConfig()
	cfg.Tray.Radius = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Tray.Width = 100
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Tray.FaceRefreshInterval = -time.Millisecond
	assert.Error(t, cfg.Validate())
}

func TestValidate_Haptics(t *testing.T) {
	cfg := validConfig()
	cfg.Haptics.LightIntensity = 1.5
	assert.Error(t, cfg.Validate())
}

func TestValidate_Motion(t *testing.T) {
	cfg := validConfig()
	cfg.Motion.ShakeThreshold = 0
	assert.Error(t, cfg.Validate())
}

func TestValidate_Sim(t *testing.T) {
	cfg := validConfig()
	cfg.Sim.Mass = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Sim.Restitution = 2
	assert.Error(t, cfg.Validate())
}

func TestValidate_SettingsPath(t *testing.T) {
	cfg := validConfig()
	cfg.Settings.Path = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Sim.FrameRate = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "sim.frame_rate")
}

func TestValidateLogging(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestProperty_FrameRateRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rate := rapid.IntRange(-100, 2000).Draw(rt, "rate")
		cfg := validConfig()
		cfg.Sim.FrameRate = rate
		err := cfg.Validate()
		if rate >= 1 && rate <= 1000 {
			assert.NoError(rt, err)
		} else {
			assert.Error(rt, err)
		}
	})
}
