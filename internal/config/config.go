// Package config handles loading the engine configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/nativemsg/internal/haptic"
	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/present"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "3s", "300ms", "1m", or integer milliseconds.
// A value of "0" or 0 means persist until hidden.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '3s', '300ms', '1m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the nativemsg configuration.
// Loaded from ~/.config/nativemsg/config.toml
type Config struct {
	Banner    BannerConfig    `toml:"banner"`
	Toast     ToastConfig     `toml:"toast"`
	Loading   LoadingConfig   `toml:"loading"`
	Animation AnimationConfig `toml:"animation"`
	Theme     ThemeConfig     `toml:"theme"`
	Locale    LocaleConfig    `toml:"locale"`
	Haptics   HapticsConfig   `toml:"haptics"`
}

// BannerConfig holds the default presentation options for banners.
type BannerConfig struct {
	DefaultDuration  Duration `toml:"default_duration"` // "0" persists
	Position         string   `toml:"position"`         // top, bottom, center
	Interactive      bool     `toml:"interactive"`
	Haptics          bool     `toml:"haptics"`
	DimBackground    bool     `toml:"dim_background"`
	CornerRadius     int      `toml:"corner_radius"`
	ShowActionButton bool     `toml:"show_action_button"`
}

// ToastConfig holds toast settings.
type ToastConfig struct {
	Duration Duration `toml:"duration"`
	Position string   `toml:"position"`
	Haptics  bool     `toml:"haptics"`
}

// LoadingConfig holds loading banner settings.
type LoadingConfig struct {
	DimBackground bool `toml:"dim_background"`
}

// AnimationConfig holds enter/exit timing.
type AnimationConfig struct {
	Enter           Duration `toml:"enter"`
	Exit            Duration `toml:"exit"`
	Frame           Duration `toml:"frame"`
	SpringFrequency float64  `toml:"spring_frequency"`
	SpringDamping   float64  `toml:"spring_damping"`
}

// ThemeConfig selects the theme.
type ThemeConfig struct {
	Name  string `toml:"name"`
	Watch bool   `toml:"watch"` // Reload the theme file when it changes
}

// LocaleConfig selects the string catalog.
type LocaleConfig struct {
	Language string `toml:"language"`
	Dir      string `toml:"dir"` // Optional directory of override catalogs
}

// HapticsConfig selects the haptics backend.
type HapticsConfig struct {
	Backend string      `toml:"backend"` // auto, audio, feedbackd, none
	Volume  int         `toml:"volume"`  // 0-100
	AppID   string      `toml:"app_id"`
	Sounds  SoundConfig `toml:"sounds"`
}

// SoundConfig maps signals to sound files.
type SoundConfig struct {
	Success string `toml:"success"`
	Warning string `toml:"warning"`
	Error   string `toml:"error"`
	Light   string `toml:"light"`
}

// Default returns a Config with default values.
func Default() *Config {
	banner := model.DefaultPresentationConfig()
	toast := model.DefaultToastConfig()
	anim := present.DefaultAnimationConfig()

	return &Config{
		Banner: BannerConfig{
			DefaultDuration:  Duration(banner.Duration),
			Position:         banner.Position.String(),
			Interactive:      banner.Interactive,
			Haptics:          banner.HapticEnabled,
			DimBackground:    banner.DimBackground,
			CornerRadius:     banner.CornerRadius,
			ShowActionButton: banner.ShowActionButton,
		},
		Toast: ToastConfig{
			Duration: Duration(toast.Duration),
			Position: toast.Position.String(),
		},
		Loading: LoadingConfig{
			DimBackground: true,
		},
		Animation: AnimationConfig{
			Enter:           Duration(anim.Enter),
			Exit:            Duration(anim.Exit),
			Frame:           Duration(anim.Frame),
			SpringFrequency: anim.Frequency,
			SpringDamping:   anim.Damping,
		},
		Theme: ThemeConfig{
			Name:  "default",
			Watch: true,
		},
		Locale: LocaleConfig{
			Language: "en",
		},
		Haptics: HapticsConfig{
			Backend: haptic.BackendAuto,
			Volume:  60,
			AppID:   haptic.DefaultAppID,
		},
	}
}

// DefaultPath returns the path to the config file.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "nativemsg", "config.toml"), nil
}

// Load loads the configuration from path.
// If the file doesn't exist, returns the default configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := model.ParsePosition(c.Banner.Position); err != nil {
		return fmt.Errorf("%w: banner: %v", ErrInvalid, err)
	}
	if _, err := model.ParsePosition(c.Toast.Position); err != nil {
		return fmt.Errorf("%w: toast: %v", ErrInvalid, err)
	}
	if c.Toast.Duration <= 0 {
		return fmt.Errorf("%w: toast duration must be positive, got %s", ErrInvalid, c.Toast.Duration.Duration())
	}
	if c.Banner.CornerRadius < 0 {
		return fmt.Errorf("%w: corner_radius must not be negative, got %d", ErrInvalid, c.Banner.CornerRadius)
	}

	if c.Animation.Enter < 0 || c.Animation.Exit < 0 {
		return fmt.Errorf("%w: animation durations must not be negative", ErrInvalid)
	}
	if f := c.Animation.Frame.Duration(); f < time.Millisecond || f > time.Second {
		return fmt.Errorf("%w: animation frame must be between 1ms and 1s, got %s", ErrInvalid, f)
	}
	if c.Animation.SpringFrequency <= 0 || c.Animation.SpringDamping <= 0 {
		return fmt.Errorf("%w: spring frequency and damping must be positive", ErrInvalid)
	}

	switch strings.ToLower(c.Haptics.Backend) {
	case haptic.BackendAuto, haptic.BackendAudio, haptic.BackendFeedbackd, haptic.BackendNone:
	default:
		return fmt.Errorf("%w: unknown haptics backend %q", ErrInvalid, c.Haptics.Backend)
	}
	if c.Haptics.Volume < 0 || c.Haptics.Volume > 100 {
		return fmt.Errorf("%w: volume must be between 0 and 100, got %d", ErrInvalid, c.Haptics.Volume)
	}

	return nil
}

// Defaults converts the file settings to engine presentation defaults.
// Call only on a validated config.
func (c *Config) Defaults() model.Defaults {
	bannerPos, _ := model.ParsePosition(c.Banner.Position)
	toastPos, _ := model.ParsePosition(c.Toast.Position)

	return model.Defaults{
		Banner: model.PresentationConfig{
			Duration:         c.Banner.DefaultDuration.Duration(),
			Position:         bannerPos,
			Interactive:      c.Banner.Interactive,
			HapticEnabled:    c.Banner.Haptics,
			DimBackground:    c.Banner.DimBackground,
			CornerRadius:     c.Banner.CornerRadius,
			ShowActionButton: c.Banner.ShowActionButton,
		},
		Toast: model.ToastConfig{
			Duration:      c.Toast.Duration.Duration(),
			Position:      toastPos,
			HapticEnabled: c.Toast.Haptics,
		},
		LoadingDim: c.Loading.DimBackground,
	}
}

// AnimationSettings converts the animation section for the presentation controller.
func (c *Config) AnimationSettings() present.AnimationConfig {
	return present.AnimationConfig{
		Enter:     c.Animation.Enter.Duration(),
		Exit:      c.Animation.Exit.Duration(),
		Frame:     c.Animation.Frame.Duration(),
		Frequency: c.Animation.SpringFrequency,
		Damping:   c.Animation.SpringDamping,
	}
}

// HapticSettings converts the haptics section for haptic.New.
func (c *Config) HapticSettings() haptic.Config {
	sounds := make(map[haptic.Signal]string)
	for sig, path := range map[haptic.Signal]string{
		haptic.Success: c.Haptics.Sounds.Success,
		haptic.Warning: c.Haptics.Sounds.Warning,
		haptic.Error:   c.Haptics.Sounds.Error,
		haptic.Light:   c.Haptics.Sounds.Light,
	} {
		if path != "" {
			sounds[sig] = expandPath(path)
		}
	}
	return haptic.Config{
		Backend: c.Haptics.Backend,
		Volume:  c.Haptics.Volume,
		Sounds:  sounds,
		AppID:   c.Haptics.AppID,
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
