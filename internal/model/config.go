package model

import (
	"fmt"
	"strings"
	"time"
)

// Persist as a duration keeps the message until it is explicitly hidden.
const Persist time.Duration = 0

// Position anchors a message on screen.
type Position int

const (
	Top Position = iota
	Bottom
	Center
)

// String returns the string representation of Position.
func (p Position) String() string {
	switch p {
	case Bottom:
		return "bottom"
	case Center:
		return "center"
	default:
		return "top"
	}
}

// ParsePosition parses a position name.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "":
		return Top, nil
	case "bottom":
		return Bottom, nil
	case "center", "centre":
		return Center, nil
	default:
		return Top, fmt.Errorf("invalid position %q (want top, bottom or center)", s)
	}
}

// PresentationConfig controls how a message is shown.
type PresentationConfig struct {
	Duration         time.Duration // >0 auto-dismisses; <=0 persists
	Position         Position
	Interactive      bool // Tap to dismiss
	HapticEnabled    bool
	DimBackground    bool
	CornerRadius     int // Logical units; 0 draws square corners
	ShowActionButton bool
}

// DefaultPresentationConfig returns the banner defaults.
func DefaultPresentationConfig() PresentationConfig {
	return PresentationConfig{
		Duration:      3 * time.Second,
		Position:      Top,
		Interactive:   true,
		HapticEnabled: true,
		CornerRadius:  12,
	}
}

// Persistent reports whether the message stays until hidden.
func (c PresentationConfig) Persistent() bool {
	return c.Duration <= 0
}

// ToastConfig is the lightweight variant used by toasts: no dimming and no
// action button.
type ToastConfig struct {
	Duration      time.Duration
	Position      Position
	HapticEnabled bool
}

// DefaultToastConfig returns the toast defaults.
func DefaultToastConfig() ToastConfig {
	return ToastConfig{Duration: 2 * time.Second, Position: Bottom}
}

// Presentation expands the toast config to a full PresentationConfig.
func (t ToastConfig) Presentation() PresentationConfig {
	d := t.Duration
	if d <= 0 {
		d = DefaultToastConfig().Duration
	}
	return PresentationConfig{
		Duration:      d,
		Position:      t.Position,
		Interactive:   true,
		HapticEnabled: t.HapticEnabled,
		CornerRadius:  PillRadius,
	}
}

// PillRadius requests fully rounded ends.
const PillRadius = 999

// Option adjusts a PresentationConfig.
type Option func(*PresentationConfig)

// WithDuration sets the auto-dismiss delay. Zero or negative persists.
func WithDuration(d time.Duration) Option {
	return func(c *PresentationConfig) { c.Duration = d }
}

// WithPersist keeps the message until explicitly hidden.
func WithPersist() Option {
	return WithDuration(Persist)
}

// WithPosition sets the anchor position.
func WithPosition(p Position) Option {
	return func(c *PresentationConfig) { c.Position = p }
}

// WithInteractive enables or disables tap-to-dismiss.
func WithInteractive(v bool) Option {
	return func(c *PresentationConfig) { c.Interactive = v }
}

// WithHaptics enables or disables haptic feedback.
func WithHaptics(v bool) Option {
	return func(c *PresentationConfig) { c.HapticEnabled = v }
}

// WithDim enables or disables the dimming overlay.
func WithDim(v bool) Option {
	return func(c *PresentationConfig) { c.DimBackground = v }
}

// WithCornerRadius sets the corner radius in logical units.
func WithCornerRadius(r int) Option {
	return func(c *PresentationConfig) { c.CornerRadius = r }
}

// WithActionButton shows the action button area.
func WithActionButton(v bool) Option {
	return func(c *PresentationConfig) { c.ShowActionButton = v }
}

// BuildConfig applies kind defaults and then opts to base. Loading persists
// and blocks tap-to-dismiss unless an option overrides it.
func BuildConfig(base PresentationConfig, kind Kind, opts ...Option) PresentationConfig {
	c := base
	if kind == Loading {
		c.Duration = Persist
		c.Interactive = false
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.CornerRadius < 0 {
		c.CornerRadius = 0
	}
	return c
}

// Defaults are the engine-wide presentation defaults, typically loaded from
// the config file.
type Defaults struct {
	Banner     PresentationConfig
	Toast      ToastConfig
	LoadingDim bool
}

// DefaultDefaults returns the built-in defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Banner:     DefaultPresentationConfig(),
		Toast:      DefaultToastConfig(),
		LoadingDim: true,
	}
}
