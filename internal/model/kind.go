// Package model defines the message kinds, presentation options and resolved
// presentation specs used by the native messages engine.
package model

import (
	"github.com/jmylchreest/nativemsg/internal/haptic"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

// Kind is the closed set of message kinds: a Standard kind or a Custom one.
type Kind interface {
	String() string
	isKind()
}

// Standard is one of the built-in message kinds.
type Standard uint8

const (
	Success Standard = iota
	Error
	Warning
	Info
	Loading
)

func (Standard) isKind() {}

// String returns the string representation of the kind.
func (k Standard) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Loading:
		return "loading"
	default:
		return "info"
	}
}

// Token returns the semantic colour token for the kind.
func (k Standard) Token() theme.Token {
	switch k {
	case Success:
		return theme.TokenSuccess
	case Error:
		return theme.TokenError
	case Warning:
		return theme.TokenWarning
	case Loading:
		return theme.TokenLoading
	default:
		return theme.TokenInfo
	}
}

// Icon returns the fixed icon for the kind.
func (k Standard) Icon() Icon {
	switch k {
	case Success:
		return IconSuccess
	case Error:
		return IconError
	case Warning:
		return IconWarning
	case Loading:
		return IconLoading
	default:
		return IconInfo
	}
}

// Haptic returns the fixed haptic signal for the kind.
func (k Standard) Haptic() haptic.Signal {
	switch k {
	case Success:
		return haptic.Success
	case Error:
		return haptic.Error
	case Warning:
		return haptic.Warning
	case Info:
		return haptic.Light
	default:
		return haptic.None
	}
}

// Custom is a caller-defined kind carrying its own colour tokens and icon.
// Empty or unresolvable fields fall back to info visuals.
type Custom struct {
	Background theme.Token
	Text       theme.Token
	Icon       Icon
}

func (Custom) isKind() {}

// String returns the string representation of the kind.
func (Custom) String() string { return "custom" }

// ParseKind parses a standard kind name.
func ParseKind(s string) (Standard, bool) {
	for _, k := range []Standard{Success, Error, Warning, Info, Loading} {
		if k.String() == s {
			return k, true
		}
	}
	return Info, false
}

// Icon is a glyph drawn in the leading icon cell.
type Icon string

const (
	IconNone    Icon = ""
	IconSuccess Icon = "✔"
	IconError   Icon = "✖"
	IconWarning Icon = "⚠"
	IconInfo    Icon = "ℹ"
	IconLoading Icon = "◌" // Replaced by the spinner while animating
	IconStar    Icon = "★"
	IconBell    Icon = "🔔"
	IconLock    Icon = "🔒"
	IconCloud   Icon = "☁"
)
