package model

import (
	"github.com/jmylchreest/nativemsg/internal/haptic"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

// Font sizes in points used when resolving fonts.
const (
	TitleSize  = 17
	BodySize   = 15
	ButtonSize = 16
)

// builtinColors render a message when the theme cannot resolve a token.
var builtinColors = map[theme.Token]theme.Color{
	theme.TokenSuccess:     "#2E7D32",
	theme.TokenError:       "#C62828",
	theme.TokenWarning:     "#EF6C00",
	theme.TokenInfo:        "#1565C0",
	theme.TokenLoading:     "#37474F",
	theme.TokenOnAccent:    "#FFFFFF",
	theme.TokenSurface:     "#263238",
	theme.TokenText:        "#ECEFF1",
	theme.TokenMuted:       "#90A4AE",
	theme.TokenBorder:      "#546E7A",
	theme.TokenOverlay:     "#000000",
	theme.TokenBackdrop:    "#101418",
	theme.TokenPrimary:     "#1E88E5",
	theme.TokenDestructive: "#E53935",
	theme.TokenNeutral:     "#455A64",
	theme.TokenToast:       "#37474F",
	theme.TokenToastText:   "#FAFAFA",
	theme.TokenProgress:    "#81D4FA",
}

// Color resolves token through r, falling back to the built-in palette.
// The second result is false when the built-in palette was used.
func Color(r theme.Resolver, token theme.Token) (theme.Color, bool) {
	if r != nil {
		if c, ok := r.ResolveColor(token); ok {
			return c, true
		}
	}
	if c, ok := builtinColors[token]; ok {
		return c, false
	}
	return builtinColors[theme.TokenInfo], false
}

// Spec is a fully resolved presentation: the input tuple plus the colours,
// icon, fonts and haptic signal derived from it. Specs are values; resolving
// never mutates anything.
type Spec struct {
	ID     ID
	Title  string
	Body   string
	Kind   Kind
	Config PresentationConfig

	Background theme.Color
	Foreground theme.Color
	Icon       Icon
	Spinner    bool // Draw an activity spinner instead of Icon
	Haptic     haptic.Signal

	TitleFont theme.Font
	BodyFont  theme.Font

	// Fallback is set when any visual came from the info or built-in defaults.
	Fallback bool
}

// Resolve builds a Spec. Colours are looked up now and never cached across
// calls, so a theme change applies to the next presentation.
func Resolve(title, body string, kind Kind, cfg PresentationConfig, r theme.Resolver) Spec {
	if kind == nil {
		kind = Info
	}

	s := Spec{
		ID:     NewID(),
		Title:  title,
		Body:   body,
		Kind:   kind,
		Config: cfg,
	}

	var ok bool
	switch k := kind.(type) {
	case Standard:
		s.Background, ok = Color(r, k.Token())
		s.Fallback = !ok
		s.Icon = k.Icon()
		s.Spinner = k == Loading
		s.Haptic = k.Haptic()
	case Custom:
		s.Background, s.Icon, s.Fallback = resolveCustom(k, r)
		s.Haptic = Info.Haptic()
	}

	if c, isCustom := kind.(Custom); isCustom && c.Text != "" {
		if v, found := lookup(r, c.Text); found {
			s.Foreground = v
		} else {
			s.Fallback = true
		}
	}
	if s.Foreground == "" {
		s.Foreground, _ = Color(r, theme.TokenOnAccent)
	}

	if !cfg.HapticEnabled {
		s.Haptic = haptic.None
	}

	if r != nil {
		s.TitleFont = r.ResolveFont(theme.FamilyTitle, theme.WeightSemibold, TitleSize)
		s.BodyFont = r.ResolveFont(theme.FamilyBody, theme.WeightRegular, BodySize)
	} else {
		s.TitleFont = theme.Font{Bold: true}
	}
	return s
}

func resolveCustom(k Custom, r theme.Resolver) (theme.Color, Icon, bool) {
	fallback := false
	bg, found := lookup(r, k.Background)
	if !found {
		bg, _ = Color(r, Info.Token())
		fallback = true
	}
	icon := k.Icon
	if icon == IconNone {
		icon = Info.Icon()
		fallback = true
	}
	return bg, icon, fallback
}

func lookup(r theme.Resolver, token theme.Token) (theme.Color, bool) {
	if r == nil || token == "" {
		return "", false
	}
	return r.ResolveColor(token)
}
