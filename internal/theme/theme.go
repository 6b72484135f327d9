package theme

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

// Token names a semantic colour in a theme palette.
type Token string

// Well-known colour tokens. Themes may define additional tokens for custom kinds.
const (
	TokenSuccess     Token = "success"
	TokenError       Token = "error"
	TokenWarning     Token = "warning"
	TokenInfo        Token = "info"
	TokenLoading     Token = "loading"
	TokenOnAccent    Token = "on_accent" // Text drawn on a kind colour
	TokenSurface     Token = "surface"   // Dialog and sheet card background
	TokenText        Token = "text"
	TokenMuted       Token = "muted"
	TokenBorder      Token = "border"
	TokenOverlay     Token = "overlay" // Dimming overlay tint
	TokenBackdrop    Token = "backdrop"
	TokenPrimary     Token = "primary"
	TokenDestructive Token = "destructive"
	TokenNeutral     Token = "neutral"
	TokenToast       Token = "toast"
	TokenToastText   Token = "toast_text"
	TokenProgress    Token = "progress"
)

// Color is a terminal colour: a "#RRGGBB" hex value or an ANSI palette index.
type Color string

// Lipgloss returns the colour as a lipgloss colour.
func (c Color) Lipgloss() lipgloss.Color {
	return lipgloss.Color(c)
}

// IsHex reports whether the colour is a "#RRGGBB" value that can be blended.
func (c Color) IsHex() bool {
	return len(c) == 7 && c[0] == '#'
}

// Family names a font role used by the composer.
type Family string

const (
	FamilyTitle   Family = "title"
	FamilyBody    Family = "body"
	FamilyButton  Family = "button"
	FamilyCaption Family = "caption"
)

// Weight is a font weight.
type Weight int

const (
	WeightRegular Weight = iota
	WeightMedium
	WeightSemibold
	WeightBold
)

// String returns the string representation of Weight.
func (w Weight) String() string {
	switch w {
	case WeightMedium:
		return "medium"
	case WeightSemibold:
		return "semibold"
	case WeightBold:
		return "bold"
	default:
		return "regular"
	}
}

// ParseWeight parses a weight name, defaulting to regular.
func ParseWeight(s string) Weight {
	switch strings.ToLower(s) {
	case "medium":
		return WeightMedium
	case "semibold":
		return WeightSemibold
	case "bold":
		return WeightBold
	default:
		return WeightRegular
	}
}

// Font is a resolved font handle. Terminals have a single typeface, so a font
// is the set of attributes a cell can carry.
type Font struct {
	Bold      bool
	Italic    bool
	Faint     bool
	Underline bool
}

// Apply returns the style with the font attributes set.
func (f Font) Apply(s lipgloss.Style) lipgloss.Style {
	return s.Bold(f.Bold).Italic(f.Italic).Faint(f.Faint).Underline(f.Underline)
}

// CaptionSize is the point size below which text renders faint.
const CaptionSize = 12

// FontSpec is the per-family override stored in a theme file.
type FontSpec struct {
	Weight    string `toml:"weight,omitempty"`
	Italic    bool   `toml:"italic,omitempty"`
	Faint     bool   `toml:"faint,omitempty"`
	Underline bool   `toml:"underline,omitempty"`
}

// Resolver is the theming collaborator consulted at presentation time.
type Resolver interface {
	ResolveColor(token Token) (Color, bool)
	ResolveFont(family Family, weight Weight, size int) Font
}

// Theme is a colour palette plus font overrides.
type Theme struct {
	Name        string              `toml:"name"`
	Description string              `toml:"description"`
	Colors      map[string]string   `toml:"colors"`
	Fonts       map[string]FontSpec `toml:"fonts"`

	Path      string    `toml:"-"` // Full path to the TOML file (empty for embedded)
	ModTime   time.Time `toml:"-"`
	IsBundled bool      `toml:"-"`
}

// Parse decodes a theme from TOML.
func Parse(data []byte) (*Theme, error) {
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, &ThemeError{Message: "failed to parse theme", Cause: err}
	}
	if t.Colors == nil {
		t.Colors = make(map[string]string)
	}
	if t.Fonts == nil {
		t.Fonts = make(map[string]FontSpec)
	}
	return &t, nil
}

// NewTheme loads a theme from a TOML file on disk.
func NewTheme(name, path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w", name, err)
	}
	t.Name = name
	t.Path = path
	t.ModTime = info.ModTime()
	return t, nil
}

// Reload reloads the theme from disk.
// Returns true if the palette changed.
func (t *Theme) Reload() (bool, error) {
	if t.Path == "" {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	fresh, err := NewTheme(t.Name, t.Path)
	if err != nil {
		return false, err
	}

	changed := !equalStringMaps(t.Colors, fresh.Colors) || len(t.Fonts) != len(fresh.Fonts)
	if !changed {
		for k, v := range t.Fonts {
			if fresh.Fonts[k] != v {
				changed = true
				break
			}
		}
	}

	t.Colors = fresh.Colors
	t.Fonts = fresh.Fonts
	t.Description = fresh.Description
	t.ModTime = fresh.ModTime
	return changed, nil
}

// ResolveColor implements Resolver.
func (t *Theme) ResolveColor(token Token) (Color, bool) {
	if t == nil || token == "" {
		return "", false
	}
	v, ok := t.Colors[string(token)]
	if !ok || v == "" {
		return "", false
	}
	return Color(v), true
}

// ResolveFont implements Resolver. Weights at or above semibold render bold,
// sizes below CaptionSize render faint; theme overrides apply on top.
func (t *Theme) ResolveFont(family Family, weight Weight, size int) Font {
	f := Font{
		Bold:  weight >= WeightSemibold,
		Faint: size > 0 && size < CaptionSize,
	}
	if t == nil {
		return f
	}
	spec, ok := t.Fonts[string(family)]
	if !ok {
		return f
	}
	if spec.Weight != "" {
		f.Bold = ParseWeight(spec.Weight) >= WeightSemibold
	}
	f.Italic = spec.Italic
	f.Faint = f.Faint || spec.Faint
	f.Underline = spec.Underline
	return f
}

// Fallback chains resolvers, returning the first hit.
type Fallback []Resolver

// ResolveColor implements Resolver.
func (f Fallback) ResolveColor(token Token) (Color, bool) {
	for _, r := range f {
		if r == nil {
			continue
		}
		if c, ok := r.ResolveColor(token); ok {
			return c, true
		}
	}
	return "", false
}

// ResolveFont implements Resolver using the first non-nil resolver.
func (f Fallback) ResolveFont(family Family, weight Weight, size int) Font {
	for _, r := range f {
		if r != nil {
			return r.ResolveFont(family, weight, size)
		}
	}
	return Font{Bold: weight >= WeightSemibold}
}

// ThemeError represents a theme loading error.
type ThemeError struct {
	Message string
	Cause   error
}

func (e *ThemeError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ThemeError) Unwrap() error {
	return e.Cause
}

func equalStringMaps(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
