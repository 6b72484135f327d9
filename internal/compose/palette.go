package compose

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

// palette is the set of colours one view is drawn with.
type palette struct {
	Accent      theme.Color // Kind colour
	OnAccent    theme.Color
	Surface     theme.Color
	Text        theme.Color
	Muted       theme.Color
	Border      theme.Color
	Primary     theme.Color
	Destructive theme.Color
	Neutral     theme.Color
	Toast       theme.Color
	ToastText   theme.Color
	Progress    theme.Color
	Backdrop    theme.Color
}

// newPalette resolves the palette for spec. Nothing is cached: every view
// reads the theme when it is composed.
func newPalette(spec model.Spec, r theme.Resolver) palette {
	get := func(t theme.Token) theme.Color {
		c, _ := model.Color(r, t)
		return c
	}
	return palette{
		Accent:      spec.Background,
		OnAccent:    spec.Foreground,
		Surface:     get(theme.TokenSurface),
		Text:        get(theme.TokenText),
		Muted:       get(theme.TokenMuted),
		Border:      get(theme.TokenBorder),
		Primary:     get(theme.TokenPrimary),
		Destructive: get(theme.TokenDestructive),
		Neutral:     get(theme.TokenNeutral),
		Toast:       get(theme.TokenToast),
		ToastText:   get(theme.TokenToastText),
		Progress:    get(theme.TokenProgress),
		Backdrop:    get(theme.TokenBackdrop),
	}
}

// fade blends every colour towards the backdrop; alpha 1 is unchanged.
func (p palette) fade(alpha float64) palette {
	if alpha >= 1 {
		return p
	}
	b := p.Backdrop
	return palette{
		Accent:      blend(p.Accent, b, alpha),
		OnAccent:    blend(p.OnAccent, b, alpha),
		Surface:     blend(p.Surface, b, alpha),
		Text:        blend(p.Text, b, alpha),
		Muted:       blend(p.Muted, b, alpha),
		Border:      blend(p.Border, b, alpha),
		Primary:     blend(p.Primary, b, alpha),
		Destructive: blend(p.Destructive, b, alpha),
		Neutral:     blend(p.Neutral, b, alpha),
		Toast:       blend(p.Toast, b, alpha),
		ToastText:   blend(p.ToastText, b, alpha),
		Progress:    blend(p.Progress, b, alpha),
		Backdrop:    b,
	}
}

// emphasis returns the fill colour for an action.
func (p palette) emphasis(e model.Emphasis) theme.Color {
	switch e {
	case model.Destructive:
		return p.Destructive
	case model.Secondary:
		return p.Neutral
	default:
		return p.Primary
	}
}

// blend mixes fg over bg at opacity alpha. Palette indices cannot be
// blended and switch over at half opacity.
func blend(fg, bg theme.Color, alpha float64) theme.Color {
	if alpha >= 1 {
		return fg
	}
	if alpha <= 0 {
		return bg
	}
	a, errA := colorful.Hex(string(fg))
	b, errB := colorful.Hex(string(bg))
	if errA != nil || errB != nil {
		if alpha >= 0.5 {
			return fg
		}
		return bg
	}
	return theme.Color(b.BlendLab(a, alpha).Clamped().Hex())
}

func lg(c theme.Color) lipgloss.Color {
	return c.Lipgloss()
}
