// Package compose builds the detached views for every presentation shape:
// banners, progress banners, notifications with an action, toasts, dialogs and
// action sheets. Composing never touches the screen; the presentation
// controller decides where and when a view is drawn.
package compose

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/nativemsg/internal/i18n"
	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/present"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

// Interactive is a view with tappable actions.
type Interactive interface {
	present.View
	Actions() []model.DialogAction
	Focused() int
	MoveFocus(delta int)
	ActionAt(x, y int) (int, bool)
}

// Composer builds views from resolved specs.
type Composer struct {
	theme theme.Resolver
	loc   i18n.Localizer
}

// NewComposer creates a composer. A nil resolver draws with the built-in
// palette; a nil localizer uses the bundled English catalog.
func NewComposer(r theme.Resolver, loc i18n.Localizer) *Composer {
	if loc == nil {
		loc = i18n.New(i18n.DefaultLanguage, "", nil)
	}
	return &Composer{theme: r, loc: loc}
}

// SetTheme replaces the resolver used for views composed from now on.
func (c *Composer) SetTheme(r theme.Resolver) {
	c.theme = r
}

// Theme returns the resolver in use.
func (c *Composer) Theme() theme.Resolver {
	return c.theme
}

// SetLocalizer replaces the localizer used for views composed from now on.
func (c *Composer) SetLocalizer(loc i18n.Localizer) {
	if loc != nil {
		c.loc = loc
	}
}

// Localizer returns the localizer in use.
func (c *Composer) Localizer() i18n.Localizer {
	return c.loc
}

func (c *Composer) palette(spec model.Spec) palette {
	return newPalette(spec, c.theme)
}

func (c *Composer) buttonFont() theme.Font {
	if c.theme == nil {
		return theme.Font{Bold: true}
	}
	return c.theme.ResolveFont(theme.FamilyButton, theme.WeightSemibold, model.ButtonSize)
}

// Banner composes a banner. An empty title is replaced by the body.
func (c *Composer) Banner(spec model.Spec, m Metrics) *Banner {
	return newBanner(spec, c.palette(spec), m.normalize())
}

// Progress composes a progress banner and returns the handle used to update
// its bar in place.
func (c *Composer) Progress(spec model.Spec, initial float64, m Metrics) (*Banner, *ProgressHandle) {
	b := c.Banner(spec, m)
	b.progress = newProgressHandle(initial, b.textWidth(), b.pal, c.loc)
	return b, b.progress
}

// Notification composes a banner with a single action button.
func (c *Composer) Notification(spec model.Spec, action model.DialogAction, m Metrics) *Banner {
	b := c.Banner(spec, m)
	b.action = &action
	return b
}

// Toast composes a toast. The kind icon is drawn only when showIcon is set.
func (c *Composer) Toast(spec model.Spec, showIcon bool, m Metrics) *Toast {
	return newToast(spec, c.palette(spec), showIcon, m.normalize())
}

// Dialog composes a centred dialog card.
func (c *Composer) Dialog(spec model.Spec, actions []model.DialogAction, m Metrics) *Dialog {
	return newDialog(spec, actions, false, c.buttonFont(), c.palette(spec), m.normalize())
}

// ActionSheet composes a sheet with one stacked button per action.
func (c *Composer) ActionSheet(spec model.Spec, actions []model.DialogAction, m Metrics) *Dialog {
	return newDialog(spec, actions, true, c.buttonFont(), c.palette(spec), m.normalize())
}

// Dimmer returns an overlay renderer tinting the host screen with the theme's
// overlay colour.
func (c *Composer) Dimmer() present.Dimmer {
	text, _ := model.Color(c.theme, theme.TokenText)
	tint, _ := model.Color(c.theme, theme.TokenOverlay)
	return func(line string, alpha float64) string {
		if alpha <= 0 {
			return line
		}
		fg := blend(tint, text, 0.6*alpha)
		return lipgloss.NewStyle().Foreground(lg(fg)).Faint(alpha >= 0.5).Render(ansi.Strip(line))
	}
}
