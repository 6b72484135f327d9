package compose

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/present"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

// Dialog is a card with an icon, a title, a body and a stack of action
// buttons. An action sheet is a dialog whose buttons are always stacked.
type Dialog struct {
	spec    model.Spec
	pal     palette
	actions []model.DialogAction
	focus   int
	sheet   bool
	width   int
	title   []string
	body    []string
	button  theme.Font
}

func newDialog(spec model.Spec, actions []model.DialogAction, sheet bool, button theme.Font, pal palette, m Metrics) *Dialog {
	d := &Dialog{
		spec:    spec,
		pal:     pal,
		actions: actions,
		sheet:   sheet,
		button:  button,
	}
	if sheet {
		d.width = min(m.Width, max(DialogWidth(m.Width), maxBannerWidth))
	} else {
		d.width = DialogWidth(m.Width)
	}

	innerW := d.innerWidth()
	d.title = wrap(spec.Title, innerW, 0)
	// Leave room for the title, the buttons and the card edges.
	maxBody := max(1, m.Height-len(d.title)-d.buttonRows()-6)
	d.body = wrap(spec.Body, innerW, maxBody)

	for i, a := range actions {
		if a.Emphasis == model.Primary {
			d.focus = i
			break
		}
	}
	return d
}

func (d *Dialog) innerWidth() int {
	return d.width - 2*innerX
}

func (d *Dialog) stacked() bool {
	return d.sheet || len(d.actions) > 2
}

func (d *Dialog) buttonRows() int {
	if d.stacked() {
		return len(d.actions)
	}
	return min(1, len(d.actions))
}

func (d *Dialog) hasIcon() bool {
	return !d.sheet && d.spec.Icon != model.IconNone
}

// buttonsAt is the inner row the buttons start on.
func (d *Dialog) buttonsAt() int {
	n := len(d.title)
	if d.hasIcon() {
		n++
	}
	if len(d.body) > 0 {
		n += 1 + len(d.body)
	}
	return n + 1
}

// Spec returns the spec the dialog was composed from.
func (d *Dialog) Spec() model.Spec {
	return d.spec
}

// Init implements present.View.
func (d *Dialog) Init() tea.Cmd { return nil }

// Update implements present.View.
func (d *Dialog) Update(tea.Msg) tea.Cmd { return nil }

// Size implements present.View.
func (d *Dialog) Size() (int, int) {
	return d.width, d.buttonsAt() + d.buttonRows() + 2
}

// Actions implements Interactive.
func (d *Dialog) Actions() []model.DialogAction {
	return d.actions
}

// Focused implements Interactive.
func (d *Dialog) Focused() int {
	if len(d.actions) == 0 {
		return -1
	}
	return d.focus
}

// MoveFocus implements Interactive. Focus wraps around.
func (d *Dialog) MoveFocus(delta int) {
	n := len(d.actions)
	if n == 0 {
		return
	}
	d.focus = ((d.focus+delta)%n + n) % n
}

// ActionAt implements Interactive.
func (d *Dialog) ActionAt(x, y int) (int, bool) {
	_, rects := buttonRow(d.actions, d.focus, d.innerWidth(), d.stacked(), d.pal, d.button)
	for i, r := range offsetRects(rects, d.buttonsAt()) {
		if r.Contains(x, y) {
			return i, true
		}
	}
	return 0, false
}

// Render implements present.View.
func (d *Dialog) Render(f present.Frame) string {
	p := d.pal.fade(f.Alpha)
	innerW := max(1, scaled(d.width, f.Scale, 1)-2*innerX)

	base := lipgloss.NewStyle().Background(lg(p.Surface)).Foreground(lg(p.Text))
	titleStyle := d.spec.TitleFont.Apply(base).Bold(true)
	bodyStyle := d.spec.BodyFont.Apply(base)
	align := lipgloss.Center
	if d.sheet {
		titleStyle = titleStyle.Foreground(lg(p.Muted))
		bodyStyle = bodyStyle.Foreground(lg(p.Muted))
	}
	blank := base.Render(strings.Repeat(" ", innerW))

	var rows []string
	if d.hasIcon() {
		rows = append(rows, fill(string(d.spec.Icon), innerW, base.Foreground(lg(p.Accent)).Bold(true), align))
	}
	for _, l := range d.title {
		rows = append(rows, fill(l, innerW, titleStyle, align))
	}
	if len(d.body) > 0 {
		rows = append(rows, blank)
		for _, l := range d.body {
			rows = append(rows, fill(l, innerW, bodyStyle, align))
		}
	}
	rows = append(rows, blank)
	buttons, _ := buttonRow(d.actions, d.focus, innerW, d.stacked(), p, d.button)
	rows = append(rows, buttons...)

	c := card{bg: p.Surface, border: p.Border, radius: d.spec.Config.CornerRadius}
	return c.frame(rows, innerW)
}
