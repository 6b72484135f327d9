package compose

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/present"
)

// Toast is a pill with one line of text, or two when a body is present.
type Toast struct {
	spec  model.Spec
	pal   palette
	icon  string
	lines []string
	width int
}

func newToast(spec model.Spec, pal palette, showIcon bool, m Metrics) *Toast {
	t := &Toast{spec: spec, pal: pal}
	if showIcon && spec.Icon != model.IconNone {
		t.icon = string(spec.Icon) + " "
	}

	limit := max(1, min(m.Width-4, maxBannerWidth)-2*innerX)
	text := max(1, limit-ansi.StringWidth(t.icon))
	t.lines = []string{ansi.Truncate(spec.Title, text, "…")}
	if spec.Body != "" {
		t.lines = append(t.lines, ansi.Truncate(spec.Body, text, "…"))
	}

	inner := 0
	for _, l := range t.lines {
		inner = max(inner, ansi.StringWidth(l))
	}
	t.width = cardWidth(inner + ansi.StringWidth(t.icon))
	return t
}

// Init implements present.View.
func (t *Toast) Init() tea.Cmd { return nil }

// Update implements present.View.
func (t *Toast) Update(tea.Msg) tea.Cmd { return nil }

// Size implements present.View.
func (t *Toast) Size() (int, int) {
	return t.width, len(t.lines) + 2
}

// Spec returns the spec the toast was composed from.
func (t *Toast) Spec() model.Spec {
	return t.spec
}

// Text returns the rendered lines without styling.
func (t *Toast) Text() []string {
	return t.lines
}

// Render implements present.View.
func (t *Toast) Render(f present.Frame) string {
	p := t.pal.fade(f.Alpha)
	innerW := t.width - 2*innerX
	base := lipgloss.NewStyle().Background(lg(p.Toast)).Foreground(lg(p.ToastText))
	iconStyle := base.Foreground(lg(p.Accent)).Bold(true)

	rows := make([]string, len(t.lines))
	for i, l := range t.lines {
		lead := base.Render(strings.Repeat(" ", ansi.StringWidth(t.icon)))
		if i == 0 && t.icon != "" {
			lead = iconStyle.Render(t.icon)
		}
		st := base
		if i == 0 {
			st = t.spec.TitleFont.Apply(base)
		}
		rows[i] = lead + fill(l, innerW-ansi.StringWidth(t.icon), st, lipgloss.Left)
	}

	c := card{bg: p.Toast, border: p.Toast, radius: model.PillRadius}
	return c.frame(rows, innerW)
}
