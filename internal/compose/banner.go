package compose

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/present"
)

// Banner is a composed banner: icon, title, up to two body lines and an
// optional progress row or action button.
type Banner struct {
	spec  model.Spec
	pal   palette
	width int
	title string
	body  []string

	spin     *spinner.Model
	progress *ProgressHandle
	action   *model.DialogAction
}

func newBanner(spec model.Spec, pal palette, m Metrics) *Banner {
	b := &Banner{
		spec:  spec,
		pal:   pal,
		width: BannerWidth(m.Width),
		title: spec.Title,
	}
	text := b.textWidth()
	if b.title == "" {
		b.title = spec.Body
	} else {
		b.body = wrap(spec.Body, text, bodyMaxLines)
	}
	if spec.Spinner {
		s := spinner.New(spinner.WithSpinner(spinner.MiniDot))
		b.spin = &s
	}
	return b
}

func (b *Banner) innerWidth() int {
	return b.width - 2*innerX
}

func (b *Banner) textWidth() int {
	return b.innerWidth() - IconColumns()
}

// Spec returns the spec the banner was composed from.
func (b *Banner) Spec() model.Spec {
	return b.spec
}

// Progress returns the progress row, or nil for plain banners.
func (b *Banner) Progress() *ProgressHandle {
	return b.progress
}

// Init implements present.View.
func (b *Banner) Init() tea.Cmd {
	if b.spin != nil {
		return b.spin.Tick
	}
	return nil
}

// Update implements present.View.
func (b *Banner) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if b.spin != nil {
		var cmd tea.Cmd
		*b.spin, cmd = b.spin.Update(msg)
		cmds = append(cmds, cmd)
	}
	if b.progress != nil {
		cmds = append(cmds, b.progress.update(msg))
	}
	return tea.Batch(cmds...)
}

func (b *Banner) rows() int {
	n := 1 + len(b.body)
	if b.progress != nil {
		n++
	}
	if b.action != nil {
		n++
	}
	return n
}

// Size implements present.View.
func (b *Banner) Size() (int, int) {
	return b.width, b.rows() + 2
}

// Actions implements Interactive.
func (b *Banner) Actions() []model.DialogAction {
	if b.action == nil {
		return nil
	}
	return []model.DialogAction{*b.action}
}

// Focused implements Interactive.
func (b *Banner) Focused() int {
	if b.action == nil {
		return -1
	}
	return 0
}

// MoveFocus implements Interactive. A banner has at most one action.
func (b *Banner) MoveFocus(int) {}

// ActionAt implements Interactive.
func (b *Banner) ActionAt(x, y int) (int, bool) {
	if b.action == nil {
		return 0, false
	}
	if b.actionRect().Contains(x, y) {
		return 0, true
	}
	return 0, false
}

func (b *Banner) actionRect() present.Rect {
	w := b.buttonWidth()
	return present.Rect{
		X:      innerX + b.innerWidth() - w,
		Y:      innerY + b.rows() - 1,
		Width:  w,
		Height: 1,
	}
}

func (b *Banner) buttonWidth() int {
	return min(b.innerWidth(), ansi.StringWidth(b.action.Title)+4)
}

// Render implements present.View.
func (b *Banner) Render(f present.Frame) string {
	p := b.pal.fade(f.Alpha)
	innerW := scaled(b.width, f.Scale, 1) - 2*innerX
	text := max(1, innerW-IconColumns())
	innerW = text + IconColumns()

	base := lipgloss.NewStyle().Background(lg(p.Accent)).Foreground(lg(p.OnAccent))
	titleStyle := b.spec.TitleFont.Apply(base).Bold(true)
	bodyStyle := b.spec.BodyFont.Apply(base)
	blank := base.Render(strings.Repeat(" ", IconColumns()))

	rows := make([]string, 0, b.rows())
	rows = append(rows, b.icon(base)+fill(b.title, text, titleStyle, lipgloss.Left))
	for _, line := range b.body {
		rows = append(rows, blank+fill(line, text, bodyStyle, lipgloss.Left))
	}
	if b.progress != nil {
		label := b.progress.PercentText()
		lw := max(ansi.StringWidth(label), 4)
		barW := max(1, text-lw-1)
		rows = append(rows, blank+
			lipgloss.NewStyle().Background(lg(p.Accent)).Render(b.progress.render(barW, p))+
			fill(label, text-barW, bodyStyle, lipgloss.Right))
	}
	if b.action != nil {
		w := min(b.buttonWidth(), innerW)
		btn := lipgloss.NewStyle().
			Background(lg(p.emphasis(b.action.Emphasis))).
			Foreground(lg(p.OnAccent)).
			Bold(true)
		rows = append(rows, base.Render(strings.Repeat(" ", innerW-w))+fill(b.action.Title, w, btn, lipgloss.Center))
	}

	c := card{bg: p.Accent, border: p.Accent, radius: b.spec.Config.CornerRadius}
	return c.frame(rows, innerW)
}

func (b *Banner) icon(base lipgloss.Style) string {
	glyph := string(b.spec.Icon)
	if b.spin != nil {
		glyph = b.spin.View()
	}
	return fill(glyph, IconColumns(), base.Bold(true), lipgloss.Left)
}
