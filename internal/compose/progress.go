package compose

import (
	"math"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/nativemsg/internal/i18n"
)

// ProgressHandle is the mutable progress row of a progress banner. It is
// returned next to the banner so updates never search the view tree.
type ProgressHandle struct {
	bar      progress.Model
	value    float64
	animated bool
	loc      i18n.Localizer
}

func newProgressHandle(initial float64, width int, p palette, loc i18n.Localizer) *ProgressHandle {
	bar := progress.New(
		progress.WithoutPercentage(),
		progress.WithSolidFill(string(p.Progress)),
		progress.WithWidth(max(1, width)),
	)
	return &ProgressHandle{bar: bar, value: Clamp(initial), loc: loc}
}

// Clamp limits a progress value to [0, 1]. NaN counts as 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Set moves the bar to value. Animated updates spring towards the new value
// and return the command driving the animation.
func (h *ProgressHandle) Set(value float64, animated bool) tea.Cmd {
	h.value = Clamp(value)
	h.animated = animated
	if !animated {
		return nil
	}
	return h.bar.SetPercent(h.value)
}

// Value is the target value of the bar.
func (h *ProgressHandle) Value() float64 {
	return h.value
}

// Percent is the value as a whole percentage.
func (h *ProgressHandle) Percent() int {
	return int(math.Round(h.value * 100))
}

// PercentText is the localized percentage label, e.g. "50%".
func (h *ProgressHandle) PercentText() string {
	return i18n.Format(h.loc, "progress.percent", h.Percent())
}

func (h *ProgressHandle) update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(progress.FrameMsg); !ok {
		return nil
	}
	m, cmd := h.bar.Update(msg)
	if bar, ok := m.(progress.Model); ok {
		h.bar = bar
	}
	return cmd
}

func (h *ProgressHandle) render(width int, p palette) string {
	bar := h.bar
	bar.Width = max(1, width)
	bar.FullColor = string(p.Progress)
	bar.EmptyColor = string(p.Muted)
	if h.animated {
		return bar.View()
	}
	return bar.ViewAs(h.value)
}
