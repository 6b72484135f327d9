package present

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/nativemsg/internal/model"
)

// Dimmer renders one line of the host screen beneath the overlay at the given
// overlay opacity.
type Dimmer func(line string, alpha float64) string

var faintStyle = lipgloss.NewStyle().Faint(true)

// FaintDimmer strips colour from the line and draws it faint.
func FaintDimmer(line string, alpha float64) string {
	if alpha <= 0 {
		return line
	}
	return faintStyle.Render(ansi.Strip(line))
}

// Placement returns where the slot's view is drawn in the current frame.
func (c *Controller) Placement(id SlotID) (Rect, Frame, bool) {
	s := c.slots[id]
	if s.phase == Hidden || s.p == nil || !c.hasSurface {
		return Rect{}, Frame{}, false
	}

	w, h := s.p.View.Size()
	pos := s.p.Config.Position

	travel := c.surface.SafeTop
	if pos == model.Bottom {
		travel = c.surface.SafeBottom
	}
	offset, frame := transform(pos, s.visibility(), h, travel)
	if frame.Scale < 1 {
		w = max(1, int(float64(w)*frame.Scale+0.5))
	}

	r := Rect{Width: w, Height: h}
	r.X = max(0, (c.surface.Width-w)/2)
	switch pos {
	case model.Top:
		r.Y = c.surface.SafeTop
	case model.Bottom:
		r.Y = c.surface.Height - c.surface.SafeBottom - h
	default:
		r.Y = (c.surface.Height - h) / 2
	}
	r.Y = max(0, r.Y) + offset
	return r, frame, true
}

// HitTest maps a screen cell to view-local coordinates when it falls inside
// the slot's view.
func (c *Controller) HitTest(id SlotID, x, y int) (int, int, bool) {
	r, _, ok := c.Placement(id)
	if !ok || !r.Contains(x, y) {
		return 0, 0, false
	}
	return x - r.X, y - r.Y, true
}

// View composites the overlay and both slots over the host screen.
func (c *Controller) View(base string) string {
	if !c.hasSurface {
		return base
	}

	lines := strings.Split(base, "\n")
	for len(lines) < c.surface.Height {
		lines = append(lines, "")
	}

	if c.overlay != nil {
		alpha := c.overlayAlpha()
		for i, line := range lines {
			lines[i] = c.dimmer(padRight(line, c.surface.Width), alpha)
		}
	}

	for _, id := range []SlotID{SlotMessage, SlotDialog} {
		r, frame, ok := c.Placement(id)
		if !ok || frame.Alpha <= 0 {
			continue
		}
		view := strings.Split(c.slots[id].p.View.Render(frame), "\n")
		for i, vl := range view {
			row := r.Y + i
			if row < 0 || row >= len(lines) {
				continue
			}
			lines[row] = splice(lines[row], vl, r.X)
		}
	}

	return strings.Join(lines, "\n")
}

// splice overwrites line from column x with overlay.
func splice(line, overlay string, x int) string {
	w := ansi.StringWidth(overlay)
	left := ansi.Truncate(line, x, "")
	if lw := ansi.StringWidth(left); lw < x {
		left += strings.Repeat(" ", x-lw)
	}
	right := ansi.TruncateLeft(line, x+w, "")
	return left + ansi.ResetStyle + overlay + ansi.ResetStyle + right
}

func padRight(line string, width int) string {
	if w := ansi.StringWidth(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}
