package compose

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/present"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

// card frames inner rows of exactly innerW cells with a one-cell border and a
// one-cell horizontal padding. Inner content starts at local (2, 1).
type card struct {
	bg     theme.Color
	border theme.Color
	radius int
}

const (
	innerX = 2
	innerY = 1
)

func (c card) borderStyle() lipgloss.Border {
	if c.radius <= 0 {
		return lipgloss.NormalBorder()
	}
	return lipgloss.RoundedBorder()
}

func (c card) frame(rows []string, innerW int) string {
	b := c.borderStyle()
	edge := lipgloss.NewStyle().Foreground(lg(c.border)).Background(lg(c.bg))
	pad := lipgloss.NewStyle().Background(lg(c.bg)).Render(" ")

	out := make([]string, 0, len(rows)+2)
	out = append(out, edge.Render(b.TopLeft+strings.Repeat(b.Top, innerW+2)+b.TopRight))
	for _, r := range rows {
		out = append(out, edge.Render(b.Left)+pad+r+pad+edge.Render(b.Right))
	}
	out = append(out, edge.Render(b.BottomLeft+strings.Repeat(b.Bottom, innerW+2)+b.BottomRight))
	return strings.Join(out, "\n")
}

// cardWidth is the outer width for an inner width.
func cardWidth(innerW int) int {
	return innerW + 2*innerX
}

// fill renders s into exactly w cells with the given style and alignment.
func fill(s string, w int, st lipgloss.Style, align lipgloss.Position) string {
	s = ansi.Truncate(s, w, "…")
	return st.Width(w).MaxWidth(w).Align(align).Render(s)
}

// wrap breaks text into lines of at most w cells. maxLines <= 0 means no
// limit; otherwise the last kept line ends with an ellipsis when cut.
func wrap(text string, w, maxLines int) []string {
	if text == "" || w <= 0 {
		return nil
	}
	lines := strings.Split(ansi.Wrap(text, w, ""), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		lines[maxLines-1] = ansi.Truncate(last+" …", w, "…")
	}
	return lines
}

// buttonRow lays out actions side by side across innerW cells, or one per row
// when there are more than two or stack is set. Rects are relative to the
// inner area.
func buttonRow(actions []model.DialogAction, focus, innerW int, stack bool, p palette, font theme.Font) ([]string, []present.Rect) {
	if len(actions) == 0 {
		return nil, nil
	}

	render := func(i int, w int) string {
		a := actions[i]
		st := lipgloss.NewStyle().
			Background(lg(p.emphasis(a.Emphasis))).
			Foreground(lg(p.OnAccent))
		st = font.Apply(st)
		if i == focus {
			st = st.Bold(true).Underline(true)
		}
		return fill(a.Title, w, st, lipgloss.Center)
	}

	if !stack && len(actions) <= 2 {
		n := len(actions)
		bw := (innerW - buttonGap*(n-1)) / n
		gap := lipgloss.NewStyle().Background(lg(p.Surface)).Render(strings.Repeat(" ", buttonGap))
		var parts []string
		var rects []present.Rect
		x := 0
		for i := range actions {
			w := bw
			if i == n-1 {
				w = innerW - x
			}
			if i > 0 {
				parts = append(parts, gap)
			}
			parts = append(parts, render(i, w))
			rects = append(rects, present.Rect{X: x, Y: 0, Width: w, Height: 1})
			x += w + buttonGap
		}
		return []string{strings.Join(parts, "")}, rects
	}

	rows := make([]string, len(actions))
	rects := make([]present.Rect, len(actions))
	for i := range actions {
		rows[i] = render(i, innerW)
		rects[i] = present.Rect{X: 0, Y: i, Width: innerW, Height: 1}
	}
	return rows, rects
}

// offsetRects moves inner-area rects to view-local coordinates, given the
// inner row the buttons start at.
func offsetRects(rects []present.Rect, row int) []present.Rect {
	out := make([]present.Rect, len(rects))
	for i, r := range rects {
		r.X += innerX
		r.Y += innerY + row
		out[i] = r
	}
	return out
}

func scaled(w int, scale float64, minW int) int {
	if scale <= 0 || scale >= 1 {
		return w
	}
	return max(minW, int(float64(w)*scale+0.5))
}
