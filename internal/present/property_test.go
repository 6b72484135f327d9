package present

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"pgregory.net/rapid"

	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/present/presenttest"
)

// TestProperty_SlotInvariants drives random present/dismiss/advance sequences
// across both slots and checks the slot invariants after every step:
//   - a slot holds only the most recently presented occupant, or nothing
//   - the overlay exists exactly while some occupant dims
//   - generations never go backwards
//   - every occupant leaves its slot exactly once
func TestProperty_SlotInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sched := presenttest.New()
		c := NewController(Options{
			Scheduler: sched,
			Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
		c.SetSurface(Surface{Width: 80, Height: 24})

		deliver := func(msg tea.Msg) { c.Update(msg) }
		latest := map[SlotID]*Presentation{}
		hiddenCount := map[*Presentation]int{}
		var all []*Presentation
		lastGen := map[SlotID]uint64{}

		check := func(step int) {
			dimmed := false
			for _, id := range []SlotID{SlotMessage, SlotDialog} {
				cur := c.Current(id)
				if c.Phase(id) == Hidden {
					if cur != nil {
						t.Fatalf("step %d: hidden %s slot still holds a presentation", step, id)
					}
				} else {
					if cur != latest[id] {
						t.Fatalf("step %d: %s slot holds a stale presentation", step, id)
					}
					dimmed = dimmed || cur.Config.DimBackground
				}
				if g := c.Generation(id); g < lastGen[id] {
					t.Fatalf("step %d: generation went backwards", step)
				} else {
					lastGen[id] = g
				}
			}
			if c.OverlayVisible() != dimmed {
				t.Fatalf("step %d: overlay visible=%v, dimmed=%v", step, c.OverlayVisible(), dimmed)
			}
			for p, n := range hiddenCount {
				if n > 1 {
					t.Fatalf("step %d: presentation %s hidden %d times", step, p.ID, n)
				}
			}
		}

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			id := SlotID(rapid.IntRange(0, 1).Draw(t, fmt.Sprintf("slot_%d", i)))
			switch rapid.IntRange(0, 2).Draw(t, fmt.Sprintf("op_%d", i)) {
			case 0:
				cfg := model.DefaultPresentationConfig()
				cfg.DimBackground = rapid.Bool().Draw(t, fmt.Sprintf("dim_%d", i))
				if rapid.Bool().Draw(t, fmt.Sprintf("persist_%d", i)) {
					cfg.Duration = model.Persist
				} else {
					cfg.Duration = time.Duration(rapid.IntRange(1, 5000).Draw(t, fmt.Sprintf("ms_%d", i))) * time.Millisecond
				}
				p := &Presentation{ID: model.NewID(), View: &stubView{text: "x", w: 6, h: 1}, Config: cfg}
				p.OnHidden = func() { hiddenCount[p]++ }
				c.Present(id, p)
				latest[id] = p
				all = append(all, p)
			case 1:
				c.Dismiss(id)
			case 2:
				ms := rapid.IntRange(0, 4000).Draw(t, fmt.Sprintf("advance_%d", i))
				sched.Advance(time.Duration(ms)*time.Millisecond, deliver)
			}
			check(i)
		}

		sched.Drain(10000, deliver)
		check(steps)

		for _, id := range []SlotID{SlotMessage, SlotDialog} {
			switch c.Phase(id) {
			case Hidden:
			case Shown:
				if !c.Current(id).Config.Persistent() {
					t.Fatalf("timed presentation still shown after all timers fired")
				}
			default:
				t.Fatalf("%s slot stuck in %s", id, c.Phase(id))
			}
		}

		for _, p := range all {
			onScreen := p == c.Current(SlotMessage) || p == c.Current(SlotDialog)
			if onScreen && hiddenCount[p] != 0 {
				t.Fatalf("presentation on screen but reported hidden")
			}
			if !onScreen && hiddenCount[p] != 1 {
				t.Fatalf("presentation left its slot %d times", hiddenCount[p])
			}
		}
	})
}
