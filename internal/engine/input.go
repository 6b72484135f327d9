package engine

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/nativemsg/internal/haptic"
	"github.com/jmylchreest/nativemsg/internal/present"
)

// Update runs requests, animation frames and timers and routes input to the
// presentations on screen. When handled is true the message was consumed
// and the host must not act on it.
func (e *Engine) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case Request:
		if msg == nil {
			return true, nil
		}
		return true, e.run(msg)

	case tea.WindowSizeMsg:
		e.SetSurface(msg.Width, msg.Height)
		return false, nil

	case tea.MouseMsg:
		return e.mouse(msg)

	case tea.KeyMsg:
		return e.key(msg)
	}

	return e.ctrl.Update(msg)
}

func (e *Engine) run(r Request) tea.Cmd {
	var cmd tea.Cmd
	batch := e.dispatch(func() { cmd = e.track(r(e)) })
	return tea.Batch(cmd, batch)
}

func (e *Engine) mouse(msg tea.MouseMsg) (bool, tea.Cmd) {
	tap := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	if e.ctrl.Phase(present.SlotDialog) != present.Hidden {
		if !tap {
			return true, nil
		}
		return true, e.tapDialog(msg.X, msg.Y)
	}

	if x, y, ok := e.ctrl.HitTest(present.SlotMessage, msg.X, msg.Y); ok {
		if !tap {
			return true, nil
		}
		return true, e.tapMessage(x, y)
	}

	if e.ctrl.OverlayVisible() {
		if tap && e.messageDismissable() {
			return true, e.Hide()
		}
		return true, nil
	}
	return false, nil
}

// tapDialog fires the tapped button. A tap elsewhere on the card is
// swallowed and a tap on the overlay cancels the dialog. Buttons only fire
// once the card is fully shown; while it animates the drawn buttons do not
// line up with their hit areas.
func (e *Engine) tapDialog(x, y int) tea.Cmd {
	lx, ly, inside := e.ctrl.HitTest(present.SlotDialog, x, y)
	if !inside {
		e.logger.Debug("overlay tapped, cancelling dialog")
		return e.HideDialog()
	}
	if e.ctrl.Phase(present.SlotDialog) != present.Shown {
		e.logger.Debug("tap ignored, dialog animating")
		return nil
	}
	iv, ok := e.dialog.interactive()
	if !ok {
		return nil
	}
	if i, hit := iv.ActionAt(lx, ly); hit {
		return e.fire(present.SlotDialog, e.dialog, i)
	}
	return nil
}

func (e *Engine) tapMessage(x, y int) tea.Cmd {
	if iv, ok := e.message.interactive(); ok {
		if i, hit := iv.ActionAt(x, y); hit {
			if e.ctrl.Phase(present.SlotMessage) != present.Shown {
				return nil
			}
			return e.fire(present.SlotMessage, e.message, i)
		}
	}
	if e.messageDismissable() {
		return e.Hide()
	}
	return nil
}

func (e *Engine) messageDismissable() bool {
	p := e.ctrl.Current(present.SlotMessage)
	return p != nil && p.Config.Interactive && e.ctrl.Active(present.SlotMessage)
}

func (e *Engine) key(msg tea.KeyMsg) (bool, tea.Cmd) {
	if key.Matches(msg, e.keys.Quit) {
		return false, nil
	}

	if e.ctrl.Phase(present.SlotDialog) != present.Hidden {
		return true, e.dialogKey(msg)
	}

	if key.Matches(msg, e.keys.Dismiss) && e.messageDismissable() {
		return true, e.Hide()
	}
	if e.ctrl.OverlayVisible() {
		return true, nil
	}
	return false, nil
}

func (e *Engine) dialogKey(msg tea.KeyMsg) tea.Cmd {
	if !e.ctrl.Active(present.SlotDialog) {
		return nil
	}
	if key.Matches(msg, e.keys.Dismiss) {
		return e.HideDialog()
	}

	iv, ok := e.dialog.interactive()
	if !ok {
		return nil
	}
	switch {
	case key.Matches(msg, e.keys.Prev):
		iv.MoveFocus(-1)
		e.haptics.Perform(haptic.Selection)
	case key.Matches(msg, e.keys.Next):
		iv.MoveFocus(1)
		e.haptics.Perform(haptic.Selection)
	case key.Matches(msg, e.keys.Fire):
		return e.fire(present.SlotDialog, e.dialog, iv.Focused())
	case key.Matches(msg, e.keys.Pick):
		return e.fire(present.SlotDialog, e.dialog, int(msg.String()[0]-'1'))
	}
	return nil
}

// fire runs action i of the record at most once. The slot starts exiting
// before the handler runs, so a handler may present a replacement.
func (e *Engine) fire(slot present.SlotID, rec *record, i int) tea.Cmd {
	iv, ok := rec.interactive()
	if !ok {
		return nil
	}
	actions := iv.Actions()
	if i < 0 || i >= len(actions) {
		return nil
	}
	rec.fired = true
	action := actions[i]
	e.logger.Debug("action fired", "slot", slot, "id", rec.id, "action", action.Title, "emphasis", action.Emphasis)

	e.haptics.Perform(haptic.Selection)
	dismiss := e.track(e.ctrl.Dismiss(slot))
	return tea.Batch(dismiss, e.dispatch(action.Handler))
}
