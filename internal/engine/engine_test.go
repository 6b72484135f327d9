package engine

import (
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/nativemsg/internal/compose"
	"github.com/jmylchreest/nativemsg/internal/haptic"
	"github.com/jmylchreest/nativemsg/internal/i18n"
	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/prefs"
	"github.com/jmylchreest/nativemsg/internal/present"
	"github.com/jmylchreest/nativemsg/internal/present/presenttest"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

// settle covers one full enter or exit animation.
const settle = 400 * time.Millisecond

type harness struct {
	e       *Engine
	sched   *presenttest.FakeScheduler
	haptics *haptic.Recorder
	prefs   *prefs.Store
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		sched:   presenttest.New(),
		haptics: &haptic.Recorder{},
		prefs:   prefs.Open("", quietLogger()),
	}
	h.e = New(Options{
		Theme:     theme.DefaultTheme(),
		Localizer: i18n.New("en", "", quietLogger()),
		Haptics:   h.haptics,
		Prefs:     h.prefs,
		Scheduler: h.sched,
		Logger:    quietLogger(),
	})
	handled, _ := h.e.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	require.False(t, handled)
	return h
}

func (h *harness) deliver(msg tea.Msg) {
	h.e.Update(msg)
}

func (h *harness) advance(d time.Duration) {
	h.sched.Advance(d, h.deliver)
}

func (h *harness) messageSpec(t *testing.T) model.Spec {
	t.Helper()
	p := h.e.ctrl.Current(present.SlotMessage)
	require.NotNil(t, p)
	b, ok := p.View.(*compose.Banner)
	require.True(t, ok, "message slot holds %T", p.View)
	return b.Spec()
}

func (h *harness) tapDialogButton(t *testing.T, i int) (bool, tea.Cmd) {
	t.Helper()
	r, _, ok := h.e.ctrl.Placement(present.SlotDialog)
	require.True(t, ok)
	d := h.e.ctrl.Current(present.SlotDialog).View.(*compose.Dialog)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			if n, hit := d.ActionAt(x, y); hit && n == i {
				return h.e.Update(tea.MouseMsg{X: r.X + x, Y: r.Y + y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
			}
		}
	}
	t.Fatalf("no button %d on dialog", i)
	return false, nil
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestReplacement_LeavesOneShownMessage(t *testing.T) {
	shows := map[string]func(e *Engine, title string) tea.Cmd{
		"success": func(e *Engine, s string) tea.Cmd { return e.ShowSuccess(s, "") },
		"error":   func(e *Engine, s string) tea.Cmd { return e.ShowError(s, "") },
		"warning": func(e *Engine, s string) tea.Cmd { return e.ShowWarning(s, "") },
		"info":    func(e *Engine, s string) tea.Cmd { return e.ShowInfo(s, "") },
		"loading": func(e *Engine, s string) tea.Cmd { return e.ShowLoading(s, "") },
	}

	for first, showFirst := range shows {
		for second, showSecond := range shows {
			t.Run(first+"_then_"+second, func(t *testing.T) {
				h := newHarness(t)
				showFirst(h.e, "first")
				showSecond(h.e, "second")
				h.advance(settle)

				assert.Equal(t, present.Shown, h.e.Phase(present.SlotMessage))
				assert.Equal(t, "second", h.messageSpec(t).Title)
				assert.True(t, h.e.HasActiveMessage())
			})
		}
	}
}

func TestShowLoading_PersistsUntilHidden(t *testing.T) {
	h := newHarness(t)
	h.e.ShowLoading("", "")
	assert.Equal(t, "Please wait…", h.messageSpec(t).Title)
	assert.True(t, h.e.OverlayVisible())

	h.advance(10 * time.Minute)
	assert.Equal(t, present.Shown, h.e.Phase(present.SlotMessage))

	h.e.Hide()
	assert.Equal(t, present.Exiting, h.e.Phase(present.SlotMessage))
	h.advance(settle)
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotMessage))
	assert.False(t, h.e.OverlayVisible())
}

func TestShowLoading_AutoDismissStaysNonInteractive(t *testing.T) {
	h := newHarness(t)
	h.e.ShowLoading("Syncing", "", model.WithDuration(time.Second), model.WithInteractive(true))
	h.advance(settle)

	handled, _ := h.e.Update(keyMsg("esc"))
	assert.True(t, handled, "overlay blocks input")
	assert.Equal(t, present.Shown, h.e.Phase(present.SlotMessage))

	h.advance(time.Second + settle)
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotMessage))
}

func TestHide_NoMessageIsNoop(t *testing.T) {
	h := newHarness(t)
	gen := h.e.ctrl.Generation(present.SlotMessage)

	assert.NotPanics(t, func() { h.e.Hide() })
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotMessage))
	assert.Equal(t, gen, h.e.ctrl.Generation(present.SlotMessage))
	assert.Equal(t, 0, h.sched.Pending())
}

func TestStaleTimer_DoesNotHideNewerMessage(t *testing.T) {
	h := newHarness(t)
	h.e.ShowSuccess("old", "")
	h.advance(2 * time.Second)

	h.e.ShowInfo("new", "")
	// The old expiry falls due here.
	h.advance(1500 * time.Millisecond)
	assert.Equal(t, present.Shown, h.e.Phase(present.SlotMessage))
	assert.Equal(t, "new", h.messageSpec(t).Title)

	h.advance(3 * time.Second)
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotMessage))
}

func TestHideWhileEntering_JumpsToHidden(t *testing.T) {
	h := newHarness(t)
	h.e.ShowInfo("quick", "")
	h.advance(100 * time.Millisecond)
	require.Equal(t, present.Entering, h.e.Phase(present.SlotMessage))

	h.e.Hide()
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotMessage))

	h.advance(10 * time.Second)
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotMessage))
}

func TestArabicDialog_PrimaryFiresOnce(t *testing.T) {
	h := newHarness(t)
	primary, secondary := 0, 0
	h.e.ShowDialog("تأكيد", "...",
		model.PrimaryAction("حذف", func() { primary++ }),
		model.SecondaryAction("إلغاء", func() { secondary++ }),
	)
	assert.True(t, h.e.OverlayVisible())
	h.advance(settle)
	require.Equal(t, present.Shown, h.e.Phase(present.SlotDialog))

	handled, _ := h.tapDialogButton(t, 0)
	assert.True(t, handled)
	assert.Equal(t, 1, primary)
	assert.Equal(t, present.Exiting, h.e.Phase(present.SlotDialog))

	// Further input during the exit cannot fire anything.
	h.e.Update(keyMsg("enter"))
	h.e.Update(keyMsg("2"))
	h.advance(settle)

	assert.Equal(t, 1, primary)
	assert.Equal(t, 0, secondary)
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotDialog))
	assert.False(t, h.e.HasActiveDialog())
	assert.False(t, h.e.OverlayVisible())
}

func TestDialog_Keyboard(t *testing.T) {
	h := newHarness(t)
	var fired []string
	h.e.ShowDialog("Pick one", "",
		model.PrimaryAction("A", func() { fired = append(fired, "A") }),
		model.SecondaryAction("B", func() { fired = append(fired, "B") }),
		model.DestructiveAction("C", func() { fired = append(fired, "C") }),
	)
	h.advance(settle)

	handled, _ := h.e.Update(keyMsg("x"))
	assert.True(t, handled, "dialog holds the keyboard")

	h.e.Update(keyMsg("right"))
	h.e.Update(keyMsg("enter"))
	assert.Equal(t, []string{"B"}, fired)

	h.advance(settle)
	h.e.ShowDialog("Again", "",
		model.PrimaryAction("A", func() { fired = append(fired, "A") }),
		model.DestructiveAction("C", func() { fired = append(fired, "C") }),
	)
	h.advance(settle)
	h.e.Update(keyMsg("2"))
	assert.Equal(t, []string{"B", "C"}, fired)

	handled, _ = h.e.Update(keyMsg("ctrl+c"))
	assert.False(t, handled, "quit always reaches the host")
}

func TestDialog_OverlayTapCancelsWithoutHandlers(t *testing.T) {
	h := newHarness(t)
	fired := 0
	h.e.ShowConfirm("Leave?", "", "", "", func() { fired++ }, func() { fired++ })
	h.advance(settle)

	handled, _ := h.e.Update(click(0, 0))
	assert.True(t, handled)
	assert.Equal(t, present.Exiting, h.e.Phase(present.SlotDialog))
	h.advance(settle)
	assert.Equal(t, 0, fired)
	assert.False(t, h.e.OverlayVisible())
}

func TestDialog_EscCancels(t *testing.T) {
	h := newHarness(t)
	fired := 0
	h.e.ShowDialog("Esc", "", model.PrimaryAction("Go", func() { fired++ }))
	h.advance(settle)

	h.e.Update(keyMsg("esc"))
	h.advance(settle)
	assert.Equal(t, 0, fired)
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotDialog))
}

func TestDialog_EmptyActionsGetOK(t *testing.T) {
	h := newHarness(t)
	h.e.ShowDialog("Heads up", "")

	iv, ok := h.e.dialog.interactive()
	require.True(t, ok)
	require.Len(t, iv.Actions(), 1)
	assert.Equal(t, "OK", iv.Actions()[0].Title)
	assert.Equal(t, model.Secondary, iv.Actions()[0].Emphasis)
}

func TestDialog_ConfirmDefaultsTitles(t *testing.T) {
	h := newHarness(t)
	h.e.ShowConfirm("Sure?", "", "", "", nil, nil)

	iv, ok := h.e.dialog.interactive()
	require.True(t, ok)
	assert.Equal(t, "OK", iv.Actions()[0].Title)
	assert.Equal(t, "Cancel", iv.Actions()[1].Title)
}

func TestDialog_HandlerCanPresentReplacement(t *testing.T) {
	h := newHarness(t)
	h.e.ShowDialog("Delete?", "", model.DestructiveAction("Delete", func() {
		h.e.ShowSuccess("Deleted", "")
	}))
	h.advance(settle)

	h.e.Update(keyMsg("enter"))
	assert.True(t, h.e.HasActiveMessage())
	assert.False(t, h.e.HasActiveDialog())

	h.advance(settle)
	assert.Equal(t, present.Shown, h.e.Phase(present.SlotMessage))
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotDialog))
}

func TestDialogAndMessageAreIndependent(t *testing.T) {
	h := newHarness(t)
	h.e.ShowInfo("Banner", "")
	h.e.ShowDialog("Dialog", "")
	h.advance(settle)

	assert.True(t, h.e.HasActiveMessage())
	assert.True(t, h.e.HasActiveDialog())

	h.e.HideDialog()
	h.advance(settle)
	assert.True(t, h.e.HasActiveMessage())
}

func TestActionSheet(t *testing.T) {
	h := newHarness(t)
	chosen := ""
	h.e.ShowActionSheet("Share", "",
		model.PrimaryAction("Copy link", func() { chosen = "copy" }),
		model.SecondaryAction("Email", func() { chosen = "email" }),
		model.DestructiveAction("Remove", func() { chosen = "remove" }),
	)
	h.advance(settle)
	assert.True(t, h.e.OverlayVisible())

	r, _, ok := h.e.ctrl.Placement(present.SlotDialog)
	require.True(t, ok)
	assert.Equal(t, 24, r.Y+r.Height, "sheet sits on the bottom edge")

	h.tapDialogButton(t, 2)
	assert.Equal(t, "remove", chosen)
}

func TestProgress_UpdateShowsPercent(t *testing.T) {
	h := newHarness(t)
	h.e.ShowProgress("Uploading", 0)
	h.advance(settle)

	h.e.UpdateProgress(0.5, true)
	handle, ok := h.e.Progress()
	require.True(t, ok)
	assert.Equal(t, "50%", handle.PercentText())
	assert.Contains(t, ansi.Strip(h.e.View("")), "50%")

	h.e.UpdateProgress(1, false)
	h.advance(time.Minute)
	assert.Equal(t, present.Shown, h.e.Phase(present.SlotMessage), "full bar does not auto-hide")
}

func TestProgress_UpdateWithoutBannerIsNoop(t *testing.T) {
	h := newHarness(t)
	assert.NotPanics(t, func() {
		assert.Nil(t, h.e.UpdateProgress(0.5, true))
	})

	h.e.ShowProgress("Uploading", 0.2)
	h.advance(settle)
	h.e.ShowInfo("Other", "")
	_, ok := h.e.Progress()
	assert.False(t, ok, "replacement drops the handle")
	assert.Nil(t, h.e.UpdateProgress(0.9, false))
}

func TestToast_AutoDismissesWithoutBlocking(t *testing.T) {
	h := newHarness(t)
	h.e.ShowToast("Copied")
	assert.False(t, h.e.OverlayVisible())

	handled, _ := h.e.Update(keyMsg("a"))
	assert.False(t, handled)
	handled, _ = h.e.Update(click(0, 0))
	assert.False(t, handled)

	h.advance(settle)
	assert.Equal(t, present.Shown, h.e.Phase(present.SlotMessage))
	h.advance(2 * time.Second)
	assert.Equal(t, present.Exiting, h.e.Phase(present.SlotMessage))
	h.advance(settle)
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotMessage))
}

func TestToast_NeverPersistsOrDims(t *testing.T) {
	h := newHarness(t)
	h.e.ShowSuccessToast("Saved", model.WithPersist(), model.WithDim(true))
	assert.False(t, h.e.OverlayVisible())

	p := h.e.ctrl.Current(present.SlotMessage)
	require.NotNil(t, p)
	assert.Equal(t, 2*time.Second, p.Config.Duration)
	assert.Equal(t, model.Bottom, p.Config.Position)
}

func TestHideAll_ClearsSlotsAndOverlay(t *testing.T) {
	h := newHarness(t)
	h.e.ShowLoading("Working", "")
	h.e.ShowDialog("Dialog", "")
	h.advance(settle)
	require.True(t, h.e.OverlayVisible())

	h.e.HideAll()
	assert.False(t, h.e.HasActiveMessage())
	assert.False(t, h.e.HasActiveDialog())

	h.advance(settle)
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotMessage))
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotDialog))
	assert.False(t, h.e.OverlayVisible())
}

func TestNoSurface_IsNoop(t *testing.T) {
	rec := &haptic.Recorder{}
	e := New(Options{Haptics: rec, Scheduler: presenttest.New(), Logger: quietLogger()})

	assert.Nil(t, e.ShowSuccess("Saved", ""))
	assert.Nil(t, e.ShowDialog("Dialog", ""))
	assert.False(t, e.HasActiveMessage())
	assert.False(t, e.HasActiveDialog())
	assert.Empty(t, rec.Signals())
	assert.Equal(t, "host", e.View("host"))
}

func TestHaptics(t *testing.T) {
	h := newHarness(t)
	h.e.ShowSuccess("ok", "")
	h.e.ShowError("bad", "")
	h.e.ShowLoading("wait", "")
	h.e.ShowInfo("quiet", "", model.WithHaptics(false))
	assert.Equal(t, []haptic.Signal{haptic.Success, haptic.Error}, h.haptics.Signals())

	h.haptics.Reset()
	require.NoError(t, h.prefs.SetHapticsEnabled(false, "test"))
	h.e.ShowWarning("muted", "")
	assert.Empty(t, h.haptics.Signals())
}

func TestBanner_TapDismissesWhenInteractive(t *testing.T) {
	h := newHarness(t)
	h.e.ShowInfo("Tap me", "")
	h.advance(settle)

	r, _, ok := h.e.ctrl.Placement(present.SlotMessage)
	require.True(t, ok)
	handled, _ := h.e.Update(click(r.X+1, r.Y+1))
	assert.True(t, handled)
	assert.Equal(t, present.Exiting, h.e.Phase(present.SlotMessage))

	h.advance(settle)
	h.e.ShowInfo("Sticky", "", model.WithInteractive(false))
	h.advance(settle)
	r, _, _ = h.e.ctrl.Placement(present.SlotMessage)
	handled, _ = h.e.Update(click(r.X+1, r.Y+1))
	assert.True(t, handled)
	assert.Equal(t, present.Shown, h.e.Phase(present.SlotMessage))
}

func TestBanner_EscDismisses(t *testing.T) {
	h := newHarness(t)
	h.e.ShowWarning("Careful", "")
	h.advance(settle)

	handled, _ := h.e.Update(keyMsg("esc"))
	assert.True(t, handled)
	assert.Equal(t, present.Exiting, h.e.Phase(present.SlotMessage))

	handled, _ = h.e.Update(keyMsg("esc"))
	assert.False(t, handled, "nothing left to dismiss")
}

func TestBanner_EmptyTitleUsesKindName(t *testing.T) {
	h := newHarness(t)
	h.e.ShowSuccess("", "")
	assert.Equal(t, "Success", h.messageSpec(t).Title)

	h.e.ShowMessage("", "", model.Custom{Background: "nope"})
	spec := h.messageSpec(t)
	assert.Equal(t, "Info", spec.Title)
	assert.True(t, spec.Fallback)
}

func TestNotification_ActionFiresOnceAndHides(t *testing.T) {
	h := newHarness(t)
	opened := 0
	h.e.ShowNotification("New message", "From Sam", model.Info, "View", func() { opened++ })
	h.advance(settle)

	r, _, ok := h.e.ctrl.Placement(present.SlotMessage)
	require.True(t, ok)
	x, y := r.X+r.Width-3, r.Y+r.Height-2
	h.e.Update(click(x, y))
	h.e.Update(click(x, y))

	assert.Equal(t, 1, opened)
	h.advance(settle)
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotMessage))
}

func TestSequence(t *testing.T) {
	h := newHarness(t)
	h.e.ShowSequence([]SequenceItem{
		{Title: "one", Kind: model.Info},
		{Title: "two", Kind: model.Success},
		{Title: "three"},
	}, time.Second)
	assert.Equal(t, "one", h.messageSpec(t).Title)

	h.advance(time.Second)
	assert.Equal(t, "two", h.messageSpec(t).Title)

	h.e.HideAll()
	h.advance(5 * time.Second)
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotMessage))
}

func TestRequest_RunsOnLoop(t *testing.T) {
	h := newHarness(t)
	cmd := Do(func(e *Engine) tea.Cmd {
		return e.ShowInfo("from elsewhere", "")
	})

	handled, _ := h.e.Update(cmd())
	assert.True(t, handled)
	assert.True(t, h.e.HasActiveMessage())

	var sent []tea.Msg
	Post(senderFunc(func(m tea.Msg) { sent = append(sent, m) }), func(e *Engine) tea.Cmd { return e.Hide() })
	require.Len(t, sent, 1)
	h.e.Update(sent[0])
	assert.False(t, h.e.HasActiveMessage())
}

type senderFunc func(tea.Msg)

func (f senderFunc) Send(m tea.Msg) { f(m) }

func TestSetTheme_AppliesToNextPresentation(t *testing.T) {
	h := newHarness(t)
	h.e.ShowSuccess("before", "")
	before := h.messageSpec(t).Background

	light, ok := theme.GetEmbeddedTheme("light")
	require.True(t, ok)
	h.e.SetTheme(light)
	assert.Equal(t, before, h.messageSpec(t).Background, "views on screen keep their colours")

	h.e.ShowSuccess("after", "")
	want, _ := light.ResolveColor(theme.TokenSuccess)
	assert.Equal(t, want, h.messageSpec(t).Background)
}

func TestView_DrawsPresentations(t *testing.T) {
	h := newHarness(t)
	h.e.ShowInfo("Hello there", "")
	h.advance(settle)
	assert.Contains(t, ansi.Strip(h.e.View("host screen")), "Hello there")
}

func TestDialog_TapIgnoredWhileEntering(t *testing.T) {
	h := newHarness(t)
	var chosen []string
	h.e.ShowDialog("Unsaved changes", "",
		model.PrimaryAction("Keep", func() { chosen = append(chosen, "keep") }),
		model.DestructiveAction("Discard", func() { chosen = append(chosen, "discard") }),
	)
	h.advance(70 * time.Millisecond)
	require.Equal(t, present.Entering, h.e.Phase(present.SlotDialog))

	r, _, ok := h.e.ctrl.Placement(present.SlotDialog)
	require.True(t, ok)
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			handled, _ := h.e.Update(click(x, y))
			require.True(t, handled)
		}
	}
	assert.Empty(t, chosen)
	assert.Equal(t, present.Entering, h.e.Phase(present.SlotDialog))

	h.advance(settle)
	h.tapDialogButton(t, 1)
	assert.Equal(t, []string{"discard"}, chosen)
}

func TestSequence_DefaultIntervalFollowsBannerDefaults(t *testing.T) {
	h := newHarness(t)
	d := model.DefaultDefaults()
	d.Banner.Duration = 5 * time.Second
	h.e.SetDefaults(d)

	h.e.ShowSequence([]SequenceItem{{Title: "one"}, {Title: "two"}}, 0)
	h.advance(3 * time.Second)
	assert.Equal(t, "one", h.messageSpec(t).Title)

	h.advance(2 * time.Second)
	assert.Equal(t, "two", h.messageSpec(t).Title)
}

func TestSetSurface_EmptySizeDetaches(t *testing.T) {
	h := newHarness(t)
	h.e.Update(tea.WindowSizeMsg{Width: 0, Height: 0})

	assert.Nil(t, h.e.ShowSuccess("Saved", ""))
	assert.False(t, h.e.HasActiveMessage())

	h.e.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	h.e.ShowSuccess("Saved", "")
	assert.True(t, h.e.HasActiveMessage())
}

func TestHideAll_DiscardsDialogHandlers(t *testing.T) {
	h := newHarness(t)
	fired := 0
	h.e.ShowConfirm("Leave?", "", "", "", func() { fired++ }, func() { fired++ })
	h.advance(settle)

	h.e.HideAll()
	h.e.Update(keyMsg("enter"))
	h.advance(settle)
	assert.Equal(t, 0, fired)
	assert.Equal(t, present.Hidden, h.e.Phase(present.SlotDialog))
}
