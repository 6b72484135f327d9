package demo

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/nativemsg/internal/config"
	"github.com/jmylchreest/nativemsg/internal/engine"
	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/prefs"
	"github.com/jmylchreest/nativemsg/internal/present"
	"github.com/jmylchreest/nativemsg/internal/present/presenttest"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestModel(t *testing.T) (*Model, *presenttest.FakeScheduler) {
	t.Helper()
	logger := quietLogger()
	sched := presenttest.New()
	loader := theme.NewLoader(logger)
	loader.SetThemesDir(t.TempDir())
	store := prefs.Open(filepath.Join(t.TempDir(), "prefs.json"), logger)

	m := New(Options{
		Engine: engine.New(engine.Options{
			Theme:     loader,
			Prefs:     store,
			Scheduler: sched,
			Logger:    logger,
		}),
		Loader: loader,
		Prefs:  store,
		Logger: logger,
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, sched
}

func press(m *Model, s string) {
	var msg tea.KeyMsg
	switch s {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	m.Update(msg)
}

func advance(m *Model, s *presenttest.FakeScheduler, d time.Duration) {
	s.Advance(d, func(msg tea.Msg) { m.Update(msg) })
}

func TestMenu_EveryItemPresents(t *testing.T) {
	m, s := newTestModel(t)
	e := m.Engine()

	for i, it := range m.items {
		t.Run(it.title, func(t *testing.T) {
			m.cursor = i
			press(m, "enter")
			assert.True(t, e.HasActiveMessage() || e.HasActiveDialog(), "nothing shown")
			assert.Equal(t, it.title, m.Status())

			advance(m, s, 400*time.Millisecond)
			assert.NotPanics(t, func() { _ = m.View() })

			e.HideAll()
			advance(m, s, 400*time.Millisecond)
			assert.False(t, e.OverlayVisible())
		})
	}
}

func TestDialogHoldsKeyboard(t *testing.T) {
	m, s := newTestModel(t)
	for i, it := range m.items {
		if it.title == "Dialog" {
			m.cursor = i
		}
	}
	press(m, "enter")
	advance(m, s, 400*time.Millisecond)
	require.True(t, m.Engine().HasActiveDialog())

	cursor := m.cursor
	press(m, "j")
	assert.Equal(t, cursor, m.cursor)

	// Save is the focused primary action.
	press(m, "enter")
	assert.Equal(t, "saved", m.Status())
}

func TestNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "down")
	press(m, "j")
	assert.Equal(t, 2, m.cursor)
	press(m, "G")
	assert.Equal(t, len(m.items)-1, m.cursor)
	press(m, "g")
	assert.Equal(t, 0, m.cursor)
	press(m, "k")
	assert.Equal(t, 0, m.cursor)
}

func TestToggleHaptics(t *testing.T) {
	m, _ := newTestModel(t)
	require.True(t, m.prefs.HapticsEnabled())

	press(m, "h")
	assert.False(t, m.prefs.HapticsEnabled())
	assert.Equal(t, "demo", m.prefs.Get().ChangedBy)
	assert.True(t, m.Engine().HasActiveMessage())

	press(m, "h")
	assert.True(t, m.prefs.HapticsEnabled())
}

func TestNextTheme(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.loader.Theme().Name

	press(m, "t")
	assert.NotEqual(t, before, m.loader.Theme().Name)
	spec, ok := m.Engine().Current(present.SlotMessage)
	require.True(t, ok)
	assert.Contains(t, spec.Title, m.loader.Theme().Name)
}

func TestApplyConfig(t *testing.T) {
	m, _ := newTestModel(t)
	cfg := config.Default()
	cfg.Banner.Position = "bottom"
	cfg.Theme.Name = "light"

	m.applyConfig(cfg)
	assert.Equal(t, model.Bottom, m.Engine().Defaults().Banner.Position)
	assert.Equal(t, "light", m.loader.Theme().Name)
	assert.Equal(t, "config reloaded", m.Status())
}

func TestView(t *testing.T) {
	m, s := newTestModel(t)
	out := ansi.Strip(m.View())
	assert.Contains(t, out, "nativemsg demo")
	assert.Contains(t, out, "message: hidden")

	press(m, "enter")
	advance(m, s, 400*time.Millisecond)
	assert.Contains(t, ansi.Strip(m.View()), "Profile updated")
}

func TestUploadSimulation(t *testing.T) {
	m, s := newTestModel(t)
	for i, it := range m.items {
		if it.title == "Progress" {
			m.cursor = i
		}
	}
	press(m, "enter")
	advance(m, s, 400*time.Millisecond)

	m.Update(uploadTickMsg{id: m.upload})
	h, ok := m.Engine().Progress()
	require.True(t, ok)
	assert.Equal(t, "5%", h.PercentText())

	// Ticks from an earlier upload are ignored.
	m.Update(uploadTickMsg{id: m.upload - 1})
	assert.Equal(t, "5%", h.PercentText())
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		opts PreviewOptions
		want []string
	}{
		{"banner", PreviewOptions{Title: "Saved", Kind: model.Success}, []string{"Saved", string(model.IconSuccess)}},
		{"toast", PreviewOptions{Shape: "toast", Title: "Copied"}, []string{"Copied"}},
		{"progress", PreviewOptions{Shape: "progress", Title: "Uploading", Progress: 0.3}, []string{"Uploading", "30%"}},
		{"dialog", PreviewOptions{Shape: "dialog", Title: "Delete?", Actions: []string{"Delete", "Cancel"}}, []string{"Delete?", "Cancel"}},
		{"sheet", PreviewOptions{Shape: "sheet", Title: "Share", Actions: []string{"Copy", "Mail"}}, []string{"Copy", "Mail"}},
		{"notification", PreviewOptions{Shape: "notification", Title: "Ping", Actions: []string{"Open"}}, []string{"Ping", "Open"}},
		{"loading", PreviewOptions{Shape: "loading", Title: "Wait"}, []string{"Wait"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Theme = theme.DefaultTheme()
			tt.opts.Logger = quietLogger()
			out, err := Preview(tt.opts)
			require.NoError(t, err)
			plain := ansi.Strip(out)
			assert.Len(t, strings.Split(plain, "\n"), 20)
			for _, w := range tt.want {
				assert.Contains(t, plain, w)
			}
		})
	}
}

func TestPreview_UnknownShape(t *testing.T) {
	_, err := Preview(PreviewOptions{Shape: "popover", Logger: quietLogger()})
	assert.True(t, errors.Is(err, ErrUnknownShape))
}
