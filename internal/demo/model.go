// Package demo provides a host screen that exercises every part of the
// engine: a menu of presentations, a status bar with the slot phases, and
// live config and theme reloading.
package demo

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/nativemsg/internal/config"
	"github.com/jmylchreest/nativemsg/internal/engine"
	"github.com/jmylchreest/nativemsg/internal/prefs"
	"github.com/jmylchreest/nativemsg/internal/present"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

// Model is the demo host model.
type Model struct {
	engine *engine.Engine
	loader *theme.Loader
	prefs  *prefs.Store
	cfg    *config.Config
	logger *slog.Logger

	items  []item
	cursor int
	themes []string

	keys     KeyMap
	help     help.Model
	showHelp bool

	width  int
	height int
	status string

	upload   int
	uploaded float64
}

// Options holds the collaborators of the demo screen.
type Options struct {
	Engine *engine.Engine
	Loader *theme.Loader
	Prefs  *prefs.Store
	Config *config.Config
	Logger *slog.Logger
}

// New creates the demo model.
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Prefs == nil {
		opts.Prefs = prefs.Open("", opts.Logger)
	}
	if opts.Loader == nil {
		opts.Loader = theme.NewLoader(opts.Logger)
	}
	if opts.Engine == nil {
		opts.Engine = engine.New(engine.Options{
			Theme:  opts.Loader,
			Prefs:  opts.Prefs,
			Logger: opts.Logger,
		})
	}
	// Header row on top, status and help rows at the bottom.
	opts.Engine.SetSafeArea(1, 2)

	var themes []string
	if infos, err := theme.ListAvailableThemes(opts.Loader.Dir()); err == nil {
		for _, t := range infos {
			themes = append(themes, t.Name)
		}
	}
	if len(themes) == 0 {
		themes = theme.ListEmbeddedThemes()
	}

	return &Model{
		engine: opts.Engine,
		loader: opts.Loader,
		prefs:  opts.Prefs,
		cfg:    opts.Config,
		logger: opts.Logger,
		items:  menu(),
		themes: themes,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

// Engine returns the engine owned by the model.
func (m *Model) Engine() *engine.Engine {
	return m.engine
}

// Status returns the last status line message.
func (m *Model) Status() string {
	return m.status
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	handled, cmd := m.engine.Update(msg)
	if handled {
		return m, cmd
	}
	cmds := []tea.Cmd{cmd}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case uploadTickMsg:
		cmds = append(cmds, m.advanceUpload(msg))

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(len(m.items)-1, m.cursor+1)
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.items) - 1
	case key.Matches(msg, m.keys.Run):
		it := m.items[m.cursor]
		m.status = it.title
		return it.run(m)
	case key.Matches(msg, m.keys.HideAll):
		m.status = "hide all"
		return m.engine.HideAll()
	case key.Matches(msg, m.keys.Haptics):
		return m.toggleHaptics()
	case key.Matches(msg, m.keys.Theme):
		return m.nextTheme()
	}
	return nil
}

func (m *Model) toggleHaptics() tea.Cmd {
	enabled := !m.prefs.HapticsEnabled()
	if err := m.prefs.SetHapticsEnabled(enabled, "demo"); err != nil {
		m.logger.Warn("failed to save preferences", "error", err)
		return m.engine.ShowErrorToast("Could not save preference")
	}
	if enabled {
		return m.engine.ShowInfoToast("Haptics on")
	}
	return m.engine.ShowToast("Haptics off")
}

func (m *Model) nextTheme() tea.Cmd {
	if len(m.themes) == 0 {
		return nil
	}
	current := m.loader.Theme().Name
	next := m.themes[0]
	for i, name := range m.themes {
		if name == current {
			next = m.themes[(i+1)%len(m.themes)]
			break
		}
	}
	m.loader.LoadTheme(next)
	m.engine.SetTheme(m.loader)
	return m.engine.ShowInfoToast("Theme: " + next)
}

// applyConfig installs a reloaded configuration. It runs on the update loop.
func (m *Model) applyConfig(cfg *config.Config) tea.Cmd {
	if cfg.Theme.Name != m.cfg.Theme.Name {
		m.loader.LoadTheme(cfg.Theme.Name)
		m.engine.SetTheme(m.loader)
	}
	m.cfg = cfg
	m.engine.SetDefaults(cfg.Defaults())
	m.engine.SetAnimation(cfg.AnimationSettings())
	m.status = "config reloaded"
	return m.engine.ShowInfoToast("Configuration reloaded")
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Reverse(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	descStyle     = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Faint(true)
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(headerStyle.Width(m.width).Render(" nativemsg demo"))
	b.WriteString("\n")

	rows := max(1, m.height-3)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	for i := start; i < len(m.items) && i < start+rows; i++ {
		it := m.items[i]
		line := fmt.Sprintf("  %-22s %s", it.title, descStyle.Render(it.desc))
		if i == m.cursor {
			line = selectedStyle.Render(fmt.Sprintf("> %-22s", it.title)) + " " + descStyle.Render(it.desc)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	for i := len(m.items) - start; i < rows; i++ {
		b.WriteString("\n")
	}

	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return m.engine.View(b.String())
}

func (m *Model) statusLine() string {
	haptics := "off"
	if m.prefs.HapticsEnabled() {
		haptics = "on"
	}
	overlay := ""
	if m.engine.OverlayVisible() {
		overlay = " [dimmed]"
	}
	return fmt.Sprintf(" message: %s  dialog: %s%s  theme: %s  haptics: %s  %s",
		m.engine.Phase(present.SlotMessage),
		m.engine.Phase(present.SlotDialog),
		overlay,
		m.loader.Theme().Name,
		haptics,
		m.status,
	)
}
