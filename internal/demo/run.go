package demo

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/nativemsg/internal/config"
	"github.com/jmylchreest/nativemsg/internal/engine"
	"github.com/jmylchreest/nativemsg/internal/haptic"
	"github.com/jmylchreest/nativemsg/internal/i18n"
	"github.com/jmylchreest/nativemsg/internal/prefs"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

// RunOptions configures Run.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string // Watched for changes when set
	PrefsPath  string
	Logger     *slog.Logger
}

// Build wires the collaborators described by cfg into a demo model.
func Build(cfg *config.Config, prefsPath string, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	loader := theme.NewLoader(logger)
	loader.LoadTheme(cfg.Theme.Name)
	store := prefs.Open(prefsPath, logger)
	defaults := cfg.Defaults()

	e := engine.New(engine.Options{
		Theme:     loader,
		Localizer: i18n.New(cfg.Locale.Language, cfg.Locale.Dir, logger),
		Haptics:   haptic.New(cfg.HapticSettings(), logger),
		Prefs:     store,
		Animation: cfg.AnimationSettings(),
		Defaults:  &defaults,
		Logger:    logger,
	})

	return New(Options{
		Engine: e,
		Loader: loader,
		Prefs:  store,
		Config: cfg,
		Logger: logger,
	})
}

// Run starts the demo program and blocks until it exits.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := Build(opts.Config, opts.PrefsPath, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.ConfigPath != "" {
		w := config.NewWatcher(opts.ConfigPath, logger)
		w.SetReloadCallback(func(cfg *config.Config) {
			engine.Post(p, func(*engine.Engine) tea.Cmd {
				return m.applyConfig(cfg)
			})
		})
		w.SetErrorCallback(func(err error) {
			engine.Post(p, func(e *engine.Engine) tea.Cmd {
				return e.ShowError("Config error", err.Error())
			})
		})
		if err := w.Start(ctx, m.cfg); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		} else {
			defer w.Stop()
		}
	}

	if m.cfg.Theme.Watch {
		tw, err := theme.NewWatcher(m.loader, func() {
			engine.Post(p, func(e *engine.Engine) tea.Cmd {
				e.SetTheme(m.loader)
				return e.ShowInfoToast("Theme reloaded")
			})
		})
		if err != nil {
			logger.Warn("failed to create theme watcher", "error", err)
		} else if err := tw.Start(); err != nil {
			logger.Warn("failed to start theme watcher", "error", err)
		} else {
			defer func() {
				if err := tw.Stop(); err != nil {
					logger.Debug("theme watcher stop", "error", err)
				}
			}()
		}
	}

	_, err := p.Run()
	return err
}
