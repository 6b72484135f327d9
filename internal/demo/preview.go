package demo

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/nativemsg/internal/engine"
	"github.com/jmylchreest/nativemsg/internal/i18n"
	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/present"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

// ErrUnknownShape is returned by Preview for an unsupported shape.
var ErrUnknownShape = errors.New("unknown shape")

// Shapes lists the presentation shapes Preview can render.
var Shapes = []string{"banner", "loading", "progress", "notification", "toast", "dialog", "sheet"}

// PreviewOptions describes one presentation rendered without a terminal.
type PreviewOptions struct {
	Shape    string
	Kind     model.Kind
	Title    string
	Body     string
	Actions  []string // Button titles for dialogs, sheets and notifications
	Progress float64
	Position model.Position
	Dim      bool

	Width  int
	Height int

	Theme     theme.Resolver
	Localizer i18n.Localizer
	Logger    *slog.Logger
}

// Preview renders a single presentation, fully shown, over a placeholder
// host screen.
func Preview(opts PreviewOptions) (string, error) {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 20
	}
	if opts.Kind == nil {
		opts.Kind = model.Info
	}

	// Zero enter and exit durations land every presentation in Shown at once.
	e := engine.New(engine.Options{
		Theme:     opts.Theme,
		Localizer: opts.Localizer,
		Animation: present.AnimationConfig{Frame: present.DefaultAnimationConfig().Frame},
		Logger:    opts.Logger,
	})
	e.Update(tea.WindowSizeMsg{Width: opts.Width, Height: opts.Height})

	bannerOpts := []model.Option{model.WithPosition(opts.Position)}
	if opts.Dim {
		bannerOpts = append(bannerOpts, model.WithDim(true))
	}

	switch opts.Shape {
	case "", "banner":
		e.ShowMessage(opts.Title, opts.Body, opts.Kind, bannerOpts...)
	case "loading":
		e.ShowLoading(opts.Title, opts.Body, bannerOpts...)
	case "progress":
		e.ShowProgress(opts.Title, opts.Progress, bannerOpts...)
	case "notification":
		action := ""
		if len(opts.Actions) > 0 {
			action = opts.Actions[0]
		}
		e.ShowNotification(opts.Title, opts.Body, opts.Kind, action, nil, bannerOpts...)
	case "toast":
		if opts.Kind == model.Info {
			e.ShowToastDetail(opts.Title, opts.Body, nil)
		} else {
			e.ShowToastDetail(opts.Title, opts.Body, opts.Kind)
		}
	case "dialog":
		e.ShowAlert(opts.Title, opts.Body, opts.Kind, actions(opts.Actions)...)
	case "sheet":
		e.ShowActionSheet(opts.Title, opts.Body, actions(opts.Actions)...)
	default:
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownShape, opts.Shape, strings.Join(Shapes, ", "))
	}

	return e.View(placeholder(opts.Width, opts.Height)), nil
}

// actions makes the first title primary and the rest secondary.
func actions(titles []string) []model.DialogAction {
	out := make([]model.DialogAction, 0, len(titles))
	for i, t := range titles {
		if i == 0 {
			out = append(out, model.PrimaryAction(t, nil))
		} else {
			out = append(out, model.SecondaryAction(t, nil))
		}
	}
	return out
}

func placeholder(width, height int) string {
	line := strings.Repeat("·", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
