package engine

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/nativemsg/internal/compose"
	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/present"
)

// Presentation kinds recorded on the controller for logging.
const (
	kindBanner       = "banner"
	kindLoading      = "loading"
	kindProgress     = "progress"
	kindNotification = "notification"
	kindToast        = "toast"
	kindDialog       = "dialog"
	kindSheet        = "action-sheet"
)

// ShowSuccess shows a success banner.
func (e *Engine) ShowSuccess(title, body string, opts ...model.Option) tea.Cmd {
	return e.ShowMessage(title, body, model.Success, opts...)
}

// ShowError shows an error banner.
func (e *Engine) ShowError(title, body string, opts ...model.Option) tea.Cmd {
	return e.ShowMessage(title, body, model.Error, opts...)
}

// ShowWarning shows a warning banner.
func (e *Engine) ShowWarning(title, body string, opts ...model.Option) tea.Cmd {
	return e.ShowMessage(title, body, model.Warning, opts...)
}

// ShowInfo shows an info banner.
func (e *Engine) ShowInfo(title, body string, opts ...model.Option) tea.Cmd {
	return e.ShowMessage(title, body, model.Info, opts...)
}

// ShowMessage shows a banner of any kind, replacing the current message.
// Without options it sits at the top for three seconds, dismisses on tap and
// plays the kind's haptic. Like every Show method it must run on the update
// loop.
func (e *Engine) ShowMessage(title, body string, kind model.Kind, opts ...model.Option) tea.Cmd {
	if kind == nil {
		kind = model.Info
	}
	cfg := model.BuildConfig(e.defaults.Banner, kind, opts...)
	if kind == model.Loading {
		cfg.Interactive = false
	}
	spec := model.Resolve(e.bannerTitle(title, body, kind), body, kind, cfg, e.composer.Theme())
	name := kindBanner
	if kind == model.Loading {
		name = kindLoading
	}
	return e.present(present.SlotMessage, name, spec, e.composer.Banner(spec, e.metrics()))
}

// bannerTitle fills an empty title. The banner promotes a lone body to the
// title line; with neither, the localized kind name is used.
func (e *Engine) bannerTitle(title, body string, kind model.Kind) string {
	if title != "" || body != "" {
		return title
	}
	name := kind.String()
	if _, ok := kind.(model.Custom); ok {
		name = model.Info.String()
	}
	e.logger.Debug("empty banner title, using kind name", "kind", kind.String())
	return e.localize("kind." + name)
}

// ShowLoading shows a persistent loading banner with a spinner. It dims the
// screen unless WithDim(false) is given and never dismisses on tap;
// WithDuration makes it hide itself after the delay.
func (e *Engine) ShowLoading(title, body string, opts ...model.Option) tea.Cmd {
	if title == "" && body == "" {
		title = e.localize("loading.default")
	}
	opts = append([]model.Option{model.WithDim(e.defaults.LoadingDim)}, opts...)
	return e.ShowMessage(title, body, model.Loading, opts...)
}

// ShowProgress shows a persistent progress banner. The bar stays on screen
// at 100% until hidden.
func (e *Engine) ShowProgress(title string, initial float64, opts ...model.Option) tea.Cmd {
	if title == "" {
		title = e.localize("loading.default")
	}
	opts = append([]model.Option{model.WithPersist(), model.WithInteractive(false)}, opts...)
	cfg := model.BuildConfig(e.defaults.Banner, model.Info, opts...)
	spec := model.Resolve(title, "", model.Info, cfg, e.composer.Theme())

	view, handle := e.composer.Progress(spec, initial, e.metrics())
	cmd := e.present(present.SlotMessage, kindProgress, spec, view)
	if e.message != nil && e.message.id == spec.ID {
		e.progress = handle
		e.progressID = spec.ID
	}
	return cmd
}

// UpdateProgress moves the bar of the progress banner on screen. It is a
// no-op when no progress banner is entering or shown.
func (e *Engine) UpdateProgress(value float64, animated bool) tea.Cmd {
	if e.progress == nil || !e.ctrl.Active(present.SlotMessage) {
		e.logger.Debug("progress update ignored, no progress banner shown", "value", value)
		return nil
	}
	return e.track(e.progress.Set(value, animated))
}

// Progress returns the handle of the progress banner on screen.
func (e *Engine) Progress() (*compose.ProgressHandle, bool) {
	if e.progress == nil || !e.ctrl.Active(present.SlotMessage) {
		return nil, false
	}
	return e.progress, true
}

// ShowNotification shows a banner with an action button. Tapping the button
// runs handler once and hides the banner.
func (e *Engine) ShowNotification(title, body string, kind model.Kind, actionTitle string, handler func(), opts ...model.Option) tea.Cmd {
	if kind == nil {
		kind = model.Info
	}
	if actionTitle == "" {
		actionTitle = e.localize("common.ok")
	}
	opts = append([]model.Option{model.WithActionButton(true)}, opts...)
	cfg := model.BuildConfig(e.defaults.Banner, kind, opts...)
	spec := model.Resolve(e.bannerTitle(title, body, kind), body, kind, cfg, e.composer.Theme())

	var view present.View
	if cfg.ShowActionButton {
		view = e.composer.Notification(spec, model.PrimaryAction(actionTitle, handler), e.metrics())
	} else {
		view = e.composer.Banner(spec, e.metrics())
	}
	return e.present(present.SlotMessage, kindNotification, spec, view)
}

// ShowToast shows a short-lived pill at the bottom of the screen.
func (e *Engine) ShowToast(text string, opts ...model.Option) tea.Cmd {
	return e.toast(text, "", model.Info, false, opts...)
}

// ShowSuccessToast shows a toast with the success icon.
func (e *Engine) ShowSuccessToast(text string, opts ...model.Option) tea.Cmd {
	return e.toast(text, "", model.Success, true, opts...)
}

// ShowErrorToast shows a toast with the error icon.
func (e *Engine) ShowErrorToast(text string, opts ...model.Option) tea.Cmd {
	return e.toast(text, "", model.Error, true, opts...)
}

// ShowWarningToast shows a toast with the warning icon.
func (e *Engine) ShowWarningToast(text string, opts ...model.Option) tea.Cmd {
	return e.toast(text, "", model.Warning, true, opts...)
}

// ShowInfoToast shows a toast with the info icon.
func (e *Engine) ShowInfoToast(text string, opts ...model.Option) tea.Cmd {
	return e.toast(text, "", model.Info, true, opts...)
}

// ShowToastDetail shows a two-line toast.
func (e *Engine) ShowToastDetail(text, detail string, kind model.Kind, opts ...model.Option) tea.Cmd {
	return e.toast(text, detail, kind, kind != nil, opts...)
}

// toast never dims, never carries an action button and always expires.
func (e *Engine) toast(text, detail string, kind model.Kind, icon bool, opts ...model.Option) tea.Cmd {
	if kind == nil {
		kind = model.Info
	}
	base := e.defaults.Toast.Presentation()
	cfg := model.BuildConfig(base, kind, opts...)
	cfg.DimBackground = false
	cfg.ShowActionButton = false
	if cfg.Persistent() {
		cfg.Duration = base.Duration
	}
	if text == "" {
		text, detail = detail, ""
	}
	if text == "" {
		e.logger.Debug("empty toast ignored")
		return nil
	}
	spec := model.Resolve(text, detail, kind, cfg, e.composer.Theme())
	return e.present(present.SlotMessage, kindToast, spec, e.composer.Toast(spec, icon, e.metrics()))
}

// SequenceItem is one step of ShowSequence.
type SequenceItem struct {
	Title string
	Body  string
	Kind  model.Kind
}

// ShowSequence shows items one after another, interval apart. Each step
// replaces the previous one; nothing is queued. A later sequence or HideAll
// cancels the steps not yet shown.
func (e *Engine) ShowSequence(items []SequenceItem, interval time.Duration, opts ...model.Option) tea.Cmd {
	e.sequence++
	if len(items) == 0 {
		return nil
	}
	if interval <= 0 {
		interval = e.defaults.Banner.Duration
	}
	if interval <= 0 {
		interval = model.DefaultPresentationConfig().Duration
	}

	gen := e.sequence
	cmds := []tea.Cmd{e.ShowMessage(items[0].Title, items[0].Body, items[0].Kind, opts...)}
	for i := 1; i < len(items); i++ {
		item := items[i]
		step := Request(func(e *Engine) tea.Cmd {
			if e.sequence != gen {
				return nil
			}
			return e.ShowMessage(item.Title, item.Body, item.Kind, opts...)
		})
		cmds = append(cmds, e.track(e.scheduler.Schedule(time.Duration(i)*interval, step)))
	}
	return tea.Batch(cmds...)
}
