package engine

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/nativemsg/internal/haptic"
	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/present"
)

// ShowDialog shows a centred modal dialog. It always dims, never expires and
// never dismisses on its own; exactly one handler runs, after which the
// dialog exits. An empty action list gets a single OK button. Call it on the
// update loop.
func (e *Engine) ShowDialog(title, body string, actions ...model.DialogAction) tea.Cmd {
	return e.ShowAlert(title, body, model.Info, actions...)
}

// ShowAlert is ShowDialog with the icon and haptic of kind.
func (e *Engine) ShowAlert(title, body string, kind model.Kind, actions ...model.DialogAction) tea.Cmd {
	if kind == nil {
		kind = model.Info
	}
	if len(actions) == 0 {
		e.logger.Debug("dialog without actions, adding OK", "title", title)
		actions = []model.DialogAction{model.SecondaryAction(e.localize("common.ok"), nil)}
	}
	spec := model.Resolve(title, body, kind, e.modalConfig(model.Center), e.composer.Theme())
	return e.present(present.SlotDialog, kindDialog, spec, e.composer.Dialog(spec, actions, e.metrics()))
}

// ShowConfirm shows the two-button dialog. Empty button titles use the
// localized OK and Cancel.
func (e *Engine) ShowConfirm(title, body, confirm, cancel string, onConfirm, onCancel func()) tea.Cmd {
	if confirm == "" {
		confirm = e.localize("common.ok")
	}
	if cancel == "" {
		cancel = e.localize("common.cancel")
	}
	return e.ShowDialog(title, body,
		model.PrimaryAction(confirm, onConfirm),
		model.SecondaryAction(cancel, onCancel),
	)
}

// ShowActionSheet shows a bottom sheet with one button per action. Tapping
// outside the sheet cancels it without running a handler.
func (e *Engine) ShowActionSheet(title, message string, actions ...model.DialogAction) tea.Cmd {
	if len(actions) == 0 {
		actions = []model.DialogAction{model.SecondaryAction(e.localize("common.cancel"), nil)}
	}
	spec := model.Resolve(title, message, model.Info, e.modalConfig(model.Bottom), e.composer.Theme())
	spec.Haptic = e.sheetHaptic(spec)
	return e.present(present.SlotDialog, kindSheet, spec, e.composer.ActionSheet(spec, actions, e.metrics()))
}

// modalConfig is the fixed configuration of dialogs and sheets.
func (e *Engine) modalConfig(pos model.Position) model.PresentationConfig {
	cfg := e.defaults.Banner
	cfg.Position = pos
	cfg.Duration = model.Persist
	cfg.DimBackground = true
	cfg.Interactive = true
	cfg.ShowActionButton = false
	return cfg
}

func (e *Engine) sheetHaptic(spec model.Spec) haptic.Signal {
	if !spec.Config.HapticEnabled {
		return haptic.None
	}
	return haptic.Selection
}
