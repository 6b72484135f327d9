// Package presets maps named scenarios onto engine calls with localized
// strings. Presets hold no state of their own.
package presets

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/nativemsg/internal/engine"
	"github.com/jmylchreest/nativemsg/internal/i18n"
	"github.com/jmylchreest/nativemsg/internal/model"
)

func text(e *engine.Engine, key string, args ...any) string {
	if len(args) == 0 {
		return e.Localizer().Localize(key)
	}
	return i18n.Format(e.Localizer(), key, args...)
}

// ShowNetworkError shows the connection error banner.
func ShowNetworkError(e *engine.Engine) tea.Cmd {
	return e.ShowError(text(e, "presets.network_error.title"), text(e, "presets.network_error.body"))
}

// ShowNetworkErrorRetry shows the connection error with a retry button.
func ShowNetworkErrorRetry(e *engine.Engine, onRetry func()) tea.Cmd {
	return e.ShowNotification(
		text(e, "presets.network_error.title"),
		text(e, "presets.network_error.body"),
		model.Error,
		text(e, "common.retry"),
		onRetry,
		model.WithPersist(),
	)
}

// ShowSaving shows a loading banner that does not dim the screen.
func ShowSaving(e *engine.Engine) tea.Cmd {
	return e.ShowLoading(text(e, "presets.saving.title"), "", model.WithDim(false))
}

// ShowSaved acknowledges a save with a toast.
func ShowSaved(e *engine.Engine) tea.Cmd {
	return e.ShowSuccessToast(text(e, "presets.saved.title"))
}

// ShowCopied acknowledges a clipboard copy.
func ShowCopied(e *engine.Engine) tea.Cmd {
	return e.ShowSuccessToast(text(e, "presets.copied.title"))
}

// ShowDeleteConfirmation asks before deleting. onCancel may be nil.
func ShowDeleteConfirmation(e *engine.Engine, onConfirm, onCancel func()) tea.Cmd {
	return e.ShowAlert(
		text(e, "presets.delete_confirmation.title"),
		text(e, "presets.delete_confirmation.body"),
		model.Warning,
		model.DestructiveAction(text(e, "common.delete"), onConfirm),
		model.SecondaryAction(text(e, "common.cancel"), onCancel),
	)
}

// ShowUpdateDialog offers an update. onSkip may be nil.
func ShowUpdateDialog(e *engine.Engine, onUpdate, onSkip func()) tea.Cmd {
	return e.ShowAlert(
		text(e, "presets.update.title"),
		text(e, "presets.update.body"),
		model.Info,
		model.PrimaryAction(text(e, "presets.update.confirm"), onUpdate),
		model.SecondaryAction(text(e, "presets.update.skip"), onSkip),
	)
}

// ShowFieldRequired warns that a form field was left empty.
func ShowFieldRequired(e *engine.Engine, field string) tea.Cmd {
	return e.ShowWarning(text(e, "presets.field_required.title"), text(e, "presets.field_required.body", field))
}

// ShowStorageFull warns about low storage, with sizes in human units.
func ShowStorageFull(e *engine.Engine, free, total uint64) tea.Cmd {
	return e.ShowWarning(
		text(e, "presets.storage_full.title"),
		text(e, "presets.storage_full.body", humanize.Bytes(free), humanize.Bytes(total)),
		model.WithDuration(2*model.DefaultPresentationConfig().Duration),
	)
}

// ShowUploadProgress shows a progress banner for an upload of size bytes.
// Drive it with engine.UpdateProgress.
func ShowUploadProgress(e *engine.Engine, name string, size uint64) tea.Cmd {
	label := name
	if size > 0 {
		label = name + " (" + humanize.Bytes(size) + ")"
	}
	return e.ShowProgress(text(e, "presets.upload.title", label), 0)
}

// ShowSessionExpired asks the user to sign in again.
func ShowSessionExpired(e *engine.Engine, onSignIn func()) tea.Cmd {
	return e.ShowAlert(
		text(e, "presets.session_expired.title"),
		text(e, "presets.session_expired.body"),
		model.Error,
		model.PrimaryAction(text(e, "presets.session_expired.confirm"), onSignIn),
	)
}
