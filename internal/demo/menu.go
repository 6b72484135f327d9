package demo

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/nativemsg/internal/engine"
	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/presets"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

// item is one entry of the demo menu.
type item struct {
	title string
	desc  string
	run   func(m *Model) tea.Cmd
}

// uploadStep is the interval of the simulated upload.
const uploadStep = 250 * time.Millisecond

type uploadTickMsg struct {
	id int
}

func menu() []item {
	return []item{
		{"Success", "top banner, 3s", func(m *Model) tea.Cmd {
			return m.engine.ShowSuccess("Profile updated", "Your changes are live.")
		}},
		{"Error", "top banner, 3s", func(m *Model) tea.Cmd {
			return m.engine.ShowError("Payment failed", "The card was declined. Try another payment method or contact your bank.")
		}},
		{"Warning", "bottom banner", func(m *Model) tea.Cmd {
			return m.engine.ShowWarning("Battery low", "Plug in soon.", model.WithPosition(model.Bottom))
		}},
		{"Info", "centred, tap-through disabled", func(m *Model) tea.Cmd {
			return m.engine.ShowInfo("Heads up", "This one ignores taps.", model.WithPosition(model.Center), model.WithInteractive(false))
		}},
		{"Custom kind", "theme token with a custom icon", func(m *Model) tea.Cmd {
			return m.engine.ShowMessage("Starred", "Added to favourites.", model.Custom{
				Background: theme.TokenPrimary,
				Text:       theme.TokenOnAccent,
				Icon:       model.IconStar,
			})
		}},
		{"Loading", "dims, hides itself after 2s", func(m *Model) tea.Cmd {
			return m.engine.ShowLoading("", "Fetching messages", model.WithDuration(2*time.Second))
		}},
		{"Progress", "simulated upload", func(m *Model) tea.Cmd {
			m.upload++
			m.uploaded = 0
			return tea.Batch(
				presets.ShowUploadProgress(m.engine, "holiday.mov", 48_000_000),
				m.uploadTick(),
			)
		}},
		{"Notification", "banner with an action", func(m *Model) tea.Cmd {
			return m.engine.ShowNotification("New message", "Sam: are we still on for tonight?", model.Info, "Reply", func() {
				m.status = "reply tapped"
			})
		}},
		{"Toast", "bottom pill, 2s", func(m *Model) tea.Cmd {
			return m.engine.ShowToast("Link copied")
		}},
		{"Success toast", "toast with icon", func(m *Model) tea.Cmd {
			return m.engine.ShowSuccessToast("Sent")
		}},
		{"Error toast", "toast with icon", func(m *Model) tea.Cmd {
			return m.engine.ShowErrorToast("Not sent")
		}},
		{"Dialog", "three actions, stacked", func(m *Model) tea.Cmd {
			return m.engine.ShowDialog("Save changes?", "You have unsaved edits to this document.",
				model.PrimaryAction("Save", func() { m.status = "saved" }),
				model.DestructiveAction("Discard", func() { m.status = "discarded" }),
				model.SecondaryAction("Cancel", func() { m.status = "cancelled" }),
			)
		}},
		{"Confirm", "two-button dialog", func(m *Model) tea.Cmd {
			return m.engine.ShowConfirm("Log out?", "You will need to sign in again.", "Log out", "", func() {
				m.status = "logged out"
				m.engine.ShowInfo("Signed out", "")
			}, nil)
		}},
		{"Action sheet", "bottom sheet", func(m *Model) tea.Cmd {
			return m.engine.ShowActionSheet("Share photo", "",
				model.PrimaryAction("Copy link", func() { presets.ShowCopied(m.engine) }),
				model.SecondaryAction("Send by email", func() { m.status = "email" }),
				model.DestructiveAction("Remove", func() { m.status = "removed" }),
			)
		}},
		{"Sequence", "three banners, 1.5s apart", func(m *Model) tea.Cmd {
			return m.engine.ShowSequence([]engine.SequenceItem{
				{Title: "Step 1", Body: "Connecting", Kind: model.Info},
				{Title: "Step 2", Body: "Syncing", Kind: model.Warning},
				{Title: "Step 3", Body: "Done", Kind: model.Success},
			}, 1500*time.Millisecond)
		}},
		{"Network error", "preset", func(m *Model) tea.Cmd {
			return presets.ShowNetworkErrorRetry(m.engine, func() { presets.ShowSaving(m.engine) })
		}},
		{"Saving", "preset", func(m *Model) tea.Cmd {
			return presets.ShowSaving(m.engine)
		}},
		{"Saved", "preset", func(m *Model) tea.Cmd {
			return presets.ShowSaved(m.engine)
		}},
		{"Delete confirmation", "preset", func(m *Model) tea.Cmd {
			return presets.ShowDeleteConfirmation(m.engine, func() { m.status = "deleted" }, nil)
		}},
		{"Update dialog", "preset", func(m *Model) tea.Cmd {
			return presets.ShowUpdateDialog(m.engine, func() { m.status = "updating" }, nil)
		}},
		{"Field required", "preset", func(m *Model) tea.Cmd {
			return presets.ShowFieldRequired(m.engine, "Email")
		}},
		{"Storage full", "preset", func(m *Model) tea.Cmd {
			return presets.ShowStorageFull(m.engine, 820_000_000, 128_000_000_000)
		}},
		{"Session expired", "preset", func(m *Model) tea.Cmd {
			return presets.ShowSessionExpired(m.engine, func() { m.status = "signing in" })
		}},
	}
}

func (m *Model) uploadTick() tea.Cmd {
	id := m.upload
	return tea.Tick(uploadStep, func(time.Time) tea.Msg {
		return uploadTickMsg{id: id}
	})
}

// advanceUpload moves the simulated upload on by one step.
func (m *Model) advanceUpload(msg uploadTickMsg) tea.Cmd {
	if msg.id != m.upload {
		return nil
	}
	if _, ok := m.engine.Progress(); !ok {
		return nil
	}
	m.uploaded += 0.05
	if m.uploaded >= 1 {
		return tea.Batch(m.engine.UpdateProgress(1, true), m.engine.ShowSuccessToast("Upload complete"))
	}
	return tea.Batch(m.engine.UpdateProgress(m.uploaded, true), m.uploadTick())
}
