package present

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler turns a delayed message into a command for the update loop.
type Scheduler interface {
	Schedule(d time.Duration, msg tea.Msg) tea.Cmd
}

// TickScheduler schedules with tea.Tick.
type TickScheduler struct{}

// Schedule implements Scheduler.
func (TickScheduler) Schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}
