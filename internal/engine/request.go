package engine

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Request is work to run against the engine on the update loop. Code outside
// the loop never touches the engine directly; it sends a Request instead.
type Request func(e *Engine) tea.Cmd

// Do returns a command that delivers fn to the engine as a Request.
func Do(fn func(e *Engine) tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		return Request(fn)
	}
}

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// Post sends fn to the engine from any goroutine.
func Post(s Sender, fn func(e *Engine) tea.Cmd) {
	s.Send(Request(fn))
}
