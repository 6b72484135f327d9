package model

import "github.com/jmylchreest/nativemsg/internal/theme"

// Emphasis styles a dialog or action-sheet button.
type Emphasis int

const (
	Primary Emphasis = iota
	Secondary
	Destructive
)

// String returns the string representation of Emphasis.
func (e Emphasis) String() string {
	switch e {
	case Secondary:
		return "secondary"
	case Destructive:
		return "destructive"
	default:
		return "primary"
	}
}

// Token returns the fill colour token for the emphasis.
func (e Emphasis) Token() theme.Token {
	switch e {
	case Secondary:
		return theme.TokenNeutral
	case Destructive:
		return theme.TokenDestructive
	default:
		return theme.TokenPrimary
	}
}

// DialogAction is a button in a dialog, action sheet or notification.
// Handler may be nil.
type DialogAction struct {
	Title    string
	Emphasis Emphasis
	Handler  func()
}

// PrimaryAction returns a primary action.
func PrimaryAction(title string, handler func()) DialogAction {
	return DialogAction{Title: title, Emphasis: Primary, Handler: handler}
}

// SecondaryAction returns a secondary action.
func SecondaryAction(title string, handler func()) DialogAction {
	return DialogAction{Title: title, Emphasis: Secondary, Handler: handler}
}

// DestructiveAction returns a destructive action.
func DestructiveAction(title string, handler func()) DialogAction {
	return DialogAction{Title: title, Emphasis: Destructive, Handler: handler}
}
