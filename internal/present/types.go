// Package present owns the display slots: placement, enter and exit
// animation, the dimming overlay and auto-dismiss timing. It runs entirely on
// the bubbletea update loop; scheduled work arrives back as messages tagged
// with the slot generation they were scheduled for.
package present

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/nativemsg/internal/model"
)

// SlotID identifies one of the independent display slots.
type SlotID int

const (
	SlotMessage SlotID = iota // Banners, toasts, loading and progress
	SlotDialog                // Dialogs and action sheets
)

// String returns the string representation of SlotID.
func (s SlotID) String() string {
	if s == SlotDialog {
		return "dialog"
	}
	return "message"
}

// Phase is the lifecycle state of a slot.
type Phase int

const (
	Hidden Phase = iota
	Entering
	Shown
	Exiting
)

// String returns the string representation of Phase.
func (p Phase) String() string {
	switch p {
	case Entering:
		return "entering"
	case Shown:
		return "shown"
	case Exiting:
		return "exiting"
	default:
		return "hidden"
	}
}

// Surface is the screen area presentations attach to, in terminal cells.
type Surface struct {
	Width      int
	Height     int
	SafeTop    int // Rows reserved at the top (host header)
	SafeBottom int // Rows reserved at the bottom (host status bar)
}

// Valid reports whether the surface can hold content.
func (s Surface) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Frame describes the animation state a view is drawn in.
type Frame struct {
	Alpha float64 // 0 transparent .. 1 opaque
	Scale float64 // Width scale, 1 is identity
}

// Identity is the fully shown frame.
var Identity = Frame{Alpha: 1, Scale: 1}

// View is a detached, composed presentation.
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	Size() (width, height int)
	Render(f Frame) string
}

// Presentation is one presented view and the options it was presented with.
// A presentation is never reused once its slot returns to Hidden.
type Presentation struct {
	ID     model.ID
	Kind   string
	View   View
	Config model.PresentationConfig

	// OnHidden runs once when the presentation leaves its slot, either after
	// the exit animation or when it is replaced.
	OnHidden func()
}

// FrameMsg advances the animation of a slot.
type FrameMsg struct {
	Slot       SlotID
	Generation uint64
}

// ExpireMsg fires the auto-dismiss timer of a slot.
type ExpireMsg struct {
	Slot       SlotID
	Generation uint64
}

// Rect is a placed rectangle in screen cells.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
