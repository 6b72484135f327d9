package haptic

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

// feedbackd D-Bus names.
const (
	FeedbackdName      = "org.sigxcpu.Feedback"
	FeedbackdPath      = "/org/sigxcpu/Feedback"
	FeedbackdInterface = "org.sigxcpu.Feedback"

	DefaultAppID = "nativemsg"
)

// ErrFeedbackdUnavailable is returned when no process owns the feedbackd name.
var ErrFeedbackdUnavailable = errors.New("feedbackd not running")

// feedbackd event names from the freedesktop sound/feedback theme.
var feedbackEvents = map[Signal]string{
	Light:     "button-pressed",
	Selection: "button-pressed",
	Success:   "complete",
	Warning:   "dialog-warning",
	Error:     "dialog-error",
}

// caller is the subset of dbus.BusObject used to trigger feedback.
type caller interface {
	Go(method string, flags dbus.Flags, ch chan *dbus.Call, args ...interface{}) *dbus.Call
}

// Feedbackd triggers haptic events through the feedbackd daemon.
type Feedbackd struct {
	logger *slog.Logger
	appID  string
	obj    caller
}

// NewFeedbackd connects to the session bus and checks that feedbackd is
// running.
func NewFeedbackd(appID string, logger *slog.Logger) (*Feedbackd, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	var owned bool
	if err := conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, FeedbackdName).Store(&owned); err != nil {
		return nil, fmt.Errorf("failed to query feedbackd: %w", err)
	}
	if !owned {
		return nil, ErrFeedbackdUnavailable
	}

	return newFeedbackd(conn.Object(FeedbackdName, FeedbackdPath), appID, logger), nil
}

func newFeedbackd(obj caller, appID string, logger *slog.Logger) *Feedbackd {
	if appID == "" {
		appID = DefaultAppID
	}
	return &Feedbackd{logger: logger, appID: appID, obj: obj}
}

// Perform implements Performer. The call is fire-and-forget.
func (f *Feedbackd) Perform(s Signal) {
	event, ok := feedbackEvents[s]
	if !ok {
		return
	}

	hints := map[string]dbus.Variant{}
	call := f.obj.Go(FeedbackdInterface+".TriggerFeedback", dbus.FlagNoReplyExpected, nil,
		f.appID, event, hints, int32(-1))
	if call != nil && call.Err != nil {
		f.logger.Debug("feedbackd trigger failed", "event", event, "error", call.Err)
	}
}
