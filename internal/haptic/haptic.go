// Package haptic provides the feedback collaborator invoked when a message is
// presented. Terminals have no vibration motor, so signals are rendered by a
// backend: a short audio cue through the speaker, or a feedbackd event over
// D-Bus on Linux phones.
package haptic

import (
	"log/slog"
	"strings"
	"sync"
)

// Signal is a haptic feedback pattern.
type Signal int

const (
	None Signal = iota
	Light
	Selection
	Success
	Warning
	Error
)

// String returns the string representation of Signal.
func (s Signal) String() string {
	switch s {
	case Light:
		return "light"
	case Selection:
		return "selection"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "none"
	}
}

// ParseSignal parses a signal name. Unknown names map to None.
func ParseSignal(s string) Signal {
	switch strings.ToLower(s) {
	case "light":
		return Light
	case "selection":
		return Selection
	case "success":
		return Success
	case "warning":
		return Warning
	case "error":
		return Error
	default:
		return None
	}
}

// Performer performs haptic feedback. Implementations must not block the
// caller; Perform is invoked from the UI loop.
type Performer interface {
	Perform(s Signal)
}

// Func adapts a function to the Performer interface.
type Func func(Signal)

// Perform implements Performer.
func (f Func) Perform(s Signal) { f(s) }

type nop struct{}

func (nop) Perform(Signal) {}

// Nop discards every signal.
var Nop Performer = nop{}

// Gate forwards signals only while Enabled reports true. Enabled is read on
// every call so a preference change applies to the next message.
type Gate struct {
	Enabled func() bool
	Next    Performer
}

// Perform implements Performer.
func (g Gate) Perform(s Signal) {
	if s == None || g.Next == nil {
		return
	}
	if g.Enabled != nil && !g.Enabled() {
		return
	}
	g.Next.Perform(s)
}

// Recorder records performed signals.
type Recorder struct {
	mu      sync.Mutex
	signals []Signal
}

// Perform implements Performer.
func (r *Recorder) Perform(s Signal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, s)
}

// Signals returns a copy of the recorded signals.
func (r *Recorder) Signals() []Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Signal, len(r.signals))
	copy(out, r.signals)
	return out
}

// Reset clears the recording.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = nil
}

// Backend names.
const (
	BackendAuto      = "auto"
	BackendAudio     = "audio"
	BackendFeedbackd = "feedbackd"
	BackendNone      = "none"
)

// Config selects and tunes a backend.
type Config struct {
	Backend string
	Volume  int               // 0-100
	Sounds  map[Signal]string // Optional sound files; synthesized tones otherwise
	AppID   string            // feedbackd application id
}

// New creates the performer for cfg. "auto" prefers feedbackd when the
// service is reachable and falls back to audio. Backend failures never
// surface to callers; the result degrades to Nop.
func New(cfg Config, logger *slog.Logger) Performer {
	if logger == nil {
		logger = slog.Default()
	}

	switch strings.ToLower(cfg.Backend) {
	case BackendNone:
		return Nop
	case BackendFeedbackd:
		fb, err := NewFeedbackd(cfg.AppID, logger)
		if err != nil {
			logger.Warn("feedbackd unavailable, haptics disabled", "error", err)
			return Nop
		}
		return fb
	case BackendAudio:
		return newAudioFromConfig(cfg, logger)
	default:
		if fb, err := NewFeedbackd(cfg.AppID, logger); err == nil {
			logger.Debug("using feedbackd haptics backend")
			return fb
		}
		logger.Debug("using audio haptics backend")
		return newAudioFromConfig(cfg, logger)
	}
}

func newAudioFromConfig(cfg Config, logger *slog.Logger) *Audio {
	a := NewAudio(logger)
	if cfg.Volume > 0 {
		a.SetVolume(float64(cfg.Volume) / 100.0)
	}
	for sig, path := range cfg.Sounds {
		a.SetSound(sig, path)
	}
	return a
}
