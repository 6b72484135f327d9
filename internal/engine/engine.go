// Package engine is the public surface of the native messages system. A host
// bubbletea model owns one Engine, forwards every message to Update and draws
// its screen through View.
//
// An Engine is owned by the bubbletea update loop. Every Show, Hide and
// Update method, and every setter, must be called from the host's Update or
// from a Request the engine runs; calling them from another goroutine is a
// data race. Goroutines hand work to the loop with Post or Do.
//
// Every entry point is total: a missing screen, an empty action list or an
// unresolved theme token degrade to a no-op or default visuals and are logged,
// never returned.
package engine

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/nativemsg/internal/compose"
	"github.com/jmylchreest/nativemsg/internal/haptic"
	"github.com/jmylchreest/nativemsg/internal/i18n"
	"github.com/jmylchreest/nativemsg/internal/model"
	"github.com/jmylchreest/nativemsg/internal/present"
	"github.com/jmylchreest/nativemsg/internal/theme"
)

// HapticsPreference reports the persisted haptics flag.
type HapticsPreference interface {
	HapticsEnabled() bool
}

// Options configures an Engine. Every field is optional.
type Options struct {
	Theme     theme.Resolver
	Localizer i18n.Localizer
	Haptics   haptic.Performer
	Prefs     HapticsPreference
	Scheduler present.Scheduler
	Animation present.AnimationConfig
	Defaults  *model.Defaults
	Keys      *KeyMap

	// Rows kept clear of presentations at the screen edges.
	SafeTop    int
	SafeBottom int

	Logger *slog.Logger
}

// record tracks the occupant of a slot for input routing.
type record struct {
	id    model.ID
	kind  string
	view  present.View
	fired bool // An action handler ran or was discarded
}

func (r *record) interactive() (compose.Interactive, bool) {
	if r == nil || r.fired {
		return nil, false
	}
	iv, ok := r.view.(compose.Interactive)
	if !ok || len(iv.Actions()) == 0 {
		return nil, false
	}
	return iv, true
}

// Engine presents messages and dialogs over a host screen.
type Engine struct {
	logger    *slog.Logger
	ctrl      *present.Controller
	composer  *compose.Composer
	scheduler present.Scheduler
	haptics   haptic.Gate
	defaults  model.Defaults
	keys      KeyMap

	safeTop    int
	safeBottom int

	message *record
	dialog  *record

	progress   *compose.ProgressHandle
	progressID model.ID

	sequence uint64 // Bumped to cancel pending sequence steps

	dispatching bool
	deferred    []tea.Cmd
}

// New creates an engine. It has no screen until the first tea.WindowSizeMsg
// or SetSurface call.
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = present.TickScheduler{}
	}
	if opts.Haptics == nil {
		opts.Haptics = haptic.Nop
	}
	if opts.Animation == (present.AnimationConfig{}) {
		opts.Animation = present.DefaultAnimationConfig()
	}
	defaults := model.DefaultDefaults()
	if opts.Defaults != nil {
		defaults = *opts.Defaults
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	composer := compose.NewComposer(opts.Theme, opts.Localizer)
	e := &Engine{
		logger:     opts.Logger,
		composer:   composer,
		scheduler:  opts.Scheduler,
		defaults:   defaults,
		keys:       keys,
		safeTop:    opts.SafeTop,
		safeBottom: opts.SafeBottom,
		ctrl: present.NewController(present.Options{
			Scheduler: opts.Scheduler,
			Animation: opts.Animation,
			Dimmer:    composer.Dimmer(),
			Logger:    opts.Logger,
		}),
	}
	e.haptics = haptic.Gate{Next: opts.Haptics}
	if opts.Prefs != nil {
		e.haptics.Enabled = opts.Prefs.HapticsEnabled
	}
	return e
}

// SetSurface attaches the engine to a screen of the given size in cells.
func (e *Engine) SetSurface(width, height int) {
	if width <= 0 || height <= 0 {
		e.ctrl.ClearSurface()
		return
	}
	e.ctrl.SetSurface(present.Surface{
		Width:      width,
		Height:     height,
		SafeTop:    e.safeTop,
		SafeBottom: e.safeBottom,
	})
}

// SetSafeArea reserves rows at the top and bottom of the screen.
func (e *Engine) SetSafeArea(top, bottom int) {
	e.safeTop, e.safeBottom = max(0, top), max(0, bottom)
	if s, ok := e.ctrl.CurrentSurface(); ok {
		e.SetSurface(s.Width, s.Height)
	}
}

// SetDefaults replaces the presentation defaults for later calls.
func (e *Engine) SetDefaults(d model.Defaults) {
	e.defaults = d
}

// Defaults returns the presentation defaults.
func (e *Engine) Defaults() model.Defaults {
	return e.defaults
}

// SetAnimation replaces the animation timing.
func (e *Engine) SetAnimation(a present.AnimationConfig) {
	e.ctrl.SetAnimation(a)
}

// SetTheme switches the theming collaborator. Views on screen keep their
// colours; the next presentation resolves against r.
func (e *Engine) SetTheme(r theme.Resolver) {
	e.composer.SetTheme(r)
	e.ctrl.SetDimmer(e.composer.Dimmer())
}

// SetLocalizer switches the localized string lookup.
func (e *Engine) SetLocalizer(l i18n.Localizer) {
	e.composer.SetLocalizer(l)
}

// SetHaptics replaces the haptic performer.
func (e *Engine) SetHaptics(p haptic.Performer) {
	if p == nil {
		p = haptic.Nop
	}
	e.haptics.Next = p
}

// Localizer returns the localized string lookup in use.
func (e *Engine) Localizer() i18n.Localizer {
	return e.composer.Localizer()
}

// Keys returns the key bindings the engine consumes.
func (e *Engine) Keys() KeyMap {
	return e.keys
}

// HasActiveMessage reports whether a message is entering or shown.
func (e *Engine) HasActiveMessage() bool {
	return e.ctrl.Active(present.SlotMessage)
}

// HasActiveDialog reports whether a dialog or action sheet is entering or
// shown.
func (e *Engine) HasActiveDialog() bool {
	return e.ctrl.Active(present.SlotDialog)
}

// Phase returns the lifecycle state of a slot.
func (e *Engine) Phase(slot present.SlotID) present.Phase {
	return e.ctrl.Phase(slot)
}

// OverlayVisible reports whether the dimming overlay exists.
func (e *Engine) OverlayVisible() bool {
	return e.ctrl.OverlayVisible()
}

// Current returns the spec of the presentation occupying slot.
func (e *Engine) Current(slot present.SlotID) (model.Spec, bool) {
	p := e.ctrl.Current(slot)
	if p == nil {
		return model.Spec{}, false
	}
	v, ok := p.View.(interface{ Spec() model.Spec })
	if !ok {
		return model.Spec{}, false
	}
	return v.Spec(), true
}

// Hide starts the exit of the current message. Dialogs are not affected.
// Must run on the update loop.
func (e *Engine) Hide() tea.Cmd {
	return e.track(e.ctrl.Dismiss(present.SlotMessage))
}

// HideDialog starts the exit of the current dialog or action sheet without
// running any of its handlers.
func (e *Engine) HideDialog() tea.Cmd {
	if e.dialog != nil {
		e.dialog.fired = true
	}
	return e.track(e.ctrl.Dismiss(present.SlotDialog))
}

// HideAll hides both slots and cancels any pending sequence.
func (e *Engine) HideAll() tea.Cmd {
	e.sequence++
	if e.dialog != nil {
		e.dialog.fired = true
	}
	return e.track(e.ctrl.DismissAll())
}

// View composites the overlay and presentations over the host screen.
func (e *Engine) View(base string) string {
	return e.ctrl.View(base)
}

func (e *Engine) metrics() compose.Metrics {
	s, ok := e.ctrl.CurrentSurface()
	if !ok {
		return compose.DefaultMetrics
	}
	return compose.Metrics{Width: s.Width, Height: s.Height}
}

func (e *Engine) localize(key string) string {
	return e.composer.Localizer().Localize(key)
}

// present hands a composed view to the controller and records it. The
// haptic signal plays only when the view made it onto the screen.
func (e *Engine) present(slot present.SlotID, kind string, spec model.Spec, view present.View) tea.Cmd {
	if spec.Fallback {
		e.logger.Debug("default visuals used", "kind", spec.Kind.String(), "id", spec.ID)
	}

	rec := &record{id: spec.ID, kind: kind, view: view}
	p := &present.Presentation{
		ID:       spec.ID,
		Kind:     kind,
		View:     view,
		Config:   spec.Config,
		OnHidden: func() { e.hidden(slot, rec) },
	}
	ok, cmd := e.ctrl.Present(slot, p)
	if !ok {
		return nil
	}

	if slot == present.SlotDialog {
		e.dialog = rec
	} else {
		e.message = rec
	}
	e.haptics.Perform(spec.Haptic)
	return e.track(cmd)
}

// hidden clears the record of a presentation that left its slot. A record
// already replaced by a newer presentation is left alone.
func (e *Engine) hidden(slot present.SlotID, rec *record) {
	rec.fired = true
	switch slot {
	case present.SlotDialog:
		if e.dialog == rec {
			e.dialog = nil
		}
	default:
		if e.message == rec {
			e.message = nil
		}
		if e.progressID == rec.id {
			e.progress = nil
			e.progressID = ""
		}
	}
}

// track routes commands produced while a handler runs into the current
// Update result. Handlers cannot return commands themselves.
func (e *Engine) track(cmd tea.Cmd) tea.Cmd {
	if e.dispatching && cmd != nil {
		e.deferred = append(e.deferred, cmd)
		return nil
	}
	return cmd
}

func (e *Engine) dispatch(fn func()) tea.Cmd {
	if fn == nil {
		return nil
	}
	if e.dispatching {
		fn()
		return nil
	}
	e.dispatching = true
	defer func() {
		e.dispatching = false
	}()
	fn()
	cmds := e.deferred
	e.deferred = nil
	return tea.Batch(cmds...)
}
