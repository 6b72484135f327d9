package present

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

type slot struct {
	id    SlotID
	phase Phase
	gen   uint64
	p     *Presentation
	frame int       // Frames elapsed in the current animation
	curve []float64 // Visibility per frame of the current animation
}

// visibility is 0 when hidden and 1 when fully shown.
func (s *slot) visibility() float64 {
	switch s.phase {
	case Shown:
		return 1
	case Entering, Exiting:
		if s.frame == 0 {
			if s.phase == Entering {
				return 0
			}
			return 1
		}
		return s.curve[min(s.frame, len(s.curve))-1]
	default:
		return 0
	}
}

func (s *slot) needsOverlay() bool {
	return s.phase != Hidden && s.p != nil && s.p.Config.DimBackground
}

// overlay is the single dimming surface shared by both slots.
type overlay struct {
	createdFor SlotID
}

// Options configures a Controller. A zero Animation uses
// DefaultAnimationConfig.
type Options struct {
	Scheduler Scheduler
	Animation AnimationConfig
	Dimmer    Dimmer
	Logger    *slog.Logger
}

// Controller owns the message and dialog slots and the dimming overlay. It is
// not safe for concurrent use; every method must run on the update loop.
type Controller struct {
	logger    *slog.Logger
	scheduler Scheduler
	anim      AnimationConfig
	dimmer    Dimmer

	surface    Surface
	hasSurface bool

	slots   [2]*slot
	overlay *overlay
}

// NewController creates a controller with no screen surface.
func NewController(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TickScheduler{}
	}
	if opts.Dimmer == nil {
		opts.Dimmer = FaintDimmer
	}
	if opts.Animation == (AnimationConfig{}) {
		opts.Animation = DefaultAnimationConfig()
	}
	c := &Controller{
		logger:    opts.Logger,
		scheduler: opts.Scheduler,
		anim:      opts.Animation.normalize(),
		dimmer:    opts.Dimmer,
	}
	for i := range c.slots {
		c.slots[i] = &slot{id: SlotID(i)}
	}
	return c
}

// SetAnimation replaces the animation timing. Running animations keep the
// curve they started with.
func (c *Controller) SetAnimation(a AnimationConfig) {
	c.anim = a.normalize()
}

// Animation returns the animation timing.
func (c *Controller) Animation() AnimationConfig {
	return c.anim
}

// SetDimmer replaces the overlay renderer.
func (c *Controller) SetDimmer(d Dimmer) {
	if d != nil {
		c.dimmer = d
	}
}

// SetSurface attaches the controller to a screen surface.
func (c *Controller) SetSurface(s Surface) {
	c.surface = s
	c.hasSurface = s.Valid()
}

// ClearSurface detaches the screen surface. Later presents fail until a new
// surface is set.
func (c *Controller) ClearSurface() {
	c.hasSurface = false
}

// CurrentSurface returns the screen surface, if any.
func (c *Controller) CurrentSurface() (Surface, bool) {
	return c.surface, c.hasSurface
}

// Present shows p in the slot, replacing whatever occupies it. The previous
// occupant is detached immediately without an exit animation. Returns false
// when there is no screen surface; the call is then a no-op.
func (c *Controller) Present(id SlotID, p *Presentation) (bool, tea.Cmd) {
	if p == nil || p.View == nil {
		c.logger.Warn("present called without a view", "slot", id)
		return false, nil
	}
	if !c.hasSurface {
		c.logger.Warn("no screen surface, presentation dropped", "slot", id, "id", p.ID)
		return false, nil
	}

	s := c.slots[id]
	if s.phase != Hidden {
		c.logger.Debug("replacing presentation", "slot", id, "old", s.p.ID, "phase", s.phase, "new", p.ID)
		c.detach(s)
	}

	s.gen++
	s.p = p
	s.phase = Entering
	s.frame = 0
	s.curve = c.anim.enterCurve()

	if p.Config.DimBackground && c.overlay == nil {
		c.overlay = &overlay{createdFor: id}
		c.logger.Debug("overlay created", "slot", id)
	}
	c.releaseOverlay()

	c.logger.Debug("presenting", "slot", id, "id", p.ID, "kind", p.Kind, "generation", s.gen)

	cmds := []tea.Cmd{p.View.Init()}
	if len(s.curve) == 0 {
		cmds = append(cmds, c.shown(s))
	} else {
		cmds = append(cmds, c.scheduler.Schedule(c.anim.Frame, FrameMsg{Slot: id, Generation: s.gen}))
	}
	return true, tea.Batch(cmds...)
}

// Dismiss starts the exit of the slot's presentation. A slot still entering
// is cancelled and hidden at once; a slot already exiting or hidden is left
// alone.
func (c *Controller) Dismiss(id SlotID) tea.Cmd {
	s := c.slots[id]
	switch s.phase {
	case Hidden:
		c.logger.Debug("dismiss ignored, slot hidden", "slot", id)
		return nil
	case Exiting:
		return nil
	case Entering:
		c.logger.Debug("dismissed while entering", "slot", id, "id", s.p.ID)
		s.gen++
		c.finish(s)
		return nil
	}

	s.gen++
	s.phase = Exiting
	s.frame = 0
	s.curve = c.anim.exitCurve()
	if len(s.curve) == 0 {
		c.finish(s)
		return nil
	}
	return c.scheduler.Schedule(c.anim.Frame, FrameMsg{Slot: id, Generation: s.gen})
}

// DismissAll dismisses both slots.
func (c *Controller) DismissAll() tea.Cmd {
	return tea.Batch(c.Dismiss(SlotMessage), c.Dismiss(SlotDialog))
}

// Update handles frame and expiry messages and forwards everything else to
// the views on screen. handled reports whether msg belonged to the
// controller.
func (c *Controller) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		return true, c.advance(msg)
	case ExpireMsg:
		s := c.slots[msg.Slot]
		if msg.Generation != s.gen || s.phase != Shown {
			c.logger.Debug("stale timer ignored", "slot", msg.Slot, "generation", msg.Generation, "current", s.gen)
			return true, nil
		}
		c.logger.Debug("auto-dismiss", "slot", msg.Slot, "id", s.p.ID)
		return true, c.Dismiss(msg.Slot)
	}

	var cmds []tea.Cmd
	for _, s := range c.slots {
		if s.phase != Hidden && s.p != nil {
			cmds = append(cmds, s.p.View.Update(msg))
		}
	}
	return false, tea.Batch(cmds...)
}

func (c *Controller) advance(msg FrameMsg) tea.Cmd {
	s := c.slots[msg.Slot]
	if msg.Generation != s.gen {
		return nil
	}

	switch s.phase {
	case Entering:
		s.frame++
		if s.frame >= len(s.curve) {
			return c.shown(s)
		}
	case Exiting:
		s.frame++
		if s.frame >= len(s.curve) {
			c.finish(s)
			return nil
		}
	default:
		return nil
	}
	return c.scheduler.Schedule(c.anim.Frame, FrameMsg{Slot: s.id, Generation: s.gen})
}

// shown completes the enter animation and arms the auto-dismiss timer.
func (c *Controller) shown(s *slot) tea.Cmd {
	s.phase = Shown
	s.frame = 0
	s.curve = nil
	if s.p.Config.Persistent() {
		return nil
	}
	return c.scheduler.Schedule(s.p.Config.Duration, ExpireMsg{Slot: s.id, Generation: s.gen})
}

// detach drops the occupant without animating. The generation is bumped by
// the caller's next present.
func (c *Controller) detach(s *slot) {
	p := s.p
	s.phase = Hidden
	s.p = nil
	s.frame = 0
	s.curve = nil
	if p != nil && p.OnHidden != nil {
		p.OnHidden()
	}
}

// finish moves the slot to Hidden and releases the overlay if unused.
func (c *Controller) finish(s *slot) {
	id := s.p.ID
	c.detach(s)
	c.logger.Debug("presentation hidden", "slot", s.id, "id", id)
	c.releaseOverlay()
}

func (c *Controller) releaseOverlay() {
	if c.overlay == nil {
		return
	}
	for _, s := range c.slots {
		if s.needsOverlay() {
			return
		}
	}
	c.overlay = nil
	c.logger.Debug("overlay released")
}

// Phase returns the lifecycle state of the slot.
func (c *Controller) Phase(id SlotID) Phase {
	return c.slots[id].phase
}

// Active reports whether the slot is entering or shown.
func (c *Controller) Active(id SlotID) bool {
	p := c.slots[id].phase
	return p == Entering || p == Shown
}

// Current returns the slot's presentation, or nil when hidden.
func (c *Controller) Current(id SlotID) *Presentation {
	return c.slots[id].p
}

// Generation returns the slot's generation counter.
func (c *Controller) Generation(id SlotID) uint64 {
	return c.slots[id].gen
}

// OverlayVisible reports whether the dimming overlay exists.
func (c *Controller) OverlayVisible() bool {
	return c.overlay != nil
}

// overlayAlpha is the overlay opacity: the visibility of the most visible
// slot that needs it.
func (c *Controller) overlayAlpha() float64 {
	alpha := 0.0
	for _, s := range c.slots {
		if s.needsOverlay() {
			alpha = max(alpha, s.visibility())
		}
	}
	return alpha
}
