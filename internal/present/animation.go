package present

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/jmylchreest/nativemsg/internal/model"
)

// AnimationConfig controls enter and exit timing.
type AnimationConfig struct {
	Enter     time.Duration
	Exit      time.Duration
	Frame     time.Duration // Interval between animation frames
	Frequency float64       // Spring angular frequency
	Damping   float64       // Spring damping ratio; 1 is critically damped
}

// DefaultAnimationConfig returns the default timing: 300ms each way at
// roughly 15 frames per second.
func DefaultAnimationConfig() AnimationConfig {
	return AnimationConfig{
		Enter:     300 * time.Millisecond,
		Exit:      300 * time.Millisecond,
		Frame:     time.Second / 60 * 4,
		Frequency: 12,
		Damping:   1,
	}
}

// normalize fills zero fields from the defaults.
func (a AnimationConfig) normalize() AnimationConfig {
	d := DefaultAnimationConfig()
	if a.Frame <= 0 {
		a.Frame = d.Frame
	}
	if a.Frequency <= 0 {
		a.Frequency = d.Frequency
	}
	if a.Damping <= 0 {
		a.Damping = d.Damping
	}
	if a.Enter < 0 {
		a.Enter = 0
	}
	if a.Exit < 0 {
		a.Exit = 0
	}
	return a
}

// frames returns the number of frames needed to cover d.
func (a AnimationConfig) frames(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(float64(d) / float64(a.Frame)))
}

// enterCurve samples the spring from 0 towards 1, one value per frame. The
// last sample is pinned to 1 so the view lands at identity.
func (a AnimationConfig) enterCurve() []float64 {
	n := a.frames(a.Enter)
	if n == 0 {
		return nil
	}
	spring := harmonica.NewSpring(a.Frame.Seconds(), a.Frequency, a.Damping)
	curve := make([]float64, n)
	pos, vel := 0.0, 0.0
	for i := range curve {
		pos, vel = spring.Update(pos, vel, 1)
		curve[i] = clamp01(pos)
	}
	curve[n-1] = 1
	return curve
}

// exitCurve is an ease-in cubic from 1 to 0.
func (a AnimationConfig) exitCurve() []float64 {
	n := a.frames(a.Exit)
	if n == 0 {
		return nil
	}
	curve := make([]float64, n)
	for i := range curve {
		t := float64(i+1) / float64(n)
		curve[i] = 1 - t*t*t
	}
	return curve
}

// transform maps visibility v (0 hidden, 1 shown) to a row offset and frame
// for the given position. Top content slides down from above the safe area,
// bottom content slides up from below, centered content grows from 80%.
func transform(pos model.Position, v float64, height, travel int) (int, Frame) {
	v = clamp01(v)
	f := Frame{Alpha: v, Scale: 1}
	switch pos {
	case model.Top:
		return -int(math.Round((1 - v) * float64(height+travel))), f
	case model.Bottom:
		return int(math.Round((1 - v) * float64(height+travel))), f
	default:
		f.Scale = 0.8 + 0.2*v
		return 0, f
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
