package haptic

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrNoAudioDevice is returned when the speaker cannot be opened.
var ErrNoAudioDevice = errors.New("no audio device")

// tone is the synthesized cue used when no sound file is configured.
type tone struct {
	freq     float64
	duration time.Duration
	repeat   int
}

var defaultTones = map[Signal]tone{
	Light:     {freq: 880, duration: 15 * time.Millisecond, repeat: 1},
	Selection: {freq: 1320, duration: 10 * time.Millisecond, repeat: 1},
	Success:   {freq: 1046, duration: 40 * time.Millisecond, repeat: 2},
	Warning:   {freq: 660, duration: 60 * time.Millisecond, repeat: 2},
	Error:     {freq: 330, duration: 80 * time.Millisecond, repeat: 3},
}

// Audio renders signals as short sound cues.
type Audio struct {
	mu     sync.Mutex
	logger *slog.Logger

	volume      float64
	initialized bool
	failed      bool
	sampleRate  beep.SampleRate

	sounds map[Signal]string
	cache  map[string]*beep.Buffer
}

// NewAudio creates an audio backend. The speaker is opened lazily on the
// first signal.
func NewAudio(logger *slog.Logger) *Audio {
	if logger == nil {
		logger = slog.Default()
	}
	return &Audio{
		logger:     logger,
		volume:     1.0,
		sampleRate: beep.SampleRate(44100),
		sounds:     make(map[Signal]string),
		cache:      make(map[string]*beep.Buffer),
	}
}

// SetVolume sets the playback volume (0.0 to 1.0).
func (a *Audio) SetVolume(volume float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.volume = math.Max(0, math.Min(1, volume))
}

// SetSound assigns a sound file to a signal. An empty path restores the
// synthesized tone.
func (a *Audio) SetSound(s Signal, path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if path == "" {
		delete(a.sounds, s)
		return
	}
	a.sounds[s] = expandPath(path)
}

// Perform implements Performer. Decoding and speaker setup run off the
// caller's goroutine.
func (a *Audio) Perform(s Signal) {
	if s == None {
		return
	}
	go func() {
		if err := a.play(s); err != nil {
			a.logger.Debug("haptic cue failed", "signal", s, "error", err)
		}
	}()
}

func (a *Audio) play(s Signal) error {
	a.mu.Lock()
	path := a.sounds[s]
	failed := a.failed
	a.mu.Unlock()

	if failed {
		return nil
	}

	var streamer beep.Streamer
	var err error
	if path != "" {
		streamer, err = a.fileStreamer(path)
	} else {
		streamer, err = a.toneStreamer(s)
	}
	if err != nil || streamer == nil {
		return err
	}

	speaker.Play(a.withVolume(streamer))
	return nil
}

func (a *Audio) fileStreamer(path string) (beep.Streamer, error) {
	a.mu.Lock()
	buf, ok := a.cache[path]
	a.mu.Unlock()

	if !ok {
		var err error
		buf, err = a.load(path)
		if err != nil {
			return nil, err
		}
		a.mu.Lock()
		a.cache[path] = buf
		a.mu.Unlock()
	}

	var streamer beep.Streamer = buf.Streamer(0, buf.Len())
	if buf.Format().SampleRate != a.sampleRate {
		streamer = beep.Resample(4, buf.Format().SampleRate, a.sampleRate, streamer)
	}
	return streamer, nil
}

func (a *Audio) load(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	if err := a.ensureInitialized(); err != nil {
		return nil, err
	}

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	return buf, nil
}

func (a *Audio) toneStreamer(s Signal) (beep.Streamer, error) {
	t, ok := defaultTones[s]
	if !ok {
		return nil, nil
	}
	if err := a.ensureInitialized(); err != nil {
		return nil, err
	}

	var parts []beep.Streamer
	for i := 0; i < t.repeat; i++ {
		sine, err := generators.SineTone(a.sampleRate, t.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts,
			beep.Take(a.sampleRate.N(t.duration), sine),
			beep.Silence(a.sampleRate.N(t.duration/2)),
		)
	}
	return beep.Seq(parts...), nil
}

func (a *Audio) withVolume(s beep.Streamer) beep.Streamer {
	a.mu.Lock()
	volume := a.volume
	a.mu.Unlock()

	if volume >= 1.0 {
		return s
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeToDecibels(volume),
		Silent:   volume == 0,
	}
}

// ensureInitialized opens the speaker once. A failure is remembered so a
// headless host does not retry on every message.
func (a *Audio) ensureInitialized() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return nil
	}
	if a.failed {
		return ErrNoAudioDevice
	}

	bufferSize := a.sampleRate.N(50 * time.Millisecond)
	if err := speaker.Init(a.sampleRate, bufferSize); err != nil {
		a.failed = true
		return fmt.Errorf("%w: %v", ErrNoAudioDevice, err)
	}

	a.initialized = true
	a.logger.Debug("speaker initialized", "sample_rate", a.sampleRate)
	return nil
}

// Close stops playback and releases the speaker.
func (a *Audio) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		speaker.Close()
		a.initialized = false
	}
	a.cache = make(map[string]*beep.Buffer)
}

// volumeToDecibels converts a linear volume (0-1) to decibels.
func volumeToDecibels(volume float64) float64 {
	if volume <= 0 {
		return -100
	}
	// 0.5 = -6dB, 0.25 = -12dB
	return 20 * math.Log10(volume)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
