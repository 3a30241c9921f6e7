// Package keytone is a monophonic keyboard instrument: keys select an
// equal-tempered note and a single sine voice plays it, shaped by a
// short attack ramp and a slow release fade.
package keytone

import (
	"errors"
	"fmt"
	"sync"

	intaudio "github.com/cbegin/keytone-go/internal/audio"
	intkey "github.com/cbegin/keytone-go/internal/keymap"
	intosc "github.com/cbegin/keytone-go/internal/osc"
	inttune "github.com/cbegin/keytone-go/internal/tuning"
)

// Octave bounds for the z/x octave shift keys.
const (
	MinOctave = 0
	MaxOctave = 8
)

// Backend names an audio output implementation.
type Backend string

const (
	BackendEbiten    Backend = "ebiten"
	BackendPortAudio Backend = "portaudio"
)

// Control keys handled outside the note map.
const (
	keyMute       = ' '
	keyOctaveDown = 'z'
	keyOctaveUp   = 'x'
	keyQuit       = 'q'
	keyEscape     = rune(0x1b)
)

// Action classifies what a key press did.
type Action int

const (
	ActionNone Action = iota
	ActionNote
	ActionMute
	ActionOctave
	ActionQuit
)

type Option func(*synthConfig)

type synthConfig struct {
	params   intosc.Params
	keys     *intkey.Map
	tuning   *inttune.Table
	octave   int
	channels int
	backend  Backend
}

func defaultSynthConfig() synthConfig {
	return synthConfig{
		params:   intosc.DefaultParams(),
		keys:     intkey.Standard(),
		tuning:   inttune.Standard(),
		octave:   3,
		channels: intaudio.EbitenChannels,
		backend:  BackendEbiten,
	}
}

// WithEnvelope overrides the amplitude envelope parameters.
func WithEnvelope(params intosc.Params) Option {
	return func(cfg *synthConfig) {
		cfg.params = params
	}
}

// WithKeyMap replaces the standard home-row note layout.
func WithKeyMap(m *intkey.Map) Option {
	return func(cfg *synthConfig) {
		cfg.keys = m
	}
}

// WithTuning replaces the standard A4 = 440 Hz tuning table.
func WithTuning(t *inttune.Table) Option {
	return func(cfg *synthConfig) {
		cfg.tuning = t
	}
}

// WithInitialOctave sets the starting octave (0-8, default 3).
func WithInitialOctave(octave int) Option {
	return func(cfg *synthConfig) {
		cfg.octave = octave
	}
}

// WithChannelCount sets the interleaved output channel count.
func WithChannelCount(n int) Option {
	return func(cfg *synthConfig) {
		cfg.channels = n
	}
}

// WithBackend selects the audio output backend.
func WithBackend(b Backend) Option {
	return func(cfg *synthConfig) {
		cfg.backend = b
	}
}

// Synth owns the oscillator, the note and key tables, and the current
// octave. Key dispatch runs on the caller's goroutine; the oscillator
// is pulled by the audio backend on its own thread.
type Synth struct {
	mu         sync.Mutex
	sampleRate int
	channels   int
	backend    Backend
	keys       *intkey.Map
	tuning     *inttune.Table
	engine     *intosc.Oscillator
	octave     int
	sink       intaudio.Sink
}

func NewSynth(sampleRate int, opts ...Option) (*Synth, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	cfg := defaultSynthConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.octave < MinOctave || cfg.octave > MaxOctave {
		return nil, fmt.Errorf("initial octave %d out of range [%d, %d]", cfg.octave, MinOctave, MaxOctave)
	}
	if cfg.channels < 1 {
		return nil, errors.New("channel count must be positive")
	}
	return &Synth{
		sampleRate: sampleRate,
		channels:   cfg.channels,
		backend:    cfg.backend,
		keys:       cfg.keys,
		tuning:     cfg.tuning,
		engine:     intosc.New(sampleRate, cfg.params),
		octave:     cfg.octave,
	}, nil
}

// HandleKey applies one discrete key press: note keys retarget the
// oscillator (last key wins), space requests the release fade, z/x
// shift the octave within bounds, and q or Escape request shutdown.
// Unbound keys are ignored.
func (s *Synth) HandleKey(key rune) Action {
	switch key {
	case keyQuit, keyEscape:
		return ActionQuit
	case keyMute:
		s.engine.Silence()
		return ActionMute
	case keyOctaveDown:
		s.shiftOctave(-1)
		return ActionOctave
	case keyOctaveUp:
		s.shiftOctave(+1)
		return ActionOctave
	}
	b, ok := s.keys.Lookup(key)
	if !ok {
		return ActionNone
	}
	s.mu.Lock()
	octave := s.octave
	s.mu.Unlock()
	s.engine.SetFrequency(s.tuning.NoteToFrequency(b.Note, octave+b.OctaveOffset))
	return ActionNote
}

func (s *Synth) shiftOctave(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	octave := s.octave + delta
	if octave < MinOctave {
		octave = MinOctave
	}
	if octave > MaxOctave {
		octave = MaxOctave
	}
	s.octave = octave
}

// Octave returns the current octave.
func (s *Synth) Octave() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.octave
}

// Frequency returns the currently requested frequency, 0 when silent.
func (s *Synth) Frequency() float64 {
	return s.engine.Frequency()
}

// KeyMap returns the active key bindings, for display.
func (s *Synth) KeyMap() *intkey.Map {
	return s.keys
}

// Process fills dst with interleaved output frames. It implements the
// audio backend's pull contract and is also used by offline rendering.
func (s *Synth) Process(dst []float32) {
	s.engine.Process(dst, s.channels)
}

// Start opens the audio backend and begins playback.
func (s *Synth) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sink != nil {
		return errors.New("already started")
	}
	sink, err := s.newSink()
	if err != nil {
		return err
	}
	if err := sink.Start(); err != nil {
		return err
	}
	s.sink = sink
	return nil
}

func (s *Synth) newSink() (intaudio.Sink, error) {
	switch s.backend {
	case BackendEbiten:
		if s.channels != intaudio.EbitenChannels {
			return nil, fmt.Errorf("ebiten backend is stereo only, got %d channels", s.channels)
		}
		return intaudio.NewEbitenSink(s.sampleRate, s)
	case BackendPortAudio:
		return intaudio.NewPortAudioSink(s.sampleRate, s.channels, s)
	default:
		return nil, fmt.Errorf("unknown backend %q", s.backend)
	}
}

// Stop tears down the audio backend. It is a no-op when not started.
func (s *Synth) Stop() error {
	s.mu.Lock()
	sink := s.sink
	s.sink = nil
	s.mu.Unlock()
	if sink == nil {
		return nil
	}
	return sink.Stop()
}
