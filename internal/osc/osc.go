// Package osc implements a monophonic sine oscillator with a linear
// attack/release amplitude envelope.
//
// All per-sample state (phase, amplitude, release flag) is owned by the
// audio callback and must never be touched from another goroutine. The
// requested frequency is the only value shared with the control side;
// it lives in a single atomic slot so the audio path never blocks.
package osc

import (
	"math"
	"sync/atomic"
)

const twoPi = math.Pi * 2

// Params configures the amplitude envelope.
type Params struct {
	TargetAmplitude float64 // steady-state level while a note is held
	AttackStep      float64 // amplitude gained per sample while ramping up
	ReleaseSeconds  float64 // wall-clock length of the fade to silence
}

func DefaultParams() Params {
	return Params{
		TargetAmplitude: 0.5,
		AttackStep:      0.01,
		ReleaseSeconds:  3.0,
	}
}

// Oscillator produces one sine voice. SetFrequency, Silence and
// Frequency are safe from any goroutine; NextSample and Process must
// only be called from the audio callback.
type Oscillator struct {
	sampleRate  float64
	params      Params
	releaseStep float64

	// Requested frequency as float64 bits; 0 requests silence.
	target uint64

	// Audio-callback state.
	phase     float64
	amplitude float64
	lastFreq  float64
	releasing bool
}

// New returns an oscillator for the given sample rate. Zero or negative
// Params fields fall back to their defaults.
func New(sampleRate int, params Params) *Oscillator {
	def := DefaultParams()
	if params.TargetAmplitude <= 0 {
		params.TargetAmplitude = def.TargetAmplitude
	}
	if params.AttackStep <= 0 {
		params.AttackStep = def.AttackStep
	}
	if params.ReleaseSeconds <= 0 {
		params.ReleaseSeconds = def.ReleaseSeconds
	}
	sr := float64(sampleRate)
	return &Oscillator{
		sampleRate: sr,
		params:     params,
		// Derived from the sample rate so the wall-clock release
		// duration is the same on every device.
		releaseStep: params.TargetAmplitude / (sr * params.ReleaseSeconds),
	}
}

// SetFrequency retargets the oscillator to hz. The audio callback
// observes the new value on its next sample; negative values are
// treated as a request for silence.
func (o *Oscillator) SetFrequency(hz float64) {
	if hz < 0 {
		hz = 0
	}
	atomic.StoreUint64(&o.target, math.Float64bits(hz))
}

// Silence requests the release ramp.
func (o *Oscillator) Silence() {
	o.SetFrequency(0)
}

// Frequency returns the currently requested frequency, 0 when silent.
func (o *Oscillator) Frequency() float64 {
	return math.Float64frombits(atomic.LoadUint64(&o.target))
}

// Amplitude returns the current envelope level.
func (o *Oscillator) Amplitude() float64 { return o.amplitude }

// Releasing reports whether the envelope is fading out.
func (o *Oscillator) Releasing() bool { return o.releasing }

// Phase returns the current phase counter in [0, sampleRate).
func (o *Oscillator) Phase() float64 { return o.phase }

// NextSample advances the envelope and phase by one sample and returns
// the synthesized value.
func (o *Oscillator) NextSample() float32 {
	freq := o.Frequency()
	if freq > 0 {
		o.releasing = false
		o.lastFreq = freq
		if o.amplitude < o.params.TargetAmplitude {
			o.amplitude += o.params.AttackStep
			if o.amplitude > o.params.TargetAmplitude {
				o.amplitude = o.params.TargetAmplitude
			}
		}
	} else {
		o.releasing = true
		if o.amplitude > 0 {
			o.amplitude -= o.releaseStep
			// Snap once less than a step remains so the fade lands
			// exactly on zero inside the nominal release window.
			if o.amplitude < o.releaseStep {
				o.amplitude = 0
			}
		}
	}

	o.phase = math.Mod(o.phase+1, o.sampleRate)

	if o.amplitude == 0 {
		return 0
	}
	// The requested frequency is already zero during release; keep the
	// fade audible at the last held pitch.
	f := freq
	if f <= 0 {
		f = o.lastFreq
	}
	return float32(math.Sin(o.phase*f*twoPi/o.sampleRate) * o.amplitude)
}

// Process fills dst with interleaved frames, writing the same sample to
// every channel of a frame.
func (o *Oscillator) Process(dst []float32, channels int) {
	if channels < 1 {
		channels = 1
	}
	for i := 0; i+channels <= len(dst); i += channels {
		s := o.NextSample()
		for c := 0; c < channels; c++ {
			dst[i+c] = s
		}
	}
}
