package keytone

import (
	"math"
	"testing"
)

func newTestSynth(t *testing.T, opts ...Option) *Synth {
	t.Helper()
	s, err := NewSynth(44100, opts...)
	if err != nil {
		t.Fatalf("new synth: %v", err)
	}
	return s
}

func TestNewSynthValidation(t *testing.T) {
	if _, err := NewSynth(0); err == nil {
		t.Error("zero sample rate should be rejected")
	}
	if _, err := NewSynth(44100, WithInitialOctave(9)); err == nil {
		t.Error("octave 9 should be rejected")
	}
	if _, err := NewSynth(44100, WithInitialOctave(-1)); err == nil {
		t.Error("octave -1 should be rejected")
	}
	if _, err := NewSynth(44100, WithChannelCount(0)); err == nil {
		t.Error("zero channel count should be rejected")
	}
}

func TestNoteKeySetsFrequency(t *testing.T) {
	s := newTestSynth(t)
	if got := s.HandleKey('h'); got != ActionNote {
		t.Fatalf("HandleKey('h') = %v, want ActionNote", got)
	}
	// 'h' is A at the default octave 3.
	if got := s.Frequency(); got != 220.0 {
		t.Errorf("frequency = %v, want 220", got)
	}
}

func TestNextOctaveBinding(t *testing.T) {
	s := newTestSynth(t)
	s.HandleKey('k') // C one octave up from the current octave
	if got := s.Frequency(); math.Abs(got-261.63) > 0.01 {
		t.Errorf("frequency = %v, want ~261.63 (C4)", got)
	}
}

func TestLastKeyWins(t *testing.T) {
	s := newTestSynth(t)
	s.HandleKey('h')
	s.HandleKey('j') // B3
	want := 220.0 * math.Pow(2, 2.0/12)
	if got := s.Frequency(); math.Abs(got-want) > 1e-9 {
		t.Errorf("frequency = %v, want %v (B3)", got, want)
	}
}

func TestMuteRequestsSilence(t *testing.T) {
	s := newTestSynth(t)
	s.HandleKey('h')
	if got := s.HandleKey(' '); got != ActionMute {
		t.Fatalf("HandleKey(' ') = %v, want ActionMute", got)
	}
	if got := s.Frequency(); got != 0 {
		t.Errorf("frequency after mute = %v, want 0", got)
	}
}

func TestOctaveShiftAndClamp(t *testing.T) {
	s := newTestSynth(t)
	if got := s.HandleKey('x'); got != ActionOctave {
		t.Fatalf("HandleKey('x') = %v, want ActionOctave", got)
	}
	if got := s.Octave(); got != 4 {
		t.Errorf("octave = %d, want 4", got)
	}
	s.HandleKey('z')
	if got := s.Octave(); got != 3 {
		t.Errorf("octave = %d, want 3", got)
	}

	// Idempotent at both bounds.
	high := newTestSynth(t, WithInitialOctave(MaxOctave))
	high.HandleKey('x')
	if got := high.Octave(); got != MaxOctave {
		t.Errorf("octave past upper bound = %d, want %d", got, MaxOctave)
	}
	low := newTestSynth(t, WithInitialOctave(MinOctave))
	low.HandleKey('z')
	if got := low.Octave(); got != MinOctave {
		t.Errorf("octave past lower bound = %d, want %d", got, MinOctave)
	}
}

func TestOctaveShiftChangesNextNote(t *testing.T) {
	s := newTestSynth(t)
	s.HandleKey('x')
	s.HandleKey('h') // A at octave 4
	if got := s.Frequency(); got != 440.0 {
		t.Errorf("frequency = %v, want 440", got)
	}
}

func TestQuitKeys(t *testing.T) {
	s := newTestSynth(t)
	if got := s.HandleKey('q'); got != ActionQuit {
		t.Errorf("HandleKey('q') = %v, want ActionQuit", got)
	}
	if got := s.HandleKey(rune(0x1b)); got != ActionQuit {
		t.Errorf("HandleKey(Esc) = %v, want ActionQuit", got)
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	s := newTestSynth(t)
	s.HandleKey('h')
	if got := s.HandleKey('1'); got != ActionNone {
		t.Errorf("HandleKey('1') = %v, want ActionNone", got)
	}
	if got := s.Frequency(); got != 220.0 {
		t.Errorf("frequency changed by an unbound key: %v", got)
	}
}

func TestProcessProducesHeldNote(t *testing.T) {
	s := newTestSynth(t)
	s.HandleKey('h')
	buf := make([]float32, 256)
	s.Process(buf)
	var nonZero int
	for i := 0; i < len(buf); i += 2 {
		if buf[i] != buf[i+1] {
			t.Fatalf("frame %d channels differ", i/2)
		}
		if buf[i] != 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		t.Error("held note produced only silence")
	}
}

func TestStopWithoutStart(t *testing.T) {
	s := newTestSynth(t)
	if err := s.Stop(); err != nil {
		t.Errorf("Stop on an unstarted synth: %v", err)
	}
}
