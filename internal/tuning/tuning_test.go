package tuning

import (
	"math"
	"testing"
)

func TestStandardReferenceNotes(t *testing.T) {
	tbl := Standard()
	if got := tbl.NoteToFrequency("A", 4); got != 440.0 {
		t.Errorf("A4 = %v, want exactly 440", got)
	}
	if got := tbl.NoteToFrequency("A", 3); got != 220.0 {
		t.Errorf("A3 = %v, want exactly 220", got)
	}
	if got := tbl.NoteToFrequency("C", 4); math.Abs(got-261.63) > 0.01 {
		t.Errorf("C4 = %v, want 261.63 +/- 0.01", got)
	}
}

func TestPitchClasses(t *testing.T) {
	tbl := Standard()
	cases := []struct {
		note string
		want int
	}{
		{"C", 0}, {"C#", 1}, {"D", 2}, {"D#", 3}, {"E", 4}, {"F", 5},
		{"F#", 6}, {"G", 7}, {"G#", 8}, {"A", 9}, {"A#", 10}, {"B", 11},
	}
	for _, c := range cases {
		if got := tbl.PitchClass(c.note); got != c.want {
			t.Errorf("PitchClass(%q) = %d, want %d", c.note, got, c.want)
		}
	}
}

func TestUnknownNoteFallsBackToC(t *testing.T) {
	tbl := Standard()
	if got, want := tbl.NoteToFrequency("H", 4), tbl.NoteToFrequency("C", 4); got != want {
		t.Errorf("unknown note = %v, want C fallback %v", got, want)
	}
}

func TestAlternateReferencePitch(t *testing.T) {
	tbl := New(432)
	if got := tbl.NoteToFrequency("A", 4); got != 432.0 {
		t.Errorf("A4 at 432 reference = %v, want 432", got)
	}
}

func TestNonPositiveReferenceFallsBack(t *testing.T) {
	tbl := New(-1)
	if got := tbl.NoteToFrequency("A", 4); got != 440.0 {
		t.Errorf("A4 = %v, want 440 after fallback", got)
	}
}

func TestMIDIToFrequency(t *testing.T) {
	if got := MIDIToFrequency(69, 440); got != 440.0 {
		t.Errorf("MIDI 69 = %v, want 440", got)
	}
	// One octave down halves the frequency.
	if got := MIDIToFrequency(57, 440); math.Abs(got-220.0) > 1e-9 {
		t.Errorf("MIDI 57 = %v, want 220", got)
	}
}
