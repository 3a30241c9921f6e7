// Package tuning converts note names and octaves to equal-tempered
// frequencies via MIDI note arithmetic.
package tuning

import "math"

// ReferencePitch is the standard frequency of A4 in Hz.
const ReferencePitch = 440.0

const notesPerOctave = 12

// Table maps note names to pitch classes under a fixed reference pitch.
// It is immutable after construction; build one at startup and pass it
// to whoever needs it.
type Table struct {
	classes map[string]int
	refHz   float64
}

// Standard returns the twelve-tone table tuned to A4 = 440 Hz.
func Standard() *Table {
	return New(ReferencePitch)
}

// New returns the twelve-tone table tuned so that A4 sounds at refHz.
// Non-positive refHz falls back to the standard 440 Hz.
func New(refHz float64) *Table {
	if refHz <= 0 {
		refHz = ReferencePitch
	}
	return &Table{
		classes: map[string]int{
			"C": 0, "C#": 1, "D": 2, "D#": 3, "E": 4, "F": 5,
			"F#": 6, "G": 7, "G#": 8, "A": 9, "A#": 10, "B": 11,
		},
		refHz: refHz,
	}
}

// PitchClass returns the semitone offset 0-11 for a note name.
// Unknown names map to C (0); that is a defined fallback, not an error.
func (t *Table) PitchClass(note string) int {
	return t.classes[note]
}

// NoteToFrequency converts a note name and octave to a frequency in Hz.
// The octave is not clamped; extreme values yield mathematically valid
// but inaudible frequencies.
func (t *Table) NoteToFrequency(note string, octave int) float64 {
	midi := notesPerOctave*(octave+1) + t.PitchClass(note)
	return MIDIToFrequency(midi, t.refHz)
}

// MIDIToFrequency converts a MIDI note number to Hz, with refHz as the
// frequency of A4 (MIDI note 69).
func MIDIToFrequency(midi int, refHz float64) float64 {
	return refHz * math.Pow(2, float64(midi-69)/float64(notesPerOctave))
}
