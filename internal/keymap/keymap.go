// Package keymap binds keyboard characters to notes.
package keymap

// Binding names the note a key plays and how many octaves above the
// current octave it sounds (0 for the current octave, 1 for the next).
type Binding struct {
	Note         string
	OctaveOffset int
}

// Map is an immutable set of key-to-note bindings.
type Map struct {
	bindings map[rune]Binding
}

// Standard returns the home-row piano layout: a..j play C through B of
// the current octave with sharps on the row above, and k, o, l continue
// into C, C#, D of the next octave.
func Standard() *Map {
	return FromBindings(map[rune]Binding{
		'a': {"C", 0}, 'w': {"C#", 0}, 's': {"D", 0}, 'e': {"D#", 0},
		'd': {"E", 0}, 'f': {"F", 0}, 't': {"F#", 0}, 'g': {"G", 0},
		'y': {"G#", 0}, 'h': {"A", 0}, 'u': {"A#", 0}, 'j': {"B", 0},
		'k': {"C", 1}, 'o': {"C#", 1}, 'l': {"D", 1},
	})
}

// FromBindings builds a Map from an explicit binding set. The argument
// is copied so later mutation cannot leak in.
func FromBindings(bindings map[rune]Binding) *Map {
	m := make(map[rune]Binding, len(bindings))
	for k, b := range bindings {
		m[k] = b
	}
	return &Map{bindings: m}
}

// Lookup returns the binding for a key, if any.
func (m *Map) Lookup(key rune) (Binding, bool) {
	b, ok := m.bindings[key]
	return b, ok
}

// Bindings returns a copy of the full binding set, for display.
func (m *Map) Bindings() map[rune]Binding {
	out := make(map[rune]Binding, len(m.bindings))
	for k, b := range m.bindings {
		out[k] = b
	}
	return out
}
