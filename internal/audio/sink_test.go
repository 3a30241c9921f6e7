package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

type constantSource float32

func (c constantSource) Process(dst []float32) {
	for i := range dst {
		dst[i] = float32(c)
	}
}

func TestStreamReaderEncodesFloat32LE(t *testing.T) {
	r := NewStreamReader(constantSource(0.25), 2)
	p := make([]byte, 4*4) // two stereo frames
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != len(p) {
		t.Fatalf("read %d bytes, want %d", n, len(p))
	}
	for i := 0; i < 4; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
		if got != 0.25 {
			t.Errorf("sample %d = %v, want 0.25", i, got)
		}
	}
}

func TestStreamReaderPartialFrame(t *testing.T) {
	r := NewStreamReader(constantSource(1), 2)
	// Less than one stereo frame: nothing should be produced.
	n, err := r.Read(make([]byte, 7))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 0 {
		t.Errorf("read %d bytes from a sub-frame buffer, want 0", n)
	}
}
