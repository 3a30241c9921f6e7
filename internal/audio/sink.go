// Package audio provides output sinks that pull interleaved float32
// samples from a SampleSource and play them on a device.
package audio

import (
	"encoding/binary"
	"math"
	"sync"
)

// SampleSource fills dst with interleaved float32 frames at the channel
// count the sink was configured with. It is called on the audio thread;
// implementations must not block.
type SampleSource interface {
	Process(dst []float32)
}

// Sink drives a SampleSource through an audio output device.
type Sink interface {
	Start() error
	Stop() error
}

// StreamReader adapts a SampleSource to the io.Reader the ebiten audio
// player pulls from, encoding frames as little-endian float32.
type StreamReader struct {
	mu       sync.Mutex
	source   SampleSource
	channels int
	buf      []float32
}

func NewStreamReader(source SampleSource, channels int) *StreamReader {
	return &StreamReader{source: source, channels: channels}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bytesPerFrame := r.channels * 4
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	need := frames * r.channels
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(r.buf[i]))
	}
	return frames * bytesPerFrame, nil
}

func (r *StreamReader) Close() error { return nil }
