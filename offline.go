package keytone

import (
	"io"
	"sort"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// KeyEvent schedules a key press at an offset in seconds from the start
// of an offline render.
type KeyEvent struct {
	At  float64
	Key rune
}

// RenderScript plays a timed key script through a fresh Synth and
// returns seconds worth of interleaved samples, without opening an
// audio device. Events are applied in time order before the frame they
// land on, exactly as live key presses would be.
func RenderScript(events []KeyEvent, seconds float64, sampleRate, channels int, opts ...Option) ([]float32, error) {
	s, err := NewSynth(sampleRate, append(opts, WithChannelCount(channels))...)
	if err != nil {
		return nil, err
	}

	evs := make([]KeyEvent, len(events))
	copy(evs, events)
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].At < evs[j].At })

	frames := int(float64(sampleRate) * seconds)
	out := make([]float32, frames*channels)
	next := 0
	for f := 0; f < frames; f++ {
		for next < len(evs) && int(evs[next].At*float64(sampleRate)) <= f {
			s.HandleKey(evs[next].Key)
			next++
		}
		s.Process(out[f*channels : (f+1)*channels])
	}
	return out, nil
}

// WriteWAV encodes interleaved samples as 16-bit PCM WAV.
func WriteWAV(w io.WriteSeeker, samples []float32, sampleRate, channels int) error {
	enc := wav.NewEncoder(w, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		buf.Data[i] = int(s * 32767)
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
