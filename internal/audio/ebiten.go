package audio

import (
	"fmt"
	"io"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// EbitenChannels is the channel count of the ebiten audio context,
// which always mixes in stereo.
const EbitenChannels = 2

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

// The ebiten audio context is process-global and fixes its sample rate
// on first use, so construction goes through a shared instance.
func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

// EbitenSink plays a SampleSource through the ebiten (oto) audio stack.
type EbitenSink struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

// NewEbitenSink opens the default output device at the given sample
// rate. A missing or incompatible device surfaces here as an error.
func NewEbitenSink(sampleRate int, source SampleSource) (*EbitenSink, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source, EbitenChannels)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	return &EbitenSink{player: pl, reader: reader}, nil
}

func (s *EbitenSink) Start() error {
	s.player.Play()
	return nil
}

func (s *EbitenSink) Stop() error {
	s.player.Pause()
	s.player.Close()
	return s.reader.Close()
}
