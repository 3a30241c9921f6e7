package audio

import (
	"fmt"

	log "github.com/golang/glog"
	"github.com/gordonklaus/portaudio"
)

const portAudioFramesPerBuffer = 512

// PortAudioSink plays a SampleSource through the default PortAudio
// output device using the blocking write API on its own goroutine.
type PortAudioSink struct {
	source   SampleSource
	stream   *portaudio.Stream
	buf      []float32
	stopCh   chan struct{}
	done     chan struct{}
	started  bool
}

// NewPortAudioSink opens the default output device. A missing device or
// unsupported format surfaces here as an error.
func NewPortAudioSink(sampleRate, channels int, source SampleSource) (*PortAudioSink, error) {
	if channels < 1 {
		return nil, fmt.Errorf("channel count must be positive, got %d", channels)
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	buf := make([]float32, portAudioFramesPerBuffer*channels)
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), portAudioFramesPerBuffer, buf)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("open default output stream: %w", err)
	}
	return &PortAudioSink{
		source: source,
		stream: stream,
		buf:    buf,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

func (s *PortAudioSink) Start() error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("start stream: %w", err)
	}
	s.started = true
	go s.loop()
	return nil
}

func (s *PortAudioSink) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.stopCh:
			return
		default:
		}
		s.source.Process(s.buf)
		if err := s.stream.Write(); err != nil {
			// Underruns degrade to a glitch, not a crash.
			log.Errorf("portaudio write: %v", err)
		}
	}
}

func (s *PortAudioSink) Stop() error {
	if s.started {
		close(s.stopCh)
		<-s.done
		s.started = false
	}
	err := s.stream.Stop()
	if cerr := s.stream.Close(); err == nil {
		err = cerr
	}
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
