// Command keytone is an interactive monophonic tone generator: home-row
// keys play notes, space releases, z/x shift the octave, q or Esc quit.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/eiannone/keyboard"
	log "github.com/golang/glog"

	keytone "github.com/cbegin/keytone-go"
	inttune "github.com/cbegin/keytone-go/internal/tuning"
)

func main() {
	var (
		sampleRate  = flag.Int("sample-rate", 48000, "output sample rate")
		channels    = flag.Int("channels", 2, "output channel count")
		backendName = flag.String("backend", "ebiten", "audio backend: ebiten|portaudio")
		octave      = flag.Int("octave", 3, "initial octave (0-8)")
		amplitude   = flag.Float64("amplitude", 0.5, "target amplitude (0-1]")
		attack      = flag.Float64("attack", 0.01, "attack step per sample")
		release     = flag.Float64("release", 3.0, "release time in seconds")
		refPitch    = flag.Float64("reference-pitch", inttune.ReferencePitch, "A4 frequency in Hz")
		configPath  = flag.String("config", "", "path to a TOML config file")
		script      = flag.String("script", "", `offline key script, e.g. "0:h 0.5:j 1:space"; rendered instead of live input`)
		wavPath     = flag.String("wav", "", "with -script, write the rendered audio to this WAV file")
		seconds     = flag.Float64("seconds", 5, "with -script, length of the render in seconds")
	)
	flag.Parse()

	if err := run(*configPath, *script, *wavPath, *seconds, flagConfig(
		*sampleRate, *channels, *backendName, *octave, *amplitude, *attack, *release, *refPitch,
	)); err != nil {
		log.Exitf("keytone: %v", err)
	}
}

// flagConfig packs the flag values into a Config so explicitly set
// flags can override the config file.
func flagConfig(sampleRate, channels int, backend string, octave int, amplitude, attack, release, refPitch float64) *keytone.Config {
	oct := octave
	return &keytone.Config{
		SampleRate:      sampleRate,
		Channels:        channels,
		Backend:         backend,
		TargetAmplitude: amplitude,
		AttackStep:      attack,
		ReleaseSeconds:  release,
		InitialOctave:   &oct,
		ReferencePitch:  refPitch,
	}
}

func run(configPath, script, wavPath string, seconds float64, flags *keytone.Config) error {
	cfg := flags
	if configPath != "" {
		fileCfg, err := keytone.ParseConfigFile(configPath)
		if err != nil {
			return err
		}
		log.Infof("loaded config from %s", configPath)
		mergeFlags(fileCfg, flags)
		cfg = fileCfg
	}

	sr := cfg.SampleRate
	opts := cfg.Options()

	if script != "" {
		return runOffline(sr, cfg.Channels, script, wavPath, seconds, opts)
	}
	return runInteractive(sr, opts)
}

// mergeFlags copies explicitly set command-line flags over the file
// config; unset flags leave the file values alone.
func mergeFlags(cfg, flags *keytone.Config) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["sample-rate"] || cfg.SampleRate == 0 {
		cfg.SampleRate = flags.SampleRate
	}
	if set["channels"] || cfg.Channels == 0 {
		cfg.Channels = flags.Channels
	}
	if set["backend"] {
		cfg.Backend = flags.Backend
	}
	if set["amplitude"] {
		cfg.TargetAmplitude = flags.TargetAmplitude
	}
	if set["attack"] {
		cfg.AttackStep = flags.AttackStep
	}
	if set["release"] {
		cfg.ReleaseSeconds = flags.ReleaseSeconds
	}
	if set["octave"] || cfg.InitialOctave == nil {
		cfg.InitialOctave = flags.InitialOctave
	}
	if set["reference-pitch"] {
		cfg.ReferencePitch = flags.ReferencePitch
	}
}

func runInteractive(sampleRate int, opts []keytone.Option) error {
	synth, err := keytone.NewSynth(sampleRate, opts...)
	if err != nil {
		return err
	}
	if err := synth.Start(); err != nil {
		return fmt.Errorf("open audio output: %w", err)
	}
	defer func() {
		if err := synth.Stop(); err != nil {
			log.Errorf("stop audio: %v", err)
		}
	}()

	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keyboard.Close()

	log.Infof("audio output open at %d Hz", sampleRate)
	printLayout(synth)

	for {
		ch, key, err := keyboard.GetKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		switch key {
		case keyboard.KeySpace:
			ch = ' '
		case keyboard.KeyEsc, keyboard.KeyCtrlC:
			ch = rune(0x1b)
		}
		switch synth.HandleKey(ch) {
		case keytone.ActionQuit:
			fmt.Print("\r\n")
			return nil
		case keytone.ActionNote:
			fmt.Printf("\rplaying %7.2f Hz  octave %d   ", synth.Frequency(), synth.Octave())
		case keytone.ActionMute:
			fmt.Print("\rreleasing...                   ")
		case keytone.ActionOctave:
			fmt.Printf("\roctave %d                      ", synth.Octave())
		}
	}
}

func runOffline(sampleRate, channels int, script, wavPath string, seconds float64, opts []keytone.Option) error {
	events, err := parseScript(script)
	if err != nil {
		return err
	}
	samples, err := keytone.RenderScript(events, seconds, sampleRate, channels, opts...)
	if err != nil {
		return err
	}
	log.Infof("rendered %d frames at %d Hz", len(samples)/channels, sampleRate)
	if wavPath == "" {
		return nil
	}
	f, err := os.Create(wavPath)
	if err != nil {
		return err
	}
	if err := keytone.WriteWAV(f, samples, sampleRate, channels); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", wavPath)
	return nil
}

// parseScript decodes "at:key" pairs separated by whitespace. The words
// "space" and "mute" stand in for the space key.
func parseScript(script string) ([]keytone.KeyEvent, error) {
	var events []keytone.KeyEvent
	for _, tok := range strings.Fields(script) {
		parts := strings.SplitN(tok, ":", 2)
		if len(parts) != 2 || parts[1] == "" {
			return nil, fmt.Errorf("invalid script token %q (expected at:key)", tok)
		}
		at, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid script time in %q: %w", tok, err)
		}
		key := parts[1]
		if key == "space" || key == "mute" {
			key = " "
		}
		events = append(events, keytone.KeyEvent{At: at, Key: []rune(key)[0]})
	}
	return events, nil
}

func printLayout(synth *keytone.Synth) {
	fmt.Println("keytone — press keys to play, space to release, z/x octave down/up, q or Esc to quit")
	fmt.Println()
	fmt.Println("    w e   t y u   o      (sharps)")
	fmt.Println("   a s d f g h j k l    (C D E F G A B C D)")
	fmt.Println()
	fmt.Printf("  starting at octave %d\n\n", synth.Octave())
}
