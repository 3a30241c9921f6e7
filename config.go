package keytone

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	intkey "github.com/cbegin/keytone-go/internal/keymap"
	intosc "github.com/cbegin/keytone-go/internal/osc"
	inttune "github.com/cbegin/keytone-go/internal/tuning"
)

// Config mirrors the TOML configuration file. Zero values keep the
// built-in defaults.
type Config struct {
	SampleRate      int             `toml:"sample_rate"`
	Channels        int             `toml:"channels"`
	Backend         string          `toml:"backend"`
	TargetAmplitude float64         `toml:"target_amplitude"`
	AttackStep      float64         `toml:"attack_step"`
	ReleaseSeconds  float64         `toml:"release_seconds"`
	InitialOctave   *int            `toml:"initial_octave"`
	ReferencePitch  float64         `toml:"reference_pitch"`
	Keys            []KeyToneConfig `toml:"keys"`
}

// KeyToneConfig binds one key to a note in the config file.
type KeyToneConfig struct {
	Key          string `toml:"key"`
	Note         string `toml:"note"`
	OctaveOffset int    `toml:"octave_offset"`
}

// ParseConfigFile reads and decodes a TOML config file.
func ParseConfigFile(file string) (*Config, error) {
	bs, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file at %q: %w", file, err)
	}
	var cfg Config
	if err := toml.Unmarshal(bs, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from TOML file %q: %w", file, err)
	}
	return &cfg, nil
}

// Options translates the file values into Synth options. Fields left at
// their zero value produce no option, keeping the defaults.
func (c *Config) Options() []Option {
	var opts []Option

	params := intosc.DefaultParams()
	envSet := false
	if c.TargetAmplitude > 0 {
		params.TargetAmplitude = c.TargetAmplitude
		envSet = true
	}
	if c.AttackStep > 0 {
		params.AttackStep = c.AttackStep
		envSet = true
	}
	if c.ReleaseSeconds > 0 {
		params.ReleaseSeconds = c.ReleaseSeconds
		envSet = true
	}
	if envSet {
		opts = append(opts, WithEnvelope(params))
	}

	if c.InitialOctave != nil {
		opts = append(opts, WithInitialOctave(*c.InitialOctave))
	}
	if c.ReferencePitch > 0 {
		opts = append(opts, WithTuning(inttune.New(c.ReferencePitch)))
	}
	if c.Channels > 0 {
		opts = append(opts, WithChannelCount(c.Channels))
	}
	if c.Backend != "" {
		opts = append(opts, WithBackend(Backend(c.Backend)))
	}
	if len(c.Keys) > 0 {
		bindings := make(map[rune]intkey.Binding, len(c.Keys))
		for _, k := range c.Keys {
			if k.Key == "" {
				continue
			}
			r := []rune(k.Key)[0]
			bindings[r] = intkey.Binding{Note: k.Note, OctaveOffset: k.OctaveOffset}
		}
		opts = append(opts, WithKeyMap(intkey.FromBindings(bindings)))
	}
	return opts
}
