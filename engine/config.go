// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"log/slog"
	"strings"
)

// Pool and queue limits.
const (
	// MaxVoices is bounded by the width of a blend group bitset.
	MaxVoices        = 64
	DefaultVoices    = 32
	DefaultQueueSize = 256
)

// MutePolicy decides what muting a layer does to voices already playing.
type MutePolicy uint8

const (
	// MuteBlocksTriggers only stops new notes; sounding voices finish.
	MuteBlocksTriggers MutePolicy = iota
	// MuteReleases also sends sounding voices of the layer into release.
	MuteReleases
)

func (m MutePolicy) String() string {
	switch m {
	case MuteBlocksTriggers:
		return "block-triggers"
	case MuteReleases:
		return "release"
	default:
		return fmt.Sprintf("MutePolicy(%d)", uint8(m))
	}
}

// ParseMutePolicy accepts the String form of a policy.
func ParseMutePolicy(s string) (MutePolicy, error) {
	for _, m := range []MutePolicy{MuteBlocksTriggers, MuteReleases} {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("mute policy %q: %w", s, ErrInvalidConfig)
}

// RetriggerPolicy decides what a repeated note does to the voice it repeats.
type RetriggerPolicy uint8

const (
	// RetriggerOverlap starts an independent voice for every note-on.
	RetriggerOverlap RetriggerPolicy = iota
	// RetriggerChoke releases the sounding voice of the same layer and
	// note first.
	RetriggerChoke
)

func (r RetriggerPolicy) String() string {
	switch r {
	case RetriggerOverlap:
		return "overlap"
	case RetriggerChoke:
		return "choke"
	default:
		return fmt.Sprintf("RetriggerPolicy(%d)", uint8(r))
	}
}

// ParseRetriggerPolicy accepts the String form of a policy.
func ParseRetriggerPolicy(s string) (RetriggerPolicy, error) {
	for _, r := range []RetriggerPolicy{RetriggerOverlap, RetriggerChoke} {
		if strings.EqualFold(strings.TrimSpace(s), r.String()) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("retrigger policy %q: %w", s, ErrInvalidConfig)
}

// Config is fixed for the life of an Engine, except SampleRate which can
// be changed with SetSampleRate.
type Config struct {
	SampleRate int
	// Channels of the interleaved output, 1 or 2.
	Channels  int
	MaxVoices int
	// QueueSize is the capacity of the Post queue, rounded up to a power
	// of two.
	QueueSize  int
	MutePolicy MutePolicy
	Retrigger  RetriggerPolicy
	// Logger receives control-side diagnostics. Render never logs.
	Logger *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		Channels:   2,
		MaxVoices:  DefaultVoices,
		QueueSize:  DefaultQueueSize,
	}
}

func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("sample rate %d: %w", c.SampleRate, ErrInvalidConfig)
	case c.Channels != 1 && c.Channels != 2:
		return fmt.Errorf("%d output channels: %w", c.Channels, ErrInvalidConfig)
	case c.MaxVoices < 1 || c.MaxVoices > MaxVoices:
		return fmt.Errorf("%d voices: %w", c.MaxVoices, ErrInvalidConfig)
	case c.QueueSize < 0:
		return fmt.Errorf("queue size %d: %w", c.QueueSize, ErrInvalidConfig)
	case c.MutePolicy > MuteReleases:
		return fmt.Errorf("%v: %w", c.MutePolicy, ErrInvalidConfig)
	case c.Retrigger > RetriggerChoke:
		return fmt.Errorf("%v: %w", c.Retrigger, ErrInvalidConfig)
	}
	return nil
}
