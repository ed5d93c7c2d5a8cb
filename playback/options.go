// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"time"
)

// DefaultLatency is the device buffer length when Options leaves it unset.
const DefaultLatency = 40 * time.Millisecond

// Options configures a Player.
type Options struct {
	SampleRate int
	Channels   int
	// Latency is the device buffer length.
	Latency time.Duration
	// BlockFrames is the engine block size, see NewStream.
	BlockFrames int
}

func (o *Options) normalize() error {
	if o.SampleRate <= 0 {
		return fmt.Errorf("sample rate %d: %w", o.SampleRate, ErrInvalidOptions)
	}
	if o.Latency == 0 {
		o.Latency = DefaultLatency
	}
	if o.Latency < 0 {
		return fmt.Errorf("latency %v: %w", o.Latency, ErrInvalidOptions)
	}
	return nil
}
