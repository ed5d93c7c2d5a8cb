//go:build headless

// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"testing"
)

func TestPlayer_Headless(t *testing.T) {
	t.Parallel()

	if _, err := NewPlayer(Options{Channels: 2}); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("no sample rate: error = %v, want ErrInvalidOptions", err)
	}

	p, err := NewPlayer(Options{SampleRate: 48000, Channels: 2})
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}
	if err := p.Attach(newEngine(t, 2)); err != nil {
		t.Fatal(err)
	}

	p.Start()
	if !p.IsStarted() {
		t.Error("IsStarted() = false after Start")
	}
	p.Stop()
	if p.IsStarted() {
		t.Error("IsStarted() = true after Stop")
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
