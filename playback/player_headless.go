//go:build headless

// SPDX-License-Identifier: EPL-2.0

package playback

import "github.com/ik5/hardkick/engine"

type Player struct {
	stream  *Stream
	started bool
}

func NewPlayer(opts Options) (*Player, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	stream, err := NewStream(opts.Channels, opts.BlockFrames)
	if err != nil {
		return nil, err
	}
	return &Player{stream: stream}, nil
}

func (p *Player) Attach(e *engine.Engine) error { return p.stream.Attach(e) }

func (p *Player) Stream() *Stream { return p.stream }

func (p *Player) Start() { p.started = true }

func (p *Player) Stop() { p.started = false }

func (p *Player) Close() error {
	p.started = false
	return nil
}

func (p *Player) IsStarted() bool { return p.started }

func (p *Player) Err() error { return nil }
