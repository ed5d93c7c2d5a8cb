//go:build !headless

// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/hardkick/engine"
)

// Player plays a Stream on the default output device. oto allows one
// context per process, so only one Player can be created.
type Player struct {
	ctx     *oto.Context
	player  *oto.Player
	stream  *Stream
	started bool
	mutex   sync.Mutex // only for setup and control
}

func NewPlayer(opts Options) (*Player, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	stream, err := NewStream(opts.Channels, opts.BlockFrames)
	if err != nil {
		return nil, err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   opts.SampleRate,
		ChannelCount: opts.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   opts.Latency,
	})
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(stream),
		stream: stream,
	}, nil
}

// Attach switches the player to e. Playback keeps running.
func (p *Player) Attach(e *engine.Engine) error {
	return p.stream.Attach(e)
}

func (p *Player) Stream() *Stream { return p.stream }

func (p *Player) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
}

func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started && p.player != nil {
		p.player.Pause()
		p.started = false
	}
}

// Close stops playback and releases the oto player. The context itself
// lives until the process exits.
func (p *Player) Close() error {
	p.Stop()
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}

func (p *Player) IsStarted() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.started
}

// Err reports an error from the device, if any.
func (p *Player) Err() error {
	return p.ctx.Err()
}
