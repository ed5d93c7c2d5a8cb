// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync/atomic"

	"github.com/ik5/hardkick/engine"
)

const (
	DefaultBlockFrames = 256
	bytesPerSample     = 4
)

// Stream pulls audio out of an engine. Read is meant for the audio
// device's goroutine and does not allocate; Attach may be called from
// anywhere.
type Stream struct {
	eng      atomic.Pointer[engine.Engine]
	channels int
	block    int
	buf      []float32
	frames   atomic.Uint64
}

// NewStream returns a stream of channels interleaved channels that renders
// blockFrames frames at a time. A blockFrames of 0 means
// DefaultBlockFrames.
func NewStream(channels, blockFrames int) (*Stream, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%d channels: %w", channels, ErrInvalidOptions)
	}
	if blockFrames == 0 {
		blockFrames = DefaultBlockFrames
	}
	if blockFrames < 0 {
		return nil, fmt.Errorf("block of %d frames: %w", blockFrames, ErrInvalidOptions)
	}

	return &Stream{
		channels: channels,
		block:    blockFrames,
		buf:      make([]float32, blockFrames*channels),
	}, nil
}

// Attach makes e the source of the stream. A nil engine turns the output
// to silence.
func (s *Stream) Attach(e *engine.Engine) error {
	if e != nil {
		if ch := e.Config().Channels; ch != s.channels {
			return fmt.Errorf("engine has %d, stream %d: %w", ch, s.channels, ErrChannelMismatch)
		}
	}
	s.eng.Store(e)
	return nil
}

// Channels returns the interleaved channel count.
func (s *Stream) Channels() int { return s.channels }

// Frames counts the frames handed out so far.
func (s *Stream) Frames() uint64 { return s.frames.Load() }

// Read fills p with whole frames. It never returns io.EOF; a p shorter
// than one frame gets io.ErrShortBuffer.
func (s *Stream) Read(p []byte) (int, error) {
	frameBytes := bytesPerSample * s.channels
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, io.ErrShortBuffer
	}
	n := frames * frameBytes

	e := s.eng.Load()
	if e == nil {
		clear(p[:n])
		s.frames.Add(uint64(frames))
		return n, nil
	}

	out := p[:0]
	for done := 0; done < frames; {
		m := min(s.block, frames-done)
		buf := s.buf[:m*s.channels]
		e.Render(buf, nil)
		for _, v := range buf {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
		}
		done += m
	}
	s.frames.Add(uint64(frames))
	return n, nil
}
