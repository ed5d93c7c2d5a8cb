// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/hardkick/audio"
	"github.com/ik5/hardkick/utils"
)

// MaxChannels is the largest channel count an Asset accepts.
const MaxChannels = 8

// Asset is decoded audio held in memory. It is immutable once built and is
// shared by pointer between the layer that owns it and every voice playing
// it; nothing ever writes to its sample data after construction.
type Asset struct {
	rate int
	data [][]float32 // planar, data[channel][frame]
}

// New deinterleaves samples into a new Asset.
func New(rate, channels int, interleaved []float32) (*Asset, error) {
	if err := validate(rate, channels); err != nil {
		return nil, err
	}
	frames := len(interleaved) / channels
	if frames == 0 {
		return nil, ErrEmptyAsset
	}

	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}
	for f := range frames {
		base := f * channels
		for c := range channels {
			data[c][f] = interleaved[base+c]
		}
	}

	return &Asset{rate: rate, data: data}, nil
}

// FromPlanar builds an Asset from per-channel slices. The slices are copied.
func FromPlanar(rate int, channels ...[]float32) (*Asset, error) {
	if err := validate(rate, len(channels)); err != nil {
		return nil, err
	}
	frames := len(channels[0])
	if frames == 0 {
		return nil, ErrEmptyAsset
	}

	data := make([][]float32, len(channels))
	for c, ch := range channels {
		if len(ch) != frames {
			return nil, fmt.Errorf("channel %d has %d frames, want %d: %w", c, len(ch), frames, ErrChannelLength)
		}
		data[c] = append([]float32(nil), ch...)
	}

	return &Asset{rate: rate, data: data}, nil
}

// FromSource drains src into a new Asset and closes it.
func FromSource(src audio.Source) (*Asset, error) {
	defer src.Close()

	channels := src.Channels()
	if err := validate(src.SampleRate(), channels); err != nil {
		return nil, err
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels
	buf := make([]float32, size)

	var interleaved []float32
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			interleaved = append(interleaved, buf[:n]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}
		if n == 0 {
			// a source that makes no progress without EOF is treated as finished
			break
		}
	}

	return New(src.SampleRate(), channels, interleaved)
}

func validate(rate, channels int) error {
	if rate <= 0 {
		return fmt.Errorf("sample rate %d: %w", rate, ErrInvalidRate)
	}
	if channels < 1 || channels > MaxChannels {
		return fmt.Errorf("%d channels: %w", channels, ErrTooManyChannels)
	}
	return nil
}

func (a *Asset) SampleRate() int { return a.rate }
func (a *Asset) Channels() int   { return len(a.data) }
func (a *Asset) Frames() int     { return len(a.data[0]) }

// Duration is the playback length at the asset's own sample rate.
func (a *Asset) Duration() time.Duration {
	return time.Duration(float64(a.Frames()) / float64(a.rate) * float64(time.Second))
}

// Channel returns the samples of channel ch. Callers must not modify it.
func (a *Asset) Channel(ch int) []float32 {
	return a.data[ch]
}

// At returns sample idx of channel ch, or 0 outside the asset.
func (a *Asset) At(ch, idx int) float32 {
	d := a.data[ch]
	if idx < 0 || idx >= len(d) {
		return 0
	}
	return d[idx]
}

// Cubic reads channel ch at the fractional frame position pos using
// Catmull-Rom interpolation. Neighbours past either edge are clamped to the
// edge sample; positions outside [0, Frames()) read as silence.
func (a *Asset) Cubic(ch int, pos float64) float32 {
	d := a.data[ch]
	n := len(d)
	if pos < 0 || pos >= float64(n) {
		return 0
	}

	i := int(pos)
	x := float32(pos - float64(i))
	y1 := d[i]
	if x == 0 {
		return y1
	}

	y0 := d[max(i-1, 0)]
	y2 := d[min(i+1, n-1)]
	y3 := d[min(i+2, n-1)]
	return utils.CubicInterpolate(y0, y1, y2, y3, x)
}

// Mono returns a freshly allocated average of all channels.
func (a *Asset) Mono() []float32 {
	out := make([]float32, a.Frames())
	if len(a.data) == 1 {
		copy(out, a.data[0])
		return out
	}

	inv := 1 / float32(len(a.data))
	for _, ch := range a.data {
		for i, v := range ch {
			out[i] += v * inv
		}
	}
	return out
}
