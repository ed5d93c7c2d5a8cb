// SPDX-License-Identifier: EPL-2.0

package shift

import "github.com/ik5/hardkick/sample"

// Resampler plays an asset back at a fractional rate with Catmull-Rom
// interpolation. A step of 1 reproduces the source exactly.
type Resampler struct {
	src  *sample.Asset
	pos  float64
	step float64
}

// Start positions the read cursor at frame cursor and sets the per-tick
// step in source frames.
func (r *Resampler) Start(src *sample.Asset, cursor, step float64) {
	r.src = src
	r.pos = max(cursor, 0)
	r.step = ClampRatio(step)
}

// SetStep changes the read rate without moving the cursor.
func (r *Resampler) SetStep(step float64) { r.step = ClampRatio(step) }

// Position is the fractional source frame the next call reads.
func (r *Resampler) Position() float64 { return r.pos }

// Next writes one frame into dst[:Channels()] and advances the cursor.
// It returns false, with dst zeroed, once the cursor has left the asset.
func (r *Resampler) Next(dst []float32) bool {
	if r.src == nil {
		return false
	}
	chs := r.src.Channels()
	if r.pos >= float64(r.src.Frames()) {
		clear(dst[:chs])
		return false
	}

	for ch := range chs {
		dst[ch] = r.src.Cubic(ch, r.pos)
	}
	r.pos += r.step
	return true
}
