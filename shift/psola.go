// SPDX-License-Identifier: EPL-2.0

package shift

import (
	"math"

	"github.com/ik5/hardkick/sample"
	"github.com/ik5/hardkick/utils"
)

// PSOLA shifts pitch by overlap-adding Hann grains taken at the source's
// analysis marks (multiples of the period P) and placed on a synthesis grid
// of spacing P/pitch. The output clock advances through the source at the
// sample's own speed, so the duration does not change with pitch.
//
// Output is divided by the window sum of the grains that overlap each
// sample, so there is no amplitude pumping whatever the overlap.
type PSOLA struct {
	src    *sample.Asset
	period float64

	pitch   float64
	tonal   float64
	spacing float64 // synthesis mark spacing
	read    float64 // grain read rate
	half    float64 // grain half-width

	t       float64 // output time in source frames
	advance float64

	acc [sample.MaxChannels]float64
}

// Start prepares the shifter. period comes from Analyze; non-positive
// values fall back to FallbackPeriod.
func (p *PSOLA) Start(src *sample.Asset, period, cursor, pitch, rateCorrection, tonal float64) {
	if !(period > 0) {
		period = FallbackPeriod(src.SampleRate())
	}
	p.src = src
	p.period = period
	p.t = max(cursor, 0)
	p.advance = ClampRatio(rateCorrection)
	p.pitch = ClampRatio(pitch)
	p.tonal = clampTonal(tonal)
	p.update()
}

// SetPitch changes the pitch ratio. The synthesis grid is rebuilt around the
// current output time.
func (p *PSOLA) SetPitch(pitch float64) {
	p.pitch = ClampRatio(pitch)
	p.update()
}

// SetRateCorrection changes how far the output clock moves per tick.
func (p *PSOLA) SetRateCorrection(rc float64) { p.advance = ClampRatio(rc) }

// SetTonal changes the grain read rate. The output is continuous in tonal.
func (p *PSOLA) SetTonal(tonal float64) {
	p.tonal = clampTonal(tonal)
	p.update()
}

// Position is the output time in source frames.
func (p *PSOLA) Position() float64 { return p.t }

func (p *PSOLA) update() {
	p.spacing = p.period / p.pitch
	p.read = math.Pow(p.pitch, 1-p.tonal)
	p.half = math.Max(p.period/p.read, p.spacing)
}

// Next writes one frame into dst[:Channels()]. It returns false, with dst
// zeroed, once the output time has passed the end of the asset.
func (p *PSOLA) Next(dst []float32) bool {
	if p.src == nil {
		return false
	}
	chs := p.src.Channels()
	frames := float64(p.src.Frames())
	if p.t >= frames {
		clear(dst[:chs])
		return false
	}

	acc := p.acc[:chs]
	clear(acc)

	first := int(math.Ceil((p.t - p.half) / p.spacing))
	last := int(math.Floor((p.t + p.half) / p.spacing))

	var wsum float64
	for j := first; j <= last; j++ {
		ts := float64(j) * p.spacing
		d := p.t - ts
		w := utils.Hann(d / p.half)
		if w == 0 {
			continue
		}

		mark := max(int(math.Round(ts/p.period)), 0)
		ta := float64(mark) * p.period
		// ta + d*read, arranged so that pitch 1 reads exactly at t
		pos := p.t + (ta - ts) + d*(p.read-1)
		// a grain that would read outside the source is moved by whole
		// periods so it never counts silence into the window sum
		if pos < 0 {
			pos += math.Ceil(-pos/p.period) * p.period
		} else if pos >= frames {
			k := math.Floor((pos-frames)/p.period) + 1
			pos -= math.Min(k, math.Floor(pos/p.period)) * p.period
		}

		for ch := range chs {
			acc[ch] += w * float64(p.src.Cubic(ch, pos))
		}
		wsum += w
	}

	if wsum > 0 {
		inv := 1 / wsum
		for ch := range chs {
			dst[ch] = float32(acc[ch] * inv)
		}
	} else {
		clear(dst[:chs])
	}

	p.t += p.advance
	return true
}

func clampTonal(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v >= 0:
		return v
	default:
		return 0
	}
}
