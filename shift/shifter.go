// SPDX-License-Identifier: EPL-2.0

package shift

import "github.com/ik5/hardkick/sample"

// Params are the per-voice inputs of a shifter.
type Params struct {
	// Pitch is the musical frequency ratio, see Ratio.
	Pitch float64
	// RateCorrection is the asset rate over the render rate.
	RateCorrection float64
	// Tonal is the formant weighting in [0, 1]. The Resampler ignores it.
	Tonal float64
}

// Shifter is a closed union over the two algorithms. Both states live in
// the struct by value so a voice can switch kinds without allocating.
type Shifter struct {
	kind  Kind
	res   Resampler
	psola PSOLA
}

// Start begins playback of src from frame cursor.
func (s *Shifter) Start(kind Kind, src *sample.Asset, an Analysis, cursor float64, p Params) {
	s.kind = kind
	switch kind {
	case KindPSOLA:
		s.psola.Start(src, an.Period, cursor, p.Pitch, p.RateCorrection, p.Tonal)
	default:
		s.kind = KindResample
		s.res.Start(src, cursor, ClampRatio(p.Pitch)*ClampRatio(p.RateCorrection))
	}
}

func (s *Shifter) Kind() Kind { return s.kind }

// SetRatio applies a new pitch and rate correction, for example after the
// render rate changed.
func (s *Shifter) SetRatio(pitch, rateCorrection float64) {
	if s.kind == KindPSOLA {
		s.psola.SetPitch(pitch)
		s.psola.SetRateCorrection(rateCorrection)
		return
	}
	s.res.SetStep(ClampRatio(pitch) * ClampRatio(rateCorrection))
}

// SetTonal only affects PSOLA.
func (s *Shifter) SetTonal(tonal float64) {
	if s.kind == KindPSOLA {
		s.psola.SetTonal(tonal)
	}
}

// Position is the current cursor in source frames.
func (s *Shifter) Position() float64 {
	if s.kind == KindPSOLA {
		return s.psola.Position()
	}
	return s.res.Position()
}

// Next produces one frame into dst, which must hold at least the asset's
// channel count. It returns false when the source is exhausted.
func (s *Shifter) Next(dst []float32) bool {
	if s.kind == KindPSOLA {
		return s.psola.Next(dst)
	}
	return s.res.Next(dst)
}
