// SPDX-License-Identifier: EPL-2.0

package layer

import (
	"math"

	"github.com/ik5/hardkick/envelope"
	"github.com/ik5/hardkick/sample"
	"github.com/ik5/hardkick/shift"
	"github.com/ik5/hardkick/utils"
)

const (
	NumLayers      = 4
	MaxBlendGroups = 16

	MaxGainDB      = 30.0
	MinSemitones   = -48.0
	MaxSemitones   = 48.0
	MaxNote        = 127
	MaxStageLength = 30.0 // seconds, per envelope stage
)

// MaxGain is the linear equivalent of MaxGainDB.
var MaxGain = utils.DBToGain(MaxGainDB)

// Params is the configuration of one layer.
type Params struct {
	// Mute stops new notes from starting on this layer.
	Mute bool
	// Tonal is the PSOLA formant weighting in [0, 1].
	Tonal float64
	// Gain is linear, from 0 to MaxGain.
	Gain     float64
	RootNote int
	// SemitoneOffset transposes the layer on top of key tracking.
	SemitoneOffset float64
	// KeyTrack makes the pitch follow the played note relative to RootNote.
	KeyTrack bool
	Envelope envelope.Settings
	// StartOffset is the first source frame a voice plays.
	StartOffset float64
	// BlendGroup 0 is ungrouped. Voices in the same non-zero group choke
	// each other.
	BlendGroup int
	Shift      shift.Kind
}

// DefaultParams plays the sample as recorded when the root note is hit.
func DefaultParams() Params {
	return Params{
		Gain:     1,
		RootNote: 60,
		KeyTrack: true,
		Envelope: envelope.Settings{Sustain: 1, Release: 0.05},
		Shift:    shift.KindResample,
	}
}

// Validate checks every field against its range.
func (p Params) Validate() error {
	if id, v, ok := p.check(); !ok {
		return &ConfigError{Layer: -1, Param: id, Value: v, Err: ErrInvalidParam}
	}
	return nil
}

// check returns the first out-of-range field without allocating.
func (p *Params) check() (ParamID, float64, bool) {
	checks := [...]struct {
		id    ParamID
		value float64
		ok    bool
	}{
		{ParamTonal, p.Tonal, inRange(p.Tonal, 0, 1)},
		{ParamGain, p.Gain, inRange(p.Gain, 0, MaxGain)},
		{ParamRootNote, float64(p.RootNote), p.RootNote >= 0 && p.RootNote <= MaxNote},
		{ParamSemitones, p.SemitoneOffset, inRange(p.SemitoneOffset, MinSemitones, MaxSemitones)},
		{ParamAttack, p.Envelope.Attack, inRange(p.Envelope.Attack, 0, MaxStageLength)},
		{ParamDecay, p.Envelope.Decay, inRange(p.Envelope.Decay, 0, MaxStageLength)},
		{ParamSustain, p.Envelope.Sustain, inRange(p.Envelope.Sustain, 0, 1)},
		{ParamRelease, p.Envelope.Release, inRange(p.Envelope.Release, 0, MaxStageLength)},
		{ParamStartOffset, p.StartOffset, inRange(p.StartOffset, 0, math.MaxFloat64)},
		{ParamBlendGroup, float64(p.BlendGroup), p.BlendGroup >= 0 && p.BlendGroup < MaxBlendGroups},
		{ParamShift, float64(p.Shift), p.Shift.Valid()},
	}
	for _, c := range checks {
		if !c.ok {
			return c.id, c.value, false
		}
	}
	return 0, 0, true
}

// ValidateFor also checks the start offset against the asset the layer
// will play. A nil asset only gets the range checks.
func (p Params) ValidateFor(a *sample.Asset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if a != nil && p.StartOffset >= float64(a.Frames()) {
		return &ConfigError{Layer: -1, Param: ParamStartOffset, Value: p.StartOffset, Err: ErrOffsetPastEnd}
	}
	return nil
}

// With returns a copy of p with one field set from an automation value.
// Booleans are on at 0.5 and above; integer fields are rounded.
func (p Params) With(id ParamID, v float64) (Params, error) {
	if id >= numParams {
		return p, &ConfigError{Layer: -1, Param: id, Value: v, Err: ErrUnknownParam}
	}
	if !p.Set(id, v) {
		return p, &ConfigError{Layer: -1, Param: id, Value: v, Err: ErrInvalidParam}
	}
	return p, nil
}

// Set is the in-place form of With for the render path. It leaves p
// untouched and returns false when v is out of range.
func (p *Params) Set(id ParamID, v float64) bool {
	if math.IsNaN(v) {
		return false
	}

	next := *p
	switch id {
	case ParamMute:
		next.Mute = v >= 0.5
	case ParamTonal:
		next.Tonal = v
	case ParamGain:
		next.Gain = v
	case ParamRootNote:
		if !inRange(v, 0, MaxNote) {
			return false
		}
		next.RootNote = int(math.Round(v))
	case ParamSemitones:
		next.SemitoneOffset = v
	case ParamKeyTrack:
		next.KeyTrack = v >= 0.5
	case ParamAttack:
		next.Envelope.Attack = v
	case ParamDecay:
		next.Envelope.Decay = v
	case ParamSustain:
		next.Envelope.Sustain = v
	case ParamRelease:
		next.Envelope.Release = v
	case ParamStartOffset:
		next.StartOffset = v
	case ParamBlendGroup:
		if !inRange(v, 0, MaxBlendGroups-1) {
			return false
		}
		next.BlendGroup = int(math.Round(v))
	case ParamShift:
		if !inRange(v, 0, 255) {
			return false
		}
		next.Shift = shift.Kind(math.Round(v))
	default:
		return false
	}

	if _, _, ok := next.check(); !ok {
		return false
	}
	*p = next
	return true
}

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
