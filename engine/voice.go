// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"

	"github.com/ik5/hardkick/envelope"
	"github.com/ik5/hardkick/layer"
	"github.com/ik5/hardkick/sample"
	"github.com/ik5/hardkick/shift"
)

// VoiceState is the lifecycle stage of a voice. The zero value is Dead, so
// a fresh pool is empty.
type VoiceState uint8

const (
	VoiceDead VoiceState = iota
	VoiceCreated
	VoiceSounding
	VoiceReleasing
)

func (s VoiceState) String() string {
	switch s {
	case VoiceDead:
		return "dead"
	case VoiceCreated:
		return "created"
	case VoiceSounding:
		return "sounding"
	case VoiceReleasing:
		return "releasing"
	default:
		return fmt.Sprintf("VoiceState(%d)", uint8(s))
	}
}

// VoiceInfo is a diagnostic copy of one voice.
type VoiceInfo struct {
	Slot     int
	Layer    int
	Note     int
	Group    int
	State    VoiceState
	Stage    envelope.Stage
	Envelope float64
	Pitch    float64
	Position float64
}

type voice struct {
	state VoiceState
	layer int
	note  int
	group int
	// serial orders voices by start time
	serial uint64

	smp       *layer.Sample
	channels  int
	velocity  float64
	pitch     float64
	exhausted bool

	shifter shift.Shifter
	env     envelope.ADSR
	gain    smoother

	frame [sample.MaxChannels]float32
}

// start moves the voice through Created to Sounding.
func (v *voice) start(l int, smp *layer.Sample, p *layer.Params, note int, velocity float64, rate int, serial uint64) {
	v.state = VoiceCreated
	v.layer = l
	v.note = note
	v.group = p.BlendGroup
	v.serial = serial
	v.smp = smp
	v.channels = smp.Asset.Channels()
	v.velocity = velocity
	v.exhausted = false
	v.pitch = shift.Ratio(note, p.RootNote, p.SemitoneOffset, p.KeyTrack)

	v.shifter.Start(p.Shift, smp.Asset, smp.Analysis, p.StartOffset, shift.Params{
		Pitch:          v.pitch,
		RateCorrection: rateCorrection(smp.Asset, rate),
		Tonal:          p.Tonal,
	})
	v.env.Init(float64(rate), p.Envelope)
	v.env.Trigger()
	v.gain = newSmoother(voiceGainSmoothing, rate, p.Gain*velocity)

	v.state = VoiceSounding
}

// release starts the fade of a sounding voice.
func (v *voice) release() {
	if v.state != VoiceSounding {
		return
	}
	v.env.Release()
	v.state = VoiceReleasing
}

// retune applies live changes of the layer params.
func (v *voice) retune(p *layer.Params, rate int) {
	v.gain.setTarget(p.Gain * v.velocity)
	v.env.SetSettings(p.Envelope)
	v.shifter.SetTonal(p.Tonal)

	if pitch := shift.Ratio(v.note, p.RootNote, p.SemitoneOffset, p.KeyTrack); pitch != v.pitch {
		v.pitch = pitch
		v.shifter.SetRatio(pitch, rateCorrection(v.smp.Asset, rate))
	}
}

// setRate follows a render rate change.
func (v *voice) setRate(rate int) {
	v.env.SetSampleRate(float64(rate))
	v.gain.setLength(voiceGainSmoothing, rate)
	v.shifter.SetRatio(v.pitch, rateCorrection(v.smp.Asset, rate))
}

// loudness ranks voices for stealing.
func (v *voice) loudness() float64 {
	return v.env.Value() * v.gain.value
}

// render mixes the voice into the interleaved block out and reports
// whether it is still alive.
func (v *voice) render(out []float32, channels int) bool {
	frames := len(out) / channels
	for f := range frames {
		if !v.exhausted && !v.shifter.Next(v.frame[:]) {
			v.exhausted = true
			v.release()
		}

		g := float32(v.env.Next() * v.gain.next())
		o := out[f*channels : f*channels+channels]
		switch {
		case channels == 1 && v.channels == 1:
			o[0] += v.frame[0] * g
		case channels == 1:
			var sum float32
			for _, s := range v.frame[:v.channels] {
				sum += s
			}
			o[0] += sum / float32(v.channels) * g
		case v.channels == 1:
			s := v.frame[0] * g
			o[0] += s
			o[1] += s
		default:
			o[0] += v.frame[0] * g
			o[1] += v.frame[1] * g
		}

		if v.env.Idle() {
			v.state = VoiceDead
			return false
		}
	}
	return true
}

func (v *voice) info(slot int) VoiceInfo {
	return VoiceInfo{
		Slot:     slot,
		Layer:    v.layer,
		Note:     v.note,
		Group:    v.group,
		State:    v.state,
		Stage:    v.env.Stage(),
		Envelope: v.env.Value(),
		Pitch:    v.pitch,
		Position: v.shifter.Position(),
	}
}

func rateCorrection(a *sample.Asset, rate int) float64 {
	return float64(a.SampleRate()) / float64(rate)
}
