// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"math"
	"math/bits"

	"github.com/ik5/hardkick/layer"
)

// Render fills out, an interleaved block in the configured channel count,
// and applies events at their frame offsets. Events must be sorted by
// offset; one that is earlier than its predecessor is applied at the
// predecessor's frame, and offsets past the block are applied at its end.
//
// Render is the only method that advances voices. It is not safe to call
// concurrently with itself.
func (e *Engine) Render(out []float32, events []Event) {
	clear(out)
	if e.closed.Load() {
		if !e.shutDown {
			e.silence()
			e.shutDown = true
			e.activeVoices.Store(0)
		}
		return
	}

	ch := e.cfg.Channels
	frames := len(out) / ch

	e.beginBlock()
	for {
		ev, ok := e.queue.Pop()
		if !ok {
			break
		}
		e.apply(&ev)
	}

	pos := 0
	for i := range events {
		off := min(max(events[i].Offset, pos), frames)
		if off > pos {
			e.renderSpan(out[pos*ch : off*ch])
			pos = off
		}
		e.apply(&events[i])
	}
	if pos < frames {
		e.renderSpan(out[pos*ch : frames*ch])
	}

	e.activeVoices.Store(int64(e.live()))
}

// beginBlock takes the per-block snapshot of everything the control side
// may have changed.
func (e *Engine) beginBlock() {
	reset := e.resetPending.Swap(false)
	if reset {
		e.silence()
	}

	if rate := int(e.requestedRate.Load()); rate != e.rate {
		e.rate = rate
		e.master.setLength(masterGainSmoothing, rate)
		for i := range e.voices {
			if v := &e.voices[i]; v.state != VoiceDead {
				v.setRate(rate)
			}
		}
	}

	// nothing sounds after a reset, so the master can jump
	if master := math.Float64frombits(e.masterBits.Load()); reset {
		e.master.reset(master)
	} else {
		e.master.setTarget(master)
	}

	for i, s := range e.slots {
		e.samples[i] = s.Sample()
		if p := s.Params(); p != e.seen[i] {
			e.seen[i] = p
			e.updateLayer(i, *p)
		}
	}
}

// updateLayer replaces the render-side params of layer l and passes the
// live fields on to its voices.
func (e *Engine) updateLayer(l int, p layer.Params) {
	muted := p.Mute && !e.params[l].Mute
	e.params[l] = p

	for i := range e.voices {
		v := &e.voices[i]
		if v.state == VoiceDead || v.layer != l {
			continue
		}
		v.retune(&e.params[l], e.rate)
		if muted && e.cfg.MutePolicy == MuteReleases {
			v.release()
		}
	}
}

func (e *Engine) apply(ev *Event) {
	switch ev.Kind {
	case NoteOn:
		if !(ev.Velocity > 0) {
			e.noteOff(ev)
			return
		}
		e.noteOn(ev)
	case NoteOff:
		e.noteOff(ev)
	case ParamChange:
		e.paramChange(ev)
	case AllNotesOff:
		for i := range e.voices {
			e.voices[i].release()
		}
	default:
		e.rejected.Add(1)
	}
}

func (e *Engine) noteOn(ev *Event) {
	if ev.Layer != AllLayers && (ev.Layer < 0 || ev.Layer >= layer.NumLayers) {
		e.rejected.Add(1)
		return
	}
	vel := math.Min(float64(ev.Velocity), 1)
	for l := range layer.NumLayers {
		if ev.targets(l) {
			e.trigger(l, ev.Note, vel)
		}
	}
}

func (e *Engine) noteOff(ev *Event) {
	for i := range e.voices {
		v := &e.voices[i]
		if v.note == ev.Note && ev.targets(v.layer) {
			v.release()
		}
	}
}

func (e *Engine) paramChange(ev *Event) {
	l := ev.Layer
	if l < 0 || l >= layer.NumLayers {
		e.rejected.Add(1)
		return
	}

	next := e.params[l]
	if !next.Set(ev.Param, ev.Value) {
		e.rejected.Add(1)
		return
	}
	if smp := e.samples[l]; smp != nil && next.StartOffset >= float64(smp.Asset.Frames()) {
		e.rejected.Add(1)
		return
	}
	e.updateLayer(l, next)
}

// trigger starts a voice of layer l, applying mute, retrigger and blend
// group rules first.
func (e *Engine) trigger(l, note int, velocity float64) {
	p := &e.params[l]
	smp := e.samples[l]
	if smp == nil || p.Mute {
		return
	}

	if e.cfg.Retrigger == RetriggerChoke {
		for i := range e.voices {
			if v := &e.voices[i]; v.layer == l && v.note == note {
				v.release()
			}
		}
	}

	slot := e.allocate()
	if slot < 0 {
		e.dropped.Add(1)
		return
	}

	for set := e.groups.Members(p.BlendGroup); set != 0; set &= set - 1 {
		e.voices[bits.TrailingZeros64(set)].release()
	}

	e.serial++
	e.voices[slot].start(l, smp, p, note, velocity, e.rate, e.serial)
	e.groups.Join(p.BlendGroup, slot)
}

// allocate returns a free voice slot, stealing the quietest releasing
// voice when the pool is full, or -1.
func (e *Engine) allocate() int {
	steal := -1
	quietest := math.Inf(1)
	for i := range e.voices {
		v := &e.voices[i]
		switch v.state {
		case VoiceDead:
			return i
		case VoiceReleasing:
			if l := v.loudness(); l < quietest {
				steal, quietest = i, l
			}
		}
	}
	if steal >= 0 {
		e.retire(steal)
	}
	return steal
}

func (e *Engine) renderSpan(out []float32) {
	for i := range e.voices {
		v := &e.voices[i]
		if v.state == VoiceDead {
			continue
		}
		if !v.render(out, e.cfg.Channels) {
			e.retire(i)
		}
	}

	ch := e.cfg.Channels
	for f := 0; f < len(out); f += ch {
		g := float32(e.master.next())
		for c := range ch {
			out[f+c] *= g
		}
	}
}

// retire frees slot and removes it from its blend group.
func (e *Engine) retire(slot int) {
	v := &e.voices[slot]
	e.groups.Leave(v.group, slot)
	v.state = VoiceDead
	v.smp = nil
}

func (e *Engine) silence() {
	for i := range e.voices {
		if e.voices[i].state != VoiceDead {
			e.retire(i)
		}
	}
	e.groups.Reset()
}

func (e *Engine) live() int {
	n := 0
	for i := range e.voices {
		if e.voices[i].state != VoiceDead {
			n++
		}
	}
	return n
}
