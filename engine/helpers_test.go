// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"testing"

	"github.com/ik5/hardkick/layer"
	"github.com/ik5/hardkick/sample"
)

type timed struct {
	at int
	ev Event
}

func at(frame int, ev Event) timed { return timed{at: frame, ev: ev} }

// renderTimeline renders frames in blocks, turning absolute event frames
// into block offsets.
func renderTimeline(e *Engine, frames, block int, events ...timed) []float32 {
	ch := e.Config().Channels
	out := make([]float32, frames*ch)
	var blockEvents []Event
	for start := 0; start < frames; start += block {
		n := min(block, frames-start)
		blockEvents = blockEvents[:0]
		for _, t := range events {
			if t.at >= start && t.at < start+n {
				ev := t.ev
				ev.Offset = t.at - start
				blockEvents = append(blockEvents, ev)
			}
		}
		e.Render(out[start*ch:(start+n)*ch], blockEvents)
	}
	return out
}

func newEngine(t testing.TB, channels int, modify ...func(*Config)) *Engine {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Channels = channels
	for _, m := range modify {
		m(&cfg)
	}
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func mustAsset(t testing.TB, rate int, channels ...[]float32) *sample.Asset {
	t.Helper()

	a, err := sample.FromPlanar(rate, channels...)
	if err != nil {
		t.Fatalf("FromPlanar() error = %v", err)
	}
	return a
}

func loadLayer(t testing.TB, e *Engine, i int, a *sample.Asset, modify func(*layer.Params)) {
	t.Helper()

	if err := e.SetLayerSample(i, a); err != nil {
		t.Fatalf("SetLayerSample(%d) error = %v", i, err)
	}
	p := layer.DefaultParams()
	if modify != nil {
		modify(&p)
	}
	if err := e.SetLayerParams(i, p); err != nil {
		t.Fatalf("SetLayerParams(%d) error = %v", i, err)
	}
}

func voicesOf(e *Engine, l int) []VoiceInfo {
	var out []VoiceInfo
	for _, v := range e.Voices(nil) {
		if v.Layer == l {
			out = append(out, v)
		}
	}
	return out
}
