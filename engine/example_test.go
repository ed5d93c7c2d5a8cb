// SPDX-License-Identifier: EPL-2.0

package engine_test

import (
	"fmt"

	"github.com/ik5/hardkick/engine"
	"github.com/ik5/hardkick/internal/audiotest"
	"github.com/ik5/hardkick/layer"
	"github.com/ik5/hardkick/sample"
)

func Example() {
	cfg := engine.DefaultConfig()
	cfg.Channels = 1
	e, err := engine.New(cfg)
	if err != nil {
		panic(err)
	}
	defer e.Close()

	punch, _ := sample.FromPlanar(48000, audiotest.Kick(4800, 48000))
	_ = e.SetLayerSample(0, punch)

	p := layer.DefaultParams()
	p.Envelope.Release = 0.01
	if err := e.SetLayerParams(0, p); err != nil {
		panic(err)
	}

	block := make([]float32, 256)
	e.Render(block, []engine.Event{engine.NoteOnEvent(10, 60, 1)})
	fmt.Println("voices after note-on:", e.ActiveVoiceCount())

	e.Render(block, []engine.Event{engine.NoteOffEvent(0, 60)})
	e.Render(block, nil)
	fmt.Println("voices after release:", e.ActiveVoiceCount())
	// Output:
	// voices after note-on: 1
	// voices after release: 0
}
