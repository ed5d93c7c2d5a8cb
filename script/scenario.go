// SPDX-License-Identifier: EPL-2.0

package script

import (
	"math"

	"github.com/ik5/hardkick/engine"
	"github.com/ik5/hardkick/layer"
)

// DefaultTail is how long a scenario without an explicit length keeps
// rendering after its last event, in seconds.
const DefaultTail = 1.0

// LayerSpec is what a script said about one layer.
type LayerSpec struct {
	// Sample is the file to load, resolved against the script's directory
	// when the scenario came from ParseFile. Empty leaves the layer silent.
	Sample string
	Params layer.Params
}

// Scenario is a parsed script.
type Scenario struct {
	Config engine.Config
	// Length in seconds. Zero means the last event plus DefaultTail.
	Length float64
	// Master is a linear gain.
	Master float64
	Layers [layer.NumLayers]LayerSpec
	// Events are sorted by frame at Config.SampleRate.
	Events []engine.TimedEvent
}

func newScenario() *Scenario {
	sc := &Scenario{
		Config: engine.DefaultConfig(),
		Master: 1,
	}
	for i := range sc.Layers {
		sc.Layers[i].Params = layer.DefaultParams()
	}
	return sc
}

// Frames is the render length in frames.
func (s *Scenario) Frames() int {
	rate := float64(s.Config.SampleRate)
	if s.Length > 0 {
		return int(math.Round(s.Length * rate))
	}

	last := 0
	if n := len(s.Events); n > 0 {
		last = s.Events[n-1].Frame
	}
	return last + int(math.Round(DefaultTail*rate))
}

// Paths lists the sample path of every layer, empty for unset ones.
func (s *Scenario) Paths() [layer.NumLayers]string {
	var paths [layer.NumLayers]string
	for i, l := range s.Layers {
		paths[i] = l.Sample
	}
	return paths
}
