// SPDX-License-Identifier: EPL-2.0

package layer

import (
	"sync/atomic"

	"github.com/ik5/hardkick/sample"
	"github.com/ik5/hardkick/shift"
)

// Sample is an asset together with the analysis PSOLA needs, published as
// one unit so a voice never pairs an asset with another asset's period.
type Sample struct {
	Asset    *sample.Asset
	Analysis shift.Analysis
}

// NewSample analyzes a. Call it off the render goroutine.
func NewSample(a *sample.Asset) *Sample {
	return &Sample{Asset: a, Analysis: shift.Analyze(a)}
}

// Slot publishes one layer's params and sample. Writers store new values;
// the render side loads pointers and never sees a half-written value.
type Slot struct {
	params atomic.Pointer[Params]
	sample atomic.Pointer[Sample]
}

// NewSlot starts with DefaultParams and no sample.
func NewSlot() *Slot {
	s := &Slot{}
	p := DefaultParams()
	s.params.Store(&p)
	return s
}

// Params returns the published params. The pointee must not be modified.
func (s *Slot) Params() *Params { return s.params.Load() }

// StoreParams publishes a copy of p.
func (s *Slot) StoreParams(p Params) { s.params.Store(&p) }

// Sample returns the published sample, nil for a silent layer.
func (s *Slot) Sample() *Sample { return s.sample.Load() }

// StoreSample publishes smp; nil clears the slot.
func (s *Slot) StoreSample(smp *Sample) { s.sample.Store(smp) }
