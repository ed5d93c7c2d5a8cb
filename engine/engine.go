// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/ik5/hardkick/layer"
	"github.com/ik5/hardkick/sample"
)

// Engine renders the four layers. The exported methods other than Render,
// Voices and Reset may be called from any goroutine; Post must only be
// called from one goroutine at a time.
type Engine struct {
	cfg   Config
	log   *slog.Logger
	slots [layer.NumLayers]*layer.Slot
	queue *Queue

	requestedRate atomic.Int64
	masterBits    atomic.Uint64
	resetPending  atomic.Bool
	closed        atomic.Bool
	activeVoices  atomic.Int64
	rejected      atomic.Uint64
	dropped       atomic.Uint64

	// render-side state, touched only by Render
	rate     int
	seen     [layer.NumLayers]*layer.Params
	params   [layer.NumLayers]layer.Params
	samples  [layer.NumLayers]*layer.Sample
	voices   []voice
	groups   BlendGroups
	master   smoother
	serial   uint64
	shutDown bool
}

// New creates an engine with silent layers and default params.
func New(cfg Config) (*Engine, error) {
	if cfg.QueueSize == 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &Engine{
		cfg:    cfg,
		log:    logger,
		queue:  NewQueue(cfg.QueueSize),
		rate:   cfg.SampleRate,
		voices: make([]voice, cfg.MaxVoices),
		master: newSmoother(masterGainSmoothing, cfg.SampleRate, 1),
	}
	for i := range e.slots {
		e.slots[i] = layer.NewSlot()
		e.seen[i] = e.slots[i].Params()
		e.params[i] = *e.seen[i]
	}
	e.requestedRate.Store(int64(cfg.SampleRate))
	e.masterBits.Store(math.Float64bits(1))

	logger.Debug("engine created",
		slog.Int("rate", cfg.SampleRate),
		slog.Int("channels", cfg.Channels),
		slog.Int("voices", cfg.MaxVoices),
		slog.String("mute", cfg.MutePolicy.String()),
		slog.String("retrigger", cfg.Retrigger.String()))
	return e, nil
}

// Config returns the configuration the engine was built with. SampleRate
// reflects the latest SetSampleRate call.
func (e *Engine) Config() Config {
	c := e.cfg
	c.SampleRate = int(e.requestedRate.Load())
	return c
}

func (e *Engine) slot(i int) (*layer.Slot, error) {
	if i < 0 || i >= layer.NumLayers {
		return nil, fmt.Errorf("layer %d: %w", i, layer.ErrLayerIndex)
	}
	return e.slots[i], nil
}

// SetLayerSample publishes a as the sample of layer i. Voices already
// playing keep their old sample; the next note uses a. A nil asset clears
// the layer.
//
// An asset too short for the layer's start offset is rejected with a
// *layer.ConfigError and the previous sample stays. Lower the offset with
// SetLayerParams first.
func (e *Engine) SetLayerSample(i int, a *sample.Asset) error {
	s, err := e.slot(i)
	if err != nil {
		return err
	}
	if e.closed.Load() {
		return ErrClosed
	}
	if a == nil {
		s.StoreSample(nil)
		e.log.Debug("layer sample cleared", slog.Int("layer", i))
		return nil
	}

	if off := s.Params().StartOffset; off >= float64(a.Frames()) {
		e.log.Debug("layer sample rejected",
			slog.Int("layer", i), slog.Float64("offset", off), slog.Int("frames", a.Frames()))
		return &layer.ConfigError{Layer: i, Param: layer.ParamStartOffset, Value: off, Err: layer.ErrOffsetPastEnd}
	}

	smp := layer.NewSample(a)
	s.StoreSample(smp)

	e.log.Debug("layer sample published",
		slog.Int("layer", i),
		slog.Int("frames", a.Frames()),
		slog.Int("rate", a.SampleRate()),
		slog.Int("channels", a.Channels()),
		slog.Float64("period", smp.Analysis.Period),
		slog.Bool("voiced", smp.Analysis.Voiced()))
	return nil
}

// ClearLayerSample silences layer i for new notes.
func (e *Engine) ClearLayerSample(i int) error {
	return e.SetLayerSample(i, nil)
}

// SetLayerParams validates p and publishes it for layer i. On error the
// previous params stay in effect and the error is a *layer.ConfigError.
func (e *Engine) SetLayerParams(i int, p layer.Params) error {
	s, err := e.slot(i)
	if err != nil {
		return err
	}

	var a *sample.Asset
	if smp := s.Sample(); smp != nil {
		a = smp.Asset
	}
	if err := p.ValidateFor(a); err != nil {
		var ce *layer.ConfigError
		if errors.As(err, &ce) {
			ce.Layer = i
		}
		e.log.Debug("layer params rejected", slog.Int("layer", i), slog.Any("error", err))
		return err
	}

	s.StoreParams(p)
	return nil
}

// LayerParams returns the published params of layer i. ParamChange events
// only change the copy the render goroutine holds, so they do not show up
// here, and the next SetLayerParams replaces whatever they set.
func (e *Engine) LayerParams(i int) (layer.Params, error) {
	s, err := e.slot(i)
	if err != nil {
		return layer.Params{}, err
	}
	return *s.Params(), nil
}

// SetSampleRate changes the render rate from the next block on. Pitch
// ratios, envelope ramps and smoothers of playing voices are rescaled.
func (e *Engine) SetSampleRate(rate int) error {
	if rate <= 0 {
		return fmt.Errorf("sample rate %d: %w", rate, ErrInvalidConfig)
	}
	e.requestedRate.Store(int64(rate))
	return nil
}

// SetMasterGain sets the linear output gain, clamped to [0, layer.MaxGain].
// Changes are smoothed over 50 ms.
func (e *Engine) SetMasterGain(g float64) {
	if math.IsNaN(g) {
		return
	}
	e.masterBits.Store(math.Float64bits(math.Max(0, math.Min(g, layer.MaxGain))))
}

// MasterGain returns the requested master gain.
func (e *Engine) MasterGain() float64 {
	return math.Float64frombits(e.masterBits.Load())
}

// Post queues an event for the start of the next block. Its Offset is
// ignored. It returns false when the queue is full or the engine closed.
func (e *Engine) Post(ev Event) bool {
	if e.closed.Load() {
		return false
	}
	return e.queue.Push(ev)
}

// ActiveVoiceCount is the number of live voices at the end of the last
// block.
func (e *Engine) ActiveVoiceCount() int { return int(e.activeVoices.Load()) }

// RejectedEvents counts param events that failed validation and events
// aimed at a layer that does not exist.
func (e *Engine) RejectedEvents() uint64 { return e.rejected.Load() }

// DroppedNotes counts note-ons that found no free or stealable voice.
func (e *Engine) DroppedNotes() uint64 { return e.dropped.Load() }

// Voices appends the live voices to dst. Like Render it must not run
// concurrently with Render.
func (e *Engine) Voices(dst []VoiceInfo) []VoiceInfo {
	for i := range e.voices {
		if v := &e.voices[i]; v.state != VoiceDead {
			dst = append(dst, v.info(i))
		}
	}
	return dst
}

// Reset silences every voice at the start of the next block. The master
// gain jumps to its requested value instead of ramping.
func (e *Engine) Reset() {
	e.resetPending.Store(true)
}

// Close stops the engine. Later Render calls produce silence and the
// published samples are dropped.
func (e *Engine) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	for _, s := range e.slots {
		s.StoreSample(nil)
	}
	e.log.Debug("engine closed")
	return nil
}
