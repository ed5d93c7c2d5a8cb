// SPDX-License-Identifier: EPL-2.0

package hardkick

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/ik5/hardkick/audio"
	"github.com/ik5/hardkick/engine"
	"github.com/ik5/hardkick/formats/aiff"
	"github.com/ik5/hardkick/formats/mp3"
	"github.com/ik5/hardkick/formats/vorbis"
	"github.com/ik5/hardkick/formats/wav"
	"github.com/ik5/hardkick/loader"
	"github.com/ik5/hardkick/script"
)

// DefaultBlockSize is the block length, in frames, offline renders use
// when none is given. It matches a typical host buffer.
const DefaultBlockSize = 256

// TimedEvent is an event at an absolute frame.
type TimedEvent = engine.TimedEvent

// NewRegistry returns a registry with every bundled decoder under the
// usual file extensions.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	for _, ext := range []string{"wav", "wave"} {
		reg.Register(ext, wav.Decoder{})
	}
	for _, ext := range []string{"aif", "aiff"} {
		reg.Register(ext, aiff.Decoder{})
	}
	for _, ext := range []string{"ogg", "oga"} {
		reg.Register(ext, vorbis.Decoder{})
	}
	reg.Register("mp3", mp3.Decoder{})
	return reg
}

// RenderOffline runs e for frames frames in blocks of blockSize, feeding
// events at their frames, and returns the interleaved output. The result
// does not depend on blockSize.
func RenderOffline(ctx context.Context, e *engine.Engine, events []TimedEvent, frames, blockSize int) ([]float32, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%d frames: %w", blockSize, ErrBlockSize)
	}
	frames = max(frames, 0)

	ch := e.Config().Channels
	out := make([]float32, frames*ch)
	tl := engine.NewTimeline(events)

	for start := 0; start < frames; start += blockSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := min(blockSize, frames-start)
		e.Render(out[start*ch:(start+n)*ch], tl.Block(start, n))
	}
	return out, nil
}

// RenderOptions tunes RenderScenario. The zero value is usable.
type RenderOptions struct {
	// Registry resolves sample files. Nil means NewRegistry().
	Registry *audio.Registry
	// BlockSize defaults to DefaultBlockSize.
	BlockSize int
	// Mono folds samples to one channel while loading.
	Mono   bool
	Logger *slog.Logger
}

// Rendered is the output of a scenario.
type Rendered struct {
	// Samples are interleaved in Channels channels.
	Samples    []float32
	SampleRate int
	Channels   int

	RejectedEvents uint64
	DroppedNotes   uint64
}

// Frames is the length of the render in frames.
func (r *Rendered) Frames() int {
	if r.Channels == 0 {
		return 0
	}
	return len(r.Samples) / r.Channels
}

// Peak returns the largest absolute sample value.
func (r *Rendered) Peak() float32 {
	return Peak(r.Samples)
}

// RenderScenario loads the scenario's samples, applies its layer params
// and master gain, and renders its events offline. Any sample that fails
// to load fails the render with a *loader.AssetError.
func RenderScenario(ctx context.Context, sc *script.Scenario, opts RenderOptions) (*Rendered, error) {
	if sc == nil {
		return nil, ErrNoScript
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.BlockSize == 0 {
		opts.BlockSize = DefaultBlockSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cfg := sc.Config
	cfg.Logger = logger
	e, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}
	defer e.Close()

	ld := loader.Loader{Registry: opts.Registry, Mono: opts.Mono, Logger: logger}
	if err := ld.Publish(ctx, e, sc.Paths()); err != nil {
		return nil, err
	}
	for i, l := range sc.Layers {
		if err := e.SetLayerParams(i, l.Params); err != nil {
			return nil, err
		}
	}
	e.SetMasterGain(sc.Master)
	e.Reset()

	frames := sc.Frames()
	logger.Info("rendering",
		slog.Int("frames", frames),
		slog.Int("events", len(sc.Events)),
		slog.Int("block", opts.BlockSize))

	out, err := RenderOffline(ctx, e, sc.Events, frames, opts.BlockSize)
	if err != nil {
		return nil, err
	}

	r := &Rendered{
		Samples:        out,
		SampleRate:     cfg.SampleRate,
		Channels:       cfg.Channels,
		RejectedEvents: e.RejectedEvents(),
		DroppedNotes:   e.DroppedNotes(),
	}
	if r.RejectedEvents > 0 || r.DroppedNotes > 0 {
		logger.Warn("events lost during render",
			slog.Uint64("rejected", r.RejectedEvents),
			slog.Uint64("dropped", r.DroppedNotes))
	}
	return r, nil
}

// Peak returns the largest absolute value in samples.
func Peak(samples []float32) float32 {
	var peak float32
	for _, s := range samples {
		peak = max(peak, float32(math.Abs(float64(s))))
	}
	return peak
}
