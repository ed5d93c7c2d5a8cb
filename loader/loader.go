// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/hardkick/audio"
	"github.com/ik5/hardkick/layer"
	"github.com/ik5/hardkick/sample"
)

// SampleSink receives decoded assets. *engine.Engine satisfies it; a nil
// asset clears the slot.
type SampleSink interface {
	SetLayerSample(i int, a *sample.Asset) error
}

// Loader turns sample files into assets.
type Loader struct {
	Registry *audio.Registry
	// Mono folds multichannel files to a single channel while decoding.
	Mono   bool
	Logger *slog.Logger
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}

// Load decodes the file at path. Errors are *AssetError with Layer -1.
func (l *Loader) Load(ctx context.Context, path string) (*sample.Asset, error) {
	a, err := l.load(ctx, path)
	if err != nil {
		return nil, &AssetError{Layer: -1, Path: path, Err: err}
	}
	return a, nil
}

// Open decodes r with the decoder registered for name's extension.
func (l *Loader) Open(ctx context.Context, name string, r io.Reader) (*sample.Asset, error) {
	a, err := l.decode(ctx, name, r)
	if err != nil {
		return nil, &AssetError{Layer: -1, Path: name, Err: err}
	}
	return a, nil
}

func (l *Loader) load(ctx context.Context, path string) (*sample.Asset, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dec, err := l.decoderFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return l.decodeWith(ctx, dec, path, f)
}

func (l *Loader) decoderFor(name string) (audio.Decoder, error) {
	if l.Registry == nil {
		return nil, ErrNoRegistry
	}
	return l.Registry.ForPath(name)
}

func (l *Loader) decode(ctx context.Context, name string, r io.Reader) (*sample.Asset, error) {
	dec, err := l.decoderFor(name)
	if err != nil {
		return nil, err
	}
	return l.decodeWith(ctx, dec, name, r)
}

func (l *Loader) decodeWith(ctx context.Context, dec audio.Decoder, name string, r io.Reader) (*sample.Asset, error) {
	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	if l.Mono && src.Channels() > 1 {
		src = audio.NewMonoMixer(src)
	}

	a, err := sample.FromSource(&ctxSource{Source: src, ctx: ctx})
	if err != nil {
		return nil, err
	}

	l.logger().Debug("sample decoded",
		slog.String("path", name),
		slog.Int("rate", a.SampleRate()),
		slog.Int("channels", a.Channels()),
		slog.Int("frames", a.Frames()),
		slog.Duration("duration", a.Duration()),
	)
	return a, nil
}

// LoadLayers decodes up to NumLayers files concurrently. An empty path
// yields a nil asset. The first failure cancels the remaining loads.
func (l *Loader) LoadLayers(ctx context.Context, paths [layer.NumLayers]string) ([layer.NumLayers]*sample.Asset, error) {
	var assets [layer.NumLayers]*sample.Asset

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		if path == "" {
			continue
		}
		g.Go(func() error {
			a, err := l.load(ctx, path)
			if err != nil {
				return &AssetError{Layer: i, Path: path, Err: err}
			}
			assets[i] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return [layer.NumLayers]*sample.Asset{}, err
	}
	return assets, nil
}

// Publish loads every slot concurrently and stores each result in sink as
// soon as it is ready. An empty path clears its slot. A slot whose load
// fails is left untouched; all failures are joined into the returned
// error.
func (l *Loader) Publish(ctx context.Context, sink SampleSink, paths [layer.NumLayers]string) error {
	log := l.logger()
	var errs [layer.NumLayers]error

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Go(func() {
			var a *sample.Asset
			if path != "" {
				var err error
				if a, err = l.load(ctx, path); err != nil {
					errs[i] = &AssetError{Layer: i, Path: path, Err: err}
					log.Warn("layer sample not loaded", slog.Int("layer", i), slog.String("path", path), slog.Any("err", err))
					return
				}
			}

			if err := sink.SetLayerSample(i, a); err != nil {
				errs[i] = &AssetError{Layer: i, Path: path, Err: err}
				return
			}
			if a != nil {
				log.Info("layer sample loaded", slog.Int("layer", i), slog.String("path", path), slog.Duration("duration", a.Duration()))
			}
		})
	}
	wg.Wait()

	return errors.Join(errs[:]...)
}

// ctxSource stops a decode once ctx is done.
type ctxSource struct {
	audio.Source
	ctx context.Context
}

func (s *ctxSource) ReadSamples(dst []float32) (int, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	return s.Source.ReadSamples(dst)
}
