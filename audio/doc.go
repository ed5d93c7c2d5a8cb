// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming side of sample loading.
//
// Decoders in the formats/ subpackages turn files into a Source; the sample
// package then drains a Source into an immutable in-memory asset that the
// render engine plays from. Nothing in this package runs on the render
// goroutine.
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in the range [-1.0, 1.0].
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("kick/punch.WAV")
//
// hardkick.NewRegistry returns a registry with every bundled format.
//
// # Channel Mixing
//
// MonoMixer averages all channels of a Source into one:
//
//	mono := audio.NewMonoMixer(source)
package audio
