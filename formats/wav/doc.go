// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes RIFF/WAVE files on top of
// github.com/go-audio/wav.
//
// The Decoder accepts integer PCM at 8, 16, 24 and 32 bits (including
// WAVE_FORMAT_EXTENSIBLE headers) and 32-bit IEEE float, and produces an
// audio.Source yielding interleaved float32 samples. Integer PCM is
// normalized to [-1, 1); float data is passed through untouched.
//
//	f, _ := os.Open("kick.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    // errors.Is(err, wav.ErrNotWavFile), wav.ErrUnsupportedBitDepth, ...
//	}
//	asset, err := sample.FromSource(src)
//
// Readers that cannot seek are buffered in memory before decoding.
//
// Write encodes interleaved float32 audio as 16-bit PCM, 24-bit PCM or
// 32-bit float:
//
//	out, _ := os.Create("render.wav")
//	err := wav.Write(out, 48000, 2, wav.PCM16, samples)
package wav
