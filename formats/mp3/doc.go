// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG Layer III files using github.com/hajimehoshi/go-mp3.
//
// The underlying decoder always produces interleaved stereo 16-bit PCM,
// so every Source from this package reports two channels; mono files come
// out with both channels equal. Samples are normalized to [-1, 1).
//
//	f, _ := os.Open("kick.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	asset, err := sample.FromSource(src)
package mp3
