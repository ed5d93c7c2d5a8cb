// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files using github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes natively to float32, so samples are passed through as
// the decoder produces them. Reads always return whole frames.
//
//	f, _ := os.Open("tail.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	asset, err := sample.FromSource(src)
package vorbis
