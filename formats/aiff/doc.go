// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files using
// github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 and 32 bits is supported, at any channel count
// and sample rate. Samples come out interleaved and normalized to [-1, 1):
//
//	f, _ := os.Open("kick.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrUnsupportedBitDepth) {
//	    // re-export the file as 16 or 24 bit
//	}
//
// Readers that cannot seek are buffered in memory first.
package aiff
