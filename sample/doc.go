// SPDX-License-Identifier: EPL-2.0

// Package sample holds decoded layer audio.
//
// An Asset is built once, off the render goroutine, from a decoder stream
// or from raw slices, and is read-only from then on. Voices share the same
// *Asset; swapping a layer's sample publishes a new Asset rather than
// touching the old one, so a voice that is still playing keeps reading the
// data it started with.
package sample
