// SPDX-License-Identifier: EPL-2.0

// Package playback sends an engine's output to the sound card.
//
// A Stream is an io.Reader that renders the attached engine block by block
// and hands out little-endian float32 frames. Player wraps a Stream in an
// oto context. Builds with the headless tag get a Player that never opens
// a device, for CI machines without audio.
package playback
