// SPDX-License-Identifier: EPL-2.0

// Package engine renders kick notes from the four layers.
//
// An Engine owns the layer slots, a fixed pool of voices and the blend
// group table. Control code publishes samples and params with
// SetLayerSample and SetLayerParams, and may post events from one other
// goroutine with Post. The audio goroutine calls Render once per block.
// Render never blocks, locks or allocates: it works on a snapshot of the
// layers taken at the start of the block and splits the block at every
// event offset so notes start on the exact frame they were scheduled for.
//
// Voices go through Created, Sounding, Releasing and Dead. Note-off, a
// choke from another voice in the same blend group, or the end of the
// sample moves a voice to Releasing; it is freed once its envelope
// reaches zero.
package engine
