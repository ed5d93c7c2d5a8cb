// SPDX-License-Identifier: EPL-2.0

// Package loader decodes layer samples off the render goroutine.
//
// A Loader resolves a decoder from the file extension, drains the stream
// into an immutable sample.Asset and hands it to the engine. Loading the
// four layers of a kit runs concurrently:
//
//	l := &loader.Loader{Registry: hardkick.NewRegistry(), Logger: logger}
//	err := l.Publish(ctx, eng, [4]string{"punch.wav", "crunch.wav", "", "tail.ogg"})
//
// Failures are reported as *AssetError and never touch the slot that
// failed, so a layer keeps its last good sample or stays silent.
package loader
