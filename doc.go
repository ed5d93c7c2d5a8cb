// SPDX-License-Identifier: EPL-2.0

// Package hardkick is a four-layer kick drum sampler built for hardstyle
// production.
//
// Each of the four layers plays one sample through its own pitch shifter,
// envelope and gain, and the layers are summed into a mono or stereo
// output. The real-time part lives in the engine subpackage; this package
// ties it to the file loaders and the scenario scripts for offline work.
//
// # Supported Formats
//
// Samples can be loaded from:
//   - WAV (PCM 8/16/24/32-bit and 32-bit float) via formats/wav
//   - AIFF (PCM 8/16/24/32-bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// NewRegistry returns an audio.Registry with all of them registered.
//
// # Quick Start
//
// A scenario script sets up the engine and layers and lists timed notes:
//
//	engine{ rate = 48000, channels = 2, master = -3 }
//	layer(1, { sample = "punch.wav", group = 1 })
//	layer(2, { sample = "tail.wav", shift = "psola", tonal = 0.7, semitones = -12 })
//	for beat = 0, 7 do note_on(beat * 0.4, 60) end
//
// Render it and write the result:
//
//	sc, _ := script.ParseFile("kit.lua")
//	r, _ := hardkick.RenderScenario(ctx, sc, hardkick.RenderOptions{})
//	out, _ := os.Create("kit.wav")
//	wav.Write(out, r.SampleRate, r.Channels, wav.PCM24, r.Samples)
//
// # Offline Rendering
//
// RenderOffline drives any engine with an absolute event list. Events are
// applied on their exact frame, so the output is the same for every block
// size.
//
// See the cmd directory for a file renderer and a live keyboard player.
package hardkick
