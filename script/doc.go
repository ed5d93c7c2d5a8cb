// SPDX-License-Identifier: EPL-2.0

// Package script reads kick scenarios written in Lua.
//
// A scenario configures the engine and the four layers, then schedules
// events in seconds:
//
//	engine{ rate = 48000, channels = 2, length = 1.5, master = -3 }
//
//	layer(1, { sample = "punch.wav", gain = -2, group = 1 })
//	layer(2, { sample = "crunch.wav", shift = "psola", tonal = 0.6, semitones = -12 })
//	layer(3, { sample = "tail.wav", attack = 0.01, release = 0.3, group = 1 })
//
//	note_on(0.0, 60)
//	param(0.25, 2, "mute", true)
//	note_off(0.5, 60)
//	for i = 0, 3 do note_on(0.75 + i * 0.125, 60, 0.8) end
//
// Layers are numbered 1 to 4 in scripts. Gains (layer gain and engine
// master) are in dB; every other parameter uses the units of layer.Params.
// Only the base, table, string and math libraries are available.
package script
