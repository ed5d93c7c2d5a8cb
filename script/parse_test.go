// SPDX-License-Identifier: EPL-2.0

package script

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/hardkick/engine"
	"github.com/ik5/hardkick/layer"
	"github.com/ik5/hardkick/shift"
	"github.com/ik5/hardkick/utils"
)

const kit = `
engine{ rate = 44100, channels = 1, voices = 16, master = -6,
        mute_policy = "release", retrigger = "choke", length = 2 }

layer(1, { sample = "punch.wav", gain = 0, group = 1, attack = 0.001 })
layer(2, { sample = "crunch.wav", shift = "psola", tonal = 0.6, semitones = -12, keytrack = false })
layer(4, { sample = "/abs/tail.wav", mute = true, release = 0.3 })

note_off(0.5, 60)
note_on(0.0, 60)
param(0.25, 2, "mute", true)
param(0.25, 3, "shift", "psola")
for i = 0, 2 do note_on(1 + i * 0.25, 62, 0.5, 3) end
all_notes_off(1.9)
`

func TestParse_Kit(t *testing.T) {
	t.Parallel()

	sc, err := Parse(kit)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg := sc.Config
	if cfg.SampleRate != 44100 || cfg.Channels != 1 || cfg.MaxVoices != 16 {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.MutePolicy != engine.MuteReleases || cfg.Retrigger != engine.RetriggerChoke {
		t.Errorf("policies = %v / %v", cfg.MutePolicy, cfg.Retrigger)
	}
	if math.Abs(sc.Master-utils.DBToGain(-6)) > 1e-12 {
		t.Errorf("Master = %v, want %v", sc.Master, utils.DBToGain(-6))
	}
	if sc.Frames() != 88200 {
		t.Errorf("Frames() = %d, want 88200", sc.Frames())
	}

	l0 := sc.Layers[0].Params
	if sc.Layers[0].Sample != "punch.wav" || l0.Gain != 1 || l0.BlendGroup != 1 || l0.Envelope.Attack != 0.001 {
		t.Errorf("layer 1 = %+v", sc.Layers[0])
	}
	l1 := sc.Layers[1].Params
	if l1.Shift != shift.KindPSOLA || l1.Tonal != 0.6 || l1.SemitoneOffset != -12 || l1.KeyTrack {
		t.Errorf("layer 2 = %+v", l1)
	}
	if sc.Layers[2].Sample != "" || sc.Layers[2].Params != layer.DefaultParams() {
		t.Errorf("untouched layer 3 = %+v", sc.Layers[2])
	}
	if !sc.Layers[3].Params.Mute || sc.Layers[3].Sample != "/abs/tail.wav" {
		t.Errorf("layer 4 = %+v", sc.Layers[3])
	}
	if got := sc.Paths(); got != [layer.NumLayers]string{"punch.wav", "crunch.wav", "", "/abs/tail.wav"} {
		t.Errorf("Paths() = %q", got)
	}

	want := []struct {
		frame int
		kind  engine.EventKind
	}{
		{0, engine.NoteOn},
		{11025, engine.ParamChange},
		{11025, engine.ParamChange},
		{22050, engine.NoteOff},
		{44100, engine.NoteOn},
		{55125, engine.NoteOn},
		{66150, engine.NoteOn},
		{83790, engine.AllNotesOff},
	}
	if len(sc.Events) != len(want) {
		t.Fatalf("got %d events, want %d", len(sc.Events), len(want))
	}
	for i, w := range want {
		got := sc.Events[i]
		if got.Frame != w.frame || got.Event.Kind != w.kind {
			t.Errorf("event %d = %d %v, want %d %v", i, got.Frame, got.Event, w.frame, w.kind)
		}
	}

	mute := sc.Events[1].Event
	if mute.Layer != 1 || mute.Param != layer.ParamMute || mute.Value != 1 {
		t.Errorf("mute event = %+v", mute)
	}
	if psola := sc.Events[2].Event; psola.Value != float64(shift.KindPSOLA) || psola.Layer != 2 {
		t.Errorf("shift event = %+v", psola)
	}
	if first := sc.Events[0].Event; first.Layer != engine.AllLayers || first.Velocity != 1 {
		t.Errorf("note-on = %+v", first)
	}
	if layered := sc.Events[4].Event; layered.Layer != 2 || layered.Velocity != 0.5 || layered.Note != 62 {
		t.Errorf("layer note-on = %+v", layered)
	}
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	sc, err := Parse(`note_on(0.5, 60)`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if sc.Config != engine.DefaultConfig() {
		t.Errorf("Config = %+v, want defaults", sc.Config)
	}
	if sc.Master != 1 {
		t.Errorf("Master = %v, want 1", sc.Master)
	}
	// last event plus the default tail
	if sc.Frames() != 24000+48000 {
		t.Errorf("Frames() = %d, want 72000", sc.Frames())
	}

	empty, err := Parse("")
	if err != nil {
		t.Fatal(err)
	}
	if empty.Frames() != 48000 || len(empty.Events) != 0 {
		t.Errorf("empty scenario = %d frames, %d events", empty.Frames(), len(empty.Events))
	}
}

func TestParse_RateAppliesToEarlierEvents(t *testing.T) {
	t.Parallel()

	sc, err := Parse(`note_on(1, 60) engine{ rate = 8000 }`)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Events[0].Frame != 8000 {
		t.Errorf("frame = %d, want 8000", sc.Events[0].Frame)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want error
	}{
		{"syntax", `note_on(`, ErrScript},
		{"unknown engine field", `engine{ tempo = 150 }`, ErrUnknownField},
		{"engine field type", `engine{ rate = "fast" }`, ErrBadArgument},
		{"fractional channels", `engine{ channels = 1.5 }`, ErrBadArgument},
		{"three channels", `engine{ channels = 3 }`, engine.ErrInvalidConfig},
		{"bad mute policy", `engine{ mute_policy = "never" }`, engine.ErrInvalidConfig},
		{"negative length", `engine{ length = -1 }`, ErrBadArgument},
		{"layer zero", `layer(0, {})`, layer.ErrLayerIndex},
		{"layer five", `layer(5, { gain = 0 })`, layer.ErrLayerIndex},
		{"tonal out of range", `layer(1, { tonal = 2 })`, layer.ErrInvalidParam},
		{"gain too loud", `layer(1, { gain = 40 })`, layer.ErrInvalidParam},
		{"unknown layer field", `layer(1, { pan = 0 })`, ErrUnknownField},
		{"unknown shifter", `layer(1, { shift = "granular" })`, shift.ErrUnknownKind},
		{"string for number", `layer(1, { tonal = "half" })`, ErrBadArgument},
		{"table value", `layer(1, { release = {} })`, ErrBadArgument},
		{"negative time", `note_on(-1, 60)`, ErrBadArgument},
		{"note too high", `note_on(0, 200)`, ErrBadArgument},
		{"velocity too high", `note_on(0, 60, 2)`, ErrBadArgument},
		{"note-on layer", `note_on(0, 60, 1, 9)`, layer.ErrLayerIndex},
		{"param name", `param(0, 1, "width", 1)`, ErrUnknownField},
		{"param range", `param(0, 1, "group", 99)`, layer.ErrInvalidParam},
		{"swallowed by pcall", `pcall(layer, 7, {})`, layer.ErrLayerIndex},
		{"no io library", `io.open("/etc/passwd")`, ErrScript},
		{"no dofile", `dofile("x.lua")`, ErrScript},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrScript) {
				t.Errorf("Parse() error = %v does not wrap ErrScript", err)
			}
		})
	}
}

func TestParse_ConfigErrorNamesLayer(t *testing.T) {
	t.Parallel()

	_, err := Parse(`layer(3, { sustain = 1.5 })`)
	var ce *layer.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("Parse() error = %v, want *layer.ConfigError", err)
	}
	if ce.Layer != 2 || ce.Param != layer.ParamSustain {
		t.Errorf("ConfigError = %+v, want layer 2 sustain", ce)
	}
}

func TestParseContext_StopsRunawayScript(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := ParseContext(ctx, `while true do end`); err == nil {
		t.Fatal("ParseContext() returned nil for an endless script")
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "kick.lua")
	src := `layer(1, { sample = "samples/punch.wav" })
layer(2, { sample = "/abs/crunch.wav" })
note_on(0, 60)`
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	sc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if want := filepath.Join(dir, "samples", "punch.wav"); sc.Layers[0].Sample != want {
		t.Errorf("relative sample = %q, want %q", sc.Layers[0].Sample, want)
	}
	if sc.Layers[1].Sample != "/abs/crunch.wav" {
		t.Errorf("absolute sample = %q", sc.Layers[1].Sample)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.lua")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ParseFile(missing) error = %v, want os.ErrNotExist", err)
	}
}

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		if _, err := Parse(kit); err != nil {
			b.Fatal(err)
		}
	}
}
