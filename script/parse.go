// SPDX-License-Identifier: EPL-2.0

package script

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"

	lua "github.com/yuin/gopher-lua"

	"github.com/ik5/hardkick/engine"
	"github.com/ik5/hardkick/layer"
	"github.com/ik5/hardkick/shift"
	"github.com/ik5/hardkick/utils"
)

// Parse runs a scenario script held in memory.
func Parse(src string) (*Scenario, error) {
	return ParseContext(context.Background(), src)
}

// ParseContext is Parse with a context that can stop a runaway script.
func ParseContext(ctx context.Context, src string) (*Scenario, error) {
	return run(ctx, "", func(L *lua.LState) error { return L.DoString(src) })
}

// ParseFile runs the script at path. Relative sample paths are taken
// relative to the script's directory.
func ParseFile(path string) (*Scenario, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}
	return run(context.Background(), filepath.Dir(path), func(L *lua.LState) error { return L.DoFile(path) })
}

type pending struct {
	at float64
	ev engine.Event
}

type parser struct {
	sc     *Scenario
	dir    string
	events []pending
	err    error
}

func run(ctx context.Context, dir string, exec func(*lua.LState) error) (*Scenario, error) {
	L := newState()
	defer L.Close()
	L.SetContext(ctx)

	p := &parser{sc: newScenario(), dir: dir}
	p.register(L)

	if err := exec(L); err != nil {
		if p.err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScript, p.err)
		}
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}
	// an error swallowed by pcall still invalidates the scenario
	if p.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScript, p.err)
	}

	p.finish()
	return p.sc, nil
}

// newState opens a Lua state with only the side-effect free libraries.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range []string{"dofile", "loadfile", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func (p *parser) register(L *lua.LState) {
	for name, fn := range map[string]lua.LGFunction{
		"engine":        p.engine,
		"layer":         p.layer,
		"note_on":       p.noteOn,
		"note_off":      p.noteOff,
		"param":         p.param,
		"all_notes_off": p.allNotesOff,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

// fail records err so the caller gets it back intact, then aborts the
// script.
func (p *parser) fail(L *lua.LState, err error) int {
	p.err = err
	L.RaiseError("%v", err)
	return 0
}

func (p *parser) engine(L *lua.LState) int {
	tbl := L.CheckTable(1)
	cfg := p.sc.Config

	var ferr error
	tbl.ForEach(func(k, v lua.LValue) {
		if ferr != nil {
			return
		}
		key := k.String()
		switch key {
		case "rate":
			ferr = intField(key, v, &cfg.SampleRate)
		case "channels":
			ferr = intField(key, v, &cfg.Channels)
		case "voices":
			ferr = intField(key, v, &cfg.MaxVoices)
		case "length":
			ferr = numField(key, v, &p.sc.Length)
			if ferr == nil && p.sc.Length < 0 {
				ferr = fmt.Errorf("length %v: %w", p.sc.Length, ErrBadArgument)
			}
		case "master":
			var db float64
			if ferr = numField(key, v, &db); ferr == nil {
				p.sc.Master = utils.DBToGain(db)
			}
		case "mute_policy":
			var s string
			if ferr = stringField(key, v, &s); ferr == nil {
				cfg.MutePolicy, ferr = engine.ParseMutePolicy(s)
			}
		case "retrigger":
			var s string
			if ferr = stringField(key, v, &s); ferr == nil {
				cfg.Retrigger, ferr = engine.ParseRetriggerPolicy(s)
			}
		default:
			ferr = fmt.Errorf("engine.%s: %w", key, ErrUnknownField)
		}
	})
	if ferr != nil {
		return p.fail(L, ferr)
	}
	if err := cfg.Validate(); err != nil {
		return p.fail(L, err)
	}

	p.sc.Config = cfg
	return 0
}

func (p *parser) layer(L *lua.LState) int {
	idx, err := layerIndex(L, 1)
	if err != nil {
		return p.fail(L, err)
	}
	tbl := L.CheckTable(2)

	spec := p.sc.Layers[idx]
	var ferr error
	tbl.ForEach(func(k, v lua.LValue) {
		if ferr != nil {
			return
		}
		key := k.String()
		if key == "sample" {
			ferr = stringField(key, v, &spec.Sample)
			if ferr == nil && spec.Sample != "" && p.dir != "" && !filepath.IsAbs(spec.Sample) {
				spec.Sample = filepath.Join(p.dir, spec.Sample)
			}
			return
		}

		var id layer.ParamID
		var val float64
		if id, val, ferr = paramValue(key, v); ferr != nil {
			return
		}
		spec.Params, ferr = spec.Params.With(id, val)
	})
	if ferr != nil {
		var ce *layer.ConfigError
		if errors.As(ferr, &ce) {
			ce.Layer = idx
		}
		return p.fail(L, ferr)
	}

	p.sc.Layers[idx] = spec
	return 0
}

func (p *parser) noteOn(L *lua.LState) int {
	at, err := p.time(L)
	if err != nil {
		return p.fail(L, err)
	}
	note, err := noteArg(L, 2)
	if err != nil {
		return p.fail(L, err)
	}
	vel := float64(L.OptNumber(3, 1))
	if math.IsNaN(vel) || vel < 0 || vel > 1 {
		return p.fail(L, fmt.Errorf("velocity %v: %w", vel, ErrBadArgument))
	}

	ev := engine.NoteOnEvent(0, note, float32(vel))
	if L.GetTop() >= 4 {
		idx, err := layerIndex(L, 4)
		if err != nil {
			return p.fail(L, err)
		}
		ev = engine.LayerNoteOnEvent(0, idx, note, float32(vel))
	}

	p.events = append(p.events, pending{at: at, ev: ev})
	return 0
}

func (p *parser) noteOff(L *lua.LState) int {
	at, err := p.time(L)
	if err != nil {
		return p.fail(L, err)
	}
	note, err := noteArg(L, 2)
	if err != nil {
		return p.fail(L, err)
	}

	p.events = append(p.events, pending{at: at, ev: engine.NoteOffEvent(0, note)})
	return 0
}

func (p *parser) param(L *lua.LState) int {
	at, err := p.time(L)
	if err != nil {
		return p.fail(L, err)
	}
	idx, err := layerIndex(L, 2)
	if err != nil {
		return p.fail(L, err)
	}
	id, val, err := paramValue(L.CheckString(3), L.CheckAny(4))
	if err != nil {
		return p.fail(L, err)
	}

	// ranges do not depend on the rest of the layer, so check them now
	if _, err := layer.DefaultParams().With(id, val); err != nil {
		var ce *layer.ConfigError
		if errors.As(err, &ce) {
			ce.Layer = idx
		}
		return p.fail(L, err)
	}

	p.events = append(p.events, pending{at: at, ev: engine.ParamEvent(0, idx, id, val)})
	return 0
}

func (p *parser) allNotesOff(L *lua.LState) int {
	at, err := p.time(L)
	if err != nil {
		return p.fail(L, err)
	}

	p.events = append(p.events, pending{at: at, ev: engine.AllNotesOffEvent(0)})
	return 0
}

func (p *parser) time(L *lua.LState) (float64, error) {
	at := float64(L.CheckNumber(1))
	if math.IsNaN(at) || math.IsInf(at, 0) || at < 0 {
		return 0, fmt.Errorf("time %v: %w", at, ErrBadArgument)
	}
	return at, nil
}

// finish converts event times to frames once the final sample rate is known.
func (p *parser) finish() {
	rate := float64(p.sc.Config.SampleRate)
	p.sc.Events = make([]engine.TimedEvent, len(p.events))
	for i, e := range p.events {
		p.sc.Events[i] = engine.At(int(math.Round(e.at*rate)), e.ev)
	}
	slices.SortStableFunc(p.sc.Events, func(a, b engine.TimedEvent) int { return cmp.Compare(a.Frame, b.Frame) })
}

func layerIndex(L *lua.LState, n int) (int, error) {
	i := L.CheckInt(n)
	if i < 1 || i > layer.NumLayers {
		return 0, fmt.Errorf("layer %d, want 1 to %d: %w", i, layer.NumLayers, layer.ErrLayerIndex)
	}
	return i - 1, nil
}

func noteArg(L *lua.LState, n int) (int, error) {
	note := L.CheckInt(n)
	if note < 0 || note > layer.MaxNote {
		return 0, fmt.Errorf("note %d: %w", note, ErrBadArgument)
	}
	return note, nil
}

// paramValue converts a script value for the named parameter into the
// number layer.Params expects.
func paramValue(name string, v lua.LValue) (layer.ParamID, float64, error) {
	id, err := layer.ParseParamID(name)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", name, ErrUnknownField)
	}

	switch lv := v.(type) {
	case lua.LBool:
		if lv {
			return id, 1, nil
		}
		return id, 0, nil
	case lua.LString:
		if id != layer.ParamShift {
			return 0, 0, fmt.Errorf("%s = %q: %w", name, string(lv), ErrBadArgument)
		}
		k, err := shift.ParseKind(string(lv))
		if err != nil {
			return 0, 0, err
		}
		return id, float64(k), nil
	case lua.LNumber:
		if id == layer.ParamGain {
			return id, utils.DBToGain(float64(lv)), nil
		}
		return id, float64(lv), nil
	default:
		return 0, 0, fmt.Errorf("%s: %s value: %w", name, v.Type(), ErrBadArgument)
	}
}

func numField(key string, v lua.LValue, dst *float64) error {
	n, ok := v.(lua.LNumber)
	if !ok {
		return fmt.Errorf("%s: want number, got %s: %w", key, v.Type(), ErrBadArgument)
	}
	*dst = float64(n)
	return nil
}

func intField(key string, v lua.LValue, dst *int) error {
	var f float64
	if err := numField(key, v, &f); err != nil {
		return err
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("%s = %v: want integer: %w", key, f, ErrBadArgument)
	}
	*dst = int(f)
	return nil
}

func stringField(key string, v lua.LValue, dst *string) error {
	s, ok := v.(lua.LString)
	if !ok {
		return fmt.Errorf("%s: want string, got %s: %w", key, v.Type(), ErrBadArgument)
	}
	*dst = string(s)
	return nil
}
