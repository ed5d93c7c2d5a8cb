// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"log/slog"

	"github.com/ik5/hardkick/engine"
	"github.com/ik5/hardkick/layer"
	"github.com/ik5/hardkick/loader"
	"github.com/ik5/hardkick/utils"
)

const (
	keyQuit   = 'q'
	keyCtrlC  = 0x03
	keyReload = 'r'
	keyPanic  = 'p'
	keyUp     = '+'
	keyDown   = '-'

	masterStepDB = 1.0
)

// keyNotes maps the bottom keyboard row to notes around the root.
var keyNotes = map[byte]int{
	' ': 60,
	'z': 55, 'x': 57, 'c': 58, 'v': 60, 'b': 62, 'n': 63, 'm': 65,
}

// session turns key presses into engine events.
type session struct {
	eng    *engine.Engine
	loader *loader.Loader
	paths  [layer.NumLayers]string
	muted  [layer.NumLayers]bool
	logger *slog.Logger
}

func newSession(e *engine.Engine, ld *loader.Loader, paths [layer.NumLayers]string, logger *slog.Logger) *session {
	s := &session{eng: e, loader: ld, paths: paths, logger: logger}
	for i := range s.muted {
		if p, err := e.LayerParams(i); err == nil {
			s.muted[i] = p.Mute
		}
	}
	return s
}

// reload loads every layer's sample again. Voices already playing keep the
// old one.
func (s *session) reload(ctx context.Context) error {
	return s.loader.Publish(ctx, s.eng, s.paths)
}

// handle processes one key and reports whether the player should keep
// running.
func (s *session) handle(ctx context.Context, k byte) bool {
	if note, ok := keyNotes[k]; ok {
		s.post(engine.NoteOnEvent(0, note, 1))
		return true
	}

	switch {
	case k == keyQuit || k == keyCtrlC:
		return false
	case k >= '1' && k < '1'+layer.NumLayers:
		i := int(k - '1')
		s.muted[i] = !s.muted[i]
		v := 0.0
		if s.muted[i] {
			v = 1
		}
		s.post(engine.ParamEvent(0, i, layer.ParamMute, v))
		s.logger.Info("layer mute", slog.Int("layer", i+1), slog.Bool("muted", s.muted[i]))
	case k == keyUp || k == keyDown:
		db := utils.GainToDB(s.eng.MasterGain())
		if k == keyUp {
			db += masterStepDB
		} else {
			db -= masterStepDB
		}
		s.eng.SetMasterGain(utils.DBToGain(db))
		s.logger.Info("master gain", slog.Float64("db", utils.GainToDB(s.eng.MasterGain())))
	case k == keyPanic:
		s.post(engine.AllNotesOffEvent(0))
	case k == keyReload:
		if err := s.reload(ctx); err != nil {
			s.logger.Warn("reload incomplete", slog.Any("err", err))
		}
	}
	return true
}

func (s *session) post(ev engine.Event) {
	if !s.eng.Post(ev) {
		s.logger.Warn("event queue full", slog.String("event", ev.String()))
	}
}
