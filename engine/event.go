// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"

	"github.com/ik5/hardkick/layer"
)

// AllLayers targets a note event at every layer.
const AllLayers = -1

type EventKind uint8

const (
	NoteOn EventKind = iota
	NoteOff
	ParamChange
	AllNotesOff
)

func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	case ParamChange:
		return "param"
	case AllNotesOff:
		return "all-notes-off"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is a note or automation event. Offset is the frame within the
// block passed to Render at which it takes effect.
type Event struct {
	Kind   EventKind
	Offset int

	// Note and Velocity apply to note events. A note-on with velocity 0
	// is a note-off.
	Note     int
	Velocity float32

	// Layer selects the target layer; note events may use AllLayers.
	Layer int
	Param layer.ParamID
	Value float64
}

// NoteOnEvent triggers note on every layer.
func NoteOnEvent(offset, note int, velocity float32) Event {
	return Event{Kind: NoteOn, Offset: offset, Note: note, Velocity: velocity, Layer: AllLayers}
}

// LayerNoteOnEvent triggers note on a single layer.
func LayerNoteOnEvent(offset, layerIdx, note int, velocity float32) Event {
	return Event{Kind: NoteOn, Offset: offset, Note: note, Velocity: velocity, Layer: layerIdx}
}

func NoteOffEvent(offset, note int) Event {
	return Event{Kind: NoteOff, Offset: offset, Note: note, Layer: AllLayers}
}

func ParamEvent(offset, layerIdx int, id layer.ParamID, value float64) Event {
	return Event{Kind: ParamChange, Offset: offset, Layer: layerIdx, Param: id, Value: value}
}

func AllNotesOffEvent(offset int) Event {
	return Event{Kind: AllNotesOff, Offset: offset, Layer: AllLayers}
}

func (e Event) String() string {
	switch e.Kind {
	case NoteOn, NoteOff:
		return fmt.Sprintf("%v@%d note=%d vel=%.2f layer=%d", e.Kind, e.Offset, e.Note, e.Velocity, e.Layer)
	case ParamChange:
		return fmt.Sprintf("%v@%d layer=%d %v=%v", e.Kind, e.Offset, e.Layer, e.Param, e.Value)
	default:
		return fmt.Sprintf("%v@%d", e.Kind, e.Offset)
	}
}

func (e Event) targets(l int) bool {
	return e.Layer == AllLayers || e.Layer == l
}
