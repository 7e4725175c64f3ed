// Package midi maps MIDI controllers onto engine parameters.
package midi

import (
	"gitlab.com/gomidi/midi/v2"

	"github.com/justyntemme/fxroute/pkg/framework/process"
)

// Controller numbers as hosts report them. Pitch bend has no CC number
// of its own, so it sits just past the 0-127 range.
const (
	CtrlModWheel  int16 = 1
	CtrlPitchBend int16 = 129
)

// Mapping routes pitch bend on channel 0 and the mod wheel on any channel
// to two parameter IDs. Everything else is declined.
type Mapping struct {
	PitchBendID uint32
	ModWheelID  uint32
}

// NewMapping creates a mapping for the given parameter IDs.
func NewMapping(pitchBendID, modWheelID uint32) Mapping {
	return Mapping{PitchBendID: pitchBendID, ModWheelID: modWheelID}
}

// ControllerAssignment returns the parameter mapped to a controller. The bus
// index is accepted for symmetry with the host call and not consulted.
func (m Mapping) ControllerAssignment(bus int32, channel int16, controller int16) (uint32, bool) {
	if channel == 0 && controller == CtrlPitchBend {
		return m.PitchBendID, true
	}
	if controller == CtrlModWheel {
		return m.ModWheelID, true
	}
	return 0, false
}

// Translate decodes a raw message into a normalized parameter change.
// Pitch bend maps 0..16383 to 0..1 and controllers map 0..127 to 0..1.
func (m Mapping) Translate(msg midi.Message) (id uint32, value float64, ok bool) {
	var channel, controller, ccValue uint8
	var relative int16
	var absolute uint16

	switch {
	case msg.GetPitchBend(&channel, &relative, &absolute):
		id, ok = m.ControllerAssignment(0, int16(channel), CtrlPitchBend)
		value = float64(absolute) / 16383
	case msg.GetControlChange(&channel, &controller, &ccValue):
		id, ok = m.ControllerAssignment(0, int16(channel), int16(controller))
		value = float64(ccValue) / 127
	}
	if !ok {
		return 0, 0, false
	}
	return id, value, true
}

// Feed translates msg and queues the result on a change list. It reports
// whether a change was queued.
func (m Mapping) Feed(changes *process.ChangeList, offset int32, msg midi.Message) bool {
	id, value, ok := m.Translate(msg)
	if !ok {
		return false
	}
	return changes.Add(id, offset, value)
}
