package fbdev

import (
	"encoding/binary"

	"github.com/san-kum/matrixrain/internal/engine"
)

const evKey = 0x01

// Linux input-event-codes.h
const (
	keyEsc        = 1
	key1          = 2
	key2          = 3
	key3          = 4
	key4          = 5
	keyMinus      = 12
	keyEqual      = 13
	keyQ          = 16
	keyT          = 20
	keyLeftShift  = 42
	keyRightShift = 54
	keyF4         = 62
	keyKPMinus    = 74
	keyKPPlus     = 78
)

// Event is one decoded input_event record.
type Event struct {
	Type  uint16
	Code  uint16
	Value int32
}

// EventSize returns the size of an input_event record, a timeval followed by
// u16 type, u16 code and s32 value.
func EventSize(tvSize int) int { return tvSize + 2 + 2 + 4 }

// ParseEvents decodes every whole input_event record in buf.
func ParseEvents(buf []byte, tvSize int) []Event {
	size := EventSize(tvSize)
	var out []Event
	for off := 0; off+size <= len(buf); off += size {
		rec := buf[off : off+size]
		out = append(out, Event{
			Type:  binary.LittleEndian.Uint16(rec[tvSize : tvSize+2]),
			Code:  binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4]),
			Value: int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8])),
		})
	}
	return out
}

// Keyboard turns key events into actions, tracking shift so that shift+t
// steps the theme backwards and shift+= speeds up like +.
type Keyboard struct {
	shift bool
}

// Handle returns the action for ev, or ActionNone. Only presses (value 1)
// trigger actions; releases and repeats just update modifier state.
func (k *Keyboard) Handle(ev Event) engine.Action {
	if ev.Type != evKey {
		return engine.ActionNone
	}
	if ev.Code == keyLeftShift || ev.Code == keyRightShift {
		k.shift = ev.Value != 0
		return engine.ActionNone
	}
	if ev.Value != 1 {
		return engine.ActionNone
	}

	switch ev.Code {
	case keyEsc, keyQ, keyF4:
		return engine.ActionQuit
	case keyEqual, keyKPPlus:
		return engine.ActionSpeedUp
	case keyMinus, keyKPMinus:
		return engine.ActionSpeedDown
	case key1:
		return engine.ActionHigh
	case key2:
		return engine.ActionMedium
	case key3:
		return engine.ActionLow
	case key4:
		return engine.ActionAuto
	case keyT:
		if k.shift {
			return engine.ActionPrevTheme
		}
		return engine.ActionNextTheme
	}
	return engine.ActionNone
}
