package fbdev

import (
	"encoding/binary"
	"image"
	"image/color"
	"testing"

	"github.com/san-kum/matrixrain/internal/engine"
)

const testTvSize = 16

func rawEvent(typ, code uint16, value int32) []byte {
	rec := make([]byte, EventSize(testTvSize))
	binary.LittleEndian.PutUint16(rec[testTvSize:], typ)
	binary.LittleEndian.PutUint16(rec[testTvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[testTvSize+4:], uint32(value))
	return rec
}

func TestParseEvents(t *testing.T) {
	var buf []byte
	buf = append(buf, rawEvent(evKey, keyT, 1)...)
	buf = append(buf, rawEvent(0, 0, 0)...)
	buf = append(buf, 0xde, 0xad)

	events := ParseEvents(buf, testTvSize)
	if len(events) != 2 {
		t.Fatalf("expected 2 whole events, got %d", len(events))
	}
	if events[0] != (Event{Type: evKey, Code: keyT, Value: 1}) {
		t.Errorf("unexpected event %+v", events[0])
	}
}

func TestKeyboard(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   engine.Action
	}{
		{"t", []Event{{evKey, keyT, 1}}, engine.ActionNextTheme},
		{"shift t", []Event{{evKey, keyLeftShift, 1}, {evKey, keyT, 1}}, engine.ActionPrevTheme},
		{"shift released", []Event{{evKey, keyRightShift, 1}, {evKey, keyRightShift, 0}, {evKey, keyT, 1}}, engine.ActionNextTheme},
		{"equal", []Event{{evKey, keyEqual, 1}}, engine.ActionSpeedUp},
		{"keypad plus", []Event{{evKey, keyKPPlus, 1}}, engine.ActionSpeedUp},
		{"minus", []Event{{evKey, keyMinus, 1}}, engine.ActionSpeedDown},
		{"3", []Event{{evKey, key3, 1}}, engine.ActionLow},
		{"4", []Event{{evKey, key4, 1}}, engine.ActionAuto},
		{"esc", []Event{{evKey, keyEsc, 1}}, engine.ActionQuit},
		{"f4", []Event{{evKey, keyF4, 1}}, engine.ActionQuit},
		{"release", []Event{{evKey, keyQ, 0}}, engine.ActionNone},
		{"repeat", []Event{{evKey, keyQ, 2}}, engine.ActionNone},
		{"not a key", []Event{{0x02, keyQ, 1}}, engine.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var kb Keyboard
			got := engine.ActionNone
			for _, ev := range tt.events {
				got = kb.Handle(ev)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDisplay_ScalesAndOverlays(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 400, 200))
	d := NewDisplay(dst)

	frame := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for i := 0; i < len(frame.Pix); i += 4 {
		frame.Pix[i+1], frame.Pix[i+3] = 0xff, 0xff
	}
	d.ShowColor(color.RGBA{R: 0xff, A: 0xff})
	d.ShowFPS("FPS: 60")
	d.Present(frame)

	if got := dst.RGBAAt(399, 199); got.G != 0xff {
		t.Errorf("frame should be scaled over the whole device, got %v", got)
	}
	if got := dst.RGBAAt(14, 15); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("expected colour swatch, got %v", got)
	}
	if got := dst.RGBAAt(9, 9); got.G != 0 {
		t.Errorf("expected black panel behind the readout, got %v", got)
	}
}
