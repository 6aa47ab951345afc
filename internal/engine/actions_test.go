package engine

import (
	"testing"
	"time"

	"github.com/san-kum/matrixrain/internal/registry"
)

func TestApply(t *testing.T) {
	e, _ := newTestEngine(t, Options{})

	tests := []struct {
		action Action
		want   string
	}{
		{ActionSpeedUp, "speed 40ms"},
		{ActionSpeedDown, "speed 50ms"},
		{ActionLow, "quality low"},
		{ActionMedium, "quality medium"},
		{ActionAuto, "quality auto"},
		{ActionHigh, "quality high"},
		{ActionNextTheme, "theme cyber"},
		{ActionPrevTheme, "theme matrix"},
		{ActionQuit, ""},
		{ActionNone, ""},
	}
	for _, tt := range tests {
		if got := e.Apply(tt.action); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.action, tt.want, got)
		}
	}

	s := e.Snapshot()
	if s.Quality != registry.High || s.Speed != 50*time.Millisecond {
		t.Errorf("unexpected final state %v/%v", s.Quality, s.Speed)
	}
}

func TestActionString(t *testing.T) {
	if ActionAuto.String() != "auto" || Action(99).String() != "action(99)" {
		t.Error("action names broken")
	}
}

func TestRuneAction(t *testing.T) {
	tests := map[rune]Action{
		'+': ActionSpeedUp,
		'=': ActionSpeedUp,
		'-': ActionSpeedDown,
		'1': ActionHigh,
		'4': ActionAuto,
		't': ActionNextTheme,
		'T': ActionPrevTheme,
		'q': ActionQuit,
		'x': ActionNone,
	}
	for r, want := range tests {
		if got := RuneAction(r); got != want {
			t.Errorf("%q: expected %s, got %s", r, want, got)
		}
	}
}
