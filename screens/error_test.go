//go:build !libretro

package screens

import (
	"errors"
	"testing"

	"github.com/Skrokkio/LRscript/joystick"
	"github.com/Skrokkio/LRscript/types"
)

func TestErrorScreen(t *testing.T) {
	repaired := 0
	cb := &fakeCallback{}
	s := NewErrorScreen(cb, "config.json", func() error {
		repaired++
		return nil
	})

	if sig := s.HandleAction(joystick.ActionDown); sig != types.None {
		t.Errorf("down = %v, want none", sig.Kind)
	}
	if sig := s.HandleAction(joystick.ActionConfirm); sig.Kind != types.SignalExitToMenu || repaired != 1 {
		t.Errorf("confirm = %v repaired %d", sig.Kind, repaired)
	}
	if sig := s.HandleAction(joystick.ActionBack); sig.Kind != types.SignalQuit {
		t.Errorf("back = %v, want quit", sig.Kind)
	}

	s.SetValidationError("config.json", []string{"bad theme"}, func() error {
		return errors.New("read-only")
	})
	if s.Mode() != ErrorModeInvalid {
		t.Errorf("Mode() = %v, want invalid", s.Mode())
	}
	if sig := s.HandleAction(joystick.ActionConfirm); sig != types.None {
		t.Errorf("failed repair = %v, want none", sig.Kind)
	}
	if len(cb.notes) != 1 {
		t.Errorf("expected a failure notification, got %v", cb.notes)
	}
}
