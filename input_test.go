//go:build !libretro

package lrscript

import (
	"testing"
	"time"

	"github.com/Skrokkio/LRscript/download"
	"github.com/Skrokkio/LRscript/joystick"
	"github.com/Skrokkio/LRscript/router"
)

func TestEscapeAction(t *testing.T) {
	tests := []struct {
		name string
		ctx  InputContext
		want joystick.Action
	}{
		{"menu quits", InputContext{Mode: router.ModeMenu}, joystick.ActionQuitApp},
		{"menu picker closes first", InputContext{Mode: router.ModeMenu, PickerOpen: true}, joystick.ActionBack},
		{"main backs out", InputContext{Mode: router.ModeMain}, joystick.ActionBack},
		{"config backs out", InputContext{Mode: router.ModeConfig}, joystick.ActionBack},
		{"modal cancels", InputContext{Mode: router.ModeMain, Modal: download.PhaseConfirming}, joystick.ActionBack},
		{"modal in menu never quits", InputContext{Mode: router.ModeMenu, Modal: download.PhaseError}, joystick.ActionBack},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := escapeAction(tc.ctx); got != tc.want {
				t.Errorf("escapeAction() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSpaceAction(t *testing.T) {
	tests := []struct {
		phase download.Phase
		want  joystick.Action
	}{
		{download.PhaseNone, joystick.ActionDownloadROM},
		{download.PhaseConfirming, joystick.ActionConfirm},
		{download.PhaseDownloading, joystick.ActionDownloadROM},
	}
	for _, tc := range tests {
		t.Run(tc.phase.String(), func(t *testing.T) {
			got := spaceAction(InputContext{Mode: router.ModeMain, Modal: tc.phase})
			if got != tc.want {
				t.Errorf("spaceAction() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestKeyboardRepeatFollowsDPadCurve(t *testing.T) {
	timing := joystick.DefaultTiming()
	im := NewInputManager(timing)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	im.startVertical(joystick.ActionDown, start)

	if im.repeatDue(start.Add(timing.DPad.Delay - time.Millisecond)) {
		t.Error("no repeat before the delay")
	}

	// Count repeats in the first and last second of a 3.5s hold at 60Hz
	var early, late int
	frame := time.Second / 60
	for at := timing.DPad.Delay; at <= 3500*time.Millisecond; at += frame {
		if im.repeatDue(start.Add(at)) {
			switch {
			case at < 1500*time.Millisecond:
				early++
			case at >= 2500*time.Millisecond:
				late++
			}
		}
	}
	if early == 0 {
		t.Fatal("expected repeats after the delay")
	}
	if late <= early {
		t.Errorf("repeats should accelerate: early=%d late=%d", early, late)
	}
}
