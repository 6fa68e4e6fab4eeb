package router

import (
	"testing"

	"github.com/Skrokkio/LRscript/joystick"
	"github.com/Skrokkio/LRscript/types"
)

type fakeScreen struct {
	got     []joystick.Action
	signals map[joystick.Action]types.Signal
}

func (f *fakeScreen) HandleAction(a joystick.Action) types.Signal {
	f.got = append(f.got, a)
	return f.signals[a]
}

type fakeModal struct {
	active bool
	got    []joystick.Action
}

func (m *fakeModal) HandleAction(a joystick.Action) bool {
	if !m.active {
		return false
	}
	m.got = append(m.got, a)
	return true
}

func newTestRouter() (*Router, *fakeScreen, *fakeScreen, *fakeScreen, *fakeModal) {
	menu := &fakeScreen{signals: map[joystick.Action]types.Signal{
		joystick.ActionConfirm:     {Kind: types.SignalEnterPlatform, Platform: 2},
		joystick.ActionConfirmHold: {Kind: types.SignalEnterConfig},
	}}
	browser := &fakeScreen{}
	config := &fakeScreen{signals: map[joystick.Action]types.Signal{
		joystick.ActionBack: {Kind: types.SignalExitToMenu},
	}}
	modal := &fakeModal{}
	return New(menu, browser, config, modal), menu, browser, config, modal
}

func TestModeString(t *testing.T) {
	tests := map[Mode]string{
		ModeMenu:   "menu",
		ModeMain:   "main",
		ModeConfig: "config",
		Mode(9):    "unknown",
	}
	for m, want := range tests {
		if got := m.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(m), got, want)
		}
	}
}

func TestTransitions(t *testing.T) {
	r, _, _, _, _ := newTestRouter()
	var log []string
	var platform int
	r.OnTransition(func(from, to Mode, sig types.Signal) {
		log = append(log, from.String()+">"+to.String())
		if sig.Kind == types.SignalEnterPlatform {
			platform = sig.Platform
		}
	})

	if r.Mode() != ModeMenu {
		t.Fatalf("initial mode = %v, want menu", r.Mode())
	}

	steps := []struct {
		action joystick.Action
		want   Mode
	}{
		{joystick.ActionConfirm, ModeMain},
		{joystick.ActionBack, ModeMenu},
		{joystick.ActionConfirmHold, ModeConfig},
		{joystick.ActionBack, ModeMenu},
	}
	for i, s := range steps {
		if !r.Dispatch(s.action) {
			t.Fatalf("step %d: Dispatch(%v) quit", i, s.action)
		}
		if r.Mode() != s.want {
			t.Errorf("step %d: mode = %v, want %v", i, r.Mode(), s.want)
		}
	}

	want := []string{"menu>main", "main>menu", "menu>config", "config>menu"}
	if len(log) != len(want) {
		t.Fatalf("transitions = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("transition %d = %q, want %q", i, log[i], want[i])
		}
	}
	if platform != 2 {
		t.Errorf("platform = %d, want 2", platform)
	}
}

func TestQuitApp(t *testing.T) {
	r, _, _, _, _ := newTestRouter()
	if r.Dispatch(joystick.ActionQuitApp) {
		t.Error("quit_app in menu should quit")
	}

	r.Dispatch(joystick.ActionConfirm)
	if r.Dispatch(joystick.ActionQuitApp) {
		t.Error("quit_app in main should quit")
	}
}

func TestConfigSeesEverythingWithoutModal(t *testing.T) {
	r, _, _, config, _ := newTestRouter()
	r.Dispatch(joystick.ActionConfirmHold)

	for _, a := range []joystick.Action{joystick.ActionUp, joystick.ActionQuitApp, joystick.ActionConfirm} {
		if !r.Dispatch(a) {
			t.Errorf("Dispatch(%v) quit in config mode", a)
		}
	}
	if len(config.got) != 3 {
		t.Errorf("config screen got %v, want 3 actions", config.got)
	}
}

func TestModalWinsInConfig(t *testing.T) {
	r, _, _, config, modal := newTestRouter()
	r.Dispatch(joystick.ActionConfirmHold)
	modal.active = true

	for _, a := range []joystick.Action{joystick.ActionUp, joystick.ActionBack} {
		r.Dispatch(a)
	}
	if len(config.got) != 0 {
		t.Errorf("config screen got %v while modal open", config.got)
	}
	if len(modal.got) != 2 {
		t.Errorf("modal got %v, want 2 actions", modal.got)
	}
	if r.Mode() != ModeConfig {
		t.Errorf("mode = %v, want config", r.Mode())
	}
}

func TestModalGateWins(t *testing.T) {
	r, _, browser, _, modal := newTestRouter()
	r.Dispatch(joystick.ActionConfirm)
	modal.active = true

	for _, a := range []joystick.Action{joystick.ActionBack, joystick.ActionQuitApp, joystick.ActionDown} {
		if !r.Dispatch(a) {
			t.Errorf("Dispatch(%v) quit while modal open", a)
		}
	}
	if r.Mode() != ModeMain {
		t.Errorf("mode = %v, want main", r.Mode())
	}
	if len(browser.got) != 0 {
		t.Errorf("browser got %v while modal open", browser.got)
	}
	if len(modal.got) != 3 {
		t.Errorf("modal got %v, want 3 actions", modal.got)
	}
}

func TestBackInMenuForwarded(t *testing.T) {
	r, menu, _, _, _ := newTestRouter()
	r.Dispatch(joystick.ActionBack)
	if r.Mode() != ModeMenu {
		t.Errorf("mode = %v, want menu", r.Mode())
	}
	if len(menu.got) != 1 || menu.got[0] != joystick.ActionBack {
		t.Errorf("menu got %v, want [back]", menu.got)
	}
}

func TestBackInMainNotForwarded(t *testing.T) {
	r, _, browser, _, _ := newTestRouter()
	r.Dispatch(joystick.ActionConfirm)
	r.Dispatch(joystick.ActionBack)
	if len(browser.got) != 0 {
		t.Errorf("browser got %v, want nothing", browser.got)
	}
}

func TestDrain(t *testing.T) {
	r, menu, _, _, _ := newTestRouter()
	q := joystick.NewActionQueue()
	q.Push(joystick.ActionDown)
	q.Push(joystick.ActionUp)
	q.Push(joystick.ActionQuitApp)
	q.Push(joystick.ActionDown)

	if r.Drain(q) {
		t.Error("Drain() should report quit")
	}
	if len(menu.got) != 2 {
		t.Errorf("menu got %v, want [down up]", menu.got)
	}
	if q.Len() != 0 {
		t.Errorf("queue has %d actions left", q.Len())
	}
}
