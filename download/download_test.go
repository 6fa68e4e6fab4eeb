package download

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Skrokkio/LRscript/joystick"
)

func zipBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, err := w.Create("pacman.6e")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(bytes.Repeat([]byte{0xAA}, 4096))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// waitComplete calls Update like the frame loop until a session finishes
func waitComplete(t *testing.T, m *Manager, got chan Session) Session {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		m.Update()
		select {
		case s := <-got:
			return s
		default:
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("download did not complete")
	return Session{}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseNone:        "none",
		PhaseConfirming:  "confirming",
		PhaseDownloading: "downloading",
		PhaseSuccess:     "success",
		PhaseError:       "error",
		Phase(42):        "unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(p), got, want)
		}
	}
}

func TestNewInfo(t *testing.T) {
	dir := t.TempDir()
	info := NewInfo("pacman", "Pac-Man", "https://example.org/roms/", dir)
	want := []string{"https://example.org/roms/pacman.zip", "https://example.org/roms/pacman.7z"}
	if strings.Join(info.URLs, ",") != strings.Join(want, ",") {
		t.Errorf("URLs = %v, want %v", info.URLs, want)
	}
	if !info.FolderExists {
		t.Error("FolderExists should be true for an existing directory")
	}

	if NewInfo("x", "X", "b/", filepath.Join(dir, "missing")).FolderExists {
		t.Error("FolderExists should be false for a missing directory")
	}
	if NewInfo("x", "X", "b/", "").FolderExists {
		t.Error("FolderExists should be false for an empty path")
	}
}

func TestModalGate(t *testing.T) {
	actions := []joystick.Action{
		joystick.ActionUp, joystick.ActionDown, joystick.ActionConfirm, joystick.ActionBack,
		joystick.ActionQuitApp, joystick.ActionDownloadROM, joystick.ActionL1FastScrollUp,
	}

	t.Run("none passes through", func(t *testing.T) {
		m := newManager(http.DefaultClient, nil)
		for _, a := range actions {
			if m.HandleAction(a) {
				t.Errorf("HandleAction(%v) consumed with no session", a)
			}
		}
	})

	t.Run("downloading swallows everything", func(t *testing.T) {
		m := newManager(http.DefaultClient, nil)
		m.session = Session{Phase: PhaseDownloading, URL: "u", Downloaded: 10, Total: 100}
		for _, a := range actions {
			if !m.HandleAction(a) {
				t.Errorf("HandleAction(%v) not consumed while downloading", a)
			}
		}
		s := m.Snapshot()
		if s.Phase != PhaseDownloading || s.URL != "u" || s.Downloaded != 10 || s.Total != 100 {
			t.Errorf("session changed while downloading: %+v", s)
		}
	})

	for _, phase := range []Phase{PhaseSuccess, PhaseError} {
		for _, a := range actions {
			t.Run(phase.String()+" dismisses on "+a.String(), func(t *testing.T) {
				m := newManager(http.DefaultClient, nil)
				m.session = Session{Phase: phase, Message: "done"}
				if !m.HandleAction(a) {
					t.Error("action not consumed")
				}
				if m.Phase() != PhaseNone {
					t.Errorf("phase = %v, want none", m.Phase())
				}
			})
		}
	}

	t.Run("confirming back cancels", func(t *testing.T) {
		m := newManager(http.DefaultClient, nil)
		m.Request(Info{RomName: "x", FolderExists: true})
		m.HandleAction(joystick.ActionBack)
		if m.Phase() != PhaseNone {
			t.Errorf("phase = %v, want none", m.Phase())
		}
	})

	t.Run("confirming swallows other actions", func(t *testing.T) {
		m := newManager(http.DefaultClient, nil)
		m.Request(Info{RomName: "x", FolderExists: true})
		for _, a := range []joystick.Action{joystick.ActionUp, joystick.ActionQuitApp, joystick.ActionDownloadROM} {
			if !m.HandleAction(a) {
				t.Errorf("HandleAction(%v) not consumed", a)
			}
		}
		if m.Phase() != PhaseConfirming {
			t.Errorf("phase = %v, want confirming", m.Phase())
		}
	})

	t.Run("confirm without folder stays confirming", func(t *testing.T) {
		m := newManager(http.DefaultClient, nil)
		m.Request(Info{RomName: "x", FolderExists: false})
		m.HandleAction(joystick.ActionConfirm)
		if m.Phase() != PhaseConfirming {
			t.Errorf("phase = %v, want confirming", m.Phase())
		}
	})
}

func TestRequestIgnoredWhileActive(t *testing.T) {
	m := newManager(http.DefaultClient, nil)
	if !m.Request(Info{RomName: "a"}) {
		t.Fatal("first Request() should open the modal")
	}
	if m.Request(Info{RomName: "b"}) {
		t.Error("second Request() should be ignored")
	}
	if m.Snapshot().Info.RomName != "a" {
		t.Errorf("RomName = %q, want a", m.Snapshot().Info.RomName)
	}
}

func TestDownloadSuccess(t *testing.T) {
	data := zipBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/roms/pacman.zip" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	dir := t.TempDir()
	got := make(chan Session, 1)
	m := newManager(srv.Client(), func(s Session) { got <- s })
	m.Request(NewInfo("pacman", "Pac-Man", srv.URL+"/roms/", dir))
	if !m.Confirm() {
		t.Fatal("Confirm() did not start the worker")
	}

	s := waitComplete(t, m, got)
	if s.Phase != PhaseSuccess {
		t.Fatalf("phase = %v (%s), want success", s.Phase, s.Reason)
	}
	if s.Message != "Download completed: pacman.zip" {
		t.Errorf("Message = %q", s.Message)
	}
	if s.Downloaded != int64(len(data)) {
		t.Errorf("Downloaded = %d, want %d", s.Downloaded, len(data))
	}
	if _, err := os.Stat(filepath.Join(dir, "pacman.zip")); err != nil {
		t.Errorf("downloaded file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "pacman.zip.part")); !os.IsNotExist(err) {
		t.Error("partial file should be gone")
	}
}

func TestDownloadAllCandidatesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".7z") {
			w.Write([]byte("this is not an archive"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	got := make(chan Session, 1)
	m := newManager(srv.Client(), func(s Session) { got <- s })
	m.Request(NewInfo("galaga", "Galaga", srv.URL+"/", dir))
	m.Confirm()

	s := waitComplete(t, m, got)
	if s.Phase != PhaseError {
		t.Fatalf("phase = %v, want error", s.Phase)
	}
	parts := strings.Split(s.Reason, " | ")
	if len(parts) != 2 {
		t.Fatalf("Reason = %q, want two parts", s.Reason)
	}
	if parts[0] != "zip: HTTP 404" {
		t.Errorf("zip reason = %q", parts[0])
	}
	if !strings.HasPrefix(parts[1], "7z: invalid archive") {
		t.Errorf("7z reason = %q", parts[1])
	}
	if _, err := os.Stat(filepath.Join(dir, "galaga.7z")); !os.IsNotExist(err) {
		t.Error("invalid archive should be removed")
	}

	m.HandleAction(joystick.ActionConfirm)
	if m.Phase() != PhaseNone {
		t.Errorf("phase after dismiss = %v, want none", m.Phase())
	}
}

func TestSessionProgress(t *testing.T) {
	tests := []struct {
		s    Session
		want float64
	}{
		{Session{Downloaded: 50, Total: 100}, 0.5},
		{Session{Downloaded: 50, Total: -1}, 0},
		{Session{Downloaded: 200, Total: 100}, 1},
	}
	for _, tc := range tests {
		if got := tc.s.Progress(); got != tc.want {
			t.Errorf("Progress(%d/%d) = %v, want %v", tc.s.Downloaded, tc.s.Total, got, tc.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		512:             "512 B",
		2048:            "2.0 KB",
		5 * 1024 * 1024: "5.0 MB",
	}
	for n, want := range tests {
		if got := FormatBytes(n); got != want {
			t.Errorf("FormatBytes(%d) = %q, want %q", n, got, want)
		}
	}
}
