// Package download runs the ROM download workflow: a confirmation step, a
// background transfer that tries each candidate archive in turn, and a
// result the UI shows until it is dismissed.
package download

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Skrokkio/LRscript/archive"
	"github.com/Skrokkio/LRscript/joystick"
)

// Phase is the stage of the download workflow
type Phase int

const (
	PhaseNone Phase = iota
	PhaseConfirming
	PhaseDownloading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseConfirming:
		return "confirming"
	case PhaseDownloading:
		return "downloading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Extensions are tried in this order
var Extensions = []string{".zip", ".7z"}

// ConnectTimeout bounds dialing and waiting for response headers. The body
// streams without a total deadline.
const ConnectTimeout = 30 * time.Second

// progressInterval is how often byte counters and speed are published
const progressInterval = 500 * time.Millisecond

// Info describes one ROM the user asked to download
type Info struct {
	RomName      string
	FullName     string
	RomsPath     string
	URLs         []string
	FolderExists bool
}

// NewInfo builds the candidate URLs for romName under romBase in extension
// order and checks that the destination folder exists.
func NewInfo(romName, fullName, romBase, romsPath string) Info {
	urls := make([]string, 0, len(Extensions))
	for _, ext := range Extensions {
		urls = append(urls, romBase+romName+ext)
	}
	st, err := os.Stat(romsPath)
	return Info{
		RomName:      romName,
		FullName:     fullName,
		RomsPath:     romsPath,
		URLs:         urls,
		FolderExists: romsPath != "" && err == nil && st.IsDir(),
	}
}

// Session is a copy of the workflow state for the UI
type Session struct {
	Phase      Phase
	Info       Info
	URL        string
	Downloaded int64
	Total      int64 // -1 when the server sent no length
	Speed      float64
	Message    string
	Reason     string
}

// Progress returns the completed fraction, or 0 when the size is unknown
func (s Session) Progress() float64 {
	if s.Total <= 0 {
		return 0
	}
	p := float64(s.Downloaded) / float64(s.Total)
	if p > 1 {
		p = 1
	}
	return p
}

// Manager owns the download session. Request, Confirm, Cancel, Dismiss,
// HandleAction and Update are called from the frame loop; the worker only
// writes the session under mu.
type Manager struct {
	http       *http.Client
	onComplete func(Session)

	mu      sync.Mutex
	session Session
	done    chan Session
}

// NewManager creates a manager. onComplete, if set, is called from Update
// when a transfer finishes.
func NewManager(onComplete func(Session)) *Manager {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: ConnectTimeout}).DialContext,
		TLSHandshakeTimeout:   ConnectTimeout,
		ResponseHeaderTimeout: ConnectTimeout,
	}
	return newManager(&http.Client{Transport: transport}, onComplete)
}

func newManager(client *http.Client, onComplete func(Session)) *Manager {
	return &Manager{
		http:       client,
		onComplete: onComplete,
		done:       make(chan Session, 1),
	}
}

// Snapshot returns a copy of the current session
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Phase returns the current phase
func (m *Manager) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Phase
}

// Active reports whether the modal is showing
func (m *Manager) Active() bool {
	return m.Phase() != PhaseNone
}

// Request opens the confirmation step. It is ignored while another
// session is showing.
func (m *Manager) Request(info Info) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Phase != PhaseNone {
		return false
	}
	m.session = Session{Phase: PhaseConfirming, Info: info, Total: -1}
	return true
}

// Confirm starts the worker. It does nothing unless the session is
// confirming and the destination folder exists.
func (m *Manager) Confirm() bool {
	m.mu.Lock()
	if m.session.Phase != PhaseConfirming {
		m.mu.Unlock()
		return false
	}
	if !m.session.Info.FolderExists {
		m.mu.Unlock()
		log.Printf("ROM folder not found: %s", m.session.Info.RomsPath)
		return false
	}
	m.session.Phase = PhaseDownloading
	info := m.session.Info
	m.mu.Unlock()

	go m.run(info)
	return true
}

// Cancel leaves the confirmation step
func (m *Manager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Phase == PhaseConfirming {
		m.session = Session{}
	}
}

// Dismiss clears a finished session
func (m *Manager) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Phase == PhaseSuccess || m.session.Phase == PhaseError {
		m.session = Session{}
	}
}

// HandleAction applies the modal gate. It returns true when the action was
// consumed, which is whenever a session is showing.
func (m *Manager) HandleAction(a joystick.Action) bool {
	switch m.Phase() {
	case PhaseNone:
		return false
	case PhaseDownloading:
		// Nothing interrupts a transfer.
	case PhaseSuccess, PhaseError:
		m.Dismiss()
	case PhaseConfirming:
		switch a {
		case joystick.ActionConfirm:
			m.Confirm()
		case joystick.ActionBack:
			m.Cancel()
		}
	}
	return true
}

// Update drains a completion without blocking. Call once per frame.
func (m *Manager) Update() {
	select {
	case s := <-m.done:
		if m.onComplete != nil {
			m.onComplete(s)
		}
	default:
	}
}

func (m *Manager) run(info Info) {
	var reasons []string
	for _, u := range info.URLs {
		dest := filepath.Join(info.RomsPath, path.Base(u))
		log.Printf("Downloading %s", u)

		if err := m.fetch(u, dest); err != nil {
			log.Printf("Download failed for %s: %v", u, err)
			reasons = append(reasons, fmt.Sprintf("%s: %v", strings.TrimPrefix(filepath.Ext(dest), "."), err))
			continue
		}

		m.finish(PhaseSuccess, "Download completed: "+filepath.Base(dest), "")
		return
	}

	reason := strings.Join(reasons, " | ")
	if reason == "" {
		reason = "no download URL"
	}
	m.finish(PhaseError, "Download failed: "+info.RomName, reason)
}

func (m *Manager) finish(phase Phase, msg, reason string) {
	m.mu.Lock()
	m.session.Phase = phase
	m.session.Message = msg
	m.session.Reason = reason
	s := m.session
	m.mu.Unlock()

	m.done <- s
}

// fetch streams url into dest.part, renames it to dest and verifies the
// archive. dest is removed when verification fails.
func (m *Manager) fetch(url, dest string) error {
	resp, err := m.http.Get(url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	m.mu.Lock()
	m.session.URL = url
	m.session.Downloaded = 0
	m.session.Total = resp.ContentLength
	m.session.Speed = 0
	m.mu.Unlock()

	part := dest + ".part"
	f, err := os.Create(part)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	pw := &progressWriter{m: m, last: time.Now()}
	_, copyErr := io.Copy(io.MultiWriter(f, pw), resp.Body)
	closeErr := f.Close()
	pw.publish(time.Now())
	if err := errors.Join(copyErr, closeErr); err != nil {
		os.Remove(part)
		return fmt.Errorf("transfer interrupted: %w", err)
	}

	if err := os.Rename(part, dest); err != nil {
		os.Remove(part)
		return fmt.Errorf("failed to finalize file: %w", err)
	}

	if err := archive.Verify(dest); err != nil {
		os.Remove(dest)
		return fmt.Errorf("invalid archive: %w", err)
	}
	return nil
}

// progressWriter counts bytes and publishes them to the session every
// progressInterval
type progressWriter struct {
	m     *Manager
	last  time.Time
	n     int64
	lastN int64
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	if now := time.Now(); now.Sub(w.last) >= progressInterval {
		w.publish(now)
	}
	return len(p), nil
}

func (w *progressWriter) publish(now time.Time) {
	elapsed := now.Sub(w.last).Seconds()
	speed := 0.0
	if elapsed > 0 {
		speed = float64(w.n-w.lastN) / elapsed
	}
	w.last = now
	w.lastN = w.n

	w.m.mu.Lock()
	w.m.session.Downloaded = w.n
	if speed > 0 {
		w.m.session.Speed = speed
	}
	w.m.mu.Unlock()
}

// FormatBytes renders a byte count for the progress line
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
