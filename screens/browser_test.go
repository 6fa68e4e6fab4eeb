//go:build !libretro

package screens

import (
	"context"
	"errors"
	"fmt"
	goimage "image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Skrokkio/LRscript/download"
	"github.com/Skrokkio/LRscript/joystick"
	"github.com/Skrokkio/LRscript/scraper"
	"github.com/Skrokkio/LRscript/storage"
)

type fakeInfo struct {
	gates map[string]chan struct{}
	desc  string
}

func (f *fakeInfo) Lookup(ctx context.Context, urlTemplate, romName, name string) (*scraper.GameInfo, error) {
	if g, ok := f.gates[romName]; ok {
		<-g
	}
	if f.desc == "" {
		return nil, scraper.ErrNoResult
	}
	info := scraper.Placeholder(romName, name)
	info.Description = f.desc
	info.Year = "1980"
	return info, nil
}

type offlineImages struct{}

func (offlineImages) Fetch(ctx context.Context, url, dest string) (goimage.Image, error) {
	return nil, errors.New("offline")
}

func writeGameList(t *testing.T, dir string, names ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("<mame>\n")
	for _, n := range names {
		fmt.Fprintf(&b, "<game name=%q><description>%s game</description><year>1980</year></game>\n", n, n)
	}
	b.WriteString("</mame>\n")
	path := filepath.Join(dir, "games.xml")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestBrowser(t *testing.T, info *fakeInfo, names ...string) (*BrowserScreen, *download.Manager, *fakeCallback) {
	t.Helper()
	dir := t.TempDir()
	cb := &fakeCallback{width: 1280, height: 720}
	dm := download.NewManager(nil)
	s := NewBrowserScreen(cb, dm, info, offlineImages{})
	s.SetPlatform(&storage.Platform{
		Name:      "MAME",
		XML:       writeGameList(t, dir, names...),
		CachePath: filepath.Join(dir, "cache"),
		RomsPath:  dir,
		Title:     "img.example/{rom_name}/title",
		InGame:    "img.example/{rom_name}/ingame",
		Info:      "info.example/?game={rom_name}",
		ROM:       "http://roms.example/roms/",
	})
	return s, dm, cb
}

func waitLookup(t *testing.T, s *BrowserScreen) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.LookupPending() {
		if time.Now().After(deadline) {
			t.Fatal("lookup did not finish")
		}
		s.Update()
		time.Sleep(time.Millisecond)
	}
}

func TestBrowserListMoves(t *testing.T) {
	names := make([]string, 100)
	for i := range names {
		names[i] = fmt.Sprintf("g%03d", i)
	}
	s, _, _ := newTestBrowser(t, &fakeInfo{}, names...)

	steps := []struct {
		action joystick.Action
		want   int
	}{
		{joystick.ActionDown, 1},
		{joystick.ActionRight, 41},
		{joystick.ActionR1FastScrollDown, 46},
		{joystick.ActionFastScrollDown, 66},
		{joystick.ActionLeft, 26},
		{joystick.ActionScrollUp, 6},
		{joystick.ActionL1FastScrollUp, 1},
		{joystick.ActionLeft, 0},
		{joystick.ActionUp, 0},
		{joystick.ActionRight, 40},
		{joystick.ActionRight, 80},
		{joystick.ActionRight, 99},
		{joystick.ActionScrollDown, 99},
	}
	for i, st := range steps {
		s.HandleAction(st.action)
		if s.Selected() != st.want {
			t.Errorf("step %d (%v): Selected() = %d, want %d", i, st.action, s.Selected(), st.want)
		}
	}
}

func TestBrowserSections(t *testing.T) {
	s, _, _ := newTestBrowser(t, &fakeInfo{}, "a", "b")

	s.HandleAction(joystick.ActionSectionPrev)
	if s.Section() != SectionInfo {
		t.Errorf("prev from list = %v, want info", s.Section())
	}
	s.HandleAction(joystick.ActionSectionNext)
	s.HandleAction(joystick.ActionSectionNext)
	if s.Section() != SectionImages {
		t.Errorf("section = %v, want images", s.Section())
	}

	// Directions do not move the list outside the list section
	s.HandleAction(joystick.ActionDown)
	if s.Selected() != 0 {
		t.Errorf("Selected() = %d in images section, want 0", s.Selected())
	}
}

func TestBrowserLookup(t *testing.T) {
	s, _, cb := newTestBrowser(t, &fakeInfo{desc: "A maze game."}, "dkong", "pacman")

	s.HandleAction(joystick.ActionDown)
	s.HandleAction(joystick.ActionConfirm)
	if !s.LookupPending() {
		t.Fatal("confirm should start a lookup")
	}
	if s.Info() == nil || s.Info().RomName != "pacman" {
		t.Fatalf("placeholder info = %+v", s.Info())
	}
	if len(cb.notes) == 0 {
		t.Error("expected a searching notification")
	}

	waitLookup(t, s)
	if s.Info().Description != "A maze game." || s.Info().Year != "1980" {
		t.Errorf("info = %+v", s.Info())
	}
	if s.Images().Title != nil || s.Images().InGame != nil {
		t.Error("failed fetches should leave images nil")
	}
}

func TestBrowserLookupFailureKeepsPlaceholder(t *testing.T) {
	s, _, _ := newTestBrowser(t, &fakeInfo{}, "pacman")

	s.HandleAction(joystick.ActionConfirm)
	waitLookup(t, s)
	info := s.Info()
	if info == nil || info.Title != "pacman game" || info.Year != "N/A" {
		t.Errorf("info = %+v, want placeholder", info)
	}
}

func TestBrowserDropsStaleLookup(t *testing.T) {
	gate := make(chan struct{})
	info := &fakeInfo{desc: "x", gates: map[string]chan struct{}{"pacman": gate}}
	s, _, _ := newTestBrowser(t, info, "galaga", "pacman")

	s.HandleAction(joystick.ActionDown)
	s.HandleAction(joystick.ActionConfirm) // pacman, blocked
	s.HandleAction(joystick.ActionUp)
	s.HandleAction(joystick.ActionConfirm) // galaga
	waitLookup(t, s)
	if s.Info().RomName != "galaga" {
		t.Fatalf("RomName = %q, want galaga", s.Info().RomName)
	}

	close(gate)
	deadline := time.Now().Add(2 * time.Second)
	for len(s.results) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("stale lookup never finished")
		}
		time.Sleep(time.Millisecond)
	}
	s.Update()
	if s.Info().RomName != "galaga" {
		t.Errorf("stale result replaced info with %q", s.Info().RomName)
	}
}

func TestBrowserInfoScroll(t *testing.T) {
	desc := strings.Repeat("word ", 60)
	s, _, _ := newTestBrowser(t, &fakeInfo{desc: desc}, "pacman")
	s.HandleAction(joystick.ActionConfirm)
	waitLookup(t, s)

	lines := len(s.descriptionLines())
	if lines < 3 {
		t.Fatalf("expected a wrapped description, got %d lines", lines)
	}

	s.HandleAction(joystick.ActionSectionPrev)
	s.HandleAction(joystick.ActionUp)
	if s.DescriptionScroll() != 0 {
		t.Errorf("scroll = %d, want 0", s.DescriptionScroll())
	}
	s.HandleAction(joystick.ActionDown)
	if s.DescriptionScroll() != 1 {
		t.Errorf("scroll = %d, want 1", s.DescriptionScroll())
	}
	for i := 0; i < lines+5; i++ {
		s.HandleAction(joystick.ActionDown)
	}
	if s.DescriptionScroll() != lines-1 {
		t.Errorf("scroll = %d, want %d", s.DescriptionScroll(), lines-1)
	}
}

func TestBrowserDownloadRequest(t *testing.T) {
	s, dm, _ := newTestBrowser(t, &fakeInfo{}, "pacman")

	s.HandleAction(joystick.ActionDownloadROM)
	if dm.Phase() != download.PhaseConfirming {
		t.Fatalf("phase = %v, want confirming", dm.Phase())
	}
	snap := dm.Snapshot()
	if snap.Info.RomName != "pacman" || snap.Info.FullName != "pacman game" {
		t.Errorf("info = %+v", snap.Info)
	}
	if !snap.Info.FolderExists {
		t.Error("roms folder exists but FolderExists is false")
	}
	if len(snap.Info.URLs) != 2 || snap.Info.URLs[0] != "http://roms.example/roms/pacman.zip" {
		t.Errorf("URLs = %v", snap.Info.URLs)
	}
}

func TestBrowserErrorCatalog(t *testing.T) {
	s := NewBrowserScreen(&fakeCallback{}, download.NewManager(nil), &fakeInfo{}, offlineImages{})
	s.SetPlatform(&storage.Platform{Name: "Broken", XML: filepath.Join(t.TempDir(), "missing.xml")})

	if s.games.Len() != 1 || s.games.Err() == nil {
		t.Fatalf("expected a single error row, got %d rows", s.games.Len())
	}
	s.HandleAction(joystick.ActionConfirm)
	if s.LookupPending() || s.Info() != nil {
		t.Error("confirm on the error row should not look anything up")
	}
	s.HandleAction(joystick.ActionDownloadROM)
	if s.downloads.Active() {
		t.Error("download requested for the error row")
	}
}
