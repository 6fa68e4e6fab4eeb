//go:build !libretro

package lrscript

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Skrokkio/LRscript/storage"
)

func TestNewAppConfig(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("data directory follows XDG_DATA_HOME on linux only")
	}
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	storage.Init("lrscript-test")

	cfg := storage.DefaultConfig()
	cfg.FontSize = 19
	cfg.Window.Width = 320
	cfg.Window.Height = 2000

	ac, err := NewAppConfig(cfg)
	if err != nil {
		t.Fatalf("NewAppConfig: %v", err)
	}

	base := filepath.Join(dir, "lrscript-test")
	paths := []struct {
		name, got, want string
	}{
		{"DataDir", ac.DataDir, base},
		{"MappingPath", ac.MappingPath, filepath.Join(base, "joystick_mapping.json")},
		{"PlatformsPath", ac.PlatformsPath, filepath.Join(base, "platforms.xml")},
		{"CacheDir", ac.CacheDir, filepath.Join(base, "cache")},
		{"LogosDir", ac.LogosDir, filepath.Join(base, "logos")},
	}
	for _, p := range paths {
		if p.got != p.want {
			t.Errorf("%s = %q, want %q", p.name, p.got, p.want)
		}
	}

	if ac.FontSize != 18 && ac.FontSize != 20 {
		t.Errorf("FontSize = %d, want nearest preset", ac.FontSize)
	}
	if ac.WindowWidth != minWindowWidth {
		t.Errorf("WindowWidth = %d, want %d", ac.WindowWidth, minWindowWidth)
	}
	if ac.WindowHeight != 2000 {
		t.Errorf("WindowHeight = %d, want 2000", ac.WindowHeight)
	}
	if ac.Timing.HoldThreshold == 0 {
		t.Error("Timing should be populated")
	}
	if ac.ScraperTimeout != ScraperTimeout || ac.ImageTimeout != ImageTimeout {
		t.Errorf("timeouts = %v/%v", ac.ScraperTimeout, ac.ImageTimeout)
	}
}
