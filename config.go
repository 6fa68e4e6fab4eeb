//go:build !libretro

package lrscript

import (
	"fmt"
	"time"

	"github.com/Skrokkio/LRscript/joystick"
	"github.com/Skrokkio/LRscript/storage"
)

// Network timeouts for the info and image lookups
const (
	ScraperTimeout = 10 * time.Second
	ImageTimeout   = 5 * time.Second
)

// Minimum window size in logical pixels
const (
	minWindowWidth  = 900
	minWindowHeight = 650
)

// AppConfig is the resolved, read-only configuration handed to the
// components. It is built once at startup.
type AppConfig struct {
	DataDir       string
	MappingPath   string
	PlatformsPath string
	CacheDir      string
	LogosDir      string

	Timing joystick.Timing

	Theme    string
	Language string
	FontSize int
	Sound    storage.SoundConfig

	WindowWidth  int
	WindowHeight int
	WindowX      *int
	WindowY      *int
	Fullscreen   bool

	ScraperTimeout time.Duration
	ImageTimeout   time.Duration
}

// NewAppConfig resolves the data paths and derives the runtime settings
// from cfg
func NewAppConfig(cfg *storage.Config) (AppConfig, error) {
	dataDir, err := storage.GetBaseDir()
	if err != nil {
		return AppConfig{}, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	mappingPath, err := storage.GetMappingPath()
	if err != nil {
		return AppConfig{}, err
	}
	platformsPath, err := storage.GetPlatformsPath()
	if err != nil {
		return AppConfig{}, err
	}
	cacheDir, err := storage.GetCacheDir()
	if err != nil {
		return AppConfig{}, err
	}
	logosDir, err := storage.GetLogosDir()
	if err != nil {
		return AppConfig{}, err
	}

	width, height := cfg.Window.Width, cfg.Window.Height
	if width < minWindowWidth {
		width = minWindowWidth
	}
	if height < minWindowHeight {
		height = minWindowHeight
	}

	return AppConfig{
		DataDir:        dataDir,
		MappingPath:    mappingPath,
		PlatformsPath:  platformsPath,
		CacheDir:       cacheDir,
		LogosDir:       logosDir,
		Timing:         joystick.DefaultTiming(),
		Theme:          cfg.Theme,
		Language:       cfg.Language,
		FontSize:       storage.ValidFontSize(cfg.FontSize),
		Sound:          cfg.Sound,
		WindowWidth:    width,
		WindowHeight:   height,
		WindowX:        cfg.Window.X,
		WindowY:        cfg.Window.Y,
		Fullscreen:     cfg.Window.Fullscreen,
		ScraperTimeout: ScraperTimeout,
		ImageTimeout:   ImageTimeout,
	}, nil
}
