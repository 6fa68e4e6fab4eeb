package storage

// Config represents the application configuration stored in config.json
type Config struct {
	Version  int          `json:"version"`
	Theme    string       `json:"theme"`    // Theme name: "Arcade", "Midnight", "Marquee"
	FontSize int          `json:"fontSize"` // 10-32, default 18
	Language string       `json:"language"` // "it" or "en"
	Sound    SoundConfig  `json:"sound"`
	Window   WindowConfig `json:"window"`
}

// SoundConfig controls UI chimes
type SoundConfig struct {
	Enabled bool    `json:"enabled"`
	Volume  float64 `json:"volume"`
}

// WindowConfig contains window position and size
type WindowConfig struct {
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	X          *int `json:"x,omitempty"` // nil = OS decides position
	Y          *int `json:"y,omitempty"`
	Fullscreen bool `json:"fullscreen"`
}

// FontSizePresets lists the available font size options
var FontSizePresets = []int{10, 12, 14, 16, 18, 20, 24, 28, 32}

// Languages lists the UI languages with an embedded catalogue
var Languages = []string{"it", "en"}

// ValidFontSize returns the nearest valid preset font size.
func ValidFontSize(size int) int {
	best := FontSizePresets[0]
	for _, p := range FontSizePresets {
		if abs(p-size) < abs(best-size) {
			best = p
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Theme:    "Arcade",
		FontSize: 18,
		Language: "it",
		Sound: SoundConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: true,
		},
	}
}
