package storage

import (
	"encoding/json"
	"fmt"
)

const (
	minWindowWidth  = 800
	minWindowHeight = 600
)

// detectPresentKeys unmarshals JSON bytes to determine which config keys
// are explicitly present in the file. Returns a flat set of dotted-path keys
// (e.g., "sound.volume", "window.width").
func detectPresentKeys(jsonBytes []byte) map[string]bool {
	present := make(map[string]bool)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonBytes, &raw); err != nil {
		return present
	}

	for _, k := range []string{"version", "theme", "fontSize", "language"} {
		if _, ok := raw[k]; ok {
			present[k] = true
		}
	}

	nested := map[string][]string{
		"sound":  {"enabled", "volume"},
		"window": {"width", "height", "fullscreen"},
	}
	for section, keys := range nested {
		sectionRaw, ok := raw[section]
		if !ok {
			continue
		}
		var fields map[string]json.RawMessage
		if json.Unmarshal(sectionRaw, &fields) != nil {
			continue
		}
		for _, k := range keys {
			if _, ok := fields[k]; ok {
				present[section+"."+k] = true
			}
		}
	}

	return present
}

// ApplyMissingDefaults sets default values for config fields that are absent
// from the JSON file, preserving intentional zero values (e.g., volume=0).
func ApplyMissingDefaults(config *Config, presentKeys map[string]bool) {
	defaults := DefaultConfig()

	if !presentKeys["version"] {
		config.Version = defaults.Version
	}
	if !presentKeys["theme"] {
		config.Theme = defaults.Theme
	}
	if !presentKeys["fontSize"] {
		config.FontSize = defaults.FontSize
	}
	if !presentKeys["language"] {
		config.Language = defaults.Language
	}
	if !presentKeys["sound.enabled"] {
		config.Sound.Enabled = defaults.Sound.Enabled
	}
	if !presentKeys["sound.volume"] {
		config.Sound.Volume = defaults.Sound.Volume
	}
	if !presentKeys["window.width"] {
		config.Window.Width = defaults.Window.Width
	}
	if !presentKeys["window.height"] {
		config.Window.Height = defaults.Window.Height
	}
	if !presentKeys["window.fullscreen"] {
		config.Window.Fullscreen = defaults.Window.Fullscreen
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func validFontPreset(size int) bool {
	for _, p := range FontSizePresets {
		if size == p {
			return true
		}
	}
	return false
}

// ValidateConfig checks all config fields against valid ranges and returns
// human-readable error descriptions. An empty slice means the config is valid.
func ValidateConfig(config *Config, validThemes []string) []string {
	var errors []string

	if config.Version != 1 {
		errors = append(errors, fmt.Sprintf("version: %d (valid: 1)", config.Version))
	}
	if !contains(validThemes, config.Theme) {
		errors = append(errors, fmt.Sprintf("theme: %q (valid: %v)", config.Theme, validThemes))
	}
	if !validFontPreset(config.FontSize) {
		errors = append(errors, fmt.Sprintf("fontSize: %d (valid: %v)", config.FontSize, FontSizePresets))
	}
	if !contains(Languages, config.Language) {
		errors = append(errors, fmt.Sprintf("language: %q (valid: %v)", config.Language, Languages))
	}
	if config.Sound.Volume < 0 || config.Sound.Volume > 1.0 {
		errors = append(errors, fmt.Sprintf("sound.volume: %.2f (valid: 0.0-1.0)", config.Sound.Volume))
	}
	if config.Window.Width < minWindowWidth {
		errors = append(errors, fmt.Sprintf("window.width: %d (valid: >= %d)", config.Window.Width, minWindowWidth))
	}
	if config.Window.Height < minWindowHeight {
		errors = append(errors, fmt.Sprintf("window.height: %d (valid: >= %d)", config.Window.Height, minWindowHeight))
	}

	return errors
}

// CorrectConfig resets any invalid fields to their defaults from DefaultConfig().
// Valid fields are preserved.
func CorrectConfig(config *Config, validThemes []string) *Config {
	defaults := DefaultConfig()

	if config.Version != 1 {
		config.Version = defaults.Version
	}
	if !contains(validThemes, config.Theme) {
		config.Theme = defaults.Theme
	}
	if !validFontPreset(config.FontSize) {
		config.FontSize = defaults.FontSize
	}
	if !contains(Languages, config.Language) {
		config.Language = defaults.Language
	}
	if config.Sound.Volume < 0 || config.Sound.Volume > 1.0 {
		config.Sound.Volume = defaults.Sound.Volume
	}
	if config.Window.Width < minWindowWidth {
		config.Window.Width = defaults.Window.Width
	}
	if config.Window.Height < minWindowHeight {
		config.Window.Height = defaults.Window.Height
	}

	return config
}
