// Package i18n resolves UI strings from the embedded gettext catalogues.
package i18n

import (
	"embed"
	"fmt"
	"log"
	"sync"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var locales embed.FS

// DefaultLanguage is used when no catalogue matches
const DefaultLanguage = "it"

var (
	mu       sync.RWMutex
	current  *gotext.Po
	language string
)

// SetLanguage loads the catalogue for lang, falling back to DefaultLanguage
func SetLanguage(lang string) error {
	po, err := load(lang)
	if err != nil {
		log.Printf("Failed to load %q catalogue, using %q: %v", lang, DefaultLanguage, err)
		lang = DefaultLanguage
		if po, err = load(lang); err != nil {
			return err
		}
	}

	mu.Lock()
	current = po
	language = lang
	mu.Unlock()
	return nil
}

func load(lang string) (*gotext.Po, error) {
	data, err := locales.ReadFile("locales/" + lang + ".po")
	if err != nil {
		return nil, fmt.Errorf("no catalogue for %q: %w", lang, err)
	}
	po := gotext.NewPo()
	po.Parse(data)
	return po, nil
}

// Language returns the active language code
func Language() string {
	mu.RLock()
	defer mu.RUnlock()
	return language
}

// T translates key and formats it with args. Unknown keys come back as is.
func T(key string, args ...interface{}) string {
	mu.RLock()
	po := current
	mu.RUnlock()

	if po == nil {
		if len(args) == 0 {
			return key
		}
		return fmt.Sprintf(key, args...)
	}
	return po.Get(key, args...)
}
