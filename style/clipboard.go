//go:build !libretro

package style

import (
	"log"
	"sync"

	"golang.design/x/clipboard"
)

var (
	clipboardOnce sync.Once
	clipboardOK   bool
)

// CopyText puts s on the system clipboard. It reports false when no
// clipboard is available.
func CopyText(s string) bool {
	clipboardOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			log.Printf("Clipboard unavailable: %v", err)
			return
		}
		clipboardOK = true
	})
	if !clipboardOK {
		return false
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return true
}
