//go:build !libretro

package screens

import (
	"github.com/Skrokkio/LRscript/types"
)

// Aliases so the app can wire screens without importing types
type (
	ScreenCallback = types.ScreenCallback
	Screen         = types.Screen
)

var (
	_ Screen = (*MenuScreen)(nil)
	_ Screen = (*BrowserScreen)(nil)
	_ Screen = (*ConfigScreen)(nil)
	_ Screen = (*ErrorScreen)(nil)
)
