//go:build !libretro

package screens

import (
	"image/color"

	"github.com/Skrokkio/LRscript/style"
	"github.com/Skrokkio/LRscript/types"
)

// Fallback window size used before the first Layout call and in tests
const (
	fallbackWindowWidth  = 1280
	fallbackWindowHeight = 720
)

// listCursor is a selection over count rows with a scroll offset that keeps
// the selection on screen. index always lies in [0, count-1] when count > 0.
type listCursor struct {
	index  int
	offset int
	count  int
}

// SetCount changes the row count and clamps the selection into range
func (c *listCursor) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	c.count = n
	c.index = clamp(c.index, 0, n-1)
	c.offset = clamp(c.offset, 0, c.index)
}

// Move shifts the selection by delta, clamping at both ends, and reports
// whether it changed
func (c *listCursor) Move(delta, visible int) bool {
	return c.Set(c.index+delta, visible)
}

// Set moves the selection to i, clamped
func (c *listCursor) Set(i, visible int) bool {
	prev := c.index
	c.index = clamp(i, 0, c.count-1)
	c.follow(visible)
	return c.index != prev
}

// follow adjusts offset so index is within [offset, offset+visible)
func (c *listCursor) follow(visible int) {
	if visible < 1 {
		visible = 1
	}
	if c.index < c.offset {
		c.offset = c.index
	}
	if c.index >= c.offset+visible {
		c.offset = c.index - visible + 1
	}
	maxOffset := c.count - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	c.offset = clamp(c.offset, 0, maxOffset)
}

// Window returns the half-open range of rows to draw
func (c *listCursor) Window(visible int) (int, int) {
	end := c.offset + visible
	if end > c.count {
		end = c.count
	}
	return c.offset, end
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BaseScreen provides the app callback and layout helpers shared by the
// screens. Embed it and call InitBase in the constructor.
type BaseScreen struct {
	callback types.ScreenCallback
}

// InitBase stores the app callback. callback may be nil in tests.
func (b *BaseScreen) InitBase(callback types.ScreenCallback) {
	b.callback = callback
}

// requestRebuild asks the app to rebuild the widget tree on the next frame
func (b *BaseScreen) requestRebuild() {
	if b.callback != nil {
		b.callback.RequestRebuild()
	}
}

func (b *BaseScreen) notify(msg string) {
	if b.callback != nil {
		b.callback.Notify(msg)
	}
}

func (b *BaseScreen) windowWidth() int {
	if b.callback != nil {
		if w := b.callback.GetWindowWidth(); w > 0 {
			return w
		}
	}
	return fallbackWindowWidth
}

func (b *BaseScreen) windowHeight() int {
	if b.callback != nil {
		if h := b.callback.GetWindowHeight(); h > 0 {
			return h
		}
	}
	return fallbackWindowHeight
}

// visibleRows returns how many list rows fit once reserved pixels are
// taken for headers and footers
func (b *BaseScreen) visibleRows(reserved int) int {
	return rowsFitting(b.windowHeight()-reserved, style.ListRowHeight)
}

// rowsFitting returns how many rows of rowHeight fit in height, at least one
func rowsFitting(height, rowHeight int) int {
	if rowHeight < 1 {
		rowHeight = 1
	}
	if n := height / rowHeight; n > 1 {
		return n
	}
	return 1
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
