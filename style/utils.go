//go:build !libretro

package style

import (
	"fmt"
	goimage "image"
	"image/draw"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	xdraw "golang.org/x/image/draw"
)

// ScaleImage fits src inside maxWidth x maxHeight keeping its aspect ratio.
// The resize happens on the CPU so only the small result is uploaded.
func ScaleImage(src goimage.Image, maxWidth, maxHeight int) *ebiten.Image {
	b := src.Bounds()
	scale := min(float64(maxWidth)/float64(b.Dx()), float64(maxHeight)/float64(b.Dy()))
	w := max(1, int(float64(b.Dx())*scale))
	h := max(1, int(float64(b.Dy())*scale))

	dst := goimage.NewRGBA(goimage.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return ebiten.NewImageFromImage(dst)
}

// TruncateStart keeps the last maxLen bytes of s behind a "..." prefix.
// Used for folder paths, where the tail matters.
func TruncateStart(s string, maxLen int) (string, bool) {
	switch {
	case len(s) <= maxLen:
		return s, false
	case maxLen <= 3:
		return s[len(s)-maxLen:], true
	}
	return "..." + s[len(s)-maxLen+3:], true
}

// MeasureWidth returns the width of s in the UI face
func MeasureWidth(s string) float64 {
	w, _ := text.Measure(s, *FontFace(), 0)
	return w
}

const ellipsis = "..."

// TruncateToWidth shortens s on a rune boundary so that it plus "..."
// fits in maxWidth pixels of face
func TruncateToWidth(s string, face text.Face, maxWidth float64) (string, bool) {
	if s == "" {
		return s, false
	}
	if w, _ := text.Measure(s, face, 0); w <= maxWidth {
		return s, false
	}

	fits := func(n int) bool {
		w, _ := text.Measure(runePrefix(s, n)+ellipsis, face, 0)
		return w <= maxWidth
	}

	// Largest rune count n with fits(n); widths grow with n.
	lo, hi := 0, utf8.RuneCountInString(s)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if fits(mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return runePrefix(s, lo) + ellipsis, true
}

func runePrefix(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// FormatSpeed renders a transfer rate in bytes per second
func FormatSpeed(bytesPerSec float64) string {
	switch {
	case bytesPerSec >= 1<<20:
		return fmt.Sprintf("%.1f MB/s", bytesPerSec/(1<<20))
	case bytesPerSec >= 1<<10:
		return fmt.Sprintf("%.1f KB/s", bytesPerSec/(1<<10))
	default:
		return fmt.Sprintf("%.0f B/s", bytesPerSec)
	}
}
