//go:build !libretro

package style

// Logical-pixel reference values at scale 1.0.
// The corresponding exported vars are recalculated by SetDPIScale.
const (
	baseDefaultPadding      = 16
	baseDefaultSpacing      = 16
	baseSmallSpacing        = 8
	baseTinySpacing         = 4
	baseLargeSpacing        = 24
	baseButtonPaddingMedium = 12
	baseMenuLogoSize        = 48
	baseArtWidth            = 400
	baseArtHeight           = 300
	basePickerThumbSize     = 160
	baseProgressBarWidth    = 400
	baseProgressBarHeight   = 20
	baseModalMinWidth       = 520

	// Overlay (notification/status bar shared)
	baseOverlayPadding = 12
	baseOverlayMargin  = 8

	// Font-dependent base values (at 14pt, scale = 1.0)
	baseListRowHeight    = 40
	baseHeaderHeight     = 48
	baseStatusBarHeight  = 28
	baseMaxLargeFontSize = 48
)

// Layout vars used across screens, rescaled by SetDPIScale
var (
	// Standard spacing and padding values
	DefaultPadding = baseDefaultPadding
	DefaultSpacing = baseDefaultSpacing
	SmallSpacing   = baseSmallSpacing
	TinySpacing    = baseTinySpacing
	LargeSpacing   = baseLargeSpacing

	// Button padding
	ButtonPaddingMedium = baseButtonPaddingMedium
)

// Platform menu logo thumbnails
var MenuLogoSize = baseMenuLogoSize

// Game browser artwork box
var (
	ArtWidth  = baseArtWidth
	ArtHeight = baseArtHeight
)

// Image picker grid cell
var PickerThumbSize = basePickerThumbSize

// Download modal
var (
	ProgressBarWidth  = baseProgressBarWidth
	ProgressBarHeight = baseProgressBarHeight
	ModalMinWidth     = baseModalMinWidth
)

// Overlay vars (shared by notification/status bar)
var (
	OverlayPadding = baseOverlayPadding
	OverlayMargin  = baseOverlayMargin
)

// Font-dependent layout values (updated by ApplyFontSize)
var (
	ListRowHeight   = baseListRowHeight
	HeaderHeight    = baseHeaderHeight
	StatusBarHeight = baseStatusBarHeight
)
