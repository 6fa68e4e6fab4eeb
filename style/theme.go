//go:build !libretro

package style

import (
	"bytes"
	"image/color"
	"log"
	"sort"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Palette colors in use. ApplyTheme swaps them; screens must be rebuilt
// afterwards to pick up the change.
var (
	Background        color.NRGBA
	Surface           color.NRGBA
	Primary           color.NRGBA
	PrimaryHover      color.NRGBA
	Text              color.NRGBA
	TextSecondary     color.NRGBA
	Accent            color.NRGBA
	Highlight         color.NRGBA
	Border            color.NRGBA
	DimOverlay        color.NRGBA
	OverlayBackground color.NRGBA
)

// Theme is one named palette
type Theme struct {
	Name              string
	Background        color.NRGBA
	Surface           color.NRGBA
	Primary           color.NRGBA
	PrimaryHover      color.NRGBA
	Text              color.NRGBA
	TextSecondary     color.NRGBA
	Accent            color.NRGBA
	Highlight         color.NRGBA
	Border            color.NRGBA
	DimOverlay        color.NRGBA
	OverlayBackground color.NRGBA
}

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{r, g, b, 0xff}
}

// DefaultTheme is used when the configured name is unknown
const DefaultTheme = "Arcade"

var themes = map[string]Theme{
	"Arcade": {
		Name:              "Arcade",
		Background:        rgb(0x12, 0x10, 0x1c),
		Surface:           rgb(0x24, 0x20, 0x36),
		Primary:           rgb(0xd9, 0x2b, 0x4a),
		PrimaryHover:      rgb(0xe8, 0x4a, 0x66),
		Text:              rgb(0xf4, 0xf1, 0xe8),
		TextSecondary:     rgb(0xb0, 0xa8, 0xc4),
		Accent:            rgb(0x3f, 0xd0, 0x8a),
		Highlight:         rgb(0xff, 0xc8, 0x3d),
		Border:            rgb(0x3a, 0x34, 0x52),
		DimOverlay:        rgb(0x00, 0x00, 0x00),
		OverlayBackground: rgb(0x12, 0x10, 0x1c),
	},
	"Midnight": {
		Name:              "Midnight",
		Background:        rgb(0x05, 0x08, 0x10),
		Surface:           rgb(0x10, 0x18, 0x28),
		Primary:           rgb(0x2f, 0x6f, 0xd0),
		PrimaryHover:      rgb(0x47, 0x84, 0xe0),
		Text:              rgb(0xe6, 0xec, 0xf5),
		TextSecondary:     rgb(0x7d, 0x8a, 0xa0),
		Accent:            rgb(0x22, 0xc5, 0xd8),
		Highlight:         rgb(0xf2, 0xd2, 0x4b),
		Border:            rgb(0x1f, 0x2a, 0x3e),
		DimOverlay:        rgb(0x00, 0x00, 0x00),
		OverlayBackground: rgb(0x05, 0x08, 0x10),
	},
	"Marquee": {
		Name:              "Marquee",
		Background:        rgb(0xf2, 0xee, 0xe3),
		Surface:           rgb(0xfb, 0xf8, 0xf0),
		Primary:           rgb(0xc2, 0x41, 0x0c),
		PrimaryHover:      rgb(0xd8, 0x5a, 0x22),
		Text:              rgb(0x1c, 0x19, 0x17),
		TextSecondary:     rgb(0x5c, 0x55, 0x4e),
		Accent:            rgb(0x0f, 0x76, 0x6e),
		Highlight:         rgb(0x9a, 0x5b, 0x00),
		Border:            rgb(0xd6, 0xcf, 0xc0),
		DimOverlay:        rgb(0x00, 0x00, 0x00),
		OverlayBackground: rgb(0xf2, 0xee, 0xe3),
	},
}

// CurrentThemeName is the name of the applied theme
var CurrentThemeName string

func init() {
	ApplyTheme(themes[DefaultTheme])
}

// ThemeNames returns the valid theme names in sorted order
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetThemeByName returns the named theme, or the default theme
func GetThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultTheme]
}

// IsValidThemeName reports whether name is a known theme. Names are
// case-sensitive.
func IsValidThemeName(name string) bool {
	_, ok := themes[name]
	return ok
}

// ApplyTheme makes t the active palette
func ApplyTheme(t Theme) {
	Background = t.Background
	Surface = t.Surface
	Primary = t.Primary
	PrimaryHover = t.PrimaryHover
	Text = t.Text
	TextSecondary = t.TextSecondary
	Accent = t.Accent
	Highlight = t.Highlight
	Border = t.Border
	DimOverlay = t.DimOverlay
	OverlayBackground = t.OverlayBackground
	CurrentThemeName = t.Name
}

// ApplyThemeByName applies the named theme, falling back to the default
func ApplyThemeByName(name string) {
	if !IsValidThemeName(name) {
		log.Printf("Unknown theme %q, using %s", name, DefaultTheme)
	}
	ApplyTheme(GetThemeByName(name))
}

// baseFontSize is the point size the base layout values are drawn for
const baseFontSize = 14.0

var (
	currentFontSize = baseFontSize
	dpiScale        = 1.0
)

// DPIScale returns the device scale factor in use
func DPIScale() float64 {
	return dpiScale
}

// Px converts logical pixels to device pixels
func Px(logical int) int {
	return int(float64(logical) * dpiScale)
}

// spatial pairs each DPI-scaled layout var with its logical size
var spatial = []struct {
	v    *int
	base int
}{
	{&DefaultPadding, baseDefaultPadding},
	{&DefaultSpacing, baseDefaultSpacing},
	{&SmallSpacing, baseSmallSpacing},
	{&TinySpacing, baseTinySpacing},
	{&LargeSpacing, baseLargeSpacing},
	{&ButtonPaddingMedium, baseButtonPaddingMedium},
	{&MenuLogoSize, baseMenuLogoSize},
	{&ArtWidth, baseArtWidth},
	{&ArtHeight, baseArtHeight},
	{&PickerThumbSize, basePickerThumbSize},
	{&ProgressBarWidth, baseProgressBarWidth},
	{&ProgressBarHeight, baseProgressBarHeight},
	{&ModalMinWidth, baseModalMinWidth},
	{&OverlayPadding, baseOverlayPadding},
	{&OverlayMargin, baseOverlayMargin},
}

// textual pairs each layout var that also follows the font size
var textual = []struct {
	v    *int
	base int
}{
	{&ListRowHeight, baseListRowHeight},
	{&HeaderHeight, baseHeaderHeight},
	{&StatusBarHeight, baseStatusBarHeight},
}

// SetDPIScale sets the device scale factor, never below 1, and rescales
// every layout var
func SetDPIScale(scale float64) {
	if scale < 1.0 {
		scale = 1.0
	}
	dpiScale = scale
	for _, s := range spatial {
		*s.v = Px(s.base)
	}
	ApplyFontSize(int(currentFontSize))
}

var (
	fontSource *text.GoTextFaceSource
	fontFace   text.Face
	largeFace  text.Face
)

func loadFontSource() *text.GoTextFaceSource {
	if fontSource != nil {
		return fontSource
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("Failed to load font: %v", err)
		return nil
	}
	fontSource = source
	return fontSource
}

// FontFace returns the shared UI face. Widgets keep the pointer, so
// ApplyFontSize updates the face in place.
func FontFace() *text.Face {
	if fontFace == nil {
		ApplyFontSize(int(currentFontSize))
	}
	return &fontFace
}

// LargeFontFace returns the shared title face, or nil when no font could
// be loaded
func LargeFontFace() *text.Face {
	if largeFace == nil {
		ApplyFontSize(int(currentFontSize))
	}
	if largeFace == nil {
		return nil
	}
	return &largeFace
}

// FontScale is the font size relative to the base layout size
func FontScale() float64 {
	return currentFontSize / baseFontSize
}

// ApplyFontSize sets the UI font size in points and rescales the
// font-dependent layout vars
func ApplyFontSize(size int) {
	currentFontSize = float64(size)

	if source := loadFontSource(); source != nil {
		large := currentFontSize * 2
		if large > baseMaxLargeFontSize {
			large = baseMaxLargeFontSize
		}
		fontFace = &text.GoTextFace{Source: source, Size: currentFontSize * dpiScale}
		largeFace = &text.GoTextFace{Source: source, Size: large * dpiScale}
	}

	f := FontScale() * dpiScale
	for _, t := range textual {
		*t.v = int(float64(t.base) * f)
	}
}

// ButtonImage is the idle button look
func ButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(Surface),
		Hover:    image.NewNineSliceColor(PrimaryHover),
		Pressed:  image.NewNineSliceColor(Primary),
		Disabled: image.NewNineSliceColor(Border),
	}
}

// ActiveButtonImage returns the look for a button that is or is not the
// joystick selection
func ActiveButtonImage(active bool) *widget.ButtonImage {
	if !active {
		return ButtonImage()
	}
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(Primary),
		Hover:    image.NewNineSliceColor(PrimaryHover),
		Pressed:  image.NewNineSliceColor(Surface),
		Disabled: image.NewNineSliceColor(Border),
	}
}

// ButtonTextColor returns the button label colors
func ButtonTextColor() *widget.ButtonTextColor {
	return &widget.ButtonTextColor{
		Idle:     Text,
		Disabled: TextSecondary,
	}
}
