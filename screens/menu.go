//go:build !libretro

package screens

import (
	"log"
	"path/filepath"

	"github.com/Skrokkio/LRscript/i18n"
	"github.com/Skrokkio/LRscript/imagecache"
	"github.com/Skrokkio/LRscript/joystick"
	"github.com/Skrokkio/LRscript/storage"
	"github.com/Skrokkio/LRscript/style"
	"github.com/Skrokkio/LRscript/types"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

// menuPageStep is how far scroll and shoulder actions jump in the menu
const menuPageStep = 5

// MenuScreen lists the joystick configuration entry followed by the
// platforms. Row 0 is always the configuration entry.
type MenuScreen struct {
	BaseScreen
	platforms *storage.PlatformStore
	logosDir  string
	cursor    listCursor
	picker    *ImagePicker
	logos     map[string]*ebiten.Image
}

// NewMenuScreen creates the platform menu
func NewMenuScreen(callback types.ScreenCallback, platforms *storage.PlatformStore, logosDir string) *MenuScreen {
	s := &MenuScreen{
		platforms: platforms,
		logosDir:  logosDir,
		logos:     make(map[string]*ebiten.Image),
	}
	s.InitBase(callback)
	s.cursor.SetCount(platforms.Count() + 1)
	return s
}

// Selected returns the selected row, 0 being the configuration entry
func (s *MenuScreen) Selected() int {
	return s.cursor.index
}

// ScrollOffset returns the first visible row
func (s *MenuScreen) ScrollOffset() int {
	return s.cursor.offset
}

// PickerOpen reports whether the image picker is showing
func (s *MenuScreen) PickerOpen() bool {
	return s.picker != nil
}

func (s *MenuScreen) rowHeight() int {
	h := style.MenuLogoSize + style.SmallSpacing*2
	if style.ListRowHeight > h {
		return style.ListRowHeight
	}
	return h
}

func (s *MenuScreen) visible() int {
	reserved := style.HeaderHeight*2 + style.StatusBarHeight + style.DefaultPadding*2
	return rowsFitting(s.windowHeight()-reserved, s.rowHeight())
}

// HandleAction implements types.Screen
func (s *MenuScreen) HandleAction(a joystick.Action) types.Signal {
	if s.picker != nil {
		s.handlePicker(a)
		return types.None
	}

	moved := false
	switch a {
	case joystick.ActionUp, joystick.ActionFastScrollUp:
		moved = s.cursor.Move(-1, s.visible())
	case joystick.ActionDown, joystick.ActionFastScrollDown:
		moved = s.cursor.Move(1, s.visible())
	case joystick.ActionScrollUp, joystick.ActionL1FastScrollUp:
		moved = s.cursor.Move(-menuPageStep, s.visible())
	case joystick.ActionScrollDown, joystick.ActionR1FastScrollDown:
		moved = s.cursor.Move(menuPageStep, s.visible())
	case joystick.ActionConfirm:
		if s.cursor.index == 0 {
			return types.Signal{Kind: types.SignalEnterConfig}
		}
		return types.Signal{Kind: types.SignalEnterPlatform, Platform: s.cursor.index - 1}
	case joystick.ActionConfirmHold:
		s.openPicker()
	}
	if moved {
		s.requestRebuild()
	}
	return types.None
}

func (s *MenuScreen) openPicker() {
	p := s.platforms.Get(s.cursor.index - 1)
	if p == nil {
		return
	}
	names := imagecache.ListImages(s.logosDir)
	if len(names) == 0 {
		s.notify(i18n.T("No images in %s", s.logosDir))
		return
	}
	s.picker = NewImagePicker(s.logosDir, p.Name, names, s.windowWidth())
	log.Printf("Image picker opened for %s", p.Name)
	s.requestRebuild()
}

func (s *MenuScreen) handlePicker(a joystick.Action) {
	switch s.picker.HandleAction(a) {
	case PickerApplied:
		s.applyImage(s.picker.Selected())
		s.picker = nil
	case PickerCancelled:
		s.picker = nil
	}
	s.requestRebuild()
}

func (s *MenuScreen) applyImage(name string) {
	p := s.platforms.Get(s.cursor.index - 1)
	if p == nil || name == "" {
		return
	}
	if err := s.platforms.SavePlatformImage(p.Name, name); err != nil {
		log.Printf("Failed to save platform image: %v", err)
		s.notify(i18n.T("Could not save image"))
		return
	}
	log.Printf("Image %s applied to %s", name, p.Name)
	s.notify(i18n.T("Image applied to %s", p.Name))
}

func (s *MenuScreen) logo(name string) *ebiten.Image {
	if name == "" {
		return nil
	}
	if img, ok := s.logos[name]; ok {
		return img
	}
	var logo *ebiten.Image
	src, err := imagecache.LoadFile(filepath.Join(s.logosDir, name))
	if err != nil {
		log.Printf("Failed to load logo: %v", err)
	} else {
		logo = style.ScaleImage(src, style.MenuLogoSize, style.MenuLogoSize)
	}
	s.logos[name] = logo
	return logo
}

// Build creates the menu UI
func (s *MenuScreen) Build() *widget.Container {
	root := style.ScreenContainer()
	content := style.ScreenContentContainer([]bool{false, true, false})

	content.AddChild(style.Title("LRscript"))

	list := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(style.TinySpacing),
		)),
	)
	width := s.windowWidth() - style.DefaultPadding*2
	start, end := s.cursor.Window(s.visible())
	for i := start; i < end; i++ {
		list.AddChild(s.buildRow(i, width))
	}
	content.AddChild(list)

	hint := i18n.T("A: select   hold A: change image   Esc: quit")
	content.AddChild(style.CenteredLabel(hint, style.TextSecondary))

	root.AddChild(content)
	if s.picker != nil {
		root.AddChild(s.buildPickerOverlay())
	}
	return root
}

func (s *MenuScreen) buildRow(i, width int) *widget.Container {
	bg := style.AlternatingRowColor(i)
	if i == s.cursor.index {
		bg = style.Primary
	}
	row := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(bg)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(style.SmallSpacing)),
			widget.RowLayoutOpts.Spacing(style.DefaultSpacing),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, s.rowHeight()),
		),
	)

	label := i18n.T("Configure joystick")
	var logo *ebiten.Image
	if i > 0 {
		p := s.platforms.Get(i - 1)
		label = p.Name
		logo = s.logo(p.Image)
	}

	if logo != nil {
		row.AddChild(widget.NewGraphic(
			widget.GraphicOpts.Image(logo),
			widget.GraphicOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
			),
		))
	} else {
		row.AddChild(widget.NewContainer(
			widget.ContainerOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(style.MenuLogoSize, style.MenuLogoSize),
			),
		))
	}
	row.AddChild(style.CenteredLabel(label, style.Text))
	return row
}

func (s *MenuScreen) buildPickerOverlay() *widget.Container {
	overlay := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(withAlpha(style.DimOverlay, 0xc0))),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				StretchHorizontal: true,
				StretchVertical:   true,
			}),
		),
	)
	overlay.AddChild(s.picker.Build(s.windowHeight()))
	return overlay
}
