//go:build !libretro

package screens

import (
	"log"
	"path/filepath"

	"github.com/Skrokkio/LRscript/i18n"
	"github.com/Skrokkio/LRscript/imagecache"
	"github.com/Skrokkio/LRscript/joystick"
	"github.com/Skrokkio/LRscript/style"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

// PickerResult is the outcome of one picker action
type PickerResult int

const (
	PickerOpen PickerResult = iota
	PickerApplied
	PickerCancelled
)

// PickerColumns returns the grid width for a window width
func PickerColumns(windowWidth int) int {
	switch {
	case windowWidth >= 1200:
		return 4
	case windowWidth >= 800:
		return 3
	default:
		return 2
	}
}

// ImagePicker is a grid of logo files to choose a platform image from
type ImagePicker struct {
	dir      string
	platform string
	names    []string
	columns  int
	index    int
	thumbs   map[string]*ebiten.Image
}

// NewImagePicker creates a picker over names, which must not be empty
func NewImagePicker(dir, platform string, names []string, windowWidth int) *ImagePicker {
	return &ImagePicker{
		dir:      dir,
		platform: platform,
		names:    names,
		columns:  PickerColumns(windowWidth),
		thumbs:   make(map[string]*ebiten.Image),
	}
}

// HandleAction moves through the grid. Up and down move a whole row and
// only when the target cell exists.
func (p *ImagePicker) HandleAction(a joystick.Action) PickerResult {
	switch a {
	case joystick.ActionUp:
		if p.index >= p.columns {
			p.index -= p.columns
		}
	case joystick.ActionDown:
		if p.index+p.columns < len(p.names) {
			p.index += p.columns
		}
	case joystick.ActionLeft:
		if p.index > 0 {
			p.index--
		}
	case joystick.ActionRight:
		if p.index < len(p.names)-1 {
			p.index++
		}
	case joystick.ActionConfirm:
		return PickerApplied
	case joystick.ActionBack:
		return PickerCancelled
	}
	return PickerOpen
}

// Selected returns the highlighted file name
func (p *ImagePicker) Selected() string {
	if p.index < 0 || p.index >= len(p.names) {
		return ""
	}
	return p.names[p.index]
}

// Index returns the highlighted cell
func (p *ImagePicker) Index() int {
	return p.index
}

func (p *ImagePicker) thumb(name string) *ebiten.Image {
	if img, ok := p.thumbs[name]; ok {
		return img
	}
	var thumb *ebiten.Image
	src, err := imagecache.LoadFile(filepath.Join(p.dir, name))
	if err != nil {
		log.Printf("Failed to load logo: %v", err)
	} else {
		thumb = style.ScaleImage(src, style.PickerThumbSize, style.PickerThumbSize)
	}
	p.thumbs[name] = thumb
	return thumb
}

// Build creates the picker overlay. Only the rows around the selection
// that fit in height are drawn.
func (p *ImagePicker) Build(height int) *widget.Container {
	panel := style.CenteredPanel(style.Surface, style.DefaultPadding, style.DefaultSpacing, 0)

	panel.AddChild(style.CenteredLabel(i18n.T("Choose an image for %s", p.platform), style.Text))

	cell := style.PickerThumbSize + style.SmallSpacing*2
	captionHeight := style.ListRowHeight
	rows := rowsFitting(height-style.HeaderHeight*3, cell+captionHeight)
	selectedRow := p.index / p.columns
	firstRow := 0
	if selectedRow >= rows {
		firstRow = selectedRow - rows + 1
	}

	grid := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(p.columns),
			widget.GridLayoutOpts.Spacing(style.SmallSpacing, style.SmallSpacing),
		)),
	)
	start := firstRow * p.columns
	end := start + rows*p.columns
	if end > len(p.names) {
		end = len(p.names)
	}
	for i := start; i < end; i++ {
		grid.AddChild(p.buildCell(i, cell))
	}
	panel.AddChild(grid)

	panel.AddChild(style.CenteredLabel(i18n.T("A: apply   B: cancel"), style.TextSecondary))
	return panel
}

func (p *ImagePicker) buildCell(i, size int) *widget.Container {
	bg := style.Background
	if i == p.index {
		bg = style.Primary
	}
	c := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(bg)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(style.SmallSpacing)),
			widget.RowLayoutOpts.Spacing(style.TinySpacing),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(size, size),
		),
	)
	name := p.names[i]
	c.AddChild(style.ImageBox(p.thumb(name), style.PickerThumbSize, style.PickerThumbSize, "?"))
	label, _ := style.TruncateToWidth(name, *style.FontFace(), float64(style.PickerThumbSize))
	c.AddChild(style.CenteredLabel(label, style.Text))
	return c
}
