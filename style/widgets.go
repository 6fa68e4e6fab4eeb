//go:build !libretro

package style

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

// CenteredContainer stacks children vertically, spacing apart, in the
// middle of an anchor-layout parent
func CenteredContainer(spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(spacing),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
}

// EmptyState fills a row-layout slot with a centered message, for lists
// that have nothing to show
func EmptyState(message string) *widget.Container {
	slot := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
	)
	content := CenteredContainer(DefaultSpacing)
	content.AddChild(CenteredLabel(message, TextSecondary))
	slot.AddChild(content)
	return slot
}

// ScreenContainer is the root of every screen: the theme background with an
// anchor layout.
func ScreenContainer() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(Background)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
}

// ScreenContentContainer is a padded single-column grid filling the
// screen. rowStretch marks the rows that take the spare height.
func ScreenContentContainer(rowStretch []bool) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(DefaultPadding)),
			widget.GridLayoutOpts.Spacing(DefaultSpacing, DefaultSpacing),
			widget.GridLayoutOpts.Stretch([]bool{true}, rowStretch),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				StretchHorizontal: true,
				StretchVertical:   true,
			}),
		),
	)
}

// AlternatingRowColor stripes list rows: Background on even rows, Surface
// on odd ones
func AlternatingRowColor(index int) color.Color {
	if index%2 == 1 {
		return Surface
	}
	return Background
}

// SelectableButton returns a primary button when selected and a standard
// one otherwise. Screens drive selection themselves, so the handler only
// serves mouse clicks.
func SelectableButton(text string, selected bool, handler func(*widget.ButtonClickedEventArgs)) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(ActiveButtonImage(selected)),
		widget.ButtonOpts.Text(text, FontFace(), ButtonTextColor()),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(ButtonPaddingMedium)),
		widget.ButtonOpts.ClickedHandler(handler),
	)
}

// TableCellWithBackground creates a text cell on a solid background with
// horizontal padding
func TableCellWithBackground(label string, width, height int, textColor, bg color.Color) *widget.Container {
	cell := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(bg)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Left: DefaultPadding, Right: DefaultPadding}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, height),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
	)
	cell.AddChild(widget.NewText(
		widget.TextOpts.Text(label, FontFace(), textColor),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	))
	return cell
}

// Label creates a plain text widget
func Label(label string, textColor color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, FontFace(), textColor),
	)
}

// CenteredLabel creates a text widget centered in its row
func CenteredLabel(label string, textColor color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, FontFace(), textColor),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
	)
}

// Title creates a heading in the large font, falling back to the regular
// face when the large one is unavailable
func Title(label string) *widget.Text {
	face := FontFace()
	if lf := LargeFontFace(); lf != nil {
		face = lf
	}
	return widget.NewText(
		widget.TextOpts.Text(label, face, Primary),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
	)
}

// ProgressBar creates a bar of width x height filled to fraction (0 to 1)
func ProgressBar(fraction float64, width, height int) *widget.Container {
	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(Border)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, height),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
		)),
	)

	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	fillWidth := int(float64(width) * fraction)
	if fillWidth < 1 {
		fillWidth = 1
	}
	bar.AddChild(widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(Primary)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(fillWidth, height),
		),
	))
	return bar
}

// ImageBox centers img inside a width x height box on a Surface background.
// A nil img shows placeholder text instead.
func ImageBox(img *ebiten.Image, width, height int, placeholder string) *widget.Container {
	box := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(Surface)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, height),
		),
	)
	center := widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	})
	if img != nil {
		box.AddChild(widget.NewGraphic(
			widget.GraphicOpts.Image(img),
			widget.GraphicOpts.WidgetOpts(center),
		))
	} else {
		box.AddChild(widget.NewText(
			widget.TextOpts.Text(placeholder, FontFace(), TextSecondary),
			widget.TextOpts.WidgetOpts(center),
		))
	}
	return box
}

// Panel creates a vertical container on a colored background
func Panel(bg color.Color, padding, spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(bg)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(padding)),
			widget.RowLayoutOpts.Spacing(spacing),
		)),
	)
}

// CenteredPanel is a Panel anchored in the middle of its parent, at least
// minWidth wide. Use it for modals and pickers.
func CenteredPanel(bg color.Color, padding, spacing, minWidth int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(bg)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(padding)),
			widget.RowLayoutOpts.Spacing(spacing),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(minWidth, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
}
