//go:build !libretro

package screens

import (
	"fmt"

	"github.com/Skrokkio/LRscript/download"
	"github.com/Skrokkio/LRscript/i18n"
	"github.com/Skrokkio/LRscript/style"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
)

// BuildDownloadModal creates the overlay for a download session. It
// returns nil when no session is showing.
func BuildDownloadModal(s download.Session) *widget.Container {
	if s.Phase == download.PhaseNone {
		return nil
	}

	overlay := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(withAlpha(style.DimOverlay, 0xb0))),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				StretchHorizontal: true,
				StretchVertical:   true,
			}),
		),
	)
	box := style.CenteredPanel(style.Surface, style.LargeSpacing, style.DefaultSpacing, style.ModalMinWidth)

	name := s.Info.FullName
	if name == "" {
		name = s.Info.RomName
	}
	name, _ = style.TruncateToWidth(name, *style.FontFace(), float64(style.ModalMinWidth))

	switch s.Phase {
	case download.PhaseConfirming:
		box.AddChild(style.Title(i18n.T("Download ROM")))
		box.AddChild(style.CenteredLabel(name, style.Text))
		box.AddChild(style.CenteredLabel(s.Info.RomName, style.TextSecondary))
		dest, _ := style.TruncateStart(s.Info.RomsPath, 50)
		if s.Info.FolderExists {
			box.AddChild(style.CenteredLabel(i18n.T("Destination: %s", dest), style.TextSecondary))
			box.AddChild(style.CenteredLabel(i18n.T("A: download   B: cancel"), style.Text))
		} else {
			box.AddChild(style.CenteredLabel(i18n.T("ROM folder not found: %s", dest), style.Highlight))
			box.AddChild(style.CenteredLabel(i18n.T("B: cancel"), style.Text))
		}

	case download.PhaseDownloading:
		box.AddChild(style.Title(i18n.T("Downloading...")))
		box.AddChild(style.CenteredLabel(name, style.Text))
		box.AddChild(style.ProgressBar(s.Progress(), style.ProgressBarWidth, style.ProgressBarHeight))
		box.AddChild(style.CenteredLabel(progressText(s), style.TextSecondary))

	case download.PhaseSuccess:
		box.AddChild(style.Title(i18n.T("Download complete")))
		box.AddChild(style.CenteredLabel(s.Message, style.Accent))
		box.AddChild(style.CenteredLabel(i18n.T("Press any button to continue"), style.TextSecondary))

	case download.PhaseError:
		box.AddChild(style.Title(i18n.T("Download failed")))
		box.AddChild(style.CenteredLabel(s.Message, style.Highlight))
		if s.Reason != "" {
			reason, _ := style.TruncateToWidth(s.Reason, *style.FontFace(), float64(style.ModalMinWidth))
			box.AddChild(style.CenteredLabel(reason, style.TextSecondary))
		}
		box.AddChild(style.CenteredLabel(i18n.T("Press any button to continue"), style.TextSecondary))
	}

	overlay.AddChild(box)
	return overlay
}

func progressText(s download.Session) string {
	done := download.FormatBytes(s.Downloaded)
	speed := style.FormatSpeed(s.Speed)
	if s.Total > 0 {
		return fmt.Sprintf("%s / %s  (%.0f%%)  %s", done, download.FormatBytes(s.Total), s.Progress()*100, speed)
	}
	return fmt.Sprintf("%s  %s", done, speed)
}
