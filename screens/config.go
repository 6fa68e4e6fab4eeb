//go:build !libretro

package screens

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Skrokkio/LRscript/i18n"
	"github.com/Skrokkio/LRscript/joystick"
	"github.com/Skrokkio/LRscript/style"
	"github.com/Skrokkio/LRscript/types"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
)

// SavedOverlayDuration is how long the save confirmation stays up
const SavedOverlayDuration = 3 * time.Second

// Mapping is the button table the config screen edits
type Mapping interface {
	Get(key string) int
	Set(key string, button int) bool
	Save() error
	Reset()
	Keys() []string
	Snapshot() map[string]int
	KeysBoundTo(button int, except string) []string
}

// Control rows follow the rebind rows
const (
	controlSave = iota
	controlReset
	controlBack
	controlCount
)

var keyLabels = map[string]string{
	joystick.KeyButton1: "Button 1 (Confirm)",
	joystick.KeyButton2: "Button 2 (Back)",
	joystick.KeyButton3: "Button 3 (Download ROM)",
	joystick.KeyL1:      "L1 (Scroll up)",
	joystick.KeyR1:      "R1 (Scroll down)",
	joystick.KeyStart:   "Start",
	joystick.KeySelect:  "Select",
}

// ConfigScreen rebinds the logical buttons. It is either navigating the
// rows or capturing the next physical press for one key.
type ConfigScreen struct {
	BaseScreen
	mapping   Mapping
	keys      []string
	index     int
	capturing string
	savedAt   time.Time
	onSaved   func()

	now func() time.Time
}

// NewConfigScreen creates the config screen. onSaved, if set, runs after a
// successful save.
func NewConfigScreen(callback types.ScreenCallback, mapping Mapping, onSaved func()) *ConfigScreen {
	s := &ConfigScreen{
		mapping: mapping,
		keys:    mapping.Keys(),
		onSaved: onSaved,
		now:     time.Now,
	}
	s.InitBase(callback)
	return s
}

func (s *ConfigScreen) rows() int {
	return len(s.keys) + controlCount
}

// Selected returns the selected row
func (s *ConfigScreen) Selected() int {
	return s.index
}

// Capturing reports whether the next button press will be captured
func (s *ConfigScreen) Capturing() bool {
	return s.capturing != ""
}

// CapturingKey returns the key being rebound, or ""
func (s *ConfigScreen) CapturingKey() string {
	return s.capturing
}

// SavedOverlayVisible reports whether the save confirmation is showing
func (s *ConfigScreen) SavedOverlayVisible() bool {
	return !s.savedAt.IsZero() && s.now().Sub(s.savedAt) < SavedOverlayDuration
}

// OnEnter resets the screen to the first row
func (s *ConfigScreen) OnEnter() {
	s.index = 0
	s.capturing = ""
	s.savedAt = time.Time{}
}

// HandleAction implements types.Screen
func (s *ConfigScreen) HandleAction(a joystick.Action) types.Signal {
	if s.capturing != "" {
		if a == joystick.ActionBack {
			log.Printf("Capture for %s cancelled", s.capturing)
			s.capturing = ""
			s.requestRebuild()
		}
		return types.None
	}

	switch a {
	case joystick.ActionUp:
		s.setIndex(s.index - 1)
	case joystick.ActionDown:
		s.setIndex(s.index + 1)
	case joystick.ActionLeft, joystick.ActionRight:
		if s.index < len(s.keys) {
			s.setIndex(len(s.keys) + controlSave)
		} else {
			s.setIndex(0)
		}
	case joystick.ActionConfirm:
		return s.confirm()
	case joystick.ActionBack:
		return types.Signal{Kind: types.SignalExitToMenu}
	}
	return types.None
}

func (s *ConfigScreen) setIndex(i int) {
	i = clamp(i, 0, s.rows()-1)
	if i != s.index {
		s.index = i
		s.requestRebuild()
	}
}

func (s *ConfigScreen) confirm() types.Signal {
	if s.index < len(s.keys) {
		s.capturing = s.keys[s.index]
		log.Printf("Capturing button for %s", s.capturing)
		s.requestRebuild()
		return types.None
	}

	switch s.index - len(s.keys) {
	case controlSave:
		if err := s.mapping.Save(); err != nil {
			log.Printf("Failed to save mapping: %v", err)
			return types.None
		}
		log.Printf("Mapping saved")
		s.savedAt = s.now()
		if s.onSaved != nil {
			s.onSaved()
		}
		s.requestRebuild()
	case controlReset:
		s.mapping.Reset()
		log.Printf("Mapping reset to defaults")
		s.requestRebuild()
	case controlBack:
		return types.Signal{Kind: types.SignalExitToMenu}
	}
	return types.None
}

// Capture binds the pressed button to the key being captured. A button
// already bound elsewhere keeps that binding too; the overlap is logged.
func (s *ConfigScreen) Capture(button int) {
	if s.capturing == "" {
		return
	}
	key := s.capturing
	s.capturing = ""
	if others := s.mapping.KeysBoundTo(button, key); len(others) > 0 {
		log.Printf("Button %d is also bound to %s", button, strings.Join(others, ", "))
	}
	s.mapping.Set(key, button)
	log.Printf("Button %d assigned to %s", button, key)
	s.requestRebuild()
}

// Update hides the save confirmation once it expires
func (s *ConfigScreen) Update() {
	if !s.savedAt.IsZero() && !s.SavedOverlayVisible() {
		s.savedAt = time.Time{}
		s.requestRebuild()
	}
}

// CopyMapping puts the current mapping on the clipboard as JSON
func (s *ConfigScreen) CopyMapping() {
	data, err := json.MarshalIndent(s.mapping.Snapshot(), "", "  ")
	if err != nil {
		log.Printf("Failed to encode mapping: %v", err)
		return
	}
	if style.CopyText(string(data)) {
		s.notify(i18n.T("Mapping copied"))
	} else {
		s.notify(i18n.T("Clipboard not available"))
	}
}

// Build creates the config UI
func (s *ConfigScreen) Build() *widget.Container {
	root := style.ScreenContainer()
	content := style.CenteredContainer(style.SmallSpacing)

	content.AddChild(style.Title(i18n.T("JOYSTICK BUTTON SETUP")))
	if s.capturing != "" {
		content.AddChild(style.CenteredLabel(i18n.T("Press the button to assign..."), style.Accent))
	} else {
		content.AddChild(style.CenteredLabel(i18n.T("Directions to move, A to change, Esc to leave"), style.TextSecondary))
	}

	width := style.ModalMinWidth
	for i, key := range s.keys {
		content.AddChild(s.buildKeyRow(i, key, width))
	}

	controls := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(style.DefaultSpacing),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
	)
	labels := [controlCount]string{i18n.T("SAVE"), i18n.T("RESET"), i18n.T("BACK")}
	for c := 0; c < controlCount; c++ {
		row := len(s.keys) + c
		controls.AddChild(style.SelectableButton(labels[c], row == s.index, func(args *widget.ButtonClickedEventArgs) {
			s.index = row
			s.HandleAction(joystick.ActionConfirm)
		}))
	}
	content.AddChild(controls)

	root.AddChild(content)
	if s.SavedOverlayVisible() {
		root.AddChild(s.buildSavedOverlay())
	}
	return root
}

func (s *ConfigScreen) buildKeyRow(i int, key string, width int) *widget.Container {
	bg := style.Surface
	if i == s.index {
		bg = style.Primary
		if s.capturing != "" {
			bg = style.Accent
		}
	}
	row := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(bg)),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{true, false}, []bool{true}),
			widget.GridLayoutOpts.Padding(&widget.Insets{Left: style.SmallSpacing, Right: style.SmallSpacing}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, style.ListRowHeight),
		),
	)
	row.AddChild(style.Label(i18n.T(keyLabels[key]), style.Text))
	value := fmt.Sprintf("[%d]", s.mapping.Get(key))
	if key == s.capturing {
		value = "[?]"
	}
	row.AddChild(style.Label(value, style.Highlight))
	return row
}

func (s *ConfigScreen) buildSavedOverlay() *widget.Container {
	overlay := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(withAlpha(style.DimOverlay, 0x80))),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				StretchHorizontal: true,
				StretchVertical:   true,
			}),
		),
	)
	box := style.CenteredPanel(style.Surface, style.LargeSpacing, style.DefaultSpacing, style.ModalMinWidth)
	box.AddChild(style.Title(i18n.T("CONFIGURATION SAVED")))
	box.AddChild(style.CenteredLabel(i18n.T("Settings saved successfully!"), style.Text))
	box.AddChild(style.CenteredLabel(i18n.T("This message closes automatically..."), style.TextSecondary))
	overlay.AddChild(box)
	return overlay
}
