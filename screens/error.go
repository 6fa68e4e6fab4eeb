//go:build !libretro

package screens

import (
	"fmt"

	"github.com/Skrokkio/LRscript/i18n"
	"github.com/Skrokkio/LRscript/joystick"
	"github.com/Skrokkio/LRscript/style"
	"github.com/Skrokkio/LRscript/types"
	"github.com/ebitenui/ebitenui/widget"
)

// ErrorMode distinguishes between types of config errors
type ErrorMode int

const (
	// ErrorModeCorrupted indicates the JSON file could not be parsed
	ErrorModeCorrupted ErrorMode = iota
	// ErrorModeInvalid indicates the JSON parsed but contains invalid values
	ErrorModeInvalid
)

// maxErrorDetails caps the listed validation errors so the hint stays on screen
const maxErrorDetails = 5

// ErrorScreen reports a broken config.json at startup. Confirm repairs the
// file and continues; back quits.
type ErrorScreen struct {
	BaseScreen
	filename string
	mode     ErrorMode
	details  []string
	repair   func() error
}

// NewErrorScreen creates an error screen for a file that failed to parse.
// repair deletes or rewrites the file.
func NewErrorScreen(callback types.ScreenCallback, filename string, repair func() error) *ErrorScreen {
	s := &ErrorScreen{filename: filename, mode: ErrorModeCorrupted, repair: repair}
	s.InitBase(callback)
	return s
}

// SetValidationError switches to listing invalid settings. repair resets
// them to defaults.
func (s *ErrorScreen) SetValidationError(filename string, details []string, repair func() error) {
	s.filename = filename
	s.mode = ErrorModeInvalid
	s.details = details
	s.repair = repair
}

// Mode returns the kind of error shown
func (s *ErrorScreen) Mode() ErrorMode {
	return s.mode
}

// HandleAction implements types.Screen. A successful repair returns
// SignalExitToMenu so the app can continue to the menu.
func (s *ErrorScreen) HandleAction(a joystick.Action) types.Signal {
	switch a {
	case joystick.ActionConfirm:
		if s.repair == nil {
			return types.Signal{Kind: types.SignalExitToMenu}
		}
		if err := s.repair(); err != nil {
			s.notify(i18n.T("Could not repair %s: %v", s.filename, err))
			return types.None
		}
		return types.Signal{Kind: types.SignalExitToMenu}
	case joystick.ActionBack, joystick.ActionQuitApp:
		return types.Signal{Kind: types.SignalQuit}
	}
	return types.None
}

// Build creates the error screen UI
func (s *ErrorScreen) Build() *widget.Container {
	root := style.ScreenContainer()
	content := style.CenteredContainer(style.DefaultSpacing)

	switch s.mode {
	case ErrorModeInvalid:
		content.AddChild(style.Title(i18n.T("Invalid Settings")))
		content.AddChild(style.CenteredLabel(i18n.T("The file \"%s\" contains invalid settings:", s.filename), style.Text))
		for i, detail := range s.details {
			if i >= maxErrorDetails {
				content.AddChild(style.CenteredLabel(fmt.Sprintf("+%d", len(s.details)-maxErrorDetails), style.TextSecondary))
				break
			}
			content.AddChild(style.CenteredLabel(detail, style.TextSecondary))
		}
		content.AddChild(style.CenteredLabel(i18n.T("A: reset to defaults and continue   B: exit"), style.Highlight))
	default:
		content.AddChild(style.Title(i18n.T("Configuration Error")))
		content.AddChild(style.CenteredLabel(i18n.T("The file \"%s\" is invalid or corrupted.", s.filename), style.Text))
		content.AddChild(style.CenteredLabel(i18n.T("A: delete it and continue   B: exit"), style.Highlight))
	}

	root.AddChild(content)
	return root
}
