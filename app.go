//go:build !libretro

package lrscript

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"github.com/Skrokkio/LRscript/download"
	"github.com/Skrokkio/LRscript/i18n"
	"github.com/Skrokkio/LRscript/imagecache"
	"github.com/Skrokkio/LRscript/joystick"
	"github.com/Skrokkio/LRscript/router"
	"github.com/Skrokkio/LRscript/scraper"
	"github.com/Skrokkio/LRscript/screens"
	"github.com/Skrokkio/LRscript/storage"
	"github.com/Skrokkio/LRscript/style"
	"github.com/Skrokkio/LRscript/types"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// AppName is the window title and the data directory name
const AppName = "LRscript"

// Version is set at build time with -ldflags "-X ...Version=..."
var Version = "dev"

// StartupInfo summarizes what newApp found, for the startup banner
type StartupInfo struct {
	DataDir     string
	Joystick    string // bound device name, "" for keyboard only
	Platforms   int
	ConfigError string // set when startup stopped on the error screen
}

// App is the main application struct that implements ebiten.Game
type App struct {
	ui    *ebitenui.UI
	state AppState

	// Data
	cfg       AppConfig
	config    *storage.Config
	mapping   *storage.MappingStore
	platforms *storage.PlatformStore

	// Input pipeline: keyboard and gamepad feed the normalizer queue,
	// the router drains it
	detector   *joystick.Detector
	pads       gamepadEvents
	normalizer *joystick.Normalizer
	input      *InputManager
	router     *router.Router

	downloads *download.Manager

	// Screens
	menu         *screens.MenuScreen
	browser      *screens.BrowserScreen
	configScreen *screens.ConfigScreen
	errorScreen  *screens.ErrorScreen

	notification *Notification
	sound        *Sound

	// Error state
	errorFile        string
	configLoadFailed bool // True if config.json failed to load (don't overwrite on exit)

	// Last download state shown, to rebuild the modal only on change
	modalPhase download.Phase
	modalBytes int64

	// Window tracking for persistence and responsive layouts
	windowX, windowY   int
	windowWidth        int
	windowHeight       int
	lastWindowedWidth  int // Last non-fullscreen width (physical pixels)
	lastWindowedHeight int // Last non-fullscreen height (physical pixels)
	lastBuildWidth     int
	lastBuildHeight    int

	// Rebuild pending flag (set from screens, processed on the main thread)
	rebuildPending bool

	// HiDPI: current device scale factor tracked across Layout calls
	currentDPIScale float64

	// Fullscreen: track state so it can be saved on exit even if macOS
	// has already left native fullscreen by the time saveWindowState runs.
	lastFullscreenState bool

	statusBg *ebiten.Image
}

// Run is the public entry point. It configures the window, creates the
// app and starts the Ebiten game loop. storage.Init must have been called.
// ready, if set, receives the startup summary before the window opens.
func Run(ready func(StartupInfo)) error {
	ebiten.SetWindowTitle(AppName)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowWidth, minWindowHeight, -1, -1)

	app, err := newApp()
	if err != nil {
		return err
	}
	if ready != nil {
		ready(app.StartupInfo())
	}

	// Restore window size from saved config (before RunGame to avoid resize flash)
	ebiten.SetWindowSize(app.cfg.WindowWidth, app.cfg.WindowHeight)
	if app.cfg.WindowX != nil && app.cfg.WindowY != nil {
		ebiten.SetWindowPosition(*app.cfg.WindowX, *app.cfg.WindowY)
	}
	if app.cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	// Update returns ebiten.Termination on quit, which RunGame reports as nil
	err = ebiten.RunGame(app)
	app.SaveAndClose()
	return err
}

// newApp loads configuration, mapping and platforms and wires the input
// pipeline to the screens.
func newApp() (*App, error) {
	app := &App{
		state:        StateRunning,
		notification: NewNotification(),
	}

	// Ensure directory structure exists
	if err := storage.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	// Create config file if missing
	if err := storage.CreateConfigIfMissing(); err != nil {
		log.Printf("Warning: failed to create config: %v", err)
	}

	// Load config
	var validationErrors []string
	config, err := storage.LoadConfig()
	if err != nil {
		// JSON parse error - show error screen
		log.Printf("Failed to load config: %v", err)
		app.state = StateError
		app.errorFile = "config.json"
		app.configLoadFailed = true // Don't overwrite the file on exit
		config = storage.DefaultConfig()
	} else {
		// Validate config values against allowed ranges
		validationErrors = storage.ValidateConfig(config, style.ThemeNames())
		if len(validationErrors) > 0 {
			app.state = StateError
			app.errorFile = "config.json"
			app.configLoadFailed = true
		}
	}
	app.config = config

	cfg, err := NewAppConfig(config)
	if err != nil {
		return nil, err
	}
	app.cfg = cfg

	// The error screen shows with defaults until the config is repaired
	if app.state == StateError {
		applySettings(storage.DefaultConfig())
	} else {
		applySettings(config)
	}

	app.sound = NewSound(config.Sound.Enabled, config.Sound.Volume)
	app.mapping = storage.LoadMapping(cfg.MappingPath)
	app.platforms = storage.LoadPlatforms(cfg.PlatformsPath)

	app.detector = joystick.NewDetector(gamepads{})
	app.detector.Detect()
	app.normalizer = joystick.NewNormalizer(app.mapping, cfg.Timing)
	app.input = NewInputManager(cfg.Timing)

	app.downloads = download.NewManager(app.onDownloadComplete)

	app.initScreens()
	if len(validationErrors) > 0 {
		app.errorScreen.SetValidationError(app.errorFile, validationErrors, app.handleResetAndContinue)
	}

	app.router = router.New(app.menu, app.browser, app.configScreen, app.downloads)
	app.router.OnTransition(app.onTransition)

	app.rebuildCurrentScreen()
	return app, nil
}

// applySettings applies the theme, font size and language of c
func applySettings(c *storage.Config) {
	style.ApplyThemeByName(c.Theme)
	style.ApplyFontSize(storage.ValidFontSize(c.FontSize))
	if err := i18n.SetLanguage(c.Language); err != nil {
		log.Printf("Failed to load translations: %v", err)
	}
}

// initScreens creates all screen instances
func (a *App) initScreens() {
	a.menu = screens.NewMenuScreen(a, a.platforms, a.cfg.LogosDir)
	a.browser = screens.NewBrowserScreen(a, a.downloads,
		scraper.NewClient(a.cfg.ScraperTimeout),
		imagecache.New(a.cfg.ImageTimeout))
	a.configScreen = screens.NewConfigScreen(a, a.mapping, a.sound.PlaySaved)
	a.errorScreen = screens.NewErrorScreen(a, a.errorFile, a.handleDeleteAndContinue)
}

// StartupInfo returns the startup summary
func (a *App) StartupInfo() StartupInfo {
	info := StartupInfo{
		DataDir:   a.cfg.DataDir,
		Joystick:  a.detector.DeviceName(),
		Platforms: a.platforms.Count(),
	}
	if a.state == StateError {
		info.ConfigError = a.errorFile
	}
	return info
}

// GetWindowConfig returns the window dimensions, position, and fullscreen
// state resolved at startup.
func (a *App) GetWindowConfig() (width, height int, x, y *int, fullscreen bool) {
	return a.cfg.WindowWidth, a.cfg.WindowHeight, a.cfg.WindowX, a.cfg.WindowY, a.cfg.Fullscreen
}

// saveWindowState saves current window position and size to config
func (a *App) saveWindowState() {
	// Don't overwrite config if it failed to load (user may want to fix it manually)
	if a.configLoadFailed {
		return
	}

	// lastWindowedWidth/Height are only set when not in fullscreen, so if the
	// app was fullscreen for its entire lifetime they remain 0.
	if a.lastWindowedWidth == 0 || a.lastWindowedHeight == 0 {
		a.config.Window.Fullscreen = a.lastFullscreenState
	} else {
		// Use lastWindowedWidth/Height (not windowWidth/Height) so that quitting
		// in fullscreen saves the windowed size, not the fullscreen resolution.
		s := style.DPIScale()
		a.config.Window.Width = int(float64(a.lastWindowedWidth) / s)
		a.config.Window.Height = int(float64(a.lastWindowedHeight) / s)
		a.config.Window.X = &a.windowX
		a.config.Window.Y = &a.windowY
		a.config.Window.Fullscreen = a.lastFullscreenState
	}

	if err := storage.SaveConfig(a.config); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
}

// toggleFullscreen toggles between fullscreen and windowed mode
func (a *App) toggleFullscreen() {
	ebiten.SetFullscreen(!ebiten.IsFullscreen())
	a.lastFullscreenState = ebiten.IsFullscreen()
	if a.configLoadFailed {
		return
	}
	a.config.Window.Fullscreen = a.lastFullscreenState
	if err := storage.SaveConfig(a.config); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
}

// rebuildCurrentScreen rebuilds the UI for the current state and mode,
// with the download modal on top when a session is showing
func (a *App) rebuildCurrentScreen() {
	var container *widget.Container

	if a.state == StateError {
		container = a.errorScreen.Build()
	} else {
		switch a.router.Mode() {
		case router.ModeMain:
			container = a.browser.Build()
		case router.ModeConfig:
			container = a.configScreen.Build()
		default:
			container = a.menu.Build()
		}
		if modal := screens.BuildDownloadModal(a.downloads.Snapshot()); modal != nil {
			container.AddChild(modal)
		}
	}

	a.ui = &ebitenui.UI{Container: container}
	a.lastBuildWidth = a.windowWidth
	a.lastBuildHeight = a.windowHeight
}

// Update implements ebiten.Game
func (a *App) Update() error {
	// Track window position and fullscreen state for save on exit.
	// Layout() handles width/height, but position must be queried here.
	a.windowX, a.windowY = ebiten.WindowPosition()
	a.lastFullscreenState = ebiten.IsFullscreen()
	now := time.Now()

	a.trackGamepads()

	keys := a.input.Update(a.normalizer.Queue(), a.inputContext(), now)
	if keys.Fullscreen {
		a.toggleFullscreen()
	}
	if keys.Redetect {
		a.redetect()
	}
	if keys.Copy {
		a.copySelection()
	}

	dev := a.detector.Device()
	for _, ev := range a.pads.Poll(dev) {
		// While rebinding, the raw button goes to the config screen
		if ev.Type == joystick.ButtonDown && a.capturing() {
			a.configScreen.Capture(ev.Button)
			continue
		}
		a.normalizer.HandleEvent(ev, now)
	}
	a.normalizer.Poll(now, dev, a.repeatEnabled())

	if a.state == StateError {
		if !a.drainErrorScreen() {
			return ebiten.Termination
		}
	} else if !a.router.Drain(a.normalizer.Queue()) {
		log.Printf("Quit requested")
		return ebiten.Termination
	}

	a.downloads.Update()
	a.browser.Update()
	a.configScreen.Update()
	a.trackModal()

	if a.windowWidth > 0 && (a.windowWidth != a.lastBuildWidth || a.windowHeight != a.lastBuildHeight) {
		a.rebuildPending = true
	}
	if a.rebuildPending {
		a.rebuildPending = false
		a.rebuildCurrentScreen()
	}

	a.ui.Update()
	return nil
}

// trackGamepads binds a newly connected controller when none is bound and
// drops the bound one when it disconnects
func (a *App) trackGamepads() {
	if g, ok := a.detector.Device().(*gamepad); ok && inpututil.IsGamepadJustDisconnected(g.id) {
		log.Printf("Joystick disconnected: %s", g.Name())
		a.pads.Reset()
		a.normalizer.Reset()
		a.detector.Detect()
		a.notify(a.joystickStatus())
		return
	}
	if connected := inpututil.AppendJustConnectedGamepadIDs(nil); len(connected) > 0 && !a.detector.IsDetected() {
		if a.detector.Recheck() {
			a.pads.Reset()
			a.notify(a.joystickStatus())
		}
	}
}

// redetect re-enumerates controllers on demand
func (a *App) redetect() {
	a.pads.Reset()
	a.normalizer.Reset()
	a.detector.Detect()
	a.notify(a.joystickStatus())
}

func (a *App) joystickStatus() string {
	if name := a.detector.DeviceName(); name != "" {
		return i18n.T("Joystick detected: %s", name)
	}
	return i18n.T("No joystick found, keyboard only")
}

// copySelection copies the browser selection or the mapping, depending
// on the mode
func (a *App) copySelection() {
	if a.state != StateRunning || a.downloads.Active() {
		return
	}
	switch a.router.Mode() {
	case router.ModeMain:
		a.browser.CopySelection()
	case router.ModeConfig:
		if !a.configScreen.Capturing() {
			a.configScreen.CopyMapping()
		}
	}
}

func (a *App) capturing() bool {
	return a.state == StateRunning && a.router.Mode() == router.ModeConfig && a.configScreen.Capturing()
}

// repeatEnabled reports whether held inputs auto-repeat. Repeats only make
// sense for scrolling lists.
func (a *App) repeatEnabled() bool {
	return a.state == StateRunning && a.router.Mode() != router.ModeConfig && !a.downloads.Active()
}

func (a *App) inputContext() InputContext {
	ctx := InputContext{Mode: a.router.Mode(), Modal: a.downloads.Phase()}
	if a.state == StateError {
		// Esc on the error screen exits
		ctx.Mode = router.ModeMenu
		return ctx
	}
	ctx.PickerOpen = a.menu.PickerOpen()
	return ctx
}

// drainErrorScreen feeds queued actions to the error screen. It returns
// false when the app must quit.
func (a *App) drainErrorScreen() bool {
	q := a.normalizer.Queue()
	for {
		act, ok := q.Pop()
		if !ok {
			return true
		}
		switch sig := a.errorScreen.HandleAction(act); sig.Kind {
		case types.SignalQuit:
			q.Drain()
			return false
		case types.SignalExitToMenu:
			q.Drain()
			a.state = StateRunning
			a.notification.Clear()
			a.rebuildPending = true
			return true
		}
	}
}

// trackModal schedules a rebuild when the download session changes
func (a *App) trackModal() {
	s := a.downloads.Snapshot()
	if s.Phase != a.modalPhase || s.Downloaded != a.modalBytes {
		a.modalPhase = s.Phase
		a.modalBytes = s.Downloaded
		a.rebuildPending = true
	}
}

// onDownloadComplete runs from Manager.Update on the main thread
func (a *App) onDownloadComplete(s download.Session) {
	if s.Phase == download.PhaseSuccess {
		a.sound.PlayComplete()
	}
	a.rebuildPending = true
}

// onTransition resets transient input and prepares the screen entered
func (a *App) onTransition(from, to router.Mode, sig types.Signal) {
	a.normalizer.Reset()
	a.input.Reset()
	a.normalizer.SetConfigScreen(to == router.ModeConfig)
	a.notification.Clear()

	switch to {
	case router.ModeMain:
		if sig.Kind == types.SignalEnterPlatform {
			if p := a.platforms.Get(sig.Platform); p != nil {
				a.browser.SetPlatform(p)
			}
		}
	case router.ModeConfig:
		a.configScreen.OnEnter()
	}
	a.rebuildPending = true
}

// Draw implements ebiten.Game
func (a *App) Draw(screen *ebiten.Image) {
	a.ui.Draw(screen)
	a.drawStatusBar(screen)
	a.notification.Draw(screen)
}

// drawStatusBar renders the joystick status along the bottom edge
func (a *App) drawStatusBar(screen *ebiten.Image) {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), style.StatusBarHeight
	if w <= 0 || h <= 0 {
		return
	}

	if a.statusBg == nil || a.statusBg.Bounds().Dx() < w || a.statusBg.Bounds().Dy() < h {
		a.statusBg = ebiten.NewImage(w, h)
	}
	a.statusBg.Clear()
	a.statusBg.Fill(style.Surface)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(0, float64(bounds.Dy()-h))
	screen.DrawImage(a.statusBg.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image), opts)

	status := i18n.T("Keyboard only")
	if name := a.detector.DeviceName(); name != "" {
		status = i18n.T("Joystick: %s", name)
	}
	status, _ = style.TruncateToWidth(status, *style.FontFace(), float64(w-style.DefaultPadding*2))

	_, textHeight := text.Measure(status, *style.FontFace(), 0)
	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(float64(style.DefaultPadding), float64(bounds.Dy()-h)+(float64(h)-textHeight)/2)
	textOpts.ColorScale.ScaleWithColor(style.TextSecondary)
	text.Draw(screen, status, *style.FontFace(), textOpts)
}

// Layout implements ebiten.Game
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Query the device scale factor for HiDPI/Retina rendering
	s := 1.0
	if m := ebiten.Monitor(); m != nil {
		s = m.DeviceScaleFactor()
	}
	if s != a.currentDPIScale {
		a.currentDPIScale = s
		style.SetDPIScale(s)
		a.rebuildPending = true
	}

	// Return physical pixel dimensions so the UI renders at full resolution
	w := int(float64(outsideWidth) * s)
	h := int(float64(outsideHeight) * s)
	a.windowWidth = w
	a.windowHeight = h
	// Track windowed dimensions separately so fullscreen doesn't overwrite them.
	if !ebiten.IsFullscreen() {
		a.lastWindowedWidth = w
		a.lastWindowedHeight = h
	}
	return w, h
}

// ScreenCallback implementations

// GetWindowWidth returns the current window width for responsive layouts
func (a *App) GetWindowWidth() int {
	return a.windowWidth
}

// GetWindowHeight returns the current window height for visible row counts
func (a *App) GetWindowHeight() int {
	return a.windowHeight
}

// RequestRebuild triggers a UI rebuild for the current screen on the
// next Update
func (a *App) RequestRebuild() {
	a.rebuildPending = true
}

// Notify shows a timed notification
func (a *App) Notify(msg string) {
	a.notify(msg)
}

func (a *App) notify(msg string) {
	a.notification.ShowDefault(msg)
}

// handleDeleteAndContinue replaces a corrupted config.json with defaults
func (a *App) handleDeleteAndContinue() error {
	path, err := storage.GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config: %w", err)
	}

	a.config = storage.DefaultConfig()
	if err := storage.SaveConfig(a.config); err != nil {
		log.Printf("Failed to save default config: %v", err)
	}
	a.configLoadFailed = false
	applySettings(a.config)
	return nil
}

// handleResetAndContinue corrects invalid config fields to defaults and
// saves the result
func (a *App) handleResetAndContinue() error {
	storage.CorrectConfig(a.config, style.ThemeNames())
	if err := storage.SaveConfig(a.config); err != nil {
		return fmt.Errorf("failed to save corrected config: %w", err)
	}
	a.configLoadFailed = false
	applySettings(a.config)
	return nil
}

// SaveAndClose saves the window state and releases audio before exit
func (a *App) SaveAndClose() {
	a.saveWindowState()
	a.sound.Close()
}
