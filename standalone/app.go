package standalone

import (
	"errors"

	"github.com/ebitenui/ebitenui"
	ebitenuiInput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/user-none/bigbox/catalog"
	"github.com/user-none/bigbox/launcher"
	"github.com/user-none/bigbox/locale"
	"github.com/user-none/bigbox/nav"
	"github.com/user-none/bigbox/preview"
	"github.com/user-none/bigbox/sched"
	"github.com/user-none/bigbox/standalone/screens"
	"github.com/user-none/bigbox/standalone/session"
	"github.com/user-none/bigbox/standalone/storage"
	"github.com/user-none/bigbox/standalone/style"
)

const (
	minWindowWidth  = 900
	minWindowHeight = 650
	settingsFile    = "BigBoxSettings.json"
)

// Options configures Run
type Options struct {
	// BaseDir is the TeknoParrot install directory
	BaseDir string
	// Settings as loaded at startup; nil means defaults
	Settings *storage.Settings
	// SettingsErr is the error LoadSettings returned alongside Settings
	SettingsErr error
	// PlayerProgram overrides the preview player lookup (mpv, ffplay)
	PlayerProgram string
	// Workers bounds parallel metadata reads; 0 means GOMAXPROCS
	Workers int
	Logger  *zap.Logger
}

// App is the main application struct that implements ebiten.Game
type App struct {
	ui     *ebitenui.UI
	logger *zap.Logger

	baseDir string
	// settingsPath is watched for outside edits
	settingsPath string
	settings     *storage.Settings
	// settingsUnreadable keeps a damaged file from being overwritten by
	// anything but an explicit change on the settings screen
	settingsUnreadable bool

	loop    *sched.Loop
	session *session.Session
	// loadGen discards catalog loads superseded by a newer one
	loadGen    int
	emptyShown bool

	// State management
	state AppState

	// Screens
	catalogScreen  *screens.CatalogScreen
	settingsScreen *screens.SettingsScreen
	errorScreen    *screens.ErrorScreen

	notification *Notification
	sounds       *Sounds
	covers       *CoverCache
	inputManager *InputManager
	watcher      *SettingsWatcher
	dialogs      Dialogs
	exit         *exitGate
	parrot       ParrotInfo
	parrotKnown  bool

	// Window tracking for responsive layouts
	windowWidth     int
	windowHeight    int
	lastBuildWidth  int
	currentDPIScale float64

	// Rebuild pending flag, processed once per frame
	rebuildPending bool

	// Suppresses navigator input until every key and button is released,
	// so the press that returned to the catalog is not read again.
	transitionGuard bool
}

// Run is the public entry point for the launcher UI. It configures the
// window, builds the catalog, and runs the Ebiten game loop until the
// user confirms exit.
func Run(opts Options) error {
	app := newApp(opts)
	defer app.Close()

	ebiten.SetWindowTitle(locale.Get(app.lang(), locale.TitleMain))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowWidth, minWindowHeight, -1, -1)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowClosingHandled(true)
	if app.settings.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	// ebiten.Termination from Update makes RunGame return nil
	return ebiten.RunGame(app)
}

// newApp creates the application and loads the first catalog. Invalid
// settings put it on the error screen instead.
func newApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	settings := opts.Settings
	if settings == nil {
		settings = storage.DefaultSettings()
	}

	a := &App{
		logger:          logger,
		baseDir:         opts.BaseDir,
		settings:        settings.Clone(),
		loop:            sched.NewLoop(),
		notification:    NewNotification(),
		sounds:          NewSounds(logger.Named("sounds")),
		covers:          NewCoverCache(style.CoverCacheSize, logger.Named("covers")),
		inputManager:    NewInputManager(),
		dialogs:         nativeDialogs{},
		transitionGuard: true,
	}
	if path, err := storage.GetSettingsPath(); err == nil {
		a.settingsPath = path
	}
	a.exit = newExitGate(a.loop.Post, a.dialogs.Confirm)

	a.catalogScreen = screens.NewCatalogScreen(a)
	a.settingsScreen = screens.NewSettingsScreen(a)
	a.errorScreen = screens.NewErrorScreen(a)

	a.session = session.New(session.Options{
		Clock:   a.loop,
		Players: preview.DetectFactory(opts.PlayerProgram, logger.Named("player")),
		Preview: preview.DefaultConfig(),
		Starter: &launcher.Launcher{Logger: logger.Named("launcher")},
		Lister:  a.catalogScreen,
		Workers: opts.Workers,
		Logger:  logger,
		OnSelect: func(nav.Selection) {
			a.RequestRebuild()
		},
		OnPreview: func(preview.Status) {
			a.RequestRebuild()
		},
	})

	if errors.Is(opts.SettingsErr, storage.ErrMalformedSettings) {
		logger.Warn("Settings file is malformed, using defaults", zap.Error(opts.SettingsErr))
		a.settingsUnreadable = true
		a.notification.ShowError(locale.Get(a.lang(), locale.MsgSettingsMalformed))
	}

	if problems := storage.ValidateSettings(a.settings); len(problems) > 0 {
		logger.Warn("Settings failed validation", zap.Strings("problems", problems))
		a.state = StateError
		a.errorScreen.SetValidationError(a.lang(), settingsFile, problems, a.handleResetAndContinue)
		a.errorScreen.OnEnter()
		a.rebuildCurrentScreen()
		return a
	}

	a.start()
	return a
}

// start loads the first catalog synchronously and shows it
func (a *App) start() {
	lang := a.lang()
	if lang == locale.Chinese && !style.HasCJKFont() {
		a.logger.Warn("No CJK font found; Chinese text may not render", zap.String("env", style.FontEnv))
	}
	a.covers.SetLabel(locale.Get(lang, locale.NoCover))

	cfg := session.NewConfig(a.baseDir, a.settings)
	a.parrot, a.parrotKnown = checkParrot(cfg.Dirs.ParrotExe, a.settings.SkipVersionCheck, a.logger.Named("version"))
	a.catalogLoaded(a.session.Rebuild(cfg))

	if a.watcher == nil && a.settingsPath != "" {
		a.watcher = NewSettingsWatcher(a.settingsPath, a.loop, a.reloadSettings, a.logger.Named("watcher"))
		if err := a.watcher.Start(); err != nil {
			a.logger.Warn("Settings will not reload automatically", zap.Error(err))
			a.watcher = nil
		}
	}

	a.state = StateCatalog
	a.catalogScreen.OnEnter()
	a.rebuildCurrentScreen()
}

// reloadCatalog rebuilds the catalog off the main loop and publishes it
// when no newer load has started meanwhile.
func (a *App) reloadCatalog() {
	cfg := session.NewConfig(a.baseDir, a.settings)
	a.loadGen++
	gen := a.loadGen
	go func() {
		cat, err := a.session.Load(cfg)
		a.loop.Post(func() {
			if gen != a.loadGen {
				return
			}
			a.session.Publish(cfg, cat)
			a.catalogLoaded(err)
			a.RequestRebuild()
		})
	}()
}

// catalogLoaded reports a build result. The first empty catalog gets a
// message box; later ones a notification.
func (a *App) catalogLoaded(err error) {
	if err == nil {
		return
	}
	if !errors.Is(err, catalog.ErrEmptyCatalog) {
		a.logger.Warn("Catalog build reported an error", zap.Error(err))
		return
	}
	lang := a.lang()
	msg := emptyCatalogMessage(lang, err)
	a.logger.Warn("Catalog is empty", zap.Error(err))
	if a.emptyShown {
		a.notification.ShowDefault(msg)
		return
	}
	a.emptyShown = true
	title := locale.Get(lang, locale.CaptionTip)
	go a.dialogs.Info(title, msg)
}

// reloadSettings applies BigBoxSettings.json after an outside edit
func (a *App) reloadSettings() {
	lang := a.lang()
	next, err := storage.LoadSettings()
	if err != nil {
		a.logger.Warn("Settings reload failed", zap.Error(err))
		if errors.Is(err, storage.ErrMalformedSettings) {
			a.settingsUnreadable = true
			a.notification.ShowError(locale.Get(lang, locale.MsgSettingsMalformed))
		}
		return
	}
	if problems := storage.ValidateSettings(next); len(problems) > 0 {
		a.logger.Warn("Reloaded settings are invalid", zap.Strings("problems", problems))
		a.notification.ShowError(problems[0])
		return
	}
	a.settingsUnreadable = false
	if next.Equal(a.settings) {
		// Our own save, or an edit that changed nothing
		return
	}

	a.logger.Info("Settings changed on disk")
	a.adopt(next)
	a.notification.ShowDefault(locale.Get(a.lang(), locale.MsgSettingsReloaded))
	if a.state == StateSettings {
		a.settingsScreen.OnEnter()
	}
	a.RequestRebuild()
}

// adopt makes next the live settings and rebuilds what depends on them
func (a *App) adopt(next *storage.Settings) {
	prev := a.settings
	a.settings = next.Clone()

	if next.Fullscreen != ebiten.IsFullscreen() {
		ebiten.SetFullscreen(next.Fullscreen)
	}
	if prev.EnableDebugLog != next.EnableDebugLog {
		a.logger.Info("Debug log setting changed; takes effect on restart", zap.Bool("enabled", next.EnableDebugLog))
	}
	if prev.Language != next.Language || prev.MediaPath != next.MediaPath {
		ebiten.SetWindowTitle(locale.Get(next.Language, locale.TitleMain))
		a.covers.SetLabel(locale.Get(next.Language, locale.NoCover))
		a.covers.Purge()
		if a.state != StateError {
			a.reloadCatalog()
		}
	}
}

// handleResetAndContinue corrects the invalid values, saves them and
// leaves the error screen
func (a *App) handleResetAndContinue() {
	a.settings = storage.CorrectSettings(a.settings.Clone())
	if err := storage.SaveSettings(a.settings); err != nil {
		a.logger.Error("Failed to save corrected settings", zap.Error(err))
		a.notification.ShowError(locale.Get(a.lang(), locale.MsgSettingsSaveFailed))
	} else {
		a.settingsUnreadable = false
	}
	a.transitionGuard = true
	a.start()
}

func (a *App) lang() locale.Lang {
	if a.settings == nil || a.settings.Language == "" {
		return locale.Default
	}
	return a.settings.Language
}

// rebuildCurrentScreen rebuilds the UI for the current state
func (a *App) rebuildCurrentScreen() {
	var container *widget.Container

	switch a.state {
	case StateCatalog:
		container = a.catalogScreen.Build()
	case StateSettings:
		// Save scroll position and focused button before rebuilding
		a.settingsScreen.SaveScrollPosition()
		if a.ui != nil {
			a.settingsScreen.SaveFocusState(a.ui.GetFocusedWidget())
		}
		container = a.settingsScreen.Build()
	case StateError:
		container = a.errorScreen.Build()
	default:
		return
	}

	a.ui = &ebitenui.UI{Container: container}
	a.lastBuildWidth = a.windowWidth
}

// Update implements ebiten.Game
func (a *App) Update() error {
	a.loop.Drain()
	if a.exit.Confirmed() {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() {
		a.Exit()
	}

	a.inputManager.Update()
	globals := a.inputManager.Globals()
	if globals.Fullscreen {
		a.toggleFullscreen()
	}

	if a.rebuildPending || (a.windowWidth > 0 && a.windowWidth != a.lastBuildWidth) {
		a.rebuildPending = false
		a.rebuildCurrentScreen()
	}
	if a.ui == nil {
		return nil
	}

	switch a.state {
	case StateCatalog:
		a.updateCatalog(globals)
	case StateSettings:
		nav := a.processUIInput(a.settingsScreen)
		a.settingsScreen.Update()
		a.ui.Update()
		// Check if state changed during ui.Update (e.g., user navigated away)
		if a.state != StateSettings {
			return nil
		}
		if !a.rebuildPending {
			a.restorePendingFocus(a.settingsScreen)
		}
		if nav.FocusChanged {
			a.settingsScreen.EnsureFocusedVisible(a.ui.GetFocusedWidget())
		}
	default:
		a.processUIInput(a.errorScreen)
		prevState := a.state
		a.ui.Update()
		if a.state != prevState {
			return nil
		}
		if !a.rebuildPending {
			a.restorePendingFocus(a.errorScreen)
		}
	}
	return nil
}

// updateCatalog feeds input to the navigator. Arrow keys and Enter belong
// to the navigator here, so no widget keeps keyboard focus; the mouse
// still reaches the buttons through ebitenui.
func (a *App) updateCatalog(globals GlobalKeys) {
	// Keep the focus-edge tracking current for the next button screen
	a.inputManager.UINavigation()

	if f := a.ui.GetFocusedWidget(); f != nil {
		f.Focus(false)
	}

	snap := a.inputManager.Snapshot()
	if a.transitionGuard {
		ebitenuiInput.Update()
		ebitenuiInput.AfterUpdate()
		if snap != (nav.Snapshot{}) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			return
		}
		a.transitionGuard = false
	}

	cmds, err := a.session.Tick(snap)
	for _, cmd := range cmds {
		switch cmd.Kind {
		case nav.MoveCategory, nav.MoveEntry:
			a.sounds.Play(SoundMove)
		case nav.Launch:
			if cmd.NoSelection {
				a.launchFailed(session.ErrNoSelection)
			} else if err != nil {
				a.launchFailed(err)
			} else {
				a.sounds.Play(SoundLaunch)
			}
		case nav.Exit:
			a.Exit()
		}
	}

	if globals.Favorite {
		a.ToggleFavorite()
	}
	if globals.Mute {
		a.ToggleMute()
	}
	if _, dy := ebiten.Wheel(); dy != 0 && a.session.Navigator().Wheel(dy) {
		a.sounds.Play(SoundMove)
	}

	a.catalogScreen.Update()
	a.ui.Update()
}

// focusStepper is implemented by screens with a linear focus order
type focusStepper interface {
	NextFocus(current widget.Focuser, delta int) *widget.Button
}

// processUIInput applies keyboard and gamepad focus movement on button
// screens and returns the navigation result for scroll handling.
func (a *App) processUIInput(screen focusStepper) UINavigation {
	nav := a.inputManager.UINavigation()

	if nav.Delta != 0 {
		focused := a.ui.GetFocusedWidget()
		if next := screen.NextFocus(focused, nav.Delta); next != nil {
			if focused != nil {
				focused.Focus(false)
			}
			next.Focus(true)
		}
	}

	// A/Cross button activates focused widget
	if nav.Activate {
		if btn, ok := a.ui.GetFocusedWidget().(*widget.Button); ok {
			btn.Click()
		}
	}

	if nav.Back && a.state == StateSettings {
		a.SwitchToCatalog()
	}
	return nav
}

// restorePendingFocus restores focus to a pending button if one exists
func (a *App) restorePendingFocus(screen screens.FocusRestorer) {
	btn := screen.GetPendingFocusButton()
	if btn != nil {
		btn.Focus(true)
		screen.ClearPendingFocus()
	}
}

// toggleFullscreen flips fullscreen and remembers it in the settings
func (a *App) toggleFullscreen() {
	on := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(on)
	a.settings.Fullscreen = on
	if a.settingsUnreadable {
		return
	}
	if err := storage.SaveSettings(a.settings); err != nil {
		a.logger.Warn("Failed to save fullscreen setting", zap.Error(err))
	}
	if a.state == StateSettings {
		a.settingsScreen.OnEnter()
		a.RequestRebuild()
	}
}

// Draw implements ebiten.Game
func (a *App) Draw(screen *ebiten.Image) {
	if a.ui != nil {
		a.ui.Draw(screen)
	}
	a.notification.Draw(screen)
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
		a.covers.Purge()
		a.rebuildPending = true
	}

	// Return physical pixel dimensions so the UI renders at full resolution
	w := int(float64(outsideWidth) * s)
	h := int(float64(outsideHeight) * s)
	a.windowWidth = w
	a.windowHeight = h
	return w, h
}

// Close releases the preview player, audio and the settings watcher
func (a *App) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Debug("Settings watcher close", zap.Error(err))
		}
	}
	if err := a.session.Close(); err != nil {
		a.logger.Warn("Preview close failed", zap.Error(err))
	}
	a.sounds.Close()
}

// ScreenCallback implementations

// SwitchToCatalog transitions to the catalog screen
func (a *App) SwitchToCatalog() {
	a.notification.Clear()
	a.state = StateCatalog
	a.transitionGuard = true
	a.catalogScreen.OnEnter()
	a.rebuildCurrentScreen()
}

// SwitchToSettings transitions to the settings screen
func (a *App) SwitchToSettings() {
	a.notification.Clear()
	a.state = StateSettings
	a.settingsScreen.OnEnter()
	a.rebuildCurrentScreen()
}

// Exit asks for confirmation; the app quits on the frame after a yes
func (a *App) Exit() {
	lang := a.lang()
	a.exit.Request(locale.Get(lang, locale.ExitConfirmTitle), locale.Get(lang, locale.ExitConfirmMessage))
}

// GetWindowWidth returns the current window width for responsive layouts
func (a *App) GetWindowWidth() int {
	return a.windowWidth
}

// GetWindowHeight returns the current window height
func (a *App) GetWindowHeight() int {
	return a.windowHeight
}

// RequestRebuild triggers a UI rebuild for the current screen on the next
// frame. Main loop only.
func (a *App) RequestRebuild() {
	a.rebuildPending = true
}

// Session returns the catalog session
func (a *App) Session() *session.Session {
	return a.session
}

// Settings returns the live settings. Callers must not modify them.
func (a *App) Settings() *storage.Settings {
	return a.settings
}

// ApplySettings saves s and applies it
func (a *App) ApplySettings(s *storage.Settings) error {
	if err := storage.SaveSettings(s); err != nil {
		a.logger.Error("Failed to save settings", zap.Error(err))
		return err
	}
	a.settingsUnreadable = false
	a.adopt(s)
	return nil
}

// LaunchSelected starts the selected game
func (a *App) LaunchSelected() {
	if _, err := a.session.Launch(); err != nil {
		a.launchFailed(err)
		return
	}
	a.sounds.Play(SoundLaunch)
}

// ToggleFavorite flips the favorite flag of the selected game
func (a *App) ToggleFavorite() {
	lang := a.lang()
	e, on, err := a.session.ToggleFavorite()
	if e == nil {
		if errors.Is(err, session.ErrNoSelection) {
			a.notification.ShowDefault(locale.Get(lang, locale.MsgNoGameSelected))
		}
		return
	}
	a.RequestRebuild()
	if err != nil {
		a.logger.Warn("Failed to save favorites", zap.Error(err))
		a.notification.ShowError(locale.Get(lang, locale.MsgFavoriteSaveFailed))
		return
	}
	a.sounds.Play(SoundFavorite)
	key := locale.MsgFavoriteRemoved
	if on {
		key = locale.MsgFavoriteAdded
	}
	a.notification.ShowDefault(locale.Format(lang, key, e.Title))
}

// ToggleMute flips the preview mute; UI chimes follow it
func (a *App) ToggleMute() {
	muted := a.session.ToggleMute()
	a.sounds.SetEnabled(!muted)
	a.RequestRebuild()
}

// CopyCommand copies the selected game's launch command to the clipboard
func (a *App) CopyCommand() {
	lang := a.lang()
	line, err := a.session.CommandLine()
	if err != nil {
		msg, _ := launchErrorMessage(lang, err)
		a.notification.ShowDefault(msg)
		return
	}
	if !style.CopyText(line) {
		a.logger.Warn("Clipboard unavailable")
		a.notification.ShowError(line)
		return
	}
	a.notification.ShowDefault(locale.Get(lang, locale.MsgCommandCopied))
}

// OpenParrot starts TeknoParrotUi.exe
func (a *App) OpenParrot() {
	err := a.session.OpenParrot()
	if err == nil {
		return
	}
	a.logger.Warn("Failed to open Parrot UI", zap.Error(err))
	title, msg := parrotErrorMessage(a.lang(), err)
	go a.dialogs.Error(title, msg)
}

// ShowAbout shows the About box
func (a *App) ShowAbout() {
	lang := a.lang()
	msg := locale.Format(lang, locale.AboutMessage, Version) + "\n" + parrotVersionText(lang, a.parrot, a.parrotKnown)
	title := locale.Get(lang, locale.AboutTitle)
	go a.dialogs.Info(title, msg)
}

// Cover returns the scaled cover for path, or the placeholder
func (a *App) Cover(path string, w, h int) *ebiten.Image {
	return a.covers.Get(path, w, h)
}

// launchFailed reports a launch error. Unexpected failures get a message
// box; missing selection or configuration only a notification.
func (a *App) launchFailed(err error) {
	lang := a.lang()
	msg, modal := launchErrorMessage(lang, err)
	if !modal {
		a.notification.ShowDefault(msg)
		return
	}
	title := locale.Get(lang, locale.CaptionError)
	go a.dialogs.Error(title, msg)
}

func launchErrorMessage(lang locale.Lang, err error) (msg string, modal bool) {
	switch {
	case errors.Is(err, session.ErrNoSelection):
		return locale.Get(lang, locale.MsgNoGameSelected), false
	case errors.Is(err, launcher.ErrNotLaunchable):
		return locale.Get(lang, locale.MsgLaunchNotConfigured), false
	default:
		return locale.Format(lang, locale.MsgLaunchFailed, err.Error()), true
	}
}

func parrotErrorMessage(lang locale.Lang, err error) (title, msg string) {
	if errors.Is(err, launcher.ErrParrotNotFound) {
		return locale.Get(lang, locale.MsgParrotNotFoundTitle), locale.Get(lang, locale.MsgParrotNotFound)
	}
	return locale.Get(lang, locale.CaptionError), locale.Format(lang, locale.MsgParrotStartFailed, err.Error())
}

func emptyCatalogMessage(lang locale.Lang, err error) string {
	if errors.Is(err, catalog.ErrNoSourceDirs) {
		return locale.Get(lang, locale.MsgNoBatFolder)
	}
	return locale.Get(lang, locale.MsgNoGameScripts)
}
