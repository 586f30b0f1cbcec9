// Package session owns the live catalog together with the navigator and
// the preview scheduler that operate on it. The ebiten shell drives it
// from its Update loop; nothing here touches the window.
package session

import (
	"errors"

	"go.uber.org/zap"

	"github.com/user-none/bigbox/catalog"
	"github.com/user-none/bigbox/launcher"
	"github.com/user-none/bigbox/locale"
	"github.com/user-none/bigbox/nav"
	"github.com/user-none/bigbox/preview"
	"github.com/user-none/bigbox/sched"
	"github.com/user-none/bigbox/standalone/storage"
)

// ErrNoSelection is returned by actions that need a selected entry
var ErrNoSelection = errors.New("no game selected")

// Config is everything a catalog build depends on. A settings change is
// applied by building a new Config and passing it to Rebuild.
type Config struct {
	Dirs      catalog.Dirs
	Language  locale.Lang
	Favorites catalog.FavoritesStore
}

// NewConfig derives the build configuration from the install directory
// and the user's settings.
func NewConfig(baseDir string, settings *storage.Settings) Config {
	if settings == nil {
		settings = storage.DefaultSettings()
	}
	return Config{
		Dirs:      catalog.DefaultDirs(baseDir, settings.MediaRoot(baseDir)),
		Language:  settings.Language,
		Favorites: storage.FavoritesIn(baseDir),
	}
}

// Starter starts external programs. *launcher.Launcher implements it.
type Starter interface {
	Launch(e *catalog.GameEntry) (*launcher.Process, error)
	OpenParrot(exePath string) error
}

// Options configures a Session
type Options struct {
	// Clock runs every deferred step. The shell passes its sched.Loop.
	Clock   sched.Scheduler
	Players preview.PlayerFactory
	Preview preview.Config
	Starter Starter
	// Lister reports what the list widget currently shows
	Lister  nav.Lister
	Workers int
	Logger  *zap.Logger

	// OnSelect and OnPreview let the shell redraw; both run on the clock's
	// goroutine.
	OnSelect  func(nav.Selection)
	OnPreview func(preview.Status)
}

// Session is the catalog controller. All methods except Load must be
// called from the goroutine that drains the clock.
type Session struct {
	cfg     Config
	cat     *catalog.Catalog
	nav     *nav.Navigator
	preview *preview.Scheduler
	starter Starter
	workers int
	logger  *zap.Logger

	onSelect func(nav.Selection)

	builds int
	last   *launcher.Process
}

// New creates a session with no catalog. Call Rebuild (or Load and
// Publish) before navigating.
func New(opts Options) *Session {
	s := &Session{
		starter:  opts.Starter,
		workers:  opts.Workers,
		logger:   opts.Logger,
		onSelect: opts.OnSelect,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.starter == nil {
		s.starter = &launcher.Launcher{Logger: s.logger}
	}
	players := opts.Players
	if players == nil {
		players = preview.NewNullPlayer
	}

	s.preview = preview.New(preview.Options{
		Clock:    opts.Clock,
		Factory:  players,
		Config:   opts.Preview,
		OnChange: opts.OnPreview,
		Logger:   s.logger.Named("preview"),
	})
	s.nav = nav.New(nil, nav.Options{
		Scheduler: opts.Clock,
		Lister:    opts.Lister,
		OnSelect:  s.selectionChanged,
		Logger:    s.logger.Named("nav"),
	})
	return s
}

func (s *Session) selectionChanged(sel nav.Selection) {
	s.preview.SelectionChanged(sel.Game)
	if s.onSelect != nil {
		s.onSelect(sel)
	}
}

// Load builds a catalog for cfg without touching the session, so it may
// run on any goroutine. The result is handed to Publish. A non-nil
// catalog is returned even with ErrEmptyCatalog.
func (s *Session) Load(cfg Config) (*catalog.Catalog, error) {
	return catalog.Build(catalog.Options{
		Dirs:      cfg.Dirs,
		Language:  cfg.Language,
		Favorites: cfg.Favorites,
		Logger:    s.logger.Named("catalog"),
		Workers:   s.workers,
	})
}

// Publish makes cat the live catalog in one step. The navigator keeps its
// category index when still valid and selects that category's first
// entry. The favorites of a non-empty live catalog carry over, since cat
// may have read favorites.json before the latest toggle was saved.
func (s *Session) Publish(cfg Config, cat *catalog.Catalog) {
	if cat == nil {
		return
	}
	if s.cat != nil && !s.cat.Empty() {
		cat.AdoptFavorites(s.cat.FavoriteIDs())
	}
	s.cfg = cfg
	s.cat = cat
	s.builds++
	s.nav.SetCatalog(cat)
}

// Rebuild is Load followed by Publish. The error is informational: an
// empty catalog is still published.
func (s *Session) Rebuild(cfg Config) error {
	cat, err := s.Load(cfg)
	s.Publish(cfg, cat)
	return err
}

// Config returns the configuration of the live catalog
func (s *Session) Config() Config {
	return s.cfg
}

// Catalog returns the live catalog, nil before the first Publish
func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}

// Builds counts published catalogs
func (s *Session) Builds() int {
	return s.builds
}

// Language of the live catalog
func (s *Session) Language() locale.Lang {
	if s.cat == nil {
		return locale.Default
	}
	return s.cat.Language()
}

// Navigator exposes the navigator for click and wheel handling
func (s *Session) Navigator() *nav.Navigator {
	return s.nav
}

// Selection returns the current catalog position
func (s *Session) Selection() nav.Selection {
	return s.nav.Selection()
}

// Selected returns the selected entry, or nil
func (s *Session) Selected() *catalog.GameEntry {
	return s.nav.Current()
}

// Tick feeds one merged input snapshot to the navigator. Launch commands
// are carried out here; the commands are returned so the shell can play
// sounds and confirm exits. The error is from the launch, if any.
func (s *Session) Tick(snap nav.Snapshot) ([]nav.Command, error) {
	cmds := s.nav.OnTick(snap)
	var err error
	for _, cmd := range cmds {
		if cmd.Kind != nav.Launch {
			continue
		}
		if _, lerr := s.Launch(); lerr != nil {
			err = lerr
		}
	}
	return cmds, err
}

// Launch starts the selected entry. Preview playback stops first and does
// not resume until the selection changes.
func (s *Session) Launch() (*launcher.Process, error) {
	e := s.Selected()
	if e == nil {
		s.logger.Debug("Launch requested with nothing selected")
		return nil, ErrNoSelection
	}
	if !e.Launchable() {
		return nil, launcher.ErrNotLaunchable
	}
	s.preview.Launching()
	p, err := s.starter.Launch(e)
	if err != nil {
		s.logger.Warn("Launch failed", zap.String("id", e.ID), zap.Error(err))
		return nil, err
	}
	s.last = p
	return p, nil
}

// Running returns the most recently launched process
func (s *Session) Running() *launcher.Process {
	return s.last
}

// ToggleFavorite flips the favorite flag of the selected entry and keeps
// the cursor on it, or on the first entry when it left the Favorites
// category under the cursor. A persistence error is returned with the
// entry and its new state.
func (s *Session) ToggleFavorite() (*catalog.GameEntry, bool, error) {
	e := s.Selected()
	if e == nil || s.cat == nil {
		return nil, false, ErrNoSelection
	}
	on, err := s.cat.ToggleFavorite(e)
	if errors.Is(err, catalog.ErrUnknownEntry) {
		return nil, false, err
	}
	// A save error leaves the in-memory toggle in place
	s.nav.Follow(e)
	return e, on, err
}

// Preview returns the preview status for the video surface
func (s *Session) Preview() preview.Status {
	return s.preview.Status()
}

// ToggleMute flips the preview mute flag and returns the new value
func (s *Session) ToggleMute() bool {
	return s.preview.ToggleMute()
}

// Muted reports the preview mute flag
func (s *Session) Muted() bool {
	return s.preview.Muted()
}

// OpenParrot starts TeknoParrotUi.exe from the install directory
func (s *Session) OpenParrot() error {
	return s.starter.OpenParrot(s.cfg.Dirs.ParrotExe)
}

// CommandLine renders the selected entry's launch command
func (s *Session) CommandLine() (string, error) {
	e := s.Selected()
	if e == nil {
		return "", ErrNoSelection
	}
	if !e.Launchable() {
		return "", launcher.ErrNotLaunchable
	}
	return launcher.CommandLine(e), nil
}

// Close stops the preview and releases the player
func (s *Session) Close() error {
	return s.preview.Close()
}
