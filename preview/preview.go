// Package preview schedules preview video playback for the selected
// catalog entry: debounced loads, a large-file delay, looping and
// periodic replacement of the underlying player.
package preview

import (
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/user-none/bigbox/catalog"
	"github.com/user-none/bigbox/sched"
)

// Defaults
const (
	DefaultDebounce       = 250 * time.Millisecond
	DefaultLargeFileSize  = 64 << 20
	DefaultLargeFileDelay = 400 * time.Millisecond
	DefaultReplaceEvery   = 10
	DefaultVolume         = 0.5
)

// State of the preview slot
type State int

const (
	Idle State = iota
	PendingLoad
	Playing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingLoad:
		return "pending"
	case Playing:
		return "playing"
	}
	return "unknown"
}

// Status is what the shell binds to the video surface
type Status struct {
	State State
	// Path is the media being loaded or played, "" when idle
	Path  string
	Game  *catalog.GameEntry
	Muted bool
}

// FileSizer returns the size of the file at path
type FileSizer func(path string) (int64, error)

// StatSize is the FileSizer backed by os.Stat
func StatSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Config holds the timing and sizing policy
type Config struct {
	Debounce       time.Duration
	LargeFileSize  int64
	LargeFileDelay time.Duration
	// ReplaceEvery is the number of loads one player instance serves
	// before it is closed and recreated
	ReplaceEvery int
	Volume       float64
}

// DefaultConfig returns the standard policy
func DefaultConfig() Config {
	return Config{
		Debounce:       DefaultDebounce,
		LargeFileSize:  DefaultLargeFileSize,
		LargeFileDelay: DefaultLargeFileDelay,
		ReplaceEvery:   DefaultReplaceEvery,
		Volume:         DefaultVolume,
	}
}

// Options configures a Scheduler
type Options struct {
	Clock   sched.Scheduler
	Factory PlayerFactory
	// Sizer defaults to StatSize
	Sizer  FileSizer
	Config Config
	// OnChange is called whenever Status changes
	OnChange func(Status)
	Logger   *zap.Logger
}

// Scheduler owns the preview player and drives it from selection
// changes. All methods must be called from the goroutine that drains
// Clock.
type Scheduler struct {
	clock    sched.Scheduler
	factory  PlayerFactory
	sizer    FileSizer
	cfg      Config
	onChange func(Status)
	logger   *zap.Logger

	state   State
	gen     uint64
	target  *catalog.GameEntry
	pending sched.Timer
	path    string
	size    int64
	muted   bool

	player       Player
	playerID     int
	playerLoads  int
	loads        int
	replacements int
	lastSize     int64
}

// New creates an idle scheduler. The player is created lazily on the
// first load.
func New(opts Options) *Scheduler {
	s := &Scheduler{
		clock:    opts.Clock,
		factory:  opts.Factory,
		sizer:    opts.Sizer,
		cfg:      opts.Config,
		onChange: opts.OnChange,
		logger:   opts.Logger,
	}
	if s.sizer == nil {
		s.sizer = StatSize
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.cfg == (Config{}) {
		s.cfg = DefaultConfig()
	}
	if s.cfg.ReplaceEvery <= 0 {
		s.cfg.ReplaceEvery = DefaultReplaceEvery
	}
	return s
}

// Status returns the current preview status
func (s *Scheduler) Status() Status {
	return Status{State: s.state, Path: s.path, Game: s.target, Muted: s.muted}
}

// State returns the current state
func (s *Scheduler) State() State {
	return s.state
}

// Loads returns the number of loads issued so far
func (s *Scheduler) Loads() int {
	return s.loads
}

// Replacements returns how many times the player was recreated
func (s *Scheduler) Replacements() int {
	return s.replacements
}

// LastPlayedSize is the size of the file that most recently started
// playing. Diagnostic only.
func (s *Scheduler) LastPlayedSize() int64 {
	return s.lastSize
}

// Muted reports the mute flag
func (s *Scheduler) Muted() bool {
	return s.muted
}

// SelectionChanged stops the current preview and restarts the debounce
// for e. A nil e still goes through the debounce and ends Idle.
func (s *Scheduler) SelectionChanged(e *catalog.GameEntry) {
	s.supersede()
	s.target = e
	s.state = PendingLoad
	gen := s.gen
	s.pending = s.clock.After(s.cfg.Debounce, func() {
		s.debounceExpired(gen)
	})
	s.changed()
}

// Launching stops playback for a game launch. No load follows until the
// next selection change.
func (s *Scheduler) Launching() {
	s.supersede()
	s.state = Idle
	s.changed()
}

// SetMuted applies the mute flag to the active player immediately
func (s *Scheduler) SetMuted(muted bool) {
	if s.muted == muted {
		return
	}
	s.muted = muted
	if s.player != nil {
		s.player.SetVolume(s.volume())
	}
	s.changed()
}

// ToggleMute flips the mute flag and returns the new value
func (s *Scheduler) ToggleMute() bool {
	s.SetMuted(!s.muted)
	return s.muted
}

// Close stops playback and releases the player
func (s *Scheduler) Close() error {
	s.supersede()
	s.state = Idle
	if s.player == nil {
		return nil
	}
	err := s.player.Close()
	s.player = nil
	return err
}

// supersede invalidates every deferred step and stops playback without
// releasing the player.
func (s *Scheduler) supersede() {
	s.gen++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	if s.player != nil && s.path != "" {
		s.player.Stop()
	}
	s.path = ""
	s.size = 0
}

func (s *Scheduler) debounceExpired(gen uint64) {
	if gen != s.gen {
		return
	}
	s.pending = nil

	path := ""
	if s.target != nil {
		path = s.target.VideoPath
	}
	if path == "" {
		s.state = Idle
		s.changed()
		return
	}

	size, err := s.sizer(path)
	if err != nil {
		s.logger.Warn("Preview file unavailable", zap.String("path", path), zap.Error(err))
		s.state = Idle
		s.changed()
		return
	}

	if size > s.cfg.LargeFileSize {
		s.logger.Debug("Delaying large preview", zap.String("path", path), zap.Int64("size", size))
		s.pending = s.clock.After(s.cfg.LargeFileDelay, func() {
			s.load(gen, path, size)
		})
		return
	}
	s.load(gen, path, size)
}

func (s *Scheduler) load(gen uint64, path string, size int64) {
	if gen != s.gen || s.target == nil || s.target.VideoPath != path {
		s.logger.Debug("Discarding stale preview load", zap.String("path", path))
		return
	}
	s.pending = nil

	if s.player != nil && s.playerLoads >= s.cfg.ReplaceEvery {
		s.replacePlayer()
	}
	if s.player == nil {
		if err := s.newPlayer(); err != nil {
			s.logger.Warn("Failed to create preview player", zap.Error(err))
			s.state = Idle
			s.changed()
			return
		}
	}

	s.loads++
	s.playerLoads++
	s.path = path
	s.size = size
	s.player.SetVolume(s.volume())
	if err := s.player.Load(path); err != nil {
		s.fail(path, err)
		return
	}
	if err := s.player.Play(); err != nil {
		s.fail(path, err)
		return
	}
	s.changed()
}

func (s *Scheduler) fail(path string, err error) {
	s.logger.Warn("Preview playback failed", zap.String("path", path), zap.Error(err))
	if s.player != nil {
		s.player.Stop()
	}
	s.path = ""
	s.size = 0
	s.state = Idle
	s.changed()
}

func (s *Scheduler) newPlayer() error {
	s.playerID++
	id := s.playerID
	p, err := s.factory(func(ev Event) {
		// Players report from their own goroutines; hop to the owner
		s.clock.After(0, func() { s.handle(id, ev) })
	})
	if err != nil {
		return err
	}
	s.player = p
	s.playerLoads = 0
	return nil
}

func (s *Scheduler) replacePlayer() {
	if err := s.player.Close(); err != nil {
		s.logger.Debug("Closing preview player", zap.Error(err))
	}
	s.player = nil
	s.replacements++
	s.logger.Debug("Replacing preview player", zap.Int("loads", s.loads))
}

func (s *Scheduler) handle(playerID int, ev Event) {
	if playerID != s.playerID || s.player == nil || ev.Path != s.path || s.path == "" {
		return
	}
	switch ev.Kind {
	case EventStarted:
		s.lastSize = s.size
		if s.state != Playing {
			s.state = Playing
			s.changed()
		}
	case EventError:
		s.fail(ev.Path, ev.Err)
	case EventEnd:
		if err := s.player.Play(); err != nil {
			s.fail(ev.Path, err)
		}
	}
}

func (s *Scheduler) volume() float64 {
	if s.muted {
		return 0
	}
	return s.cfg.Volume
}

func (s *Scheduler) changed() {
	if s.onChange != nil {
		s.onChange(s.Status())
	}
}
