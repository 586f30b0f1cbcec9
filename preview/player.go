package preview

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// EventKind is a player notification
type EventKind int

const (
	EventStarted EventKind = iota
	EventError
	EventEnd
)

// Event is reported by a Player, possibly from another goroutine
type Event struct {
	Kind EventKind
	Path string
	Err  error
}

// Player is the media playback backend. Play after the media ended
// restarts it from the beginning.
type Player interface {
	Load(path string) error
	Play() error
	Stop()
	// SetVolume takes 0..1
	SetVolume(v float64)
	Close() error
}

// PlayerFactory creates a player that reports through notify
type PlayerFactory func(notify func(Event)) (Player, error)

// ErrNoMedia is returned by Play before any Load
var ErrNoMedia = errors.New("no media loaded")

// NullPlayer reports every Play as started and never ends. Used when no
// external player is installed so the preview state still advances.
type NullPlayer struct {
	notify func(Event)
	path   string
	volume float64
}

// NewNullPlayer is a PlayerFactory
func NewNullPlayer(notify func(Event)) (Player, error) {
	return &NullPlayer{notify: notify}, nil
}

func (p *NullPlayer) Load(path string) error {
	p.path = path
	return nil
}

func (p *NullPlayer) Play() error {
	if p.path == "" {
		return ErrNoMedia
	}
	p.notify(Event{Kind: EventStarted, Path: p.path})
	return nil
}

func (p *NullPlayer) Stop()               {}
func (p *NullPlayer) SetVolume(v float64) { p.volume = v }
func (p *NullPlayer) Close() error        { return nil }

// Known external players, in preference order
var playerPrograms = []string{"mpv", "ffplay"}

// ProcessPlayer plays media by running an external player program. Each
// Play starts a new process; a volume change restarts the running one.
type ProcessPlayer struct {
	program string
	notify  func(Event)
	logger  *zap.Logger

	mu      sync.Mutex
	path    string
	volume  float64
	cmd     *exec.Cmd
	run     int
	stopped bool
}

// FindPlayerProgram returns the first known player on PATH, or the
// program named by override when set.
func FindPlayerProgram(override string) (string, error) {
	if override != "" {
		return exec.LookPath(override)
	}
	for _, name := range playerPrograms {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no preview player found (tried %s)", strings.Join(playerPrograms, ", "))
}

// ProcessFactory returns a PlayerFactory for program
func ProcessFactory(program string, logger *zap.Logger) PlayerFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(notify func(Event)) (Player, error) {
		return &ProcessPlayer{program: program, notify: notify, logger: logger, volume: DefaultVolume}, nil
	}
}

// DetectFactory picks a process player when one is installed and falls
// back to NullPlayer.
func DetectFactory(override string, logger *zap.Logger) PlayerFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	program, err := FindPlayerProgram(override)
	if err != nil {
		logger.Info("Video preview disabled", zap.Error(err))
		return NewNullPlayer
	}
	logger.Info("Video preview player", zap.String("program", program))
	return ProcessFactory(program, logger)
}

func (p *ProcessPlayer) Load(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.path = path
	return nil
}

func (p *ProcessPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.path == "" {
		return ErrNoMedia
	}
	return p.startLocked()
}

func (p *ProcessPlayer) startLocked() error {
	p.stopLocked()

	cmd := exec.Command(p.program, p.args()...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", filepath.Base(p.program), err)
	}
	p.cmd = cmd
	p.stopped = false
	p.run++
	run, path := p.run, p.path
	p.notify(Event{Kind: EventStarted, Path: path})

	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		current := run == p.run && !p.stopped
		if current {
			p.cmd = nil
		}
		p.mu.Unlock()
		if !current {
			return
		}
		if err != nil {
			p.notify(Event{Kind: EventError, Path: path, Err: err})
			return
		}
		p.notify(Event{Kind: EventEnd, Path: path})
	}()
	return nil
}

func (p *ProcessPlayer) args() []string {
	vol := int(p.volume*100 + 0.5)
	switch strings.TrimSuffix(strings.ToLower(filepath.Base(p.program)), ".exe") {
	case "ffplay":
		return []string{"-autoexit", "-loglevel", "quiet", "-window_title", "BigBox Preview",
			"-volume", strconv.Itoa(vol), p.path}
	default:
		return []string{"--no-terminal", "--really-quiet", "--title=BigBox Preview",
			"--volume=" + strconv.Itoa(vol), p.path}
	}
}

func (p *ProcessPlayer) Stop() {
	p.mu.Lock()
	p.stopLocked()
	p.mu.Unlock()
}

func (p *ProcessPlayer) stopLocked() {
	p.stopped = true
	if p.cmd == nil || p.cmd.Process == nil {
		return
	}
	if err := p.cmd.Process.Kill(); err != nil {
		p.logger.Debug("Killing preview process", zap.Error(err))
	}
	p.cmd = nil
}

func (p *ProcessPlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v == p.volume {
		return
	}
	p.volume = v
	if p.cmd != nil {
		if err := p.startLocked(); err != nil {
			p.logger.Warn("Restarting preview for volume change", zap.Error(err))
		}
	}
}

func (p *ProcessPlayer) Close() error {
	p.Stop()
	return nil
}
