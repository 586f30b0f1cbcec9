// Package launcher starts games and the Parrot UI as external processes.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/user-none/bigbox/catalog"
)

var (
	// ErrNotLaunchable is returned for entries without an executable
	ErrNotLaunchable = errors.New("entry has no launch command")
	// ErrParrotNotFound is returned when TeknoParrotUi.exe is missing
	ErrParrotNotFound = errors.New("TeknoParrotUi.exe not found")
)

// Process is a started game
type Process struct {
	Entry *catalog.GameEntry
	cmd   *exec.Cmd
	done  chan struct{}
	err   error
}

// Wait blocks until the process exits
func (p *Process) Wait() error {
	<-p.done
	return p.err
}

// Done is closed when the process exits
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Pid returns the OS process id
func (p *Process) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Launcher runs launch commands. The zero value is ready to use.
type Launcher struct {
	Logger *zap.Logger
	// GOOS overrides runtime.GOOS, for tests
	GOOS string
	// OnExit is called from the waiting goroutine when a launched game
	// exits
	OnExit func(*Process)
}

func (l *Launcher) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

func (l *Launcher) goos() string {
	if l.GOOS == "" {
		return runtime.GOOS
	}
	return l.GOOS
}

// Command builds the command for e without starting it. Scripts run
// through the platform shell with the script's directory as working dir.
func (l *Launcher) Command(e *catalog.GameEntry) (*exec.Cmd, error) {
	if !e.Launchable() {
		return nil, ErrNotLaunchable
	}
	exe := strings.TrimSpace(e.LaunchExecutable)
	args := SplitArgs(e.LaunchArguments)

	var cmd *exec.Cmd
	switch strings.ToLower(filepath.Ext(exe)) {
	case ".bat", ".cmd":
		if l.goos() == "windows" {
			cmd = exec.Command(l.shell(), append([]string{"/c", exe}, args...)...)
		} else {
			cmd = exec.Command("sh", append([]string{exe}, args...)...)
		}
		cmd.Dir = filepath.Dir(exe)
	case ".sh":
		cmd = exec.Command("sh", append([]string{exe}, args...)...)
		cmd.Dir = filepath.Dir(exe)
	default:
		cmd = exec.Command(exe, args...)
		cmd.Dir = e.WorkingDir
		if cmd.Dir == "" && filepath.IsAbs(exe) {
			cmd.Dir = filepath.Dir(exe)
		}
	}
	return cmd, nil
}

func (l *Launcher) shell() string {
	if comspec := os.Getenv("COMSPEC"); comspec != "" {
		return comspec
	}
	return "cmd.exe"
}

// Launch starts e and returns immediately. Exit is reported via OnExit.
func (l *Launcher) Launch(e *catalog.GameEntry) (*Process, error) {
	cmd, err := l.Command(e)
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", filepath.Base(e.LaunchExecutable), err)
	}

	p := &Process{Entry: e, cmd: cmd, done: make(chan struct{})}
	l.logger().Info("Game launched",
		zap.String("id", e.ID),
		zap.String("executable", e.LaunchExecutable),
		zap.String("arguments", e.LaunchArguments),
		zap.Int("pid", p.Pid()))

	go func() {
		p.err = cmd.Wait()
		close(p.done)
		l.logger().Info("Game exited", zap.String("id", e.ID), zap.Error(p.err))
		if l.OnExit != nil {
			l.OnExit(p)
		}
	}()
	return p, nil
}

// OpenParrot starts TeknoParrotUi.exe with no arguments
func (l *Launcher) OpenParrot(exePath string) error {
	info, err := os.Stat(exePath)
	if err != nil || info.IsDir() {
		return ErrParrotNotFound
	}
	cmd := exec.Command(exePath)
	cmd.Dir = filepath.Dir(exePath)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", filepath.Base(exePath), err)
	}
	l.logger().Info("Parrot UI opened", zap.String("path", exePath))
	go cmd.Wait()
	return nil
}

// CommandLine renders the launch command as a single line, quoting
// parts that contain spaces. Used for display and the clipboard.
func CommandLine(e *catalog.GameEntry) string {
	if !e.Launchable() {
		return ""
	}
	parts := []string{quote(e.LaunchExecutable)}
	for _, a := range SplitArgs(e.LaunchArguments) {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}

// SplitArgs splits an argument string on whitespace, keeping double
// quoted sections together.
func SplitArgs(s string) []string {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		hasArg  bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			hasArg = true
		case (r == ' ' || r == '\t') && !inQuote:
			if hasArg {
				args = append(args, cur.String())
				cur.Reset()
				hasArg = false
			}
		default:
			cur.WriteRune(r)
			hasArg = true
		}
	}
	if hasArg {
		args = append(args, cur.String())
	}
	return args
}
