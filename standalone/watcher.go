package standalone

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/user-none/bigbox/sched"
)

// settingsDebounce collapses the burst of events an editor save produces
const settingsDebounce = 300 * time.Millisecond

// SettingsWatcher reports edits to BigBoxSettings.json made outside the
// launcher. The directory is watched rather than the file so that
// replace-by-rename saves are seen.
type SettingsWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	wg      conc.WaitGroup

	// post hands work to the main loop; everything below runs there
	post     func(func())
	clock    sched.Scheduler
	delay    time.Duration
	pending  sched.Timer
	onChange func()
	logger   *zap.Logger
}

// NewSettingsWatcher creates a watcher that calls onChange on the main
// loop once the file has been quiet for the debounce delay.
func NewSettingsWatcher(path string, loop *sched.Loop, onChange func(), logger *zap.Logger) *SettingsWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsWatcher{
		path:     path,
		post:     loop.Post,
		clock:    loop,
		delay:    settingsDebounce,
		onChange: onChange,
		logger:   logger,
	}
}

// Start begins watching
func (w *SettingsWatcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.watcher = watcher
	w.wg.Go(w.run)
	w.logger.Debug("Watching settings", zap.String("path", w.path))
	return nil
}

func (w *SettingsWatcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.logger.Debug("Settings event", zap.String("op", event.Op.String()))
				w.post(w.touch)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Settings watcher error", zap.Error(err))
		}
	}
}

func (w *SettingsWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return strings.EqualFold(filepath.Base(event.Name), filepath.Base(w.path))
}

// touch restarts the quiet period. Main loop only.
func (w *SettingsWatcher) touch() {
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = w.clock.After(w.delay, func() {
		w.pending = nil
		w.onChange()
	})
}

// Close stops watching and drops a pending notification. Main loop only.
func (w *SettingsWatcher) Close() error {
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.wg.Wait()
	w.watcher = nil
	return err
}
