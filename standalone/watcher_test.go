package standalone

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/user-none/bigbox/sched"
)

func newManualWatcher(clock *sched.Manual, onChange func()) *SettingsWatcher {
	return &SettingsWatcher{
		path:     filepath.Join("base", "BigBoxSettings.json"),
		post:     func(fn func()) { fn() },
		clock:    clock,
		delay:    settingsDebounce,
		onChange: onChange,
	}
}

func TestSettingsWatcherDebounce(t *testing.T) {
	clock := sched.NewManual()
	calls := 0
	w := newManualWatcher(clock, func() { calls++ })

	w.touch()
	clock.Advance(200 * time.Millisecond)
	w.touch()
	clock.Advance(200 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("onChange ran during the burst: %d", calls)
	}

	clock.Advance(100 * time.Millisecond)
	if calls != 1 {
		t.Fatalf("calls = %d after quiet period, want 1", calls)
	}

	clock.Advance(time.Second)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSettingsWatcherCloseDropsPending(t *testing.T) {
	clock := sched.NewManual()
	calls := 0
	w := newManualWatcher(clock, func() { calls++ })

	w.touch()
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	clock.Advance(time.Second)
	if calls != 0 {
		t.Errorf("onChange ran after Close")
	}
}

func TestSettingsWatcherRelevant(t *testing.T) {
	w := newManualWatcher(sched.NewManual(), func() {})
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: filepath.Join("base", "BigBoxSettings.json"), Op: fsnotify.Write}, true},
		{"renamed into place", fsnotify.Event{Name: filepath.Join("base", "bigboxsettings.json"), Op: fsnotify.Create}, true},
		{"other file", fsnotify.Event{Name: filepath.Join("base", "favorites.json"), Op: fsnotify.Write}, false},
		{"chmod", fsnotify.Event{Name: filepath.Join("base", "BigBoxSettings.json"), Op: fsnotify.Chmod}, false},
		{"removed", fsnotify.Event{Name: filepath.Join("base", "BigBoxSettings.json"), Op: fsnotify.Remove}, false},
	}
	for _, tc := range tests {
		if got := w.relevant(tc.event); got != tc.want {
			t.Errorf("%s: relevant = %v, want %v", tc.name, got, tc.want)
		}
	}
}
