package standalone

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/user-none/bigbox/nav"
)

func TestStickDirections(t *testing.T) {
	tests := []struct {
		name                  string
		x, y                  float64
		up, down, left, right bool
	}{
		{"centred", 0, 0, false, false, false, false},
		{"inside deadzone", 0.5, -0.5, false, false, false, false},
		{"up", 0, -0.8, true, false, false, false},
		{"down right", 0.9, 0.6, false, true, false, true},
		{"left", -1, 0.2, false, false, true, false},
	}
	for _, tc := range tests {
		up, down, left, right := stickDirections(tc.x, tc.y)
		if up != tc.up || down != tc.down || left != tc.left || right != tc.right {
			t.Errorf("%s: stickDirections(%v, %v) = %v %v %v %v", tc.name, tc.x, tc.y, up, down, left, right)
		}
	}
}

func TestPadSnapshot(t *testing.T) {
	tests := []struct {
		name string
		pad  padState
		want nav.Snapshot
	}{
		{"idle", padState{}, nav.Snapshot{}},
		{"dpad", padState{dpadUp: true, dpadRight: true}, nav.Snapshot{Up: true, Right: true}},
		{"stick", padState{stickY: 0.7}, nav.Snapshot{Down: true}},
		{"dpad and stick", padState{dpadLeft: true, stickX: -0.9}, nav.Snapshot{Left: true}},
		{"buttons", padState{confirm: true, cancel: true}, nav.Snapshot{Confirm: true, Cancel: true}},
	}
	for _, tc := range tests {
		if got := tc.pad.snapshot(); got != tc.want {
			t.Errorf("%s: snapshot = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestKeyboardSnapshot(t *testing.T) {
	down := map[ebiten.Key]bool{
		ebiten.KeyArrowLeft:   true,
		ebiten.KeyNumpadEnter: true,
	}
	got := keyboardSnapshot(func(k ebiten.Key) bool { return down[k] })
	want := nav.Snapshot{Left: true, Confirm: true}
	if got != want {
		t.Errorf("keyboardSnapshot = %+v, want %+v", got, want)
	}

	down = map[ebiten.Key]bool{ebiten.KeyEscape: true, ebiten.KeyArrowUp: true}
	got = keyboardSnapshot(func(k ebiten.Key) bool { return down[k] })
	want = nav.Snapshot{Up: true, Cancel: true}
	if got != want {
		t.Errorf("keyboardSnapshot = %+v, want %+v", got, want)
	}
}

func TestUINavigationEdges(t *testing.T) {
	tests := []struct {
		name       string
		now, prev  nav.Snapshot
		padConfirm bool
		want       UINavigation
	}{
		{"nothing", nav.Snapshot{}, nav.Snapshot{}, false, UINavigation{}},
		{"down press", nav.Snapshot{Down: true}, nav.Snapshot{}, false, UINavigation{Delta: 1, FocusChanged: true}},
		{"down held", nav.Snapshot{Down: true}, nav.Snapshot{Down: true}, false, UINavigation{}},
		{"left press", nav.Snapshot{Left: true}, nav.Snapshot{}, false, UINavigation{Delta: -1, FocusChanged: true}},
		{"pad confirm", nav.Snapshot{Confirm: true}, nav.Snapshot{}, true, UINavigation{Activate: true}},
		{"enter is left to ebitenui", nav.Snapshot{Confirm: true}, nav.Snapshot{}, false, UINavigation{}},
		{"back", nav.Snapshot{Cancel: true}, nav.Snapshot{}, false, UINavigation{Back: true}},
		{"back held", nav.Snapshot{Cancel: true}, nav.Snapshot{Cancel: true}, false, UINavigation{}},
	}
	for _, tc := range tests {
		if got := uiNavigation(tc.now, tc.prev, tc.padConfirm); got != tc.want {
			t.Errorf("%s: uiNavigation = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}
