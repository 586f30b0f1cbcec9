package standalone

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/user-none/bigbox/nav"
)

// stickThreshold is how far a stick must move to count as a direction
const stickThreshold = 0.5

// UINavigation is the focus movement for button-based screens
type UINavigation struct {
	Delta        int  // -1 previous button, +1 next, 0 none
	Activate     bool // gamepad confirm; Enter is handled by ebitenui
	Back         bool
	FocusChanged bool
}

// GlobalKeys are shortcuts polled every frame
type GlobalKeys struct {
	Fullscreen bool
	Favorite   bool
	Mute       bool
}

// InputManager polls keyboard and gamepads once per frame and flattens
// them into navigation snapshots.
type InputManager struct {
	keys nav.Snapshot
	pads nav.Snapshot

	prevUI nav.Snapshot
}

// NewInputManager creates a new input manager
func NewInputManager() *InputManager {
	return &InputManager{}
}

// Update polls all devices. Call once per frame before the accessors.
func (im *InputManager) Update() {
	im.keys = keyboardSnapshot(ebiten.IsKeyPressed)

	var pads []nav.Snapshot
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		pads = append(pads, readGamepad(id).snapshot())
	}
	im.pads = nav.Merge(pads...)
}

// Snapshot is the merged level state of every device. The navigator
// does its own edge detection.
func (im *InputManager) Snapshot() nav.Snapshot {
	return nav.Merge(im.keys, im.pads)
}

// Globals returns the shortcut keys pressed this frame
func (im *InputManager) Globals() GlobalKeys {
	return GlobalKeys{
		Fullscreen: inpututil.IsKeyJustPressed(ebiten.KeyF11),
		Favorite:   inpututil.IsKeyJustPressed(ebiten.KeyF),
		Mute:       inpututil.IsKeyJustPressed(ebiten.KeyM),
	}
}

// UINavigation returns focus movement for the settings and error screens.
// Each press moves one step.
func (im *InputManager) UINavigation() UINavigation {
	now := nav.Merge(im.keys, im.pads)
	prev := im.prevUI
	im.prevUI = now
	return uiNavigation(now, prev, im.pads.Confirm)
}

func uiNavigation(now, prev nav.Snapshot, padConfirm bool) UINavigation {
	var result UINavigation
	switch {
	case now.Up && !prev.Up, now.Left && !prev.Left:
		result.Delta = -1
	case now.Down && !prev.Down, now.Right && !prev.Right:
		result.Delta = 1
	}
	result.FocusChanged = result.Delta != 0
	result.Activate = padConfirm && !prev.Confirm
	result.Back = now.Cancel && !prev.Cancel
	return result
}

// keyboardSnapshot maps the arrow keys, Enter and Escape
func keyboardSnapshot(pressed func(ebiten.Key) bool) nav.Snapshot {
	return nav.Snapshot{
		Up:      pressed(ebiten.KeyArrowUp),
		Down:    pressed(ebiten.KeyArrowDown),
		Left:    pressed(ebiten.KeyArrowLeft),
		Right:   pressed(ebiten.KeyArrowRight),
		Confirm: pressed(ebiten.KeyEnter) || pressed(ebiten.KeyNumpadEnter),
		Cancel:  pressed(ebiten.KeyEscape),
	}
}

// padState is one gamepad's raw reading
type padState struct {
	dpadUp, dpadDown, dpadLeft, dpadRight bool
	stickX, stickY                        float64
	confirm, cancel                       bool
}

func (p padState) snapshot() nav.Snapshot {
	up, down, left, right := stickDirections(p.stickX, p.stickY)
	return nav.Snapshot{
		Up:      p.dpadUp || up,
		Down:    p.dpadDown || down,
		Left:    p.dpadLeft || left,
		Right:   p.dpadRight || right,
		Confirm: p.confirm,
		Cancel:  p.cancel,
	}
}

// stickDirections applies the deadzone to a stick position. Negative Y
// is up.
func stickDirections(x, y float64) (up, down, left, right bool) {
	return y < -stickThreshold, y > stickThreshold, x < -stickThreshold, x > stickThreshold
}

// readGamepad reads a pad through the standard layout when ebiten knows
// it, else through raw axes 0/1 and buttons 0 (confirm) and 1 (cancel).
func readGamepad(id ebiten.GamepadID) padState {
	if ebiten.IsStandardGamepadLayoutAvailable(id) {
		pressed := func(b ebiten.StandardGamepadButton) bool {
			return ebiten.IsStandardGamepadButtonPressed(id, b)
		}
		return padState{
			dpadUp:    pressed(ebiten.StandardGamepadButtonLeftTop),
			dpadDown:  pressed(ebiten.StandardGamepadButtonLeftBottom),
			dpadLeft:  pressed(ebiten.StandardGamepadButtonLeftLeft),
			dpadRight: pressed(ebiten.StandardGamepadButtonLeftRight),
			stickX:    ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			stickY:    ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
			confirm:   pressed(ebiten.StandardGamepadButtonRightBottom) || pressed(ebiten.StandardGamepadButtonCenterRight),
			cancel:    pressed(ebiten.StandardGamepadButtonRightRight) || pressed(ebiten.StandardGamepadButtonCenterLeft),
		}
	}

	var p padState
	if ebiten.GamepadAxisCount(id) >= 2 {
		p.stickX = ebiten.GamepadAxisValue(id, 0)
		p.stickY = ebiten.GamepadAxisValue(id, 1)
	}
	if ebiten.GamepadButtonCount(id) >= 2 {
		p.confirm = ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton0)
		p.cancel = ebiten.IsGamepadButtonPressed(id, ebiten.GamepadButton1)
	}
	return p
}
