package screens

import (
	"github.com/ebitenui/ebitenui/widget"
)

// BaseScreen keeps focus and scroll state across rebuilds. Embed it in
// screens that are navigated with a gamepad.
type BaseScreen struct {
	scrollContainer *widget.ScrollContainer
	vSlider         *widget.Slider
	scrollTop       float64

	// Buttons in focus order, with their keys
	focusKeys    []string
	focusButtons map[string]*widget.Button

	// Key of button to restore focus to after rebuild
	pendingFocus string
}

// InitBase initializes the base screen state.
// Call this in the screen's constructor.
func (b *BaseScreen) InitBase() {
	b.focusButtons = make(map[string]*widget.Button)
}

// SetScrollWidgets stores the scroll widgets for position preservation
func (b *BaseScreen) SetScrollWidgets(scrollContainer *widget.ScrollContainer, vSlider *widget.Slider) {
	b.scrollContainer = scrollContainer
	b.vSlider = vSlider
}

// SaveScrollPosition saves the current scroll position.
// Call this before rebuilding the screen.
func (b *BaseScreen) SaveScrollPosition() {
	if b.scrollContainer != nil {
		b.scrollTop = b.scrollContainer.ScrollTop
	}
}

// RestoreScrollPosition restores the saved scroll position once the new
// scroll container is set.
func (b *BaseScreen) RestoreScrollPosition() {
	if b.scrollContainer != nil && b.scrollTop > 0 {
		setScrollTop(b.scrollContainer, b.vSlider, b.scrollTop)
	}
}

// RegisterFocusButton adds a button to the end of the focus order.
// Call this during Build() for each focusable button.
func (b *BaseScreen) RegisterFocusButton(key string, btn *widget.Button) {
	if b.focusButtons == nil {
		b.focusButtons = make(map[string]*widget.Button)
	}
	if _, ok := b.focusButtons[key]; !ok {
		b.focusKeys = append(b.focusKeys, key)
	}
	b.focusButtons[key] = btn
}

// ClearFocusButtons forgets all registered buttons.
// Call this at the start of Build() before registering new buttons.
func (b *BaseScreen) ClearFocusButtons() {
	b.focusKeys = nil
	b.focusButtons = make(map[string]*widget.Button)
}

// SaveFocusState records the key of the focused button as pending focus
// so a rebuild puts focus back where it was. An explicit pending focus
// is left alone.
func (b *BaseScreen) SaveFocusState(focused widget.Focuser) {
	if b.pendingFocus != "" || focused == nil {
		return
	}
	if key := b.keyOf(focused); key != "" {
		b.pendingFocus = key
	}
}

// SetPendingFocus sets the key of the button to focus after rebuild
func (b *BaseScreen) SetPendingFocus(key string) {
	b.pendingFocus = key
}

// SetDefaultFocus sets the pending focus only if none is pending
func (b *BaseScreen) SetDefaultFocus(key string) {
	if b.pendingFocus == "" {
		b.pendingFocus = key
	}
}

// GetPendingFocusButton returns the button that should receive focus
// after rebuild, or nil.
func (b *BaseScreen) GetPendingFocusButton() *widget.Button {
	if b.pendingFocus == "" {
		return nil
	}
	return b.focusButtons[b.pendingFocus]
}

// ClearPendingFocus clears the pending focus state
func (b *BaseScreen) ClearPendingFocus() {
	b.pendingFocus = ""
}

// NextFocus returns the button delta steps from current in focus order,
// clamped at both ends. With nothing focused the first button is
// returned.
func (b *BaseScreen) NextFocus(current widget.Focuser, delta int) *widget.Button {
	if len(b.focusKeys) == 0 {
		return nil
	}
	i := b.focusIndex(b.keyOf(current))
	if i < 0 {
		return b.focusButtons[b.focusKeys[0]]
	}
	return b.focusButtons[b.focusKeys[clampIndex(i+delta, len(b.focusKeys))]]
}

// EnsureFocusedVisible scrolls the view so the focused button is visible
func (b *BaseScreen) EnsureFocusedVisible(focused widget.Focuser) {
	if focused == nil || b.scrollContainer == nil || b.keyOf(focused) == "" {
		return
	}
	w := focused.GetWidget()
	if w == nil {
		return
	}
	view := b.scrollContainer.ViewRect()
	content := b.scrollContainer.ContentRect()
	top, ok := scrollToShow(view.Min.Y, view.Dy(), content.Dy(), b.scrollContainer.ScrollTop, w.Rect.Min.Y, w.Rect.Max.Y)
	if ok {
		setScrollTop(b.scrollContainer, b.vSlider, top)
	}
}

func (b *BaseScreen) keyOf(f widget.Focuser) string {
	if f == nil {
		return ""
	}
	w := f.GetWidget()
	if w == nil {
		return ""
	}
	for key, btn := range b.focusButtons {
		if btn.GetWidget() == w {
			return key
		}
	}
	return ""
}

func (b *BaseScreen) focusIndex(key string) int {
	if key == "" {
		return -1
	}
	for i, k := range b.focusKeys {
		if k == key {
			return i
		}
	}
	return -1
}

// scrollToShow returns the ScrollTop fraction that brings the item
// spanning itemTop..itemBottom (screen coordinates) into a view of
// viewHeight starting at viewTop. ok is false when no scroll is needed.
func scrollToShow(viewTop, viewHeight, contentHeight int, current float64, itemTop, itemBottom int) (float64, bool) {
	if contentHeight <= viewHeight {
		return 0, false
	}
	maxScroll := contentHeight - viewHeight
	offset := int(current * float64(maxScroll))

	top := itemTop - viewTop
	bottom := itemBottom - viewTop
	switch {
	case top < 0:
		offset += top
	case bottom > viewHeight:
		offset += bottom - viewHeight
	default:
		return current, false
	}
	offset = clampIndex(offset, maxScroll+1)
	return float64(offset) / float64(maxScroll), true
}

func setScrollTop(sc *widget.ScrollContainer, slider *widget.Slider, top float64) {
	if top < 0 {
		top = 0
	}
	if top > 1 {
		top = 1
	}
	sc.ScrollTop = top
	if slider != nil {
		slider.Current = int(top * 1000)
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
