// Package types provides shared interfaces used across UI packages.
// This package exists to avoid import cycles between screens and the app.
package types

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/user-none/bigbox/standalone/session"
	"github.com/user-none/bigbox/standalone/storage"
)

// ScreenCallback provides callbacks for screen navigation and the actions
// that need the window or a native dialog.
type ScreenCallback interface {
	SwitchToCatalog()
	SwitchToSettings()
	Exit()
	GetWindowWidth() int  // For responsive layout calculations
	GetWindowHeight() int // For responsive layout calculations
	RequestRebuild()      // Request UI rebuild after state changes

	Session() *session.Session
	Settings() *storage.Settings
	// ApplySettings saves s and rebuilds the catalog when a build input changed
	ApplySettings(s *storage.Settings) error

	// Catalog actions, shared by buttons and keyboard shortcuts
	LaunchSelected()
	ToggleFavorite()
	ToggleMute()
	CopyCommand()
	OpenParrot()
	ShowAbout()

	// Cover returns the scaled cover for path, or the placeholder
	Cover(path string, w, h int) *ebiten.Image
}

// FocusRestorer is implemented by screens that restore focus after rebuilds
type FocusRestorer interface {
	// GetPendingFocusButton returns the button that should receive focus after rebuild
	GetPendingFocusButton() *widget.Button
	ClearPendingFocus()
}
