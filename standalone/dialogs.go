package standalone

import (
	"sync/atomic"

	"github.com/sqweek/dialog"
)

// Dialogs shows native message boxes. Every method blocks until the box
// is dismissed, so callers run them off the main thread.
type Dialogs interface {
	Confirm(title, message string) bool
	Error(title, message string)
	Info(title, message string)
}

type nativeDialogs struct{}

func (nativeDialogs) Confirm(title, message string) bool {
	return dialog.Message("%s", message).Title(title).YesNo()
}

func (nativeDialogs) Error(title, message string) {
	dialog.Message("%s", message).Title(title).Error()
}

func (nativeDialogs) Info(title, message string) {
	dialog.Message("%s", message).Title(title).Info()
}

// exitGate turns exit requests into a confirmed quit. At most one
// confirmation box is open at a time; repeated Escape presses while it
// is up are ignored.
type exitGate struct {
	post    func(func())
	confirm func(title, message string) bool

	asking    atomic.Bool
	confirmed bool
}

func newExitGate(post func(func()), confirm func(title, message string) bool) *exitGate {
	return &exitGate{post: post, confirm: confirm}
}

// Request asks for confirmation. The answer arrives through post.
func (g *exitGate) Request(title, message string) {
	if g.confirmed || !g.asking.CompareAndSwap(false, true) {
		return
	}
	go func() {
		ok := g.confirm(title, message)
		g.post(func() {
			g.asking.Store(false)
			if ok {
				g.confirmed = true
			}
		})
	}()
}

// Asking reports whether a confirmation box is open
func (g *exitGate) Asking() bool {
	return g.asking.Load()
}

// Confirmed reports whether the user agreed to quit. Main loop only.
func (g *exitGate) Confirmed() bool {
	return g.confirmed
}
