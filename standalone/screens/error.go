package screens

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/user-none/bigbox/locale"
	"github.com/user-none/bigbox/standalone/style"
)

// maxErrorDetails caps the listed problems so the buttons stay on screen
const maxErrorDetails = 5

// ErrorScreen reports invalid values in BigBoxSettings.json at startup
type ErrorScreen struct {
	BaseScreen
	callback ScreenCallback
	lang     locale.Lang
	filename string
	details  []string
	onReset  func()
}

// NewErrorScreen creates a new error screen
func NewErrorScreen(callback ScreenCallback) *ErrorScreen {
	s := &ErrorScreen{callback: callback, lang: locale.Default}
	s.InitBase()
	return s
}

// SetValidationError sets the file and problems to show. onReset runs
// when the user chooses to reset the invalid values.
func (s *ErrorScreen) SetValidationError(lang locale.Lang, filename string, details []string, onReset func()) {
	s.lang = lang
	s.filename = filename
	s.details = details
	s.onReset = onReset
}

// Build creates the error screen UI
func (s *ErrorScreen) Build() *widget.Container {
	s.ClearFocusButtons()
	root := style.ScreenContainer()
	center := style.CenteredContainer(style.DefaultSpacing)

	center.AddChild(centeredText(locale.Get(s.lang, locale.ErrorSettingsTitle), style.LargeFontFace(), style.Text))
	center.AddChild(centeredText(locale.Format(s.lang, locale.ErrorSettingsMessage, s.filename), style.FontFace(), style.Text))

	for i, detail := range s.details {
		if i >= maxErrorDetails {
			more := fmt.Sprintf("+%d", len(s.details)-maxErrorDetails)
			center.AddChild(centeredText(more, style.FontFace(), style.TextSecondary))
			break
		}
		center.AddChild(centeredText(detail, style.FontFace(), style.TextSecondary))
	}

	center.AddChild(centeredText(locale.Get(s.lang, locale.ErrorSettingsHelp), style.FontFace(), style.TextSecondary))

	buttons := style.ButtonRow()
	reset := style.PrimaryTextButton(locale.Get(s.lang, locale.ButtonResetContinue), style.ButtonPaddingMedium, func(args *widget.ButtonClickedEventArgs) {
		if s.onReset != nil {
			s.onReset()
		}
	})
	exit := style.TextButton(locale.Get(s.lang, locale.ButtonExit), style.ButtonPaddingMedium, func(args *widget.ButtonClickedEventArgs) {
		s.callback.Exit()
	})
	buttons.AddChild(reset)
	buttons.AddChild(exit)
	s.RegisterFocusButton("reset", reset)
	s.RegisterFocusButton("exit", exit)
	center.AddChild(buttons)

	root.AddChild(center)
	return root
}

// OnEnter focuses the reset button
func (s *ErrorScreen) OnEnter() {
	s.SetDefaultFocus("reset")
}
