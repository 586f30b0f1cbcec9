package screens

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/sqweek/dialog"

	"github.com/user-none/bigbox/locale"
	"github.com/user-none/bigbox/standalone/storage"
	"github.com/user-none/bigbox/standalone/style"
)

// maxMediaPathChars keeps the media row on one line
const maxMediaPathChars = 48

// SettingsScreen edits BigBoxSettings.json. Every change is saved at once
// through the callback so the catalog can rebuild behind it.
type SettingsScreen struct {
	BaseScreen

	callback ScreenCallback
	draft    *storage.Settings
	message  string

	textInputs *style.TextInputGroup
	mediaInput *widget.TextInput

	// Written by the folder dialog goroutine, consumed in Update
	mu         sync.Mutex
	browsing   bool
	pickedPath string
	picked     bool
}

// NewSettingsScreen creates a new settings screen
func NewSettingsScreen(callback ScreenCallback) *SettingsScreen {
	s := &SettingsScreen{
		callback:   callback,
		textInputs: style.NewTextInputGroup(),
	}
	s.InitBase()
	return s
}

// OnEnter takes a fresh copy of the live settings
func (s *SettingsScreen) OnEnter() {
	if cur := s.callback.Settings(); cur != nil {
		s.draft = cur.Clone()
	} else {
		s.draft = storage.DefaultSettings()
	}
	s.message = ""
	s.SetDefaultFocus("back")
}

// Update handles clipboard shortcuts and a folder picked in the dialog
func (s *SettingsScreen) Update() {
	s.textInputs.Update()

	s.mu.Lock()
	path, ok := s.pickedPath, s.picked
	s.picked = false
	s.mu.Unlock()
	if ok {
		s.SetPendingFocus("media-browse")
		s.apply(func(next *storage.Settings) { next.MediaPath = path })
	}
}

func (s *SettingsScreen) lang() locale.Lang {
	if s.draft == nil {
		return locale.Default
	}
	return s.draft.Language
}

// Build creates the settings screen UI
func (s *SettingsScreen) Build() *widget.Container {
	if s.draft == nil {
		s.OnEnter()
	}
	s.ClearFocusButtons()
	s.textInputs = style.NewTextInputGroup()
	lang := s.lang()

	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(style.Background)),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			widget.GridLayoutOpts.Stretch([]bool{true}, []bool{false, true}),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(style.DefaultPadding)),
			widget.GridLayoutOpts.Spacing(style.DefaultSpacing, style.DefaultSpacing),
		)),
	)

	header := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(style.DefaultSpacing),
		)),
	)
	back := style.TextButton(locale.Get(lang, locale.ButtonBack), style.ButtonPaddingSmall, func(args *widget.ButtonClickedEventArgs) {
		s.draft = nil
		s.callback.SwitchToCatalog()
	})
	s.RegisterFocusButton("back", back)
	header.AddChild(back)
	header.AddChild(label(locale.Get(lang, locale.SettingsTitle), style.LargeFontFace(), style.Text))
	root.AddChild(header)

	section := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(style.SmallSpacing),
		)),
	)

	section.AddChild(s.buildRow(locale.Get(lang, locale.SettingsLanguageLabel),
		s.choice("lang-zh", locale.Get(lang, locale.SettingsLangZh), lang == locale.Chinese, func(next *storage.Settings) {
			next.Language = locale.Chinese
		}),
		s.choice("lang-en", locale.Get(lang, locale.SettingsLangEn), lang == locale.English, func(next *storage.Settings) {
			next.Language = locale.English
		}),
	))

	section.AddChild(s.buildMediaRow(lang))

	section.AddChild(s.buildSwitchRow("debug", locale.Get(lang, locale.SettingsDebugLogLabel), s.draft.EnableDebugLog,
		func(next *storage.Settings, on bool) { next.EnableDebugLog = on }))
	section.AddChild(s.buildSwitchRow("skip-version", locale.Get(lang, locale.SettingsVersionLabel), s.draft.SkipVersionCheck,
		func(next *storage.Settings, on bool) { next.SkipVersionCheck = on }))
	section.AddChild(s.buildSwitchRow("fullscreen", locale.Get(lang, locale.SettingsFullscreen), s.draft.Fullscreen,
		func(next *storage.Settings, on bool) { next.Fullscreen = on }))

	if s.message != "" {
		section.AddChild(widget.NewText(
			widget.TextOpts.Text(s.message, style.FontFace(), style.Accent),
		))
	}

	scrollContainer, vSlider, scrollWrapper := style.ScrollableContainer(style.ScrollableOpts{
		Content:     section,
		BgColor:     style.Background,
		BorderColor: style.Border,
		Padding:     style.SmallSpacing,
	})
	s.SetScrollWidgets(scrollContainer, vSlider)
	s.RestoreScrollPosition()
	root.AddChild(scrollWrapper)

	return root
}

// buildRow lays out a label column and a row of controls on a surface
// background.
func (s *SettingsScreen) buildRow(text string, controls ...widget.PreferredSizeLocateableWidget) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(style.Surface)),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{false, true}, []bool{true}),
			widget.GridLayoutOpts.Spacing(style.DefaultSpacing, 0),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(style.SmallSpacing)),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
			widget.WidgetOpts.MinSize(0, style.SettingsRowHeight),
		),
	)

	row.AddChild(widget.NewText(
		widget.TextOpts.Text(text, style.FontFace(), style.Text),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.GridLayoutData{
				VerticalPosition: widget.GridLayoutPositionCenter,
			}),
			widget.WidgetOpts.MinSize(style.Px(160), 0),
		),
	))

	buttons := style.ButtonRow()
	for _, c := range controls {
		buttons.AddChild(c)
	}
	row.AddChild(buttons)
	return row
}

// choice creates a toggle that applies change when clicked
func (s *SettingsScreen) choice(key, text string, active bool, change func(*storage.Settings)) *widget.Button {
	btn := style.ToggleButton(text, active, func(args *widget.ButtonClickedEventArgs) {
		s.SetPendingFocus(key)
		s.apply(change)
	})
	s.RegisterFocusButton(key, btn)
	return btn
}

func (s *SettingsScreen) buildSwitchRow(key, text string, value bool, set func(*storage.Settings, bool)) *widget.Container {
	lang := s.lang()
	on := s.choice(key+"-on", locale.Get(lang, locale.SettingsOn), value, func(next *storage.Settings) { set(next, true) })
	off := s.choice(key+"-off", locale.Get(lang, locale.SettingsOff), !value, func(next *storage.Settings) { set(next, false) })
	return s.buildRow(text, on, off)
}

func (s *SettingsScreen) buildMediaRow(lang locale.Lang) *widget.Container {
	s.mediaInput = style.StyledTextInput(locale.Get(lang, locale.SettingsMediaPathNone), style.Px(320))
	s.mediaInput.SetText(s.draft.MediaPath)
	s.textInputs.Add(s.mediaInput)

	apply := style.TextButton(locale.Get(lang, locale.ButtonApply), style.ButtonPaddingSmall, func(args *widget.ButtonClickedEventArgs) {
		path := strings.TrimSpace(s.mediaInput.GetText())
		s.SetPendingFocus("media-apply")
		s.apply(func(next *storage.Settings) { next.MediaPath = path })
	})
	browse := style.TextButton(locale.Get(lang, locale.ButtonBrowse), style.ButtonPaddingSmall, func(args *widget.ButtonClickedEventArgs) {
		s.browse(locale.Get(lang, locale.SelectMediaFolder))
	})
	clearBtn := style.TextButton(locale.Get(lang, locale.ButtonClear), style.ButtonPaddingSmall, func(args *widget.ButtonClickedEventArgs) {
		s.SetPendingFocus("media-clear")
		s.apply(func(next *storage.Settings) { next.MediaPath = "" })
	})
	s.RegisterFocusButton("media-apply", apply)
	s.RegisterFocusButton("media-browse", browse)
	s.RegisterFocusButton("media-clear", clearBtn)

	controls := []widget.PreferredSizeLocateableWidget{s.mediaInput, apply, browse, clearBtn}
	if inUse := s.mediaInUse(); inUse != nil {
		controls = append(controls, inUse)
	}
	return s.buildRow(locale.Get(lang, locale.SettingsMediaPathLabel), controls...)
}

// mediaInUse shows the media root of the live catalog, which differs
// from the draft while a rebuild is running
func (s *SettingsScreen) mediaInUse() *widget.Text {
	sess := s.callback.Session()
	if sess == nil || sess.Catalog() == nil {
		return nil
	}
	root := filepath.Dir(sess.Config().Dirs.Media.Covers)
	shown, cut := style.TruncateStart(root, maxMediaPathChars)
	opts := []widget.WidgetOpt{}
	if cut {
		opts = append(opts, widget.WidgetOpts.ToolTip(
			widget.NewToolTip(
				widget.ToolTipOpts.Content(style.TooltipContent(root)),
			),
		))
	}
	return widget.NewText(
		widget.TextOpts.Text(shown, style.FontFace(), style.TextSecondary),
		widget.TextOpts.Position(widget.TextPositionStart, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(opts...),
	)
}

// browse opens the native folder picker off the main thread. The result
// is picked up by Update.
func (s *SettingsScreen) browse(title string) {
	s.mu.Lock()
	if s.browsing {
		s.mu.Unlock()
		return
	}
	s.browsing = true
	s.mu.Unlock()

	go func() {
		path, err := dialog.Directory().Title(title).Browse()

		s.mu.Lock()
		defer s.mu.Unlock()
		s.browsing = false
		if err != nil {
			return // cancelled
		}
		s.pickedPath = path
		s.picked = true
	}()
}

// apply validates a changed copy of the draft and hands it to the app.
// The draft only moves forward when the save succeeded.
func (s *SettingsScreen) apply(change func(*storage.Settings)) {
	if s.draft == nil {
		return
	}
	next := s.draft.Clone()
	change(next)

	if problems := storage.ValidateSettings(next); len(problems) > 0 {
		s.message = locale.Format(s.lang(), locale.MsgMediaPathInvalid, next.MediaPath)
		s.callback.RequestRebuild()
		return
	}
	if err := s.callback.ApplySettings(next); err != nil {
		s.message = locale.Get(next.Language, locale.MsgSettingsSaveFailed)
	} else {
		s.draft = next
		s.message = ""
	}
	s.callback.RequestRebuild()
}
