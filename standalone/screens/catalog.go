package screens

import (
	goimage "image"
	"time"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/user-none/bigbox/catalog"
	"github.com/user-none/bigbox/locale"
	"github.com/user-none/bigbox/preview"
	"github.com/user-none/bigbox/standalone/style"
)

// CatalogScreen is the cover browser: a category bar, the selected
// game's cover and description, and a strip of the category's entries.
type CatalogScreen struct {
	BaseScreen
	callback ScreenCallback

	// What the entry strip was last built for, reported to the navigator
	builtCategory int
	builtCount    int

	descScroll *widget.ScrollContainer
	descSlider *widget.Slider
	descGame   *catalog.GameEntry
	descOffset float64
	lastStep   time.Time
}

// NewCatalogScreen creates the catalog screen
func NewCatalogScreen(callback ScreenCallback) *CatalogScreen {
	s := &CatalogScreen{callback: callback, builtCategory: -1}
	s.InitBase()
	return s
}

// EntryCount reports how many entries the strip shows for category. A
// category the screen has not been rebuilt for yet reports zero.
func (s *CatalogScreen) EntryCount(category int) int {
	if category != s.builtCategory {
		return 0
	}
	return s.builtCount
}

// OnEnter resets the description scroll
func (s *CatalogScreen) OnEnter() {
	s.descGame = nil
	s.descOffset = 0
}

// Update advances the description auto-scroll. It pauses while the
// cursor is over the description.
func (s *CatalogScreen) Update() {
	if s.descScroll == nil {
		return
	}
	sess := s.callback.Session()
	if sess == nil {
		return
	}
	if g := sess.Selected(); g != s.descGame {
		s.descGame = g
		s.descOffset = 0
		s.lastStep = time.Now()
		setScrollTop(s.descScroll, s.descSlider, 0)
		return
	}
	if time.Since(s.lastStep) < style.DescScrollInterval {
		return
	}
	s.lastStep = time.Now()

	view := s.descScroll.ViewRect()
	if goimage.Pt(ebiten.CursorPosition()).In(view) {
		return
	}
	maxScroll := s.descScroll.ContentRect().Dy() - view.Dy()
	s.descOffset = advanceDescScroll(s.descOffset, style.DescScrollStep*style.DPIScale(), maxScroll)
	if maxScroll > 0 {
		setScrollTop(s.descScroll, s.descSlider, s.descOffset/float64(maxScroll))
	}
}

// advanceDescScroll moves offset down by step, back to the top once it
// passes the end. Content that fits stays at zero.
func advanceDescScroll(offset, step float64, maxScroll int) float64 {
	if maxScroll <= 0 {
		return 0
	}
	offset += step
	if offset > float64(maxScroll) {
		return 0
	}
	return offset
}

// Build creates the catalog screen UI
func (s *CatalogScreen) Build() *widget.Container {
	s.ClearFocusButtons()
	sess := s.callback.Session()
	cat := sess.Catalog()
	lang := sess.Language()
	sel := sess.Selection()

	root := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(style.Background)),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			widget.GridLayoutOpts.Stretch([]bool{true}, []bool{false, false, true, false, false}),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(style.DefaultPadding)),
			widget.GridLayoutOpts.Spacing(style.DefaultSpacing, style.SmallSpacing),
		)),
	)

	total := 0
	if cat != nil {
		total = cat.TotalGameCount()
	}
	root.AddChild(s.buildHeader(lang, total))

	if cat == nil || cat.CategoryCount() == 0 {
		s.builtCategory, s.builtCount = -1, 0
		s.descScroll, s.descSlider = nil, nil
		root.AddChild(widget.NewContainer())
		settings := style.PrimaryTextButton(locale.Get(lang, locale.ButtonSettings), style.ButtonPaddingMedium, func(args *widget.ButtonClickedEventArgs) {
			s.callback.SwitchToSettings()
		})
		root.AddChild(style.EmptyState(locale.Get(lang, locale.EmptyCatalog), locale.Get(lang, locale.MsgNoGameScripts), settings))
		root.AddChild(widget.NewContainer())
		root.AddChild(centeredText(locale.Get(lang, locale.HintBottom), style.FontFace(), style.TextSecondary))
		return root
	}

	root.AddChild(s.buildCategoryBar(cat, sel.Category))

	category := cat.Category(sel.Category)
	root.AddChild(s.buildMain(lang, sess.Selected(), sess.Preview()))
	root.AddChild(s.buildStrip(category, sel.Category, sel.Entry))
	root.AddChild(centeredText(locale.Get(lang, locale.HintBottom), style.FontFace(), style.TextSecondary))

	return root
}

func (s *CatalogScreen) buildHeader(lang locale.Lang, total int) *widget.Container {
	header := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{true, false}, []bool{false}),
			widget.GridLayoutOpts.Spacing(style.DefaultSpacing, 0),
		)),
	)

	titles := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(style.DefaultSpacing),
		)),
	)
	titles.AddChild(label(locale.Get(lang, locale.TitleMain), style.LargeFontFace(), style.Accent))
	titles.AddChild(label(locale.Format(lang, locale.GamesCount, total), style.FontFace(), style.TextSecondary))
	header.AddChild(titles)

	buttons := style.ButtonRow()
	buttons.AddChild(style.TextButton(locale.Get(lang, locale.ButtonBackToParrot), style.ButtonPaddingSmall, func(args *widget.ButtonClickedEventArgs) {
		s.callback.OpenParrot()
	}))
	buttons.AddChild(style.TextButton(locale.Get(lang, locale.ButtonSettings), style.ButtonPaddingSmall, func(args *widget.ButtonClickedEventArgs) {
		s.callback.SwitchToSettings()
	}))
	buttons.AddChild(style.TextButton(locale.Get(lang, locale.ButtonAbout), style.ButtonPaddingSmall, func(args *widget.ButtonClickedEventArgs) {
		s.callback.ShowAbout()
	}))
	header.AddChild(buttons)
	return header
}

// buildCategoryBar shows as many categories as fit around the selected one
func (s *CatalogScreen) buildCategoryBar(cat *catalog.Catalog, selected int) *widget.Container {
	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(style.Surface)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(style.TinySpacing),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(style.TinySpacing)),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(0, style.CategoryBarHeight),
		),
	)

	categories := cat.Categories()
	widths := make([]int, len(categories))
	for i, c := range categories {
		w := int(style.MeasureWidth(c.Name)) + style.ButtonPaddingSmall*2
		if w < style.CategoryMinWidth {
			w = style.CategoryMinWidth
		}
		widths[i] = w
	}
	avail := s.windowWidth() - style.DefaultPadding*2 - style.TinySpacing*2
	start, end := categoryWindow(widths, selected, avail, style.TinySpacing)

	for i := start; i < end; i++ {
		idx := i
		btn := widget.NewButton(
			widget.ButtonOpts.Image(style.ActiveButtonImage(idx == selected)),
			widget.ButtonOpts.Text(categories[idx].Name, style.FontFace(), style.ButtonTextColor()),
			widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(style.ButtonPaddingSmall)),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(widths[idx], 0),
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				s.callback.Session().Navigator().SelectCategory(idx)
				s.callback.RequestRebuild()
			}),
		)
		bar.AddChild(btn)
	}
	return bar
}

// categoryWindow picks the run of categories [start, end) to show in a
// bar avail pixels wide. The selected category is always included; the
// run grows to the right first, then to the left.
func categoryWindow(widths []int, selected, avail, spacing int) (start, end int) {
	n := len(widths)
	if n == 0 {
		return 0, 0
	}
	selected = clampIndex(selected, n)
	start, end = selected, selected+1
	used := widths[selected]
	for {
		grew := false
		if end < n && used+spacing+widths[end] <= avail {
			used += spacing + widths[end]
			end++
			grew = true
		}
		if start > 0 && used+spacing+widths[start-1] <= avail {
			start--
			used += spacing + widths[start]
			grew = true
		}
		if !grew {
			return start, end
		}
	}
}

// buildMain shows the selected cover next to its title, description,
// preview status and actions.
func (s *CatalogScreen) buildMain(lang locale.Lang, game *catalog.GameEntry, status preview.Status) *widget.Container {
	main := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{false, true}, []bool{true}),
			widget.GridLayoutOpts.Spacing(style.DefaultSpacing, 0),
		)),
	)

	coverPath := ""
	if game != nil {
		coverPath = game.CoverPath
	}
	coverBox := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(style.Black)),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(style.CoverWidth, style.CoverHeight),
		),
	)
	coverBox.AddChild(widget.NewGraphic(
		widget.GraphicOpts.Image(s.callback.Cover(coverPath, style.CoverWidth, style.CoverHeight)),
		widget.GraphicOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	))
	main.AddChild(coverBox)

	info := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(1),
			widget.GridLayoutOpts.Stretch([]bool{true}, []bool{false, false, true, false, false}),
			widget.GridLayoutOpts.Spacing(0, style.SmallSpacing),
		)),
	)

	infoWidth := s.windowWidth() - style.DefaultPadding*2 - style.CoverWidth - style.DefaultSpacing
	if infoWidth < style.GameListMinWidth {
		infoWidth = style.GameListMinWidth
	}

	if game == nil {
		info.AddChild(widget.NewText(widget.TextOpts.Text(locale.Get(lang, locale.MsgNoGameSelected), style.LargeFontFace(), style.TextSecondary)))
		info.AddChild(widget.NewContainer())
		info.AddChild(widget.NewContainer())
		info.AddChild(widget.NewContainer())
		info.AddChild(widget.NewContainer())
		s.descScroll, s.descSlider = nil, nil
		main.AddChild(info)
		return main
	}

	title, _ := style.TruncateToWidth(game.Title, *style.LargeFontFace(), float64(infoWidth))
	info.AddChild(widget.NewText(widget.TextOpts.Text(title, style.LargeFontFace(), style.Text)))
	info.AddChild(widget.NewText(widget.TextOpts.Text(locale.Get(lang, locale.DescGenre)+game.Genre, style.FontFace(), style.Accent)))
	info.AddChild(s.buildDescription(game, infoWidth))
	info.AddChild(widget.NewText(widget.TextOpts.Text(previewText(lang, game, status), style.FontFace(), style.TextSecondary)))
	info.AddChild(s.buildActions(lang, game, status.Muted))

	main.AddChild(info)
	return main
}

// buildDescription wraps the description into a scroll area. A rebuild
// for the same game keeps the scroll position.
func (s *CatalogScreen) buildDescription(game *catalog.GameEntry, width int) widget.PreferredSizeLocateableWidget {
	content := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(style.TinySpacing),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(style.SmallSpacing)),
		)),
	)
	lineWidth := float64(width - style.ScrollbarWidth - style.SmallSpacing*4)
	for _, line := range style.WrapText(game.Description, *style.FontFace(), lineWidth) {
		content.AddChild(widget.NewText(widget.TextOpts.Text(line, style.FontFace(), style.Text)))
	}

	scrollContainer, vSlider, wrapper := style.ScrollableContainer(style.ScrollableOpts{
		Content:     content,
		BgColor:     style.Surface,
		BorderColor: style.Border,
		Padding:     2,
	})
	if game == s.descGame && s.descScroll != nil {
		setScrollTop(scrollContainer, vSlider, s.descScroll.ScrollTop)
	} else {
		s.descGame = game
		s.descOffset = 0
		s.lastStep = time.Now()
	}
	s.descScroll, s.descSlider = scrollContainer, vSlider
	return wrapper
}

// previewText describes the preview slot for the selected game
func previewText(lang locale.Lang, game *catalog.GameEntry, status preview.Status) string {
	var msg string
	switch {
	case status.Game != game && game != nil && game.VideoPath != "":
		msg = locale.Get(lang, locale.PreviewLoading)
	case status.State == preview.PendingLoad:
		msg = locale.Get(lang, locale.PreviewLoading)
	case status.State == preview.Playing:
		msg = locale.Get(lang, locale.PreviewPlaying)
	case game == nil || game.VideoPath == "":
		msg = locale.Get(lang, locale.PreviewNone)
	default:
		return ""
	}
	if status.Muted {
		msg += locale.Get(lang, locale.PreviewMutedSuffix)
	}
	return msg
}

func (s *CatalogScreen) buildActions(lang locale.Lang, game *catalog.GameEntry, muted bool) *widget.Container {
	row := style.ButtonRow()

	start := style.PrimaryTextButton(locale.Get(lang, locale.ButtonStartGame), style.ButtonPaddingMedium, func(args *widget.ButtonClickedEventArgs) {
		s.callback.LaunchSelected()
	})
	favKey := locale.ButtonFavorite
	if game.IsFavorite {
		favKey = locale.ButtonUnfavorite
	}
	fav := style.TextButton(locale.Get(lang, favKey), style.ButtonPaddingMedium, func(args *widget.ButtonClickedEventArgs) {
		s.callback.ToggleFavorite()
	})
	muteKey := locale.ButtonMute
	if muted {
		muteKey = locale.ButtonUnmute
	}
	mute := style.TextButton(locale.Get(lang, muteKey), style.ButtonPaddingMedium, func(args *widget.ButtonClickedEventArgs) {
		s.callback.ToggleMute()
	})
	copyCmd := style.TextButton(locale.Get(lang, locale.ButtonCopyCommand), style.ButtonPaddingMedium, func(args *widget.ButtonClickedEventArgs) {
		s.callback.CopyCommand()
	})

	row.AddChild(start)
	row.AddChild(fav)
	row.AddChild(mute)
	row.AddChild(copyCmd)
	return row
}

// buildStrip shows thumbnails of the entries around the selection
func (s *CatalogScreen) buildStrip(category *catalog.Category, catIndex, selected int) *widget.Container {
	strip := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(style.SmallSpacing),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(0, style.ThumbHeight+style.ListRowHeight),
		),
	)

	n := 0
	if category != nil {
		n = category.Len()
	}
	s.builtCategory, s.builtCount = catIndex, n
	if n == 0 {
		return strip
	}

	visible := (s.windowWidth() - style.DefaultPadding*2) / (style.ThumbWidth + style.SmallSpacing)
	start, end := thumbWindow(n, selected, visible)
	for i := start; i < end; i++ {
		strip.AddChild(s.buildThumb(category.At(i), i, i == selected))
	}
	return strip
}

// thumbWindow centres a run of visible entries on selected, shifted to
// stay inside [0, n).
func thumbWindow(n, selected, visible int) (start, end int) {
	if visible < 1 {
		visible = 1
	}
	if visible >= n {
		return 0, n
	}
	if selected < 0 {
		selected = 0
	}
	start = selected - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > n {
		start = n - visible
	}
	return start, start + visible
}

func (s *CatalogScreen) buildThumb(game *catalog.GameEntry, index int, selected bool) *widget.Container {
	titleColor := style.Text
	if selected {
		titleColor = style.Accent
	}
	name, cut := style.TruncateToWidth(game.Title, *style.FontFace(), float64(style.ThumbWidth))
	labelOpts := []widget.WidgetOpt{
		widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
	}
	if cut {
		labelOpts = append(labelOpts, widget.WidgetOpts.ToolTip(
			widget.NewToolTip(
				widget.ToolTipOpts.Content(style.TooltipContent(game.Title)),
			),
		))
	}
	titleLabel := widget.NewText(
		widget.TextOpts.Text(name, style.FontFace(), titleColor),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionStart),
		widget.TextOpts.WidgetOpts(labelOpts...),
	)

	idle := style.Surface
	if selected {
		idle = style.Primary
	}
	btn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    image.NewNineSliceColor(idle),
			Hover:   image.NewNineSliceColor(style.PrimaryHover),
			Pressed: image.NewNineSliceColor(style.Primary),
		}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(style.ThumbWidth, style.ThumbHeight),
			widget.WidgetOpts.CursorEnterHandler(func(args *widget.WidgetCursorEnterEventArgs) {
				titleLabel.SetColor(style.Accent)
			}),
			widget.WidgetOpts.CursorExitHandler(func(args *widget.WidgetCursorExitEventArgs) {
				if !selected {
					titleLabel.SetColor(style.Text)
				}
			}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			s.callback.Session().Navigator().SelectEntry(index)
			s.callback.RequestRebuild()
		}),
	)

	inset := style.TinySpacing
	art := widget.NewGraphic(
		widget.GraphicOpts.Image(s.callback.Cover(game.CoverPath, style.ThumbWidth-inset*2, style.ThumbHeight-inset*2)),
	)

	stack := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewStackedLayout()),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(style.ThumbWidth, style.ThumbHeight),
		),
	)
	stack.AddChild(btn)
	stack.AddChild(art)

	card := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(style.Px(2)),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(style.ThumbWidth, 0),
		),
	)
	card.AddChild(stack)
	card.AddChild(titleLabel)
	return card
}

func (s *CatalogScreen) windowWidth() int {
	if w := s.callback.GetWindowWidth(); w > 0 {
		return w
	}
	return style.Px(1280)
}
