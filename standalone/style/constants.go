package style

import "time"

// Base constants (unexported) are logical-pixel reference values.
// The corresponding exported vars are recalculated by SetDPIScale.
const (
	baseDefaultPadding      = 16
	baseDefaultSpacing      = 16
	baseSmallSpacing        = 8
	baseTinySpacing         = 4
	baseLargeSpacing        = 24
	baseScrollbarWidth      = 20
	baseButtonPaddingSmall  = 8
	baseButtonPaddingMedium = 12

	// Catalog screen
	baseCoverWidth       = 360
	baseCoverHeight      = 480
	baseThumbWidth       = 96
	baseThumbHeight      = 128
	baseGameListMinWidth = 280
	baseCategoryMinWidth = 120
	baseDescMinHeight    = 120

	// Overlay (notification)
	baseOverlayPadding = 12
	baseOverlayMargin  = 8

	// Font-dependent base values (at 14pt, scale = 1.0)
	baseListRowHeight      = 40
	baseCategoryBarHeight  = 44
	baseSettingsRowHeight  = 38
	baseDescViewportHeight = 160
	baseMaxLargeFontSize   = 48
)

// Layout vars used across screens, DPI-scaled at runtime via SetDPIScale.
var (
	DefaultPadding = baseDefaultPadding
	DefaultSpacing = baseDefaultSpacing
	SmallSpacing   = baseSmallSpacing
	TinySpacing    = baseTinySpacing
	LargeSpacing   = baseLargeSpacing

	ScrollbarWidth = baseScrollbarWidth

	ButtonPaddingSmall  = baseButtonPaddingSmall
	ButtonPaddingMedium = baseButtonPaddingMedium
)

// Catalog screen vars
var (
	CoverWidth       = baseCoverWidth
	CoverHeight      = baseCoverHeight
	ThumbWidth       = baseThumbWidth
	ThumbHeight      = baseThumbHeight
	GameListMinWidth = baseGameListMinWidth
	CategoryMinWidth = baseCategoryMinWidth
	DescMinHeight    = baseDescMinHeight
)

// Font-dependent layout values (updated by ApplyFontSize)
var (
	ListRowHeight      = baseListRowHeight
	CategoryBarHeight  = baseCategoryBarHeight
	SettingsRowHeight  = baseSettingsRowHeight
	DescViewportHeight = baseDescViewportHeight
)

// Overlay vars
var (
	OverlayPadding = baseOverlayPadding
	OverlayMargin  = baseOverlayMargin
)

// Description auto-scroll: DescScrollStep logical pixels every
// DescScrollInterval, back to the top after the end.
const (
	DescScrollInterval = 80 * time.Millisecond
	DescScrollStep     = 0.8
)

// Mouse wheel scroll sensitivity
const (
	ScrollWheelSensitivity = 0.05
)

// CoverCacheSize bounds the decoded cover images kept in memory
const CoverCacheSize = 64
