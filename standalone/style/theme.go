package style

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"
)

// Palette
var (
	Background        = color.NRGBA{0x10, 0x10, 0x18, 0xff}
	Surface           = color.NRGBA{0x22, 0x22, 0x30, 0xff}
	Primary           = color.NRGBA{0xb0, 0x1e, 0x2a, 0xff} // Cabinet red
	PrimaryHover      = color.NRGBA{0xd0, 0x30, 0x3c, 0xff}
	Text              = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	TextSecondary     = color.NRGBA{0xa8, 0xa8, 0xb4, 0xff}
	Accent            = color.NRGBA{0xff, 0xd7, 0x00, 0xff} // Gold for favorites
	Border            = color.NRGBA{0x3a, 0x3a, 0x4c, 0xff}
	Black             = color.NRGBA{0x00, 0x00, 0x00, 0xff}
	OverlayBackground = color.NRGBA{0x10, 0x10, 0x18, 0xff} // alpha applied per use
)

// FontEnv names a TTF/TTC/OTF file used ahead of the system CJK fonts
const FontEnv = "BIGBOX_FONT"

// cjkFontCandidates are system fonts covering Chinese titles, in order
var cjkFontCandidates = []string{
	`C:\Windows\Fonts\msyh.ttc`,
	`C:\Windows\Fonts\msyh.ttf`,
	`C:\Windows\Fonts\simhei.ttf`,
	`C:\Windows\Fonts\simsun.ttc`,
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/google-noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/STHeiti Medium.ttc",
}

// currentFontSize is the current font size in points (default 14)
var currentFontSize float64 = 14

// dpiScale is the device pixel ratio (1.0 on non-retina, 2.0 on retina)
var dpiScale float64 = 1.0

// DPIScale returns the current device scale factor.
func DPIScale() float64 {
	return dpiScale
}

// Px converts a logical pixel value to physical pixels using the current DPI scale.
func Px(logical int) int {
	return int(float64(logical) * dpiScale)
}

// PxFont converts a logical pixel value to physical pixels scaled by both DPI and font size.
func PxFont(logical int) int {
	return int(float64(logical) * FontScale() * dpiScale)
}

// SetDPIScale sets the DPI scale factor and recalculates all spatial vars.
func SetDPIScale(scale float64) {
	if scale < 1.0 {
		scale = 1.0
	}
	dpiScale = scale

	DefaultPadding = Px(baseDefaultPadding)
	DefaultSpacing = Px(baseDefaultSpacing)
	SmallSpacing = Px(baseSmallSpacing)
	TinySpacing = Px(baseTinySpacing)
	LargeSpacing = Px(baseLargeSpacing)
	ScrollbarWidth = Px(baseScrollbarWidth)
	ButtonPaddingSmall = Px(baseButtonPaddingSmall)
	ButtonPaddingMedium = Px(baseButtonPaddingMedium)
	CoverWidth = Px(baseCoverWidth)
	CoverHeight = Px(baseCoverHeight)
	ThumbWidth = Px(baseThumbWidth)
	ThumbHeight = Px(baseThumbHeight)
	GameListMinWidth = Px(baseGameListMinWidth)
	CategoryMinWidth = Px(baseCategoryMinWidth)
	DescMinHeight = Px(baseDescMinHeight)
	OverlayPadding = Px(baseOverlayPadding)
	OverlayMargin = Px(baseOverlayMargin)

	ApplyFontSize(int(currentFontSize))
}

// fontSources holds goregular first, then the CJK fallback when one was
// found. Loaded once.
var fontSources []*text.GoTextFaceSource

// fontFace is the cached font face
var fontFace text.Face

// largeFontFace is the cached face for titles
var largeFontFace text.Face

// fallbackFontPath returns the first readable CJK font, or ""
func fallbackFontPath() string {
	if p := strings.TrimSpace(os.Getenv(FontEnv)); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
		zap.L().Warn("Font from environment not found", zap.String("path", p))
	}
	for _, p := range cjkFontCandidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// loadFallbackSource reads a TTF/OTF or the first face of a collection
func loadFallbackSource(path string) (*text.GoTextFaceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		sources, err := text.NewGoTextFaceSourcesFromCollection(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return sources[0], nil
	}
	return text.NewGoTextFaceSource(bytes.NewReader(data))
}

// loadFontSources loads goregular and the optional CJK fallback (once)
func loadFontSources() []*text.GoTextFaceSource {
	if fontSources != nil {
		return fontSources
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		zap.L().Error("Failed to load font source", zap.Error(err))
		return nil
	}
	fontSources = []*text.GoTextFaceSource{source}

	if path := fallbackFontPath(); path != "" {
		cjk, err := loadFallbackSource(path)
		if err != nil {
			zap.L().Warn("Failed to load CJK font", zap.String("path", path), zap.Error(err))
		} else {
			fontSources = append(fontSources, cjk)
			zap.L().Debug("CJK font loaded", zap.String("path", path))
		}
	}
	return fontSources
}

// HasCJKFont reports whether a fallback font for Chinese text was loaded
func HasCJKFont() bool {
	return len(loadFontSources()) > 1
}

// newFace builds a face of the given size over every loaded source.
// Glyphs missing from goregular come from the CJK font.
func newFace(size float64) text.Face {
	sources := loadFontSources()
	if len(sources) == 0 {
		return nil
	}
	if len(sources) == 1 {
		return &text.GoTextFace{Source: sources[0], Size: size}
	}
	faces := make([]text.Face, len(sources))
	for i, src := range sources {
		faces[i] = &text.GoTextFace{Source: src, Size: size}
	}
	multi, err := text.NewMultiFace(faces...)
	if err != nil {
		zap.L().Warn("Failed to combine font faces", zap.Error(err))
		return faces[0]
	}
	return multi
}

// FontFace returns the font face to use for UI text
func FontFace() *text.Face {
	if fontFace == nil {
		fontFace = newFace(currentFontSize * dpiScale)
	}
	return &fontFace
}

// LargeFontFace returns the face for game titles
func LargeFontFace() *text.Face {
	if largeFontFace == nil {
		largeFontFace = newFace(largeFontSize() * dpiScale)
	}
	return &largeFontFace
}

func largeFontSize() float64 {
	size := currentFontSize * 1.6
	if size > baseMaxLargeFontSize {
		size = baseMaxLargeFontSize
	}
	return size
}

// FontScale returns the current font scale factor relative to the base size (14pt).
func FontScale() float64 {
	return currentFontSize / 14.0
}

// ApplyFontSize sets the font size and recalculates all font-dependent layout values.
func ApplyFontSize(size int) {
	s := float64(size)
	currentFontSize = s

	// Widgets hold &fontFace, so the faces are replaced in place and never
	// set to nil before the UI rebuild completes.
	if face := newFace(s * dpiScale); face != nil {
		fontFace = face
		largeFontFace = newFace(largeFontSize() * dpiScale)
	}

	scale := s / 14.0
	d := dpiScale
	ListRowHeight = int(baseListRowHeight * scale * d)
	CategoryBarHeight = int(baseCategoryBarHeight * scale * d)
	SettingsRowHeight = int(baseSettingsRowHeight * scale * d)
	DescViewportHeight = int(baseDescViewportHeight * scale * d)
}

// ButtonImage creates a standard button image set
func ButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(Surface),
		Hover:    image.NewNineSliceColor(PrimaryHover),
		Pressed:  image.NewNineSliceColor(Primary),
		Disabled: image.NewNineSliceColor(Border),
	}
}

// PrimaryButtonImage creates a prominent button image set
func PrimaryButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(Primary),
		Hover:    image.NewNineSliceColor(PrimaryHover),
		Pressed:  image.NewNineSliceColor(Surface),
		Disabled: image.NewNineSliceColor(Border),
	}
}

// ActiveButtonImage returns a button image based on active state.
// Used for the category bar and settings toggles.
func ActiveButtonImage(active bool) *widget.ButtonImage {
	if active {
		return PrimaryButtonImage()
	}
	return ButtonImage()
}

// SliderButtonImage creates a slider handle button image
func SliderButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(Primary),
		Hover:    image.NewNineSliceColor(PrimaryHover),
		Pressed:  image.NewNineSliceColor(Primary),
		Disabled: image.NewNineSliceColor(Border),
	}
}

// SliderTrackImage creates a slider track image
func SliderTrackImage() *widget.SliderTrackImage {
	return &widget.SliderTrackImage{
		Idle:  image.NewNineSliceColor(Border),
		Hover: image.NewNineSliceColor(Border),
	}
}

// ButtonTextColor returns the standard button text colors
func ButtonTextColor() *widget.ButtonTextColor {
	return &widget.ButtonTextColor{
		Idle:     Text,
		Disabled: TextSecondary,
	}
}
