package style

import (
	goimage "image"
	"image/draw"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	xdraw "golang.org/x/image/draw"
)

// ScaleImage scales an image to fit within maxWidth x maxHeight while preserving aspect ratio.
// Scaling is done on CPU to avoid creating large temporary GPU textures.
func ScaleImage(src goimage.Image, maxWidth, maxHeight int) *ebiten.Image {
	return ebiten.NewImageFromImage(scaleRGBA(src, maxWidth, maxHeight))
}

func scaleRGBA(src goimage.Image, maxWidth, maxHeight int) *goimage.RGBA {
	bounds := src.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	scaleX := float64(maxWidth) / float64(srcWidth)
	scaleY := float64(maxHeight) / float64(srcHeight)
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	newWidth := int(float64(srcWidth) * scale)
	newHeight := int(float64(srcHeight) * scale)
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dstRect := goimage.Rect(0, 0, newWidth, newHeight)
	scaled := goimage.NewRGBA(dstRect)
	xdraw.ApproxBiLinear.Scale(scaled, dstRect, src, bounds, draw.Over, nil)
	return scaled
}

// TruncateStart truncates a string from the start, keeping the end portion.
// Used for directory paths where the last components matter most.
func TruncateStart(s string, maxLen int) (string, bool) {
	n := utf8.RuneCountInString(s)
	if n <= maxLen {
		return s, false
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[n-maxLen:]), true
	}
	return "..." + string(r[n-maxLen+3:]), true
}

// MeasureWidth returns the pixel width of s rendered at the current font size.
func MeasureWidth(s string) float64 {
	w, _ := text.Measure(s, *FontFace(), 0)
	return w
}

// TruncateToWidth truncates a string to fit within a given pixel width using actual font measurement.
// Returns the truncated string (with "..." suffix if truncated) and whether truncation occurred.
// Uses binary search on rune boundaries for efficiency with proportional fonts.
func TruncateToWidth(s string, face text.Face, maxWidth float64) (string, bool) {
	if s == "" {
		return s, false
	}
	w, _ := text.Measure(s, face, 0)
	if w <= maxWidth {
		return s, false
	}

	ellipsis := "..."
	ellipsisW, _ := text.Measure(ellipsis, face, 0)
	if ellipsisW > maxWidth {
		return ellipsis, true
	}

	runeCount := utf8.RuneCountInString(s)
	lo, hi := 0, runeCount
	best := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		candidate := truncateRunes(s, mid) + ellipsis
		cw, _ := text.Measure(candidate, face, 0)
		if cw <= maxWidth {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	if best == 0 {
		return ellipsis, true
	}
	return truncateRunes(s, best) + ellipsis, true
}

// truncateRunes returns the first n runes of s as a string.
func truncateRunes(s string, n int) string {
	i := 0
	for j := 0; j < n; j++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 {
			break
		}
		i += size
	}
	return s[:i]
}

// WrapText breaks s into lines no wider than maxWidth. Latin text breaks
// at spaces; Han, kana and hangul may break between any two characters.
// Existing newlines are kept. A word wider than maxWidth gets a line of
// its own.
func WrapText(s string, face text.Face, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		lines = append(lines, wrapParagraph(para, face, maxWidth)...)
	}
	return lines
}

func wrapParagraph(para string, face text.Face, maxWidth float64) []string {
	tokens := breakTokens(para)
	if len(tokens) == 0 {
		return []string{""}
	}

	var lines []string
	var line strings.Builder
	for _, tok := range tokens {
		if line.Len() == 0 {
			line.WriteString(strings.TrimLeft(tok, " "))
			continue
		}
		w, _ := text.Measure(line.String()+tok, face, 0)
		if w <= maxWidth {
			line.WriteString(tok)
			continue
		}
		lines = append(lines, strings.TrimRight(line.String(), " "))
		line.Reset()
		line.WriteString(strings.TrimLeft(tok, " "))
	}
	if line.Len() > 0 {
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return lines
}

// breakTokens splits a paragraph into units that must stay on one line.
// A token carries its leading spaces.
func breakTokens(para string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	prevSpace := false
	for _, r := range para {
		switch {
		case isWideRune(r):
			if !prevSpace {
				flush()
			}
			cur.WriteRune(r)
			flush()
			prevSpace = false
		case r == ' ':
			if !prevSpace {
				flush()
			}
			cur.WriteRune(r)
			prevSpace = true
		default:
			cur.WriteRune(r)
			prevSpace = false
		}
	}
	flush()
	return tokens
}

func isWideRune(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) ||
		(r >= 0x3000 && r <= 0x303f) || (r >= 0xff00 && r <= 0xffef)
}
