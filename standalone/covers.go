package standalone

import (
	"fmt"
	goimage "image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/user-none/bigbox/standalone/style"
)

// CoverCache decodes and scales cover art on first use and keeps the
// most recent results. Missing or broken files get a drawn placeholder.
// Not safe for concurrent use; the UI goroutine owns it.
type CoverCache struct {
	cache        *lru.Cache[string, *ebiten.Image]
	placeholders map[goimage.Point]*ebiten.Image
	label        string
	logger       *zap.Logger
}

// NewCoverCache creates a cache holding up to size scaled covers
func NewCoverCache(size int, logger *zap.Logger) *CoverCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	cache, err := lru.New[string, *ebiten.Image](size)
	if err != nil {
		// Only a non-positive size fails
		cache, _ = lru.New[string, *ebiten.Image](style.CoverCacheSize)
	}
	return &CoverCache{
		cache:        cache,
		placeholders: make(map[goimage.Point]*ebiten.Image),
		logger:       logger,
	}
}

// SetLabel sets the text drawn on placeholders
func (c *CoverCache) SetLabel(label string) {
	if label == c.label {
		return
	}
	c.label = label
	c.placeholders = make(map[goimage.Point]*ebiten.Image)
	c.cache.Purge()
}

// Purge drops every cached cover, e.g. after the media folder changed
func (c *CoverCache) Purge() {
	c.cache.Purge()
}

// Len is the number of cached covers
func (c *CoverCache) Len() int {
	return c.cache.Len()
}

// Get returns the cover at path scaled to fit w x h
func (c *CoverCache) Get(path string, w, h int) *ebiten.Image {
	if w <= 0 || h <= 0 {
		return nil
	}
	if path == "" {
		return c.placeholder(w, h)
	}
	key := coverKey(path, w, h)
	if img, ok := c.cache.Get(key); ok {
		return img
	}

	src, err := decodeCover(path)
	if err != nil {
		c.logger.Debug("Cover unreadable", zap.String("path", path), zap.Error(err))
		img := c.placeholder(w, h)
		c.cache.Add(key, img)
		return img
	}
	img := style.ScaleImage(src, w, h)
	c.cache.Add(key, img)
	return img
}

func coverKey(path string, w, h int) string {
	return fmt.Sprintf("%s@%dx%d", path, w, h)
}

func decodeCover(path string) (goimage.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := goimage.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func (c *CoverCache) placeholder(w, h int) *ebiten.Image {
	size := goimage.Pt(w, h)
	if img, ok := c.placeholders[size]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(placeholderRGBA(w, h))
	if c.label != "" {
		face := *style.FontFace()
		label, _ := style.TruncateToWidth(c.label, face, float64(w-style.SmallSpacing*2))
		tw, th := text.Measure(label, face, 0)
		opts := &text.DrawOptions{}
		opts.GeoM.Translate((float64(w)-tw)/2, (float64(h)-th)/2)
		opts.ColorScale.ScaleWithColor(style.TextSecondary)
		text.Draw(img, label, face, opts)
	}
	c.placeholders[size] = img
	return img
}

// placeholderRGBA draws a cover-shaped card: a vertical gradient from
// Surface to Background inside a one-pixel Border frame.
func placeholderRGBA(w, h int) *goimage.RGBA {
	img := goimage.NewRGBA(goimage.Rect(0, 0, w, h))
	top := color.RGBAModel.Convert(style.Surface).(color.RGBA)
	bottom := color.RGBAModel.Convert(style.Background).(color.RGBA)
	border := color.RGBAModel.Convert(style.Border).(color.RGBA)

	for y := 0; y < h; y++ {
		row := lerpColor(top, bottom, float64(y)/float64(max(h-1, 1)))
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				img.SetRGBA(x, y, border)
				continue
			}
			img.SetRGBA(x, y, row)
		}
	}
	return img
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}
