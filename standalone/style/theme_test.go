package style

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestPaletteOpaque(t *testing.T) {
	colors := map[string]color.NRGBA{
		"Background":        Background,
		"Surface":           Surface,
		"Primary":           Primary,
		"PrimaryHover":      PrimaryHover,
		"Text":              Text,
		"TextSecondary":     TextSecondary,
		"Accent":            Accent,
		"Border":            Border,
		"Black":             Black,
		"OverlayBackground": OverlayBackground,
	}
	for name, c := range colors {
		if c.A != 0xff {
			t.Errorf("%s alpha = %#x, want 0xff", name, c.A)
		}
	}
	if Text == Background {
		t.Error("Text and Background must differ")
	}
}

func TestFallbackFontPathEnv(t *testing.T) {
	font := filepath.Join(t.TempDir(), "custom.ttf")
	if err := os.WriteFile(font, goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(FontEnv, font)
	if got := fallbackFontPath(); got != font {
		t.Errorf("fallbackFontPath() = %q, want %q", got, font)
	}

	missing := filepath.Join(t.TempDir(), "missing.ttf")
	t.Setenv(FontEnv, missing)
	if got := fallbackFontPath(); got == missing {
		t.Errorf("fallbackFontPath() returned missing file %q", got)
	}
}

func TestLoadFallbackSource(t *testing.T) {
	dir := t.TempDir()

	ttf := filepath.Join(dir, "font.ttf")
	if err := os.WriteFile(ttf, goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}
	if src, err := loadFallbackSource(ttf); err != nil || src == nil {
		t.Errorf("loadFallbackSource(ttf) = %v, %v", src, err)
	}

	if _, err := loadFallbackSource(filepath.Join(dir, "none.ttc")); err == nil {
		t.Error("expected error for missing file")
	}

	junk := filepath.Join(dir, "junk.ttc")
	if err := os.WriteFile(junk, []byte("not a font"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFallbackSource(junk); err == nil {
		t.Error("expected error for invalid collection")
	}
}

func TestNewFace(t *testing.T) {
	if face := newFace(14); face == nil {
		t.Fatal("newFace returned nil")
	}
	if LargeFontFace() == nil || *LargeFontFace() == nil {
		t.Error("LargeFontFace is nil")
	}
}

func TestActiveButtonImage(t *testing.T) {
	if ActiveButtonImage(true).Idle == ActiveButtonImage(false).Idle {
		t.Error("active and inactive idle images should differ")
	}
}
