package style

import (
	"image"
	"reflect"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func TestTruncateStart(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		maxLen      int
		expected    string
		shouldTrunc bool
	}{
		{"shorter than max", "Media", 10, "Media", false},
		{"exact length", "Media", 5, "Media", false},
		{"path keeps tail", `D:\Arcade\TeknoParrot\Media\Covers`, 20, `...rrot\Media\Covers`, true},
		{"maxLen 3", "abcdef", 3, "def", true},
		{"maxLen 1", "abcdef", 1, "f", true},
		{"empty string", "", 5, "", false},
		{"counts runes", `D:\街机\媒体\封面`, 8, `...媒体\封面`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, truncated := TruncateStart(tc.input, tc.maxLen)
			if got != tc.expected {
				t.Errorf("TruncateStart(%q, %d) = %q, want %q", tc.input, tc.maxLen, got, tc.expected)
			}
			if truncated != tc.shouldTrunc {
				t.Errorf("TruncateStart(%q, %d) truncated = %v, want %v", tc.input, tc.maxLen, truncated, tc.shouldTrunc)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	face := FontFace()
	if face == nil || *face == nil {
		t.Fatal("FontFace() returned nil")
	}

	t.Run("fits unchanged", func(t *testing.T) {
		got, truncated := TruncateToWidth("OutRun", *face, 500)
		if truncated || got != "OutRun" {
			t.Errorf("TruncateToWidth = %q, %v; want unchanged", got, truncated)
		}
	})

	t.Run("long title gets ellipsis", func(t *testing.T) {
		long := "OutRun 2 SP SDX (Special Tours, Sega Lindbergh, Deluxe Cabinet)"
		got, truncated := TruncateToWidth(long, *face, 200)
		if !truncated {
			t.Fatal("expected truncation")
		}
		if !strings.HasSuffix(got, "...") {
			t.Errorf("expected ellipsis suffix, got %q", got)
		}
		if len(got) >= len(long) {
			t.Errorf("result %q not shorter than input", got)
		}
		if w, _ := text.Measure(got, *face, 0); w > 200 {
			t.Errorf("width %.1f exceeds 200", w)
		}
	})

	t.Run("empty", func(t *testing.T) {
		got, truncated := TruncateToWidth("", *face, 100)
		if truncated || got != "" {
			t.Errorf("TruncateToWidth(\"\") = %q, %v", got, truncated)
		}
	})

	t.Run("narrower than ellipsis", func(t *testing.T) {
		got, truncated := TruncateToWidth("Daytona USA", *face, 5)
		if !truncated || got != "..." {
			t.Errorf("TruncateToWidth = %q, %v; want \"...\"", got, truncated)
		}
	})
}

func TestBreakTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"Drive a Ferrari", []string{"Drive", " a", " Ferrari"}},
		{"世嘉赛车", []string{"世", "嘉", "赛", "车"}},
		{"OutRun 2 世嘉", []string{"OutRun", " 2", " 世", "嘉"}},
		{"类型: Racing", []string{"类", "型", ":", " Racing"}},
	}
	for _, tc := range tests {
		if got := breakTokens(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("breakTokens(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	face := *FontFace()
	if face == nil {
		t.Fatal("FontFace() returned nil")
	}

	t.Run("fits on one line", func(t *testing.T) {
		got := WrapText("Daytona USA", face, 1000)
		if !reflect.DeepEqual(got, []string{"Daytona USA"}) {
			t.Errorf("WrapText = %q", got)
		}
	})

	t.Run("keeps newlines", func(t *testing.T) {
		got := WrapText("Genre: Racing\r\n\nYear: 2006", face, 1000)
		want := []string{"Genre: Racing", "", "Year: 2006"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("WrapText = %q, want %q", got, want)
		}
	})

	t.Run("wraps at spaces", func(t *testing.T) {
		in := "Race across the coast in a convertible with the top down and the radio on"
		max := 150.0
		got := WrapText(in, face, max)
		if len(got) < 2 {
			t.Fatalf("expected several lines, got %q", got)
		}
		if strings.Join(got, " ") != in {
			t.Errorf("rejoined lines = %q, want %q", strings.Join(got, " "), in)
		}
		for _, line := range got {
			if strings.HasPrefix(line, " ") || strings.HasSuffix(line, " ") {
				t.Errorf("line %q has edge spaces", line)
			}
			if w, _ := text.Measure(line, face, 0); w > max && strings.Contains(line, " ") {
				t.Errorf("line %q is %.1f wide, max %.1f", line, w, max)
			}
		}
	})

	t.Run("long word alone", func(t *testing.T) {
		got := WrapText("a Supercalifragilisticexpialidocious b", face, 40)
		if len(got) != 3 || got[1] != "Supercalifragilisticexpialidocious" {
			t.Errorf("WrapText = %q", got)
		}
	})
}

func TestScaleRGBA(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{"portrait box art", 600, 800, 360, 480, 360, 480},
		{"landscape limited by width", 800, 400, 360, 480, 360, 180},
		{"upscale", 90, 120, 360, 480, 360, 480},
		{"never zero", 1000, 1, 100, 100, 100, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, tc.w, tc.h))
			got := scaleRGBA(src, tc.maxW, tc.maxH).Bounds()
			if got.Dx() != tc.wantW || got.Dy() != tc.wantH {
				t.Errorf("scaleRGBA(%dx%d into %dx%d) = %dx%d, want %dx%d",
					tc.w, tc.h, tc.maxW, tc.maxH, got.Dx(), got.Dy(), tc.wantW, tc.wantH)
			}
		})
	}
}

func TestPx(t *testing.T) {
	origDPI := dpiScale
	defer func() { dpiScale = origDPI }()

	for _, tc := range []struct {
		scale float64
		want  int
	}{{1.0, 10}, {2.0, 20}, {1.5, 15}} {
		dpiScale = tc.scale
		if got := Px(10); got != tc.want {
			t.Errorf("Px(10) at scale %.1f = %d, want %d", tc.scale, got, tc.want)
		}
	}
}

func TestPxFont(t *testing.T) {
	origDPI := dpiScale
	defer func() {
		dpiScale = origDPI
		ApplyFontSize(14)
	}()

	tests := []struct {
		dpi  float64
		font int
		want int
	}{
		{1.0, 14, 80},
		{1.0, 28, 160},
		{2.0, 14, 160},
		{2.0, 28, 320},
	}
	for _, tc := range tests {
		dpiScale = tc.dpi
		ApplyFontSize(tc.font)
		if got := PxFont(80); got != tc.want {
			t.Errorf("PxFont(80) at %dpt/%.0fx = %d, want %d", tc.font, tc.dpi, got, tc.want)
		}
	}
}

func TestSetDPIScale(t *testing.T) {
	origDPI := dpiScale
	defer func() {
		dpiScale = origDPI
		ApplyFontSize(14)
	}()

	SetDPIScale(2.0)
	if DPIScale() != 2.0 {
		t.Errorf("DPIScale() = %f, want 2.0", DPIScale())
	}

	scaled := []struct {
		name string
		got  int
		want int
	}{
		{"DefaultPadding", DefaultPadding, 32},
		{"SmallSpacing", SmallSpacing, 16},
		{"ScrollbarWidth", ScrollbarWidth, 40},
		{"CoverWidth", CoverWidth, 720},
		{"CoverHeight", CoverHeight, 960},
		{"ThumbWidth", ThumbWidth, 192},
		{"GameListMinWidth", GameListMinWidth, 560},
		{"OverlayPadding", OverlayPadding, 24},
		{"OverlayMargin", OverlayMargin, 16},
		{"ListRowHeight", ListRowHeight, 80},
		{"CategoryBarHeight", CategoryBarHeight, 88},
		{"DescViewportHeight", DescViewportHeight, 320},
	}
	for _, s := range scaled {
		if s.got != s.want {
			t.Errorf("%s at 2x = %d, want %d", s.name, s.got, s.want)
		}
	}

	if goFace, ok := (*FontFace()).(*text.GoTextFace); ok && goFace.Size != 28.0 {
		t.Errorf("FontFace size at 14pt/2x = %f, want 28.0", goFace.Size)
	}

	SetDPIScale(1.0)
	if DefaultPadding != 16 || CoverWidth != 360 || ListRowHeight != 40 {
		t.Errorf("after restore: DefaultPadding=%d CoverWidth=%d ListRowHeight=%d",
			DefaultPadding, CoverWidth, ListRowHeight)
	}
}

func TestSetDPIScaleClampsBelowOne(t *testing.T) {
	origDPI := dpiScale
	defer func() {
		dpiScale = origDPI
		ApplyFontSize(14)
	}()

	SetDPIScale(0.5)
	if DPIScale() != 1.0 {
		t.Errorf("DPIScale() after setting 0.5 = %f, want 1.0", DPIScale())
	}
}

func TestModifierKeys(t *testing.T) {
	if keys := modifierKeys("darwin"); keys[0] != ebiten.KeyMeta {
		t.Errorf("darwin modifier = %v, want Meta", keys[0])
	}
	if keys := modifierKeys("linux"); keys[0] != ebiten.KeyControl {
		t.Errorf("linux modifier = %v, want Control", keys[0])
	}
}
