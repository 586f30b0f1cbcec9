package genre

import (
	"testing"

	"github.com/user-none/bigbox/locale"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		lang locale.Lang
		want string
	}{
		{"empty zh", "", locale.Chinese, "未分类"},
		{"empty en", "", locale.English, "Uncategorized"},
		{"whitespace en", "   ", locale.English, "Uncategorized"},
		{"racing zh", "Racing", locale.Chinese, "竞速"},
		{"driving zh", "driving", locale.Chinese, "竞速"},
		{"driving en", "Driving", locale.English, "Racing"},
		{"light gun en", "Light Gun", locale.English, "Shooter"},
		{"light gun extra space", "light   gun", locale.Chinese, "射击"},
		{"fps zh", "FPS", locale.Chinese, "射击"},
		{"beat em up", "Beat 'em Up", locale.English, "Beat 'em up"},
		{"rpg zh", "Role-Playing", locale.Chinese, "角色扮演"},
		{"misc en", "Miscellaneous", locale.English, "Other"},
		{"han kept for zh", "赛车", locale.Chinese, "赛车"},
		{"known han to en", "竞速", locale.English, "Racing"},
		{"unknown han to en", "赛车", locale.English, "赛车"},
		{"uncategorized han to en", "未分类", locale.English, "Uncategorized"},
		{"unknown passthrough zh", "Mahjong", locale.Chinese, "Mahjong"},
		{"unknown passthrough en", "Mahjong", locale.English, "Mahjong"},
		{"trimmed", "  Puzzle  ", locale.Chinese, "益智"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.raw, tc.lang)
			if got != tc.want {
				t.Errorf("Classify(%q, %s) = %q, want %q", tc.raw, tc.lang, got, tc.want)
			}
		})
	}
}

func TestSynonymsShareLabel(t *testing.T) {
	groups := [][]string{
		{"racing", "driving"},
		{"shooter", "light gun", "first person shooter", "fps"},
		{"card", "card game"},
		{"flight", "flight simulation"},
	}
	for _, group := range groups {
		first := Classify(group[0], locale.Chinese)
		for _, s := range group[1:] {
			if got := Classify(s, locale.Chinese); got != first {
				t.Errorf("Classify(%q) = %q, want %q (same as %q)", s, got, first, group[0])
			}
		}
	}
}

func TestCanonical(t *testing.T) {
	if got := Canonical("driving"); got != "Racing" {
		t.Errorf("Canonical(driving) = %q", got)
	}
	if got := Canonical("射击"); got != "Shooter" {
		t.Errorf("Canonical(射击) = %q", got)
	}
	if got := Canonical("unknown"); got != "" {
		t.Errorf("Canonical(unknown) = %q, want empty", got)
	}
}

func TestHasHan(t *testing.T) {
	if HasHan("Racing") {
		t.Error("HasHan(Racing) = true")
	}
	if !HasHan("Racing 竞速") {
		t.Error("HasHan(mixed) = false")
	}
}
