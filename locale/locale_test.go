package locale

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Lang
	}{
		{"en", English},
		{"EN", English},
		{" en ", English},
		{"zh", Chinese},
		{"", Chinese},
		{"fr", Chinese},
	}

	for _, tc := range tests {
		if got := Parse(tc.input); got != tc.want {
			t.Errorf("Parse(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTablesHaveSameKeys(t *testing.T) {
	for key := range tables[Chinese] {
		if _, ok := tables[English][key]; !ok {
			t.Errorf("key %q missing from English table", key)
		}
	}
	for key := range tables[English] {
		if _, ok := tables[Chinese][key]; !ok {
			t.Errorf("key %q missing from Chinese table", key)
		}
	}
}

func TestGetFallsBackToKey(t *testing.T) {
	if got := Get(English, "NoSuchKey"); got != "NoSuchKey" {
		t.Errorf("Get(unknown) = %q, want key", got)
	}
	if got := Get(Lang("fr"), CategoryFavorites); got != "★ 收藏" {
		t.Errorf("Get(fr, CategoryFavorites) = %q, want Chinese fallback", got)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(English, GamesCount, 3); got != "3 games" {
		t.Errorf("Format(en, GamesCount, 3) = %q", got)
	}
	if got := Format(Chinese, GamesCount, 12); got != "共 12 款游戏" {
		t.Errorf("Format(zh, GamesCount, 12) = %q", got)
	}
}
