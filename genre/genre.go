// Package genre turns raw genre strings from metadata and LaunchBox
// overlays into localized category labels.
package genre

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/user-none/bigbox/locale"
)

// bucket is one canonical category with its labels and the lowercase
// English tokens that select it.
type bucket struct {
	english  string
	chinese  string
	synonyms []string
}

var buckets = []bucket{
	{"Action", "动作", []string{"action"}},
	{"Fighting", "格斗", []string{"fighting"}},
	{"Racing", "竞速", []string{"racing", "driving"}},
	{"Shooter", "射击", []string{"shooter", "light gun", "first person shooter", "fps"}},
	{"Music", "音乐", []string{"music", "music/rhythm"}},
	{"Sports", "体育", []string{"sports"}},
	{"Platform", "平台", []string{"platform", "platformer"}},
	{"Puzzle", "益智", []string{"puzzle"}},
	{"Rhythm", "节奏", []string{"rhythm"}},
	{"Beat 'em up", "横版过关", []string{"beat 'em up", "beat'em up", "beat em up"}},
	{"Adventure", "冒险", []string{"adventure", "adventure game"}},
	{"Simulation", "模拟", []string{"simulation", "sim"}},
	{"RPG", "角色扮演", []string{"role-playing", "roleplaying", "rpg"}},
	{"Arcade", "街机", []string{"arcade"}},
	{"Other", "其他", []string{"misc", "miscellaneous", "other"}},
	{"Pinball", "弹珠", []string{"pinball"}},
	{"Card", "卡牌", []string{"card", "card game"}},
	{"Board", "桌游", []string{"board", "board game"}},
	{"Trivia", "问答", []string{"trivia"}},
	{"Compilation", "合集", []string{"compilation"}},
	{"Party", "聚会", []string{"party", "party game"}},
	{"Horror", "恐怖", []string{"horror"}},
	{"Strategy", "策略", []string{"strategy"}},
	{"Flight", "飞行", []string{"flight", "flight simulation"}},
	{"Uncategorized", "未分类", nil},
}

// Lookup tables built once from buckets. Read-only after init.
var (
	byToken   = make(map[string]*bucket)
	byChinese = make(map[string]*bucket)
)

func init() {
	for i := range buckets {
		b := &buckets[i]
		for _, s := range b.synonyms {
			byToken[s] = b
		}
		byChinese[b.chinese] = b
	}
}

// Classify returns the category label for raw in the given language.
// Blank input yields the localized "Uncategorized" label. Input already
// written in Han script is kept as-is for Chinese and translated back for
// English. Unknown tokens are returned trimmed but otherwise unchanged.
func Classify(raw string, lang locale.Lang) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return locale.Get(lang, locale.CategoryUncategorized)
	}

	if lang == locale.English {
		if HasHan(raw) {
			if b, ok := byChinese[raw]; ok {
				return b.english
			}
			return raw
		}
		if b := lookupToken(raw); b != nil {
			return b.english
		}
		return raw
	}

	if HasHan(raw) {
		return raw
	}
	if b := lookupToken(raw); b != nil {
		return b.chinese
	}
	return raw
}

// Canonical returns the canonical English name for raw, or "" when the
// token is unknown.
func Canonical(raw string) string {
	raw = strings.TrimSpace(raw)
	if b, ok := byChinese[raw]; ok {
		return b.english
	}
	if b := lookupToken(raw); b != nil {
		return b.english
	}
	return ""
}

// HasHan reports whether s contains any Han character
func HasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

func lookupToken(raw string) *bucket {
	// Fold case and collapse runs of whitespace so "Light  Gun" matches.
	key := strings.Join(strings.Fields(cases.Fold().String(raw)), " ")
	return byToken[key]
}
