package storage

import (
	"maps"

	"github.com/user-none/bigbox/locale"
)

// Settings represents BigBoxSettings.json. The file is a flat map of
// strings so that older and newer launchers can share it; keys this
// version does not know are kept in Extra and written back on save.
type Settings struct {
	Language         locale.Lang
	MediaPath        string // root holding Covers/ and Videos/; empty means <base>/Media
	EnableDebugLog   bool   // write BigBoxDebug.log at debug level
	SkipVersionCheck bool
	Fullscreen       bool

	Extra map[string]string
}

// Keys as they appear in the file
const (
	KeyLanguage         = "Language"
	KeyMediaPath        = "MediaPath"
	KeyEnableDebugLog   = "EnableDebugLog"
	KeySkipVersionCheck = "SkipVersionCheck"
	KeyFullscreen       = "Fullscreen"
)

var knownKeys = []string{KeyLanguage, KeyMediaPath, KeyEnableDebugLog, KeySkipVersionCheck, KeyFullscreen}

// DefaultSettings returns the settings used when the file is missing
func DefaultSettings() *Settings {
	return &Settings{
		Language:   locale.Default,
		Fullscreen: true,
	}
}

// Clone returns a deep copy
func (s *Settings) Clone() *Settings {
	c := *s
	if s.Extra != nil {
		c.Extra = make(map[string]string, len(s.Extra))
		for k, v := range s.Extra {
			c.Extra[k] = v
		}
	}
	return &c
}

// Equal reports whether s and o hold the same values, unknown keys included
func (s *Settings) Equal(o *Settings) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Language == o.Language &&
		s.MediaPath == o.MediaPath &&
		s.EnableDebugLog == o.EnableDebugLog &&
		s.SkipVersionCheck == o.SkipVersionCheck &&
		s.Fullscreen == o.Fullscreen &&
		maps.Equal(s.Extra, o.Extra)
}
