package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/user-none/bigbox/catalog"
	"github.com/user-none/bigbox/locale"
)

// ErrMalformedSettings is returned alongside recovered settings when
// BigBoxSettings.json cannot be parsed.
var ErrMalformedSettings = errors.New("malformed settings file")

// A missing comma should not stop someone from skipping the version check
var skipVersionCheckPattern = regexp.MustCompile(`(?i)SkipVersionCheck"?\s*:\s*"true"`)

// LoadSettings loads BigBoxSettings.json from the install directory.
func LoadSettings() (*Settings, error) {
	path, err := GetSettingsPath()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(path)
}

// LoadSettingsFrom loads the settings file at path. A missing file gives
// DefaultSettings. A file that is not valid JSON gives defaults plus
// whatever SkipVersionCheck value can be recovered from the raw text,
// together with an error wrapping ErrMalformedSettings; callers may log
// it and carry on with the returned value.
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes the flat settings map. Values may be strings,
// numbers or booleans; keys match case-insensitively.
func ParseSettings(data []byte) (*Settings, error) {
	settings := DefaultSettings()
	data = bytes.TrimSpace(trimBOM(data))
	if len(data) == 0 {
		return settings, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		settings.SkipVersionCheck = skipVersionCheckPattern.Match(data)
		return settings, fmt.Errorf("%w: %v", ErrMalformedSettings, err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		values[k] = rawString(v)
	}

	for k, v := range values {
		switch canonicalKey(k) {
		case KeyLanguage:
			if strings.TrimSpace(v) != "" {
				settings.Language = locale.Parse(v)
			}
		case KeyMediaPath:
			settings.MediaPath = strings.TrimSpace(v)
		case KeyEnableDebugLog:
			settings.EnableDebugLog = parseBool(v)
		case KeySkipVersionCheck:
			settings.SkipVersionCheck = parseBool(v)
		case KeyFullscreen:
			if strings.TrimSpace(v) != "" {
				settings.Fullscreen = parseBool(v)
			}
		default:
			if settings.Extra == nil {
				settings.Extra = make(map[string]string)
			}
			settings.Extra[k] = v
		}
	}
	return settings, nil
}

// SaveSettings writes the settings to the install directory atomically
func SaveSettings(settings *Settings) error {
	path, err := GetSettingsPath()
	if err != nil {
		return err
	}
	return SaveSettingsTo(path, settings)
}

// SaveSettingsTo writes the settings to path atomically
func SaveSettingsTo(path string, settings *Settings) error {
	return AtomicWriteJSON(path, settings.toMap())
}

func (s *Settings) toMap() map[string]string {
	out := make(map[string]string, len(knownKeys)+len(s.Extra))
	for k, v := range s.Extra {
		out[k] = v
	}
	lang := s.Language
	if lang == "" {
		lang = locale.Default
	}
	out[KeyLanguage] = string(lang)
	out[KeyMediaPath] = s.MediaPath
	out[KeyEnableDebugLog] = boolString(s.EnableDebugLog, "1", "0")
	out[KeySkipVersionCheck] = boolString(s.SkipVersionCheck, "true", "false")
	out[KeyFullscreen] = boolString(s.Fullscreen, "true", "false")
	return out
}

// MediaRoot returns the directory holding Covers/ and Videos/: MediaPath
// when it names an existing directory, otherwise <baseDir>/Media.
func (s *Settings) MediaRoot(baseDir string) string {
	if s.MediaPath != "" {
		if info, err := os.Stat(s.MediaPath); err == nil && info.IsDir() {
			return s.MediaPath
		}
	}
	return filepath.Join(baseDir, catalog.MediaDirName)
}

func canonicalKey(k string) string {
	for _, known := range knownKeys {
		if strings.EqualFold(k, known) {
			return known
		}
	}
	return k
}

func rawString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	if bytes.Equal(v, []byte("null")) {
		return ""
	}
	return string(v)
}

func parseBool(v string) bool {
	v = strings.TrimSpace(v)
	return v == "1" || strings.EqualFold(v, "true")
}

func boolString(b bool, t, f string) string {
	if b {
		return t
	}
	return f
}
