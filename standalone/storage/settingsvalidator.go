package storage

import (
	"fmt"
	"os"

	"github.com/user-none/bigbox/locale"
)

// ValidateSettings checks settings fields and returns human-readable
// error descriptions. An empty slice means the settings are valid.
func ValidateSettings(settings *Settings) []string {
	var errors []string

	// Language
	if settings.Language != locale.Chinese && settings.Language != locale.English {
		errors = append(errors, fmt.Sprintf("Language: %q (valid: %q, %q)", settings.Language, locale.Chinese, locale.English))
	}

	// MediaPath
	if settings.MediaPath != "" {
		info, err := os.Stat(settings.MediaPath)
		if err != nil || !info.IsDir() {
			errors = append(errors, fmt.Sprintf("MediaPath: %q (valid: empty or an existing directory)", settings.MediaPath))
		}
	}

	return errors
}

// CorrectSettings resets invalid fields to their defaults. Valid fields
// and unknown keys are preserved.
func CorrectSettings(settings *Settings) *Settings {
	defaults := DefaultSettings()

	if settings.Language != locale.Chinese && settings.Language != locale.English {
		settings.Language = defaults.Language
	}

	if settings.MediaPath != "" {
		info, err := os.Stat(settings.MediaPath)
		if err != nil || !info.IsDir() {
			settings.MediaPath = defaults.MediaPath
		}
	}

	return settings
}
