package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// BaseDirEnv overrides the install directory
const BaseDirEnv = "BIGBOX_BASE_DIR"

var baseDir string

// Init pins the install directory. An empty dir restores the default
// lookup (BaseDirEnv, then the executable's directory).
func Init(dir string) {
	baseDir = dir
}

const (
	settingsFile  = "BigBoxSettings.json"
	favoritesFile = "favorites.json"
	debugLogFile  = "BigBoxDebug.log"
)

// GetBaseDir returns the launcher's install directory. Every data file
// lives next to the executable, the way TeknoParrot itself is laid out.
func GetBaseDir() (string, error) {
	if baseDir != "" {
		return baseDir, nil
	}
	if dir := os.Getenv(BaseDirEnv); dir != "" {
		return filepath.Clean(dir), nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

func inBaseDir(name string) (string, error) {
	dir, err := GetBaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// GetSettingsPath returns the full path to BigBoxSettings.json
func GetSettingsPath() (string, error) {
	return inBaseDir(settingsFile)
}

// GetFavoritesPath returns the full path to favorites.json
func GetFavoritesPath() (string, error) {
	return inBaseDir(favoritesFile)
}

// GetDebugLogPath returns the full path to BigBoxDebug.log
func GetDebugLogPath() (string, error) {
	return inBaseDir(debugLogFile)
}

// AtomicWriteJSON writes data to a JSON file atomically.
// It writes to a temporary file first, then renames to the target path.
func AtomicWriteJSON(path string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// ReadJSON reads and unmarshals a JSON file. A leading UTF-8 BOM, which
// Windows editors like to add, is ignored.
func ReadJSON(path string, data interface{}) error {
	jsonData, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	jsonData = trimBOM(jsonData)

	if err := json.Unmarshal(jsonData, data); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
