package standalone

// AppState represents the current state of the application
type AppState int

const (
	// StateCatalog is the cover and preview screen
	StateCatalog AppState = iota
	// StateSettings edits BigBoxSettings.json
	StateSettings
	// StateError reports invalid settings found at startup
	StateError
)

// String returns the string representation of the state
func (s AppState) String() string {
	switch s {
	case StateCatalog:
		return "Catalog"
	case StateSettings:
		return "Settings"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}
