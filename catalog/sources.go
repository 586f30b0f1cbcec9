package catalog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// ProfileMarker introduces the profile file name on a launch script's
// first line.
const ProfileMarker = "--profile="

// Identity is one discovered game id
type Identity struct {
	ID string
	// DisplayName is the identity or script filename without extension
	DisplayName string
	// ScriptPath is set for identities discovered from launch scripts
	ScriptPath string
	// FromMarker is set when ID came from the script's profile marker
	FromMarker bool
}

// Metadata is one Metadata/{id}.json record
type Metadata struct {
	GameName    string     `json:"game_name"`
	GameGenre   string     `json:"game_genre"`
	IconName    string     `json:"icon_name"`
	Platform    string     `json:"platform"`
	ReleaseYear LooseString `json:"release_year"`
}

// Overlay is one curated description record from the LaunchBox overlay
type Overlay struct {
	ProfileID   string `json:"profile_id"`
	BatName     string `json:"bat_name,omitempty"`
	Title       string `json:"title,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Developer   string `json:"developer,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
}

// LooseString accepts JSON strings and numbers. Metadata files written by
// different tools disagree on whether release_year is quoted.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = LooseString(str)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("release_year: unexpected value %s", data)
	}
	*s = LooseString(data)
	return nil
}

// DiscoverProfiles lists the identity files (*.xml) in dir. Each file
// name without extension is an id. Order is the directory listing order.
func DiscoverProfiles(dir string) ([]Identity, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var ids []Identity
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			continue
		}
		id := strings.TrimSpace(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		if id == "" {
			continue
		}
		ids = append(ids, Identity{ID: id, DisplayName: id})
	}
	return ids, nil
}

// DiscoverScripts lists launch scripts (*.bat, *.cmd) in dir. The id is
// taken from the profile marker on the script's first line, falling back
// to the script's own name. Unreadable scripts are skipped.
func DiscoverScripts(dir string, logger *zap.Logger) ([]Identity, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var ids []Identity
	for _, e := range entries {
		if e.IsDir() || !isScript(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		line, err := readFirstLine(path)
		if err != nil {
			logger.Debug("Skipping unreadable script", zap.String("path", path), zap.Error(err))
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		id, ok := ParseProfileMarker(line)
		if !ok {
			id = name
		}
		ids = append(ids, Identity{ID: id, DisplayName: name, ScriptPath: path, FromMarker: ok})
	}
	return ids, nil
}

func isScript(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".bat" || ext == ".cmd"
}

// ParseProfileMarker extracts the profile id from a script line such as
// `TeknoParrotUi.exe --profile=abc.xml`. Matching is case-insensitive.
func ParseProfileMarker(line string) (string, bool) {
	lower := strings.ToLower(line)
	i := strings.Index(lower, ProfileMarker)
	if i < 0 {
		return "", false
	}
	start := i + len(ProfileMarker)
	end := strings.Index(lower[start:], ".xml")
	if end <= 0 {
		return "", false
	}
	id := strings.Trim(line[start:start+end], ` "'`)
	if id == "" {
		return "", false
	}
	return id, true
}

func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("empty script")
	}
	// Strip a UTF-8 BOM left by Windows editors
	return strings.TrimPrefix(sc.Text(), "\ufeff"), nil
}

// LoadMetadata reads the Metadata/{id}.json record of every id, using up
// to workers goroutines. Filenames are matched to ids ignoring case.
// Missing or malformed records are absent from the result, which is
// keyed by the ids as given.
func LoadMetadata(dir string, ids []string, workers int, logger *zap.Logger) map[string]*Metadata {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make(map[string]*Metadata, len(ids))
	if len(ids) == 0 {
		return out
	}
	files, err := metadataFiles(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Debug("Metadata directory unreadable", zap.String("dir", dir), zap.Error(err))
		}
		return out
	}
	if workers < 1 {
		workers = 1
	}

	// Each goroutine owns one slot, so no lock is needed
	results := make([]*Metadata, len(ids))
	p := pool.New().WithMaxGoroutines(workers)
	for i, id := range ids {
		path, ok := files[FoldID(id)]
		if !ok {
			continue
		}
		p.Go(func() {
			meta, err := readMetadata(path)
			if err != nil {
				logger.Debug("Skipping metadata record", zap.String("path", path), zap.Error(err))
				return
			}
			results[i] = meta
		})
	}
	p.Wait()

	for i, meta := range results {
		if meta != nil {
			out[ids[i]] = meta
		}
	}
	return out
}

// metadataFiles maps the folded basename of every .json file in dir to
// its path. Entries are read in name order and the first of a case
// collision wins.
func metadataFiles(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make(map[string]string, len(entries))
	for _, e := range entries {
		name := e.Name()
		ext := filepath.Ext(name)
		if e.IsDir() || !strings.EqualFold(ext, ".json") {
			continue
		}
		key := FoldID(strings.TrimSuffix(name, ext))
		if _, ok := files[key]; !ok {
			files[key] = filepath.Join(dir, name)
		}
	}
	return files, nil
}

func readMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &meta, nil
}

// LoadOverlay reads the description overlay file, keyed by id. A missing
// or malformed file yields an empty map; a malformed record is skipped.
func LoadOverlay(path string, logger *zap.Logger) map[string]*Overlay {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make(map[string]*Overlay)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Debug("Overlay unreadable", zap.String("path", path), zap.Error(err))
		}
		return out
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Debug("Overlay malformed", zap.String("path", path), zap.Error(err))
		return out
	}
	for id, msg := range raw {
		var rec Overlay
		if err := json.Unmarshal(msg, &rec); err != nil {
			logger.Debug("Skipping overlay record", zap.String("id", id), zap.Error(err))
			continue
		}
		out[id] = &rec
	}
	return out
}
