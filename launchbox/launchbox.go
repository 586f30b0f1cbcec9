// Package launchbox imports a LaunchBox platform export: curated
// descriptions into the overlay file, and preview videos and box art into
// the media directories.
package launchbox

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/user-none/bigbox/catalog"
)

// Game is one <Game> element of a LaunchBox platform XML
type Game struct {
	Title           string `xml:"Title"`
	ApplicationPath string `xml:"ApplicationPath"`
	Notes           string `xml:"Notes"`
	Genre           string `xml:"Genre"`
	Developer       string `xml:"Developer"`
	Publisher       string `xml:"Publisher"`
	ReleaseDate     string `xml:"ReleaseDate"`
}

// ScriptName is the application path's file name without extension,
// which matches a local launch script.
func (g Game) ScriptName() string {
	p := strings.ReplaceAll(strings.TrimSpace(g.ApplicationPath), `\`, "/")
	base := filepath.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type document struct {
	XMLName xml.Name `xml:"LaunchBox"`
	Games   []Game   `xml:"Game"`
}

// ParseFile reads a LaunchBox platform XML
func ParseFile(path string) ([]Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var doc document
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	for i := range doc.Games {
		g := &doc.Games[i]
		g.Title = strings.TrimSpace(g.Title)
		g.ApplicationPath = strings.TrimSpace(g.ApplicationPath)
		g.Genre = strings.TrimSpace(g.Genre)
		g.Developer = strings.TrimSpace(g.Developer)
		g.Publisher = strings.TrimSpace(g.Publisher)
		g.ReleaseDate = strings.TrimSpace(g.ReleaseDate)
	}
	return doc.Games, nil
}

// OverlayStats counts what BuildOverlay skipped
type OverlayStats struct {
	Written   int
	NoMatch   int
	NoProfile int
}

// BuildOverlay pairs each launch script in scriptsDir with the LaunchBox
// game of the same script name and keys the record by the profile id
// found on the script's first line.
func BuildOverlay(games []Game, scriptsDir string, logger *zap.Logger) (map[string]*catalog.Overlay, OverlayStats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var stats OverlayStats

	byScript := make(map[string]Game, len(games))
	for _, g := range games {
		if name := g.ScriptName(); name != "" {
			byScript[name] = g
		}
	}

	scripts, err := catalog.DiscoverScripts(scriptsDir, logger)
	if err != nil {
		return nil, stats, err
	}
	sort.Slice(scripts, func(i, j int) bool { return scripts[i].DisplayName < scripts[j].DisplayName })

	out := make(map[string]*catalog.Overlay)
	for _, s := range scripts {
		g, ok := byScript[s.DisplayName]
		if !ok {
			stats.NoMatch++
			continue
		}
		if !s.FromMarker {
			stats.NoProfile++
			logger.Debug("Script has no profile marker", zap.String("script", s.ScriptPath))
			continue
		}
		out[s.ID] = &catalog.Overlay{
			ProfileID:   s.ID,
			BatName:     s.DisplayName,
			Title:       g.Title,
			Notes:       g.Notes,
			Genre:       g.Genre,
			Developer:   g.Developer,
			Publisher:   g.Publisher,
			ReleaseDate: g.ReleaseDate,
		}
		stats.Written++
	}
	return out, stats, nil
}

// ProfileIDs maps script names to profile ids for every script in
// scriptsDir that carries a marker.
func ProfileIDs(scriptsDir string, logger *zap.Logger) (map[string]string, error) {
	scripts, err := catalog.DiscoverScripts(scriptsDir, logger)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(scripts))
	for _, s := range scripts {
		if !s.FromMarker {
			continue
		}
		out[s.DisplayName] = s.ID
	}
	return out, nil
}
