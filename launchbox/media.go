package launchbox

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/user-none/bigbox/media"
)

// LaunchBox names media "{Title}-01.ext", "{Title}-02.ext", ...
var numberSuffix = regexp.MustCompile(`^(.*?)-(\d{2})$`)

// MediaTitle strips the extension and a trailing "-NN" index from a
// LaunchBox media file name.
func MediaTitle(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if m := numberSuffix.FindStringSubmatch(base); m != nil {
		base = m[1]
	}
	return strings.TrimSpace(base)
}

// ImportOptions controls ImportMedia
type ImportOptions struct {
	SourceDir string
	DestDir   string
	// Extensions lists accepted source extensions, e.g. media.VideoExtensions
	Extensions []string
	// Move renames files instead of copying them
	Move bool
	// Overwrite replaces existing destination files
	Overwrite bool
	DryRun    bool
	Logger    *zap.Logger
}

// ImportStats counts the outcome of ImportMedia
type ImportStats struct {
	Imported  int
	NoMedia   int
	NoProfile int
	Exists    int
}

// ImportMedia places LaunchBox media under DestDir as {profileId}.{ext}.
// A game is matched to its media by title and to its profile id through
// profileIDs, keyed by launch script name. The "-01" file is preferred
// when a title has several.
func ImportMedia(games []Game, profileIDs map[string]string, opts ImportOptions) (ImportStats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var stats ImportStats

	byTitle, err := scanMedia(opts.SourceDir, opts.Extensions)
	if err != nil {
		return stats, err
	}
	if !opts.DryRun {
		if err := os.MkdirAll(opts.DestDir, 0755); err != nil {
			return stats, fmt.Errorf("failed to create %s: %w", opts.DestDir, err)
		}
	}

	for _, g := range games {
		candidates := byTitle[MediaTitle(g.Title)]
		if len(candidates) == 0 {
			stats.NoMedia++
			continue
		}
		id, ok := profileIDs[g.ScriptName()]
		if !ok {
			stats.NoProfile++
			continue
		}

		src := pickFirstIndexed(candidates)
		dest := filepath.Join(opts.DestDir, id+strings.ToLower(filepath.Ext(src)))
		if _, err := os.Stat(dest); err == nil && !opts.Overwrite {
			stats.Exists++
			continue
		}
		if opts.DryRun {
			logger.Info("Would import", zap.String("from", src), zap.String("to", dest))
			stats.Imported++
			continue
		}
		if err := place(src, dest, opts.Move); err != nil {
			logger.Warn("Failed to import media", zap.String("from", src), zap.Error(err))
			continue
		}
		logger.Debug("Imported media", zap.String("from", src), zap.String("to", dest))
		stats.Imported++
	}
	return stats, nil
}

func scanMedia(dir string, exts []string) (map[string][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	accept := make(map[string]bool, len(exts))
	for _, e := range exts {
		accept["."+strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}

	out := make(map[string][]string)
	for _, e := range entries {
		if e.IsDir() || !accept[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		title := MediaTitle(e.Name())
		out[title] = append(out[title], filepath.Join(dir, e.Name()))
	}
	for _, paths := range out {
		sort.Strings(paths)
	}
	return out, nil
}

func pickFirstIndexed(paths []string) string {
	for _, p := range paths {
		base := filepath.Base(p)
		if strings.HasSuffix(strings.TrimSuffix(base, filepath.Ext(base)), "-01") {
			return p
		}
	}
	return paths[0]
}

func place(src, dest string, move bool) error {
	if move {
		if err := os.Rename(src, dest); err == nil {
			return nil
		}
		// Cross-device: fall back to copy then remove
	}
	if err := copyFile(src, dest); err != nil {
		return err
	}
	if move {
		return os.Remove(src)
	}
	return nil
}

func copyFile(src, dest string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, dest)
}

// VideoExtensions and CoverExtensions for ImportOptions
var (
	VideoExtensions = media.VideoExtensions
	CoverExtensions = media.CoverExtensions
)

// ErrNoGames is returned when the XML holds no games
var ErrNoGames = errors.New("no games in LaunchBox export")
