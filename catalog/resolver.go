package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/user-none/bigbox/genre"
	"github.com/user-none/bigbox/locale"
	"github.com/user-none/bigbox/media"
)

// Install-relative names
const (
	ProfilesDirName = "UserProfiles"
	ScriptsDirName  = "bat"
	MetadataDirName = "Metadata"
	IconsDirName    = "Icons"
	MediaDirName    = "Media"
	OverlayFileName = "launchbox_descriptions.json"
	ParrotExeName   = "TeknoParrotUi.exe"
)

// descriptionSeparator joins the composed description parts
const descriptionSeparator = "  /  "

// FavoritesStore persists the set of favorite ids
type FavoritesStore interface {
	Load() ([]string, error)
	Save(ids []string) error
}

// Dirs holds every on-disk location Build reads
type Dirs struct {
	Base      string
	Profiles  string
	Scripts   string
	Metadata  string
	Overlay   string
	ParrotExe string
	Media     media.Dirs
}

// DefaultDirs returns the standard layout under base. A non-empty
// mediaRoot replaces base/Media as the root holding Covers and Videos.
func DefaultDirs(base, mediaRoot string) Dirs {
	if strings.TrimSpace(mediaRoot) == "" {
		mediaRoot = filepath.Join(base, MediaDirName)
	}
	return Dirs{
		Base:      base,
		Profiles:  filepath.Join(base, ProfilesDirName),
		Scripts:   filepath.Join(base, ScriptsDirName),
		Metadata:  filepath.Join(base, MetadataDirName),
		Overlay:   filepath.Join(base, OverlayFileName),
		ParrotExe: filepath.Join(base, ParrotExeName),
		Media:     media.NewDirs(mediaRoot, filepath.Join(base, IconsDirName)),
	}
}

// Options configures one Build
type Options struct {
	Dirs      Dirs
	Language  locale.Lang
	Favorites FavoritesStore
	Logger    *zap.Logger
	// Workers bounds concurrent metadata reads; 0 means GOMAXPROCS
	Workers int
}

// Build resolves the on-disk sources into a Catalog. Individual bad
// records are skipped. When no identity is found at all the returned
// catalog holds only Favorites and the error wraps ErrEmptyCatalog.
func Build(opts Options) (*Catalog, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	lang := opts.Language
	if lang == "" {
		lang = locale.Default
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	dirs := opts.Dirs

	identities, err := discover(dirs, logger)
	cat := newCatalog(lang, opts.Favorites)
	if err != nil {
		return cat, err
	}

	ids := make([]string, len(identities))
	for i, ident := range identities {
		ids[i] = ident.ID
	}
	metadata := LoadMetadata(dirs.Metadata, ids, workers, logger)
	overlay := foldOverlay(LoadOverlay(dirs.Overlay, logger))

	for _, ident := range identities {
		entry := resolveEntry(ident, metadata[ident.ID], overlay[FoldID(ident.ID)], dirs, lang)
		if !cat.add(entry) {
			logger.Debug("Skipping duplicate id", zap.String("id", ident.ID), zap.String("script", ident.ScriptPath))
		}
	}

	applyFavorites(cat, opts.Favorites, logger)
	cat.refreshNames()

	logger.Info("Catalog built",
		zap.Int("games", cat.TotalGameCount()),
		zap.Int("categories", cat.CategoryCount()-1),
		zap.Int("favorites", cat.Favorites().Len()),
		zap.String("language", string(lang)))

	if cat.Empty() {
		return cat, ErrEmptyCatalog
	}
	return cat, nil
}

// discover runs the profile strategy, then the script strategy only when
// the first found nothing. The two are never merged.
func discover(dirs Dirs, logger *zap.Logger) ([]Identity, error) {
	profiles, profErr := DiscoverProfiles(dirs.Profiles)
	if profErr != nil && !errors.Is(profErr, os.ErrNotExist) {
		logger.Debug("Profile directory unreadable", zap.String("dir", dirs.Profiles), zap.Error(profErr))
	}
	if len(profiles) > 0 {
		return profiles, nil
	}

	scripts, scriptErr := DiscoverScripts(dirs.Scripts, logger)
	if scriptErr != nil {
		if profErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrEmptyCatalog, ErrNoSourceDirs)
		}
		logger.Debug("Script directory unreadable", zap.String("dir", dirs.Scripts), zap.Error(scriptErr))
	}
	if len(scripts) == 0 {
		return nil, ErrEmptyCatalog
	}
	return scripts, nil
}

// foldOverlay rekeys the overlay by folded id. When two keys differ only
// in case the one sorting first wins.
func foldOverlay(overlay map[string]*Overlay) map[string]*Overlay {
	keys := make([]string, 0, len(overlay))
	for k := range overlay {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]*Overlay, len(overlay))
	for _, k := range keys {
		fk := FoldID(k)
		if _, ok := out[fk]; !ok {
			out[fk] = overlay[k]
		}
	}
	return out
}

func resolveEntry(ident Identity, meta *Metadata, ov *Overlay, dirs Dirs, lang locale.Lang) *GameEntry {
	e := &GameEntry{
		ID:          ident.ID,
		DisplayName: ident.DisplayName,
		Title:       resolveTitle(ident, meta, ov),
		Description: resolveDescription(meta, ov, lang),
		Genre:       genre.Classify(rawGenre(meta, ov), lang),
		VideoPath:   dirs.Media.Video(ident.ID, ident.DisplayName),
	}

	iconName := ""
	if meta != nil {
		iconName = meta.IconName
	}
	e.CoverPath = dirs.Media.Cover(ident.ID, ident.DisplayName, iconName)

	if ident.ScriptPath != "" {
		e.LaunchExecutable = ident.ScriptPath
		e.WorkingDir = filepath.Dir(ident.ScriptPath)
	} else {
		e.LaunchExecutable = dirs.ParrotExe
		e.LaunchArguments = ProfileMarker + ident.ID + ".xml"
		e.WorkingDir = dirs.Base
	}
	return e
}

func resolveTitle(ident Identity, meta *Metadata, ov *Overlay) string {
	if ov != nil {
		if t := strings.TrimSpace(ov.Title); t != "" {
			return norm.NFC.String(t)
		}
	}
	if meta != nil {
		if t := SanitizeName(meta.GameName); t != "" {
			return norm.NFC.String(t)
		}
	}
	return ident.DisplayName
}

// SanitizeName turns control characters into spaces and trims the result
func SanitizeName(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s))
}

func resolveDescription(meta *Metadata, ov *Overlay, lang locale.Lang) string {
	if ov != nil {
		if notes := strings.TrimSpace(ov.Notes); notes != "" {
			return notes
		}
	}
	if d := ComposeDescription(meta, lang); d != "" {
		return d
	}
	if ov == nil {
		return ""
	}
	return joinParts(lang, []part{
		{locale.DescDeveloper, ov.Developer},
		{locale.DescPublisher, ov.Publisher},
		{locale.DescReleased, ov.ReleaseDate},
	})
}

// ComposeDescription builds "genre / platform / year" from metadata, with
// localized prefixes. It returns "" when meta is nil or has none of them.
func ComposeDescription(meta *Metadata, lang locale.Lang) string {
	if meta == nil {
		return ""
	}
	return joinParts(lang, []part{
		{locale.DescGenre, meta.GameGenre},
		{locale.DescPlatform, meta.Platform},
		{locale.DescYear, string(meta.ReleaseYear)},
	})
}

type part struct {
	prefixKey string
	value     string
}

func joinParts(lang locale.Lang, parts []part) string {
	var out []string
	for _, p := range parts {
		if v := strings.TrimSpace(p.value); v != "" {
			out = append(out, locale.Get(lang, p.prefixKey)+v)
		}
	}
	return strings.Join(out, descriptionSeparator)
}

func rawGenre(meta *Metadata, ov *Overlay) string {
	if meta != nil {
		if g := strings.TrimSpace(meta.GameGenre); g != "" {
			return g
		}
	}
	if ov != nil {
		return strings.TrimSpace(ov.Genre)
	}
	return ""
}

// applyFavorites marks every stored id that resolved to an entry. Ids
// that no longer exist are dropped silently.
func applyFavorites(cat *Catalog, store FavoritesStore, logger *zap.Logger) {
	if store == nil {
		return
	}
	ids, err := store.Load()
	if err != nil {
		logger.Warn("Failed to load favorites", zap.Error(err))
		return
	}
	for _, id := range ids {
		if e := cat.Entry(id); e != nil {
			e.IsFavorite = true
		}
	}
	cat.syncFavorites()
}
