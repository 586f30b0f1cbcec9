// Package media locates cover images and preview videos for catalog
// entries by trying a fixed list of candidate filenames.
package media

import (
	"os"
	"path/filepath"
	"strings"
)

// Directory names under the media root
const (
	CoversDir = "Covers"
	VideosDir = "Videos"
)

// DefaultVideo is played when no per-game preview exists
const DefaultVideo = "TeknoParrot.mp4"

// CoverExtensions are tried in order for each base name
var CoverExtensions = []string{".png", ".jpg"}

// VideoExtensions are tried in order for each base name
var VideoExtensions = []string{".mp4", ".m4v", ".mov", ".avi", ".mkv", ".wmv"}

// Dirs holds the asset directories used for lookups
type Dirs struct {
	Covers string
	Videos string
	Icons  string
}

// NewDirs returns the asset directories for a media root and icon
// directory.
func NewDirs(mediaRoot, iconsDir string) Dirs {
	return Dirs{
		Covers: filepath.Join(mediaRoot, CoversDir),
		Videos: filepath.Join(mediaRoot, VideosDir),
		Icons:  iconsDir,
	}
}

// Cover is ResolveCover using d
func (d Dirs) Cover(id, fallbackName, iconFile string) string {
	return ResolveCover(d.Covers, d.Icons, id, fallbackName, iconFile)
}

// Video is ResolveVideo using d
func (d Dirs) Video(id, fallbackName string) string {
	return ResolveVideo(d.Videos, id, fallbackName)
}

// ResolveCover returns the first existing cover for an entry, or "" if none.
// Lookup order: {id}.png, {id}.jpg, {fallbackName}.png, {fallbackName}.jpg
// in coversDir, then iconFile in iconsDir.
func ResolveCover(coversDir, iconsDir, id, fallbackName, iconFile string) string {
	if isDir(coversDir) {
		for _, base := range []string{id, fallbackName} {
			if p := firstExisting(coversDir, base, CoverExtensions); p != "" {
				return p
			}
		}
	}

	iconFile = strings.TrimSpace(iconFile)
	if iconFile == "" || !isDir(iconsDir) {
		return ""
	}
	// Icon names come from metadata files; refuse anything that escapes the
	// icons directory.
	if filepath.Base(iconFile) != iconFile {
		return ""
	}
	p := filepath.Join(iconsDir, iconFile)
	if isFile(p) {
		return p
	}
	return ""
}

// ResolveVideo returns the preview video for an entry, or "" if none.
// For each extension the id is tried before fallbackName; when nothing
// matches, DefaultVideo in videosDir is used if present.
func ResolveVideo(videosDir, id, fallbackName string) string {
	if !isDir(videosDir) {
		return ""
	}
	for _, ext := range VideoExtensions {
		for _, base := range []string{id, fallbackName} {
			if p := candidate(videosDir, base, ext); p != "" {
				return p
			}
		}
	}
	p := filepath.Join(videosDir, DefaultVideo)
	if isFile(p) {
		return p
	}
	return ""
}

func firstExisting(dir, base string, exts []string) string {
	for _, ext := range exts {
		if p := candidate(dir, base, ext); p != "" {
			return p
		}
	}
	return ""
}

func candidate(dir, base, ext string) string {
	base = strings.TrimSpace(base)
	if base == "" || strings.ContainsAny(base, `/\`) {
		return ""
	}
	p := filepath.Join(dir, base+ext)
	if isFile(p) {
		return p
	}
	return ""
}

// isDir and isFile treat every stat error as "not found"

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
