package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// favoritesDoc is the on-disk shape of favorites.json
type favoritesDoc struct {
	Favorites []string `json:"favorites"`
}

// FavoritesFile stores favorite game ids as {"favorites": [...]}.
type FavoritesFile struct {
	Path string
}

// NewFavoritesFile returns the store for favorites.json in the install
// directory.
func NewFavoritesFile() (*FavoritesFile, error) {
	path, err := GetFavoritesPath()
	if err != nil {
		return nil, err
	}
	return &FavoritesFile{Path: path}, nil
}

// FavoritesIn returns the store for favorites.json under dir
func FavoritesIn(dir string) *FavoritesFile {
	return &FavoritesFile{Path: filepath.Join(dir, favoritesFile)}
}

// Load returns the saved ids in file order. A missing file is an empty
// list. Blank and repeated ids are dropped.
func (f *FavoritesFile) Load() ([]string, error) {
	var doc favoritesDoc
	if err := ReadJSON(f.Path, &doc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	seen := make(map[string]bool, len(doc.Favorites))
	ids := make([]string, 0, len(doc.Favorites))
	for _, id := range doc.Favorites {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// Save replaces the file with ids
func (f *FavoritesFile) Save(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return AtomicWriteJSON(f.Path, favoritesDoc{Favorites: ids})
}
