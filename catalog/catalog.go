// Package catalog resolves the on-disk game sources into an ordered,
// categorized catalog and keeps favorites in sync with it.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/user-none/bigbox/locale"
)

var (
	// ErrEmptyCatalog is returned by Build when no identities were found.
	// The returned Catalog is still usable and holds only Favorites.
	ErrEmptyCatalog = errors.New("catalog is empty")
	// ErrNoSourceDirs accompanies ErrEmptyCatalog when neither the profile
	// directory nor the script directory exists.
	ErrNoSourceDirs = errors.New("no profile or script directory")
	// ErrUnknownEntry is returned by the favorites API for entries that do
	// not belong to the catalog.
	ErrUnknownEntry = errors.New("entry not in catalog")
)

// FavoritesKey is the category key reserved for the Favorites category
const FavoritesKey = "\x00favorites"

// GameEntry is one launchable game
type GameEntry struct {
	ID          string
	Title       string
	Description string
	// DisplayName is the profile or script filename, used as a title
	// fallback and as the secondary media lookup key.
	DisplayName string
	// Genre is the classified category label
	Genre string

	CoverPath string
	VideoPath string

	LaunchExecutable string
	LaunchArguments  string
	WorkingDir       string

	IsFavorite bool
}

// Launchable reports whether the entry has a launch command
func (e *GameEntry) Launchable() bool {
	return e != nil && e.LaunchExecutable != ""
}

// Category is an ordered bucket of entries. Entries are held as indexes
// into the owning catalog's entry store, so an entry appearing in both
// its genre category and Favorites is the same *GameEntry.
type Category struct {
	Key   string
	Label string
	// Name is Label plus the live entry count
	Name string

	owner   *Catalog
	indexes []int
}

// IsFavorites reports whether c is the synthetic Favorites category
func (c *Category) IsFavorites() bool {
	return c.Key == FavoritesKey
}

// Len returns the number of entries in the category
func (c *Category) Len() int {
	if c == nil {
		return 0
	}
	return len(c.indexes)
}

// At returns the entry at position i, or nil when out of range
func (c *Category) At(i int) *GameEntry {
	if c == nil || i < 0 || i >= len(c.indexes) {
		return nil
	}
	return c.owner.entries[c.indexes[i]]
}

// Entries returns the category's entries in order
func (c *Category) Entries() []*GameEntry {
	out := make([]*GameEntry, len(c.indexes))
	for i, idx := range c.indexes {
		out[i] = c.owner.entries[idx]
	}
	return out
}

// IndexOf returns the position of e within c, or -1
func (c *Category) IndexOf(e *GameEntry) int {
	for i, idx := range c.indexes {
		if c.owner.entries[idx] == e {
			return i
		}
	}
	return -1
}

func (c *Category) refreshName() {
	c.Name = fmt.Sprintf("%s (%d)", c.Label, len(c.indexes))
}

// Catalog is the resolved game list. Categories()[0] is always Favorites.
type Catalog struct {
	lang       locale.Lang
	entries    []*GameEntry
	byID       map[string]int
	categories []*Category
	favorites  FavoritesStore
}

// newCatalog returns a catalog holding only an empty Favorites category
func newCatalog(lang locale.Lang, store FavoritesStore) *Catalog {
	c := &Catalog{
		lang:      lang,
		byID:      make(map[string]int),
		favorites: store,
	}
	fav := &Category{
		Key:   FavoritesKey,
		Label: locale.Get(lang, locale.CategoryFavorites),
		owner: c,
	}
	fav.refreshName()
	c.categories = []*Category{fav}
	return c
}

// add stores e in the entry store and appends it to the category for
// e.Genre, creating the category on first sight. Duplicate ids are
// rejected.
func (c *Catalog) add(e *GameEntry) bool {
	key := FoldID(e.ID)
	if _, dup := c.byID[key]; dup {
		return false
	}
	idx := len(c.entries)
	c.entries = append(c.entries, e)
	c.byID[key] = idx

	catKey := categoryKey(e.Genre)
	cat := c.categoryByKey(catKey)
	if cat == nil {
		cat = &Category{Key: catKey, Label: e.Genre, owner: c}
		c.categories = append(c.categories, cat)
	}
	cat.indexes = append(cat.indexes, idx)
	return true
}

// FoldID is the form ids are compared in. Profile filenames, script
// markers, metadata filenames, overlay keys and stored favorites all
// match regardless of case.
func FoldID(id string) string {
	return cases.Fold().String(strings.TrimSpace(id))
}

// categoryKey groups labels case-insensitively; the first label seen
// becomes the display label.
func categoryKey(label string) string {
	return cases.Fold().String(label)
}

func (c *Catalog) categoryByKey(key string) *Category {
	for _, cat := range c.categories {
		if cat.Key == key {
			return cat
		}
	}
	return nil
}

// Language returns the language the catalog was built for
func (c *Catalog) Language() locale.Lang {
	return c.lang
}

// Categories returns the categories in display order
func (c *Catalog) Categories() []*Category {
	return c.categories
}

// Category returns the category at index i, or nil
func (c *Catalog) Category(i int) *Category {
	if i < 0 || i >= len(c.categories) {
		return nil
	}
	return c.categories[i]
}

// CategoryCount returns the number of categories including Favorites
func (c *Catalog) CategoryCount() int {
	return len(c.categories)
}

// Favorites returns the Favorites category
func (c *Catalog) Favorites() *Category {
	return c.categories[0]
}

// Entry returns the entry with the given id, ignoring case, or nil
func (c *Catalog) Entry(id string) *GameEntry {
	idx, ok := c.byID[FoldID(id)]
	if !ok {
		return nil
	}
	return c.entries[idx]
}

// Entries returns every entry in store order
func (c *Catalog) Entries() []*GameEntry {
	out := make([]*GameEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// TotalGameCount is the sum of all non-Favorites category sizes
func (c *Catalog) TotalGameCount() int {
	n := 0
	for _, cat := range c.categories {
		if !cat.IsFavorites() {
			n += len(cat.indexes)
		}
	}
	return n
}

// Empty reports whether the catalog has no games
func (c *Catalog) Empty() bool {
	return len(c.entries) == 0
}

// FavoriteIDs returns the ids in the Favorites category in order
func (c *Catalog) FavoriteIDs() []string {
	fav := c.Favorites()
	ids := make([]string, len(fav.indexes))
	for i, idx := range fav.indexes {
		ids[i] = c.entries[idx].ID
	}
	return ids
}

// SetFavorite sets the favorite flag of e, updates the Favorites category
// and persists the new set. The in-memory state is updated even if saving
// fails; the save error is returned.
func (c *Catalog) SetFavorite(e *GameEntry, favorite bool) error {
	idx, ok := c.indexOf(e)
	if !ok {
		return ErrUnknownEntry
	}
	if c.entries[idx].IsFavorite == favorite {
		return nil
	}
	c.entries[idx].IsFavorite = favorite
	c.syncFavorites()

	if c.favorites == nil {
		return nil
	}
	if err := c.favorites.Save(c.FavoriteIDs()); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

// AdoptFavorites makes the favorite set exactly the entries named by ids,
// ignoring unknown ids. Nothing is saved.
func (c *Catalog) AdoptFavorites(ids []string) {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[FoldID(id)] = true
	}
	for _, e := range c.entries {
		e.IsFavorite = keep[FoldID(e.ID)]
	}
	c.syncFavorites()
}

// ToggleFavorite flips the favorite flag of e and returns the new value
func (c *Catalog) ToggleFavorite(e *GameEntry) (bool, error) {
	if _, ok := c.indexOf(e); !ok {
		return false, ErrUnknownEntry
	}
	next := !e.IsFavorite
	return next, c.SetFavorite(e, next)
}

func (c *Catalog) indexOf(e *GameEntry) (int, bool) {
	if e == nil {
		return 0, false
	}
	idx, ok := c.byID[FoldID(e.ID)]
	if !ok || c.entries[idx] != e {
		return 0, false
	}
	return idx, true
}

// syncFavorites rebuilds the Favorites index list from the flags, walking
// the genre categories in display order so membership is unique and the
// order matches a fresh build.
func (c *Catalog) syncFavorites() {
	fav := c.Favorites()
	fav.indexes = fav.indexes[:0]
	for _, cat := range c.categories[1:] {
		for _, idx := range cat.indexes {
			if c.entries[idx].IsFavorite {
				fav.indexes = append(fav.indexes, idx)
			}
		}
	}
	fav.refreshName()
}

func (c *Catalog) refreshNames() {
	for _, cat := range c.categories {
		cat.refreshName()
	}
}
