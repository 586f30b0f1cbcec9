// Package nav turns per-tick logical input snapshots into edge-triggered
// navigation commands over a catalog.
package nav

import (
	"time"

	"go.uber.org/zap"

	"github.com/user-none/bigbox/catalog"
	"github.com/user-none/bigbox/sched"
)

const (
	// RetryDelay is how long the navigator waits before retrying the
	// first-entry selection of a category whose list was not yet populated.
	RetryDelay = 50 * time.Millisecond
	// MaxRetries bounds the first-entry retries per category change
	MaxRetries = 1
)

// Snapshot is the flattened logical input state for one tick
type Snapshot struct {
	Up      bool
	Down    bool
	Left    bool
	Right   bool
	Confirm bool
	Cancel  bool
}

// Merge ORs snapshots together so any one source activates a button
func Merge(snaps ...Snapshot) Snapshot {
	var out Snapshot
	for _, s := range snaps {
		out.Up = out.Up || s.Up
		out.Down = out.Down || s.Down
		out.Left = out.Left || s.Left
		out.Right = out.Right || s.Right
		out.Confirm = out.Confirm || s.Confirm
		out.Cancel = out.Cancel || s.Cancel
	}
	return out
}

// rising returns the buttons that are pressed now but were not before
func (s Snapshot) rising(prev Snapshot) Snapshot {
	return Snapshot{
		Up:      s.Up && !prev.Up,
		Down:    s.Down && !prev.Down,
		Left:    s.Left && !prev.Left,
		Right:   s.Right && !prev.Right,
		Confirm: s.Confirm && !prev.Confirm,
		Cancel:  s.Cancel && !prev.Cancel,
	}
}

// CommandKind identifies a navigation command
type CommandKind int

const (
	MoveCategory CommandKind = iota
	MoveEntry
	Launch
	Exit
)

func (k CommandKind) String() string {
	switch k {
	case MoveCategory:
		return "move-category"
	case MoveEntry:
		return "move-entry"
	case Launch:
		return "launch"
	case Exit:
		return "exit"
	}
	return "unknown"
}

// Command is one navigation result
type Command struct {
	Kind CommandKind
	// Selection after the command was applied
	Selection Selection
	// NoSelection is set on Launch when nothing is selected
	NoSelection bool
}

// Selection is the current catalog position. Entry is -1 when the
// selected category has no selected entry.
type Selection struct {
	Category int
	Entry    int
	Game     *catalog.GameEntry
}

// Lister reports how many entries the view currently shows for a
// category. The shell's list widget may lag a category change by a frame;
// until it reports a non-zero count the first-entry selection is retried.
type Lister interface {
	EntryCount(category int) int
}

// Options configures a Navigator
type Options struct {
	Scheduler sched.Scheduler
	// Lister defaults to the catalog's own counts
	Lister Lister
	// OnSelect is called after every selection change, including changes
	// made by a deferred retry
	OnSelect func(Selection)
	Logger   *zap.Logger
}

// Navigator holds the catalog position and the previous input snapshot.
// It must only be used from one goroutine.
type Navigator struct {
	cat      *catalog.Catalog
	category int
	entry    int
	prev     Snapshot

	sched    sched.Scheduler
	lister   Lister
	onSelect func(Selection)
	logger   *zap.Logger

	retry      sched.Timer
	retriesRun int
}

// New creates a navigator positioned at the first category. A nil catalog
// is treated as empty.
func New(cat *catalog.Catalog, opts Options) *Navigator {
	n := &Navigator{
		sched:    opts.Scheduler,
		lister:   opts.Lister,
		onSelect: opts.OnSelect,
		logger:   opts.Logger,
		entry:    -1,
	}
	if n.logger == nil {
		n.logger = zap.NewNop()
	}
	n.SetCatalog(cat)
	return n
}

// SetCatalog swaps in a rebuilt catalog. The category index is kept when
// still in range, and the entry resets to the first one. The previous
// snapshot is kept so a held button does not fire again.
func (n *Navigator) SetCatalog(cat *catalog.Catalog) {
	n.cat = cat
	if n.category >= n.categoryCount() {
		n.category = 0
	}
	n.selectFirstEntry()
}

// Catalog returns the catalog being navigated
func (n *Navigator) Catalog() *catalog.Catalog {
	return n.cat
}

// Selection returns the current position
func (n *Navigator) Selection() Selection {
	return Selection{Category: n.category, Entry: n.entry, Game: n.Current()}
}

// Current returns the selected entry, or nil
func (n *Navigator) Current() *catalog.GameEntry {
	if n.cat == nil || n.entry < 0 {
		return nil
	}
	return n.cat.Category(n.category).At(n.entry)
}

// OnTick consumes the merged snapshot for this tick and returns the
// commands for every button that went from released to pressed.
func (n *Navigator) OnTick(now Snapshot) []Command {
	edge := now.rising(n.prev)
	n.prev = now

	var cmds []Command
	if edge.Up && n.moveCategory(-1) {
		cmds = append(cmds, Command{Kind: MoveCategory, Selection: n.Selection()})
	}
	if edge.Down && n.moveCategory(1) {
		cmds = append(cmds, Command{Kind: MoveCategory, Selection: n.Selection()})
	}
	if edge.Left && n.moveEntry(-1) {
		cmds = append(cmds, Command{Kind: MoveEntry, Selection: n.Selection()})
	}
	if edge.Right && n.moveEntry(1) {
		cmds = append(cmds, Command{Kind: MoveEntry, Selection: n.Selection()})
	}
	if edge.Confirm {
		sel := n.Selection()
		cmds = append(cmds, Command{Kind: Launch, Selection: sel, NoSelection: sel.Game == nil})
	}
	if edge.Cancel {
		cmds = append(cmds, Command{Kind: Exit, Selection: n.Selection()})
	}
	return cmds
}

// Wheel applies a mouse wheel step to the entry position. Negative dy
// (scrolling down) moves to the next entry. Clamped like keyboard input.
func (n *Navigator) Wheel(dy float64) bool {
	switch {
	case dy < 0:
		return n.moveEntry(1)
	case dy > 0:
		return n.moveEntry(-1)
	}
	return false
}

// SelectCategory jumps to category i, e.g. from a click on the category bar
func (n *Navigator) SelectCategory(i int) bool {
	if i < 0 || i >= n.categoryCount() || i == n.category {
		return false
	}
	n.category = i
	n.selectFirstEntry()
	return true
}

// SelectEntry jumps to entry i of the current category
func (n *Navigator) SelectEntry(i int) bool {
	if i < 0 || i >= n.entryCount() || i == n.entry {
		return false
	}
	n.entry = i
	n.notify()
	return true
}

// Follow moves the selection to e inside the current category, or to the
// first entry when e is no longer there. Used after a favorite toggle
// changes the Favorites category under the cursor.
func (n *Navigator) Follow(e *catalog.GameEntry) {
	if n.cat == nil {
		return
	}
	if i := n.cat.Category(n.category).IndexOf(e); i >= 0 {
		if i != n.entry {
			n.entry = i
			n.notify()
		}
		return
	}
	n.selectFirstEntry()
}

func (n *Navigator) moveCategory(delta int) bool {
	count := n.categoryCount()
	if count == 0 {
		return false
	}
	next := (n.category + delta) % count
	if next < 0 {
		next += count
	}
	n.category = next
	n.selectFirstEntry()
	return true
}

func (n *Navigator) moveEntry(delta int) bool {
	count := n.entryCount()
	if count == 0 {
		return false
	}
	if n.entry < 0 {
		n.entry = 0
		n.notify()
		return true
	}
	next := n.entry + delta
	if next < 0 || next >= count {
		return false
	}
	n.entry = next
	n.notify()
	return true
}

// selectFirstEntry points at entry 0 of the current category. When the
// view has not populated the list yet the selection is cleared and the
// step is retried later.
func (n *Navigator) selectFirstEntry() {
	if n.retry != nil {
		n.retry.Stop()
		n.retry = nil
	}
	n.retriesRun = 0
	n.applyFirstEntry()
}

// The last retry trusts the catalog even if the view still reports
// nothing, so a non-empty category never ends up without a selection.
func (n *Navigator) applyFirstEntry() {
	ready := n.viewCount() > 0 || n.retriesRun >= MaxRetries
	if ready && n.entryCount() > 0 {
		n.entry = 0
		n.notify()
		return
	}
	n.entry = -1
	n.notify()

	if n.entryCount() == 0 || n.sched == nil || n.retriesRun >= MaxRetries {
		return
	}
	category := n.category
	n.retry = n.sched.After(RetryDelay, func() {
		n.retry = nil
		if category != n.category || n.entry >= 0 {
			return
		}
		n.retriesRun++
		n.logger.Debug("Retrying first entry selection", zap.Int("category", category))
		n.applyFirstEntry()
	})
}

func (n *Navigator) notify() {
	if n.onSelect != nil {
		n.onSelect(n.Selection())
	}
}

func (n *Navigator) categoryCount() int {
	if n.cat == nil {
		return 0
	}
	return n.cat.CategoryCount()
}

func (n *Navigator) entryCount() int {
	if n.cat == nil {
		return 0
	}
	return n.cat.Category(n.category).Len()
}

func (n *Navigator) viewCount() int {
	if n.lister == nil {
		return n.entryCount()
	}
	return n.lister.EntryCount(n.category)
}
