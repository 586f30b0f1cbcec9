package nav

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/user-none/bigbox/catalog"
	"github.com/user-none/bigbox/locale"
	"github.com/user-none/bigbox/sched"
)

// testCatalog builds Favorites (empty), Racing [r1 r2 r3], Shooter [s1]
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	base := t.TempDir()
	games := []struct{ id, genre string }{
		{"r1", "Racing"},
		{"r2", "Racing"},
		{"r3", "Racing"},
		{"s1", "Shooter"},
	}
	for _, g := range games {
		write(t, filepath.Join(base, catalog.ProfilesDirName, g.id+".xml"), "")
		write(t, filepath.Join(base, catalog.MetadataDirName, g.id+".json"), `{"game_genre":"`+g.genre+`"}`)
	}
	cat, err := catalog.Build(catalog.Options{Dirs: catalog.DefaultDirs(base, ""), Language: locale.English})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cat.CategoryCount() != 3 {
		t.Fatalf("CategoryCount = %d, want 3", cat.CategoryCount())
	}
	return cat
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func kinds(cmds []Command) []CommandKind {
	out := make([]CommandKind, len(cmds))
	for i, c := range cmds {
		out[i] = c.Kind
	}
	return out
}

func TestMerge(t *testing.T) {
	got := Merge(Snapshot{Up: true}, Snapshot{Confirm: true}, Snapshot{})
	want := Snapshot{Up: true, Confirm: true}
	if got != want {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
	if Merge() != (Snapshot{}) {
		t.Error("Merge() should be empty")
	}
}

func TestInitialSelection(t *testing.T) {
	n := New(testCatalog(t), Options{})
	sel := n.Selection()
	if sel.Category != 0 || sel.Entry != -1 || sel.Game != nil {
		t.Errorf("initial selection = %+v, want empty Favorites", sel)
	}
}

func TestCategoryWraps(t *testing.T) {
	n := New(testCatalog(t), Options{})

	tests := []struct {
		press Snapshot
		want  int
	}{
		{Snapshot{Up: true}, 2},
		{Snapshot{Down: true}, 0},
		{Snapshot{Down: true}, 1},
		{Snapshot{Down: true}, 2},
		{Snapshot{Down: true}, 0},
	}
	for i, tc := range tests {
		cmds := n.OnTick(tc.press)
		n.OnTick(Snapshot{})
		if len(cmds) != 1 || cmds[0].Kind != MoveCategory {
			t.Fatalf("step %d: commands = %v", i, kinds(cmds))
		}
		if got := n.Selection().Category; got != tc.want {
			t.Errorf("step %d: category = %d, want %d", i, got, tc.want)
		}
	}
}

func TestCategoryChangeSelectsFirstEntry(t *testing.T) {
	n := New(testCatalog(t), Options{})
	n.OnTick(Snapshot{Down: true})
	sel := n.Selection()
	if sel.Category != 1 || sel.Entry != 0 || sel.Game == nil || sel.Game.ID != "r1" {
		t.Fatalf("selection = %+v, want Racing/r1", sel)
	}

	n.OnTick(Snapshot{})
	n.OnTick(Snapshot{Right: true})
	n.OnTick(Snapshot{})
	if n.Current().ID != "r2" {
		t.Fatalf("Current = %s, want r2", n.Current().ID)
	}
	n.OnTick(Snapshot{Down: true})
	n.OnTick(Snapshot{})
	n.OnTick(Snapshot{Up: true})
	if n.Current().ID != "r1" {
		t.Errorf("returning to Racing should reset to r1, got %s", n.Current().ID)
	}
}

func TestEntryClamps(t *testing.T) {
	n := New(testCatalog(t), Options{})
	n.SelectCategory(1)

	if cmds := n.OnTick(Snapshot{Left: true}); len(cmds) != 0 {
		t.Errorf("Left at first entry fired %v", kinds(cmds))
	}
	for i := 0; i < 5; i++ {
		n.OnTick(Snapshot{})
		n.OnTick(Snapshot{Right: true})
	}
	if n.Current().ID != "r3" {
		t.Fatalf("Current = %s, want r3", n.Current().ID)
	}
	n.OnTick(Snapshot{})
	if cmds := n.OnTick(Snapshot{Right: true}); len(cmds) != 0 {
		t.Errorf("Right at last entry fired %v", kinds(cmds))
	}
}

func TestHeldConfirmFiresOnce(t *testing.T) {
	n := New(testCatalog(t), Options{})
	n.SelectCategory(1)

	launches := 0
	for tick := 0; tick < 10; tick++ {
		for _, c := range n.OnTick(Snapshot{Confirm: true}) {
			if c.Kind != Launch {
				t.Fatalf("tick %d: unexpected %v", tick, c.Kind)
			}
			if tick != 0 {
				t.Errorf("launch fired on tick %d", tick)
			}
			if c.NoSelection || c.Selection.Game.ID != "r1" {
				t.Errorf("launch selection = %+v", c.Selection)
			}
			launches++
		}
	}
	if launches != 1 {
		t.Errorf("launches = %d, want 1", launches)
	}
}

func TestHeldOnOneDeviceTapOnAnother(t *testing.T) {
	n := New(testCatalog(t), Options{})
	n.SelectCategory(1)
	keyboard := Snapshot{Right: true}

	fired := 0
	fired += len(n.OnTick(Merge(keyboard, Snapshot{})))
	fired += len(n.OnTick(Merge(keyboard, Snapshot{Right: true})))
	fired += len(n.OnTick(Merge(keyboard, Snapshot{})))
	if fired != 1 {
		t.Errorf("fired %d moves, want 1", fired)
	}
	if n.Current().ID != "r2" {
		t.Errorf("Current = %s, want r2", n.Current().ID)
	}
}

func TestLaunchWithoutSelection(t *testing.T) {
	n := New(testCatalog(t), Options{})
	cmds := n.OnTick(Snapshot{Confirm: true})
	if len(cmds) != 1 || cmds[0].Kind != Launch || !cmds[0].NoSelection {
		t.Errorf("commands = %+v, want Launch with NoSelection", cmds)
	}
}

func TestCancelRequestsExit(t *testing.T) {
	n := New(testCatalog(t), Options{})
	cmds := n.OnTick(Snapshot{Cancel: true})
	if len(cmds) != 1 || cmds[0].Kind != Exit {
		t.Errorf("commands = %v, want [exit]", kinds(cmds))
	}
	if cmds := n.OnTick(Snapshot{Cancel: true}); len(cmds) != 0 {
		t.Errorf("held cancel fired %v", kinds(cmds))
	}
}

func TestWheel(t *testing.T) {
	n := New(testCatalog(t), Options{})
	n.SelectCategory(1)

	if n.Wheel(1) {
		t.Error("wheel up at first entry moved")
	}
	if !n.Wheel(-1) || n.Current().ID != "r2" {
		t.Errorf("wheel down: Current = %v", n.Current())
	}
	if n.Wheel(0) {
		t.Error("zero wheel moved")
	}
}

type laggingView struct {
	ready map[int]bool
}

func (v *laggingView) EntryCount(category int) int {
	if v.ready[category] {
		return 1
	}
	return 0
}

func TestFirstEntryRetry(t *testing.T) {
	clock := sched.NewManual()
	view := &laggingView{ready: map[int]bool{}}
	var events []Selection
	n := New(testCatalog(t), Options{
		Scheduler: clock,
		Lister:    view,
		OnSelect:  func(s Selection) { events = append(events, s) },
	})

	n.OnTick(Snapshot{Down: true})
	if n.Selection().Entry != -1 {
		t.Fatalf("entry = %d before view populated, want -1", n.Selection().Entry)
	}
	if clock.Pending() != 1 {
		t.Fatalf("Pending = %d, want a retry", clock.Pending())
	}

	view.ready[1] = true
	clock.Advance(RetryDelay)
	sel := n.Selection()
	if sel.Entry != 0 || sel.Game.ID != "r1" {
		t.Errorf("after retry selection = %+v", sel)
	}
	if last := events[len(events)-1]; last.Game == nil || last.Game.ID != "r1" {
		t.Errorf("last OnSelect = %+v, want r1", last)
	}
}

func TestFirstEntryRetryTrustsCatalogLast(t *testing.T) {
	clock := sched.NewManual()
	n := New(testCatalog(t), Options{Scheduler: clock, Lister: &laggingView{}})

	n.OnTick(Snapshot{Down: true})
	clock.Advance(RetryDelay * 10)
	if n.Current() == nil || n.Current().ID != "r1" {
		t.Errorf("Current = %v, want r1 after retries", n.Current())
	}
	if clock.Pending() != 0 {
		t.Errorf("Pending = %d, want no further retries", clock.Pending())
	}
}

func TestStaleRetryIgnored(t *testing.T) {
	clock := sched.NewManual()
	view := &laggingView{ready: map[int]bool{}}
	n := New(testCatalog(t), Options{Scheduler: clock, Lister: view})

	n.OnTick(Snapshot{Down: true})
	n.OnTick(Snapshot{})
	view.ready[2] = true
	n.OnTick(Snapshot{Down: true})
	if n.Current().ID != "s1" {
		t.Fatalf("Current = %v, want s1", n.Current())
	}
	clock.Advance(RetryDelay * 2)
	if n.Selection().Category != 2 || n.Current().ID != "s1" {
		t.Errorf("stale retry changed selection to %+v", n.Selection())
	}
}

func TestFollowAfterFavoriteToggle(t *testing.T) {
	cat := testCatalog(t)
	n := New(cat, Options{})

	r2 := cat.Entry("r2")
	if err := cat.SetFavorite(r2, true); err != nil {
		t.Fatal(err)
	}
	n.Follow(r2)
	if n.Current() != r2 {
		t.Fatalf("Current = %v, want r2 in Favorites", n.Current())
	}
	if err := cat.SetFavorite(r2, false); err != nil {
		t.Fatal(err)
	}
	n.Follow(r2)
	if n.Selection().Entry != -1 {
		t.Errorf("selection = %+v, want none in empty Favorites", n.Selection())
	}
}

func TestSetCatalogKeepsCategory(t *testing.T) {
	n := New(testCatalog(t), Options{})
	n.SelectCategory(2)
	n.SetCatalog(testCatalog(t))
	if n.Selection().Category != 2 || n.Current().ID != "s1" {
		t.Errorf("selection after rebuild = %+v", n.Selection())
	}
	n.SetCatalog(nil)
	if n.Selection().Category != 0 || n.Current() != nil {
		t.Errorf("selection with nil catalog = %+v", n.Selection())
	}
	if cmds := n.OnTick(Snapshot{Down: true}); len(cmds) != 0 {
		t.Errorf("nil catalog produced %v", kinds(cmds))
	}
}
