package launchbox

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMediaTitle(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"OutRun 2 SP SDX-01.mp4", "OutRun 2 SP SDX"},
		{"OutRun 2 SP SDX-02.MP4", "OutRun 2 SP SDX"},
		{"Daytona USA.png", "Daytona USA"},
		{"Area 51-1.jpg", "Area 51-1"},
		{"Tekken 7-FR-01.mp4", "Tekken 7-FR"},
		{"Crisis-123.mp4", "Crisis-123"},
	}
	for _, tc := range tests {
		if got := MediaTitle(tc.name); got != tc.want {
			t.Errorf("MediaTitle(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

type mediaFixture struct {
	src, dest string
	games     []Game
	ids       map[string]string
}

func newMediaFixture(t *testing.T) mediaFixture {
	t.Helper()
	base := t.TempDir()
	f := mediaFixture{
		src:  filepath.Join(base, "LaunchBox", "Videos", "TeknoParrot"),
		dest: filepath.Join(base, "Media", "Videos"),
		games: []Game{
			{Title: "OutRun 2 SP SDX", ApplicationPath: `bat\Outrun 2 SP.bat`},
			{Title: "Ghost Squad Evolution", ApplicationPath: `bat\Ghost Squad.bat`},
			{Title: "No Video", ApplicationPath: `bat\No Video.bat`},
			{Title: "Stray", ApplicationPath: `bat\Stray.bat`},
		},
		ids: map[string]string{
			"Outrun 2 SP": "OR2SP",
			"Ghost Squad": "GhostSquadEvolution",
			"No Video":    "NoVideo",
		},
	}
	writeFile(t, filepath.Join(f.src, "OutRun 2 SP SDX-02.mp4"), "second")
	writeFile(t, filepath.Join(f.src, "OutRun 2 SP SDX-01.mp4"), "first")
	writeFile(t, filepath.Join(f.src, "Ghost Squad Evolution.MKV"), "ghost")
	writeFile(t, filepath.Join(f.src, "Stray-01.mp4"), "stray")
	writeFile(t, filepath.Join(f.src, "notes.txt"), "ignored")
	return f
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestImportMedia(t *testing.T) {
	f := newMediaFixture(t)
	stats, err := ImportMedia(f.games, f.ids, ImportOptions{
		SourceDir:  f.src,
		DestDir:    f.dest,
		Extensions: VideoExtensions,
	})
	if err != nil {
		t.Fatalf("ImportMedia: %v", err)
	}
	if stats.Imported != 2 || stats.NoMedia != 1 || stats.NoProfile != 1 || stats.Exists != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if got := readString(t, filepath.Join(f.dest, "OR2SP.mp4")); got != "first" {
		t.Errorf("OR2SP.mp4 = %q, want the -01 file", got)
	}
	if got := readString(t, filepath.Join(f.dest, "GhostSquadEvolution.mkv")); got != "ghost" {
		t.Errorf("GhostSquadEvolution.mkv = %q", got)
	}
	if _, err := os.Stat(filepath.Join(f.src, "OutRun 2 SP SDX-01.mp4")); err != nil {
		t.Error("copy removed the source")
	}
}

func TestImportMediaExisting(t *testing.T) {
	f := newMediaFixture(t)
	writeFile(t, filepath.Join(f.dest, "OR2SP.mp4"), "kept")
	opts := ImportOptions{SourceDir: f.src, DestDir: f.dest, Extensions: VideoExtensions}

	stats, err := ImportMedia(f.games, f.ids, opts)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Exists != 1 || stats.Imported != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if got := readString(t, filepath.Join(f.dest, "OR2SP.mp4")); got != "kept" {
		t.Errorf("existing file replaced: %q", got)
	}

	opts.Overwrite = true
	if _, err := ImportMedia(f.games, f.ids, opts); err != nil {
		t.Fatal(err)
	}
	if got := readString(t, filepath.Join(f.dest, "OR2SP.mp4")); got != "first" {
		t.Errorf("overwrite = %q, want first", got)
	}
}

func TestImportMediaMove(t *testing.T) {
	f := newMediaFixture(t)
	_, err := ImportMedia(f.games, f.ids, ImportOptions{SourceDir: f.src, DestDir: f.dest, Extensions: VideoExtensions, Move: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(f.src, "OutRun 2 SP SDX-01.mp4")); !errors.Is(err, os.ErrNotExist) {
		t.Error("move left the source in place")
	}
	if _, err := os.Stat(filepath.Join(f.src, "OutRun 2 SP SDX-02.mp4")); err != nil {
		t.Error("move touched an unselected file")
	}
	if got := readString(t, filepath.Join(f.dest, "OR2SP.mp4")); got != "first" {
		t.Errorf("OR2SP.mp4 = %q", got)
	}
}

func TestImportMediaDryRun(t *testing.T) {
	f := newMediaFixture(t)
	stats, err := ImportMedia(f.games, f.ids, ImportOptions{SourceDir: f.src, DestDir: f.dest, Extensions: VideoExtensions, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Imported != 2 {
		t.Errorf("Imported = %d, want 2", stats.Imported)
	}
	if _, err := os.Stat(f.dest); !errors.Is(err, os.ErrNotExist) {
		t.Error("dry run created the destination")
	}
}

func TestImportMediaCovers(t *testing.T) {
	f := newMediaFixture(t)
	writeFile(t, filepath.Join(f.src, "Ghost Squad Evolution-01.png"), "box")
	dest := filepath.Join(filepath.Dir(f.dest), "Covers")

	stats, err := ImportMedia(f.games, f.ids, ImportOptions{SourceDir: f.src, DestDir: dest, Extensions: CoverExtensions})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Imported != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if got := readString(t, filepath.Join(dest, "GhostSquadEvolution.png")); got != "box" {
		t.Errorf("cover = %q", got)
	}
}

func TestImportMediaMissingSource(t *testing.T) {
	_, err := ImportMedia(nil, nil, ImportOptions{SourceDir: filepath.Join(t.TempDir(), "none"), DestDir: t.TempDir()})
	if err == nil {
		t.Error("expected error for missing source dir")
	}
}
