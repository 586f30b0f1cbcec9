package media

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestResolveCoverPrecedence(t *testing.T) {
	root := t.TempDir()
	covers := filepath.Join(root, "Covers")
	icons := filepath.Join(root, "Icons")

	idPNG := touch(t, filepath.Join(covers, "game1.png"))
	idJPG := touch(t, filepath.Join(covers, "game1.jpg"))
	namePNG := touch(t, filepath.Join(covers, "Game One.png"))
	nameJPG := touch(t, filepath.Join(covers, "Game One.jpg"))
	icon := touch(t, filepath.Join(icons, "g1.png"))

	got := ResolveCover(covers, icons, "game1", "Game One", "g1.png")
	if got != idPNG {
		t.Fatalf("ResolveCover = %q, want %q", got, idPNG)
	}

	steps := []struct {
		remove string
		want   string
	}{
		{idPNG, idJPG},
		{idJPG, namePNG},
		{namePNG, nameJPG},
		{nameJPG, icon},
		{icon, ""},
	}
	for _, s := range steps {
		os.Remove(s.remove)
		got := ResolveCover(covers, icons, "game1", "Game One", "g1.png")
		if got != s.want {
			t.Errorf("after removing %s: ResolveCover = %q, want %q", filepath.Base(s.remove), got, s.want)
		}
	}
}

func TestResolveCoverIDBeatsFallbackJPG(t *testing.T) {
	root := t.TempDir()
	covers := filepath.Join(root, "Covers")
	want := touch(t, filepath.Join(covers, "abc.png"))
	touch(t, filepath.Join(covers, "Alpha.jpg"))

	if got := ResolveCover(covers, "", "abc", "Alpha", ""); got != want {
		t.Errorf("ResolveCover = %q, want %q", got, want)
	}
}

func TestResolveCoverMissingDirs(t *testing.T) {
	root := t.TempDir()
	if got := ResolveCover(filepath.Join(root, "nope"), filepath.Join(root, "nope2"), "a", "b", "c.png"); got != "" {
		t.Errorf("ResolveCover with missing dirs = %q, want empty", got)
	}
}

func TestResolveCoverIconOnly(t *testing.T) {
	root := t.TempDir()
	icons := filepath.Join(root, "Icons")
	want := touch(t, filepath.Join(icons, "x.ico"))

	if got := ResolveCover(filepath.Join(root, "Covers"), icons, "a", "b", "x.ico"); got != want {
		t.Errorf("ResolveCover = %q, want %q", got, want)
	}
	if got := ResolveCover("", icons, "a", "b", "../x.ico"); got != "" {
		t.Errorf("ResolveCover with escaping icon name = %q, want empty", got)
	}
}

func TestResolveVideo(t *testing.T) {
	root := t.TempDir()
	videos := filepath.Join(root, "Videos")

	def := touch(t, filepath.Join(videos, DefaultVideo))
	if got := ResolveVideo(videos, "id1", "Name"); got != def {
		t.Errorf("default: got %q, want %q", got, def)
	}

	nameMKV := touch(t, filepath.Join(videos, "Name.mkv"))
	if got := ResolveVideo(videos, "id1", "Name"); got != nameMKV {
		t.Errorf("fallback mkv: got %q, want %q", got, nameMKV)
	}

	// Extension order dominates: id.mov wins over Name.mkv because mov is
	// earlier in the list.
	idMOV := touch(t, filepath.Join(videos, "id1.mov"))
	if got := ResolveVideo(videos, "id1", "Name"); got != idMOV {
		t.Errorf("id mov: got %q, want %q", got, idMOV)
	}

	nameMP4 := touch(t, filepath.Join(videos, "Name.mp4"))
	if got := ResolveVideo(videos, "id1", "Name"); got != nameMP4 {
		t.Errorf("fallback mp4: got %q, want %q", got, nameMP4)
	}

	idMP4 := touch(t, filepath.Join(videos, "id1.mp4"))
	if got := ResolveVideo(videos, "id1", "Name"); got != idMP4 {
		t.Errorf("id mp4: got %q, want %q", got, idMP4)
	}
}

func TestResolveVideoMissingDir(t *testing.T) {
	if got := ResolveVideo(filepath.Join(t.TempDir(), "missing"), "a", "b"); got != "" {
		t.Errorf("ResolveVideo = %q, want empty", got)
	}
}

func TestResolveVideoIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	videos := filepath.Join(root, "Videos")
	if err := os.MkdirAll(filepath.Join(videos, "id1.mp4"), 0755); err != nil {
		t.Fatal(err)
	}
	if got := ResolveVideo(videos, "id1", ""); got != "" {
		t.Errorf("ResolveVideo = %q, want empty for directory candidate", got)
	}
}

func TestNewDirs(t *testing.T) {
	d := NewDirs("/m", "/i")
	if d.Covers != filepath.Join("/m", "Covers") || d.Videos != filepath.Join("/m", "Videos") || d.Icons != "/i" {
		t.Errorf("NewDirs = %+v", d)
	}
}
