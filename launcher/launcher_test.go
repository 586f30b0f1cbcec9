package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
	"time"

	"github.com/user-none/bigbox/catalog"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"--profile=abc.xml", []string{"--profile=abc.xml"}},
		{"  a   b\tc ", []string{"a", "b", "c"}},
		{`--profile="my game.xml" -x`, []string{"--profile=my game.xml", "-x"}},
		{`""`, []string{""}},
	}
	for _, tc := range tests {
		if got := SplitArgs(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitArgs(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCommandNotLaunchable(t *testing.T) {
	var l Launcher
	if _, err := l.Command(&catalog.GameEntry{ID: "x"}); !errors.Is(err, ErrNotLaunchable) {
		t.Errorf("err = %v, want ErrNotLaunchable", err)
	}
	if _, err := l.Launch(&catalog.GameEntry{ID: "x"}); !errors.Is(err, ErrNotLaunchable) {
		t.Errorf("Launch err = %v, want ErrNotLaunchable", err)
	}
}

func TestCommandScriptWindows(t *testing.T) {
	t.Setenv("COMSPEC", `C:\Windows\System32\cmd.exe`)
	l := Launcher{GOOS: "windows"}
	script := filepath.Join("games", "bat", "Outrun.bat")
	cmd, err := l.Command(&catalog.GameEntry{ID: "o", LaunchExecutable: script})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{`C:\Windows\System32\cmd.exe`, "/c", script}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Errorf("Args = %q, want %q", cmd.Args, want)
	}
	if cmd.Dir != filepath.Dir(script) {
		t.Errorf("Dir = %q", cmd.Dir)
	}
}

func TestCommandScriptElsewhere(t *testing.T) {
	l := Launcher{GOOS: "linux"}
	script := filepath.Join("games", "bat", "Outrun.CMD")
	cmd, err := l.Command(&catalog.GameEntry{ID: "o", LaunchExecutable: script, LaunchArguments: "-v"})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"sh", script, "-v"}; !reflect.DeepEqual(cmd.Args, want) {
		t.Errorf("Args = %q, want %q", cmd.Args, want)
	}
}

func TestCommandExecutable(t *testing.T) {
	var l Launcher
	base := t.TempDir()
	exe := filepath.Join(base, "TeknoParrotUi.exe")
	e := &catalog.GameEntry{ID: "abc", LaunchExecutable: exe, LaunchArguments: "--profile=abc.xml", WorkingDir: base}
	cmd, err := l.Command(e)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{exe, "--profile=abc.xml"}; !reflect.DeepEqual(cmd.Args, want) {
		t.Errorf("Args = %q, want %q", cmd.Args, want)
	}
	if cmd.Dir != base {
		t.Errorf("Dir = %q, want %q", cmd.Dir, base)
	}

	e.WorkingDir = ""
	cmd, _ = l.Command(e)
	if cmd.Dir != base {
		t.Errorf("Dir without WorkingDir = %q, want exe dir", cmd.Dir)
	}
}

func TestLaunchReportsExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "run.sh")
	if err := os.WriteFile(script, []byte("exit 0\n"), 0755); err != nil {
		t.Fatal(err)
	}

	exited := make(chan *Process, 1)
	l := Launcher{OnExit: func(p *Process) { exited <- p }}
	p, err := l.Launch(&catalog.GameEntry{ID: "s", LaunchExecutable: script})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	select {
	case got := <-exited:
		if got != p {
			t.Error("OnExit got a different process")
		}
	case <-time.After(10 * time.Second):
		t.Fatal("process did not exit")
	}
	if err := p.Wait(); err != nil {
		t.Errorf("Wait = %v", err)
	}
}

func TestLaunchMissingExecutable(t *testing.T) {
	var l Launcher
	_, err := l.Launch(&catalog.GameEntry{ID: "x", LaunchExecutable: filepath.Join(t.TempDir(), "missing-program")})
	if err == nil {
		t.Fatal("expected start error")
	}
}

func TestOpenParrotMissing(t *testing.T) {
	var l Launcher
	if err := l.OpenParrot(filepath.Join(t.TempDir(), "TeknoParrotUi.exe")); !errors.Is(err, ErrParrotNotFound) {
		t.Errorf("err = %v, want ErrParrotNotFound", err)
	}
	if err := l.OpenParrot(t.TempDir()); !errors.Is(err, ErrParrotNotFound) {
		t.Errorf("directory err = %v, want ErrParrotNotFound", err)
	}
}

func TestCommandLine(t *testing.T) {
	e := &catalog.GameEntry{LaunchExecutable: `C:\Tekno Parrot\TeknoParrotUi.exe`, LaunchArguments: "--profile=abc.xml"}
	want := `"C:\Tekno Parrot\TeknoParrotUi.exe" --profile=abc.xml`
	if got := CommandLine(e); got != want {
		t.Errorf("CommandLine = %q, want %q", got, want)
	}
	if got := CommandLine(&catalog.GameEntry{}); got != "" {
		t.Errorf("CommandLine(empty) = %q", got)
	}
}
