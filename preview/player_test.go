package preview

import (
	"errors"
	"slices"
	"testing"
)

func TestNullPlayer(t *testing.T) {
	var events []Event
	p, err := NewNullPlayer(func(e Event) { events = append(events, e) })
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Play(); !errors.Is(err, ErrNoMedia) {
		t.Errorf("Play before Load = %v, want ErrNoMedia", err)
	}
	if err := p.Load("a.mp4"); err != nil {
		t.Fatal(err)
	}
	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if len(events) != 1 || events[0].Kind != EventStarted || events[0].Path != "a.mp4" {
		t.Errorf("events = %+v", events)
	}
}

func TestProcessPlayerArgs(t *testing.T) {
	tests := []struct {
		program string
		volume  float64
		want    []string
	}{
		{"/usr/bin/mpv", 0.5, []string{"--volume=50", "clip.mp4"}},
		{"/opt/tools/ffplay.exe", 0, []string{"-volume", "0", "clip.mp4"}},
		{"FFPLAY", 1, []string{"-volume", "100", "clip.mp4"}},
	}
	for _, tc := range tests {
		p := &ProcessPlayer{program: tc.program, path: "clip.mp4", volume: tc.volume}
		args := p.args()
		if args[len(args)-1] != "clip.mp4" {
			t.Errorf("%s: path not last: %v", tc.program, args)
		}
		for _, w := range tc.want {
			if !slices.Contains(args, w) {
				t.Errorf("%s: args %v missing %q", tc.program, args, w)
			}
		}
	}
}

func TestFindPlayerProgramOverrideMissing(t *testing.T) {
	if _, err := FindPlayerProgram("bigbox-no-such-player"); err == nil {
		t.Error("missing override found")
	}
}

func TestDetectFactoryFallsBack(t *testing.T) {
	factory := DetectFactory("bigbox-no-such-player", nil)
	p, err := factory(func(Event) {})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(*NullPlayer); !ok {
		t.Errorf("player = %T, want *NullPlayer", p)
	}
}

func TestProcessPlayerPlayWithoutLoad(t *testing.T) {
	p, _ := ProcessFactory("mpv", nil)(func(Event) {})
	if err := p.Play(); !errors.Is(err, ErrNoMedia) {
		t.Errorf("Play = %v, want ErrNoMedia", err)
	}
}
