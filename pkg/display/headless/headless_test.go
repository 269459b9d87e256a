package headless

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sprout/pkg/raster"
)

func TestMaxFrames(t *testing.T) {
	s, _ := New(10, 10, "test", WithMaxFrames(2))
	c := raster.NewCanvas(10, 10)

	if s.CancelRequested() {
		t.Fatal("cancel before any frame")
	}
	for i := 0; i < 2; i++ {
		if err := s.Present(c); err != nil {
			t.Fatalf("Present: %v", err)
		}
	}
	if !s.CancelRequested() {
		t.Error("expected cancel after 2 frames")
	}
	if s.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", s.Frames())
	}
}

func TestStopWhen(t *testing.T) {
	stop := false
	s, _ := New(10, 10, "test", WithStopWhen(func() bool { return stop }))
	if s.CancelRequested() {
		t.Fatal("cancel before predicate fired")
	}
	stop = true
	if !s.CancelRequested() {
		t.Error("expected cancel once predicate fired")
	}
}

func TestLastIsACopy(t *testing.T) {
	s, _ := New(4, 4, "test")
	if s.Last() != nil {
		t.Fatal("Last() before any frame should be nil")
	}

	c := raster.NewCanvas(4, 4)
	c.Set(1, 2, raster.Black)
	s.Present(c)
	c.Set(3, 3, raster.Black)

	last := s.Last()
	if last.At(1, 2) != raster.Black {
		t.Error("presented pixel missing")
	}
	if last.At(3, 3) == raster.Black {
		t.Error("pixel drawn after Present leaked into the stored frame")
	}
}

func TestClose(t *testing.T) {
	s, _ := New(4, 4, "test")
	if !s.Active() {
		t.Fatal("new surface should be active")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.Active() {
		t.Error("closed surface should be inactive")
	}
}

func TestLoggerReportsFrames(t *testing.T) {
	var buf bytes.Buffer
	s, _ := New(4, 4, "plant", WithLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})))
	s.Present(raster.NewCanvas(4, 4))

	out := buf.String()
	for _, want := range []string{"frame presented", "title=plant", "frame=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %q", want, out)
		}
	}
}
