package display

import (
	"errors"
	"testing"
)

func TestPadLine(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "                "},
		{"short", "Toast", "Toast           "},
		{"exact", "Ready:Press MODE", "Ready:Press MODE"},
		{"long", "this line is far too wide", "this line is far"},
	}
	for _, tc := range cases {
		got := padLine(tc.in)
		if got != tc.want {
			t.Errorf("%s: padLine(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
		if len(got) != cols {
			t.Errorf("%s: width %d, want %d", tc.name, len(got), cols)
		}
	}
}

func TestFakeRendererRecordsPaddedFrames(t *testing.T) {
	f := NewFakeRenderer()
	if err := f.Render("Toast", "00:30"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := f.Render("Bake", ""); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(f.Frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(f.Frames))
	}
	if f.Frames[0].Line0 != "Toast           " || f.Frames[0].Line1 != "00:30           " {
		t.Errorf("first frame: got %+v", f.Frames[0])
	}
	last := f.Last()
	if last.Line0 != "Bake            " {
		t.Errorf("Last: got %+v", last)
	}
}

func TestFakeRendererBacklight(t *testing.T) {
	f := NewFakeRenderer()
	if !f.Backlight() {
		t.Error("backlight should default to on")
	}
	f.SetBacklight(false)
	if f.Backlight() {
		t.Error("expected backlight off")
	}
	f.SetBacklight(true)
	if !f.Backlight() {
		t.Error("expected backlight on")
	}
	if len(f.BacklightSets) != 2 {
		t.Errorf("expected 2 recorded sets, got %d", len(f.BacklightSets))
	}
}

func TestFakeRendererRenderError(t *testing.T) {
	f := NewFakeRenderer()
	f.RenderError = errors.New("bus gone")
	if err := f.Render("a", "b"); err == nil {
		t.Fatal("expected injected render error")
	}
	if len(f.Frames) != 0 {
		t.Errorf("errored render should not record a frame, got %v", f.Frames)
	}
}
