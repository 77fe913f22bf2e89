package display

// Frame is one recorded Render call.
type Frame struct {
	Line0 string
	Line1 string
}

// FakeRenderer records rendered frames and backlight changes for test
// assertions.
type FakeRenderer struct {
	// Frames contains every rendered frame, in order, after padding.
	Frames []Frame

	// BacklightSets contains every value passed to SetBacklight.
	BacklightSets []bool

	// RenderError, if set, will be returned by Render()
	RenderError error

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeRenderer creates a FakeRenderer.
func NewFakeRenderer() *FakeRenderer {
	return &FakeRenderer{}
}

// Render records the frame with the same padding the real panel applies.
func (f *FakeRenderer) Render(line0, line1 string) error {
	if f.RenderError != nil {
		return f.RenderError
	}
	f.Frames = append(f.Frames, Frame{Line0: padLine(line0), Line1: padLine(line1)})
	return nil
}

// SetBacklight records the backlight change.
func (f *FakeRenderer) SetBacklight(on bool) error {
	f.BacklightSets = append(f.BacklightSets, on)
	return nil
}

// Close marks the renderer as closed.
func (f *FakeRenderer) Close() error {
	f.Closed = true
	return nil
}

// Last returns the most recently rendered frame, or a zero Frame if none.
func (f *FakeRenderer) Last() Frame {
	if len(f.Frames) == 0 {
		return Frame{}
	}
	return f.Frames[len(f.Frames)-1]
}

// Backlight returns the last backlight value set, defaulting to true.
func (f *FakeRenderer) Backlight() bool {
	if len(f.BacklightSets) == 0 {
		return true
	}
	return f.BacklightSets[len(f.BacklightSets)-1]
}
