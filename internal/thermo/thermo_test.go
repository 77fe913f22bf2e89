package thermo

import (
	"errors"
	"testing"
	"time"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		name string
		raw  uint16
		want float64
	}{
		{"zero", 0x0000, 0},
		{"room temperature", 25 * 4 << 3, 25},
		{"quarter degree step", (25*4 + 1) << 3, 25.25},
		{"oven hot", 260 * 4 << 3, 260},
		{"dummy bits ignored", 0x0003, 0},
	}
	for _, tc := range cases {
		got, err := Decode(tc.raw)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: Decode(%#04x) = %v, want %v", tc.name, tc.raw, got, tc.want)
		}
	}
}

func TestDecodeOpenCircuit(t *testing.T) {
	_, err := Decode(0x0004)
	if !errors.Is(err, ErrOpenCircuit) {
		t.Fatalf("expected ErrOpenCircuit, got %v", err)
	}

	// The flag wins even when the reading bits look plausible.
	_, err = Decode(25*4<<3 | 0x4)
	if !errors.Is(err, ErrOpenCircuit) {
		t.Fatalf("expected ErrOpenCircuit with reading bits set, got %v", err)
	}
}

func TestFakeSamplerScriptsReadings(t *testing.T) {
	f := NewFakeSampler([]float64{25, 100, 260})
	now := time.Now()

	for _, want := range []float64{25, 100, 260, 260, 260} {
		got, err := f.Sample(now)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		if got != want {
			t.Errorf("Sample: got %v, want %v", got, want)
		}
	}

	f.Reset()
	got, _ := f.Sample(now)
	if got != 25 {
		t.Errorf("after Reset: got %v, want 25", got)
	}
}

func TestFakeSamplerError(t *testing.T) {
	f := NewFakeSampler([]float64{25})
	f.SampleError = ErrOpenCircuit
	if _, err := f.Sample(time.Now()); !errors.Is(err, ErrOpenCircuit) {
		t.Fatalf("expected injected error, got %v", err)
	}
}

func TestFakeSamplerClose(t *testing.T) {
	f := NewFakeSampler(nil)
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !f.Closed {
		t.Error("expected Closed after Close")
	}
}
