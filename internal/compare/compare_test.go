package compare

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"hsv-colortest/internal/reference"
	"hsv-colortest/pkg/colorutil"
)

func TestSweepCustomAgainstFloat(t *testing.T) {
	opts := DefaultOptions()
	opts.Workers = 4

	rep, err := Sweep(context.Background(), reference.Float{}, reference.Custom{}, opts)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if want := 180 * 52 * 52; rep.Samples != want {
		t.Fatalf("Samples = %d, want %d", rep.Samples, want)
	}
	if rep.Reference != reference.NameFloat || rep.Candidate != reference.NameCustom {
		t.Fatalf("names = %q/%q", rep.Reference, rep.Candidate)
	}

	// Truncation versus rounding never differs by more than one level.
	if got := rep.MaxForward(); got > 1 {
		t.Fatalf("MaxForward() = %d, want <= 1", got)
	}
	for _, c := range rep.Forward {
		if c.Mismatches == 0 {
			t.Errorf("channel %s: expected some truncation mismatches", c.Name)
		}
		if c.Mean <= 0 || c.Mean >= 1 {
			t.Errorf("channel %s: mean %v out of (0, 1)", c.Name, c.Mean)
		}
	}

	v := rep.RoundTrip[2]
	if v.Max != 0 || v.Mismatches != 0 {
		t.Errorf("value should survive the round trip exactly, got %+v", v)
	}
}

func TestSweepIdenticalConverters(t *testing.T) {
	opts := Options{HueStep: 10, SatStep: 51, ValStep: 51, Workers: 2}

	rep, err := Sweep(context.Background(), reference.Custom{}, reference.Custom{}, opts)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	for _, c := range rep.Forward {
		if c.Max != 0 || c.Mean != 0 || c.StdDev != 0 || c.Mismatches != 0 {
			t.Errorf("channel %s: %+v, want all zero", c.Name, c)
		}
	}
}

func TestSweepCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sweep(ctx, reference.Float{}, reference.Custom{}, DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Sweep error = %v, want context.Canceled", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		ok   bool
	}{
		{"defaults", DefaultOptions(), true},
		{"zero hue step", Options{HueStep: 0, SatStep: 1, ValStep: 1, Workers: 1}, false},
		{"hue step too big", Options{HueStep: 180, SatStep: 1, ValStep: 1, Workers: 1}, false},
		{"zero sat step", Options{HueStep: 1, SatStep: 0, ValStep: 1, Workers: 1}, false},
		{"val step too big", Options{HueStep: 1, SatStep: 1, ValStep: 256, Workers: 1}, false},
		{"no workers", Options{HueStep: 1, SatStep: 1, ValStep: 1, Workers: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestSteps(t *testing.T) {
	got := steps(0, 255, 5)
	if len(got) != 52 || got[0] != 0 || got[len(got)-1] != 255 {
		t.Fatalf("steps(0, 255, 5) = %v", got)
	}
	got = steps(0, 179, 100)
	if len(got) != 3 || got[1] != 100 || got[2] != 179 {
		t.Fatalf("steps(0, 179, 100) = %v", got)
	}
}

func TestHueDistance(t *testing.T) {
	tests := []struct {
		a, b uint8
		want int
	}{
		{0, 0, 0},
		{0, 179, 1},
		{179, 0, 1},
		{10, 100, 90},
		{5, 170, 15},
	}
	for _, tt := range tests {
		if got := HueDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("HueDistance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestHistogramWorstKeepsFirst(t *testing.T) {
	var a, b histogram
	a.add(2, colorutil.HSV8{H: 1})
	b.add(2, colorutil.HSV8{H: 2})
	a.merge(&b)

	if a.worst.H != 1 {
		t.Fatalf("worst = %v, want first point at max", a.worst)
	}
	if cs := a.stats("X"); cs.Max != 2 || cs.Mismatches != 2 || cs.Mean != 2 {
		t.Fatalf("stats = %+v", cs)
	}
}

func TestReportWriteTo(t *testing.T) {
	rep, err := Sweep(context.Background(), reference.Float{}, reference.Custom{},
		Options{HueStep: 30, SatStep: 128, ValStep: 128, Workers: 1})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	var buf bytes.Buffer
	n, err := rep.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if int(n) != buf.Len() {
		t.Fatalf("WriteTo returned %d, wrote %d", n, buf.Len())
	}

	out := buf.String()
	for _, want := range []string{"Reference: float", "Candidate: custom", "Mismatches", "\nR ", "\nV "} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
