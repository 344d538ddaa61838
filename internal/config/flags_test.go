package config

import (
	"flag"
	"io"
	"testing"
)

func parseStartFlags(t *testing.T, args ...string) *StartFlags {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := RegisterStartFlags(fs, "candidate converter")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return f
}

func TestStartFlagsUnset(t *testing.T) {
	f := parseStartFlags(t)

	hue, sat, val, err := f.Selection()
	if err != nil {
		t.Fatalf("Selection: %v", err)
	}
	if hue.Set || sat.Set || val.Set {
		t.Fatalf("no flag given, got %+v %+v %+v", hue, sat, val)
	}
	if _, ok := f.Candidate(); ok {
		t.Fatal("candidate should be unset")
	}
}

func TestStartFlagsGiven(t *testing.T) {
	f := parseStartFlags(t, "-hue", "0", "-val", "128", "-candidate", "opencv")

	hue, sat, val, err := f.Selection()
	if err != nil {
		t.Fatalf("Selection: %v", err)
	}
	// An explicit zero still overrides lower-precedence sources.
	if got := Resolve(99, hue); got != 0 {
		t.Errorf("hue = %d, want 0", got)
	}
	if sat.Set {
		t.Errorf("sat should be unset, got %+v", sat)
	}
	if got := Resolve(99, val); got != 128 {
		t.Errorf("val = %d, want 128", got)
	}
	if name, ok := f.Candidate(); !ok || name != "opencv" {
		t.Errorf("Candidate() = %q, %v", name, ok)
	}
}

func TestStartFlagsRange(t *testing.T) {
	tests := map[string][]string{
		"hue":        {"-hue", "180"},
		"saturation": {"-sat", "256"},
		"value":      {"-val", "-1"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, _, _, err := parseStartFlags(t, args...).Selection(); err == nil {
				t.Fatalf("expected an error for %v", args)
			}
		})
	}
}

func TestStartFlagsKeepHelp(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	RegisterStartFlags(fs, "candidate converter")
	if err := fs.Parse([]string{"-h"}); err != flag.ErrHelp {
		t.Fatalf("-h should request help, got %v", err)
	}
}
