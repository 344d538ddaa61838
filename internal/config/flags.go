package config

import "flag"

// Command-line flags shared by the front ends.
const (
	FlagHue        = "hue"
	FlagSaturation = "sat"
	FlagValue      = "val"
	FlagCandidate  = "candidate"
)

// StartFlags holds the start selection and candidate flags of a front end.
type StartFlags struct {
	fs        *flag.FlagSet
	hue       *int
	sat       *int
	val       *int
	candidate *string
}

// RegisterStartFlags defines -hue, -sat, -val and -candidate on fs.
func RegisterStartFlags(fs *flag.FlagSet, candidateUsage string) *StartFlags {
	return &StartFlags{
		fs:        fs,
		hue:       fs.Int(FlagHue, 0, "initial hue (0-179)"),
		sat:       fs.Int(FlagSaturation, 0, "initial saturation (0-255)"),
		val:       fs.Int(FlagValue, 0, "initial value (0-255)"),
		candidate: fs.String(FlagCandidate, "", candidateUsage),
	}
}

// Selection returns the channel flags given on the command line. Flags that
// were not given are unset. Call after the flag set is parsed.
func (f *StartFlags) Selection() (hue, sat, val Override, err error) {
	set := f.given()
	if set[FlagHue] {
		if hue, err = inRange("-"+FlagHue, *f.hue, 179); err != nil {
			return
		}
	}
	if set[FlagSaturation] {
		if sat, err = inRange("-"+FlagSaturation, *f.sat, 255); err != nil {
			return
		}
	}
	if set[FlagValue] {
		if val, err = inRange("-"+FlagValue, *f.val, 255); err != nil {
			return
		}
	}
	return hue, sat, val, nil
}

// Candidate returns the -candidate flag and whether it was given.
func (f *StartFlags) Candidate() (string, bool) {
	return *f.candidate, f.given()[FlagCandidate]
}

func (f *StartFlags) given() map[string]bool {
	set := make(map[string]bool)
	f.fs.Visit(func(fl *flag.Flag) {
		set[fl.Name] = true
	})
	return set
}
