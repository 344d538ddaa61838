// Package compare sweeps the 8-bit HSV domain and measures how far a
// candidate converter strays from a reference converter.
package compare

import (
	"context"
	"runtime"

	"hsv-colortest/internal/errors"
	"hsv-colortest/internal/reference"
	"hsv-colortest/pkg/colorutil"

	"golang.org/x/sync/errgroup"
)

// Options controls the sweep grid and parallelism.
type Options struct {
	HueStep int
	SatStep int
	ValStep int
	Workers int
}

// DefaultOptions samples every hue and every fifth saturation and value,
// which always includes 0 and 255.
func DefaultOptions() Options {
	return Options{
		HueStep: 1,
		SatStep: 5,
		ValStep: 5,
		Workers: runtime.NumCPU(),
	}
}

// Validate checks that every step is usable.
func (o Options) Validate() error {
	if o.HueStep < 1 || o.HueStep >= colorutil.HueSteps {
		return errors.Errorf("hue step %d out of range 1-%d", o.HueStep, colorutil.HueSteps-1)
	}
	if o.SatStep < 1 || o.SatStep > 255 {
		return errors.Errorf("saturation step %d out of range 1-255", o.SatStep)
	}
	if o.ValStep < 1 || o.ValStep > 255 {
		return errors.Errorf("value step %d out of range 1-255", o.ValStep)
	}
	if o.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", o.Workers)
	}
	return nil
}

// Sweep converts every grid point with both converters. Forward deviations
// compare the two HSV->RGB results; round-trip deviations compare the
// candidate's HSV->RGB->HSV result with the input.
func Sweep(ctx context.Context, ref, candidate reference.Converter, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	hues := steps(0, colorutil.HueSteps-1, opts.HueStep)
	sats := steps(0, 255, opts.SatStep)
	vals := steps(0, 255, opts.ValStep)

	planes := make([]*tally, len(hues))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, h := range hues {
		g.Go(func() error {
			t := newTally()
			for _, s := range sats {
				if err := ctx.Err(); err != nil {
					return err
				}
				for _, v := range vals {
					t.add(ref, candidate, colorutil.HSV8{H: h, S: s, V: v})
				}
			}
			planes[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newTally()
	for _, t := range planes {
		total.merge(t)
	}
	return total.report(ref.Name(), candidate.Name()), nil
}

// steps returns lo, lo+step, ... and always ends with hi.
func steps(lo, hi, step int) []uint8 {
	var out []uint8
	for x := lo; x < hi; x += step {
		out = append(out, uint8(x))
	}
	return append(out, uint8(hi))
}

// tally accumulates deviation histograms for one part of the grid.
type tally struct {
	samples   int
	forward   [3]histogram
	roundTrip [3]histogram
}

func newTally() *tally {
	return &tally{}
}

func (t *tally) add(ref, candidate reference.Converter, in colorutil.HSV8) {
	t.samples++

	rr, rg, rb := ref.HSVToRGB(in.H, in.S, in.V)
	cr, cg, cb := candidate.HSVToRGB(in.H, in.S, in.V)
	t.forward[0].add(absDiff(rr, cr), in)
	t.forward[1].add(absDiff(rg, cg), in)
	t.forward[2].add(absDiff(rb, cb), in)

	h, s, v := candidate.RGBToHSV(cr, cg, cb)
	t.roundTrip[0].add(HueDistance(in.H, h), in)
	t.roundTrip[1].add(absDiff(in.S, s), in)
	t.roundTrip[2].add(absDiff(in.V, v), in)
}

func (t *tally) merge(o *tally) {
	t.samples += o.samples
	for c := range t.forward {
		t.forward[c].merge(&o.forward[c])
		t.roundTrip[c].merge(&o.roundTrip[c])
	}
}

func (t *tally) report(refName, candidateName string) *Report {
	r := &Report{
		Reference: refName,
		Candidate: candidateName,
		Samples:   t.samples,
	}
	for c, name := range []string{"R", "G", "B"} {
		r.Forward[c] = t.forward[c].stats(name)
	}
	for c, name := range []string{"H", "S", "V"} {
		r.RoundTrip[c] = t.roundTrip[c].stats(name)
	}
	return r
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// HueDistance is the circular distance between two stored hues.
func HueDistance(a, b uint8) int {
	d := absDiff(a, b)
	if colorutil.HueSteps-d < d {
		return colorutil.HueSteps - d
	}
	return d
}
