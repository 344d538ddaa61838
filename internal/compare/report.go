package compare

import (
	"fmt"
	"io"
	"strings"

	"hsv-colortest/pkg/colorutil"

	"gonum.org/v1/gonum/stat"
)

// ChannelStats summarizes the absolute deviation of one channel.
type ChannelStats struct {
	Name       string
	Max        int
	Mean       float64
	StdDev     float64
	Mismatches int
	// Worst is the first grid point that reached Max.
	Worst colorutil.HSV8
}

// Report is the outcome of a Sweep.
type Report struct {
	Reference string
	Candidate string
	Samples   int
	Forward   [3]ChannelStats // R, G, B
	RoundTrip [3]ChannelStats // H, S, V
}

// MaxForward returns the largest HSV->RGB deviation over all channels.
func (r *Report) MaxForward() int {
	m := 0
	for _, c := range r.Forward {
		m = max(m, c.Max)
	}
	return m
}

// WriteTo prints the report as a fixed-width table.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Reference: %s\nCandidate: %s\nSamples:   %d\n", r.Reference, r.Candidate, r.Samples)

	section := func(title string, rows [3]ChannelStats) {
		fmt.Fprintf(&sb, "\n%s\n", title)
		fmt.Fprintf(&sb, "%-4s %5s %9s %9s %11s  %s\n", "Ch", "Max", "Mean", "StdDev", "Mismatches", "Worst (h, s, v)")
		for _, c := range rows {
			fmt.Fprintf(&sb, "%-4s %5d %9.4f %9.4f %11d  (%d, %d, %d)\n",
				c.Name, c.Max, c.Mean, c.StdDev, c.Mismatches, c.Worst.H, c.Worst.S, c.Worst.V)
		}
	}
	section("HSV -> RGB deviation from reference", r.Forward)
	section("Candidate round trip HSV -> RGB -> HSV", r.RoundTrip)

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// histogram counts how often each deviation 0-255 occurred.
type histogram struct {
	counts [256]float64
	max    int
	worst  colorutil.HSV8
	seen   bool
}

func (h *histogram) add(dev int, at colorutil.HSV8) {
	h.counts[dev]++
	if !h.seen || dev > h.max {
		h.max = dev
		h.worst = at
		h.seen = true
	}
}

// merge folds o into h. Ties keep h's worst point so merging planes in
// hue order is deterministic.
func (h *histogram) merge(o *histogram) {
	for i, c := range o.counts {
		h.counts[i] += c
	}
	if o.seen && (!h.seen || o.max > h.max) {
		h.max = o.max
		h.worst = o.worst
		h.seen = true
	}
}

var deviations = func() []float64 {
	d := make([]float64, 256)
	for i := range d {
		d[i] = float64(i)
	}
	return d
}()

func (h *histogram) stats(name string) ChannelStats {
	cs := ChannelStats{Name: name, Max: h.max, Worst: h.worst}

	var total float64
	for _, c := range h.counts {
		total += c
	}
	if total == 0 {
		return cs
	}

	cs.Mismatches = int(total - h.counts[0])
	cs.Mean = stat.Mean(deviations, h.counts[:])
	if total > 1 {
		cs.StdDev = stat.StdDev(deviations, h.counts[:])
	}
	return cs
}
