// Command hsvsweep compares two HSV converters over the 8-bit HSV domain
// and prints per-channel deviation statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"hsv-colortest/internal/compare"
	"hsv-colortest/internal/config"
	"hsv-colortest/internal/errors"
	"hsv-colortest/internal/reference"
	"hsv-colortest/internal/reference/cvref"
	"hsv-colortest/internal/swatch"
)

// Hue strip sheet geometry: four columns per stored hue.
const (
	sheetWidth     = 720
	sheetRowHeight = 40
)

func main() {
	names := strings.Join(cvref.Names(), ", ")
	refName := flag.String("ref", cvref.Name, "reference converter ("+names+")")
	candName := flag.String("candidate", reference.NameCustom, "candidate converter ("+names+")")
	hueStep := flag.Int("hue-step", 1, "hue step (1-179)")
	satStep := flag.Int("sat-step", 5, "saturation step (1-255)")
	valStep := flag.Int("val-step", 5, "value step (1-255)")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel hue planes")
	maxDev := flag.Int("max-dev", -1, "exit non-zero when an RGB channel deviates by more than this (-1 disables)")
	sheet := flag.String("sheet", "", "write a hue strip sheet of every converter (.png or .tiff)")
	sheetS := flag.Int("sheet-s", 255, "saturation of the hue strip sheet")
	sheetV := flag.Int("sheet-v", 255, "value of the hue strip sheet")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration: %v\n%s", err, errors.Stack(err))
		os.Exit(1)
	}

	ref, err := cvref.Lookup(*refName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Reference: %v\n", err)
		os.Exit(1)
	}
	cand, err := cvref.Lookup(*candName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Candidate: %v\n", err)
		os.Exit(1)
	}

	opts := compare.Options{
		HueStep: *hueStep,
		SatStep: *satStep,
		ValStep: *valStep,
		Workers: *workers,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Sweeping %s against %s (steps h=%d s=%d v=%d, %d workers)...\n",
		cand.Name(), ref.Name(), opts.HueStep, opts.SatStep, opts.ValStep, opts.Workers)

	report, err := compare.Sweep(ctx, ref, cand, opts)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Sweep interrupted")
		os.Exit(130)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sweep failed: %v\n", err)
		if cfg.Debug {
			fmt.Fprintln(os.Stderr, errors.Stack(err))
		}
		os.Exit(1)
	}
	fmt.Println()
	if _, err := report.WriteTo(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Writing report: %v\n", err)
		os.Exit(1)
	}

	if *sheet != "" {
		if err := writeSheet(*sheet, *sheetS, *sheetV); err != nil {
			fmt.Fprintf(os.Stderr, "Sheet: %v\n", err)
			if cfg.Debug {
				fmt.Fprintln(os.Stderr, errors.Stack(err))
			}
			os.Exit(1)
		}
		fmt.Printf("\nWrote hue strip sheet to %s\n", *sheet)
	}

	if *maxDev >= 0 && report.MaxForward() > *maxDev {
		fmt.Fprintf(os.Stderr, "\nFAIL: max RGB deviation %d exceeds %d\n", report.MaxForward(), *maxDev)
		os.Exit(2)
	}
}

func writeSheet(path string, s, v int) error {
	if s < 0 || s > 255 || v < 0 || v > 255 {
		return errors.Errorf("sheet saturation/value must be 0-255, got %d/%d", s, v)
	}

	cols := swatch.HueColumns(uint8(s), uint8(v), sheetWidth)

	var strips []swatch.Strip
	for _, name := range cvref.Names() {
		if name == cvref.Name {
			colors, err := cvref.ConvertHSV(cols)
			if err != nil {
				return errors.Wrapf(err, "opencv strip")
			}
			strips = append(strips, swatch.Strip{Name: name, Colors: colors})
			continue
		}
		c, err := reference.Lookup(name)
		if err != nil {
			return err
		}
		strips = append(strips, swatch.ConvertStrip(c, cols))
	}

	img := swatch.PaintStrips(strips, sheetWidth, sheetRowHeight)
	return swatch.WriteImage(path, img)
}
