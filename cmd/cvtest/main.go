// Command cvtest shows the HSV comparison in an OpenCV highgui window with
// H, S and V trackbars. Press Esc to quit.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"hsv-colortest/internal/app"
	"hsv-colortest/internal/config"
	"hsv-colortest/internal/errors"
	"hsv-colortest/internal/reference"
	"hsv-colortest/internal/reference/cvref"
	"hsv-colortest/ui/highgui"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	start := config.RegisterStartFlags(flag.CommandLine,
		fmt.Sprintf("converter compared with OpenCV %v", cvref.Names()))
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration: %v\n%s", err, errors.Stack(err))
		os.Exit(1)
	}

	hue, sat, val, err := start.Selection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Flags: %v\n", err)
		os.Exit(1)
	}

	name := reference.NameCustom
	if c, ok := start.Candidate(); ok {
		name = c
	}
	conv, err := cvref.Lookup(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Candidate: %v\n", err)
		os.Exit(1)
	}

	state := app.NewState(conv.Name())
	def := app.DefaultSelection
	state.Set(
		config.Resolve(int(def.H), hue, cfg.Hue),
		config.Resolve(int(def.S), sat, cfg.Saturation),
		config.Resolve(int(def.V), val, cfg.Value),
	)

	last := highgui.Run(highgui.Options{
		Title:     "cvtest",
		Width:     cfg.Width,
		Height:    cfg.Height,
		Start:     state.Selection(),
		Candidate: conv,
	})
	if cfg.Debug {
		log.Printf("Last selection: hsv=(%d, %d, %d)", last.H, last.S, last.V)
	}
}
