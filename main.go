// Package main provides the entry point for the HSV Color Test viewer.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"hsv-colortest/internal/app"
	"hsv-colortest/internal/config"
	"hsv-colortest/internal/errors"
	"hsv-colortest/internal/reference"
	"hsv-colortest/internal/reference/cvref"
	"hsv-colortest/internal/version"
	"hsv-colortest/ui/mainwindow"
	"hsv-colortest/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const (
	appID    = "io.github.hsv-colortest"
	appTitle = "HSV Color Test"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	start := config.RegisterStartFlags(flag.CommandLine,
		fmt.Sprintf("converter compared with OpenCV %v", cvref.Names()))
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration: %v\n%s", err, errors.Stack(err))
	}
	log.Printf("Starting %s v%s", appTitle, version.String())

	hue, sat, val, err := start.Selection()
	if err != nil {
		log.Fatalf("Flags: %v", err)
	}

	appPrefs := prefs.Load()

	name := appPrefs.String(prefs.KeyCandidate, reference.NameCustom)
	if c, ok := start.Candidate(); ok {
		if _, err := cvref.Lookup(c); err != nil {
			log.Fatalf("Candidate: %v", err)
		}
		name = c
	}
	state := app.NewState(name)
	state.Set(
		config.Resolve(appPrefs.Int(prefs.KeyHue, int(app.DefaultSelection.H)), hue, cfg.Hue),
		config.Resolve(appPrefs.Int(prefs.KeySaturation, int(app.DefaultSelection.S)), sat, cfg.Saturation),
		config.Resolve(appPrefs.Int(prefs.KeyValue, int(app.DefaultSelection.V)), val, cfg.Value),
	)
	if cfg.Debug {
		log.Printf("Start selection %+v, candidate %s, prefs %s", state.Selection(), name, appPrefs.Path())
	}

	a := fyneapp.NewWithID(appID)
	a.Settings().SetTheme(&app.ViewerTheme{})

	catalog := mainwindow.Catalog{Names: cvref.Names(), Lookup: cvref.Lookup}
	win := mainwindow.New(a, state, appPrefs, cvref.OpenCV{}, catalog, cfg.Width, cfg.Height)
	win.SetTitle(appTitle)

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnTick(func() {
		win.SavePreferencesIfChanged()
	})

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		win.ConfirmRestart(func(restart bool) {
			if !restart {
				reloader.ResetBaseline()
				reloader.Start()
				return
			}
			log.Println("Hot reload: saving preferences before restart...")
			win.SavePreferences()
			log.Println("Hot reload: restarting...")
			if err := reloader.Restart(); err != nil {
				log.Printf("Hot reload: restart failed: %v", err)
			}
		})
	})

	reloader.Start()
}
