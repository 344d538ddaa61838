// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"image"
	"log"

	"hsv-colortest/internal/app"
	"hsv-colortest/internal/compare"
	"hsv-colortest/internal/reference"
	"hsv-colortest/internal/swatch"
	"hsv-colortest/pkg/colorutil"
	"hsv-colortest/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// MainWindow shows the HSV sliders and the swatch comparison.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	reference  reference.Converter
	candidate  reference.Converter
	converters Catalog

	width, rowHeight int

	swatch    *canvas.Image
	hueSlider *widget.Slider
	satSlider *widget.Slider
	valSlider *widget.Slider
	hueLabel  *widget.Label
	satLabel  *widget.Label
	valLabel  *widget.Label
	selector  *widget.Select
	statusBar *widget.Label
}

// Catalog lists the candidate converters offered by the selector.
type Catalog struct {
	Names  []string
	Lookup func(name string) (reference.Converter, error)
}

// New creates the main window. ref is the converter shown on the first
// swatch band; the second band uses the state's candidate, resolved
// through converters.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs, ref reference.Converter, converters Catalog, width, height int) *MainWindow {
	win := fyneApp.NewWindow("HSV Color Test")

	mw := &MainWindow{
		Window:     win,
		app:        fyneApp,
		state:      state,
		prefs:      p,
		reference:  ref,
		converters: converters,
		width:      width,
		rowHeight:  height / 2,
	}
	mw.candidate = mw.lookupCandidate(state.Candidate())

	mw.setupUI()
	mw.setupEventHandlers()
	mw.refresh()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.swatch = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, mw.width, 2*mw.rowHeight)))
	mw.swatch.FillMode = canvas.ImageFillOriginal

	mw.hueLabel = widget.NewLabel("")
	mw.satLabel = widget.NewLabel("")
	mw.valLabel = widget.NewLabel("")

	mw.hueSlider = newChannelSlider(app.MaxHue, mw.state.SetHue)
	mw.satSlider = newChannelSlider(app.MaxSaturation, mw.state.SetSaturation)
	mw.valSlider = newChannelSlider(app.MaxValue, mw.state.SetValue)

	mw.selector = widget.NewSelect(mw.converters.Names, func(name string) {
		mw.state.SetCandidate(name)
	})
	mw.selector.SetSelected(mw.candidate.Name())

	sliders := container.New(
		&channelLayout{},
		widget.NewLabel("H"), mw.hueSlider, mw.hueLabel,
		widget.NewLabel("S"), mw.satSlider, mw.satLabel,
		widget.NewLabel("V"), mw.valSlider, mw.valLabel,
	)

	mw.statusBar = widget.NewLabel("Ready")

	top := container.NewVBox(
		sliders,
		container.NewHBox(widget.NewLabel("Candidate:"), mw.selector),
	)

	content := container.NewBorder(
		top,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		container.NewCenter(mw.swatch),    // center
	)

	mw.SetContent(content)
}

func newChannelSlider(maxVal int, set func(int)) *widget.Slider {
	s := widget.NewSlider(0, float64(maxVal))
	s.Step = 1
	s.OnChanged = func(v float64) {
		set(int(v))
	}
	return s
}

// setupEventHandlers wires state events, Escape, and close handling.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventSelectionChanged, func(interface{}) {
		mw.refresh()
	})
	mw.state.On(app.EventCandidateChanged, func(data interface{}) {
		mw.candidate = mw.lookupCandidate(data.(string))
		if mw.selector.Selected != mw.candidate.Name() {
			mw.selector.SetSelected(mw.candidate.Name())
		}
		mw.refresh()
	})

	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			mw.closeWindow()
		}
	})

	mw.SetCloseIntercept(mw.closeWindow)
}

// closeWindow saves preferences and closes. Window.Close skips the close
// intercept, so every close path goes through here.
func (mw *MainWindow) closeWindow() {
	mw.SavePreferences()
	mw.Close()
}

func (mw *MainWindow) lookupCandidate(name string) reference.Converter {
	c, err := mw.converters.Lookup(name)
	if err != nil {
		log.Printf("Candidate %q unavailable, using %s: %v", name, reference.NameCustom, err)
		return reference.Custom{}
	}
	return c
}

// refresh re-renders the swatch and syncs the widgets with the state.
func (mw *MainWindow) refresh() {
	sel := mw.state.Selection()

	r, g, b := mw.reference.HSVToRGB(sel.H, sel.S, sel.V)
	rows := []swatch.Row{
		{
			Label: mw.reference.Name() + ": ",
			RGB:   colorutil.RGB8{R: r, G: g, B: b},
			HSV:   sel,
		},
		swatch.NewRow(mw.candidate.Name()+": ", mw.candidate, sel),
	}

	mw.swatch.Image = swatch.Render(rows, mw.width, mw.rowHeight)
	mw.swatch.Refresh()

	syncSlider(mw.hueSlider, sel.H)
	syncSlider(mw.satSlider, sel.S)
	syncSlider(mw.valSlider, sel.V)
	mw.hueLabel.SetText(fmt.Sprintf("%3d", sel.H))
	mw.satLabel.SetText(fmt.Sprintf("%3d", sel.S))
	mw.valLabel.SetText(fmt.Sprintf("%3d", sel.V))

	mw.statusBar.SetText(statusText(rows[0].RGB, rows[1], sel))

	mw.prefs.SetInt(prefs.KeyHue, int(sel.H))
	mw.prefs.SetInt(prefs.KeySaturation, int(sel.S))
	mw.prefs.SetInt(prefs.KeyValue, int(sel.V))
	mw.prefs.SetString(prefs.KeyCandidate, mw.candidate.Name())
}

func syncSlider(s *widget.Slider, v uint8) {
	if s.Value != float64(v) {
		s.SetValue(float64(v))
	}
}

func statusText(ref colorutil.RGB8, cand swatch.Row, sel colorutil.HSV8) string {
	return fmt.Sprintf("rgb delta=(%d, %d, %d)  round trip hsv=(%d, %d, %d) off by (%d, %d, %d)",
		int(cand.RGB.R)-int(ref.R), int(cand.RGB.G)-int(ref.G), int(cand.RGB.B)-int(ref.B),
		cand.HSV.H, cand.HSV.S, cand.HSV.V,
		compare.HueDistance(sel.H, cand.HSV.H),
		int(cand.HSV.S)-int(sel.S), int(cand.HSV.V)-int(sel.V))
}

// SavePreferences writes the preferences, logging failures.
func (mw *MainWindow) SavePreferences() {
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

// SavePreferencesIfChanged writes the preferences when a value changed.
func (mw *MainWindow) SavePreferencesIfChanged() {
	if err := mw.prefs.SaveIfChanged(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

// ConfirmRestart asks whether to restart into a rebuilt binary.
func (mw *MainWindow) ConfirmRestart(onAnswer func(restart bool)) {
	dialog.ShowConfirm("New Version Available",
		"The application binary has been updated.\nRestart now?",
		onAnswer, mw.Window)
}
