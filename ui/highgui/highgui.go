// Package highgui runs the HSV comparison in an OpenCV highgui window with
// one trackbar per channel.
package highgui

import (
	"image"
	"log"

	"hsv-colortest/internal/app"
	"hsv-colortest/internal/reference"
	"hsv-colortest/internal/swatch"
	"hsv-colortest/pkg/colorutil"

	"gocv.io/x/gocv"
)

const keyEscape = 27

// Text placement of the two overlay lines.
var (
	referenceOrigin = image.Point{X: 10, Y: 20}
	candidateOrigin = image.Point{X: 34, Y: 46}
)

// Options configures Run.
type Options struct {
	Title     string
	Width     int
	Height    int
	Start     colorutil.HSV8
	Candidate reference.Converter
}

// Run shows the window and blocks until Escape is pressed or the window is
// closed. It returns the last selection.
func Run(opts Options) colorutil.HSV8 {
	window := gocv.NewWindow(opts.Title)
	defer window.Close()

	hue := window.CreateTrackbar("H", app.MaxHue)
	sat := window.CreateTrackbar("S", app.MaxSaturation)
	val := window.CreateTrackbar("V", app.MaxValue)
	hue.SetPos(int(opts.Start.H))
	sat.SetPos(int(opts.Start.S))
	val.SetPos(int(opts.Start.V))

	hsvImg := gocv.NewMatWithSize(opts.Height, opts.Width, gocv.MatTypeCV8UC3)
	defer hsvImg.Close()
	canvasImg := gocv.NewMat()
	defer canvasImg.Close()

	sel := opts.Start
	log.Printf("highgui: comparing opencv with %s, Esc to quit", opts.Candidate.Name())

	for window.IsOpen() {
		sel = colorutil.HSV8{
			H: uint8(hue.GetPos()),
			S: uint8(sat.GetPos()),
			V: uint8(val.GetPos()),
		}

		hsvImg.SetTo(gocv.NewScalar(float64(sel.H), float64(sel.S), float64(sel.V), 0))
		gocv.CvtColor(hsvImg, &canvasImg, gocv.ColorHSVToBGR)

		// at<uchar> indexes bytes, so columns 0-2 of row 0 are B, G, R.
		cv := colorutil.RGB8{
			R: canvasImg.GetUCharAt(0, 2),
			G: canvasImg.GetUCharAt(0, 1),
			B: canvasImg.GetUCharAt(0, 0),
		}

		for i, row := range overlayRows(sel, cv, opts.Candidate) {
			origin := referenceOrigin
			if i > 0 {
				origin = candidateOrigin
			}
			drawText(&canvasImg, row.Text(), origin, 0.5)
		}

		window.IMShow(canvasImg)
		if window.WaitKey(1) == keyEscape {
			break
		}
	}

	return sel
}

// overlayRows pairs OpenCV's conversion of sel with the candidate's
// HSV->RGB->HSV round trip.
func overlayRows(sel colorutil.HSV8, cv colorutil.RGB8, candidate reference.Converter) []swatch.Row {
	return []swatch.Row{
		{Label: "opencv: ", RGB: cv, HSV: sel},
		swatch.NewRow("test: ", candidate, sel),
	}
}

// drawText draws white Hershey text with a two-pixel black outline.
func drawText(canvas *gocv.Mat, text string, org image.Point, scale float64) {
	const w = 2
	for dy := -w; dy <= w; dy++ {
		for dx := -w; dx <= w; dx++ {
			gocv.PutTextWithParams(canvas, text, org.Add(image.Pt(dx, dy)),
				gocv.FontHersheySimplex, scale, colorutil.Black, 1, gocv.LineAA, false)
		}
	}
	gocv.PutTextWithParams(canvas, text, org,
		gocv.FontHersheySimplex, scale, colorutil.White, 1, gocv.LineAA, false)
}
