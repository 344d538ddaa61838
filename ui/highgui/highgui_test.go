package highgui

import (
	"image"
	"testing"

	"hsv-colortest/internal/reference"
	"hsv-colortest/pkg/colorutil"

	"gocv.io/x/gocv"
)

func TestOverlayRows(t *testing.T) {
	sel := colorutil.HSV8{H: 179, S: 255, V: 255}
	rows := overlayRows(sel, colorutil.RGB8{R: 255, B: 8}, reference.Custom{})

	want := []string{
		"opencv: rgb=(255, 0, 8), hsv=(179, 255, 255)",
		"test: rgb=(255, 0, 8), hsv=(179, 255, 255)",
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows", len(rows))
	}
	for i := range want {
		if got := rows[i].Text(); got != want[i] {
			t.Errorf("row %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestDrawTextMarksCanvas(t *testing.T) {
	canvas := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(128, 128, 128, 0), 60, 240, gocv.MatTypeCV8UC3)
	defer canvas.Close()

	drawText(&canvas, "test", image.Pt(10, 30), 0.5)

	data := canvas.ToBytes()
	var dark, bright bool
	for _, b := range data {
		if b < 64 {
			dark = true
		}
		if b > 192 {
			bright = true
		}
	}
	if !dark || !bright {
		t.Fatalf("expected outline and fill pixels, dark=%v bright=%v", dark, bright)
	}
}
