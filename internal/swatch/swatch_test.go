package swatch

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"hsv-colortest/internal/reference"
	"hsv-colortest/pkg/colorutil"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/tiff"
)

func TestFormatLabel(t *testing.T) {
	got := FormatLabel("test: ", colorutil.RGB8{R: 255, G: 0, B: 8}, colorutil.HSV8{H: 179, S: 255, V: 255})
	want := "test: rgb=(255, 0, 8), hsv=(179, 255, 255)"
	if got != want {
		t.Fatalf("FormatLabel = %q, want %q", got, want)
	}
}

func TestNewRowRoundTrips(t *testing.T) {
	row := NewRow("test: ", reference.Custom{}, colorutil.HSV8{H: 60, S: 255, V: 255})
	if row.RGB != (colorutil.RGB8{G: 255}) {
		t.Fatalf("RGB = %v", row.RGB)
	}
	if row.HSV != (colorutil.HSV8{H: 60, S: 255, V: 255}) {
		t.Fatalf("HSV = %v", row.HSV)
	}
}

func TestRenderBands(t *testing.T) {
	rows := []Row{
		{Label: "a: ", RGB: colorutil.RGB8{R: 200, G: 10, B: 30}},
		{Label: "b: ", RGB: colorutil.RGB8{R: 5, G: 150, B: 250}},
	}
	const width, rowHeight = 480, 40

	img := Render(rows, width, rowHeight)
	if b := img.Bounds(); b.Dx() != width || b.Dy() != 2*rowHeight {
		t.Fatalf("bounds = %v", b)
	}

	for i, row := range rows {
		if font.MeasureString(basicfont.Face7x13, row.Text()).Ceil()+textMarginX+outlineWidth >= width-1 {
			t.Fatalf("label %q too wide for the test image", row.Text())
		}
		got := img.RGBAAt(width-1, i*rowHeight+rowHeight/2)
		want := color.RGBA{R: row.RGB.R, G: row.RGB.G, B: row.RGB.B, A: 255}
		if got != want {
			t.Errorf("band %d color = %v, want %v", i, got, want)
		}
	}
}

func TestDrawTextOutline(t *testing.T) {
	img := Render([]Row{{Label: "x: ", RGB: colorutil.RGB8{R: 90, G: 90, B: 90}}}, 480, 40)

	var white, black bool
	for y := 0; y < 40; y++ {
		for x := 0; x < 200; x++ {
			switch img.RGBAAt(x, y) {
			case colorutil.White:
				white = true
			case colorutil.Black:
				black = true
			}
		}
	}
	if !white || !black {
		t.Fatalf("expected white text with black outline, white=%v black=%v", white, black)
	}
}

func TestPaintStrips(t *testing.T) {
	converters := []reference.Converter{reference.Custom{}, reference.Float{}}
	const width, rowHeight = 360, 20

	cols := HueColumns(255, 255, width)
	var strips []Strip
	for _, c := range converters {
		strips = append(strips, ConvertStrip(c, cols))
	}

	img := PaintStrips(strips, width, rowHeight)
	if b := img.Bounds(); b.Dx() != width || b.Dy() != len(converters)*rowHeight {
		t.Fatalf("bounds = %v", b)
	}

	for i, c := range converters {
		if strips[i].Name != c.Name() {
			t.Errorf("strip %d name = %q, want %q", i, strips[i].Name, c.Name())
		}
		for _, x := range []int{200, 300, width - 1} {
			r, g, b := c.HSVToRGB(HueAt(x, width), 255, 255)
			want := color.RGBA{R: r, G: g, B: b, A: 255}
			if got := img.RGBAAt(x, i*rowHeight+rowHeight-1); got != want {
				t.Errorf("%s at x=%d: %v, want %v", c.Name(), x, got, want)
			}
		}
	}
}

func TestPaintStripsShortRow(t *testing.T) {
	strip := Strip{Name: "", Colors: []colorutil.RGB8{{R: 255}, {R: 255}}}
	img := PaintStrips([]Strip{strip}, 10, 4)

	if got := img.RGBAAt(1, 3); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("painted column = %v", got)
	}
	if got := img.RGBAAt(9, 3); got != colorutil.Black {
		t.Errorf("column past the strip = %v, want black", got)
	}
}

func TestHueColumns(t *testing.T) {
	cols := HueColumns(128, 64, 360)
	if len(cols) != 360 {
		t.Fatalf("len = %d", len(cols))
	}
	if cols[180] != (colorutil.HSV8{H: 90, S: 128, V: 64}) {
		t.Fatalf("cols[180] = %v", cols[180])
	}
}

func TestHueAt(t *testing.T) {
	if HueAt(0, 360) != 0 || HueAt(359, 360) != 179 || HueAt(180, 360) != 90 {
		t.Fatal("HueAt does not span 0-179")
	}
}

func TestWritePNG(t *testing.T) {
	img := Render([]Row{{Label: "p: ", RGB: colorutil.RGB8{R: 1, G: 2, B: 3}}}, 64, 16)
	path := filepath.Join(t.TempDir(), "swatch.png")

	if err := WritePNG(path, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("decoded bounds %v, want %v", decoded.Bounds(), img.Bounds())
	}
}

func TestWritePNGBadPath(t *testing.T) {
	img := Render([]Row{{Label: "q: "}}, 8, 8)
	if err := WritePNG(filepath.Join(t.TempDir(), "missing", "x.png"), img); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestWriteImageTIFF(t *testing.T) {
	cols := HueColumns(255, 255, 180)
	img := PaintStrips([]Strip{ConvertStrip(reference.Custom{}, cols)}, 180, 8)
	path := filepath.Join(t.TempDir(), "strip.TIFF")

	if err := WriteImage(path, img); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	decoded, err := tiff.Decode(f)
	if err != nil {
		t.Fatalf("tiff.Decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("decoded bounds %v, want %v", decoded.Bounds(), img.Bounds())
	}
	r, g, b, _ := decoded.At(179, 7).RGBA()
	want := img.RGBAAt(179, 7)
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Fatalf("pixel (179, 7) = (%d, %d, %d), want %v", r>>8, g>>8, b>>8, want)
	}
}
