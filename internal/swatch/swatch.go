// Package swatch renders color swatches with their numeric labels.
package swatch

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"hsv-colortest/internal/errors"
	"hsv-colortest/internal/reference"
	"hsv-colortest/pkg/colorutil"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
)

const (
	textMarginX  = 10
	outlineWidth = 1
)

// Row is one converter's result for the selected HSV value.
type Row struct {
	Label string
	RGB   colorutil.RGB8
	HSV   colorutil.HSV8
}

// NewRow converts hsv with c and converts the result back, so the label
// shows the converter's own round trip.
func NewRow(label string, c reference.Converter, hsv colorutil.HSV8) Row {
	r, g, b := c.HSVToRGB(hsv.H, hsv.S, hsv.V)
	h, s, v := c.RGBToHSV(r, g, b)
	return Row{
		Label: label,
		RGB:   colorutil.RGB8{R: r, G: g, B: b},
		HSV:   colorutil.HSV8{H: h, S: s, V: v},
	}
}

// FormatLabel returns "<label>rgb=(r, g, b), hsv=(h, s, v)".
func FormatLabel(label string, rgb colorutil.RGB8, hsv colorutil.HSV8) string {
	return fmt.Sprintf("%srgb=(%d, %d, %d), hsv=(%d, %d, %d)",
		label, rgb.R, rgb.G, rgb.B, hsv.H, hsv.S, hsv.V)
}

// Text returns the row's overlay label.
func (r Row) Text() string {
	return FormatLabel(r.Label, r.RGB, r.HSV)
}

// Render paints one band per row, filled with the row's RGB color and
// labelled with its numbers.
func Render(rows []Row, width, rowHeight int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, rowHeight*len(rows)))

	for i, row := range rows {
		band := image.Rect(0, i*rowHeight, width, (i+1)*rowHeight)
		fill := color.RGBA{R: row.RGB.R, G: row.RGB.G, B: row.RGB.B, A: 255}
		draw.Draw(img, band, image.NewUniform(fill), image.Point{}, draw.Src)
		DrawText(img, row.Text(), textMarginX, baseline(band))
	}

	return img
}

// Strip is one labelled row of a hue strip sheet, one color per column.
type Strip struct {
	Name   string
	Colors []colorutil.RGB8
}

// HueColumns returns the HSV value of each column of a strip width pixels
// wide at fixed saturation and value.
func HueColumns(s, v uint8, width int) []colorutil.HSV8 {
	cols := make([]colorutil.HSV8, width)
	for x := range cols {
		cols[x] = colorutil.HSV8{H: HueAt(x, width), S: s, V: v}
	}
	return cols
}

// ConvertStrip converts every column with c.
func ConvertStrip(c reference.Converter, cols []colorutil.HSV8) Strip {
	colors := make([]colorutil.RGB8, len(cols))
	for i, hsv := range cols {
		r, g, b := c.HSVToRGB(hsv.H, hsv.S, hsv.V)
		colors[i] = colorutil.RGB8{R: r, G: g, B: b}
	}
	return Strip{Name: c.Name(), Colors: colors}
}

// PaintStrips paints one row per strip, labelled with the strip name.
// Columns past the end of a strip's colors stay black.
func PaintStrips(strips []Strip, width, rowHeight int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, rowHeight*len(strips)))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorutil.Black), image.Point{}, draw.Src)

	for i, strip := range strips {
		y0 := i * rowHeight
		for x := 0; x < width && x < len(strip.Colors); x++ {
			c := strip.Colors[x]
			col := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
			for y := y0; y < y0+rowHeight; y++ {
				img.SetRGBA(x, y, col)
			}
		}
		DrawText(img, strip.Name, textMarginX, baseline(image.Rect(0, y0, width, y0+rowHeight)))
	}

	return img
}

// HueAt maps column x of a strip width pixels wide to a stored hue.
func HueAt(x, width int) uint8 {
	return uint8(x * colorutil.HueSteps / width)
}

// DrawText draws white text with a black outline so it stays legible over
// any swatch color. (x, y) is the baseline origin.
func DrawText(dst draw.Image, text string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(colorutil.Black),
		Face: basicfont.Face7x13,
	}
	for dy := -outlineWidth; dy <= outlineWidth; dy++ {
		for dx := -outlineWidth; dx <= outlineWidth; dx++ {
			d.Dot = fixed.P(x+dx, y+dy)
			d.DrawString(text)
		}
	}

	d.Src = image.NewUniform(colorutil.White)
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

// baseline centers a line of basicfont text vertically in r.
func baseline(r image.Rectangle) int {
	m := basicfont.Face7x13.Metrics()
	textHeight := (m.Ascent + m.Descent).Ceil()
	return r.Min.Y + (r.Dy()-textHeight)/2 + m.Ascent.Ceil()
}

// WriteImage encodes img to path as PNG, or as TIFF when the extension is
// .tif or .tiff.
func WriteImage(path string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return writeFile(path, img, func(f *os.File, img image.Image) error {
			return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
		})
	default:
		return WritePNG(path, img)
	}
}

// WritePNG encodes img to path as PNG.
func WritePNG(path string, img image.Image) error {
	return writeFile(path, img, func(f *os.File, img image.Image) error {
		return png.Encode(f, img)
	})
}

func writeFile(path string, img image.Image, encode func(*os.File, image.Image) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}

	if err := encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}
	return errors.Wrap(f.Close())
}
