// Package colorutil provides shared color utilities for the HSV color test.
package colorutil

import (
	"image/color"
	"math"
)

// Overlay colors used for label text.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// RGBToHSV converts RGB (0-255) to HSV (OpenCV convention: H 0-180, S 0-255, V 0-255).
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC * 255.0 // V in 0-255

	if maxC == 0 {
		s = 0
	} else {
		s = (diff / maxC) * 255.0 // S in 0-255
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	h = h / 2 // Convert to OpenCV's 0-180 range

	return h, s, v
}

// HSVToRGB converts HSV (OpenCV convention: H 0-180, S 0-255, V 0-255) to
// RGB channels in 0-255, rounded to nearest.
func HSVToRGB(h, s, v float64) (r, g, b uint8) {
	s /= 255.0
	v /= 255.0

	if s <= 0 {
		c := uint8(v*255 + 0.5)
		return c, c, c
	}

	hh := h * 2 / 60 // degrees / 60
	i := math.Floor(hh)
	f := hh - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var fr, fg, fb float64
	switch int(i) % 6 {
	case 0:
		fr, fg, fb = v, t, p
	case 1:
		fr, fg, fb = q, v, p
	case 2:
		fr, fg, fb = p, v, t
	case 3:
		fr, fg, fb = p, q, v
	case 4:
		fr, fg, fb = t, p, v
	case 5:
		fr, fg, fb = v, p, q
	}

	return uint8(fr*255 + 0.5), uint8(fg*255 + 0.5), uint8(fb*255 + 0.5)
}
