package colorutil

import "image/color"

// HueSteps is the number of stored hue values: degrees are halved so the
// hue fits in a byte (0-179).
const HueSteps = 180

// RGB8 is an 8-bit RGB triple.
type RGB8 struct {
	R, G, B uint8
}

// HSV8 is an 8-bit HSV triple in the OpenCV convention: H 0-179 (degrees/2),
// S and V 0-255.
type HSV8 struct {
	H, S, V uint8
}

// HSV8Model converts colors to HSV8.
var HSV8Model = color.ModelFunc(hsv8Model)

func hsv8Model(c color.Color) color.Color {
	if _, ok := c.(HSV8); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	h, s, v := RGBToHSV8(uint8(r>>8), uint8(g>>8), uint8(b>>8))
	return HSV8{H: h, S: s, V: v}
}

// RGBA implements color.Color.
func (c HSV8) RGBA() (r, g, b, a uint32) {
	return c.RGB().RGBA()
}

// RGB converts c with HSVToRGB8.
func (c HSV8) RGB() RGB8 {
	r, g, b := HSVToRGB8(c.H, c.S, c.V)
	return RGB8{R: r, G: g, B: b}
}

// RGBA implements color.Color.
func (c RGB8) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// HSV converts c with RGBToHSV8.
func (c RGB8) HSV() HSV8 {
	h, s, v := RGBToHSV8(c.R, c.G, c.B)
	return HSV8{H: h, S: s, V: v}
}

// RGBToHSV8 converts an RGB triple to HSV using integer arithmetic.
//
// Every division truncates toward zero and the minimum channel is checked in
// the order blue, red, green, so results match OpenCV-style reference output
// bit for bit.
func RGBToHSV8(r, g, b uint8) (h, s, v uint8) {
	ri, gi, bi := int(r), int(g), int(b)

	maxC := max3(ri, gi, bi)
	minC := min3(ri, gi, bi)
	diff := maxC - minC

	var hue int
	if diff != 0 {
		if minC == bi {
			hue = 60*(gi-ri)/diff + 60
		} else if minC == ri {
			hue = 60*(bi-gi)/diff + 180
		} else {
			hue = 60*(ri-bi)/diff + 300
		}
	}
	// The sector formulas stay within one turn of [0, 360).
	if hue < 0 {
		hue += 360
	}
	if hue >= 360 {
		hue -= 360
	}

	sat := 0
	if maxC != 0 {
		sat = 255 * diff / maxC
	}

	return uint8(hue / 2), uint8(sat), uint8(maxC)
}

// HSVToRGB8 converts an HSV triple (H 0-179) to RGB using float32 arithmetic
// over the six hue sectors. Channels are truncated, not rounded.
func HSVToRGB8(h, s, v uint8) (r, g, b uint8) {
	hf := float32(h) / 180
	sf := float32(s) / 255
	vf := float32(v) / 255

	rf, gf, bf := vf, vf, vf

	// Explicit float32 conversions round each product so the compiler
	// cannot fuse it into a multiply-add.
	if sf > 0 {
		h6 := float32(hf * 6)
		i := int(h6)
		f := h6 - float32(i)

		switch i {
		case 0:
			gf *= 1 - float32(sf*(1-f))
			bf *= 1 - sf
		case 1:
			rf *= 1 - float32(sf*f)
			bf *= 1 - sf
		case 2:
			rf *= 1 - sf
			bf *= 1 - float32(sf*(1-f))
		case 3:
			rf *= 1 - sf
			gf *= 1 - float32(sf*f)
		case 4:
			rf *= 1 - float32(sf*(1-f))
			gf *= 1 - sf
		case 5:
			gf *= 1 - sf
			bf *= 1 - float32(sf*f)
		}
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func max3(a, b, c int) int {
	if a > b {
		if a > c {
			return a
		}
		return c
	}
	if b > c {
		return b
	}
	return c
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
