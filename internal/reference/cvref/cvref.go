// Package cvref exposes OpenCV's cvtColor as a reference converter.
package cvref

import (
	"hsv-colortest/internal/errors"
	"hsv-colortest/internal/reference"
	"hsv-colortest/pkg/colorutil"

	"gocv.io/x/gocv"
)

// Name is the converter name used in reports and flags.
const Name = "opencv"

// OpenCV converts single pixels through a 1x1 CV_8UC3 Mat.
// It holds no Mats between calls and is safe for concurrent use.
type OpenCV struct{}

var _ reference.Converter = OpenCV{}

func (OpenCV) Name() string { return Name }

// HSVToRGB converts with COLOR_HSV2BGR. A conversion failure yields gray.
func (OpenCV) HSVToRGB(h, s, v uint8) (r, g, b uint8) {
	bgr, err := convertPixel([3]uint8{h, s, v}, gocv.ColorHSVToBGR)
	if err != nil {
		return v, v, v
	}
	return bgr[2], bgr[1], bgr[0]
}

// RGBToHSV converts with COLOR_BGR2HSV. A conversion failure yields black.
func (OpenCV) RGBToHSV(r, g, b uint8) (h, s, v uint8) {
	hsv, err := convertPixel([3]uint8{b, g, r}, gocv.ColorBGRToHSV)
	if err != nil {
		return 0, 0, 0
	}
	return hsv[0], hsv[1], hsv[2]
}

// Lookup resolves name to the OpenCV converter or a pure-Go one.
func Lookup(name string) (reference.Converter, error) {
	if name == Name {
		return OpenCV{}, nil
	}
	return reference.Lookup(name)
}

// Names lists every converter Lookup accepts.
func Names() []string {
	return append([]string{Name}, reference.Names()...)
}

// HSVImageToRGB converts a whole HSV pixel buffer (3 bytes per pixel) in one
// cvtColor call and returns it as packed RGB.
func HSVImageToRGB(hsv []byte, width, height int) ([]byte, error) {
	if len(hsv) != width*height*3 {
		return nil, errors.Errorf("hsv buffer is %d bytes, want %d for %dx%d", len(hsv), width*height*3, width, height)
	}

	src, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, hsv)
	if err != nil {
		return nil, errors.Wrapf(err, "creating hsv mat")
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.CvtColor(src, &dst, gocv.ColorHSVToRGB)

	out := dst.ToBytes()
	if len(out) != len(hsv) {
		return nil, errors.Errorf("cvtColor produced %d bytes, want %d", len(out), len(hsv))
	}
	return out, nil
}

// ConvertHSV converts a row of pixels in a single cvtColor call.
func ConvertHSV(pixels []colorutil.HSV8) ([]colorutil.RGB8, error) {
	if len(pixels) == 0 {
		return nil, nil
	}

	buf := make([]byte, 0, len(pixels)*3)
	for _, p := range pixels {
		buf = append(buf, p.H, p.S, p.V)
	}
	rgb, err := HSVImageToRGB(buf, len(pixels), 1)
	if err != nil {
		return nil, err
	}

	out := make([]colorutil.RGB8, len(pixels))
	for i := range out {
		out[i] = colorutil.RGB8{R: rgb[i*3], G: rgb[i*3+1], B: rgb[i*3+2]}
	}
	return out, nil
}

func convertPixel(px [3]uint8, code gocv.ColorConversionCode) ([3]uint8, error) {
	var out [3]uint8

	src, err := gocv.NewMatFromBytes(1, 1, gocv.MatTypeCV8UC3, px[:])
	if err != nil {
		return out, errors.Wrapf(err, "creating 1x1 mat")
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.CvtColor(src, &dst, code)

	data := dst.ToBytes()
	if len(data) != 3 {
		return out, errors.Errorf("cvtColor produced %d bytes, want 3", len(data))
	}
	copy(out[:], data)
	return out, nil
}
