// Package reference provides HSV<->RGB converters that follow the OpenCV
// 8-bit convention (H 0-179, S and V 0-255) so that different
// implementations can be compared side by side.
package reference

import (
	"math"
	"sort"

	"hsv-colortest/internal/errors"
	"hsv-colortest/pkg/colorutil"

	"github.com/crazy3lf/colorconv"
)

// Converter converts between 8-bit HSV and RGB triples.
type Converter interface {
	Name() string
	HSVToRGB(h, s, v uint8) (r, g, b uint8)
	RGBToHSV(r, g, b uint8) (h, s, v uint8)
}

// Converter names accepted by Lookup.
const (
	NameCustom    = "custom"
	NameFloat     = "float"
	NameColorconv = "colorconv"
)

var registry = map[string]Converter{
	NameCustom:    Custom{},
	NameFloat:     Float{},
	NameColorconv: Colorconv{},
}

// Lookup returns the pure-Go converter registered under name.
func Lookup(name string) (Converter, error) {
	c, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("unknown converter %q (have %v)", name, Names())
	}
	return c, nil
}

// Names lists the registered converter names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Custom is the hand-written integer/float32 conversion under test.
type Custom struct{}

func (Custom) Name() string { return NameCustom }

func (Custom) HSVToRGB(h, s, v uint8) (r, g, b uint8) {
	return colorutil.HSVToRGB8(h, s, v)
}

func (Custom) RGBToHSV(r, g, b uint8) (h, s, v uint8) {
	return colorutil.RGBToHSV8(r, g, b)
}

// Float converts in float64 and rounds to nearest.
type Float struct{}

func (Float) Name() string { return NameFloat }

func (Float) HSVToRGB(h, s, v uint8) (r, g, b uint8) {
	return colorutil.HSVToRGB(float64(h), float64(s), float64(v))
}

func (Float) RGBToHSV(r, g, b uint8) (h, s, v uint8) {
	hf, sf, vf := colorutil.RGBToHSV(float64(r), float64(g), float64(b))
	return wrapHue(hf), round8(sf), round8(vf)
}

// Colorconv delegates to github.com/crazy3lf/colorconv, which works in
// degrees and unit fractions.
type Colorconv struct{}

func (Colorconv) Name() string { return NameColorconv }

func (Colorconv) HSVToRGB(h, s, v uint8) (r, g, b uint8) {
	r, g, b, err := colorconv.HSVToRGB(float64(h)*2, float64(s)/255, float64(v)/255)
	if err != nil {
		// Inputs are range-checked by their type; fall back to gray like the
		// custom routine does for an impossible sector.
		return v, v, v
	}
	return r, g, b
}

func (Colorconv) RGBToHSV(r, g, b uint8) (h, s, v uint8) {
	hd, sf, vf := colorconv.RGBToHSV(r, g, b)
	return wrapHue(hd / 2), round8(sf * 255), round8(vf * 255)
}

func round8(x float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(x))))
}

// wrapHue rounds a 0-180 hue and folds 180 back to 0.
func wrapHue(h float64) uint8 {
	n := int(math.Round(h)) % colorutil.HueSteps
	if n < 0 {
		n += colorutil.HueSteps
	}
	return uint8(n)
}
