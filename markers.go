package voronoi

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	lightMarker = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	darkMarker  = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
)

// luminanceThreshold is the relative luminance at which black and white
// text reach the same WCAG contrast ratio.
const luminanceThreshold = 0.179

// Luminance returns the relative luminance of c in [0, 1].
func Luminance(c color.RGBA) float64 {
	cf, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	r, g, b := cf.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// MarkerColor picks a dark marker for light sites and a light one otherwise.
func MarkerColor(c color.RGBA) color.RGBA {
	if Luminance(c) > luminanceThreshold {
		return darkMarker
	}
	return lightMarker
}

// DrawMarkers draws a dot of the given radius on every capital. The dot is
// drawn directly into dst.
func DrawMarkers(dst *image.RGBA, sites Sites, radius float64) {
	if radius <= 0 {
		return
	}
	dc := gg.NewContextForRGBA(dst)
	for _, s := range sites {
		dc.DrawCircle(float64(s.X)+0.5, float64(s.Y)+0.5, radius)
		dc.SetColor(MarkerColor(s.Color))
		dc.Fill()
	}
}
