package voronoi

import (
	"fmt"
	"image"
	"image/color"
)

// Recolor assigns new colors to sites and re-renders surf from the already
// resolved grid. No nearest-site search is performed and the grid is not
// modified.
func Recolor(sites Sites, grid *LabelGrid, surf PixelSurface, fn ColorFunc) {
	sites.Recolor(fn)
	render(sites, grid, surf)
}

// render paints every row of grid as a sequence of same-label ranges.
func render(sites Sites, grid *LabelGrid, surf PixelSurface) {
	w := grid.Width()
	for y := 0; y < grid.Height(); y++ {
		base := y * w
		for x := 0; x < w; {
			l := grid.Label(base + x)
			end := x
			for end+1 < w && grid.Label(base+end+1) == l {
				end++
			}
			if l != Unset {
				surf.SetRange(base+x, base+end, sites[l].Color)
			}
			x = end + 1
		}
	}
	if f, ok := surf.(Flusher); ok {
		f.Flush()
	}
}

// DeriveColors averages img over exactly the pixels each site owns. The
// image must have the dimensions of the grid; use FitImage to resample it
// first. A site that owns no pixel keeps its current color.
func DeriveColors(sites Sites, grid *LabelGrid, img image.Image) ([]color.RGBA, error) {
	b := img.Bounds()
	if b.Dx() != grid.Width() || b.Dy() != grid.Height() {
		return nil, fmt.Errorf("%w: image is %dx%d, grid is %dx%d",
			ErrSize, b.Dx(), b.Dy(), grid.Width(), grid.Height())
	}

	type acc struct{ r, g, b, n uint64 }
	sums := make([]acc, len(sites))
	rgba, _ := img.(*image.RGBA)

	w := grid.Width()
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < w; x++ {
			l := grid.Label(y*w + x)
			if l == Unset {
				continue
			}
			var cr, cg, cb uint8
			if rgba != nil {
				j := rgba.PixOffset(b.Min.X+x, b.Min.Y+y)
				cr, cg, cb = rgba.Pix[j], rgba.Pix[j+1], rgba.Pix[j+2]
			} else {
				c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
				cr, cg, cb = c.R, c.G, c.B
			}
			s := &sums[l]
			s.r += uint64(cr)
			s.g += uint64(cg)
			s.b += uint64(cb)
			s.n++
		}
	}

	colors := make([]color.RGBA, len(sites))
	for i, s := range sums {
		if s.n == 0 {
			colors[i] = sites[i].Color
			continue
		}
		colors[i] = color.RGBA{
			R: uint8(s.r / s.n),
			G: uint8(s.g / s.n),
			B: uint8(s.b / s.n),
			A: 0xff,
		}
	}
	return colors, nil
}
