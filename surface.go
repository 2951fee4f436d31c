package voronoi

import (
	"image"
	"image/color"
)

// PixelSurface is an addressable color buffer the rasterizer pushes its
// output to. Pixels are addressed by row-major index.
type PixelSurface interface {
	SetPixel(i int, c color.RGBA)
	// SetRange colors the pixels l through r inclusive. Both indexes are on
	// the same row.
	SetRange(l, r int, c color.RGBA)
	Width() int
	Height() int
}

// Flusher is implemented by surfaces that buffer writes before they become
// visible, e.g. a display texture.
type Flusher interface {
	Flush()
}

// Canvas is a PixelSurface backed by an *image.RGBA, which makes it usable
// as a drawing target for gg.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates an opaque black canvas.
func NewCanvas(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return &Canvas{img: img}
}

// Width returns the canvas width.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Image returns the backing image. Writes to it are visible on the canvas.
func (c *Canvas) Image() *image.RGBA { return c.img }

// SetPixel implements PixelSurface.
func (c *Canvas) SetPixel(i int, col color.RGBA) {
	j := c.offset(i)
	p := c.img.Pix[j : j+4 : j+4]
	p[0], p[1], p[2], p[3] = col.R, col.G, col.B, col.A
}

// SetRange implements PixelSurface.
func (c *Canvas) SetRange(l, r int, col color.RGBA) {
	if r < l {
		return
	}
	start, end := c.offset(l), c.offset(r)+4
	p := c.img.Pix[start:end]
	for j := 0; j < len(p); j += 4 {
		p[j], p[j+1], p[j+2], p[j+3] = col.R, col.G, col.B, col.A
	}
}

// At returns the color of pixel i.
func (c *Canvas) At(i int) color.RGBA {
	j := c.offset(i)
	p := c.img.Pix[j : j+4 : j+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func (c *Canvas) offset(i int) int {
	w := c.Width()
	return (i/w)*c.img.Stride + (i%w)*4
}
