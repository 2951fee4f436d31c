package voronoi

import (
	"image"

	"github.com/fogleman/gg"
)

// Diagram owns everything a rendered Voronoi diagram needs between frames:
// the site store, the label grid, the canvas, the rasterizer scratch state
// and the boundary cache.
type Diagram struct {
	Sites  Sites
	Grid   *LabelGrid
	Canvas *Canvas
	Stats  Stats

	raster *Rasterizer
	border Border
}

// NewDiagram validates sites against a width×height canvas. Nothing is
// rasterized until Render is called.
func NewDiagram(sites Sites, width, height int, cfg Config) (*Diagram, error) {
	if err := sites.validate(width, height); err != nil {
		return nil, err
	}
	return &Diagram{
		Sites:  sites,
		Grid:   NewLabelGrid(),
		Canvas: NewCanvas(width, height),
		raster: NewRasterizer(cfg),
	}, nil
}

// Render runs a full rasterization pass. The label grid buffer is reused.
func (d *Diagram) Render() error {
	stats, err := d.raster.Rasterize(d.Sites, d.Grid, d.Canvas)
	if err != nil {
		return err
	}
	d.Stats = stats
	return nil
}

// Replace swaps in a new site store, e.g. for the next stage of a staged
// render. The canvas is kept; call Render afterwards.
func (d *Diagram) Replace(sites Sites) error {
	if err := sites.validate(d.Canvas.Width(), d.Canvas.Height()); err != nil {
		return err
	}
	d.Sites = sites
	return nil
}

// Recolor assigns new site colors and repaints from the label grid.
func (d *Diagram) Recolor(fn ColorFunc) {
	Recolor(d.Sites, d.Grid, d.Canvas, fn)
}

// RecolorFromImage colors every site with the average of img over its
// cell. img is resampled to the canvas size when needed.
func (d *Diagram) RecolorFromImage(img image.Image) error {
	fitted := FitImage(img, d.Canvas.Width(), d.Canvas.Height())
	colors, err := DeriveColors(d.Sites, d.Grid, fitted)
	if err != nil {
		return err
	}
	d.Recolor(ImageColors(colors))
	return nil
}

// Antialias blends the cell boundaries. The boundary cache is reused until
// the next Render.
func (d *Diagram) Antialias() {
	d.border.Apply(d.Sites, d.Grid, d.Canvas, d.raster.Metric())
}

// DrawMarkers draws a dot on every capital.
func (d *Diagram) DrawMarkers(radius float64) {
	DrawMarkers(d.Canvas.Image(), d.Sites, radius)
}

// Image returns the rendered canvas.
func (d *Diagram) Image() *image.RGBA {
	return d.Canvas.Image()
}

// SavePNG encodes the canvas to path.
func (d *Diagram) SavePNG(path string) error {
	return gg.SavePNG(path, d.Canvas.Image())
}
