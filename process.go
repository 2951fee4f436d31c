package voronoi

import (
	"image"
	"io"
	"math"
	"math/rand"
	"time"
)

// Processor : type with processing options
type Processor struct {
	Width        int
	Height       int
	NumSites     int
	Metric       string
	Exponent     float64
	MinSize      int
	CrossCheck   int
	Stages       int
	Seed         int64
	Antialias    bool
	MarkerRadius float64
	Grayscale    bool
}

// Process renders a Voronoi diagram into output as PNG. When src is not nil
// it is decoded and the site colors are averaged from it, otherwise every
// site gets a random color. A zero Width or Height takes the size of the
// source image.
//
// With Stages > 1 the diagram is rendered that many times with a
// geometrically growing number of sites; onStage is called after every
// stage with the diagram in its current state.
func (p *Processor) Process(src io.Reader, output string, onStage func(stage int, d *Diagram)) (*Diagram, error) {
	m, err := ParseMetric(p.Metric, p.Exponent)
	if err != nil {
		return nil, err
	}

	var img image.Image
	if src != nil {
		if img, err = LoadImage(src); err != nil {
			return nil, err
		}
		if p.Grayscale {
			img = Grayscale(img)
		}
	}
	width, height := p.Width, p.Height
	if img != nil && (width == 0 || height == 0) {
		width, height = img.Bounds().Dx(), img.Bounds().Dy()
	}

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))
	colors := RandomColors(rnd)
	if img != nil {
		colors = ZeroColors
	}

	var d *Diagram
	for stage, n := range stageCounts(p.NumSites, p.Stages) {
		sites, err := PlaceSites(n, width, height, colors, rnd)
		if err != nil {
			return nil, err
		}
		if d == nil {
			d, err = NewDiagram(sites, width, height, Config{
				Metric:     m,
				MinSize:    p.MinSize,
				CrossCheck: p.CrossCheck,
			})
		} else {
			err = d.Replace(sites)
		}
		if err != nil {
			return nil, err
		}
		if err = d.Render(); err != nil {
			return nil, err
		}
		if img != nil {
			if err = d.RecolorFromImage(img); err != nil {
				return nil, err
			}
		}
		if p.Antialias {
			d.Antialias()
		}
		d.DrawMarkers(p.MarkerRadius)
		if onStage != nil {
			onStage(stage, d)
		}
	}

	if err = d.SavePNG(output); err != nil {
		return nil, err
	}
	return d, nil
}

// stageCounts returns the site counts of a staged render: stages values
// growing geometrically from 1 and ending at n.
func stageCounts(n, stages int) []int {
	if stages <= 1 || n <= 1 {
		return []int{n}
	}
	stages = min(stages, n)
	counts := make([]int, 0, stages)
	ratio := math.Pow(float64(n), 1/float64(stages-1))
	for i := 0; i < stages-1; i++ {
		c := int(math.Round(math.Pow(ratio, float64(i))))
		if len(counts) > 0 && c <= counts[len(counts)-1] {
			c = counts[len(counts)-1] + 1
		}
		counts = append(counts, c)
	}
	return append(counts, n)
}
