package voronoi

import (
	"slices"
)

// DefaultMinSize is the edge length at or below which a region is resolved
// row by row instead of being split further.
const DefaultMinSize = 16

// Config holds the rasterizer options. The zero value is usable.
type Config struct {
	// Metric defaults to Euclidean.
	Metric Metric
	// MinSize is the small-region threshold. Values below 3 are raised to 3
	// so that every cut leaves interior pixels on both sides.
	MinSize int
	// CrossCheck, when positive, compares every CrossCheck-th pixel against
	// a brute force search over all sites after the pass and repairs
	// mismatches.
	CrossCheck int
	// FlushEvery flushes a Flusher surface after that many pixel writes.
	// Zero flushes once at the end of the pass.
	FlushEvery int
}

// Stats describes the work done by one pass.
type Stats struct {
	Regions    int // regions visited
	Fills      int // single-candidate regions flood filled
	Leaves     int // small regions resolved row by row
	Resolved   int // pixels labeled by a nearest-site search
	Mismatches int // pixels repaired by the cross-check
}

// box is an inclusive pixel rectangle.
type box struct {
	minX, minY, maxX, maxY int
}

func (b box) dx() int { return b.maxX - b.minX + 1 }
func (b box) dy() int { return b.maxY - b.minY + 1 }

func (b box) contains(s *Site) bool {
	return b.minX < s.X && s.X < b.maxX && b.minY < s.Y && s.Y < b.maxY
}

// Rasterizer computes label grids by recursive box splitting. It keeps
// scratch buffers between passes and is not safe for concurrent use.
type Rasterizer struct {
	cfg    Config
	metric Metric

	// per-pass state
	sites         Sites
	grid          *LabelGrid
	store         labelStore
	surf          PixelSurface
	width, height int
	set           siteSet
	stats         Stats
	pending       int
}

// NewRasterizer returns a rasterizer for cfg.
func NewRasterizer(cfg Config) *Rasterizer {
	if cfg.MinSize == 0 {
		cfg.MinSize = DefaultMinSize
	}
	cfg.MinSize = max(cfg.MinSize, 3)
	return &Rasterizer{cfg: cfg, metric: cfg.Metric.orDefault()}
}

// Metric returns the metric used by the rasterizer.
func (r *Rasterizer) Metric() Metric { return r.metric }

// Rasterize labels every pixel of surf with its nearest site and pushes
// the site colors to surf. grid is reset and reused.
func (r *Rasterizer) Rasterize(sites Sites, grid *LabelGrid, surf PixelSurface) (Stats, error) {
	w, h := surf.Width(), surf.Height()
	if err := grid.Reset(w, h, sites); err != nil {
		return Stats{}, err
	}
	r.sites, r.grid, r.store, r.surf = sites, grid, grid.store, surf
	r.width, r.height = w, h
	r.stats, r.pending = Stats{}, 0
	r.set.init(len(sites))
	defer func() {
		r.sites, r.grid, r.store, r.surf = nil, nil, nil, nil
	}()

	for _, s := range sites {
		surf.SetPixel(s.Y*w+s.X, s.Color)
	}
	r.touch(len(sites))

	all := make([]int32, len(sites))
	for i := range all {
		all[i] = int32(i)
	}
	r.region(box{0, 0, w - 1, h - 1}, all, true)

	if r.cfg.CrossCheck > 0 {
		r.crossCheck(all)
	}
	r.flush()

	logger().Debug("rasterized",
		"width", w, "height", h, "sites", len(sites), "metric", r.metric.String(),
		"regions", r.stats.Regions, "fills", r.stats.Fills, "leaves", r.stats.Leaves,
		"resolved", r.stats.Resolved, "mismatches", r.stats.Mismatches)
	return r.stats, nil
}

// region resolves every pixel of b given that only cands can own them. On
// entry the edges of b are already resolved, except for the whole canvas.
func (r *Rasterizer) region(b box, cands []int32, top bool) {
	r.stats.Regions++
	if len(cands) == 1 {
		r.fillBox(b, cands[0])
		r.stats.Fills++
		return
	}
	if top {
		for _, e := range r.edges(b) {
			r.scanLine(e, cands, nil)
		}
	}
	if b.dx() <= r.cfg.MinSize && b.dy() <= r.cfg.MinSize {
		for y := b.minY; y <= b.maxY; y++ {
			r.scanLine(row(r.width, y, b.minX, b.maxX), cands, nil)
		}
		r.stats.Leaves++
		return
	}

	// Both halves share the cut line.
	var (
		halves [2]box
		cut    line
		shared [2]int // edge index of the cut line in each half
	)
	if b.dx() >= b.dy() {
		mid := (b.minX + b.maxX) / 2
		cut = column(r.width, mid, b.minY, b.maxY)
		halves[0] = box{b.minX, b.minY, mid, b.maxY}
		halves[1] = box{mid, b.minY, b.maxX, b.maxY}
		shared = [2]int{edgeRight, edgeLeft}
	} else {
		mid := (b.minY + b.maxY) / 2
		cut = row(r.width, mid, b.minX, b.maxX)
		halves[0] = box{b.minX, b.minY, b.maxX, mid}
		halves[1] = box{b.minX, mid, b.maxX, b.maxY}
		shared = [2]int{edgeBottom, edgeTop}
	}

	r.set.begin()
	r.scanLine(cut, cands, &r.set)
	cutSet := slices.Clone(r.set.ids)

	for k, half := range halves {
		r.region(half, r.candidates(half, shared[k], cands, cutSet), false)
	}
}

const (
	edgeTop = iota
	edgeBottom
	edgeLeft
	edgeRight
)

func (r *Rasterizer) edges(b box) [4]line {
	return [4]line{
		edgeTop:    row(r.width, b.minY, b.minX, b.maxX),
		edgeBottom: row(r.width, b.maxY, b.minX, b.maxX),
		edgeLeft:   column(r.width, b.minX, b.minY, b.maxY),
		edgeRight:  column(r.width, b.maxX, b.minY, b.maxY),
	}
}

// candidates derives the candidate subset of half: the parent candidates
// whose capital lies strictly inside it, plus every site owning a pixel on
// its boundary. The result keeps the ascending id order of parent.
func (r *Rasterizer) candidates(half box, skip int, parent, cutSet []int32) []int32 {
	r.set.begin()
	for _, id := range cutSet {
		r.set.add(id)
	}
	for k, e := range r.edges(half) {
		if k != skip {
			r.scanLine(e, parent, &r.set)
		}
	}

	sub := make([]int32, 0, len(r.set.ids))
	seen := 0
	for _, id := range parent {
		switch {
		case r.set.has(id):
			seen++
			sub = append(sub, id)
		case half.contains(&r.sites[id]):
			sub = append(sub, id)
		}
	}
	if seen < len(r.set.ids) {
		// A boundary pixel belongs to a site the parent ruled out.
		for _, id := range r.set.ids {
			if !slices.Contains(parent, id) {
				logger().Warn("boundary site outside parent candidates",
					"site", id, "region", half)
				sub = append(sub, id)
			}
		}
		slices.Sort(sub)
	}
	return sub
}

// fillBox floods b with label l, one range per row.
func (r *Rasterizer) fillBox(b box, l int32) {
	for y := b.minY; y <= b.maxY; y++ {
		ln := row(r.width, y, b.minX, b.maxX)
		r.fillRun(ln, 0, ln.n-1, l)
	}
}

// crossCheck compares a sample of pixels with a brute force search over
// every site and repairs the ones that differ.
func (r *Rasterizer) crossCheck(all []int32) {
	for i := 0; i < r.store.size(); i += r.cfg.CrossCheck {
		x, y := i%r.width, i/r.width
		want := nearest(r.sites, all, r.metric, float64(x), float64(y))
		if got := r.store.get(i); got != want {
			logger().Warn("pixel resolved to the wrong site",
				"x", x, "y", y, "got", got, "want", want)
			r.store.set(i, want)
			r.surf.SetPixel(i, r.sites[want].Color)
			r.stats.Mismatches++
		}
	}
}

// touch accounts for n pixel writes and flushes when the threshold is hit.
func (r *Rasterizer) touch(n int) {
	if r.cfg.FlushEvery <= 0 {
		return
	}
	r.pending += n
	if r.pending >= r.cfg.FlushEvery {
		r.flush()
	}
}

func (r *Rasterizer) flush() {
	r.pending = 0
	if f, ok := r.surf.(Flusher); ok {
		f.Flush()
	}
}

// Rasterize labels every pixel of surf with its nearest site under m using
// a fresh grid and the default options.
func Rasterize(sites Sites, surf PixelSurface, m Metric) (*LabelGrid, error) {
	grid := NewLabelGrid()
	if _, err := NewRasterizer(Config{Metric: m}).Rasterize(sites, grid, surf); err != nil {
		return nil, err
	}
	return grid, nil
}
