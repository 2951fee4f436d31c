package voronoi

import (
	"image/color"
	"slices"
)

const maxNeighbors = 8

// borderPixel is one entry of the boundary adjacency cache. Before
// sampling, ids[:n] lists the distinct sites found next to the pixel; after
// sampling, ids holds the nine sub-pixel samples.
type borderPixel struct {
	index   int32
	n       uint8
	sampled bool
	ids     [9]int32
}

// Border caches the cell-boundary pixels of a label grid together with
// their supersampled site ids. The cache only depends on the assignment, so
// it survives recoloring and is rebuilt when the grid is rasterized again.
type Border struct {
	grid    *LabelGrid
	version uint64
	slot    []int32
	pixels  []borderPixel
}

// Len returns the number of boundary pixels currently cached.
func (b *Border) Len() int { return len(b.pixels) }

// Apply supersamples every boundary pixel of grid at 3×3 sub-pixel offsets
// and writes the channel-wise mean of the sampled site colors to surf.
// Interior pixels and the grid itself are left untouched.
func (b *Border) Apply(sites Sites, grid *LabelGrid, surf PixelSurface, m Metric) {
	if b.grid != grid || b.version != grid.version {
		b.detect(grid)
	}
	m = m.orDefault()
	w := grid.Width()

	for k := range b.pixels {
		p := &b.pixels[k]
		if !p.sampled {
			b.sample(p, sites, grid, m, w)
		}
		var sr, sg, sb int
		for _, id := range p.ids {
			c := sites[id].Color
			sr += int(c.R)
			sg += int(c.G)
			sb += int(c.B)
		}
		surf.SetPixel(int(p.index), color.RGBA{
			R: uint8(sr / 9),
			G: uint8(sg / 9),
			B: uint8(sb / 9),
			A: 0xff,
		})
	}
	if f, ok := surf.(Flusher); ok {
		f.Flush()
	}
}

// detect scans every row and then every column for run boundaries and
// records on both pixels of each transition the label across it.
func (b *Border) detect(grid *LabelGrid) {
	b.grid, b.version = grid, grid.version
	b.pixels = b.pixels[:0]

	n := grid.Len()
	if cap(b.slot) < n {
		b.slot = make([]int32, n)
	}
	b.slot = b.slot[:n]
	for i := range b.slot {
		b.slot[i] = -1
	}

	w, h := grid.Width(), grid.Height()
	for y := 0; y < h; y++ {
		for x := 1; x < w; x++ {
			b.transition(grid, y*w+x-1, y*w+x)
		}
	}
	for x := 0; x < w; x++ {
		for y := 1; y < h; y++ {
			b.transition(grid, (y-1)*w+x, y*w+x)
		}
	}
}

func (b *Border) transition(grid *LabelGrid, i, j int) {
	li, lj := grid.Label(i), grid.Label(j)
	if li == lj || li == Unset || lj == Unset {
		return
	}
	b.addNeighbor(i, int32(lj))
	b.addNeighbor(j, int32(li))
}

func (b *Border) addNeighbor(i int, id int32) {
	s := b.slot[i]
	if s < 0 {
		s = int32(len(b.pixels))
		b.slot[i] = s
		b.pixels = append(b.pixels, borderPixel{index: int32(i)})
	}
	p := &b.pixels[s]
	if p.n == maxNeighbors || slices.Contains(p.ids[:p.n], id) {
		return
	}
	p.ids[p.n] = id
	p.n++
}

// sample resolves the nine sub-pixel samples of p among its own site and
// its recorded neighbors. Coordinates are scaled by three so that the
// ±1/3 offsets stay integral.
func (b *Border) sample(p *borderPixel, sites Sites, grid *LabelGrid, m Metric, w int) {
	var buf [maxNeighbors + 1]int32
	cands := append(buf[:0], p.ids[:p.n]...)
	cands = append(cands, int32(grid.Label(int(p.index))))
	slices.Sort(cands)

	x, y := int(p.index)%w, int(p.index)/w
	k := 0
	for oy := -1; oy <= 1; oy++ {
		for ox := -1; ox <= 1; ox++ {
			px, py := float64(3*x+ox), float64(3*y+oy)
			best, bestDist := cands[0], 0.0
			for c, id := range cands {
				s := &sites[id]
				d := m.dist(px-float64(3*s.X), py-float64(3*s.Y))
				if c == 0 || d < bestDist {
					best, bestDist = id, d
				}
			}
			p.ids[k] = best
			k++
		}
	}
	p.n, p.sampled = 9, true
}

// ApplyAntialiasing runs a one-off border pass without keeping the cache.
func ApplyAntialiasing(sites Sites, grid *LabelGrid, surf PixelSurface, m Metric) {
	var b Border
	b.Apply(sites, grid, surf, m)
}
