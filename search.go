package voronoi

// line is a 1D span of pixels: position k maps to pixel start+k*stride for
// k in [0, n).
type line struct {
	start, stride, n int
}

func row(width, y, x0, x1 int) line {
	return line{start: y*width + x0, stride: 1, n: x1 - x0 + 1}
}

func column(width, x, y0, y1 int) line {
	return line{start: y0*width + x, stride: width, n: y1 - y0 + 1}
}

func (l line) index(k int) int { return l.start + k*l.stride }

// siteSet collects distinct site ids. Membership uses a generation stamp
// per site so that clearing the set is O(1).
type siteSet struct {
	mark []uint32
	gen  uint32
	ids  []int32
}

func (s *siteSet) init(n int) {
	if cap(s.mark) < n {
		s.mark = make([]uint32, n)
	} else {
		s.mark = s.mark[:n]
		clear(s.mark)
	}
	s.gen = 0
	s.ids = s.ids[:0]
}

func (s *siteSet) begin() {
	s.gen++
	if s.gen == 0 {
		clear(s.mark)
		s.gen = 1
	}
	s.ids = s.ids[:0]
}

func (s *siteSet) add(id int32) {
	if s.mark[id] != s.gen {
		s.mark[id] = s.gen
		s.ids = append(s.ids, id)
	}
}

func (s *siteSet) has(id int32) bool { return s.mark[id] == s.gen }

// nearest returns the candidate closest to (x, y). Equal distances keep the
// earliest candidate, so ascending candidate order breaks ties by lowest id.
func nearest(sites Sites, cands []int32, m Metric, x, y float64) int32 {
	best, bestDist := cands[0], 0.0
	for k, id := range cands {
		s := &sites[id]
		d := m.dist(x-float64(s.X), y-float64(s.Y))
		if k == 0 || d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}

// resolve returns the label of pixel i, computing it against cands when the
// pixel is still unset. This is the only place a fresh label is decided.
func (r *Rasterizer) resolve(i int, cands []int32) int32 {
	if l := r.store.get(i); l != Unset {
		return l
	}
	x, y := float64(i%r.width), float64(i/r.width)
	id := nearest(r.sites, cands, r.metric, x, y)
	r.store.set(i, id)
	r.surf.SetPixel(i, r.sites[id].Color)
	r.stats.Resolved++
	r.touch(1)
	return id
}

// scanLine covers ln with runs: starting from the near end it finds the
// extent of each run with runEnd, fills it and continues right after it.
// Every label met is added to set when set is not nil.
func (r *Rasterizer) scanLine(ln line, cands []int32, set *siteSet) {
	for pos := 0; pos < ln.n; {
		l := r.resolve(ln.index(pos), cands)
		if set != nil {
			set.add(l)
		}
		end := r.runEnd(ln, pos, ln.n-1, l, cands)
		r.fillRun(ln, pos, end, l)
		pos = end + 1
	}
}

// runEnd returns the last position of the run of label l that starts at
// near, assuming labels along the line form contiguous runs. The probe
// starts at far and moves toward far while inside the run and back toward
// near while outside, halving its step each time it overshoots.
func (r *Rasterizer) runEnd(ln line, near, far int, l int32, cands []int32) int {
	if near == far || r.resolve(ln.index(far), cands) == l {
		return far
	}
	p, step, dir := far, max((far-near)/2, 1), -1
	for {
		d := 1
		if r.resolve(ln.index(p), cands) == l {
			// far is outside the run, so p+1 is always on the line.
			if r.resolve(ln.index(p+1), cands) != l {
				return p
			}
		} else {
			d = -1
		}
		if d != dir {
			step = max(step/2, 1)
			dir = d
		}
		p = min(max(p+d*step, near), far)
	}
}

// fillRun assigns label l to the unset pixels of ln in [from, to] and
// pushes the color. Pixels already holding a different label keep it.
func (r *Rasterizer) fillRun(ln line, from, to int, l int32) {
	c := r.sites[l].Color
	if ln.stride != 1 {
		for k := from; k <= to; k++ {
			i := ln.index(k)
			if r.store.get(i) == Unset {
				r.store.set(i, l)
				r.surf.SetPixel(i, c)
				r.touch(1)
			}
		}
		return
	}

	written, conflict := 0, false
	for k := from; k <= to; k++ {
		i := ln.index(k)
		switch cur := r.store.get(i); {
		case cur == Unset:
			r.store.set(i, l)
			written++
		case cur != l:
			conflict = true
		}
	}
	if written == 0 {
		return
	}
	r.surf.SetRange(ln.index(from), ln.index(to), c)
	r.touch(written)
	if conflict {
		for k := from; k <= to; k++ {
			i := ln.index(k)
			if cur := r.store.get(i); cur != l {
				r.surf.SetPixel(i, r.sites[cur].Color)
			}
		}
	}
}
