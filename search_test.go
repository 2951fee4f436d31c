package voronoi

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newPass prepares r for calling the line primitives directly.
func newPass(t *testing.T, r *Rasterizer, sites Sites, w, h int) *Canvas {
	t.Helper()
	c := NewCanvas(w, h)
	grid := NewLabelGrid()
	if err := grid.Reset(w, h, sites); err != nil {
		t.Fatalf("Reset() error = %v, want nil", err)
	}
	r.sites, r.grid, r.store, r.surf = sites, grid, grid.store, c
	r.width, r.height = w, h
	r.set.init(len(sites))
	return c
}

func allIDs(n int) []int32 {
	ids := make([]int32, n)
	for i := range ids {
		ids[i] = int32(i)
	}
	return ids
}

func TestScanLine_Row(t *testing.T) {
	const w = 30
	sites := mustSites(t, [][2]int{{2, 0}, {11, 0}, {25, 0}})
	r := NewRasterizer(Config{})
	c := newPass(t, r, sites, w, 1)

	r.set.begin()
	r.scanLine(row(w, 0, 0, w-1), allIDs(len(sites)), &r.set)

	want := bruteForce(sites, w, 1, Euclidean)
	if diff := cmp.Diff(want, r.grid.Labels()); diff != "" {
		t.Errorf("scanLine() labels mismatch (-want +got):\n%s", diff)
	}
	got := slices.Clone(r.set.ids)
	slices.Sort(got)
	if diff := cmp.Diff([]int32{0, 1, 2}, got); diff != "" {
		t.Errorf("scanLine() boundary set mismatch (-want +got):\n%s", diff)
	}
	// Long runs are found by probing, not by evaluating every pixel.
	if r.stats.Resolved >= w-len(sites) {
		t.Errorf("scanLine() resolved %d pixels, want fewer than %d", r.stats.Resolved, w-len(sites))
	}
	assertCanvasMatchesLabels(t, c, r.grid, sites)
}

func TestScanLine_Column(t *testing.T) {
	const w, h = 5, 40
	sites := mustSites(t, [][2]int{{0, 3}, {4, 20}, {1, 37}, {3, 38}})
	r := NewRasterizer(Config{Metric: Taxicab})
	c := newPass(t, r, sites, w, h)

	r.set.begin()
	r.scanLine(column(w, 2, 0, h-1), allIDs(len(sites)), &r.set)

	full := bruteForce(sites, w, h, Taxicab)
	wantSet := map[int32]bool{}
	for y := 0; y < h; y++ {
		i := y*w + 2
		if got := r.grid.Label(i); got != full[i] {
			t.Errorf("pixel (2,%d) labeled %d, want %d", y, got, full[i])
		}
		if got, want := c.At(i), sites[full[i]].Color; got != want {
			t.Errorf("pixel (2,%d) color = %v, want %v", y, got, want)
		}
		wantSet[int32(full[i])] = true
	}
	if len(r.set.ids) != len(wantSet) {
		t.Errorf("scanLine() found %d distinct sites, want %d", len(r.set.ids), len(wantSet))
	}
	for _, id := range r.set.ids {
		if !wantSet[id] {
			t.Errorf("scanLine() reported site %d which owns no pixel on the column", id)
		}
	}
}

func TestRunEnd(t *testing.T) {
	tests := []struct {
		name  string
		sites [][2]int
		want  int
	}{
		{"whole line", [][2]int{{0, 0}}, 19},
		{"short run", [][2]int{{0, 0}, {3, 0}}, 1},
		{"midpoint", [][2]int{{0, 0}, {19, 0}}, 9},
		{"long run", [][2]int{{0, 0}, {19, 0}, {18, 1}}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const w = 20
			sites := mustSites(t, tt.sites)
			r := NewRasterizer(Config{})
			newPass(t, r, sites, w, 2)
			ln := row(w, 0, 0, w-1)
			cands := allIDs(len(sites))
			l := r.resolve(ln.index(0), cands)
			if got := r.runEnd(ln, 0, w-1, l, cands); got != tt.want {
				t.Errorf("runEnd() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNearest_TieBreak(t *testing.T) {
	sites := mustSites(t, [][2]int{{0, 0}, {4, 0}, {2, 2}})
	// (2,0) is at taxicab distance 2 from all three sites.
	if got := nearest(sites, []int32{0, 1, 2}, Taxicab, 2, 0); got != 0 {
		t.Errorf("nearest() = %d, want 0", got)
	}
	if got := nearest(sites, []int32{1, 2}, Taxicab, 2, 0); got != 1 {
		t.Errorf("nearest() over {1,2} = %d, want 1", got)
	}
}

func TestSiteSet(t *testing.T) {
	var s siteSet
	s.init(5)
	s.begin()
	for _, id := range []int32{3, 1, 3, 4, 1} {
		s.add(id)
	}
	if diff := cmp.Diff([]int32{3, 1, 4}, s.ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	s.begin()
	if s.has(3) || len(s.ids) != 0 {
		t.Errorf("begin() did not clear the set")
	}
}
