package voronoi

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLabelWidth(t *testing.T) {
	tests := []struct {
		n            int
		wantWidth    int
		wantSentinel uint32
	}{
		{1, 1, 0xff},
		{200, 1, 0xff},
		{254, 1, 0xff},
		{255, 2, 0xffff},
		{300, 2, 0xffff},
		{65534, 2, 0xffff},
		{65535, 4, 0xffffffff},
		{70000, 4, 0xffffffff},
	}
	for _, tt := range tests {
		if got := labelWidth(tt.n); got != tt.wantWidth {
			t.Errorf("labelWidth(%d) = %d, want %d", tt.n, got, tt.wantWidth)
		}
	}

	// Check the sentinel on real grids for the sizes that fit a small canvas.
	for _, tt := range tests[:5] {
		g := NewLabelGrid()
		sites := lineOfSites(tt.n)
		if err := g.Reset(tt.n+1, 1, sites); err != nil {
			t.Fatalf("Reset(%d sites) error = %v, want nil", tt.n, err)
		}
		if got := g.ByteWidth(); got != tt.wantWidth {
			t.Errorf("ByteWidth() with %d sites = %d, want %d", tt.n, got, tt.wantWidth)
		}
		if got := g.Sentinel(); got != tt.wantSentinel {
			t.Errorf("Sentinel() with %d sites = %#x, want %#x", tt.n, got, tt.wantSentinel)
		}
	}
}

func TestLabelGrid_ResetSeeds(t *testing.T) {
	sites := mustSites(t, [][2]int{{1, 1}, {3, 0}})
	g := NewLabelGrid()
	if err := g.Reset(4, 3, sites); err != nil {
		t.Fatalf("Reset() error = %v, want nil", err)
	}
	u := Unset
	want := []int{
		u, u, u, 1,
		u, 0, u, u,
		u, u, u, u,
	}
	if diff := cmp.Diff(want, g.Labels()); diff != "" {
		t.Errorf("Labels() mismatch (-want +got):\n%s", diff)
	}
	if got := g.At(3, 0); got != 1 {
		t.Errorf("At(3, 0) = %d, want 1", got)
	}
}

func TestLabelGrid_ReuseBuffer(t *testing.T) {
	g := NewLabelGrid()
	sites := mustSites(t, [][2]int{{0, 0}, {2, 2}})
	if err := g.Reset(5, 5, sites); err != nil {
		t.Fatal(err)
	}
	store, version := g.store, g.version

	if err := g.Reset(5, 5, mustSites(t, [][2]int{{4, 4}, {1, 3}})); err != nil {
		t.Fatal(err)
	}
	if g.store != store {
		t.Errorf("Reset with the same geometry reallocated the store")
	}
	if g.version == version {
		t.Errorf("Reset did not change the grid version")
	}
	if got := g.At(0, 0); got != Unset {
		t.Errorf("At(0, 0) after reset = %d, want Unset", got)
	}

	if err := g.Reset(5, 6, sites); err != nil {
		t.Fatal(err)
	}
	if g.store == store {
		t.Errorf("Reset with a new size kept the old store")
	}
	store = g.store

	if err := g.Reset(300, 1, lineOfSites(299)); err != nil {
		t.Fatal(err)
	}
	if g.store == store || g.ByteWidth() != 2 {
		t.Errorf("Reset with 299 sites: ByteWidth() = %d, want a new 2 byte store", g.ByteWidth())
	}
}

func TestLabelGrid_ResetErrors(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		sites         Sites
		wantErr       error
	}{
		{"no sites", 3, 3, nil, ErrNoSites},
		{"too many sites", 2, 1, lineOfSites(2), ErrTooManySites},
		{"zero width", 0, 3, lineOfSites(1), ErrSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewLabelGrid().Reset(tt.width, tt.height, tt.sites)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Reset() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	dup := Sites{{ID: 0, X: 1, Y: 1}, {ID: 1, X: 1, Y: 1}}
	if err := NewLabelGrid().Reset(3, 3, dup); err == nil {
		t.Errorf("Reset() with shared capitals error = nil, want non-nil")
	}
	outside := Sites{{ID: 0, X: 3, Y: 0}}
	if err := NewLabelGrid().Reset(3, 3, outside); err == nil {
		t.Errorf("Reset() with a site outside the canvas error = nil, want non-nil")
	}
}
