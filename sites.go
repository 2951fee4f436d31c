package voronoi

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
)

var (
	// ErrNoSites is returned when a diagram is requested without any site.
	ErrNoSites = errors.New("voronoi: at least one site is required")
	// ErrTooManySites is returned when the canvas has no room for distinct capitals.
	ErrTooManySites = errors.New("voronoi: number of sites must be smaller than the number of pixels")
	// ErrSize is returned for non-positive or mismatching dimensions.
	ErrSize = errors.New("voronoi: invalid dimensions")
)

// Site is a labeled capital. ID equals the index of the site in its Sites
// slice; position is fixed for the lifetime of a diagram, color is not.
type Site struct {
	ID    int
	X, Y  int
	Color color.RGBA
}

// Sites is the contiguous site store, indexable by ID.
type Sites []Site

// ColorFunc produces the color of a site.
type ColorFunc func(s Site) color.RGBA

// ZeroColors leaves every site black. Use it when the colors will be
// derived from an image after the first rasterization.
func ZeroColors(Site) color.RGBA {
	return color.RGBA{A: 0xff}
}

// RandomColors returns uniformly random opaque colors drawn from rnd.
func RandomColors(rnd *rand.Rand) ColorFunc {
	return func(Site) color.RGBA {
		v := rnd.Uint32()
		return color.RGBA{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16), A: 0xff}
	}
}

// ImageColors returns the colors computed by DeriveColors, indexed by site ID.
// Sites beyond the end of colors keep their current color.
func ImageColors(colors []color.RGBA) ColorFunc {
	return func(s Site) color.RGBA {
		if s.ID < len(colors) {
			return colors[s.ID]
		}
		return s.Color
	}
}

// PlaceSites scatters n sites with pairwise distinct integer positions
// uniformly over [0,width)×[0,height) using rejection sampling.
func PlaceSites(n, width, height int, colors ColorFunc, rnd *rand.Rand) (Sites, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, width, height)
	}
	if n < 1 {
		return nil, ErrNoSites
	}
	if n >= width*height {
		return nil, fmt.Errorf("%w: %d sites on %dx%d", ErrTooManySites, n, width, height)
	}
	if colors == nil {
		colors = ZeroColors
	}

	taken := make(map[int]struct{}, n)
	sites := make(Sites, 0, n)
	for len(sites) < n {
		x, y := rnd.Intn(width), rnd.Intn(height)
		if _, ok := taken[y*width+x]; ok {
			continue
		}
		taken[y*width+x] = struct{}{}

		s := Site{ID: len(sites), X: x, Y: y}
		s.Color = colors(s)
		sites = append(sites, s)
	}
	return sites, nil
}

// Recolor overwrites the color of every site in place. IDs and positions
// are untouched.
func (s Sites) Recolor(fn ColorFunc) {
	for i := range s {
		s[i].Color = fn(s[i])
	}
}

// validate checks that the sites fit on a width×height canvas with
// distinct capitals and consistent IDs.
func (s Sites) validate(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrSize, width, height)
	}
	if len(s) == 0 {
		return ErrNoSites
	}
	if len(s) >= width*height {
		return fmt.Errorf("%w: %d sites on %dx%d", ErrTooManySites, len(s), width, height)
	}
	taken := make(map[int]int, len(s))
	for i, site := range s {
		if site.ID != i {
			return fmt.Errorf("voronoi: site at index %d has id %d", i, site.ID)
		}
		if site.X < 0 || site.X >= width || site.Y < 0 || site.Y >= height {
			return fmt.Errorf("voronoi: site %d at (%d,%d) is outside %dx%d", i, site.X, site.Y, width, height)
		}
		if j, ok := taken[site.Y*width+site.X]; ok {
			return fmt.Errorf("voronoi: sites %d and %d share the capital (%d,%d)", j, i, site.X, site.Y)
		}
		taken[site.Y*width+site.X] = i
	}
	return nil
}
