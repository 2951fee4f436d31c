package voronoi

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Unset is the value reported for pixels that have not been resolved yet.
const Unset = -1

// labelStore is the width-specific backing array of a LabelGrid.
type labelStore interface {
	get(i int) int32
	set(i int, id int32)
	reset()
	size() int
	byteWidth() int
	sentinel() uint32
}

// labels stores site ids in the narrowest unsigned type that can hold them.
// The maximum value of T is reserved as the sentinel.
type labels[T constraints.Unsigned] struct {
	data  []T
	unset T
	width int
}

func newLabels[T constraints.Unsigned](n, width int) *labels[T] {
	l := &labels[T]{
		data:  make([]T, n),
		unset: ^T(0),
		width: width,
	}
	l.reset()
	return l
}

func (l *labels[T]) get(i int) int32 {
	if v := l.data[i]; v != l.unset {
		return int32(v)
	}
	return Unset
}

func (l *labels[T]) set(i int, id int32) { l.data[i] = T(id) }
func (l *labels[T]) size() int           { return len(l.data) }
func (l *labels[T]) byteWidth() int      { return l.width }
func (l *labels[T]) sentinel() uint32    { return uint32(l.unset) }

func (l *labels[T]) reset() {
	for i := range l.data {
		l.data[i] = l.unset
	}
}

// labelWidth returns the byte width of the smallest unsigned type whose
// maximum value, kept back as the sentinel, is larger than n.
func labelWidth(n int) int {
	switch {
	case n < math.MaxUint8:
		return 1
	case n < math.MaxUint16:
		return 2
	}
	return 4
}

// LabelGrid maps every pixel index of a W×H canvas to the id of its nearest
// site. It is a reusable buffer owned by the caller: Reset only reallocates
// when the pixel count or the required element width changes.
type LabelGrid struct {
	width, height int
	store         labelStore

	// version changes whenever the assignment may have changed.
	version uint64
}

// NewLabelGrid returns an empty grid. Storage is allocated by the first Reset.
func NewLabelGrid() *LabelGrid {
	return &LabelGrid{}
}

// Reset prepares the grid for a full rasterization of sites on a
// width×height canvas: every pixel becomes Unset and each capital pixel is
// seeded with its own site id.
func (g *LabelGrid) Reset(width, height int, sites Sites) error {
	if err := sites.validate(width, height); err != nil {
		return err
	}
	if int64(len(sites)) >= math.MaxUint32 {
		return ErrTooManySites
	}

	n, w := width*height, labelWidth(len(sites))
	if g.store == nil || g.store.size() != n || g.store.byteWidth() != w {
		switch w {
		case 1:
			g.store = newLabels[uint8](n, w)
		case 2:
			g.store = newLabels[uint16](n, w)
		default:
			g.store = newLabels[uint32](n, w)
		}
	} else {
		g.store.reset()
	}
	g.width, g.height = width, height
	g.version++

	for _, s := range sites {
		g.store.set(s.Y*width+s.X, int32(s.ID))
	}
	return nil
}

// Width returns the canvas width the grid was last reset for.
func (g *LabelGrid) Width() int { return g.width }

// Height returns the canvas height the grid was last reset for.
func (g *LabelGrid) Height() int { return g.height }

// Len returns the number of pixels.
func (g *LabelGrid) Len() int { return g.width * g.height }

// Label returns the site id of pixel i, or Unset.
func (g *LabelGrid) Label(i int) int {
	return int(g.store.get(i))
}

// At returns the site id of pixel (x, y), or Unset.
func (g *LabelGrid) At(x, y int) int {
	return g.Label(y*g.width + x)
}

// ByteWidth returns the element width of the backing array in bytes, or 0
// before the first Reset.
func (g *LabelGrid) ByteWidth() int {
	if g.store == nil {
		return 0
	}
	return g.store.byteWidth()
}

// Sentinel returns the raw value reserved for unresolved pixels.
func (g *LabelGrid) Sentinel() uint32 {
	if g.store == nil {
		return 0
	}
	return g.store.sentinel()
}

// Labels returns a copy of the assignment in pixel-index order.
func (g *LabelGrid) Labels() []int {
	out := make([]int, g.Len())
	for i := range out {
		out[i] = g.Label(i)
	}
	return out
}
