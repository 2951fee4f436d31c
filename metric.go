package voronoi

import (
	"fmt"
	"math"
	"strings"
)

// Metric is an unrooted distance function. Only the ordering of the values it
// returns is meaningful: callers compare magnitudes, they never add or
// average them. Every supported family is homogeneous, so scaling both
// points by the same factor preserves the ordering.
type Metric struct {
	name string
	dist func(dx, dy float64) float64
}

var (
	// Taxicab is the L1 metric |dx|+|dy|.
	Taxicab = Metric{"taxicab", func(dx, dy float64) float64 {
		return math.Abs(dx) + math.Abs(dy)
	}}
	// Euclidean is the squared euclidean distance dx²+dy². It is the default.
	Euclidean = Metric{"euclidean", func(dx, dy float64) float64 {
		return dx*dx + dy*dy
	}}
	// Cubic is |dx|³+|dy|³.
	Cubic = Metric{"cubic", func(dx, dy float64) float64 {
		dx, dy = math.Abs(dx), math.Abs(dy)
		return dx*dx*dx + dy*dy*dy
	}}
	// Quartic is dx⁴+dy⁴.
	Quartic = Metric{"quartic", func(dx, dy float64) float64 {
		dx, dy = dx*dx, dy*dy
		return dx*dx + dy*dy
	}}
)

// Power returns the metric |dx|^m+|dy|^m. Integer exponents between 1 and 4
// map to the exact named metrics. An exponent that is not a positive finite
// number falls back to Euclidean.
func Power(m float64) Metric {
	switch {
	case math.IsNaN(m) || math.IsInf(m, 0) || m <= 0:
		logger().Warn("unsupported metric exponent, using euclidean", "exponent", m)
		return Euclidean
	case m == 1:
		return Taxicab
	case m == 2:
		return Euclidean
	case m == 3:
		return Cubic
	case m == 4:
		return Quartic
	}
	return Metric{fmt.Sprintf("power(%g)", m), func(dx, dy float64) float64 {
		return math.Pow(math.Abs(dx), m) + math.Pow(math.Abs(dy), m)
	}}
}

// ParseMetric resolves a metric by name. The exponent is only consulted for
// the "power" family. An empty name selects Euclidean.
func ParseMetric(name string, exp float64) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euclidean", "euclid", "l2":
		return Euclidean, nil
	case "taxicab", "manhattan", "l1":
		return Taxicab, nil
	case "cubic", "l3":
		return Cubic, nil
	case "quartic", "l4":
		return Quartic, nil
	case "power", "minkowski":
		return Power(exp), nil
	}
	return Metric{}, fmt.Errorf("unknown metric %q", name)
}

// Distance returns the magnitude between (x1, y1) and (x2, y2).
func (m Metric) Distance(x1, y1, x2, y2 float64) float64 {
	return m.orDefault().dist(x1-x2, y1-y2)
}

// String returns the metric name.
func (m Metric) String() string {
	return m.orDefault().name
}

// orDefault maps the zero Metric to Euclidean.
func (m Metric) orDefault() Metric {
	if m.dist == nil {
		return Euclidean
	}
	return m
}
