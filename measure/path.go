// Package measure measures smooth paths by arc length.
//
// Lengths of lines and quadratic Béziers are computed analytically, those of
// cubic Béziers with adaptive Legendre-Gauss quadrature. Inverting arc length
// to a curve parameter uses the ITP root finder.
package measure

import (
	"slices"

	"honnef.co/go/strokeplay"
)

// DefaultAccuracy is the accuracy used for measuring paths meant for display.
const DefaultAccuracy = 0.01

var _ strokeplay.MeasuredPath = (*Path)(nil)

// Path is a [strokeplay.BezPath] prepared for arc-length queries.
type Path struct {
	accuracy float64
	start    Point
	segs     []Segment
	// cum[i] is the arc length from the start of the path to the end of
	// segs[i].
	cum []float64
}

// New measures p. Segments are measured to the given accuracy. Segments of
// zero length are skipped.
func New(p strokeplay.BezPath, accuracy float64) *Path {
	if accuracy <= 0 {
		accuracy = DefaultAccuracy
	}
	m := &Path{accuracy: accuracy}
	m.start, _ = p.Start()
	var total float64
	for seg := range Segments(p) {
		l := seg.Arclen(accuracy)
		if !(l > 0) {
			continue
		}
		total += l
		m.segs = append(m.segs, seg)
		m.cum = append(m.cum, total)
	}
	return m
}

// Measurer returns a [strokeplay.Measurer] that measures paths to the given
// accuracy.
func Measurer(accuracy float64) strokeplay.Measurer {
	return func(p strokeplay.BezPath) strokeplay.MeasuredPath {
		return New(p, accuracy)
	}
}

// Length returns the total arc length of the path.
func (m *Path) Length() float64 {
	if len(m.cum) == 0 {
		return 0
	}
	return m.cum[len(m.cum)-1]
}

// PointAtLength returns the point at arc length d from the start of the path.
// d is clamped to [0, Length()]. A path of zero length always returns its
// start point.
func (m *Path) PointAtLength(d float64) Point {
	if len(m.segs) == 0 {
		return m.start
	}
	if d <= 0 {
		return m.segs[0].Eval(0)
	}
	if d >= m.Length() {
		return m.segs[len(m.segs)-1].Eval(1)
	}
	i, _ := slices.BinarySearch(m.cum, d)
	var before float64
	if i > 0 {
		before = m.cum[i-1]
	}
	seg := m.segs[i]
	t := SolveForArclen(seg, d-before, m.accuracy)
	return seg.Eval(t)
}
