package main

import (
	"math"
	"time"

	"honnef.co/go/strokeplay"
)

// Terminal cells are about twice as tall as they are wide. Drawing space uses
// square units.
const cellAspect = 2

type cell struct{ col, row int }

func cellToPoint(c cell) strokeplay.Point {
	return strokeplay.Pt(float64(c.col), float64(c.row)*cellAspect)
}

func pointToCell(pt strokeplay.Point) cell {
	return cell{int(math.Round(pt.X)), int(math.Round(pt.Y / cellAspect))}
}

// recorder turns mouse events into timed samples. All strokes of a drawing
// share one time line, starting at the first press.
type recorder struct {
	start   time.Time
	samples []strokeplay.Sample
	down    bool
	last    cell
}

// mouse records a mouse event. It reports whether the event ended a stroke.
func (r *recorder) mouse(c cell, pressed bool, at time.Time) bool {
	if !pressed {
		wasDown := r.down
		r.down = false
		return wasDown
	}
	if r.start.IsZero() {
		r.start = at
	}
	if r.down && c == r.last {
		return false
	}
	t := float64(at.Sub(r.start)) / float64(time.Millisecond)
	if n := len(r.samples); n > 0 {
		t = max(t, r.samples[n-1].T)
	}
	pt := cellToPoint(c)
	r.samples = append(r.samples, strokeplay.S(pt.X, pt.Y, t))
	r.down = true
	r.last = c
	return false
}

func (r *recorder) reset() {
	*r = recorder{}
}

// rasterStep is the arc length between two probes of a path, in drawing
// units.
const rasterStep = 0.5

// rasterize returns the cells covered by the paths.
func rasterize(paths []strokeplay.BezPath, m strokeplay.Measurer) []cell {
	seen := map[cell]bool{}
	var out []cell
	for _, p := range paths {
		mp := m(p)
		l := mp.Length()
		steps := max(int(math.Ceil(l/rasterStep)), 1)
		for i := 0; i <= steps; i++ {
			c := pointToCell(mp.PointAtLength(l * float64(i) / float64(steps)))
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}
