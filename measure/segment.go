package measure

import (
	"fmt"
	"iter"
	"math"

	"honnef.co/go/strokeplay"
)

type (
	Point = strokeplay.Point
	Vec2  = strokeplay.Vec2
)

// Segment is a single line or Bézier curve of a path, parametrized over
// t ∈ [0, 1].
type Segment interface {
	// Eval evaluates the curve at parameter t.
	Eval(t float64) Point
	// Arclen returns the length of the curve, accurate to the given accuracy.
	Arclen(accuracy float64) float64
	// SubsegmentCurve returns the part of the curve between start and end.
	SubsegmentCurve(start, end float64) Segment
}

// ArclenSolver can be implemented by segments that have a better way of
// computing the solution than the one used by [SolveForArclen].
type ArclenSolver interface {
	SolveForArclen(arclen float64, accuracy float64) float64
}

var (
	_ Segment      = Line{}
	_ ArclenSolver = Line{}
	_ Segment      = QuadBez{}
	_ Segment      = CubicBez{}
)

// Line is a straight segment.
type Line struct {
	P0 Point
	P1 Point
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) Arclen(accuracy float64) float64 {
	return l.P1.Sub(l.P0).Hypot()
}

func (l Line) SolveForArclen(arclen float64, accuracy float64) float64 {
	length := l.P1.Sub(l.P0).Hypot()
	if length == 0 {
		return 0
	}
	return min(max(arclen/length, 0), 1)
}

func (l Line) Subsegment(start, end float64) Line {
	return Line{l.Eval(start), l.Eval(end)}
}

func (l Line) SubsegmentCurve(start, end float64) Segment {
	return l.Subsegment(start, end)
}

// QuadBez is a quadratic Bézier segment.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.P0).Mul(mt * mt)
	b := Vec2(q.P1).Mul(mt * 2.0)
	c := Vec2(q.P2).Mul(t)
	return Point(a.Add(b.Add(c).Mul(t)))
}

// Arclen returns the arclength of the quadratic Bézier segment.
//
// This computation is based on an analytical formula. Since that formula
// suffers from numerical instability when the curve is very close to a
// straight line, we detect that case and fall back to Legendre-Gauss
// quadrature.
func (q QuadBez) Arclen(accuracy float64) float64 {
	d2 := Vec2(q.P0).Sub(Vec2(q.P1).Mul(2)).Add(Vec2(q.P2))
	a := d2.Hypot2()
	d1 := q.P1.Sub(q.P0)
	c := d1.Hypot2()
	if a <= 5e-4*c {
		// Nearly straight. Formula from Behdad in
		// https://github.com/Pomax/BezierInfo-2/issues/77
		v0 := Vec2(q.P0).Mul(-0.492943519233745).
			Add(Vec2(q.P1).Mul(0.430331482911935)).
			Add(Vec2(q.P2).Mul(0.0626120363218102)).
			Hypot()
		v1 := q.P2.Sub(q.P0).Mul(0.4444444444444444).Hypot()
		v2 := Vec2(q.P0).Mul(-0.0626120363218102).
			Sub(Vec2(q.P1).Mul(0.430331482911935)).
			Add(Vec2(q.P2).Mul(0.492943519233745)).
			Hypot()
		return v0 + v1 + v2
	}
	b := 2.0 * d2.Dot(d1)

	sabc := math.Sqrt(a + b + c)
	a2 := math.Pow(a, -0.5)
	a32 := a2 * a2 * a2
	c2 := 2.0 * math.Sqrt(c)
	baC2 := b*a2 + c2

	v0 := 0.25*a2*a2*b*(2.0*sabc-c2) + sabc
	if baC2 < 1e-13 {
		// Sharp kink.
		return v0
	}
	return v0 + 0.25*a32*(4.0*c*a-b*b)*math.Log(((2.0*a+b)*a2+2.0*sabc)/baC2)
}

func (q QuadBez) Subsegment(t0, t1 float64) QuadBez {
	p0 := q.Eval(t0)
	p2 := q.Eval(t1)
	p1 := p0.Translate(q.P1.Sub(q.P0).Lerp(q.P2.Sub(q.P1), t0).Mul(t1 - t0))
	return QuadBez{p0, p1, p2}
}

func (q QuadBez) SubsegmentCurve(t0, t1 float64) Segment {
	return q.Subsegment(t0, t1)
}

// CubicBez is a cubic Bézier segment.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	return Point(a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t)))
}

// deriv evaluates the curve's first derivative at t.
func (c CubicBez) deriv(t float64) Vec2 {
	d := QuadBez{
		Point(c.P1.Sub(c.P0).Mul(3)),
		Point(c.P2.Sub(c.P1).Mul(3)),
		Point(c.P3.Sub(c.P2).Mul(3)),
	}
	return Vec2(d.Eval(t))
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	pm := c.Eval(0.5)
	return CubicBez{
			c.P0,
			c.P0.Midpoint(c.P1),
			Point(Vec2(c.P0).Add(Vec2(c.P1).Mul(2.0)).Add(Vec2(c.P2)).Mul(0.25)),
			pm,
		},
		CubicBez{
			pm,
			Point(Vec2(c.P1).Add(Vec2(c.P2).Mul(2.0)).Add(Vec2(c.P3)).Mul(0.25)),
			c.P2.Midpoint(c.P3),
			c.P3,
		}
}

func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(c.deriv(t0).Mul(scale))
	p2 := p3.Translate(c.deriv(t1).Mul(-scale))
	return CubicBez{p0, p1, p2, p3}
}

func (c CubicBez) SubsegmentCurve(t0, t1 float64) Segment {
	return c.Subsegment(t0, t1)
}

// Arclen returns the arclength of a cubic Bézier segment.
//
// This is an adaptive subdivision approach using Legendre-Gauss quadrature.
func (c CubicBez) Arclen(accuracy float64) float64 {
	return c.arclen(accuracy, 0)
}

func (c CubicBez) arclen(accuracy float64, depth int) float64 {
	d03 := c.P3.Sub(c.P0)
	d01 := c.P1.Sub(c.P0)
	d12 := c.P2.Sub(c.P1)
	d23 := c.P3.Sub(c.P2)
	lplc := d01.Hypot() + d12.Hypot() + d23.Hypot() - d03.Hypot()
	dd1 := d12.Sub(d01)
	dd2 := d23.Sub(d12)
	// These don't have the factor of 3 for the first derivative.
	dm := d01.Add(d23).Mul(0.25).Add(d12.Mul(0.5)) // first derivative at midpoint
	dm1 := dd2.Add(dd1).Mul(0.5)                   // second derivative at midpoint
	dm2 := dd2.Sub(dd1).Mul(0.25)                  // 0.5 * (third derivative at midpoint)

	var est float64
	for _, coeff := range gaussLegendreCoeffs8 {
		wi, xi := coeff[0], coeff[1]
		dNorm2 := dm.Add(dm1.Mul(xi)).Add(dm2.Mul(xi * xi)).Hypot2()
		ddNorm2 := dm1.Add(dm2.Mul(2.0 * xi)).Hypot2()
		est += wi * (ddNorm2 / dNorm2)
	}
	if math.IsNaN(est) {
		// dNorm2 is 0 for degenerate cubics, such as a stroke sample
		// repeated in place.
		est = 0
	}

	if min(math.Pow(est, 3)*2.5e-6, 3e-2)*lplc < accuracy {
		return arclenQuadrature(gaussLegendreCoeffs8Half[:], dm, dm1, dm2)
	}
	if min(math.Pow(est, 6)*1.5e-11, 9e-3)*lplc < accuracy {
		return arclenQuadrature(gaussLegendreCoeffs16Half[:], dm, dm1, dm2)
	}
	if min(math.Pow(est, 9)*3.5e-16, 3.5e-3)*lplc < accuracy || depth >= 20 {
		return arclenQuadrature(gaussLegendreCoeffs24Half[:], dm, dm1, dm2)
	}
	c0, c1 := c.Subdivide()
	return c0.arclen(accuracy*0.5, depth+1) + c1.arclen(accuracy*0.5, depth+1)
}

// Segments converts the elements of a path into self-contained segments.
func Segments(p strokeplay.BezPath) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		var last Point
		for _, el := range p {
			var seg Segment
			switch el.Kind {
			case strokeplay.MoveToKind:
				last = el.P0
				continue
			case strokeplay.LineToKind:
				seg = Line{last, el.P0}
			case strokeplay.QuadToKind:
				seg = QuadBez{last, el.P0, el.P1}
			case strokeplay.CubicToKind:
				seg = CubicBez{last, el.P0, el.P1, el.P2}
			default:
				panic(fmt.Sprintf("unhandled case %v", el.Kind))
			}
			last, _ = el.EndPoint()
			if !yield(seg) {
				return
			}
		}
	}
}
