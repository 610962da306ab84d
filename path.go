package strokeplay

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"
	"strings"
)

type PathElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	MoveToKind PathElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a quadratic Bézier using the current location and the two points.
	QuadToKind
	// Draw a cubic Bézier using the current location and the three points.
	CubicToKind
)

// PathElement is a single drawing command of a [BezPath]. Only the points
// used by its kind are meaningful.
type PathElement struct {
	Kind PathElementKind
	P0   Point
	P1   Point
	P2   Point
}

func (el PathElement) String() string {
	var kind string
	switch el.Kind {
	case MoveToKind:
		kind = "MoveTo"
	case LineToKind:
		kind = "LineTo"
	case QuadToKind:
		kind = "QuadTo"
	case CubicToKind:
		kind = "CubicTo"
	default:
		kind = "InvalidPathElement"
	}
	return fmt.Sprintf("%s(%s, %s, %s)", kind, el.P0, el.P1, el.P2)
}

func (el PathElement) Transform(aff Affine) PathElement {
	switch el.Kind {
	case MoveToKind, LineToKind:
		el.P0 = el.P0.Transform(aff)
	case QuadToKind:
		el.P0 = el.P0.Transform(aff)
		el.P1 = el.P1.Transform(aff)
	case CubicToKind:
		el.P0 = el.P0.Transform(aff)
		el.P1 = el.P1.Transform(aff)
		el.P2 = el.P2.Transform(aff)
	}
	return el
}

// EndPoint returns the point the pen rests on after drawing the element.
func (el PathElement) EndPoint() (Point, bool) {
	switch el.Kind {
	case MoveToKind, LineToKind:
		return el.P0, true
	case QuadToKind:
		return el.P1, true
	case CubicToKind:
		return el.P2, true
	default:
		return Point{}, false
	}
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func QuadTo(p0, p1 Point) PathElement {
	return PathElement{Kind: QuadToKind, P0: p0, P1: p1}
}

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

// BezPath is the smooth path produced by the curve fitters. It starts with a
// MoveTo and is never modified after a fitter returns it. A nil BezPath is the
// valid "no path" result for degenerate strokes and renders as nothing.
type BezPath []PathElement

// Push adds an element to the path.
func (p *BezPath) Push(el PathElement) {
	*p = append(*p, el)
}

func (p *BezPath) MoveTo(pt Point) { p.Push(MoveTo(pt)) }

func (p *BezPath) LineTo(pt Point) { p.Push(LineTo(pt)) }

func (p *BezPath) QuadTo(p1, p2 Point) { p.Push(QuadTo(p1, p2)) }

func (p *BezPath) CubicTo(p1, p2, p3 Point) { p.Push(CubicTo(p1, p2, p3)) }

// Elements returns an iterator over the path's elements.
func (p BezPath) Elements() iter.Seq[PathElement] { return slices.Values(p) }

// Start returns the point the path starts at.
func (p BezPath) Start() (Point, bool) {
	if len(p) == 0 {
		return Point{}, false
	}
	return p[0].EndPoint()
}

// End returns the point the path ends at.
func (p BezPath) End() (Point, bool) {
	if len(p) == 0 {
		return Point{}, false
	}
	return p[len(p)-1].EndPoint()
}

// Count returns the number of elements of the given kind.
func (p BezPath) Count(kind PathElementKind) int {
	var n int
	for _, el := range p {
		if el.Kind == kind {
			n++
		}
	}
	return n
}

// ControlBox returns the smallest rectangle that contains every point of the
// path, including off-curve control points. It returns false for an empty
// path.
func (p BezPath) ControlBox() (Rect, bool) {
	if len(p) == 0 {
		return Rect{}, false
	}
	r := Rect{p[0].P0.X, p[0].P0.Y, p[0].P0.X, p[0].P0.Y}
	for _, el := range p {
		switch el.Kind {
		case MoveToKind, LineToKind:
			r = r.UnionPoint(el.P0)
		case QuadToKind:
			r = r.UnionPoint(el.P0).UnionPoint(el.P1)
		case CubicToKind:
			r = r.UnionPoint(el.P0).UnionPoint(el.P1).UnionPoint(el.P2)
		}
	}
	return r, true
}

// Transform returns a copy of the path with aff applied to every point.
func (p BezPath) Transform(aff Affine) BezPath {
	if p == nil {
		return nil
	}
	out := make(BezPath, len(p))
	for i, el := range p {
		out[i] = el.Transform(aff)
	}
	return out
}

func (p BezPath) SVG(opts SVGOptions) string {
	return SVG(p.Elements(), opts)
}

func (p BezPath) WriteSVG(w io.Writer, opts SVGOptions) error {
	return WriteSVG(w, p.Elements(), opts)
}

// SVGOptions specifies optional settings for [SVG] and [WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
}

// SVG converts a sequence of path elements to a string of SVG path commands.
//
// See [WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func SVG(seq iter.Seq[PathElement], opts SVGOptions) string {
	sb := &strings.Builder{}
	WriteSVG(sb, seq, opts)
	return sb.String()
}

// WriteSVG converts a sequence of path elements to a string of SVG path
// commands and writes it to w. An empty sequence writes nothing.
func WriteSVG(w io.Writer, seq iter.Seq[PathElement], opts SVGOptions) error {
	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		if opts.MaxPrecision <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		s := strconv.FormatFloat(n, 'f', opts.MaxPrecision, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
		return s
	}
	first := true
	for el := range seq {
		if err != nil {
			return err
		}
		if !first {
			writef(" ")
		}
		first = false
		switch el.Kind {
		case MoveToKind:
			writef("M%s,%s", format(el.P0.X), format(el.P0.Y))
		case LineToKind:
			writef("L%s,%s", format(el.P0.X), format(el.P0.Y))
		case QuadToKind:
			writef("Q%s,%s %s,%s",
				format(el.P0.X), format(el.P0.Y),
				format(el.P1.X), format(el.P1.Y))
		case CubicToKind:
			writef("C%s,%s %s,%s %s,%s",
				format(el.P0.X), format(el.P0.Y),
				format(el.P1.X), format(el.P1.Y),
				format(el.P2.X), format(el.P2.Y))
		default:
			panic(fmt.Sprintf("unhandled case %v", el.Kind))
		}
	}
	return err
}
