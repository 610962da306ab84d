package main

import (
	"fmt"
	"io"

	"honnef.co/go/strokeplay"
)

const (
	margin    = 10.0
	graphSize = 100.0
	// Number of segments used to draw an easing graph.
	graphSamples = 64
)

var svgOpts = strokeplay.SVGOptions{MaxPrecision: 3}

// scene is the content of one SVG document.
type scene struct {
	paths []strokeplay.BezPath
	// graphs, if not empty, are drawn in a row below the paths.
	graphs []strokeplay.MotionProfile
	cursor *strokeplay.Point
}

// layout returns the view box of the scene and the boxes of its easing
// graphs.
func (sc scene) layout() (strokeplay.Rect, []strokeplay.Rect) {
	var view strokeplay.Rect
	ok := false
	add := func(r strokeplay.Rect) {
		if ok {
			view = view.Union(r)
		} else {
			view, ok = r, true
		}
	}
	for _, p := range sc.paths {
		if r, nonEmpty := p.ControlBox(); nonEmpty {
			add(r)
		}
	}
	if sc.cursor != nil {
		add(strokeplay.NewRectFromPoints(*sc.cursor, *sc.cursor))
	}
	if !ok {
		add(strokeplay.Rect{})
	}

	graphs := make([]strokeplay.Rect, len(sc.graphs))
	x, y := view.X0, view.Y1+2*margin
	for i := range graphs {
		graphs[i] = strokeplay.Rect{X0: x, Y0: y, X1: x + graphSize, Y1: y + graphSize}
		x += graphSize + margin
	}
	for _, r := range graphs {
		add(r)
	}
	return view.Inflate(margin, margin), graphs
}

// graphTransform maps an easing graph, which lives in the y-up unit square,
// into box.
func graphTransform(box strokeplay.Rect) strokeplay.Affine {
	return strokeplay.MapUnitSquare(strokeplay.Rect{X0: box.X0, Y0: box.Y1, X1: box.X1, Y1: box.Y0})
}

func writeScene(w io.Writer, sc scene) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	path := func(p strokeplay.BezPath, attrs string) {
		if len(p) == 0 {
			return
		}
		printf(`  <path d="`)
		if err == nil {
			err = p.WriteSVG(w, svgOpts)
		}
		printf(`" %s/>`+"\n", attrs)
	}

	view, boxes := sc.layout()
	printf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`+"\n",
		view.X0, view.Y0, view.Width(), view.Height())
	for _, p := range sc.paths {
		path(p, `fill="none" stroke="black" stroke-width="2" stroke-linecap="round"`)
	}
	for i, prof := range sc.graphs {
		box := boxes[i]
		printf(`  <rect x="%g" y="%g" width="%g" height="%g" fill="none" stroke="#ccc"/>`+"\n",
			box.X0, box.Y0, box.Width(), box.Height())
		g := strokeplay.ProfileGraph(prof, graphSamples).Transform(graphTransform(box))
		path(g, `fill="none" stroke="#c33" stroke-width="1.5"`)
	}
	if sc.cursor != nil {
		printf(`  <circle cx="%g" cy="%g" r="4" fill="#36c"/>`+"\n", sc.cursor.X, sc.cursor.Y)
	}
	printf("</svg>\n")
	return err
}
