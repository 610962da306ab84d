package main

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/strokeplay"
	"honnef.co/go/strokeplay/measure"
	"honnef.co/go/strokeplay/playback"
)

const twoStrokes = `
- {x: 0, y: 0, t: 0}
- {x: 10, y: 0, t: 10}
- {x: 20, y: 5, t: 20}
- {x: 50, y: 50, t: 400}
- {x: 60, y: 40, t: 410}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseSamples(t *testing.T) {
	samples, err := parseSamples([]byte(twoStrokes))
	require.NoError(t, err)
	require.Len(t, samples, 5)
	assert.Equal(t, strokeplay.S(20, 5, 20), samples[2])

	samples, err = parseSamples([]byte(`[{"x": 1, "y": 2, "t": 3}]`))
	require.NoError(t, err)
	assert.Equal(t, []strokeplay.Sample{strokeplay.S(1, 2, 3)}, samples)

	_, err = parseSamples([]byte(`[{x: 0, y: 0, t: 5}, {x: 1, y: 1, t: 4}]`))
	assert.Error(t, err)

	_, err = readSamples("")
	assert.Error(t, err)
}

func TestRunSVG(t *testing.T) {
	in := writeFile(t, "points.yaml", twoStrokes)
	var stdout, stderr bytes.Buffer
	code := run([]string{"svg", "-i", in, "--graph"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.Contains(t, out, `d="M0,0 C`)
	assert.Contains(t, out, `d="M50,50 C`)
	assert.Equal(t, 4, strings.Count(out, "<path "), "two strokes and two graphs")
	assert.Equal(t, 2, strings.Count(out, "<rect "))
}

func TestRunSVGTechnique(t *testing.T) {
	in := writeFile(t, "points.yaml", twoStrokes)
	outPath := filepath.Join(t.TempDir(), "out.svg")
	var stdout, stderr bytes.Buffer
	code := run([]string{"svg", "-i", in, "-t", "bSpline", "-o", outPath}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	// The second stroke has two samples and falls back to Catmull-Rom.
	assert.Contains(t, string(data), `d="M0,0 Q`)
	assert.Contains(t, string(data), `d="M50,50 C`)
}

func TestRunSVGLongFlags(t *testing.T) {
	in := writeFile(t, "points.yaml", twoStrokes)
	outPath := filepath.Join(t.TempDir(), "out.svg")
	var stdout, stderr bytes.Buffer
	code := run([]string{"svg", "--input=" + in, "--technique=bSpline", "--output=" + outPath}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `d="M0,0 Q`)
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"paint"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `unknown command "paint"`)

	stderr.Reset()
	assert.Equal(t, 1, run([]string{"svg"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "missing input file")

	in := writeFile(t, "points.yaml", twoStrokes)
	stderr.Reset()
	assert.Equal(t, 1, run([]string{"svg", "-i", in, "-t", "spline"}, &stdout, &stderr))

	cfg := writeFile(t, "cfg.yaml", "profile: {ease_in_ratio: 2}")
	stderr.Reset()
	assert.Equal(t, 1, run([]string{"svg", "-i", in, "-c", cfg}, &stdout, &stderr))
}

func TestFrameTimes(t *testing.T) {
	assert.Equal(t, []time.Duration{0}, frameTimes(0, time.Second/30))
	assert.Equal(t,
		[]time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond, 250 * time.Millisecond},
		frameTimes(250*time.Millisecond, 100*time.Millisecond))
	assert.Equal(t,
		[]time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond},
		frameTimes(200*time.Millisecond, 100*time.Millisecond))
}

func TestFrameStep(t *testing.T) {
	step, err := frameStep(50)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, step)

	for _, fps := range []float64{0, -1, math.NaN(), math.Inf(1), 2e9} {
		_, err := frameStep(fps)
		assert.Error(t, err, "fps %g", fps)
	}
}

func TestRunFramesRejectsFrameRate(t *testing.T) {
	in := writeFile(t, "points.yaml", twoStrokes)
	dir := filepath.Join(t.TempDir(), "frames")
	var stdout, stderr bytes.Buffer
	code := run([]string{"frames", "-i", in, "-o", dir, "--fps=2e9"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "frame rate")
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "no output directory for a rejected frame rate")
}

func TestRunFrames(t *testing.T) {
	in := writeFile(t, "points.yaml", twoStrokes)
	cfg := writeFile(t, "cfg.yaml", "playback: {stroke_duration_ms: 100}")
	dir := filepath.Join(t.TempDir(), "frames")
	var stdout, stderr bytes.Buffer
	code := run([]string{"frames", "-i", in, "-c", cfg, "-o", dir, "--fps=50"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	// Two strokes of 100ms and a 390ms pause at 20ms per frame.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 30)
	assert.Contains(t, stdout.String(), "wrote 30 frames")

	first, err := os.ReadFile(filepath.Join(dir, "frame00000.svg"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(first), "<path "))
	assert.Contains(t, string(first), `<circle cx="0" cy="0"`)

	last, err := os.ReadFile(filepath.Join(dir, "frame00029.svg"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(last), "<path "))
	assert.Contains(t, string(last), `<circle cx="60" cy="40"`)
}

func testEditor(t *testing.T) *editor {
	t.Helper()
	samples, err := parseSamples([]byte(twoStrokes))
	require.NoError(t, err)
	s := strokeplay.NewSession(strokeplay.DefaultSessionOptions())
	s.Process(samples)
	require.Equal(t, 2, s.Len())
	return newEditor(s)
}

func TestEditorRatios(t *testing.T) {
	e := testEditor(t)
	require.NoError(t, e.selectStroke("2"))
	require.NoError(t, e.setRatio("in", "0.9"))

	p, _ := e.session.Profile(1)
	assert.Equal(t, 0.9, p.EaseInRatio)
	assert.InDelta(t, 0.1, p.EaseOutRatio, 1e-12)
	assert.NoError(t, p.Validate())

	first, _ := e.session.Profile(0)
	assert.Equal(t, 0.2, first.EaseInRatio, "other strokes are unaffected")

	require.NoError(t, e.setRatio("out", "1.5"))
	p, _ = e.session.Profile(1)
	assert.Equal(t, 1.0, p.EaseOutRatio)
	assert.Equal(t, 0.0, p.EaseInRatio)

	assert.Error(t, e.setRatio("in", "lots"))
	assert.Error(t, e.setRatio("middle", "0.1"))
}

func TestEditorEasings(t *testing.T) {
	e := testEditor(t)
	require.NoError(t, e.setEasing("out", "easeOutSine"))
	require.NoError(t, e.setEasing("in", "linear"))
	p, _ := e.session.Profile(0)
	assert.Equal(t, strokeplay.EaseOutSine, p.EaseOut)
	assert.Equal(t, strokeplay.Linear, p.EaseIn)

	assert.Error(t, e.setEasing("in", "easeOutQuad"))
	assert.Error(t, e.setEasing("out", "easeInOutCubic"))
	assert.Error(t, e.setEasing("in", "bounce"))
	assert.Error(t, e.setEasing("sideways", "linear"))

	assert.Equal(t, []string{"linear", "easeInQuad", "easeInCubic", "easeInSine"}, choiceNames("in"))
	assert.Equal(t, []string{"linear", "easeOutQuad", "easeOutCubic", "easeOutSine"}, choiceNames("out"))
}

func TestEditorSelectShowClear(t *testing.T) {
	e := testEditor(t)
	assert.Equal(t, "strokeplay[1/2]> ", e.prompt())
	assert.Error(t, e.selectStroke("0"))
	assert.Error(t, e.selectStroke("3"))
	require.NoError(t, e.selectStroke("2"))
	assert.Equal(t, "strokeplay[2/2]> ", e.prompt())

	require.NoError(t, e.setTechnique("movingAverage"))
	assert.Equal(t, strokeplay.MovingAverageTechnique, e.session.Technique())
	assert.Error(t, e.setTechnique("bezier"))

	var sb strings.Builder
	require.NoError(t, e.show(&sb))
	assert.Contains(t, sb.String(), "stroke 2")
	assert.Contains(t, sb.String(), "easeInQuad")
	assert.Contains(t, sb.String(), "M50,50 C")

	sb.Reset()
	e.listStrokes(&sb)
	assert.Contains(t, sb.String(), "1: 3 samples, 20ms, then 380ms pause")
	assert.Contains(t, sb.String(), "* 2: 2 samples, 10ms")

	e.clear()
	assert.Equal(t, "strokeplay> ", e.prompt())
	assert.Error(t, e.setRatio("in", "0.1"))
	assert.Error(t, e.show(&sb))
}

func TestEditorWriteSVG(t *testing.T) {
	e := testEditor(t)
	path := filepath.Join(t.TempDir(), "out.svg")
	require.NoError(t, e.writeSVG(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "<rect "))
}

func TestRecorder(t *testing.T) {
	var r recorder
	t0 := time.Unix(100, 0)
	at := func(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

	assert.False(t, r.mouse(cell{1, 1}, false, at(0)), "release without press")
	assert.False(t, r.mouse(cell{1, 1}, true, at(0)))
	assert.False(t, r.mouse(cell{1, 1}, true, at(5)), "no movement")
	assert.False(t, r.mouse(cell{2, 1}, true, at(10)))
	assert.True(t, r.mouse(cell{2, 1}, false, at(15)))
	assert.False(t, r.mouse(cell{5, 5}, true, at(500)))
	assert.True(t, r.mouse(cell{5, 5}, false, at(510)))

	want := []strokeplay.Sample{
		strokeplay.S(1, 2, 0),
		strokeplay.S(2, 2, 10),
		strokeplay.S(5, 10, 500),
	}
	assert.Equal(t, want, r.samples)

	r.reset()
	assert.Empty(t, r.samples)
	assert.True(t, r.start.IsZero())
}

func TestRasterize(t *testing.T) {
	var p strokeplay.BezPath
	p.MoveTo(strokeplay.Pt(0, 0))
	p.LineTo(strokeplay.Pt(4, 0))
	p.LineTo(strokeplay.Pt(4, 4))
	cells := rasterize([]strokeplay.BezPath{p}, measure.Measurer(measure.DefaultAccuracy))
	assert.Equal(t, []cell{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {4, 1}, {4, 2}}, cells)
	assert.Empty(t, rasterize(nil, measure.Measurer(measure.DefaultAccuracy)))
}

func TestCellMapping(t *testing.T) {
	for _, c := range []cell{{0, 0}, {3, 7}, {80, 24}} {
		assert.Equal(t, c, pointToCell(cellToPoint(c)))
	}
}

func TestGraphTransform(t *testing.T) {
	box := strokeplay.Rect{X0: 10, Y0: 20, X1: 110, Y1: 120}
	aff := graphTransform(box)
	assert.Equal(t, strokeplay.Pt(10, 120), strokeplay.Pt(0, 0).Transform(aff))
	assert.Equal(t, strokeplay.Pt(110, 20), strokeplay.Pt(1, 1).Transform(aff))
}

func TestSceneLayout(t *testing.T) {
	var p strokeplay.BezPath
	p.MoveTo(strokeplay.Pt(0, 0))
	p.LineTo(strokeplay.Pt(50, 30))
	view, boxes := scene{
		paths:  []strokeplay.BezPath{p},
		graphs: make([]strokeplay.MotionProfile, 2),
	}.layout()

	assert.Equal(t, []strokeplay.Rect{
		{X0: 0, Y0: 50, X1: 100, Y1: 150},
		{X0: 110, Y0: 50, X1: 210, Y1: 150},
	}, boxes)
	assert.Equal(t, strokeplay.Rect{X0: -10, Y0: -10, X1: 220, Y1: 160}, view)
}

func TestTerminalHostDropsStaleFrames(t *testing.T) {
	h := &terminalHost{session: strokeplay.NewSession(strokeplay.DefaultSessionOptions())}
	start := func() int {
		_, cancel := context.WithCancel(context.Background())
		h.replay++
		h.cancel = cancel
		return h.replay
	}
	frame := func(replay int, x, y float64) *frameEvent {
		return &frameEvent{replay: replay, frame: playback.Frame{Pos: strokeplay.Pt(x, y)}}
	}

	first := start()
	h.showFrame(frame(first, 10, 8))
	require.NotNil(t, h.cursor)
	assert.Equal(t, cell{10, 4}, *h.cursor)

	h.stop()
	assert.Nil(t, h.cursor)
	assert.Equal(t, "stopped", h.status)
	// Frames queued before the stop arrive afterwards.
	h.showFrame(frame(first, 20, 8))
	assert.Nil(t, h.cursor)
	h.finish(&playDoneEvent{replay: first, err: context.Canceled})
	assert.Equal(t, "stopped", h.status)

	second := start()
	h.showFrame(frame(first, 20, 8))
	assert.Nil(t, h.cursor)
	h.finish(&playDoneEvent{replay: first})
	assert.NotNil(t, h.cancel, "an old replay ended the current one")

	h.showFrame(frame(second, 4, 2))
	require.NotNil(t, h.cursor)
	assert.Equal(t, cell{4, 1}, *h.cursor)
	h.finish(&playDoneEvent{replay: second})
	assert.Nil(t, h.cancel)
	assert.Nil(t, h.cursor)
	assert.Equal(t, "done", h.status)
}
