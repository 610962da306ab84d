package strokeplay

import (
	"fmt"
)

// Technique selects the curve fitter used to turn strokes into smooth paths.
type Technique int

const (
	CatmullRomTechnique Technique = iota
	MovingAverageTechnique
	BSplineTechnique
)

// Techniques lists all smoothing techniques in presentation order.
var Techniques = []Technique{CatmullRomTechnique, MovingAverageTechnique, BSplineTechnique}

var techniqueNames = [...]string{
	CatmullRomTechnique:    "catmullRom",
	MovingAverageTechnique: "movingAverage",
	BSplineTechnique:       "bSpline",
}

func (t Technique) String() string {
	if t < 0 || int(t) >= len(techniqueNames) {
		return fmt.Sprintf("Technique(%d)", int(t))
	}
	return techniqueNames[t]
}

func (t Technique) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(techniqueNames) {
		return nil, fmt.Errorf("invalid smoothing technique %d", int(t))
	}
	return []byte(techniqueNames[t]), nil
}

func (t *Technique) UnmarshalText(b []byte) error {
	v, err := ParseTechnique(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseTechnique returns the technique with the given name.
func ParseTechnique(name string) (Technique, error) {
	for i, n := range techniqueNames {
		if n == name {
			return Technique(i), nil
		}
	}
	return 0, fmt.Errorf("unknown smoothing technique %q", name)
}

// DefaultWindow is the moving average window used when none is configured.
const DefaultWindow = 5

// DefaultBSplineMinSamples is the smallest stroke that [BSpline] fits with
// quadratic segments. Shorter strokes fall back to [CatmullRom].
const DefaultBSplineMinSamples = 3

// FitOptions configures the curve fitters. The zero value uses the defaults.
type FitOptions struct {
	// Window is the moving average window size. 0 means [DefaultWindow].
	Window int
	// BSplineMinSamples is the B-spline fallback threshold. 0 means
	// [DefaultBSplineMinSamples]; values below 3 are treated as 3.
	BSplineMinSamples int
}

func (opts FitOptions) window() int {
	if opts.Window == 0 {
		return DefaultWindow
	}
	return opts.Window
}

func (opts FitOptions) bsplineMin() int {
	if opts.BSplineMinSamples == 0 {
		return DefaultBSplineMinSamples
	}
	return max(opts.BSplineMinSamples, 3)
}

// Fit smooths the stroke with the given technique. Strokes with fewer than two
// samples produce a nil path.
func (opts FitOptions) Fit(t Technique, stroke []Sample) BezPath {
	switch t {
	case MovingAverageTechnique:
		return CatmullRom(MovingAverage(stroke, opts.window()))
	case BSplineTechnique:
		return bspline(stroke, opts.bsplineMin())
	default:
		return CatmullRom(stroke)
	}
}

// CatmullRom fits a Catmull-Rom spline through every sample of the stroke and
// returns it as a sequence of cubic Béziers, one per pair of consecutive
// samples. The path passes through all samples exactly. At the ends of the
// stroke, the missing neighbour is replaced by the end sample itself.
func CatmullRom(stroke []Sample) BezPath {
	n := len(stroke)
	if n < 2 {
		return nil
	}
	p := make(BezPath, 0, n)
	p.MoveTo(stroke[0].Pt())
	for i := 0; i < n-1; i++ {
		p0 := stroke[max(i-1, 0)]
		p1 := stroke[i]
		p2 := stroke[i+1]
		p3 := stroke[min(i+2, n-1)]

		cp1 := Pt(
			p1.X+(p2.X-p0.X)/6,
			p1.Y+(p2.Y-p0.Y)/6,
		)
		cp2 := Pt(
			p2.X-(p3.X-p1.X)/6,
			p2.Y-(p3.Y-p1.Y)/6,
		)
		p.CubicTo(cp1, cp2, p2.Pt())
	}
	return p
}

// MovingAverage denoises a stroke by replacing each sample's position with the
// mean position of the samples in a window centred on it. The window for
// sample i is [i-⌊w/2⌋, i+⌈w/2⌉), clipped to the stroke. Timestamps are kept.
//
// Strokes shorter than the window, and windows smaller than 1, are returned
// as is, without copying.
func MovingAverage(stroke []Sample, window int) []Sample {
	if window < 1 || len(stroke) < window {
		return stroke
	}
	n := len(stroke)
	out := make([]Sample, n)
	for i := range stroke {
		lo := max(0, i-window/2)
		hi := min(n, i+(window+1)/2)

		var sumX, sumY float64
		for _, s := range stroke[lo:hi] {
			sumX += s.X
			sumY += s.Y
		}
		k := float64(hi - lo)
		out[i] = Sample{X: sumX / k, Y: sumY / k, T: stroke[i].T}
	}
	return out
}

// MovingAverageCatmullRom denoises the stroke with a moving average of the
// given window size and fits a Catmull-Rom spline through the result.
func MovingAverageCatmullRom(stroke []Sample, window int) BezPath {
	return CatmullRom(MovingAverage(stroke, window))
}

// BSpline approximates the stroke with a chain of quadratic Béziers in the
// manner of a quadratic B-spline: interior samples act as control points and
// the curve passes through the midpoints between them. The path starts at the
// first sample and a final quadratic makes it end exactly at the last sample.
//
// Strokes with fewer than three samples are fitted with [CatmullRom] instead.
func BSpline(stroke []Sample) BezPath {
	return bspline(stroke, DefaultBSplineMinSamples)
}

func bspline(stroke []Sample, minSamples int) BezPath {
	n := len(stroke)
	if n < minSamples {
		return CatmullRom(stroke)
	}
	p := make(BezPath, 0, n)
	p.MoveTo(stroke[0].Pt())
	for i := 0; i < n-2; i++ {
		p1 := stroke[i+1].Pt()
		p2 := stroke[i+2].Pt()
		mid := p1.Midpoint(p2)
		p.QuadTo(p1, mid)
		if i == n-3 {
			p.QuadTo(mid, p2)
		}
	}
	return p
}
