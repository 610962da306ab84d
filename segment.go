package strokeplay

import (
	"fmt"
	"iter"
)

// DefaultTimeThreshold is the gap, in milliseconds, that callers typically use
// to tell a pause between two gestures apart from continuous motion.
const DefaultTimeThreshold = 100

// Sample is a pointer position captured while drawing. T is the time in
// milliseconds since drawing started; it never decreases within a stroke.
type Sample struct {
	X float64
	Y float64
	T float64
}

// S returns the sample (x, y) at time t.
func S(x, y, t float64) Sample {
	return Sample{X: x, Y: y, T: t}
}

// Pt returns the sample's position.
func (s Sample) Pt() Point {
	return Point{X: s.X, Y: s.Y}
}

func (s Sample) String() string {
	return fmt.Sprintf("(%g, %g @%gms)", s.X, s.Y, s.T)
}

// Stroke is one continuous drawing gesture, in drawing order. Strokes returned
// by [Segment] always have at least two samples.
type Stroke []Sample

// Duration returns the time between the stroke's first and last sample.
func (s Stroke) Duration() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].T - s[0].T
}

// Points returns the stroke's positions without their timestamps.
func (s Stroke) Points() []Point {
	out := make([]Point, len(s))
	for i, smp := range s {
		out[i] = smp.Pt()
	}
	return out
}

// Runs splits samples into maximal runs in which no two neighbouring samples
// are threshold or more milliseconds apart. Unlike [Segment], it also yields
// runs consisting of a single sample. The yielded slices alias samples.
func Runs(samples []Sample, threshold float64) iter.Seq[[]Sample] {
	return func(yield func([]Sample) bool) {
		if len(samples) == 0 {
			return
		}
		start := 0
		for i := 1; i < len(samples); i++ {
			if samples[i].T-samples[i-1].T >= threshold {
				if !yield(samples[start:i]) {
					return
				}
				start = i
			}
		}
		yield(samples[start:])
	}
}

// Segment splits a time-ordered sample stream into strokes. A gap of at least
// threshold milliseconds between two neighbouring samples ends the current
// stroke. Runs of a single sample carry no drawable path and are dropped.
//
// The returned strokes are copies and do not alias samples.
func Segment(samples []Sample, threshold float64) []Stroke {
	var out []Stroke
	for run := range Runs(samples, threshold) {
		if len(run) < 2 {
			continue
		}
		out = append(out, Stroke(append([]Sample(nil), run...)))
	}
	return out
}

// PauseDurations returns the gaps between consecutive strokes: entry i is the
// time from the last sample of strokes[i] to the first sample of
// strokes[i+1]. It returns nil for fewer than two strokes.
func PauseDurations(strokes []Stroke) []float64 {
	if len(strokes) < 2 {
		return nil
	}
	out := make([]float64, len(strokes)-1)
	for i := range out {
		prev := strokes[i]
		next := strokes[i+1]
		if len(prev) == 0 || len(next) == 0 {
			continue
		}
		out[i] = max(next[0].T-prev[len(prev)-1].T, 0)
	}
	return out
}
