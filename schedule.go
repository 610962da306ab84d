package strokeplay

// DefaultStrokeDuration is the playback time of a single stroke, in
// milliseconds, used when none is configured.
const DefaultStrokeDuration = 2000

// MeasuredPath is a rendered smooth path that can be queried by arc length.
// It is supplied by the host that renders paths; package measure provides an
// implementation for [BezPath].
type MeasuredPath interface {
	// Length returns the total arc length of the path.
	Length() float64
	// PointAtLength returns the point at the given arc length from the start
	// of the path. Distances outside [0, Length()] are clamped.
	PointAtLength(d float64) Point
}

// Measurer prepares a smooth path for arc-length queries.
type Measurer func(BezPath) MeasuredPath

// CursorAt returns the cursor position of a stroke being replayed with the
// given profile, at normalized time progress in [0, 1].
func CursorAt(m MeasuredPath, p MotionProfile, progress float64) Point {
	return m.PointAtLength(m.Length() * p.Eval(progress))
}

// Schedule lays out the replay of a drawing on a single time line. Strokes
// play one after another, each for StrokeDuration milliseconds, separated by
// the recorded pauses. During a pause, the cursor rests at the end of the
// stroke that just finished.
type Schedule struct {
	Strokes        int
	StrokeDuration float64
	// Pauses holds the pause after each stroke but the last, as returned by
	// [PauseDurations]. Missing entries count as no pause.
	Pauses []float64
}

func (s Schedule) pause(i int) float64 {
	if i < len(s.Pauses) {
		return max(s.Pauses[i], 0)
	}
	return 0
}

// Total returns the duration of the whole replay.
func (s Schedule) Total() float64 {
	if s.Strokes <= 0 {
		return 0
	}
	total := float64(s.Strokes) * max(s.StrokeDuration, 0)
	for i := range s.Strokes - 1 {
		total += s.pause(i)
	}
	return total
}

// Locate returns which stroke is playing elapsed milliseconds into the replay
// and its normalized time progress. It returns false once the replay is over,
// or if there is nothing to replay.
func (s Schedule) Locate(elapsed float64) (stroke int, progress float64, ok bool) {
	if s.Strokes <= 0 {
		return 0, 0, false
	}
	t := max(elapsed, 0)
	d := max(s.StrokeDuration, 0)
	for i := range s.Strokes {
		if t <= d {
			if d == 0 {
				return i, 1, true
			}
			return i, t / d, true
		}
		t -= d
		if i == s.Strokes-1 {
			break
		}
		p := s.pause(i)
		if t <= p {
			return i, 1, true
		}
		t -= p
	}
	return s.Strokes - 1, 1, false
}
