// Package strokeplay turns freehand pointer input into smooth strokes and
// replays them with a per-stroke speed profile.
//
// # Pipeline
//
// A drawing arrives as a time-ordered stream of [Sample] values. [Segment]
// splits it into strokes wherever two neighbouring samples are at least a
// threshold apart in time; lone samples are dropped because they carry no
// path. [PauseDurations] records the gaps between the strokes, which playback
// honours.
//
// Each stroke is then fitted with one of three interchangeable curve fitters,
// selected by [Technique]:
//
//   - [CatmullRom] passes a Catmull-Rom spline through every sample and emits
//     it as cubic Béziers.
//   - [MovingAverageCatmullRom] first denoises the stroke with a centred
//     [MovingAverage].
//   - [BSpline] approximates the stroke with a chain of quadratic Béziers in
//     the manner of a quadratic B-spline.
//
// All fitters return a [BezPath], which can be written as SVG path data with
// [BezPath.SVG]. Fitting has no effect on timing.
//
// # Motion profiles
//
// Replaying a stroke maps time progress to arc-length progress. The mapping is
// a [Composite] of three phases: an ease-in phase, a phase of constant speed,
// and an ease-out phase. A [MotionProfile] holds the phase ratios and the
// [Easing] used for each curved phase; one profile exists per stroke.
//
// The easing catalog is closed: [Linear], [EaseInQuad], [EaseOutQuad],
// [EaseInOutQuad], [EaseInCubic], [EaseOutCubic], [EaseInOutCubic],
// [EaseInSine] and [EaseOutSine].
//
// # Measuring paths
//
// This package doesn't compute arc lengths itself. Hosts supply a
// [MeasuredPath] for each rendered path; [CursorAt] combines it with a profile
// to place the cursor, and a [Schedule] tells which stroke is playing at any
// moment. Package honnef.co/go/strokeplay/measure measures a [BezPath]
// numerically and package honnef.co/go/strokeplay/playback drives a replay
// against the wall clock.
//
// # Sessions
//
// [Session] ties the pieces together for one drawing. It owns the strokes,
// paths, profiles and pauses derived from the input, refits paths when the
// technique changes, and discards everything at once on [Session.Clear].
//
// Everything in this package is synchronous and free of shared state.
package strokeplay
