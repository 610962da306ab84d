// Package playback replays strokes against the wall clock.
package playback

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"honnef.co/go/strokeplay"
	"honnef.co/go/strokeplay/internal/log"
)

const (
	DefaultStrokeDuration = strokeplay.DefaultStrokeDuration * time.Millisecond
	DefaultFrameInterval  = 16 * time.Millisecond
)

// Program is an immutable snapshot of everything needed to replay a drawing.
// Editing the session it was taken from doesn't affect a running replay.
type Program struct {
	Paths    []strokeplay.MeasuredPath
	Profiles []strokeplay.MotionProfile
	// Pauses between consecutive strokes, in milliseconds.
	Pauses []float64
}

// FromSession measures the session's paths and snapshots its profiles and
// pauses.
func FromSession(s *strokeplay.Session, m strokeplay.Measurer) Program {
	paths := s.Paths()
	prog := Program{
		Paths:    make([]strokeplay.MeasuredPath, len(paths)),
		Profiles: s.Profiles(),
		Pauses:   s.Pauses(),
	}
	for i, p := range paths {
		prog.Paths[i] = m(p)
	}
	return prog
}

func (prog Program) validate() error {
	if len(prog.Paths) != len(prog.Profiles) {
		return errors.Errorf("program has %d paths but %d profiles", len(prog.Paths), len(prog.Profiles))
	}
	for i, p := range prog.Profiles {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "stroke %d", i)
		}
	}
	return nil
}

// Len returns the number of strokes.
func (prog Program) Len() int { return len(prog.Paths) }

// Frame returns the frame of stroke i at time progress.
func (prog Program) Frame(i int, progress float64) Frame {
	eased := prog.Profiles[i].Eval(progress)
	path := prog.Paths[i]
	return Frame{
		Stroke:   i,
		Progress: progress,
		Eased:    eased,
		Pos:      path.PointAtLength(path.Length() * eased),
	}
}

// Schedule returns the replay time line for strokes of the given duration.
func (prog Program) Schedule(strokeDuration time.Duration) strokeplay.Schedule {
	return strokeplay.Schedule{
		Strokes:        prog.Len(),
		StrokeDuration: millis(strokeDuration),
		Pauses:         prog.Pauses,
	}
}

// At returns the frame shown elapsed into a replay, computed without a
// clock. It returns false once the replay is over.
func (prog Program) At(elapsed, strokeDuration time.Duration) (Frame, bool) {
	stroke, progress, ok := prog.Schedule(strokeDuration).Locate(millis(elapsed))
	if !ok {
		return Frame{}, false
	}
	return prog.Frame(stroke, progress), true
}

// Frame is one cursor position of a replay.
type Frame struct {
	Stroke int
	// Progress is the normalized time progress within the stroke.
	Progress float64
	// Eased is the normalized arc-length progress within the stroke.
	Eased float64
	Pos   strokeplay.Point
}

// Player replays programs in real time.
type Player struct {
	// StrokeDuration is the time each stroke takes. Zero means
	// DefaultStrokeDuration.
	StrokeDuration time.Duration
	// FrameInterval is the time between frames. Zero means
	// DefaultFrameInterval.
	FrameInterval time.Duration
}

func (pl *Player) strokeDuration() time.Duration {
	if pl.StrokeDuration <= 0 {
		return DefaultStrokeDuration
	}
	return pl.StrokeDuration
}

func (pl *Player) frameInterval() time.Duration {
	if pl.FrameInterval <= 0 {
		return DefaultFrameInterval
	}
	return pl.FrameInterval
}

// Play replays the strokes of prog one after the other, calling emit for
// every frame. Every stroke ends with a frame at progress 1. Between strokes,
// Play waits for the recorded pause.
//
// Play returns ctx's error if ctx is cancelled; no frame is emitted after
// that. emit is called from the goroutine that called Play.
func (pl *Player) Play(ctx context.Context, prog Program, emit func(Frame)) error {
	if err := prog.validate(); err != nil {
		return err
	}
	log.Trace.Printf("playing %d strokes", prog.Len())
	for i := range prog.Len() {
		if err := pl.playStroke(ctx, prog, i, emit); err != nil {
			return err
		}
		if i == prog.Len()-1 {
			break
		}
		if i < len(prog.Pauses) && prog.Pauses[i] > 0 {
			if err := sleep(ctx, duration(prog.Pauses[i])); err != nil {
				return err
			}
		}
	}
	return nil
}

func (pl *Player) playStroke(ctx context.Context, prog Program, i int, emit func(Frame)) error {
	d := pl.strokeDuration()
	ticker := time.NewTicker(pl.frameInterval())
	defer ticker.Stop()

	start := time.Now()
	for {
		progress := 1.0
		if elapsed := time.Since(start); elapsed < d {
			progress = float64(elapsed) / float64(d)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		emit(prog.Frame(i, progress))
		if progress >= 1 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func duration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
