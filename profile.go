package strokeplay

import (
	"errors"
	"fmt"
)

// MotionProfile shapes the speed at which one stroke is replayed.
//
// EaseInRatio and EaseOutRatio are the shares of the stroke's duration spent
// in the ease-in and ease-out phases. They must sum to at most 1; the rest is
// spent moving at constant speed.
type MotionProfile struct {
	ID           string
	EaseInRatio  float64
	EaseOutRatio float64
	EaseIn       Easing
	EaseOut      Easing
}

// DefaultProfile returns the profile assigned to freshly segmented strokes.
func DefaultProfile(id string) MotionProfile {
	return MotionProfile{
		ID:           id,
		EaseInRatio:  0.2,
		EaseOutRatio: 0.2,
		EaseIn:       EaseInQuad,
		EaseOut:      EaseOutQuad,
	}
}

// LinearRatio returns the share of the duration spent at constant speed.
func (p MotionProfile) LinearRatio() float64 {
	return 1 - p.EaseInRatio - p.EaseOutRatio
}

// Eval maps time progress in [0, 1] to arc-length progress in [0, 1]. See
// [Composite].
func (p MotionProfile) Eval(progress float64) float64 {
	return Composite(progress, p.EaseInRatio, p.EaseOutRatio, p.EaseIn.Func(), p.EaseOut.Func())
}

// SetEaseInRatio sets the ease-in ratio, clamped to [0, 1]. If the ratios
// would then sum to more than 1, the ease-out ratio shrinks to make room.
func (p *MotionProfile) SetEaseInRatio(r float64) {
	p.EaseInRatio = clamp01(r)
	if p.EaseInRatio+p.EaseOutRatio > 1 {
		p.EaseOutRatio = 1 - p.EaseInRatio
	}
}

// SetEaseOutRatio sets the ease-out ratio, clamped to [0, 1]. If the ratios
// would then sum to more than 1, the ease-in ratio shrinks to make room.
func (p *MotionProfile) SetEaseOutRatio(r float64) {
	p.EaseOutRatio = clamp01(r)
	if p.EaseInRatio+p.EaseOutRatio > 1 {
		p.EaseInRatio = 1 - p.EaseOutRatio
	}
}

var ErrRatioSum = errors.New("ease-in and ease-out ratios sum to more than 1")

// ratioSlack absorbs the rounding error of 1-r computed by the setters.
const ratioSlack = 1e-12

// Validate reports whether the profile can be evaluated.
func (p MotionProfile) Validate() error {
	if !(p.EaseInRatio >= 0 && p.EaseInRatio <= 1) {
		return fmt.Errorf("ease-in ratio %g out of range [0, 1]", p.EaseInRatio)
	}
	if !(p.EaseOutRatio >= 0 && p.EaseOutRatio <= 1) {
		return fmt.Errorf("ease-out ratio %g out of range [0, 1]", p.EaseOutRatio)
	}
	if p.EaseInRatio+p.EaseOutRatio > 1+ratioSlack {
		return ErrRatioSum
	}
	if !p.EaseIn.valid() {
		return fmt.Errorf("invalid ease-in function %s", p.EaseIn)
	}
	if !p.EaseOut.valid() {
		return fmt.Errorf("invalid ease-out function %s", p.EaseOut)
	}
	return nil
}

// ProfileGraph samples the profile's easing curve. It returns a polyline with
// samples+1 vertices at (progress, eased progress), progress running from 0 to
// 1. A samples value below 1 is treated as 1.
func ProfileGraph(p MotionProfile, samples int) BezPath {
	samples = max(samples, 1)
	g := make(BezPath, 0, samples+1)
	for i := 0; i <= samples; i++ {
		x := float64(i) / float64(samples)
		pt := Pt(x, p.Eval(x))
		if i == 0 {
			g.MoveTo(pt)
		} else {
			g.LineTo(pt)
		}
	}
	return g
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
