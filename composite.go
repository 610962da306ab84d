package strokeplay

// Composite remaps time progress to arc-length progress using three
// consecutive phases: an ease-in phase covering [0, easeInRatio], a linear
// phase covering the following 1 - easeInRatio - easeOutRatio, and an
// ease-out phase covering the rest. Within a phase, progress is renormalized
// to [0, 1], passed through that phase's function, and scaled back to the
// phase's share of the output.
//
// The output is continuous at the phase boundaries as long as easeIn and
// easeOut satisfy f(0) = 0 and f(1) = 1. Phases with a ratio of zero are never
// divided by.
//
// The ratios must lie in [0, 1] and sum to at most 1. This is not checked;
// [MotionProfile.SetEaseInRatio] and [MotionProfile.SetEaseOutRatio] maintain
// it for edited profiles.
func Composite(progress, easeInRatio, easeOutRatio float64, easeIn, easeOut EasingFunc) float64 {
	linearRatio := 1 - easeInRatio - easeOutRatio
	linearEnd := easeInRatio + linearRatio

	if progress <= easeInRatio {
		return easeInPhase(progress, easeInRatio, easeIn)
	}
	if progress <= linearEnd {
		return linearPhase(progress, easeInRatio, linearRatio)
	}
	return easeOutPhase(progress, linearEnd, easeOutRatio, easeOut)
}

func easeInPhase(progress, easeInRatio float64, fn EasingFunc) float64 {
	if easeInRatio == 0 {
		return 0
	}
	return fn(progress/easeInRatio) * easeInRatio
}

func linearPhase(progress, easeInRatio, linearRatio float64) float64 {
	if linearRatio == 0 {
		return easeInRatio
	}
	phase := (progress - easeInRatio) / linearRatio
	return easeInRatio + phase*linearRatio
}

func easeOutPhase(progress, linearEnd, easeOutRatio float64, fn EasingFunc) float64 {
	if easeOutRatio == 0 {
		return 1
	}
	phase := (progress - linearEnd) / easeOutRatio
	return linearEnd + fn(phase)*(1-linearEnd)
}
