package strokeplay

import (
	"fmt"
	"math"
)

// EasingFunc maps normalized time progress in [0, 1] to normalized eased
// progress in [0, 1]. All cataloged functions satisfy f(0) = 0 and f(1) = 1.
type EasingFunc func(t float64) float64

// Easing names one of the cataloged easing functions.
type Easing int

const (
	Linear Easing = iota
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseInSine
	EaseOutSine
)

// Easings lists the whole catalog in presentation order.
var Easings = []Easing{
	Linear,
	EaseInQuad,
	EaseOutQuad,
	EaseInOutQuad,
	EaseInCubic,
	EaseOutCubic,
	EaseInOutCubic,
	EaseInSine,
	EaseOutSine,
}

var easingNames = [...]string{
	Linear:         "linear",
	EaseInQuad:     "easeInQuad",
	EaseOutQuad:    "easeOutQuad",
	EaseInOutQuad:  "easeInOutQuad",
	EaseInCubic:    "easeInCubic",
	EaseOutCubic:   "easeOutCubic",
	EaseInOutCubic: "easeInOutCubic",
	EaseInSine:     "easeInSine",
	EaseOutSine:    "easeOutSine",
}

// The operation order of these functions is part of their contract. Don't
// "simplify" them.
var easingFuncs = [...]EasingFunc{
	Linear:      func(t float64) float64 { return t },
	EaseInQuad:  func(t float64) float64 { return t * t },
	EaseOutQuad: func(t float64) float64 { return t * (2 - t) },
	EaseInOutQuad: func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	},
	EaseInCubic: func(t float64) float64 { return t * t * t },
	EaseOutCubic: func(t float64) float64 {
		t1 := t - 1
		return t1*t1*t1 + 1
	},
	EaseInOutCubic: func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return (t-1)*(2*t-2)*(2*t-2) + 1
	},
	EaseInSine:  func(t float64) float64 { return 1 - math.Cos((t*math.Pi)/2) },
	EaseOutSine: func(t float64) float64 { return math.Sin((t * math.Pi) / 2) },
}

func (e Easing) valid() bool {
	return e >= 0 && int(e) < len(easingNames)
}

func (e Easing) String() string {
	if !e.valid() {
		return fmt.Sprintf("Easing(%d)", int(e))
	}
	return easingNames[e]
}

// Func returns the easing function. It panics if e is not part of the catalog.
func (e Easing) Func() EasingFunc {
	if !e.valid() {
		panic(fmt.Sprintf("invalid easing %d", int(e)))
	}
	return easingFuncs[e]
}

// Eval evaluates the easing function at t.
func (e Easing) Eval(t float64) float64 {
	return e.Func()(t)
}

func (e Easing) MarshalText() ([]byte, error) {
	if !e.valid() {
		return nil, fmt.Errorf("invalid easing %d", int(e))
	}
	return []byte(easingNames[e]), nil
}

func (e *Easing) UnmarshalText(b []byte) error {
	v, err := ParseEasing(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ParseEasing returns the easing with the given catalog name, such as
// "easeInQuad".
func ParseEasing(name string) (Easing, error) {
	for i, n := range easingNames {
		if n == name {
			return Easing(i), nil
		}
	}
	return 0, fmt.Errorf("unknown easing function %q", name)
}

// EaseInChoices returns the easings offered for the ease-in phase: linear and
// the functions that only ease in.
func EaseInChoices() []Easing {
	return []Easing{Linear, EaseInQuad, EaseInCubic, EaseInSine}
}

// EaseOutChoices returns the easings offered for the ease-out phase: linear
// and the functions that only ease out.
func EaseOutChoices() []Easing {
	return []Easing{Linear, EaseOutQuad, EaseOutCubic, EaseOutSine}
}
