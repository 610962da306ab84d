package measure

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"honnef.co/go/strokeplay"
)

var Pt = strokeplay.Pt

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, got Point, want Point, epsilon float64) {
	t.Helper()
	if d := got.Sub(want).Hypot(); d > epsilon {
		t.Errorf("got %s, expected %s", got, want)
	}
}
