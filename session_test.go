package strokeplay

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

var twoStrokes = []Sample{
	S(0, 0, 0), S(10, 0, 16), S(20, 5, 32), S(30, 10, 48),
	S(50, 50, 300), S(60, 60, 316), S(70, 50, 332),
	// lone sample, dropped
	S(90, 90, 700),
}

func counterIDs() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}
}

func newTestSession() *Session {
	opts := DefaultSessionOptions()
	opts.NewID = counterIDs()
	return NewSession(opts)
}

func TestSessionProcess(t *testing.T) {
	s := newTestSession()
	s.Process(twoStrokes)

	if s.Len() != 2 {
		t.Fatalf("got %d strokes, want 2", s.Len())
	}
	diff(t, []Stroke{Stroke(twoStrokes[:4]), Stroke(twoStrokes[4:7])}, s.Strokes())
	diff(t, []float64{252}, s.Pauses())

	paths := s.Paths()
	diff(t, []BezPath{CatmullRom(twoStrokes[:4]), CatmullRom(twoStrokes[4:7])}, paths)

	var ids []string
	for i, p := range s.Profiles() {
		want := DefaultProfile(fmt.Sprintf("p%d", i+1))
		diff(t, want, p)
		ids = append(ids, p.ID)
	}
	diff(t, []string{"p1", "p2"}, ids)

	sched := s.Schedule(2000)
	diff(t, Schedule{Strokes: 2, StrokeDuration: 2000, Pauses: []float64{252}}, sched)
	diff(t, 4252.0, sched.Total())
}

func TestSessionRandomIDs(t *testing.T) {
	s := NewSession(DefaultSessionOptions())
	s.Process(twoStrokes)
	p := s.Profiles()
	for _, pr := range p {
		if !strings.HasPrefix(pr.ID, "seg-") {
			t.Errorf("unexpected ID %q", pr.ID)
		}
	}
	if p[0].ID == p[1].ID {
		t.Errorf("IDs not unique: %q", p[0].ID)
	}
}

func TestSessionProcessReplaces(t *testing.T) {
	s := newTestSession()
	s.Process(twoStrokes)
	if err := s.UpdateProfile(0, func(p *MotionProfile) { p.SetEaseInRatio(0.5) }); err != nil {
		t.Fatal(err)
	}

	s.Process(twoStrokes[:4])
	if s.Len() != 1 {
		t.Fatalf("got %d strokes, want 1", s.Len())
	}
	diff(t, []MotionProfile{DefaultProfile("p3")}, s.Profiles())
	if s.Pauses() != nil {
		t.Errorf("got pauses %v, want none", s.Pauses())
	}
}

func TestSessionSetTechnique(t *testing.T) {
	s := newTestSession()
	s.Process(twoStrokes)
	before := s.Profiles()

	s.SetTechnique(BSplineTechnique)
	diff(t, BSplineTechnique, s.Technique())
	paths := s.Paths()
	diff(t, []BezPath{BSpline(twoStrokes[:4]), BSpline(twoStrokes[4:7])}, paths)
	diff(t, 3, paths[0].Count(QuadToKind))
	diff(t, 2, paths[1].Count(QuadToKind))
	diff(t, before, s.Profiles())
	diff(t, []float64{252}, s.Pauses())

	s.SetTechnique(MovingAverageTechnique)
	// Both strokes are shorter than the default window.
	diff(t, []BezPath{CatmullRom(twoStrokes[:4]), CatmullRom(twoStrokes[4:7])}, s.Paths())

	// The technique outlives the data it was applied to.
	s.Clear()
	s.Process(twoStrokes)
	diff(t, MovingAverageTechnique, s.Technique())
}

func TestSessionProfiles(t *testing.T) {
	s := newTestSession()
	s.Process(twoStrokes)

	p := DefaultProfile("")
	p.EaseInRatio, p.EaseOutRatio = 0.1, 0.4
	p.EaseOut = EaseOutSine
	if err := s.SetProfile(1, p); err != nil {
		t.Fatal(err)
	}
	got, ok := s.Profile(1)
	if !ok {
		t.Fatal("missing profile")
	}
	p.ID = "p2"
	diff(t, p, got)

	p.ID = "renamed"
	if err := s.SetProfile(1, p); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Profile(1)
	diff(t, "renamed", got.ID)

	bad := p
	bad.EaseInRatio, bad.EaseOutRatio = 0.7, 0.7
	err := s.SetProfile(0, bad)
	if !errors.Is(err, ErrRatioSum) {
		t.Errorf("got %v, want %v", err, ErrRatioSum)
	}
	got, _ = s.Profile(0)
	diff(t, DefaultProfile("p1"), got)

	if err := s.SetProfile(2, p); err == nil {
		t.Error("expected error for out of range stroke")
	}
	if err := s.SetProfile(-1, p); err == nil {
		t.Error("expected error for negative stroke")
	}
	if _, ok := s.Profile(5); ok {
		t.Error("expected no profile for stroke 5")
	}

	if err := s.UpdateProfile(0, func(p *MotionProfile) { p.EaseIn = Easing(99) }); err == nil {
		t.Error("expected error for invalid easing")
	}
	if err := s.UpdateProfile(0, func(p *MotionProfile) { p.SetEaseOutRatio(0.9) }); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Profile(0)
	diff(t, "p1", got.ID)
	if got.EaseInRatio+got.EaseOutRatio > 1+1e-12 {
		t.Errorf("ratios sum to %g", got.EaseInRatio+got.EaseOutRatio)
	}
	if err := s.UpdateProfile(3, func(*MotionProfile) {}); err == nil {
		t.Error("expected error for out of range stroke")
	}
}

func TestSessionCopies(t *testing.T) {
	s := newTestSession()
	s.Process(twoStrokes)

	profiles := s.Profiles()
	profiles[0].EaseInRatio = 0.9
	pauses := s.Pauses()
	pauses[0] = 0

	got, _ := s.Profile(0)
	diff(t, 0.2, got.EaseInRatio)
	diff(t, []float64{252}, s.Pauses())
}

func TestSessionClear(t *testing.T) {
	s := newTestSession()
	s.Process(twoStrokes)
	s.Clear()

	diff(t, 0, s.Len())
	if s.Strokes() != nil || s.Paths() != nil || s.Profiles() != nil || s.Pauses() != nil {
		t.Error("Clear left data behind")
	}
	diff(t, 0.0, s.Schedule(2000).Total())
	if _, ok := s.Profile(0); ok {
		t.Error("profile survived Clear")
	}
}

func TestSessionEmptyInput(t *testing.T) {
	s := newTestSession()
	s.Process(nil)
	diff(t, 0, s.Len())
	s.Process([]Sample{S(1, 1, 0), S(2, 2, 500)})
	diff(t, 0, s.Len())
}
