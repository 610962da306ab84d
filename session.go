package strokeplay

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"honnef.co/go/strokeplay/internal/log"
)

// SessionOptions configures a [Session].
type SessionOptions struct {
	// Threshold is the time gap, in milliseconds, that separates strokes. It
	// is used literally; a threshold of 0 puts every sample in its own run.
	Threshold float64
	// Technique is the initially active smoothing technique.
	Technique Technique
	Fit       FitOptions
	// Profile is the template for the profiles of new strokes. Its ID is
	// ignored.
	Profile MotionProfile
	// NewID returns fresh profile IDs. If nil, random UUIDs are used.
	NewID func() string
}

// DefaultSessionOptions returns the options used by interactive hosts: a
// 100ms threshold, Catmull-Rom smoothing and [DefaultProfile].
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		Threshold: DefaultTimeThreshold,
		Technique: CatmullRomTechnique,
		Profile:   DefaultProfile(""),
	}
}

// Session holds everything derived from one drawing: its strokes, their smooth
// paths, one motion profile per stroke, and the pauses between strokes. All of
// it is replaced together by [Session.Process] and discarded together by
// [Session.Clear].
//
// A Session is not safe for concurrent use. Hosts must not edit a stroke's
// profile while that stroke is being replayed.
type Session struct {
	opts      SessionOptions
	technique Technique

	strokes  []Stroke
	paths    []BezPath
	profiles []MotionProfile
	pauses   []float64
}

func NewSession(opts SessionOptions) *Session {
	return &Session{
		opts:      opts,
		technique: opts.Technique,
	}
}

func (s *Session) newID() string {
	if s.opts.NewID != nil {
		return s.opts.NewID()
	}
	return "seg-" + uuid.New().String()
}

// Process segments the samples and fits every resulting stroke with the active
// technique. Previous strokes, paths, profiles and pauses are replaced; every
// stroke gets a fresh profile.
func (s *Session) Process(samples []Sample) {
	strokes := Segment(samples, s.opts.Threshold)

	var kept int
	for _, st := range strokes {
		kept += len(st)
	}
	log.Trace.Printf("segmented %d samples into %d strokes, dropped %d lone samples",
		len(samples), len(strokes), len(samples)-kept)

	profiles := make([]MotionProfile, len(strokes))
	for i := range profiles {
		p := s.opts.Profile
		p.ID = s.newID()
		profiles[i] = p
	}

	s.strokes = strokes
	s.paths = s.fitAll(strokes)
	s.profiles = profiles
	s.pauses = PauseDurations(strokes)
}

func (s *Session) fitAll(strokes []Stroke) []BezPath {
	paths := make([]BezPath, len(strokes))
	for i, st := range strokes {
		paths[i] = s.opts.Fit.Fit(s.technique, st)
	}
	log.Trace.Printf("fitted %d strokes using %s", len(strokes), s.technique)
	return paths
}

// Technique returns the active smoothing technique.
func (s *Session) Technique() Technique { return s.technique }

// SetTechnique changes the smoothing technique and refits the existing
// strokes. Strokes, profiles and pauses are left alone.
func (s *Session) SetTechnique(t Technique) {
	if t == s.technique {
		return
	}
	s.technique = t
	s.paths = s.fitAll(s.strokes)
}

// Len returns the number of strokes.
func (s *Session) Len() int { return len(s.strokes) }

// Strokes returns the strokes. The strokes must not be modified.
func (s *Session) Strokes() []Stroke { return slices.Clone(s.strokes) }

// Paths returns the smooth paths, one per stroke.
func (s *Session) Paths() []BezPath { return slices.Clone(s.paths) }

// Profiles returns a copy of the motion profiles, one per stroke.
func (s *Session) Profiles() []MotionProfile { return slices.Clone(s.profiles) }

// Pauses returns the pauses between consecutive strokes.
func (s *Session) Pauses() []float64 { return slices.Clone(s.pauses) }

// Profile returns the motion profile of stroke i.
func (s *Session) Profile(i int) (MotionProfile, bool) {
	if i < 0 || i >= len(s.profiles) {
		return MotionProfile{}, false
	}
	return s.profiles[i], true
}

// SetProfile replaces the motion profile of stroke i. An empty ID keeps the
// current one.
func (s *Session) SetProfile(i int, p MotionProfile) error {
	if i < 0 || i >= len(s.profiles) {
		return fmt.Errorf("stroke %d out of range [0, %d)", i, len(s.profiles))
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("stroke %d: %w", i, err)
	}
	if p.ID == "" {
		p.ID = s.profiles[i].ID
	}
	s.profiles[i] = p
	return nil
}

// UpdateProfile applies fn to a copy of stroke i's profile and stores the
// result if it is valid.
func (s *Session) UpdateProfile(i int, fn func(p *MotionProfile)) error {
	p, ok := s.Profile(i)
	if !ok {
		return fmt.Errorf("stroke %d out of range [0, %d)", i, len(s.profiles))
	}
	fn(&p)
	return s.SetProfile(i, p)
}

// Schedule returns the replay schedule for the session's strokes.
func (s *Session) Schedule(strokeDuration float64) Schedule {
	return Schedule{
		Strokes:        len(s.strokes),
		StrokeDuration: strokeDuration,
		Pauses:         s.Pauses(),
	}
}

// Clear discards all strokes, paths, profiles and pauses.
func (s *Session) Clear() {
	s.strokes = nil
	s.paths = nil
	s.profiles = nil
	s.pauses = nil
}
