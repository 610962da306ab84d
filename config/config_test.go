package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/strokeplay"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100.0, cfg.Segmentation.TimeThresholdMS)
	assert.Equal(t, 2*time.Second, cfg.StrokeDuration())
	assert.Equal(t, strokeplay.DefaultProfile("x"), cfg.MotionProfile("x"))
}

func TestParse(t *testing.T) {
	const doc = `
segmentation:
  time_threshold_ms: 250
smoothing:
  technique: bSpline
  moving_average_window: 7
playback:
  stroke_duration_ms: 500
profile:
  ease_in_ratio: 0.1
  ease_out: easeOutSine
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	opts := cfg.SessionOptions()
	assert.Equal(t, 250.0, opts.Threshold)
	assert.Equal(t, strokeplay.BSplineTechnique, opts.Technique)
	assert.Equal(t, strokeplay.FitOptions{Window: 7, BSplineMinSamples: 3}, opts.Fit)
	assert.Equal(t, strokeplay.MotionProfile{
		EaseInRatio:  0.1,
		EaseOutRatio: 0.2,
		EaseIn:       strokeplay.EaseInQuad,
		EaseOut:      strokeplay.EaseOutSine,
	}, opts.Profile)

	pl := cfg.Player()
	assert.Equal(t, 500*time.Millisecond, pl.StrokeDuration)
	assert.Equal(t, 16*time.Millisecond, pl.FrameInterval)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "segmentation: [1, 2"},
		{"unknown technique", "smoothing: {technique: bezier}"},
		{"unknown easing", "profile: {ease_in: bounce}"},
		{"negative threshold", "segmentation: {time_threshold_ms: -1}"},
		{"zero window", "smoothing: {moving_average_window: 0}"},
		{"small bspline minimum", "smoothing: {bspline_min_samples: 2}"},
		{"zero duration", "playback: {stroke_duration_ms: 0}"},
		{"zero frame interval", "playback: {frame_interval_ms: 0}"},
		{"zero accuracy", "playback: {measure_accuracy: 0}"},
		{"ratio out of range", "profile: {ease_in_ratio: 1.5}"},
		{"ratio sum", "profile: {ease_in_ratio: 0.6, ease_out_ratio: 0.6}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strokeplay.yaml")

	data, err := Default().Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshalUsesNames(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "technique: catmullRom")
	assert.Contains(t, string(data), "ease_in: easeInQuad")
}
