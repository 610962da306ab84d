// Package config loads strokeplay settings from YAML files.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"honnef.co/go/strokeplay"
	"honnef.co/go/strokeplay/measure"
	"honnef.co/go/strokeplay/playback"
)

type Config struct {
	Segmentation Segmentation `yaml:"segmentation"`
	Smoothing    Smoothing    `yaml:"smoothing"`
	Playback     Playback     `yaml:"playback"`
	Profile      Profile      `yaml:"profile"`
}

type Segmentation struct {
	// TimeThresholdMS is the gap between samples that starts a new stroke.
	TimeThresholdMS float64 `yaml:"time_threshold_ms"`
}

type Smoothing struct {
	Technique           strokeplay.Technique `yaml:"technique"`
	MovingAverageWindow int                  `yaml:"moving_average_window"`
	BSplineMinSamples   int                  `yaml:"bspline_min_samples"`
}

type Playback struct {
	StrokeDurationMS float64 `yaml:"stroke_duration_ms"`
	FrameIntervalMS  float64 `yaml:"frame_interval_ms"`
	MeasureAccuracy  float64 `yaml:"measure_accuracy"`
}

// Profile is the motion profile given to new strokes.
type Profile struct {
	EaseInRatio  float64           `yaml:"ease_in_ratio"`
	EaseOutRatio float64           `yaml:"ease_out_ratio"`
	EaseIn       strokeplay.Easing `yaml:"ease_in"`
	EaseOut      strokeplay.Easing `yaml:"ease_out"`
}

// Default returns the built-in configuration.
func Default() *Config {
	p := strokeplay.DefaultProfile("")
	return &Config{
		Segmentation: Segmentation{
			TimeThresholdMS: strokeplay.DefaultTimeThreshold,
		},
		Smoothing: Smoothing{
			Technique:           strokeplay.CatmullRomTechnique,
			MovingAverageWindow: strokeplay.DefaultWindow,
			BSplineMinSamples:   strokeplay.DefaultBSplineMinSamples,
		},
		Playback: Playback{
			StrokeDurationMS: strokeplay.DefaultStrokeDuration,
			FrameIntervalMS:  float64(playback.DefaultFrameInterval / time.Millisecond),
			MeasureAccuracy:  measure.DefaultAccuracy,
		},
		Profile: Profile{
			EaseInRatio:  p.EaseInRatio,
			EaseOutRatio: p.EaseOutRatio,
			EaseIn:       p.EaseIn,
			EaseOut:      p.EaseOut,
		},
	}
}

// Parse decodes a YAML document on top of the defaults and validates the
// result. Fields missing from the document keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (cfg *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}

func (cfg *Config) Validate() error {
	switch {
	case !(cfg.Segmentation.TimeThresholdMS >= 0):
		return errors.Errorf("segmentation.time_threshold_ms must not be negative, got %g", cfg.Segmentation.TimeThresholdMS)
	case cfg.Smoothing.MovingAverageWindow < 1:
		return errors.Errorf("smoothing.moving_average_window must be at least 1, got %d", cfg.Smoothing.MovingAverageWindow)
	case cfg.Smoothing.BSplineMinSamples < strokeplay.DefaultBSplineMinSamples:
		return errors.Errorf("smoothing.bspline_min_samples must be at least %d, got %d",
			strokeplay.DefaultBSplineMinSamples, cfg.Smoothing.BSplineMinSamples)
	case !(cfg.Playback.StrokeDurationMS > 0):
		return errors.Errorf("playback.stroke_duration_ms must be positive, got %g", cfg.Playback.StrokeDurationMS)
	case !(cfg.Playback.FrameIntervalMS > 0):
		return errors.Errorf("playback.frame_interval_ms must be positive, got %g", cfg.Playback.FrameIntervalMS)
	case !(cfg.Playback.MeasureAccuracy > 0):
		return errors.Errorf("playback.measure_accuracy must be positive, got %g", cfg.Playback.MeasureAccuracy)
	}
	if err := cfg.MotionProfile("").Validate(); err != nil {
		return errors.Wrap(err, "profile")
	}
	return nil
}

// MotionProfile returns the configured profile with the given ID.
func (cfg *Config) MotionProfile(id string) strokeplay.MotionProfile {
	return strokeplay.MotionProfile{
		ID:           id,
		EaseInRatio:  cfg.Profile.EaseInRatio,
		EaseOutRatio: cfg.Profile.EaseOutRatio,
		EaseIn:       cfg.Profile.EaseIn,
		EaseOut:      cfg.Profile.EaseOut,
	}
}

func (cfg *Config) SessionOptions() strokeplay.SessionOptions {
	return strokeplay.SessionOptions{
		Threshold: cfg.Segmentation.TimeThresholdMS,
		Technique: cfg.Smoothing.Technique,
		Fit: strokeplay.FitOptions{
			Window:            cfg.Smoothing.MovingAverageWindow,
			BSplineMinSamples: cfg.Smoothing.BSplineMinSamples,
		},
		Profile: cfg.MotionProfile(""),
	}
}

func (cfg *Config) StrokeDuration() time.Duration {
	return time.Duration(cfg.Playback.StrokeDurationMS * float64(time.Millisecond))
}

func (cfg *Config) Player() *playback.Player {
	return &playback.Player{
		StrokeDuration: cfg.StrokeDuration(),
		FrameInterval:  time.Duration(cfg.Playback.FrameIntervalMS * float64(time.Millisecond)),
	}
}

func (cfg *Config) Measurer() strokeplay.Measurer {
	return measure.Measurer(cfg.Playback.MeasureAccuracy)
}
