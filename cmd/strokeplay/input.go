package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	flag "github.com/ogier/pflag"
	"gopkg.in/yaml.v3"

	"honnef.co/go/strokeplay"
	"honnef.co/go/strokeplay/config"
	"honnef.co/go/strokeplay/internal/log"
)

// readSamples reads a YAML or JSON list of {x, y, t} samples.
func readSamples(path string) ([]strokeplay.Sample, error) {
	if path == "" {
		return nil, errors.New("missing input file (-i)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading samples")
	}
	samples, err := parseSamples(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	log.Trace.Printf("read %d samples from %s", len(samples), path)
	return samples, nil
}

func parseSamples(data []byte) ([]strokeplay.Sample, error) {
	var samples []strokeplay.Sample
	if err := yaml.Unmarshal(data, &samples); err != nil {
		return nil, err
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].T < samples[i-1].T {
			return nil, errors.Errorf("sample %d goes back in time (%g < %g)", i, samples[i].T, samples[i-1].T)
		}
	}
	return samples, nil
}

// commonFlags are shared by all subcommands.
type commonFlags struct {
	configPath string
	input      string
	technique  string
}

func (cf *commonFlags) register(fs *flag.FlagSet, withInput bool) {
	fs.StringVarP(&cf.configPath, "config", "c", "", "YAML configuration file")
	fs.StringVarP(&cf.technique, "technique", "t", "", "smoothing technique ("+techniqueList()+")")
	if withInput {
		fs.StringVarP(&cf.input, "input", "i", "", "point file to read")
	}
}

// config loads the configuration and applies flag overrides.
func (cf *commonFlags) config() (*config.Config, error) {
	cfg := config.Default()
	if cf.configPath != "" {
		var err error
		cfg, err = config.Load(cf.configPath)
		if err != nil {
			return nil, err
		}
	}
	if cf.technique != "" {
		t, err := strokeplay.ParseTechnique(cf.technique)
		if err != nil {
			return nil, err
		}
		cfg.Smoothing.Technique = t
	}
	return cfg, nil
}

// session loads configuration and input and processes the samples.
func (cf *commonFlags) session() (*config.Config, *strokeplay.Session, error) {
	cfg, err := cf.config()
	if err != nil {
		return nil, nil, err
	}
	samples, err := readSamples(cf.input)
	if err != nil {
		return nil, nil, err
	}
	s := strokeplay.NewSession(cfg.SessionOptions())
	s.Process(samples)
	return cfg, s, nil
}

func techniqueList() string {
	names := make([]string, len(strokeplay.Techniques))
	for i, t := range strokeplay.Techniques {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
