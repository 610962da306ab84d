package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	flag "github.com/ogier/pflag"
)

func svgMain(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("svg", flag.ContinueOnError)
	var cf commonFlags
	cf.register(fs, true)
	output := fs.StringP("output", "o", "", "file to write, default stdout")
	graph := fs.Bool("graph", false, "also draw the easing graph of every stroke")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, s, err := cf.session()
	if err != nil {
		return err
	}
	sc := scene{paths: s.Paths()}
	if *graph {
		sc.graphs = s.Profiles()
	}

	if *output == "" {
		return writeScene(stdout, sc)
	}
	f, err := os.Create(*output)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	if err := writeScene(f, sc); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", *output)
	}
	return f.Close()
}
