// Command strokeplay smooths recorded pointer strokes and replays them with
// adjustable motion profiles.
//
// Usage:
//
//	strokeplay svg -i points.yaml [-o out.svg] [-t technique] [--graph]
//	strokeplay frames -i points.yaml -o dir [--fps=n]
//	strokeplay shell -i points.yaml
//	strokeplay play [-t technique]
//
// All subcommands accept -c to load a YAML configuration file. Point files are
// YAML or JSON lists of {x, y, t} samples, t in milliseconds.
//
// Short options take their value as the next argument. Long options need an
// equals sign: --technique=bSpline, not --technique bSpline.
package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/ogier/pflag"

	"honnef.co/go/strokeplay/internal/log"
)

type command struct {
	name  string
	usage string
	run   func(args []string, stdout io.Writer) error
}

var commands = []command{
	{"svg", "write fitted strokes as an SVG document", svgMain},
	{"frames", "render the replay as a sequence of SVG frames", framesMain},
	{"shell", "edit motion profiles interactively", shellMain},
	{"play", "draw and replay strokes in the terminal", playMain},
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: strokeplay <command> [options]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(w, "\nRun 'strokeplay <command> --help' for the options of a command.\n")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	log.InitLog()

	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	for _, c := range commands {
		if c.name != args[0] {
			continue
		}
		if err := c.run(args[1:], stdout); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			fmt.Fprintf(stderr, "strokeplay %s: %v\n", c.name, err)
			return 1
		}
		return 0
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(stdout)
		return 0
	}
	fmt.Fprintf(stderr, "strokeplay: unknown command %q\n\n", args[0])
	usage(stderr)
	return 2
}
