package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/pkg/errors"
	flag "github.com/ogier/pflag"

	"honnef.co/go/strokeplay"
)

// editor holds the state of an interactive profile editing session.
type editor struct {
	session  *strokeplay.Session
	selected int
}

func newEditor(s *strokeplay.Session) *editor {
	return &editor{session: s}
}

func (e *editor) prompt() string {
	if e.session.Len() == 0 {
		return "strokeplay> "
	}
	return fmt.Sprintf("strokeplay[%d/%d]> ", e.selected+1, e.session.Len())
}

func (e *editor) listStrokes(w io.Writer) {
	if e.session.Len() == 0 {
		fmt.Fprintln(w, "no strokes")
		return
	}
	pauses := e.session.Pauses()
	for i, st := range e.session.Strokes() {
		mark := " "
		if i == e.selected {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %d: %d samples, %gms", mark, i+1, len(st), st.Duration())
		if i < len(pauses) {
			fmt.Fprintf(w, ", then %gms pause", pauses[i])
		}
		fmt.Fprintln(w)
	}
}

// selectStroke selects a stroke by its 1-based number.
func (e *editor) selectStroke(arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return errors.Errorf("invalid stroke number %q", arg)
	}
	if n < 1 || n > e.session.Len() {
		return errors.Errorf("no stroke %d, have %d", n, e.session.Len())
	}
	e.selected = n - 1
	return nil
}

func (e *editor) update(fn func(p *strokeplay.MotionProfile) error) error {
	if e.session.Len() == 0 {
		return errors.New("no strokes")
	}
	var ferr error
	err := e.session.UpdateProfile(e.selected, func(p *strokeplay.MotionProfile) {
		ferr = fn(p)
	})
	if ferr != nil {
		return ferr
	}
	return err
}

// setRatio sets the ease-in or ease-out ratio of the selected stroke. Values
// are clamped to [0, 1]; if both ratios would sum to more than 1, the other
// one shrinks.
func (e *editor) setRatio(phase, value string) error {
	r, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return errors.Errorf("invalid ratio %q", value)
	}
	return e.update(func(p *strokeplay.MotionProfile) error {
		switch phase {
		case "in":
			p.SetEaseInRatio(r)
		case "out":
			p.SetEaseOutRatio(r)
		default:
			return errors.Errorf("unknown phase %q, want in or out", phase)
		}
		return nil
	})
}

func choices(phase string) ([]strokeplay.Easing, error) {
	switch phase {
	case "in":
		return strokeplay.EaseInChoices(), nil
	case "out":
		return strokeplay.EaseOutChoices(), nil
	default:
		return nil, errors.Errorf("unknown phase %q, want in or out", phase)
	}
}

func choiceNames(phase string) []string {
	cs, _ := choices(phase)
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.String()
	}
	return names
}

// setEasing sets the easing function of a phase of the selected stroke. Only
// the functions offered for that phase are accepted.
func (e *editor) setEasing(phase, name string) error {
	cs, err := choices(phase)
	if err != nil {
		return err
	}
	fn, err := strokeplay.ParseEasing(name)
	if err != nil {
		return err
	}
	ok := false
	for _, c := range cs {
		ok = ok || c == fn
	}
	if !ok {
		return errors.Errorf("%s can't be used for ease-%s, choose one of %s",
			fn, phase, strings.Join(choiceNames(phase), ", "))
	}
	return e.update(func(p *strokeplay.MotionProfile) error {
		if phase == "in" {
			p.EaseIn = fn
		} else {
			p.EaseOut = fn
		}
		return nil
	})
}

func (e *editor) setTechnique(name string) error {
	t, err := strokeplay.ParseTechnique(name)
	if err != nil {
		return err
	}
	e.session.SetTechnique(t)
	return nil
}

func (e *editor) show(w io.Writer) error {
	p, ok := e.session.Profile(e.selected)
	if !ok {
		return errors.New("no strokes")
	}
	fmt.Fprintf(w, "stroke %d (%s), technique %s\n", e.selected+1, p.ID, e.session.Technique())
	fmt.Fprintf(w, "  ease in:  %4.0f%% %s\n", p.EaseInRatio*100, p.EaseIn)
	fmt.Fprintf(w, "  linear:   %4.0f%%\n", p.LinearRatio()*100)
	fmt.Fprintf(w, "  ease out: %4.0f%% %s\n", p.EaseOutRatio*100, p.EaseOut)
	fmt.Fprintf(w, "  path:     %s\n", e.session.Paths()[e.selected].SVG(svgOpts))
	return nil
}

func (e *editor) writeSVG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	sc := scene{paths: e.session.Paths(), graphs: e.session.Profiles()}
	if err := writeScene(f, sc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (e *editor) clear() {
	e.session.Clear()
	e.selected = 0
}

func (e *editor) commands() []*ishell.Cmd {
	phases := func([]string) []string { return []string{"in", "out"} }
	return []*ishell.Cmd{
		{
			Name: "strokes",
			Help: "list strokes",
			Func: func(c *ishell.Context) {
				var sb strings.Builder
				e.listStrokes(&sb)
				c.Print(sb.String())
			},
		},
		{
			Name: "select",
			Help: "select a stroke, usage: select <n>",
			Func: func(c *ishell.Context) {
				if len(c.Args) != 1 {
					c.Err(errors.New("missing stroke number"))
					return
				}
				if err := e.selectStroke(c.Args[0]); err != nil {
					c.Err(err)
					return
				}
				c.SetPrompt(e.prompt())
			},
		},
		{
			Name:      "ratio",
			Help:      "set a phase ratio of the selected stroke, usage: ratio <in|out> <0..1>",
			Completer: phases,
			Func: func(c *ishell.Context) {
				if len(c.Args) != 2 {
					c.Err(errors.New("usage: ratio <in|out> <0..1>"))
					return
				}
				if err := e.setRatio(c.Args[0], c.Args[1]); err != nil {
					c.Err(err)
				}
			},
		},
		{
			Name: "fn",
			Help: "set a phase's easing function, usage: fn <in|out> <name>",
			Completer: func(args []string) []string {
				if len(args) == 0 {
					return []string{"in", "out"}
				}
				return choiceNames(args[0])
			},
			Func: func(c *ishell.Context) {
				if len(c.Args) != 2 {
					c.Err(errors.New("usage: fn <in|out> <name>"))
					return
				}
				if err := e.setEasing(c.Args[0], c.Args[1]); err != nil {
					c.Err(err)
				}
			},
		},
		{
			Name: "technique",
			Help: "change the smoothing technique, usage: technique <" + strings.ReplaceAll(techniqueList(), ", ", "|") + ">",
			Completer: func([]string) []string {
				return strings.Split(techniqueList(), ", ")
			},
			Func: func(c *ishell.Context) {
				if len(c.Args) != 1 {
					c.Println(e.session.Technique())
					return
				}
				if err := e.setTechnique(c.Args[0]); err != nil {
					c.Err(err)
				}
			},
		},
		{
			Name: "show",
			Help: "show the profile of the selected stroke",
			Func: func(c *ishell.Context) {
				var sb strings.Builder
				if err := e.show(&sb); err != nil {
					c.Err(err)
					return
				}
				c.Print(sb.String())
			},
		},
		{
			Name: "svg",
			Help: "write strokes and easing graphs, usage: svg <file>",
			Func: func(c *ishell.Context) {
				if len(c.Args) != 1 {
					c.Err(errors.New("missing output file"))
					return
				}
				if err := e.writeSVG(c.Args[0]); err != nil {
					c.Err(err)
				}
			},
		},
		{
			Name: "clear",
			Help: "discard all strokes",
			Func: func(c *ishell.Context) {
				e.clear()
				c.SetPrompt(e.prompt())
			},
		},
	}
}

func shellMain(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("shell", flag.ContinueOnError)
	var cf commonFlags
	cf.register(fs, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, s, err := cf.session()
	if err != nil {
		return err
	}

	e := newEditor(s)
	sh := ishell.New()
	sh.SetPrompt(e.prompt())
	for _, cmd := range e.commands() {
		sh.AddCmd(cmd)
	}
	sh.Printf("%d strokes loaded, type help for commands\n", s.Len())
	sh.Run()
	return nil
}
