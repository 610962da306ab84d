package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	flag "github.com/ogier/pflag"

	"honnef.co/go/strokeplay"
	"honnef.co/go/strokeplay/config"
	"honnef.co/go/strokeplay/internal/log"
	"honnef.co/go/strokeplay/playback"
)

// frameEvent delivers a playback frame to the event loop. Events of a replay
// other than the current one are ignored.
type frameEvent struct {
	tcell.EventTime
	replay int
	frame  playback.Frame
}

// playDoneEvent is posted when a replay ends, for whatever reason.
type playDoneEvent struct {
	tcell.EventTime
	replay int
	err    error
}

type terminalHost struct {
	screen  tcell.Screen
	cfg     *config.Config
	session *strokeplay.Session
	rec     recorder
	cells   []cell

	// replay numbers replays; cancel is non-nil while the current one runs.
	replay int
	cancel context.CancelFunc
	cursor *cell
	status string
}

func playMain(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	var cf commonFlags
	cf.register(fs, false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := cf.config()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "creating terminal screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "initializing terminal")
	}
	defer screen.Fini()
	screen.EnableMouse()
	// The screen owns the terminal now.
	log.InitLogTo(io.Discard, io.Discard, false)

	h := &terminalHost{
		screen:  screen,
		cfg:     cfg,
		session: strokeplay.NewSession(cfg.SessionOptions()),
		status:  "draw with the mouse; p play, s stop, t technique, c clear, q quit",
	}
	return h.run()
}

func (h *terminalHost) run() error {
	h.draw()
	for {
		switch ev := h.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			h.screen.Sync()
		case *tcell.EventMouse:
			x, y := ev.Position()
			pressed := ev.Buttons()&tcell.Button1 != 0
			if h.cancel == nil && h.rec.mouse(cell{x, y}, pressed, ev.When()) {
				h.session.Process(h.rec.samples)
				h.refit()
				h.status = fmt.Sprintf("%d strokes", h.session.Len())
			}
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				h.stop()
				return nil
			}
			if ev.Key() != tcell.KeyRune {
				break
			}
			switch ev.Rune() {
			case 'q':
				h.stop()
				return nil
			case 'p':
				h.play()
			case 's':
				h.stop()
			case 't':
				h.cycleTechnique()
			case 'c':
				h.stop()
				h.rec.reset()
				h.session.Clear()
				h.refit()
				h.status = "cleared"
			}
		case *frameEvent:
			h.showFrame(ev)
		case *playDoneEvent:
			h.finish(ev)
		}
		h.draw()
	}
}

func (h *terminalHost) showFrame(ev *frameEvent) {
	if ev.replay != h.replay || h.cancel == nil {
		return
	}
	c := pointToCell(ev.frame.Pos)
	h.cursor = &c
	h.status = fmt.Sprintf("stroke %d/%d  %3.0f%%", ev.frame.Stroke+1, h.session.Len(), ev.frame.Progress*100)
}

func (h *terminalHost) finish(ev *playDoneEvent) {
	if ev.replay != h.replay || h.cancel == nil {
		return
	}
	h.cancel = nil
	h.cursor = nil
	if ev.err != nil {
		h.status = ev.err.Error()
	} else {
		h.status = "done"
	}
}

func (h *terminalHost) refit() {
	h.cells = rasterize(h.session.Paths(), h.cfg.Measurer())
}

func (h *terminalHost) cycleTechnique() {
	t := h.session.Technique()
	next := strokeplay.Techniques[(int(t)+1)%len(strokeplay.Techniques)]
	h.session.SetTechnique(next)
	h.refit()
	h.status = "technique " + next.String()
}

func (h *terminalHost) play() {
	if h.cancel != nil || h.session.Len() == 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.replay++
	h.cancel = cancel
	replay := h.replay
	prog := playback.FromSession(h.session, h.cfg.Measurer())
	player := h.cfg.Player()
	go func() {
		err := player.Play(ctx, prog, func(f playback.Frame) {
			ev := &frameEvent{replay: replay, frame: f}
			ev.SetEventNow()
			// A full queue drops the frame; the next one catches up.
			_ = h.screen.PostEvent(ev)
		})
		done := &playDoneEvent{replay: replay, err: err}
		done.SetEventNow()
		for range 100 {
			if h.screen.PostEvent(done) == nil {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()
}

// stop cancels the running replay. Frames it still has in flight are
// dropped.
func (h *terminalHost) stop() {
	if h.cancel == nil {
		return
	}
	h.cancel()
	h.cancel = nil
	h.cursor = nil
	h.status = "stopped"
}

func (h *terminalHost) draw() {
	s := h.screen
	s.Clear()
	ink := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for _, c := range h.cells {
		s.SetContent(c.col, c.row, '•', nil, ink)
	}
	raw := tcell.StyleDefault.Foreground(tcell.ColorGray)
	if h.cursor == nil {
		for _, smp := range h.rec.samples {
			c := pointToCell(smp.Pt())
			if r, _, _, _ := s.GetContent(c.col, c.row); r == ' ' {
				s.SetContent(c.col, c.row, '·', nil, raw)
			}
		}
	}
	if h.cursor != nil {
		s.SetContent(h.cursor.col, h.cursor.row, '●', nil, tcell.StyleDefault.Foreground(tcell.ColorRed))
	}
	_, height := s.Size()
	status := fmt.Sprintf("[%s] %s", h.session.Technique(), h.status)
	for i, r := range []rune(status) {
		s.SetContent(i, height-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	s.Show()
}
