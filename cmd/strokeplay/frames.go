package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pkg/errors"
	flag "github.com/ogier/pflag"
	"golang.org/x/sync/errgroup"

	"honnef.co/go/strokeplay"
	"honnef.co/go/strokeplay/internal/log"
	"honnef.co/go/strokeplay/playback"
)

func framesMain(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("frames", flag.ContinueOnError)
	var cf commonFlags
	cf.register(fs, true)
	output := fs.StringP("output", "o", "", "directory to write frames to")
	fps := fs.Float64("fps", 30, "frames per second")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		return errors.New("missing output directory (-o)")
	}
	step, err := frameStep(*fps)
	if err != nil {
		return err
	}

	cfg, s, err := cf.session()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*output, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	prog := playback.FromSession(s, cfg.Measurer())
	n, err := renderFrames(ctx, prog, s.Paths(), cfg.StrokeDuration(), step, *output)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %d frames to %s\n", n, *output)
	return nil
}

// frameStep returns the time between two frames at the given frame rate.
func frameStep(fps float64) (time.Duration, error) {
	if !(fps > 0) {
		return 0, errors.Errorf("invalid frame rate %g", fps)
	}
	step := time.Duration(float64(time.Second) / fps)
	if step <= 0 {
		return 0, errors.Errorf("frame rate %g exceeds one frame per nanosecond", fps)
	}
	return step, nil
}

// frameTimes returns the replay time of every frame, step apart. The last
// frame always shows the end of the replay.
func frameTimes(total, step time.Duration) []time.Duration {
	n := int(math.Ceil(float64(total) / float64(step)))
	times := make([]time.Duration, 0, n+1)
	for i := range n {
		times = append(times, time.Duration(i)*step)
	}
	return append(times, total)
}

// renderFrames writes one SVG per frame into dir, rendering them
// concurrently. It returns the number of frames written.
func renderFrames(
	ctx context.Context,
	prog playback.Program,
	paths []strokeplay.BezPath,
	strokeDuration time.Duration,
	step time.Duration,
	dir string,
) (int, error) {
	if prog.Len() == 0 {
		return 0, nil
	}
	sched := prog.Schedule(strokeDuration)
	total := time.Duration(sched.Total() * float64(time.Millisecond))
	times := frameTimes(total, step)
	log.Trace.Printf("rendering %d frames for %s of replay", len(times), total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, at := range times {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, ok := prog.At(at, strokeDuration)
			if !ok {
				// Rounding at the very end of the replay.
				f = prog.Frame(prog.Len()-1, 1)
			}
			sc := scene{
				// Only the strokes drawn so far are visible.
				paths:  paths[:f.Stroke+1],
				cursor: &f.Pos,
			}
			var buf bytes.Buffer
			if err := writeScene(&buf, sc); err != nil {
				return err
			}
			name := filepath.Join(dir, fmt.Sprintf("frame%05d.svg", i))
			return errors.Wrapf(os.WriteFile(name, buf.Bytes(), 0o644), "writing frame %d", i)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(times), nil
}
