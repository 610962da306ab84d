// Package log provides the leveled loggers used throughout strokeplay.
//
// All loggers write nowhere until [InitLog] is called, so that importing the
// library never produces output on its own.
package log

import (
	"io"
	"log"
	"os"
)

var (
	Trace   = log.New(io.Discard, "TRACE: ", log.Ldate|log.Ltime|log.Lshortfile)
	Info    = log.New(io.Discard, "INFO: ", log.Ldate|log.Ltime)
	Warning = log.New(io.Discard, "WARNING: ", log.Ldate|log.Ltime)
	Error   = log.New(io.Discard, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// InitLog enables logging. Info goes to stdout, warnings and errors to
// stderr. Trace output is only enabled if STROKEPLAY_TRACE is set to 1.
func InitLog() {
	InitLogTo(os.Stdout, os.Stderr, os.Getenv("STROKEPLAY_TRACE") == "1")
}

// InitLogTo is like [InitLog] but writes to the given writers.
func InitLogTo(out, errOut io.Writer, trace bool) {
	traceOut := io.Discard
	if trace {
		traceOut = out
	}
	Trace.SetOutput(traceOut)
	Info.SetOutput(out)
	Warning.SetOutput(errOut)
	Error.SetOutput(errOut)
}
