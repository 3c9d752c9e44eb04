// Package cli implements the slopes command-line interface.
//
// # Commands
//
//   - generate: build a drawing and write it in one or more formats
//   - render: re-render a saved drawing.json with different sink options
//   - serve: expose the pipeline over HTTP
//   - cache: inspect or clear the local drawing cache
//
// All commands accept --verbose (-v) for debug logging. Logs go to stderr
// through charmbracelet/log; results and file paths go to stdout.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps that filters
// messages below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs an operation's completion with its elapsed time.
// Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond,
// e.g. "Generated 212 polylines (48ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
