// Package cli implements the asciigraph command-line interface.
//
// # Commands
//
//   - render: draw a dataset file (or stdin) as a text chart
//   - describe: show the points and the computed scale and pages
//   - serve: run the HTTP rendering API
//   - cache: inspect or clear the chart cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs pipeline and cache events. The logger travels in the command context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level, with timestamps formatted
// as "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered 12 points (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger in ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
