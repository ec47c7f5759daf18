// Package cli implements the scenedoc command-line interface.
//
// # Commands
//
// The main commands are:
//   - export: Serialize scene descriptions into JSON, DOT or SVG files
//   - graph: Print the record graph of a scene as Graphviz DOT
//   - serve: Run the HTTP document server
//   - kinds: List the classes the dispatch table knows
//   - store: Inspect and clear the local document store
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports every serialization pass.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Exported 3 scenes (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
