// Package cli implements the stemloop command-line interface.
//
// Commands cover the whole pipeline: parsing a dot-bracket structure into a
// motif tree, computing a layout, rendering it, browsing it interactively,
// and serving the same pipeline over HTTP. The CLI is built using cobra and
// logs through charmbracelet/log.
//
// # Commands
//
//   - parse: Print the motif tree of a structure
//   - layout: Write the drawing document (JSON or YAML)
//   - render: Generate SVG, PNG, PDF, DOT, JSON or YAML output
//   - visualize: Render a previously written drawing document
//   - browse: Explore the motif tree in a terminal UI
//   - serve: Run the HTTP API
//   - cache: Manage the layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// turns on pipeline and cache tracing. The logger travels through
// context.Context so helpers can log without extra parameters.
package cli

import (
	"context"
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

// done logs msg along with the elapsed time, e.g. "Laid out 76 nt (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// debugHooks traces pipeline stages and cache traffic at debug level.
type debugHooks struct{ logger *log.Logger }

func (h debugHooks) OnParseStart(_ context.Context, name string, length int) {
	h.logger.Debug("parse start", "name", name, "length", length)
}

func (h debugHooks) OnParseComplete(_ context.Context, name string, nodes int, d time.Duration, err error) {
	h.logger.Debug("parse done", "name", name, "nodes", nodes, "duration", d, "err", err)
}

func (h debugHooks) OnLayoutStart(_ context.Context, name string, nodes int) {
	h.logger.Debug("layout start", "name", name, "nodes", nodes)
}

func (h debugHooks) OnLayoutComplete(_ context.Context, name string, warnings int, d time.Duration, err error) {
	h.logger.Debug("layout done", "name", name, "warnings", warnings, "duration", d, "err", err)
}

func (h debugHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h debugHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "duration", d, "err", err)
}

func (h debugHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h debugHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h debugHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
