// Package runlog writes one JSON-lines log file per report run so every
// retry, statement outcome, and export path is auditable after the fact.
package runlog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Run is an open per-run log file.
type Run struct {
	id   string
	path string
	file *os.File
}

// Open creates <dir>/run-<id>.jsonl with a fresh run id, creating the
// directory when needed.
func Open(dir string) (*Run, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	id := uuid.NewString()
	path := filepath.Join(dir, "run-"+id+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating run log: %w", err)
	}
	return &Run{id: id, path: path, file: f}, nil
}

// ID returns the run identifier.
func (r *Run) ID() string { return r.id }

// Path returns the log file location.
func (r *Run) Path() string { return r.path }

// Close closes the log file.
func (r *Run) Close() error { return r.file.Close() }

// Logger returns a logger that writes JSON records to the run file and
// mirrors them to base, with the run id attached to every record. A nil
// base logs to the file only.
func (r *Run) Logger(base slog.Handler) *slog.Logger {
	handlers := []slog.Handler{slog.NewJSONHandler(r.file, &slog.HandlerOptions{Level: slog.LevelDebug})}
	if base != nil {
		handlers = append(handlers, base)
	}
	return slog.New(fanout(handlers)).With("run_id", r.id)
}

// fanoutHandler forwards records to every wrapped handler.
type fanoutHandler []slog.Handler

func fanout(handlers []slog.Handler) slog.Handler {
	if len(handlers) == 1 {
		return handlers[0]
	}
	return fanoutHandler(handlers)
}

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, rec slog.Record) error {
	var firstErr error
	for _, hh := range h {
		if !hh.Enabled(ctx, rec.Level) {
			continue
		}
		if err := hh.Handle(ctx, rec.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, hh := range h {
		out[i] = hh.WithAttrs(attrs)
	}
	return out
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, hh := range h {
		out[i] = hh.WithGroup(name)
	}
	return out
}
