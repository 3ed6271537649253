package runlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesRunFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	run, err := Open(dir)
	require.NoError(t, err)
	defer run.Close()

	assert.NotEmpty(t, run.ID())
	assert.Equal(t, filepath.Join(dir, "run-"+run.ID()+".jsonl"), run.Path())
	_, err = os.Stat(run.Path())
	assert.NoError(t, err)
}

func TestEachRunGetsItsOwnFile(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir)
	require.NoError(t, err)
	defer first.Close()
	second, err := Open(dir)
	require.NoError(t, err)
	defer second.Close()

	assert.NotEqual(t, first.ID(), second.ID())
	assert.NotEqual(t, first.Path(), second.Path())
}

func TestLoggerWritesJSONLines(t *testing.T) {
	run, err := Open(t.TempDir())
	require.NoError(t, err)

	log := run.Logger(nil)
	log.Info("fetch complete", "entity", "invoices", "count", 250)
	log.Warn("retrying page request", "attempt", 1)
	require.NoError(t, run.Close())

	f, err := os.Open(run.Path())
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		lines = append(lines, rec)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, lines, 2)

	assert.Equal(t, "fetch complete", lines[0]["msg"])
	assert.Equal(t, "invoices", lines[0]["entity"])
	assert.Equal(t, run.ID(), lines[0]["run_id"], "every record carries the run id")
	assert.Equal(t, run.ID(), lines[1]["run_id"])
}

func TestLoggerMirrorsToBaseHandler(t *testing.T) {
	run, err := Open(t.TempDir())
	require.NoError(t, err)
	defer run.Close()

	var console bytes.Buffer
	log := run.Logger(slog.NewTextHandler(&console, nil))
	log.Info("statement built", "statement", "profit_loss")

	assert.Contains(t, console.String(), "statement built")
	assert.Contains(t, console.String(), "run_id="+run.ID())

	data, err := os.ReadFile(run.Path())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "statement built"), "the file receives the record too")
}

func TestLoggerDebugGoesToFileOnly(t *testing.T) {
	run, err := Open(t.TempDir())
	require.NoError(t, err)
	defer run.Close()

	var console bytes.Buffer
	base := slog.NewTextHandler(&console, &slog.HandlerOptions{Level: slog.LevelInfo})
	log := run.Logger(base)
	log.Debug("ledger request", "url", "https://example.test/query")

	assert.Empty(t, console.String())

	data, err := os.ReadFile(run.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "ledger request", "the run file keeps debug records")
}
