package persist

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/roach88/usertable/internal/record"
)

// createTestSQLite opens a fresh database in a temp dir.
func createTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func sampleUsers() []record.Record {
	return []record.Record{
		{ID: "u-1", Name: "Ali Reza", Age: 30, Email: "ali@x.com"},
		{ID: "u-2", Name: "Sara", Age: 25, Email: "sara@x.com"},
		{ID: "u-3", Name: "Émile", Age: 41, Email: "emile@x.com"},
	}
}
