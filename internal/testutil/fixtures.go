package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/usertable/internal/record"
)

// Users builds n records with IDs "fx-01".., names "User 01".. and ages
// starting at 20.
func Users(n int) []record.Record {
	out := make([]record.Record, n)
	for i := range out {
		out[i] = record.Record{
			ID:    fmt.Sprintf("fx-%02d", i+1),
			Name:  fmt.Sprintf("User %02d", i+1),
			Age:   20 + i,
			Email: fmt.Sprintf("user%02d@example.com", i+1),
		}
	}
	return out
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
