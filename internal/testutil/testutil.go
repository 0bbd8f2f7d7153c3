// Package testutil provides shared test helpers for setting up journals.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/dagaz/internal/journal"
)

// TestJournal creates a temporary dailies directory with a Journal over it.
func TestJournal(t *testing.T, exts ...string) *journal.Journal {
	t.Helper()
	if len(exts) == 0 {
		exts = []string{"org"}
	}
	j, err := journal.Open(t.TempDir(), exts)
	if err != nil {
		t.Fatal(err)
	}
	return j
}

// WriteNote creates a daily note file named date+"."+ext seeded with the
// canonical title line and returns its path.
func WriteNote(t *testing.T, j *journal.Journal, date, ext string) string {
	t.Helper()
	p := filepath.Join(j.Root(), date+"."+ext)
	if err := os.WriteFile(p, []byte("#+title: "+date+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}
