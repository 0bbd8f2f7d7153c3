package navigate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/journal"
)

func setup(t *testing.T, names ...string) (*Navigator, *journal.Journal, map[string]string) {
	t.Helper()
	dir := t.TempDir()
	paths := make(map[string]string, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name+".org")
		if err := os.WriteFile(p, []byte("#+title: "+name+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths[name] = p
	}
	j, err := journal.Open(dir, []string{"org"})
	if err != nil {
		t.Fatal(err)
	}
	return New(j), j, paths
}

func TestNext_WalksForwardThenFailsAtNewest(t *testing.T) {
	nav, _, paths := setup(t, "2024-01-01", "2024-01-02", "2024-01-03")

	note, err := nav.Next(paths["2024-01-01"], 1)
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if note.ID.String() != "2024-01-02" {
		t.Errorf("first hop = %s", note.ID)
	}

	note, err = nav.Next(note.Path, 1)
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if note.ID.String() != "2024-01-03" {
		t.Errorf("second hop = %s", note.ID)
	}

	if _, err := nav.Next(note.Path, 1); !errors.Is(err, apperr.ErrAlreadyNewest) {
		t.Errorf("third Next err = %v, want ErrAlreadyNewest", err)
	}
}

func TestPrev_FailsAtOldest(t *testing.T) {
	nav, _, paths := setup(t, "2024-01-01", "2024-01-02", "2024-01-03")
	if _, err := nav.Prev(paths["2024-01-01"], 1); !errors.Is(err, apperr.ErrAlreadyOldest) {
		t.Errorf("err = %v, want ErrAlreadyOldest", err)
	}
}

func TestPrev_IsInvertedNext(t *testing.T) {
	nav, _, paths := setup(t, "2024-01-01", "2024-01-02", "2024-01-03")
	note, err := nav.Prev(paths["2024-01-03"], 1)
	if err != nil {
		t.Fatal(err)
	}
	if note.ID.String() != "2024-01-02" {
		t.Errorf("Prev = %s, want 2024-01-02", note.ID)
	}
	// Default magnitude is 1 even for steps <= 0.
	note, err = nav.Prev(paths["2024-01-03"], 0)
	if err != nil {
		t.Fatal(err)
	}
	if note.ID.String() != "2024-01-02" {
		t.Errorf("Prev with steps=0 = %s, want 2024-01-02", note.ID)
	}
}

func TestMove_OvershootClampsFromInterior(t *testing.T) {
	// From an interior position the boundary check passes; the target is
	// clamped to the nearest end instead of failing.
	nav, _, paths := setup(t, "2024-01-01", "2024-01-02", "2024-01-03")
	note, err := nav.Move(paths["2024-01-02"], 5)
	if err != nil {
		t.Fatalf("Move(+5): %v", err)
	}
	if note.ID.String() != "2024-01-03" {
		t.Errorf("clamped target = %s, want 2024-01-03", note.ID)
	}
	note, err = nav.Move(paths["2024-01-02"], -5)
	if err != nil {
		t.Fatalf("Move(-5): %v", err)
	}
	if note.ID.String() != "2024-01-01" {
		t.Errorf("clamped target = %s, want 2024-01-01", note.ID)
	}
}

func TestMove_NoFileAssociated(t *testing.T) {
	nav, _, _ := setup(t, "2024-01-01")
	if _, err := nav.Move("", 1); !errors.Is(err, apperr.ErrNoFileAssociated) {
		t.Errorf("err = %v, want ErrNoFileAssociated", err)
	}
}

func TestMove_NotADailyNote(t *testing.T) {
	nav, j, _ := setup(t, "2024-01-01")
	stray := filepath.Join(j.Root(), "stray.org")
	if err := os.WriteFile(stray, []byte("unrelated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := nav.Move(stray, 1); !errors.Is(err, apperr.ErrNotDailyNote) {
		t.Errorf("err = %v, want ErrNotDailyNote", err)
	}
}

func TestMove_TitleMismatch(t *testing.T) {
	// Date-named file whose title claims another date: renamed by hand,
	// identity derivations disagree, not a genuine daily note.
	nav, j, _ := setup(t, "2024-01-01")
	renamed := filepath.Join(j.Root(), "2024-01-05.org")
	if err := os.WriteFile(renamed, []byte("#+title: 2024-01-02\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := nav.Move(renamed, 1); !errors.Is(err, apperr.ErrNotDailyNote) {
		t.Errorf("err = %v, want ErrNotDailyNote", err)
	}
}

func TestMove_CurrentFileDeleted(t *testing.T) {
	nav, _, paths := setup(t, "2024-01-01", "2024-01-02")
	p := paths["2024-01-01"]
	if err := os.Remove(p); err != nil {
		t.Fatal(err)
	}
	if _, err := nav.Move(p, 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMove_MultiStep(t *testing.T) {
	nav, _, paths := setup(t, "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04")
	note, err := nav.Next(paths["2024-01-01"], 2)
	if err != nil {
		t.Fatal(err)
	}
	if note.ID.String() != "2024-01-03" {
		t.Errorf("Next(2) = %s, want 2024-01-03", note.ID)
	}
}

func TestMove_SkipsNonNoteNeighbors(t *testing.T) {
	nav, j, paths := setup(t, "2024-01-01", "2024-01-03")
	// Strays between the two dates must not take part in ordering.
	for _, name := range []string{"2024-01-02 draft.org", "stray.org", ".#2024-01-02.org"} {
		if err := os.WriteFile(filepath.Join(j.Root(), name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	note, err := nav.Next(paths["2024-01-01"], 1)
	if err != nil {
		t.Fatal(err)
	}
	if note.ID.String() != "2024-01-03" {
		t.Errorf("Next = %s, want 2024-01-03", note.ID)
	}
}
