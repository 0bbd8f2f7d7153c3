package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/dagaz/internal/dateid"
)

func mustParse(t *testing.T, s string) dateid.Identity {
	t.Helper()
	id, err := dateid.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func tempJournal(t *testing.T, exts ...string) *Journal {
	t.Helper()
	if len(exts) == 0 {
		exts = []string{"org"}
	}
	dir := t.TempDir()
	j, err := Open(dir, exts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return j
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestOpen_MissingDir(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), []string{"org"})
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestOpen_NotADir(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "file.org", "")
	if _, err := Open(p, []string{"org"}); err == nil {
		t.Error("expected error when root is a file")
	}
}

func TestOpen_NoExtensions(t *testing.T) {
	if _, err := Open(t.TempDir(), nil); err == nil {
		t.Error("expected error for empty extension list")
	}
}

func TestList_SortedByDate(t *testing.T) {
	j := tempJournal(t)
	writeFile(t, j.Root(), "2024-01-03.org", "")
	writeFile(t, j.Root(), "2024-01-01.org", "")
	writeFile(t, j.Root(), "2024-01-02.org", "")

	notes, err := j.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	if len(notes) != len(want) {
		t.Fatalf("len = %d, want %d", len(notes), len(want))
	}
	for i, w := range want {
		if notes[i].ID.String() != w {
			t.Errorf("notes[%d] = %s, want %s", i, notes[i].ID, w)
		}
	}
}

func TestList_ExcludesArtifactsAndStrays(t *testing.T) {
	j := tempJournal(t)
	writeFile(t, j.Root(), "2024-01-01.org", "")
	writeFile(t, j.Root(), "stray.org", "unrelated content")
	writeFile(t, j.Root(), "notes.txt", "wrong extension")
	writeFile(t, j.Root(), ".hidden.org", "")
	writeFile(t, j.Root(), ".#2024-01-02.org", "lock file")
	writeFile(t, j.Root(), "#2024-01-02.org#", "autosave")
	writeFile(t, j.Root(), "2024-01-02.org~", "backup")
	writeFile(t, j.Root(), "2024-13-01.org", "bad month")
	writeFile(t, j.Root(), "2024-01-02 extra.org", "tolerant-only name")

	notes, err := j.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("len = %d, want 1: %v", len(notes), notes)
	}
	if notes[0].ID.String() != "2024-01-01" {
		t.Errorf("kept %s", notes[0].ID)
	}
}

func TestList_Recursive(t *testing.T) {
	j := tempJournal(t)
	writeFile(t, j.Root(), "2024-01-01.org", "")
	writeFile(t, j.Root(), "2023/2023-06-15.org", "")

	notes, err := j.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("len = %d, want 2", len(notes))
	}
	if notes[0].ID.String() != "2023-06-15" {
		t.Errorf("first = %s, want 2023-06-15", notes[0].ID)
	}
}

func TestList_DeterministicSnapshot(t *testing.T) {
	j := tempJournal(t)
	for _, n := range []string{"2024-02-01.org", "2024-01-15.org", "2024-03-09.org"} {
		writeFile(t, j.Root(), n, "")
	}
	first, err := j.List()
	if err != nil {
		t.Fatal(err)
	}
	second, err := j.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestFind_AcrossExtensions(t *testing.T) {
	j := tempJournal(t, "org", "md")
	writeFile(t, j.Root(), "2024-01-01.md", "")

	id := mustParse(t, "2024-01-01")
	note, found, err := j.Find(id)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !found {
		t.Fatal("note with secondary extension should count as existing")
	}
	if filepath.Ext(note.Path) != ".md" {
		t.Errorf("path = %s", note.Path)
	}

	_, found, err = j.Find(mustParse(t, "2024-01-02"))
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("absent note reported as existing")
	}
}

func TestPosition(t *testing.T) {
	j := tempJournal(t)
	writeFile(t, j.Root(), "2024-01-01.org", "")
	p2 := writeFile(t, j.Root(), "2024-01-02.org", "")

	notes, _ := j.List()
	i, ok := Position(notes, p2)
	if !ok || i != 1 {
		t.Errorf("Position = %d, %v; want 1, true", i, ok)
	}
	if _, ok := Position(notes, filepath.Join(j.Root(), "2024-01-09.org")); ok {
		t.Error("unexpected match for absent path")
	}
}

func TestReadTitle(t *testing.T) {
	j := tempJournal(t)
	p := writeFile(t, j.Root(), "2024-01-01.org", "#+title: 2024-01-01\n\nbody\n")
	title, ok := ReadTitle(p)
	if !ok || title != "2024-01-01" {
		t.Errorf("title = %q, %v", title, ok)
	}

	p2 := writeFile(t, j.Root(), "2024-01-02.org", "no title here\n")
	if _, ok := ReadTitle(p2); ok {
		t.Error("expected no title")
	}

	// Case-insensitive prefix, like org exporters emit.
	p3 := writeFile(t, j.Root(), "2024-01-03.org", "#+TITLE: 2024-01-03\n")
	title, ok = ReadTitle(p3)
	if !ok || title != "2024-01-03" {
		t.Errorf("upper-case title = %q, %v", title, ok)
	}
}

func TestTitleLine(t *testing.T) {
	id := mustParse(t, "2024-05-06")
	if got := string(TitleLine(id)); got != "#+title: 2024-05-06\n" {
		t.Errorf("TitleLine = %q", got)
	}
}
