// Package journal enumerates the daily-note files under a single directory.
//
// The note set is a read-mostly view: every query rescans the directory so
// results are always fresh. Nothing is cached across calls and no lock guards
// against concurrent external writers.
package journal

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/starford/dagaz/internal/dateid"
)

// titleScanLimit bounds how many leading lines are inspected for a title.
const titleScanLimit = 10

// Note is one daily-note file on disk.
type Note struct {
	Path string // absolute path
	ID   dateid.Identity
}

// Journal is rooted at the resolved dailies directory.
type Journal struct {
	root string
	exts []string // without leading dot; first entry is the primary extension
}

// Resolve expands "~" and returns the absolute dailies directory path.
// It does not require the directory to exist.
func Resolve(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("journal: expand %s: %w", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("journal: resolve %s: %w", path, err)
	}
	return abs, nil
}

// Open resolves path and returns a Journal over it. The directory must exist;
// a missing or unreadable directory is reported here, at first use.
func Open(path string, exts []string) (*Journal, error) {
	abs, err := Resolve(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("journal: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("journal: root is not a directory: %s", abs)
	}
	if len(exts) == 0 {
		return nil, fmt.Errorf("journal: no file extensions configured")
	}
	norm := make([]string, len(exts))
	for i, e := range exts {
		norm[i] = strings.TrimPrefix(e, ".")
	}
	return &Journal{root: abs, exts: norm}, nil
}

// Root returns the absolute dailies directory.
func (j *Journal) Root() string { return j.root }

// PrimaryExt returns the extension used when creating new notes.
func (j *Journal) PrimaryExt() string { return j.exts[0] }

// PathFor returns the canonical path a newly created note for id would get.
func (j *Journal) PathFor(id dateid.Identity) string {
	return id.Path(j.root, j.exts[0])
}

// Recognized reports whether basename looks like a note file worth
// considering at all: configured extension, not hidden, not an editor
// backup ("name~"), autosave ("#name#"), or lock (".#name") artifact.
func (j *Journal) Recognized(basename string) bool {
	if strings.HasPrefix(basename, ".") || strings.HasPrefix(basename, "#") ||
		strings.HasSuffix(basename, "~") {
		return false
	}
	ext := strings.TrimPrefix(filepath.Ext(basename), ".")
	for _, e := range j.exts {
		if ext == e {
			return true
		}
	}
	return false
}

// ListFiles walks the journal recursively and returns the absolute paths of
// all recognized note files, before any date parsing. The calendar bridge
// consumes this superset; List applies the strict date filter on top.
func (j *Journal) ListFiles() ([]string, error) {
	var out []string
	err := filepath.WalkDir(j.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			// Descend into hidden directories is pointless; skip them.
			if d.Name() != filepath.Base(j.root) && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !j.Recognized(d.Name()) {
			return nil
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("journal: list: %w", err)
	}
	return out, nil
}

// List returns every genuinely date-named note, sorted ascending by date.
// Files whose basename does not strictly parse as YYYY-MM-DD are skipped
// silently: a dailies directory may hold other artifacts, and navigation
// only operates over real dailies. Rescans the directory on every call.
func (j *Journal) List() ([]Note, error) {
	paths, err := j.ListFiles()
	if err != nil {
		return nil, err
	}
	notes := make([]Note, 0, len(paths))
	for _, p := range paths {
		id, err := dateid.Parse(stem(p))
		if err != nil {
			continue
		}
		notes = append(notes, Note{Path: p, ID: id})
	}
	sort.Slice(notes, func(a, b int) bool {
		return notes[a].ID.Before(notes[b].ID)
	})
	return notes, nil
}

// Find looks for an existing note for id under ANY configured extension.
// A note found with a non-primary extension still counts as existing, so
// capture never creates a duplicate under a different extension.
func (j *Journal) Find(id dateid.Identity) (Note, bool, error) {
	notes, err := j.List()
	if err != nil {
		return Note{}, false, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, true, nil
		}
	}
	return Note{}, false, nil
}

// Position returns the index of path within notes by path equality.
// The index is transient: it is only meaningful against the exact slice it
// was computed from.
func Position(notes []Note, path string) (int, bool) {
	clean := filepath.Clean(path)
	for i, n := range notes {
		if filepath.Clean(n.Path) == clean {
			return i, true
		}
	}
	return 0, false
}

// ReadTitle scans the first few lines of the file for a "#+title:" line and
// returns its value. ok is false when the file has no title line.
func ReadTitle(path string) (title string, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for i := 0; i < titleScanLimit && sc.Scan(); i++ {
		line := sc.Text()
		rest, found := cutTitlePrefix(line)
		if found {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// TitleLine returns the seed content stamped into a freshly created note.
func TitleLine(id dateid.Identity) []byte {
	return []byte("#+title: " + id.String() + "\n")
}

func cutTitlePrefix(line string) (string, bool) {
	const prefix = "#+title:"
	if len(line) < len(prefix) || !strings.EqualFold(line[:len(prefix)], prefix) {
		return "", false
	}
	return line[len(prefix):], true
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
