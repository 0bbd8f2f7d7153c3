// Package navigate moves between existing daily notes in date order.
package navigate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/dateid"
	"github.com/starford/dagaz/internal/journal"
)

// Navigator computes next/previous notes relative to the one currently open.
// Every call rescans the journal; positions are transient and never cached.
type Navigator struct {
	journal *journal.Journal
}

// New creates a Navigator over j.
func New(j *journal.Journal) *Navigator {
	return &Navigator{journal: j}
}

// Move locates currentPath in the freshly scanned note set and returns the
// note offset places away.
//
// Failure modes: apperr.ErrNoFileAssociated for an empty path,
// apperr.ErrNotDailyNote when the file's name or title does not resolve to a
// date, apperr.ErrNotFound when the file is missing from the set, and
// apperr.ErrAlreadyNewest / ErrAlreadyOldest at the boundaries.
//
// The boundary check inspects the current position, not the computed target:
// moving from a boundary in the boundary's direction fails, while an offset
// that overshoots the far end from an interior position is clamped.
func (n *Navigator) Move(currentPath string, offset int) (journal.Note, error) {
	if currentPath == "" {
		return journal.Note{}, apperr.ErrNoFileAssociated
	}
	abs, err := filepath.Abs(currentPath)
	if err != nil {
		return journal.Note{}, fmt.Errorf("navigate: resolve %s: %w", currentPath, err)
	}

	id, err := verifyIdentity(abs)
	if err != nil {
		return journal.Note{}, err
	}

	notes, err := n.journal.List()
	if err != nil {
		return journal.Note{}, err
	}
	i, ok := journal.Position(notes, abs)
	if !ok {
		return journal.Note{}, fmt.Errorf("navigate: %s (%s): %w", currentPath, id, apperr.ErrNotFound)
	}

	switch {
	case offset > 0 && i == len(notes)-1:
		return journal.Note{}, apperr.ErrAlreadyNewest
	case offset < 0 && i == 0:
		return journal.Note{}, apperr.ErrAlreadyOldest
	}

	target := i + offset
	if target < 0 {
		target = 0
	}
	if target > len(notes)-1 {
		target = len(notes) - 1
	}
	return notes[target], nil
}

// Next returns the note steps existing notes after currentPath.
// steps < 1 is treated as 1.
func (n *Navigator) Next(currentPath string, steps int) (journal.Note, error) {
	if steps < 1 {
		steps = 1
	}
	return n.Move(currentPath, steps)
}

// Prev is Next with the offset sign inverted.
func (n *Navigator) Prev(currentPath string, steps int) (journal.Note, error) {
	if steps < 1 {
		steps = 1
	}
	return n.Move(currentPath, -steps)
}

// verifyIdentity re-derives the note identity from the basename and, when
// the file carries a title line, requires it to agree. Both derivations
// naming the same date is what makes a file a genuine daily note.
func verifyIdentity(path string) (dateid.Identity, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	id, err := dateid.Parse(stem)
	if err != nil {
		return dateid.Identity{}, fmt.Errorf("navigate: %s: %w", base, apperr.ErrNotDailyNote)
	}
	if title, ok := journal.ReadTitle(path); ok && title != id.String() {
		return dateid.Identity{}, fmt.Errorf("navigate: %s: title %q does not match date: %w",
			base, title, apperr.ErrNotDailyNote)
	}
	return id, nil
}
