// Package calendar exposes which dates have notes, for external calendar
// renderers to mark.
//
// The bridge parses filenames with the tolerant token grammar, a superset of
// the strict basename parser used for navigation. A file such as
// "2024-01-02 standup.org" therefore gets a calendar mark even though
// next/previous traversal skips it. Deliberate divergence, kept as designed.
package calendar

import (
	"path/filepath"
	"strings"

	"github.com/starford/dagaz/internal/dateid"
	"github.com/starford/dagaz/internal/journal"
)

// Bridge answers "does date D have a note?" over a journal.
type Bridge struct {
	journal *journal.Journal
}

// New creates a Bridge over j.
func New(j *journal.Journal) *Bridge {
	return &Bridge{journal: j}
}

// DatesWithNotes scans the journal and returns the set of dates that have at
// least one note, using the tolerant filename grammar.
func (b *Bridge) DatesWithNotes() (map[dateid.Identity]struct{}, error) {
	paths, err := b.journal.ListFiles()
	if err != nil {
		return nil, err
	}
	dates := make(map[dateid.Identity]struct{}, len(paths))
	for _, p := range paths {
		base := filepath.Base(p)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if id, ok := dateid.ParseToken(stem); ok {
			dates[id] = struct{}{}
		}
	}
	return dates, nil
}

// HasNote reports whether any note exists for id. Each call rescans.
func (b *Bridge) HasNote(id dateid.Identity) bool {
	dates, err := b.DatesWithNotes()
	if err != nil {
		return false
	}
	_, ok := dates[id]
	return ok
}

// MarkRange invokes mark once per date in [from, to] that has a note.
// Dates are visited in chronological order.
func (b *Bridge) MarkRange(from, to dateid.Identity, mark func(dateid.Identity)) error {
	dates, err := b.DatesWithNotes()
	if err != nil {
		return err
	}
	for d := from; !to.Before(d); d = d.AddDays(1) {
		if _, ok := dates[d]; ok {
			mark(d)
		}
	}
	return nil
}
