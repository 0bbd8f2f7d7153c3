// Package apperr defines the sentinel errors surfaced by navigation and capture.
package apperr

import "errors"

var (
	// ErrNotDailyNote means the current file is not a recognized daily note:
	// its basename or title line does not resolve to a calendar date.
	ErrNotDailyNote = errors.New("not a daily note")

	// ErrNoFileAssociated means the caller supplied no file path to navigate from.
	ErrNoFileAssociated = errors.New("no file associated")

	// ErrNotFound means the file is absent from the freshly scanned note set,
	// e.g. it was deleted or renamed since it was opened.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyNewest means the current note is the chronologically last one.
	ErrAlreadyNewest = errors.New("already at newest note")

	// ErrAlreadyOldest means the current note is the chronologically first one.
	ErrAlreadyOldest = errors.New("already at oldest note")
)
