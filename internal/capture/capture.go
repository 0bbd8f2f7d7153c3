// Package capture materializes daily notes on demand and fills them from
// configured templates.
package capture

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/starford/dagaz/internal/dateid"
	"github.com/starford/dagaz/internal/journal"
)

// Opener lands the user on a resolved note file and runs the post-navigation
// hook. editor.Editor implements it; server-side callers pass nil and only
// get the file materialized.
type Opener interface {
	Open(ctx context.Context, path string) error
	RunHook(ctx context.Context) error
}

// Options carries all per-call capture parameters. Zero Time means "now".
type Options struct {
	Time        time.Time
	GoToOnly    bool   // land on the note without inserting a template
	TemplateKey string // empty selects the configured default template
}

// Resolver ensures a note file exists for a date and hands it off.
type Resolver struct {
	journal    *journal.Journal
	templates  map[string]string
	defaultKey string
	opener     Opener
}

// NewResolver creates a Resolver. templates maps template keys to template
// bodies; defaultKey selects the template used when Options.TemplateKey is
// empty. opener may be nil.
func NewResolver(j *journal.Journal, templates map[string]string, defaultKey string, opener Opener) *Resolver {
	return &Resolver{journal: j, templates: templates, defaultKey: defaultKey, opener: opener}
}

// EnsureAndCapture resolves the note for opts.Time, creating it if no note
// for that date exists under any configured extension, then inserts the
// selected template (unless GoToOnly) and opens the note.
//
// Creation is a plain check-then-act with no locking: two concurrent
// captures for the same date can race. Accepted limitation.
func (r *Resolver) EnsureAndCapture(ctx context.Context, opts Options) (journal.Note, bool, error) {
	at := opts.Time
	if at.IsZero() {
		at = time.Now()
	}
	id := dateid.IdentityOf(at)

	note, found, err := r.journal.Find(id)
	if err != nil {
		return journal.Note{}, false, err
	}
	created := false
	if !found {
		path := r.journal.PathFor(id)
		if err := os.WriteFile(path, journal.TitleLine(id), 0o644); err != nil {
			return journal.Note{}, false, fmt.Errorf("capture: create %s: %w", path, err)
		}
		note = journal.Note{Path: path, ID: id}
		created = true
	}

	if !opts.GoToOnly {
		content, err := r.render(opts.TemplateKey, id, at)
		if err != nil {
			return journal.Note{}, created, err
		}
		if err := appendTo(note.Path, content); err != nil {
			return journal.Note{}, created, err
		}
	}

	if r.opener != nil {
		if err := r.opener.Open(ctx, note.Path); err != nil {
			return note, created, err
		}
		if opts.GoToOnly {
			if err := r.opener.RunHook(ctx); err != nil {
				return note, created, err
			}
		}
	}
	return note, created, nil
}

// Today captures the note for the current date.
func (r *Resolver) Today(ctx context.Context, opts Options) (journal.Note, bool, error) {
	opts.Time = time.Now()
	return r.EnsureAndCapture(ctx, opts)
}

// RelativeDay captures the note n calendar days from now; n may be negative.
func (r *Resolver) RelativeDay(ctx context.Context, n int, opts Options) (journal.Note, bool, error) {
	opts.Time = time.Now().AddDate(0, 0, n)
	return r.EnsureAndCapture(ctx, opts)
}

// ForDate captures the note for an explicitly picked date.
func (r *Resolver) ForDate(ctx context.Context, id dateid.Identity, opts Options) (journal.Note, bool, error) {
	opts.Time = id.Time()
	return r.EnsureAndCapture(ctx, opts)
}

func appendTo(path, content string) error {
	if content == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("capture: open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("capture: append %s: %w", path, err)
	}
	return nil
}
