package api

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/capture"
	"github.com/starford/dagaz/internal/checksum"
	"github.com/starford/dagaz/internal/dateid"
	"github.com/starford/dagaz/internal/journal"
	"github.com/starford/dagaz/internal/navigate"
)

// DailyDetail is the full representation of a daily note.
type DailyDetail struct {
	Date      string    `json:"date"`
	Path      string    `json:"path"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DailyListItem is a lightweight item in a list response.
type DailyListItem struct {
	Date      string    `json:"date"`
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CaptureResult reports what a capture call resolved to.
type CaptureResult struct {
	Date    string `json:"date"`
	Path    string `json:"path"`
	Created bool   `json:"created"`
}

// Service coordinates the journal, capture resolver, navigator, and calendar
// bridge for the API layer.
type Service struct {
	journal  *journal.Journal
	resolver *capture.Resolver
	nav      *navigate.Navigator
	bridge   *calendar.Bridge
	picker   capture.PickPolicy
}

// NewService creates a new API service.
func NewService(j *journal.Journal, resolver *capture.Resolver, picker capture.PickPolicy) *Service {
	return &Service{
		journal:  j,
		resolver: resolver,
		nav:      navigate.New(j),
		bridge:   calendar.New(j),
		picker:   picker,
	}
}

// ListDailies returns every daily note, oldest first.
func (s *Service) ListDailies(_ context.Context) ([]DailyListItem, error) {
	notes, err := s.journal.List()
	if err != nil {
		return nil, err
	}
	items := make([]DailyListItem, 0, len(notes))
	for _, n := range notes {
		item := DailyListItem{Date: n.ID.String(), Path: s.rel(n.Path)}
		if data, err := os.ReadFile(n.Path); err == nil {
			item.Checksum = checksum.Sum(data)
		}
		if info, err := os.Stat(n.Path); err == nil {
			item.UpdatedAt = info.ModTime()
		}
		items = append(items, item)
	}
	return items, nil
}

// GetDaily returns the note for the given date, if one exists.
func (s *Service) GetDaily(_ context.Context, id dateid.Identity) (*DailyDetail, bool, error) {
	note, found, err := s.journal.Find(id)
	if err != nil || !found {
		return nil, found, err
	}
	data, err := os.ReadFile(note.Path)
	if err != nil {
		return nil, true, err
	}
	detail := &DailyDetail{
		Date:     note.ID.String(),
		Path:     s.rel(note.Path),
		Content:  string(data),
		Checksum: checksum.Sum(data),
	}
	if title, ok := journal.ReadTitle(note.Path); ok {
		detail.Title = title
	}
	if info, err := os.Stat(note.Path); err == nil {
		detail.UpdatedAt = info.ModTime()
	}
	return detail, true, nil
}

// Capture materializes the note for opts.Time and returns where it landed.
func (s *Service) Capture(ctx context.Context, opts capture.Options) (CaptureResult, error) {
	note, created, err := s.resolver.EnsureAndCapture(ctx, opts)
	if err != nil {
		return CaptureResult{}, err
	}
	return CaptureResult{Date: note.ID.String(), Path: s.rel(note.Path), Created: created}, nil
}

// PickDate resolves a user-supplied date string with the configured policy.
func (s *Service) PickDate(input string, now time.Time) (dateid.Identity, error) {
	return capture.PickDate(input, now, s.picker)
}

// Navigate moves offset existing notes away from the note for date from.
func (s *Service) Navigate(_ context.Context, from dateid.Identity, offset int) (DailyListItem, error) {
	note, found, err := s.journal.Find(from)
	if err != nil {
		return DailyListItem{}, err
	}
	if !found {
		// Let the navigator produce its canonical not-found error for the
		// canonical path of the missing note.
		note = journal.Note{Path: s.journal.PathFor(from), ID: from}
	}
	target, err := s.nav.Move(note.Path, offset)
	if err != nil {
		return DailyListItem{}, err
	}
	return DailyListItem{Date: target.ID.String(), Path: s.rel(target.Path)}, nil
}

// CalendarMarks returns the dates in [from, to] that have notes.
func (s *Service) CalendarMarks(_ context.Context, from, to dateid.Identity) ([]string, error) {
	var marks []string
	err := s.bridge.MarkRange(from, to, func(d dateid.Identity) {
		marks = append(marks, d.String())
	})
	if err != nil {
		return nil, err
	}
	if marks == nil {
		marks = []string{}
	}
	return marks, nil
}

func (s *Service) rel(path string) string {
	if r, err := filepath.Rel(s.journal.Root(), path); err == nil {
		return r
	}
	return path
}
