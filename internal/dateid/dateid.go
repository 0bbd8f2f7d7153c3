// Package dateid maps calendar dates to canonical daily-note names and back.
//
// The canonical form is zero-padded "YYYY-MM-DD". It doubles as the file
// basename stem and as the note's title, and its lexicographic order equals
// chronological order, so sorting note files by name sorts them by date.
package dateid

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const canonicalLayout = "2006-01-02"

var (
	strictRe   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	tolerantRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?:[T _-].*)?$`)
)

// Identity is a calendar date identifying exactly one daily note.
// The zero value is not a valid identity.
type Identity struct {
	year  int
	month time.Month
	day   int
}

// ParseError reports a basename that does not name a valid calendar date.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dateid: parse %q: %s", e.Input, e.Reason)
}

// IdentityOf returns the identity for the calendar date of t in t's location.
func IdentityOf(t time.Time) Identity {
	y, m, d := t.Date()
	return Identity{year: y, month: m, day: d}
}

// New builds an identity from explicit components, rejecting dates that do
// not exist on the calendar (month 13, February 30, ...).
func New(year int, month time.Month, day int) (Identity, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	ry, rm, rd := t.Date()
	if ry != year || rm != month || rd != day {
		return Identity{}, &ParseError{
			Input:  fmt.Sprintf("%04d-%02d-%02d", year, month, day),
			Reason: "no such calendar date",
		}
	}
	return Identity{year: year, month: month, day: day}, nil
}

// Parse interprets basename strictly as a canonical "YYYY-MM-DD" string.
func Parse(basename string) (Identity, error) {
	m := strictRe.FindStringSubmatch(basename)
	if m == nil {
		return Identity{}, &ParseError{Input: basename, Reason: "not a YYYY-MM-DD name"}
	}
	return fromMatch(basename, m)
}

// ParseToken is the tolerant variant used for calendar marking. It accepts
// any token that begins with a valid date, including richer shapes such as
// "2024-01-02T09:30" or "2024-01-02 standup". Files recognized here are NOT
// necessarily part of the navigable note set, which uses the strict Parse.
func ParseToken(s string) (Identity, bool) {
	m := tolerantRe.FindStringSubmatch(s)
	if m == nil {
		return Identity{}, false
	}
	id, err := fromMatch(s, m)
	if err != nil {
		return Identity{}, false
	}
	return id, true
}

func fromMatch(input string, m []string) (Identity, error) {
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	id, err := New(year, time.Month(month), day)
	if err != nil {
		return Identity{}, &ParseError{Input: input, Reason: "no such calendar date"}
	}
	return id, nil
}

// String returns the canonical "YYYY-MM-DD" form.
func (id Identity) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", id.year, id.month, id.day)
}

// Date returns the year, month, and day components.
func (id Identity) Date() (int, time.Month, int) {
	return id.year, id.month, id.day
}

// Time returns midnight of the identity's date in the local time zone.
func (id Identity) Time() time.Time {
	return time.Date(id.year, id.month, id.day, 0, 0, 0, 0, time.Local)
}

// AddDays returns the identity n calendar days away (n may be negative).
func (id Identity) AddDays(n int) Identity {
	return IdentityOf(id.Time().AddDate(0, 0, n))
}

// Before reports whether id is chronologically before other.
func (id Identity) Before(other Identity) bool {
	return id.String() < other.String()
}

// IsZero reports whether id is the zero value.
func (id Identity) IsZero() bool {
	return id == Identity{}
}

// Path returns the canonical file path for this identity under dir with the
// given extension. Pure string construction, the filesystem is not touched.
func (id Identity) Path(dir, ext string) string {
	return filepath.Join(dir, id.String()+"."+strings.TrimPrefix(ext, "."))
}
