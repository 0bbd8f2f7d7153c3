package dateid

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestIdentityOf_Canonical(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	id := IdentityOf(ts)
	if id.String() != "2024-03-05" {
		t.Errorf("String() = %q, want 2024-03-05", id.String())
	}
}

func TestParse_RoundTrip(t *testing.T) {
	dates := []string{"2024-01-01", "2024-02-29", "1999-12-31", "2024-10-09"}
	for _, s := range dates {
		id, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if id.String() != s {
			t.Errorf("round-trip %q -> %q", s, id.String())
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []string{
		"",
		"notes",
		"2024-13-01", // month 13
		"2024-02-30", // no such day
		"2023-02-29", // not a leap year
		"24-01-01",
		"2024-1-1",
		"2024-01-01.org",
		"2024-01-01 extra", // tolerant only
	}
	for _, s := range cases {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q): expected error", s)
		}
	}
}

func TestParse_ErrorType(t *testing.T) {
	_, err := Parse("garbage")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if pe.Input != "garbage" {
		t.Errorf("Input = %q", pe.Input)
	}
}

func TestParseToken_Tolerant(t *testing.T) {
	cases := map[string]string{
		"2024-01-02":         "2024-01-02",
		"2024-01-02T09:30":   "2024-01-02",
		"2024-01-02 standup": "2024-01-02",
		"2024-01-02_draft":   "2024-01-02",
		"2024-01-02-meeting": "2024-01-02",
	}
	for in, want := range cases {
		id, ok := ParseToken(in)
		if !ok {
			t.Errorf("ParseToken(%q): not ok", in)
			continue
		}
		if id.String() != want {
			t.Errorf("ParseToken(%q) = %q, want %q", in, id.String(), want)
		}
	}
}

func TestParseToken_Rejects(t *testing.T) {
	cases := []string{"stray", "2024-13-01T10:00", "20240102", "x2024-01-02"}
	for _, s := range cases {
		if _, ok := ParseToken(s); ok {
			t.Errorf("ParseToken(%q): expected not ok", s)
		}
	}
}

func TestOrdering_StringMatchesChronology(t *testing.T) {
	pairs := [][2]string{
		{"2023-12-31", "2024-01-01"},
		{"2024-01-09", "2024-01-10"},
		{"2024-02-28", "2024-02-29"},
		{"1999-01-01", "2000-01-01"},
	}
	for _, p := range pairs {
		a, _ := Parse(p[0])
		b, _ := Parse(p[1])
		if !a.Before(b) {
			t.Errorf("%s should be before %s", p[0], p[1])
		}
		if !(a.String() < b.String()) {
			t.Errorf("lexicographic order broken for %s < %s", p[0], p[1])
		}
		if !a.Time().Before(b.Time()) {
			t.Errorf("chronological order broken for %s < %s", p[0], p[1])
		}
	}
}

func TestAddDays_LeapBoundary(t *testing.T) {
	id, _ := Parse("2024-03-01")
	if got := id.AddDays(-1).String(); got != "2024-02-29" {
		t.Errorf("2024-03-01 - 1 day = %q, want 2024-02-29", got)
	}
	if got := id.AddDays(-1).AddDays(1); got != id {
		t.Errorf("AddDays round-trip = %q", got.String())
	}
}

func TestPath(t *testing.T) {
	id, _ := Parse("2024-01-15")
	want := filepath.Join("/tmp/daily", "2024-01-15.org")
	if got := id.Path("/tmp/daily", "org"); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
	if got := id.Path("/tmp/daily", ".org"); got != want {
		t.Errorf("Path with dotted ext = %q, want %q", got, want)
	}
}
