package capture

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/starford/dagaz/internal/dateid"
)

// PickPolicy controls how ambiguous short date inputs resolve: an input like
// "3" can mean the 3rd of this month or of the next one.
type PickPolicy int

const (
	// PreferFuture resolves ambiguous inputs to the nearest matching date
	// not in the past.
	PreferFuture PickPolicy = iota
	// PreferPast resolves ambiguous inputs to the nearest matching date
	// not in the future.
	PreferPast
)

// ParsePolicy converts the config strings "future" and "past".
func ParsePolicy(s string) (PickPolicy, error) {
	switch s {
	case "", "future":
		return PreferFuture, nil
	case "past":
		return PreferPast, nil
	}
	return PreferFuture, fmt.Errorf("capture: unknown date-picker policy %q", s)
}

var (
	relativeRe = regexp.MustCompile(`^[+-]\d+$`)
	monthDayRe = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})$`)
	dayOnlyRe  = regexp.MustCompile(`^\d{1,2}$`)
)

// PickDate resolves a user-supplied date input relative to now. Accepted
// shapes: full "YYYY-MM-DD", signed day offsets ("+3", "-1"), "MM-DD"
// (year inferred per policy), and a bare day of month (month inferred per
// policy). An input equal to today's date is never shifted.
func PickDate(input string, now time.Time, policy PickPolicy) (dateid.Identity, error) {
	today := dateid.IdentityOf(now)

	switch {
	case input == "":
		return dateid.Identity{}, fmt.Errorf("capture: empty date input")

	case relativeRe.MatchString(input):
		n, err := strconv.Atoi(input)
		if err != nil {
			return dateid.Identity{}, fmt.Errorf("capture: date offset %q: %w", input, err)
		}
		return today.AddDays(n), nil

	case monthDayRe.MatchString(input):
		m := monthDayRe.FindStringSubmatch(input)
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _, _ := today.Date()
		id, err := dateid.New(year, time.Month(month), day)
		if err != nil {
			return dateid.Identity{}, err
		}
		switch {
		case policy == PreferFuture && id.Before(today):
			return dateid.New(year+1, time.Month(month), day)
		case policy == PreferPast && today.Before(id):
			return dateid.New(year-1, time.Month(month), day)
		}
		return id, nil

	case dayOnlyRe.MatchString(input):
		day, _ := strconv.Atoi(input)
		year, month, _ := today.Date()
		id, err := dateid.New(year, month, day)
		if err != nil {
			return dateid.Identity{}, err
		}
		switch {
		case policy == PreferFuture && id.Before(today):
			return shiftMonth(year, month, day, +1)
		case policy == PreferPast && today.Before(id):
			return shiftMonth(year, month, day, -1)
		}
		return id, nil
	}

	return dateid.Parse(input)
}

// shiftMonth moves the candidate one month in the given direction, failing
// when the adjacent month has no such day (e.g. the 31st).
func shiftMonth(year int, month time.Month, day, dir int) (dateid.Identity, error) {
	t := time.Date(year, month+time.Month(dir), 1, 0, 0, 0, 0, time.UTC)
	return dateid.New(t.Year(), t.Month(), day)
}
