// Package valueobject contains domain value objects for the Self Focus system.
package valueobject

import (
	"sort"
	"time"
)

// DateLayout is the wire and export format of a calendar date.
const DateLayout = "2006-01-02"

// Date truncates t to its calendar date at midnight UTC.
// The year, month and day are taken from t's own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Date(t), nil
}

// DaysBetween returns the number of whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)).Hours() / 24)
}

// DateSet is a set of calendar dates. Members are stored normalised so that
// instants on the same calendar day collapse into one entry.
type DateSet map[time.Time]struct{}

// NewDateSet builds a set from the given instants.
func NewDateSet(dates ...time.Time) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

// Add inserts the calendar date of t. Reports false when it was already present.
func (s DateSet) Add(t time.Time) bool {
	d := Date(t)
	if _, ok := s[d]; ok {
		return false
	}
	s[d] = struct{}{}
	return true
}

// Remove deletes the calendar date of t. Reports whether it was present.
func (s DateSet) Remove(t time.Time) bool {
	d := Date(t)
	if _, ok := s[d]; !ok {
		return false
	}
	delete(s, d)
	return true
}

// Contains reports whether the calendar date of t is in the set.
func (s DateSet) Contains(t time.Time) bool {
	_, ok := s[Date(t)]
	return ok
}

// Clone returns an independent copy of the set.
func (s DateSet) Clone() DateSet {
	c := make(DateSet, len(s))
	for d := range s {
		c[d] = struct{}{}
	}
	return c
}

// Sorted returns the members in ascending order.
func (s DateSet) Sorted() []time.Time {
	out := make([]time.Time, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
