package booking

import (
	"fmt"
	"time"
)

// DateLayout is the wire form for calendar dates everywhere in the system.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight civil date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateRange is a half-open interval of nights: Start is the first occupied
// night, End is the checkout date and is not occupied.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{Start: s, End: e}, nil
}

// Valid reports whether the range covers at least one night.
func (r DateRange) Valid() bool {
	return r.End.After(r.Start)
}

// Overlaps reports whether two half-open ranges share at least one night.
// Adjacent ranges (one's checkout equals the other's arrival) do not overlap.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Nights enumerates every occupied night in [Start, End), one civil date per
// night. The checkout date is never included.
func (r DateRange) Nights() []time.Time {
	var out []time.Time
	for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// NightCount returns the number of occupied nights.
func (r DateRange) NightCount() int {
	return int(r.End.Sub(r.Start) / (24 * time.Hour))
}

func (r DateRange) String() string {
	return FormatDate(r.Start) + " → " + FormatDate(r.End)
}
