package task

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day with no time of day or zone. It marshals as
// YYYY-MM-DD.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today is the local calendar day of now.
func Today(now time.Time) Date {
	return DateOf(now.Local())
}

func ParseDate(v string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, v)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// AddDays normalizes through time.Date, so month and year rollover work.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDue reads a due date as typed by a user: a YYYY-MM-DD date, "today",
// "tomorrow", or empty/"none" for no due date.
func ParseDue(v string, today Date) (*Date, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "none":
		return nil, nil
	case "today":
		return &today, nil
	case "tomorrow":
		d := today.AddDays(1)
		return &d, nil
	}
	d, err := ParseDate(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
