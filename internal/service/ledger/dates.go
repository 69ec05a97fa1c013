package ledger

import (
	"strings"
	"time"

	"pawn-ledger/internal/pkg/consts"
)

// Calendar truncates instants to ledger days in a fixed time zone.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{loc: loc, now: time.Now}
}

// LoadCalendar builds a Calendar for an IANA zone name.
func LoadCalendar(timezone string) (*Calendar, error) {
	if timezone == "" {
		timezone = consts.DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return NewCalendar(loc), nil
}

func (c *Calendar) Location() *time.Location { return c.loc }

// StartOfDay returns midnight of t's calendar day in the ledger zone.
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

func (c *Calendar) Today() time.Time {
	return c.StartOfDay(c.now())
}

// ParseQueryDate reads a YYYY-MM-DD day in the ledger zone. Empty input is today.
func (c *Calendar) ParseQueryDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return c.Today(), nil
	}
	t, err := time.ParseInLocation(consts.DateFormat, raw, c.loc)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// DayKey formats a day as YYYY-MM-DD in the ledger zone.
func (c *Calendar) DayKey(day time.Time) string {
	return day.In(c.loc).Format(consts.DateFormat)
}
