// Package period provides a calendar-month value type used for payroll
// period arithmetic. All window comparisons in this codebase go through
// Month.Index so that month ordering never relies on string comparison.
package period

import (
	"fmt"
	"strings"
	"time"
)

type Month struct {
	Year  int
	Month time.Month
}

// New returns the Month for the given year and 1-based month number.
func New(year, month int) (Month, error) {
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("invalid month %d: must be between 1 and 12", month)
	}
	if year < 1900 || year > 2100 {
		return Month{}, fmt.Errorf("invalid year %d: must be between 1900 and 2100", year)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// Index maps a Month onto a single ordered integer axis.
func (m Month) Index() int {
	return m.Year*12 + int(m.Month) - 1
}

func (m Month) Before(other Month) bool {
	return m.Index() < other.Index()
}

func (m Month) After(other Month) bool {
	return m.Index() > other.Index()
}

func (m Month) Equal(other Month) bool {
	return m.Index() == other.Index()
}

// AddMonths returns the Month n months after m (n may be negative).
func (m Month) AddMonths(n int) Month {
	idx := m.Index() + n
	year := idx / 12
	mon := idx%12 + 1
	if mon <= 0 {
		mon += 12
		year--
	}
	return Month{Year: year, Month: time.Month(mon)}
}

// EndOfMonth returns the last calendar day of the month at midnight UTC.
func (m Month) EndOfMonth() time.Time {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns the first calendar day of the month at midnight UTC.
func (m Month) StartOfMonth() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Parse accepts the "2006-01" form.
func Parse(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid period %q: expected YYYY-MM", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// ParseMonthName resolves an English month name ("January" ... "December",
// case-insensitive) to its time.Month. Used by spreadsheet imports where
// periods arrive as names rather than numbers.
func ParseMonthName(name string) (time.Month, error) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), strings.TrimSpace(name)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid month name %q", name)
}
