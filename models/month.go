package models

import (
	"fmt"
	"time"
)

// Ledger dates are plain ISO day strings. Lexicographic order equals
// calendar order, so month scans are simple $gte/$lte ranges.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Month is a calendar month, parsed from the YYYY-MM tokens used in
// bill documents and request paths.
type Month struct {
	Year  int
	Month time.Month
}

func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// FirstDay returns the date string of day 1.
func (m Month) FirstDay() string {
	return FormatDate(time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC))
}

// LastDay returns the date string of the final calendar day.
func (m Month) LastDay() string {
	return FormatDate(time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC))
}

func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Prev returns the preceding calendar month.
func (m Month) Prev() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return MonthOf(t)
}
