package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2025-06")
	require.NoError(t, err)
	assert.Equal(t, 2025, m.Year)
	assert.Equal(t, time.June, m.Month)
	assert.Equal(t, "2025-06", m.String())

	for _, bad := range []string{"", "2025", "2025-13", "2025-6", "06-2025", "2025-06-01", "June 2025"} {
		_, err := ParseMonth(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestMonthRange(t *testing.T) {
	m := Month{Year: 2025, Month: time.June}
	assert.Equal(t, "2025-06-01", m.FirstDay())
	assert.Equal(t, "2025-06-30", m.LastDay())

	feb := Month{Year: 2024, Month: time.February}
	assert.Equal(t, "2024-02-29", feb.LastDay())

	dec := Month{Year: 2025, Month: time.December}
	assert.Equal(t, "2025-12-31", dec.LastDay())
}

func TestMonthContains(t *testing.T) {
	m := Month{Year: 2025, Month: time.June}
	assert.True(t, m.Contains(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestMonthPrev(t *testing.T) {
	assert.Equal(t, Month{Year: 2025, Month: time.May}, Month{Year: 2025, Month: time.June}.Prev())
	assert.Equal(t, Month{Year: 2024, Month: time.December}, Month{Year: 2025, Month: time.January}.Prev())
}

func TestDateRoundTrip(t *testing.T) {
	d := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-03", FormatDate(d))

	parsed, err := ParseDate("2025-06-03")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-03", FormatDate(parsed))

	_, err = ParseDate("2025-03-06T00:00:00Z")
	assert.Error(t, err)
}
