package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonth_Ordering(t *testing.T) {
	t.Parallel()

	jan25, err := New(2025, 1)
	require.NoError(t, err)
	dec24, err := New(2024, 12)
	require.NoError(t, err)

	assert.True(t, dec24.Before(jan25))
	assert.True(t, jan25.After(dec24))
	assert.False(t, jan25.Before(jan25))
	assert.True(t, jan25.Equal(Month{Year: 2025, Month: time.January}))
}

func TestMonth_AddMonths(t *testing.T) {
	t.Parallel()

	start := Month{Year: 2024, Month: time.November}

	assert.Equal(t, Month{Year: 2025, Month: time.February}, start.AddMonths(3))
	assert.Equal(t, Month{Year: 2024, Month: time.August}, start.AddMonths(-3))
	assert.Equal(t, start, start.AddMonths(0))
	assert.Equal(t, Month{Year: 2026, Month: time.November}, start.AddMonths(24))
}

func TestMonth_EndOfMonth(t *testing.T) {
	t.Parallel()

	feb24 := Month{Year: 2024, Month: time.February}
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), feb24.EndOfMonth())

	feb25 := Month{Year: 2025, Month: time.February}
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), feb25.EndOfMonth())

	dec := Month{Year: 2025, Month: time.December}
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), dec.EndOfMonth())
}

func TestNew_Invalid(t *testing.T) {
	t.Parallel()

	_, err := New(2025, 0)
	assert.Error(t, err)
	_, err = New(2025, 13)
	assert.Error(t, err)
	_, err = New(1800, 6)
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	t.Parallel()

	m, err := Parse("2025-07")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2025, Month: time.July}, m)

	_, err = Parse("July 2025")
	assert.Error(t, err)
}

func TestParseMonthName(t *testing.T) {
	t.Parallel()

	m, err := ParseMonthName("february")
	require.NoError(t, err)
	assert.Equal(t, time.February, m)

	m, err = ParseMonthName(" December ")
	require.NoError(t, err)
	assert.Equal(t, time.December, m)

	_, err = ParseMonthName("Smarch")
	assert.Error(t, err)
}
