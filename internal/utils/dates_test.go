package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInclusiveDays(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
	}

	require.Equal(t, 1, InclusiveDays(day(2), day(2)))
	require.Equal(t, 4, InclusiveDays(day(2), day(5)))
	require.Equal(t, 0, InclusiveDays(day(5), day(2)))

	// Time-of-day noise doesn't change the count.
	late := time.Date(2025, time.June, 2, 23, 59, 0, 0, time.UTC)
	early := time.Date(2025, time.June, 5, 0, 1, 0, 0, time.UTC)
	require.Equal(t, 4, InclusiveDays(late, early))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, time.June, 2, 14, 30, 45, 999, time.UTC)
	require.Equal(t, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, time.June, 2, 1, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.June, 2, 23, 0, 0, 0, time.UTC)
	c := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)
	require.True(t, SameDay(a, b))
	require.False(t, SameDay(b, c))
}

func TestParseClock(t *testing.T) {
	date := time.Date(2025, time.June, 2, 17, 45, 0, 0, time.UTC)
	got, err := ParseClock(date, "09:30")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.June, 2, 9, 30, 0, 0, time.UTC), got)

	_, err = ParseClock(date, "nine")
	require.Error(t, err)
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "acme-rockets", Slugify("Acme Rockets"))
	require.Equal(t, "r-d-team", Slugify("R&D Team"))
	require.Equal(t, "plain", Slugify("plain"))
}
