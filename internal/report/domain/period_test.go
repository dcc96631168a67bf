package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthRange(t *testing.T) {
	rng, err := MonthRange(2026, 2)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.February, 1), rng.Start)
	assert.Equal(t, date(2026, time.February, 28), rng.End)

	// Leap year February.
	rng, err = MonthRange(2024, 2)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.February, 29), rng.End)

	// December stays inside its own year.
	rng, err = MonthRange(2026, 12)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.December, 1), rng.Start)
	assert.Equal(t, date(2026, time.December, 31), rng.End)

	_, err = MonthRange(2026, 0)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, err = MonthRange(2026, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestQuarterRange(t *testing.T) {
	rng, err := QuarterRange(2026, 1)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.January, 1), rng.Start)
	assert.Equal(t, date(2026, time.March, 31), rng.End)

	rng, err = QuarterRange(2026, 4)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.October, 1), rng.Start)
	assert.Equal(t, date(2026, time.December, 31), rng.End)

	_, err = QuarterRange(2026, 5)
	assert.ErrorIs(t, err, ErrInvalidQuarter)
}

func TestHalfYearRange(t *testing.T) {
	rng, err := HalfYearRange(2026, 1)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.January, 1), rng.Start)
	assert.Equal(t, date(2026, time.June, 30), rng.End)

	rng, err = HalfYearRange(2026, 2)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.July, 1), rng.Start)
	assert.Equal(t, date(2026, time.December, 31), rng.End)

	_, err = HalfYearRange(2026, 3)
	assert.ErrorIs(t, err, ErrInvalidHalf)
}

func TestYearRange(t *testing.T) {
	rng, err := YearRange(2026)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.January, 1), rng.Start)
	assert.Equal(t, date(2026, time.December, 31), rng.End)
	assert.Equal(t, 365, rng.Days())

	_, err = YearRange(0)
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestNormalizeSwapsReversedBounds(t *testing.T) {
	rng := Normalize(date(2026, time.March, 10), date(2026, time.March, 1))
	assert.Equal(t, date(2026, time.March, 1), rng.Start)
	assert.Equal(t, date(2026, time.March, 10), rng.End)
	assert.Equal(t, 10, rng.Days())

	// Single-day range.
	rng = Normalize(date(2026, time.March, 1), date(2026, time.March, 1))
	assert.Equal(t, 1, rng.Days())
}

func TestDateRangeLabel(t *testing.T) {
	rng := DateRange{Start: date(2026, time.January, 1), End: date(2026, time.January, 31)}
	assert.Equal(t, "2026-01-01 to 2026-01-31", rng.Label())
}
