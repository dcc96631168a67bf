package domain

import "time"

// MonthRange returns the inclusive window for a calendar month: the first
// of the month through the first of the next month minus one day. December
// wraps into the next year and leap Februaries fall out of the calendar
// arithmetic.
func MonthRange(year, month int) (DateRange, error) {
	if month < 1 || month > 12 {
		return DateRange{}, ErrInvalidMonth
	}
	if year < 1 {
		return DateRange{}, ErrInvalidYear
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return DateRange{Start: start, End: end}, nil
}

// QuarterRange returns the window for quarter q (1..4) of a year.
func QuarterRange(year, q int) (DateRange, error) {
	if q < 1 || q > 4 {
		return DateRange{}, ErrInvalidQuarter
	}
	if year < 1 {
		return DateRange{}, ErrInvalidYear
	}
	start := time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0).AddDate(0, 0, -1)
	return DateRange{Start: start, End: end}, nil
}

// HalfYearRange returns H1 (Jan 1 to Jun 30) or H2 (Jul 1 to Dec 31).
func HalfYearRange(year, h int) (DateRange, error) {
	if h != 1 && h != 2 {
		return DateRange{}, ErrInvalidHalf
	}
	if year < 1 {
		return DateRange{}, ErrInvalidYear
	}
	if h == 1 {
		return DateRange{
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.June, 30, 0, 0, 0, 0, time.UTC),
		}, nil
	}
	return DateRange{
		Start: time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}, nil
}

// YearRange returns Jan 1 through Dec 31 of a year.
func YearRange(year int) (DateRange, error) {
	if year < 1 {
		return DateRange{}, ErrInvalidYear
	}
	return DateRange{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}, nil
}

// Normalize truncates both bounds to midnight UTC and swaps them when the
// caller passed them reversed.
func Normalize(start, end time.Time) DateRange {
	s := truncateDay(start)
	e := truncateDay(end)
	if e.Before(s) {
		s, e = e, s
	}
	return DateRange{Start: s, End: e}
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
