package domain

import "time"

// PeriodBounds returns the [start, end) window of the given frequency that contains t.
// Windows are computed in UTC so that every instant of a period maps to the same bounds;
// the start is the join key for GoalProgress. Weeks start on Monday.
// Unknown frequencies fall back to daily windows.
func PeriodBounds(freq Frequency, t time.Time) (start, end time.Time) {
	t = t.UTC()
	y, m, d := t.Date()

	switch freq {
	case FrequencyWeekly:
		// time.Weekday has Sunday == 0; shift so Monday is day 0 of the week.
		offset := (int(t.Weekday()) + 6) % 7
		start = time.Date(y, m, d-offset, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 0, 7)
	case FrequencyMonthly:
		start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	case FrequencyYearly:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(1, 0, 0)
	default:
		start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 0, 1)
	}
	return start, end
}

// NextPeriod returns the window immediately following the one containing t.
func NextPeriod(freq Frequency, t time.Time) (start, end time.Time) {
	_, end = PeriodBounds(freq, t)
	return PeriodBounds(freq, end)
}

// PreviousPeriod returns the window immediately preceding the one containing t.
func PreviousPeriod(freq Frequency, t time.Time) (start, end time.Time) {
	start, _ = PeriodBounds(freq, t)
	return PeriodBounds(freq, start.Add(-time.Nanosecond))
}
