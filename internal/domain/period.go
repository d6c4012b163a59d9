package domain

import "time"

// MonthRange returns the first and last day of the month containing t,
// both at midnight UTC.
func MonthRange(t time.Time) (start, end time.Time) {
	t = t.UTC()
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return start, end
}

// NextPeriodRange returns the boundaries of the period that follows a
// close on the given date: the full calendar month after closing's month.
func NextPeriodRange(closing time.Time) (start, end time.Time) {
	closing = closing.UTC()
	start = time.Date(closing.Year(), closing.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(closing.Year(), closing.Month()+2, 0, 0, 0, 0, 0, time.UTC)
	return start, end
}
