// Package dateutil provides calendar-month arithmetic for scheduling
// installment and recurring ledger entries.
//
// time.AddDate normalizes overflowing days (Jan 31 + 1 month = Mar 3), which
// silently rolls a due date into the following month. Every series placement
// in the application goes through ShiftMonths instead, which clamps to the
// last valid day of the target month.
package dateutil

import "time"

// ShiftMonths returns the date months calendar months after t, preserving
// t's day-of-month when that day exists in the target month and clamping to
// the last day otherwise. months may be zero or negative.
func ShiftMonths(t time.Time, months int) time.Time {
	return ShiftMonthsAnchored(t, months, t.Day())
}

// ShiftMonthsAnchored is ShiftMonths with the day-of-month re-anchored to
// day instead of t's own day. Propagating an edit across a series uses this
// to keep every future entry on the edited entry's billing day.
func ShiftMonthsAnchored(t time.Time, months int, day int) time.Time {
	year, month := t.Year(), int(t.Month())-1+months
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}
	m := time.Month(month + 1)
	if max := DaysIn(year, m); day > max {
		day = max
	}
	return time.Date(year, m, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// WholeMonthsBetween returns the calendar-month delta from from to to,
// ignoring the day components. Negative when to is in an earlier month.
func WholeMonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
