package dateutil_test

import (
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/utils/dateutil"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestShiftMonths(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		months int
		want   time.Time
	}{
		{
			name:   "day 31 into leap february clamps to 29",
			anchor: date(2024, time.January, 31),
			months: 1,
			want:   date(2024, time.February, 29),
		},
		{
			name:   "day 31 into non-leap february clamps to 28",
			anchor: date(2023, time.January, 31),
			months: 1,
			want:   date(2023, time.February, 28),
		},
		{
			name:   "day 31 into 30-day month clamps to 30",
			anchor: date(2024, time.March, 31),
			months: 1,
			want:   date(2024, time.April, 30),
		},
		{
			name:   "day preserved when it exists in target month",
			anchor: date(2024, time.January, 15),
			months: 1,
			want:   date(2024, time.February, 15),
		},
		{
			name:   "zero offset is identity",
			anchor: date(2024, time.May, 31),
			months: 0,
			want:   date(2024, time.May, 31),
		},
		{
			name:   "crosses year boundary forward",
			anchor: date(2023, time.November, 30),
			months: 3,
			want:   date(2024, time.February, 29),
		},
		{
			name:   "negative offset crosses year boundary backward",
			anchor: date(2024, time.January, 31),
			months: -2,
			want:   date(2023, time.November, 30),
		},
		{
			name:   "negative offset within year",
			anchor: date(2024, time.May, 15),
			months: -1,
			want:   date(2024, time.April, 15),
		},
		{
			name:   "large offset spans multiple years",
			anchor: date(2023, time.January, 31),
			months: 25,
			want:   date(2025, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dateutil.ShiftMonths(tt.anchor, tt.months)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestShiftMonths_NeverRollsIntoNextMonth(t *testing.T) {
	// Walking a 12-entry series anchored on the 31st must keep every entry in
	// its own month.
	anchor := date(2024, time.January, 31)
	for i := 0; i < 12; i++ {
		got := dateutil.ShiftMonths(anchor, i)
		wantMonth := time.Month((int(anchor.Month())-1+i)%12 + 1)
		assert.Equal(t, wantMonth, got.Month(), "entry %d landed in the wrong month", i)
	}
}

func TestShiftMonthsAnchored(t *testing.T) {
	tests := []struct {
		name   string
		from   time.Time
		months int
		day    int
		want   time.Time
	}{
		{
			name:   "re-anchors to a later day",
			from:   date(2024, time.March, 5),
			months: 0,
			day:    10,
			want:   date(2024, time.March, 10),
		},
		{
			name:   "re-anchored day clamps in short month",
			from:   date(2024, time.January, 5),
			months: 1,
			day:    31,
			want:   date(2024, time.February, 29),
		},
		{
			name:   "shift and re-anchor together",
			from:   date(2024, time.June, 28),
			months: 2,
			day:    1,
			want:   date(2024, time.August, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dateutil.ShiftMonthsAnchored(tt.from, tt.months, tt.day)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestWholeMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same month ignores days", date(2024, time.March, 5), date(2024, time.March, 28), 0},
		{"adjacent months", date(2024, time.March, 31), date(2024, time.April, 1), 1},
		{"across year boundary", date(2023, time.November, 10), date(2024, time.February, 10), 3},
		{"negative when to is earlier", date(2024, time.March, 1), date(2024, time.January, 31), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dateutil.WholeMonthsBetween(tt.from, tt.to))
		})
	}
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, dateutil.DaysIn(2024, time.February))
	assert.Equal(t, 28, dateutil.DaysIn(2023, time.February))
	assert.Equal(t, 31, dateutil.DaysIn(2024, time.December))
	assert.Equal(t, 30, dateutil.DaysIn(2024, time.April))
}
