package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestWeekOf(t *testing.T) {
	t.Parallel()
	cal := Default()

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{name: "First day of semester", date: date(2025, time.February, 24), want: 1},
		{name: "Last day of week 1", date: date(2025, time.March, 2), want: 1},
		{name: "First day of week 2", date: date(2025, time.March, 3), want: 2},
		{name: "Mid semester", date: date(2025, time.April, 21), want: 9},
		{name: "Before semester clamps to 1", date: date(2025, time.January, 1), want: 1},
		{name: "Day before start clamps to 1", date: date(2025, time.February, 23), want: 1},
		{name: "Week 20 exact", date: date(2025, time.July, 7), want: 20},
		{name: "Far beyond term clamps to 20", date: date(2026, time.January, 1), want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cal.WeekOf(tt.date); got != tt.want {
				t.Errorf("WeekOf(%s) = %d, want %d", FormatDate(tt.date), got, tt.want)
			}
		})
	}
}

func TestWeekOfIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()
	cal := Default()

	evening := time.Date(2025, time.March, 2, 23, 59, 0, 0, time.Local)
	if got := cal.WeekOf(evening); got != 1 {
		t.Errorf("WeekOf(evening of last week-1 day) = %d, want 1", got)
	}
}

func TestWeekOfCustomStart(t *testing.T) {
	t.Parallel()
	cal := New(date(2024, time.September, 2))

	if got := cal.WeekOf(date(2024, time.September, 9)); got != 2 {
		t.Errorf("WeekOf() = %d, want 2", got)
	}
}

func TestWeekdayName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		date time.Time
		want string
	}{
		{date(2025, time.February, 24), "星期一"},
		{date(2025, time.February, 25), "星期二"},
		{date(2025, time.March, 1), "星期六"},
		{date(2025, time.March, 2), "星期日"},
	}

	for _, tt := range tests {
		if got := WeekdayName(tt.date); got != tt.want {
			t.Errorf("WeekdayName(%s) = %q, want %q", FormatDate(tt.date), got, tt.want)
		}
	}
}

func TestSlotTimeRange(t *testing.T) {
	t.Parallel()
	if got := SlotTimeRange("1,2"); got != "08:00-09:50" {
		t.Errorf("SlotTimeRange(1,2) = %q", got)
	}
	if got := SlotTimeRange("11,12"); got != "21:00-22:50" {
		t.Errorf("SlotTimeRange(11,12) = %q", got)
	}
	if got := SlotTimeRange("13,14"); got != "13,14" {
		t.Errorf("SlotTimeRange(unknown) = %q, want echo", got)
	}
}

func TestFormatAndParseDate(t *testing.T) {
	t.Parallel()
	d := date(2025, time.March, 5)
	if got := FormatDate(d); got != "2025-03-05" {
		t.Errorf("FormatDate() = %q", got)
	}

	parsed, err := ParseDate("2025-03-05")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if !parsed.Equal(d) {
		t.Errorf("ParseDate() = %v, want %v", parsed, d)
	}

	if _, err := ParseDate("05/03/2025"); err == nil {
		t.Error("ParseDate() expected error for bad format")
	}
}
