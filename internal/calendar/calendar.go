// Package calendar resolves calendar dates to academic semester weeks
// and Chinese weekday labels. All calculations use the local calendar
// date only; the semester runs for a fixed twenty week span.
package calendar

import (
	"fmt"
	"time"
)

// Week range for a semester. Dates outside the term saturate to the
// nearest bound rather than erroring.
const (
	MinWeek = 1
	MaxWeek = 20
)

// weekdayNames are Sunday-first, matching time.Weekday ordinals.
var weekdayNames = [7]string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

// slotTimeRanges maps each period-pair code to its wall-clock span.
var slotTimeRanges = map[string]string{
	"1,2":   "08:00-09:50",
	"3,4":   "10:10-12:00",
	"5,6":   "14:00-15:50",
	"7,8":   "16:10-18:00",
	"9,10":  "19:00-20:50",
	"11,12": "21:00-22:50",
}

// Calendar maps dates to semester week numbers relative to a fixed
// semester start date. The zero value is not usable; construct with
// New or Default. A Calendar is immutable and safe for concurrent use.
type Calendar struct {
	semesterStart time.Time
}

// New creates a Calendar starting at the given date. The time-of-day
// portion is ignored; only the calendar date matters.
func New(semesterStart time.Time) *Calendar {
	return &Calendar{semesterStart: truncateToDate(semesterStart)}
}

// Default returns the Calendar for the 2025 spring semester
// (first week starting Monday 2025-02-24).
func Default() *Calendar {
	return New(time.Date(2025, time.February, 24, 0, 0, 0, 0, time.Local))
}

// SemesterStart returns the first day of week 1.
func (c *Calendar) SemesterStart() time.Time {
	return c.semesterStart
}

// WeekOf returns the semester week number for the given date, clamped
// to [MinWeek, MaxWeek]. Dates before the semester start resolve to
// week 1 and dates beyond the term resolve to week 20; the clamping is
// a saturating policy, not an error.
func (c *Calendar) WeekOf(date time.Time) int {
	days := daysBetween(c.semesterStart, truncateToDate(date))
	week := floorDiv(days, 7) + 1
	if week < MinWeek {
		return MinWeek
	}
	if week > MaxWeek {
		return MaxWeek
	}
	return week
}

// WeekdayName returns the Chinese weekday label for the given date.
func WeekdayName(date time.Time) string {
	return weekdayNames[int(date.Weekday())]
}

// SlotTimeRange returns the wall-clock time span for a period-pair
// code such as "1,2". Unknown codes are echoed back unchanged.
func SlotTimeRange(code string) string {
	if span, ok := slotTimeRanges[code]; ok {
		return span
	}
	return code
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", date.Year(), int(date.Month()), date.Day())
}

// ParseDate parses a YYYY-MM-DD string in local time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from a to b (negative when b
// precedes a). Both arguments must already be date-truncated.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
