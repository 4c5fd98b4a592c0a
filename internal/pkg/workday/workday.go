// Package workday holds the working-day calendar used to decide which daily
// reports are due. Only Saturday is special-cased when stepping backwards;
// Sunday is treated like any other day by the lookback helpers.
package workday

import (
	"time"
)

// DateLayout is the ISO calendar date layout used for report dates.
const DateLayout = "2006-01-02"

// IsWorkingDay reports whether date falls on Monday through Friday.
func IsWorkingDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// PreviousWorkingDay steps back one day, and one more if that lands on a
// Saturday. A Monday yields the preceding Sunday.
func PreviousWorkingDay(date time.Time) time.Time {
	prev := date.AddDate(0, 0, -1)
	if prev.Weekday() == time.Saturday {
		prev = prev.AddDate(0, 0, -1)
	}
	return prev
}

// TwoWorkingDaysAgo walks back one day at a time and counts every day that is
// not a Saturday. It returns the day on which the count reaches two.
func TwoWorkingDaysAgo(date time.Time) time.Time {
	d := date
	count := 0
	for count < 2 {
		d = d.AddDate(0, 0, -1)
		if d.Weekday() != time.Saturday {
			count++
		}
	}
	return d
}

// FormatDate renders the date's own calendar fields as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as midnight in loc. A nil loc means UTC.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// Today truncates now to midnight of its calendar day in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// AllowedSubmissionDates lists the dates a report may be submitted for on
// today: today, yesterday and, when today is a Sunday, the preceding Friday.
func AllowedSubmissionDates(today time.Time) []time.Time {
	dates := []time.Time{today, today.AddDate(0, 0, -1)}
	if today.Weekday() == time.Sunday {
		dates = append(dates, today.AddDate(0, 0, -2))
	}
	return dates
}

// IsAllowedSubmissionDate reports whether date is one of AllowedSubmissionDates(today).
func IsAllowedSubmissionDate(date, today time.Time) bool {
	target := FormatDate(date)
	for _, d := range AllowedSubmissionDates(today) {
		if FormatDate(d) == target {
			return true
		}
	}
	return false
}
