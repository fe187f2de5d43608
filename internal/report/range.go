// Package report aggregates client records into dashboard summaries.
package report

import (
	"time"

	"smart-fuel-crm/internal/repository"
)

type Range string

const (
	ThisMonth  Range = "this_month"
	LastMonth  Range = "last_month"
	Last90Days Range = "last_90_days"
	AllTime    Range = "all_time"
)

// ParseRange falls back to ThisMonth for unknown input.
func ParseRange(s string) Range {
	switch r := Range(s); r {
	case ThisMonth, LastMonth, Last90Days, AllTime:
		return r
	}
	return ThisMonth
}

// Resolve turns the range into inclusive bounds in now's location. AllTime has none.
func (r Range) Resolve(now time.Time) repository.Bounds {
	loc := now.Location()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), loc)

	var start, end time.Time
	switch r {
	case AllTime:
		return repository.Bounds{}
	case LastMonth:
		start = startOfMonth.AddDate(0, -1, 0)
		end = startOfMonth.Add(-time.Nanosecond)
	case Last90Days:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -90)
		end = endOfDay
	default:
		start = startOfMonth
		end = startOfMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}
	return repository.Bounds{Start: &start, End: &end}
}
