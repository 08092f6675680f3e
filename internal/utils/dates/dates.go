// Package dates holds the calendar arithmetic used by balance computation and
// reporting: month boundaries and bucket iteration between two dates.
//
// All functions operate on "calendar dates": time.Time values normalized to
// midnight UTC. Callers are expected to normalize at the boundary (handlers
// parse YYYY-MM-DD into exactly this form).
package dates

import (
	"fmt"
	"time"
)

// Granularity selects the bucket size for history and cashflow series.
type Granularity string

const (
	Daily   Granularity = "day"
	Weekly  Granularity = "week"
	Monthly Granularity = "month"
)

// ParseGranularity validates a granularity string from a request.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case Daily, Weekly, Monthly:
		return Granularity(s), nil
	default:
		return "", fmt.Errorf("granularity must be one of: day, week, month (got %q)", s)
	}
}

// Normalize truncates t to its calendar date at midnight UTC.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FirstOfMonth returns the first day of the month containing d.
// Snapshots are always keyed to this boundary.
func FirstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth returns the first day of the month after the one containing d.
func NextMonth(d time.Time) time.Time {
	return FirstOfMonth(d).AddDate(0, 1, 0)
}

// Bucket is one slot of a reporting series. Start labels the bucket; End is
// the last calendar day it covers (inclusive, capped at the series end).
type Bucket struct {
	Start time.Time
	End   time.Time
}

// Buckets materializes the ordered bucket sequence between from and to
// (both inclusive) at the given granularity. The sequence is finite and
// complete: no bucket is skipped even if it will hold zero transactions.
//
//   - day: one bucket per day.
//   - week: 7-day strides starting at from.
//   - month: one bucket per first-of-month boundary, starting at the first
//     such boundary on or after from.
//
// Returns nil when from is after to; callers reject that earlier.
func Buckets(from, to time.Time, g Granularity) []Bucket {
	if from.After(to) {
		return nil
	}

	var buckets []Bucket
	switch g {
	case Daily:
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			buckets = append(buckets, Bucket{Start: d, End: d})
		}
	case Weekly:
		for d := from; !d.After(to); d = d.AddDate(0, 0, 7) {
			end := d.AddDate(0, 0, 6)
			if end.After(to) {
				end = to
			}
			buckets = append(buckets, Bucket{Start: d, End: end})
		}
	case Monthly:
		start := FirstOfMonth(from)
		if start.Before(from) {
			start = NextMonth(from)
		}
		for d := start; !d.After(to); d = NextMonth(d) {
			end := NextMonth(d).AddDate(0, 0, -1)
			if end.After(to) {
				end = to
			}
			buckets = append(buckets, Bucket{Start: d, End: end})
		}
	}
	return buckets
}
