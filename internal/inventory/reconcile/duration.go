// Package reconcile derives inventory views, stock-health statuses and
// invoices from a catalog snapshot and a deployment snapshot. Every function
// is pure: inputs are read, never modified, and all results are rebuilt on
// each call.
package reconcile

import (
	"math"
	"strings"
	"time"

	"signyard/pkg/models"
)

// TotalDays returns the inclusive number of calendar days from start to end,
// so a deployment starting and ending on the same day lasts 1 day. It returns
// 0 when either date cannot be parsed or end is before start.
func TotalDays(start, end string) int {
	startDate, ok := parseDate(start)
	if !ok {
		return 0
	}
	endDate, ok := parseDate(end)
	if !ok {
		return 0
	}
	if endDate.Before(startDate) {
		return 0
	}

	// Ceil absorbs any drift left by zone offsets in RFC3339 input.
	days := int(math.Ceil(endDate.Sub(startDate).Hours()/24)) + 1

	return max(1, days)
}

// parseDate accepts a plain calendar date or an RFC3339 timestamp and
// truncates it to midnight of its calendar day.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)

	if date, err := time.Parse(models.DateLayout, value); err == nil {
		return date, true
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return midnight(ts), true
	}

	return time.Time{}, false
}

func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
