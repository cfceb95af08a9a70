package services

import (
	"time"

	"github.com/kc31/smsrelay/internal/models"
)

// StartTime maps a named time-window filter to its lower-bound instant using
// local calendar semantics: local midnight of the relevant start date. The
// bound is used with a strict ">" comparison, and no upper bound is ever
// applied, so "yesterday" and "last month" include everything from their
// start date through now.
func StartTime(filter models.TimeFilter, now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch filter {
	case models.FilterYesterday:
		return midnight.AddDate(0, 0, -1)
	case models.FilterLast7Days:
		return midnight.AddDate(0, 0, -7)
	case models.FilterThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case models.FilterLastMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	default:
		// FilterToday and anything unrecognized.
		return midnight
	}
}
