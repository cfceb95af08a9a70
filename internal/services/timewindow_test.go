package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kc31/smsrelay/internal/models"
)

func TestStartTime_AllFilters(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter models.TimeFilter
		want   time.Time
	}{
		{"today", models.FilterToday, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"yesterday", models.FilterYesterday, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)},
		{"last 7 days", models.FilterLast7Days, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)},
		{"this month", models.FilterThisMonth, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"last month", models.FilterLastMonth, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StartTime(tc.filter, now))
		})
	}
}

func TestStartTime_MonthBoundary(t *testing.T) {
	// First of January: last month crosses the year boundary.
	now := time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)

	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), StartTime(models.FilterLastMonth, now))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), StartTime(models.FilterThisMonth, now))
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), StartTime(models.FilterYesterday, now))
}

func TestStartTime_UnknownFilterFallsBackToToday(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), StartTime(models.TimeFilter("bogus"), now))
}

func TestStartTime_PreservesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	now := time.Date(2024, 3, 15, 1, 0, 0, 0, loc)

	got := StartTime(models.FilterToday, now)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, loc).UnixMilli(), got.UnixMilli())
}
