package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandRecurringDates_SameMonth(t *testing.T) {
	// Первый вторник октября 2025 - 7 октября; вторников в октябре пять
	start := time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)

	dates := expandRecurringDates(start, 0)

	require.Len(t, dates, 4)
	assert.Equal(t, start, dates[0])
	for i, d := range dates {
		assert.Equal(t, time.October, d.Month())
		assert.Equal(t, time.Tuesday, d.Weekday())
		assert.Equal(t, start.AddDate(0, 0, 7*i), d)
	}
}

func TestExpandRecurringDates_LastWeekOfMonth(t *testing.T) {
	// 28 октября - следующее повторение уже в ноябре
	start := time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC)

	dates := expandRecurringDates(start, 0)
	assert.Equal(t, []time.Time{start}, dates)
}

func TestExpandRecurringDates_YearBoundary(t *testing.T) {
	// Декабрь не перетекает в январь следующего года
	start := time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC)

	dates := expandRecurringDates(start, 0)
	assert.Equal(t, []time.Time{start}, dates)
}

func TestExpandRecurringDates_ExplicitHorizon(t *testing.T) {
	start := time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC)

	dates := expandRecurringDates(start, 6)

	require.Len(t, dates, 6)
	for i, d := range dates {
		assert.Equal(t, start.AddDate(0, 0, 7*i), d)
	}
	// Явный горизонт игнорирует границу месяца
	assert.Equal(t, time.December, dates[5].Month())
}
