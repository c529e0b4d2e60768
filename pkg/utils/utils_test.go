package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{
			name:     "mid month",
			start:    date(2024, 1, 15),
			months:   1,
			expected: date(2024, 2, 15),
		},
		{
			name:     "end of january clamps to leap february",
			start:    date(2024, 1, 31),
			months:   1,
			expected: date(2024, 2, 29),
		},
		{
			name:     "end of january clamps to february",
			start:    date(2023, 1, 31),
			months:   1,
			expected: date(2023, 2, 28),
		},
		{
			name:     "year rollover",
			start:    date(2024, 12, 10),
			months:   1,
			expected: date(2025, 1, 10),
		},
		{
			name:     "31st into 30 day month",
			start:    date(2024, 3, 31),
			months:   1,
			expected: date(2024, 4, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonths(tt.start, tt.months))
		})
	}
}

func TestDaysInclusive(t *testing.T) {
	assert.Equal(t, 1, DaysInclusive(date(2024, 1, 1), date(2024, 1, 1)))
	assert.Equal(t, 4, DaysInclusive(date(2024, 1, 1), date(2024, 1, 4)))
	assert.Equal(t, 0, DaysInclusive(date(2024, 1, 5), date(2024, 1, 4)))
	assert.Equal(t, 366, DaysInclusive(date(2024, 1, 1), date(2024, 12, 31)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 29), d)

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, 5, 6, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, date(2024, 5, 6), DateOf(ts))
}

func TestProgressPercentage(t *testing.T) {
	assert.True(t, ProgressPercentage(1, 3).Equal(decimal.RequireFromString("33.33")))
	assert.True(t, ProgressPercentage(500, 100).Equal(decimal.NewFromInt(100)))
	assert.True(t, ProgressPercentage(10, 0).Equal(decimal.Zero))
}
