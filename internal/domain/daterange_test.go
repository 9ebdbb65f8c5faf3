package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRange(t *testing.T) {
	r, err := NewDateRange(time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), time.Date(2024, 1, 3, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 1), r.From)
	assert.Equal(t, date(2024, 1, 3), r.To)
	assert.Equal(t, date(2024, 1, 4), r.EndExclusive())
	assert.Len(t, r.Days(), 3)

	_, err = NewDateRange(date(2024, 1, 2), date(2024, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestDateRangeContainsIsInclusive(t *testing.T) {
	r := DateRange{From: date(2024, 1, 1), To: date(2024, 1, 31)}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"first day midnight", date(2024, 1, 1), true},
		{"last day late", time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), true},
		{"day before", time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), false},
		{"day after", date(2024, 2, 1), false},
		{"other zone rolls into next utc day", time.Date(2024, 1, 31, 20, 0, 0, 0, time.FixedZone("EST", -5*3600)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.at))
		})
	}
}

func TestDateRangeOverlaps(t *testing.T) {
	base := DateRange{From: date(2024, 1, 10), To: date(2024, 1, 20)}

	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"inside", DateRange{From: date(2024, 1, 12), To: date(2024, 1, 15)}, true},
		{"touching start", DateRange{From: date(2024, 1, 1), To: date(2024, 1, 10)}, true},
		{"touching end", DateRange{From: date(2024, 1, 20), To: date(2024, 1, 25)}, true},
		{"before", DateRange{From: date(2024, 1, 1), To: date(2024, 1, 9)}, false},
		{"after", DateRange{From: date(2024, 1, 21), To: date(2024, 1, 30)}, false},
		{"covering", DateRange{From: date(2024, 1, 1), To: date(2024, 2, 1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestDateRangeSpansMoreThan(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		n        int
		want     bool
	}{
		{"single day", date(2024, 1, 1), date(2024, 1, 1), 1, false},
		{"two days over one", date(2024, 1, 1), date(2024, 1, 2), 1, true},
		{"leap year fits", date(2024, 1, 1), date(2024, 12, 31), 366, false},
		{"one day too many", date(2024, 1, 1), date(2025, 1, 1), 366, true},
		{"whole calendar", date(1, 1, 1), date(9999, 12, 31), 366, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewDateRange(tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.SpansMoreThan(tt.n))
		})
	}
}
