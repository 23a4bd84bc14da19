package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggl-cli/internal/errors"
)

// A Wednesday afternoon, used as the anchor for keyword resolution.
var wednesday = time.Date(2021, 11, 17, 15, 42, 10, 0, time.UTC)

func TestResolveRange_Keywords(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{
			name:          "should resolve today to the current calendar day",
			token:         "today",
			expectedStart: time.Date(2021, 11, 17, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2021, 11, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "should default an empty token to today",
			token:         "",
			expectedStart: time.Date(2021, 11, 17, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2021, 11, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "should resolve yesterday",
			token:         "yesterday",
			expectedStart: time.Date(2021, 11, 16, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2021, 11, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "should resolve this-week to monday through next monday",
			token:         "this-week",
			expectedStart: time.Date(2021, 11, 15, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2021, 11, 22, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "should resolve last-week",
			token:         "last-week",
			expectedStart: time.Date(2021, 11, 8, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2021, 11, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "should resolve this-month",
			token:         "this-month",
			expectedStart: time.Date(2021, 11, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2021, 12, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "should resolve last-month",
			token:         "last-month",
			expectedStart: time.Date(2021, 10, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2021, 11, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "should be case insensitive",
			token:         "This-Week",
			expectedStart: time.Date(2021, 11, 15, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2021, 11, 22, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ResolveRange(tt.token, wednesday)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStart, result.Start)
			assert.Equal(t, tt.expectedEnd, result.End)
		})
	}
}

func TestResolveRange_TodayIsAlwaysTwentyFourHours(t *testing.T) {
	instants := []time.Time{
		time.Date(2021, 11, 17, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 11, 17, 12, 0, 0, 0, time.UTC),
		time.Date(2021, 11, 17, 23, 59, 59, 0, time.UTC),
	}

	for _, now := range instants {
		result, err := ResolveRange("today", now)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2021, 11, 17, 0, 0, 0, 0, time.UTC), result.Start)
		assert.Equal(t, 24*time.Hour, result.End.Sub(result.Start))
	}
}

func TestResolveRange_Explicit(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{
			name:          "should treat the end date of a pair as inclusive",
			token:         "2021-11-01|2021-11-07",
			expectedStart: time.Date(2021, 11, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2021, 11, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "should normalize a reversed pair by swapping",
			token:         "2021-11-07|2021-11-01",
			expectedStart: time.Date(2021, 11, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2021, 11, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "should resolve a single date to one day",
			token:         "2021-11-03",
			expectedStart: time.Date(2021, 11, 3, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2021, 11, 4, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ResolveRange(tt.token, wednesday)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStart, result.Start)
			assert.Equal(t, tt.expectedEnd, result.End)
		})
	}

	t.Run("should span seven days for a one week pair", func(t *testing.T) {
		result, err := ResolveRange("2021-11-01|2021-11-07", wednesday)

		require.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, result.End.Sub(result.Start))
	})
}

func TestResolveRange_Invalid(t *testing.T) {
	tokens := []string{
		"fortnight",
		"2021-13-01",
		"2021-11-01|never",
		"yesterday|today",
		"01.11.2021",
	}

	for _, token := range tokens {
		t.Run(token, func(t *testing.T) {
			_, err := ResolveRange(token, wednesday)

			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidRange))
			assert.Contains(t, err.Error(), token)
		})
	}
}

func TestTimeRange_Contains(t *testing.T) {
	r, err := ResolveRange("today", wednesday)
	require.NoError(t, err)

	assert.True(t, r.Contains(r.Start), "start boundary is inside")
	assert.True(t, r.Contains(wednesday))
	assert.False(t, r.Contains(r.End), "end boundary is outside")
	assert.False(t, r.Contains(r.Start.Add(-time.Second)))
}

func TestTimeRange_Days(t *testing.T) {
	r, err := ResolveRange("2021-11-01|2021-11-03", wednesday)
	require.NoError(t, err)

	days := r.Days()

	require.Len(t, days, 3)
	assert.Equal(t, time.Date(2021, 11, 1, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2021, 11, 3, 0, 0, 0, 0, time.UTC), days[2])
}
