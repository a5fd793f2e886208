package kernel_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("should parse a valid YYYY-MM-DD date", func(t *testing.T) {
		d, err := kernel.ParseDate("2025-03-14")

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, "2025-03-14", d.String())
	})

	t.Run("should reject other formats", func(t *testing.T) {
		testCases := []struct {
			name  string
			input string
		}{
			{"empty", ""},
			{"slashes", "2025/03/14"},
			{"day first", "14-03-2025"},
			{"with time", "2025-03-14T10:00:00Z"},
			{"month thirteen", "2025-13-01"},
			{"garbage", "not-a-date"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.ParseDate(tc.input)

				require.Error(t, err)
				assert.Contains(t, err.Error(), "date")
			})
		}
	})
}

func TestDateFromTime(t *testing.T) {
	t.Run("should truncate to the calendar date in UTC", func(t *testing.T) {
		moment := time.Date(2025, 6, 30, 23, 45, 12, 0, time.UTC)

		d := kernel.DateFromTime(moment)

		assert.Equal(t, "2025-06-30", d.String())
		assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), d.Time())
	})
}

func TestDateComparisons(t *testing.T) {
	earlier, err := kernel.ParseDate("2025-01-01")
	require.NoError(t, err)
	later, err := kernel.ParseDate("2025-01-02")
	require.NoError(t, err)

	t.Run("before and after are strict", func(t *testing.T) {
		assert.True(t, earlier.Before(later))
		assert.False(t, later.Before(earlier))
		assert.False(t, earlier.Before(earlier))

		assert.True(t, later.After(earlier))
		assert.False(t, earlier.After(later))
	})

	t.Run("equality compares the calendar date", func(t *testing.T) {
		same, err := kernel.ParseDate("2025-01-01")
		require.NoError(t, err)

		assert.True(t, earlier.IsEqual(same))
		assert.False(t, earlier.IsEqual(later))
	})
}

func TestDateValidate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var d kernel.Date

		require.Error(t, d.Validate())
		assert.ErrorIs(t, d.Validate(), kernel.ErrDateIsNotConstructed)
	})

	t.Run("constructed dates are valid", func(t *testing.T) {
		assert.NoError(t, kernel.Today().Validate())
	})
}
