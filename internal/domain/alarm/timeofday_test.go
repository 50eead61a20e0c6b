package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestParseTimeOfDay covers accepted input and both failure kinds.
func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	got, err := ParseTimeOfDay("07", " 5", "0")
	require.NoError(t, err)
	require.Equal(t, TimeOfDay{Hour: 7, Minute: 5, Second: 0}, got)
	require.Equal(t, "07:05:00", got.String())

	cases := []struct {
		name                 string
		hour, minute, second string
		field                string
	}{
		{name: "hour out of range", hour: "24", minute: "0", second: "0", field: "hour"},
		{name: "negative minute", hour: "1", minute: "-1", second: "0", field: "minute"},
		{name: "second out of range", hour: "1", minute: "1", second: "60", field: "second"},
		{name: "not a number", hour: "seven", minute: "0", second: "0", field: "hour"},
		{name: "empty", hour: "", minute: "0", second: "0", field: "hour"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseTimeOfDay(tc.hour, tc.minute, tc.second)
			require.ErrorIs(t, err, ErrValidation)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tc.field, validationErr.Field)
		})
	}
}

// TestParseClock checks the HH:MM:SS and HH:MM forms.
func TestParseClock(t *testing.T) {
	t.Parallel()

	got, err := ParseClock("23:59:59")
	require.NoError(t, err)
	require.Equal(t, TimeOfDay{Hour: 23, Minute: 59, Second: 59}, got)

	got, err = ParseClock("6:30")
	require.NoError(t, err)
	require.Equal(t, TimeOfDay{Hour: 6, Minute: 30}, got)

	_, err = ParseClock("063000")
	require.ErrorIs(t, err, ErrValidation)

	_, err = ParseClock("1:2:3:4")
	require.ErrorIs(t, err, ErrValidation)
}

// TestTimeOfDayNext verifies same-day scheduling and the roll-forward to tomorrow.
func TestTimeOfDayNext(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 12, 30, 15, 400_000_000, time.UTC)

	// Later today.
	later := TimeOfDay{Hour: 13, Minute: 0, Second: 0}.Next(now)
	require.Equal(t, time.Date(2026, 10, 18, 13, 0, 0, 0, time.UTC), later)

	// The current second is already under way, so it rolls to tomorrow.
	same := TimeOfDay{Hour: 12, Minute: 30, Second: 15}.Next(now)
	require.Equal(t, time.Date(2026, 10, 19, 12, 30, 15, 0, time.UTC), same)
	require.True(t, same.After(now))

	// Exactly on the second counts as today.
	onTheSecond := time.Date(2026, 10, 18, 12, 30, 15, 0, time.UTC)
	require.Equal(t, onTheSecond, TimeOfDay{Hour: 12, Minute: 30, Second: 15}.Next(onTheSecond))

	// Already passed: exactly 24 hours after the naive same-day time.
	naive := time.Date(2026, 10, 18, 12, 30, 14, 0, time.UTC)
	passed := TimeOfDay{Hour: 12, Minute: 30, Second: 14}.Next(now)
	require.Equal(t, naive.Add(24*time.Hour), passed)

	// Month boundary.
	endOfMonth := time.Date(2026, 10, 31, 23, 0, 0, 0, time.UTC)
	require.Equal(t,
		time.Date(2026, 11, 1, 6, 0, 0, 0, time.UTC),
		TimeOfDay{Hour: 6}.Next(endOfMonth),
	)
}

// TestTimeOfDayNext_Properties sweeps every hour and a few minutes for the invariants.
func TestTimeOfDayNext_Properties(t *testing.T) {
	t.Parallel()

	for _, nanos := range []int{0, 1, 500_000_000, 999_999_999} {
		now := time.Date(2026, 3, 1, 9, 41, 7, nanos, time.UTC)

		for hour := range 24 {
			for _, minute := range []int{0, 17, 41, 59} {
				for _, second := range []int{0, 6, 7, 8, 59} {
					tod := TimeOfDay{Hour: hour, Minute: minute, Second: second}
					got := tod.Next(now)

					require.False(t, got.Before(now), "%s scheduled in the past at %s", tod, now)
					require.Less(t, got.Sub(now), 24*time.Hour)
					require.Equal(t, hour, got.Hour())
					require.Equal(t, minute, got.Minute())
					require.Equal(t, second, got.Second())
				}
			}
		}
	}
}
