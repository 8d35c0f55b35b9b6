// clock_test.go - Tests for the time source
package clock

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyAuthority fails a scripted number of times before succeeding.
type flakyAuthority struct {
	failures int
	calls    int
	at       time.Time
}

func (a *flakyAuthority) Now() (time.Time, error) {
	a.calls++
	if a.calls <= a.failures {
		return time.Time{}, errors.New("no response")
	}
	return a.at, nil
}

func TestSource_Stamp(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("splits day and time of day", func(t *testing.T) {
		src := NewSource(&flakyAuthority{at: at}, 5)

		day, timeOfDay, err := src.Stamp()
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01", day)
		assert.Equal(t, "12:00:00", timeOfDay)
	})

	t.Run("retries failed syncs until success", func(t *testing.T) {
		authority := &flakyAuthority{failures: 3, at: at}
		src := NewSource(authority, 5)

		day, _, err := src.Stamp()
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01", day)
		assert.Equal(t, 4, authority.calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		authority := &flakyAuthority{failures: 10, at: at}
		src := NewSource(authority, 5)

		_, _, err := src.Stamp()
		assert.Error(t, err)
		assert.Equal(t, 5, authority.calls)
	})

	t.Run("retry bound below one is clamped", func(t *testing.T) {
		authority := &flakyAuthority{at: at}
		src := NewSource(authority, 0)

		_, _, err := src.Stamp()
		assert.NoError(t, err)
		assert.Equal(t, 1, authority.calls)
	})
}

func TestSplitTimestamp(t *testing.T) {
	tests := []struct {
		in        string
		day       string
		timeOfDay string
	}{
		{"2018-05-28T16:00:13Z", "2018-05-28", "16:00:13"},
		{"2024-12-31T23:59:59Z", "2024-12-31", "23:59:59"},
		{"no-delimiter", "no-delimiter", ""},
	}

	for _, tt := range tests {
		day, timeOfDay := splitTimestamp(tt.in)
		assert.Equal(t, tt.day, day)
		assert.Equal(t, tt.timeOfDay, timeOfDay)
	}
}
