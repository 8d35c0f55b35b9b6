// Package clock provides the node's synchronized wall-clock time source.
package clock

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/ntp"
)

// Authority is a network time authority.
type Authority interface {
	Now() (time.Time, error)
}

// NTPAuthority queries an NTP server and applies a fixed UTC offset.
type NTPAuthority struct {
	Host   string
	Offset time.Duration
}

// Now returns the current synchronized time.
func (a NTPAuthority) Now() (time.Time, error) {
	t, err := ntp.Time(a.Host)
	if err != nil {
		return time.Time{}, fmt.Errorf("querying %s: %w", a.Host, err)
	}
	return t.UTC().Add(a.Offset), nil
}

// Source produces date and time-of-day stamps for telemetry rows.
type Source struct {
	authority  Authority
	maxRetries int
}

// NewSource creates a Source. maxRetries bounds how many sync attempts a
// single Stamp call may make; values below 1 are treated as 1.
func NewSource(authority Authority, maxRetries int) *Source {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Source{authority: authority, maxRetries: maxRetries}
}

// Stamp synchronizes against the time authority, retrying failed syncs up to
// the configured maximum, and returns the day ("2006-01-02") and time of day
// ("15:04:05") components. An error means every attempt failed; the caller
// decides the fallback.
func (s *Source) Stamp() (day, timeOfDay string, err error) {
	var t time.Time
	for attempt := 1; ; attempt++ {
		t, err = s.authority.Now()
		if err == nil {
			break
		}
		if attempt >= s.maxRetries {
			return "", "", fmt.Errorf("time sync failed after %d attempts: %w", attempt, err)
		}
	}
	day, timeOfDay = splitTimestamp(t.Format("2006-01-02T15:04:05Z"))
	return day, timeOfDay, nil
}

// splitTimestamp splits a combined date-time string like
// "2018-05-28T16:00:13Z" on the date/time delimiter and trims the trailing
// zone marker.
func splitTimestamp(formatted string) (string, string) {
	i := strings.IndexByte(formatted, 'T')
	if i < 0 {
		return formatted, ""
	}
	return formatted[:i], strings.TrimSuffix(formatted[i+1:], "Z")
}
