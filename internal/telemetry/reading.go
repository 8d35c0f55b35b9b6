// Package telemetry ties sensor polling to wall-clock time, durable storage
// and the live broadcast channel.
package telemetry

import (
	"fmt"
	"strconv"
	"sync"
)

// Reading is a single timestamped sensor value. Day and Time are empty until
// the cycle's timestamp has been acquired.
type Reading struct {
	Day   string  // YYYY-MM-DD
	Time  string  // HH:MM:SS
	Value float64 // degrees Celsius
}

// Payload serializes the reading for the live channel. Serialization is
// pure: the same reading always yields byte-identical output.
func (r Reading) Payload() string {
	return fmt.Sprintf("{\"sensor1\": \"%.2f\"}", r.Value)
}

// Row serializes the reading as one CSV log row.
func (r Reading) Row() string {
	return r.Day + "," + r.Time + "," + strconv.FormatFloat(r.Value, 'f', -1, 64) + "\r\n"
}

// Latest is the slot holding the most recent reading. It is written only by
// the acquisition loop and read by the broadcaster on viewer requests, so
// access is mutex-guarded.
type Latest struct {
	mu      sync.RWMutex
	reading Reading
	ok      bool
}

// Set replaces the held reading.
func (l *Latest) Set(r Reading) {
	l.mu.Lock()
	l.reading = r
	l.ok = true
	l.mu.Unlock()
}

// Get returns the held reading, and false if no cycle has run yet.
func (l *Latest) Get() (Reading, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reading, l.ok
}
