package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/lassejon/tempnode/internal/sensor"
)

// Broadcaster pushes a reading to every connected viewer.
type Broadcaster interface {
	BroadcastReading(Reading)
}

// Stamper provides the wall-clock day and time-of-day for a cycle.
type Stamper interface {
	Stamp() (day, timeOfDay string, err error)
}

// Sampler is the process-wide acquisition loop. Each cycle it reads the
// sensor, broadcasts the fresh value, acquires a timestamp and appends the
// row to the durable log - in that order, so viewers see live data before
// the potentially slow time sync.
type Sampler struct {
	probe  sensor.Sensor
	clock  Stamper
	log    *Log
	hub    Broadcaster
	period time.Duration
	latest Latest
}

// NewSampler creates a Sampler firing every period.
func NewSampler(probe sensor.Sensor, clock Stamper, log *Log, hub Broadcaster, period time.Duration) *Sampler {
	return &Sampler{
		probe:  probe,
		clock:  clock,
		log:    log,
		hub:    hub,
		period: period,
	}
}

// Latest returns the reading taken at the most recent acquisition.
func (s *Sampler) Latest() (Reading, bool) {
	return s.latest.Get()
}

// Run drives the acquisition cycle until ctx is cancelled.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cycle()
		}
	}
}

// Cycle performs one acquisition: sensor read, broadcast, timestamp, durable
// append. A failed sensor read skips the cycle; a failed timestamp skips
// only the append, so the live channel keeps flowing while the time
// authority is unreachable.
func (s *Sampler) Cycle() {
	value, err := s.probe.ReadTemperature()
	if err != nil {
		fmt.Printf("[Telemetry] Sensor read failed: %v\n", err)
		return
	}

	reading := Reading{Value: value}
	s.latest.Set(reading)
	s.hub.BroadcastReading(reading)

	day, timeOfDay, err := s.clock.Stamp()
	if err != nil {
		fmt.Printf("[Telemetry] %v, skipping log append this cycle\n", err)
		return
	}

	reading.Day, reading.Time = day, timeOfDay
	s.latest.Set(reading)

	if err := s.log.Append(reading); err != nil {
		fmt.Printf("[Telemetry] %v\n", err)
	}
}
