// Package sensor defines the temperature probe collaborator.
package sensor

import (
	"math/rand"
	"sync"
)

// Sensor reads the current temperature in degrees Celsius. The physical
// probe driver lives outside this repository; the node only needs this one
// operation.
type Sensor interface {
	ReadTemperature() (float64, error)
}

// Simulated is a Sensor producing a slowly drifting value around a base
// temperature, for running the node without probe hardware.
type Simulated struct {
	mu    sync.Mutex
	value float64
	base  float64
	rng   *rand.Rand
}

// NewSimulated creates a simulated probe centered on base.
func NewSimulated(base float64, seed int64) *Simulated {
	return &Simulated{
		value: base,
		base:  base,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// ReadTemperature returns the next simulated value.
func (s *Simulated) ReadTemperature() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Random walk with a mild pull back toward the base temperature.
	s.value += (s.rng.Float64()-0.5)*0.4 + (s.base-s.value)*0.05
	return s.value, nil
}
