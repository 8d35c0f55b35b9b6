// reading_test.go - Serialization tests
package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReading_Payload(t *testing.T) {
	r := Reading{Day: "2024-01-01", Time: "12:00:00", Value: 21.5}

	assert.Equal(t, `{"sensor1": "21.50"}`, r.Payload())

	// Serialization is idempotent: byte-identical output for the same reading.
	assert.Equal(t, r.Payload(), r.Payload())
}

func TestReading_Row(t *testing.T) {
	tests := []struct {
		name    string
		reading Reading
		want    string
	}{
		{"half degree", Reading{Day: "2024-01-01", Time: "12:00:00", Value: 21.5}, "2024-01-01,12:00:00,21.5\r\n"},
		{"whole degree", Reading{Day: "2024-06-15", Time: "08:30:00", Value: 20}, "2024-06-15,08:30:00,20\r\n"},
		{"negative", Reading{Day: "2024-12-24", Time: "23:59:59", Value: -3.25}, "2024-12-24,23:59:59,-3.25\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reading.Row())
		})
	}
}

func TestLatest(t *testing.T) {
	var l Latest

	_, ok := l.Get()
	assert.False(t, ok, "no reading before the first cycle")

	l.Set(Reading{Value: 21.5})
	r, ok := l.Get()
	assert.True(t, ok)
	assert.Equal(t, 21.5, r.Value)

	l.Set(Reading{Day: "2024-01-01", Time: "12:00:00", Value: 22})
	r, _ = l.Get()
	assert.Equal(t, 22.0, r.Value)
	assert.Equal(t, "2024-01-01", r.Day)
}
