// log_test.go - Tests for the durable CSV log
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_Init(t *testing.T) {
	t.Run("creates file with header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		l := NewLog(path)

		require.NoError(t, l.Init())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Date,HH:mm:ss,Temperature in Celsius\r\n", string(data))
	})

	t.Run("leaves existing file untouched", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		l := NewLog(path)

		require.NoError(t, l.Init())
		require.NoError(t, l.Append(Reading{Day: "2024-01-01", Time: "12:00:00", Value: 21.5}))

		// Simulated reboot: Init again on the same file.
		require.NoError(t, l.Init())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, Header+"2024-01-01,12:00:00,21.5\r\n", string(data))
	})

	t.Run("creates missing parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "data.csv")

		require.NoError(t, NewLog(path).Init())

		_, err := os.Stat(path)
		assert.NoError(t, err)
	})
}

func TestLog_AppendIsMonotonic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	l := NewLog(path)
	require.NoError(t, l.Init())

	const cycles = 5
	for i := 0; i < cycles; i++ {
		r := Reading{Day: "2024-01-01", Time: fmt.Sprintf("12:00:0%d", i), Value: 20 + float64(i)}
		require.NoError(t, l.Append(r))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSuffix(string(data), "\r\n"), "\r\n")
	require.Len(t, rows, cycles+1, "header plus one row per cycle")
	assert.Equal(t, "Date,HH:mm:ss,Temperature in Celsius", rows[0])

	// Rows appear in chronological order of cycle execution.
	for i := 0; i < cycles; i++ {
		assert.Equal(t, fmt.Sprintf("2024-01-01,12:00:0%d,%d", i, 20+i), rows[i+1])
	}
}

func TestLog_AppendWithoutInit(t *testing.T) {
	// Append creates the file if Init was skipped; the header is Init's job
	// only, so none is written here.
	path := filepath.Join(t.TempDir(), "data.csv")
	l := NewLog(path)

	require.NoError(t, l.Append(Reading{Day: "2024-01-01", Time: "12:00:00", Value: 21.5}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01,12:00:00,21.5\r\n", string(data))
}
