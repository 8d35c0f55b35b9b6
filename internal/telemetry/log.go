package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
)

// Header is the fixed first row of the telemetry log file.
const Header = "Date,HH:mm:ss,Temperature in Celsius\r\n"

// Log appends readings to the durable CSV file. Rows are append-only and
// never rewritten or reordered.
type Log struct {
	path string
}

// NewLog creates a Log backed by the file at path.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Init creates the log file with its header row if and only if it does not
// already exist. An existing file is left untouched.
func (l *Log) Init() error {
	if _, err := os.Stat(l.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking log file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	if err := os.WriteFile(l.path, []byte(Header), 0644); err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	return nil
}

// Append writes one reading as a CSV row using a scoped
// open-append-write-close sequence.
func (l *Log) Append(r Reading) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log file for appending: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(r.Row()); err != nil {
		return fmt.Errorf("appending log row: %w", err)
	}
	return nil
}
