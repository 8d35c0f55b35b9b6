// Package creds persists the node's network credentials.
//
// Each field lives in its own file under the store directory, so fields are
// written independently and a partially provisioned node still loads the
// fields it has.
package creds

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Field identifies one persisted credential value.
type Field string

// Logical paths of the four persisted fields.
const (
	FieldSSID    Field = "ssid"
	FieldPass    Field = "pass"
	FieldIP      Field = "ip"
	FieldGateway Field = "gateway"
)

// Fields lists every persisted field in submission order.
var Fields = []Field{FieldSSID, FieldPass, FieldIP, FieldGateway}

// Credentials holds the values needed to join a network in station mode.
type Credentials struct {
	SSID    string
	Pass    string
	IP      string
	Gateway string
}

// StationReady reports whether a station-mode connection may be attempted.
// SSID and static IP are required; password and gateway are not.
func (c Credentials) StationReady() bool {
	return c.SSID != "" && c.IP != ""
}

// Store defines the interface for credential persistence.
type Store interface {
	Load() Credentials
	Save(field Field, value string) error
}

// FileStore implements Store on the local filesystem.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating credentials directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Load reads all four fields. A missing or unreadable field degrades to the
// empty string; Load never fails the caller.
func (s *FileStore) Load() Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Credentials{
		SSID:    s.readField(FieldSSID),
		Pass:    s.readField(FieldPass),
		IP:      s.readField(FieldIP),
		Gateway: s.readField(FieldGateway),
	}
}

// Save writes one field durably. The write is synced to disk before Save
// returns, so it is visible to the next Load even across a restart.
func (s *FileStore) Save(field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path(field), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("opening %s for writing: %w", field, err)
	}

	if _, err := f.WriteString(value); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", field, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing %s: %w", field, err)
	}
	return f.Close()
}

func (s *FileStore) readField(field Field) string {
	data, err := os.ReadFile(s.path(field))
	if err != nil {
		return ""
	}
	// Tolerate a trailing newline from hand-edited files.
	return strings.TrimRight(string(data), "\r\n")
}

func (s *FileStore) path(field Field) string {
	return filepath.Join(s.dir, string(field))
}
