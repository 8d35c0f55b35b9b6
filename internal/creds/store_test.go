// store_test.go - Tests for the credential store
package creds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_LoadDefaults(t *testing.T) {
	t.Run("missing fields degrade to empty strings", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		c := store.Load()
		assert.Equal(t, Credentials{}, c)
		assert.False(t, c.StationReady())
	})

	t.Run("creates store directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "credentials")

		_, err := NewFileStore(dir)
		require.NoError(t, err)

		_, err = os.Stat(dir)
		assert.NoError(t, err)
	})
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(FieldSSID, "home"))
	require.NoError(t, store.Save(FieldPass, "secret pass"))
	require.NoError(t, store.Save(FieldIP, "192.168.1.50"))
	require.NoError(t, store.Save(FieldGateway, "192.168.1.1"))

	// Simulated restart: a fresh store over the same directory.
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	c := reopened.Load()
	assert.Equal(t, "home", c.SSID)
	assert.Equal(t, "secret pass", c.Pass)
	assert.Equal(t, "192.168.1.50", c.IP)
	assert.Equal(t, "192.168.1.1", c.Gateway)
	assert.True(t, c.StationReady())
}

func TestFileStore_IndependentFields(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(FieldPass, "old-pass"))
	require.NoError(t, store.Save(FieldSSID, "home"))
	require.NoError(t, store.Save(FieldIP, "192.168.1.50"))

	// Saving one field must not disturb the others.
	require.NoError(t, store.Save(FieldSSID, "office"))

	c := store.Load()
	assert.Equal(t, "office", c.SSID)
	assert.Equal(t, "old-pass", c.Pass)
	assert.Equal(t, "192.168.1.50", c.IP)
	assert.Equal(t, "", c.Gateway)
}

func TestFileStore_OverwritesInPlace(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(FieldSSID, "a-much-longer-network-name"))
	require.NoError(t, store.Save(FieldSSID, "short"))

	assert.Equal(t, "short", store.Load().SSID)
}

func TestCredentials_StationReady(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{"all fields set", Credentials{SSID: "home", Pass: "p", IP: "192.168.1.50", Gateway: "192.168.1.1"}, true},
		{"no password or gateway", Credentials{SSID: "home", IP: "192.168.1.50"}, true},
		{"missing ssid", Credentials{IP: "192.168.1.50"}, false},
		{"missing ip", Credentials{SSID: "home"}, false},
		{"all empty", Credentials{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.creds.StationReady())
		})
	}
}
