package netlink

import (
	"fmt"
	"sync"
	"time"

	"github.com/lassejon/tempnode/internal/creds"
)

// Manager is the connectivity state machine. It is evaluated exactly once
// per boot: Establish either reaches Connected or falls back to hosting an
// access point, and a new attempt requires a device restart.
type Manager struct {
	network      Network
	apName       string
	timeout      time.Duration
	pollInterval time.Duration

	mu    sync.Mutex
	state State
}

// NewManager creates a Manager around the given link driver.
func NewManager(network Network, apName string, timeout, pollInterval time.Duration) *Manager {
	return &Manager{
		network:      network,
		apName:       apName,
		timeout:      timeout,
		pollInterval: pollInterval,
		state:        Disconnected,
	}
}

// State returns the current connectivity state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	prev := m.state
	m.state = s
	m.mu.Unlock()
	fmt.Printf("[Network] %s -> %s\n", prev, s)
}

// Establish runs the boot-time connectivity decision and returns the
// terminal state. With incomplete credentials no connection is attempted;
// otherwise a station connection is tried within the configured timeout,
// and any failure along the way falls back to the access point.
func (m *Manager) Establish(c creds.Credentials) State {
	if !c.StationReady() {
		fmt.Println("[Network] Undefined SSID or static address, skipping station mode")
		return m.fallback()
	}

	m.setState(ConnectingStation)

	if err := m.network.ConfigureStation(c.IP, c.Gateway); err != nil {
		fmt.Printf("[Network] Station configuration failed: %v\n", err)
		return m.fallback()
	}

	if err := m.network.Connect(c.SSID, c.Pass); err != nil {
		fmt.Printf("[Network] Connection attempt failed to start: %v\n", err)
		return m.fallback()
	}

	deadline := time.Now().Add(m.timeout)
	for !m.network.IsConnected() {
		if time.Now().After(deadline) {
			fmt.Printf("[Network] Failed to connect to %q within %v\n", c.SSID, m.timeout)
			return m.fallback()
		}
		time.Sleep(m.pollInterval)
	}

	m.setState(Connected)
	return Connected
}

// fallback brings up the unsecured provisioning access point. An error from
// the link driver is logged only: the HTTP provisioning surface is served
// regardless, so the node stays reconfigurable.
func (m *Manager) fallback() State {
	if err := m.network.StartAccessPoint(m.apName); err != nil {
		fmt.Printf("[Network] Failed to start access point %q: %v\n", m.apName, err)
	}
	m.setState(AccessPointFallback)
	return AccessPointFallback
}
