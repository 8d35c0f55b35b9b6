// Package netlink decides how the node reaches the network: join an existing
// network in station mode, or fall back to hosting its own access point so it
// can always be reconfigured.
package netlink

import (
	"fmt"
	"net"
	"os"
)

// Network abstracts the wireless link driver.
type Network interface {
	// ConfigureStation applies the static address and gateway for station mode.
	ConfigureStation(ip, gateway string) error
	// Connect begins a station-mode connection attempt. It does not block;
	// progress is observed through IsConnected.
	Connect(ssid, pass string) error
	// IsConnected reports whether the station link is up.
	IsConnected() bool
	// StartAccessPoint brings up an unsecured access point with the given name.
	StartAccessPoint(name string) error
}

// Restarter reboots the device.
type Restarter interface {
	Restart()
}

// State is the connectivity state of the node. Connected and
// AccessPointFallback are terminal for a boot session.
type State int

const (
	Disconnected State = iota
	ConnectingStation
	Connected
	AccessPointFallback
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case ConnectingStation:
		return "connecting"
	case Connected:
		return "connected"
	case AccessPointFallback:
		return "access-point"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// HostLink is a Network implementation for running the node on an ordinary
// Linux host, where the operating system already manages the actual link.
// Station configuration validates the requested addresses and the connection
// is considered established immediately; the access point is expected to be
// provided by the host.
type HostLink struct {
	connected bool
}

// ConfigureStation validates the static address and gateway.
func (l *HostLink) ConfigureStation(ip, gateway string) error {
	if net.ParseIP(ip) == nil {
		return fmt.Errorf("invalid static address %q", ip)
	}
	if gateway != "" && net.ParseIP(gateway) == nil {
		return fmt.Errorf("invalid gateway address %q", gateway)
	}
	return nil
}

// Connect marks the station link as up; the host's networking stack carries
// the actual traffic.
func (l *HostLink) Connect(ssid, pass string) error {
	fmt.Printf("[Network] Joining %q via host networking\n", ssid)
	l.connected = true
	return nil
}

// IsConnected reports the simulated station link state.
func (l *HostLink) IsConnected() bool {
	return l.connected
}

// StartAccessPoint logs that the host must provide the access point.
func (l *HostLink) StartAccessPoint(name string) error {
	fmt.Printf("[Network] Access point %q must be hosted by the OS (hostapd or equivalent)\n", name)
	return nil
}

// ProcessRestarter restarts the device by exiting the process, relying on a
// supervisor to relaunch it.
type ProcessRestarter struct{}

// Restart exits the process.
func (ProcessRestarter) Restart() {
	fmt.Println("[Device] Restarting")
	os.Exit(0)
}
