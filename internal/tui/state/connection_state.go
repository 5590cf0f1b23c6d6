package state

// ConnectionStatus represents the current connection state to the daemon
type ConnectionStatus int

const (
	// Offline means no daemon was reachable at startup; the board only
	// refreshes after local changes.
	Offline ConnectionStatus = iota
	Connected
	Disconnected
)

// String returns a human-readable string representation of the connection status
func (cs ConnectionStatus) String() string {
	switch cs {
	case Connected:
		return "live"
	case Disconnected:
		return "disconnected"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}
