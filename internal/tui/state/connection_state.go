package state

import (
	"sync"
	"time"
)

// ConnectionStatus represents the current connection state to the notification broker
type ConnectionStatus int

const (
	Disabled ConnectionStatus = iota
	Connecting
	Connected
	Disconnected
)

// String returns a human-readable string representation of the connection status
func (cs ConnectionStatus) String() string {
	switch cs {
	case Disabled:
		return "Notifications off"
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	case Disconnected:
		return "Disconnected"
	default:
		return "Unknown"
	}
}

// ConnectionState tracks the broker connection and the last failure
type ConnectionState struct {
	mu      sync.RWMutex
	status  ConnectionStatus
	lastErr error
	since   time.Time
}

// NewConnectionState creates a new ConnectionState with the given initial status
func NewConnectionState(initialStatus ConnectionStatus) *ConnectionState {
	return &ConnectionState{
		status: initialStatus,
		since:  time.Now(),
	}
}

// Status returns the current connection status (thread-safe)
func (cs *ConnectionState) Status() ConnectionStatus {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.status
}

// LastError returns the cause of the most recent disconnect
func (cs *ConnectionState) LastError() error {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.lastErr
}

// Since returns when the status last changed
func (cs *ConnectionState) Since() time.Time {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.since
}

// SetStatus updates the connection status (thread-safe)
func (cs *ConnectionState) SetStatus(status ConnectionStatus, err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.status != status {
		cs.since = time.Now()
	}
	cs.status = status
	cs.lastErr = err
}
