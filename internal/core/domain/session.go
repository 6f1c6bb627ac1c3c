package domain

import "time"

const (
	// SessionUnconfigured means no daemon URIs are present in the
	// configuration; the network is excluded entirely.
	SessionUnconfigured SessionState = iota
	// SessionConfiguring means the session exists but no open has been
	// attempted yet.
	SessionConfiguring
	// SessionOpening means an open_wallet/create_wallet call is in flight.
	SessionOpening
	// SessionReady means the wallet file is open and serving calls.
	SessionReady
	// SessionDegraded means the last call failed at the transport level;
	// calls are retried with bounded backoff while read-only status
	// queries keep serving the last known good snapshot.
	SessionDegraded
	// SessionClosed means the session was shut down explicitly and is not
	// reopened automatically.
	SessionClosed
)

// SessionState is the lifecycle state of a per-network wallet daemon
// session.
type SessionState int

func (s SessionState) String() string {
	switch s {
	case SessionUnconfigured:
		return "Unconfigured"
	case SessionConfiguring:
		return "Configuring"
	case SessionOpening:
		return "Opening"
	case SessionReady:
		return "Ready"
	case SessionDegraded:
		return "Degraded"
	case SessionClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// WalletSummary is the balance/sync snapshot published for observability
// consumers. Published atomically as an immutable value; stale numbers are
// retained with DaemonReachable set to false when the daemon stops
// responding.
type WalletSummary struct {
	Network         string    `json:"network"`
	Balance         uint64    `json:"balance"`
	UnlockedBalance uint64    `json:"unlocked_balance"`
	SyncHeight      uint64    `json:"sync_height"`
	DaemonReachable bool      `json:"daemon_reachable"`
	UpdatedAt       time.Time `json:"updated_at"`
}
