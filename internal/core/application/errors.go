package application

import "errors"

var (
	// ErrNetworkNotConfigured is returned when asking the pool for a
	// network that has no daemon URIs configured.
	ErrNetworkNotConfigured = errors.New("network is not configured")
	// ErrSessionClosed is returned after an explicit shutdown of a wallet
	// session.
	ErrSessionClosed = errors.New("wallet session is closed")
	// ErrSessionDegraded is returned while a degraded session waits out
	// its backoff window.
	ErrSessionDegraded = errors.New("wallet session is degraded, retry pending")
	// ErrNoCashCowWallet is returned by cheat-mode operations on networks
	// without a cash-cow wallet daemon.
	ErrNoCashCowWallet = errors.New("no cash-cow wallet configured for network")
	// ErrCheatModeDisabled is returned by cheat-mode operations on mainnet.
	ErrCheatModeDisabled = errors.New("cheat mode is disabled on mainnet")
)
