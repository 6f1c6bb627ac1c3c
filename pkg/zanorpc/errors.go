package zanorpc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrWalletExists is returned by CreateWallet when the daemon reports
	// that the wallet file already exists on disk.
	ErrWalletExists = errors.New("wallet file already exists")
	// ErrInsufficientFunds is returned by Transfer when the wallet cannot
	// cover the requested destinations.
	ErrInsufficientFunds = errors.New("not enough unlocked funds for transfer")
	// ErrInvalidDestination is returned by Transfer when the daemon rejects
	// a destination address.
	ErrInvalidDestination = errors.New("invalid destination address")
)

// TransportError wraps a network failure, timeout or non-2xx HTTP status.
// It is retryable: the request may never have reached the daemon.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error calling %s: %s", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RPCError is an error envelope reported by the daemon itself. It is not
// retryable without a state change, the daemon already received and
// rejected the request.
type RPCError struct {
	Method  string
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error calling %s: %s (code %d)", e.Method, e.Message, e.Code)
}

// OpenWalletError is the daemon error envelope of a failed open_wallet
// call. Surfaced distinctly from transport errors because it is actionable
// by an operator: a wrong password or a missing wallet file.
type OpenWalletError struct {
	Code    int
	Message string
}

func (e *OpenWalletError) Error() string {
	return fmt.Sprintf("open wallet failed: %s (code %d)", e.Message, e.Code)
}

// WalletNotFound reports whether the open failure means the wallet file
// does not exist, in which case the caller may fall back to create_wallet.
func (e *OpenWalletError) WalletNotFound() bool {
	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "file not found") ||
		strings.Contains(msg, "failed to load wallet") ||
		strings.Contains(msg, "failed to open wallet")
}

// IsRetryable reports whether err is a transport-level failure that a
// caller may retry as-is.
func IsRetryable(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
