package domain

import "time"

const (
	// Unmatched means no outstanding prompt exists for the transfer's
	// (address, payment id) pair.
	Unmatched ReconciliationStatus = iota
	// PendingConfirmation means the transfer matches a prompt but has not
	// reached the required confirmation depth yet.
	PendingConfirmation
	// Confirmed means the transfer reached the required depth. Reported at
	// most once per transaction id.
	Confirmed
	// AmountMismatch means the transfer amount differs from the prompt's
	// expected amount.
	AmountMismatch
	// Orphaned means the transfer was dropped from the chain after being
	// observed, eg. reorged out or flagged as a double spend.
	Orphaned
)

// ReconciliationStatus is the outcome kind of matching a DetectedTransfer
// against a PaymentPrompt.
type ReconciliationStatus int

func (s ReconciliationStatus) String() string {
	switch s {
	case Unmatched:
		return "Unmatched"
	case PendingConfirmation:
		return "PendingConfirmation"
	case Confirmed:
		return "Confirmed"
	case AmountMismatch:
		return "AmountMismatch"
	case Orphaned:
		return "Orphaned"
	default:
		return "Unknown"
	}
}

// ReconciliationResult is produced by the reconciler for every observed
// transfer and consumed by the host. None of its statuses is an error,
// they are ordinary polling outcomes.
type ReconciliationResult struct {
	ID            string
	Status        ReconciliationStatus
	Confirmations uint64
	Transfer      DetectedTransfer
	Prompt        *PaymentPrompt
	ObservedAt    time.Time
}
