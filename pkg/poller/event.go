package poller

import "github.com/zano-pay/zanopayd/internal/core/domain"

const (
	QuitSignal EventType = iota
	TransferDetected
	SummaryUpdated
)

type EventType int

func (et EventType) String() string {
	switch et {
	case QuitSignal:
		return "QuitSignal"
	case TransferDetected:
		return "TransferDetected"
	case SummaryUpdated:
		return "SummaryUpdated"
	default:
		return "Unknown"
	}
}

// Event are emitted through a channel during observation.
type Event interface {
	Type() EventType
}

// QuitEvent is sent once after Stop, when every observable has exited.
type QuitEvent struct{}

func (q QuitEvent) Type() EventType {
	return QuitSignal
}

// TransferEvent carries one incoming transfer observed on a network.
type TransferEvent struct {
	Network  string
	Transfer domain.DetectedTransfer
}

func (t TransferEvent) Type() EventType {
	return TransferDetected
}

// SummaryEvent carries a fresh balance/sync snapshot for a network.
type SummaryEvent struct {
	Network string
	Summary domain.WalletSummary
}

func (s SummaryEvent) Type() EventType {
	return SummaryUpdated
}
