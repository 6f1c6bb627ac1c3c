package domain

// DetectedTransfer is one incoming transfer as reported by the wallet
// daemon. It is a value object re-derived on every poll cycle, never
// mutated; the same transaction id may be observed many times with an
// increasing confirmation count.
type DetectedTransfer struct {
	Network         string
	TxID            string
	Address         string
	PaymentID       string
	AccountIndex    uint32
	Amount          uint64
	Confirmations   uint64
	Height          uint64 // 0 while the transfer sits in the mempool
	DoubleSpendSeen bool
}

// Mined returns whether the transfer has been included in a block.
func (t DetectedTransfer) Mined() bool {
	return t.Height > 0
}
