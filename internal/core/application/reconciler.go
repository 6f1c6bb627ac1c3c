package application

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zano-pay/zanopayd/internal/core/domain"
)

// Reconciler matches detected transfers against outstanding payment
// prompts and applies the confirmation-depth policy. It keeps only enough
// state to report Confirmed at most once per transaction id: everything
// else is a pure function of its inputs.
type Reconciler struct {
	depth uint64

	mutex     sync.Mutex
	confirmed map[string]struct{}
}

// NewReconciler returns a reconciler requiring depth confirmations before
// reporting a payment settled.
func NewReconciler(depth uint64) *Reconciler {
	return &Reconciler{
		depth:     depth,
		confirmed: map[string]struct{}{},
	}
}

// Depth returns the required confirmation depth.
func (r *Reconciler) Depth() uint64 {
	return r.depth
}

// Reconcile produces the outcome of matching transfer against prompt,
// which may be nil when no prompt exists for the transfer's (address,
// payment id) pair. The returned bool is false when the result is a
// repeated Confirmed for an already reported transaction id and must be
// discarded.
func (r *Reconciler) Reconcile(
	transfer domain.DetectedTransfer, prompt *domain.PaymentPrompt,
) (domain.ReconciliationResult, bool) {
	status := reconcile(transfer, prompt, r.depth)

	if status == domain.Confirmed {
		r.mutex.Lock()
		_, seen := r.confirmed[transfer.TxID]
		if !seen {
			r.confirmed[transfer.TxID] = struct{}{}
		}
		r.mutex.Unlock()
		if seen {
			return domain.ReconciliationResult{}, false
		}
	}

	return domain.ReconciliationResult{
		ID:            uuid.NewString(),
		Status:        status,
		Confirmations: transfer.Confirmations,
		Transfer:      transfer,
		Prompt:        prompt,
		ObservedAt:    time.Now(),
	}, true
}

// reconcile is the pure confirmation-depth policy.
func reconcile(
	transfer domain.DetectedTransfer, prompt *domain.PaymentPrompt, depth uint64,
) domain.ReconciliationStatus {
	if prompt == nil {
		return domain.Unmatched
	}
	if transfer.DoubleSpendSeen {
		return domain.Orphaned
	}
	if transfer.Amount != prompt.ExpectedAmount {
		return domain.AmountMismatch
	}
	if transfer.Confirmations < depth {
		return domain.PendingConfirmation
	}
	return domain.Confirmed
}
