package application

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zano-pay/zanopayd/internal/core/domain"
	"github.com/zano-pay/zanopayd/internal/stats"
	"github.com/zano-pay/zanopayd/pkg/poller"
)

const resultQueueMaxSize = 100

// PaymentListener runs one recurring polling task per configured network,
// matches observed transfers against outstanding prompts and forwards
// reconciliation results to the host. Repeated observations of the same
// transaction id across cycles are expected; the reconciler keeps the
// Confirmed report unique per txid.
type PaymentListener struct {
	pool       *WalletPool
	prompts    domain.PromptRepository
	reconciler *Reconciler
	pollerSvc  poller.Service
	resultChan chan domain.ReconciliationResult
}

// NewPaymentListener wires a listener polling every interval.
func NewPaymentListener(
	pool *WalletPool,
	prompts domain.PromptRepository,
	reconciler *Reconciler,
	interval time.Duration,
	rpcLimit int,
) *PaymentListener {
	pollerSvc := poller.NewService(poller.Opts{
		Interval: interval,
		ErrorHandler: func(err error) {
			log.WithError(err).Warn("payment listener poll failed")
		},
		RPCLimit: rpcLimit,
	})
	return &PaymentListener{
		pool:       pool,
		prompts:    prompts,
		reconciler: reconciler,
		pollerSvc:  pollerSvc,
		resultChan: make(chan domain.ReconciliationResult, resultQueueMaxSize),
	}
}

// Start launches the per-network polling tasks and the event consumer.
func (l *PaymentListener) Start() {
	for _, network := range l.pool.Networks() {
		session, err := l.pool.Session(network)
		if err != nil {
			continue
		}
		l.pollerSvc.AddObservable(
			newTransferObservable(session, l.reconciler.Depth()),
		)
	}
	go l.pollerSvc.Start()
	go l.handleEvents()
}

// Stop ends the polling tasks cooperatively. In-flight poll cycles
// complete or time out before the tasks exit, then Results is closed.
func (l *PaymentListener) Stop() {
	l.pollerSvc.Stop()
}

// Results returns the channel of reconciliation outcomes for the host.
func (l *PaymentListener) Results() <-chan domain.ReconciliationResult {
	return l.resultChan
}

func (l *PaymentListener) handleEvents() {
	for event := range l.pollerSvc.GetEventChannel() {
		switch e := event.(type) {
		case poller.QuitEvent:
			close(l.resultChan)
			return
		case poller.TransferEvent:
			l.handleTransfer(e)
		}
	}
}

func (l *PaymentListener) handleTransfer(e poller.TransferEvent) {
	stats.TransfersDetected.WithLabelValues(e.Network).Inc()

	ctx := context.Background()
	prompt, err := l.prompts.GetPrompt(
		ctx, e.Network, e.Transfer.Address, e.Transfer.PaymentID,
	)
	if err != nil {
		if !errors.Is(err, domain.ErrPromptNotFound) {
			log.WithError(err).Warnf(
				"failed looking up prompt for tx %s", e.Transfer.TxID,
			)
			return
		}
		// not an error, wallets receive change and test transfers too
		log.Debugf(
			"discarding orphan transfer %s on %s", e.Transfer.TxID, e.Network,
		)
		return
	}

	result, ok := l.reconciler.Reconcile(e.Transfer, prompt)
	if !ok {
		return
	}
	if result.Status == domain.Confirmed {
		stats.PaymentsConfirmed.WithLabelValues(e.Network).Inc()
		log.Infof(
			"payment confirmed on %s: tx %s, %d atomic units",
			e.Network, e.Transfer.TxID, e.Transfer.Amount,
		)
	}
	l.resultChan <- result
}
